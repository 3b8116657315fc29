// Package export serializes dose records into downloadable files.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mrsinham/ctdose/internal/record"
)

// File names of the download artifacts.
const (
	AllFilename         = "ct_dose_records.csv"
	AllWorkbookFilename = "ct_dose_records.xlsx"
	singlePrefix        = "ct_record_"
)

// Header is the column row of every export, in field declaration order.
var Header = []string{"日付", "患者ID", "年齢", "性別", "検査部位", "CTDIvol", "DLP", "コメント"}

// ErrHeaderMismatch is returned by DecodeCSV for files not produced by EncodeCSV.
var ErrHeaderMismatch = errors.New("unexpected CSV header")

// SingleFilename returns the file name of a single-record export made on today.
func SingleFilename(today time.Time) string {
	return singlePrefix + today.Format(record.DateLayout) + ".csv"
}

// EncodeCSV writes a header row and one row per record, in order.
func EncodeCSV(records []record.DoseRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeSingle encodes exactly one record as a two-row table.
func EncodeSingle(r record.DoseRecord) ([]byte, error) {
	return EncodeCSV([]record.DoseRecord{r})
}

// WriteCSV streams records as UTF-8 CSV with LF line endings.
func WriteCSV(w io.Writer, records []record.DoseRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(Row(r)); err != nil {
			return fmt.Errorf("writing record %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Row returns the CSV cells of a record in Header order.
func Row(r record.DoseRecord) []string {
	return []string{
		r.DateString(),
		r.PatientID,
		strconv.Itoa(r.Age),
		r.Gender.String(),
		r.ExamArea,
		FormatDose(r.CTDIvol),
		FormatDose(r.DLP),
		r.Comment,
	}
}

// FormatDose renders a dose value with the shortest exact decimal form and
// always keeps a fractional part, so 250 is written as "250.0".
func FormatDose(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// DecodeCSV parses a file produced by EncodeCSV back into records, dating
// them in local time.
func DecodeCSV(data []byte) ([]record.DoseRecord, error) {
	return DecodeCSVInLocation(data, time.Local)
}

// DecodeCSVInLocation is DecodeCSV with dates placed in loc, the location of
// the clock the records were created with.
func DecodeCSVInLocation(data []byte, loc *time.Location) ([]record.DoseRecord, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = len(Header)

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrHeaderMismatch)
	}
	header := rows[0]
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	for i, name := range Header {
		if header[i] != name {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrHeaderMismatch, i+1, header[i], name)
		}
	}

	records := make([]record.DoseRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		r, err := parseRow(row, loc)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func parseRow(row []string, loc *time.Location) (record.DoseRecord, error) {
	date, err := time.ParseInLocation(record.DateLayout, row[0], loc)
	if err != nil {
		return record.DoseRecord{}, fmt.Errorf("invalid date %q: %w", row[0], err)
	}
	age, err := strconv.Atoi(row[2])
	if err != nil {
		return record.DoseRecord{}, fmt.Errorf("invalid age %q: %w", row[2], err)
	}
	gender, err := record.ParseGender(row[3])
	if err != nil {
		return record.DoseRecord{}, err
	}
	ctdi, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return record.DoseRecord{}, fmt.Errorf("invalid CTDIvol %q: %w", row[5], err)
	}
	dlp, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return record.DoseRecord{}, fmt.Errorf("invalid DLP %q: %w", row[6], err)
	}

	return record.DoseRecord{
		Date:      date,
		PatientID: row[1],
		Age:       age,
		Gender:    gender,
		ExamArea:  row[4],
		CTDIvol:   ctdi,
		DLP:       dlp,
		Comment:   row[7],
	}, nil
}
