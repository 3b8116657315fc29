// Package record holds CT dose records and the session that accumulates them.
package record

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// DateLayout is the ISO calendar date layout used for record dates.
const DateLayout = "2006-01-02"

// Gender of the patient as recorded on the form.
type Gender int

const (
	Male Gender = iota
	Female
	Other
)

// String returns the Japanese label stored in exports.
func (g Gender) String() string {
	switch g {
	case Female:
		return "女"
	case Other:
		return "その他"
	default:
		return "男"
	}
}

// AllGenders returns the genders in form order.
func AllGenders() []Gender {
	return []Gender{Male, Female, Other}
}

// ParseGender parses a Japanese label, an English word or a DICOM sex code.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "男", "male", "m":
		return Male, nil
	case "女", "female", "f":
		return Female, nil
	case "その他", "other", "o":
		return Other, nil
	default:
		return Male, fmt.Errorf("invalid gender: %s (valid: 男, 女, その他)", s)
	}
}

// Fields are the dose form values entered by the operator.
type Fields struct {
	PatientID string
	Age       int
	Gender    Gender
	ExamArea  string
	CTDIvol   float64 // mGy
	DLP       float64 // mGy·cm
	Comment   string
}

// DoseRecord is one submitted dose entry. Records are values and are never
// modified after a successful submission.
type DoseRecord struct {
	Date      time.Time
	PatientID string
	Age       int
	Gender    Gender
	ExamArea  string
	CTDIvol   float64
	DLP       float64
	Comment   string
}

// DateString returns the record date as YYYY-MM-DD.
func (r DoseRecord) DateString() string {
	return r.Date.Format(DateLayout)
}

// newRecord builds a record dated on the calendar day of now.
func newRecord(f Fields, now time.Time) DoseRecord {
	y, m, d := now.Date()
	return DoseRecord{
		Date:      time.Date(y, m, d, 0, 0, 0, 0, now.Location()),
		PatientID: NormalizeID(f.PatientID),
		Age:       f.Age,
		Gender:    f.Gender,
		ExamArea:  NormalizeText(f.ExamArea),
		CTDIvol:   f.CTDIvol,
		DLP:       f.DLP,
		Comment:   NormalizeText(f.Comment),
	}
}

// NormalizeID trims surrounding space. The identifier is otherwise kept as
// typed; it is not validated.
func NormalizeID(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeText composes free text to NFC and trims surrounding space.
func NormalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
