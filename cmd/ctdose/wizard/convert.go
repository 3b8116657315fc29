package wizard

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mrsinham/ctdose/cmd/ctdose/wizard/types"
	"github.com/mrsinham/ctdose/internal/checklist"
	"github.com/mrsinham/ctdose/internal/export"
	"github.com/mrsinham/ctdose/internal/record"
)

// ToFields converts the text values of the entry form to record fields.
// Empty dose values are recorded as 0.
func ToFields(d types.EntryDraft) (record.Fields, error) {
	age, err := strconv.Atoi(strings.TrimSpace(d.Age))
	if err != nil {
		return record.Fields{}, fmt.Errorf("invalid age %q", d.Age)
	}

	gender, err := record.ParseGender(d.Gender)
	if err != nil {
		return record.Fields{}, err
	}

	ctdi, err := parseDose(d.CTDIvol)
	if err != nil {
		return record.Fields{}, fmt.Errorf("invalid CTDIvol: %w", err)
	}
	dlp, err := parseDose(d.DLP)
	if err != nil {
		return record.Fields{}, fmt.Errorf("invalid DLP: %w", err)
	}

	return record.Fields{
		PatientID: d.PatientID,
		Age:       age,
		Gender:    gender,
		ExamArea:  d.ExamArea,
		CTDIvol:   ctdi,
		DLP:       dlp,
		Comment:   d.Comment,
	}, nil
}

func parseDose(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%q is negative", s)
	}
	return v, nil
}

// ToSubmission returns the contrast mode and checklist state of a draft.
func ToSubmission(d types.EntryDraft) (checklist.Mode, checklist.State, error) {
	mode, err := checklist.ParseMode(d.Contrast)
	if err != nil {
		return checklist.WithoutContrast, nil, err
	}
	return mode, checklist.StateFromChecked(d.Checked), nil
}

// FromFields creates a draft prefilled with f, e.g. values read from a DICOM
// header. The checklist is left unconfirmed.
func FromFields(f record.Fields, mode checklist.Mode) types.EntryDraft {
	d := types.EntryDraft{
		Contrast:  mode.String(),
		PatientID: f.PatientID,
		Age:       strconv.Itoa(f.Age),
		Gender:    f.Gender.String(),
		ExamArea:  f.ExamArea,
		Comment:   f.Comment,
	}
	if f.CTDIvol != 0 {
		d.CTDIvol = export.FormatDose(f.CTDIvol)
	}
	if f.DLP != 0 {
		d.DLP = export.FormatDose(f.DLP)
	}
	return d
}
