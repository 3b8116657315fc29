// Package dicom reads dose-form defaults from CT image headers.
package dicom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/mrsinham/ctdose/internal/record"
)

// CTDIvolTag is (0018,9345), the volume CT dose index of the acquisition.
var CTDIvolTag = tag.Tag{Group: 0x0018, Element: 0x9345}

// ErrNotCT is returned for images whose Modality is present and not CT.
var ErrNotCT = errors.New("not a CT image")

// Prefill holds the form values found in an image header.
// Found lists which of the form fields were present.
type Prefill struct {
	Fields record.Fields
	Found  []string
}

// Has reports whether the named form field was read from the header.
func (p Prefill) Has(field string) bool {
	for _, f := range p.Found {
		if f == field {
			return true
		}
	}
	return false
}

// Field names reported in Prefill.Found.
const (
	FieldPatientID = "patient_id"
	FieldAge       = "age"
	FieldGender    = "gender"
	FieldExamArea  = "exam_area"
	FieldCTDIvol   = "ctdivol"
)

// ReadPrefill parses the DICOM file at path and maps patient and dose tags
// onto form fields. Missing tags leave the corresponding field zero.
func ReadPrefill(path string) (Prefill, error) {
	ds, err := dicom.ParseFile(path, nil, dicom.SkipPixelData())
	if err != nil {
		return Prefill{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return FromDataset(ds)
}

// FromDataset maps an already parsed dataset onto form fields.
func FromDataset(ds dicom.Dataset) (Prefill, error) {
	var p Prefill

	if modality, ok := stringValue(ds, tag.Modality); ok && modality != "CT" {
		return Prefill{}, fmt.Errorf("%w: modality %s", ErrNotCT, modality)
	}

	if id, ok := stringValue(ds, tag.PatientID); ok && id != "" {
		p.Fields.PatientID = id
		p.Found = append(p.Found, FieldPatientID)
	}
	if as, ok := stringValue(ds, tag.PatientAge); ok && as != "" {
		age, err := ParseAge(as)
		if err != nil {
			return Prefill{}, err
		}
		p.Fields.Age = age
		p.Found = append(p.Found, FieldAge)
	}
	if sex, ok := stringValue(ds, tag.PatientSex); ok && sex != "" {
		if g, err := record.ParseGender(sex); err == nil {
			p.Fields.Gender = g
			p.Found = append(p.Found, FieldGender)
		}
	}
	if part, ok := stringValue(ds, tag.BodyPartExamined); ok && part != "" {
		p.Fields.ExamArea = part
		p.Found = append(p.Found, FieldExamArea)
	}
	if ctdi, ok := floatValue(ds, CTDIvolTag); ok {
		p.Fields.CTDIvol = ctdi
		p.Found = append(p.Found, FieldCTDIvol)
	}

	return p, nil
}

// ParseAge converts a DICOM Age String (nnnD, nnnW, nnnM or nnnY) into
// completed years.
func ParseAge(as string) (int, error) {
	as = strings.TrimSpace(as)
	if len(as) < 2 {
		return 0, fmt.Errorf("invalid age string %q", as)
	}
	n, err := strconv.Atoi(as[:len(as)-1])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid age string %q", as)
	}

	switch as[len(as)-1] {
	case 'Y':
		return n, nil
	case 'M':
		return n / 12, nil
	case 'W':
		return n / 52, nil
	case 'D':
		return n / 365, nil
	default:
		return 0, fmt.Errorf("invalid age unit in %q", as)
	}
}

func stringValue(ds dicom.Dataset, t tag.Tag) (string, bool) {
	elem, err := ds.FindElementByTag(t)
	if err != nil || elem == nil {
		return "", false
	}
	vals, ok := elem.Value.GetValue().([]string)
	if !ok || len(vals) == 0 {
		return "", false
	}
	return strings.TrimSpace(vals[0]), true
}

func floatValue(ds dicom.Dataset, t tag.Tag) (float64, bool) {
	elem, err := ds.FindElementByTag(t)
	if err != nil || elem == nil {
		return 0, false
	}
	switch v := elem.Value.GetValue().(type) {
	case []float64:
		if len(v) > 0 {
			return v[0], true
		}
	case []string:
		if len(v) > 0 {
			f, err := strconv.ParseFloat(strings.TrimSpace(v[0]), 64)
			return f, err == nil
		}
	}
	return 0, false
}
