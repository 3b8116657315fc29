package dicom

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/mrsinham/ctdose/internal/record"
)

func mustNewElement(t *testing.T, tg tag.Tag, value interface{}) *dicom.Element {
	t.Helper()
	elem, err := dicom.NewElement(tg, value)
	require.NoError(t, err, "creating element %v", tg)
	return elem
}

func ctDataset(t *testing.T, extra ...*dicom.Element) dicom.Dataset {
	elements := []*dicom.Element{
		mustNewElement(t, tag.TransferSyntaxUID, []string{"1.2.840.10008.1.2.1"}),
		mustNewElement(t, tag.MediaStorageSOPClassUID, []string{"1.2.840.10008.5.1.4.1.1.2"}),
		mustNewElement(t, tag.MediaStorageSOPInstanceUID, []string{"1.2.826.0.1.3680043.8.498.1"}),
		mustNewElement(t, tag.Modality, []string{"CT"}),
	}
	return dicom.Dataset{Elements: append(elements, extra...)}
}

func TestFromDataset_AllFields(t *testing.T) {
	ds := ctDataset(t,
		mustNewElement(t, tag.PatientID, []string{"P001"}),
		mustNewElement(t, tag.PatientSex, []string{"F"}),
		mustNewElement(t, tag.PatientAge, []string{"045Y"}),
		mustNewElement(t, tag.BodyPartExamined, []string{"CHEST"}),
		mustNewElement(t, CTDIvolTag, []float64{12.3}),
	)

	p, err := FromDataset(ds)
	require.NoError(t, err)

	assert.Equal(t, record.Fields{
		PatientID: "P001",
		Age:       45,
		Gender:    record.Female,
		ExamArea:  "CHEST",
		CTDIvol:   12.3,
	}, p.Fields)
	assert.ElementsMatch(t, []string{FieldPatientID, FieldAge, FieldGender, FieldExamArea, FieldCTDIvol}, p.Found)
	assert.True(t, p.Has(FieldCTDIvol))
}

func TestFromDataset_MissingTags(t *testing.T) {
	p, err := FromDataset(ctDataset(t, mustNewElement(t, tag.PatientID, []string{"P009"})))
	require.NoError(t, err)

	assert.Equal(t, "P009", p.Fields.PatientID)
	assert.Equal(t, 0, p.Fields.Age)
	assert.False(t, p.Has(FieldCTDIvol))
	assert.False(t, p.Has(FieldExamArea))
}

func TestFromDataset_RejectsOtherModality(t *testing.T) {
	ds := dicom.Dataset{Elements: []*dicom.Element{
		mustNewElement(t, tag.Modality, []string{"MR"}),
	}}

	_, err := FromDataset(ds)
	assert.True(t, errors.Is(err, ErrNotCT))
}

func TestParseAge(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"045Y", 45, false},
		{"018M", 1, false},
		{"104W", 2, false},
		{"030D", 0, false},
		{"120Y", 120, false},
		{"45", 0, true},
		{"Y", 0, true},
		{"0x5Y", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAge(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestReadPrefill_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "IM000001")
	ds := ctDataset(t,
		mustNewElement(t, tag.PatientID, []string{"P001"}),
		mustNewElement(t, tag.PatientSex, []string{"M"}),
		mustNewElement(t, tag.PatientAge, []string{"045Y"}),
		mustNewElement(t, CTDIvolTag, []float64{8.5}),
	)

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, dicom.Write(f, ds))
	require.NoError(t, f.Close())

	p, err := ReadPrefill(path)
	require.NoError(t, err)
	assert.Equal(t, "P001", p.Fields.PatientID)
	assert.Equal(t, 45, p.Fields.Age)
	assert.Equal(t, record.Male, p.Fields.Gender)
	assert.Equal(t, 8.5, p.Fields.CTDIvol)
}

func TestReadPrefill_NotDICOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a dicom file"), 0644))

	_, err := ReadPrefill(path)
	assert.Error(t, err)
}
