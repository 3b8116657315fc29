package wizard

import (
	"testing"

	"github.com/mrsinham/ctdose/cmd/ctdose/wizard/types"
	"github.com/mrsinham/ctdose/internal/checklist"
	"github.com/mrsinham/ctdose/internal/record"
)

func TestToFields(t *testing.T) {
	f, err := ToFields(types.EntryDraft{
		PatientID: "P001",
		Age:       " 45 ",
		Gender:    "女",
		ExamArea:  "頭部",
		CTDIvol:   "55.1",
		DLP:       "",
		Comment:   "再撮影",
	})
	if err != nil {
		t.Fatalf("ToFields failed: %v", err)
	}

	if f.Age != 45 || f.Gender != record.Female || f.CTDIvol != 55.1 {
		t.Errorf("Unexpected fields %+v", f)
	}
	if f.DLP != 0 {
		t.Errorf("Expected empty DLP to be 0, got %v", f.DLP)
	}
}

func TestToFields_Errors(t *testing.T) {
	base := types.EntryDraft{Age: "45", Gender: "男", CTDIvol: "1", DLP: "1"}

	tests := []struct {
		name   string
		modify func(d *types.EntryDraft)
	}{
		{"age", func(d *types.EntryDraft) { d.Age = "abc" }},
		{"gender", func(d *types.EntryDraft) { d.Gender = "?" }},
		{"ctdivol", func(d *types.EntryDraft) { d.CTDIvol = "1,2" }},
		{"dlp", func(d *types.EntryDraft) { d.DLP = "x" }},
		{"ctdivol nan", func(d *types.EntryDraft) { d.CTDIvol = "NaN" }},
		{"ctdivol inf", func(d *types.EntryDraft) { d.CTDIvol = "Inf" }},
		{"dlp inf", func(d *types.EntryDraft) { d.DLP = "+Inf" }},
		{"dlp negative", func(d *types.EntryDraft) { d.DLP = "-1" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base
			tt.modify(&d)
			if _, err := ToFields(d); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestToSubmission(t *testing.T) {
	mode, state, err := ToSubmission(types.EntryDraft{
		Contrast: "造影あり",
		Checked:  checklist.ContrastItems[:2],
	})
	if err != nil {
		t.Fatalf("ToSubmission failed: %v", err)
	}
	if mode != checklist.WithContrast {
		t.Errorf("Expected WithContrast, got %v", mode)
	}
	if len(state) != 2 || !state[checklist.ContrastItems[0]] {
		t.Errorf("Unexpected state %v", state)
	}

	if _, _, err := ToSubmission(types.EntryDraft{Contrast: "maybe"}); err == nil {
		t.Error("Expected error for unknown contrast")
	}
}

func TestFromFields(t *testing.T) {
	d := FromFields(record.Fields{
		PatientID: "P042",
		Age:       61,
		Gender:    record.Other,
		ExamArea:  "ABDOMEN",
		CTDIvol:   8,
	}, checklist.WithContrast)

	if d.Contrast != "造影あり" {
		t.Errorf("Expected 造影あり, got %s", d.Contrast)
	}
	if d.Age != "61" || d.Gender != "その他" {
		t.Errorf("Unexpected draft %+v", d)
	}
	if d.CTDIvol != "8.0" {
		t.Errorf("Expected CTDIvol 8.0, got %s", d.CTDIvol)
	}
	if d.DLP != "" {
		t.Errorf("Expected empty DLP, got %s", d.DLP)
	}
	if len(d.Checked) != 0 {
		t.Errorf("Expected unconfirmed checklist, got %v", d.Checked)
	}

	// Values survive the conversion back to fields
	f, err := ToFields(d)
	if err != nil {
		t.Fatalf("ToFields failed: %v", err)
	}
	if f.PatientID != "P042" || f.Age != 61 || f.CTDIvol != 8 {
		t.Errorf("Unexpected fields %+v", f)
	}
}
