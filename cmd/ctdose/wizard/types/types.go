// Package types holds the form state shared by the wizard and its screens.
package types

// EntryDraft holds the raw values bound to the entry form.
// huh binds to strings, so numeric fields are kept as text until submission.
type EntryDraft struct {
	Contrast string   // checklist mode label, e.g. "造影なし"
	Checked  []string // confirmed checklist labels

	PatientID string
	Age       string
	Gender    string // "男", "女" or "その他"
	ExamArea  string
	CTDIvol   string
	DLP       string
	Comment   string
}

// ClearPatient resets the per-patient values and the confirmed checklist,
// keeping the contrast mode for the next scan.
func (d *EntryDraft) ClearPatient() {
	contrast := d.Contrast
	*d = EntryDraft{Contrast: contrast}
}
