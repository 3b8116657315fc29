package screens

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrsinham/ctdose/cmd/ctdose/wizard/components"
	"github.com/mrsinham/ctdose/cmd/ctdose/wizard/types"
	"github.com/mrsinham/ctdose/internal/checklist"
	"github.com/mrsinham/ctdose/internal/record"
)

func TestChecklistOptions(t *testing.T) {
	opts := ChecklistOptions("造影なし", nil)
	if len(opts) != 6 {
		t.Fatalf("Expected 6 options, got %d", len(opts))
	}
	for i, o := range opts {
		if o.Value != checklist.BaseItems[i] || o.Key != checklist.BaseItems[i] {
			t.Errorf("Option %d: unexpected %q/%q", i, o.Key, o.Value)
		}
	}

	opts = ChecklistOptions("造影あり", nil)
	if len(opts) != 12 {
		t.Fatalf("Expected 12 options, got %d", len(opts))
	}
	contrast := opts[6]
	if contrast.Value != checklist.ContrastItems[0] {
		t.Errorf("Expected %q, got %q", checklist.ContrastItems[0], contrast.Value)
	}
	if !strings.HasPrefix(contrast.Key, "[造影] ") {
		t.Errorf("Expected contrast label prefix, got %q", contrast.Key)
	}
}

func TestChecklistOptions_UnknownModeFallsBack(t *testing.T) {
	if n := len(ChecklistOptions("", nil)); n != 6 {
		t.Errorf("Expected base checklist, got %d options", n)
	}
}

func TestValidateAge(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"0", true},
		{"45", true},
		{" 120 ", true},
		{"121", false},
		{"-1", false},
		{"4.5", false},
		{"", false},
	}

	for _, tt := range tests {
		err := ValidateAge(tt.input)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateAge(%q) = %v, want ok=%v", tt.input, err, tt.ok)
		}
	}
}

func TestValidateDose(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"", true},
		{"12.3", true},
		{"250", true},
		{"0", true},
		{"-0.1", false},
		{"12,3", false},
		{"N/A", false},
		{"NaN", false},
		{"nan", false},
		{"Inf", false},
		{"+Inf", false},
		{"-Inf", false},
		{"1e400", false},
	}

	for _, tt := range tests {
		err := ValidateDose(tt.input)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateDose(%q) = %v, want ok=%v", tt.input, err, tt.ok)
		}
	}
}

func TestNewEntryScreen_Defaults(t *testing.T) {
	draft := &types.EntryDraft{Contrast: "unknown"}
	s := NewEntryScreen(draft, components.Notice{})

	if draft.Contrast != "造影なし" {
		t.Errorf("Expected contrast reset to 造影なし, got %s", draft.Contrast)
	}
	if draft.Gender != "男" || draft.Age != "0" {
		t.Errorf("Unexpected defaults %+v", draft)
	}
	if s.Draft() != draft {
		t.Error("Expected screen to be bound to the draft")
	}
}

func TestEntryScreen_Keys(t *testing.T) {
	s := NewEntryScreen(&types.EntryDraft{}, components.Notice{})
	s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !s.Cancelled() || s.Done() {
		t.Error("Expected esc to cancel")
	}

	s = NewEntryScreen(&types.EntryDraft{}, components.Notice{})
	s.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !s.Quit() {
		t.Error("Expected ctrl+c to quit")
	}
}

func TestEntryScreen_ViewShowsNotice(t *testing.T) {
	notice := components.Notice{
		Kind:    components.NoticeError,
		Message: "チェックリストをすべて完了してください！",
		Details: []string{checklist.BaseItems[0]},
	}
	view := NewEntryScreen(&types.EntryDraft{}, notice).View()

	if !strings.Contains(view, notice.Message) {
		t.Error("Expected notice message in view")
	}
	if !strings.Contains(view, checklist.BaseItems[0]) {
		t.Error("Expected missing item in view")
	}
}

func TestRecordsScreen_EscQuits(t *testing.T) {
	s := NewRecordsScreen(nil, false, components.Notice{})
	s.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if !s.Done() {
		t.Fatal("Expected esc to finish the screen")
	}
	if s.Action() != RecordsActionQuit {
		t.Errorf("Expected RecordsActionQuit, got %d", s.Action())
	}
}

func TestRecordsScreen_DefaultActionAndView(t *testing.T) {
	records := []record.DoseRecord{{PatientID: "P001", Age: 45, ExamArea: "胸部", CTDIvol: 12.3, DLP: 250}}
	s := NewRecordsScreen(records, true, components.Notice{})

	if s.Action() != RecordsActionNew {
		t.Errorf("Expected RecordsActionNew, got %d", s.Action())
	}

	view := s.View()
	for _, want := range []string{"記録一覧 (1件)", "P001", "250.0"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in view", want)
		}
	}
}

func TestRecordsScreen_EmptyView(t *testing.T) {
	view := NewRecordsScreen(nil, false, components.Notice{}).View()

	if !strings.Contains(view, "記録一覧 (0件)") {
		t.Error("Expected record count in title")
	}
	if !strings.Contains(view, components.EmptyRecordsMessage) {
		t.Error("Expected empty records message")
	}
}
