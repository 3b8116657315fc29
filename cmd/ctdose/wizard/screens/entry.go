package screens

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/ctdose/cmd/ctdose/wizard/components"
	"github.com/mrsinham/ctdose/cmd/ctdose/wizard/types"
	"github.com/mrsinham/ctdose/internal/checklist"
	"github.com/mrsinham/ctdose/internal/record"
)

// EntryScreen collects the checklist and dose values of one scan
type EntryScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	draft     *types.EntryDraft
	notice    components.Notice
	done      bool
	cancelled bool
	quit      bool
	width     int
	height    int
}

// NewEntryScreen creates the entry form bound to draft. notice is shown
// above the form, e.g. the result of the previous submission.
func NewEntryScreen(draft *types.EntryDraft, notice components.Notice) *EntryScreen {
	if _, err := checklist.ParseMode(draft.Contrast); err != nil {
		draft.Contrast = checklist.WithoutContrast.String()
	}
	if draft.Gender == "" {
		draft.Gender = record.Male.String()
	}
	if draft.Age == "" {
		draft.Age = "0"
	}

	s := &EntryScreen{
		helpPanel: components.NewHelpPanel(),
		draft:     draft,
		notice:    notice,
	}
	s.helpPanel.SetChecklist(draft.Contrast, draft.Checked)

	contrastOptions := make([]huh.Option[string], 0, 2)
	for _, m := range checklist.AllModes() {
		contrastOptions = append(contrastOptions, huh.NewOption(m.String(), m.String()))
	}

	genderOptions := make([]huh.Option[string], 0, 3)
	for _, g := range record.AllGenders() {
		genderOptions = append(genderOptions, huh.NewOption(g.String(), g.String()))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("contrast").
				Title("造影の有無を選択してください").
				Options(contrastOptions...).
				Value(&draft.Contrast),
		).Title("1. 撮影前チェックリスト"),

		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Key("checklist").
				Title("確認済みの項目を選択してください").
				OptionsFunc(func() []huh.Option[string] {
					return ChecklistOptions(draft.Contrast, draft.Checked)
				}, &draft.Contrast).
				Value(&draft.Checked).
				Filterable(false),
		),

		huh.NewGroup(
			huh.NewInput().
				Key("patient_id").
				Title("患者ID").
				Value(&draft.PatientID),

			huh.NewInput().
				Key("age").
				Title("年齢").
				Value(&draft.Age).
				Validate(ValidateAge),

			huh.NewSelect[string]().
				Key("gender").
				Title("性別").
				Options(genderOptions...).
				Inline(true).
				Value(&draft.Gender),

			huh.NewInput().
				Key("exam_area").
				Title("検査部位").
				Value(&draft.ExamArea),

			huh.NewInput().
				Key("ctdivol").
				Title("CTDIvol (mGy)").
				Value(&draft.CTDIvol).
				Validate(ValidateDose),

			huh.NewInput().
				Key("dlp").
				Title("DLP (mGy・cm)").
				Value(&draft.DLP).
				Validate(ValidateDose),

			huh.NewInput().
				Key("comment").
				Title("コメント").
				Value(&draft.Comment),
		).Title("2. 被ばく線量の記録"),
	).WithShowHelp(false).WithShowErrors(true)

	return s
}

// ChecklistOptions returns the checklist of the given contrast label as
// multi-select options, preselecting the labels already confirmed.
func ChecklistOptions(contrast string, checked []string) []huh.Option[string] {
	mode, err := checklist.ParseMode(contrast)
	if err != nil {
		mode = checklist.WithoutContrast
	}

	confirmed := make(map[string]bool, len(checked))
	for _, c := range checked {
		confirmed[c] = true
	}

	items := checklist.Compose(mode)
	opts := make([]huh.Option[string], len(items))
	for i, item := range items {
		label := item
		if i >= len(checklist.BaseItems) {
			label = "[造影] " + item
		}
		opts[i] = huh.NewOption(label, item).Selected(confirmed[item])
	}
	return opts
}

// ValidateAge accepts whole years from 0 to 120.
func ValidateAge(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("年齢は整数で入力してください")
	}
	if n < 0 || n > 120 {
		return fmt.Errorf("年齢は0〜120の範囲で入力してください")
	}
	return nil
}

// ValidateDose accepts an empty value (recorded as 0) or a finite non-negative number.
func ValidateDose(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("数値で入力してください")
	}
	if v < 0 {
		return fmt.Errorf("0以上の値を入力してください")
	}
	return nil
}

// Init implements tea.Model
func (s *EntryScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *EntryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.quit = true
			return s, nil
		case "esc":
			s.cancelled = true
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.helpPanel.SetWidth(msg.Width / 2)
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if focused := s.form.GetFocusedField(); focused != nil {
		s.helpPanel.SetField(focused.GetKey())
	}
	s.helpPanel.SetChecklist(s.draft.Contrast, s.draft.Checked)

	if s.form.State == huh.StateCompleted {
		s.done = true
	}

	return s, cmd
}

// View implements tea.Model
func (s *EntryScreen) View() string {
	title := components.TitleStyle.Render("らくチエ CT Pro")

	parts := []string{title}
	if n := s.notice.View(); n != "" {
		parts = append(parts, n, "")
	}
	parts = append(parts,
		s.form.View(),
		"",
		s.helpPanel.View(),
		"",
		components.HintStyle.Render("Tab: 次へ | Shift+Tab: 戻る | Enter: 確定 | Esc: 記録一覧へ"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Done returns true if the form was completed
func (s *EntryScreen) Done() bool { return s.done }

// Cancelled returns true if the user left the form without submitting
func (s *EntryScreen) Cancelled() bool { return s.cancelled }

// Quit returns true if the user asked to leave the application
func (s *EntryScreen) Quit() bool { return s.quit }

// Draft returns the values bound to the form
func (s *EntryScreen) Draft() *types.EntryDraft { return s.draft }
