package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/ctdose/cmd/ctdose/wizard/components"
	"github.com/mrsinham/ctdose/internal/export"
	"github.com/mrsinham/ctdose/internal/record"
)

// RecordsAction represents the action selected on the records screen
type RecordsAction int

const (
	// RecordsActionNew opens the entry form for the next scan
	RecordsActionNew RecordsAction = iota
	// RecordsActionSaveLast saves the most recent record as CSV
	RecordsActionSaveLast
	// RecordsActionSaveAll saves every record as CSV
	RecordsActionSaveAll
	// RecordsActionSaveWorkbook saves every record as XLSX
	RecordsActionSaveWorkbook
	// RecordsActionQuit exits the application
	RecordsActionQuit
)

const (
	actionNew          = "new"
	actionSaveLast     = "save_last"
	actionSaveAll      = "save_all"
	actionSaveWorkbook = "save_workbook"
	actionQuit         = "quit"
)

// RecordsScreen lists the session records and offers the download actions
type RecordsScreen struct {
	form      *huh.Form
	records   []record.DoseRecord
	notice    components.Notice
	action    string
	done      bool
	cancelled bool
	width     int
	height    int
}

// NewRecordsScreen creates the records screen. The single-record save is
// offered only when hasLast is true, the full exports only when records exist.
func NewRecordsScreen(records []record.DoseRecord, hasLast bool, notice components.Notice) *RecordsScreen {
	s := &RecordsScreen{
		records: records,
		notice:  notice,
		action:  actionNew,
	}

	options := []huh.Option[string]{huh.NewOption("次の記録を入力する", actionNew)}
	if hasLast {
		options = append(options, huh.NewOption("この記録をCSV保存", actionSaveLast))
	}
	if len(records) > 0 {
		options = append(options,
			huh.NewOption(fmt.Sprintf("全記録をCSVでダウンロード (%s)", export.AllFilename), actionSaveAll),
			huh.NewOption(fmt.Sprintf("全記録をExcelで保存 (%s)", export.AllWorkbookFilename), actionSaveWorkbook),
		)
	}
	options = append(options, huh.NewOption("終了する", actionQuit))

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("action").
				Title("操作を選択してください").
				Options(options...).
				Value(&s.action),
		),
	).WithShowHelp(false)

	return s
}

// Init implements tea.Model
func (s *RecordsScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *RecordsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, nil
		case "esc":
			s.action = actionQuit
			s.done = true
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.done = true
	}

	return s, cmd
}

// View implements tea.Model
func (s *RecordsScreen) View() string {
	title := components.TitleStyle.Render(fmt.Sprintf("記録一覧 (%d件)", len(s.records)))

	parts := []string{title}
	if n := s.notice.View(); n != "" {
		parts = append(parts, n, "")
	}
	parts = append(parts,
		components.RecordsTable(s.records),
		"",
		s.form.View(),
		"",
		components.HintStyle.Render("Enter: 選択 | Esc: 終了"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Done returns true if an action was selected
func (s *RecordsScreen) Done() bool { return s.done }

// Cancelled returns true if the user pressed ctrl+c
func (s *RecordsScreen) Cancelled() bool { return s.cancelled }

// Action returns the selected action
func (s *RecordsScreen) Action() RecordsAction {
	switch s.action {
	case actionSaveLast:
		return RecordsActionSaveLast
	case actionSaveAll:
		return RecordsActionSaveAll
	case actionSaveWorkbook:
		return RecordsActionSaveWorkbook
	case actionQuit:
		return RecordsActionQuit
	default:
		return RecordsActionNew
	}
}
