package wizard

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/mrsinham/ctdose/cmd/ctdose/wizard/components"
	"github.com/mrsinham/ctdose/cmd/ctdose/wizard/screens"
	"github.com/mrsinham/ctdose/cmd/ctdose/wizard/types"
	"github.com/mrsinham/ctdose/internal/export"
	"github.com/mrsinham/ctdose/internal/record"
)

// Phase represents the current phase/screen of the wizard.
type Phase int

const (
	PhaseEntry Phase = iota
	PhaseRecords
	PhaseConfirmQuit
)

// Messages shown after a submission.
const (
	MsgIncompleteChecklist = "チェックリストをすべて完了してください！"
	MsgRecordAdded         = "記録が追加されました！"
)

var errNoLastRecord = errors.New("no record has been submitted yet")

// Wizard is the main orchestrator for the interactive session.
type Wizard struct {
	session  *record.Session
	settings Settings
	logger   *zap.Logger
	now      func() time.Time

	draft types.EntryDraft
	phase Phase

	entryScreen   *screens.EntryScreen
	recordsScreen *screens.RecordsScreen

	confirmForm *huh.Form
	confirmQuit bool

	// records count covered by the last full export
	exported int

	width  int
	height int

	finished bool
}

// NewWizard creates a wizard over session. draft prefills the first entry
// form and may be nil.
func NewWizard(session *record.Session, settings Settings, draft *types.EntryDraft, logger *zap.Logger) *Wizard {
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &Wizard{
		session:  session,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
	if draft != nil {
		w.draft = *draft
	}
	if w.draft.Contrast == "" {
		w.draft.Contrast = settings.DefaultContrast.String()
	}

	w.transitionToEntry(components.Notice{})
	return w
}

// Init implements tea.Model.
func (w *Wizard) Init() tea.Cmd {
	return w.entryScreen.Init()
}

// Update implements tea.Model.
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = wsm.Width
		w.height = wsm.Height
	}

	switch w.phase {
	case PhaseEntry:
		return w.updateEntry(msg)
	case PhaseRecords:
		return w.updateRecords(msg)
	case PhaseConfirmQuit:
		return w.updateConfirmQuit(msg)
	}

	return w, nil
}

// View implements tea.Model.
func (w *Wizard) View() string {
	if w.finished {
		return ""
	}

	switch w.phase {
	case PhaseEntry:
		return w.entryScreen.View()
	case PhaseRecords:
		return w.recordsScreen.View()
	case PhaseConfirmQuit:
		return w.viewConfirmQuit()
	}

	return ""
}

// transitionToEntry shows the entry form bound to the current draft.
func (w *Wizard) transitionToEntry(notice components.Notice) tea.Cmd {
	w.phase = PhaseEntry
	w.entryScreen = screens.NewEntryScreen(&w.draft, notice)
	return w.entryScreen.Init()
}

// updateEntry handles updates in the entry phase.
func (w *Wizard) updateEntry(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.entryScreen.Update(msg)
	if es, ok := model.(*screens.EntryScreen); ok {
		w.entryScreen = es
	}

	if w.entryScreen.Quit() {
		return w.requestQuit()
	}

	if w.entryScreen.Cancelled() {
		return w, w.transitionToRecords(components.Notice{})
	}

	if w.entryScreen.Done() {
		notice, ok := w.submit()
		if !ok {
			return w, w.transitionToEntry(notice)
		}
		w.draft.ClearPatient()
		return w, w.transitionToRecords(notice)
	}

	return w, cmd
}

// submit hands the current draft to the session and returns the notice to
// show. ok is false when the submission was rejected.
func (w *Wizard) submit() (notice components.Notice, ok bool) {
	fields, err := ToFields(w.draft)
	if err != nil {
		return components.Notice{Kind: components.NoticeError, Message: err.Error()}, false
	}
	mode, state, err := ToSubmission(w.draft)
	if err != nil {
		return components.Notice{Kind: components.NoticeError, Message: err.Error()}, false
	}

	if _, err := w.session.Submit(fields, mode, state); err != nil {
		var verr *record.ValidationError
		if errors.As(err, &verr) {
			return components.Notice{
				Kind:    components.NoticeError,
				Message: MsgIncompleteChecklist,
				Details: verr.Missing,
			}, false
		}
		return components.Notice{Kind: components.NoticeError, Message: err.Error()}, false
	}

	return components.Notice{Kind: components.NoticeSuccess, Message: MsgRecordAdded}, true
}

// transitionToRecords shows the record list and download actions.
func (w *Wizard) transitionToRecords(notice components.Notice) tea.Cmd {
	w.phase = PhaseRecords
	_, hasLast := w.session.Last()
	w.recordsScreen = screens.NewRecordsScreen(w.session.Records(), hasLast, notice)
	return w.recordsScreen.Init()
}

// updateRecords handles updates in the records phase.
func (w *Wizard) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.recordsScreen.Update(msg)
	if rs, ok := model.(*screens.RecordsScreen); ok {
		w.recordsScreen = rs
	}

	if w.recordsScreen.Cancelled() {
		return w.requestQuit()
	}

	if !w.recordsScreen.Done() {
		return w, cmd
	}

	switch w.recordsScreen.Action() {
	case screens.RecordsActionNew:
		return w, w.transitionToEntry(components.Notice{})
	case screens.RecordsActionSaveLast:
		return w, w.transitionToRecords(noticeFor(w.saveLast()))
	case screens.RecordsActionSaveAll:
		return w, w.transitionToRecords(noticeFor(w.saveAll()))
	case screens.RecordsActionSaveWorkbook:
		return w, w.transitionToRecords(noticeFor(w.saveWorkbook()))
	case screens.RecordsActionQuit:
		return w.requestQuit()
	}

	return w, cmd
}

func noticeFor(msg string, err error) components.Notice {
	if err != nil {
		return components.Notice{Kind: components.NoticeError, Message: "保存に失敗しました: " + err.Error()}
	}
	return components.Notice{Kind: components.NoticeSuccess, Message: msg}
}

// saveLast writes the most recent record as ct_record_<today>.csv.
func (w *Wizard) saveLast() (string, error) {
	last, ok := w.session.Last()
	if !ok {
		return "", errNoLastRecord
	}
	data, err := export.EncodeSingle(last)
	if err != nil {
		return "", err
	}
	return w.write(export.SingleFilename(w.now()), data)
}

// saveAll writes every record as ct_dose_records.csv.
func (w *Wizard) saveAll() (string, error) {
	records := w.session.Records()
	data, err := export.EncodeCSV(records)
	if err != nil {
		return "", err
	}
	msg, err := w.write(export.AllFilename, data)
	if err == nil {
		w.exported = len(records)
	}
	return msg, err
}

// saveWorkbook writes every record as ct_dose_records.xlsx.
func (w *Wizard) saveWorkbook() (string, error) {
	records := w.session.Records()
	data, err := export.EncodeXLSX(records)
	if err != nil {
		return "", err
	}
	msg, err := w.write(export.AllWorkbookFilename, data)
	if err == nil {
		w.exported = len(records)
	}
	return msg, err
}

func (w *Wizard) write(name string, data []byte) (string, error) {
	path, err := export.Save(w.settings.OutputDir, name, data)
	if err != nil {
		w.logger.Error("export failed", zap.String("file", name), zap.Error(err))
		return "", err
	}
	w.logger.Info("export written", zap.String("file", path), zap.Int("bytes", len(data)))
	return fmt.Sprintf("保存しました: %s (%s)", path, humanize.Bytes(uint64(len(data)))), nil
}

// Unsaved returns the number of records not covered by a full export.
func (w *Wizard) Unsaved() int {
	return w.session.Len() - w.exported
}

// requestQuit exits immediately when everything is exported, otherwise asks
// for confirmation first.
func (w *Wizard) requestQuit() (tea.Model, tea.Cmd) {
	if w.Unsaved() == 0 {
		w.finished = true
		return w, tea.Quit
	}

	w.phase = PhaseConfirmQuit
	w.confirmQuit = false
	w.confirmForm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm_quit").
				Title(fmt.Sprintf("保存していない記録が%d件あります。終了しますか？", w.Unsaved())).
				Description("終了すると保存していない記録は失われます。").
				Affirmative("終了する").
				Negative("戻る").
				Value(&w.confirmQuit),
		),
	).WithShowHelp(false)

	return w, w.confirmForm.Init()
}

// updateConfirmQuit handles updates in the quit confirmation phase.
func (w *Wizard) updateConfirmQuit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		return w, w.transitionToRecords(components.Notice{})
	}

	form, cmd := w.confirmForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.confirmForm = f
	}

	if w.confirmForm.State == huh.StateCompleted {
		if w.confirmQuit {
			w.logger.Warn("session closed with unsaved records", zap.Int("unsaved", w.Unsaved()))
			w.finished = true
			return w, tea.Quit
		}
		return w, w.transitionToRecords(components.Notice{})
	}

	return w, cmd
}

// viewConfirmQuit renders the quit confirmation dialog.
func (w *Wizard) viewConfirmQuit() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		components.TitleStyle.Render("終了の確認"),
		"",
		w.confirmForm.View(),
		"",
		components.HintStyle.Render("Enter: 決定 | Esc: 戻る"),
	)
}

// Run starts the interactive session.
func Run(session *record.Session, settings Settings, draft *types.EntryDraft, logger *zap.Logger) error {
	w := NewWizard(session, settings, draft, logger)
	p := tea.NewProgram(w, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}

	return nil
}
