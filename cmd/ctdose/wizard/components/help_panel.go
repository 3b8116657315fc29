package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/ctdose/cmd/ctdose/wizard/help"
	"github.com/mrsinham/ctdose/internal/checklist"
)

// minHelpWidth keeps the panel readable on narrow terminals.
const minHelpWidth = 30

var helpBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(lipgloss.Color("63")).
	PaddingLeft(1)

// HelpPanel shows the help text of the focused entry field. On the
// checklist it also shows how many items of the current mode are confirmed.
type HelpPanel struct {
	field     string
	mode      checklist.Mode
	confirmed int
	width     int
}

// NewHelpPanel creates a help panel for the base checklist.
func NewHelpPanel() *HelpPanel {
	return &HelpPanel{width: 60}
}

// SetField selects the field key whose help is shown.
func (h *HelpPanel) SetField(field string) {
	h.field = field
}

// SetChecklist records the contrast label and the confirmed labels of the
// form. Labels outside the mode's checklist are not counted.
func (h *HelpPanel) SetChecklist(contrast string, checked []string) {
	mode, err := checklist.ParseMode(contrast)
	if err != nil {
		mode = checklist.WithoutContrast
	}
	items := checklist.Compose(mode)
	h.mode = mode
	h.confirmed = len(items) - len(checklist.Missing(items, checklist.StateFromChecked(checked)))
}

// SetWidth sets the panel width, never below minHelpWidth.
func (h *HelpPanel) SetWidth(width int) {
	h.width = max(width, minHelpWidth)
}

// Progress returns the confirmed and total item counts of the checklist.
func (h *HelpPanel) Progress() (confirmed, total int) {
	return h.confirmed, len(checklist.Compose(h.mode))
}

// View renders the panel in the same layout as Notice: a styled first line
// followed by indented detail lines.
func (h *HelpPanel) View() string {
	style := helpBoxStyle.Width(h.width - 2)

	text, ok := help.Texts[h.field]
	if !ok {
		return style.Render(HintStyle.Render("項目を選択するとヘルプが表示されます"))
	}

	lines := []string{InfoStyle.Bold(true).Render(text.Title), text.Description}
	if h.field == "checklist" {
		confirmed, total := h.Progress()
		progress := fmt.Sprintf("%s: %d / %d 項目確認済み", h.mode, confirmed, total)
		if confirmed == total {
			lines = append(lines, SuccessStyle.Render(progress))
		} else {
			lines = append(lines, ErrorStyle.Render(progress))
		}
	}
	for _, d := range strings.Split(text.Details, "\n") {
		if d = strings.TrimSpace(d); d != "" {
			lines = append(lines, HintStyle.Render("  ・"+d))
		}
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
