package components

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	HintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)
)

// NoticeKind selects how a Notice is rendered.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeSuccess
	NoticeError
	NoticeInfo
)

// Notice is a one-line message shown above a form.
type Notice struct {
	Kind    NoticeKind
	Message string
	Details []string
}

// View renders the notice, or "" for NoticeNone.
func (n Notice) View() string {
	var style lipgloss.Style
	switch n.Kind {
	case NoticeSuccess:
		style = SuccessStyle
	case NoticeError:
		style = ErrorStyle
	case NoticeInfo:
		style = InfoStyle
	default:
		return ""
	}

	lines := []string{style.Render(n.Message)}
	for _, d := range n.Details {
		lines = append(lines, HintStyle.Render("  ・"+d))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
