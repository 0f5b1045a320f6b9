// Package notifications renders the one line messages shown under the board
package notifications

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/rolodex/internal/tui/theme"
)

// Severity orders board messages from a drag hint up to a failed save
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

// String returns the lowercase name of the severity
func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

type style struct {
	icon       string
	foreground string
	background string
}

func (s Severity) style() style {
	switch s {
	case Warning:
		return style{icon: "⚠", foreground: theme.WarningFg, background: theme.WarningBg}
	case Error:
		return style{icon: "✕", foreground: theme.ErrorFg, background: theme.ErrorBg}
	default:
		return style{icon: "•", foreground: theme.InfoFg, background: theme.InfoBg}
	}
}

// RenderInline renders a compact one line notification for the status bar
func RenderInline(severity Severity, message string) string {
	st := severity.style()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(st.foreground)).
		Background(lipgloss.Color(st.background)).
		Padding(0, 1).
		Render(st.icon + " " + message)
}
