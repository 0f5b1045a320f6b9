// Package components renders the pieces of the deal board: cards, stage
// columns and the status bar
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/rolodex/internal/tui/theme"
)

const (
	// ColumnWidth is the outer width of a stage column
	ColumnWidth = 30

	// CardHeight is the rendered height of a card, borders included
	CardHeight = 4

	cardTitleMaxLength = 22
)

// These are cached to avoid recomputing on every redraw.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Highlight)).
			Padding(0, 1)

	ColumnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Subtle)).
			Width(ColumnWidth-2).
			PaddingBottom(1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Width(ColumnWidth - 4)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle))

	EmptyStyle = SubtleStyle.
			Italic(true).
			Padding(1, 0)
)
