// Package styles holds the lipgloss styles shared by CLI output
package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/rolodex/internal/models"
)

// Palette
const (
	accent  = "#7D56F4"
	title   = "#FAFAFA"
	subtle  = "#6C6C6C"
	normal  = "#DDDDDD"
	success = "#04B575"
	danger  = "#FF5F87"
	warning = "#FFB454"
)

var (
	// Card styles
	CardWidth = 80
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(accent)).
			Padding(1, 2).
			Width(CardWidth)

	// Text styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(title))
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(subtle))
	LabelStyle = lipgloss.NewStyle(). // For field labels like "Stage:", "Value:"
			Bold(true).
			Foreground(lipgloss.Color(accent))
	ValueStyle = lipgloss.NewStyle(). // For field values
			Foreground(lipgloss.Color(normal))
	SectionStyle = lipgloss.NewStyle(). // For section headers like "Deals", "Activity"
			Foreground(lipgloss.Color(accent)).
			Bold(true).
			MarginTop(1)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(success))
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(danger))
	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(warning))
)

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// Field renders "Label: value"
func Field(label, value string) string {
	return LabelStyle.Render(label+":") + " " + ValueStyle.Render(value)
}

// StageChip renders a stage name in the color of its outcome
func StageChip(stage models.Stage) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent))
	switch stage {
	case models.StageWon:
		style = style.Foreground(lipgloss.Color(success))
	case models.StageLost:
		style = style.Foreground(lipgloss.Color(danger))
	}
	return style.Render("[" + string(stage) + "]")
}

// Money formats a whole-unit amount with thousands separators, or "-" when
// the amount is unknown
func Money(v *int64) string {
	if v == nil {
		return "-"
	}
	return "$" + thousands(*v)
}

func thousands(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := fmt.Sprintf("%d", v)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
