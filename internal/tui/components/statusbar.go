package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusBarProps describes the footer line
type StatusBarProps struct {
	Width        int
	Notification string // pre-rendered, may be empty
	Pending      int    // position batches still in flight
	Help         string
}

// RenderStatusBar renders the footer with a notification or title on the
// left and the sync state plus help hint on the right
func RenderStatusBar(props StatusBarProps) string {
	left := props.Notification
	if left == "" {
		left = SubtleStyle.Render("Rolodex - Pipeline")
	}

	right := props.Help
	if props.Pending > 0 {
		right = "saving… " + right
	}
	rightRendered := SubtleStyle.Render(right)

	gap := max(props.Width-lipgloss.Width(left)-lipgloss.Width(rightRendered), 1)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), rightRendered)
}
