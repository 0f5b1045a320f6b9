package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/rolodex/internal/cli/styles"
	"github.com/thenoetrevino/rolodex/internal/models"
	"github.com/thenoetrevino/rolodex/internal/tui/theme"
)

// ColumnProps describes one stage column
type ColumnProps struct {
	Stage models.Stage
	Deals []models.Deal
	Total int64

	// Selected marks the column under the cursor; Cursor is the index of the
	// selected card, and may equal len(Deals) while a card is lifted, which
	// means "drop at the end"
	Selected bool
	Cursor   int

	// Lifted is the id of the card being dragged, if any
	Lifted string

	// Height is the total box height, 0 for auto
	Height int

	// Offset is the index of the first visible card
	Offset int
}

// RenderColumn renders a stage with its deal count, value and cards
//
//	{Stage} ({count})
//	{total value}
//	▲ (if scrolled down)
//	{Card 1}
//	...
//	▼ (if more cards below)
func RenderColumn(p ColumnProps) string {
	header := TitleStyle.Render(fmt.Sprintf("%s (%d)", p.Stage, len(p.Deals)))
	total := p.Total
	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString(SubtleStyle.Padding(0, 1).Render(styles.Money(&total)) + "\n")

	visible := len(p.Deals)
	if p.Height > 0 {
		const overhead = 7 // borders, padding, header, value and both indicators
		visible = max((p.Height-overhead)/CardHeight, 1)
	}
	offset := min(max(p.Offset, 0), max(len(p.Deals)-1, 0))
	end := min(offset+visible, len(p.Deals))

	if offset > 0 {
		b.WriteString(SubtleStyle.Render("▲ more above") + "\n")
	} else {
		b.WriteString("\n")
	}

	if len(p.Deals) == 0 && !(p.Selected && p.Lifted != "") {
		b.WriteString(EmptyStyle.Render("No deals"))
	}
	for i := offset; i < end; i++ {
		d := p.Deals[i]
		selected := p.Selected && i == p.Cursor
		b.WriteString(RenderCard(d, selected, d.ID == p.Lifted) + "\n")
	}
	if p.Selected && p.Lifted != "" && p.Cursor >= len(p.Deals) {
		b.WriteString(dropMarker() + "\n")
	}

	if end < len(p.Deals) {
		b.WriteString(SubtleStyle.Render("▼ more below"))
	}

	style := ColumnStyle
	if p.Selected {
		style = style.BorderForeground(lipgloss.Color(theme.SelectedBorder))
	}
	if p.Height > 0 {
		style = style.Height(p.Height - 2)
	}
	return style.Render(b.String())
}

func dropMarker() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.SelectedBorder)).
		Render(strings.Repeat("─", ColumnWidth-6) + " drop")
}
