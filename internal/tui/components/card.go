package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/rolodex/internal/cli/styles"
	"github.com/thenoetrevino/rolodex/internal/models"
	"github.com/thenoetrevino/rolodex/internal/tui/theme"
)

// RenderCard renders a single deal as a card
//
//	┌────────────────────────┐
//	│ {Title}                │
//	│ {value} · {contact}    │
//	└────────────────────────┘
func RenderCard(deal models.Deal, selected, lifted bool) string {
	bg := theme.CardBg
	switch {
	case lifted:
		bg = theme.LiftedBg
	case selected:
		bg = theme.SelectedBg
	}

	title := deal.Title
	if len([]rune(title)) > cardTitleMaxLength {
		title = string([]rune(title)[:cardTitleMaxLength]) + "..."
	}
	if lifted {
		title = "↕ " + title
	}

	meta := styles.Money(deal.Value)
	if deal.ContactName != "" {
		meta += " · " + deal.ContactName
	}

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n" +
		SubtleStyle.Background(lipgloss.Color(bg)).Render(meta)

	border := theme.Subtle
	if selected || lifted {
		border = theme.SelectedBorder
	}
	return CardStyle.
		BorderForeground(lipgloss.Color(border)).
		BorderBackground(lipgloss.Color(bg)).
		Background(lipgloss.Color(bg)).
		Render(content)
}
