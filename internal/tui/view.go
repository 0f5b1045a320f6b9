package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/rolodex/internal/cli/styles"
	"github.com/thenoetrevino/rolodex/internal/models"
	"github.com/thenoetrevino/rolodex/internal/tui/components"
	"github.com/thenoetrevino/rolodex/internal/tui/notifications"
	"github.com/thenoetrevino/rolodex/internal/tui/state"
)

// View renders the current mode
// Required by tea.Model interface
func (m Model) View() string {
	switch m.UiState.Mode() {
	case state.HelpMode:
		return m.viewHelp()
	case state.DetailMode:
		return m.viewDetail()
	default:
		return m.viewBoard()
	}
}

func (m Model) viewBoard() string {
	if !m.loaded {
		return "Loading deals…\n" + m.footer()
	}

	start := m.UiState.ViewportOffset()
	end := min(start+m.UiState.ViewportSize(), len(models.Stages))
	height := m.UiState.ContentHeight()

	var columns []string
	for i := start; i < end; i++ {
		stage := models.Stages[i]
		selected := i == m.UiState.SelectedColumn()
		cursor := -1
		if selected {
			cursor = m.UiState.SelectedDeal()
		}
		columns = append(columns, components.RenderColumn(components.ColumnProps{
			Stage:    stage,
			Deals:    m.Board.Stage(stage),
			Total:    m.Board.StageValue(stage),
			Selected: selected,
			Cursor:   cursor,
			Lifted:   m.Board.Active(),
			Height:   height,
			Offset:   m.UiState.ScrollOffset(i),
		}))
	}

	left, right := " ", " "
	if start > 0 {
		left = "◀"
	}
	if end < len(models.Stages) {
		right = "▶"
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.JoinHorizontal(lipgloss.Top, columns...), right)

	if height > 0 {
		lines := strings.Split(board, "\n")
		if len(lines) > height {
			board = strings.Join(lines[:height], "\n")
		}
	}
	return board + "\n" + m.footer()
}

func (m Model) footer() string {
	var note string
	if n, ok := m.NotificationState.Current(); ok {
		note = notifications.RenderInline(n.Level, n.Message)
	}
	return components.RenderStatusBar(components.StatusBarProps{
		Width:        m.UiState.Width(),
		Notification: note,
		Pending:      m.pending,
		Help:         m.help.View(m.keys),
	})
}

func (m Model) viewHelp() string {
	m.help.ShowAll = true
	return styles.RenderCard(styles.TitleStyle.Render("Keys") + "\n\n" + m.help.View(m.keys))
}

func (m Model) viewDetail() string {
	d, ok := m.currentDeal()
	if !ok {
		return m.viewBoard()
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(d.Title) + "  " + styles.StageChip(d.Stage) + "\n\n")
	b.WriteString(styles.Field("Value", styles.Money(d.Value)) + "\n")
	if d.ContactName != "" {
		b.WriteString(styles.Field("Contact", d.ContactName) + "\n")
	}
	if d.CloseDate != nil {
		b.WriteString(styles.Field("Close date", d.CloseDate.Format(models.DateLayout)) + "\n")
	}
	width := max(min(m.UiState.Width()-8, 100), 40)
	b.WriteString("\n" + styles.Markdown(d.Description, width))
	return styles.RenderCard(b.String())
}
