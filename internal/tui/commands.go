package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/rolodex/internal/board"
	"github.com/thenoetrevino/rolodex/internal/models"
)

// boardLoadedMsg carries server truth for the whole board
type boardLoadedMsg struct {
	deals []*models.Deal
	err   error
}

// syncedMsg reports the outcome of saving one drag
type syncedMsg struct {
	result board.Result
	err    error
}

func (m Model) loadBoard() tea.Cmd {
	ctx, deals, session := m.ctx, m.deals, m.session
	return func() tea.Msg {
		list, err := deals.Board(ctx, session)
		return boardLoadedMsg{deals: list, err: err}
	}
}

// syncPositions saves the writes of one drag. The batch is never cancelled
// once issued.
func (m Model) syncPositions(result board.Result) tea.Cmd {
	ctx, deals, session := m.ctx, m.deals, m.session
	return func() tea.Msg {
		err := deals.SyncPositions(ctx, session, result.Changes)
		if err != nil {
			slog.Error("failed to save board move", "deal", result.Moved, "from", result.From, "to", result.To, "error", err)
		}
		return syncedMsg{result: result, err: err}
	}
}
