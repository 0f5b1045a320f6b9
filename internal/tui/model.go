// Package tui is the interactive deal board. Cards are lifted and dropped
// with the keyboard; the board moves immediately and the resulting position
// batch is saved in the background.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/rolodex/internal/auth"
	"github.com/thenoetrevino/rolodex/internal/board"
	"github.com/thenoetrevino/rolodex/internal/config"
	"github.com/thenoetrevino/rolodex/internal/models"
	dealservice "github.com/thenoetrevino/rolodex/internal/services/deal"
	"github.com/thenoetrevino/rolodex/internal/tui/state"
)

// Model represents the application state for the TUI
type Model struct {
	ctx     context.Context
	deals   dealservice.Service
	session *auth.Session

	Board             *board.Manager
	UiState           *state.UIState
	NotificationState *state.NotificationState

	keys KeyMap
	help help.Model

	// pending counts position batches still being saved
	pending int
	loaded  bool
}

// InitialModel creates the board model. The deals are loaded by Init.
func InitialModel(ctx context.Context, deals dealservice.Service, session *auth.Session, keys config.KeyMappings) Model {
	return Model{
		ctx:               ctx,
		deals:             deals,
		session:           session,
		Board:             board.New(nil),
		UiState:           state.NewUIState(),
		NotificationState: state.NewNotificationState(),
		keys:              NewKeyMap(keys),
		help:              help.New(),
	}
}

// Init loads the board from the server
// Required by tea.Model interface
func (m Model) Init() tea.Cmd {
	return m.loadBoard()
}

// Pending returns how many position batches are still being saved
func (m Model) Pending() int {
	return m.pending
}

// currentStage returns the stage of the selected column
func (m Model) currentStage() models.Stage {
	return models.Stages[m.UiState.SelectedColumn()]
}

// currentDeals returns the deals of the selected column
func (m Model) currentDeals() []models.Deal {
	return m.Board.Stage(m.currentStage())
}

// currentDeal returns the selected deal, if the cursor is on one
func (m Model) currentDeal() (models.Deal, bool) {
	deals := m.currentDeals()
	i := m.UiState.SelectedDeal()
	if i < 0 || i >= len(deals) {
		return models.Deal{}, false
	}
	return deals[i], true
}

// clampCursor keeps the selected card inside its column. While a card is
// lifted the cursor may sit one past the last card, meaning the column end.
func (m Model) clampCursor() {
	limit := len(m.currentDeals()) - 1
	if m.Board.Active() != "" {
		limit++
	}
	m.UiState.SetSelectedDeal(min(max(m.UiState.SelectedDeal(), 0), max(limit, 0)))
}

// follow moves the cursor onto deal id wherever it now sits
func (m Model) follow(id string) {
	stage, i, ok := m.Board.Index(id)
	if !ok {
		m.clampCursor()
		return
	}
	m.UiState.SetSelectedColumn(stage.Index())
	m.UiState.SetSelectedDeal(i)
}
