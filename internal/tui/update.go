package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/rolodex/internal/board"
	"github.com/thenoetrevino/rolodex/internal/models"
	"github.com/thenoetrevino/rolodex/internal/tui/notifications"
	"github.com/thenoetrevino/rolodex/internal/tui/state"
)

// Update handles all messages and updates the model accordingly
// Required by tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.UiState.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case boardLoadedMsg:
		return m.handleBoardLoaded(msg)

	case syncedMsg:
		return m.handleSynced(msg)

	case tea.KeyMsg:
		m.NotificationState.Clear()
		switch m.UiState.Mode() {
		case state.HelpMode, state.DetailMode:
			if msg.Type == tea.KeyCtrlC {
				return m, tea.Quit
			}
			m.UiState.SetMode(state.NormalMode)
			return m, nil
		default:
			return m.handleNormalMode(msg)
		}
	}
	return m, nil
}

func (m Model) handleBoardLoaded(msg boardLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.NotificationState.Add(notifications.Error, "Could not load deals: "+msg.err.Error())
		return m, nil
	}
	m.Board.Replace(board.Values(msg.deals))
	m.loaded = true
	m.clampCursor()
	return m, nil
}

// handleSynced undoes a failed save. Rollback is refused once a later drag
// changed the board, in which case server truth is reloaded instead.
func (m Model) handleSynced(msg syncedMsg) (tea.Model, tea.Cmd) {
	m.pending--
	if msg.err == nil {
		return m, nil
	}

	if m.Board.Rollback(msg.result) {
		m.clampCursor()
		m.NotificationState.Add(notifications.Error, "Move not saved, reverted: "+msg.err.Error())
		return m, nil
	}
	m.NotificationState.Add(notifications.Warning, "Move not saved, reloading board")
	return m, m.loadBoard()
}

func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lifted := m.Board.Active() != ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.ShowHelp):
		m.UiState.SetMode(state.HelpMode)

	case key.Matches(msg, m.keys.ShowDetail):
		if _, ok := m.currentDeal(); ok {
			m.UiState.SetMode(state.DetailMode)
		}

	case key.Matches(msg, m.keys.Refresh):
		if !lifted {
			return m, m.loadBoard()
		}

	case key.Matches(msg, m.keys.PrevColumn):
		if col := m.UiState.SelectedColumn(); col > 0 {
			m.UiState.SetSelectedColumn(col - 1)
			m.clampCursor()
		}

	case key.Matches(msg, m.keys.NextColumn):
		if col := m.UiState.SelectedColumn(); col < len(models.Stages)-1 {
			m.UiState.SetSelectedColumn(col + 1)
			m.clampCursor()
		}

	case key.Matches(msg, m.keys.PrevDeal):
		m.UiState.SetSelectedDeal(m.UiState.SelectedDeal() - 1)
		m.clampCursor()

	case key.Matches(msg, m.keys.NextDeal):
		m.UiState.SetSelectedDeal(m.UiState.SelectedDeal() + 1)
		m.clampCursor()

	case key.Matches(msg, m.keys.Cancel):
		if lifted {
			id := m.Board.Active()
			m.Board.Cancel()
			m.follow(id)
		}

	case lifted && key.Matches(msg, m.keys.Drop):
		return m.drop()

	case !lifted && key.Matches(msg, m.keys.PickUp):
		if d, ok := m.currentDeal(); ok {
			m.Board.DragStart(d.ID)
			m.NotificationState.Add(notifications.Info, fmt.Sprintf("Moving %q, %s to drop", d.Title, m.keys.Drop.Help().Key))
		}
	}

	return m, nil
}

// drop lands the lifted card on the card under the cursor, or on the stage
// itself when the cursor is past the last card
func (m Model) drop() (tea.Model, tea.Cmd) {
	active := m.Board.Active()
	over := string(m.currentStage())
	if d, ok := m.currentDeal(); ok {
		over = d.ID
	}

	result, ok := m.Board.DragEnd(active, over)
	m.follow(active)
	if !ok {
		return m, nil
	}

	m.pending++
	return m, m.syncPositions(result)
}
