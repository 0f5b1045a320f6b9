// Package state holds the cursor, viewport and notification state of the
// board TUI. Deal order itself lives in board.Manager.
package state

import "github.com/thenoetrevino/rolodex/internal/tui/components"

// Mode represents the current interaction mode of the TUI
type Mode int

const (
	NormalMode Mode = iota // Default navigation mode
	HelpMode               // Displaying help screen
	DetailMode             // Showing the selected deal
)

// UIState manages navigation (column and card selection), terminal
// dimensions and the current interaction mode
type UIState struct {
	selectedColumn int
	selectedDeal   int

	width  int
	height int

	mode Mode

	// viewportOffset is the index of the leftmost visible column
	viewportOffset int
	viewportSize   int

	// scrollOffsets is the index of the first visible card per column
	scrollOffsets map[int]int
}

// NewUIState creates a new UIState with default values
func NewUIState() *UIState {
	return &UIState{
		mode:          NormalMode,
		viewportSize:  1,
		scrollOffsets: make(map[int]int),
	}
}

func (s *UIState) SelectedColumn() int { return s.selectedColumn }

// SetSelectedColumn updates the selected column and keeps it in view
func (s *UIState) SetSelectedColumn(index int) {
	s.selectedColumn = index
	if index < s.viewportOffset {
		s.viewportOffset = index
	}
	if index >= s.viewportOffset+s.viewportSize {
		s.viewportOffset = index - s.viewportSize + 1
	}
}

func (s *UIState) SelectedDeal() int { return s.selectedDeal }

// SetSelectedDeal updates the selected card and scrolls its column so the
// card stays visible
func (s *UIState) SetSelectedDeal(index int) {
	s.selectedDeal = index
	visible := s.VisibleCards()
	offset := s.scrollOffsets[s.selectedColumn]
	if index < offset {
		offset = index
	}
	if index >= offset+visible {
		offset = index - visible + 1
	}
	s.scrollOffsets[s.selectedColumn] = max(offset, 0)
}

func (s *UIState) ScrollOffset(column int) int { return s.scrollOffsets[column] }

func (s *UIState) Width() int  { return s.width }
func (s *UIState) Height() int { return s.height }

// SetSize records the terminal size and recalculates how many columns fit
func (s *UIState) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.viewportSize = max(width/components.ColumnWidth, 1)
	s.SetSelectedColumn(s.selectedColumn)
}

func (s *UIState) ViewportOffset() int { return s.viewportOffset }
func (s *UIState) ViewportSize() int   { return s.viewportSize }

// ContentHeight is the height available to columns, leaving the status bar
func (s *UIState) ContentHeight() int {
	if s.height == 0 {
		return 0
	}
	return max(s.height-2, 0)
}

// VisibleCards is how many cards fit in a column at the current height
func (s *UIState) VisibleCards() int {
	h := s.ContentHeight()
	if h == 0 {
		return 1 << 20
	}
	return max((h-7)/components.CardHeight, 1)
}

func (s *UIState) Mode() Mode        { return s.mode }
func (s *UIState) SetMode(mode Mode) { s.mode = mode }
