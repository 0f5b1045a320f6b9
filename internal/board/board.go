// Package board holds the in-memory kanban state of the deal pipeline and
// resolves drag and drop gestures into the minimal set of position writes
package board

import (
	"log/slog"
	"slices"

	"github.com/thenoetrevino/rolodex/internal/models"
)

// Manager holds the ordered deals of every stage. It is not safe for
// concurrent use; the TUI drives it from its event loop.
type Manager struct {
	columns [][]models.Deal // indexed by models.Stage.Index()
	active  string
	version int
}

// Result describes one applied drag
type Result struct {
	// Moved is the dragged deal
	Moved string
	From  models.Stage
	To    models.Stage

	// Changes lists every deal whose stage or position differs from before
	// the drag, ordered by stage then position
	Changes []models.PositionUpdate

	snapshot [][]models.Deal
	version  int
}

// New creates a manager holding deals
func New(deals []models.Deal) *Manager {
	m := &Manager{}
	m.Replace(deals)
	return m
}

// Values copies deals out of the pointer slices the services return
func Values(deals []*models.Deal) []models.Deal {
	out := make([]models.Deal, 0, len(deals))
	for _, d := range deals {
		if d != nil {
			out = append(out, *d)
		}
	}
	return out
}

// Replace swaps the whole board for server truth. Deals are grouped by stage
// and ordered by position; deals in an unknown stage are dropped.
func (m *Manager) Replace(deals []models.Deal) {
	columns := make([][]models.Deal, len(models.Stages))
	for _, d := range deals {
		i := d.Stage.Index()
		if i < 0 {
			slog.Warn("dropping deal with unknown stage", "deal", d.ID, "stage", d.Stage)
			continue
		}
		columns[i] = append(columns[i], d)
	}
	for _, col := range columns {
		slices.SortStableFunc(col, func(a, b models.Deal) int { return a.Position - b.Position })
	}

	m.columns = columns
	m.active = ""
	m.version++
}

// DragStart records the lifted card. Unknown ids are ignored.
func (m *Manager) DragStart(id string) {
	if _, _, ok := m.locate(id); ok {
		m.active = id
	}
}

// Active returns the id of the lifted card, if any
func (m *Manager) Active() string {
	return m.active
}

// Cancel drops the lifted card without moving it
func (m *Manager) Cancel() {
	m.active = ""
}

// DragEnd drops activeID onto overID, which names either a stage column or
// another card. The board changes immediately; the returned Result carries
// the writes to persist and what Rollback needs to undo them. Any drop that
// does not resolve cleanly is a no-op and reports false.
func (m *Manager) DragEnd(activeID, overID string) (Result, bool) {
	defer m.Cancel()

	if overID == "" {
		return Result{}, false
	}
	src, from, ok := m.locate(activeID)
	if !ok {
		return Result{}, false
	}

	dest, to := -1, -1
	if stage := models.Stage(overID); stage.Valid() {
		dest = stage.Index()
	} else {
		dest, to, ok = m.locate(overID)
		if !ok {
			return Result{}, false
		}
	}

	if src == dest && (to < 0 || to == from) {
		// Dropped on its own column or on itself
		return Result{}, false
	}

	snapshot := m.clone()

	if src == dest {
		m.columns[src] = move(m.columns[src], from, to)
	} else {
		d := m.columns[src][from]
		m.columns[src] = slices.Delete(m.columns[src], from, from+1)
		d.Stage = models.Stages[dest]
		if to < 0 {
			m.columns[dest] = append(m.columns[dest], d)
		} else {
			m.columns[dest] = slices.Insert(m.columns[dest], to, d)
		}
	}

	m.renumber()
	m.version++

	return Result{
		Moved:    activeID,
		From:     models.Stages[src],
		To:       models.Stages[dest],
		Changes:  diff(snapshot, m.columns),
		snapshot: snapshot,
		version:  m.version,
	}, true
}

// Rollback restores the board as it was before the drag that produced r. It
// refuses, and reports false, once any later change has been applied.
func (m *Manager) Rollback(r Result) bool {
	if r.snapshot == nil || r.version != m.version {
		return false
	}
	m.columns = r.snapshot
	m.active = ""
	m.version++
	return true
}

// Stage returns a copy of the deals in one stage, in order
func (m *Manager) Stage(stage models.Stage) []models.Deal {
	i := stage.Index()
	if i < 0 {
		return nil
	}
	return slices.Clone(m.columns[i])
}

// Deals returns every deal in board order
func (m *Manager) Deals() []models.Deal {
	var out []models.Deal
	for _, col := range m.columns {
		out = append(out, col...)
	}
	return out
}

// Find returns the deal with id
func (m *Manager) Find(id string) (models.Deal, bool) {
	s, i, ok := m.locate(id)
	if !ok {
		return models.Deal{}, false
	}
	return m.columns[s][i], true
}

// Index returns the stage and column index of deal id. The index is the
// display order, which differs from the stored position until the next drag
// renumbers the stage.
func (m *Manager) Index(id string) (models.Stage, int, bool) {
	s, i, ok := m.locate(id)
	if !ok {
		return "", -1, false
	}
	return models.Stages[s], i, true
}

// StageValue sums the values of the deals in a stage
func (m *Manager) StageValue(stage models.Stage) int64 {
	var total int64
	for _, d := range m.Stage(stage) {
		if d.Value != nil {
			total += *d.Value
		}
	}
	return total
}

func (m *Manager) locate(id string) (stage, index int, ok bool) {
	if id == "" {
		return -1, -1, false
	}
	for s, col := range m.columns {
		for i := range col {
			if col[i].ID == id {
				return s, i, true
			}
		}
	}
	return -1, -1, false
}

// renumber sets every position to the deal's index within its stage
func (m *Manager) renumber() {
	for _, col := range m.columns {
		for i := range col {
			col[i].Position = i
		}
	}
}

func (m *Manager) clone() [][]models.Deal {
	out := make([][]models.Deal, len(m.columns))
	for i, col := range m.columns {
		out[i] = slices.Clone(col)
	}
	return out
}

// move removes the element at from and reinserts it at to
func move(col []models.Deal, from, to int) []models.Deal {
	d := col[from]
	col = slices.Delete(col, from, from+1)
	return slices.Insert(col, to, d)
}

// diff returns the rows of after whose stage or position differs from before
func diff(before, after [][]models.Deal) []models.PositionUpdate {
	type place struct {
		stage    models.Stage
		position int
	}
	prev := make(map[string]place)
	for _, col := range before {
		for _, d := range col {
			prev[d.ID] = place{d.Stage, d.Position}
		}
	}

	var changes []models.PositionUpdate
	for _, col := range after {
		for _, d := range col {
			if p, ok := prev[d.ID]; ok && p.stage == d.Stage && p.position == d.Position {
				continue
			}
			changes = append(changes, models.PositionUpdate{ID: d.ID, Stage: d.Stage, Position: d.Position})
		}
	}
	return changes
}
