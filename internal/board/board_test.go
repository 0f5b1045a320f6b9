package board

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/rolodex/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func deal(id string, stage models.Stage, pos int) models.Deal {
	return models.Deal{ID: id, Title: id, Stage: stage, Position: pos}
}

func ids(deals []models.Deal) []string {
	out := make([]string, 0, len(deals))
	for _, d := range deals {
		out = append(out, d.ID)
	}
	return out
}

// boardOf builds a board with sizes[i] deals in stage i, named "<stage><n>"
func boardOf(sizes []int) *Manager {
	var deals []models.Deal
	for s, n := range sizes {
		stage := models.Stages[s]
		for i := 0; i < n; i++ {
			deals = append(deals, deal(fmt.Sprintf("%s%d", stage, i), stage, i))
		}
	}
	return New(deals)
}

func contiguous(m *Manager) bool {
	for _, stage := range models.Stages {
		for i, d := range m.Stage(stage) {
			if d.Position != i || d.Stage != stage {
				return false
			}
		}
	}
	return true
}

// pick maps an arbitrary number onto one of the board's drop targets: every
// card id followed by every stage name
func pick(m *Manager, n int) string {
	targets := ids(m.Deals())
	for _, stage := range models.Stages {
		targets = append(targets, string(stage))
	}
	return targets[n%len(targets)]
}

// ============================================================================
// SCENARIOS
// ============================================================================

func TestDragEnd_SameStageReorder(t *testing.T) {
	m := New([]models.Deal{
		deal("A", models.StageLead, 0),
		deal("B", models.StageLead, 1),
		deal("C", models.StageLead, 2),
	})

	m.DragStart("C")
	assert.Equal(t, "C", m.Active())

	res, ok := m.DragEnd("C", "A")
	require.True(t, ok)
	assert.Empty(t, m.Active(), "Expected the drop to clear the active card")
	assert.Equal(t, []string{"C", "A", "B"}, ids(m.Stage(models.StageLead)))

	want := []models.PositionUpdate{
		{ID: "C", Stage: models.StageLead, Position: 0},
		{ID: "A", Stage: models.StageLead, Position: 1},
		{ID: "B", Stage: models.StageLead, Position: 2},
	}
	if diff := cmp.Diff(want, res.Changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}
}

func TestDragEnd_CrossStageInsertsBeforeTarget(t *testing.T) {
	m := New([]models.Deal{
		deal("A", models.StageLead, 0),
		deal("B", models.StageLead, 1),
		deal("X", models.StageQualified, 0),
	})

	res, ok := m.DragEnd("A", "X")
	require.True(t, ok)
	assert.Equal(t, []string{"B"}, ids(m.Stage(models.StageLead)))
	assert.Equal(t, []string{"A", "X"}, ids(m.Stage(models.StageQualified)))
	assert.Equal(t, models.StageLead, res.From)
	assert.Equal(t, models.StageQualified, res.To)

	want := []models.PositionUpdate{
		{ID: "B", Stage: models.StageLead, Position: 0},
		{ID: "A", Stage: models.StageQualified, Position: 0},
		{ID: "X", Stage: models.StageQualified, Position: 1},
	}
	if diff := cmp.Diff(want, res.Changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}
}

func TestDragEnd_DropOnColumnAppends(t *testing.T) {
	m := New([]models.Deal{
		deal("A", models.StageLead, 0),
		deal("X", models.StageWon, 0),
	})

	res, ok := m.DragEnd("A", string(models.StageWon))
	require.True(t, ok)
	assert.Equal(t, []string{"X", "A"}, ids(m.Stage(models.StageWon)))
	assert.Equal(t, []models.PositionUpdate{{ID: "A", Stage: models.StageWon, Position: 1}}, res.Changes)
}

func TestDragEnd_NoOps(t *testing.T) {
	initial := []models.Deal{
		deal("A", models.StageLead, 0),
		deal("B", models.StageLead, 1),
	}
	tests := []struct {
		name   string
		active string
		over   string
	}{
		{"no target", "A", ""},
		{"unknown active", "Z", "A"},
		{"unknown target", "A", "Z"},
		{"onto itself", "A", "A"},
		{"onto own column", "A", string(models.StageLead)},
		{"empty active", "", "B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(initial)
			m.DragStart(tt.active)
			_, ok := m.DragEnd(tt.active, tt.over)
			assert.False(t, ok)
			assert.Equal(t, []string{"A", "B"}, ids(m.Stage(models.StageLead)))
			assert.Empty(t, m.Active())
		})
	}
}

func TestDragStart_UnknownIgnored(t *testing.T) {
	m := New([]models.Deal{deal("A", models.StageLead, 0)})
	m.DragStart("nope")
	assert.Empty(t, m.Active())
}

func TestRollback(t *testing.T) {
	m := New([]models.Deal{
		deal("A", models.StageLead, 0),
		deal("B", models.StageLead, 1),
		deal("X", models.StageQualified, 0),
	})
	before := m.Deals()

	first, ok := m.DragEnd("A", "X")
	require.True(t, ok)
	assert.True(t, m.Rollback(first))
	if diff := cmp.Diff(before, m.Deals()); diff != "" {
		t.Errorf("rollback did not restore the board (-want +got):\n%s", diff)
	}
	assert.False(t, m.Rollback(first), "Expected a second rollback of the same drag to be refused")

	first, ok = m.DragEnd("A", "X")
	require.True(t, ok)
	_, ok = m.DragEnd("B", string(models.StageWon))
	require.True(t, ok)
	assert.False(t, m.Rollback(first), "Expected rollback to be refused after a later drag")
	assert.Equal(t, []string{"B"}, ids(m.Stage(models.StageWon)))

	assert.False(t, m.Rollback(Result{}))
}

func TestReplace_NormalizesOrder(t *testing.T) {
	m := New([]models.Deal{
		deal("C", models.StageProposal, 5),
		deal("A", models.StageProposal, 1),
		deal("B", models.StageProposal, 3),
		deal("Q", "Archived", 0),
	})
	assert.Equal(t, []string{"A", "B", "C"}, ids(m.Stage(models.StageProposal)))
	assert.Len(t, m.Deals(), 3, "Expected deals in unknown stages to be dropped")

	// Gaps left by deleted deals are written back on the next drag
	res, ok := m.DragEnd("C", "A")
	require.True(t, ok)
	assert.Equal(t, []models.PositionUpdate{
		{ID: "C", Stage: models.StageProposal, Position: 0},
		{ID: "B", Stage: models.StageProposal, Position: 2},
	}, res.Changes, "Expected A to be left out, it kept position 1")
}

func TestIndex_IgnoresStoredPosition(t *testing.T) {
	m := New([]models.Deal{
		deal("B", models.StageLead, 1),
		deal("C", models.StageLead, 2),
		deal("D", models.StageLead, 2),
	})

	for want, id := range []string{"B", "C", "D"} {
		stage, i, ok := m.Index(id)
		require.True(t, ok)
		assert.Equal(t, models.StageLead, stage)
		assert.Equal(t, want, i, "Expected %s at index %d", id, want)
	}
	_, _, ok := m.Index("Z")
	assert.False(t, ok)
}

func TestFindAndStageValue(t *testing.T) {
	v1, v2 := int64(100), int64(250)
	m := New([]models.Deal{
		{ID: "A", Stage: models.StageLead, Value: &v1},
		{ID: "B", Stage: models.StageLead, Position: 1, Value: &v2},
		{ID: "C", Stage: models.StageLead, Position: 2},
	})

	d, ok := m.Find("B")
	require.True(t, ok)
	assert.Equal(t, 1, d.Position)
	_, ok = m.Find("Z")
	assert.False(t, ok)

	assert.Equal(t, int64(350), m.StageValue(models.StageLead))
	assert.Nil(t, m.Stage("Archived"))
}

// ============================================================================
// PROPERTIES
// ============================================================================

func TestDragEnd_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	sizes := gen.SliceOfN(len(models.Stages), gen.IntRange(0, 5))
	choice := gen.IntRange(0, 1000)

	properties.Property("positions stay contiguous in every stage", prop.ForAll(
		func(sizes []int, a, o int) bool {
			m := boardOf(sizes)
			if len(m.Deals()) == 0 {
				return true
			}
			m.DragEnd(pick(m, a), pick(m, o))
			return contiguous(m)
		},
		sizes, choice, choice,
	))

	properties.Property("a drag never adds or loses deals", prop.ForAll(
		func(sizes []int, a, o int) bool {
			m := boardOf(sizes)
			if len(m.Deals()) == 0 {
				return true
			}
			before := map[string]bool{}
			for _, id := range ids(m.Deals()) {
				before[id] = true
			}
			m.DragEnd(pick(m, a), pick(m, o))
			after := ids(m.Deals())
			if len(after) != len(before) {
				return false
			}
			for _, id := range after {
				if !before[id] {
					return false
				}
			}
			return true
		},
		sizes, choice, choice,
	))

	properties.Property("same stage drags keep every other stage untouched", prop.ForAll(
		func(sizes []int, a, o int) bool {
			m := boardOf(sizes)
			if len(m.Deals()) == 0 {
				return true
			}
			active, over := pick(m, a), pick(m, o)
			src, _ := m.Find(active)
			before := map[models.Stage][]string{}
			for _, stage := range models.Stages {
				before[stage] = ids(m.Stage(stage))
			}

			res, ok := m.DragEnd(active, over)
			if !ok || res.From != res.To {
				return true
			}
			for _, stage := range models.Stages {
				if stage != src.Stage && !cmp.Equal(before[stage], ids(m.Stage(stage))) {
					return false
				}
			}
			return len(m.Stage(src.Stage)) == len(before[src.Stage])
		},
		sizes, choice, choice,
	))

	properties.Property("changes are exactly the rows that moved", prop.ForAll(
		func(sizes []int, a, o int) bool {
			m := boardOf(sizes)
			if len(m.Deals()) == 0 {
				return true
			}
			before := map[string]models.Deal{}
			for _, d := range m.Deals() {
				before[d.ID] = d
			}

			res, ok := m.DragEnd(pick(m, a), pick(m, o))
			if !ok {
				return len(res.Changes) == 0
			}

			changed := map[string]models.PositionUpdate{}
			for _, c := range res.Changes {
				changed[c.ID] = c
			}
			for _, d := range m.Deals() {
				prev := before[d.ID]
				moved := prev.Stage != d.Stage || prev.Position != d.Position
				c, listed := changed[d.ID]
				if moved != listed {
					return false
				}
				if listed && (c.Stage != d.Stage || c.Position != d.Position) {
					return false
				}
			}
			return len(changed) == len(res.Changes)
		},
		sizes, choice, choice,
	))

	properties.Property("changes are ordered by stage then position", prop.ForAll(
		func(sizes []int, a, o int) bool {
			m := boardOf(sizes)
			if len(m.Deals()) == 0 {
				return true
			}
			res, _ := m.DragEnd(pick(m, a), pick(m, o))
			for i := 1; i < len(res.Changes); i++ {
				p, c := res.Changes[i-1], res.Changes[i]
				if p.Stage.Index() > c.Stage.Index() {
					return false
				}
				if p.Stage == c.Stage && p.Position >= c.Position {
					return false
				}
			}
			return true
		},
		sizes, choice, choice,
	))

	properties.Property("rollback restores the pre-drag board", prop.ForAll(
		func(sizes []int, a, o int) bool {
			m := boardOf(sizes)
			if len(m.Deals()) == 0 {
				return true
			}
			before := m.Deals()
			res, ok := m.DragEnd(pick(m, a), pick(m, o))
			if !ok {
				return cmp.Equal(before, m.Deals())
			}
			return m.Rollback(res) && cmp.Equal(before, m.Deals())
		},
		sizes, choice, choice,
	))

	properties.TestingRun(t)
}
