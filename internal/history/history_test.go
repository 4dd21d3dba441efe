package history_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planforge/internal/history"
	"planforge/internal/models"
)

func doc(names ...string) models.GraphDocument {
	var d models.GraphDocument
	for i, name := range names {
		d.Nodes = append(d.Nodes, models.EntityNode{ID: fmt.Sprintf("n%d", i), Name: name})
	}
	return d
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := history.New(doc())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())

	s.Push(doc("a"))
	s.Push(doc("a", "b"))
	assert.True(t, s.CanUndo())
	assert.False(t, s.CanRedo())

	prev, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, doc("a"), prev)
	assert.True(t, s.CanRedo())

	next, ok := s.Redo()
	require.True(t, ok)
	assert.Equal(t, doc("a", "b"), next)
	assert.False(t, s.CanRedo())
}

func TestUndoAtOldestIsNoOp(t *testing.T) {
	s := history.New(doc("a"))

	_, ok := s.Undo()
	assert.False(t, ok)

	_, ok = s.Redo()
	assert.False(t, ok)
}

func TestPushInvalidatesRedo(t *testing.T) {
	s := history.New(doc())
	s.Push(doc("a"))
	s.Push(doc("a", "b"))

	_, ok := s.Undo()
	require.True(t, ok)
	require.True(t, s.CanRedo())

	s.Push(doc("a", "c"))
	assert.False(t, s.CanRedo(), "a new push after undo must drop the redo branch")

	_, ok = s.Redo()
	assert.False(t, ok)
}

func TestTruncationAtPushPoint(t *testing.T) {
	// 5 pushes, 2 undos, 1 new push: 3 retained pushes plus the new one
	// (plus the initial seed snapshot).
	s := history.New(doc())
	for i := 0; i < 5; i++ {
		s.Push(doc(fmt.Sprintf("v%d", i)))
	}
	require.Equal(t, 6, s.Len())

	_, ok := s.Undo()
	require.True(t, ok)
	_, ok = s.Undo()
	require.True(t, ok)

	s.Push(doc("new"))
	assert.Equal(t, 5, s.Len())
	assert.False(t, s.CanRedo())

	// Walking back lands on the snapshot below the push point.
	prev, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, doc("v2"), prev)
}

func TestCapacityEvictsOldest(t *testing.T) {
	s := history.New(doc())
	for i := 0; i < history.Capacity+10; i++ {
		s.Push(doc(fmt.Sprintf("v%d", i)))
	}
	assert.Equal(t, history.Capacity, s.Len())

	// Undo all the way down: the oldest reachable snapshot is no longer the
	// seed, nor the first pushes.
	var last models.GraphDocument
	for {
		prev, ok := s.Undo()
		if !ok {
			break
		}
		last = prev
	}
	assert.Equal(t, doc("v10"), last)
}

func TestSnapshotsDoNotAliasLiveState(t *testing.T) {
	live := doc("a")
	live.Nodes[0].Fields = []models.Field{{Name: "id", Type: "uuid"}}

	s := history.New(live)
	s.Push(live)

	// Mutating the live document after the push must not corrupt history.
	live.Nodes[0].Fields[0].Name = "changed"
	live.Nodes[0].Name = "changed"

	prev, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, "a", prev.Nodes[0].Name)
	assert.Equal(t, "id", prev.Nodes[0].Fields[0].Name)
}
