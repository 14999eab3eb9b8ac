package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	s := New(0)
	assert.Equal(t, DefaultLimit, s.Limit())
	assert.Equal(t, -1, s.Position())
	assert.Equal(t, 0, s.Len())

	_, ok := s.Current()
	assert.False(t, ok)
	_, ok = s.Undo()
	assert.False(t, ok)
	_, ok = s.Redo()
	assert.False(t, ok)
}

func TestSnapshotDeduplicates(t *testing.T) {
	s := New(10)
	assert.True(t, s.Snapshot("a", "b"))
	assert.False(t, s.Snapshot("a", "b"))
	assert.True(t, s.Snapshot("a", "c"))
	assert.Equal(t, 2, s.Len())
}

func TestBoundEvictsOldest(t *testing.T) {
	const k = 50
	s := New(k)
	for i := 0; i < k+5; i++ {
		s.Snapshot(fmt.Sprint(i), "")
	}

	assert.Equal(t, k, s.Len())
	assert.Equal(t, k-1, s.Position())

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, fmt.Sprint(k+4), cur.Left)

	// Walk back to the oldest survivor: entries 0..4 are gone.
	var last Entry
	for s.CanUndo() {
		last, _ = s.Undo()
	}
	assert.Equal(t, "5", last.Left)
}

func TestEvictionKeepsCurrentEntry(t *testing.T) {
	s := New(3)
	s.Snapshot("1", "")
	s.Snapshot("2", "")
	s.Snapshot("3", "")
	s.Undo()
	// Position 1 ("2"); pushing truncates "3" and appends "4".
	s.Snapshot("4", "")
	s.Snapshot("5", "")

	cur, _ := s.Current()
	assert.Equal(t, "5", cur.Left)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 2, s.Position())
}

func TestSnapshotDiscardsRedoTail(t *testing.T) {
	s := New(10)
	s.Snapshot("1", "")
	s.Snapshot("2", "")
	s.Snapshot("3", "")
	s.Undo()
	s.Undo()
	require.True(t, s.CanRedo())

	s.Snapshot("x", "")
	assert.False(t, s.CanRedo())
	assert.Equal(t, 2, s.Len())

	e, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, "1", e.Left)
}

func TestSnapshotOfCurrentKeepsRedoTail(t *testing.T) {
	s := New(10)
	s.Snapshot("1", "")
	s.Snapshot("2", "")
	s.Undo()

	assert.False(t, s.Snapshot("1", ""))
	assert.True(t, s.CanRedo())
}

func TestUndoRedoSymmetry(t *testing.T) {
	s := New(20)
	for i := 0; i < 8; i++ {
		s.Snapshot(fmt.Sprint("L", i), fmt.Sprint("R", i))
	}
	before, _ := s.Current()

	for n := 1; n <= 7; n++ {
		for i := 0; i < n; i++ {
			_, ok := s.Undo()
			require.True(t, ok)
		}
		var got Entry
		for i := 0; i < n; i++ {
			var ok bool
			got, ok = s.Redo()
			require.True(t, ok)
		}
		assert.Equal(t, before, got)
		assert.Equal(t, 7, s.Position())
	}

	_, ok := s.Redo()
	assert.False(t, ok)
}
