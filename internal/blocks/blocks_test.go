package blocks

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustVugg/duffydiff/internal/align"
)

func threeBlockSet() *Set {
	left := []string{"a", "b", "c", "d", "e"}
	right := []string{"a", "B", "c", "d", "e", "f", "g"}
	left = append([]string{"gone"}, left...)
	return FromOps(align.Lines(left, right), 7)
}

func TestFromOpsAssignsOrdinalsAndRanges(t *testing.T) {
	s := FromOps(align.Lines([]string{"a", "b", "c"}, []string{"a", "x", "c"}), 1)
	require.Equal(t, 1, s.Len())

	b, ok := s.Block(0)
	require.True(t, ok)
	assert.Equal(t, 0, b.Ordinal)
	assert.Equal(t, align.Replace, b.Kind)
	assert.Equal(t, 2, b.LeftStart)
	assert.Equal(t, 2, b.LeftEnd)
	assert.Equal(t, 2, b.RightStart)
	assert.Equal(t, 2, b.RightEnd)
	assert.Equal(t, uint64(1), b.Revision)
}

func TestFromOpsInsertionPoint(t *testing.T) {
	s := FromOps(align.Lines([]string{"a", "b"}, []string{"a", "b", "c"}), 1)
	require.Equal(t, 1, s.Len())

	b, _ := s.Block(0)
	assert.Equal(t, align.Insert, b.Kind)
	assert.False(t, b.HasLeft())
	assert.Equal(t, 3, b.LeftStart)
	assert.Equal(t, 2, b.LeftEnd)
	assert.True(t, b.HasRight())
	assert.Equal(t, 3, b.RightStart)
	assert.Equal(t, 3, b.RightEnd)
}

func TestOrdinalsAreContiguous(t *testing.T) {
	s := threeBlockSet()
	require.Equal(t, 3, s.Len())
	for i, b := range s.Blocks() {
		assert.Equal(t, i, b.Ordinal)
		assert.NotEqual(t, align.Equal, b.Kind)
	}
	assert.Len(t, s.Ops(), 5)
}

func TestEmptySet(t *testing.T) {
	s := FromOps(align.Lines([]string{"a"}, []string{"a"}), 1)
	assert.True(t, s.Empty())
	assert.Equal(t, None, s.Next(None))
	assert.Equal(t, None, s.Prev(None))
	assert.Equal(t, None, s.Nearest(0.5))
	_, ok := s.Block(0)
	assert.False(t, ok)

	var nilSet *Set
	assert.Equal(t, 0, nilSet.Len())
	assert.Equal(t, Counts{}, nilSet.Counts())
}

func TestNextPrevWrap(t *testing.T) {
	s := threeBlockSet()

	assert.Equal(t, 0, s.Next(None))
	assert.Equal(t, 1, s.Next(0))
	assert.Equal(t, 2, s.Next(1))
	assert.Equal(t, 0, s.Next(2), "next wraps past the end")

	assert.Equal(t, 2, s.Prev(None))
	assert.Equal(t, 1, s.Prev(2))
	assert.Equal(t, 0, s.Prev(1))
	assert.Equal(t, 2, s.Prev(0), "prev wraps before the start")
}

func TestNearest(t *testing.T) {
	s := threeBlockSet()
	tests := []struct {
		fraction float64
		want     int
	}{
		{0, 0},
		{0.2, 0},
		{0.25, 1},
		{0.5, 1},
		{0.74, 1},
		{0.75, 2},
		{1, 2},
		{-3, 0},
		{7, 2},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Nearest(tt.fraction), "fraction %v", tt.fraction)
	}
}

func TestCounts(t *testing.T) {
	s := threeBlockSet()
	assert.Equal(t, Counts{Added: 2, Removed: 1, Modified: 1}, s.Counts())
}

func TestBlocksReturnsCopy(t *testing.T) {
	s := threeBlockSet()
	bs := s.Blocks()
	bs[0].Ordinal = 99
	b, _ := s.Block(0)
	assert.Equal(t, 0, b.Ordinal)
}

func TestSymbolAndLabel(t *testing.T) {
	s := threeBlockSet()
	var got []string
	for _, b := range s.Blocks() {
		got = append(got, b.Symbol()+" "+b.Label())
	}
	assert.Equal(t, []string{"− L1", "≠ L3", "+ R6-7"}, got)

	wide := FromOps(align.Lines([]string{"a", "b", "c", "d"}, []string{"a", "x", "y", "d"}), 1)
	b, _ := wide.Block(0)
	assert.Equal(t, "L2-3", b.Label())
}
