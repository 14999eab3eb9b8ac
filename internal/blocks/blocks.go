// Package blocks exposes the non-equal parts of an alignment as an ordered,
// immutable list of diff blocks with 1-indexed line ranges.
package blocks

import (
	"fmt"
	"math"

	"github.com/JustVugg/duffydiff/internal/align"
)

// None is the cursor value meaning "no current block".
const None = -1

// Block is a non-equal alignment op addressed by its ordinal.
//
// Line ranges are 1-indexed and inclusive. An end lower than its start means
// the side has no lines in this block; start is then the insertion point
// (the new lines go before line start).
type Block struct {
	Ordinal    int
	Kind       align.Kind
	LeftStart  int
	LeftEnd    int
	RightStart int
	RightEnd   int
	// Op is the underlying 0-indexed, half-open alignment op.
	Op align.Op
	// Revision is the document revision the block was computed for.
	Revision uint64
}

// HasLeft reports whether the block covers at least one left line.
func (b Block) HasLeft() bool { return b.LeftEnd >= b.LeftStart }

// HasRight reports whether the block covers at least one right line.
func (b Block) HasRight() bool { return b.RightEnd >= b.RightStart }

// LeftLen returns the number of left lines in the block.
func (b Block) LeftLen() int { return b.Op.LeftLen() }

// RightLen returns the number of right lines in the block.
func (b Block) RightLen() int { return b.Op.RightLen() }

// Symbol returns a one-character marker for the block kind.
func (b Block) Symbol() string {
	switch b.Kind {
	case align.Delete:
		return "−"
	case align.Insert:
		return "+"
	case align.Replace:
		return "≠"
	}
	return " "
}

// Label names the block by the side it is anchored to: "L3-5" for blocks
// with left lines, "R7" for insertions.
func (b Block) Label() string {
	if b.Kind == align.Insert {
		return rangeLabel("R", b.RightStart, b.RightEnd)
	}
	return rangeLabel("L", b.LeftStart, b.LeftEnd)
}

func rangeLabel(prefix string, start, end int) string {
	if end <= start {
		return fmt.Sprintf("%s%d", prefix, start)
	}
	return fmt.Sprintf("%s%d-%d", prefix, start, end)
}

// Counts summarises a block set by kind.
type Counts struct {
	Added    int // right lines in Insert blocks
	Removed  int // left lines in Delete blocks
	Modified int // max(left, right) lines in Replace blocks
}

// Set is an ordered list of blocks derived from one alignment. A Set is
// never modified after construction; content changes require a new Set.
type Set struct {
	blocks   []Block
	ops      []align.Op
	revision uint64
}

// FromOps builds a Set from an edit script, keeping the non-equal ops and
// numbering them from 0 in document order.
func FromOps(ops []align.Op, revision uint64) *Set {
	s := &Set{
		ops:      append([]align.Op(nil), ops...),
		revision: revision,
	}
	for _, op := range ops {
		if op.Kind == align.Equal {
			continue
		}
		s.blocks = append(s.blocks, Block{
			Ordinal:    len(s.blocks),
			Kind:       op.Kind,
			LeftStart:  op.I1 + 1,
			LeftEnd:    op.I2,
			RightStart: op.J1 + 1,
			RightEnd:   op.J2,
			Op:         op,
			Revision:   revision,
		})
	}
	return s
}

// Len returns the number of blocks.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.blocks)
}

// Empty reports whether the set has no blocks.
func (s *Set) Empty() bool { return s.Len() == 0 }

// Revision returns the document revision the set was computed for.
func (s *Set) Revision() uint64 {
	if s == nil {
		return 0
	}
	return s.revision
}

// Block returns the block with the given ordinal.
func (s *Set) Block(ordinal int) (Block, bool) {
	if ordinal < 0 || ordinal >= s.Len() {
		return Block{}, false
	}
	return s.blocks[ordinal], true
}

// Blocks returns a copy of all blocks in order.
func (s *Set) Blocks() []Block {
	if s == nil {
		return nil
	}
	return append([]Block(nil), s.blocks...)
}

// Ops returns a copy of the full edit script, equal ops included.
func (s *Set) Ops() []align.Op {
	if s == nil {
		return nil
	}
	return append([]align.Op(nil), s.ops...)
}

// Next returns the ordinal after cursor, wrapping to 0 past the end. With no
// cursor it returns 0. It returns None for an empty set.
func (s *Set) Next(cursor int) int {
	n := s.Len()
	if n == 0 {
		return None
	}
	if cursor < 0 || cursor >= n-1 {
		return 0
	}
	return cursor + 1
}

// Prev returns the ordinal before cursor, wrapping to the last block before
// the start. With no cursor it returns the last block. It returns None for an
// empty set.
func (s *Set) Prev(cursor int) int {
	n := s.Len()
	if n == 0 {
		return None
	}
	if cursor <= 0 || cursor >= n {
		return n - 1
	}
	return cursor - 1
}

// Nearest maps a normalised scroll position in [0,1] to the closest block
// ordinal. Out-of-range positions are clamped. It returns None for an empty
// set.
func (s *Set) Nearest(fraction float64) int {
	n := s.Len()
	if n == 0 {
		return None
	}
	if math.IsNaN(fraction) || fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	ord := int(math.Round(fraction * float64(n-1)))
	return min(max(ord, 0), n-1)
}

// Counts sums block line ranges by kind.
func (s *Set) Counts() Counts {
	var c Counts
	if s == nil {
		return c
	}
	for _, b := range s.blocks {
		switch b.Kind {
		case align.Insert:
			c.Added += b.RightLen()
		case align.Delete:
			c.Removed += b.LeftLen()
		case align.Replace:
			c.Modified += max(b.LeftLen(), b.RightLen())
		}
	}
	return c
}
