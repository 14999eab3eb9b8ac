package ui

import (
	"github.com/JustVugg/duffydiff/internal/align"
	"github.com/JustVugg/duffydiff/internal/blocks"
)

// Row is one display row of the two panes. Left and Right are 0-indexed line
// numbers, or -1 when that side has no line on the row.
type Row struct {
	Left  int
	Right int
	Kind  align.Kind
	Block int // ordinal of the block the row belongs to, or blocks.None
}

// BuildRows lays out an edit script as side-by-side rows. Equal runs pair
// line for line; a Replace pairs its lines top to bottom and pads the
// shorter side.
func BuildRows(ops []align.Op) []Row {
	var rows []Row
	ordinal := 0

	for _, op := range ops {
		block := blocks.None
		if op.Kind != align.Equal {
			block = ordinal
			ordinal++
		}
		n := max(op.LeftLen(), op.RightLen())
		for k := 0; k < n; k++ {
			r := Row{Left: -1, Right: -1, Kind: op.Kind, Block: block}
			if k < op.LeftLen() {
				r.Left = op.I1 + k
			}
			if k < op.RightLen() {
				r.Right = op.J1 + k
			}
			rows = append(rows, r)
		}
	}

	return rows
}

// BuildPlainRows pairs lines by index with no alignment. It is used while
// the block set is stale after an edit.
func BuildPlainRows(nLeft, nRight int) []Row {
	n := max(nLeft, nRight)
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{Left: -1, Right: -1, Kind: align.Equal, Block: blocks.None}
		if i < nLeft {
			rows[i].Left = i
		}
		if i < nRight {
			rows[i].Right = i
		}
	}
	return rows
}

// FirstRows maps each block ordinal to the index of its first row.
func FirstRows(rows []Row) []int {
	var first []int
	for i, r := range rows {
		if r.Block != blocks.None && r.Block == len(first) {
			first = append(first, i)
		}
	}
	return first
}
