// Package export turns the current block set into a report and renders it in
// one of several text formats.
package export

import (
	"errors"
	"time"

	"github.com/JustVugg/duffydiff/internal/align"
	"github.com/JustVugg/duffydiff/internal/blocks"
	"github.com/JustVugg/duffydiff/internal/document"
)

// ErrStale is returned when a report is requested for content that changed
// since the last recompute.
var ErrStale = errors.New("comparison is out of date")

// Source is the read side of a document.
type Source interface {
	Blocks() *blocks.Set
	Lines(side document.Side) []string
	Stale() bool
}

// Range is a 1-indexed inclusive line range. End < Start means no lines,
// with Start as the insertion point.
type Range struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Record describes one diff block.
type Record struct {
	Ordinal    int      `json:"ordinal" yaml:"ordinal"`
	Kind       string   `json:"kind" yaml:"kind"`
	Label      string   `json:"label" yaml:"label"`
	Left       Range    `json:"left" yaml:"left"`
	Right      Range    `json:"right" yaml:"right"`
	LeftLines  []string `json:"left_lines,omitempty" yaml:"left_lines,omitempty"`
	RightLines []string `json:"right_lines,omitempty" yaml:"right_lines,omitempty"`
	// Actions lists the merges the block allows.
	Actions []string `json:"actions" yaml:"actions"`

	symbol string
}

// Counts mirrors blocks.Counts with serialisation tags.
type Counts struct {
	Added    int `json:"added" yaml:"added"`
	Removed  int `json:"removed" yaml:"removed"`
	Modified int `json:"modified" yaml:"modified"`
}

// Report is a snapshot of one comparison.
type Report struct {
	Left        string    `json:"left" yaml:"left"`
	Right       string    `json:"right" yaml:"right"`
	Generated   time.Time `json:"generated" yaml:"generated"`
	Differences int       `json:"differences" yaml:"differences"`
	Counts      Counts    `json:"counts" yaml:"counts"`
	Blocks      []Record  `json:"blocks" yaml:"blocks"`
}

// Identical reports whether the compared sides had no differences.
func (r Report) Identical() bool { return r.Differences == 0 }

// Merge actions a block may allow.
const (
	ActionCopyRight = "copy_right"
	ActionCopyLeft  = "copy_left"
)

// Build collects the blocks of src into a report. leftName and rightName
// label the two sides.
func Build(src Source, leftName, rightName string) (Report, error) {
	if src.Stale() {
		return Report{}, ErrStale
	}
	set := src.Blocks()
	left := src.Lines(document.Left)
	right := src.Lines(document.Right)

	c := set.Counts()
	r := Report{
		Left:        leftName,
		Right:       rightName,
		Generated:   time.Now(),
		Differences: set.Len(),
		Counts:      Counts{Added: c.Added, Removed: c.Removed, Modified: c.Modified},
		Blocks:      make([]Record, 0, set.Len()),
	}
	for _, b := range set.Blocks() {
		r.Blocks = append(r.Blocks, record(b, left, right))
	}
	return r, nil
}

func record(b blocks.Block, left, right []string) Record {
	rec := Record{
		Ordinal:    b.Ordinal,
		Kind:       b.Kind.String(),
		Label:      b.Label(),
		Left:       Range{Start: b.LeftStart, End: b.LeftEnd},
		Right:      Range{Start: b.RightStart, End: b.RightEnd},
		LeftLines:  left[b.Op.I1:b.Op.I2],
		RightLines: right[b.Op.J1:b.Op.J2],
		symbol:     b.Symbol(),
	}
	if b.Kind != align.Insert {
		rec.Actions = append(rec.Actions, ActionCopyRight)
	}
	if b.Kind != align.Delete {
		rec.Actions = append(rec.Actions, ActionCopyLeft)
	}
	return rec
}
