// Package document owns the two sides of a comparison, the current block set,
// the navigation cursor and the undo history. It is the only place where
// side content changes.
package document

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/JustVugg/duffydiff/internal/align"
	"github.com/JustVugg/duffydiff/internal/blocks"
	"github.com/JustVugg/duffydiff/internal/history"
)

// Side names one of the two line sequences.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == Left {
		return Right
	}
	return Left
}

func (s Side) valid() bool { return s == Left || s == Right }

// Direction is the direction of a merge.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "left→right"
	case RightToLeft:
		return "right→left"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Source returns the side lines are copied from.
func (d Direction) Source() Side {
	if d == RightToLeft {
		return Right
	}
	return Left
}

// Dest returns the side lines are copied into.
func (d Direction) Dest() Side { return d.Source().Other() }

func (d Direction) valid() bool { return d == LeftToRight || d == RightToLeft }

// Document is the two-sided comparison state. It is not safe for concurrent
// use; a single event loop drives it.
type Document struct {
	lines    [2][]string
	formats  [2]Format
	set      *blocks.Set
	cursor   int
	revision uint64
	history  *history.Stack
	logger   zerolog.Logger
}

// New returns an empty document whose history keeps at most historyLimit
// entries (history.DefaultLimit when non-positive).
func New(logger zerolog.Logger, historyLimit int) *Document {
	return &Document{
		formats: [2]Format{DefaultFormat, DefaultFormat},
		cursor:  blocks.None,
		history: history.New(historyLimit),
		logger:  logger.With().Str("component", "Document").Logger(),
	}
}

// Load replaces a side's content and records the change in history. It does
// not recompute; the block set is stale afterwards.
func (d *Document) Load(side Side, content string) error {
	if !side.valid() {
		return fmt.Errorf("load %v: %w", side, ErrInvalidSide)
	}
	d.checkpoint()
	d.setContent(side, content)
	d.checkpoint()
	d.logger.Debug().Str("side", side.String()).Int("lines", len(d.lines[side])).Msg("loaded content")
	return nil
}

// Edit replaces a side's content after a direct edit by the user. Unlike
// Load it does not touch history; Settle records edits once they quiet down.
func (d *Document) Edit(side Side, content string) error {
	if !side.valid() {
		return fmt.Errorf("edit %v: %w", side, ErrInvalidSide)
	}
	if content == d.Text(side) {
		return nil
	}
	d.setContent(side, content)
	return nil
}

// Recompute aligns the current content and replaces the block set. The
// cursor moves to block 0, or to no block when the sides are identical.
func (d *Document) Recompute() {
	start := time.Now()
	ops := align.Lines(d.lines[Left], d.lines[Right])
	d.set = blocks.FromOps(ops, d.revision)
	d.cursor = d.set.Next(blocks.None)
	d.logger.Debug().
		Uint64("revision", d.revision).
		Int("blocks", d.set.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("recomputed block set")
}

// Settle records pending direct edits in history and recomputes. It is the
// target of the debounced recompute.
func (d *Document) Settle() {
	d.checkpoint()
	d.Recompute()
}

// Stale reports whether content changed since the last Recompute.
func (d *Document) Stale() bool {
	return d.set == nil || d.set.Revision() != d.revision
}

// Revision returns a counter that increases on every content change.
func (d *Document) Revision() uint64 { return d.revision }

// Blocks returns the most recently computed block set. It may be stale; check
// Stale before trusting its line ranges.
func (d *Document) Blocks() *blocks.Set { return d.set }

// Cursor returns the current block ordinal.
func (d *Document) Cursor() (int, bool) {
	if d.cursor == blocks.None || d.Stale() {
		return blocks.None, false
	}
	return d.cursor, true
}

// Counts returns line counts by block kind for the current block set.
func (d *Document) Counts() blocks.Counts { return d.set.Counts() }

// Goto makes ordinal the current block and returns it.
func (d *Document) Goto(ordinal int) (blocks.Block, error) {
	b, err := d.lookup(ordinal)
	if err != nil {
		return blocks.Block{}, fmt.Errorf("goto: %w", err)
	}
	d.cursor = ordinal
	return b, nil
}

// Next moves the cursor to the following block, wrapping to the first.
func (d *Document) Next() (blocks.Block, error) {
	if d.Stale() {
		return blocks.Block{}, fmt.Errorf("next: %w", ErrStaleBlockSet)
	}
	return d.Goto(d.set.Next(d.cursor))
}

// Prev moves the cursor to the preceding block, wrapping to the last.
func (d *Document) Prev() (blocks.Block, error) {
	if d.Stale() {
		return blocks.Block{}, fmt.Errorf("prev: %w", ErrStaleBlockSet)
	}
	return d.Goto(d.set.Prev(d.cursor))
}

// Merge copies the source side's lines of block ordinal over the destination
// side's lines of the same block. The block set is stale afterwards.
func (d *Document) Merge(ordinal int, dir Direction) error {
	b, err := d.lookup(ordinal)
	if err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	return d.MergeBlock(b, dir)
}

// MergeBlock is Merge for a block value, validated against the revision the
// block was computed for.
func (d *Document) MergeBlock(b blocks.Block, dir Direction) error {
	if !dir.valid() {
		return fmt.Errorf("merge block %d: %w", b.Ordinal, ErrInvalidDirection)
	}
	if d.Stale() || b.Revision != d.revision {
		return fmt.Errorf("merge block %d: %w", b.Ordinal, ErrStaleBlockSet)
	}
	if _, ok := d.set.Block(b.Ordinal); !ok {
		return fmt.Errorf("merge block %d of %d: %w", b.Ordinal, d.set.Len(), ErrOutOfRange)
	}
	if (dir == LeftToRight && !b.HasLeft()) || (dir == RightToLeft && !b.HasRight()) {
		return fmt.Errorf("merge %s block %d %v: %w", b.Kind, b.Ordinal, dir, ErrInvalidDirection)
	}

	src, dst := dir.Source(), dir.Dest()
	s1, s2, d1, d2 := b.Op.I1, b.Op.I2, b.Op.J1, b.Op.J2
	if src == Right {
		s1, s2, d1, d2 = d1, d2, s1, s2
	}

	d.checkpoint()
	from := d.lines[src]
	to := d.lines[dst]
	out := make([]string, 0, len(to)-(d2-d1)+(s2-s1))
	out = append(out, to[:d1]...)
	out = append(out, from[s1:s2]...)
	out = append(out, to[d2:]...)
	d.lines[dst] = out
	d.touch()
	d.checkpoint()

	d.logger.Debug().
		Int("block", b.Ordinal).
		Str("kind", b.Kind.String()).
		Str("direction", dir.String()).
		Msg("merged block")
	return nil
}

// MergeAll replaces the destination side with a copy of the source side.
func (d *Document) MergeAll(dir Direction) error {
	if !dir.valid() {
		return fmt.Errorf("merge all: %w", ErrInvalidDirection)
	}
	if err := d.Load(dir.Dest(), d.Text(dir.Source())); err != nil {
		return fmt.Errorf("merge all: %w", err)
	}
	d.logger.Debug().Str("direction", dir.String()).Msg("merged all")
	return nil
}

// Undo restores the previous history entry. Direct edits not yet recorded
// are recorded first so Redo can bring them back. The caller recomputes.
func (d *Document) Undo() error {
	if !d.CanUndo() {
		return fmt.Errorf("undo: %w", ErrEmptyHistory)
	}
	d.checkpoint()
	e, ok := d.history.Undo()
	if !ok {
		return fmt.Errorf("undo: %w", ErrEmptyHistory)
	}
	d.restore(e)
	d.logger.Debug().Int("position", d.history.Position()).Msg("undo")
	return nil
}

// Redo restores the next history entry. Direct edits not yet recorded are
// recorded first, which discards the redo tail. The caller recomputes.
func (d *Document) Redo() error {
	d.checkpoint()
	e, ok := d.history.Redo()
	if !ok {
		return fmt.Errorf("redo: %w", ErrEmptyHistory)
	}
	d.restore(e)
	d.logger.Debug().Int("position", d.history.Position()).Msg("redo")
	return nil
}

// CanUndo reports whether Undo has an entry to move to.
func (d *Document) CanUndo() bool {
	if d.unrecorded() {
		// Recording the edit pushes an entry; one must remain below it.
		return d.history.Limit() > 1 && d.history.Len() > 0
	}
	return d.history.CanUndo()
}

// CanRedo reports whether Redo has an entry to move to.
func (d *Document) CanRedo() bool {
	return !d.unrecorded() && d.history.CanRedo()
}

// unrecorded reports whether the content differs from the current history
// entry.
func (d *Document) unrecorded() bool {
	cur, ok := d.history.Current()
	return ok && (cur.Left != d.Text(Left) || cur.Right != d.Text(Right))
}

// Text returns a side's content as a single string.
func (d *Document) Text(side Side) string {
	if !side.valid() {
		return ""
	}
	return JoinLines(d.lines[side], d.formats[side])
}

// Lines returns a copy of a side's lines.
func (d *Document) Lines(side Side) []string {
	if !side.valid() {
		return nil
	}
	return append([]string(nil), d.lines[side]...)
}

// Line returns line n (1-indexed) of a side.
func (d *Document) Line(side Side, n int) (string, bool) {
	if !side.valid() || n < 1 || n > len(d.lines[side]) {
		return "", false
	}
	return d.lines[side][n-1], true
}

// Empty reports whether a side has no lines.
func (d *Document) Empty(side Side) bool {
	return !side.valid() || len(d.lines[side]) == 0
}

func (d *Document) lookup(ordinal int) (blocks.Block, error) {
	if d.Stale() {
		return blocks.Block{}, ErrStaleBlockSet
	}
	b, ok := d.set.Block(ordinal)
	if !ok {
		return blocks.Block{}, fmt.Errorf("block %d of %d: %w", ordinal, d.set.Len(), ErrOutOfRange)
	}
	return b, nil
}

func (d *Document) setContent(side Side, content string) {
	d.lines[side], d.formats[side] = SplitLines(content)
	d.touch()
}

func (d *Document) restore(e history.Entry) {
	d.lines[Left], d.formats[Left] = SplitLines(e.Left)
	d.lines[Right], d.formats[Right] = SplitLines(e.Right)
	d.touch()
}

func (d *Document) touch() {
	d.revision++
}

func (d *Document) checkpoint() {
	d.history.Snapshot(d.Text(Left), d.Text(Right))
}
