// Package history implements a bounded, linear undo/redo log of whole
// two-sided document snapshots.
package history

// DefaultLimit is the number of entries kept when no limit is given.
const DefaultLimit = 50

// Entry is an immutable snapshot of both sides.
type Entry struct {
	Left  string
	Right string
}

// Stack holds snapshots and a position pointing at the current one.
// When the stack is non-empty, 0 <= position < Len().
type Stack struct {
	entries []Entry
	pos     int
	limit   int
}

// New returns an empty stack holding at most limit entries. A non-positive
// limit selects DefaultLimit.
func New(limit int) *Stack {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack{pos: -1, limit: limit}
}

// Snapshot records a new entry after the current position, discarding any
// redo tail. It does nothing and returns false when the entry equals the one
// at the current position. When the limit is exceeded the oldest entry is
// evicted; the current entry stays the same.
func (s *Stack) Snapshot(left, right string) bool {
	e := Entry{Left: left, Right: right}
	if s.pos >= 0 && s.entries[s.pos] == e {
		return false
	}

	s.entries = append(s.entries[:s.pos+1], e)
	s.pos++

	if over := len(s.entries) - s.limit; over > 0 {
		// Copy so evicted entries are not pinned by the backing array.
		kept := make([]Entry, s.limit, s.limit+1)
		copy(kept, s.entries[over:])
		s.entries = kept
		s.pos -= over
	}
	return true
}

// Undo moves one entry back and returns it. It returns false when there is
// no earlier entry.
func (s *Stack) Undo() (Entry, bool) {
	if s.pos <= 0 {
		return Entry{}, false
	}
	s.pos--
	return s.entries[s.pos], true
}

// Redo moves one entry forward and returns it. It returns false when there is
// no later entry.
func (s *Stack) Redo() (Entry, bool) {
	if s.pos < 0 || s.pos >= len(s.entries)-1 {
		return Entry{}, false
	}
	s.pos++
	return s.entries[s.pos], true
}

// Current returns the entry at the current position.
func (s *Stack) Current() (Entry, bool) {
	if s.pos < 0 {
		return Entry{}, false
	}
	return s.entries[s.pos], true
}

// CanUndo reports whether Undo would succeed.
func (s *Stack) CanUndo() bool { return s.pos > 0 }

// CanRedo reports whether Redo would succeed.
func (s *Stack) CanRedo() bool { return s.pos >= 0 && s.pos < len(s.entries)-1 }

// Len returns the number of entries.
func (s *Stack) Len() int { return len(s.entries) }

// Position returns the index of the current entry, or -1 when empty.
func (s *Stack) Position() int { return s.pos }

// Limit returns the maximum number of entries.
func (s *Stack) Limit() int { return s.limit }
