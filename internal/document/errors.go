package document

import "errors"

var (
	// ErrOutOfRange is returned for an ordinal outside the current block set.
	ErrOutOfRange = errors.New("block ordinal out of range")
	// ErrInvalidDirection is returned when a merge would copy from a side
	// that has no lines in the block.
	ErrInvalidDirection = errors.New("merge direction incompatible with block kind")
	// ErrEmptyHistory is returned by Undo and Redo when there is no entry to
	// move to.
	ErrEmptyHistory = errors.New("no history entry to move to")
	// ErrStaleBlockSet is returned when an ordinal or block refers to a block
	// set computed before the latest content change.
	ErrStaleBlockSet = errors.New("block set is stale; recompute first")
	// ErrInvalidSide is returned for a Side or Direction value that is not
	// one of the declared constants.
	ErrInvalidSide = errors.New("invalid side")
)
