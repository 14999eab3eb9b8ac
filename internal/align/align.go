// Package align computes line-level edit scripts between two sequences of
// lines.
package align

import (
	"fmt"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Kind identifies the type of an alignment operation.
type Kind int

const (
	Equal Kind = iota
	Insert
	Delete
	Replace
)

func (k Kind) String() string {
	switch k {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Op is one segment of an edit script. It maps left[I1:I2] onto right[J1:J2].
// Ranges are half-open and 0-indexed.
type Op struct {
	Kind   Kind
	I1, I2 int
	J1, J2 int
}

// LeftLen returns the number of left lines covered by the op.
func (o Op) LeftLen() int { return o.I2 - o.I1 }

// RightLen returns the number of right lines covered by the op.
func (o Op) RightLen() int { return o.J2 - o.J1 }

// maxTokens is the number of distinct lines that can be encoded as runes
// without touching the surrogate range.
const maxTokens = utf8.MaxRune + 1 - (0xE000 - 0xD800)

// Lines aligns left against right, treating each line as an atomic token
// compared by exact string equality.
//
// The result partitions [0,len(left)) and [0,len(right)) in order. Adjacent
// equal runs are merged, and a deletion next to an insertion in the same gap
// is reported as a single Replace. Identical non-empty inputs produce one
// Equal op; two empty inputs produce no ops.
func Lines(left, right []string) []Op {
	if len(left) == 0 && len(right) == 0 {
		return nil
	}

	rLeft, rRight, ok := encode(left, right)
	if !ok {
		return coarse(left, right)
	}

	dmp := diffmatchpatch.New()
	// No deadline: the result must not depend on wall-clock time.
	dmp.DiffTimeout = 0
	diffs := dmp.DiffMainRunes(rLeft, rRight, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	return fromDiffs(diffs)
}

func fromDiffs(diffs []diffmatchpatch.Diff) []Op {
	var ops []Op
	var i, j, del, ins int

	flush := func() {
		if del == 0 && ins == 0 {
			return
		}
		kind := Replace
		switch {
		case del == 0:
			kind = Insert
		case ins == 0:
			kind = Delete
		}
		ops = append(ops, Op{Kind: kind, I1: i, I2: i + del, J1: j, J2: j + ins})
		i += del
		j += ins
		del, ins = 0, 0
	}

	for _, d := range diffs {
		// Every rune in the encoded text is exactly one line.
		n := utf8.RuneCountInString(d.Text)
		if n == 0 {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			if k := len(ops) - 1; k >= 0 && ops[k].Kind == Equal {
				ops[k].I2 += n
				ops[k].J2 += n
			} else {
				ops = append(ops, Op{Kind: Equal, I1: i, I2: i + n, J1: j, J2: j + n})
			}
			i += n
			j += n
		case diffmatchpatch.DiffDelete:
			del += n
		case diffmatchpatch.DiffInsert:
			ins += n
		}
	}
	flush()

	return ops
}

// encode maps every distinct line to a rune so both sides can be diffed as
// rune slices. Surrogate code points are skipped because they do not survive
// a round-trip through a Go string.
func encode(left, right []string) ([]rune, []rune, bool) {
	ids := make(map[string]rune, len(left)+len(right))
	conv := func(lines []string) ([]rune, bool) {
		out := make([]rune, len(lines))
		for k, l := range lines {
			r, seen := ids[l]
			if !seen {
				n := len(ids)
				if n >= maxTokens {
					return nil, false
				}
				r = rune(n)
				if r >= 0xD800 {
					r += 0xE000 - 0xD800
				}
				ids[l] = r
			}
			out[k] = r
		}
		return out, true
	}
	rl, ok := conv(left)
	if !ok {
		return nil, nil, false
	}
	rr, ok := conv(right)
	if !ok {
		return nil, nil, false
	}
	return rl, rr, true
}

// coarse trims the common prefix and suffix and reports the remainder as a
// single change. It is used only when the inputs have more distinct lines
// than can be encoded.
func coarse(left, right []string) []Op {
	pre := 0
	for pre < len(left) && pre < len(right) && left[pre] == right[pre] {
		pre++
	}
	suf := 0
	for suf < len(left)-pre && suf < len(right)-pre && left[len(left)-1-suf] == right[len(right)-1-suf] {
		suf++
	}

	var ops []Op
	if pre > 0 {
		ops = append(ops, Op{Kind: Equal, I1: 0, I2: pre, J1: 0, J2: pre})
	}
	i2, j2 := len(left)-suf, len(right)-suf
	if mid := (Op{I1: pre, I2: i2, J1: pre, J2: j2}); mid.LeftLen() > 0 || mid.RightLen() > 0 {
		switch {
		case mid.LeftLen() == 0:
			mid.Kind = Insert
		case mid.RightLen() == 0:
			mid.Kind = Delete
		default:
			mid.Kind = Replace
		}
		ops = append(ops, mid)
	}
	if suf > 0 {
		ops = append(ops, Op{Kind: Equal, I1: i2, I2: len(left), J1: j2, J2: len(right)})
	}
	return ops
}

// Validate checks that ops form a well-formed edit script for sequences of
// lengths nLeft and nRight. It does not compare line content.
func Validate(ops []Op, nLeft, nRight int) error {
	i, j := 0, 0
	for k, op := range ops {
		if op.I1 != i || op.J1 != j {
			return fmt.Errorf("op %d: starts at (%d,%d), want (%d,%d)", k, op.I1, op.J1, i, j)
		}
		if op.I2 < op.I1 || op.J2 < op.J1 {
			return fmt.Errorf("op %d: negative range", k)
		}
		switch op.Kind {
		case Equal:
			if op.LeftLen() != op.RightLen() || op.LeftLen() == 0 {
				return fmt.Errorf("op %d: equal ranges must be non-empty and the same length", k)
			}
		case Insert:
			if op.LeftLen() != 0 || op.RightLen() == 0 {
				return fmt.Errorf("op %d: insert must have an empty left range", k)
			}
		case Delete:
			if op.RightLen() != 0 || op.LeftLen() == 0 {
				return fmt.Errorf("op %d: delete must have an empty right range", k)
			}
		case Replace:
			if op.LeftLen() == 0 || op.RightLen() == 0 {
				return fmt.Errorf("op %d: replace must have both ranges non-empty", k)
			}
		default:
			return fmt.Errorf("op %d: unknown kind %v", k, op.Kind)
		}
		if k > 0 && op.Kind == Equal && ops[k-1].Kind == Equal {
			return fmt.Errorf("op %d: adjacent equal ops", k)
		}
		if k > 0 && op.Kind != Equal && ops[k-1].Kind != Equal {
			return fmt.Errorf("op %d: adjacent change ops", k)
		}
		i, j = op.I2, op.J2
	}
	if i != nLeft || j != nRight {
		return fmt.Errorf("ops cover (%d,%d), want (%d,%d)", i, j, nLeft, nRight)
	}
	return nil
}
