// Package selection implements the selection-set and cursor algebra:
// a Selection is a char range plus an optional extension anchor, and a
// SelectionSet is a non-empty, ordered collection of selections with a
// distinguished primary. The shape is grounded on coreseekdev-texere's
// pkg/rope/selection.go Selection{ranges, primaryIndex}, generalized
// from that file's single flat range per entry to this package's
// range + initial_range extension-anchor model, and given keystorm's
// cursor.Selection fluent method-naming style (Range, Start, End,
// Collapse, Extend, Clamp).
package selection

import "fmt"

// CharIndex is a position expressed as a rune count from the start of
// the buffer. Mirrors buffer.CharIndex without importing the buffer
// package, so selection stays usable independent of any one Buffer
// implementation.
type CharIndex = int64

// Range is a half-open char range [Start, End).
type Range struct {
	Start CharIndex
	End   CharIndex
}

// NewRange creates a Range, normalizing so Start <= End.
func NewRange(a, b CharIndex) Range {
	if a > b {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// Point returns a zero-length Range at c.
func Point(c CharIndex) Range {
	return Range{Start: c, End: c}
}

func (r Range) String() string { return fmt.Sprintf("[%d:%d)", r.Start, r.End) }

// Len returns the range's length in chars.
func (r Range) Len() CharIndex { return r.End - r.Start }

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool { return r.Start == r.End }

// Contains returns true if c falls within [Start, End).
func (r Range) Contains(c CharIndex) bool { return c >= r.Start && c < r.End }

// ContainsInclusive returns true if c falls within [Start, End], used
// by selection modes whose cursor convention treats End as the last
// selected char rather than one-past-it (spec's CursorDirection=End).
func (r Range) ContainsInclusive(c CharIndex) bool { return c >= r.Start && c <= r.End }

// Overlaps returns true if the two ranges share any char.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Touches returns true if the ranges overlap or are adjacent.
func (r Range) Touches(other Range) bool {
	return r.Start <= other.End && other.Start <= r.End
}

// Union returns the smallest range spanning both ranges.
func (r Range) Union(other Range) Range {
	start := r.Start
	if other.Start < start {
		start = other.Start
	}
	end := r.End
	if other.End > end {
		end = other.End
	}
	return Range{Start: start, End: end}
}

// Shift returns a new range offset by delta.
func (r Range) Shift(delta CharIndex) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// Clamp restricts the range to [0, max].
func (r Range) Clamp(max CharIndex) Range {
	start, end := r.Start, r.End
	if start < 0 {
		start = 0
	}
	if start > max {
		start = max
	}
	if end > max {
		end = max
	}
	if end < start {
		end = start
	}
	return Range{Start: start, End: end}
}

// CursorDirection selects which edge of a Range is the logical cursor
// position, used by SelectionMode.Current and movement anchoring.
type CursorDirection uint8

const (
	// CursorStart treats Range.Start as the cursor.
	CursorStart CursorDirection = iota
	// CursorEnd treats Range.End (inclusive, i.e. End-1) as the cursor.
	CursorEnd
)

// Selection is a single selection: a primary range, an optional
// "initial range" extension anchor recording where an Expand movement
// started (so further Expand calls grow from the original anchor
// rather than the latest extended edge), and opaque per-mode info
// (e.g. a tree-sitter node kind) selection modes may stash for reuse.
type Selection struct {
	Range        Range
	InitialRange *Range
	Info         any
}

// NewSelection creates a plain selection with no extension anchor.
func NewSelection(r Range) Selection {
	return Selection{Range: r}
}

// IsExtending returns true if this selection has an active extension
// anchor (i.e. is mid-Expand).
func (s Selection) IsExtending() bool {
	return s.InitialRange != nil
}

// StartExtending returns a copy of s with its current range captured
// as the extension anchor, the entry point for an Expand movement.
func (s Selection) StartExtending() Selection {
	anchor := s.Range
	s.InitialRange = &anchor
	return s
}

// StopExtending returns a copy of s with its extension anchor cleared,
// collapsing back to plain movement.
func (s Selection) StopExtending() Selection {
	s.InitialRange = nil
	return s
}

// ExtendTo returns a copy of s whose Range is the union of the
// extension anchor (or the current range, if not yet extending) and
// newEdge — the core of the Expand movement.
func (s Selection) ExtendTo(newEdge Range) Selection {
	anchor := s.Range
	if s.InitialRange != nil {
		anchor = *s.InitialRange
	}
	next := s
	if s.InitialRange == nil {
		a := anchor
		next.InitialRange = &a
	}
	next.Range = anchor.Union(newEdge)
	return next
}

// Collapse returns a copy of s collapsed to a zero-length range at its
// cursor edge, clearing any extension anchor.
func (s Selection) Collapse(dir CursorDirection) Selection {
	c := s.Range.Start
	if dir == CursorEnd {
		c = s.Range.End
	}
	return Selection{Range: Point(c)}
}

// Cursor returns the char index treated as the logical cursor, per dir.
func (s Selection) Cursor(dir CursorDirection) CharIndex {
	if dir == CursorEnd {
		if s.Range.End > s.Range.Start {
			return s.Range.End - 1
		}
		return s.Range.End
	}
	return s.Range.Start
}

// WithRange returns a copy of s with Range replaced, preserving Info
// but not the extension anchor (a fresh movement target).
func (s Selection) WithRange(r Range) Selection {
	return Selection{Range: r, Info: s.Info}
}

// Equals returns true if two selections have the same range (info and
// extension anchors are not compared — they are bookkeeping, not
// identity).
func (s Selection) Equals(other Selection) bool {
	return s.Range == other.Range
}
