package buffer

import "fmt"

// Range is a half-open byte range [Start, End) in the buffer. The
// selection engine above this package works in CharIndexRange; byte
// ranges appear where the buffer talks to byte-addressed collaborators
// — the rope's storage layer, tree-sitter nodes, file I/O — and the
// two convert through the rope's O(log n) descent (CharRange /
// ByteRange below).
type Range struct {
	Start ByteOffset
	End   ByteOffset
}

// NewRange creates a Range from start and end offsets.
func NewRange(start, end ByteOffset) Range {
	return Range{Start: start, End: end}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the range's length in bytes.
func (r Range) Len() ByteOffset { return r.End - r.Start }

// IsEmpty reports whether the range has zero length.
func (r Range) IsEmpty() bool { return r.Start == r.End }

// IsValid reports whether Start <= End.
func (r Range) IsValid() bool { return r.Start <= r.End }

// Contains reports whether offset falls within [Start, End).
func (r Range) Contains(offset ByteOffset) bool {
	return offset >= r.Start && offset < r.End
}

// ContainsRange reports whether other lies entirely within r.
func (r Range) ContainsRange(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Overlaps reports whether the two ranges share any byte.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Intersect returns the shared span of two ranges, collapsed to an
// empty range at the later start when they don't overlap.
func (r Range) Intersect(other Range) Range {
	start := r.Start
	if other.Start > start {
		start = other.Start
	}
	end := r.End
	if other.End < end {
		end = other.End
	}
	if start >= end {
		return Range{Start: start, End: start}
	}
	return Range{Start: start, End: end}
}

// Union returns the smallest range covering both.
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

// Shift returns the range moved by delta bytes.
func (r Range) Shift(delta ByteOffset) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// CharRange converts r's byte bounds into char coordinates, the form
// selections and all stored buffer metadata use — the bridge a
// tree-sitter node's range crosses on its way to the selection engine.
func (b *Buffer) CharRange(r Range) CharIndexRange {
	return CharIndexRange{
		Start: b.ByteToChar(r.Start),
		End:   b.ByteToChar(r.End),
	}
}

// ByteRange converts a char range into byte bounds, the inverse of
// CharRange, for handing selection-engine ranges to byte-addressed
// collaborators.
func (b *Buffer) ByteRange(r CharIndexRange) Range {
	return Range{
		Start: b.CharToByte(r.Start),
		End:   b.CharToByte(r.End),
	}
}
