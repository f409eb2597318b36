package buffer

import (
	"fmt"

	"github.com/selectron/selectron/internal/engine/rope"
)

// CharIndex represents a position as a count of Unicode scalar values
// from the start of the buffer, independent of how many bytes those
// scalars occupy. Selections, selection modes and the movement engine
// are all expressed in CharIndex rather than ByteOffset.
type CharIndex = int64

// CharIndexRange is a half-open range [Start, End) expressed in chars.
type CharIndexRange struct {
	Start CharIndex
	End   CharIndex
}

// NewCharIndexRange creates a CharIndexRange from start and end.
func NewCharIndexRange(start, end CharIndex) CharIndexRange {
	return CharIndexRange{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r CharIndexRange) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in chars.
func (r CharIndexRange) Len() CharIndex {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r CharIndexRange) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if the range is valid (Start <= End).
func (r CharIndexRange) IsValid() bool {
	return r.Start <= r.End
}

// Contains returns true if the given char index is within the range.
func (r CharIndexRange) Contains(c CharIndex) bool {
	return c >= r.Start && c < r.End
}

// ContainsRange returns true if the given range is entirely within this range.
func (r CharIndexRange) ContainsRange(other CharIndexRange) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Overlaps returns true if this range overlaps with another range.
func (r CharIndexRange) Overlaps(other CharIndexRange) bool {
	return r.Start < other.End && other.Start < r.End
}

// Shift returns a new range shifted by the given delta.
func (r CharIndexRange) Shift(delta CharIndex) CharIndexRange {
	return CharIndexRange{Start: r.Start + delta, End: r.End + delta}
}

// LenChars returns the total number of chars (runes) in the buffer.
func (b *Buffer) LenChars() CharIndex {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return CharIndex(b.rope.LenChars())
}

// CharToByte converts a CharIndex to its byte offset.
func (b *Buffer) CharToByte(c CharIndex) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(b.rope.CharToByte(rope.CharIndex(c)))
}

// ByteToChar converts a byte offset to its CharIndex.
func (b *Buffer) ByteToChar(off ByteOffset) CharIndex {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return CharIndex(b.rope.ByteToChar(rope.ByteOffset(off)))
}

// CharToLine converts a CharIndex to its 0-indexed line number.
func (b *Buffer) CharToLine(c CharIndex) uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.CharToLine(rope.CharIndex(c))
}

// LineToChar converts a 0-indexed line number to the CharIndex of its
// first character.
func (b *Buffer) LineToChar(line uint32) CharIndex {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return CharIndex(b.rope.LineToChar(line))
}

// CharToPosition converts a CharIndex to a line/char-column Point.
func (b *Buffer) CharToPosition(c CharIndex) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	p := b.rope.CharToPosition(rope.CharIndex(c))
	return Point{Line: p.Line, Column: p.Column}
}

// PositionToChar converts a line/char-column Point to a CharIndex.
func (b *Buffer) PositionToChar(p Point) CharIndex {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return CharIndex(b.rope.PositionToChar(rope.Point{Line: p.Line, Column: p.Column}))
}

// TextCharRange returns the text in the given char range.
func (b *Buffer) TextCharRange(r CharIndexRange) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.SliceChars(rope.CharIndex(r.Start), rope.CharIndex(r.End))
}
