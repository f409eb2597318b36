package rope

import (
	"io"
	"strings"
)

// CharIndex is a position expressed as a count of Unicode scalar
// values (runes) from the start of the rope. Selections, selection
// modes, and the movement engine all address text in CharIndex; byte
// offsets exist at this layer for UTF-8 storage and for collaborators
// that speak bytes (tree-sitter, file I/O).
type CharIndex uint64

// Rope is the immutable, structurally-shared text sequence the whole
// editing engine is built on. Every operation returns a new Rope and
// leaves the receiver untouched, which is what makes buffer snapshots
// and the undo tree cheap. Byte, char, and line coordinates are all
// resolved by summary-guided descent in O(log n).
type Rope struct {
	root *Node
}

// New returns an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString builds a rope over s.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

// FromReader builds a rope by streaming r through a Builder.
func FromReader(r io.Reader) (Rope, error) {
	var b Builder
	if _, err := b.ReadFrom(r); err != nil {
		return Rope{}, err
	}
	return b.Build(), nil
}

// buildFromChunks packs chunks into leaves and stacks the leaves into
// a balanced tree bottom-up.
func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	var leaves []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := i + MaxChunksPerLeaf
		if end > len(chunks) {
			end = len(chunks)
		}
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeafNodeWithChunks(leafChunks))
	}

	nodes := leaves
	for len(nodes) > 1 {
		var parents []*Node
		for i := 0; i < len(nodes); i += MaxChildren {
			end := i + MaxChildren
			if end > len(nodes) {
				end = len(nodes)
			}
			children := make([]*Node, end-i)
			copy(children, nodes[i:end])
			parents = append(parents, newInternalNode(children))
		}
		nodes = parents
	}
	return Rope{root: nodes[0]}
}

// Len returns the total byte length.
func (r Rope) Len() ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.Len()
}

// LenChars returns the total length in chars, the length every
// selection range is clamped against.
func (r Rope) LenChars() CharIndex {
	if r.root == nil {
		return 0
	}
	return CharIndex(r.root.summary.Chars)
}

// LineCount returns the number of lines (newlines + 1). A rope ending
// in a newline therefore reports one trailing empty line; line-ranging
// callers account for that phantom line deliberately.
func (r Rope) LineCount() uint32 {
	if r.root == nil {
		return 1
	}
	return r.root.LineCount()
}

// IsEmpty reports whether the rope holds no text.
func (r Rope) IsEmpty() bool { return r.Len() == 0 }

// Summary returns the aggregated metrics for the whole rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{Flags: FlagASCII}
	}
	return r.root.summary
}

// String materializes the full text. Use sparingly on large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(int(r.Len()))
	r.root.writeTo(&sb)
	return sb.String()
}

// Slice returns the text in the byte range [start, end).
func (r Rope) Slice(start, end ByteOffset) string {
	if r.root == nil || start >= end {
		return ""
	}
	return r.root.slice(start, end)
}

// SliceChars returns the text between two char positions, the slicing
// primitive selections and edits use.
func (r Rope) SliceChars(start, end CharIndex) string {
	return r.Slice(r.CharToByte(start), r.CharToByte(end))
}

// CharToByte converts a char position to its byte offset by a single
// summary-guided descent; a position at or past LenChars maps to
// Len(). O(log n).
func (r Rope) CharToByte(c CharIndex) ByteOffset {
	if r.root == nil || c == 0 {
		return 0
	}
	if uint64(c) >= r.root.summary.Chars {
		return r.root.summary.Bytes
	}
	return r.root.charToByte(uint64(c))
}

// ByteToChar converts a byte offset to the count of chars before it,
// the inverse descent of CharToByte. O(log n).
func (r Rope) ByteToChar(b ByteOffset) CharIndex {
	if r.root == nil || b == 0 {
		return 0
	}
	if b >= r.root.summary.Bytes {
		return CharIndex(r.root.summary.Chars)
	}
	return CharIndex(r.root.byteToChar(b))
}

// CharToLine returns the 0-indexed line containing char position c.
func (r Rope) CharToLine(c CharIndex) uint32 {
	return r.OffsetToPoint(r.CharToByte(c)).Line
}

// LineToChar returns the char position of the first character of the
// given line.
func (r Rope) LineToChar(line uint32) CharIndex {
	return r.ByteToChar(r.LineStartOffset(line))
}

// CharToPosition converts a char position to a line/column Point whose
// column is measured in chars, the coordinate the editor's cursor
// rendering and vertical movement use.
func (r Rope) CharToPosition(c CharIndex) Point {
	byteOffset := r.CharToByte(c)
	point := r.OffsetToPoint(byteOffset)
	lineStartChar := r.ByteToChar(r.LineStartOffset(point.Line))
	return Point{Line: point.Line, Column: uint32(c - lineStartChar)}
}

// PositionToChar converts a line/char-column Point back to a char
// position, clamping the column to the line's end.
func (r Rope) PositionToChar(p Point) CharIndex {
	lineStartChar := r.ByteToChar(r.LineStartOffset(p.Line))
	lineEndChar := r.ByteToChar(r.LineEndOffset(p.Line))
	c := lineStartChar + CharIndex(p.Column)
	if c > lineEndChar {
		return lineEndChar
	}
	return c
}

// ByteAt returns the byte at offset, descending by child byte counts.
func (r Rope) ByteAt(offset ByteOffset) (byte, bool) {
	if r.root == nil || offset >= r.Len() {
		return 0, false
	}
	node := r.root
	rest := uint64(offset)
	for !node.IsLeaf() {
		idx, within := node.childAt(byBytes, rest)
		node = node.children[idx]
		rest = within
	}
	for _, chunk := range node.chunks {
		if rest < uint64(chunk.Len()) {
			return chunk.String()[rest], true
		}
		rest -= uint64(chunk.Len())
	}
	return 0, false
}

// Insert returns a rope with text inserted at the byte offset.
func (r Rope) Insert(offset ByteOffset, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.root == nil || r.Len() == 0 {
		return FromString(text)
	}
	if offset == 0 {
		return FromString(text).Concat(r)
	}
	if offset >= r.Len() {
		return r.Concat(FromString(text))
	}
	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete returns a rope without the byte range [start, end).
func (r Rope) Delete(start, end ByteOffset) Rope {
	if r.root == nil || start >= end {
		return r
	}
	ropeLen := r.Len()
	if start >= ropeLen {
		return r
	}
	if end > ropeLen {
		end = ropeLen
	}

	switch {
	case start == 0 && end >= ropeLen:
		return New()
	case start == 0:
		_, right := r.Split(end)
		return right
	case end >= ropeLen:
		left, _ := r.Split(start)
		return left
	}

	left, temp := r.Split(start)
	_, right := temp.Split(end - start)
	return left.Concat(right)
}

// Replace returns a rope with [start, end) swapped for text.
func (r Rope) Replace(start, end ByteOffset, text string) Rope {
	if start >= end && len(text) == 0 {
		return r
	}
	if start >= end {
		return r.Insert(start, text)
	}
	if len(text) == 0 {
		return r.Delete(start, end)
	}
	return r.Delete(start, end).Insert(start, text)
}

// Split cuts the rope at a byte offset into [0, offset) and
// [offset, end) halves.
func (r Rope) Split(offset ByteOffset) (Rope, Rope) {
	if r.root == nil || offset == 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}
	leftRoot, rightRoot := r.root.split(offset)
	return Rope{root: leftRoot}, Rope{root: rightRoot}
}

// Concat joins two ropes.
func (r Rope) Concat(other Rope) Rope {
	if r.root == nil || r.Len() == 0 {
		return other
	}
	if other.root == nil || other.Len() == 0 {
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// LineStartOffset returns the byte offset where the given line begins.
func (r Rope) LineStartOffset(line uint32) ByteOffset {
	if r.root == nil || line == 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}
	cursor := NewCursor(r)
	if cursor.SeekLine(line) {
		return cursor.Offset()
	}
	return r.Len()
}

// LineEndOffset returns the byte offset where the given line's content
// ends, excluding its newline.
func (r Rope) LineEndOffset(line uint32) ByteOffset {
	if r.root == nil {
		return 0
	}
	lineCount := r.LineCount()
	if line >= lineCount {
		return r.Len()
	}
	if line == lineCount-1 {
		return r.Len()
	}
	nextStart := r.LineStartOffset(line + 1)
	if nextStart > 0 {
		return nextStart - 1
	}
	return 0
}

// LineText returns the given line's content without its newline.
func (r Rope) LineText(line uint32) string {
	return r.Slice(r.LineStartOffset(line), r.LineEndOffset(line))
}

// OffsetToPoint converts a byte offset to a line/byte-column Point.
func (r Rope) OffsetToPoint(offset ByteOffset) Point {
	if r.root == nil || offset == 0 {
		return Point{}
	}
	if offset >= r.Len() {
		lastLine := r.LineCount() - 1
		return Point{
			Line:   lastLine,
			Column: uint32(r.Len() - r.LineStartOffset(lastLine)),
		}
	}
	cursor := NewCursor(r)
	cursor.SeekOffset(offset)
	return cursor.Point()
}

// PointToOffset converts a line/byte-column Point to a byte offset,
// clamping the column to the line's end.
func (r Rope) PointToOffset(point Point) ByteOffset {
	if r.root == nil {
		return 0
	}
	lineStart := r.LineStartOffset(point.Line)
	lineEnd := r.LineEndOffset(point.Line)
	if ByteOffset(point.Column) >= lineEnd-lineStart {
		return lineEnd
	}
	return lineStart + ByteOffset(point.Column)
}

// Height returns the tree height, for balance checks in tests.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// ChunkCount returns the number of chunks, for tests.
func (r Rope) ChunkCount() int {
	if r.root == nil {
		return 0
	}
	return countChunks(r.root)
}

func countChunks(n *Node) int {
	if n.IsLeaf() {
		return len(n.chunks)
	}
	count := 0
	for _, child := range n.children {
		count += countChunks(child)
	}
	return count
}

// Equals compares content chunk-by-chunk, ignoring tree shape.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}
	a := r.Chunks()
	b := other.Chunks()
	for a.Next() {
		if !b.Next() {
			return false
		}
		if a.Chunk().String() != b.Chunk().String() {
			return false
		}
	}
	return !b.Next()
}
