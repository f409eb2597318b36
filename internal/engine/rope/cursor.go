package rope

import "unicode/utf8"

// Cursor is a resumable position inside a rope. It keeps the root-to-
// leaf path it descended through, so seeking is O(log n) and stepping
// to the next rune is amortized O(1) — the workhorse under the rune
// iterator and the line lookups. Alongside the byte offset it tracks
// the char position, so code iterating runes gets the CharIndex of
// each without a second conversion.
type Cursor struct {
	rope     Rope
	path     []cursorFrame
	offset   ByteOffset
	char     CharIndex
	point    Point
	pointSet bool

	leafNode *Node
	chunkIdx int
	chunkOff int
}

// cursorFrame records one descent step: which child was taken and the
// byte/char/line totals at that child's start.
type cursorFrame struct {
	node     *Node
	childIdx int
	offset   ByteOffset
	char     CharIndex
	line     uint32
}

// NewCursor returns a cursor at the start of r.
func NewCursor(r Rope) *Cursor {
	c := &Cursor{rope: r, path: make([]cursorFrame, 0, 16)}
	c.seekToStart()
	return c
}

func (c *Cursor) seekToStart() {
	c.path = c.path[:0]
	c.offset = 0
	c.char = 0
	c.point = Point{}
	c.pointSet = true

	if c.rope.root == nil {
		c.leafNode = nil
		return
	}
	node := c.rope.root
	for !node.IsLeaf() {
		c.path = append(c.path, cursorFrame{node: node})
		node = node.children[0]
	}
	c.leafNode = node
	c.chunkIdx = 0
	c.chunkOff = 0
}

// Offset returns the current byte offset.
func (c *Cursor) Offset() ByteOffset { return c.offset }

// Char returns the current char position.
func (c *Cursor) Char() CharIndex { return c.char }

// Point returns the current line/column, computing it lazily from the
// descent path.
func (c *Cursor) Point() Point {
	if !c.pointSet {
		c.computePoint()
	}
	return c.point
}

func (c *Cursor) computePoint() {
	c.point = Point{}
	for _, frame := range c.path {
		for i := 0; i < frame.childIdx; i++ {
			c.point.Line += frame.node.childSummaries[i].Lines
		}
	}
	if c.leafNode != nil {
		for i := 0; i < c.chunkIdx; i++ {
			c.point.Line += c.leafNode.chunks[i].Summary().Lines
		}
		if c.chunkIdx < len(c.leafNode.chunks) {
			chunk := c.leafNode.chunks[c.chunkIdx]
			for _, ch := range chunk.String()[:c.chunkOff] {
				if ch == '\n' {
					c.point.Line++
				}
			}
		}
	}
	c.point.Column = uint32(c.offset - c.LineStartOffset())
	c.pointSet = true
}

// LineStartOffset returns the byte offset where the current line
// begins, scanning backward chunk by chunk (each scan bounded by
// MaxChunkSize) until a newline turns up.
func (c *Cursor) LineStartOffset() ByteOffset {
	if c.offset == 0 {
		return 0
	}

	if c.leafNode != nil && c.chunkIdx < len(c.leafNode.chunks) {
		chunk := c.leafNode.chunks[c.chunkIdx]
		chunkStart := c.offset - ByteOffset(c.chunkOff)

		if pos := chunk.newlineBefore(c.chunkOff); pos >= 0 {
			return chunkStart + ByteOffset(pos) + 1
		}

		for i := c.chunkIdx - 1; i >= 0; i-- {
			prev := c.leafNode.chunks[i]
			chunkStart -= ByteOffset(prev.Len())
			if pos := prev.lastNewline(); pos >= 0 {
				return chunkStart + ByteOffset(pos) + 1
			}
		}

		// The line starts before this leaf; walk bytes back through
		// the rope until the previous newline.
		searchOffset := chunkStart
		for searchOffset > 0 {
			b, ok := c.rope.ByteAt(searchOffset - 1)
			if !ok || b == '\n' {
				return searchOffset
			}
			searchOffset--
		}
	}
	return 0
}

// SeekOffset positions the cursor at a byte offset (snapped back to
// the containing rune's start if given a mid-rune offset). Reports
// false when the offset is past the end.
func (c *Cursor) SeekOffset(offset ByteOffset) bool {
	if c.rope.root == nil {
		return offset == 0
	}
	ropeLen := c.rope.Len()
	if offset > ropeLen {
		return false
	}

	c.path = c.path[:0]
	c.offset = offset
	c.pointSet = false

	if offset == ropeLen {
		return c.seekToEnd()
	}

	node := c.rope.root
	var nodeStart ByteOffset
	var nodeStartChar CharIndex
	var nodeStartLine uint32

	for !node.IsLeaf() {
		childStart := nodeStart
		childStartChar := nodeStartChar
		childStartLine := nodeStartLine
		found := false
		for i, summary := range node.childSummaries {
			if childStart+summary.Bytes > offset {
				c.path = append(c.path, cursorFrame{
					node:     node,
					childIdx: i,
					offset:   childStart,
					char:     childStartChar,
					line:     childStartLine,
				})
				node = node.children[i]
				nodeStart = childStart
				nodeStartChar = childStartChar
				nodeStartLine = childStartLine
				found = true
				break
			}
			childStart += summary.Bytes
			childStartChar += CharIndex(summary.Chars)
			childStartLine += summary.Lines
		}
		if !found {
			return false
		}
	}

	c.leafNode = node
	chunkStart := nodeStart
	chars := nodeStartChar
	for i, chunk := range node.chunks {
		chunkEnd := chunkStart + ByteOffset(chunk.Len())
		if chunkEnd > offset {
			c.chunkIdx = i
			c.chunkOff = int(offset - chunkStart)
			if c.chunkOff > 0 {
				text := chunk.String()
				for c.chunkOff < len(text) && !isRuneStart(text[c.chunkOff]) {
					c.chunkOff--
					c.offset--
				}
			}
			c.char = chars + CharIndex(chunk.byteToChar(c.chunkOff))
			return true
		}
		chunkStart = chunkEnd
		chars += CharIndex(chunk.CharLen())
	}

	c.chunkIdx = len(node.chunks) - 1
	if c.chunkIdx >= 0 {
		c.chunkOff = node.chunks[c.chunkIdx].Len()
	} else {
		c.chunkOff = 0
	}
	c.char = chars
	return true
}

// SeekChar positions the cursor at a char position, descending by the
// Chars dimension the same way SeekOffset descends by bytes.
func (c *Cursor) SeekChar(char CharIndex) bool {
	if c.rope.root == nil {
		return char == 0
	}
	if uint64(char) > c.rope.root.summary.Chars {
		return false
	}
	return c.SeekOffset(c.rope.CharToByte(char))
}

func (c *Cursor) seekToEnd() bool {
	c.path = c.path[:0]
	c.offset = c.rope.Len()
	c.char = c.rope.LenChars()
	c.pointSet = false

	if c.rope.root == nil {
		c.leafNode = nil
		return true
	}

	node := c.rope.root
	var at ByteOffset
	var atChar CharIndex
	var atLine uint32
	for !node.IsLeaf() {
		last := len(node.children) - 1
		for i := 0; i < last; i++ {
			at += node.childSummaries[i].Bytes
			atChar += CharIndex(node.childSummaries[i].Chars)
			atLine += node.childSummaries[i].Lines
		}
		c.path = append(c.path, cursorFrame{
			node:     node,
			childIdx: last,
			offset:   at,
			char:     atChar,
			line:     atLine,
		})
		node = node.children[last]
	}

	c.leafNode = node
	if len(node.chunks) > 0 {
		c.chunkIdx = len(node.chunks) - 1
		c.chunkOff = node.chunks[c.chunkIdx].Len()
	} else {
		c.chunkIdx = 0
		c.chunkOff = 0
	}
	return true
}

// SeekLine positions the cursor at the start of the given line,
// descending by per-child newline counts and finishing with one
// bounded in-chunk newline scan.
func (c *Cursor) SeekLine(line uint32) bool {
	if c.rope.root == nil {
		return line == 0
	}
	if line == 0 {
		c.seekToStart()
		return true
	}
	if line >= c.rope.LineCount() {
		return false
	}

	c.path = c.path[:0]
	c.pointSet = false

	node := c.rope.root
	var at ByteOffset
	var atChar CharIndex
	var atLine uint32

	for !node.IsLeaf() {
		found := false
		for i, summary := range node.childSummaries {
			if atLine+summary.Lines >= line {
				c.path = append(c.path, cursorFrame{
					node:     node,
					childIdx: i,
					offset:   at,
					char:     atChar,
					line:     atLine,
				})
				node = node.children[i]
				found = true
				break
			}
			at += summary.Bytes
			atChar += CharIndex(summary.Chars)
			atLine += summary.Lines
		}
		if !found {
			return false
		}
	}

	c.leafNode = node
	remaining := line - atLine
	for i, chunk := range node.chunks {
		summary := chunk.Summary()
		if summary.Lines >= remaining {
			pos := chunk.nthNewline(remaining)
			if pos < 0 {
				return false
			}
			c.chunkIdx = i
			c.chunkOff = pos + 1
			c.offset = at + ByteOffset(c.chunkOff)
			c.char = atChar + CharIndex(chunk.byteToChar(c.chunkOff))
			c.point = Point{Line: line, Column: 0}
			c.pointSet = true
			return true
		}
		remaining -= summary.Lines
		at += ByteOffset(chunk.Len())
		atChar += CharIndex(chunk.CharLen())
	}
	return false
}

// Rune returns the rune at the current position, or (0, 0) at the end.
func (c *Cursor) Rune() (rune, int) {
	if c.leafNode == nil || c.chunkIdx >= len(c.leafNode.chunks) {
		return 0, 0
	}
	chunk := c.leafNode.chunks[c.chunkIdx]
	if c.chunkOff >= chunk.Len() {
		return 0, 0
	}
	return utf8.DecodeRuneInString(chunk.String()[c.chunkOff:])
}

// Byte returns the byte at the current position.
func (c *Cursor) Byte() (byte, bool) {
	if c.leafNode == nil || c.chunkIdx >= len(c.leafNode.chunks) {
		return 0, false
	}
	chunk := c.leafNode.chunks[c.chunkIdx]
	if c.chunkOff >= chunk.Len() {
		return 0, false
	}
	return chunk.String()[c.chunkOff], true
}

// Next advances by one rune, keeping byte, char, and (when already
// computed) line/column positions in step.
func (c *Cursor) Next() bool {
	if c.offset >= c.rope.Len() {
		return false
	}
	r, size := c.Rune()
	if size == 0 {
		return false
	}

	c.offset += ByteOffset(size)
	c.char++
	c.chunkOff += size

	if c.pointSet {
		if r == '\n' {
			c.point.Line++
			c.point.Column = 0
		} else {
			c.point.Column += uint32(size)
		}
	}

	if c.leafNode != nil && c.chunkIdx < len(c.leafNode.chunks) {
		if c.chunkOff >= c.leafNode.chunks[c.chunkIdx].Len() {
			c.advanceChunk()
		}
	}
	return true
}

func (c *Cursor) advanceChunk() {
	c.chunkIdx++
	c.chunkOff = 0
	if c.chunkIdx >= len(c.leafNode.chunks) {
		c.advanceLeaf()
	}
}

// advanceLeaf climbs the path to the nearest ancestor with an unvisited
// right sibling, then descends to that subtree's leftmost leaf.
func (c *Cursor) advanceLeaf() {
	for len(c.path) > 0 {
		frame := c.path[len(c.path)-1]
		c.path = c.path[:len(c.path)-1]

		nextIdx := frame.childIdx + 1
		if nextIdx >= len(frame.node.children) {
			continue
		}

		taken := frame.node.childSummaries[frame.childIdx]
		nextOffset := frame.offset + taken.Bytes
		nextChar := frame.char + CharIndex(taken.Chars)
		nextLine := frame.line + taken.Lines

		c.path = append(c.path, cursorFrame{
			node:     frame.node,
			childIdx: nextIdx,
			offset:   nextOffset,
			char:     nextChar,
			line:     nextLine,
		})

		node := frame.node.children[nextIdx]
		for !node.IsLeaf() {
			c.path = append(c.path, cursorFrame{
				node:   node,
				offset: nextOffset,
				char:   nextChar,
				line:   nextLine,
			})
			node = node.children[0]
		}
		c.leafNode = node
		c.chunkIdx = 0
		c.chunkOff = 0
		return
	}

	c.leafNode = nil
	c.chunkIdx = 0
	c.chunkOff = 0
}

// Prev steps back one rune by snapping to the previous rune start and
// re-seeking.
func (c *Cursor) Prev() bool {
	if c.offset == 0 {
		return false
	}
	prevOffset := c.offset - 1
	for prevOffset > 0 {
		b, ok := c.rope.ByteAt(prevOffset)
		if !ok || isRuneStart(b) {
			break
		}
		prevOffset--
	}
	c.SeekOffset(prevOffset)
	return true
}

// AtEnd reports whether the cursor is past the last rune.
func (c *Cursor) AtEnd() bool { return c.offset >= c.rope.Len() }

// AtStart reports whether the cursor is at position zero.
func (c *Cursor) AtStart() bool { return c.offset == 0 }

// Clone copies the cursor at its current position.
func (c *Cursor) Clone() *Cursor {
	dup := &Cursor{
		rope:     c.rope,
		path:     make([]cursorFrame, len(c.path)),
		offset:   c.offset,
		char:     c.char,
		point:    c.point,
		pointSet: c.pointSet,
		leafNode: c.leafNode,
		chunkIdx: c.chunkIdx,
		chunkOff: c.chunkOff,
	}
	copy(dup.path, c.path)
	return dup
}
