package rope

// Iterators over a rope's chunks, lines, runes, and bytes. The rune
// iterator rides a Cursor, so every step also carries the CharIndex
// the selection engine addresses text by; the chunk iterator walks the
// tree directly with an explicit stack.

// chunkIterFrame is one level of the chunk iterator's traversal stack.
type chunkIterFrame struct {
	node     *Node
	childIdx int
	chunkIdx int
	offset   ByteOffset
}

// ChunkIterator yields each chunk with its starting byte offset.
type ChunkIterator struct {
	rope       Rope
	stack      []chunkIterFrame
	started    bool
	chunk      Chunk
	chunkStart ByteOffset
}

// Chunks returns an iterator over all chunks, in text order.
func (r Rope) Chunks() *ChunkIterator {
	return &ChunkIterator{rope: r, stack: make([]chunkIterFrame, 0, 16)}
}

// Next advances to the next chunk, reporting false when done.
func (it *ChunkIterator) Next() bool {
	if !it.started {
		it.started = true
		if it.rope.root == nil {
			return false
		}
		it.stack = append(it.stack, chunkIterFrame{node: it.rope.root})
		return it.findNextChunk()
	}
	if len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		if frame.node.IsLeaf() {
			frame.chunkIdx++
		}
	}
	return it.findNextChunk()
}

func (it *ChunkIterator) findNextChunk() bool {
	for len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		node := frame.node

		if node.IsLeaf() {
			if frame.chunkIdx < len(node.chunks) {
				offset := frame.offset
				for i := 0; i < frame.chunkIdx; i++ {
					offset += ByteOffset(node.chunks[i].Len())
				}
				it.chunk = node.chunks[frame.chunkIdx]
				it.chunkStart = offset
				return true
			}
			it.stack = it.stack[:len(it.stack)-1]
			if len(it.stack) > 0 {
				it.stack[len(it.stack)-1].childIdx++
			}
			continue
		}

		if frame.childIdx < len(node.children) {
			offset := frame.offset
			for i := 0; i < frame.childIdx; i++ {
				offset += node.childSummaries[i].Bytes
			}
			it.stack = append(it.stack, chunkIterFrame{
				node:   node.children[frame.childIdx],
				offset: offset,
			})
			continue
		}

		it.stack = it.stack[:len(it.stack)-1]
		if len(it.stack) > 0 {
			it.stack[len(it.stack)-1].childIdx++
		}
	}
	return false
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk { return it.chunk }

// Offset returns the byte offset where the current chunk starts.
func (it *ChunkIterator) Offset() ByteOffset { return it.chunkStart }

// LineIterator yields each line's text and bounds. An empty rope
// yields a single empty line, consistent with LineCount.
type LineIterator struct {
	cursor    *Cursor
	lineNum   uint32
	lineStart ByteOffset
	lineEnd   ByteOffset
	text      string
	done      bool
	started   bool
}

// Lines returns an iterator over all lines.
func (r Rope) Lines() *LineIterator {
	return &LineIterator{cursor: NewCursor(r)}
}

// Next advances to the next line, reporting false when done.
func (it *LineIterator) Next() bool {
	if it.done {
		return false
	}
	if !it.started {
		it.started = true
		if it.cursor.rope.IsEmpty() {
			it.text = ""
			it.done = true
			return true
		}
	} else {
		it.lineNum++
		if it.lineNum >= it.cursor.rope.LineCount() {
			it.done = true
			return false
		}
	}
	it.lineStart = it.cursor.rope.LineStartOffset(it.lineNum)
	it.lineEnd = it.cursor.rope.LineEndOffset(it.lineNum)
	it.text = it.cursor.rope.Slice(it.lineStart, it.lineEnd)
	return true
}

// Text returns the current line's content without its newline.
func (it *LineIterator) Text() string { return it.text }

// Line returns the current 0-indexed line number.
func (it *LineIterator) Line() uint32 { return it.lineNum }

// StartOffset returns the current line's starting byte offset.
func (it *LineIterator) StartOffset() ByteOffset { return it.lineStart }

// EndOffset returns the current line's ending byte offset.
func (it *LineIterator) EndOffset() ByteOffset { return it.lineEnd }

// RuneIterator yields each rune with both its byte offset and its
// CharIndex, so selection-mode code scanning text never needs a
// separate coordinate conversion per rune.
type RuneIterator struct {
	cursor  *Cursor
	current rune
	size    int
	offset  ByteOffset
	char    CharIndex
	started bool
}

// Runes returns an iterator over all runes.
func (r Rope) Runes() *RuneIterator {
	return &RuneIterator{cursor: NewCursor(r)}
}

// Next advances to the next rune, reporting false when done.
func (it *RuneIterator) Next() bool {
	if !it.started {
		it.started = true
		if it.cursor.AtEnd() {
			return false
		}
	} else {
		if !it.cursor.Next() || it.cursor.AtEnd() {
			return false
		}
	}
	it.offset = it.cursor.Offset()
	it.char = it.cursor.Char()
	it.current, it.size = it.cursor.Rune()
	return it.size > 0
}

// Rune returns the current rune.
func (it *RuneIterator) Rune() rune { return it.current }

// Size returns the current rune's byte width.
func (it *RuneIterator) Size() int { return it.size }

// Offset returns the current rune's byte offset.
func (it *RuneIterator) Offset() ByteOffset { return it.offset }

// Char returns the current rune's CharIndex.
func (it *RuneIterator) Char() CharIndex { return it.char }

// ByteIterator yields each byte, riding the chunk iterator.
type ByteIterator struct {
	chunkIter *ChunkIterator
	chunkData string
	idx       int
	offset    ByteOffset
	started   bool
}

// Bytes returns an iterator over all bytes.
func (r Rope) Bytes() *ByteIterator {
	return &ByteIterator{chunkIter: r.Chunks()}
}

// Next advances to the next byte, reporting false when done.
func (it *ByteIterator) Next() bool {
	if !it.started {
		it.started = true
		if !it.chunkIter.Next() {
			return false
		}
		it.chunkData = it.chunkIter.Chunk().String()
		it.idx = 0
		it.offset = it.chunkIter.Offset()
		return len(it.chunkData) > 0
	}

	it.idx++
	it.offset++
	if it.idx >= len(it.chunkData) {
		if !it.chunkIter.Next() {
			return false
		}
		it.chunkData = it.chunkIter.Chunk().String()
		it.idx = 0
		it.offset = it.chunkIter.Offset()
		return len(it.chunkData) > 0
	}
	return true
}

// Byte returns the current byte.
func (it *ByteIterator) Byte() byte {
	if it.idx < len(it.chunkData) {
		return it.chunkData[it.idx]
	}
	return 0
}

// Offset returns the current byte's offset.
func (it *ByteIterator) Offset() ByteOffset { return it.offset }
