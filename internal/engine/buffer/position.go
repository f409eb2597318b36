package buffer

import (
	"fmt"
	"sync/atomic"
)

// ByteOffset is a byte position in the buffer, the coordinate the rope
// stores text in and byte-addressed collaborators (tree-sitter, file
// I/O) speak. Everything selection-shaped uses CharIndex instead.
type ByteOffset = int64

// comparePos orders two line/column pairs lexicographically, shared by
// every position type in the package.
func comparePos(line1, col1, line2, col2 uint32) int {
	switch {
	case line1 != line2:
		if line1 < line2 {
			return -1
		}
		return 1
	case col1 != col2:
		if col1 < col2 {
			return -1
		}
		return 1
	}
	return 0
}

// Point is a 0-indexed line/column position. CharToPosition and
// PositionToChar measure the column in chars; OffsetToPoint and
// PointToOffset measure it in bytes.
type Point struct {
	Line   uint32
	Column uint32
}

func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1, 0, or 1 ordering p against other.
func (p Point) Compare(other Point) int {
	return comparePos(p.Line, p.Column, other.Line, other.Column)
}

// Before reports whether p precedes other.
func (p Point) Before(other Point) bool { return p.Compare(other) < 0 }

// After reports whether p follows other.
func (p Point) After(other Point) bool { return p.Compare(other) > 0 }

// IsZero reports whether p is the origin.
func (p Point) IsZero() bool { return p.Line == 0 && p.Column == 0 }

// PointUTF16 is a line/column position with the column in UTF-16 code
// units, the encoding diagnostics arrive in from LSP hosts. The core
// converts these to char coordinates at the buffer boundary and never
// stores them.
type PointUTF16 struct {
	Line   uint32
	Column uint32
}

func (p PointUTF16) String() string {
	return fmt.Sprintf("(%d:%d utf16)", p.Line, p.Column)
}

// Compare returns -1, 0, or 1 ordering p against other.
func (p PointUTF16) Compare(other PointUTF16) int {
	return comparePos(p.Line, p.Column, other.Line, other.Column)
}

// Before reports whether p precedes other.
func (p PointUTF16) Before(other PointUTF16) bool { return p.Compare(other) < 0 }

// After reports whether p follows other.
func (p PointUTF16) After(other PointUTF16) bool { return p.Compare(other) > 0 }

// IsZero reports whether p is the origin.
func (p PointUTF16) IsZero() bool { return p.Line == 0 && p.Column == 0 }

// RevisionID identifies one buffer content state; every mutation mints
// a new one, which is how change notifications and the syntax layer
// detect staleness.
type RevisionID uint64

var revisionCounter uint64

// NewRevisionID returns a process-unique revision id.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}
