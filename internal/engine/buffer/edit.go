package buffer

import "fmt"

// Edit is the byte-level mutation primitive under the buffer's
// char-level transaction machinery: replace the bytes in Range with
// NewText. ApplyEditTransaction expresses each char-addressed action
// as one of these once the rope has converted its coordinates; hosts
// applying raw byte edits (external workspace edits arriving in byte
// form) use ApplyEdit directly.
type Edit struct {
	Range   Range
	NewText string
}

// NewEdit creates an Edit replacing r with newText.
func NewEdit(r Range, newText string) Edit {
	return Edit{Range: r, NewText: newText}
}

// NewInsert creates an Edit inserting text at a zero-length point.
func NewInsert(offset ByteOffset, text string) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, NewText: text}
}

// NewDelete creates an Edit removing [start, end).
func NewDelete(start, end ByteOffset) Edit {
	return Edit{Range: Range{Start: start, End: end}}
}

func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
}

// IsInsert reports a pure insertion (empty range, non-empty text).
func (e Edit) IsInsert() bool { return e.Range.IsEmpty() && e.NewText != "" }

// IsDelete reports a pure deletion.
func (e Edit) IsDelete() bool { return !e.Range.IsEmpty() && e.NewText == "" }

// IsReplace reports a replacement of existing text.
func (e Edit) IsReplace() bool { return !e.Range.IsEmpty() && e.NewText != "" }

// IsNoOp reports an edit that changes nothing.
func (e Edit) IsNoOp() bool { return e.Range.IsEmpty() && e.NewText == "" }

// Delta returns the byte-length change the edit causes, the offset
// every stored range after the edit shifts by.
func (e Edit) Delta() ByteOffset {
	return ByteOffset(len(e.NewText)) - e.Range.Len()
}

// EditResult reports what one applied edit did: the range it covered,
// the range its replacement occupies, the text it displaced, and the
// length delta.
type EditResult struct {
	OldRange Range
	NewRange Range
	OldText  string
	Delta    int64
}
