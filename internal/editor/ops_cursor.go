package editor

import (
	"fmt"

	"github.com/selectron/selectron/internal/engine/buffer"
	"github.com/selectron/selectron/internal/selection"
	"github.com/selectron/selectron/internal/selectionmode"
)

// selectionSnapshot converts the live selection set into the buffer's
// opaque history record.
func selectionSnapshot(set selection.SelectionSet) buffer.SelectionSetSnapshot {
	ranges := make([]buffer.CharIndexRange, set.Len())
	for i, sel := range set.All() {
		ranges[i] = toCharIndexRange(sel.Range)
	}
	return buffer.SelectionSetSnapshot{Ranges: ranges, Primary: set.PrimaryIndex()}
}

// cursorAddToAllSelections replaces the selection set with every range
// of the active mode's iter(), spec.md §4.4's `add_all`. In MultiCursor
// mode the candidates are restricted to ranges contained in an
// existing selection's extended range (spec.md §4.5's MultiCursor
// interaction), so a column of cursors can be narrowed to, say, every
// word inside the previously selected lines.
func (e *Editor) cursorAddToAllSelections(b *buffer.Buffer) ([]Out, error) {
	ranges := selectionmode.Iter(e.selMode, e.params(b, e.selections.Primary()))
	if len(ranges) == 0 {
		return nil, nil
	}

	if e.mode == MultiCursor {
		var restricted []selection.Range
		for _, r := range ranges {
			for _, sel := range e.selections.All() {
				ext := sel.ExtendedRange()
				if r.Start >= ext.Start && r.End <= ext.End {
					restricted = append(restricted, r)
					break
				}
			}
		}
		ranges = restricted
		if len(ranges) == 0 {
			return nil, nil
		}
	}

	primaryCursor := e.selections.Primary().Cursor(e.cursorDir)
	sels := make([]selection.Selection, len(ranges))
	primary := 0
	for i, r := range ranges {
		sels[i] = selection.NewSelection(r)
		if r.ContainsInclusive(primaryCursor) {
			primary = i
		}
	}
	e.selections = selection.NewSelectionSetWithPrimary(sels, primary)
	return nil, nil
}

// cursorKeepPrimaryOnly drops every secondary selection, spec.md
// §4.4's `only()`.
func (e *Editor) cursorKeepPrimaryOnly() ([]Out, error) {
	e.selections = e.selections.Only()
	return nil, nil
}

// cyclePrimarySelection rotates which selection is primary without
// changing any range — a transient movement that never touches
// selection history (spec.md §3's lifecycle rule).
func (e *Editor) cyclePrimarySelection(op Op) ([]Out, error) {
	delta := 1
	if op.Direction == StepStart {
		delta = -1
	}
	e.selections = e.selections.CyclePrimarySelection(delta)
	return nil, nil
}

// deleteCurrentCursor drops the primary selection; its neighbor in
// op.Direction becomes the new primary. A sole remaining cursor is
// never dropped (the NonEmpty invariant, spec.md §8 property 7).
func (e *Editor) deleteCurrentCursor(op Op) ([]Out, error) {
	delta := 1
	if op.Direction == StepStart {
		delta = -1
	}
	next, err := e.selections.DeleteCurrentSelection(delta)
	if err != nil {
		return nil, nil
	}
	e.selections = next
	return nil, nil
}

// swapCursorWithAnchor flips which endpoint of each range is treated
// as the cursor for neighbor lookup and insert positioning.
func (e *Editor) swapCursorWithAnchor() ([]Out, error) {
	if e.cursorDir == StepStart {
		e.cursorDir = StepEnd
	} else {
		e.cursorDir = StepStart
	}
	return nil, nil
}

// enableSelectionExtension captures each selection's current range as
// its extension anchor, spec.md §4.4.
func (e *Editor) enableSelectionExtension() ([]Out, error) {
	e.selections = e.selections.EnableSelectionExtension()
	return nil, nil
}

// swapExtensionDirection swaps each extending selection's range and
// anchor, flipping which edge further movement grows from.
func (e *Editor) swapExtensionDirection() ([]Out, error) {
	e.selections = e.selections.SwapInitialRangeDirection()
	return nil, nil
}

// toggleMark adds the primary selection's range to the buffer's
// persisted mark set, or removes it if an identical mark already
// exists — the Mark selection mode iterates whatever this leaves
// behind.
func (e *Editor) toggleMark(b *buffer.Buffer) ([]Out, error) {
	r := toCharIndexRange(e.selections.Primary().ExtendedRange())
	for name, existing := range b.Marks() {
		if existing == r {
			b.RemoveMark(name)
			return nil, nil
		}
	}
	b.SetMark(fmt.Sprintf("%d:%d", r.Start, r.End), r)
	return nil, nil
}

// findOneChar consumes the next typed character as a search target:
// each selection jumps to the nearest occurrence of that character in
// the look direction armed when FindOneChar mode was entered, then the
// editor drops back to Normal mode.
func (e *Editor) findOneChar(b *buffer.Buffer, text string) ([]Out, error) {
	e.mode = Normal
	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}
	target := runes[0]
	content := []rune(b.Text())

	e.selections = e.selections.Map(func(sel selection.Selection) selection.Selection {
		cursor := sel.Cursor(e.cursorDir)
		if e.ifNotFound == selectionmode.LookBackward {
			for i := int(cursor) - 1; i >= 0; i-- {
				if content[i] == target {
					return sel.WithRange(selection.Range{Start: selection.CharIndex(i), End: selection.CharIndex(i + 1)})
				}
			}
			return sel
		}
		for i := int(cursor) + 1; i < len(content); i++ {
			if content[i] == target {
				return sel.WithRange(selection.Range{Start: selection.CharIndex(i), End: selection.CharIndex(i + 1)})
			}
		}
		return sel
	}).Dedup()
	return nil, nil
}

// goBackSelectionSet and goForwardSelectionSet walk the buffer's
// bounded selection-set history deque (spec.md §4.2), a navigation
// separate from the undo tree: no content changes, only cursors.
func (e *Editor) goBackSelectionSet(b *buffer.Buffer) ([]Out, error) {
	if set, ok := b.PreviousSelectionSet(); ok {
		e.selections = set.Clamp(b.LenChars())
	}
	return nil, nil
}

func (e *Editor) goForwardSelectionSet(b *buffer.Buffer) ([]Out, error) {
	if set, ok := b.NextSelectionSet(); ok {
		e.selections = set.Clamp(b.LenChars())
	}
	return nil, nil
}
