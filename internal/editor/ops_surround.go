package editor

import (
	"github.com/selectron/selectron/internal/edit"
	"github.com/selectron/selectron/internal/engine/buffer"
	"github.com/selectron/selectron/internal/selection"
	"github.com/selectron/selectron/internal/surround"
)

// surround wraps every selection's extended range in op.Open/op.Close,
// growing the selection to include the delimiters — spec.md §4.8's
// enclose operation (S5).
func (e *Editor) surround(b *buffer.Buffer, op Op) ([]Out, error) {
	openLen := selection.CharIndex(len([]rune(op.Open)))
	closeLen := selection.CharIndex(len([]rune(op.Close)))
	return e.commit(b, true, func(sel selection.Selection) edit.ActionGroup {
		r := sel.ExtendedRange()
		return edit.ActionGroup{
			edit.NewEditAction(edit.NewInsert(r.Start, op.Open)),
			edit.NewEditAction(edit.NewInsert(r.End, op.Close)),
			edit.NewSelectAction(selection.NewSelection(selection.Range{
				Start: r.Start,
				End:   r.End + openLen + closeLen,
			})),
		}
	})
}

// resolveSurround locates op's enclosure pair around sel's cursor,
// returning the open and close delimiter positions.
func (e *Editor) resolveSurround(b *buffer.Buffer, sel selection.Selection, kind surround.Kind) (selection.Range, bool) {
	return surround.Resolve(b.Text(), kind, sel.Cursor(e.cursorDir), true)
}

// selectSurround sets each selection to the span inside or around the
// nearest enclosure of the requested kind — no edit, pure selection
// update.
func (e *Editor) selectSurround(b *buffer.Buffer, op Op) ([]Out, error) {
	found := false
	e.selections = e.selections.Map(func(sel selection.Selection) selection.Selection {
		pair, ok := e.resolveSurround(b, sel, op.Enclosure)
		if !ok {
			return sel
		}
		found = true
		if op.SelectAround {
			return sel.WithRange(selection.Range{Start: pair.Start, End: pair.End + 1})
		}
		return sel.WithRange(selection.Range{Start: pair.Start + 1, End: pair.End})
	}).Dedup()
	if !found {
		return []Out{showInfo("Select Surround", "no "+op.Enclosure.String()+" enclosure found")}, nil
	}
	return nil, nil
}

// deleteSurround removes exactly the two delimiter characters of the
// nearest enclosure, leaving the selection on the content they held.
func (e *Editor) deleteSurround(b *buffer.Buffer, op Op) ([]Out, error) {
	return e.commit(b, true, func(sel selection.Selection) edit.ActionGroup {
		pair, ok := e.resolveSurround(b, sel, op.Enclosure)
		if !ok {
			return nil
		}
		return edit.ActionGroup{
			edit.NewEditAction(edit.NewDelete(selection.Range{Start: pair.Start, End: pair.Start + 1})),
			edit.NewEditAction(edit.NewDelete(selection.Range{Start: pair.End, End: pair.End + 1})),
			edit.NewSelectAction(selection.NewSelection(selection.Range{Start: pair.Start, End: pair.End - 1})),
		}
	})
}

// changeSurround replaces the enclosure's delimiters with the target
// kind's symbols, keeping the inner content selection.
func (e *Editor) changeSurround(b *buffer.Buffer, op Op) ([]Out, error) {
	newOpen, newClose := op.ToEnclosure.Symbols()
	return e.commit(b, true, func(sel selection.Selection) edit.ActionGroup {
		pair, ok := e.resolveSurround(b, sel, op.Enclosure)
		if !ok {
			return nil
		}
		return edit.ActionGroup{
			edit.NewEditAction(edit.NewReplace(selection.Range{Start: pair.Start, End: pair.Start + 1}, string(newOpen))),
			edit.NewEditAction(edit.NewReplace(selection.Range{Start: pair.End, End: pair.End + 1}, string(newClose))),
			edit.NewSelectAction(selection.NewSelection(selection.Range{Start: pair.Start + 1, End: pair.End})),
		}
	})
}
