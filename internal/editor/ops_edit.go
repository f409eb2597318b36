package editor

import (
	"strings"

	"github.com/selectron/selectron/internal/edit"
	"github.com/selectron/selectron/internal/engine/buffer"
	"github.com/selectron/selectron/internal/movement"
	"github.com/selectron/selectron/internal/selection"
	"github.com/selectron/selectron/internal/selectionmode"
)

// insert types op.Text at every selection's cursor (selections are
// collapsed to a point on entering Insert mode), advancing the cursor
// past the inserted text. Never reparses: spec.md §3 reparses only on
// exit from Insert mode, not per keystroke.
func (e *Editor) insert(b *buffer.Buffer, op Op) ([]Out, error) {
	if e.mode == FindOneChar {
		return e.findOneChar(b, op.Text)
	}
	outs, err := e.commit(b, false, func(sel selection.Selection) edit.ActionGroup {
		at := sel.Range.Start
		newPos := at + selection.CharIndex(len([]rune(op.Text)))
		return edit.ActionGroup{
			edit.NewEditAction(edit.NewInsert(at, op.Text)),
			edit.NewSelectAction(selection.NewSelection(selection.Point(newPos))),
		}
	})
	if err != nil {
		return nil, err
	}
	// Typing an argument-list opener is the host's cue to ask its LSP
	// for signature help.
	if strings.Contains(op.Text, "(") || strings.Contains(op.Text, ",") {
		outs = append(outs, Out{Kind: OutRequestSignatureHelp})
	}
	return outs, nil
}

// backspace deletes the current selection if non-empty, else the
// single char before the cursor.
func (e *Editor) backspace(b *buffer.Buffer) ([]Out, error) {
	return e.commit(b, false, func(sel selection.Selection) edit.ActionGroup {
		r := sel.Range
		if r.IsEmpty() {
			if r.Start <= 0 {
				return nil
			}
			r = selection.Range{Start: r.Start - 1, End: r.Start}
		}
		return edit.ActionGroup{
			edit.NewEditAction(edit.NewDelete(r)),
			edit.NewSelectAction(selection.NewSelection(selection.Point(r.Start))),
		}
	})
}

// delete runs the active mode's MoveDeleteForward/MoveDeleteBackward
// (op.Direction: StepEnd forward, StepStart backward) and deletes the
// resulting range — contiguous modes extend the delete to swallow the
// gap to the next selection so the buffer stays contiguous under that
// mode (spec.md §4.3, S2).
func (e *Editor) delete(b *buffer.Buffer, op Op) ([]Out, error) {
	kind := selectionmode.MoveDeleteBackward
	lookDir := selectionmode.LookBackward
	if op.Direction == StepEnd {
		kind = selectionmode.MoveDeleteForward
		lookDir = selectionmode.LookForward
	}
	outs, err := e.commit(b, true, func(sel selection.Selection) edit.ActionGroup {
		// Deleting an extended selection deletes the whole hull and
		// collapses to a cursor at its start (spec.md §4.4).
		if sel.IsExtending() {
			r := sel.ExtendedRange()
			return edit.ActionGroup{
				edit.NewEditAction(edit.NewDelete(r)),
				edit.NewSelectAction(selection.NewSelection(selection.Point(r.Start))),
			}
		}
		target, ok := selectionmode.Apply(e.selMode, e.params(b, sel), selectionmode.Movement{Kind: kind})
		if !ok || target.Range.IsEmpty() {
			return nil
		}
		return edit.ActionGroup{
			edit.NewEditAction(edit.NewDelete(target.Range)),
			edit.NewSelectAction(selection.NewSelection(selection.Point(target.Range.Start))),
		}
	})
	if err != nil {
		return nil, err
	}
	// Snap each collapsed cursor onto its containing range so the
	// surviving sibling becomes the selection (S2: deleting a:A in a
	// parameter list leaves b:B selected).
	m := selectionmode.Movement{Kind: selectionmode.MoveCurrent, IfNotFound: lookDir}
	e.selections = movement.Apply(b, e.selections, e.selMode, m, e.params(b, selection.Selection{}))
	return outs, nil
}

// deleteWordBackward deletes from the cursor back to the previous
// word boundary (op.Short: to the boundary only, vs. swallowing the
// whitespace before it too), the "smart backspace" Insert-mode
// shortcut.
func (e *Editor) deleteWordBackward(b *buffer.Buffer, op Op) ([]Out, error) {
	return e.commit(b, false, func(sel selection.Selection) edit.ActionGroup {
		cursor := sel.Range.Start
		params := e.params(b, sel)
		params.SkipSymbols = true
		prev, ok := selectionmode.Apply(selectionmode.Word, params, selectionmode.Movement{Kind: selectionmode.MoveLeft})
		start := selection.CharIndex(0)
		if ok {
			if op.Short {
				start = prev.Range.End
			} else {
				start = prev.Range.Start
			}
		}
		if start >= cursor {
			return nil
		}
		return edit.ActionGroup{
			edit.NewEditAction(edit.NewDelete(selection.Range{Start: start, End: cursor})),
			edit.NewSelectAction(selection.NewSelection(selection.Point(start))),
		}
	})
}

// killLine deletes from the cursor to the end (StepEnd) or start
// (StepStart) of its current line.
func (e *Editor) killLine(b *buffer.Buffer, op Op) ([]Out, error) {
	return e.commit(b, true, func(sel selection.Selection) edit.ActionGroup {
		cursor := sel.Range.Start
		line := b.CharToLine(cursor)
		lineStart := b.LineToChar(line)
		lineEnd := lineStart + selection.CharIndex(len([]rune(b.LineText(line))))

		var r selection.Range
		if op.Direction == StepEnd {
			if cursor >= lineEnd {
				return nil
			}
			r = selection.Range{Start: cursor, End: lineEnd}
		} else {
			if cursor <= lineStart {
				return nil
			}
			r = selection.Range{Start: lineStart, End: cursor}
		}
		return edit.ActionGroup{
			edit.NewEditAction(edit.NewDelete(r)),
			edit.NewSelectAction(selection.NewSelection(selection.Point(r.Start))),
		}
	})
}

// change deletes every current selection's content and enters Insert
// mode with the cursor left at the deletion point — spec.md §4.7's
// Change, the combination of Delete-as-selection-contents and
// EnterInsertMode(Start).
func (e *Editor) change(b *buffer.Buffer) ([]Out, error) {
	outs, err := e.commit(b, true, func(sel selection.Selection) edit.ActionGroup {
		if sel.Range.IsEmpty() {
			return nil
		}
		return edit.ActionGroup{
			edit.NewEditAction(edit.NewDelete(sel.Range)),
			edit.NewSelectAction(selection.NewSelection(selection.Point(sel.Range.Start))),
		}
	})
	if err != nil {
		return nil, err
	}
	e.mode = Insert
	return outs, nil
}
