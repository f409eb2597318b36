package editor

import "github.com/selectron/selectron/internal/engine/buffer"

type undoDirection int

const (
	undoBack undoDirection = iota
	undoForward
)

// undoTreeMove walks the buffer's undo tree back or forward,
// replaying the resulting plan and adopting its selection set —
// spec.md §4.7's Undo/Redo, distinct from UndoTree mode's sibling
// branch-switch (exposed separately once UndoTree mode is active, via
// the same buffer.UndoTreeDirection values).
func (e *Editor) undoTreeMove(b *buffer.Buffer, dir undoDirection) ([]Out, error) {
	bd := buffer.UndoTreeBack
	if dir == undoForward {
		bd = buffer.UndoTreeForward
	}
	result, err := b.UndoTreeApplyMovement(bd)
	if err != nil {
		if err == buffer.ErrNoUndoHistory {
			return nil, nil
		}
		return nil, err
	}
	e.selections = result
	return []Out{e.documentDidChange(b)}, nil
}

// undoTreeSibling cycles to a sibling branch of the undo tree, the
// movement UndoTree mode exposes (spec.md §4.2's branch-switchable
// undo tree) in place of Undo/Redo's linear back/forward.
func (e *Editor) undoTreeSibling(b *buffer.Buffer, next bool) ([]Out, error) {
	dir := buffer.UndoTreeSiblingPrev
	if next {
		dir = buffer.UndoTreeSiblingNext
	}
	result, err := b.UndoTreeApplyMovement(dir)
	if err != nil {
		if err == buffer.ErrNoUndoHistory {
			return nil, nil
		}
		return nil, err
	}
	e.selections = result
	return []Out{e.documentDidChange(b)}, nil
}
