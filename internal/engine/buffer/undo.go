package buffer

import (
	"errors"
	"unicode/utf8"

	"github.com/selectron/selectron/internal/edit"
	"github.com/selectron/selectron/internal/engine/history"
	"github.com/selectron/selectron/internal/selection"
)

// ErrNoUndoHistory is returned by the UndoTree* navigation methods when
// the buffer has no undo tree yet (no edit has ever been committed) or
// the requested move has nowhere to go.
var ErrNoUndoHistory = errors.New("buffer: no undo history")

// UndoTreeDirection selects which edge of the undo tree to traverse.
type UndoTreeDirection int

const (
	// UndoTreeBack moves to the parent of the current node (Undo).
	UndoTreeBack UndoTreeDirection = iota
	// UndoTreeForward moves to the current node's preferred child (Redo).
	UndoTreeForward
	// UndoTreeSiblingPrev cycles to the previous sibling branch (Up).
	UndoTreeSiblingPrev
	// UndoTreeSiblingNext cycles to the next sibling branch (Down).
	UndoTreeSiblingNext
)

// UndoTreeApplyMovement moves the undo tree per dir and replays the
// resulting plan's transactions through the buffer's normal mutation
// pipeline (bypassing undo-tree recording, since these edits are
// themselves undo/redo/branch-switch, not new commits), per spec.md
// §4.2's UndoTree mode. It returns the restored selection set.
func (b *Buffer) UndoTreeApplyMovement(dir UndoTreeDirection) (selection.SelectionSet, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.undo == nil {
		return selection.SelectionSet{}, ErrNoUndoHistory
	}

	var (
		ok   bool
		plan history.Plan
	)
	switch dir {
	case UndoTreeBack:
		plan, ok = b.undo.Undo()
	case UndoTreeForward:
		plan, ok = b.undo.Redo()
	case UndoTreeSiblingPrev:
		plan, ok = b.undo.BranchSwitch(-1)
	case UndoTreeSiblingNext:
		plan, ok = b.undo.BranchSwitch(1)
	}
	if !ok {
		return selection.SelectionSet{}, ErrNoUndoHistory
	}

	for _, tx := range plan.Transactions {
		var delta selection.CharIndex
		for _, group := range tx.Sorted() {
			for _, action := range group {
				if action.Kind != edit.ActionEdit {
					continue
				}
				start := action.Edit.Range.Start + delta
				end := action.Edit.Range.End + delta
				b.replaceCharsLocked(CharIndexRange{Start: start, End: end}, action.Edit.New)
				delta += selection.CharIndex(utf8.RuneCountInString(action.Edit.New)) - (end - start)
			}
		}
	}

	if b.langProvider != nil {
		_ = b.reparseTreeLocked()
	}

	b.revisionID = NewRevisionID()
	return fromHistorySelections(plan.Selections), nil
}

// CanUndo reports whether the undo tree has a parent to move to.
func (b *Buffer) CanUndo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.undo != nil && b.undo.CanUndo()
}

// CanRedo reports whether the undo tree has a preferred child to move to.
func (b *Buffer) CanRedo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.undo != nil && b.undo.CanRedo()
}

// PreviousSelectionSet walks one step back through the buffer's
// selection-set history (distinct from the undo tree, per spec.md §4:
// this is pure cursor navigation, it never mutates content), clamping
// at the oldest snapshot.
func (b *Buffer) PreviousSelectionSet() (selection.SelectionSet, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.selectionHistoryCursor <= 0 || len(b.selectionHistory) == 0 {
		return selection.SelectionSet{}, false
	}
	b.selectionHistoryCursor--
	return snapshotToSet(b.selectionHistory[b.selectionHistoryCursor]), true
}

// NextSelectionSet walks one step forward through the buffer's
// selection-set history, clamping at the newest snapshot.
func (b *Buffer) NextSelectionSet() (selection.SelectionSet, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.selectionHistoryCursor >= len(b.selectionHistory)-1 {
		return selection.SelectionSet{}, false
	}
	b.selectionHistoryCursor++
	return snapshotToSet(b.selectionHistory[b.selectionHistoryCursor]), true
}

func snapshotToSet(snap SelectionSetSnapshot) selection.SelectionSet {
	sels := make([]selection.Selection, len(snap.Ranges))
	for i, r := range snap.Ranges {
		sels[i] = selection.NewSelection(selection.Range{Start: r.Start, End: r.End})
	}
	return selection.NewSelectionSetWithPrimary(sels, snap.Primary)
}
