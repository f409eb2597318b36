package buffer

import (
	"unicode/utf8"

	"github.com/selectron/selectron/internal/edit"
	"github.com/selectron/selectron/internal/engine/history"
	"github.com/selectron/selectron/internal/engine/rope"
	"github.com/selectron/selectron/internal/selection"
)

// ApplyEditTransaction is the buffer's single mutation entry point
// (spec.md §4.2, §4.6): it sorts tx's action groups, validates that
// their edit ranges are pairwise non-overlapping, applies each edit
// left-to-right while accumulating a char-length offset, applies
// Select actions in the same group against that offset, rebases every
// stored non-selection range, optionally reparses the syntax tree,
// clamps the resulting set to the new length, and records an undo-tree
// node iff any content changed. currentSelectionSet seeds both the
// offset-only fallback (used when a group carries no Select action)
// and, on the very first call, the undo tree's root snapshot.
func (b *Buffer) ApplyEditTransaction(tx edit.Transaction, currentSelectionSet selection.SelectionSet, reparse bool) (selection.SelectionSet, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.undo == nil {
		b.undo = history.NewTree(toHistorySelections(currentSelectionSet), b.maxUndoNodes())
	}

	sorted := tx.Sorted()
	if err := edit.ValidateNonOverlap(sorted); err != nil {
		return selection.SelectionSet{}, err
	}

	result, inversionGroups, changed, err := b.applyGroupsLocked(sorted, currentSelectionSet)
	if err != nil {
		return selection.SelectionSet{}, err
	}

	if reparse {
		_ = b.reparseTreeLocked()
	}

	if changed {
		b.dirty = true
		b.revisionID = NewRevisionID()
		inversion := edit.NewTransaction(inversionGroups...)
		b.undo.Commit(tx, inversion, toHistorySelections(result))
	}

	return result, nil
}

// applyGroupsLocked runs spec.md §4.6 steps 3-5 (mu already held) and
// additionally builds the inverse action groups (in reverse apply
// order, with each edit's New swapped back to the text it replaced)
// so the caller can hand them to the undo tree without a second pass
// over the buffer.
func (b *Buffer) applyGroupsLocked(sorted []edit.ActionGroup, current selection.SelectionSet) (selection.SelectionSet, []edit.ActionGroup, bool, error) {
	var delta CharIndex
	var newSelections []selection.Selection
	var inverseEdits []edit.Edit
	changed := false

	for _, group := range sorted {
		// Select actions carry coordinates already accounting for the
		// group's own edits; only the offset produced by earlier
		// groups applies to them (spec.md §4.6 step 4).
		deltaBefore := delta
		for _, action := range group {
			if action.Kind != edit.ActionEdit {
				continue
			}
			shifted := action.Edit.Range.Shift(delta)
			lenChars := CharIndex(b.rope.LenChars())
			if shifted.Start < 0 || shifted.End > lenChars || shifted.Start > shifted.End {
				return selection.SelectionSet{}, nil, false, ErrRangeInvalid
			}

			oldText := b.rope.SliceChars(rope.CharIndex(shifted.Start), rope.CharIndex(shifted.End))
			newLen := CharIndex(utf8.RuneCountInString(action.Edit.New))
			if !shifted.IsEmpty() || newLen > 0 {
				changed = true
			}
			inverseEdits = append(inverseEdits, edit.Invert(edit.Edit{Range: shifted, New: action.Edit.New}, oldText))

			b.replaceCharsLocked(CharIndexRange(shifted), action.Edit.New)
			delta += newLen - shifted.Len()
		}
		for _, action := range group {
			if action.Kind != edit.ActionSelect {
				continue
			}
			newSelections = append(newSelections, shiftSelection(action.Select, deltaBefore))
		}
	}

	lenChars := CharIndex(b.rope.LenChars())

	var result selection.SelectionSet
	if len(newSelections) > 0 {
		result = selection.NewSelectionSet(newSelections...)
	} else {
		result = current.Map(func(s selection.Selection) selection.Selection {
			return shiftSelection(s, delta)
		})
	}
	result = clampSelectionSet(result, lenChars)

	// The inverse edits are listed in the opposite order the forward
	// edits were applied. Each one is expressed in the coordinates right
	// after its own forward edit; since the forward edits run in
	// ascending order, those are also post-transaction coordinates, and
	// UndoTreeApplyMovement sorts them and accumulates offsets the same
	// way the forward pass does.
	var inversionGroups []edit.ActionGroup
	for i := len(inverseEdits) - 1; i >= 0; i-- {
		inversionGroups = append(inversionGroups, edit.ActionGroup{edit.NewEditAction(inverseEdits[i])})
	}

	return result, inversionGroups, changed, nil
}

// replaceCharsLocked replaces the chars in r with text and rebases
// marks/decorations/diagnostics/selection history. Caller must hold
// b.mu.
func (b *Buffer) replaceCharsLocked(r CharIndexRange, text string) {
	byteStart := b.rope.CharToByte(rope.CharIndex(r.Start))
	byteEnd := b.rope.CharToByte(rope.CharIndex(r.End))
	newText := b.normalizeLineEndings(text)
	charLen := CharIndex(utf8.RuneCountInString(newText))
	b.rope = b.rope.Replace(byteStart, byteEnd, newText)
	b.rebaseMeta(r, charLen)
}

func shiftSelection(s selection.Selection, delta CharIndex) selection.Selection {
	s.Range = s.Range.Shift(delta)
	if s.InitialRange != nil {
		a := s.InitialRange.Shift(delta)
		s.InitialRange = &a
	}
	return s
}

func clampSelectionSet(set selection.SelectionSet, lenChars CharIndex) selection.SelectionSet {
	return set.Map(func(s selection.Selection) selection.Selection {
		s.Range = s.Range.Clamp(lenChars)
		if s.InitialRange != nil {
			a := s.InitialRange.Clamp(lenChars)
			s.InitialRange = &a
		}
		return s
	})
}

func toHistorySelections(set selection.SelectionSet) history.Selections {
	ranges := make([]history.CharRange, set.Len())
	for i, s := range set.All() {
		ranges[i] = history.CharRange{Start: s.Range.Start, End: s.Range.End}
	}
	return history.Selections{Ranges: ranges, Primary: set.PrimaryIndex()}
}

func fromHistorySelections(h history.Selections) selection.SelectionSet {
	sels := make([]selection.Selection, len(h.Ranges))
	for i, r := range h.Ranges {
		sels[i] = selection.NewSelection(selection.Range{Start: r.Start, End: r.End})
	}
	return selection.NewSelectionSetWithPrimary(sels, h.Primary)
}

// maxUndoNodes returns the configured undo-tree node cap; 0 (the zero
// value before any WithMaxUndoNodes option runs) means unbounded.
func (b *Buffer) maxUndoNodes() int { return b.maxUndoNodesOpt }
