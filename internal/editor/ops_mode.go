package editor

import (
	"github.com/selectron/selectron/internal/edit"
	"github.com/selectron/selectron/internal/engine/buffer"
	"github.com/selectron/selectron/internal/movement"
	"github.com/selectron/selectron/internal/selection"
	"github.com/selectron/selectron/internal/selectionmode"
)

// setSelectionMode switches the active SelectionMode and its
// parameters, then snaps every selection onto the nearest range of the
// new mode via MoveCurrent, spec.md §4.7's SetSelectionMode handling.
func (e *Editor) setSelectionMode(b *buffer.Buffer, op Op) ([]Out, error) {
	// Mode changes are history-inducing (spec.md §3's lifecycle rule):
	// the outgoing selection set is recorded so the user can navigate
	// back to it, unlike transient movements such as cursor swaps.
	b.PushSelectionSnapshot(selectionSnapshot(e.selections))

	e.selMode = op.Mode
	e.ifNotFound = op.IfNotFound
	e.search = op.Search
	e.pattern = op.Pattern
	e.severity = op.Severity
	e.hasSeverity = op.HasSeverity
	e.skipSymbols = op.SkipSymbols

	// MultiCursor interaction (spec.md §4.5): choosing a new mode
	// while multi-cursoring collapses the set to the new mode's ranges
	// contained in any existing selection's extended range.
	if e.mode == MultiCursor {
		ranges := selectionmode.Iter(e.selMode, e.params(b, e.selections.Primary()))
		var restricted []selection.Selection
		for _, r := range ranges {
			for _, sel := range e.selections.All() {
				ext := sel.ExtendedRange()
				if r.Start >= ext.Start && r.End <= ext.End {
					restricted = append(restricted, selection.NewSelection(r))
					break
				}
			}
		}
		if len(restricted) > 0 {
			e.selections = selection.NewSelectionSet(restricted...)
			return nil, nil
		}
	}

	m := selectionmode.Movement{Kind: selectionmode.MoveCurrent, IfNotFound: op.IfNotFound}
	e.selections = movement.Apply(b, e.selections, e.selMode, m, e.params(b, selection.Selection{}))
	return nil, nil
}

// moveSelection runs op.Movement under the active selection mode. In
// Exchange mode, movement instead swaps the current range's text with
// the text of the movement's target range, the "move things around by
// moving the cursor" behavior the mode is named for.
func (e *Editor) moveSelection(b *buffer.Buffer, op Op) ([]Out, error) {
	switch e.mode {
	case Exchange:
		return e.exchangeMove(b, op)
	case Replace:
		return e.raiseMove(b, op)
	case UndoTree:
		// Left=undo, Right=redo, Up/Down=sibling branch switch.
		switch op.Movement.Kind {
		case selectionmode.MoveLeft, selectionmode.MovePrevious:
			return e.undoTreeMove(b, undoBack)
		case selectionmode.MoveRight, selectionmode.MoveNext:
			return e.undoTreeMove(b, undoForward)
		case selectionmode.MoveUp:
			return e.undoTreeSibling(b, false)
		case selectionmode.MoveDown:
			return e.undoTreeSibling(b, true)
		default:
			return nil, nil
		}
	}
	e.selections = movement.Apply(b, e.selections, e.selMode, op.Movement, e.params(b, selection.Selection{}))
	return nil, nil
}

// raiseMove replaces the hull of each selection's extended range and
// the movement's target range with the selection's own content,
// leaving the selection on the relocated content — spec.md §4.7's
// Replace mode, where Up raises the current node over its parent (S1)
// and the lateral movements replace toward the corresponding neighbor.
func (e *Editor) raiseMove(b *buffer.Buffer, op Op) ([]Out, error) {
	return e.commit(b, true, func(sel selection.Selection) edit.ActionGroup {
		target, ok := selectionmode.Apply(e.selMode, e.params(b, sel), op.Movement)
		if !ok {
			return nil
		}
		hull := sel.ExtendedRange().Union(target.ExtendedRange())
		text := b.TextCharRange(toCharIndexRange(sel.ExtendedRange()))
		newEnd := hull.Start + selection.CharIndex(len([]rune(text)))
		return edit.ActionGroup{
			edit.NewEditAction(edit.NewReplace(hull, text)),
			edit.NewSelectAction(selection.NewSelection(selection.Range{Start: hull.Start, End: newEnd})),
		}
	})
}

// exchangeTarget resolves the range the current selection swaps with
// under op.Movement. First/Last swap with the entire span from the
// first sibling to the predecessor, respectively from the successor to
// the last sibling (spec.md §4.7's Exchange mode).
func (e *Editor) exchangeTarget(b *buffer.Buffer, sel selection.Selection, m selectionmode.Movement) (selection.Range, bool) {
	params := e.params(b, sel)
	switch m.Kind {
	case selectionmode.MoveFirst:
		first, ok1 := selectionmode.Apply(e.selMode, params, selectionmode.Movement{Kind: selectionmode.MoveFirst})
		pred, ok2 := selectionmode.Apply(e.selMode, params, selectionmode.Movement{Kind: selectionmode.MovePrevious})
		if !ok1 || !ok2 {
			return selection.Range{}, false
		}
		return first.Range.Union(pred.Range), true
	case selectionmode.MoveLast:
		last, ok1 := selectionmode.Apply(e.selMode, params, selectionmode.Movement{Kind: selectionmode.MoveLast})
		succ, ok2 := selectionmode.Apply(e.selMode, params, selectionmode.Movement{Kind: selectionmode.MoveNext})
		if !ok1 || !ok2 {
			return selection.Range{}, false
		}
		return succ.Range.Union(last.Range), true
	default:
		target, ok := selectionmode.Apply(e.selMode, params, m)
		if !ok {
			return selection.Range{}, false
		}
		return target.Range, true
	}
}

// exchangeMove swaps each selection's content with its movement
// target's content, keeping the selection on the now-moved content.
// The syntax-aware guard of spec.md §4.7 runs after the swap: if the
// reparsed tree reports a syntax error across the affected span, the
// swap is rolled back through the undo tree and the next candidate in
// the movement's direction is tried instead.
func (e *Editor) exchangeMove(b *buffer.Buffer, op Op) ([]Out, error) {
	const maxCandidates = 16
	sel := e.selections.Primary()
	prior := e.selections

	probe := sel
	for attempt := 0; attempt < maxCandidates; attempt++ {
		target, ok := e.exchangeTarget(b, probe, op.Movement)
		if !ok || target == sel.Range {
			return nil, nil
		}
		a, c := sel.Range, target
		if a.Start > c.Start {
			a, c = c, a
		}
		if a.Overlaps(c) {
			return nil, nil
		}
		aText := b.TextCharRange(toCharIndexRange(a))
		cText := b.TextCharRange(toCharIndexRange(c))
		delta := selection.CharIndex(len([]rune(cText)) - len([]rune(aText)))

		var selected selection.Range
		if sel.Range == a {
			// Current content lands where c used to start, shifted by
			// the length difference introduced at a.
			selected = selection.Range{Start: c.Start + delta, End: c.Start + delta + a.Len()}
		} else {
			selected = selection.Range{Start: a.Start, End: a.Start + c.Len()}
		}

		group := edit.ActionGroup{
			edit.NewEditAction(edit.NewReplace(a, cText)),
			edit.NewEditAction(edit.NewReplace(c, aText)),
			edit.NewSelectAction(selection.NewSelection(selected)),
		}
		tx := edit.NewTransaction(group)
		result, err := b.ApplyEditTransaction(tx, e.selections, true)
		if err != nil {
			return nil, err
		}

		// A swap's net length change is zero, so the affected hull
		// keeps its original span.
		affected := selection.Range{Start: a.Start, End: c.End}
		if b.HasTree() && b.HasSyntaxErrorAt(toCharIndexRange(affected)) {
			if _, err := b.UndoTreeApplyMovement(buffer.UndoTreeBack); err == nil {
				e.selections = prior
				probe = probe.WithRange(target)
				continue
			}
		}

		e.selections = result
		e.log.Debug("exchange committed (attempt %d)", attempt+1)
		return []Out{e.documentDidChange(b)}, nil
	}
	return nil, nil
}

// enterInsertMode collapses every selection to op.Direction's edge
// (Start or End) before switching to Insert mode, spec.md §4.7.
func (e *Editor) enterInsertMode(op Op) ([]Out, error) {
	e.selections = e.selections.Map(func(s selection.Selection) selection.Selection {
		return s.Collapse(op.Direction)
	})
	e.mode = Insert
	return nil, nil
}

// enterNormalMode returns to Normal mode, reparsing the syntax tree if
// leaving Insert mode — spec.md §3's reparse-on-exit-from-Insert rule.
func (e *Editor) enterNormalMode(b *buffer.Buffer) ([]Out, error) {
	if e.mode == Insert {
		// Rope length may have shrunk while reparse was suspended;
		// re-clamp before the tree comes back (spec.md §4.7).
		e.selections = e.selections.Clamp(b.LenChars())
		_ = b.ReparseTree()
	}
	if e.mode == V {
		e.selections = e.selections.UnsetInitialRange()
	}
	e.mode = Normal
	return nil, nil
}

func (e *Editor) enterMultiCursorMode() ([]Out, error) {
	e.mode = MultiCursor
	return nil, nil
}

// enterExchangeMode arms the current selections as exchange anchors;
// the next MoveSelection swaps text instead of just moving.
func (e *Editor) enterExchangeMode() ([]Out, error) {
	e.mode = Exchange
	return nil, nil
}

// enterUndoTreeMode switches to UndoTree mode, in which MoveSelection
// cycles undo-tree sibling branches instead of moving the cursor.
func (e *Editor) enterUndoTreeMode() ([]Out, error) {
	e.mode = UndoTree
	return nil, nil
}

// enterVMode switches to V mode, vim-style visual selection: every
// current selection starts extending from its present range.
func (e *Editor) enterVMode() ([]Out, error) {
	e.selections = e.selections.EnableSelectionExtension()
	e.mode = V
	return nil, nil
}

// enterFindOneCharMode switches to FindOneChar mode, arming the look
// direction the search follows; the next Insert dispatch supplies the
// target character instead of typing it (see insert's FindOneChar
// branch).
func (e *Editor) enterFindOneCharMode(op Op) ([]Out, error) {
	e.ifNotFound = op.IfNotFound
	e.mode = FindOneChar
	return nil, nil
}

// enterReplaceMode arms Replace mode: the next MoveSelection raises
// each selection's content over the movement's target range (S1's
// raise-child-over-parent scenario).
func (e *Editor) enterReplaceMode() ([]Out, error) {
	e.mode = Replace
	return nil, nil
}
