package editor

import (
	"github.com/dlclark/regexp2"

	"github.com/selectron/selectron/internal/clipboard"
	"github.com/selectron/selectron/internal/edit"
	"github.com/selectron/selectron/internal/engine/buffer"
	"github.com/selectron/selectron/internal/selection"
	"github.com/selectron/selectron/internal/selectionmode"
)

// copy records every selection's text into the default clipboard
// register, joined by newlines (a simplification versus tracking a
// per-cursor list in the register itself; the true per-selection list
// still reaches the host via Out.CopiedTexts for SetClipboardContent).
// op.Cut additionally deletes the copied content.
func (e *Editor) copy(b *buffer.Buffer, op Op) ([]Out, error) {
	texts := make([]string, e.selections.Len())
	for i, sel := range e.selections.All() {
		texts[i] = b.TextCharRange(toCharIndexRange(sel.Range))
	}
	joined := ""
	for i, t := range texts {
		if i > 0 {
			joined += "\n"
		}
		joined += t
	}
	e.clip.Copy(clipboard.DefaultRegister, joined)
	e.clip.SetUseSystemClipboard(op.UseSystemClipboard)

	var outs []Out
	if op.UseSystemClipboard {
		outs = append(outs, Out{Kind: OutSetClipboardContent, UseSystemClipboard: true, CopiedTexts: texts})
	}
	if !op.Cut {
		return outs, nil
	}
	editOuts, err := e.commit(b, true, func(sel selection.Selection) edit.ActionGroup {
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
	return append(outs, editOuts...), nil
}

// pasteGroup builds the insert for one selection under the
// ki-editor-style smart paste direction algorithm (spec.md §8 S4): the
// separator ("gap") already sitting between the current selection and
// its mode-neighbor on the requested side is duplicated alongside the
// pasted text, so a contiguous list of items stays correctly
// delimited after the paste. When no neighbor exists on the requested
// side, the gap from the opposite side is reused instead ("fresh
// start"); with no neighbor at all, the text is inserted bare.
func (e *Editor) pasteGroup(b *buffer.Buffer, sel selection.Selection, text string, dir Step) edit.ActionGroup {
	params := e.params(b, sel)
	right, hasRight := selectionmode.Apply(e.selMode, params, selectionmode.Movement{Kind: selectionmode.MoveNext})
	if hasRight && right.Range.Start < sel.Range.End {
		hasRight = false
	}
	left, hasLeft := selectionmode.Apply(e.selMode, params, selectionmode.Movement{Kind: selectionmode.MovePrevious})
	if hasLeft && left.Range.End > sel.Range.Start {
		hasLeft = false
	}

	if dir == StepEnd {
		switch {
		case hasRight:
			gap := b.TextCharRange(toCharIndexRange(selection.Range{Start: sel.Range.End, End: right.Range.Start}))
			return pasteInsert(sel.Range.End, gap, text, false)
		case hasLeft:
			gap := b.TextCharRange(toCharIndexRange(selection.Range{Start: left.Range.End, End: sel.Range.Start}))
			return pasteInsert(sel.Range.End, gap, text, false)
		default:
			return pasteInsert(sel.Range.End, "", text, false)
		}
	}

	switch {
	case hasLeft:
		gap := b.TextCharRange(toCharIndexRange(selection.Range{Start: left.Range.End, End: sel.Range.Start}))
		return pasteInsert(sel.Range.Start, gap, text, true)
	case hasRight:
		gap := b.TextCharRange(toCharIndexRange(selection.Range{Start: sel.Range.End, End: right.Range.Start}))
		return pasteInsert(sel.Range.Start, gap, text, true)
	default:
		return pasteInsert(sel.Range.Start, "", text, true)
	}
}

// pasteInsert inserts text and gap at at, ordered (text, gap) when
// textFirst is true or (gap, text) when it is false, and selects the
// pasted text's own range (excluding the gap) afterward.
func pasteInsert(at selection.CharIndex, gap, text string, textFirst bool) edit.ActionGroup {
	var inserted string
	var selStart selection.CharIndex
	if textFirst {
		inserted = text + gap
		selStart = at
	} else {
		inserted = gap + text
		selStart = at + selection.CharIndex(len([]rune(gap)))
	}
	selEnd := selStart + selection.CharIndex(len([]rune(text)))
	return edit.ActionGroup{
		edit.NewEditAction(edit.NewInsert(at, inserted)),
		edit.NewSelectAction(selection.NewSelection(selection.Range{Start: selStart, End: selEnd})),
	}
}

// paste pastes the default register's content at every selection,
// spec.md §4.7's Paste.
func (e *Editor) paste(b *buffer.Buffer, op Op) ([]Out, error) {
	text, ok := e.clip.Paste(clipboard.DefaultRegister)
	if !ok {
		return nil, nil
	}
	return e.commit(b, true, func(sel selection.Selection) edit.ActionGroup {
		return e.pasteGroup(b, sel, text, op.Direction)
	})
}

// replaceWithCopiedText replaces every selection's content with the
// default register's text. op.Cut first saves the text being
// overwritten back into the register, so a chain of
// replace-with-copied-text calls cycles through what was replaced
// rather than pasting the same text forever.
func (e *Editor) replaceWithCopiedText(b *buffer.Buffer, op Op) ([]Out, error) {
	text, ok := e.clip.Paste(clipboard.DefaultRegister)
	if !ok {
		return nil, nil
	}
	return e.commit(b, true, func(sel selection.Selection) edit.ActionGroup {
		old := b.TextCharRange(toCharIndexRange(sel.Range))
		if op.Cut {
			e.clip.Copy(clipboard.DefaultRegister, old)
		}
		newEnd := sel.Range.Start + selection.CharIndex(len([]rune(text)))
		return edit.ActionGroup{
			edit.NewEditAction(edit.NewReplace(sel.Range, text)),
			edit.NewSelectAction(selection.NewSelection(selection.Range{Start: sel.Range.Start, End: newEnd})),
		}
	})
}

// replaceWithHistoryCopiedText steps the default register's
// replace-cursor forward or backward, replacing every selection with
// whatever copy the cursor lands on.
func (e *Editor) replaceWithHistoryCopiedText(b *buffer.Buffer, forward bool) ([]Out, error) {
	var text string
	var ok bool
	if forward {
		text, ok = e.clip.ReplaceWithNextCopiedText(clipboard.DefaultRegister)
	} else {
		text, ok = e.clip.ReplaceWithPreviousCopiedText(clipboard.DefaultRegister)
	}
	if !ok {
		return nil, nil
	}
	return e.commit(b, true, func(sel selection.Selection) edit.ActionGroup {
		newEnd := sel.Range.Start + selection.CharIndex(len([]rune(text)))
		return edit.ActionGroup{
			edit.NewEditAction(edit.NewReplace(sel.Range, text)),
			edit.NewSelectAction(selection.NewSelection(selection.Range{Start: sel.Range.Start, End: newEnd})),
		}
	})
}

// replacePattern runs a regexp2 substitution (spec.md §4.3's
// NamingConventionAgnostic/Regex modes share this engine) over every
// selection's text, replacing the selection with the result and
// remembering the config so ReplaceWithPattern can reapply it.
func (e *Editor) replacePattern(b *buffer.Buffer, op Op) ([]Out, error) {
	e.lastRP = op.PatternConfig
	return e.applyReplacePattern(b, op.PatternConfig)
}

// replaceWithPattern reapplies the most recently used ReplacePattern
// config.
func (e *Editor) replaceWithPattern(b *buffer.Buffer) ([]Out, error) {
	return e.applyReplacePattern(b, e.lastRP)
}

func (e *Editor) applyReplacePattern(b *buffer.Buffer, cfg ReplacePatternConfig) ([]Out, error) {
	if cfg.Pattern == "" {
		return nil, nil
	}
	re, err := regexp2.Compile(cfg.Pattern, regexp2.ECMAScript)
	if err != nil {
		return nil, err
	}
	return e.commit(b, true, func(sel selection.Selection) edit.ActionGroup {
		old := b.TextCharRange(toCharIndexRange(sel.Range))
		replaced, err := re.Replace(old, cfg.Replacement, -1, -1)
		if err != nil || replaced == old {
			return nil
		}
		newEnd := sel.Range.Start + selection.CharIndex(len([]rune(replaced)))
		return edit.ActionGroup{
			edit.NewEditAction(edit.NewReplace(sel.Range, replaced)),
			edit.NewSelectAction(selection.NewSelection(selection.Range{Start: sel.Range.Start, End: newEnd})),
		}
	})
}
