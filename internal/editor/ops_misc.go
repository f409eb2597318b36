package editor

import (
	"errors"
	"strings"

	"github.com/selectron/selectron/internal/edit"
	"github.com/selectron/selectron/internal/engine/buffer"
	"github.com/selectron/selectron/internal/jump"
	"github.com/selectron/selectron/internal/selection"
	"github.com/selectron/selectron/internal/selectionmode"
)

// lineIndent returns the leading whitespace of the line containing c.
func lineIndent(b *buffer.Buffer, c selection.CharIndex) string {
	line := b.CharToLine(c)
	text := b.LineText(line)
	return text[:len(text)-len(strings.TrimLeft(text, " \t"))]
}

// open inserts a fresh, indentation-matched empty line below (StepEnd)
// or above (StepStart) each selection's line and drops into Insert
// mode on it.
func (e *Editor) open(b *buffer.Buffer, op Op) ([]Out, error) {
	outs, err := e.commit(b, false, func(sel selection.Selection) edit.ActionGroup {
		cursor := sel.Cursor(e.cursorDir)
		line := b.CharToLine(cursor)
		indent := lineIndent(b, cursor)
		lineStart := b.LineToChar(line)

		if op.Direction == StepStart {
			at := lineStart
			return edit.ActionGroup{
				edit.NewEditAction(edit.NewInsert(at, indent+"\n")),
				edit.NewSelectAction(selection.NewSelection(selection.Point(at + selection.CharIndex(len([]rune(indent)))))),
			}
		}
		lineEnd := lineStart + selection.CharIndex(len([]rune(b.LineText(line))))
		return edit.ActionGroup{
			edit.NewEditAction(edit.NewInsert(lineEnd, "\n"+indent)),
			edit.NewSelectAction(selection.NewSelection(selection.Point(lineEnd + 1 + selection.CharIndex(len([]rune(indent)))))),
		}
	})
	if err != nil {
		return nil, err
	}
	e.mode = Insert
	return outs, nil
}

// selectionLineSpan returns the first and last line covered by sel's
// extended range.
func selectionLineSpan(b *buffer.Buffer, sel selection.Selection) (uint32, uint32) {
	r := sel.ExtendedRange()
	first := b.CharToLine(r.Start)
	last := first
	if r.End > r.Start {
		last = b.CharToLine(r.End - 1)
	}
	return first, last
}

// indent prepends one tab-width of spaces to every line touched by
// each selection, shifting the selection along with its content.
func (e *Editor) indent(b *buffer.Buffer) ([]Out, error) {
	unit := strings.Repeat(" ", b.TabWidth())
	width := selection.CharIndex(len(unit))
	return e.commit(b, true, func(sel selection.Selection) edit.ActionGroup {
		first, last := selectionLineSpan(b, sel)
		var group edit.ActionGroup
		for line := first; line <= last; line++ {
			group = append(group, edit.NewEditAction(edit.NewInsert(b.LineToChar(line), unit)))
		}
		lines := selection.CharIndex(last-first) + 1
		r := sel.Range
		group = append(group, edit.NewSelectAction(selection.NewSelection(selection.Range{
			Start: r.Start + width,
			End:   r.End + width*lines,
		})))
		return group
	})
}

// dedent strips up to one tab-width of leading spaces (or one tab)
// from every line touched by each selection.
func (e *Editor) dedent(b *buffer.Buffer) ([]Out, error) {
	width := b.TabWidth()
	return e.commit(b, true, func(sel selection.Selection) edit.ActionGroup {
		first, last := selectionLineSpan(b, sel)
		var group edit.ActionGroup
		var firstRemoved, totalRemoved selection.CharIndex
		for line := first; line <= last; line++ {
			text := b.LineText(line)
			removed := 0
			if strings.HasPrefix(text, "\t") {
				removed = 1
			} else {
				for removed < width && removed < len(text) && text[removed] == ' ' {
					removed++
				}
			}
			if removed == 0 {
				continue
			}
			start := b.LineToChar(line)
			group = append(group, edit.NewEditAction(edit.NewDelete(selection.Range{Start: start, End: start + selection.CharIndex(removed)})))
			if line == first {
				firstRemoved = selection.CharIndex(removed)
			}
			totalRemoved += selection.CharIndex(removed)
		}
		if len(group) == 0 {
			return nil
		}
		r := sel.Range
		newStart := r.Start - firstRemoved
		if newStart < 0 {
			newStart = 0
		}
		newEnd := r.End - totalRemoved
		if newEnd < newStart {
			newEnd = newStart
		}
		group = append(group, edit.NewSelectAction(selection.NewSelection(selection.Range{Start: newStart, End: newEnd})))
		return group
	})
}

// breakSelection moves each selection's content onto its own fresh
// line, carrying the current line's indentation.
func (e *Editor) breakSelection(b *buffer.Buffer) ([]Out, error) {
	return e.commit(b, true, func(sel selection.Selection) edit.ActionGroup {
		r := sel.ExtendedRange()
		indent := lineIndent(b, r.Start)
		inserted := "\n" + indent
		shift := selection.CharIndex(len([]rune(inserted)))
		return edit.ActionGroup{
			edit.NewEditAction(edit.NewInsert(r.Start, inserted)),
			edit.NewSelectAction(selection.NewSelection(selection.Range{Start: r.Start + shift, End: r.End + shift})),
		}
	})
}

// enterNewline inserts a newline plus the current line's indentation
// at each cursor, the Insert-mode Enter key.
func (e *Editor) enterNewline(b *buffer.Buffer) ([]Out, error) {
	return e.commit(b, false, func(sel selection.Selection) edit.ActionGroup {
		at := sel.Range.Start
		indent := lineIndent(b, at)
		inserted := "\n" + indent
		return edit.ActionGroup{
			edit.NewEditAction(edit.NewInsert(at, inserted)),
			edit.NewSelectAction(selection.NewSelection(selection.Point(at + selection.CharIndex(len([]rune(inserted)))))),
		}
	})
}

// showJumps computes jump labels for every range of the active (or
// Word) selection mode within the visible lines, spec.md §4.9: each
// candidate is labeled by the first character at its range start, and
// only when every candidate shares that character are labels rewritten
// from the configured alphabet so each jump stays uniquely
// addressable.
func (e *Editor) showJumps(b *buffer.Buffer, op Op) ([]Out, error) {
	kind := selectionmode.Word
	if op.UseCurrentSelectionMode {
		kind = e.selMode
	}
	ranges := selectionmode.Iter(kind, e.params(b, e.selections.Primary()))
	if len(ranges) == 0 {
		e.jumps = nil
		return nil, nil
	}

	content := []rune(b.Text())
	candidates := make([]jump.Candidate, 0, len(ranges))
	labels := make([]rune, 0, len(ranges))
	allSame := true
	for _, r := range ranges {
		if int(r.Start) >= len(content) {
			continue
		}
		candidates = append(candidates, jump.Candidate{Position: r.Start})
		labels = append(labels, content[r.Start])
		if labels[0] != content[r.Start] {
			allSame = false
		}
	}
	if len(candidates) == 0 {
		e.jumps = nil
		return nil, nil
	}

	if allSame {
		e.jumps = jump.Assign(candidates, e.cfg.JumpAlphabet)
		return nil, nil
	}
	assignments := make([]jump.Assignment, len(candidates))
	for i, c := range candidates {
		assignments[i] = jump.Assignment{Candidate: c, Label: jump.Label(string(labels[i]))}
	}
	e.jumps = assignments
	return nil, nil
}

// JumpTo consumes one keystroke of a pending jump: a unique label
// match moves the primary selection there (via the active mode's
// Current policy so the landing range matches the mode), an ambiguous
// match rewrites the surviving candidates' labels from the alphabet
// and waits for the next keystroke, and a miss clears the pending
// jumps.
func (e *Editor) JumpTo(ch rune) bool {
	b, ok := e.Buffer()
	if !ok {
		return false
	}
	var matched []jump.Assignment
	for _, a := range e.jumps {
		if len(a.Label) > 0 && []rune(string(a.Label))[0] == ch {
			matched = append(matched, a)
		}
	}
	switch len(matched) {
	case 0:
		e.jumps = nil
		return false
	case 1:
		target := selection.Point(matched[0].Candidate.Position)
		sel := e.selections.Primary().WithRange(target)
		params := e.params(b, sel)
		if cur, ok := selectionmode.Apply(e.selMode, params, selectionmode.Movement{Kind: selectionmode.MoveCurrent, IfNotFound: e.ifNotFound}); ok {
			sel = cur
		}
		e.selections = selection.NewSelectionSet(sel)
		e.jumps = nil
		return true
	default:
		candidates := make([]jump.Candidate, len(matched))
		for i, a := range matched {
			candidates[i] = a.Candidate
		}
		e.jumps = jump.Assign(candidates, e.cfg.JumpAlphabet)
		return false
	}
}

// save writes the buffer to its path, reparsing the tree afterward
// (spec.md §3's reparse-on-save rule) and reporting DocumentDidSave.
// IO failures surface as an info message, never an editor error
// (spec.md §7's propagation policy).
func (e *Editor) save(b *buffer.Buffer, fmtr buffer.Formatter, op Op) ([]Out, error) {
	path, err := b.Save(fmtr, op.Force)
	if err != nil {
		if errors.Is(err, buffer.ErrNoFilePath) {
			return []Out{showInfo("Save", "buffer has no file path")}, nil
		}
		return []Out{showInfo("Save", err.Error())}, nil
	}
	if path == "" {
		return nil, nil
	}
	_ = b.ReparseTree()
	return []Out{{Kind: OutDocumentDidSave, Path: path}}, nil
}
