package selectionmode

import (
	"github.com/selectron/selectron/internal/jump"
	"github.com/selectron/selectron/internal/selection"
)

// LineRange is an inclusive 0-indexed line span, e.g. the viewport's
// visible lines plus any hidden-parent lines a host chooses to include.
type LineRange struct {
	StartLine, EndLine uint32
}

// Jumps builds jump.Assignments over kind's ranges restricted to
// visibleLineRanges, spec.md §4.9 stage one: the candidate order is
// iter()'s byte/char order, and jump.Assign applies the alphabet's
// one-or-two-stage labeling on top.
func Jumps(kind Kind, p Params, visibleLineRanges []LineRange, alphabet string) []jump.Assignment {
	ranges := Iter(kind, p)
	var candidates []jump.Candidate
	for _, r := range ranges {
		line := p.Buffer.CharToLine(r.Start)
		if !inAnyLineRange(line, visibleLineRanges) {
			continue
		}
		candidates = append(candidates, jump.Candidate{Position: r.Start})
	}
	return jump.Assign(candidates, alphabet)
}

// SelectionsInLineRanges returns kind's ranges restricted to the given
// line spans, the enumeration a host renderer uses to decorate only
// what is scrolled into view.
func SelectionsInLineRanges(kind Kind, p Params, lineRanges []LineRange) []selection.Range {
	ranges := Iter(kind, p)
	out := make([]selection.Range, 0, len(ranges))
	for _, r := range ranges {
		if inAnyLineRange(p.Buffer.CharToLine(r.Start), lineRanges) {
			out = append(out, r)
		}
	}
	return out
}

func inAnyLineRange(line uint32, ranges []LineRange) bool {
	if len(ranges) == 0 {
		return true
	}
	for _, r := range ranges {
		if line >= r.StartLine && line <= r.EndLine {
			return true
		}
	}
	return false
}
