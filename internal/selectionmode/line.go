package selectionmode

import (
	"strings"
	"unicode/utf8"

	"github.com/selectron/selectron/internal/selection"
)

// iterLine enumerates trimmed lines (no leading whitespace, no
// trailing newline), ported near-verbatim from keystorm rope's
// LineText/LineStartOffset/LineEndOffset, generalized to char index.
func iterLine(p Params) []selection.Range {
	return lineRanges(p, true)
}

// iterLineFull enumerates the raw line including its trailing
// newline, spec.md §4.3's LineFull variant; "expand" on a Line yields
// its LineFull (handled by the editor's Replace/Expand wiring, not
// here — this just supplies LineFull's own iter()).
func iterLineFull(p Params) []selection.Range {
	return lineRanges(p, false)
}

func lineRanges(p Params, trimmed bool) []selection.Range {
	b := p.Buffer
	count := b.LineCount()
	if count == 0 {
		return nil
	}

	// A trailing-newline buffer reports one phantom trailing empty
	// line (spec.md §9's preserved-literally rope quirk); skip it so
	// Line/LineFull don't yield a bogus final zero-length entry.
	effective := count
	if effective > 0 && strings.HasSuffix(b.Text(), "\n") {
		effective--
	}

	ranges := make([]selection.Range, 0, effective)
	for line := uint32(0); line < effective; line++ {
		start := b.LineToChar(line)
		lineText := b.LineText(line) // without newline, per buffer.LineText's contract
		bareEnd := start + selection.CharIndex(utf8.RuneCountInString(lineText))

		if trimmed {
			trimmedText := strings.TrimLeft(lineText, " \t")
			leading := selection.CharIndex(utf8.RuneCountInString(lineText) - utf8.RuneCountInString(trimmedText))
			ranges = append(ranges, selection.Range{Start: start + leading, End: bareEnd})
			continue
		}

		var end selection.CharIndex
		if line+1 < count {
			end = b.LineToChar(line + 1) // includes this line's newline
		} else {
			end = b.LenChars()
		}
		ranges = append(ranges, selection.Range{Start: start, End: end})
	}
	return ranges
}
