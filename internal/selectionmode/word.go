package selectionmode

import (
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/words"

	"github.com/selectron/selectron/internal/selection"
)

// iterWord enumerates identifier sub-segments per spec.md §4.3's Word
// variant: a uax29 word-boundary first pass (grounded on the same
// library nzinfo-texere/coreseekdev-texere use for grapheme
// segmentation), refined by a case/digit boundary splitter — no
// ecosystem library does Go-style `HTTPRequest` boundary splitting, so
// that refinement is hand-rolled.
func iterWord(p Params) []selection.Range {
	return wordRanges(p, true)
}

// iterToken enumerates whitespace- and bracket-delimited maximal
// spans without the case/digit refinement, spec.md §4.3's Token
// variant.
func iterToken(p Params) []selection.Range {
	return wordRanges(p, false)
}

func wordRanges(p Params, splitCaseDigit bool) []selection.Range {
	content := p.Buffer.Text()
	if content == "" {
		return nil
	}
	segments := words.SegmentAllString(content)

	var ranges []selection.Range
	var charPos selection.CharIndex
	for _, seg := range segments {
		n := selection.CharIndex(utf8.RuneCountInString(seg))
		if isSkippableSegment(seg) {
			if p.SkipSymbols {
				charPos += n
				continue
			}
			ranges = append(ranges, selection.Range{Start: charPos, End: charPos + n})
			charPos += n
			continue
		}
		if splitCaseDigit {
			for _, sub := range splitCaseDigitBoundaries(seg) {
				subN := selection.CharIndex(utf8.RuneCountInString(sub))
				ranges = append(ranges, selection.Range{Start: charPos, End: charPos + subN})
				charPos += subN
			}
		} else {
			ranges = append(ranges, selection.Range{Start: charPos, End: charPos + n})
			charPos += n
		}
	}
	return ranges
}

// isSkippableSegment reports whether seg is whitespace or a run of
// non-alphanumeric symbols, the unit skip_symbols discards.
func isSkippableSegment(seg string) bool {
	for _, r := range seg {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// splitCaseDigitBoundaries splits an identifier-like segment on case
// and digit transitions, so `HTTPRequest` yields `HTTP`, `Request` and
// `item2Count` yields `item`, `2`, `Count` — spec.md §4.3's "respecting
// case boundaries (HTTP, Request in HTTPRequest) and digit boundaries".
func splitCaseDigitBoundaries(seg string) []string {
	runes := []rune(seg)
	if len(runes) == 0 {
		return nil
	}

	var parts []string
	start := 0
	isDigit := func(r rune) bool { return unicode.IsDigit(r) }

	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := false
		switch {
		case isDigit(prev) != isDigit(cur):
			// Letter/digit transitions always split: item2Count -> item|2|Count.
			boundary = true
		case unicode.IsLower(prev) && unicode.IsUpper(cur):
			// camelCase boundary: itemCount -> item|Count.
			boundary = true
		case unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			// Acronym tail boundary: HTTPRequest -> HTTP|Request (split
			// before the last upper-case letter of the run).
			boundary = true
		}
		if boundary {
			parts = append(parts, string(runes[start:i]))
			start = i
		}
	}
	parts = append(parts, string(runes[start:]))
	return parts
}
