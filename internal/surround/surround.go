// Package surround resolves the nearest balanced enclosure around a
// cursor position, ported line-for-line in algorithm from
// original_source/src/surround.rs's get_surrounding_indices: the same
// backward/forward nesting-counter scan. For open==close delimiters
// (quotes) nothing is counted: the nearest occurrence before the
// cursor is the open and the nearest one after it is the close.
package surround

import "github.com/selectron/selectron/internal/selection"

// CharIndex mirrors selection.CharIndex.
type CharIndex = selection.CharIndex

// Kind identifies an enclosure delimiter pair.
type Kind uint8

const (
	Parentheses Kind = iota
	CurlyBraces
	AngularBrackets
	SquareBrackets
	DoubleQuotes
	SingleQuotes
	Backticks
)

// String names the Kind.
func (k Kind) String() string {
	switch k {
	case Parentheses:
		return "Parentheses"
	case CurlyBraces:
		return "CurlyBraces"
	case AngularBrackets:
		return "AngularBrackets"
	case SquareBrackets:
		return "SquareBrackets"
	case DoubleQuotes:
		return "DoubleQuotes"
	case SingleQuotes:
		return "SingleQuotes"
	case Backticks:
		return "Backticks"
	default:
		return "Unknown"
	}
}

// Symbols returns the (open, close) rune pair for the Kind.
func (k Kind) Symbols() (open, close rune) {
	switch k {
	case Parentheses:
		return '(', ')'
	case CurlyBraces:
		return '{', '}'
	case AngularBrackets:
		return '<', '>'
	case SquareBrackets:
		return '[', ']'
	case DoubleQuotes:
		return '"', '"'
	case SingleQuotes:
		return '\'', '\''
	case Backticks:
		return '`', '`'
	default:
		return 0, 0
	}
}

// Resolve finds the nearest enclosure of kind that encloses
// cursorCharIndex within content. If includeCursorPosition is true, a
// cursor sitting exactly on the open symbol still counts as inside it
// (the cursor+1 lookback the Rust source uses); ok is false if no
// balanced enclosure is found.
func Resolve(content string, kind Kind, cursorCharIndex CharIndex, includeCursorPosition bool) (r selection.Range, ok bool) {
	chars := []rune(content)
	if cursorCharIndex < 0 || int(cursorCharIndex) >= len(chars) {
		return selection.Range{}, false
	}
	open, close := kind.Symbols()

	searchStart := int(cursorCharIndex)
	if includeCursorPosition {
		searchStart++
	}
	if searchStart > len(chars) {
		searchStart = len(chars)
	}

	openIndex, found := findOpen(chars, searchStart, open, close)
	if !found {
		return selection.Range{}, false
	}

	closeIndex, found := findClose(chars, openIndex+1, open, close)
	if !found {
		return selection.Range{}, false
	}

	return selection.Range{Start: CharIndex(openIndex), End: CharIndex(closeIndex)}, true
}

// findOpen scans chars[0:searchStart] backward for the open symbol,
// tracking a nesting counter against intervening close symbols (for
// open != close pairs); for open == close pairs (quotes), the nearest
// occurrence of the symbol is returned since there is nothing to nest.
func findOpen(chars []rune, searchStart int, open, close rune) (int, bool) {
	count := 0
	for i := searchStart - 1; i >= 0; i-- {
		c := chars[i]
		switch {
		case c == close && open != close:
			count++
		case c == open:
			if count > 0 {
				count--
			} else {
				return i, true
			}
		}
	}
	return 0, false
}

// findClose scans chars[start:] forward for the close symbol, mirror
// of findOpen.
func findClose(chars []rune, start int, open, close rune) (int, bool) {
	count := 0
	for i := start; i < len(chars); i++ {
		c := chars[i]
		switch {
		case c == open && open != close:
			count++
		case c == close:
			if count > 0 {
				count--
			} else {
				return i, true
			}
		}
	}
	return 0, false
}
