package selectionmode

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/selectron/selectron/internal/selection"
)

// iterFind enumerates literal occurrences of p.Search, spec.md §4.3's
// Find variant — implemented via regexp2 with the pattern escaped to a
// literal match, so Find and Regex share one match-walking helper.
func iterFind(p Params) []selection.Range {
	if p.Search == "" {
		return nil
	}
	return regexp2Matches(p.Buffer.Text(), regexp2.Escape(p.Search))
}

// iterRegex enumerates matches of p.Pattern using regexp2's .NET-style
// engine (lookaround-capable, unlike Go's RE2-based regexp), the same
// engine original_source's Rust implementation reaches for
// (fancy-regex) per SPEC_FULL.md's DOMAIN STACK.
func iterRegex(p Params) []selection.Range {
	if p.Pattern == "" {
		return nil
	}
	return regexp2Matches(p.Buffer.Text(), p.Pattern)
}

// iterNamingConventionAgnostic matches p.Pattern case-insensitively
// across snake_case/camelCase/PascalCase/kebab-case boundaries: the
// pattern is stripped of '_' and '-', and the regex built from it
// allows an optional '_' or '-' between every pair of its characters,
// so "fooBar" also finds "foo_bar" and "foo-bar" — spec.md §4.3's
// NamingConventionAgnostic variant, layered on the same regexp2 engine
// as Find/Regex rather than a distinct matcher.
func iterNamingConventionAgnostic(p Params) []selection.Range {
	normalized := normalizeIdentifier(p.Pattern)
	if normalized == "" {
		return nil
	}
	parts := make([]string, 0, len(normalized))
	for _, r := range normalized {
		parts = append(parts, regexp2.Escape(string(r)))
	}
	return regexp2Matches(p.Buffer.Text(), "(?i)"+strings.Join(parts, "[_-]?"))
}

func normalizeIdentifier(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '_', '-':
			continue
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

// regexp2Matches walks every match of pattern over content. regexp2's
// Go binding matches over the string's runes, so a match's Index and
// Length are rune counts and map directly to CharIndex.
func regexp2Matches(content, pattern string) []selection.Range {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil
	}

	var ranges []selection.Range
	m, err := re.FindStringMatch(content)
	for err == nil && m != nil {
		start := selection.CharIndex(m.Index)
		end := start + selection.CharIndex(m.Length)
		ranges = append(ranges, selection.Range{Start: start, End: end})
		m, err = re.FindNextMatch(m)
	}
	return ranges
}

// runeIndexFromUTF16 converts a position counted in UTF-16 code units
// into a rune (CharIndex) count.
func runeIndexFromUTF16(s string, utf16Pos int) int {
	var units, runes int
	for _, r := range s {
		if units >= utf16Pos {
			break
		}
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
		runes++
	}
	return runes
}
