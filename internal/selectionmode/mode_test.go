package selectionmode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selectron/selectron/internal/engine/buffer"
	"github.com/selectron/selectron/internal/selection"
)

func paramsFor(content string, cursor selection.CharIndex) Params {
	return Params{
		Buffer:  buffer.NewBufferFromString(content),
		Current: selection.NewSelection(selection.Point(cursor)),
	}
}

func rangeText(p Params, r selection.Range) string {
	return p.Buffer.TextCharRange(buffer.CharIndexRange{Start: r.Start, End: r.End})
}

func TestWordModeCaseAndDigitBoundaries(t *testing.T) {
	p := paramsFor("HTTPRequest item2Count", 0)
	p.SkipSymbols = true

	var texts []string
	for _, r := range Iter(Word, p) {
		texts = append(texts, rangeText(p, r))
	}
	assert.Equal(t, []string{"HTTP", "Request", "item", "2", "Count"}, texts)
}

func TestTokenModeKeepsMaximalSpans(t *testing.T) {
	p := paramsFor("foo_bar baz", 0)
	p.SkipSymbols = true

	var texts []string
	for _, r := range Iter(Token, p) {
		texts = append(texts, rangeText(p, r))
	}
	assert.Contains(t, texts, "baz")
	assert.NotContains(t, texts, "Foo", "token mode does not case-split")
}

func TestLineModeTrimsAndSkipsPhantomLine(t *testing.T) {
	p := paramsFor("  indented\nplain\n", 0)
	ranges := Iter(Line, p)
	require.Len(t, ranges, 2, "the trailing-newline phantom line is not enumerated")
	assert.Equal(t, "indented", rangeText(p, ranges[0]))
	assert.Equal(t, "plain", rangeText(p, ranges[1]))
}

func TestLineFullModeIncludesNewline(t *testing.T) {
	p := paramsFor("one\ntwo", 0)
	ranges := Iter(LineFull, p)
	require.Len(t, ranges, 2)
	assert.Equal(t, "one\n", rangeText(p, ranges[0]))
	assert.Equal(t, "two", rangeText(p, ranges[1]))
}

func TestCurrentPolicyPrefersContainingRange(t *testing.T) {
	p := paramsFor("one\ntwo\nthree", 5) // inside "two"
	sel, ok := Apply(Line, p, Movement{Kind: MoveCurrent, IfNotFound: LookForward})
	require.True(t, ok)
	assert.Equal(t, "two", rangeText(p, sel.Range))
}

func TestCurrentPolicyLookDirectionFallback(t *testing.T) {
	p := paramsFor("a  b", 2) // between the words, in neither
	p.SkipSymbols = true

	fwd, ok := Apply(Word, p, Movement{Kind: MoveCurrent, IfNotFound: LookForward})
	require.True(t, ok)
	assert.Equal(t, "b", rangeText(p, fwd.Range))

	back, ok := Apply(Word, p, Movement{Kind: MoveCurrent, IfNotFound: LookBackward})
	require.True(t, ok)
	assert.Equal(t, "a", rangeText(p, back.Range))
}

func TestLeftRightAreInverses(t *testing.T) {
	p := paramsFor("alpha beta gamma", 0)
	p.SkipSymbols = true
	p.Current = selection.NewSelection(selection.Range{Start: 6, End: 10}) // beta

	right, ok := Apply(Word, p, Movement{Kind: MoveRight})
	require.True(t, ok)
	assert.Equal(t, "gamma", rangeText(p, right.Range))

	p.Current = right
	left, ok := Apply(Word, p, Movement{Kind: MoveLeft})
	require.True(t, ok)
	assert.Equal(t, "beta", rangeText(p, left.Range))
}

func TestFirstLastIndex(t *testing.T) {
	p := paramsFor("one two three", 5)
	p.SkipSymbols = true

	first, ok := Apply(Word, p, Movement{Kind: MoveFirst})
	require.True(t, ok)
	assert.Equal(t, "one", rangeText(p, first.Range))

	last, ok := Apply(Word, p, Movement{Kind: MoveLast})
	require.True(t, ok)
	assert.Equal(t, "three", rangeText(p, last.Range))

	second, ok := Apply(Word, p, Movement{Kind: MoveIndex, Index: 1})
	require.True(t, ok)
	assert.Equal(t, "two", rangeText(p, second.Range))

	_, ok = Apply(Word, p, Movement{Kind: MoveIndex, Index: 99})
	assert.False(t, ok)
}

func TestCharacterVerticalPreservesColumn(t *testing.T) {
	p := paramsFor("abcdef\nxyz", 3)
	down, ok := Apply(Character, p, Movement{Kind: MoveDown})
	require.True(t, ok)
	assert.Equal(t, selection.Point(10), down.Range, "column 3 clamps onto the shorter line's end")

	p.Current = selection.NewSelection(selection.Point(8)) // 'y'
	up, ok := Apply(Character, p, Movement{Kind: MoveUp})
	require.True(t, ok)
	assert.Equal(t, selection.Point(1), up.Range)
}

func TestDeleteForwardKillsGapInContiguousMode(t *testing.T) {
	p := paramsFor("one\ntwo\nthree", 0)
	p.Current = selection.NewSelection(selection.Range{Start: 4, End: 7}) // "two"

	target, ok := Apply(Line, p, Movement{Kind: MoveDeleteForward})
	require.True(t, ok)
	assert.Equal(t, selection.Range{Start: 4, End: 8}, target.Range, "swallows the newline before the next line")
}

func TestDeleteForwardAtLastLineSwallowsPrecedingNewline(t *testing.T) {
	p := paramsFor("one\ntwo", 0)
	p.Current = selection.NewSelection(selection.Range{Start: 4, End: 7}) // "two"

	target, ok := Apply(Line, p, Movement{Kind: MoveDeleteForward})
	require.True(t, ok)
	assert.Equal(t, selection.Range{Start: 3, End: 7}, target.Range, "last line deletion takes the preceding newline")
}

func TestDeleteInNonContiguousModeDeletesCurrentOnly(t *testing.T) {
	p := paramsFor("alpha beta", 0)
	p.SkipSymbols = true
	p.Current = selection.NewSelection(selection.Range{Start: 0, End: 5})

	target, ok := Apply(Word, p, Movement{Kind: MoveDeleteForward})
	require.True(t, ok)
	assert.Equal(t, selection.Range{Start: 0, End: 5}, target.Range)
}

func TestFindModeMatchesLiterally(t *testing.T) {
	p := paramsFor("a.b then a.b again", 0)
	p.Search = "a.b"
	ranges := Iter(Find, p)
	require.Len(t, ranges, 2, "dots are literal, so 'aXb' never matches")
	assert.Equal(t, selection.Range{Start: 0, End: 3}, ranges[0])
	assert.Equal(t, selection.Range{Start: 9, End: 12}, ranges[1])
}

func TestRegexModeUsesPattern(t *testing.T) {
	p := paramsFor("x1 y22 z333", 0)
	p.Pattern = `[a-z]\d+`
	ranges := Iter(Regex, p)
	require.Len(t, ranges, 3)
	assert.Equal(t, "z333", rangeText(p, ranges[2]))
}

func TestRegexModeInvalidPatternYieldsNothing(t *testing.T) {
	p := paramsFor("anything", 0)
	p.Pattern = "("
	assert.Empty(t, Iter(Regex, p))
}

func TestDiagnosticModeFiltersBySeverity(t *testing.T) {
	b := buffer.NewBufferFromString("one two three")
	b.SetDiagnostics([]buffer.Diagnostic{
		{Range: buffer.CharIndexRange{Start: 0, End: 3}, Severity: buffer.SeverityError},
		{Range: buffer.CharIndexRange{Start: 4, End: 7}, Severity: buffer.SeverityWarning},
	})
	p := Params{Buffer: b, Current: selection.NewSelection(selection.Point(0))}

	assert.Len(t, Iter(Diagnostic, p), 2)

	p.HasSeverity = true
	p.Severity = buffer.SeverityWarning
	ranges := Iter(Diagnostic, p)
	require.Len(t, ranges, 1)
	assert.Equal(t, selection.Range{Start: 4, End: 7}, ranges[0])
}

func TestMarkModeIteratesPersistedMarks(t *testing.T) {
	b := buffer.NewBufferFromString("one two three")
	b.SetMark("m1", buffer.CharIndexRange{Start: 4, End: 7})
	b.SetMark("m2", buffer.CharIndexRange{Start: 0, End: 3})
	p := Params{Buffer: b, Current: selection.NewSelection(selection.Point(0))}

	ranges := Iter(Mark, p)
	require.Len(t, ranges, 2)
	assert.Equal(t, selection.Range{Start: 0, End: 3}, ranges[0], "iter is sorted by start")
}

func TestLocalQuickfixScopedToBufferPath(t *testing.T) {
	b := buffer.NewBufferFromString("content here")
	b.SetPath("/tmp/a.go")
	p := Params{
		Buffer:  b,
		Current: selection.NewSelection(selection.Point(0)),
		QuickfixItems: []QuickfixItem{
			{Path: "/tmp/a.go", Range: selection.Range{Start: 0, End: 7}},
			{Path: "/tmp/b.go", Range: selection.Range{Start: 1, End: 2}},
		},
	}
	ranges := Iter(LocalQuickfix, p)
	require.Len(t, ranges, 1)
	assert.Equal(t, selection.Range{Start: 0, End: 7}, ranges[0])
}

type staticBase string

func (s staticBase) BaseContent() (string, error) { return string(s), nil }

func TestGitHunkModeDiffsAgainstBase(t *testing.T) {
	p := paramsFor("one\nTWO changed\nthree", 0)
	p.GitBase = staticBase("one\ntwo\nthree")

	ranges := Iter(GitHunk, p)
	require.NotEmpty(t, ranges)
	hull := ranges[0]
	for _, r := range ranges[1:] {
		hull = hull.Union(r)
	}
	assert.GreaterOrEqual(t, hull.Start, selection.CharIndex(4), "hunks start within the changed line")
	assert.LessOrEqual(t, hull.End, selection.CharIndex(16))
}

func TestMovementFailureLeavesSelectionUsable(t *testing.T) {
	p := paramsFor("only", 0)
	p.SkipSymbols = true
	p.Current = selection.NewSelection(selection.Range{Start: 0, End: 4})

	_, ok := Apply(Word, p, Movement{Kind: MoveRight})
	assert.False(t, ok, "no right neighbor of the only word")
}

func TestJumpsRestrictedToVisibleLines(t *testing.T) {
	p := paramsFor("one\ntwo\nthree", 0)
	p.SkipSymbols = true
	assignments := Jumps(Word, p, []LineRange{{StartLine: 1, EndLine: 1}}, "ab")
	require.Len(t, assignments, 1)
	assert.Equal(t, selection.CharIndex(4), assignments[0].Candidate.Position)
}

func TestSelectionsInLineRanges(t *testing.T) {
	p := paramsFor("one\ntwo\nthree\nfour", 0)
	p.SkipSymbols = true
	got := SelectionsInLineRanges(Word, p, []LineRange{{StartLine: 1, EndLine: 2}})
	require.Len(t, got, 2)
	assert.Equal(t, "two", rangeText(p, got[0]))
	assert.Equal(t, "three", rangeText(p, got[1]))
}
