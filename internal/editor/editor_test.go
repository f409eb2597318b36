package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selectron/selectron/internal/arena"
	"github.com/selectron/selectron/internal/config"
	"github.com/selectron/selectron/internal/engine/buffer"
	"github.com/selectron/selectron/internal/selection"
	"github.com/selectron/selectron/internal/selectionmode"
	"github.com/selectron/selectron/internal/surround"
)

func newTestEditor(t *testing.T, content string, opts ...buffer.Option) (*Editor, *buffer.Buffer) {
	t.Helper()
	a := arena.New()
	b := buffer.NewBufferFromString(content, opts...)
	id := a.Put(b)
	return New(a, id, config.Default()), b
}

func dispatch(t *testing.T, e *Editor, op Op) []Out {
	t.Helper()
	outs, err := e.Dispatch(op)
	require.NoError(t, err)
	return outs
}

// selectVia jumps the cursor to at and snaps onto the containing range
// of the given mode.
func selectVia(t *testing.T, e *Editor, mode selectionmode.Kind, at selection.CharIndex, op Op) {
	t.Helper()
	dispatch(t, e, Op{Kind: OpMoveSelection, Movement: JumpMovement(at)})
	op.Kind = OpSetSelectionMode
	op.Mode = mode
	dispatch(t, e, op)
}

func primaryText(e *Editor, b *buffer.Buffer) string {
	return b.TextCharRange(toCharIndexRange(e.Selections().Primary().Range))
}

func TestInsertModeTyping(t *testing.T) {
	e, b := newTestEditor(t, "world")
	dispatch(t, e, Op{Kind: OpEnterInsertMode, Direction: StepStart})
	require.Equal(t, Insert, e.Mode())
	outs := dispatch(t, e, Op{Kind: OpInsert, Text: "hello "})
	assert.Equal(t, "hello world", b.Text())
	assert.Equal(t, selection.Point(6), e.Selections().Primary().Range)
	require.Len(t, outs, 1)
	assert.Equal(t, OutDocumentDidChange, outs[0].Kind)
	assert.Equal(t, "hello world", outs[0].Content)
}

func TestBackspaceDeletesCharBeforeCursor(t *testing.T) {
	e, b := newTestEditor(t, "abc")
	dispatch(t, e, Op{Kind: OpMoveSelection, Movement: JumpMovement(2)})
	dispatch(t, e, Op{Kind: OpEnterInsertMode, Direction: StepStart})
	dispatch(t, e, Op{Kind: OpBackspace})
	assert.Equal(t, "ac", b.Text())
	assert.Equal(t, selection.Point(1), e.Selections().Primary().Range)
}

func TestDeleteAsKillInContiguousMode(t *testing.T) {
	// Deleting a line forward swallows the gap; the next sibling
	// becomes the selection.
	e, b := newTestEditor(t, "one\ntwo\nthree")
	selectVia(t, e, selectionmode.Line, 5, Op{})
	require.Equal(t, "two", primaryText(e, b))

	dispatch(t, e, Op{Kind: OpDelete, Direction: StepEnd})
	assert.Equal(t, "one\nthree", b.Text())
	assert.Equal(t, "three", primaryText(e, b))
}

func TestDeleteForwardAtLastLineRemovesPrecedingNewline(t *testing.T) {
	e, b := newTestEditor(t, "one\ntwo")
	selectVia(t, e, selectionmode.Line, 5, Op{})
	dispatch(t, e, Op{Kind: OpDelete, Direction: StepEnd})
	assert.Equal(t, "one", b.Text())
}

func TestMultiCursorParallelInsert(t *testing.T) {
	// The S3 shape over a regex mode: a cursor on every field type,
	// then one insert typed at all of them.
	e, b := newTestEditor(t, "struct A(usize, char)")
	selectVia(t, e, selectionmode.Regex, 9, Op{Pattern: `usize|char`})
	require.Equal(t, "usize", primaryText(e, b))

	dispatch(t, e, Op{Kind: OpCursorAddToAllSelections})
	require.Equal(t, 2, e.Selections().Len())

	dispatch(t, e, Op{Kind: OpEnterInsertMode, Direction: StepStart})
	dispatch(t, e, Op{Kind: OpInsert, Text: "pub "})
	assert.Equal(t, "struct A(pub usize, pub char)", b.Text())
}

func TestSmartPasteDuplicatesGap(t *testing.T) {
	// S4: pasting after a list element re-uses the ", " separator
	// already between siblings.
	e, b := newTestEditor(t, "fn main(a:A, b:B) {}")
	selectVia(t, e, selectionmode.Regex, 8, Op{Pattern: `[a-z]:[A-Z]`})
	require.Equal(t, "a:A", primaryText(e, b))

	dispatch(t, e, Op{Kind: OpCopy})
	dispatch(t, e, Op{Kind: OpPaste, Direction: StepEnd})
	assert.Equal(t, "fn main(a:A, a:A, b:B) {}", b.Text())
	assert.Equal(t, "a:A", primaryText(e, b))

	// Paste before on a fresh buffer: the separator is borrowed from
	// the other side.
	e2, b2 := newTestEditor(t, "fn main(a:A, b:B) {}")
	selectVia(t, e2, selectionmode.Regex, 8, Op{Pattern: `[a-z]:[A-Z]`})
	dispatch(t, e2, Op{Kind: OpCopy})
	dispatch(t, e2, Op{Kind: OpPaste, Direction: StepStart})
	assert.Equal(t, "fn main(a:A, a:A, b:B) {}", b2.Text())
}

func TestSurroundGrowsSelection(t *testing.T) {
	// S5.
	e, b := newTestEditor(t, "fn main() { x.y() }")
	selectVia(t, e, selectionmode.Find, 12, Op{Search: "x.y()"})
	require.Equal(t, "x.y()", primaryText(e, b))

	dispatch(t, e, Op{Kind: OpSurround, Open: "(", Close: ")"})
	assert.Equal(t, "fn main() { (x.y()) }", b.Text())
	assert.Equal(t, "(x.y())", primaryText(e, b))
}

func TestSelectDeleteChangeSurround(t *testing.T) {
	e, b := newTestEditor(t, `before (inner) after`)
	dispatch(t, e, Op{Kind: OpMoveSelection, Movement: JumpMovement(10)})

	dispatch(t, e, Op{Kind: OpSelectSurround, Enclosure: surround.Parentheses, SelectAround: false})
	assert.Equal(t, "inner", primaryText(e, b))

	dispatch(t, e, Op{Kind: OpChangeSurround, Enclosure: surround.Parentheses, ToEnclosure: surround.SquareBrackets})
	assert.Equal(t, "before [inner] after", b.Text())
	assert.Equal(t, "inner", primaryText(e, b))

	dispatch(t, e, Op{Kind: OpDeleteSurround, Enclosure: surround.SquareBrackets})
	assert.Equal(t, "before inner after", b.Text())
	assert.Equal(t, "inner", primaryText(e, b))
}

func TestChangeDeletesAndEntersInsert(t *testing.T) {
	e, b := newTestEditor(t, "one two three")
	selectVia(t, e, selectionmode.Word, 4, Op{SkipSymbols: true})
	require.Equal(t, "two", primaryText(e, b))

	dispatch(t, e, Op{Kind: OpChange})
	assert.Equal(t, "one  three", b.Text())
	assert.Equal(t, Insert, e.Mode())
	dispatch(t, e, Op{Kind: OpInsert, Text: "2"})
	assert.Equal(t, "one 2 three", b.Text())
}

func TestExchangeSwapsWithNeighbor(t *testing.T) {
	e, b := newTestEditor(t, "one\ntwo\nthree")
	selectVia(t, e, selectionmode.Line, 0, Op{})
	require.Equal(t, "one", primaryText(e, b))

	dispatch(t, e, Op{Kind: OpEnterExchangeMode})
	dispatch(t, e, Op{Kind: OpMoveSelection, Movement: selectionmode.Movement{Kind: selectionmode.MoveNext}})
	assert.Equal(t, "two\none\nthree", b.Text())
	assert.Equal(t, "one", primaryText(e, b), "selection follows the moved content")
}

func TestUndoRedoThroughDispatch(t *testing.T) {
	e, b := newTestEditor(t, "hello")
	dispatch(t, e, Op{Kind: OpMoveSelection, Movement: JumpMovement(5)})
	dispatch(t, e, Op{Kind: OpEnterInsertMode, Direction: StepEnd})
	dispatch(t, e, Op{Kind: OpInsert, Text: "!"})
	require.Equal(t, "hello!", b.Text())

	dispatch(t, e, Op{Kind: OpUndo})
	assert.Equal(t, "hello", b.Text())
	dispatch(t, e, Op{Kind: OpRedo})
	assert.Equal(t, "hello!", b.Text())
}

func TestKillLineForward(t *testing.T) {
	e, b := newTestEditor(t, "hello world\nnext")
	dispatch(t, e, Op{Kind: OpMoveSelection, Movement: JumpMovement(5)})
	dispatch(t, e, Op{Kind: OpKillLine, Direction: StepEnd})
	assert.Equal(t, "hello\nnext", b.Text())
}

func TestOpenBelowCarriesIndentation(t *testing.T) {
	e, b := newTestEditor(t, "  indented")
	dispatch(t, e, Op{Kind: OpMoveSelection, Movement: JumpMovement(4)})
	dispatch(t, e, Op{Kind: OpOpen, Direction: StepEnd})
	assert.Equal(t, "  indented\n  ", b.Text())
	assert.Equal(t, Insert, e.Mode())
	assert.Equal(t, selection.Point(13), e.Selections().Primary().Range)
}

func TestIndentDedent(t *testing.T) {
	e, b := newTestEditor(t, "line")
	dispatch(t, e, Op{Kind: OpIndent})
	assert.Equal(t, "    line", b.Text())
	dispatch(t, e, Op{Kind: OpDedent})
	assert.Equal(t, "line", b.Text())
}

func TestFindOneChar(t *testing.T) {
	e, b := newTestEditor(t, "hello world")
	dispatch(t, e, Op{Kind: OpEnterFindOneCharMode, IfNotFound: selectionmode.LookForward})
	require.Equal(t, FindOneChar, e.Mode())
	dispatch(t, e, Op{Kind: OpInsert, Text: "o"})
	assert.Equal(t, Normal, e.Mode())
	assert.Equal(t, "o", primaryText(e, b))
	assert.Equal(t, selection.Range{Start: 4, End: 5}, e.Selections().Primary().Range)
}

func TestCursorOps(t *testing.T) {
	e, _ := newTestEditor(t, "aa bb cc")
	selectVia(t, e, selectionmode.Word, 0, Op{SkipSymbols: true})
	dispatch(t, e, Op{Kind: OpCursorAddToAllSelections})
	require.Equal(t, 3, e.Selections().Len())

	dispatch(t, e, Op{Kind: OpCyclePrimarySelection, Direction: StepEnd})
	assert.Equal(t, 1, e.Selections().PrimaryIndex())

	dispatch(t, e, Op{Kind: OpDeleteCurrentCursor, Direction: StepEnd})
	assert.Equal(t, 2, e.Selections().Len())

	dispatch(t, e, Op{Kind: OpCursorKeepPrimaryOnly})
	assert.Equal(t, 1, e.Selections().Len())
}

func TestSelectionExtensionMovement(t *testing.T) {
	e, b := newTestEditor(t, "one two three")
	selectVia(t, e, selectionmode.Word, 0, Op{SkipSymbols: true})
	dispatch(t, e, Op{Kind: OpEnableSelectionExtension})
	dispatch(t, e, Op{Kind: OpMoveSelection, Movement: selectionmode.Movement{Kind: selectionmode.MoveRight}})
	dispatch(t, e, Op{Kind: OpMoveSelection, Movement: selectionmode.Movement{Kind: selectionmode.MoveRight}})

	sel := e.Selections().Primary()
	require.True(t, sel.IsExtending())
	ext := sel.ExtendedRange()
	assert.Equal(t, "one two three", b.TextCharRange(toCharIndexRange(ext)))

	// Deleting the extended selection removes the whole hull.
	dispatch(t, e, Op{Kind: OpDelete, Direction: StepEnd})
	assert.Equal(t, "", b.Text())
}

func TestToggleMark(t *testing.T) {
	e, b := newTestEditor(t, "one two")
	selectVia(t, e, selectionmode.Word, 0, Op{SkipSymbols: true})
	dispatch(t, e, Op{Kind: OpToggleMark})
	require.Len(t, b.Marks(), 1)
	dispatch(t, e, Op{Kind: OpToggleMark})
	assert.Empty(t, b.Marks())
}

func TestShowJumpsNaturalLabelsAreUnique(t *testing.T) {
	e, _ := newTestEditor(t, "apple banana cherry")
	selectVia(t, e, selectionmode.Word, 0, Op{SkipSymbols: true})
	dispatch(t, e, Op{Kind: OpShowJumps, UseCurrentSelectionMode: true})

	jumps := e.Jumps()
	require.Len(t, jumps, 3)
	seen := map[string]bool{}
	for _, j := range jumps {
		assert.False(t, seen[string(j.Label)], "labels are unique within one invocation")
		seen[string(j.Label)] = true
	}
	assert.True(t, seen["a"])
	assert.True(t, seen["b"])
	assert.True(t, seen["c"])
}

func TestShowJumpsRelabelsIdenticalCandidates(t *testing.T) {
	e, _ := newTestEditor(t, "aa ab ac")
	selectVia(t, e, selectionmode.Word, 0, Op{SkipSymbols: true})
	dispatch(t, e, Op{Kind: OpShowJumps, UseCurrentSelectionMode: true})

	jumps := e.Jumps()
	require.Len(t, jumps, 3)
	labels := map[string]bool{}
	for _, j := range jumps {
		labels[string(j.Label)] = true
	}
	assert.Len(t, labels, 3, "identical first chars are rewritten from the alphabet")
}

func TestJumpToResolvesUniqueLabel(t *testing.T) {
	e, b := newTestEditor(t, "apple banana cherry")
	selectVia(t, e, selectionmode.Word, 0, Op{SkipSymbols: true})
	dispatch(t, e, Op{Kind: OpShowJumps, UseCurrentSelectionMode: true})

	require.True(t, e.JumpTo('b'))
	assert.Equal(t, "banana", primaryText(e, b))
	assert.Empty(t, e.Jumps())
}

func TestReplaceRaisesContentOverTarget(t *testing.T) {
	e, b := newTestEditor(t, "keep drop")
	selectVia(t, e, selectionmode.Word, 0, Op{SkipSymbols: true})
	require.Equal(t, "keep", primaryText(e, b))

	dispatch(t, e, Op{Kind: OpEnterReplaceMode})
	dispatch(t, e, Op{Kind: OpMoveSelection, Movement: selectionmode.Movement{Kind: selectionmode.MoveRight}})
	assert.Equal(t, "keep", b.Text())
	assert.Equal(t, "keep", primaryText(e, b))
}

func TestReplaceWithCopiedText(t *testing.T) {
	e, b := newTestEditor(t, "one two")
	selectVia(t, e, selectionmode.Word, 0, Op{SkipSymbols: true})
	dispatch(t, e, Op{Kind: OpCopy})

	selectVia(t, e, selectionmode.Word, 4, Op{SkipSymbols: true})
	require.Equal(t, "two", primaryText(e, b))
	dispatch(t, e, Op{Kind: OpReplaceWithCopiedText})
	assert.Equal(t, "one one", b.Text())
}

func TestReplacePattern(t *testing.T) {
	e, b := newTestEditor(t, "foo_bar")
	selectVia(t, e, selectionmode.Line, 0, Op{})
	dispatch(t, e, Op{Kind: OpReplacePattern, PatternConfig: ReplacePatternConfig{Pattern: "_", Replacement: "-"}})
	assert.Equal(t, "foo-bar", b.Text())
}

func TestSaveWritesAtomicallyAndReports(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	e, b := newTestEditor(t, "fresh content", buffer.WithPath(path))
	outs := dispatch(t, e, Op{Kind: OpSave})
	require.Len(t, outs, 1)
	assert.Equal(t, OutDocumentDidSave, outs[0].Kind)
	assert.Equal(t, path, outs[0].Path)
	assert.False(t, b.IsDirty())

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh content", string(onDisk))
}

func TestSaveWithoutPathShowsInfo(t *testing.T) {
	e, _ := newTestEditor(t, "scratch")
	outs := dispatch(t, e, Op{Kind: OpSave})
	require.Len(t, outs, 1)
	assert.Equal(t, OutShowInfo, outs[0].Kind)
}

func TestSelectionHistoryNavigation(t *testing.T) {
	e, b := newTestEditor(t, "one two three")
	selectVia(t, e, selectionmode.Word, 0, Op{SkipSymbols: true})
	selectVia(t, e, selectionmode.Word, 8, Op{SkipSymbols: true})
	require.Equal(t, "three", primaryText(e, b))

	dispatch(t, e, Op{Kind: OpGoBackSelectionSet})
	assert.NotEqual(t, "three", primaryText(e, b))
}

func TestDispatchOnClosedBuffer(t *testing.T) {
	a := arena.New()
	b := buffer.NewBufferFromString("gone")
	id := a.Put(b)
	e := New(a, id, config.Default())
	require.NoError(t, a.Close(id))

	_, err := e.Dispatch(Op{Kind: OpEnterNormalMode})
	assert.ErrorIs(t, err, ErrBufferClosed)
}

type fixedBase string

func (f fixedBase) BaseContent() (string, error) { return string(f), nil }

func TestQuickfixAndGitHunkCollaborators(t *testing.T) {
	e, b := newTestEditor(t, "alpha\nbeta\n")
	b.SetPath("/tmp/qf.go")

	e.SetQuickfixItems([]selectionmode.QuickfixItem{
		{Path: "/tmp/qf.go", Range: selection.Range{Start: 6, End: 10}, Title: "beta hit"},
	})
	selectVia(t, e, selectionmode.LocalQuickfix, 0, Op{})
	assert.Equal(t, "beta", primaryText(e, b))

	e.SetGitBaseProvider(fixedBase("alpha\n"))
	selectVia(t, e, selectionmode.GitHunk, 6, Op{})
	assert.NotEqual(t, selection.Range{}, e.Selections().Primary().Range)
}
