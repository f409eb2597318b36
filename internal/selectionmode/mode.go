// Package selectionmode implements the selection mode family of
// spec.md §4.3: a closed set of semantic classifiers (Character, Word,
// Line, SyntaxNode, regex search, diagnostics, marks, git hunks, ...)
// each yielding the ranges navigable by the movement engine. Rather
// than one interface type per variant (trait objects, per spec.md
// §9's explicit guidance against them), a Kind enum selects a small
// variantSpec of plain functions, mirroring how keystorm dispatches on
// its own closed mode sets with a switch rather than a registry.
package selectionmode

import (
	"sort"

	"github.com/selectron/selectron/internal/engine/buffer"
	"github.com/selectron/selectron/internal/selection"
)

// Kind is the closed selection-mode sum type of spec.md §3.
type Kind uint8

const (
	Character Kind = iota
	Word
	Token
	Line
	LineFull
	SyntaxNode
	SyntaxNodeFine
	Find
	Regex
	AstGrep
	NamingConventionAgnostic
	Diagnostic
	GitHunk
	Mark
	LocalQuickfix
	Custom
)

// IfCurrentNotFound selects the fallback search direction of spec.md
// §4.3's current-selection policy.
type IfCurrentNotFound uint8

const (
	LookForward IfCurrentNotFound = iota
	LookBackward
)

// QuickfixItem is a single entry of a persisted quickfix list, scoped
// to LocalQuickfix by matching Path against the buffer's own path.
type QuickfixItem struct {
	Path  string
	Range selection.Range
	Title string
}

// GitBaseProvider supplies the base content a GitHunk mode diffs the
// buffer's current text against (current HEAD, main branch, ...); git
// I/O itself stays a host concern per spec.md §1.
type GitBaseProvider interface {
	BaseContent() (string, error)
}

// Params bundles the mode-agnostic fields of spec.md §4.3's
// `{buffer, current_selection, cursor_direction}` plus every variant's
// optional parameters — only the fields the active Kind reads are
// meaningful, the same "only the matching field of Kind is meaningful"
// convention internal/edit.Action uses for its Edit/Select fields.
type Params struct {
	Buffer          *buffer.Buffer
	Current         selection.Selection
	CursorDirection selection.CursorDirection

	// Word/Token
	SkipSymbols bool

	// Find
	Search string
	// Regex/NamingConventionAgnostic
	Pattern string

	// Diagnostic
	Severity    buffer.DiagnosticSeverity
	HasSeverity bool

	// GitHunk
	GitBase GitBaseProvider

	// LocalQuickfix
	QuickfixItems []QuickfixItem
}

// MovementKind is spec.md §4.5's Movement sum type, minus the payload
// carried by Current/Index/Jump (held alongside it in Movement).
type MovementKind uint8

const (
	MoveRight MovementKind = iota
	MoveLeft
	MoveUp
	MoveDown
	MoveFirst
	MoveLast
	MoveCurrent
	MoveIndex
	MoveJump
	MoveExpand
	MoveNext
	MovePrevious
	MoveDeleteBackward
	MoveDeleteForward
)

// Movement is spec.md §4.5's Movement value, generalized with its
// payload fields. It lives in this package rather than a separate
// movement package so internal/movement can depend on selectionmode
// without a cycle back.
type Movement struct {
	Kind       MovementKind
	IfNotFound IfCurrentNotFound // MoveCurrent
	Index      int               // MoveIndex
	Jump       selection.Range   // MoveJump
}

// variantSpec is the per-Kind capability bundle of spec.md §4.3: iter
// is mandatory, the rest default to the generic implementations below
// and are overridden only where a variant needs something else (exact
// mirror of how keystorm separates Selection's generic methods from
// CursorSet's aggregate ones).
type variantSpec struct {
	iter       func(Params) []selection.Range
	contiguous bool
	up         func(Params) (selection.Selection, bool)
	down       func(Params) (selection.Selection, bool)
	expand     func(Params) (selection.Selection, bool)
}

func specFor(kind Kind) variantSpec {
	switch kind {
	case Character:
		return variantSpec{iter: iterCharacter, contiguous: true, up: verticalMove(-1), down: verticalMove(1)}
	case Word:
		return variantSpec{iter: iterWord}
	case Token:
		return variantSpec{iter: iterToken, contiguous: true}
	case Line:
		return variantSpec{iter: iterLine, contiguous: true}
	case LineFull:
		return variantSpec{iter: iterLineFull, contiguous: true}
	case SyntaxNode:
		return variantSpec{iter: iterSyntaxNode(true), contiguous: true, up: syntaxParent, down: syntaxFirstChild, expand: syntaxParent}
	case SyntaxNodeFine:
		return variantSpec{iter: iterSyntaxNode(false), up: syntaxParent, down: syntaxFirstChild, expand: syntaxParent}
	case Find:
		return variantSpec{iter: iterFind}
	case Regex:
		return variantSpec{iter: iterRegex}
	case NamingConventionAgnostic:
		return variantSpec{iter: iterNamingConventionAgnostic}
	case AstGrep:
		return variantSpec{iter: iterAstGrep}
	case Diagnostic:
		return variantSpec{iter: iterDiagnostic}
	case GitHunk:
		return variantSpec{iter: iterGitHunk}
	case Mark:
		return variantSpec{iter: iterMark}
	case LocalQuickfix:
		return variantSpec{iter: iterLocalQuickfix}
	default:
		return variantSpec{iter: func(Params) []selection.Range { return nil }}
	}
}

// IsContiguous reports whether kind's ranges tile the buffer without
// gaps, the property delete-as-kill (spec.md §4.3, S2) relies on.
func IsContiguous(kind Kind) bool { return specFor(kind).contiguous }

// Iter returns kind's semantic ranges over p.Buffer, sorted by start,
// spec.md §4.3's `iter(params)`.
func Iter(kind Kind, p Params) []selection.Range {
	ranges := specFor(kind).iter(p)
	sorted := append([]selection.Range(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})
	return sorted
}

// Apply runs movement against kind's ranges, spec.md §4.5 step 1 for a
// single selection (the movement engine calls this once per selection
// in the set). ok=false means the selection is left unchanged by the
// movement engine, per spec.md §4.5 step 2.
func Apply(kind Kind, p Params, m Movement) (selection.Selection, bool) {
	spec := specFor(kind)
	ranges := Iter(kind, p)

	switch m.Kind {
	case MoveLeft, MovePrevious:
		return neighbor(ranges, p, -1)
	case MoveRight, MoveNext:
		return neighbor(ranges, p, 1)
	case MoveUp:
		if spec.up != nil {
			return spec.up(p)
		}
		return neighbor(ranges, p, -1)
	case MoveDown:
		if spec.down != nil {
			return spec.down(p)
		}
		return neighbor(ranges, p, 1)
	case MoveFirst:
		if len(ranges) == 0 {
			return selection.Selection{}, false
		}
		return p.Current.WithRange(ranges[0]), true
	case MoveLast:
		if len(ranges) == 0 {
			return selection.Selection{}, false
		}
		return p.Current.WithRange(ranges[len(ranges)-1]), true
	case MoveCurrent:
		return Current(ranges, p, m.IfNotFound)
	case MoveIndex:
		if m.Index < 0 || m.Index >= len(ranges) {
			return selection.Selection{}, false
		}
		return p.Current.WithRange(ranges[m.Index]), true
	case MoveJump:
		return p.Current.WithRange(m.Jump), true
	case MoveExpand:
		if spec.expand != nil {
			return spec.expand(p)
		}
		return expandEnclosure(p)
	case MoveDeleteBackward:
		return deleteNeighbor(ranges, p, spec.contiguous, -1)
	case MoveDeleteForward:
		return deleteNeighbor(ranges, p, spec.contiguous, 1)
	}
	return selection.Selection{}, false
}

// cursorOf returns the char index neighbor() and Current() use to
// locate the active position within p.Current, per spec.md §4.3's
// cursor_direction parameter.
func cursorOf(p Params) selection.CharIndex {
	return p.Current.Cursor(p.CursorDirection)
}

// neighbor finds the range immediately before (dir<0) or after (dir>0)
// p.Current's range among the sorted ranges — spec.md §4.3's generic
// default left/right: binary search over iter() by byte (here, char)
// range.
func neighbor(ranges []selection.Range, p Params, dir int) (selection.Selection, bool) {
	if len(ranges) == 0 {
		return selection.Selection{}, false
	}
	cur := p.Current.Range
	idx := sort.Search(len(ranges), func(i int) bool { return ranges[i].Start >= cur.Start })

	if dir < 0 {
		for i := idx - 1; i >= 0; i-- {
			if ranges[i].Start < cur.Start || (ranges[i].Start == cur.Start && ranges[i].End < cur.End) {
				return p.Current.WithRange(ranges[i]), true
			}
		}
		return selection.Selection{}, false
	}
	for i := idx; i < len(ranges); i++ {
		if ranges[i] != cur {
			return p.Current.WithRange(ranges[i]), true
		}
	}
	return selection.Selection{}, false
}

// deleteNeighbor implements the contiguous-mode "kill" override of
// spec.md §4.3: the deleted range is extended to swallow the gap to
// the next selection, so repeated deletions leave the document
// contiguous in that mode (S2). Non-contiguous modes just delete the
// current range.
func deleteNeighbor(ranges []selection.Range, p Params, contiguous bool, dir int) (selection.Selection, bool) {
	if !contiguous {
		return p.Current, true
	}
	n, ok := neighbor(ranges, p, dir)
	if !ok {
		// No sibling on the requested side: swallow the gap on the
		// opposite side instead, so e.g. delete-forward on the last
		// line also removes the preceding newline and the document
		// stays contiguous in this mode.
		o, okOpp := neighbor(ranges, p, -dir)
		if !okOpp {
			return p.Current, true
		}
		if dir > 0 {
			return p.Current.WithRange(selection.Range{Start: o.Range.End, End: p.Current.Range.End}), true
		}
		return p.Current.WithRange(selection.Range{Start: p.Current.Range.Start, End: o.Range.Start}), true
	}
	if dir > 0 {
		return p.Current.WithRange(selection.Range{Start: p.Current.Range.Start, End: n.Range.Start}), true
	}
	return p.Current.WithRange(selection.Range{Start: n.Range.End, End: p.Current.Range.End}), true
}

// Current implements spec.md §4.3's current-selection policy: prefer a
// range containing the cursor, else follow ifNotFound, else try the
// opposite direction.
func Current(ranges []selection.Range, p Params, ifNotFound IfCurrentNotFound) (selection.Selection, bool) {
	cursor := cursorOf(p)
	for _, r := range ranges {
		if r.ContainsInclusive(cursor) || r.Contains(cursor) {
			return p.Current.WithRange(r), true
		}
	}
	dir := 1
	if ifNotFound == LookBackward {
		dir = -1
	}
	if sel, ok := nearestInDirection(ranges, cursor, dir); ok {
		return p.Current.WithRange(sel), true
	}
	if sel, ok := nearestInDirection(ranges, cursor, -dir); ok {
		return p.Current.WithRange(sel), true
	}
	return selection.Selection{}, false
}

func nearestInDirection(ranges []selection.Range, cursor selection.CharIndex, dir int) (selection.Range, bool) {
	if dir > 0 {
		for _, r := range ranges {
			if r.Start >= cursor {
				return r, true
			}
		}
		return selection.Range{}, false
	}
	for i := len(ranges) - 1; i >= 0; i-- {
		if ranges[i].End <= cursor {
			return ranges[i], true
		}
	}
	return selection.Range{}, false
}

// verticalMove builds Character mode's Up/Down: move one row,
// preserving the target column (spec.md §4.3's Character variant).
func verticalMove(rowDelta int) func(Params) (selection.Selection, bool) {
	return func(p Params) (selection.Selection, bool) {
		b := p.Buffer
		cursor := cursorOf(p)
		pos := b.CharToPosition(cursor)
		targetLine := int64(pos.Line) + int64(rowDelta)
		if targetLine < 0 || targetLine >= int64(b.LineCount()) {
			return selection.Selection{}, false
		}
		target := b.PositionToChar(buffer.Point{Line: uint32(targetLine), Column: pos.Column})
		return p.Current.WithRange(selection.Point(target)), true
	}
}
