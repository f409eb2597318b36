// Package edit implements the EditTransaction data model of spec.md
// §3/§4.6: an atomic batch of per-cursor action groups, each an
// ordered sequence of Edit and Select actions. The package only holds
// data plus the group-ordering and non-overlap validation spec.md
// §4.6 steps 1-2 describe; applying a transaction against a buffer
// (offset accumulation, rebasing, reparse) is
// engine/buffer.Buffer.ApplyEditTransaction, which imports this
// package rather than the other way around, mirroring how keystorm's
// buffer.Edit/ChangeType/Change.Invert live alongside the buffer that
// interprets them.
package edit

import (
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/selectron/selectron/internal/selection"
)

// CharIndex mirrors selection.CharIndex.
type CharIndex = selection.CharIndex

// Range mirrors selection.Range.
type Range = selection.Range

// ErrOverlappingEdits is returned by ValidateNonOverlap when two edit
// actions' ranges overlap — a programmer error per spec.md §4.6 step 2
// and §7's OverlappingEdits kind. Fatal to the transaction; the buffer
// is left unchanged.
var ErrOverlappingEdits = errors.New("edit: action groups contain overlapping edit ranges")

// Edit replaces the characters in Range with New, spec.md §3's
// `Edit{range, new}`.
type Edit struct {
	Range Range
	New   string
}

// NewInsert creates an Edit that inserts text at a zero-length point.
func NewInsert(at CharIndex, text string) Edit {
	return Edit{Range: selection.Point(at), New: text}
}

// NewDelete creates an Edit that deletes r without inserting anything.
func NewDelete(r Range) Edit {
	return Edit{Range: r}
}

// NewReplace creates an Edit that replaces r's content with text.
func NewReplace(r Range, text string) Edit {
	return Edit{Range: r, New: text}
}

// ActionKind distinguishes the two Action variants of spec.md §3.
type ActionKind uint8

const (
	ActionEdit ActionKind = iota
	ActionSelect
)

// Action is either an Edit or a Select, spec.md §3's `Action` sum
// type. Only the field matching Kind is meaningful.
type Action struct {
	Kind   ActionKind
	Edit   Edit
	Select selection.Selection
}

// NewEditAction wraps e as an Action.
func NewEditAction(e Edit) Action { return Action{Kind: ActionEdit, Edit: e} }

// NewSelectAction wraps s as an Action.
func NewSelectAction(s selection.Selection) Action { return Action{Kind: ActionSelect, Select: s} }

// ActionGroup is the ordered contribution of one cursor to a
// transaction, spec.md §3's `ActionGroup`.
type ActionGroup []Action

// firstEditRange returns the range of the first Edit action in g, used
// to order groups left-to-right (spec.md §4.6 step 1). ok is false if
// the group has no edit action (a pure-Select group, e.g. a cursor
// that didn't change text), which sorts last.
func (g ActionGroup) firstEditRange() (r Range, ok bool) {
	for _, a := range g {
		if a.Kind == ActionEdit {
			return a.Edit.Range, true
		}
	}
	return Range{}, false
}

// Transaction is spec.md §3's `EditTransaction`: an ordered sequence
// of action groups. Edit ranges across all groups must be pairwise
// non-overlapping — enforced by ValidateNonOverlap, not by this type's
// constructor, since the transaction's author (the editor state
// machine) is in the best position to report which operation produced
// the violation.
type Transaction struct {
	// ID traces a transaction end-to-end through applog fields and the
	// DocumentDidChange dispatch, per SPEC_FULL.md's DOMAIN STACK.
	ID     uuid.UUID
	Groups []ActionGroup
}

// NewTransaction builds a Transaction from action groups, assigning it
// a fresh trace ID.
func NewTransaction(groups ...ActionGroup) Transaction {
	return Transaction{ID: uuid.New(), Groups: groups}
}

// IsEmpty returns true if the transaction has no action groups.
func (t Transaction) IsEmpty() bool { return len(t.Groups) == 0 }

// Sorted returns a copy of t's groups ordered by the start of each
// group's first edit action (spec.md §4.6 step 1). Groups without an
// edit action (pure cursor moves folded into a transaction) sort
// after every edit-bearing group, in their original relative order.
func (t Transaction) Sorted() []ActionGroup {
	groups := append([]ActionGroup(nil), t.Groups...)
	sort.SliceStable(groups, func(i, j int) bool {
		ri, oki := groups[i].firstEditRange()
		rj, okj := groups[j].firstEditRange()
		if !oki {
			return false
		}
		if !okj {
			return true
		}
		return ri.Start < rj.Start
	})
	return groups
}

// ValidateNonOverlap checks that, across sortedGroups (the result of
// Sorted), no two edit actions' ranges overlap — spec.md §4.6 step 2:
// for edits [a,b) then [c,d) with a <= c, require b <= c.
func ValidateNonOverlap(sortedGroups []ActionGroup) error {
	havePrev := false
	var prevEnd CharIndex
	for _, g := range sortedGroups {
		for _, a := range g {
			if a.Kind != ActionEdit {
				continue
			}
			if havePrev && a.Edit.Range.Start < prevEnd {
				return ErrOverlappingEdits
			}
			prevEnd = a.Edit.Range.End
			havePrev = true
		}
	}
	return nil
}

// Invert returns the inverse of a single Edit given the text it
// replaced, the core of undo-tree node inversion (spec.md §3's undo
// tree, grounded on keystorm's Change.Invert): replaying Invert(e,
// oldText) after e restores the original content exactly.
func Invert(e Edit, oldText string) Edit {
	newEnd := e.Range.Start + CharIndex(len([]rune(e.New)))
	return Edit{Range: Range{Start: e.Range.Start, End: newEnd}, New: oldText}
}
