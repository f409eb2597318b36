package selection

import "errors"

// ErrEmptySet is returned by operations that would leave a SelectionSet
// with zero selections; a SelectionSet is always non-empty, the same
// invariant coreseekdev-texere's Selection enforces by substituting a
// zero-width Point selection when constructed with no ranges.
var ErrEmptySet = errors.New("selection: set must not be empty")

// SelectionSet is an ordered, non-empty collection of Selections with
// a distinguished primary. Unlike keystorm's cursor.CursorSet, it
// never auto-sorts or auto-merges overlapping selections — multi-
// cursor editing routinely produces overlapping extended ranges that
// must stay distinct until the caller explicitly asks for a dedup
// pass (Dedup), matching coreseekdev-texere's Selection{ranges,
// primaryIndex} rather than keystorm's CursorSet.
type SelectionSet struct {
	selections []Selection
	primary    int
}

// NewSelectionSet creates a SelectionSet from one or more selections.
// The first selection is primary.
func NewSelectionSet(sels ...Selection) SelectionSet {
	if len(sels) == 0 {
		sels = []Selection{NewSelection(Point(0))}
	}
	return SelectionSet{selections: sels, primary: 0}
}

// NewSelectionSetWithPrimary creates a SelectionSet with an explicit
// primary index, clamped into range.
func NewSelectionSetWithPrimary(sels []Selection, primary int) SelectionSet {
	if len(sels) == 0 {
		sels = []Selection{NewSelection(Point(0))}
	}
	if primary < 0 || primary >= len(sels) {
		primary = 0
	}
	return SelectionSet{selections: sels, primary: primary}
}

// Len returns the number of selections in the set.
func (s SelectionSet) Len() int { return len(s.selections) }

// PrimaryIndex returns the index of the primary selection.
func (s SelectionSet) PrimaryIndex() int { return s.primary }

// Primary returns the primary selection.
func (s SelectionSet) Primary() Selection { return s.selections[s.primary] }

// At returns the selection at index i.
func (s SelectionSet) At(i int) Selection { return s.selections[i] }

// All returns the selections in order. The returned slice must not be
// mutated; use Map/Replace to produce a new set.
func (s SelectionSet) All() []Selection { return s.selections }

// WithPrimary returns a copy of s with the primary index set to i.
func (s SelectionSet) WithPrimary(i int) SelectionSet {
	if i < 0 || i >= len(s.selections) {
		return s
	}
	return SelectionSet{selections: s.selections, primary: i}
}

// Replace returns a copy of s with the selection at index i replaced.
func (s SelectionSet) Replace(i int, sel Selection) SelectionSet {
	next := make([]Selection, len(s.selections))
	copy(next, s.selections)
	next[i] = sel
	return SelectionSet{selections: next, primary: s.primary}
}

// Map returns a new SelectionSet with f applied to every selection,
// in place, preserving order, count and the primary index.
func (s SelectionSet) Map(f func(Selection) Selection) SelectionSet {
	next := make([]Selection, len(s.selections))
	for i, sel := range s.selections {
		next[i] = f(sel)
	}
	return SelectionSet{selections: next, primary: s.primary}
}

// Add appends a new selection, optionally making it primary.
func (s SelectionSet) Add(sel Selection, makePrimary bool) SelectionSet {
	next := append(append([]Selection(nil), s.selections...), sel)
	primary := s.primary
	if makePrimary {
		primary = len(next) - 1
	}
	return SelectionSet{selections: next, primary: primary}
}

// Remove drops the selection at index i. Returns ErrEmptySet if that
// would leave the set empty; the primary index is clamped afterward.
func (s SelectionSet) Remove(i int) (SelectionSet, error) {
	if len(s.selections) <= 1 {
		return s, ErrEmptySet
	}
	next := make([]Selection, 0, len(s.selections)-1)
	next = append(next, s.selections[:i]...)
	next = append(next, s.selections[i+1:]...)
	primary := s.primary
	switch {
	case primary > i:
		primary--
	case primary >= len(next):
		primary = len(next) - 1
	}
	return SelectionSet{selections: next, primary: primary}, nil
}

// Dedup removes selections whose Range exactly duplicates an earlier
// one in the set, called explicitly after a movement per the
// movement engine's step 3 (adjacent-duplicate collapse); it never
// runs implicitly on mutation.
func (s SelectionSet) Dedup() SelectionSet {
	seen := make(map[Range]bool, len(s.selections))
	next := make([]Selection, 0, len(s.selections))
	primary := s.selections[s.primary]
	primaryKept := false
	for i, sel := range s.selections {
		if seen[sel.Range] {
			if i == s.primary {
				// The identical earlier range stands in for the primary.
				primaryKept = true
			}
			continue
		}
		seen[sel.Range] = true
		if i == s.primary {
			primaryKept = true
		}
		next = append(next, sel)
	}
	newPrimary := 0
	if primaryKept {
		for i, sel := range next {
			if sel.Range == primary.Range {
				newPrimary = i
				break
			}
		}
	}
	return SelectionSet{selections: next, primary: newPrimary}
}

// Only drops every selection but the primary, spec.md §4.4's `only()`
// (CursorKeepPrimaryOnly).
func (s SelectionSet) Only() SelectionSet {
	return SelectionSet{selections: []Selection{s.selections[s.primary]}, primary: 0}
}

// CyclePrimarySelection rotates the primary index by delta (+1/-1),
// wrapping, spec.md §4.4's `cycle_primary_selection(Direction)`.
func (s SelectionSet) CyclePrimarySelection(delta int) SelectionSet {
	n := len(s.selections)
	next := ((s.primary+delta)%n + n) % n
	return SelectionSet{selections: s.selections, primary: next}
}

// DeleteCurrentSelection drops the primary selection; the neighbor in
// delta's direction (+1/-1) becomes the new primary, spec.md §4.4's
// `delete_current_selection(Direction)`. Returns ErrEmptySet if s has
// only one selection.
func (s SelectionSet) DeleteCurrentSelection(delta int) (SelectionSet, error) {
	if len(s.selections) <= 1 {
		return s, ErrEmptySet
	}
	removed := s.primary
	next, err := s.Remove(removed)
	if err != nil {
		return s, err
	}
	n := next.Len()
	newPrimary := removed
	if delta < 0 {
		newPrimary = removed - 1
	}
	newPrimary = ((newPrimary % n) + n) % n
	return next.WithPrimary(newPrimary), nil
}

// EnableSelectionExtension captures every selection's current range as
// its extension anchor, spec.md §4.4's `enable_selection_extension()`.
func (s SelectionSet) EnableSelectionExtension() SelectionSet {
	return s.Map(Selection.StartExtending)
}

// UnsetInitialRange clears every selection's extension anchor, spec.md
// §4.4's `unset_initial_range()`.
func (s SelectionSet) UnsetInitialRange() SelectionSet {
	return s.Map(Selection.StopExtending)
}

// SwapInitialRangeDirection swaps each extending selection's Range and
// InitialRange, spec.md §4.4's `swap_initial_range_direction()`: the
// extended range's hull is unchanged, but which edge further movement
// grows from flips.
func (s SelectionSet) SwapInitialRangeDirection() SelectionSet {
	return s.Map(func(sel Selection) Selection {
		if sel.InitialRange == nil {
			return sel
		}
		anchor := *sel.InitialRange
		sel.Range, anchor = anchor, sel.Range
		sel.InitialRange = &anchor
		return sel
	})
}

// Clamp restricts every selection's Range and InitialRange to
// [0, lenChars], spec.md §4.4's `clamp(len_chars)` — applied after an
// external content change so stale ranges never point past the new
// end. The number of selections is preserved.
func (s SelectionSet) Clamp(lenChars CharIndex) SelectionSet {
	return s.Map(func(sel Selection) Selection {
		sel.Range = sel.Range.Clamp(lenChars)
		if sel.InitialRange != nil {
			a := sel.InitialRange.Clamp(lenChars)
			sel.InitialRange = &a
		}
		return sel
	})
}

// ExtendedRange returns the convex hull of sel's Range and
// InitialRange (or just Range, if not extending) — the glossary's
// "extended range".
func (sel Selection) ExtendedRange() Range {
	if sel.InitialRange == nil {
		return sel.Range
	}
	return sel.Range.Union(*sel.InitialRange)
}

// Sort returns a copy of s with selections ordered by Range.Start,
// preserving which Selection is primary by value rather than index.
func (s SelectionSet) Sort() SelectionSet {
	primaryRange := s.selections[s.primary].Range
	next := append([]Selection(nil), s.selections...)
	// Simple insertion sort: sets are small (typically single digits
	// to low hundreds of cursors), and stability matters more here
	// than asymptotic complexity.
	for i := 1; i < len(next); i++ {
		for j := i; j > 0 && next[j].Range.Start < next[j-1].Range.Start; j-- {
			next[j], next[j-1] = next[j-1], next[j]
		}
	}
	primary := 0
	for i, sel := range next {
		if sel.Range == primaryRange {
			primary = i
			break
		}
	}
	return SelectionSet{selections: next, primary: primary}
}
