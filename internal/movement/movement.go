// Package movement implements spec.md §4.5: applying a Movement to
// every selection in a SelectionSet under one SelectionMode, in one
// step, per-selection failures simply leaving that selection
// unchanged.
package movement

import (
	"github.com/selectron/selectron/internal/engine/buffer"
	"github.com/selectron/selectron/internal/selection"
	"github.com/selectron/selectron/internal/selectionmode"
)

// Apply runs spec.md §4.5 steps 1-3 for the whole set: call
// selectionmode.Apply once per selection (retaining the old selection
// on failure, never failing the whole operation), then dedup adjacent
// identical ranges while preserving which Selection is primary by
// value, matching selection.SelectionSet.Sort's identity-preservation
// convention. base carries the mode's active parameters (search
// pattern, diagnostic severity, and so on); its Buffer and Current
// fields are overwritten per selection.
func Apply(b *buffer.Buffer, set selection.SelectionSet, kind selectionmode.Kind, m selectionmode.Movement, base selectionmode.Params) selection.SelectionSet {
	next := set.Map(func(s selection.Selection) selection.Selection {
		params := base
		params.Buffer = b
		params.Current = s
		if result, ok := selectionmode.Apply(kind, params, m); ok {
			// Movement under an extended selection moves only the
			// range endpoint; the anchor survives so the extended
			// range stays the hull of both (spec.md §4.4).
			if s.InitialRange != nil && result.InitialRange == nil {
				anchor := *s.InitialRange
				result.InitialRange = &anchor
			}
			return result
		}
		return s
	})
	return next.Dedup()
}
