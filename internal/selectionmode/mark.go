package selectionmode

import "github.com/selectron/selectron/internal/selection"

// iterMark iterates the buffer's persisted named marks, spec.md
// §4.3's Mark variant.
func iterMark(p Params) []selection.Range {
	marks := p.Buffer.Marks()
	ranges := make([]selection.Range, 0, len(marks))
	for _, r := range marks {
		ranges = append(ranges, selection.Range{Start: r.Start, End: r.End})
	}
	return ranges
}

// iterLocalQuickfix iterates quickfix items whose Path equals the
// buffer's own path, spec.md §4.3's LocalQuickfix variant.
func iterLocalQuickfix(p Params) []selection.Range {
	path := p.Buffer.Path()
	ranges := make([]selection.Range, 0, len(p.QuickfixItems))
	for _, item := range p.QuickfixItems {
		if item.Path != path {
			continue
		}
		ranges = append(ranges, item.Range)
	}
	return ranges
}
