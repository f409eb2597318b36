package selectionmode

import "github.com/selectron/selectron/internal/selection"

// iterDiagnostic iterates the buffer's own stored diagnostics,
// filtered to p.Severity when p.HasSeverity is set — no external
// dependency needed, spec.md §4.3's Diagnostic variant.
func iterDiagnostic(p Params) []selection.Range {
	diags := p.Buffer.Diagnostics()
	ranges := make([]selection.Range, 0, len(diags))
	for _, d := range diags {
		if p.HasSeverity && d.Severity != p.Severity {
			continue
		}
		ranges = append(ranges, selection.Range{Start: d.Range.Start, End: d.Range.End})
	}
	return ranges
}
