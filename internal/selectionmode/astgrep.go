package selectionmode

import (
	"strings"

	"github.com/selectron/selectron/internal/engine/buffer"
	"github.com/selectron/selectron/internal/selection"
)

// iterAstGrep is a deliberately reduced AstGrep variant: node-kind plus
// text-equality matching against p.Pattern (formatted as
// "kind:text", e.g. "identifier:foo", or just "kind" to match any node
// of that kind), not the full ast-grep query/meta-variable language —
// no example repo in the retrieval pack carries an ast-grep binding,
// so this is hand-rolled over the same tree-sitter tree SyntaxNode
// uses (see DESIGN.md for the scope note).
func iterAstGrep(p Params) []selection.Range {
	if !p.Buffer.HasTree() || p.Pattern == "" {
		return nil
	}
	wantKind, wantText, hasText := strings.Cut(p.Pattern, ":")

	nodes := collectNamedNodes(p.Buffer)
	var ranges []selection.Range
	for _, r := range nodes {
		node, ok := p.Buffer.GetCurrentNode(buffer.CharIndexRange{Start: r.Start, End: r.End}, true)
		if !ok || node.Kind != wantKind {
			continue
		}
		if hasText {
			text := p.Buffer.TextCharRange(buffer.CharIndexRange{Start: r.Start, End: r.End})
			if text != wantText {
				continue
			}
		}
		ranges = append(ranges, r)
	}
	return ranges
}
