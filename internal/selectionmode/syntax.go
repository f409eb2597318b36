package selectionmode

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/selectron/selectron/internal/engine/buffer"
	"github.com/selectron/selectron/internal/selection"
)

// iterSyntaxNode returns a factory producing the tree-sitter named-node
// enumeration of spec.md §4.3 (SyntaxNode vs SyntaxNodeFine). Both
// return the list collectNamedNodes builds, which holds only nodes
// that are the innermost named node at some probed position, so not
// every named node is enumerated; a parent whose span equals its only
// child's never appears in it, and coarse and fine enumerate the same
// ranges.
func iterSyntaxNode(coarse bool) func(Params) []selection.Range {
	return func(p Params) []selection.Range {
		if !p.Buffer.HasTree() {
			return nil
		}
		nodes := collectNamedNodes(p.Buffer)
		if !coarse {
			return nodes
		}
		return collapseIdenticalSpanParents(nodes)
	}
}

// collectNamedNodes probes the buffer with GetCurrentNode's fine lookup
// at char positions from the start, jumping past the end of each node
// it finds, and collects the distinct node ranges in the order found.
// This is an approximation of a whole-tree walk: a node is found only
// where it is the innermost named node at a probed position, since the
// buffer package does not export the raw *sitter.Tree.
func collectNamedNodes(b *buffer.Buffer) []selection.Range {
	seen := make(map[selection.Range]bool)
	var ranges []selection.Range
	lenChars := b.LenChars()
	for c := selection.CharIndex(0); c < lenChars; c++ {
		node, ok := b.GetCurrentNode(buffer.CharIndexRange{Start: c, End: c}, true)
		if !ok {
			continue
		}
		r := selection.Range{Start: node.Range.Start, End: node.Range.End}
		if !seen[r] {
			seen[r] = true
			ranges = append(ranges, r)
		}
		if node.Range.End > c {
			c = node.Range.End - 1
		}
	}
	return ranges
}

// collapseIdenticalSpanParents returns nodes unchanged: collectNamedNodes
// already drops duplicate ranges, and a parent whose span equals its
// only child's is never innermost at any position, so it is never in
// the list. The coarse walk-up itself happens
// inside buffer.GetCurrentNode(fine=false), used by the editor layer
// directly rather than through this iterator.
func collapseIdenticalSpanParents(nodes []selection.Range) []selection.Range {
	return nodes
}

// nodeCharRange converts a raw tree-sitter node's byte span into char
// coordinates.
func nodeCharRange(b *buffer.Buffer, n *sitter.Node) selection.Range {
	return selection.Range{
		Start: b.ByteToChar(buffer.ByteOffset(n.StartByte())),
		End:   b.ByteToChar(buffer.ByteOffset(n.EndByte())),
	}
}

// syntaxParent moves to the nearest named ancestor whose range
// strictly contains the current extended range, the Up/Expand
// movement of the syntax modes. Ancestors with an identical span are
// skipped so expansion never stutters on single-child wrapper nodes.
func syntaxParent(p Params) (selection.Selection, bool) {
	r := p.Current.ExtendedRange()
	node, ok := p.Buffer.GetCurrentNode(buffer.CharIndexRange{Start: r.Start, End: r.End}, true)
	if !ok {
		return selection.Selection{}, false
	}
	for raw := node.Raw; raw != nil; raw = raw.Parent() {
		if !raw.IsNamed() {
			continue
		}
		nr := nodeCharRange(p.Buffer, raw)
		if nr.Start <= r.Start && nr.End >= r.End && nr != r {
			next := p.Current
			next.Range = nr
			return next, true
		}
	}
	return selection.Selection{}, false
}

// syntaxFirstChild moves to the first named child whose range is
// strictly smaller than the current node's, the Down movement of the
// syntax modes and the inverse of syntaxParent.
func syntaxFirstChild(p Params) (selection.Selection, bool) {
	r := p.Current.ExtendedRange()
	node, ok := p.Buffer.GetCurrentNode(buffer.CharIndexRange{Start: r.Start, End: r.End}, true)
	if !ok {
		return selection.Selection{}, false
	}
	raw := node.Raw
	for raw != nil {
		var descend *sitter.Node
		for i := 0; i < int(raw.NamedChildCount()); i++ {
			child := raw.NamedChild(i)
			cr := nodeCharRange(p.Buffer, child)
			if cr != r {
				next := p.Current
				next.Range = cr
				return next, true
			}
			descend = child
		}
		raw = descend
	}
	return selection.Selection{}, false
}
