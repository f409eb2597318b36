package buffer

import (
	"context"
	"errors"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/selectron/selectron/internal/engine/rope"
)

// ErrSyntaxReparseFailed is the SyntaxReparseFailed error kind of
// spec.md §7: the parser rejected the content. Non-fatal — the tree
// becomes nil and syntax-node selection modes degrade to a no-op
// (empty iter()) until the next successful reparse.
var ErrSyntaxReparseFailed = errors.New("buffer: syntax reparse failed")

// LanguageProvider resolves a tree-sitter grammar for a language
// identifier (e.g. "go", "rust"). Concrete grammar bindings are a host
// concern per SPEC_FULL.md's DOMAIN STACK — the core only consumes
// this interface, the same way it never loads LSP servers or themes
// itself (spec.md §1).
type LanguageProvider interface {
	Language(id string) (*sitter.Language, bool)
}

// Node is a tree-sitter node plus the CharIndexRange it covers,
// insulating selectionmode (and other callers outside this package)
// from needing to convert byte ranges to char ranges themselves.
type Node struct {
	Raw   *sitter.Node
	Range CharIndexRange
	Kind  string
}

// ReparseTree (re)parses the buffer's content for its current
// language, incrementally if a previous tree exists. It is a no-op
// returning nil if no LanguageProvider is configured or no language
// id is set (spec.md §4.2's get_current_node contract then simply
// returns no node, never panics). Per spec.md §3's lifecycle rule,
// callers reparse on exit from Insert mode, on external edits, and on
// save — never per keystroke while typing.
func (b *Buffer) ReparseTree() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reparseTreeLocked()
}

func (b *Buffer) reparseTreeLocked() error {
	if b.langProvider == nil || b.language == "" {
		return nil
	}
	lang, ok := b.langProvider.Language(b.language)
	if !ok {
		return nil
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	content := []byte(b.rope.String())
	tree, err := parser.ParseCtx(context.Background(), b.tree, content)
	if err != nil {
		b.tree = nil
		return ErrSyntaxReparseFailed
	}
	if b.tree != nil {
		b.tree.Close()
	}
	b.tree = tree
	return nil
}

// HasTree reports whether the buffer currently has a parsed syntax
// tree.
func (b *Buffer) HasTree() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree != nil
}

// GetCurrentNode returns the smallest named node whose byte range
// covers r, per spec.md §4.2. fine=true returns that tightest wrapping
// node; fine=false (coarse) walks up while the parent's byte range is
// identical to the node's, so coarse expansion doesn't stutter on
// nodes that wrap an only child with the same span.
func (b *Buffer) GetCurrentNode(r CharIndexRange, fine bool) (Node, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.tree == nil {
		return Node{}, false
	}
	root := b.tree.RootNode()
	if root == nil {
		return Node{}, false
	}

	startByte := uint32(b.rope.CharToByte(rope.CharIndex(r.Start)))
	endByte := uint32(b.rope.CharToByte(rope.CharIndex(r.End)))

	node := smallestCoveringNamedNode(root, startByte, endByte)
	if node == nil {
		return Node{}, false
	}
	if !fine {
		for {
			parent := node.Parent()
			if parent == nil || parent.StartByte() != node.StartByte() || parent.EndByte() != node.EndByte() {
				break
			}
			node = parent
		}
	}

	return b.toNode(node), true
}

func (b *Buffer) toNode(n *sitter.Node) Node {
	return Node{
		Raw:   n,
		Kind:  n.Type(),
		Range: CharIndexRange{Start: CharIndex(b.rope.ByteToChar(rope.ByteOffset(n.StartByte()))), End: CharIndex(b.rope.ByteToChar(rope.ByteOffset(n.EndByte())))},
	}
}

// smallestCoveringNamedNode descends from root looking for the
// deepest named node whose byte range fully contains [start, end).
func smallestCoveringNamedNode(root *sitter.Node, start, end uint32) *sitter.Node {
	if root.StartByte() > start || root.EndByte() < end {
		return nil
	}
	node := root
	for {
		found := false
		count := int(node.NamedChildCount())
		for i := 0; i < count; i++ {
			child := node.NamedChild(i)
			if child == nil {
				continue
			}
			if child.StartByte() <= start && child.EndByte() >= end {
				node = child
				found = true
				break
			}
		}
		if !found {
			return node
		}
	}
}

// HasSyntaxErrorAt reports whether any node overlapping r is an ERROR
// node or a missing node, per spec.md §4.2.
func (b *Buffer) HasSyntaxErrorAt(r CharIndexRange) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.tree == nil {
		return false
	}
	root := b.tree.RootNode()
	if root == nil {
		return false
	}
	startByte := uint32(b.rope.CharToByte(rope.CharIndex(r.Start)))
	endByte := uint32(b.rope.CharToByte(rope.CharIndex(r.End)))
	return nodeHasErrorInRange(root, startByte, endByte)
}

func nodeHasErrorInRange(n *sitter.Node, start, end uint32) bool {
	if n.EndByte() <= start || n.StartByte() >= end {
		if !(n.StartByte() == n.EndByte() && n.StartByte() >= start && n.StartByte() <= end) {
			return false
		}
	}
	if n.IsError() || n.IsMissing() {
		return true
	}
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if child.EndByte() < start || child.StartByte() > end {
			continue
		}
		if nodeHasErrorInRange(child, start, end) {
			return true
		}
	}
	return false
}
