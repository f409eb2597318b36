package history

import (
	"time"

	"github.com/selectron/selectron/internal/clock"
	"github.com/selectron/selectron/internal/edit"
)

// NodeID identifies a node in the tree. The root is always NodeID 0.
type NodeID int

// CharRange is a half-open char range, kept free of any selection.*
// import so this package's only external dependency is edit and
// clock.
type CharRange struct {
	Start, End int64
}

// Selections is a buffer-owned snapshot of a selection set (ranges
// plus the primary index), captured at a tree node. Extension anchors
// are not preserved across undo/redo — navigating the undo tree always
// lands on plain, non-extended selections.
type Selections struct {
	Ranges  []CharRange
	Primary int
}

// Node is one commit in the undo tree.
type Node struct {
	ID          NodeID
	Parent      NodeID // -1 for the root
	Children    []NodeID
	ActiveChild int // index into Children that Redo/plain traversal prefers; -1 if none

	// Transaction is the edit applied to reach this node from its
	// parent. Inversion undoes it. Both are nil on the root.
	Transaction *edit.Transaction
	Inversion   *edit.Transaction

	Selections Selections
	Timestamp  time.Time
}

// Tree is the undo tree for one buffer.
type Tree struct {
	nodes    []Node
	current  NodeID
	maxNodes int
	clock    clock.Clock
}

// NewTree creates a tree with a root node holding the initial
// selection snapshot. maxNodes <= 0 means unbounded.
func NewTree(initial Selections, maxNodes int) *Tree {
	return NewTreeWithClock(initial, maxNodes, clock.System{})
}

// NewTreeWithClock is NewTree with an injectable Clock, for
// deterministic tests (grounded on keystorm's history.History, which
// calls time.Now() directly but through a swappable seam here).
func NewTreeWithClock(initial Selections, maxNodes int, c clock.Clock) *Tree {
	return &Tree{
		nodes: []Node{{
			ID:          0,
			Parent:      -1,
			ActiveChild: -1,
			Selections:  initial,
			Timestamp:   c.Now(),
		}},
		current:  0,
		maxNodes: maxNodes,
		clock:    c,
	}
}

// Current returns the current node's ID.
func (t *Tree) Current() NodeID { return t.current }

// CurrentSelections returns the selection snapshot stored at the
// current node.
func (t *Tree) CurrentSelections() Selections {
	return t.nodes[t.current].Selections
}

// Commit records tx (with inversion and the resulting selection
// snapshot) as a new child of the current node, and makes it current.
// Returns the new node's ID.
func (t *Tree) Commit(tx edit.Transaction, inversion edit.Transaction, result Selections) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		ID:          id,
		Parent:      t.current,
		ActiveChild: -1,
		Transaction: &tx,
		Inversion:   &inversion,
		Selections:  result,
		Timestamp:   t.clock.Now(),
	})
	parent := &t.nodes[t.current]
	parent.Children = append(parent.Children, id)
	parent.ActiveChild = len(parent.Children) - 1
	t.current = id
	t.prune()
	return id
}

// Plan is the ordered list of transactions a caller must replay to
// move the tree's owning buffer from its current content to the
// state at Target, along with the selection snapshot to restore
// afterward.
type Plan struct {
	Transactions []edit.Transaction
	Selections   Selections
	Target       NodeID
}

// CanUndo reports whether the current node has a parent.
func (t *Tree) CanUndo() bool { return t.nodes[t.current].Parent >= 0 }

// CanRedo reports whether the current node has a preferred child.
func (t *Tree) CanRedo() bool {
	n := t.nodes[t.current]
	return n.ActiveChild >= 0 && n.ActiveChild < len(n.Children)
}

// Undo returns the plan to move to the current node's parent, or ok=
// false if already at the root.
func (t *Tree) Undo() (Plan, bool) {
	n := t.nodes[t.current]
	if n.Parent < 0 {
		return Plan{}, false
	}
	plan := Plan{
		Transactions: []edit.Transaction{*n.Inversion},
		Selections:   t.nodes[n.Parent].Selections,
		Target:       n.Parent,
	}
	t.current = n.Parent
	return plan, true
}

// Redo returns the plan to move to the current node's preferred
// child, or ok=false if there is none.
func (t *Tree) Redo() (Plan, bool) {
	n := t.nodes[t.current]
	if n.ActiveChild < 0 || n.ActiveChild >= len(n.Children) {
		return Plan{}, false
	}
	childID := n.Children[n.ActiveChild]
	child := t.nodes[childID]
	plan := Plan{
		Transactions: []edit.Transaction{*child.Transaction},
		Selections:   child.Selections,
		Target:       childID,
	}
	t.current = childID
	return plan, true
}

// BranchSwitch moves to one of the current node's siblings (children
// of the same parent), cycling by dir (+1 = Down, -1 = Up), and
// records the new sibling as the parent's preferred child for future
// plain Redo calls. The replay plan is an Undo to the shared parent
// followed by a Redo into the chosen sibling, so both text and
// selection set land exactly where that sibling's own commit left
// them, per spec.md §4.2's "navigating to a sibling restores both
// text and selection set captured at that node".
func (t *Tree) BranchSwitch(dir int) (Plan, bool) {
	n := t.nodes[t.current]
	if n.Parent < 0 {
		return Plan{}, false
	}
	parent := &t.nodes[n.Parent]
	if len(parent.Children) <= 1 {
		return Plan{}, false
	}
	idx := -1
	for i, c := range parent.Children {
		if c == t.current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Plan{}, false
	}
	newIdx := ((idx+dir)%len(parent.Children) + len(parent.Children)) % len(parent.Children)
	siblingID := parent.Children[newIdx]
	sibling := t.nodes[siblingID]

	plan := Plan{
		Transactions: []edit.Transaction{*n.Inversion, *sibling.Transaction},
		Selections:   sibling.Selections,
		Target:       siblingID,
	}
	parent.ActiveChild = newIdx
	t.current = siblingID
	return plan, true
}

// prune caps the tree at maxNodes by dropping the oldest nodes once
// the cap is exceeded, ported in style from coreseekdev-texere's
// History.prune: nodes are append-only and always created after their
// parent, so any surviving node's Parent/Children indices that point
// below the cut become stale; Parent pointers below the cut are
// clamped to -1 (making that node a new root), and no surviving node's
// Children can point below the cut since children always have a
// larger index than their parent.
func (t *Tree) prune() {
	if t.maxNodes <= 0 || len(t.nodes) <= t.maxNodes {
		return
	}
	cut := len(t.nodes) - t.maxNodes
	t.nodes = append([]Node(nil), t.nodes[cut:]...)
	for i := range t.nodes {
		if t.nodes[i].Parent >= NodeID(cut) {
			t.nodes[i].Parent -= NodeID(cut)
		} else {
			t.nodes[i].Parent = -1
		}
		for j := range t.nodes[i].Children {
			t.nodes[i].Children[j] -= NodeID(cut)
		}
		t.nodes[i].ID -= NodeID(cut)
	}
	t.current -= NodeID(cut)
	if t.current < 0 {
		t.current = 0
	}
}

// NodeCount returns the number of nodes currently retained.
func (t *Tree) NodeCount() int { return len(t.nodes) }
