// Package history implements the undo tree of spec.md §3/§9: a
// directed tree of past buffer states where undo/redo walk
// parent/child edges and branch switching cycles among a node's
// siblings instead of discarding them, the way a linear undo stack
// would. It replaces keystorm's internal/engine/history linear
// undo/redo stack (grounded on its Command/CompoundCommand grouping
// and SetMaxEntries eviction, kept here in spirit) with the revision
// tree shape of coreseekdev-texere's pkg/rope/history.go Revision
// struct, generalized from that file's single `lastChild` pointer to
// a full `Children []NodeID` + `ActiveChild int` pair so Up/Down can
// cycle every sibling branch at a depth, not just replay the most
// recent one.
//
// Tree stores data only (transactions, inversions, selection
// snapshots); it never touches a buffer. engine/buffer.Buffer owns a
// *Tree and drives it: each successful ApplyEditTransaction call
// commits a node, and UndoTreeApplyMovement asks the tree for a Plan
// (the transactions to replay, in order) which the buffer applies
// through the same raw mutation path a forward edit uses, then
// reports back the node's stored selection set.
package history
