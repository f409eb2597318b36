// Package rope stores buffer text as an immutable B+ tree and answers
// every coordinate question the editing engine asks — byte, char
// (Unicode scalar), and line/column — in O(log n) by steering down the
// tree with per-child summaries.
//
// The selection engine above this package addresses text exclusively
// by CharIndex: selections are char ranges, edits are char ranges, and
// movement arithmetic is done in chars. Bytes remain the storage and
// interop coordinate (UTF-8 chunks, tree-sitter node ranges, file
// I/O). Each node therefore summarizes its subtree in both dimensions
// at once, and CharToByte/ByteToChar are single descents ending in one
// scan bounded by MaxChunkSize — never a walk of the text.
//
// Every operation returns a new Rope and leaves the receiver intact:
//
//	r := rope.FromString("hello")
//	s := r.Insert(5, " world")
//	_ = r.String() // still "hello"
//
// Structural sharing makes that cheap, which is what the buffer's
// snapshots and the undo tree's per-node states lean on, and why a
// Rope may be read concurrently without locking.
//
// Leaves hold immutable string chunks of at most MaxChunkSize bytes,
// cut just after newlines when possible so line scans stay local to a
// chunk. A Cursor remembers its root-to-leaf path for O(log n) seeks
// by byte, char, or line and amortized O(1) rune stepping; the rune
// iterator rides it and reports both coordinates of every rune it
// yields.
package rope
