// Package buffer owns one document's full editing state: its rope,
// its optional tree-sitter tree, and every piece of metadata that must
// move in lockstep with the text — diagnostics, decorations, the
// persisted mark set, the bounded selection-set history, and the undo
// tree.
//
// All selection-facing coordinates are char indices (Unicode scalar
// counts); byte offsets surface only toward byte-addressed
// collaborators such as tree-sitter and file I/O, converting through
// the rope's O(log n) descent (CharRange/ByteRange).
//
// ApplyEditTransaction is the single mutation entry point for the
// selection engine: it sorts a transaction's action groups, validates
// non-overlap, applies edits left-to-right with offset accumulation,
// rebases every stored range through one shared rule (a range covered
// exactly by an edit collapses to zero length at the edit's start),
// optionally reparses the syntax tree, and records an undo-tree node.
// The byte-level Insert/Delete/Replace/ApplyEdit methods below it
// serve hosts applying raw external edits.
//
// The tree-sitter tree reparses on exit from Insert mode, on external
// edits, and on save — never per keystroke. All methods are
// thread-safe behind one RWMutex; Snapshot() hands out an immutable
// view for readers that need several consistent observations.
package buffer
