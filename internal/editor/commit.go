package editor

import (
	"github.com/selectron/selectron/internal/edit"
	"github.com/selectron/selectron/internal/engine/buffer"
	"github.com/selectron/selectron/internal/selection"
)

// commit builds one ActionGroup per current selection via build, runs
// them through the buffer's single mutation entry point (spec.md
// §4.6), and adopts the resulting selection set — the shape every
// per-cursor edit op (Insert, Delete, Change, ...) shares, mirroring
// how keystorm's Editor.apply_edit_transaction is the one place
// content actually changes. A nil ActionGroup from build skips that
// cursor's contribution entirely (e.g. a selection a delete op
// declines to touch).
func (e *Editor) commit(b *buffer.Buffer, reparse bool, build func(sel selection.Selection) edit.ActionGroup) ([]Out, error) {
	var groups []edit.ActionGroup
	for _, sel := range e.selections.All() {
		if g := build(sel); g != nil {
			groups = append(groups, g)
		}
	}
	if len(groups) == 0 {
		return nil, nil
	}
	tx := edit.NewTransaction(groups...)
	result, err := b.ApplyEditTransaction(tx, e.selections, reparse)
	if err != nil {
		return nil, err
	}
	e.selections = result
	e.log.Debug("committed transaction %s (%d groups)", tx.ID, len(groups))
	return []Out{e.documentDidChange(b)}, nil
}
