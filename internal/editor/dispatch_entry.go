package editor

import "errors"

// ErrBufferClosed is returned by Dispatch when the editor's BufferID
// no longer resolves to a live buffer (another component closed it
// out from under this editor).
var ErrBufferClosed = errors.New("editor: buffer closed")

// Dispatch is spec.md §4.7/§6's single entry point: one Op in, zero or
// more Out values (or an error) out. Every mutating branch reads the
// buffer fresh from the arena, since a BufferID's target never moves
// but may have been closed between dispatches.
func (e *Editor) Dispatch(op Op) ([]Out, error) {
	b, ok := e.Buffer()
	if !ok {
		return nil, ErrBufferClosed
	}

	switch op.Kind {
	case OpSetSelectionMode:
		return e.setSelectionMode(b, op)
	case OpMoveSelection:
		return e.moveSelection(b, op)
	case OpEnterInsertMode:
		return e.enterInsertMode(op)
	case OpEnterNormalMode:
		return e.enterNormalMode(b)
	case OpEnterMultiCursorMode:
		return e.enterMultiCursorMode()
	case OpEnterExchangeMode:
		return e.enterExchangeMode()
	case OpEnterReplaceMode:
		return e.enterReplaceMode()
	case OpEnterUndoTreeMode:
		return e.enterUndoTreeMode()
	case OpEnterVMode:
		return e.enterVMode()
	case OpEnterFindOneCharMode:
		return e.enterFindOneCharMode(op)
	case OpGoBackSelectionSet:
		return e.goBackSelectionSet(b)
	case OpGoForwardSelectionSet:
		return e.goForwardSelectionSet(b)
	case OpInsert:
		return e.insert(b, op)
	case OpBackspace:
		return e.backspace(b)
	case OpDelete:
		return e.delete(b, op)
	case OpDeleteWordBackward:
		return e.deleteWordBackward(b, op)
	case OpKillLine:
		return e.killLine(b, op)
	case OpChange:
		return e.change(b)
	case OpCopy:
		return e.copy(b, op)
	case OpPaste:
		return e.paste(b, op)
	case OpReplaceWithCopiedText:
		return e.replaceWithCopiedText(b, op)
	case OpReplaceWithPreviousCopiedText:
		return e.replaceWithHistoryCopiedText(b, false)
	case OpReplaceWithNextCopiedText:
		return e.replaceWithHistoryCopiedText(b, true)
	case OpReplacePattern:
		return e.replacePattern(b, op)
	case OpReplaceWithPattern:
		return e.replaceWithPattern(b)
	case OpUndo:
		return e.undoTreeMove(b, undoBack)
	case OpRedo:
		return e.undoTreeMove(b, undoForward)
	case OpToggleMark:
		return e.toggleMark(b)
	case OpCursorAddToAllSelections:
		return e.cursorAddToAllSelections(b)
	case OpCursorKeepPrimaryOnly:
		return e.cursorKeepPrimaryOnly()
	case OpCyclePrimarySelection:
		return e.cyclePrimarySelection(op)
	case OpDeleteCurrentCursor:
		return e.deleteCurrentCursor(op)
	case OpSwapCursorWithAnchor:
		return e.swapCursorWithAnchor()
	case OpEnableSelectionExtension:
		return e.enableSelectionExtension()
	case OpSwapExtensionDirection:
		return e.swapExtensionDirection()
	case OpSurround:
		return e.surround(b, op)
	case OpSelectSurround:
		return e.selectSurround(b, op)
	case OpDeleteSurround:
		return e.deleteSurround(b, op)
	case OpChangeSurround:
		return e.changeSurround(b, op)
	case OpOpen:
		return e.open(b, op)
	case OpIndent:
		return e.indent(b)
	case OpDedent:
		return e.dedent(b)
	case OpBreakSelection:
		return e.breakSelection(b)
	case OpEnterNewline:
		return e.enterNewline(b)
	case OpShowJumps:
		return e.showJumps(b, op)
	case OpSave:
		return e.save(b, e.formatter, op)
	case OpForceSave:
		return e.save(b, e.formatter, Op{Force: true})
	case OpSwitchViewAlignment, OpScrollPageUp, OpScrollPageDown:
		// Viewport/rendering state is a host concern (spec.md §1); the
		// core has nothing to do for these beyond acknowledging them.
		return nil, nil
	}
	return nil, nil
}
