package editor

import (
	"github.com/selectron/selectron/internal/engine/buffer"
	"github.com/selectron/selectron/internal/selection"
	"github.com/selectron/selectron/internal/selectionmode"
	"github.com/selectron/selectron/internal/surround"
)

// OpKind is spec.md §6's `DispatchEditor` sum type. As with
// selectionmode.Movement and edit.Action, one Kind enum selects a
// struct whose fields are only meaningful for the matching Kind,
// rather than one Go type per variant — the dispatch protocol is
// large and most variants carry at most one or two payload fields.
type OpKind uint8

const (
	OpSetSelectionMode OpKind = iota
	OpMoveSelection
	OpEnterInsertMode
	OpEnterNormalMode
	OpEnterMultiCursorMode
	OpEnterExchangeMode
	OpEnterReplaceMode
	OpEnterUndoTreeMode
	OpEnterVMode
	OpEnterFindOneCharMode
	OpInsert
	OpBackspace
	OpDelete
	OpDeleteWordBackward
	OpKillLine
	OpChange
	OpCopy
	OpPaste
	OpReplaceWithCopiedText
	OpReplaceWithPreviousCopiedText
	OpReplaceWithNextCopiedText
	OpReplacePattern
	OpReplaceWithPattern
	OpUndo
	OpRedo
	OpToggleMark
	OpCursorAddToAllSelections
	OpCursorKeepPrimaryOnly
	OpCyclePrimarySelection
	OpDeleteCurrentCursor
	OpSwapCursorWithAnchor
	OpEnableSelectionExtension
	OpSwapExtensionDirection
	OpSurround
	OpSelectSurround
	OpDeleteSurround
	OpChangeSurround
	OpOpen
	OpIndent
	OpDedent
	OpBreakSelection
	OpEnterNewline
	OpShowJumps
	OpGoBackSelectionSet
	OpGoForwardSelectionSet
	OpSave
	OpForceSave
	OpSwitchViewAlignment
	OpScrollPageUp
	OpScrollPageDown
)

// Step is the generic "Direction" parameter spec.md §6 attaches to
// several dispatch values (EnterInsertMode, Delete, KillLine,
// CyclePrimarySelection, DeleteCurrentCursor, Open, Paste). It reuses
// selection.CursorDirection's Start/End vocabulary, read contextually
// per operation (documented at each call site) rather than as a
// second Forward/Backward type, since every one of these ops already
// means "the Start edge" or "the End edge" of something.
type Step = selection.CursorDirection

const (
	StepStart = selection.CursorStart
	StepEnd   = selection.CursorEnd
)

// ReplacePatternConfig is the payload of spec.md §6's
// `ReplacePattern{config}`.
type ReplacePatternConfig struct {
	Pattern     string
	Replacement string
}

// Op is spec.md §6's `DispatchEditor` value.
type Op struct {
	Kind OpKind

	// SetSelectionMode
	Mode        selectionmode.Kind
	IfNotFound  selectionmode.IfCurrentNotFound
	Search      string
	Pattern     string
	Severity    buffer.DiagnosticSeverity
	HasSeverity bool
	SkipSymbols bool

	// MoveSelection
	Movement selectionmode.Movement

	// EnterInsertMode, Delete, KillLine, CyclePrimarySelection,
	// DeleteCurrentCursor, Open, Paste
	Direction Step

	// Insert
	Text string

	// DeleteWordBackward
	Short bool

	// Copy, Paste, ReplaceWithCopiedText
	UseSystemClipboard bool
	Cut                bool

	// ReplacePattern
	PatternConfig ReplacePatternConfig

	// ToggleMark
	MarkName string

	// Surround
	Open, Close string

	// SelectSurround, DeleteSurround, ChangeSurround
	Enclosure    surround.Kind
	ToEnclosure  surround.Kind
	SelectAround bool

	// ShowJumps
	UseCurrentSelectionMode bool

	// Save
	Force bool
}

// OutKind is spec.md §6's outbound (core -> host) dispatch sum type.
type OutKind uint8

const (
	OutDocumentDidChange OutKind = iota
	OutDocumentDidSave
	OutRequestSignatureHelp
	OutShowInfo
	OutSetClipboardContent
	OutGotoLocation
	OutSetQuickfixList
	OutShowKeymapLegend
	OutQuitAll
)

// Location identifies a position the host should navigate to, e.g.
// for GotoLocation.
type Location struct {
	Path  string
	Range selection.Range
}

// Out is one outbound (core -> host) dispatch message.
type Out struct {
	Kind OutKind

	// DocumentDidChange
	ComponentID int64
	Path        string
	Content     string
	Language    string

	// ShowInfo, ShowKeymapLegend
	Title string
	Body  string

	// SetClipboardContent
	UseSystemClipboard bool
	CopiedTexts        []string

	// GotoLocation
	Location Location

	// SetQuickfixList
	QuickfixItems []selectionmode.QuickfixItem
}
