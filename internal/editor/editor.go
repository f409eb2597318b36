package editor

import (
	"github.com/selectron/selectron/internal/applog"
	"github.com/selectron/selectron/internal/arena"
	"github.com/selectron/selectron/internal/clipboard"
	"github.com/selectron/selectron/internal/config"
	"github.com/selectron/selectron/internal/engine/buffer"
	"github.com/selectron/selectron/internal/idgen"
	"github.com/selectron/selectron/internal/jump"
	"github.com/selectron/selectron/internal/selection"
	"github.com/selectron/selectron/internal/selectionmode"
)

// Editor is one view onto a buffer held in an Arena (spec.md §9's
// arena model): it owns a BufferID rather than a *buffer.Buffer
// pointer, plus its own mode, selection mode, and selection set — the
// view state keystorm's Shared<RefCell<Buffer>> aliasing existed to
// let multiple components hold, made explicit instead of implicit.
type Editor struct {
	ComponentID idgen.ComponentId

	arena    *arena.Arena
	bufferID arena.BufferID

	mode       Mode
	selMode    selectionmode.Kind
	selections selection.SelectionSet
	cursorDir  selection.CursorDirection
	ifNotFound selectionmode.IfCurrentNotFound

	// Active search/regex/severity/quickfix parameters for the current
	// selMode, set by SetSelectionMode and reused by every subsequent
	// Iter/Apply call against that mode until it changes again.
	search      string
	pattern     string
	severity    buffer.DiagnosticSeverity
	hasSeverity bool
	skipSymbols bool
	quickfix    []selectionmode.QuickfixItem
	gitBase     selectionmode.GitBaseProvider

	clip      *clipboard.Store
	cfg       config.Config
	log       *applog.Logger
	jumps     []jump.Assignment
	lastRP    ReplacePatternConfig
	formatter buffer.Formatter
}

// New creates an Editor over bufferID, starting in Normal mode with a
// single collapsed selection at the buffer's start, in Character mode
// — spec.md §4.7's initial state.
func New(a *arena.Arena, bufferID arena.BufferID, cfg config.Config) *Editor {
	return &Editor{
		ComponentID: idgen.Next(),
		arena:       a,
		bufferID:    bufferID,
		mode:        Normal,
		selMode:     selectionmode.Character,
		selections:  selection.NewSelectionSet(selection.NewSelection(selection.Point(0))),
		cursorDir:   selection.CursorStart,
		skipSymbols: true,
		clip:        clipboard.NewStore(),
		cfg:         cfg,
		log:         applog.Default().WithComponent("editor"),
	}
}

// Buffer returns the editor's underlying buffer, or ok=false if its
// BufferID has been closed out from under it.
func (e *Editor) Buffer() (*buffer.Buffer, bool) { return e.arena.Get(e.bufferID) }

// Mode returns the editor's current mode.
func (e *Editor) Mode() Mode { return e.mode }

// Selections returns the editor's current selection set.
func (e *Editor) Selections() selection.SelectionSet { return e.selections }

// SelectionMode returns the editor's current selection mode.
func (e *Editor) SelectionMode() selectionmode.Kind { return e.selMode }

// Jumps returns the jump assignments computed by the most recent
// ShowJumps dispatch.
func (e *Editor) Jumps() []jump.Assignment { return e.jumps }

// params builds the selectionmode.Params for sel under the editor's
// currently active mode parameters.
func (e *Editor) params(b *buffer.Buffer, sel selection.Selection) selectionmode.Params {
	return selectionmode.Params{
		Buffer:          b,
		Current:         sel,
		CursorDirection: e.cursorDir,
		SkipSymbols:     e.skipSymbols,
		Search:          e.search,
		Pattern:         e.pattern,
		Severity:        e.severity,
		HasSeverity:     e.hasSeverity,
		GitBase:         e.gitBase,
		QuickfixItems:   e.quickfix,
	}
}

// SetQuickfixItems installs the quickfix list the LocalQuickfix
// selection mode iterates; the host owns the list's construction
// (grep results, LSP references) and hands the core only the entries.
func (e *Editor) SetQuickfixItems(items []selectionmode.QuickfixItem) { e.quickfix = items }

// SetGitBaseProvider installs the collaborator the GitHunk selection
// mode diffs against; git repository I/O stays on the host side.
func (e *Editor) SetGitBaseProvider(p selectionmode.GitBaseProvider) { e.gitBase = p }

// SetFormatter installs the host-supplied formatter Save runs before
// writing; with none set, Save writes the raw content.
func (e *Editor) SetFormatter(f buffer.Formatter) { e.formatter = f }

// JumpMovement builds the Movement that lands a selection on the
// given char index (mouse clicks, jump-label resolution).
func JumpMovement(c selection.CharIndex) selectionmode.Movement {
	return selectionmode.Movement{Kind: selectionmode.MoveJump, Jump: selection.Point(c)}
}

// ClampSelections restricts the selection set to the buffer's current
// length, the required follow-up to an external content change
// (spec.md §4.4's clamp).
func (e *Editor) ClampSelections() {
	if b, ok := e.Buffer(); ok {
		e.selections = e.selections.Clamp(b.LenChars())
	}
}

// DocumentDidChangeOut builds the DocumentDidChange outbound for the
// editor's current buffer state, for hosts that mutate the buffer
// outside an editor op (external workspace edits).
func (e *Editor) DocumentDidChangeOut() Out {
	b, ok := e.Buffer()
	if !ok {
		return Out{Kind: OutDocumentDidChange, ComponentID: int64(e.ComponentID)}
	}
	return e.documentDidChange(b)
}

// documentDidChange builds the DocumentDidChange outbound spec.md §6
// requires after any content mutation.
func (e *Editor) documentDidChange(b *buffer.Buffer) Out {
	return Out{
		Kind:        OutDocumentDidChange,
		ComponentID: int64(e.ComponentID),
		Path:        b.Path(),
		Content:     b.Text(),
		Language:    b.Language(),
	}
}

func showInfo(title, body string) Out {
	return Out{Kind: OutShowInfo, Title: title, Body: body}
}
