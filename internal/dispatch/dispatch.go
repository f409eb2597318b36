// Package dispatch is the single inbox between a host (TUI, tests,
// scripting) and the core editor (spec.md §5/§6): inbound messages are
// handled one at a time, synchronously, in FIFO order; each produces
// zero or more outbound messages for the host to act on. Background
// collaborators (grep pools, LSP processes, file watchers) live on the
// host side and speak to the core only by enqueueing Inbound values —
// the core never blocks and never calls host APIs directly.
package dispatch

import (
	"github.com/selectron/selectron/internal/applog"
	"github.com/selectron/selectron/internal/arena"
	"github.com/selectron/selectron/internal/config"
	"github.com/selectron/selectron/internal/editor"
	"github.com/selectron/selectron/internal/engine/buffer"
)

// InboundKind is spec.md §6's inbound (host -> core) message sum type.
type InboundKind uint8

const (
	InOpenFile InboundKind = iota
	InHandleKeyEvent
	InHandlePasteEvent
	InHandleMouseEvent
	InLspNotification
	InFileChanged
	InResize
	InQuitAll
	InEditor
)

// MouseEventKind is the subset of mouse interaction the core cares
// about; scroll and drag policy stay with the renderer.
type MouseEventKind uint8

const (
	MouseDown MouseEventKind = iota
	MouseUp
)

// Inbound is one host -> core message. Only the fields matching Kind
// are meaningful.
type Inbound struct {
	Kind InboundKind

	// OpenFile, FileChanged, LspNotification
	Path string

	// OpenFile
	Focus bool

	// HandleKeyEvent, HandlePasteEvent
	Text string

	// HandleMouseEvent
	Mouse     MouseEventKind
	Line      uint32
	Column    uint32
	Width     int
	Height    int

	// LspNotification
	Diagnostics []buffer.Diagnostic

	// FileChanged
	Content string

	// Editor
	Op editor.Op
}

// Dispatcher owns the buffer arena and the editor components viewing
// it, and is the single mutation path for all of them: one Handle call
// completes before the next begins (spec.md §5's FIFO ordering).
type Dispatcher struct {
	arena   *arena.Arena
	cfg     config.Config
	log     *applog.Logger
	editors map[arena.BufferID]*editor.Editor
	focused arena.BufferID
	opts    []buffer.Option
}

// New creates a Dispatcher with an empty arena.
func New(cfg config.Config, bufferOpts ...buffer.Option) *Dispatcher {
	return &Dispatcher{
		arena:   arena.New(),
		cfg:     cfg,
		log:     applog.Default().WithComponent("dispatch"),
		editors: make(map[arena.BufferID]*editor.Editor),
		opts:    bufferOpts,
	}
}

// Arena exposes the dispatcher's buffer arena, e.g. for a host that
// seeds scratch buffers directly.
func (d *Dispatcher) Arena() *arena.Arena { return d.arena }

// Focused returns the editor currently receiving DispatchEditor
// messages, or nil if no file has been opened yet.
func (d *Dispatcher) Focused() *editor.Editor { return d.editors[d.focused] }

// OpenBuffer registers an already-built buffer and focuses an editor
// on it, the programmatic sibling of the OpenFile inbound.
func (d *Dispatcher) OpenBuffer(b *buffer.Buffer) *editor.Editor {
	id := d.arena.Put(b)
	e := editor.New(d.arena, id, d.cfg)
	d.editors[id] = e
	d.focused = id
	return e
}

// Handle processes one inbound message, returning the outbound
// messages it produced. Errors never escape to the host as Go errors:
// per spec.md §7 they surface as ShowInfo outbounds, leaving the core
// state untouched.
func (d *Dispatcher) Handle(in Inbound) []editor.Out {
	switch in.Kind {
	case InOpenFile:
		return d.openFile(in)
	case InHandleKeyEvent, InHandlePasteEvent:
		return d.insertText(in.Text)
	case InHandleMouseEvent:
		return d.mouseEvent(in)
	case InLspNotification:
		return d.lspNotification(in)
	case InFileChanged:
		return d.fileChanged(in)
	case InResize:
		// Viewport geometry is a renderer concern; nothing to do.
		return nil
	case InQuitAll:
		return []editor.Out{{Kind: editor.OutQuitAll}}
	case InEditor:
		return d.editorOp(in.Op)
	}
	return nil
}

func (d *Dispatcher) openFile(in Inbound) []editor.Out {
	if id, ok := d.arena.FindByPath(in.Path); ok {
		if in.Focus {
			d.focused = id
		}
		return nil
	}
	id, err := d.arena.OpenFile(in.Path, d.opts...)
	if err != nil {
		return []editor.Out{{Kind: editor.OutShowInfo, Title: "Open File", Body: err.Error()}}
	}
	e := editor.New(d.arena, id, d.cfg)
	d.editors[id] = e
	if in.Focus {
		d.focused = id
	}
	return nil
}

// insertText routes raw typed or pasted text to the focused editor.
// Key-to-command binding is host policy (spec.md §1): by the time a
// key event reaches the core it is either text for Insert/FindOneChar
// mode or it was already translated to a DispatchEditor value.
func (d *Dispatcher) insertText(text string) []editor.Out {
	e := d.Focused()
	if e == nil || text == "" {
		return nil
	}
	if e.Mode() != editor.Insert && e.Mode() != editor.FindOneChar {
		return nil
	}
	outs, err := e.Dispatch(editor.Op{Kind: editor.OpInsert, Text: text})
	if err != nil {
		return []editor.Out{{Kind: editor.OutShowInfo, Title: "Insert", Body: err.Error()}}
	}
	return outs
}

func (d *Dispatcher) mouseEvent(in Inbound) []editor.Out {
	if in.Mouse != MouseDown {
		return nil
	}
	e := d.Focused()
	if e == nil {
		return nil
	}
	b, ok := e.Buffer()
	if !ok {
		return nil
	}
	c := b.PositionToChar(buffer.Point{Line: in.Line, Column: in.Column})
	outs, err := e.Dispatch(editor.Op{
		Kind:     editor.OpMoveSelection,
		Movement: editor.JumpMovement(c),
	})
	if err != nil {
		return nil
	}
	return outs
}

func (d *Dispatcher) lspNotification(in Inbound) []editor.Out {
	id, ok := d.arena.FindByPath(in.Path)
	if !ok {
		return nil
	}
	b, ok := d.arena.Get(id)
	if !ok {
		return nil
	}
	b.SetDiagnostics(in.Diagnostics)
	return nil
}

// fileChanged applies an external workspace edit: the buffer's content
// is replaced wholesale, the tree reparsed, and every editor viewing
// the buffer has its selections clamped to the new length (spec.md
// §4.4's clamp contract).
func (d *Dispatcher) fileChanged(in Inbound) []editor.Out {
	id, ok := d.arena.FindByPath(in.Path)
	if !ok {
		return nil
	}
	b, ok := d.arena.Get(id)
	if !ok {
		return nil
	}
	b.Update(in.Content)
	_ = b.ReparseTree()
	if e, ok := d.editors[id]; ok {
		e.ClampSelections()
		return []editor.Out{e.DocumentDidChangeOut()}
	}
	return nil
}

func (d *Dispatcher) editorOp(op editor.Op) []editor.Out {
	e := d.Focused()
	if e == nil {
		return nil
	}
	outs, err := e.Dispatch(op)
	if err != nil {
		d.log.Warn("editor op %d failed: %v", op.Kind, err)
		return []editor.Out{{Kind: editor.OutShowInfo, Title: "Editor", Body: err.Error()}}
	}
	return outs
}
