// Package arena implements spec.md §9's "shared buffer" redesign: the
// teacher holds its Buffer behind explicit refcell/mutex aliasing
// because multiple UI components view the same buffer; here, buffers
// live in one arena keyed by BufferID, and every editor component
// holds a BufferID (plus its own view state) rather than a pointer it
// might alias unsafely. Mutation always goes through Buffer's own
// mutex (internal/engine/buffer already guards every method), so the
// arena itself only needs to guard its id->buffer map, not the
// buffers' contents.
package arena

import (
	"errors"
	"sync"

	"github.com/selectron/selectron/internal/engine/buffer"
)

// BufferID identifies a buffer owned by an Arena, for the lifetime of
// the process.
type BufferID int64

// ErrUnknownBuffer is returned by Get/Close for an id the arena does
// not (or no longer) hold.
var ErrUnknownBuffer = errors.New("arena: unknown buffer id")

// Arena owns every open Buffer. Multiple editor components may share
// one BufferID; none of them may reach the *buffer.Buffer except
// through Arena.Get, so there is never a stray alias outliving a
// Close.
type Arena struct {
	mu      sync.RWMutex
	buffers map[BufferID]*buffer.Buffer
	next    int64
}

// New creates an empty Arena.
func New() *Arena {
	return &Arena{buffers: make(map[BufferID]*buffer.Buffer)}
}

// Put registers an already-constructed Buffer (e.g. from a string, for
// tests or scratch buffers) and returns its id.
func (a *Arena) Put(b *buffer.Buffer) BufferID {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.next++
	id := BufferID(a.next)
	a.buffers[id] = b
	return id
}

// OpenFile loads path via buffer.FromPath and registers the result,
// spec.md §6's OpenFile inbound dispatch.
func (a *Arena) OpenFile(path string, opts ...buffer.Option) (BufferID, error) {
	b, err := buffer.FromPath(path, opts...)
	if err != nil {
		return 0, err
	}
	return a.Put(b), nil
}

// Get returns the buffer for id.
func (a *Arena) Get(id BufferID) (*buffer.Buffer, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	b, ok := a.buffers[id]
	return b, ok
}

// FindByPath returns the id of the buffer whose canonical path equals
// path, if any is currently open — used to route FileChanged
// notifications (spec.md §6) and LocalQuickfix scoping to an already
// open buffer instead of opening a second copy.
func (a *Arena) FindByPath(path string) (BufferID, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for id, b := range a.buffers {
		if b.Path() == path {
			return id, true
		}
	}
	return 0, false
}

// Close releases id from the arena; the Buffer itself has no close
// step beyond garbage collection once every reference (arena + any
// editor still holding the id) is dropped.
func (a *Arena) Close(id BufferID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.buffers[id]; !ok {
		return ErrUnknownBuffer
	}
	delete(a.buffers, id)
	return nil
}

// Len returns the number of open buffers.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.buffers)
}
