package buffer

// DiagnosticSeverity mirrors the LSP severity levels the Diagnostic
// selection mode iterates over.
type DiagnosticSeverity uint8

const (
	SeverityError DiagnosticSeverity = iota
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// Diagnostic is a single compiler/linter/LSP message anchored to a
// char range. The range is rebased on every edit via rebaseRange, the
// same rule marks and decorations follow.
type Diagnostic struct {
	Range    CharIndexRange
	Severity DiagnosticSeverity
	Message  string
	Source   string
}

// Decoration is a purely presentational annotation (e.g. a highlight
// from a plugin) anchored to a char range. The core never interprets
// Style; it is opaque payload for the host renderer.
type Decoration struct {
	Range CharIndexRange
	Style string
}

// rebaseRange adjusts r for a single edit applied at editRange,
// replacing it with text of length newLen chars. This implements the
// rebasing rule: a range entirely before the edit is untouched, a
// range entirely after is shifted by the length delta, a range that
// overlaps the edit is clamped, and a range exactly covered by the
// edit collapses to a zero-length range at the edit's start.
func rebaseRange(editRange CharIndexRange, newLen CharIndex, r CharIndexRange) CharIndexRange {
	delta := newLen - editRange.Len()

	if r.End <= editRange.Start {
		return r
	}
	if r.Start >= editRange.End {
		return r.Shift(delta)
	}
	if editRange.ContainsRange(r) {
		return CharIndexRange{Start: editRange.Start, End: editRange.Start}
	}

	start := r.Start
	if start > editRange.Start {
		start = editRange.Start
	}
	end := r.End
	if end < editRange.End {
		end = editRange.End
	}
	end += delta
	if end < start {
		end = start
	}
	return CharIndexRange{Start: start, End: end}
}

// rebaseMeta rebases diagnostics, decorations and marks after an edit
// expressed in char coordinates.
func (b *Buffer) rebaseMeta(editRange CharIndexRange, newLen CharIndex) {
	for i := range b.diagnostics {
		b.diagnostics[i].Range = rebaseRange(editRange, newLen, b.diagnostics[i].Range)
	}
	for i := range b.decorations {
		b.decorations[i].Range = rebaseRange(editRange, newLen, b.decorations[i].Range)
	}
	for name, r := range b.marks {
		b.marks[name] = rebaseRange(editRange, newLen, r)
	}
	for i := range b.selectionHistory {
		snap := b.selectionHistory[i]
		for j := range snap.Ranges {
			snap.Ranges[j] = rebaseRange(editRange, newLen, snap.Ranges[j])
		}
	}
}

// Path returns the buffer's canonical file path, or "" for a scratch
// buffer with no backing file.
func (b *Buffer) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// SetPath sets the buffer's canonical file path.
func (b *Buffer) SetPath(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.path = path
}

// Language returns the buffer's syntax language identifier.
func (b *Buffer) Language() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.language
}

// SetLanguage sets the buffer's syntax language identifier.
func (b *Buffer) SetLanguage(lang string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.language = lang
}

// IsDirty returns true if the buffer has unsaved modifications.
func (b *Buffer) IsDirty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dirty
}

// MarkClean clears the dirty flag, typically after a successful save.
func (b *Buffer) MarkClean() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dirty = false
}

// Diagnostics returns a copy of the buffer's current diagnostics.
func (b *Buffer) Diagnostics() []Diagnostic {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Diagnostic, len(b.diagnostics))
	copy(out, b.diagnostics)
	return out
}

// SetDiagnostics replaces the buffer's diagnostics, e.g. after an LSP
// publishDiagnostics notification has been translated by the host.
func (b *Buffer) SetDiagnostics(diags []Diagnostic) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.diagnostics = diags
}

// Decorations returns a copy of the buffer's current decorations.
func (b *Buffer) Decorations() []Decoration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Decoration, len(b.decorations))
	copy(out, b.decorations)
	return out
}

// SetDecorations replaces the buffer's decorations.
func (b *Buffer) SetDecorations(decs []Decoration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.decorations = decs
}

// SetMark anchors a named mark (e.g. "'" for the previous cursor
// position) to a char range.
func (b *Buffer) SetMark(name string, r CharIndexRange) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.marks[name] = r
}

// Mark returns the range anchored to name, if any.
func (b *Buffer) Mark(name string) (CharIndexRange, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r, ok := b.marks[name]
	return r, ok
}

// RemoveMark deletes a named mark.
func (b *Buffer) RemoveMark(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.marks, name)
}

// Marks returns a copy of all named marks.
func (b *Buffer) Marks() map[string]CharIndexRange {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]CharIndexRange, len(b.marks))
	for k, v := range b.marks {
		out[k] = v
	}
	return out
}

// PushSelectionSnapshot records a selection set for later recall (e.g.
// the "jump back" / selection history navigation in spec.md §4).
// Oldest entries are evicted once maxSelectionHistory is exceeded.
func (b *Buffer) PushSelectionSnapshot(snap SelectionSetSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selectionHistory = append(b.selectionHistory, snap)
	if len(b.selectionHistory) > b.maxSelectionHistory {
		b.selectionHistory = b.selectionHistory[len(b.selectionHistory)-b.maxSelectionHistory:]
	}
	b.selectionHistoryCursor = len(b.selectionHistory) - 1
}

// SelectionHistory returns a copy of the recorded selection snapshots,
// oldest first.
func (b *Buffer) SelectionHistory() []SelectionSetSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]SelectionSetSnapshot, len(b.selectionHistory))
	copy(out, b.selectionHistory)
	return out
}
