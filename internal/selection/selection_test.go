package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeContains(t *testing.T) {
	r := NewRange(3, 7)
	assert.True(t, r.Contains(3))
	assert.True(t, r.Contains(6))
	assert.False(t, r.Contains(7))
	assert.False(t, r.Contains(2))
}

func TestRangeNormalizesOrder(t *testing.T) {
	r := NewRange(7, 3)
	assert.Equal(t, Range{Start: 3, End: 7}, r)
}

func TestSelectionExtendTo(t *testing.T) {
	s := NewSelection(Point(5))
	require.False(t, s.IsExtending())

	s = s.ExtendTo(NewRange(5, 9))
	require.True(t, s.IsExtending())
	assert.Equal(t, NewRange(5, 9), s.Range)

	// Extending again grows from the original anchor, not the new edge.
	s = s.ExtendTo(NewRange(2, 5))
	assert.Equal(t, NewRange(2, 5), s.Range)
}

func TestSelectionCollapseClearsAnchor(t *testing.T) {
	s := NewSelection(NewRange(2, 9)).StartExtending()
	collapsed := s.Collapse(CursorStart)
	assert.False(t, collapsed.IsExtending())
	assert.Equal(t, Point(2), collapsed.Range)
}

func TestSelectionCursorDirection(t *testing.T) {
	s := NewSelection(NewRange(3, 8))
	assert.Equal(t, CharIndex(3), s.Cursor(CursorStart))
	assert.Equal(t, CharIndex(7), s.Cursor(CursorEnd))
}
