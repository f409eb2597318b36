package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyPaste(t *testing.T) {
	s := NewStore()
	_, ok := s.Paste(DefaultRegister)
	assert.False(t, ok)

	s.Copy(DefaultRegister, "hello")
	got, ok := s.Paste(DefaultRegister)
	require.True(t, ok)
	assert.Equal(t, "hello", got)
}

func TestNamedRegistersAreIndependent(t *testing.T) {
	s := NewStore()
	s.Copy("a", "alpha")
	s.Copy("b", "beta")

	got, _ := s.Paste("a")
	assert.Equal(t, "alpha", got)
	got, _ = s.Paste("b")
	assert.Equal(t, "beta", got)
}

func TestHistoryCyclesWithWraparound(t *testing.T) {
	s := NewStore()
	s.Copy(DefaultRegister, "first")
	s.Copy(DefaultRegister, "second")
	s.Copy(DefaultRegister, "third")

	got, _ := s.ReplaceWithPreviousCopiedText(DefaultRegister)
	assert.Equal(t, "second", got)
	got, _ = s.ReplaceWithPreviousCopiedText(DefaultRegister)
	assert.Equal(t, "first", got)
	got, _ = s.ReplaceWithPreviousCopiedText(DefaultRegister)
	assert.Equal(t, "third", got, "stepping past the oldest wraps to the newest")

	got, _ = s.ReplaceWithNextCopiedText(DefaultRegister)
	assert.Equal(t, "first", got)
}

func TestCopyResetsReplaceCursor(t *testing.T) {
	s := NewStore()
	s.Copy(DefaultRegister, "one")
	s.Copy(DefaultRegister, "two")
	s.ReplaceWithPreviousCopiedText(DefaultRegister)

	s.Copy(DefaultRegister, "three")
	got, _ := s.Paste(DefaultRegister)
	assert.Equal(t, "three", got)
}
