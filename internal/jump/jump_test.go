package jump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidates(n int) []Candidate {
	out := make([]Candidate, n)
	for i := range out {
		out[i] = Candidate{Position: CharIndex(i * 3)}
	}
	return out
}

func TestAssignSingleCharLabels(t *testing.T) {
	got := Assign(candidates(3), "abc")
	require.Len(t, got, 3)
	assert.Equal(t, Label("a"), got[0].Label)
	assert.Equal(t, Label("b"), got[1].Label)
	assert.Equal(t, Label("c"), got[2].Label)
}

func TestAssignTwoStageLabelsAreUnique(t *testing.T) {
	got := Assign(candidates(7), "ab")
	require.Len(t, got, 7)
	seen := map[Label]bool{}
	for _, a := range got[:4] {
		assert.False(t, seen[a.Label])
		seen[a.Label] = true
		assert.Len(t, string(a.Label), 2)
	}
}

func TestAssignEmptyInputs(t *testing.T) {
	assert.Nil(t, Assign(nil, "abc"))
	assert.Nil(t, Assign(candidates(2), ""))
}

func TestResolve(t *testing.T) {
	got := Assign(candidates(3), "abc")
	c, ok := Resolve(got, "b")
	require.True(t, ok)
	assert.Equal(t, CharIndex(3), c.Position)

	_, ok = Resolve(got, "z")
	assert.False(t, ok)
}

func TestPrefixes(t *testing.T) {
	got := Assign(candidates(4), "ab")
	open := Prefixes(got, "a")
	assert.NotEmpty(t, open, "two-char labels starting with 'a' remain open")
	for _, l := range open {
		assert.Equal(t, byte('a'), l[0])
	}
}
