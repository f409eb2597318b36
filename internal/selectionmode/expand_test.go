package selectionmode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selectron/selectron/internal/selection"
)

func expandOnce(t *testing.T, p Params) Params {
	t.Helper()
	next, ok := Apply(Character, p, Movement{Kind: MoveExpand})
	require.True(t, ok)
	p.Current = next
	return p
}

func TestExpandNestedBracketsAndQuotes(t *testing.T) {
	// Foo -> World Foo -> {World Foo} -> {World Foo} bar ->
	// '{World Foo} bar', expanding one enclosure at a time.
	p := paramsFor("hello '{World Foo} bar'", 0)
	p.Current = selection.NewSelection(selection.Range{Start: 14, End: 17})

	p = expandOnce(t, p)
	assert.Equal(t, "World Foo", rangeText(p, p.Current.Range))

	p = expandOnce(t, p)
	assert.Equal(t, "{World Foo}", rangeText(p, p.Current.Range))

	p = expandOnce(t, p)
	assert.Equal(t, "{World Foo} bar", rangeText(p, p.Current.Range))

	p = expandOnce(t, p)
	assert.Equal(t, "'{World Foo} bar'", rangeText(p, p.Current.Range))
}

func TestExpandInsideThenAround(t *testing.T) {
	p := paramsFor("call(arg)", 0)
	p.Current = selection.NewSelection(selection.Range{Start: 6, End: 7}) // "r"

	p = expandOnce(t, p)
	assert.Equal(t, "arg", rangeText(p, p.Current.Range), "first expand selects inside the pair")

	p = expandOnce(t, p)
	assert.Equal(t, "(arg)", rangeText(p, p.Current.Range), "expanding the inside span selects around")
}

func TestExpandSkipsEscapedQuotes(t *testing.T) {
	p := paramsFor(`say "a \" b" end`, 0)
	p.Current = selection.NewSelection(selection.Range{Start: 8, End: 9}) // the escaped quote

	p = expandOnce(t, p)
	assert.Equal(t, `a \" b`, rangeText(p, p.Current.Range), "escaped quote neither opens nor closes")
}

func TestExpandFailsWithoutEnclosure(t *testing.T) {
	p := paramsFor("plain words only", 0)
	p.Current = selection.NewSelection(selection.Range{Start: 6, End: 11})
	_, ok := Apply(Character, p, Movement{Kind: MoveExpand})
	assert.False(t, ok)
}

func TestCreatePositionPairsQuoteParity(t *testing.T) {
	parsed := createPositionPairs([]rune(`'a' 'b'`))
	assert.Equal(t, posOpen, parsed[0].pos)
	assert.Equal(t, posClose, parsed[2].pos)
	assert.Equal(t, posOpen, parsed[4].pos)
	assert.Equal(t, posClose, parsed[6].pos)
}
