package editor

import (
	"github.com/selectron/selectron/internal/engine/buffer"
	"github.com/selectron/selectron/internal/selection"
)

// toCharIndexRange converts a selection.Range to the structurally
// identical buffer.CharIndexRange; the two packages keep distinct
// named types so neither depends on the other for this one shape.
func toCharIndexRange(r selection.Range) buffer.CharIndexRange {
	return buffer.CharIndexRange{Start: r.Start, End: r.End}
}

func fromCharIndexRange(r buffer.CharIndexRange) selection.Range {
	return selection.Range{Start: r.Start, End: r.End}
}
