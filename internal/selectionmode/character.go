package selectionmode

import (
	"unicode/utf8"

	"github.com/clipperhouse/uax29/graphemes"

	"github.com/selectron/selectron/internal/selection"
)

// iterCharacter enumerates every Unicode grapheme-cluster boundary in
// the buffer, ported in approach from nzinfo-texere's
// rope.Graphemes()/GraphemeIterator: segment the whole content with
// uax29's grapheme scanner, accumulating a rune count per segment
// since CharIndex counts scalars, not clusters.
func iterCharacter(p Params) []selection.Range {
	content := p.Buffer.Text()
	if content == "" {
		return nil
	}
	segments := graphemes.SegmentAllString(content)
	ranges := make([]selection.Range, 0, len(segments))
	var charPos selection.CharIndex
	for _, seg := range segments {
		n := selection.CharIndex(utf8.RuneCountInString(seg))
		ranges = append(ranges, selection.Range{Start: charPos, End: charPos + n})
		charPos += n
	}
	return ranges
}
