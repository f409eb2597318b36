package selectionmode

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/selectron/selectron/internal/selection"
)

// iterGitHunk diffs the buffer's current text (not the on-disk file)
// against p.GitBase's content, grouping consecutive insert/delete
// diffs into hunks measured in the current text's char coordinates —
// spec.md §4.3's GitHunk variant. Git repository I/O stays a host
// collaborator (p.GitBase); this package only consumes its result.
func iterGitHunk(p Params) []selection.Range {
	if p.GitBase == nil {
		return nil
	}
	base, err := p.GitBase.BaseContent()
	if err != nil {
		return nil
	}

	current := p.Buffer.Text()
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(base, current, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var ranges []selection.Range
	var pos selection.CharIndex
	var hunkStart selection.CharIndex
	inHunk := false

	for _, d := range diffs {
		n := selection.CharIndex(utf8.RuneCountInString(d.Text))
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			if inHunk {
				ranges = append(ranges, selection.Range{Start: hunkStart, End: pos})
				inHunk = false
			}
			pos += n
		case diffmatchpatch.DiffInsert:
			if !inHunk {
				hunkStart = pos
				inHunk = true
			}
			pos += n
		case diffmatchpatch.DiffDelete:
			if !inHunk {
				hunkStart = pos
				inHunk = true
			}
			// Deletions don't advance pos in the current text's
			// coordinate space (the deleted text isn't present there);
			// a zero-width hunk still marks where the deletion sits.
		}
	}
	if inHunk {
		ranges = append(ranges, selection.Range{Start: hunkStart, End: pos})
	}
	return ranges
}
