package rope

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// seedCorpus feeds each fuzz target the shapes that historically break
// rope code: empty text, multibyte runes near chunk boundaries, CRLF,
// and text large enough to force a multi-level tree.
func seedCorpus(f *testing.F) {
	f.Add("")
	f.Add("hello")
	f.Add("hello\nworld")
	f.Add("hello\r\nworld")
	f.Add("日本語")
	f.Add("emoji 🎉 test")
	f.Add(strings.Repeat("é", 200))
	f.Add(strings.Repeat("line\n", 100))
}

// snapToRuneStart pulls a byte offset back onto the start of the rune
// containing it, mirroring how real edit coordinates are always
// boundary-aligned.
func snapToRuneStart(r Rope, off ByteOffset) ByteOffset {
	for off > 0 && off < r.Len() {
		b, ok := r.ByteAt(off)
		if !ok || isRuneStart(b) {
			break
		}
		off--
	}
	return off
}

func FuzzFromString(f *testing.F) {
	seedCorpus(f)
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}
		r := FromString(s)
		if int(r.Len()) != len(s) {
			t.Errorf("Len = %d, want %d", r.Len(), len(s))
		}
		if int(r.LenChars()) != utf8.RuneCountInString(s) {
			t.Errorf("LenChars = %d, want %d", r.LenChars(), utf8.RuneCountInString(s))
		}
		if r.String() != s {
			t.Error("content mismatch")
		}
	})
}

// FuzzCharByteDuality checks the core coordinate contract: CharToByte
// and ByteToChar are inverse summary-guided descents, and both agree
// with a straight decode of the text.
func FuzzCharByteDuality(f *testing.F) {
	seedCorpus(f)
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}
		r := FromString(s)

		var byteAt ByteOffset
		var charAt CharIndex
		for _, ch := range s {
			if got := r.CharToByte(charAt); got != byteAt {
				t.Fatalf("CharToByte(%d) = %d, want %d", charAt, got, byteAt)
			}
			if got := r.ByteToChar(byteAt); got != charAt {
				t.Fatalf("ByteToChar(%d) = %d, want %d", byteAt, got, charAt)
			}
			byteAt += ByteOffset(utf8.RuneLen(ch))
			charAt++
		}
		if got := r.CharToByte(charAt); got != r.Len() {
			t.Fatalf("CharToByte(end) = %d, want %d", got, r.Len())
		}
	})
}

func FuzzInsert(f *testing.F) {
	seedCorpus(f)
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}
		r := FromString(s)
		offset := snapToRuneStart(r, r.Len()/2)
		inserted := r.Insert(offset, "✂INS✂")

		want := s[:offset] + "✂INS✂" + s[offset:]
		if inserted.String() != want {
			t.Error("insert content mismatch")
		}
		wantChars := CharIndex(utf8.RuneCountInString(want))
		if inserted.LenChars() != wantChars {
			t.Errorf("LenChars after insert = %d, want %d", inserted.LenChars(), wantChars)
		}
	})
}

func FuzzDelete(f *testing.F) {
	seedCorpus(f)
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) || len(s) == 0 {
			return
		}
		r := FromString(s)
		start := snapToRuneStart(r, r.Len()/3)
		end := snapToRuneStart(r, 2*r.Len()/3)
		if start > end {
			start, end = end, start
		}
		deleted := r.Delete(start, end)

		want := s[:start] + s[end:]
		if deleted.String() != want {
			t.Error("delete content mismatch")
		}
		if deleted.LenChars() != CharIndex(utf8.RuneCountInString(want)) {
			t.Error("LenChars after delete mismatch")
		}
	})
}

func FuzzSplitConcat(f *testing.F) {
	seedCorpus(f)
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}
		r := FromString(s)
		at := snapToRuneStart(r, r.Len()/2)
		left, right := r.Split(at)

		if left.String()+right.String() != s {
			t.Error("split lost content")
		}
		if left.LenChars()+right.LenChars() != r.LenChars() {
			t.Error("split lost chars")
		}
		if rejoined := left.Concat(right); rejoined.String() != s {
			t.Error("concat after split mismatch")
		}
	})
}

func FuzzLineOperations(f *testing.F) {
	seedCorpus(f)
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}
		r := FromString(s)

		wantCount := uint32(strings.Count(s, "\n")) + 1
		if r.LineCount() != wantCount {
			t.Fatalf("LineCount = %d, want %d", r.LineCount(), wantCount)
		}

		var rebuilt strings.Builder
		for line := uint32(0); line < r.LineCount(); line++ {
			if line > 0 {
				rebuilt.WriteByte('\n')
			}
			rebuilt.WriteString(r.LineText(line))

			start := r.LineStartOffset(line)
			if got := r.LineToChar(line); got != r.ByteToChar(start) {
				t.Fatalf("LineToChar(%d) disagrees with ByteToChar(LineStartOffset)", line)
			}
		}
		if rebuilt.String() != s {
			t.Error("line-by-line reassembly mismatch")
		}
	})
}

func FuzzCharPositionRoundTrip(f *testing.F) {
	seedCorpus(f)
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}
		r := FromString(s)
		n := r.LenChars()
		step := CharIndex(1)
		if n > 256 {
			step = n / 128
		}
		for c := CharIndex(0); c <= n; c += step {
			if got := r.PositionToChar(r.CharToPosition(c)); got != c {
				t.Fatalf("position round trip at %d = %d", c, got)
			}
		}
	})
}

func FuzzCursorAgainstIterator(f *testing.F) {
	seedCorpus(f)
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}
		r := FromString(s)

		it := r.Runes()
		var offsets []ByteOffset
		var chars []CharIndex
		for it.Next() {
			offsets = append(offsets, it.Offset())
			chars = append(chars, it.Char())
		}

		c := NewCursor(r)
		for i := range offsets {
			if c.Offset() != offsets[i] || c.Char() != chars[i] {
				t.Fatalf("cursor at (%d, %d), iterator at (%d, %d)",
					c.Offset(), c.Char(), offsets[i], chars[i])
			}
			c.Next()
		}
	})
}

func FuzzMultipleOperations(f *testing.F) {
	seedCorpus(f)
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}
		r := FromString(s)
		mirror := s

		for i := 0; i < 4; i++ {
			at := snapToRuneStart(r, r.Len()/ByteOffset(i+2))
			r = r.Insert(at, "x")
			mirror = mirror[:at] + "x" + mirror[at:]

			if r.String() != mirror {
				t.Fatalf("divergence after op %d", i)
			}
			if r.LenChars() != CharIndex(utf8.RuneCountInString(mirror)) {
				t.Fatalf("char count divergence after op %d", i)
			}
		}
	})
}
