package rope

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

// benchText builds size bytes of word-and-newline text, the shape an
// edited source file has.
func benchText(size int) string {
	var sb strings.Builder
	sb.Grow(size)
	words := []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog", "select", "move"}
	lineLen := 0
	for sb.Len() < size {
		word := words[rand.Intn(len(words))]
		if sb.Len()+len(word)+1 > size {
			break
		}
		if sb.Len() > 0 {
			if lineLen > 60 {
				sb.WriteByte('\n')
				lineLen = 0
			} else {
				sb.WriteByte(' ')
				lineLen++
			}
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}

// benchTextMultibyte mixes two-byte runes in, so char/byte conversions
// can't ride the ASCII fast path.
func benchTextMultibyte(size int) string {
	var sb strings.Builder
	sb.Grow(size)
	for sb.Len() < size {
		sb.WriteString("wört émoji-frëe téxt ")
		if sb.Len()%70 < 20 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

var benchSizes = []int{1000, 100000, 1000000}

func BenchmarkFromString(b *testing.B) {
	for _, size := range benchSizes {
		text := benchText(size)
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.SetBytes(int64(size))
			for i := 0; i < b.N; i++ {
				_ = FromString(text)
			}
		})
	}
}

func BenchmarkInsertMiddle(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(benchText(size))
		mid := r.Len() / 2
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = r.Insert(mid, "inserted")
			}
		})
	}
}

func BenchmarkDeleteMiddle(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(benchText(size))
		mid := r.Len() / 2
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = r.Delete(mid, mid+10)
			}
		})
	}
}

func BenchmarkSlice(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(benchText(size))
		quarter := r.Len() / 4
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = r.Slice(quarter, quarter*3)
			}
		})
	}
}

// BenchmarkCharToByte is the conversion every selection movement and
// tree-sitter interop call makes; it must stay logarithmic in the
// rope size, not linear.
func BenchmarkCharToByte(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(benchTextMultibyte(size))
		n := r.LenChars()
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = r.CharToByte(CharIndex(i) % n)
			}
		})
	}
}

func BenchmarkByteToChar(b *testing.B) {
	for _, size := range benchSizes {
		r := FromString(benchTextMultibyte(size))
		n := r.Len()
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = r.ByteToChar(ByteOffset(i) % n)
			}
		})
	}
}

func BenchmarkCharToPosition(b *testing.B) {
	r := FromString(benchTextMultibyte(100000))
	n := r.LenChars()
	for i := 0; i < b.N; i++ {
		_ = r.CharToPosition(CharIndex(i) % n)
	}
}

func BenchmarkLineStartOffset(b *testing.B) {
	r := FromString(benchText(100000))
	lines := r.LineCount()
	for i := 0; i < b.N; i++ {
		_ = r.LineStartOffset(uint32(i) % lines)
	}
}

func BenchmarkCursorSeekChar(b *testing.B) {
	r := FromString(benchTextMultibyte(100000))
	n := r.LenChars()
	c := NewCursor(r)
	for i := 0; i < b.N; i++ {
		c.SeekChar(CharIndex(i) % n)
	}
}

func BenchmarkRuneIteration(b *testing.B) {
	r := FromString(benchText(100000))
	b.SetBytes(int64(r.Len()))
	for i := 0; i < b.N; i++ {
		it := r.Runes()
		for it.Next() {
		}
	}
}
