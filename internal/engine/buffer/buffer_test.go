package buffer

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()
	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.Len() != 0 || b.LenChars() != 0 {
		t.Errorf("new buffer Len=%d LenChars=%d", b.Len(), b.LenChars())
	}
	if b.LineCount() != 1 {
		t.Errorf("new buffer LineCount = %d", b.LineCount())
	}
	if b.IsDirty() {
		t.Error("new buffer should be clean")
	}
}

func TestNewBufferFromString(t *testing.T) {
	b := NewBufferFromString("héllo, wörld")
	if b.Text() != "héllo, wörld" {
		t.Errorf("Text = %q", b.Text())
	}
	if b.Len() != 14 {
		t.Errorf("Len = %d, want 14 bytes", b.Len())
	}
	if b.LenChars() != 12 {
		t.Errorf("LenChars = %d, want 12", b.LenChars())
	}
}

func TestBufferInsertDeleteReplace(t *testing.T) {
	b := NewBufferFromString("hello world")

	end, err := b.Insert(5, ",")
	if err != nil {
		t.Fatal(err)
	}
	if end != 6 || b.Text() != "hello, world" {
		t.Errorf("after insert: end=%d text=%q", end, b.Text())
	}
	if !b.IsDirty() {
		t.Error("insert should mark dirty")
	}

	if err := b.Delete(5, 6); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "hello world" {
		t.Errorf("after delete: %q", b.Text())
	}

	if _, err := b.Replace(6, 11, "there"); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "hello there" {
		t.Errorf("after replace: %q", b.Text())
	}
}

func TestBufferEditBoundsChecking(t *testing.T) {
	b := NewBufferFromString("short")
	if _, err := b.Insert(99, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("Insert past end: %v", err)
	}
	if err := b.Delete(3, 2); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("inverted Delete range: %v", err)
	}
	if _, err := b.Replace(0, 99, "x"); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("Replace past end: %v", err)
	}
	if b.Text() != "short" {
		t.Error("failed edits must leave the buffer untouched")
	}
}

func TestBufferApplyEdit(t *testing.T) {
	b := NewBufferFromString("one two three")
	result, err := b.ApplyEdit(NewEdit(Range{Start: 4, End: 7}, "2"))
	if err != nil {
		t.Fatal(err)
	}
	if b.Text() != "one 2 three" {
		t.Errorf("text = %q", b.Text())
	}
	if result.OldText != "two" {
		t.Errorf("OldText = %q", result.OldText)
	}
	if result.NewRange != (Range{Start: 4, End: 5}) {
		t.Errorf("NewRange = %v", result.NewRange)
	}
	if result.Delta != -2 {
		t.Errorf("Delta = %d", result.Delta)
	}
}

func TestBufferApplyEditsReverseOrder(t *testing.T) {
	b := NewBufferFromString("aaa bbb ccc")
	edits := []Edit{
		NewEdit(Range{Start: 8, End: 11}, "C"),
		NewEdit(Range{Start: 4, End: 7}, "B"),
		NewEdit(Range{Start: 0, End: 3}, "A"),
	}
	if err := b.ApplyEdits(edits); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "A B C" {
		t.Errorf("text = %q", b.Text())
	}
}

func TestBufferApplyEditsOverlapRejected(t *testing.T) {
	b := NewBufferFromString("aaa bbb")
	edits := []Edit{
		NewEdit(Range{Start: 2, End: 6}, "x"),
		NewEdit(Range{Start: 0, End: 3}, "y"),
	}
	if err := b.ApplyEdits(edits); !errors.Is(err, ErrEditsOverlap) {
		t.Errorf("overlapping edits: %v", err)
	}
	if b.Text() != "aaa bbb" {
		t.Error("buffer must be untouched after rejected batch")
	}
}

func TestBufferLineOperations(t *testing.T) {
	b := NewBufferFromString("first\nsecond\nthird")
	if b.LineCount() != 3 {
		t.Fatalf("LineCount = %d", b.LineCount())
	}
	for i, want := range []string{"first", "second", "third"} {
		if got := b.LineText(uint32(i)); got != want {
			t.Errorf("LineText(%d) = %q", i, got)
		}
	}
	if b.LineStartOffset(1) != 6 {
		t.Errorf("LineStartOffset(1) = %d", b.LineStartOffset(1))
	}
	if b.LineEndOffset(1) != 12 {
		t.Errorf("LineEndOffset(1) = %d", b.LineEndOffset(1))
	}
}

func TestBufferCharCoordinates(t *testing.T) {
	b := NewBufferFromString("αβ\nγδε")
	if b.LenChars() != 6 {
		t.Fatalf("LenChars = %d", b.LenChars())
	}
	if got := b.CharToByte(3); got != 5 {
		t.Errorf("CharToByte(3) = %d, want 5", got)
	}
	if got := b.ByteToChar(5); got != 3 {
		t.Errorf("ByteToChar(5) = %d, want 3", got)
	}
	if got := b.CharToLine(3); got != 1 {
		t.Errorf("CharToLine(3) = %d", got)
	}
	if got := b.LineToChar(1); got != 3 {
		t.Errorf("LineToChar(1) = %d", got)
	}
	if got := b.TextCharRange(CharIndexRange{Start: 3, End: 6}); got != "γδε" {
		t.Errorf("TextCharRange = %q", got)
	}
}

func TestBufferCharByteRangeBridges(t *testing.T) {
	b := NewBufferFromString("αβγ plain")
	cr := CharIndexRange{Start: 0, End: 3}
	br := b.ByteRange(cr)
	if br != (Range{Start: 0, End: 6}) {
		t.Errorf("ByteRange = %v", br)
	}
	if got := b.CharRange(br); got != cr {
		t.Errorf("CharRange(ByteRange) = %v, want %v", got, cr)
	}
}

func TestBufferPositionConversions(t *testing.T) {
	b := NewBufferFromString("ab\ncde")
	if got := b.OffsetToPoint(4); got != (Point{Line: 1, Column: 1}) {
		t.Errorf("OffsetToPoint(4) = %v", got)
	}
	if got := b.PointToOffset(Point{Line: 1, Column: 1}); got != 4 {
		t.Errorf("PointToOffset = %d", got)
	}
	// Char-column conversions over multibyte content.
	mb := NewBufferFromString("αβ\nγδ")
	if got := mb.CharToPosition(4); got != (Point{Line: 1, Column: 1}) {
		t.Errorf("CharToPosition(4) = %v", got)
	}
	if got := mb.PositionToChar(Point{Line: 1, Column: 1}); got != 4 {
		t.Errorf("PositionToChar = %d", got)
	}
}

func TestBufferUTF16Conversions(t *testing.T) {
	// 𝄞 is one char but two UTF-16 code units and four bytes.
	b := NewBufferFromString("a𝄞b")
	p := b.OffsetToPointUTF16(5)
	if p != (PointUTF16{Line: 0, Column: 3}) {
		t.Errorf("OffsetToPointUTF16(5) = %v", p)
	}
	if got := b.PointUTF16ToOffset(p); got != 5 {
		t.Errorf("PointUTF16ToOffset = %d", got)
	}
}

func TestBufferSnapshot(t *testing.T) {
	b := NewBufferFromString("original content")
	snap := b.Snapshot()

	if _, err := b.Replace(0, 8, "altered"); err != nil {
		t.Fatal(err)
	}

	if snap.Text() != "original content" {
		t.Errorf("snapshot changed: %q", snap.Text())
	}
	if b.Text() != "altered content" {
		t.Errorf("buffer = %q", b.Text())
	}
	if snap.RevisionID() == b.RevisionID() {
		t.Error("revision should change on edit")
	}
}

func TestBufferLineEndingNormalization(t *testing.T) {
	b := NewBufferFromString("a\r\nb\rc\n")
	if b.Text() != "a\nb\nc\n" {
		t.Errorf("normalized text = %q", b.Text())
	}

	if _, err := b.Insert(0, "x\r\ny\r"); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(b.Text(), "\r") {
		t.Errorf("insert leaked a CR: %q", b.Text())
	}
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		text string
		want LineEnding
	}{
		{"a\nb", LineEndingLF},
		{"a\r\nb", LineEndingCRLF},
		{"no newlines", LineEndingLF},
	}
	for _, tt := range tests {
		if got := DetectLineEnding(tt.text); got != tt.want {
			t.Errorf("DetectLineEnding(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestBufferRevisionAdvances(t *testing.T) {
	b := NewBufferFromString("x")
	r1 := b.RevisionID()
	if _, err := b.Insert(0, "y"); err != nil {
		t.Fatal(err)
	}
	if b.RevisionID() == r1 {
		t.Error("revision must advance on every mutation")
	}
}

func TestBufferConcurrentReaders(t *testing.T) {
	b := NewBufferFromString(strings.Repeat("concurrent read\n", 100))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = b.Text()
				_ = b.LineCount()
				_ = b.LenChars()
			}
		}()
	}
	wg.Wait()
}

func TestBufferConcurrentReadWrite(t *testing.T) {
	b := NewBufferFromString("seed")
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_, _ = b.Insert(0, "w")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = b.Len()
			_ = b.LineText(0)
		}
	}()
	wg.Wait()
	if b.Len() != ByteOffset(4+50) {
		t.Errorf("final Len = %d", b.Len())
	}
}

func TestEditHelpers(t *testing.T) {
	ins := NewInsert(3, "abc")
	if !ins.IsInsert() || ins.IsDelete() || ins.Delta() != 3 {
		t.Error("NewInsert classification")
	}
	del := NewDelete(2, 5)
	if !del.IsDelete() || del.Delta() != -3 {
		t.Error("NewDelete classification")
	}
	rep := NewEdit(Range{Start: 0, End: 2}, "xyz")
	if !rep.IsReplace() || rep.Delta() != 1 {
		t.Error("NewEdit classification")
	}
	if !(Edit{}).IsNoOp() {
		t.Error("zero Edit should be a no-op")
	}
}

func TestRangeOperations(t *testing.T) {
	a := NewRange(2, 8)
	if a.Len() != 6 || a.IsEmpty() || !a.IsValid() {
		t.Error("range basics")
	}
	if !a.Contains(2) || a.Contains(8) {
		t.Error("half-open containment")
	}
	b := NewRange(5, 12)
	if !a.Overlaps(b) {
		t.Error("overlap")
	}
	if got := a.Intersect(b); got != (Range{Start: 5, End: 8}) {
		t.Errorf("Intersect = %v", got)
	}
	if got := a.Union(b); got != (Range{Start: 2, End: 12}) {
		t.Errorf("Union = %v", got)
	}
	if got := a.Shift(3); got != (Range{Start: 5, End: 11}) {
		t.Errorf("Shift = %v", got)
	}
	disjoint := NewRange(20, 25)
	if got := a.Intersect(disjoint); !got.IsEmpty() {
		t.Errorf("disjoint Intersect = %v", got)
	}
}

func TestPointOrdering(t *testing.T) {
	early := Point{Line: 1, Column: 5}
	late := Point{Line: 2, Column: 0}
	if !early.Before(late) || late.Before(early) {
		t.Error("line ordering")
	}
	sameLine := Point{Line: 1, Column: 9}
	if !early.Before(sameLine) {
		t.Error("column ordering")
	}
	if early.Compare(early) != 0 {
		t.Error("self comparison")
	}
	if !(Point{}).IsZero() {
		t.Error("zero point")
	}
}
