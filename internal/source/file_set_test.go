package source

import "testing"

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("main.zinc", []byte("fn main() {\n    x = 1\n}\n"))

	start, end := fs.Resolve(Span{File: id, Start: 16, End: 21})
	if start.Line != 2 || start.Col != 5 {
		t.Fatalf("start = %d:%d, want 2:5", start.Line, start.Col)
	}
	if end.Line != 2 || end.Col != 10 {
		t.Fatalf("end = %d:%d, want 2:10", end.Line, end.Col)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.zinc", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	if got := f.GetLine(2); got != "two" {
		t.Fatalf("GetLine(2) = %q, want %q", got, "two")
	}
	if got := f.GetLine(3); got != "three" {
		t.Fatalf("GetLine(3) = %q, want %q", got, "three")
	}
	if got := f.GetLine(4); got != "" {
		t.Fatalf("GetLine(4) = %q, want empty", got)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed || string(out) != "a\nb\rc" {
		t.Fatalf("normalizeCRLF = %q (changed=%v)", out, changed)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	got := a.Cover(b)
	if got.Start != 2 || got.End != 8 {
		t.Fatalf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files must not extend, got %v", got)
	}
}
