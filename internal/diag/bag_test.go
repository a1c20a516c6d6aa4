package diag

import (
	"strings"
	"testing"

	"zinc/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		b.Add(NewError(SemTypeMismatch, source.Span{}, "x"))
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestBagZeroMaxIsUnlimited(t *testing.T) {
	b := NewBag(0)
	for i := 0; i < 200; i++ {
		if !b.Add(NewError(SemTypeMismatch, source.Span{}, "x")) {
			t.Fatalf("diagnostic %d dropped by an unlimited bag", i)
		}
	}
	if b.Len() != 200 {
		t.Fatalf("Len = %d, want 200", b.Len())
	}
	if !b.HasErrors() {
		t.Fatalf("errors lost by an unlimited bag")
	}
}

func TestBagNegativeMaxIsUnlimited(t *testing.T) {
	b := NewBag(-1)
	if !b.Add(NewError(SemTypeMismatch, source.Span{}, "x")) {
		t.Fatalf("diagnostic dropped with a negative max")
	}
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, UnknownCode, source.Span{}, "warn"))
	if b.HasErrors() {
		t.Fatalf("warning-only bag must not report errors")
	}
	b.Add(NewError(SemUnresolvedIdentifier, source.Span{}, "boom"))
	if !b.HasErrors() {
		t.Fatalf("expected HasErrors after adding an error")
	}
}

func TestBagSortStable(t *testing.T) {
	b := NewBag(10)
	b.Add(NewError(SemTypeMismatch, source.Span{Start: 9, End: 10}, "second"))
	b.Add(NewError(SemUnresolvedIdentifier, source.Span{Start: 2, End: 3}, "first"))
	b.Sort()
	if b.Items()[0].Message != "first" {
		t.Fatalf("sort order wrong: %v", b.Items())
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("app.zinc", []byte("fn main() {\n    y\n}\n"))
	b := NewBag(10)
	b.Add(NewError(SemUnresolvedIdentifier, source.Span{File: id, Start: 16, End: 17}, "unresolved identifier `y`"))

	got := FormatShort(b, fs, false)
	want := "app.zinc:2:5: ERROR UnresolvedIdentifier: unresolved identifier `y`\n"
	if got != want {
		t.Fatalf("FormatShort = %q, want %q", got, want)
	}
	if strings.Contains(got, "NOTE") {
		t.Fatalf("unexpected notes in output")
	}
}
