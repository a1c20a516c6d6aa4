package diagfmt

import (
	"strings"
	"testing"

	"zinc/internal/ast"
	"zinc/internal/diag"
	"zinc/internal/parser"
	"zinc/internal/source"
)

func parseTestFile(t *testing.T, src string) (*source.FileSet, *ast.File) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("tree.zn", []byte(src))
	bag := diag.NewBag(0)
	file := parser.ParseFile(fs.Get(id), diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}
	return fs, file
}

func TestFormatASTPretty(t *testing.T) {
	src := `const LIMIT = 10

struct Point {
    x = 0
    _tag = "p"

    fn sum(self) {
        return self.x
    }
}

fn main() {
    p = Point { x: 1, _tag: "q" }
    print(p.sum())
}
`
	fs, file := parseTestFile(t, src)

	var sb strings.Builder
	FormatASTPretty(&sb, file, fs, PrettyOpts{})
	out := sb.String()

	for _, want := range []string{
		"tree.zn",
		"Const LIMIT",
		"Struct Point",
		"Field x (pub)",
		"Field _tag (private)",
		"Fn sum(self)",
		"Fn main()",
		"StructLit Point",
		"Member .sum",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("tree output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "├─ ") || !strings.Contains(out, "└─ ") {
		t.Fatalf("tree output lacks connectors:\n%s", out)
	}
}

func TestFormatASTPrettyControlFlow(t *testing.T) {
	src := `fn main() {
    total = 0
    for i in 0..3 {
        match i {
            0 => { total = total + 1 }
            _ => { total = total + i }
        }
    }
}
`
	fs, file := parseTestFile(t, src)

	var sb strings.Builder
	FormatASTPretty(&sb, file, fs, PrettyOpts{})
	out := sb.String()

	for _, want := range []string{
		"ForIn i",
		"Range ..",
		"Match",
		"Arm 0",
		"Arm _",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("tree output missing %q:\n%s", want, out)
		}
	}
}
