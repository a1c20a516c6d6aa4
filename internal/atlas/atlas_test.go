package atlas

import (
	"testing"

	"zinc/internal/diag"
	"zinc/internal/parser"
	"zinc/internal/source"
)

func build(t *testing.T, src string) (*Atlas, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.zn", []byte(src))
	bag := diag.NewBag(0)
	reporter := diag.BagReporter{Bag: bag}
	file := parser.ParseFile(fs.Get(id), reporter)
	if bag.HasErrors() {
		t.Fatalf("parse diagnostics: %v", bag.Items())
	}
	return Build(file, reporter), bag
}

func TestBuildExcludesUnreachable(t *testing.T) {
	a, bag := build(t, `
fn used() { return 1 }
fn unused() { return 2 }
fn main() { x = used() }
`)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	if _, ok := a.Funcs["used"]; !ok {
		t.Fatal("used should be reachable")
	}
	if _, ok := a.Funcs["unused"]; ok {
		t.Fatal("unused should be excluded")
	}
	if !a.Calls["main"]["used"] {
		t.Fatalf("call graph: %v", a.Calls)
	}
}

func TestBuildMissingEntryPoint(t *testing.T) {
	a, bag := build(t, `fn helper() { return 1 }`)
	if a != nil {
		t.Fatal("expected nil atlas")
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.SemMissingEntryPoint {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
}

func TestBuildRecursionTerminates(t *testing.T) {
	a, bag := build(t, `
fn ping(n) { return pong(n) }
fn pong(n) { return ping(n) }
fn main() { ping(1) }
`)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	if len(a.Funcs) != 3 {
		t.Fatalf("funcs: %v", a.FuncOrder)
	}
}

func TestBuildMethodReachability(t *testing.T) {
	a, bag := build(t, `
struct Counter {
    n = 0
    fn bump(self) { self.n = self.n + 1 }
    fn idle(self) { return self.n }
}
fn main() {
    c = Counter { n: 0 }
    c.bump()
}
`)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	info, ok := a.Structs["Counter"]
	if !ok {
		t.Fatal("Counter should be reachable")
	}
	if !info.MethodsUsed["bump"] {
		t.Fatal("bump should be reachable")
	}
	if info.MethodsUsed["idle"] {
		t.Fatal("idle is never invoked and should be excluded")
	}
}

func TestBuildMethodUsedBeforeStructSeen(t *testing.T) {
	a, bag := build(t, `
struct Point {
    x = 0
    fn shift(self) { self.x = self.x + 1 }
}
fn touch(p) { p.shift() }
fn make() { return Point { x: 1 } }
fn main() {
    touch(make())
}
`)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	info, ok := a.Structs["Point"]
	if !ok {
		t.Fatal("Point should be reachable")
	}
	if !info.MethodsUsed["shift"] {
		t.Fatal("shift invoked through touch should be reachable")
	}
}

func TestBuildStaticMethodCall(t *testing.T) {
	a, bag := build(t, `
struct Point {
    x = 0
    fn origin() { return Point { x: 0 } }
}
fn main() {
    p = Point.origin()
}
`)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	info := a.Structs["Point"]
	if info == nil || !info.MethodsUsed["origin"] {
		t.Fatalf("origin should be reachable: %+v", info)
	}
	if !a.Calls["main"]["Point.origin"] {
		t.Fatalf("call graph: %v", a.Calls)
	}
}

func TestBuildConstsAndSpawn(t *testing.T) {
	a, bag := build(t, `
const limit = 10
fn worker(ch) { ch <- limit }
fn main() {
    ch = chan()
    spawn worker(ch)
}
`)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	if _, ok := a.Funcs["worker"]; !ok {
		t.Fatal("spawned function should be reachable")
	}
	if _, ok := a.Consts["limit"]; !ok {
		t.Fatal("limit should be reachable")
	}
}

func TestBuildEntryIsFirst(t *testing.T) {
	a, _ := build(t, `
fn helper() { return 1 }
fn main() { helper() }
`)
	if a.FuncOrder[0] != "main" {
		t.Fatalf("order: %v", a.FuncOrder)
	}
	if a.Entry == nil || a.Entry.Name != "main" {
		t.Fatalf("entry: %+v", a.Entry)
	}
}
