package symbols

import (
	"testing"

	"zinc/internal/atlas"
	"zinc/internal/diag"
	"zinc/internal/parser"
	"zinc/internal/source"
	"zinc/internal/types"
)

func resolveSrc(t *testing.T, src string) (*Table, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.zn", []byte(src))
	bag := diag.NewBag(0)
	reporter := diag.BagReporter{Bag: bag}
	file := parser.ParseFile(fs.Get(id), reporter)
	if bag.HasErrors() {
		t.Fatalf("parse diagnostics: %v", bag.Items())
	}
	atl := atlas.Build(file, reporter)
	if atl == nil {
		t.Fatalf("atlas diagnostics: %v", bag.Items())
	}
	return Resolve(atl, types.NewInterner(), reporter), bag
}

func resolveOK(t *testing.T, src string) *Table {
	t.Helper()
	table, bag := resolveSrc(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	return table
}

func instancesOf(table *Table, name string) []*Instance {
	var out []*Instance
	for _, inst := range table.Order {
		if inst.Name == name {
			out = append(out, inst)
		}
	}
	return out
}

func TestCacheIdentity(t *testing.T) {
	table := resolveOK(t, `
fn add(a, b) { return a + b }
fn main() {
    x = add(1, 2)
    y = add(3, 4)
}
`)
	insts := instancesOf(table, "add")
	if len(insts) != 1 {
		t.Fatalf("expected one specialization, got %d", len(insts))
	}
	if insts[0].Mangled != "add_i64_i64" {
		t.Fatalf("mangled: %s", insts[0].Mangled)
	}
}

func TestCacheDistinctness(t *testing.T) {
	table := resolveOK(t, `
fn add(a, b) { return a + b }
fn main() {
    x = add(1, 2)
    y = add(1.5, 2.5)
}
`)
	insts := instancesOf(table, "add")
	if len(insts) != 2 {
		t.Fatalf("expected two specializations, got %d", len(insts))
	}
	if insts[0].Mangled == insts[1].Mangled {
		t.Fatalf("mangled names collide: %s", insts[0].Mangled)
	}
	bt := table.Interner.Builtins()
	if insts[0].Result != bt.Int || insts[1].Result != bt.Float {
		t.Fatalf("results: %v %v", insts[0].Result, insts[1].Result)
	}
}

func TestNumericPromotion(t *testing.T) {
	table := resolveOK(t, `
fn main() {
    a = 1 + 2
    b = 1 + 2.5
    c = "a" + "b"
}
`)
	bt := table.Interner.Builtins()
	main := table.Entry
	if main.Locals["a"] != bt.Int {
		t.Fatalf("a: %s", table.Interner.String(main.Locals["a"]))
	}
	if main.Locals["b"] != bt.Float {
		t.Fatalf("b: %s", table.Interner.String(main.Locals["b"]))
	}
	if main.Locals["c"] != bt.String {
		t.Fatalf("c: %s", table.Interner.String(main.Locals["c"]))
	}
}

func TestMethodClassification(t *testing.T) {
	table := resolveOK(t, `
struct Counter {
    x = 0
    fn bump(self) { self.x = self.x + 1 }
    fn get(self) { return self.x }
    fn unit() { return 1 }
}
fn main() {
    c = Counter { x: 0 }
    c.bump()
    v = c.get()
    u = Counter.unit()
}
`)
	info := table.Structs["Counter"]
	if info.Methods["bump"] != MethodMutating {
		t.Fatalf("bump: %s", info.Methods["bump"])
	}
	if info.Methods["get"] != MethodReadOnly {
		t.Fatalf("get: %s", info.Methods["get"])
	}
	if info.Methods["unit"] != MethodStatic {
		t.Fatalf("unit: %s", info.Methods["unit"])
	}
	if !table.Entry.Mutated["c"] {
		t.Fatal("receiver of a mutating method must be marked mutated")
	}
}

func TestRecursionSingleSpecialization(t *testing.T) {
	table := resolveOK(t, `
fn fact(n) {
    if n <= 1 {
        return 1
    }
    return n * fact(n - 1)
}
fn main() {
    x = fact(5)
}
`)
	insts := instancesOf(table, "fact")
	if len(insts) != 1 {
		t.Fatalf("expected one specialization, got %d", len(insts))
	}
	if insts[0].Result != table.Interner.Builtins().Int {
		t.Fatalf("result: %s", table.Interner.String(insts[0].Result))
	}
}

func TestRecursionNeverResolves(t *testing.T) {
	_, bag := resolveSrc(t, `
fn spin(n) { return spin(n) }
fn main() { x = spin(1) }
`)
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SemRecursiveSpecialization {
			found = true
		}
	}
	if !found {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
}

func TestUnresolvedIdentifier(t *testing.T) {
	_, bag := resolveSrc(t, `fn main() { x = missing }`)
	if !bag.HasErrors() || bag.Items()[0].Code != diag.SemUnresolvedIdentifier {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
}

func TestIntraBodyTypeConflict(t *testing.T) {
	_, bag := resolveSrc(t, `
fn main() {
    x = 1
    x = "s"
}
`)
	if !bag.HasErrors() || bag.Items()[0].Code != diag.SemTypeMismatch {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
}

func TestReachabilityExclusion(t *testing.T) {
	table := resolveOK(t, `
fn used() { return 1 }
fn unused() { return 2 }
fn main() { x = used() }
`)
	if len(instancesOf(table, "unused")) != 0 {
		t.Fatal("unused must not be specialized")
	}
}

func TestChannelElementInference(t *testing.T) {
	table := resolveOK(t, `
fn worker(ch) {
    ch <- 42
}
fn main() {
    ch = chan()
    spawn worker(ch)
    x = <- ch
    print(x)
}
`)
	bt := table.Interner.Builtins()
	main := table.Entry
	info, ok := main.Chans["ch"]
	if !ok {
		t.Fatal("ch must carry channel info")
	}
	if info.Elem != bt.Int {
		t.Fatalf("element: %s", table.Interner.String(info.Elem))
	}
	if info.Bounded {
		t.Fatal("chan() is unbounded")
	}
	workers := instancesOf(table, "worker")
	if len(workers) != 1 {
		t.Fatalf("worker specializations: %d", len(workers))
	}
	w := workers[0]
	if !w.IsAsync || !w.Spawned {
		t.Fatalf("worker async=%v spawned=%v", w.IsAsync, w.Spawned)
	}
	if wInfo, _ := w.ParamChan(0); wInfo != info {
		t.Fatal("callee must share the creator's channel info")
	}
	if !main.IsAsync || !table.UsesAsync {
		t.Fatal("main must be async when channels are used")
	}
	if w.ChanDirs["ch"] != ChanDirSend {
		t.Fatalf("worker dir: %v", w.ChanDirs["ch"])
	}
	if main.ChanDirs["ch"] != ChanDirRecv {
		t.Fatalf("main dir: %v", main.ChanDirs["ch"])
	}
}

func TestBoundedChannelCapacity(t *testing.T) {
	table := resolveOK(t, `
fn main() {
    ch = chan(2)
    ch <- 1
    x = <- ch
}
`)
	info := table.Entry.Chans["ch"]
	if info == nil || !info.Bounded || info.Capacity != "2" {
		t.Fatalf("info: %+v", info)
	}
}

func TestStructFieldTypes(t *testing.T) {
	table := resolveOK(t, `
struct Point {
    x = 0
    y = 1.5
    _tag = "p"
}
fn main() {
    p = Point { x: 3 }
    v = p.x
}
`)
	bt := table.Interner.Builtins()
	info := table.Structs["Point"]
	if info.FieldTypes["x"] != bt.Int || info.FieldTypes["y"] != bt.Float || info.FieldTypes["_tag"] != bt.String {
		t.Fatalf("field types: %+v", info.FieldTypes)
	}
	if table.Entry.Locals["v"] != bt.Int {
		t.Fatalf("v: %s", table.Interner.String(table.Entry.Locals["v"]))
	}
}

func TestLambdaSignatureFixedAtFirstCall(t *testing.T) {
	table := resolveOK(t, `
fn main() {
    double = |x| x * 2
    y = double(21)
}
`)
	bt := table.Interner.Builtins()
	main := table.Entry
	if main.Locals["y"] != bt.Int {
		t.Fatalf("y: %s", table.Interner.String(main.Locals["y"]))
	}
	lambda := main.Lambdas["double"]
	if lambda == nil {
		t.Fatal("lambda binding missing")
	}
	sig, ok := main.LambdaSigs[lambda]
	if !ok || len(sig.Params) != 1 || sig.Params[0] != bt.Int || sig.Result != bt.Int {
		t.Fatalf("sig: %+v", sig)
	}
}

func TestConstTyping(t *testing.T) {
	table := resolveOK(t, `
const limit = 10
fn main() {
    x = limit + 1
}
`)
	bt := table.Interner.Builtins()
	if table.Consts["limit"].Type != bt.Int {
		t.Fatalf("limit: %v", table.Consts["limit"].Type)
	}
	if table.Entry.Locals["x"] != bt.Int {
		t.Fatalf("x: %v", table.Entry.Locals["x"])
	}
}
