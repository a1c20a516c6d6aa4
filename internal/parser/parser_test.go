package parser

import (
	"testing"

	"zinc/internal/ast"
	"zinc/internal/diag"
	"zinc/internal/source"
)

func parseSrc(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.zn", []byte(src))
	bag := diag.NewBag(0)
	file := ParseFile(fs.Get(id), diag.BagReporter{Bag: bag})
	return file, bag
}

func parseOK(t *testing.T, src string) *ast.File {
	t.Helper()
	file, bag := parseSrc(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	return file
}

func TestParseFunction(t *testing.T) {
	file := parseOK(t, `
fn add(a, b) {
    return a + b
}
fn main() {
    x = add(1, 2)
    print(x)
}
`)
	if len(file.Funcs) != 2 {
		t.Fatalf("funcs: %d", len(file.Funcs))
	}
	add, ok := file.Func("add")
	if !ok || len(add.Params) != 2 || add.Params[0].Name != "a" {
		t.Fatalf("add decl: %+v", add)
	}
	if len(add.Body.Stmts) != 1 || add.Body.Stmts[0].Kind != ast.StmtReturn {
		t.Fatalf("add body: %+v", add.Body.Stmts)
	}
	main, _ := file.Func("main")
	if main.Body.Stmts[0].Kind != ast.StmtAssign {
		t.Fatalf("main first stmt: %v", main.Body.Stmts[0].Kind)
	}
}

func TestParsePrecedence(t *testing.T) {
	file := parseOK(t, `fn main() { x = 1 + 2 * 3 }`)
	assign := file.Funcs[0].Body.Stmts[0].Data.(ast.AssignData)
	bin := assign.Value.Data.(ast.BinaryData)
	if bin.Op != ast.BinaryAdd {
		t.Fatalf("top op: %v", bin.Op)
	}
	right := bin.Right.Data.(ast.BinaryData)
	if right.Op != ast.BinaryMul {
		t.Fatalf("nested op: %v", right.Op)
	}
}

func TestParseStruct(t *testing.T) {
	file := parseOK(t, `
struct Point {
    x = 0
    _tag = "p"
    fn length(self) {
        return self.x
    }
    fn origin() {
        return Point { x: 0 }
    }
}
`)
	st, ok := file.Struct("Point")
	if !ok {
		t.Fatal("Point not parsed")
	}
	if len(st.Fields) != 2 {
		t.Fatalf("fields: %d", len(st.Fields))
	}
	if !st.Fields[1].IsPrivate() {
		t.Fatal("_tag should be private")
	}
	m, ok := st.Method("length")
	if !ok || len(m.Params) != 1 || m.Params[0].Name != "self" {
		t.Fatalf("length method: %+v", m)
	}
	origin, _ := st.Method("origin")
	ret := origin.Body.Stmts[0].Data.(ast.ReturnData)
	if ret.Value.Kind != ast.ExprStructLit {
		t.Fatalf("origin returns %v", ret.Value.Kind)
	}
}

func TestParseControlFlow(t *testing.T) {
	file := parseOK(t, `
fn main() {
    for i in 0..10 {
        if i % 2 == 0 {
            continue
        } else {
            print(i)
        }
    }
    while true {
        break
    }
    loop {
        break
    }
}
`)
	stmts := file.Funcs[0].Body.Stmts
	if stmts[0].Kind != ast.StmtForIn {
		t.Fatalf("stmt 0: %v", stmts[0].Kind)
	}
	forIn := stmts[0].Data.(ast.ForInData)
	if forIn.Var != "i" || forIn.Iter.Kind != ast.ExprRange {
		t.Fatalf("for-in: %+v", forIn)
	}
	if stmts[1].Kind != ast.StmtWhile || stmts[2].Kind != ast.StmtLoop {
		t.Fatalf("stmts: %v %v", stmts[1].Kind, stmts[2].Kind)
	}
}

func TestParseMatch(t *testing.T) {
	file := parseOK(t, `
fn main() {
    match x {
        0 => { print("zero") }
        1..=9 => { print("digit") }
        _ => { print("other") }
    }
}
`)
	m := file.Funcs[0].Body.Stmts[0].Data.(ast.MatchData)
	if len(m.Arms) != 3 {
		t.Fatalf("arms: %d", len(m.Arms))
	}
	if m.Arms[0].Pattern.Kind != ast.PatLiteral {
		t.Fatalf("arm 0: %v", m.Arms[0].Pattern.Kind)
	}
	if m.Arms[1].Pattern.Kind != ast.PatRange || !m.Arms[1].Pattern.Inclusive {
		t.Fatalf("arm 1: %+v", m.Arms[1].Pattern)
	}
	if m.Arms[2].Pattern.Kind != ast.PatWildcard {
		t.Fatalf("arm 2: %v", m.Arms[2].Pattern.Kind)
	}
}

func TestParseConcurrency(t *testing.T) {
	file := parseOK(t, `
fn main() {
    ch = chan()
    spawn worker(ch)
    ch <- 1
    v = <- ch
    select {
        case msg = <- ch {
            print(msg)
        }
        case <- done {
            return
        }
    }
}
`)
	stmts := file.Funcs[0].Body.Stmts
	if stmts[1].Kind != ast.StmtSpawn {
		t.Fatalf("spawn: %v", stmts[1].Kind)
	}
	spawn := stmts[1].Data.(ast.SpawnData)
	if name, _ := spawn.Callee.Ident(); name != "worker" {
		t.Fatalf("spawn callee: %v", spawn.Callee)
	}
	if stmts[2].Kind != ast.StmtSend {
		t.Fatalf("send: %v", stmts[2].Kind)
	}
	recv := stmts[3].Data.(ast.AssignData)
	if recv.Value.Kind != ast.ExprRecv {
		t.Fatalf("recv: %v", recv.Value.Kind)
	}
	sel := stmts[4].Data.(ast.SelectData)
	if len(sel.Arms) != 2 {
		t.Fatalf("select arms: %d", len(sel.Arms))
	}
	if sel.Arms[0].Bind != "msg" || sel.Arms[1].Bind != "" {
		t.Fatalf("binds: %q %q", sel.Arms[0].Bind, sel.Arms[1].Bind)
	}
}

func TestParseLambdaAndArray(t *testing.T) {
	file := parseOK(t, `
fn main() {
    xs = [1, 2, 3]
    f = |x| x * 2
    y = xs[0]
}
`)
	stmts := file.Funcs[0].Body.Stmts
	arr := stmts[0].Data.(ast.AssignData).Value
	if arr.Kind != ast.ExprArrayLit || len(arr.Data.(ast.ArrayLitData).Elems) != 3 {
		t.Fatalf("array: %+v", arr)
	}
	lam := stmts[1].Data.(ast.AssignData).Value
	if lam.Kind != ast.ExprLambda {
		t.Fatalf("lambda: %v", lam.Kind)
	}
	if params := lam.Data.(ast.LambdaData).Params; len(params) != 1 || params[0] != "x" {
		t.Fatalf("lambda params: %v", params)
	}
	idx := stmts[2].Data.(ast.AssignData).Value
	if idx.Kind != ast.ExprIndex {
		t.Fatalf("index: %v", idx.Kind)
	}
}

func TestParseConst(t *testing.T) {
	file := parseOK(t, `const limit = 100`)
	c, ok := file.Const("limit")
	if !ok {
		t.Fatal("const not parsed")
	}
	lit := c.Value.Data.(ast.LiteralData)
	if lit.Kind != ast.LitInt || lit.IntValue != 100 {
		t.Fatalf("const value: %+v", lit)
	}
}

func TestParseErrorRecovery(t *testing.T) {
	file, bag := parseSrc(t, `
fn broken( {
fn good() { return 1 }
`)
	if !bag.HasErrors() {
		t.Fatal("expected diagnostics")
	}
	if _, ok := file.Func("good"); !ok {
		t.Fatal("recovery should reach the next declaration")
	}
}

func TestParseStructLitSuppressedInCond(t *testing.T) {
	file := parseOK(t, `
fn main() {
    if ready {
        go()
    }
}
`)
	ifData := file.Funcs[0].Body.Stmts[0].Data.(ast.IfData)
	if ifData.Branches[0].Cond.Kind != ast.ExprIdent {
		t.Fatalf("cond: %v", ifData.Branches[0].Cond.Kind)
	}
}
