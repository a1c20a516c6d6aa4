package codegen

import (
	"strings"
	"testing"

	"zinc/internal/atlas"
	"zinc/internal/diag"
	"zinc/internal/parser"
	"zinc/internal/source"
	"zinc/internal/symbols"
	"zinc/internal/types"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.zn", []byte(src))
	bag := diag.NewBag(0)
	reporter := diag.BagReporter{Bag: bag}
	file := parser.ParseFile(fs.Get(id), reporter)
	atl := atlas.Build(file, reporter)
	if atl == nil {
		t.Fatalf("atlas diagnostics: %v", bag.Items())
	}
	table := symbols.Resolve(atl, types.NewInterner(), reporter)
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	return Generate(table)
}

func wantContains(t *testing.T, out string, parts ...string) {
	t.Helper()
	for _, part := range parts {
		if !strings.Contains(out, part) {
			t.Fatalf("output missing %q:\n%s", part, out)
		}
	}
}

func TestGenerateMangledFunctions(t *testing.T) {
	out := generate(t, `
fn add(a, b) { return a + b }
fn main() {
    x = add(1, 2)
    y = add(1.5, 2.5)
}
`)
	wantContains(t, out,
		"fn add_i64_i64(a: i64, b: i64) -> i64 {",
		"fn add_f64_f64(a: f64, b: f64) -> f64 {",
		"let x = add_i64_i64(1, 2);",
		"let y = add_f64_f64(1.5, 2.5);",
	)
	if strings.Contains(out, "#[tokio::main]") {
		t.Fatal("synchronous program must not pull in the async runtime")
	}
	if !strings.Contains(out, "fn main() {") {
		t.Fatalf("missing entry:\n%s", out)
	}
}

func TestGenerateExcludesUnreachable(t *testing.T) {
	out := generate(t, `
fn used() { return 1 }
fn unused() { return 2 }
fn main() { x = used() }
`)
	if strings.Contains(out, "unused") {
		t.Fatalf("unreachable function leaked into output:\n%s", out)
	}
}

func TestGenerateStructVisibility(t *testing.T) {
	out := generate(t, `
struct User {
    name = "anon"
    _secret = 0
}
fn main() {
    u = User { name: "alice" }
    print(u.name)
}
`)
	wantContains(t, out,
		"struct User {",
		"pub name: String,",
		"_secret: i64,",
		`User { name: String::from("alice") }`,
		`println!("{}", u.name);`,
	)
	if strings.Contains(out, "pub _secret") {
		t.Fatalf("private field emitted public:\n%s", out)
	}
}

func TestGenerateMethods(t *testing.T) {
	out := generate(t, `
struct Counter {
    n = 0
    fn bump(self, by) { self.n = self.n + by }
    fn get(self) { return self.n }
    fn fresh() { return Counter { n: 0 } }
}
fn main() {
    c = Counter.fresh()
    c.bump(2)
    print(c.get())
}
`)
	wantContains(t, out,
		"impl Counter {",
		"fn bump_i64(&mut self, by: i64) {",
		"fn get(&self) -> i64 {",
		"fn fresh() -> Self {",
		"let mut c = Counter::fresh();",
		"c.bump_i64(2);",
		`println!("{}", c.get());`,
	)
}

func TestGenerateUnusedReceiverIsStatic(t *testing.T) {
	out := generate(t, `
struct Counter {
    n = 0
    fn tag(self) { return 7 }
}
fn main() {
    c = Counter { n: 1 }
    v = c.tag()
    print(v)
}
`)
	wantContains(t, out,
		"fn tag() -> i64 {",
		"let v = Counter::tag();",
	)
	if strings.Contains(out, "tag(&self)") {
		t.Fatalf("receiver emitted for a method that never touches it:\n%s", out)
	}
}

func TestGenerateChannels(t *testing.T) {
	out := generate(t, `
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
	wantContains(t, out,
		"use tokio;",
		"#[tokio::main]",
		"async fn main() {",
		"let (ch_tx, mut ch_rx) = tokio::sync::mpsc::unbounded_channel::<i64>();",
		"tokio::spawn(worker_chan(ch_tx));",
		"let x = ch_rx.recv().await.unwrap();",
		"async fn worker_chan(ch: tokio::sync::mpsc::UnboundedSender<i64>) {",
		"ch.send(42).unwrap();",
	)
}

func TestGenerateBoundedChannel(t *testing.T) {
	out := generate(t, `
fn main() {
    ch = chan(2)
    ch <- 1
    x = <- ch
    print(x)
}
`)
	wantContains(t, out,
		"let (ch_tx, mut ch_rx) = tokio::sync::mpsc::channel::<i64>(2);",
		"ch_tx.send(1).await.unwrap();",
	)
}

func TestGenerateMatch(t *testing.T) {
	out := generate(t, `
fn main() {
    x = 3
    match x {
        1 => { print("one") }
        2..=5 => { print("few") }
        _ => { print("many") }
    }
}
`)
	wantContains(t, out,
		"match x {",
		"1 => {",
		"2..=5 => {",
		"_ => {",
	)
}

func TestGenerateConstsAndInterpolation(t *testing.T) {
	out := generate(t, `
const limit = 10
const greeting = "hey"
fn main() {
    x = limit + 1
    print(greeting)
    print("x is {x}")
}
`)
	wantContains(t, out,
		"const LIMIT: i64 = 10;",
		`const GREETING: &str = "hey";`,
		"let x = (LIMIT + 1);",
		`println!("{}", GREETING);`,
		`println!("x is {}", x);`,
	)
}

func TestGenerateEmptyBracesStayLiteral(t *testing.T) {
	out := generate(t, `
fn main() {
    n = 3
    print("slot {} holds {n}")
    print("just {}")
}
`)
	wantContains(t, out,
		`println!("slot {{}} holds {}", n);`,
		`println!("just {{}}");`,
	)
	if strings.Contains(out, `println!("just {}")`) {
		t.Fatalf("bare braces leaked into a format capture:\n%s", out)
	}
}

func TestGenerateControlFlow(t *testing.T) {
	out := generate(t, `
fn main() {
    total = 0
    for i in 0..5 {
        total = total + i
    }
    while total > 3 {
        total = total - 1
    }
    print(total)
}
`)
	wantContains(t, out,
		"let mut total = 0;",
		"for i in 0..5 {",
		"total = (total + i);",
		"while total > 3 {",
	)
}

func TestGenerateFloatWidening(t *testing.T) {
	out := generate(t, `
fn main() {
    x = 1 + 2.5
    print(x)
}
`)
	wantContains(t, out, "let x = ((1 as f64) + 2.5);")
}

func TestGenerateArrays(t *testing.T) {
	out := generate(t, `
fn main() {
    a = []
    a.push(10)
    b = [1, 2, 3]
    print(b[0])
    print(len(a))
}
`)
	wantContains(t, out,
		"let mut a: Vec<i64> = Vec::new();",
		"a.push(10);",
		"let b = vec![1, 2, 3];",
		`println!("{}", b[(0) as usize]);`,
		`println!("{}", (a.len() as i64));`,
	)
}

func TestGenerateSelect(t *testing.T) {
	out := generate(t, `
fn feed(ch) { ch <- 1 }
fn main() {
    a = chan()
    b = chan()
    spawn feed(a)
    spawn feed(b)
    select {
        case v = await <-a { print(v) }
        case await <-b { print("b") }
    }
}
`)
	wantContains(t, out,
		"tokio::select! {",
		"biased;",
		"Some(v) = a_rx.recv() => {",
		"Some(_) = b_rx.recv() => {",
	)
}
