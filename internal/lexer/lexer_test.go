package lexer

import (
	"testing"

	"zinc/internal/diag"
	"zinc/internal/source"
	"zinc/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.zn", []byte(src))
	bag := diag.NewBag(0)
	toks := Tokenize(fs.Get(id), diag.BagReporter{Bag: bag})
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeBasics(t *testing.T) {
	toks, bag := lexAll(t, `fn main() { x = 1 + 2.5 }`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{
		token.KwFn, token.Ident, token.LParen, token.RParen, token.LBrace,
		token.Ident, token.Assign, token.IntLit, token.Plus, token.FloatLit,
		token.RBrace, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeOperators(t *testing.T) {
	toks, bag := lexAll(t, `<- <= < .. ..= => == != && ||`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{
		token.LArrow, token.LtEq, token.Lt, token.DotDot, token.DotDotEq,
		token.FatArrow, token.EqEq, token.BangEq, token.AndAnd, token.OrOr,
		token.EOF,
	}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeRangeKeepsInts(t *testing.T) {
	toks, bag := lexAll(t, `for i in 1..10 {}`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{
		token.KwFor, token.Ident, token.KwIn, token.IntLit, token.DotDot,
		token.IntLit, token.LBrace, token.RBrace, token.EOF,
	}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeStringAndComment(t *testing.T) {
	toks, bag := lexAll(t, "// header\n\"hi {name}\" _")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if toks[0].Kind != token.StringLit || toks[0].Text != `"hi {name}"` {
		t.Fatalf("string token: %v %q", toks[0].Kind, toks[0].Text)
	}
	if toks[1].Kind != token.Underscore {
		t.Fatalf("underscore token: %v", toks[1].Kind)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	toks, bag := lexAll(t, `"oops`)
	if toks[0].Kind != token.Invalid {
		t.Fatalf("expected Invalid token, got %v", toks[0].Kind)
	}
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("code: %v", bag.Items()[0].Code)
	}
}

func TestTokenizeBadNumber(t *testing.T) {
	_, bag := lexAll(t, `12abc`)
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
	if bag.Items()[0].Code != diag.LexBadNumber {
		t.Fatalf("code: %v", bag.Items()[0].Code)
	}
}

func TestTokenizeUnknownChar(t *testing.T) {
	_, bag := lexAll(t, `x = $`)
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
	if bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("code: %v", bag.Items()[0].Code)
	}
}
