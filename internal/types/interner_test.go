package types

import (
	"testing"

	"zinc/internal/ast"
)

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Int == NoTypeID || b.Float == NoTypeID || b.String == NoTypeID {
		t.Fatalf("builtins not initialized: %+v", b)
	}
	if in.Kind(b.Int) != KindInt {
		t.Fatalf("expected Integer kind, got %v", in.Kind(b.Int))
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner()
	a1 := in.Intern(MakeArray(in.Builtins().Int))
	a2 := in.Intern(MakeArray(in.Builtins().Int))
	if a1 != a2 {
		t.Fatalf("array types should be deduplicated")
	}
	s1 := in.Intern(MakeStruct("Point"))
	s2 := in.Intern(MakeStruct("Point"))
	if s1 != s2 {
		t.Fatalf("struct types with the same name must be identical")
	}
	if s1 == in.Intern(MakeStruct("Other")) {
		t.Fatalf("struct types with different names must differ")
	}
}

func TestChannelBoundednessAffectsIdentity(t *testing.T) {
	in := NewInterner()
	elem := in.Builtins().Int
	bounded := in.Intern(MakeChan(elem, true))
	unbounded := in.Intern(MakeChan(elem, false))
	if bounded == unbounded {
		t.Fatalf("bounded and unbounded channels must differ")
	}
}

func TestNumericPromotion(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	cases := []struct {
		name        string
		left, right TypeID
		want        TypeID
	}{
		{"int+int", b.Int, b.Int, b.Int},
		{"int+float", b.Int, b.Float, b.Float},
		{"float+int", b.Float, b.Int, b.Float},
		{"float+float", b.Float, b.Float, b.Float},
		{"bool+int", b.Bool, b.Int, NoTypeID},
	}
	for _, tc := range cases {
		if got := in.Promote(tc.left, tc.right); got != tc.want {
			t.Errorf("%s: Promote = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestBinaryResult(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	if got := in.BinaryResult(ast.BinaryAdd, b.String, b.String); got != b.String {
		t.Fatalf("string concat = %s", in.String(got))
	}
	if got := in.BinaryResult(ast.BinaryAdd, b.String, b.Int); got != NoTypeID {
		t.Fatalf("string+int must be rejected, got %s", in.String(got))
	}
	if got := in.BinaryResult(ast.BinaryLt, b.Int, b.Float); got != b.Bool {
		t.Fatalf("numeric comparison must yield Boolean")
	}
	if got := in.BinaryResult(ast.BinaryEq, b.String, b.Bool); got != NoTypeID {
		t.Fatalf("mismatched equality operands must be rejected")
	}
	if got := in.BinaryResult(ast.BinaryAnd, b.Bool, b.Bool); got != b.Bool {
		t.Fatalf("logical and must yield Boolean")
	}
	if got := in.BinaryResult(ast.BinaryOr, b.Int, b.Bool); got != NoTypeID {
		t.Fatalf("logical or requires Boolean operands")
	}
}

func TestUnaryResult(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	if got := in.UnaryResult(ast.UnaryNeg, b.Float); got != b.Float {
		t.Fatalf("negation must preserve the operand type")
	}
	if got := in.UnaryResult(ast.UnaryNeg, b.String); got != NoTypeID {
		t.Fatalf("negation of a String must be rejected")
	}
	if got := in.UnaryResult(ast.UnaryNot, b.Bool); got != b.Bool {
		t.Fatalf("logical not must yield Boolean")
	}
}

func TestSuffix(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	arr := in.Intern(MakeArray(b.Float))
	ch := in.Intern(MakeChan(b.Int, false))
	pt := in.Intern(MakeStruct("Point"))

	for id, want := range map[TypeID]string{
		b.Int:   "i64",
		b.Float: "f64",
		arr:     "arr_f64",
		ch:      "chan_i64",
		pt:      "point",
	} {
		if got := in.Suffix(id); got != want {
			t.Errorf("Suffix(%s) = %q, want %q", in.String(id), got, want)
		}
	}
}
