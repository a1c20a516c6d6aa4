package types

import "zinc/internal/ast"

// Promote implements numeric promotion for arithmetic operands: two
// Integers stay Integer, any Float operand promotes the result to Float.
// Non-numeric or mismatched pairs yield NoTypeID.
func (in *Interner) Promote(left, right TypeID) TypeID {
	lk, rk := in.Kind(left), in.Kind(right)
	if !lk.IsNumeric() || !rk.IsNumeric() {
		return NoTypeID
	}
	if lk == KindFloat || rk == KindFloat {
		return in.builtins.Float
	}
	return in.builtins.Int
}

// BinaryResult computes the result type of a binary operation, or NoTypeID
// when the operand types are incompatible with the operator.
//
// During inference an Unresolved operand (a provisional recursive return
// type) adopts the other operand instead of failing; the specialization that
// produced it is re-checked once its return type settles.
func (in *Interner) BinaryResult(op ast.BinaryOp, left, right TypeID) TypeID {
	lk, rk := in.Kind(left), in.Kind(right)
	if lk == KindUnresolved {
		left, lk = right, rk
	}
	if rk == KindUnresolved {
		right, rk = left, lk
	}
	switch {
	case op.IsArithmetic():
		if op == ast.BinaryAdd && lk == KindString && rk == KindString {
			return in.builtins.String
		}
		return in.Promote(left, right)
	case op.IsComparison():
		if left == right || (lk.IsNumeric() && rk.IsNumeric()) {
			return in.builtins.Bool
		}
		return NoTypeID
	case op.IsLogical():
		if lk == KindBool && rk == KindBool {
			return in.builtins.Bool
		}
		return NoTypeID
	default:
		return NoTypeID
	}
}

// UnaryResult computes the result type of a unary operation.
func (in *Interner) UnaryResult(op ast.UnaryOp, operand TypeID) TypeID {
	k := in.Kind(operand)
	switch op {
	case ast.UnaryNeg:
		if k.IsNumeric() {
			return operand
		}
	case ast.UnaryNot:
		if k == KindBool {
			return in.builtins.Bool
		}
	}
	return NoTypeID
}
