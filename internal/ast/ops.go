package ast

// BinaryOp enumerates binary operators.
type BinaryOp uint8

const (
	BinaryInvalid BinaryOp = iota
	BinaryAdd
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMod
	BinaryEq
	BinaryNe
	BinaryLt
	BinaryLe
	BinaryGt
	BinaryGe
	BinaryAnd
	BinaryOr
)

func (op BinaryOp) String() string {
	switch op {
	case BinaryAdd:
		return "+"
	case BinarySub:
		return "-"
	case BinaryMul:
		return "*"
	case BinaryDiv:
		return "/"
	case BinaryMod:
		return "%"
	case BinaryEq:
		return "=="
	case BinaryNe:
		return "!="
	case BinaryLt:
		return "<"
	case BinaryLe:
		return "<="
	case BinaryGt:
		return ">"
	case BinaryGe:
		return ">="
	case BinaryAnd:
		return "&&"
	case BinaryOr:
		return "||"
	default:
		return "?"
	}
}

// IsComparison reports whether the operator yields Boolean from two
// same-typed operands.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case BinaryEq, BinaryNe, BinaryLt, BinaryLe, BinaryGt, BinaryGe:
		return true
	}
	return false
}

// IsArithmetic reports whether the operator is numeric arithmetic
// (or string concatenation in the case of BinaryAdd).
func (op BinaryOp) IsArithmetic() bool {
	switch op {
	case BinaryAdd, BinarySub, BinaryMul, BinaryDiv, BinaryMod:
		return true
	}
	return false
}

// IsLogical reports whether the operator requires Boolean operands.
func (op BinaryOp) IsLogical() bool {
	return op == BinaryAnd || op == BinaryOr
}

// UnaryOp enumerates unary operators.
type UnaryOp uint8

const (
	UnaryInvalid UnaryOp = iota
	// UnaryNeg is numeric negation.
	UnaryNeg
	// UnaryNot is logical negation (both `!` and `not`).
	UnaryNot
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "!"
	default:
		return "?"
	}
}
