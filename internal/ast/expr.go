package ast

import (
	"zinc/internal/source"
)

// ExprKind enumerates expression kinds.
type ExprKind uint8

const (
	// ExprLiteral represents literals (integer, float, string, bool, nil).
	ExprLiteral ExprKind = iota
	// ExprIdent represents a variable, constant, function or struct reference.
	ExprIdent
	// ExprSelf represents the implicit method receiver.
	ExprSelf
	// ExprBinary represents binary operators.
	ExprBinary
	// ExprUnary represents unary operators (-, !, not).
	ExprUnary
	// ExprGroup represents a parenthesized expression.
	ExprGroup
	// ExprMember represents member access (expr.name).
	ExprMember
	// ExprIndex represents indexing (expr[index]).
	ExprIndex
	// ExprCall represents function and method calls.
	ExprCall
	// ExprArrayLit represents array literals ([a, b, c]).
	ExprArrayLit
	// ExprStructLit represents struct instantiation (Name { field: value }).
	ExprStructLit
	// ExprAwait represents an explicit await.
	ExprAwait
	// ExprRecv represents a channel receive (<- ch).
	ExprRecv
	// ExprRange represents range expressions (a..b, a..=b).
	ExprRange
	// ExprLambda represents lambda literals (|x| expr).
	ExprLambda
)

func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprIdent:
		return "Ident"
	case ExprSelf:
		return "Self"
	case ExprBinary:
		return "Binary"
	case ExprUnary:
		return "Unary"
	case ExprGroup:
		return "Group"
	case ExprMember:
		return "Member"
	case ExprIndex:
		return "Index"
	case ExprCall:
		return "Call"
	case ExprArrayLit:
		return "ArrayLit"
	case ExprStructLit:
		return "StructLit"
	case ExprAwait:
		return "Await"
	case ExprRecv:
		return "Recv"
	case ExprRange:
		return "Range"
	case ExprLambda:
		return "Lambda"
	default:
		return "Unknown"
	}
}

// Expr is an expression node. The tree is produced once by the parser and
// never mutated afterwards; resolved types live in per-specialization side
// tables owned by the symbols pass.
type Expr struct {
	Kind ExprKind
	Span source.Span
	Data ExprData
}

// ExprData is the kind-specific payload.
type ExprData interface {
	exprData()
}

// LitKind enumerates literal kinds.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitBool
	LitNil
)

// LiteralData holds data for ExprLiteral.
type LiteralData struct {
	Kind        LitKind
	Text        string // raw spelling, used for numeric emission
	IntValue    int64
	FloatValue  float64
	BoolValue   bool
	StringValue string // decoded, interpolation markers intact
}

func (LiteralData) exprData() {}

// IdentData holds data for ExprIdent.
type IdentData struct {
	Name string
}

func (IdentData) exprData() {}

// SelfData holds data for ExprSelf.
type SelfData struct{}

func (SelfData) exprData() {}

// BinaryData holds data for ExprBinary.
type BinaryData struct {
	Op    BinaryOp
	Left  *Expr
	Right *Expr
}

func (BinaryData) exprData() {}

// UnaryData holds data for ExprUnary.
type UnaryData struct {
	Op      UnaryOp
	Operand *Expr
}

func (UnaryData) exprData() {}

// GroupData holds data for ExprGroup.
type GroupData struct {
	Inner *Expr
}

func (GroupData) exprData() {}

// MemberData holds data for ExprMember.
type MemberData struct {
	Object *Expr
	Member string
}

func (MemberData) exprData() {}

// IndexData holds data for ExprIndex.
type IndexData struct {
	Object *Expr
	Index  *Expr
}

func (IndexData) exprData() {}

// CallData holds data for ExprCall. Method calls use an ExprMember callee.
type CallData struct {
	Callee *Expr
	Args   []*Expr
}

func (CallData) exprData() {}

// ArrayLitData holds data for ExprArrayLit.
type ArrayLitData struct {
	Elems []*Expr
}

func (ArrayLitData) exprData() {}

// FieldInit is a single field initializer in a struct literal.
type FieldInit struct {
	Name  string
	Span  source.Span
	Value *Expr
}

// StructLitData holds data for ExprStructLit.
type StructLitData struct {
	Name   string
	Fields []FieldInit
}

func (StructLitData) exprData() {}

// AwaitData holds data for ExprAwait.
type AwaitData struct {
	Operand *Expr
}

func (AwaitData) exprData() {}

// RecvData holds data for ExprRecv.
type RecvData struct {
	Chan *Expr
}

func (RecvData) exprData() {}

// RangeData holds data for ExprRange.
type RangeData struct {
	Low       *Expr
	High      *Expr
	Inclusive bool
}

func (RangeData) exprData() {}

// LambdaData holds data for ExprLambda.
type LambdaData struct {
	Params []string
	Body   *Expr
}

func (LambdaData) exprData() {}

// Ident returns the identifier name when e is a plain identifier.
func (e *Expr) Ident() (string, bool) {
	if e == nil {
		return "", false
	}
	inner := e
	for inner.Kind == ExprGroup {
		inner = inner.Data.(GroupData).Inner
	}
	if inner.Kind != ExprIdent {
		return "", false
	}
	return inner.Data.(IdentData).Name, true
}
