package ast

import (
	"zinc/internal/source"
)

// StmtKind enumerates statement kinds.
type StmtKind uint8

const (
	// StmtAssign represents `target = value`. Declaration versus
	// reassignment is decided during inference, not parsing.
	StmtAssign StmtKind = iota
	// StmtExpr represents a standalone expression statement.
	StmtExpr
	// StmtIf represents if / else-if / else chains.
	StmtIf
	// StmtForIn represents `for x in iterable { ... }`.
	StmtForIn
	// StmtWhile represents `while cond { ... }`.
	StmtWhile
	// StmtLoop represents an unconditional `loop { ... }`.
	StmtLoop
	// StmtMatch represents pattern matching.
	StmtMatch
	// StmtSelect represents a multiplexed wait over channel operations.
	StmtSelect
	// StmtSpawn represents `spawn f(args)`.
	StmtSpawn
	// StmtSend represents a channel send `ch <- value`.
	StmtSend
	// StmtReturn represents `return [expr]`.
	StmtReturn
	// StmtBreak represents `break`.
	StmtBreak
	// StmtContinue represents `continue`.
	StmtContinue
)

func (k StmtKind) String() string {
	switch k {
	case StmtAssign:
		return "Assign"
	case StmtExpr:
		return "Expr"
	case StmtIf:
		return "If"
	case StmtForIn:
		return "ForIn"
	case StmtWhile:
		return "While"
	case StmtLoop:
		return "Loop"
	case StmtMatch:
		return "Match"
	case StmtSelect:
		return "Select"
	case StmtSpawn:
		return "Spawn"
	case StmtSend:
		return "Send"
	case StmtReturn:
		return "Return"
	case StmtBreak:
		return "Break"
	case StmtContinue:
		return "Continue"
	default:
		return "Unknown"
	}
}

// Stmt is a statement node.
type Stmt struct {
	Kind StmtKind
	Span source.Span
	Data StmtData
}

// StmtData is the kind-specific payload.
type StmtData interface {
	stmtData()
}

// Block is an ordered list of statements.
type Block struct {
	Stmts []*Stmt
	Span  source.Span
}

// AssignData holds data for StmtAssign. Target is an identifier, member
// access, or index access.
type AssignData struct {
	Target *Expr
	Value  *Expr
}

func (AssignData) stmtData() {}

// ExprStmtData holds data for StmtExpr.
type ExprStmtData struct {
	Expr *Expr
}

func (ExprStmtData) stmtData() {}

// IfBranch is one `if` or `else if` branch.
type IfBranch struct {
	Cond *Expr
	Body *Block
}

// IfData holds data for StmtIf.
type IfData struct {
	Branches []IfBranch
	Else     *Block
}

func (IfData) stmtData() {}

// ForInData holds data for StmtForIn.
type ForInData struct {
	Var     string
	VarSpan source.Span
	Iter    *Expr
	Body    *Block
}

func (ForInData) stmtData() {}

// WhileData holds data for StmtWhile.
type WhileData struct {
	Cond *Expr
	Body *Block
}

func (WhileData) stmtData() {}

// LoopData holds data for StmtLoop.
type LoopData struct {
	Body *Block
}

func (LoopData) stmtData() {}

// PatternKind enumerates match pattern kinds.
type PatternKind uint8

const (
	// PatLiteral matches a single literal value.
	PatLiteral PatternKind = iota
	// PatRange matches `lo..hi` (exclusive) or `lo..=hi` (inclusive).
	PatRange
	// PatWildcard is the `_` catch-all.
	PatWildcard
)

// Pattern is a match arm pattern.
type Pattern struct {
	Kind      PatternKind
	Span      source.Span
	Lit       *Expr // PatLiteral
	Low, High *Expr // PatRange
	Inclusive bool  // PatRange
}

// MatchArm pairs a pattern with its handler block.
type MatchArm struct {
	Pattern Pattern
	Body    *Block
}

// MatchData holds data for StmtMatch.
type MatchData struct {
	Subject *Expr
	Arms    []MatchArm
}

func (MatchData) stmtData() {}

// SelectArm is one `case [name =] await expr { ... }` arm. Arm order is
// significant and preserved through code generation.
type SelectArm struct {
	Bind     string // optional binding for the received value
	BindSpan source.Span
	Expr     *Expr // the awaited channel operation
	Body     *Block
}

// SelectData holds data for StmtSelect.
type SelectData struct {
	Arms []SelectArm
}

func (SelectData) stmtData() {}

// SpawnData holds data for StmtSpawn.
type SpawnData struct {
	Callee *Expr
	Args   []*Expr
}

func (SpawnData) stmtData() {}

// SendData holds data for StmtSend.
type SendData struct {
	Chan  *Expr
	Value *Expr
}

func (SendData) stmtData() {}

// ReturnData holds data for StmtReturn. Value is nil for a bare return.
type ReturnData struct {
	Value *Expr
}

func (ReturnData) stmtData() {}

// BreakData holds data for StmtBreak.
type BreakData struct{}

func (BreakData) stmtData() {}

// ContinueData holds data for StmtContinue.
type ContinueData struct{}

func (ContinueData) stmtData() {}
