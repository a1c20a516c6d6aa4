package ast

// WalkExpr visits e and its sub-expressions in preorder. Returning false
// from fn skips the children of the current node.
func WalkExpr(e *Expr, fn func(*Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch d := e.Data.(type) {
	case BinaryData:
		WalkExpr(d.Left, fn)
		WalkExpr(d.Right, fn)
	case UnaryData:
		WalkExpr(d.Operand, fn)
	case GroupData:
		WalkExpr(d.Inner, fn)
	case MemberData:
		WalkExpr(d.Object, fn)
	case IndexData:
		WalkExpr(d.Object, fn)
		WalkExpr(d.Index, fn)
	case CallData:
		WalkExpr(d.Callee, fn)
		for _, a := range d.Args {
			WalkExpr(a, fn)
		}
	case ArrayLitData:
		for _, el := range d.Elems {
			WalkExpr(el, fn)
		}
	case StructLitData:
		for _, f := range d.Fields {
			WalkExpr(f.Value, fn)
		}
	case AwaitData:
		WalkExpr(d.Operand, fn)
	case RecvData:
		WalkExpr(d.Chan, fn)
	case RangeData:
		WalkExpr(d.Low, fn)
		WalkExpr(d.High, fn)
	case LambdaData:
		WalkExpr(d.Body, fn)
	}
}

// WalkBlock visits every statement in the block recursively, then every
// expression inside each visited statement. Either callback may be nil.
// Returning false from stmtFn skips the statement's children.
func WalkBlock(b *Block, stmtFn func(*Stmt) bool, exprFn func(*Expr) bool) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		WalkStmt(s, stmtFn, exprFn)
	}
}

// WalkStmt visits s, its nested blocks, and its expressions.
func WalkStmt(s *Stmt, stmtFn func(*Stmt) bool, exprFn func(*Expr) bool) {
	if s == nil {
		return
	}
	if stmtFn != nil && !stmtFn(s) {
		return
	}
	expr := func(e *Expr) {
		if exprFn != nil {
			WalkExpr(e, exprFn)
		}
	}
	switch d := s.Data.(type) {
	case AssignData:
		expr(d.Target)
		expr(d.Value)
	case ExprStmtData:
		expr(d.Expr)
	case IfData:
		for _, br := range d.Branches {
			expr(br.Cond)
			WalkBlock(br.Body, stmtFn, exprFn)
		}
		WalkBlock(d.Else, stmtFn, exprFn)
	case ForInData:
		expr(d.Iter)
		WalkBlock(d.Body, stmtFn, exprFn)
	case WhileData:
		expr(d.Cond)
		WalkBlock(d.Body, stmtFn, exprFn)
	case LoopData:
		WalkBlock(d.Body, stmtFn, exprFn)
	case MatchData:
		expr(d.Subject)
		for _, arm := range d.Arms {
			expr(arm.Pattern.Lit)
			expr(arm.Pattern.Low)
			expr(arm.Pattern.High)
			WalkBlock(arm.Body, stmtFn, exprFn)
		}
	case SelectData:
		for _, arm := range d.Arms {
			expr(arm.Expr)
			WalkBlock(arm.Body, stmtFn, exprFn)
		}
	case SpawnData:
		expr(d.Callee)
		for _, a := range d.Args {
			expr(a)
		}
	case SendData:
		expr(d.Chan)
		expr(d.Value)
	case ReturnData:
		expr(d.Value)
	}
}
