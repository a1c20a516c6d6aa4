package symbols

import (
	"fmt"

	"zinc/internal/ast"
	"zinc/internal/diag"
	"zinc/internal/source"
	"zinc/internal/types"
)

func (r *resolver) invalid(t types.TypeID) bool {
	return !t.IsValid() || t == r.bt.Invalid
}

func (r *resolver) record(inst *Instance, e *ast.Expr, t types.TypeID) types.TypeID {
	inst.ExprTypes[e] = t
	return t
}

func (r *resolver) errorAt(code diag.Code, span source.Span, format string, args ...any) {
	diag.ReportError(r.reporter, code, span, fmt.Sprintf(format, args...))
}

// deref unwraps grouping parentheses.
func deref(e *ast.Expr) *ast.Expr {
	for e != nil && e.Kind == ast.ExprGroup {
		e = e.Data.(ast.GroupData).Inner
	}
	return e
}

// chanOf finds the shared channel info for an expression, either a chan()
// creation site or a name bound to one.
func (r *resolver) chanOf(inst *Instance, e *ast.Expr) (*ChanInfo, bool) {
	e = deref(e)
	if e == nil {
		return nil, false
	}
	if info, ok := r.exprChans[e]; ok {
		return info, true
	}
	if name, ok := e.Ident(); ok {
		info, ok := inst.Chans[name]
		return info, ok
	}
	return nil, false
}

func (r *resolver) resolveBlock(inst *Instance, block *ast.Block) {
	if block == nil {
		return
	}
	for _, s := range block.Stmts {
		r.resolveStmt(inst, s)
	}
}

func (r *resolver) resolveStmt(inst *Instance, s *ast.Stmt) {
	switch d := s.Data.(type) {
	case ast.AssignData:
		r.resolveAssign(inst, s, d)
	case ast.ExprStmtData:
		r.inferExpr(inst, d.Expr)
	case ast.IfData:
		for _, br := range d.Branches {
			r.requireBool(inst, br.Cond)
			r.resolveBlock(inst, br.Body)
		}
		r.resolveBlock(inst, d.Else)
	case ast.ForInData:
		r.resolveForIn(inst, d)
	case ast.WhileData:
		r.requireBool(inst, d.Cond)
		r.resolveBlock(inst, d.Body)
	case ast.LoopData:
		r.resolveBlock(inst, d.Body)
	case ast.MatchData:
		r.resolveMatch(inst, d)
	case ast.SelectData:
		r.resolveSelect(inst, d)
	case ast.SpawnData:
		r.resolveSpawn(inst, s, d)
	case ast.SendData:
		r.resolveSend(inst, s, d)
	case ast.ReturnData:
		r.resolveReturn(inst, s, d)
	}
}

func (r *resolver) requireBool(inst *Instance, cond *ast.Expr) {
	t := r.inferExpr(inst, cond)
	if r.invalid(t) || t == r.bt.Unresolved {
		return
	}
	if t != r.bt.Bool {
		r.errorAt(diag.SemTypeMismatch, cond.Span,
			"condition must be Boolean, got %s", r.in.String(t))
	}
}

func (r *resolver) resolveAssign(inst *Instance, s *ast.Stmt, d ast.AssignData) {
	value := deref(d.Value)
	vt := r.inferExpr(inst, d.Value)

	target := deref(d.Target)
	switch target.Kind {
	case ast.ExprIdent:
		name := target.Data.(ast.IdentData).Name
		if value != nil && value.Kind == ast.ExprLambda {
			inst.Lambdas[name] = value
		}
		if info, ok := r.chanOf(inst, d.Value); ok {
			inst.Chans[name] = info
		}
		existing, declared := inst.Locals[name]
		if !declared {
			if _, isConst := r.table.Consts[name]; isConst {
				r.errorAt(diag.SemTypeMismatch, target.Span,
					"cannot assign to constant %s", name)
				return
			}
			inst.Locals[name] = vt
			inst.Declared[s] = true
			r.record(inst, target, vt)
			return
		}
		inst.Mutated[name] = true
		r.record(inst, target, existing)
		r.checkAssignable(s.Span, existing, vt, name)
	case ast.ExprMember:
		member := target.Data.(ast.MemberData)
		ft := r.inferExpr(inst, target)
		r.markRootMutated(inst, member.Object)
		r.checkAssignable(s.Span, ft, vt, member.Member)
	case ast.ExprIndex:
		index := target.Data.(ast.IndexData)
		et := r.inferExpr(inst, target)
		r.markRootMutated(inst, index.Object)
		r.checkAssignable(s.Span, et, vt, "element")
	default:
		r.inferExpr(inst, d.Target)
	}
}

// checkAssignable enforces one type per name for the lifetime of a
// specialization. An Unresolved side settles without complaint.
func (r *resolver) checkAssignable(span source.Span, dst, src types.TypeID, what string) {
	if r.invalid(dst) || r.invalid(src) {
		return
	}
	if dst == r.bt.Unresolved || src == r.bt.Unresolved || dst == src {
		return
	}
	r.errorAt(diag.SemTypeMismatch, span,
		"cannot assign %s to %s (%s already has type %s)",
		r.in.String(src), r.in.String(dst), what, r.in.String(dst))
}

// markRootMutated walks a member/index chain to its base identifier and
// marks it mutated so generated code declares it mutable.
func (r *resolver) markRootMutated(inst *Instance, e *ast.Expr) {
	for e != nil {
		e = deref(e)
		switch e.Kind {
		case ast.ExprIdent:
			inst.Mutated[e.Data.(ast.IdentData).Name] = true
			return
		case ast.ExprMember:
			e = e.Data.(ast.MemberData).Object
		case ast.ExprIndex:
			e = e.Data.(ast.IndexData).Object
		default:
			return
		}
	}
}

func (r *resolver) resolveForIn(inst *Instance, d ast.ForInData) {
	iter := deref(d.Iter)
	it := r.inferExpr(inst, d.Iter)

	var elem types.TypeID
	switch {
	case iter != nil && iter.Kind == ast.ExprRange:
		elem = r.bt.Int
	default:
		if info, ok := r.chanOf(inst, d.Iter); ok {
			if name, isIdent := iter.Ident(); isIdent {
				inst.ChanDirs[name] = ChanDirRecv
			}
			inst.IsAsync = true
			elem = info.Elem
			if !elem.IsValid() {
				elem = r.bt.Unresolved
			}
			break
		}
		t, _ := r.in.Lookup(it)
		if t.Kind == types.KindArray {
			elem = t.Elem
		} else if !r.invalid(it) {
			r.errorAt(diag.SemTypeMismatch, d.Iter.Span,
				"cannot iterate over %s", r.in.String(it))
			elem = r.bt.Invalid
		} else {
			elem = r.bt.Invalid
		}
	}

	if existing, ok := inst.Locals[d.Var]; ok {
		r.checkAssignable(d.VarSpan, existing, elem, d.Var)
	} else {
		inst.Locals[d.Var] = elem
	}
	r.resolveBlock(inst, d.Body)
}

func (r *resolver) resolveMatch(inst *Instance, d ast.MatchData) {
	st := r.inferExpr(inst, d.Subject)
	for _, arm := range d.Arms {
		switch arm.Pattern.Kind {
		case ast.PatLiteral:
			pt := r.inferExpr(inst, arm.Pattern.Lit)
			if !r.invalid(st) && !r.invalid(pt) && st != r.bt.Unresolved && st != pt {
				r.errorAt(diag.SemTypeMismatch, arm.Pattern.Span,
					"pattern type %s does not match subject type %s",
					r.in.String(pt), r.in.String(st))
			}
		case ast.PatRange:
			lo := r.inferExpr(inst, arm.Pattern.Low)
			hi := r.inferExpr(inst, arm.Pattern.High)
			if (!r.invalid(lo) && lo != r.bt.Int) || (!r.invalid(hi) && hi != r.bt.Int) {
				r.errorAt(diag.SemTypeMismatch, arm.Pattern.Span,
					"range pattern bounds must be Integer")
			}
			if !r.invalid(st) && st != r.bt.Unresolved && st != r.bt.Int {
				r.errorAt(diag.SemTypeMismatch, arm.Pattern.Span,
					"range pattern requires an Integer subject, got %s", r.in.String(st))
			}
		}
		r.resolveBlock(inst, arm.Body)
	}
}

func (r *resolver) resolveSelect(inst *Instance, d ast.SelectData) {
	inst.IsAsync = true
	for _, arm := range d.Arms {
		expr := deref(arm.Expr)
		if expr != nil && expr.Kind == ast.ExprAwait {
			expr = deref(expr.Data.(ast.AwaitData).Operand)
		}
		if expr == nil || expr.Kind != ast.ExprRecv {
			if arm.Expr != nil {
				r.errorAt(diag.SemTypeMismatch, arm.Expr.Span,
					"select arms must await a channel receive")
			}
			r.resolveBlock(inst, arm.Body)
			continue
		}
		elem := r.inferExpr(inst, arm.Expr)
		if arm.Bind != "" {
			if existing, ok := inst.Locals[arm.Bind]; ok {
				r.checkAssignable(arm.BindSpan, existing, elem, arm.Bind)
			} else {
				inst.Locals[arm.Bind] = elem
			}
		}
		r.resolveBlock(inst, arm.Body)
	}
}

func (r *resolver) resolveSpawn(inst *Instance, s *ast.Stmt, d ast.SpawnData) {
	callee := deref(d.Callee)
	name, ok := callee.Ident()
	if !ok {
		r.errorAt(diag.SemUnresolvedIdentifier, d.Callee.Span,
			"spawn requires a named function")
		return
	}
	decl, known := r.atl.Funcs[name]
	if !known {
		r.errorAt(diag.SemUnresolvedIdentifier, d.Callee.Span,
			"unresolved identifier %s", name)
		return
	}
	args, chans := r.inferArgs(inst, d.Args)
	spawned := r.instantiate(name, decl, "", args, chans, s.Span)
	spawned.IsAsync = true
	spawned.Spawned = true
	// Spawning requires a live task runtime, so the spawner runs async too.
	inst.IsAsync = true
	inst.calls = append(inst.calls, spawned)
	inst.SpawnTargets[s] = spawned
	r.markSendArgs(inst, d.Args, spawned)
}

func (r *resolver) resolveSend(inst *Instance, s *ast.Stmt, d ast.SendData) {
	vt := r.inferExpr(inst, d.Value)
	info, ok := r.chanOf(inst, d.Chan)
	if !ok {
		ct := r.inferExpr(inst, d.Chan)
		if !r.invalid(ct) {
			r.errorAt(diag.SemTypeMismatch, d.Chan.Span,
				"cannot send on %s", r.in.String(ct))
		}
		return
	}
	r.inferExpr(inst, d.Chan)
	if name, isIdent := deref(d.Chan).Ident(); isIdent {
		if inst.ChanDirs[name] == ChanDirNone {
			inst.ChanDirs[name] = ChanDirSend
		}
	}
	inst.IsAsync = true
	if !info.Elem.IsValid() && !r.invalid(vt) && vt != r.bt.Unresolved {
		info.Elem = vt
	} else if info.Elem.IsValid() {
		r.checkAssignable(s.Span, info.Elem, vt, "channel element")
	}
}

func (r *resolver) resolveReturn(inst *Instance, s *ast.Stmt, d ast.ReturnData) {
	if d.Value == nil {
		if inst.Result != r.bt.Unresolved && inst.Result != r.bt.Unit {
			r.errorAt(diag.SemTypeMismatch, s.Span,
				"bare return in a function returning %s", r.in.String(inst.Result))
		}
		return
	}
	vt := r.inferExpr(inst, d.Value)
	inst.sawValueReturn = true
	if r.invalid(vt) {
		return
	}
	switch {
	case inst.Result == r.bt.Unresolved:
		inst.Result = vt
	case vt == r.bt.Unresolved:
		// A recursive call into this same specialization; it adopts the
		// already-fixed return type.
	case vt != inst.Result:
		r.errorAt(diag.SemTypeMismatch, s.Span,
			"return type mismatch: %s vs %s", r.in.String(vt), r.in.String(inst.Result))
	}
}

// inferArgs types each argument and collects shared channel info for
// channel-typed arguments, keyed by position.
func (r *resolver) inferArgs(inst *Instance, args []*ast.Expr) ([]types.TypeID, []*ChanInfo) {
	ts := make([]types.TypeID, len(args))
	chans := make([]*ChanInfo, len(args))
	for i, a := range args {
		ts[i] = r.inferExpr(inst, a)
		if info, ok := r.chanOf(inst, a); ok {
			chans[i] = info
		}
	}
	return ts, chans
}

// markSendArgs records the direction of channel arguments at a call site
// based on how the callee uses the corresponding parameter.
func (r *resolver) markSendArgs(inst *Instance, args []*ast.Expr, callee *Instance) {
	params := callee.Decl.Params
	if callee.Struct != "" && len(params) > 0 && params[0].Name == "self" {
		params = params[1:]
	}
	for i, a := range args {
		if i >= len(params) {
			break
		}
		name, ok := deref(a).Ident()
		if !ok {
			continue
		}
		if _, isChan := inst.Chans[name]; !isChan {
			continue
		}
		if dir, ok := callee.ChanDirs[params[i].Name]; ok && inst.ChanDirs[name] == ChanDirNone {
			inst.ChanDirs[name] = dir
		}
	}
}
