package symbols

import (
	"zinc/internal/ast"
	"zinc/internal/diag"
	"zinc/internal/types"
)

func (r *resolver) inferExpr(inst *Instance, e *ast.Expr) types.TypeID {
	if e == nil {
		return r.bt.Invalid
	}
	switch d := e.Data.(type) {
	case ast.LiteralData:
		return r.record(inst, e, r.literalType(d))
	case ast.IdentData:
		return r.record(inst, e, r.inferIdent(inst, e, d.Name))
	case ast.SelfData:
		if inst.Struct == "" {
			r.errorAt(diag.SemUnresolvedIdentifier, e.Span, "self outside a method")
			return r.record(inst, e, r.bt.Invalid)
		}
		return r.record(inst, e, r.table.Structs[inst.Struct].Type)
	case ast.BinaryData:
		return r.record(inst, e, r.inferBinary(inst, e, d))
	case ast.UnaryData:
		ot := r.inferExpr(inst, d.Operand)
		if r.invalid(ot) {
			return r.record(inst, e, r.bt.Invalid)
		}
		t := r.in.UnaryResult(d.Op, ot)
		if !t.IsValid() {
			r.errorAt(diag.SemTypeMismatch, e.Span,
				"operator %s is not defined for %s", d.Op, r.in.String(ot))
			t = r.bt.Invalid
		}
		return r.record(inst, e, t)
	case ast.GroupData:
		return r.record(inst, e, r.inferExpr(inst, d.Inner))
	case ast.MemberData:
		return r.record(inst, e, r.inferMember(inst, e, d))
	case ast.IndexData:
		return r.record(inst, e, r.inferIndex(inst, e, d))
	case ast.CallData:
		return r.record(inst, e, r.inferCall(inst, e, d))
	case ast.ArrayLitData:
		return r.record(inst, e, r.inferArrayLit(inst, d))
	case ast.StructLitData:
		return r.record(inst, e, r.inferStructLit(inst, e, d))
	case ast.AwaitData:
		inst.IsAsync = true
		return r.record(inst, e, r.inferExpr(inst, d.Operand))
	case ast.RecvData:
		return r.record(inst, e, r.inferRecv(inst, e, d))
	case ast.RangeData:
		lo := r.inferExpr(inst, d.Low)
		hi := r.inferExpr(inst, d.High)
		if (!r.invalid(lo) && lo != r.bt.Int) || (!r.invalid(hi) && hi != r.bt.Int) {
			r.errorAt(diag.SemTypeMismatch, e.Span, "range bounds must be Integer")
		}
		return r.record(inst, e, r.in.Intern(types.MakeArray(r.bt.Int)))
	case ast.LambdaData:
		// Parameter types are fixed by the first call site.
		return r.record(inst, e, r.in.Intern(types.MakeFunc(nil, r.bt.Unresolved)))
	default:
		return r.record(inst, e, r.bt.Invalid)
	}
}

func (r *resolver) inferIdent(inst *Instance, e *ast.Expr, name string) types.TypeID {
	if t, ok := inst.Locals[name]; ok {
		return t
	}
	if c, ok := r.table.Consts[name]; ok {
		return c.Type
	}
	r.errorAt(diag.SemUnresolvedIdentifier, e.Span, "unresolved identifier %s", name)
	return r.bt.Invalid
}

func (r *resolver) inferBinary(inst *Instance, e *ast.Expr, d ast.BinaryData) types.TypeID {
	lt := r.inferExpr(inst, d.Left)
	rt := r.inferExpr(inst, d.Right)
	if r.invalid(lt) || r.invalid(rt) {
		return r.bt.Invalid
	}
	t := r.in.BinaryResult(d.Op, lt, rt)
	if !t.IsValid() {
		r.errorAt(diag.SemTypeMismatch, e.Span,
			"operator %s is not defined for %s and %s",
			d.Op, r.in.String(lt), r.in.String(rt))
		return r.bt.Invalid
	}
	return t
}

func (r *resolver) inferMember(inst *Instance, e *ast.Expr, d ast.MemberData) types.TypeID {
	ot := r.inferExpr(inst, d.Object)
	if r.invalid(ot) {
		return r.bt.Invalid
	}
	t, _ := r.in.Lookup(ot)
	if t.Kind != types.KindStruct {
		r.errorAt(diag.SemTypeMismatch, e.Span,
			"member access on %s", r.in.String(ot))
		return r.bt.Invalid
	}
	info := r.table.Structs[t.Name]
	if info == nil {
		r.errorAt(diag.SemUnresolvedIdentifier, e.Span, "unknown struct %s", t.Name)
		return r.bt.Invalid
	}
	if ft, ok := info.FieldTypes[d.Member]; ok {
		return ft
	}
	r.errorAt(diag.SemUnknownField, e.Span,
		"%s has no field %s", t.Name, d.Member)
	return r.bt.Invalid
}

func (r *resolver) inferIndex(inst *Instance, e *ast.Expr, d ast.IndexData) types.TypeID {
	ot := r.inferExpr(inst, d.Object)
	it := r.inferExpr(inst, d.Index)
	if !r.invalid(it) && it != r.bt.Int {
		r.errorAt(diag.SemTypeMismatch, d.Index.Span,
			"index must be Integer, got %s", r.in.String(it))
	}
	if r.invalid(ot) {
		return r.bt.Invalid
	}
	t, _ := r.in.Lookup(ot)
	if t.Kind != types.KindArray {
		r.errorAt(diag.SemTypeMismatch, e.Span,
			"cannot index %s", r.in.String(ot))
		return r.bt.Invalid
	}
	if !t.Elem.IsValid() {
		return r.bt.Unresolved
	}
	return t.Elem
}

func (r *resolver) inferRecv(inst *Instance, e *ast.Expr, d ast.RecvData) types.TypeID {
	inst.IsAsync = true
	info, ok := r.chanOf(inst, d.Chan)
	if !ok {
		ct := r.inferExpr(inst, d.Chan)
		if !r.invalid(ct) {
			r.errorAt(diag.SemTypeMismatch, e.Span,
				"cannot receive from %s", r.in.String(ct))
		}
		return r.bt.Invalid
	}
	r.inferExpr(inst, d.Chan)
	if name, isIdent := deref(d.Chan).Ident(); isIdent {
		inst.ChanDirs[name] = ChanDirRecv
	}
	if info.Elem.IsValid() {
		return info.Elem
	}
	return r.bt.Unresolved
}

func (r *resolver) inferArrayLit(inst *Instance, d ast.ArrayLitData) types.TypeID {
	elem := r.bt.Unresolved
	for i, el := range d.Elems {
		et := r.inferExpr(inst, el)
		if r.invalid(et) {
			continue
		}
		if i == 0 || elem == r.bt.Unresolved {
			elem = et
		} else if et != elem && et != r.bt.Unresolved {
			r.errorAt(diag.SemTypeMismatch, el.Span,
				"array element type %s differs from %s", r.in.String(et), r.in.String(elem))
		}
	}
	return r.in.Intern(types.MakeArray(elem))
}

func (r *resolver) inferStructLit(inst *Instance, e *ast.Expr, d ast.StructLitData) types.TypeID {
	info := r.table.Structs[d.Name]
	if info == nil {
		r.errorAt(diag.SemUnresolvedIdentifier, e.Span, "unknown struct %s", d.Name)
		return r.bt.Invalid
	}
	for _, f := range d.Fields {
		vt := r.inferExpr(inst, f.Value)
		ft, ok := info.FieldTypes[f.Name]
		if !ok {
			r.errorAt(diag.SemUnknownField, f.Span,
				"%s has no field %s", d.Name, f.Name)
			continue
		}
		r.checkAssignable(f.Span, ft, vt, f.Name)
	}
	return info.Type
}

func (r *resolver) inferCall(inst *Instance, e *ast.Expr, d ast.CallData) types.TypeID {
	callee := deref(d.Callee)
	if callee == nil {
		return r.bt.Invalid
	}
	if callee.Kind == ast.ExprMember {
		return r.inferMethodCall(inst, e, callee.Data.(ast.MemberData), d.Args)
	}
	name, ok := callee.Ident()
	if !ok {
		r.errorAt(diag.SemTypeMismatch, d.Callee.Span, "expression is not callable")
		return r.bt.Invalid
	}

	switch name {
	case "print":
		for _, a := range d.Args {
			r.inferExpr(inst, a)
		}
		return r.bt.Unit
	case "chan":
		return r.inferChanCreate(inst, e, d.Args)
	case "len":
		if len(d.Args) != 1 {
			r.errorAt(diag.SemArgumentCount, e.Span, "len expects 1 argument, got %d", len(d.Args))
			return r.bt.Int
		}
		at := r.inferExpr(inst, d.Args[0])
		k := r.in.Kind(at)
		if !r.invalid(at) && k != types.KindArray && k != types.KindString {
			r.errorAt(diag.SemTypeMismatch, d.Args[0].Span,
				"len is not defined for %s", r.in.String(at))
		}
		return r.bt.Int
	}

	if lambda, isLambda := inst.Lambdas[name]; isLambda {
		return r.inferLambdaCall(inst, e, name, lambda, d.Args)
	}
	if decl, isFunc := r.atl.Funcs[name]; isFunc {
		args, chans := r.inferArgs(inst, d.Args)
		target := r.instantiate(name, decl, "", args, chans, e.Span)
		inst.calls = append(inst.calls, target)
		inst.CallTargets[e] = target
		r.markSendArgs(inst, d.Args, target)
		return target.Result
	}
	if _, isLocal := inst.Locals[name]; isLocal {
		r.errorAt(diag.SemTypeMismatch, e.Span, "%s is not callable", name)
		return r.bt.Invalid
	}
	r.errorAt(diag.SemUnresolvedIdentifier, e.Span, "unresolved identifier %s", name)
	return r.bt.Invalid
}

func (r *resolver) inferChanCreate(inst *Instance, e *ast.Expr, args []*ast.Expr) types.TypeID {
	info := &ChanInfo{Bounded: len(args) > 0}
	if len(args) > 0 {
		capExpr := deref(args[0])
		ct := r.inferExpr(inst, args[0])
		if !r.invalid(ct) && ct != r.bt.Int {
			r.errorAt(diag.SemTypeMismatch, args[0].Span,
				"channel capacity must be Integer, got %s", r.in.String(ct))
		}
		if capExpr != nil && capExpr.Kind == ast.ExprLiteral {
			info.Capacity = capExpr.Data.(ast.LiteralData).Text
		}
		if len(args) > 1 {
			r.errorAt(diag.SemArgumentCount, e.Span, "chan expects at most 1 argument")
		}
	}
	r.exprChans[e] = info
	// The element type stays out of the structural type; channel arguments
	// specialize generically and carry their ChanInfo alongside.
	return r.in.Intern(types.MakeChan(types.NoTypeID, info.Bounded))
}

func (r *resolver) inferLambdaCall(inst *Instance, e *ast.Expr, name string, lambda *ast.Expr, args []*ast.Expr) types.TypeID {
	ld := lambda.Data.(ast.LambdaData)
	argTypes, _ := r.inferArgs(inst, args)
	if len(argTypes) != len(ld.Params) {
		r.errorAt(diag.SemArgumentCount, e.Span,
			"%s expects %d argument(s), got %d", name, len(ld.Params), len(argTypes))
		return r.bt.Invalid
	}
	if sig, ok := inst.LambdaSigs[lambda]; ok {
		for i, at := range argTypes {
			r.checkAssignable(args[i].Span, sig.Params[i], at, ld.Params[i])
		}
		return sig.Result
	}

	// Fix the lambda's signature from this first call site. Parameters may
	// shadow enclosing locals for the duration of the body.
	saved := make(map[string]types.TypeID, len(ld.Params))
	present := make(map[string]bool, len(ld.Params))
	for i, p := range ld.Params {
		if old, ok := inst.Locals[p]; ok {
			saved[p] = old
			present[p] = true
		}
		inst.Locals[p] = argTypes[i]
	}
	result := r.inferExpr(inst, ld.Body)
	for _, p := range ld.Params {
		if present[p] {
			inst.Locals[p] = saved[p]
		} else {
			delete(inst.Locals, p)
		}
	}
	inst.LambdaSigs[lambda] = LambdaSig{Params: argTypes, Result: result}
	return result
}

func (r *resolver) inferMethodCall(inst *Instance, e *ast.Expr, member ast.MemberData, args []*ast.Expr) types.TypeID {
	// Static call through the type name.
	if objName, ok := member.Object.Ident(); ok {
		if info, isStruct := r.table.Structs[objName]; isStruct {
			if _, isLocal := inst.Locals[objName]; !isLocal {
				return r.callStructMethod(inst, e, info, member.Member, args, nil)
			}
		}
	}

	ot := r.inferExpr(inst, member.Object)
	if r.invalid(ot) {
		return r.bt.Invalid
	}
	t, _ := r.in.Lookup(ot)
	switch t.Kind {
	case types.KindStruct:
		info := r.table.Structs[t.Name]
		if info == nil {
			r.errorAt(diag.SemUnresolvedIdentifier, e.Span, "unknown struct %s", t.Name)
			return r.bt.Invalid
		}
		return r.callStructMethod(inst, e, info, member.Member, args, member.Object)
	case types.KindArray:
		return r.inferArrayMethod(inst, e, member, t, args)
	case types.KindString:
		if member.Member == "len" && len(args) == 0 {
			return r.bt.Int
		}
	}
	r.errorAt(diag.SemUnknownMethod, e.Span,
		"%s has no method %s", r.in.String(ot), member.Member)
	return r.bt.Invalid
}

func (r *resolver) callStructMethod(inst *Instance, e *ast.Expr, info *StructInfo, methodName string, args []*ast.Expr, receiver *ast.Expr) types.TypeID {
	m, ok := info.Decl.Method(methodName)
	if !ok {
		r.errorAt(diag.SemUnknownMethod, e.Span,
			"%s has no method %s", info.Decl.Name, methodName)
		return r.bt.Invalid
	}
	if _, classified := info.Methods[methodName]; !classified {
		info.Methods[methodName] = r.classifyMethod(info.Decl, m, make(map[string]bool))
	}
	if receiver != nil && info.Methods[methodName] == MethodMutating {
		r.markRootMutated(inst, receiver)
	}
	argTypes, chans := r.inferArgs(inst, args)
	callee := r.instantiate(info.Decl.Name+"."+methodName, m, info.Decl.Name, argTypes, chans, e.Span)
	inst.calls = append(inst.calls, callee)
	inst.CallTargets[e] = callee
	return callee.Result
}

func (r *resolver) inferArrayMethod(inst *Instance, e *ast.Expr, member ast.MemberData, arr types.Type, args []*ast.Expr) types.TypeID {
	obj := deref(member.Object)
	switch member.Member {
	case "push":
		if len(args) != 1 {
			r.errorAt(diag.SemArgumentCount, e.Span, "push expects 1 argument, got %d", len(args))
			return r.bt.Unit
		}
		vt := r.inferExpr(inst, args[0])
		r.markRootMutated(inst, member.Object)
		if name, ok := obj.Ident(); ok && !r.invalid(vt) && vt != r.bt.Unresolved {
			// An empty literal's element type settles at the first push.
			if arr.Elem == r.bt.Unresolved || !arr.Elem.IsValid() {
				inst.Locals[name] = r.in.Intern(types.MakeArray(vt))
			} else if arr.Elem != vt {
				r.errorAt(diag.SemTypeMismatch, args[0].Span,
					"cannot push %s into %s", r.in.String(vt), r.in.String(inst.Locals[name]))
			}
		}
		return r.bt.Unit
	case "pop":
		r.markRootMutated(inst, member.Object)
		if arr.Elem.IsValid() {
			return arr.Elem
		}
		return r.bt.Unresolved
	case "len":
		return r.bt.Int
	}
	r.errorAt(diag.SemUnknownMethod, e.Span,
		"arrays have no method %s", member.Member)
	return r.bt.Invalid
}
