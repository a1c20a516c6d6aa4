package codegen

import (
	"fmt"
	"strings"

	"zinc/internal/ast"
	"zinc/internal/symbols"
	"zinc/internal/types"
)

func (f *funcEmitter) emitExpr(e *ast.Expr) string {
	if e == nil {
		return "()"
	}
	switch d := e.Data.(type) {
	case ast.LiteralData:
		return f.literal(d)
	case ast.IdentData:
		return f.ident(d.Name)
	case ast.SelfData:
		return "self"
	case ast.BinaryData:
		return f.binary(e, d)
	case ast.UnaryData:
		return "(" + d.Op.String() + f.emitExpr(d.Operand) + ")"
	case ast.GroupData:
		return "(" + f.emitExpr(d.Inner) + ")"
	case ast.MemberData:
		return f.emitExpr(d.Object) + "." + d.Member
	case ast.IndexData:
		return fmt.Sprintf("%s[(%s) as usize]", f.emitExpr(d.Object), f.emitExpr(d.Index))
	case ast.CallData:
		return f.emitCall(e, d)
	case ast.ArrayLitData:
		parts := make([]string, len(d.Elems))
		for i, el := range d.Elems {
			parts[i] = f.emitExpr(el)
		}
		return "vec![" + strings.Join(parts, ", ") + "]"
	case ast.StructLitData:
		return f.structLit(d)
	case ast.AwaitData:
		return f.await(d.Operand)
	case ast.RecvData:
		name, _ := deref(d.Chan).Ident()
		return f.chanRx(name) + ".recv().await.unwrap()"
	case ast.RangeData:
		op := ".."
		if d.Inclusive {
			op = "..="
		}
		return f.emitExpr(d.Low) + op + f.emitExpr(d.High)
	case ast.LambdaData:
		return "|" + strings.Join(d.Params, ", ") + "| " + f.emitExpr(d.Body)
	default:
		return "()"
	}
}

func (f *funcEmitter) literal(d ast.LiteralData) string {
	switch d.Kind {
	case ast.LitString:
		if format, args, ok := splitInterp(d.StringValue); ok {
			return fmt.Sprintf("format!(\"%s\", %s)", format, strings.Join(args, ", "))
		}
		return fmt.Sprintf("String::from(\"%s\")", rustEscape(d.StringValue))
	case ast.LitBool:
		if d.BoolValue {
			return "true"
		}
		return "false"
	case ast.LitNil:
		return "()"
	default:
		return d.Text
	}
}

func (f *funcEmitter) ident(name string) string {
	if _, isLocal := f.inst.Locals[name]; !isLocal {
		if _, isConst := f.g.table.Consts[name]; isConst {
			return strings.ToUpper(name)
		}
	}
	return name
}

func (f *funcEmitter) binary(e *ast.Expr, d ast.BinaryData) string {
	left := f.emitExpr(d.Left)
	right := f.emitExpr(d.Right)
	lt := f.g.in.Kind(f.typeOf(d.Left))
	rt := f.g.in.Kind(f.typeOf(d.Right))
	if lt == types.KindInt && rt == types.KindFloat {
		left = "(" + left + " as f64)"
	}
	if rt == types.KindInt && lt == types.KindFloat {
		right = "(" + right + " as f64)"
	}
	if d.Op == ast.BinaryAdd && f.g.in.Kind(f.typeOf(e)) == types.KindString {
		// String + String has no Rust counterpart that consumes neither side.
		return fmt.Sprintf("format!(\"{}{}\", %s, %s)", left, right)
	}
	return fmt.Sprintf("(%s %s %s)", left, d.Op, right)
}

func (f *funcEmitter) structLit(d ast.StructLitData) string {
	parts := make([]string, len(d.Fields))
	for i, field := range d.Fields {
		parts[i] = field.Name + ": " + f.emitExpr(field.Value)
	}
	return d.Name + " { " + strings.Join(parts, ", ") + " }"
}

func (f *funcEmitter) await(operand *ast.Expr) string {
	inner := deref(operand)
	// Receives and async calls already render their own .await.
	if inner.Kind == ast.ExprRecv || inner.Kind == ast.ExprCall {
		return f.emitExpr(operand)
	}
	return f.emitExpr(operand) + ".await"
}

// cast renders e, adding a float widening when the context expects Float
// and the expression resolved to Integer.
func (f *funcEmitter) cast(e *ast.Expr, want types.TypeID) string {
	s := f.emitExpr(e)
	if f.g.in.Kind(want) == types.KindFloat && f.g.in.Kind(f.typeOf(e)) == types.KindInt {
		return "(" + s + " as f64)"
	}
	return s
}

func (f *funcEmitter) emitCall(e *ast.Expr, d ast.CallData) string {
	callee := deref(d.Callee)
	if callee.Kind == ast.ExprMember {
		return f.emitMethodCall(e, callee.Data.(ast.MemberData), d.Args)
	}
	name, _ := callee.Ident()
	switch name {
	case "print":
		return f.emitPrint(d.Args)
	case "len":
		if len(d.Args) == 1 {
			return "(" + f.emitExpr(d.Args[0]) + ".len() as i64)"
		}
		return "0"
	case "chan":
		// Creation is handled at the assignment; a stray chan() still
		// renders something well formed.
		return "tokio::sync::mpsc::unbounded_channel()"
	}
	if lambda, isLambda := f.inst.Lambdas[name]; isLambda {
		sig := f.inst.LambdaSigs[lambda]
		parts := make([]string, len(d.Args))
		for i, a := range d.Args {
			if i < len(sig.Params) {
				parts[i] = f.cast(a, sig.Params[i])
			} else {
				parts[i] = f.emitExpr(a)
			}
		}
		return name + "(" + strings.Join(parts, ", ") + ")"
	}
	target := f.inst.CallTargets[e]
	if target == nil {
		return name + "()"
	}
	call := target.Mangled + "(" + strings.Join(f.callArgs(d.Args, target), ", ") + ")"
	if target.IsAsync {
		call += ".await"
	}
	return call
}

func (f *funcEmitter) emitMethodCall(e *ast.Expr, member ast.MemberData, args []*ast.Expr) string {
	target := f.inst.CallTargets[e]
	if target == nil {
		return f.emitBuiltinMethod(member, args)
	}
	call := target.Mangled + "(" + strings.Join(f.callArgs(args, target), ", ") + ")"
	if target.Method == symbols.MethodStatic {
		call = target.Struct + "::" + call
	} else {
		call = f.emitExpr(member.Object) + "." + call
	}
	if target.IsAsync {
		call += ".await"
	}
	return call
}

// emitBuiltinMethod covers the array and string conveniences that have
// no instance behind them.
func (f *funcEmitter) emitBuiltinMethod(member ast.MemberData, args []*ast.Expr) string {
	obj := f.emitExpr(member.Object)
	switch member.Member {
	case "push":
		if len(args) == 1 {
			elem := types.NoTypeID
			if t, ok := f.g.in.Lookup(f.typeOf(member.Object)); ok {
				elem = t.Elem
			}
			return obj + ".push(" + f.cast(args[0], elem) + ")"
		}
	case "pop":
		return obj + ".pop().unwrap()"
	case "len":
		return "(" + obj + ".len() as i64)"
	}
	return obj + "." + member.Member + "()"
}

// callArgs renders argument lists, substituting the matching channel half
// for channel-typed arguments and widening integer literals where the
// specialization expects Float.
func (f *funcEmitter) callArgs(args []*ast.Expr, target *symbols.Instance) []string {
	params := target.Decl.Params
	if target.Struct != "" && len(params) > 0 && params[0].Name == "self" {
		params = params[1:]
	}
	parts := make([]string, len(args))
	for i, a := range args {
		if name, ok := deref(a).Ident(); ok && f.inst.Chans[name] != nil &&
			f.g.in.Kind(f.typeOf(a)) == types.KindChan {
			if f.isParam(name) {
				parts[i] = name
				continue
			}
			dir := symbols.ChanDirSend
			if i < len(params) {
				dir = target.ChanDirs[params[i].Name]
			}
			if dir == symbols.ChanDirRecv {
				parts[i] = name + "_rx"
			} else {
				parts[i] = name + "_tx"
			}
			continue
		}
		if i < len(target.Params) {
			parts[i] = f.cast(a, target.Params[i])
		} else {
			parts[i] = f.emitExpr(a)
		}
	}
	return parts
}

func (f *funcEmitter) emitPrint(args []*ast.Expr) string {
	if len(args) == 0 {
		return "println!()"
	}
	arg := deref(args[0])
	if lit, ok := arg.Data.(ast.LiteralData); ok && lit.Kind == ast.LitString {
		if format, interpArgs, ok := splitInterp(lit.StringValue); ok {
			return fmt.Sprintf("println!(\"%s\", %s)", format, strings.Join(interpArgs, ", "))
		}
		return fmt.Sprintf("println!(\"%s\")", formatEscape(lit.StringValue))
	}
	return fmt.Sprintf("println!(\"{}\", %s)", f.emitExpr(args[0]))
}
