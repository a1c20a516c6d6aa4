package codegen

import (
	"fmt"
	"strings"

	"zinc/internal/ast"
	"zinc/internal/symbols"
	"zinc/internal/types"
)

// funcEmitter renders one instance body. Expression helpers return
// strings; statement helpers write indented lines into the shared buffer.
type funcEmitter struct {
	g      *Generator
	inst   *symbols.Instance
	indent int
}

func (f *funcEmitter) line(format string, args ...any) {
	f.g.buf.WriteString(strings.Repeat("    ", f.indent))
	fmt.Fprintf(&f.g.buf, format, args...)
	f.g.buf.WriteString("\n")
}

func (f *funcEmitter) emitBlock(b *ast.Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		f.emitStmt(s)
	}
}

func (f *funcEmitter) nested(b *ast.Block) {
	f.indent++
	f.emitBlock(b)
	f.indent--
}

func (f *funcEmitter) emitStmt(s *ast.Stmt) {
	switch d := s.Data.(type) {
	case ast.AssignData:
		f.emitAssign(s, d)
	case ast.ExprStmtData:
		f.line("%s;", f.emitExpr(d.Expr))
	case ast.IfData:
		for i, br := range d.Branches {
			kw := "if"
			if i > 0 {
				kw = "} else if"
			}
			f.line("%s %s {", kw, stripParens(f.emitExpr(br.Cond)))
			f.nested(br.Body)
		}
		if d.Else != nil {
			f.line("} else {")
			f.nested(d.Else)
		}
		f.line("}")
	case ast.ForInData:
		f.emitForIn(d)
	case ast.WhileData:
		f.line("while %s {", stripParens(f.emitExpr(d.Cond)))
		f.nested(d.Body)
		f.line("}")
	case ast.LoopData:
		f.line("loop {")
		f.nested(d.Body)
		f.line("}")
	case ast.MatchData:
		f.emitMatch(d)
	case ast.SelectData:
		f.emitSelect(d)
	case ast.SpawnData:
		f.emitSpawn(s, d)
	case ast.SendData:
		f.emitSend(d)
	case ast.ReturnData:
		if d.Value == nil {
			f.line("return;")
		} else {
			f.line("return %s;", f.cast(d.Value, f.inst.Result))
		}
	case ast.BreakData:
		f.line("break;")
	case ast.ContinueData:
		f.line("continue;")
	}
}

func (f *funcEmitter) emitAssign(s *ast.Stmt, d ast.AssignData) {
	name, isIdent := d.Target.Ident()
	if !isIdent {
		f.line("%s = %s;", f.emitExpr(d.Target), f.emitExpr(d.Value))
		return
	}
	value := deref(d.Value)

	if isChanCreate(value) {
		f.emitChanCreate(name, value)
		return
	}
	if value.Kind == ast.ExprLambda {
		f.emitLambdaBinding(name, value)
		return
	}
	if !f.inst.Declared[s] {
		f.line("%s = %s;", name, f.cast(d.Value, f.inst.Locals[name]))
		return
	}

	binding := "let " + name
	if f.inst.Mutated[name] {
		binding = "let mut " + name
	}
	if lit, ok := value.Data.(ast.ArrayLitData); ok && len(lit.Elems) == 0 {
		// Empty literals need the element type the later pushes settled on.
		f.line("%s: %s = Vec::new();", binding, f.g.rustType(f.inst.Locals[name]))
		return
	}
	f.line("%s = %s;", binding, f.emitExpr(d.Value))
}

func (f *funcEmitter) emitChanCreate(name string, call *ast.Expr) {
	info := f.inst.Chans[name]
	turbofish := ""
	if elem := f.g.chanElem(info); elem != "" {
		turbofish = "::<" + elem + ">"
	}
	if info != nil && info.Bounded {
		capacity := info.Capacity
		if capacity == "" {
			if d, ok := call.Data.(ast.CallData); ok && len(d.Args) > 0 {
				capacity = f.emitExpr(d.Args[0])
			}
		}
		f.line("let (%s_tx, mut %s_rx) = tokio::sync::mpsc::channel%s(%s);", name, name, turbofish, capacity)
		return
	}
	f.line("let (%s_tx, mut %s_rx) = tokio::sync::mpsc::unbounded_channel%s();", name, name, turbofish)
}

func (f *funcEmitter) emitLambdaBinding(name string, lambda *ast.Expr) {
	sig, ok := f.inst.LambdaSigs[lambda]
	if !ok {
		// Never called; an untyped closure would not infer.
		return
	}
	d := lambda.Data.(ast.LambdaData)
	params := make([]string, len(d.Params))
	for i, p := range d.Params {
		params[i] = p + ": " + f.g.rustType(sig.Params[i])
	}
	ret := ""
	if k := f.g.in.Kind(sig.Result); k != types.KindUnit && k != types.KindNil {
		ret = " -> " + f.g.rustType(sig.Result)
	}
	f.line("let %s = |%s|%s { %s };", name, strings.Join(params, ", "), ret, f.emitExpr(d.Body))
}

func (f *funcEmitter) emitForIn(d ast.ForInData) {
	iter := deref(d.Iter)
	if iter.Kind == ast.ExprRange {
		f.line("for %s in %s {", d.Var, f.emitExpr(d.Iter))
		f.nested(d.Body)
		f.line("}")
		return
	}
	if f.g.in.Kind(f.typeOf(d.Iter)) == types.KindChan {
		name, _ := iter.Ident()
		f.line("while let Some(%s) = %s.recv().await {", d.Var, f.chanRx(name))
		f.nested(d.Body)
		f.line("}")
		return
	}
	f.line("for %s in &%s {", d.Var, f.emitExpr(d.Iter))
	f.nested(d.Body)
	f.line("}")
}

func (f *funcEmitter) emitMatch(d ast.MatchData) {
	subject := stripParens(f.emitExpr(d.Subject))
	if f.g.in.Kind(f.typeOf(d.Subject)) == types.KindString {
		subject += ".as_str()"
	}
	f.line("match %s {", subject)
	f.indent++
	for _, arm := range d.Arms {
		f.line("%s => {", f.patString(arm.Pattern))
		f.nested(arm.Body)
		f.line("}")
	}
	f.indent--
	f.line("}")
}

func (f *funcEmitter) patString(p ast.Pattern) string {
	switch p.Kind {
	case ast.PatWildcard:
		return "_"
	case ast.PatRange:
		op := ".."
		if p.Inclusive {
			op = "..="
		}
		return f.patLit(p.Low) + op + f.patLit(p.High)
	default:
		return f.patLit(p.Lit)
	}
}

func (f *funcEmitter) patLit(e *ast.Expr) string {
	switch d := deref(e).Data.(type) {
	case ast.LiteralData:
		switch d.Kind {
		case ast.LitString:
			return `"` + rustEscape(d.StringValue) + `"`
		case ast.LitBool:
			if d.BoolValue {
				return "true"
			}
			return "false"
		default:
			return d.Text
		}
	case ast.UnaryData:
		return d.Op.String() + f.patLit(d.Operand)
	default:
		return "_"
	}
}

func (f *funcEmitter) emitSelect(d ast.SelectData) {
	f.line("tokio::select! {")
	f.indent++
	f.line("biased;")
	for _, arm := range d.Arms {
		recv := selectRecv(arm.Expr)
		if recv == nil {
			continue
		}
		name, _ := deref(recv.Data.(ast.RecvData).Chan).Ident()
		bind := arm.Bind
		if bind == "" {
			bind = "_"
		}
		f.line("Some(%s) = %s.recv() => {", bind, f.chanRx(name))
		f.nested(arm.Body)
		f.line("}")
	}
	f.indent--
	f.line("}")
}

// selectRecv unwraps `await <-ch` down to the receive expression.
func selectRecv(e *ast.Expr) *ast.Expr {
	inner := deref(e)
	if inner.Kind == ast.ExprAwait {
		inner = deref(inner.Data.(ast.AwaitData).Operand)
	}
	if inner.Kind != ast.ExprRecv {
		return nil
	}
	return inner
}

func (f *funcEmitter) emitSpawn(s *ast.Stmt, d ast.SpawnData) {
	target := f.inst.SpawnTargets[s]
	if target == nil {
		return
	}
	f.line("tokio::spawn(%s(%s));", target.Mangled, strings.Join(f.callArgs(d.Args, target), ", "))
}

func (f *funcEmitter) emitSend(d ast.SendData) {
	name, _ := deref(d.Chan).Ident()
	info := f.inst.Chans[name]
	value := f.emitExpr(d.Value)
	if info != nil && info.Elem.IsValid() {
		value = f.cast(d.Value, info.Elem)
	}
	if info != nil && info.Bounded {
		f.line("%s.send(%s).await.unwrap();", f.chanTx(name), value)
		return
	}
	f.line("%s.send(%s).unwrap();", f.chanTx(name), value)
}

func (f *funcEmitter) isParam(name string) bool {
	if f.inst.Decl == nil {
		return false
	}
	for _, p := range f.inst.Decl.Params {
		if p.Name == name {
			return true
		}
	}
	return false
}

// chanTx and chanRx pick the spelling for a channel half: parameters
// already are the right half, locally created channels carry both.
func (f *funcEmitter) chanTx(name string) string {
	if f.isParam(name) {
		return name
	}
	return name + "_tx"
}

func (f *funcEmitter) chanRx(name string) string {
	if f.isParam(name) {
		return name
	}
	return name + "_rx"
}

func (f *funcEmitter) typeOf(e *ast.Expr) types.TypeID {
	return f.inst.ExprTypes[e]
}

func isChanCreate(e *ast.Expr) bool {
	d, ok := e.Data.(ast.CallData)
	if !ok {
		return false
	}
	name, isIdent := d.Callee.Ident()
	return isIdent && name == "chan"
}

func deref(e *ast.Expr) *ast.Expr {
	for e != nil && e.Kind == ast.ExprGroup {
		e = e.Data.(ast.GroupData).Inner
	}
	return e
}

// stripParens removes one redundant outer parenthesis pair, keeping
// conditions free of the grouping emitExpr adds around binary operators.
func stripParens(s string) string {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s
	}
	depth := 0
	for i, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return s
			}
		}
	}
	return s[1 : len(s)-1]
}
