package symbols

import (
	"fmt"

	"zinc/internal/ast"
	"zinc/internal/atlas"
	"zinc/internal/diag"
	"zinc/internal/source"
	"zinc/internal/types"
)

type resolver struct {
	atl      *atlas.Atlas
	in       *types.Interner
	bt       types.Builtins
	reporter diag.Reporter
	table    *Table

	// exprChans maps chan() creation expressions, and expressions that
	// alias them, to their shared channel info.
	exprChans map[*ast.Expr]*ChanInfo
}

// Resolve runs type inference and monomorphization, seeding from the entry
// function with zero arguments. Diagnostics are batched through the
// reporter; the returned table is only meaningful when no errors were
// reported.
func Resolve(atl *atlas.Atlas, in *types.Interner, reporter diag.Reporter) *Table {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	r := &resolver{
		atl:      atl,
		in:       in,
		bt:       in.Builtins(),
		reporter: reporter,
		table: &Table{
			Interner:  in,
			Instances: make(map[InstanceKey]*Instance),
			Structs:   make(map[string]*StructInfo),
			Consts:    make(map[string]*ConstInfo),
		},
		exprChans: make(map[*ast.Expr]*ChanInfo),
	}

	r.resolveConsts()
	r.resolveStructs()

	r.table.Entry = r.instantiate(atlas.EntryPoint, atl.Entry, "", nil, nil, atl.Entry.NameSpan)
	r.propagateAsync()
	return r.table
}

// resolveConsts infers each reachable constant's type from its literal
// initializer. Constants never specialize.
func (r *resolver) resolveConsts() {
	for _, name := range r.atl.ConstNames() {
		decl := r.atl.Consts[name]
		r.table.Consts[name] = &ConstInfo{
			Decl: decl,
			Type: r.constExprType(decl.Value),
		}
	}
}

// constExprType types the restricted expression grammar allowed outside
// function bodies: literals, unary minus, and references to earlier consts.
func (r *resolver) constExprType(e *ast.Expr) types.TypeID {
	if e == nil {
		return r.bt.Invalid
	}
	switch e.Kind {
	case ast.ExprLiteral:
		return r.literalType(e.Data.(ast.LiteralData))
	case ast.ExprGroup:
		return r.constExprType(e.Data.(ast.GroupData).Inner)
	case ast.ExprUnary:
		d := e.Data.(ast.UnaryData)
		return r.in.UnaryResult(d.Op, r.constExprType(d.Operand))
	case ast.ExprIdent:
		if c, ok := r.table.Consts[e.Data.(ast.IdentData).Name]; ok {
			return c.Type
		}
	case ast.ExprArrayLit:
		d := e.Data.(ast.ArrayLitData)
		elem := r.bt.Unresolved
		if len(d.Elems) > 0 {
			elem = r.constExprType(d.Elems[0])
		}
		return r.in.Intern(types.MakeArray(elem))
	}
	diag.ReportError(r.reporter, diag.SemTypeMismatch, e.Span,
		"constant initializers must be literal expressions")
	return r.bt.Invalid
}

func (r *resolver) literalType(d ast.LiteralData) types.TypeID {
	switch d.Kind {
	case ast.LitInt:
		return r.bt.Int
	case ast.LitFloat:
		return r.bt.Float
	case ast.LitBool:
		return r.bt.Bool
	case ast.LitString:
		return r.bt.String
	default:
		return r.bt.Nil
	}
}

// resolveStructs fixes field types from default values and classifies every
// method the atlas proved reachable. Struct shapes are monomorphic over the
// whole program; only functions specialize.
func (r *resolver) resolveStructs() {
	for _, name := range r.atl.StructNames() {
		decl := r.atl.Structs[name].Decl
		info := &StructInfo{
			Decl:       decl,
			Type:       r.in.Intern(types.MakeStruct(name)),
			FieldTypes: make(map[string]types.TypeID, len(decl.Fields)),
			Methods:    make(map[string]MethodKind),
		}
		for _, f := range decl.Fields {
			info.FieldTypes[f.Name] = r.constExprType(f.Default)
		}
		r.table.Structs[name] = info
	}
	// Classification runs after every struct shape exists because a method
	// can call methods on other structs.
	for _, name := range r.atl.StructNames() {
		info := r.table.Structs[name]
		for methodName := range r.atl.Structs[name].MethodsUsed {
			m, _ := info.Decl.Method(methodName)
			info.Methods[methodName] = r.classifyMethod(info.Decl, m, make(map[string]bool))
		}
	}
}

// classifyMethod scans the body for assignment targets rooted at the
// receiver. Calls to sibling methods through self inherit the callee's
// classification; classification cycles settle on read-only.
func (r *resolver) classifyMethod(st *ast.StructDecl, m *ast.FuncDecl, inProgress map[string]bool) MethodKind {
	hasSelf := false
	for _, p := range m.Params {
		if p.Name == "self" {
			hasSelf = true
		}
	}
	if !hasSelf {
		return MethodStatic
	}
	id := st.Name + "." + m.Name
	if inProgress[id] {
		return MethodReadOnly
	}
	inProgress[id] = true
	defer delete(inProgress, id)

	usesSelf := false
	mutates := false
	ast.WalkBlock(m.Body, func(s *ast.Stmt) bool {
		if s.Kind == ast.StmtAssign && rootedAtSelf(s.Data.(ast.AssignData).Target) {
			mutates = true
		}
		return true
	}, func(e *ast.Expr) bool {
		if e.Kind == ast.ExprSelf {
			usesSelf = true
		}
		if e.Kind == ast.ExprCall {
			call := e.Data.(ast.CallData)
			if call.Callee.Kind == ast.ExprMember {
				member := call.Callee.Data.(ast.MemberData)
				if rootedAtSelf(member.Object) {
					if sibling, ok := st.Method(member.Member); ok {
						if r.classifyMethod(st, sibling, inProgress) == MethodMutating {
							mutates = true
						}
					}
				}
			}
		}
		return true
	})
	switch {
	case mutates:
		return MethodMutating
	case usesSelf:
		return MethodReadOnly
	default:
		return MethodStatic
	}
}

// rootedAtSelf reports whether the expression is self or a member/index
// chain whose base is self.
func rootedAtSelf(e *ast.Expr) bool {
	for e != nil {
		switch e.Kind {
		case ast.ExprSelf:
			return true
		case ast.ExprGroup:
			e = e.Data.(ast.GroupData).Inner
		case ast.ExprMember:
			e = e.Data.(ast.MemberData).Object
		case ast.ExprIndex:
			e = e.Data.(ast.IndexData).Object
		default:
			return false
		}
	}
	return false
}

// instantiate looks up or creates the specialization of identity for the
// given concrete argument types. Re-entering a key that is still resolving
// returns the pending instance; its provisional return type is adopted by
// the caller and settles when the body completes.
func (r *resolver) instantiate(identity string, decl *ast.FuncDecl, structName string, args []types.TypeID, argChans []*ChanInfo, callSpan source.Span) *Instance {
	key := MakeKey(identity, args)
	if inst, ok := r.table.Instances[key]; ok {
		return inst
	}

	params := decl.Params
	if structName != "" && len(params) > 0 && params[0].Name == "self" {
		params = params[1:]
	}
	if len(args) != len(params) {
		diag.ReportError(r.reporter, diag.SemArgumentCount, callSpan,
			fmt.Sprintf("%s expects %d argument(s), got %d", identity, len(params), len(args)))
	}

	inst := &Instance{
		Key:        key,
		Name:       identity,
		Mangled:    r.mangle(identity, decl, args),
		Decl:       decl,
		Struct:     structName,
		Params:     args,
		Result:     r.bt.Unresolved,
		ExprTypes:  make(map[*ast.Expr]types.TypeID),
		Locals:     make(map[string]types.TypeID),
		Mutated:    make(map[string]bool),
		Declared:   make(map[*ast.Stmt]bool),
		Chans:      make(map[string]*ChanInfo),
		ChanDirs:   make(map[string]ChanDir),
		LambdaSigs: make(map[*ast.Expr]LambdaSig),
		Lambdas:    make(map[string]*ast.Expr),

		CallTargets:  make(map[*ast.Expr]*Instance),
		SpawnTargets: make(map[*ast.Stmt]*Instance),
	}
	if structName != "" {
		inst.Method = r.table.Structs[structName].Methods[decl.Name]
	}
	for i, p := range params {
		if i >= len(args) {
			break
		}
		inst.Locals[p.Name] = args[i]
		if r.in.Kind(args[i]) == types.KindChan {
			info := (*ChanInfo)(nil)
			if i < len(argChans) {
				info = argChans[i]
			}
			if info == nil {
				t := r.in.MustLookup(args[i])
				info = &ChanInfo{Elem: t.Elem, Bounded: t.Bounded}
			}
			inst.Chans[p.Name] = info
		}
	}

	r.table.Instances[key] = inst
	r.table.Order = append(r.table.Order, inst)

	r.resolveBlock(inst, decl.Body)

	if inst.Result == r.bt.Unresolved {
		if inst.sawValueReturn {
			diag.ReportError(r.reporter, diag.SemRecursiveSpecialization, decl.NameSpan,
				fmt.Sprintf("cannot resolve the return type of %s: every return path recurses into the same specialization", inst.Mangled))
			inst.Result = r.bt.Invalid
		} else {
			inst.Result = r.bt.Unit
		}
	}
	return inst
}

// mangle derives the generated name: the identity tagged with one suffix
// per argument type. The entry function and zero-argument functions keep
// their source name; methods are scoped by their impl block and mangle
// without the struct prefix.
func (r *resolver) mangle(identity string, decl *ast.FuncDecl, args []types.TypeID) string {
	name := decl.Name
	if identity == atlas.EntryPoint || len(args) == 0 {
		return name
	}
	for _, a := range args {
		name += "_" + r.in.Suffix(a)
	}
	return name
}

// propagateAsync spreads asynchrony along call edges to a fixed point: a
// caller of an async callee must itself await, so it becomes async. The
// entry function is async whenever anything in the program is.
func (r *resolver) propagateAsync() {
	changed := true
	for changed {
		changed = false
		for _, inst := range r.table.Order {
			if inst.IsAsync {
				continue
			}
			for _, callee := range inst.calls {
				if callee.IsAsync {
					inst.IsAsync = true
					changed = true
					break
				}
			}
		}
	}
	for _, inst := range r.table.Order {
		if inst.IsAsync || inst.Spawned {
			r.table.UsesAsync = true
		}
	}
	if r.table.UsesAsync && r.table.Entry != nil {
		r.table.Entry.IsAsync = true
	}
}
