// Package atlas computes the set of declarations reachable from the
// program entry point.
package atlas

import (
	"sort"

	"zinc/internal/ast"
	"zinc/internal/diag"
	"zinc/internal/source"
)

// EntryPoint is the conventional name of the program's start function.
const EntryPoint = "main"

// StructInfo pairs a reachable struct with the set of its methods that
// are actually invoked from reachable code. Methods outside MethodsUsed
// follow the same dead-code policy as free functions.
type StructInfo struct {
	Decl        *ast.StructDecl
	MethodsUsed map[string]bool
}

// Atlas is the reachability result: the closed declaration set plus the
// reference graph. It is read-only after Build returns.
type Atlas struct {
	Entry   *ast.FuncDecl
	Funcs   map[string]*ast.FuncDecl
	Structs map[string]*StructInfo
	Consts  map[string]*ast.ConstDecl

	// Calls maps a declaration identity (function name, Struct.method,
	// struct or constant name) to the identities it references.
	Calls map[string]map[string]bool

	// FuncOrder is the discovery order of reachable functions and
	// methods, used for deterministic downstream iteration.
	FuncOrder []string
}

// EdgesFrom returns the sorted reference targets of the given identity.
func (a *Atlas) EdgesFrom(id string) []string {
	set := a.Calls[id]
	out := make([]string, 0, len(set))
	for target := range set {
		out = append(out, target)
	}
	sort.Strings(out)
	return out
}

// StructNames returns the reachable struct names in sorted order.
func (a *Atlas) StructNames() []string {
	out := make([]string, 0, len(a.Structs))
	for name := range a.Structs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ConstNames returns the reachable constant names in sorted order.
func (a *Atlas) ConstNames() []string {
	out := make([]string, 0, len(a.Consts))
	for name := range a.Consts {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

type workItem struct {
	id     string
	body   *ast.Block
	fields []ast.StructField // set when the item is a struct's defaults
}

type builder struct {
	file     *ast.File
	reporter diag.Reporter
	out      *Atlas

	visited map[string]bool
	// usedMethods holds every method name invoked anywhere in reachable
	// code. Structs discovered later still pick these up.
	usedMethods map[string]bool
	work        []workItem
}

// Build runs the worklist traversal from the entry point. A missing entry
// function is fatal and yields a nil Atlas.
func Build(file *ast.File, reporter diag.Reporter) *Atlas {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	entry, ok := file.Func(EntryPoint)
	if !ok {
		diag.ReportError(reporter, diag.SemMissingEntryPoint, source.Span{File: file.FileID},
			"entry function 'main' is not defined")
		return nil
	}

	b := &builder{
		file:     file,
		reporter: reporter,
		out: &Atlas{
			Entry:   entry,
			Funcs:   make(map[string]*ast.FuncDecl),
			Structs: make(map[string]*StructInfo),
			Consts:  make(map[string]*ast.ConstDecl),
			Calls:   make(map[string]map[string]bool),
		},
		visited:     make(map[string]bool),
		usedMethods: make(map[string]bool),
	}
	b.reachFunc(entry)
	for len(b.work) > 0 {
		item := b.work[0]
		b.work = b.work[1:]
		b.processItem(item)
	}
	return b.out
}

func (b *builder) processItem(item workItem) {
	if item.body != nil {
		b.scanBlock(item.id, item.body)
	}
	for _, f := range item.fields {
		b.scanExpr(item.id, f.Default)
	}
}

func (b *builder) reachFunc(fn *ast.FuncDecl) {
	if b.visited[fn.Name] {
		return
	}
	b.visited[fn.Name] = true
	b.out.Funcs[fn.Name] = fn
	b.out.FuncOrder = append(b.out.FuncOrder, fn.Name)
	b.work = append(b.work, workItem{id: fn.Name, body: fn.Body})
}

func (b *builder) reachStruct(st *ast.StructDecl) {
	if b.visited[st.Name] {
		return
	}
	b.visited[st.Name] = true
	b.out.Structs[st.Name] = &StructInfo{
		Decl:        st,
		MethodsUsed: make(map[string]bool),
	}
	b.work = append(b.work, workItem{id: st.Name, fields: st.Fields})
	// Pick up method names invoked before this struct was discovered.
	for _, m := range st.Methods {
		if b.usedMethods[m.Name] {
			b.reachMethod(st, m)
		}
	}
}

func (b *builder) reachMethod(st *ast.StructDecl, m *ast.FuncDecl) {
	id := st.Name + "." + m.Name
	if b.visited[id] {
		return
	}
	b.visited[id] = true
	b.out.Structs[st.Name].MethodsUsed[m.Name] = true
	b.out.FuncOrder = append(b.out.FuncOrder, id)
	b.work = append(b.work, workItem{id: id, body: m.Body})
}

func (b *builder) reachConst(c *ast.ConstDecl) {
	if b.visited[c.Name] {
		return
	}
	b.visited[c.Name] = true
	b.out.Consts[c.Name] = c
}

// markMethodUsed records a method invocation by name. Every reachable
// struct declaring the name gains the method; structs reached later check
// usedMethods in reachStruct.
func (b *builder) markMethodUsed(name string) {
	b.usedMethods[name] = true
	for _, info := range b.out.Structs {
		if m, ok := info.Decl.Method(name); ok {
			b.reachMethod(info.Decl, m)
		}
	}
}

func (b *builder) addEdge(from, to string) {
	set := b.out.Calls[from]
	if set == nil {
		set = make(map[string]bool)
		b.out.Calls[from] = set
	}
	set[to] = true
}

func (b *builder) scanBlock(from string, block *ast.Block) {
	ast.WalkBlock(block, nil, func(e *ast.Expr) bool {
		b.visit(from, e)
		return true
	})
}

func (b *builder) scanExpr(from string, e *ast.Expr) {
	ast.WalkExpr(e, func(e *ast.Expr) bool {
		b.visit(from, e)
		return true
	})
}

func (b *builder) visit(from string, e *ast.Expr) {
	switch e.Kind {
	case ast.ExprIdent:
		name := e.Data.(ast.IdentData).Name
		if fn, ok := b.file.Func(name); ok {
			b.addEdge(from, name)
			b.reachFunc(fn)
		} else if c, ok := b.file.Const(name); ok {
			b.addEdge(from, name)
			b.reachConst(c)
		}
	case ast.ExprStructLit:
		name := e.Data.(ast.StructLitData).Name
		if st, ok := b.file.Struct(name); ok {
			b.addEdge(from, name)
			b.reachStruct(st)
		}
	case ast.ExprCall:
		data := e.Data.(ast.CallData)
		if data.Callee.Kind != ast.ExprMember {
			return
		}
		member := data.Callee.Data.(ast.MemberData)
		if objName, ok := member.Object.Ident(); ok {
			if st, structOK := b.file.Struct(objName); structOK {
				// Type.method(...) static call.
				b.reachStruct(st)
				if m, methodOK := st.Method(member.Member); methodOK {
					b.addEdge(from, st.Name+"."+m.Name)
					b.reachMethod(st, m)
				}
				return
			}
		}
		// Instance method call; the receiver's struct type is unknown
		// until inference, so track the name for every candidate.
		b.markMethodUsed(member.Member)
	}
}
