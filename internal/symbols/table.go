// Package symbols performs type inference and per-call-site
// monomorphization over the reachable declaration set.
package symbols

import (
	"strconv"
	"strings"

	"zinc/internal/ast"
	"zinc/internal/types"
)

// MethodKind classifies a struct method by how it uses the receiver.
type MethodKind uint8

const (
	// MethodStatic never references the receiver and is callable as
	// Type.method(...).
	MethodStatic MethodKind = iota
	// MethodReadOnly reads receiver state but never assigns to it.
	MethodReadOnly
	// MethodMutating assigns to the receiver or one of its fields.
	MethodMutating
)

func (k MethodKind) String() string {
	switch k {
	case MethodStatic:
		return "static"
	case MethodReadOnly:
		return "readonly"
	case MethodMutating:
		return "mutating"
	default:
		return "unknown"
	}
}

// ChanDir records how a function uses a channel-typed name.
type ChanDir uint8

const (
	ChanDirNone ChanDir = iota
	ChanDirSend
	ChanDirRecv
)

// ChanInfo carries a channel's element type and capacity. The element type
// starts unset and is fixed by the first send observed anywhere the channel
// flows; every binding of the same channel shares one ChanInfo so a send
// inside a callee types the creator's channel too.
type ChanInfo struct {
	Elem     types.TypeID // NoTypeID until the first send
	Bounded  bool
	Capacity string // literal capacity text for chan(n)
}

// LambdaSig is the concrete signature a lambda acquired at its first
// call site.
type LambdaSig struct {
	Params []types.TypeID
	Result types.TypeID
}

// InstanceKey identifies one specialization: the function identity plus
// the ordered concrete argument types.
type InstanceKey struct {
	Name string
	Args string
}

// MakeKey builds the specialization key for a function identity and
// argument type list.
func MakeKey(name string, args []types.TypeID) InstanceKey {
	if len(args) == 0 {
		return InstanceKey{Name: name}
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = strconv.FormatUint(uint64(a), 10)
	}
	return InstanceKey{Name: name, Args: strings.Join(parts, ",")}
}

// Instance is one specialized instantiation of a function or method. The
// body AST is shared with the declaration; resolved expression types live
// in the ExprTypes side table.
type Instance struct {
	Key     InstanceKey
	Name    string // source identity, e.g. "add" or "Counter.bump"
	Mangled string
	Decl    *ast.FuncDecl

	// Struct is the receiver struct name; empty for free functions.
	Struct string
	Method MethodKind

	Params []types.TypeID // concrete argument types, receiver excluded
	Result types.TypeID

	ExprTypes map[*ast.Expr]types.TypeID
	Locals    map[string]types.TypeID
	// Mutated marks locals that are reassigned, indexed-into for writing,
	// or used as the receiver of a mutating method.
	Mutated  map[string]bool
	Declared map[*ast.Stmt]bool // assignments that introduce their target

	Chans      map[string]*ChanInfo
	ChanDirs   map[string]ChanDir
	LambdaSigs map[*ast.Expr]LambdaSig
	Lambdas    map[string]*ast.Expr // local name bound to a lambda literal

	// CallTargets maps each resolved call expression to the instance it
	// invokes; SpawnTargets does the same for spawn statements. Code
	// generation reads mangled names from here instead of re-inferring.
	CallTargets  map[*ast.Expr]*Instance
	SpawnTargets map[*ast.Stmt]*Instance

	IsAsync bool
	Spawned bool

	calls          []*Instance
	sawValueReturn bool
}

// ParamChan returns the shared channel info for the i-th parameter, if the
// parameter is channel-typed.
func (inst *Instance) ParamChan(i int) (*ChanInfo, bool) {
	if inst.Decl == nil || i >= len(inst.Decl.Params) {
		return nil, false
	}
	info, ok := inst.Chans[inst.Decl.Params[i].Name]
	return info, ok
}

// StructInfo is the resolved shape of a reachable struct: field types
// inferred once from defaults, plus the classification of every method
// that is actually invoked.
type StructInfo struct {
	Decl       *ast.StructDecl
	Type       types.TypeID
	FieldTypes map[string]types.TypeID
	Methods    map[string]MethodKind
}

// ConstInfo is a resolved global constant.
type ConstInfo struct {
	Decl *ast.ConstDecl
	Type types.TypeID
}

// Table is the monomorphization result handed to code generation. It is
// immutable once Resolve returns.
type Table struct {
	Interner  *types.Interner
	Instances map[InstanceKey]*Instance
	Order     []*Instance // creation order; the entry instance is first
	Structs   map[string]*StructInfo
	Consts    map[string]*ConstInfo
	Entry     *Instance
	UsesAsync bool
}

// Lookup returns the instance for a specialization key.
func (t *Table) Lookup(key InstanceKey) (*Instance, bool) {
	inst, ok := t.Instances[key]
	return inst, ok
}
