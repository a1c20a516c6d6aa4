// Package codegen renders a resolved specialization table as a Rust
// program. Every type decision was made by the symbols pass; this pass
// only walks instance bodies and prints text.
package codegen

import (
	"sort"
	"strings"

	"zinc/internal/symbols"
	"zinc/internal/types"
)

// Generator assembles the output program section by section: imports,
// constants, struct definitions with their impl blocks, specialized
// functions, and the entry function last.
type Generator struct {
	table *symbols.Table
	in    *types.Interner
	bt    types.Builtins
	buf   strings.Builder
}

// Generate renders the full Rust source for a resolved table.
func Generate(table *symbols.Table) string {
	g := &Generator{
		table: table,
		in:    table.Interner,
		bt:    table.Interner.Builtins(),
	}
	g.emitImports()
	g.emitConsts()
	g.emitStructs()
	g.emitFuncs()
	g.emitEntry()
	return g.buf.String()
}

func (g *Generator) emitImports() {
	if g.table.UsesAsync {
		g.buf.WriteString("use tokio;\n\n")
	}
}

func (g *Generator) emitConsts() {
	names := make([]string, 0, len(g.table.Consts))
	for name := range g.table.Consts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		g.emitConst(name, g.table.Consts[name])
	}
	if len(names) > 0 {
		g.buf.WriteString("\n")
	}
}

func (g *Generator) emitStructs() {
	for _, name := range g.structNames() {
		g.emitStruct(g.table.Structs[name])
		g.buf.WriteString("\n")
	}
}

func (g *Generator) emitFuncs() {
	for _, inst := range g.table.Order {
		if inst == g.table.Entry || inst.Struct != "" {
			continue
		}
		g.emitFunc(inst)
		g.buf.WriteString("\n")
	}
}

func (g *Generator) emitEntry() {
	entry := g.table.Entry
	if entry == nil {
		return
	}
	if entry.IsAsync {
		g.buf.WriteString("#[tokio::main]\n")
		g.buf.WriteString("async fn main() {\n")
	} else {
		g.buf.WriteString("fn main() {\n")
	}
	f := &funcEmitter{g: g, inst: entry, indent: 1}
	f.emitBlock(entry.Decl.Body)
	g.buf.WriteString("}\n")
}

// structNames returns reachable struct names in declaration-stable order.
func (g *Generator) structNames() []string {
	names := make([]string, 0, len(g.table.Structs))
	for name := range g.table.Structs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
