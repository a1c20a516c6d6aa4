package codegen

import (
	"fmt"
	"strings"

	"zinc/internal/ast"
	"zinc/internal/symbols"
	"zinc/internal/types"
)

func (g *Generator) emitConst(name string, c *symbols.ConstInfo) {
	upper := strings.ToUpper(name)
	value := g.constValue(c.Decl.Value)
	switch g.in.Kind(c.Type) {
	case types.KindString:
		fmt.Fprintf(&g.buf, "const %s: &str = %s;\n", upper, value)
	case types.KindArray:
		elems := constArrayElems(c.Decl.Value)
		t, _ := g.in.Lookup(c.Type)
		fmt.Fprintf(&g.buf, "const %s: [%s; %d] = %s;\n", upper, g.rustType(t.Elem), len(elems), value)
	default:
		fmt.Fprintf(&g.buf, "const %s: %s = %s;\n", upper, g.rustType(c.Type), value)
	}
}

// constValue renders a constant initializer. The symbols pass restricts
// these to literals, so only a handful of shapes can occur.
func (g *Generator) constValue(e *ast.Expr) string {
	switch d := e.Data.(type) {
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
		return d.Op.String() + g.constValue(d.Operand)
	case ast.GroupData:
		return "(" + g.constValue(d.Inner) + ")"
	case ast.ArrayLitData:
		parts := make([]string, len(d.Elems))
		for i, el := range d.Elems {
			parts[i] = g.constValue(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "()"
	}
}

func constArrayElems(e *ast.Expr) []*ast.Expr {
	if d, ok := e.Data.(ast.ArrayLitData); ok {
		return d.Elems
	}
	return nil
}

func (g *Generator) emitStruct(info *symbols.StructInfo) {
	fmt.Fprintf(&g.buf, "struct %s {\n", info.Decl.Name)
	for _, field := range info.Decl.Fields {
		vis := "pub "
		if field.IsPrivate() {
			vis = ""
		}
		fmt.Fprintf(&g.buf, "    %s%s: %s,\n", vis, field.Name, g.rustType(info.FieldTypes[field.Name]))
	}
	g.buf.WriteString("}\n")

	methods := g.methodInstances(info.Decl.Name)
	if len(methods) == 0 {
		return
	}
	fmt.Fprintf(&g.buf, "\nimpl %s {\n", info.Decl.Name)
	for i, inst := range methods {
		if i > 0 {
			g.buf.WriteString("\n")
		}
		g.emitSignature(inst, 1)
		f := &funcEmitter{g: g, inst: inst, indent: 2}
		f.emitBlock(inst.Decl.Body)
		g.buf.WriteString("    }\n")
	}
	g.buf.WriteString("}\n")
}

func (g *Generator) methodInstances(structName string) []*symbols.Instance {
	var out []*symbols.Instance
	for _, inst := range g.table.Order {
		if inst.Struct == structName {
			out = append(out, inst)
		}
	}
	return out
}

func (g *Generator) emitFunc(inst *symbols.Instance) {
	g.emitSignature(inst, 0)
	f := &funcEmitter{g: g, inst: inst, indent: 1}
	f.emitBlock(inst.Decl.Body)
	g.buf.WriteString("}\n")
}

func (g *Generator) emitSignature(inst *symbols.Instance, indent int) {
	pad := strings.Repeat("    ", indent)
	asyncKw := ""
	if inst.IsAsync {
		asyncKw = "async "
	}
	fmt.Fprintf(&g.buf, "%s%sfn %s(%s)%s {\n",
		pad, asyncKw, inst.Mangled, g.paramList(inst), g.returnType(inst))
}

func (g *Generator) paramList(inst *symbols.Instance) string {
	params := inst.Decl.Params
	var parts []string
	if inst.Struct != "" && len(params) > 0 && params[0].Name == "self" {
		params = params[1:]
		switch inst.Method {
		case symbols.MethodMutating:
			parts = append(parts, "&mut self")
		case symbols.MethodReadOnly:
			parts = append(parts, "&self")
		}
		// A declared receiver the body never touches classifies as static;
		// the call sites use the Type::method form, so no receiver here.
	}
	for i, p := range params {
		if i >= len(inst.Params) {
			break
		}
		if g.in.Kind(inst.Params[i]) == types.KindChan {
			info := inst.Chans[p.Name]
			dir := inst.ChanDirs[p.Name]
			t := g.chanParamType(info, dir)
			if dir == symbols.ChanDirRecv {
				parts = append(parts, "mut "+p.Name+": "+t)
			} else {
				parts = append(parts, p.Name+": "+t)
			}
			continue
		}
		decl := p.Name
		if inst.Mutated[p.Name] {
			decl = "mut " + p.Name
		}
		parts = append(parts, decl+": "+g.rustType(inst.Params[i]))
	}
	return strings.Join(parts, ", ")
}

func (g *Generator) returnType(inst *symbols.Instance) string {
	switch g.in.Kind(inst.Result) {
	case types.KindUnit, types.KindNil, types.KindInvalid, types.KindUnresolved:
		return ""
	}
	if inst.Struct != "" {
		if info := g.table.Structs[inst.Struct]; info != nil && inst.Result == info.Type {
			return " -> Self"
		}
	}
	return " -> " + g.rustType(inst.Result)
}
