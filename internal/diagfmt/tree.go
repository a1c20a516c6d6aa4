package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"zinc/internal/ast"
	"zinc/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatASTPretty dumps the parse tree of a file with box-drawing
// connectors, one declaration per top-level branch.
func FormatASTPretty(w io.Writer, file *ast.File, fs *source.FileSet, opts PrettyOpts) {
	header := "File"
	if fs != nil {
		if f := fs.Get(file.FileID); f != nil {
			header = formatPath(f.Path, opts.PathMode)
		}
	}
	root := &treeNode{label: header}
	for _, c := range file.Consts {
		root.children = append(root.children, constNode(c))
	}
	for _, s := range file.Structs {
		root.children = append(root.children, structNode(s))
	}
	for _, fn := range file.Funcs {
		root.children = append(root.children, funcNode(fn))
	}
	writeTree(w, root, "")
}

func writeTree(w io.Writer, node *treeNode, prefix string) {
	fmt.Fprintln(w, node.label)
	for i, child := range node.children {
		connector, childPrefix := "├─ ", prefix+"│  "
		if i == len(node.children)-1 {
			connector, childPrefix = "└─ ", prefix+"   "
		}
		fmt.Fprint(w, prefix+connector)
		writeTree(w, child, childPrefix)
	}
}

func constNode(c *ast.ConstDecl) *treeNode {
	return &treeNode{
		label:    fmt.Sprintf("Const %s", c.Name),
		children: []*treeNode{exprNode(c.Value)},
	}
}

func structNode(s *ast.StructDecl) *treeNode {
	node := &treeNode{label: fmt.Sprintf("Struct %s", s.Name)}
	for _, f := range s.Fields {
		vis := "pub"
		if f.IsPrivate() {
			vis = "private"
		}
		field := &treeNode{label: fmt.Sprintf("Field %s (%s)", f.Name, vis)}
		if f.Default != nil {
			field.children = append(field.children, exprNode(f.Default))
		}
		node.children = append(node.children, field)
	}
	for _, m := range s.Methods {
		node.children = append(node.children, funcNode(m))
	}
	return node
}

func funcNode(fn *ast.FuncDecl) *treeNode {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Name
		if p.TypeAnn != "" {
			params[i] += ": " + p.TypeAnn
		}
	}
	node := &treeNode{label: fmt.Sprintf("Fn %s(%s)", fn.Name, strings.Join(params, ", "))}
	node.children = append(node.children, blockNodes(fn.Body)...)
	return node
}

func blockNodes(b *ast.Block) []*treeNode {
	if b == nil {
		return nil
	}
	nodes := make([]*treeNode, 0, len(b.Stmts))
	for _, s := range b.Stmts {
		nodes = append(nodes, stmtNode(s))
	}
	return nodes
}

func stmtNode(s *ast.Stmt) *treeNode {
	node := &treeNode{label: s.Kind.String()}
	switch d := s.Data.(type) {
	case ast.AssignData:
		node.children = append(node.children, exprNode(d.Target), exprNode(d.Value))
	case ast.ExprStmtData:
		node.children = append(node.children, exprNode(d.Expr))
	case ast.IfData:
		for _, br := range d.Branches {
			branch := &treeNode{label: "Branch", children: []*treeNode{exprNode(br.Cond)}}
			branch.children = append(branch.children, blockNodes(br.Body)...)
			node.children = append(node.children, branch)
		}
		if d.Else != nil {
			node.children = append(node.children, &treeNode{label: "Else", children: blockNodes(d.Else)})
		}
	case ast.ForInData:
		node.label = fmt.Sprintf("ForIn %s", d.Var)
		node.children = append(node.children, exprNode(d.Iter))
		node.children = append(node.children, blockNodes(d.Body)...)
	case ast.WhileData:
		node.children = append(node.children, exprNode(d.Cond))
		node.children = append(node.children, blockNodes(d.Body)...)
	case ast.LoopData:
		node.children = append(node.children, blockNodes(d.Body)...)
	case ast.MatchData:
		node.children = append(node.children, exprNode(d.Subject))
		for _, arm := range d.Arms {
			node.children = append(node.children, &treeNode{
				label:    "Arm " + patternLabel(arm.Pattern),
				children: blockNodes(arm.Body),
			})
		}
	case ast.SelectData:
		for _, arm := range d.Arms {
			label := "Case"
			if arm.Bind != "" {
				label = "Case " + arm.Bind
			}
			caseNode := &treeNode{label: label, children: []*treeNode{exprNode(arm.Expr)}}
			caseNode.children = append(caseNode.children, blockNodes(arm.Body)...)
			node.children = append(node.children, caseNode)
		}
	case ast.SpawnData:
		node.children = append(node.children, exprNode(d.Callee))
		for _, a := range d.Args {
			node.children = append(node.children, exprNode(a))
		}
	case ast.SendData:
		node.children = append(node.children, exprNode(d.Chan), exprNode(d.Value))
	case ast.ReturnData:
		if d.Value != nil {
			node.children = append(node.children, exprNode(d.Value))
		}
	}
	return node
}

func exprNode(e *ast.Expr) *treeNode {
	if e == nil {
		return &treeNode{label: "<nil>"}
	}
	node := &treeNode{label: e.Kind.String()}
	switch d := e.Data.(type) {
	case ast.LiteralData:
		node.label = fmt.Sprintf("Literal %s", d.Text)
	case ast.IdentData:
		node.label = fmt.Sprintf("Ident %s", d.Name)
	case ast.BinaryData:
		node.label = fmt.Sprintf("Binary %s", d.Op)
		node.children = append(node.children, exprNode(d.Left), exprNode(d.Right))
	case ast.UnaryData:
		node.label = fmt.Sprintf("Unary %s", d.Op)
		node.children = append(node.children, exprNode(d.Operand))
	case ast.GroupData:
		node.children = append(node.children, exprNode(d.Inner))
	case ast.MemberData:
		node.label = fmt.Sprintf("Member .%s", d.Member)
		node.children = append(node.children, exprNode(d.Object))
	case ast.IndexData:
		node.children = append(node.children, exprNode(d.Object), exprNode(d.Index))
	case ast.CallData:
		node.children = append(node.children, exprNode(d.Callee))
		for _, a := range d.Args {
			node.children = append(node.children, exprNode(a))
		}
	case ast.ArrayLitData:
		for _, el := range d.Elems {
			node.children = append(node.children, exprNode(el))
		}
	case ast.StructLitData:
		node.label = fmt.Sprintf("StructLit %s", d.Name)
		for _, f := range d.Fields {
			node.children = append(node.children, &treeNode{
				label:    "Field " + f.Name,
				children: []*treeNode{exprNode(f.Value)},
			})
		}
	case ast.AwaitData:
		node.children = append(node.children, exprNode(d.Operand))
	case ast.RecvData:
		node.children = append(node.children, exprNode(d.Chan))
	case ast.RangeData:
		if d.Inclusive {
			node.label = "Range ..="
		} else {
			node.label = "Range .."
		}
		node.children = append(node.children, exprNode(d.Low), exprNode(d.High))
	case ast.LambdaData:
		node.label = fmt.Sprintf("Lambda |%s|", strings.Join(d.Params, ", "))
		node.children = append(node.children, exprNode(d.Body))
	}
	return node
}

func patternLabel(p ast.Pattern) string {
	switch p.Kind {
	case ast.PatWildcard:
		return "_"
	case ast.PatRange:
		op := ".."
		if p.Inclusive {
			op = "..="
		}
		return exprText(p.Low) + op + exprText(p.High)
	default:
		return exprText(p.Lit)
	}
}

func exprText(e *ast.Expr) string {
	if e == nil {
		return "?"
	}
	switch d := e.Data.(type) {
	case ast.LiteralData:
		return d.Text
	case ast.IdentData:
		return d.Name
	default:
		return e.Kind.String()
	}
}
