// Package parser builds the AST from a token stream.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"zinc/internal/ast"
	"zinc/internal/diag"
	"zinc/internal/lexer"
	"zinc/internal/source"
	"zinc/internal/token"
)

// Parser is a recursive-descent parser over a pre-lexed token slice.
type Parser struct {
	file     *source.File
	toks     []token.Token
	pos      int
	reporter diag.Reporter

	// noStructLit suppresses `Name { ... }` struct literals in positions
	// where the brace opens a block (if/while conditions, for-in iterables,
	// match subjects).
	noStructLit bool
}

// New creates a parser over an already tokenized file.
func New(file *source.File, toks []token.Token, reporter diag.Reporter) *Parser {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Parser{file: file, toks: toks, reporter: reporter}
}

// ParseFile lexes and parses a whole source file.
func ParseFile(file *source.File, reporter diag.Reporter) *ast.File {
	toks := lexer.Tokenize(file, reporter)
	return New(file, toks, reporter).Parse()
}

// Parse consumes the token stream and returns the file AST. Errors are
// reported and recovery continues at the next top-level declaration.
func (p *Parser) Parse() *ast.File {
	out := &ast.File{FileID: p.file.ID}
	for !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.KwFn:
			if fn := p.parseFunc(); fn != nil {
				out.Funcs = append(out.Funcs, fn)
			}
		case token.KwStruct:
			if st := p.parseStruct(); st != nil {
				out.Structs = append(out.Structs, st)
			}
		case token.KwConst:
			if c := p.parseConst(); c != nil {
				out.Consts = append(out.Consts, c)
			}
		case token.Invalid:
			// already reported by the lexer
			p.advance()
		default:
			p.errorf(diag.SynUnexpectedToken, p.cur().Span,
				"expected fn, struct or const, found %s", p.cur().Kind)
			p.syncTopLevel()
		}
	}
	return out
}

func (p *Parser) parseFunc() *ast.FuncDecl {
	start := p.cur().Span
	p.advance() // fn
	name, nameSpan, ok := p.expectIdent("function name")
	if !ok {
		p.syncTopLevel()
		return nil
	}
	fn := &ast.FuncDecl{Name: name, NameSpan: nameSpan}
	if !p.expect(token.LParen, diag.SynUnclosedParen) {
		p.syncTopLevel()
		return nil
	}
	fn.Params = p.parseParams()
	fn.Body = p.parseBlock()
	fn.Span = start.Cover(fn.Body.Span)
	return fn
}

func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		var param ast.Param
		if p.at(token.KwSelf) {
			param = ast.Param{Name: "self", Span: p.cur().Span}
			p.advance()
		} else {
			name, span, ok := p.expectIdent("parameter name")
			if !ok {
				p.syncTo(token.RParen, token.LBrace)
				break
			}
			param = ast.Param{Name: name, Span: span}
			if p.at(token.Colon) {
				p.advance()
				ann, _, ok := p.expectIdent("type annotation")
				if !ok {
					break
				}
				param.TypeAnn = ann
			}
		}
		params = append(params, param)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.RParen, diag.SynUnclosedParen)
	return params
}

func (p *Parser) parseStruct() *ast.StructDecl {
	start := p.cur().Span
	p.advance() // struct
	name, nameSpan, ok := p.expectIdent("struct name")
	if !ok {
		p.syncTopLevel()
		return nil
	}
	st := &ast.StructDecl{Name: name, NameSpan: nameSpan}
	if !p.expect(token.LBrace, diag.SynUnclosedBrace) {
		p.syncTopLevel()
		return nil
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.KwFn:
			if m := p.parseFunc(); m != nil {
				st.Methods = append(st.Methods, m)
			}
		case token.Ident, token.Underscore:
			fieldName := p.cur().Text
			fieldSpan := p.cur().Span
			p.advance()
			if !p.expect(token.Assign, diag.SynUnexpectedToken) {
				p.syncTo(token.RBrace, token.KwFn)
				continue
			}
			def := p.parseExpr()
			st.Fields = append(st.Fields, ast.StructField{
				Name:    fieldName,
				Span:    fieldSpan,
				Default: def,
			})
			if p.at(token.Comma) {
				p.advance()
			}
		default:
			p.errorf(diag.SynUnexpectedToken, p.cur().Span,
				"expected field or method, found %s", p.cur().Kind)
			p.syncTo(token.RBrace, token.KwFn)
		}
	}
	end := p.cur().Span
	p.expect(token.RBrace, diag.SynUnclosedBrace)
	st.Span = start.Cover(end)
	return st
}

func (p *Parser) parseConst() *ast.ConstDecl {
	start := p.cur().Span
	p.advance() // const
	name, nameSpan, ok := p.expectIdent("constant name")
	if !ok {
		p.syncTopLevel()
		return nil
	}
	if !p.expect(token.Assign, diag.SynUnexpectedToken) {
		p.syncTopLevel()
		return nil
	}
	value := p.parseExpr()
	if value == nil {
		return nil
	}
	return &ast.ConstDecl{
		Name:     name,
		NameSpan: nameSpan,
		Value:    value,
		Span:     start.Cover(value.Span),
	}
}

// Statements.

func (p *Parser) parseBlock() *ast.Block {
	start := p.cur().Span
	block := &ast.Block{Span: start}
	if !p.expect(token.LBrace, diag.SynUnclosedBrace) {
		return block
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		// An unclosed block eventually runs into the next declaration;
		// stop there so recovery resumes at the top level.
		switch p.cur().Kind {
		case token.KwFn, token.KwStruct, token.KwConst:
			p.errorf(diag.SynUnclosedBrace, block.Span, "unclosed block")
			block.Span = start.Cover(p.cur().Span)
			return block
		}
		before := p.pos
		if stmt := p.parseStmt(); stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		if p.pos == before {
			p.advance()
		}
	}
	end := p.cur().Span
	p.expect(token.RBrace, diag.SynUnclosedBrace)
	block.Span = start.Cover(end)
	return block
}

func (p *Parser) parseStmt() *ast.Stmt {
	tok := p.cur()
	switch tok.Kind {
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseForIn()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwLoop:
		p.advance()
		body := p.parseBlock()
		return &ast.Stmt{Kind: ast.StmtLoop, Span: tok.Span.Cover(body.Span), Data: ast.LoopData{Body: body}}
	case token.KwMatch:
		return p.parseMatch()
	case token.KwSelect:
		return p.parseSelect()
	case token.KwSpawn:
		return p.parseSpawn()
	case token.KwReturn:
		p.advance()
		data := ast.ReturnData{}
		span := tok.Span
		if !p.at(token.RBrace) && !p.at(token.EOF) && !p.startsStmtKeyword() {
			data.Value = p.parseExpr()
			if data.Value != nil {
				span = span.Cover(data.Value.Span)
			}
		}
		return &ast.Stmt{Kind: ast.StmtReturn, Span: span, Data: data}
	case token.KwBreak:
		p.advance()
		return &ast.Stmt{Kind: ast.StmtBreak, Span: tok.Span, Data: ast.BreakData{}}
	case token.KwContinue:
		p.advance()
		return &ast.Stmt{Kind: ast.StmtContinue, Span: tok.Span, Data: ast.ContinueData{}}
	case token.Invalid:
		p.advance()
		return nil
	}

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	switch p.cur().Kind {
	case token.Assign:
		p.advance()
		if !isAssignable(expr) {
			p.errorf(diag.SynUnexpectedToken, expr.Span, "cannot assign to this expression")
		}
		value := p.parseExpr()
		span := expr.Span
		if value != nil {
			span = span.Cover(value.Span)
		}
		return &ast.Stmt{Kind: ast.StmtAssign, Span: span, Data: ast.AssignData{Target: expr, Value: value}}
	case token.LArrow:
		p.advance()
		value := p.parseExpr()
		span := expr.Span
		if value != nil {
			span = span.Cover(value.Span)
		}
		return &ast.Stmt{Kind: ast.StmtSend, Span: span, Data: ast.SendData{Chan: expr, Value: value}}
	}
	return &ast.Stmt{Kind: ast.StmtExpr, Span: expr.Span, Data: ast.ExprStmtData{Expr: expr}}
}

func (p *Parser) parseIf() *ast.Stmt {
	start := p.cur().Span
	data := ast.IfData{}
	end := start
	for {
		p.advance() // if
		cond := p.parseCond()
		body := p.parseBlock()
		data.Branches = append(data.Branches, ast.IfBranch{Cond: cond, Body: body})
		end = body.Span
		if !p.at(token.KwElse) {
			break
		}
		p.advance() // else
		if p.at(token.KwIf) {
			continue
		}
		data.Else = p.parseBlock()
		end = data.Else.Span
		break
	}
	return &ast.Stmt{Kind: ast.StmtIf, Span: start.Cover(end), Data: data}
}

func (p *Parser) parseForIn() *ast.Stmt {
	start := p.cur().Span
	p.advance() // for
	name, nameSpan, ok := p.expectIdent("loop variable")
	if !ok {
		p.syncTo(token.LBrace, token.RBrace)
	}
	p.expect(token.KwIn, diag.SynUnexpectedToken)
	iter := p.parseCond()
	body := p.parseBlock()
	return &ast.Stmt{
		Kind: ast.StmtForIn,
		Span: start.Cover(body.Span),
		Data: ast.ForInData{Var: name, VarSpan: nameSpan, Iter: iter, Body: body},
	}
}

func (p *Parser) parseWhile() *ast.Stmt {
	start := p.cur().Span
	p.advance() // while
	cond := p.parseCond()
	body := p.parseBlock()
	return &ast.Stmt{Kind: ast.StmtWhile, Span: start.Cover(body.Span), Data: ast.WhileData{Cond: cond, Body: body}}
}

func (p *Parser) parseMatch() *ast.Stmt {
	start := p.cur().Span
	p.advance() // match
	subject := p.parseCond()
	data := ast.MatchData{Subject: subject}
	if !p.expect(token.LBrace, diag.SynUnclosedBrace) {
		return &ast.Stmt{Kind: ast.StmtMatch, Span: start, Data: data}
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		pat, ok := p.parsePattern()
		if !ok {
			p.syncTo(token.RBrace, token.FatArrow)
			if !p.at(token.FatArrow) {
				continue
			}
		}
		p.expect(token.FatArrow, diag.SynUnexpectedToken)
		body := p.parseBlock()
		data.Arms = append(data.Arms, ast.MatchArm{Pattern: pat, Body: body})
		if p.at(token.Comma) {
			p.advance()
		}
	}
	end := p.cur().Span
	p.expect(token.RBrace, diag.SynUnclosedBrace)
	return &ast.Stmt{Kind: ast.StmtMatch, Span: start.Cover(end), Data: data}
}

func (p *Parser) parsePattern() (ast.Pattern, bool) {
	if p.at(token.Underscore) {
		pat := ast.Pattern{Kind: ast.PatWildcard, Span: p.cur().Span}
		p.advance()
		return pat, true
	}
	low, ok := p.parsePatternLit()
	if !ok {
		p.errorf(diag.SynBadPattern, p.cur().Span,
			"expected literal, range or _ pattern, found %s", p.cur().Kind)
		return ast.Pattern{}, false
	}
	if p.at(token.DotDot) || p.at(token.DotDotEq) {
		inclusive := p.at(token.DotDotEq)
		p.advance()
		high, ok := p.parsePatternLit()
		if !ok {
			p.errorf(diag.SynBadPattern, p.cur().Span,
				"expected literal as range pattern bound, found %s", p.cur().Kind)
			return ast.Pattern{}, false
		}
		return ast.Pattern{
			Kind:      ast.PatRange,
			Span:      low.Span.Cover(high.Span),
			Low:       low,
			High:      high,
			Inclusive: inclusive,
		}, true
	}
	return ast.Pattern{Kind: ast.PatLiteral, Span: low.Span, Lit: low}, true
}

// parsePatternLit accepts literals with an optional leading minus.
func (p *Parser) parsePatternLit() (*ast.Expr, bool) {
	neg := false
	start := p.cur().Span
	tok := p.cur()
	if tok.Kind == token.Minus {
		neg = true
		p.advance()
		tok = p.cur()
	}
	switch tok.Kind {
	case token.IntLit, token.FloatLit, token.StringLit, token.KwTrue, token.KwFalse, token.KwNil:
		lit := p.parsePrimary()
		if lit == nil {
			return nil, false
		}
		if neg {
			return &ast.Expr{
				Kind: ast.ExprUnary,
				Span: start.Cover(lit.Span),
				Data: ast.UnaryData{Op: ast.UnaryNeg, Operand: lit},
			}, true
		}
		return lit, true
	}
	return nil, false
}

func (p *Parser) parseSelect() *ast.Stmt {
	start := p.cur().Span
	p.advance() // select
	data := ast.SelectData{}
	if !p.expect(token.LBrace, diag.SynUnclosedBrace) {
		return &ast.Stmt{Kind: ast.StmtSelect, Span: start, Data: data}
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if !p.at(token.KwCase) {
			p.errorf(diag.SynBadSelectArm, p.cur().Span,
				"expected case, found %s", p.cur().Kind)
			p.syncTo(token.KwCase, token.RBrace)
			continue
		}
		p.advance() // case
		arm := ast.SelectArm{}
		if p.at(token.Ident) && p.peek(1).Kind == token.Assign {
			arm.Bind = p.cur().Text
			arm.BindSpan = p.cur().Span
			p.advance()
			p.advance() // =
		}
		arm.Expr = p.parseCond()
		if arm.Expr == nil {
			p.errorf(diag.SynBadSelectArm, p.cur().Span, "expected channel operation after case")
			p.syncTo(token.KwCase, token.RBrace)
			continue
		}
		arm.Body = p.parseBlock()
		data.Arms = append(data.Arms, arm)
	}
	end := p.cur().Span
	p.expect(token.RBrace, diag.SynUnclosedBrace)
	return &ast.Stmt{Kind: ast.StmtSelect, Span: start.Cover(end), Data: data}
}

func (p *Parser) parseSpawn() *ast.Stmt {
	start := p.cur().Span
	p.advance() // spawn
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	call, ok := expr.Data.(ast.CallData)
	if expr.Kind != ast.ExprCall || !ok {
		p.errorf(diag.SynUnexpectedToken, expr.Span, "spawn requires a call expression")
		return &ast.Stmt{Kind: ast.StmtExpr, Span: start.Cover(expr.Span), Data: ast.ExprStmtData{Expr: expr}}
	}
	return &ast.Stmt{
		Kind: ast.StmtSpawn,
		Span: start.Cover(expr.Span),
		Data: ast.SpawnData{Callee: call.Callee, Args: call.Args},
	}
}

// Expressions.

// parseCond parses an expression with struct literals suppressed so the
// following `{` opens the statement body.
func (p *Parser) parseCond() *ast.Expr {
	saved := p.noStructLit
	p.noStructLit = true
	expr := p.parseExpr()
	p.noStructLit = saved
	return expr
}

func (p *Parser) parseExpr() *ast.Expr {
	return p.parseRange()
}

func (p *Parser) parseRange() *ast.Expr {
	low := p.parseOr()
	if low == nil {
		return nil
	}
	if p.at(token.DotDot) || p.at(token.DotDotEq) {
		inclusive := p.at(token.DotDotEq)
		p.advance()
		high := p.parseOr()
		if high == nil {
			return nil
		}
		return &ast.Expr{
			Kind: ast.ExprRange,
			Span: low.Span.Cover(high.Span),
			Data: ast.RangeData{Low: low, High: high, Inclusive: inclusive},
		}
	}
	return low
}

func (p *Parser) parseOr() *ast.Expr {
	left := p.parseAnd()
	for left != nil && (p.at(token.OrOr) || p.at(token.KwOr)) {
		p.advance()
		right := p.parseAnd()
		left = binary(ast.BinaryOr, left, right)
	}
	return left
}

func (p *Parser) parseAnd() *ast.Expr {
	left := p.parseEquality()
	for left != nil && (p.at(token.AndAnd) || p.at(token.KwAnd)) {
		p.advance()
		right := p.parseEquality()
		left = binary(ast.BinaryAnd, left, right)
	}
	return left
}

func (p *Parser) parseEquality() *ast.Expr {
	left := p.parseComparison()
	for left != nil {
		var op ast.BinaryOp
		switch p.cur().Kind {
		case token.EqEq:
			op = ast.BinaryEq
		case token.BangEq:
			op = ast.BinaryNe
		default:
			return left
		}
		p.advance()
		left = binary(op, left, p.parseComparison())
	}
	return left
}

func (p *Parser) parseComparison() *ast.Expr {
	left := p.parseAdditive()
	for left != nil {
		var op ast.BinaryOp
		switch p.cur().Kind {
		case token.Lt:
			op = ast.BinaryLt
		case token.LtEq:
			op = ast.BinaryLe
		case token.Gt:
			op = ast.BinaryGt
		case token.GtEq:
			op = ast.BinaryGe
		default:
			return left
		}
		p.advance()
		left = binary(op, left, p.parseAdditive())
	}
	return left
}

func (p *Parser) parseAdditive() *ast.Expr {
	left := p.parseMultiplicative()
	for left != nil {
		var op ast.BinaryOp
		switch p.cur().Kind {
		case token.Plus:
			op = ast.BinaryAdd
		case token.Minus:
			op = ast.BinarySub
		default:
			return left
		}
		p.advance()
		left = binary(op, left, p.parseMultiplicative())
	}
	return left
}

func (p *Parser) parseMultiplicative() *ast.Expr {
	left := p.parseUnary()
	for left != nil {
		var op ast.BinaryOp
		switch p.cur().Kind {
		case token.Star:
			op = ast.BinaryMul
		case token.Slash:
			op = ast.BinaryDiv
		case token.Percent:
			op = ast.BinaryMod
		default:
			return left
		}
		p.advance()
		left = binary(op, left, p.parseUnary())
	}
	return left
}

func (p *Parser) parseUnary() *ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case token.Minus:
		p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.Expr{
			Kind: ast.ExprUnary,
			Span: tok.Span.Cover(operand.Span),
			Data: ast.UnaryData{Op: ast.UnaryNeg, Operand: operand},
		}
	case token.Bang, token.KwNot:
		p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.Expr{
			Kind: ast.ExprUnary,
			Span: tok.Span.Cover(operand.Span),
			Data: ast.UnaryData{Op: ast.UnaryNot, Operand: operand},
		}
	case token.KwAwait:
		p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.Expr{
			Kind: ast.ExprAwait,
			Span: tok.Span.Cover(operand.Span),
			Data: ast.AwaitData{Operand: operand},
		}
	case token.LArrow:
		p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.Expr{
			Kind: ast.ExprRecv,
			Span: tok.Span.Cover(operand.Span),
			Data: ast.RecvData{Chan: operand},
		}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() *ast.Expr {
	expr := p.parsePrimary()
	for expr != nil {
		switch p.cur().Kind {
		case token.LParen:
			p.advance()
			var args []*ast.Expr
			for !p.at(token.RParen) && !p.at(token.EOF) {
				arg := p.parseExprNoRestrict()
				if arg == nil {
					break
				}
				args = append(args, arg)
				if !p.at(token.Comma) {
					break
				}
				p.advance()
			}
			end := p.cur().Span
			p.expect(token.RParen, diag.SynUnclosedParen)
			expr = &ast.Expr{
				Kind: ast.ExprCall,
				Span: expr.Span.Cover(end),
				Data: ast.CallData{Callee: expr, Args: args},
			}
		case token.Dot:
			p.advance()
			name, span, ok := p.expectIdent("member name")
			if !ok {
				return expr
			}
			expr = &ast.Expr{
				Kind: ast.ExprMember,
				Span: expr.Span.Cover(span),
				Data: ast.MemberData{Object: expr, Member: name},
			}
		case token.LBracket:
			p.advance()
			index := p.parseExprNoRestrict()
			end := p.cur().Span
			p.expect(token.RBracket, diag.SynUnclosedBracket)
			expr = &ast.Expr{
				Kind: ast.ExprIndex,
				Span: expr.Span.Cover(end),
				Data: ast.IndexData{Object: expr, Index: index},
			}
		default:
			return expr
		}
	}
	return expr
}

func (p *Parser) parsePrimary() *ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			p.errorf(diag.LexBadNumber, tok.Span, "integer literal out of range: %s", tok.Text)
		}
		return literal(tok.Span, ast.LiteralData{Kind: ast.LitInt, Text: tok.Text, IntValue: v})
	case token.FloatLit:
		p.advance()
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			p.errorf(diag.LexBadNumber, tok.Span, "float literal out of range: %s", tok.Text)
		}
		return literal(tok.Span, ast.LiteralData{Kind: ast.LitFloat, Text: tok.Text, FloatValue: v})
	case token.StringLit:
		p.advance()
		return literal(tok.Span, ast.LiteralData{
			Kind:        ast.LitString,
			Text:        tok.Text,
			StringValue: unquote(tok.Text),
		})
	case token.KwTrue, token.KwFalse:
		p.advance()
		return literal(tok.Span, ast.LiteralData{Kind: ast.LitBool, Text: tok.Text, BoolValue: tok.Kind == token.KwTrue})
	case token.KwNil:
		p.advance()
		return literal(tok.Span, ast.LiteralData{Kind: ast.LitNil, Text: tok.Text})
	case token.KwSelf:
		p.advance()
		return &ast.Expr{Kind: ast.ExprSelf, Span: tok.Span, Data: ast.SelfData{}}
	case token.Ident:
		p.advance()
		if p.at(token.LBrace) && !p.noStructLit {
			return p.parseStructLit(tok)
		}
		return &ast.Expr{Kind: ast.ExprIdent, Span: tok.Span, Data: ast.IdentData{Name: tok.Text}}
	case token.LParen:
		p.advance()
		inner := p.parseExprNoRestrict()
		end := p.cur().Span
		p.expect(token.RParen, diag.SynUnclosedParen)
		if inner == nil {
			return nil
		}
		return &ast.Expr{Kind: ast.ExprGroup, Span: tok.Span.Cover(end), Data: ast.GroupData{Inner: inner}}
	case token.LBracket:
		p.advance()
		var elems []*ast.Expr
		for !p.at(token.RBracket) && !p.at(token.EOF) {
			elem := p.parseExprNoRestrict()
			if elem == nil {
				break
			}
			elems = append(elems, elem)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		end := p.cur().Span
		p.expect(token.RBracket, diag.SynUnclosedBracket)
		return &ast.Expr{Kind: ast.ExprArrayLit, Span: tok.Span.Cover(end), Data: ast.ArrayLitData{Elems: elems}}
	case token.Pipe, token.OrOr:
		return p.parseLambda()
	}
	p.errorf(diag.SynUnexpectedToken, tok.Span, "expected expression, found %s", tok.Kind)
	return nil
}

func (p *Parser) parseStructLit(name token.Token) *ast.Expr {
	p.advance() // {
	data := ast.StructLitData{Name: name.Text}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fieldName, fieldSpan, ok := p.expectIdent("field name")
		if !ok {
			break
		}
		p.expect(token.Colon, diag.SynUnexpectedToken)
		value := p.parseExprNoRestrict()
		data.Fields = append(data.Fields, ast.FieldInit{Name: fieldName, Span: fieldSpan, Value: value})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	end := p.cur().Span
	p.expect(token.RBrace, diag.SynUnclosedBrace)
	return &ast.Expr{Kind: ast.ExprStructLit, Span: name.Span.Cover(end), Data: data}
}

func (p *Parser) parseLambda() *ast.Expr {
	start := p.cur().Span
	var params []string
	if p.at(token.OrOr) {
		// `||` is an empty parameter list lexed as one token
		p.advance()
	} else {
		p.advance() // |
		for !p.at(token.Pipe) && !p.at(token.EOF) {
			name, _, ok := p.expectIdent("lambda parameter")
			if !ok {
				break
			}
			params = append(params, name)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.expect(token.Pipe, diag.SynUnexpectedToken)
	}
	body := p.parseExprNoRestrict()
	if body == nil {
		return nil
	}
	return &ast.Expr{
		Kind: ast.ExprLambda,
		Span: start.Cover(body.Span),
		Data: ast.LambdaData{Params: params, Body: body},
	}
}

// parseExprNoRestrict parses an expression with struct literals re-enabled.
// Nested delimiters (parens, brackets, argument lists) reset the condition
// context.
func (p *Parser) parseExprNoRestrict() *ast.Expr {
	saved := p.noStructLit
	p.noStructLit = false
	expr := p.parseExpr()
	p.noStructLit = saved
	return expr
}

// Helpers.

func binary(op ast.BinaryOp, left, right *ast.Expr) *ast.Expr {
	if left == nil || right == nil {
		return left
	}
	return &ast.Expr{
		Kind: ast.ExprBinary,
		Span: left.Span.Cover(right.Span),
		Data: ast.BinaryData{Op: op, Left: left, Right: right},
	}
}

func literal(span source.Span, data ast.LiteralData) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprLiteral, Span: span, Data: data}
}

func isAssignable(e *ast.Expr) bool {
	switch e.Kind {
	case ast.ExprIdent, ast.ExprMember, ast.ExprIndex:
		return true
	}
	return false
}

// unquote strips the surrounding quotes and decodes escapes. Interpolation
// braces pass through untouched.
func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '{':
			b.WriteByte('{')
		case '}':
			b.WriteByte('}')
		default:
			b.WriteByte('\\')
			b.WriteByte(body[i])
		}
	}
	return b.String()
}

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peek(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(kind token.Kind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) advance() {
	if p.pos+1 < len(p.toks) {
		p.pos++
	}
}

func (p *Parser) expect(kind token.Kind, code diag.Code) bool {
	if p.at(kind) {
		p.advance()
		return true
	}
	p.errorf(code, p.cur().Span, "expected %s, found %s", kind, p.cur().Kind)
	return false
}

func (p *Parser) expectIdent(what string) (string, source.Span, bool) {
	tok := p.cur()
	if tok.Kind != token.Ident {
		p.errorf(diag.SynExpectIdentifier, tok.Span, "expected %s, found %s", what, tok.Kind)
		return "", tok.Span, false
	}
	p.advance()
	return tok.Text, tok.Span, true
}

func (p *Parser) startsStmtKeyword() bool {
	switch p.cur().Kind {
	case token.KwIf, token.KwFor, token.KwWhile, token.KwLoop, token.KwMatch,
		token.KwSelect, token.KwSpawn, token.KwReturn, token.KwBreak, token.KwContinue:
		return true
	}
	return false
}

func (p *Parser) syncTopLevel() {
	for !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.KwFn, token.KwStruct, token.KwConst:
			return
		}
		p.advance()
	}
}

func (p *Parser) syncTo(kinds ...token.Kind) {
	for !p.at(token.EOF) {
		for _, k := range kinds {
			if p.at(k) {
				return
			}
		}
		p.advance()
	}
}

func (p *Parser) errorf(code diag.Code, span source.Span, format string, args ...any) {
	diag.ReportError(p.reporter, code, span, fmt.Sprintf(format, args...))
}
