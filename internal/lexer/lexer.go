// Package lexer turns Zinc source text into tokens.
package lexer

import (
	"fmt"
	"unicode/utf8"

	"zinc/internal/diag"
	"zinc/internal/source"
	"zinc/internal/token"
)

// Lexer produces tokens for a single file. Diagnostics go to the reporter;
// erroneous input yields an Invalid token and scanning continues.
type Lexer struct {
	file     *source.File
	src      []byte
	off      uint32
	reporter diag.Reporter
}

// New creates a lexer over the given file.
func New(file *source.File, reporter diag.Reporter) *Lexer {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Lexer{
		file:     file,
		src:      file.Content,
		reporter: reporter,
	}
}

// Tokenize scans the whole file including the trailing EOF token.
func Tokenize(file *source.File, reporter diag.Reporter) []token.Token {
	l := New(file, reporter)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Next returns the next token.
func (l *Lexer) Next() token.Token {
	l.skipTrivia()
	start := l.off
	if l.eof() {
		return l.make(token.EOF, start)
	}

	c := l.src[l.off]
	switch {
	case isIdentStart(c):
		return l.scanIdent(start)
	case isDigit(c):
		return l.scanNumber(start)
	case c == '"':
		return l.scanString(start)
	default:
		return l.scanOperator(start)
	}
}

func (l *Lexer) scanIdent(start uint32) token.Token {
	for !l.eof() && isIdentPart(l.src[l.off]) {
		l.off++
	}
	text := string(l.src[start:l.off])
	if text == "_" {
		return l.make(token.Underscore, start)
	}
	if kind, ok := token.LookupKeyword(text); ok {
		return l.make(kind, start)
	}
	return l.make(token.Ident, start)
}

func (l *Lexer) scanNumber(start uint32) token.Token {
	for !l.eof() && isDigit(l.src[l.off]) {
		l.off++
	}
	kind := token.IntLit
	// A '.' only belongs to the number when a digit follows; `1..5` keeps
	// the range operator intact.
	if !l.eof() && l.src[l.off] == '.' && l.off+1 < uint32(len(l.src)) && isDigit(l.src[l.off+1]) {
		l.off++
		for !l.eof() && isDigit(l.src[l.off]) {
			l.off++
		}
		kind = token.FloatLit
	}
	if !l.eof() && isIdentStart(l.src[l.off]) {
		for !l.eof() && isIdentPart(l.src[l.off]) {
			l.off++
		}
		span := l.span(start)
		diag.ReportError(l.reporter, diag.LexBadNumber, span,
			fmt.Sprintf("malformed number literal %q", l.text(span)))
		return token.Token{Kind: token.Invalid, Span: span, Text: l.text(span)}
	}
	return l.make(kind, start)
}

func (l *Lexer) scanString(start uint32) token.Token {
	l.off++ // opening quote
	for !l.eof() {
		switch l.src[l.off] {
		case '"':
			l.off++
			return l.make(token.StringLit, start)
		case '\\':
			l.off++
			if !l.eof() {
				l.off++
			}
		case '\n':
			span := l.span(start)
			diag.ReportError(l.reporter, diag.LexUnterminatedString, span, "unterminated string literal")
			return token.Token{Kind: token.Invalid, Span: span, Text: l.text(span)}
		default:
			l.off++
		}
	}
	span := l.span(start)
	diag.ReportError(l.reporter, diag.LexUnterminatedString, span, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: span, Text: l.text(span)}
}

func (l *Lexer) scanOperator(start uint32) token.Token {
	two := l.peek2()
	switch two {
	case "==":
		l.off += 2
		return l.make(token.EqEq, start)
	case "!=":
		l.off += 2
		return l.make(token.BangEq, start)
	case "<=":
		l.off += 2
		return l.make(token.LtEq, start)
	case ">=":
		l.off += 2
		return l.make(token.GtEq, start)
	case "&&":
		l.off += 2
		return l.make(token.AndAnd, start)
	case "||":
		l.off += 2
		return l.make(token.OrOr, start)
	case "<-":
		l.off += 2
		return l.make(token.LArrow, start)
	case "=>":
		l.off += 2
		return l.make(token.FatArrow, start)
	case "..":
		l.off += 2
		if !l.eof() && l.src[l.off] == '=' {
			l.off++
			return l.make(token.DotDotEq, start)
		}
		return l.make(token.DotDot, start)
	}

	c := l.src[l.off]
	single := map[byte]token.Kind{
		'+': token.Plus,
		'-': token.Minus,
		'*': token.Star,
		'/': token.Slash,
		'%': token.Percent,
		'=': token.Assign,
		'<': token.Lt,
		'>': token.Gt,
		'!': token.Bang,
		'.': token.Dot,
		',': token.Comma,
		':': token.Colon,
		'|': token.Pipe,
		'(': token.LParen,
		')': token.RParen,
		'{': token.LBrace,
		'}': token.RBrace,
		'[': token.LBracket,
		']': token.RBracket,
	}
	if kind, ok := single[c]; ok {
		l.off++
		return l.make(kind, start)
	}

	r, size := utf8.DecodeRune(l.src[l.off:])
	l.off += uint32(size)
	span := l.span(start)
	diag.ReportError(l.reporter, diag.LexUnknownChar, span,
		fmt.Sprintf("unknown character %q", r))
	return token.Token{Kind: token.Invalid, Span: span, Text: l.text(span)}
}

// skipTrivia consumes whitespace and // line comments.
func (l *Lexer) skipTrivia() {
	for !l.eof() {
		c := l.src[l.off]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.off++
		case c == '/' && l.off+1 < uint32(len(l.src)) && l.src[l.off+1] == '/':
			for !l.eof() && l.src[l.off] != '\n' {
				l.off++
			}
		default:
			return
		}
	}
}

func (l *Lexer) eof() bool {
	return l.off >= uint32(len(l.src))
}

func (l *Lexer) peek2() string {
	if l.off+2 > uint32(len(l.src)) {
		return ""
	}
	return string(l.src[l.off : l.off+2])
}

func (l *Lexer) span(start uint32) source.Span {
	return source.Span{File: l.file.ID, Start: start, End: l.off}
}

func (l *Lexer) text(span source.Span) string {
	return string(l.src[span.Start:span.End])
}

func (l *Lexer) make(kind token.Kind, start uint32) token.Token {
	span := l.span(start)
	return token.Token{Kind: kind, Span: span, Text: l.text(span)}
}

func isIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
