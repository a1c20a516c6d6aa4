package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a float literal.
	FloatLit
	// StringLit represents a string literal (interpolation markers intact).
	StringLit

	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwLoop represents the 'loop' keyword.
	KwLoop // loop
	// KwMatch represents the 'match' keyword.
	KwMatch // match
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwSpawn represents the 'spawn' keyword.
	KwSpawn // spawn
	// KwSelect represents the 'select' keyword.
	KwSelect // select
	// KwCase represents the 'case' keyword.
	KwCase // case
	// KwAwait represents the 'await' keyword.
	KwAwait // await
	// KwSelf represents the 'self' keyword.
	KwSelf // self
	// KwAnd represents the 'and' keyword.
	KwAnd // and
	// KwOr represents the 'or' keyword.
	KwOr // or
	// KwNot represents the 'not' keyword.
	KwNot // not
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false
	// KwNil represents the 'nil' keyword.
	KwNil // nil

	// Plus represents '+'.
	Plus
	// Minus represents '-'.
	Minus
	// Star represents '*'.
	Star
	// Slash represents '/'.
	Slash
	// Percent represents '%'.
	Percent
	// Assign represents '='.
	Assign
	// EqEq represents '=='.
	EqEq
	// BangEq represents '!='.
	BangEq
	// Lt represents '<'.
	Lt
	// LtEq represents '<='.
	LtEq
	// Gt represents '>'.
	Gt
	// GtEq represents '>='.
	GtEq
	// AndAnd represents '&&'.
	AndAnd
	// OrOr represents '||'.
	OrOr
	// Bang represents '!'.
	Bang
	// DotDot represents '..'.
	DotDot
	// DotDotEq represents '..='.
	DotDotEq
	// LArrow represents the channel operator '<-'.
	LArrow
	// FatArrow represents '=>'.
	FatArrow
	// Dot represents '.'.
	Dot
	// Comma represents ','.
	Comma
	// Colon represents ':'.
	Colon
	// Pipe represents '|'.
	Pipe
	// Underscore represents the wildcard '_'.
	Underscore
	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace
	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
)

var kindNames = map[Kind]string{
	Invalid:    "invalid",
	EOF:        "eof",
	Ident:      "identifier",
	IntLit:     "integer literal",
	FloatLit:   "float literal",
	StringLit:  "string literal",
	KwFn:       "fn",
	KwStruct:   "struct",
	KwConst:    "const",
	KwIf:       "if",
	KwElse:     "else",
	KwFor:      "for",
	KwIn:       "in",
	KwWhile:    "while",
	KwLoop:     "loop",
	KwMatch:    "match",
	KwReturn:   "return",
	KwBreak:    "break",
	KwContinue: "continue",
	KwSpawn:    "spawn",
	KwSelect:   "select",
	KwCase:     "case",
	KwAwait:    "await",
	KwSelf:     "self",
	KwAnd:      "and",
	KwOr:       "or",
	KwNot:      "not",
	KwTrue:     "true",
	KwFalse:    "false",
	KwNil:      "nil",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Assign:     "=",
	EqEq:       "==",
	BangEq:     "!=",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	AndAnd:     "&&",
	OrOr:       "||",
	Bang:       "!",
	DotDot:     "..",
	DotDotEq:   "..=",
	LArrow:     "<-",
	FatArrow:   "=>",
	Dot:        ".",
	Comma:      ",",
	Colon:      ":",
	Pipe:       "|",
	Underscore: "_",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}
