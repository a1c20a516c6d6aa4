package token

var keywords = map[string]Kind{
	"fn":       KwFn,
	"struct":   KwStruct,
	"const":    KwConst,
	"if":       KwIf,
	"else":     KwElse,
	"for":      KwFor,
	"in":       KwIn,
	"while":    KwWhile,
	"loop":     KwLoop,
	"match":    KwMatch,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"spawn":    KwSpawn,
	"select":   KwSelect,
	"case":     KwCase,
	"await":    KwAwait,
	"self":     KwSelf,
	"and":      KwAnd,
	"or":       KwOr,
	"not":      KwNot,
	"true":     KwTrue,
	"false":    KwFalse,
	"nil":      KwNil,
}

// LookupKeyword returns the keyword kind for an identifier spelling.
// Keywords are case sensitive; only lowercase spellings are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
