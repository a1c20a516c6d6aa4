package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Syntactic
	SynUnexpectedToken  Code = 2001
	SynExpectIdentifier Code = 2002
	SynUnclosedBrace    Code = 2003
	SynUnclosedParen    Code = 2004
	SynUnclosedBracket  Code = 2005
	SynBadPattern       Code = 2006
	SynBadSelectArm     Code = 2007

	// Semantic (atlas + symbols)
	SemMissingEntryPoint       Code = 3001
	SemUnresolvedIdentifier    Code = 3002
	SemTypeMismatch            Code = 3003
	SemUnknownField            Code = 3004
	SemUnknownMethod           Code = 3005
	SemRecursiveSpecialization Code = 3006
	SemArgumentCount           Code = 3007
)

func (c Code) String() string {
	switch c {
	case LexUnknownChar:
		return "LexUnknownChar"
	case LexUnterminatedString:
		return "LexUnterminatedString"
	case LexBadNumber:
		return "LexBadNumber"
	case SynUnexpectedToken:
		return "SynUnexpectedToken"
	case SynExpectIdentifier:
		return "SynExpectIdentifier"
	case SynUnclosedBrace:
		return "SynUnclosedBrace"
	case SynUnclosedParen:
		return "SynUnclosedParen"
	case SynUnclosedBracket:
		return "SynUnclosedBracket"
	case SynBadPattern:
		return "SynBadPattern"
	case SynBadSelectArm:
		return "SynBadSelectArm"
	case SemMissingEntryPoint:
		return "MissingEntryPoint"
	case SemUnresolvedIdentifier:
		return "UnresolvedIdentifier"
	case SemTypeMismatch:
		return "TypeMismatch"
	case SemUnknownField:
		return "UnknownField"
	case SemUnknownMethod:
		return "UnknownMethod"
	case SemRecursiveSpecialization:
		return "RecursiveSpecializationCycle"
	case SemArgumentCount:
		return "ArgumentCount"
	default:
		return fmt.Sprintf("ZC%04d", uint16(c))
	}
}
