package ast

import (
	"strings"

	"zinc/internal/source"
)

// Param is a function or method parameter. Zinc parameters are untyped;
// struct methods may carry an optional annotation.
type Param struct {
	Name    string
	Span    source.Span
	TypeAnn string // optional, e.g. "i64", "string"; empty when absent
}

// FuncDecl is a free function or a struct method declaration.
type FuncDecl struct {
	Name     string
	NameSpan source.Span
	Params   []Param
	Body     *Block
	Span     source.Span
}

// StructField is one field of a struct declaration. The field's type is
// inferred from its default value; visibility follows the leading-underscore
// convention.
type StructField struct {
	Name    string
	Span    source.Span
	Default *Expr
}

// IsPrivate reports whether the field name marks it private.
func (f StructField) IsPrivate() bool {
	return strings.HasPrefix(f.Name, "_")
}

// StructDecl is a struct declaration with fields and methods.
type StructDecl struct {
	Name     string
	NameSpan source.Span
	Fields   []StructField
	Methods  []*FuncDecl
	Span     source.Span
}

// Method returns the method declaration with the given name.
func (s *StructDecl) Method(name string) (*FuncDecl, bool) {
	for _, m := range s.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Field returns the field with the given name.
func (s *StructDecl) Field(name string) (StructField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return StructField{}, false
}

// ConstDecl is a global constant declaration. The initializer is restricted
// to a literal expression.
type ConstDecl struct {
	Name     string
	NameSpan source.Span
	Value    *Expr
	Span     source.Span
}

// File is the parsed representation of one source file.
type File struct {
	FileID  source.FileID
	Funcs   []*FuncDecl
	Structs []*StructDecl
	Consts  []*ConstDecl
}

// Func returns the top-level function with the given name.
func (f *File) Func(name string) (*FuncDecl, bool) {
	for _, fn := range f.Funcs {
		if fn.Name == name {
			return fn, true
		}
	}
	return nil, false
}

// Struct returns the struct declaration with the given name.
func (f *File) Struct(name string) (*StructDecl, bool) {
	for _, s := range f.Structs {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Const returns the constant declaration with the given name.
func (f *File) Const(name string) (*ConstDecl, bool) {
	for _, c := range f.Consts {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
