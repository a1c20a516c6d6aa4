package types

import (
	"fmt"
	"strconv"
	"strings"
)

// TypeID is a stable handle into the Interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

func (id TypeID) IsValid() bool { return id != NoTypeID }

// Kind enumerates the structural type kinds of the Zinc language.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindUnresolved is the transient placeholder used during inference.
	// It must never survive past the symbols pass.
	KindUnresolved
	// KindUnit is the type of functions that return nothing.
	KindUnit
	KindInt
	KindFloat
	KindBool
	KindString
	KindNil
	KindArray
	KindChan
	KindStruct
	KindFunc
)

// Type is a structural descriptor. Two descriptors are the same type iff all
// populated fields match; the Interner guarantees one TypeID per descriptor.
type Type struct {
	Kind    Kind
	Elem    TypeID // array / channel element
	Bounded bool   // channel created with chan(n)
	Name    string // struct name
	Params  []TypeID
	Result  TypeID
}

func MakeArray(elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem}
}

func MakeChan(elem TypeID, bounded bool) Type {
	return Type{Kind: KindChan, Elem: elem, Bounded: bounded}
}

func MakeStruct(name string) Type {
	return Type{Kind: KindStruct, Name: name}
}

func MakeFunc(params []TypeID, result TypeID) Type {
	return Type{Kind: KindFunc, Params: params, Result: result}
}

// IsNumeric reports whether the kind is Integer or Float.
func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindFloat
}

func (k Kind) String() string {
	switch k {
	case KindUnresolved:
		return "Unresolved"
	case KindUnit:
		return "Unit"
	case KindInt:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Boolean"
	case KindString:
		return "String"
	case KindNil:
		return "Nil"
	case KindArray:
		return "Array"
	case KindChan:
		return "Channel"
	case KindStruct:
		return "Struct"
	case KindFunc:
		return "Function"
	default:
		return "Invalid"
	}
}

// String renders the type named by id for diagnostics.
func (in *Interner) String(id TypeID) string {
	t, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch t.Kind {
	case KindArray:
		return "Array<" + in.String(t.Elem) + ">"
	case KindChan:
		if !t.Elem.IsValid() {
			return "Channel<?>"
		}
		return "Channel<" + in.String(t.Elem) + ">"
	case KindStruct:
		return t.Name
	case KindFunc:
		parts := make([]string, 0, len(t.Params))
		for _, p := range t.Params {
			parts = append(parts, in.String(p))
		}
		return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), in.String(t.Result))
	default:
		return t.Kind.String()
	}
}

// Suffix renders the mangling tag for a type, e.g. add + (Int, Int)
// becomes add_i64_i64.
func (in *Interner) Suffix(id TypeID) string {
	t, ok := in.Lookup(id)
	if !ok {
		return "invalid"
	}
	switch t.Kind {
	case KindInt:
		return "i64"
	case KindFloat:
		return "f64"
	case KindBool:
		return "bool"
	case KindString:
		return "str"
	case KindNil:
		return "nil"
	case KindUnit:
		return "unit"
	case KindArray:
		return "arr_" + in.Suffix(t.Elem)
	case KindChan:
		tag := "chan"
		if t.Bounded {
			tag = "chanb"
		}
		// Channel arguments specialize generically; the element type is
		// carried out of band and omitted from the mangled name.
		if !t.Elem.IsValid() {
			return tag
		}
		return tag + "_" + in.Suffix(t.Elem)
	case KindStruct:
		return strings.ToLower(t.Name)
	case KindFunc:
		return "fn"
	default:
		return "unresolved"
	}
}

// typeKey is the comparable interning key. Params are flattened to a string
// because Go map keys cannot contain slices.
type typeKey struct {
	Kind      Kind
	Elem      TypeID
	Bounded   bool
	Name      string
	ParamsKey string
	Result    TypeID
}

func makeTypeKey(t Type) typeKey {
	key := typeKey{
		Kind:    t.Kind,
		Elem:    t.Elem,
		Bounded: t.Bounded,
		Name:    t.Name,
		Result:  t.Result,
	}
	if len(t.Params) > 0 {
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = strconv.FormatUint(uint64(p), 10)
		}
		key.ParamsKey = strings.Join(parts, ",")
	}
	return key
}
