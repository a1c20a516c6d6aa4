package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive types.
type Builtins struct {
	Invalid    TypeID
	Unresolved TypeID
	Unit       TypeID
	Int        TypeID
	Float      TypeID
	Bool       TypeID
	String     TypeID
	Nil        TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Two structurally equal descriptors always intern to the same TypeID, which
// makes specialization keys directly comparable.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
}

// NewInterner constructs an interner seeded with the built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[typeKey]TypeID, 64),
	}
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Unresolved = in.Intern(Type{Kind: KindUnresolved})
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	in.builtins.Float = in.Intern(Type{Kind: KindFloat})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Nil = in.Intern(Type{Kind: KindNil})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	key := makeTypeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[makeTypeKey(t)] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is out of range.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}

// Kind returns the kind of id, or KindInvalid for unknown ids.
func (in *Interner) Kind(id TypeID) Kind {
	t, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return t.Kind
}
