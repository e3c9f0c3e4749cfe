package transcode

import (
	"cmp"
	"fmt"
	"slices"
)

const (
	// headerSize is the inline size of a vector, string or table
	// header: a uint64 count followed by a uint64 presence marker.
	headerSize = 16
	// envelopeSize is the size of an envelope: a uint32 byte count, a
	// uint32 handle count and a uint64 presence marker.
	envelopeSize = 16
	// xunionSize is the inline size of a union in the extensible
	// encoding: a uint32 ordinal, 4 reserved bytes and an envelope.
	xunionSize = 8 + envelopeSize
	// pointerSize is the inline size of a presence marker.
	pointerSize = 8
	handleSize  = 4
)

var (
	headerLayout  = layout{headerSize, 8}
	pointerLayout = layout{pointerSize, 8}
	xunionLayout  = layout{xunionSize, 8}
)

func alignTo(n, align uint32) uint32 {
	return (n + align - 1) / align * align
}

// mustBeDefined panics if t can't be used inline yet, because it was
// declared but not defined.
func mustBeDefined(t *Type, user string) {
	if t == nil {
		panic(fmt.Sprintf("%s: nil type", user))
	}
	if t.kind == Invalid {
		panic(fmt.Sprintf("%s: type %s used inline before it is defined", user, t))
	}
}

// StructOf returns a struct type with the given fields, in order. Only
// the Name and Type of each field need to be set, offsets are
// computed for both encodings using natural alignment.
func StructOf(name string, fields ...Field) *Type {
	ret := &Type{
		kind:   Struct,
		name:   name,
		fields: slices.Clone(fields),
	}
	for _, enc := range []Encoding{Legacy, Extensible} {
		var off, align uint32 = 0, 1
		for i := range ret.fields {
			f := &ret.fields[i]
			mustBeDefined(f.Type, fmt.Sprintf("struct %s field %s", name, f.Name))
			fl := f.Type.layout[enc]
			off = alignTo(off, fl.align)
			f.offset[enc] = off
			off += fl.size
			align = max(align, fl.align)
		}
		if len(ret.fields) == 0 {
			// Empty structs occupy one byte, so that they have a
			// distinct address.
			off = 1
		}
		ret.layout[enc] = layout{alignTo(off, align), align}
	}
	return ret
}

// UnionOf returns a union type with the given variants.
//
// UnionOf panics if two variants share a tag or an ordinal, or if any
// variant uses the reserved ordinal 0: a union's selectors must map
// one-to-one between the two encodings.
func UnionOf(name string, variants ...Variant) *Type {
	return unionOf(name, false, variants)
}

// NullableUnionOf is like [UnionOf], but returns a union whose values
// may be absent.
func NullableUnionOf(name string, variants ...Variant) *Type {
	return unionOf(name, true, variants)
}

func unionOf(name string, nullable bool, variants []Variant) *Type {
	if len(variants) == 0 {
		panic(fmt.Sprintf("union %s has no variants", name))
	}
	ret := &Type{
		kind:      Union,
		name:      name,
		nullable:  nullable,
		variants:  slices.Clone(variants),
		byTag:     make(map[uint32]int, len(variants)),
		byOrdinal: make(map[uint32]int, len(variants)),
	}
	var maxSize, maxAlign uint32 = 0, 1
	for i, v := range ret.variants {
		mustBeDefined(v.Type, fmt.Sprintf("union %s variant %s", name, v.Name))
		if v.Ordinal == 0 {
			panic(fmt.Sprintf("union %s variant %s uses reserved ordinal 0", name, v.Name))
		}
		if prev, ok := ret.byTag[v.Tag]; ok {
			panic(fmt.Sprintf("union %s variants %s and %s share tag %d", name, ret.variants[prev].Name, v.Name, v.Tag))
		}
		if prev, ok := ret.byOrdinal[v.Ordinal]; ok {
			panic(fmt.Sprintf("union %s variants %s and %s share ordinal %d", name, ret.variants[prev].Name, v.Name, v.Ordinal))
		}
		ret.byTag[v.Tag] = i
		ret.byOrdinal[v.Ordinal] = i
		maxSize = max(maxSize, v.Type.Size(Legacy))
		maxAlign = max(maxAlign, v.Type.Align(Legacy))
	}

	ret.dataOffset = alignTo(4, maxAlign)
	align := max(4, maxAlign)
	ret.object = layout{alignTo(ret.dataOffset+maxSize, align), align}
	if nullable {
		ret.layout[Legacy] = pointerLayout
	} else {
		ret.layout[Legacy] = ret.object
	}
	ret.layout[Extensible] = xunionLayout
	return ret
}

// VectorOf returns a vector type of elem. If maxCount is nonzero,
// vectors with more elements are rejected as invalid.
func VectorOf(elem *Type, maxCount uint32, nullable bool) *Type {
	if elem == nil {
		panic("vector of nil type")
	}
	return &Type{
		kind:     Vector,
		elem:     elem,
		count:    maxCount,
		nullable: nullable,
		layout:   [2]layout{headerLayout, headerLayout},
	}
}

// StringOf returns a string type. If maxLen is nonzero, strings
// longer than maxLen bytes are rejected as invalid.
func StringOf(maxLen uint32, nullable bool) *Type {
	return &Type{
		kind:     String,
		elem:     Uint8,
		count:    maxLen,
		nullable: nullable,
		layout:   [2]layout{headerLayout, headerLayout},
	}
}

// ArrayOf returns a fixed-length array type of n elems.
func ArrayOf(elem *Type, n uint32) *Type {
	mustBeDefined(elem, "array")
	ret := &Type{
		kind:  Array,
		elem:  elem,
		count: n,
	}
	for _, enc := range []Encoding{Legacy, Extensible} {
		el := elem.layout[enc]
		ret.layout[enc] = layout{el.size * n, el.align}
	}
	return ret
}

// HandleOf returns a handle type.
func HandleOf(nullable bool) *Type {
	return &Type{
		kind:     Handle,
		name:     "handle",
		nullable: nullable,
		layout:   [2]layout{{handleSize, handleSize}, {handleSize, handleSize}},
	}
}

// PointerTo returns a nullable reference to an out-of-line value of
// elem, which must be a struct.
func PointerTo(elem *Type) *Type {
	if elem == nil {
		panic("pointer to nil type")
	}
	if elem.kind != Struct && elem.kind != Invalid {
		panic(fmt.Sprintf("pointer to %s, only structs can be referenced by pointer", elem.kind))
	}
	return &Type{
		kind:     Pointer,
		elem:     elem,
		nullable: true,
		layout:   [2]layout{pointerLayout, pointerLayout},
	}
}

// TableOf returns a table type with the given fields. Ordinals must
// be unique and nonzero.
func TableOf(name string, fields ...TableField) *Type {
	fs := slices.Clone(fields)
	slices.SortFunc(fs, func(a, b TableField) int {
		return cmp.Compare(a.Ordinal, b.Ordinal)
	})
	for i, f := range fs {
		if f.Type == nil {
			panic(fmt.Sprintf("table %s field %s has nil type", name, f.Name))
		}
		if f.Ordinal == 0 {
			panic(fmt.Sprintf("table %s field %s uses reserved ordinal 0", name, f.Name))
		}
		if i > 0 && fs[i-1].Ordinal == f.Ordinal {
			panic(fmt.Sprintf("table %s fields %s and %s share ordinal %d", name, fs[i-1].Name, f.Name, f.Ordinal))
		}
	}
	return &Type{
		kind:        Table,
		name:        name,
		tableFields: fs,
		layout:      [2]layout{headerLayout, headerLayout},
	}
}

// Declare returns a placeholder for a named type that will be
// provided later with [Define]. Placeholders allow recursive types:
// they can be used as the element of a vector or pointer, or as the
// payload of a table field, before they are defined. They cannot be
// used inline until defined.
func Declare(name string) *Type {
	return &Type{name: name}
}

// Define sets the placeholder decl to be the type def. Define panics
// if decl is not an undefined placeholder from [Declare].
//
// Types must not be used for transforms until all their placeholders
// are defined.
func Define(decl, def *Type) {
	if decl.kind != Invalid {
		panic(fmt.Sprintf("type %s is already defined", decl))
	}
	if def.kind == Invalid {
		panic(fmt.Sprintf("cannot define %s as undefined type %s", decl, def))
	}
	name := decl.name
	*decl = *def
	if name != "" {
		decl.name = name
	}
}
