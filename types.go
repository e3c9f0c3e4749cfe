package transcode

import (
	"fmt"
	"slices"
	"strconv"
)

// An Encoding is one of the two wire layouts a schema can be
// serialized in.
type Encoding int

const (
	// Legacy is the original wire layout, with tagged unions inline.
	Legacy Encoding = iota
	// Extensible is the evolved wire layout, with ordinal-selected
	// unions whose payload lives out-of-line in an envelope.
	Extensible
)

func (e Encoding) String() string {
	switch e {
	case Legacy:
		return "legacy"
	case Extensible:
		return "extensible"
	default:
		return "Encoding(" + strconv.Itoa(int(e)) + ")"
	}
}

// A Kind is the specific kind of value that a [Type] describes.
type Kind uint8

const (
	// Invalid is the kind of a type that was declared with [Declare]
	// but not yet defined.
	Invalid Kind = iota
	Primitive
	Struct
	Union
	Vector
	String
	Array
	Table
	Handle
	Pointer
)

var kindNames = [...]string{
	Invalid:   "invalid",
	Primitive: "primitive",
	Struct:    "struct",
	Union:     "union",
	Vector:    "vector",
	String:    "string",
	Array:     "array",
	Table:     "table",
	Handle:    "handle",
	Pointer:   "pointer",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

type layout struct {
	size  uint32
	align uint32
}

// A Type describes the shape of a value in both wire encodings.
//
// Types are built once, typically as package-level variables, and are
// immutable afterwards. They are safe for concurrent use, and may be
// shared between any number of parent types.
type Type struct {
	kind     Kind
	name     string
	layout   [2]layout
	nullable bool

	// Struct
	fields []Field

	// Union
	variants  []Variant
	byTag     map[uint32]int
	byOrdinal map[uint32]int
	// object is the layout of the legacy union body, which is the
	// inline layout unless the union is nullable.
	object     layout
	dataOffset uint32

	// Vector, String, Array, Pointer
	elem *Type
	// count is the array length, or the maximum element count of a
	// vector or string (0 means unbounded).
	count uint32

	// Table, sorted by ordinal
	tableFields []TableField
}

// A Field is a member of a struct.
type Field struct {
	Name string
	Type *Type

	offset [2]uint32
}

// Offset returns the byte offset of the field within its struct, in
// the given encoding.
func (f Field) Offset(enc Encoding) uint32 {
	return f.offset[enc]
}

// A Variant is one possible member of a union.
type Variant struct {
	Name string
	// Tag selects the variant in the legacy encoding.
	Tag uint32
	// Ordinal selects the variant in the extensible encoding. Ordinal
	// 0 is reserved to mean "absent".
	Ordinal uint32
	Type    *Type
}

// A TableField is a member of a table.
type TableField struct {
	// Ordinal is the field's 1-based index in the table's envelope
	// vector.
	Ordinal uint32
	Name    string
	Type    *Type
}

// Kind returns the kind of value t describes.
func (t *Type) Kind() Kind { return t.kind }

// Name returns the declared name of a struct, union or table, or the
// name of a primitive. It returns "" for anonymous types such as
// vectors.
func (t *Type) Name() string { return t.name }

// Size returns the inline size of the type in the given encoding.
func (t *Type) Size(enc Encoding) uint32 { return t.layout[enc].size }

// Align returns the inline alignment of the type in the given
// encoding.
func (t *Type) Align(enc Encoding) uint32 { return t.layout[enc].align }

// Nullable reports whether values of the type may be absent.
func (t *Type) Nullable() bool { return t.nullable }

// Fields returns the fields of a struct type.
func (t *Type) Fields() []Field { return slices.Clone(t.fields) }

// Variants returns the variants of a union type, in declaration
// order.
func (t *Type) Variants() []Variant { return slices.Clone(t.variants) }

// VariantByTag returns the union variant selected by the given legacy
// tag.
func (t *Type) VariantByTag(tag uint32) (Variant, bool) {
	i, ok := t.byTag[tag]
	if !ok {
		return Variant{}, false
	}
	return t.variants[i], true
}

// VariantByOrdinal returns the union variant selected by the given
// extensible ordinal.
func (t *Type) VariantByOrdinal(ord uint32) (Variant, bool) {
	i, ok := t.byOrdinal[ord]
	if !ok {
		return Variant{}, false
	}
	return t.variants[i], true
}

// DataOffset returns the offset of the payload within a legacy union
// body, immediately after the tag and its padding.
func (t *Type) DataOffset() uint32 { return t.dataOffset }

// ObjectSize returns the size of a legacy union body. It differs from
// Size(Legacy) only for nullable unions, which are represented inline
// by a presence pointer.
func (t *Type) ObjectSize() uint32 { return t.object.size }

// Elem returns the element type of a vector, string or array, or the
// pointee type of a pointer.
func (t *Type) Elem() *Type { return t.elem }

// Len returns the length of an array type.
func (t *Type) Len() uint32 {
	if t.kind != Array {
		return 0
	}
	return t.count
}

// MaxCount returns the maximum element count of a vector or string,
// or 0 if it is unbounded.
func (t *Type) MaxCount() uint32 {
	if t.kind != Vector && t.kind != String {
		return 0
	}
	return t.count
}

// TableFields returns the fields of a table type, sorted by ordinal.
func (t *Type) TableFields() []TableField { return slices.Clone(t.tableFields) }

// TableField returns the table field with the given ordinal.
func (t *Type) TableField(ord uint32) (TableField, bool) {
	i, ok := slices.BinarySearchFunc(t.tableFields, ord, func(f TableField, ord uint32) int {
		switch {
		case f.Ordinal < ord:
			return -1
		case f.Ordinal > ord:
			return 1
		default:
			return 0
		}
	})
	if !ok {
		return TableField{}, false
	}
	return t.tableFields[i], true
}

// String returns the type in the notation used by schema files, for
// example "vector<Point>:16?".
func (t *Type) String() string {
	nul := ""
	if t.nullable {
		nul = "?"
	}
	bound := ""
	if t.count > 0 {
		bound = ":" + strconv.FormatUint(uint64(t.count), 10)
	}
	switch t.kind {
	case Vector:
		return fmt.Sprintf("vector<%s>%s%s", t.elem, bound, nul)
	case String:
		return "string" + bound + nul
	case Array:
		return fmt.Sprintf("array<%s>%s", t.elem, bound)
	case Handle:
		return "handle" + nul
	case Pointer:
		return t.elem.String() + "?"
	case Invalid:
		if t.name == "" {
			return "<undefined>"
		}
		return t.name
	default:
		return t.name + nul
	}
}

func primitive(name string, width uint32) *Type {
	return &Type{
		kind:   Primitive,
		name:   name,
		layout: [2]layout{{width, width}, {width, width}},
	}
}

// Predeclared primitive types.
var (
	Bool    = primitive("bool", 1)
	Int8    = primitive("int8", 1)
	Int16   = primitive("int16", 2)
	Int32   = primitive("int32", 4)
	Int64   = primitive("int64", 8)
	Uint8   = primitive("uint8", 1)
	Uint16  = primitive("uint16", 2)
	Uint32  = primitive("uint32", 4)
	Uint64  = primitive("uint64", 8)
	Float32 = primitive("float32", 4)
	Float64 = primitive("float64", 8)
)

// Primitives maps the names of the predeclared primitive types to
// their Type.
var Primitives = map[string]*Type{
	"bool":    Bool,
	"int8":    Int8,
	"int16":   Int16,
	"int32":   Int32,
	"int64":   Int64,
	"uint8":   Uint8,
	"uint16":  Uint16,
	"uint32":  Uint32,
	"uint64":  Uint64,
	"float32": Float32,
	"float64": Float64,
}
