package transcode_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	tc "github.com/danderson/transcode"
	"github.com/danderson/transcode/transcodetest"
)

type layout struct {
	Size, Align uint32
}

func TestLayout(t *testing.T) {
	tests := []struct {
		typ        *tc.Type
		legacy     layout
		extensible layout
	}{
		{tc.Bool, layout{1, 1}, layout{1, 1}},
		{tc.Uint64, layout{8, 8}, layout{8, 8}},
		{tc.StructOf("Empty"), layout{1, 1}, layout{1, 1}},
		{tc.ArrayOf(tc.Uint16, 3), layout{6, 2}, layout{6, 2}},
		{tc.VectorOf(tc.Uint8, 0, true), layout{16, 8}, layout{16, 8}},
		{tc.StringOf(10, false), layout{16, 8}, layout{16, 8}},
		{tc.HandleOf(false), layout{4, 4}, layout{4, 4}},
		{tc.PointerTo(transcodetest.Sandwich1), layout{8, 8}, layout{8, 8}},
		{transcodetest.TransactionHeader, layout{16, 8}, layout{16, 8}},
		{transcodetest.UnionSize8Aligned4, layout{8, 4}, layout{24, 8}},
		{transcodetest.UnionSize36Alignment4, layout{36, 4}, layout{24, 8}},
		{transcodetest.UnionSize24Alignment8, layout{24, 8}, layout{24, 8}},
		{transcodetest.UnionOfUnion, layout{32, 8}, layout{24, 8}},
		{transcodetest.UnionWithVector, layout{24, 8}, layout{24, 8}},
		{transcodetest.StringBoolUnion, layout{24, 8}, layout{24, 8}},
		{transcodetest.StringUnionStruct, layout{32, 8}, layout{48, 8}},
		{transcodetest.Sandwich1, layout{16, 4}, layout{40, 8}},
		{transcodetest.Sandwich4Message, layout{64, 8}, layout{56, 8}},
		{transcodetest.Sandwich5Message, layout{64, 8}, layout{56, 8}},
		{transcodetest.Sandwich6, layout{40, 8}, layout{40, 8}},
		{transcodetest.MixedFieldsMessage, layout{56, 8}, layout{96, 8}},
		{transcodetest.Regression5, layout{32, 8}, layout{32, 8}},
		{transcodetest.LaunchInfo, layout{72, 8}, layout{72, 8}},
		{transcodetest.SimpleTable, layout{16, 8}, layout{16, 8}},
		{transcodetest.SimpleTableArrayStruct, layout{32, 8}, layout{32, 8}},
	}

	for _, tt := range tests {
		got := layout{tt.typ.Size(tc.Legacy), tt.typ.Align(tc.Legacy)}
		if diff := cmp.Diff(got, tt.legacy); diff != "" {
			t.Errorf("%s legacy layout wrong (-got+want):\n%s", tt.typ, diff)
		}
		got = layout{tt.typ.Size(tc.Extensible), tt.typ.Align(tc.Extensible)}
		if diff := cmp.Diff(got, tt.extensible); diff != "" {
			t.Errorf("%s extensible layout wrong (-got+want):\n%s", tt.typ, diff)
		}
	}
}

func TestFieldOffsets(t *testing.T) {
	type offsets struct {
		Name               string
		Legacy, Extensible uint32
	}
	var got []offsets
	for _, f := range transcodetest.MixedFieldsMessage.Fields() {
		got = append(got, offsets{f.Name, f.Offset(tc.Legacy), f.Offset(tc.Extensible)})
	}
	want := []offsets{
		{"header", 0, 0},
		{"before", 16, 16},
		{"first_union", 20, 24},
		{"middle_start", 28, 48},
		{"middle_end", 32, 56},
		{"second_union", 40, 64},
		{"after", 48, 88},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("MixedFieldsMessage field offsets wrong (-got+want):\n%s", diff)
	}
}

func TestUnionLookups(t *testing.T) {
	u := transcodetest.UnionOfUnion
	if got, want := u.DataOffset(), uint32(8); got != want {
		t.Errorf("%s.DataOffset() = %d, want %d", u, got, want)
	}
	for _, v := range u.Variants() {
		byTag, ok := u.VariantByTag(v.Tag)
		if !ok || byTag.Name != v.Name {
			t.Errorf("VariantByTag(%d) = %v, %v, want %s", v.Tag, byTag.Name, ok, v.Name)
		}
		byOrd, ok := u.VariantByOrdinal(v.Ordinal)
		if !ok || byOrd.Name != v.Name {
			t.Errorf("VariantByOrdinal(%d) = %v, %v, want %s", v.Ordinal, byOrd.Name, ok, v.Name)
		}
	}
	if _, ok := u.VariantByTag(4); ok {
		t.Error("VariantByTag(4) found a variant, want none")
	}
	if _, ok := u.VariantByOrdinal(0); ok {
		t.Error("VariantByOrdinal(0) found a variant, want none")
	}

	nu := tc.NullableUnionOf("Maybe", transcodetest.StringBoolUnion.Variants()...)
	if got, want := nu.Size(tc.Legacy), uint32(8); got != want {
		t.Errorf("%s legacy size = %d, want %d", nu, got, want)
	}
	if got, want := nu.ObjectSize(), uint32(24); got != want {
		t.Errorf("%s.ObjectSize() = %d, want %d", nu, got, want)
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  *tc.Type
		want string
	}{
		{tc.Uint32, "uint32"},
		{tc.VectorOf(tc.Uint8, 16, true), "vector<uint8>:16?"},
		{tc.VectorOf(transcodetest.Sandwich1, 0, false), "vector<Sandwich1>"},
		{tc.StringOf(0, false), "string"},
		{tc.StringOf(2083, true), "string:2083?"},
		{tc.ArrayOf(tc.Uint32, 4), "array<uint32>:4"},
		{tc.HandleOf(true), "handle?"},
		{tc.PointerTo(transcodetest.Sandwich1), "Sandwich1?"},
		{tc.NullableUnionOf("Maybe", transcodetest.StringBoolUnion.Variants()...), "Maybe?"},
		{tc.Declare("Later"), "Later"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTableFields(t *testing.T) {
	table := tc.TableOf("T",
		tc.TableField{Ordinal: 5, Name: "e", Type: tc.Uint8},
		tc.TableField{Ordinal: 1, Name: "a", Type: tc.Uint8},
		tc.TableField{Ordinal: 3, Name: "c", Type: tc.Uint8},
	)
	var names []string
	for _, f := range table.TableFields() {
		names = append(names, f.Name)
	}
	if diff := cmp.Diff(names, []string{"a", "c", "e"}); diff != "" {
		t.Errorf("TableFields not sorted by ordinal (-got+want):\n%s", diff)
	}
	for ord, want := range map[uint32]string{1: "a", 3: "c", 5: "e", 2: "", 6: ""} {
		f, ok := table.TableField(ord)
		if ok != (want != "") || f.Name != want {
			t.Errorf("TableField(%d) = %q, %v, want %q", ord, f.Name, ok, want)
		}
	}
}

func TestDefine(t *testing.T) {
	list := tc.Declare("List")
	next := tc.PointerTo(list)
	tc.Define(list, tc.StructOf("ListNode",
		tc.Field{Name: "value", Type: tc.Uint32},
		tc.Field{Name: "next", Type: next},
	))
	if got, want := list.Name(), "List"; got != want {
		t.Errorf("defined type name is %q, want %q", got, want)
	}
	if got, want := list.Kind(), tc.Struct; got != want {
		t.Errorf("defined type kind is %s, want %s", got, want)
	}
	if next.Elem() != list {
		t.Error("pointer to placeholder does not refer to the defined type")
	}
	if got, want := list.Size(tc.Legacy), uint32(16); got != want {
		t.Errorf("defined type size is %d, want %d", got, want)
	}
}

func TestConstructorPanics(t *testing.T) {
	v := func(name string, tag, ord uint32) tc.Variant {
		return tc.Variant{Name: name, Tag: tag, Ordinal: ord, Type: tc.Uint32}
	}
	tests := []struct {
		name string
		fn   func()
	}{
		{"union without variants", func() { tc.UnionOf("U") }},
		{"duplicate tag", func() { tc.UnionOf("U", v("a", 1, 1), v("b", 1, 2)) }},
		{"duplicate ordinal", func() { tc.UnionOf("U", v("a", 1, 1), v("b", 2, 1)) }},
		{"reserved ordinal", func() { tc.UnionOf("U", v("a", 0, 0)) }},
		{"undefined union variant", func() {
			tc.UnionOf("U", tc.Variant{Name: "a", Ordinal: 1, Type: tc.Declare("Later")})
		}},
		{"undefined struct field", func() {
			tc.StructOf("S", tc.Field{Name: "a", Type: tc.Declare("Later")})
		}},
		{"nil struct field", func() { tc.StructOf("S", tc.Field{Name: "a"}) }},
		{"undefined array element", func() { tc.ArrayOf(tc.Declare("Later"), 2) }},
		{"pointer to vector", func() { tc.PointerTo(tc.VectorOf(tc.Uint8, 0, false)) }},
		{"duplicate table ordinal", func() {
			tc.TableOf("T",
				tc.TableField{Ordinal: 1, Name: "a", Type: tc.Uint8},
				tc.TableField{Ordinal: 1, Name: "b", Type: tc.Uint8},
			)
		}},
		{"reserved table ordinal", func() {
			tc.TableOf("T", tc.TableField{Ordinal: 0, Name: "a", Type: tc.Uint8})
		}},
		{"redefine", func() {
			later := tc.Declare("Later")
			tc.Define(later, tc.StructOf("S"))
			tc.Define(later, tc.StructOf("S"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("constructor did not panic")
				}
			}()
			tt.fn()
		})
	}
}
