package schema_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	tc "github.com/danderson/transcode"
	"github.com/danderson/transcode/schema"
	"github.com/danderson/transcode/transcodetest"
)

func mustLoad(t *testing.T, name string) *schema.Schema {
	t.Helper()
	s, err := schema.Load(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("loading schema: %v", err)
	}
	return s
}

type shape struct {
	String                  string
	Kind                    tc.Kind
	LegacySize, LegacyAlign uint32
	ExtSize, ExtAlign       uint32
}

func shapeOf(t *tc.Type) shape {
	return shape{
		String:      t.String(),
		Kind:        t.Kind(),
		LegacySize:  t.Size(tc.Legacy),
		LegacyAlign: t.Align(tc.Legacy),
		ExtSize:     t.Size(tc.Extensible),
		ExtAlign:    t.Align(tc.Extensible),
	}
}

func TestLoad(t *testing.T) {
	known := map[string]*tc.Type{
		"Sandwich1":                        transcodetest.Sandwich1,
		"UnionSize8Aligned4":               transcodetest.UnionSize8Aligned4,
		"Sandwich6":                        transcodetest.Sandwich6,
		"UnionWithVector":                  transcodetest.UnionWithVector,
		"StringBoolUnion":                  transcodetest.StringBoolUnion,
		"StringUnionStruct":                transcodetest.StringUnionStruct,
		"StringUnionStructWrapperResponse": transcodetest.StringUnionStructWrapperResponse,
		"TransactionHeader":                transcodetest.TransactionHeader,
		"SimpleTable":                      transcodetest.SimpleTable,
		"SimpleTableArrayStruct":           transcodetest.SimpleTableArrayStruct,
	}

	for _, file := range []string{"sandwich.yaml", "sandwich.json"} {
		t.Run(file, func(t *testing.T) {
			s := mustLoad(t, file)
			names := s.Types()
			if len(names) == 0 {
				t.Fatal("schema declares no types")
			}
			for _, name := range names {
				got, ok := s.Lookup(name)
				if !ok {
					t.Errorf("Lookup(%q) not found", name)
					continue
				}
				want, ok := known[name]
				if !ok {
					continue
				}
				if diff := cmp.Diff(shapeOf(got), shapeOf(want)); diff != "" {
					t.Errorf("type %s has wrong shape (-got+want):\n%s", name, diff)
				}
			}
			if _, ok := s.Lookup("Nope"); ok {
				t.Error("Lookup of undeclared type succeeded")
			}
		})
	}
}

func TestDependencyOrder(t *testing.T) {
	s := mustLoad(t, "sandwich.yaml")
	order := s.DependencyOrder()
	pos := map[string]int{}
	for i, n := range order {
		pos[n] = i
	}
	if len(pos) != len(order) || len(order) != len(s.Types()) {
		t.Fatalf("DependencyOrder() = %v, want each of %v once", order, s.Types())
	}

	// Inline containment must be respected. Out-of-line references
	// (Tree through vector<Tree>, List through List?) may point
	// either way.
	inline := [][2]string{
		{"Sandwich1", "UnionSize8Aligned4"},
		{"Sandwich6", "UnionWithVector"},
		{"StringUnionStruct", "StringBoolUnion"},
		{"StringUnionStructWrapperResponse", "StringUnionStruct"},
		{"StringUnionStructWrapperResponse", "TransactionHeader"},
		{"SimpleTableArrayStruct", "SimpleTable"},
		{"Tree", "TreeNode"},
	}
	for _, e := range inline {
		if pos[e[0]] < pos[e[1]] {
			t.Errorf("%s comes before %s in %v", e[0], e[1], order)
		}
	}
}

func TestRecursive(t *testing.T) {
	s := mustLoad(t, "sandwich.yaml")

	tree, _ := s.Lookup("Tree")
	node, _ := s.Lookup("TreeNode")
	branch, ok := node.VariantByOrdinal(2)
	if !ok {
		t.Fatal("TreeNode has no branch variant")
	}
	if got := branch.Type.Elem(); got != tree {
		t.Errorf("branch element is %p (%s), want the Tree type %p", got, got, tree)
	}

	list, _ := s.Lookup("List")
	next := list.Fields()[1].Type
	if next.Kind() != tc.Pointer || next.Elem() != list {
		t.Errorf("List.next is %s to %p, want pointer to %p", next.Kind(), next.Elem(), list)
	}

	// A two-level tree, leaf 7 inside a branch.
	legacy := []byte{
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // tag branch, padding
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // count
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, // present
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // tag leaf, padding
		0x07, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // leaf, padding
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // padding
	}
	ext, err := tc.Transcode(tc.LegacyToExtensible, tree, legacy)
	if err != nil {
		t.Fatalf("transforming tree: %v", err)
	}
	back, err := tc.Transcode(tc.ExtensibleToLegacy, tree, ext)
	if err != nil {
		t.Fatalf("transforming tree back: %v", err)
	}
	if diff := cmp.Diff(back, legacy); diff != "" {
		t.Errorf("tree didn't round trip (-got+want):\n%s", diff)
	}
}

func TestTransformWithSchema(t *testing.T) {
	s := mustLoad(t, "sandwich.yaml")
	for _, f := range transcodetest.Fixtures {
		typ, ok := s.Lookup(f.Type.Name())
		if !ok {
			continue
		}
		t.Run(f.Name, func(t *testing.T) {
			for _, dir := range []tc.Direction{tc.LegacyToExtensible, tc.ExtensibleToLegacy} {
				from, to, _ := dir.Encodings()
				got, err := tc.Transcode(dir, typ, f.Encoded(from))
				if err != nil {
					t.Errorf("%s: %v", dir, err)
					continue
				}
				if diff := cmp.Diff(got, f.Encoded(to)); diff != "" {
					t.Errorf("%s: wrong output (-got+want):\n%s", dir, diff)
				}
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr string
	}{
		{
			"unknown type",
			`types: [{name: A, kind: struct, fields: [{name: x, type: B}]}]`,
			"unknown type B",
		},
		{
			"unknown kind",
			`types: [{name: A, kind: enum}]`,
			"unknown kind",
		},
		{
			"duplicate type",
			`types: [{name: A, kind: struct}, {name: A, kind: struct}]`,
			"duplicate declaration",
		},
		{
			"duplicate member",
			`types: [{name: A, kind: struct, fields: [{name: x, type: uint8}, {name: x, type: uint8}]}]`,
			"duplicate member",
		},
		{
			"duplicate tag",
			`types: [{name: U, kind: union, variants: [{name: a, tag: 1, ordinal: 1, type: uint8}, {name: b, tag: 1, ordinal: 2, type: uint8}]}]`,
			"duplicate tag",
		},
		{
			"duplicate ordinal",
			`types: [{name: U, kind: union, variants: [{name: a, tag: 0, ordinal: 1, type: uint8}, {name: b, tag: 1, ordinal: 1, type: uint8}]}]`,
			"duplicate ordinal",
		},
		{
			"zero ordinal",
			`types: [{name: T, kind: table, fields: [{name: a, type: uint8}]}]`,
			"nonzero ordinal",
		},
		{
			"struct field ordinal",
			`types: [{name: A, kind: struct, fields: [{name: a, ordinal: 1, type: uint8}]}]`,
			"cannot have a tag or ordinal",
		},
		{
			"empty union",
			`types: [{name: U, kind: union}]`,
			"at least one variant",
		},
		{
			"inline self cycle",
			`types: [{name: A, kind: struct, fields: [{name: b, type: B}]}, {name: B, kind: struct, fields: [{name: a, type: A}]}]`,
			"contains itself inline",
		},
		{
			"self cycle through array",
			`types: [{name: A, kind: struct, fields: [{name: a, type: "array<A>:2"}]}]`,
			"contains itself inline",
		},
		{
			"self cycle through nullable union",
			`types: [{name: U, kind: union, variants: [{name: u, tag: 0, ordinal: 1, type: "U?"}]}]`,
			"contains itself inline",
		},
		{
			"nullable primitive",
			`types: [{name: A, kind: struct, fields: [{name: x, type: "uint32?"}]}]`,
			"cannot be nullable",
		},
		{
			"nullable table",
			`types: [{name: T, kind: table}, {name: A, kind: struct, fields: [{name: t, type: "T?"}]}]`,
			"cannot be nullable",
		},
		{
			"redeclared primitive",
			`types: [{name: uint8, kind: struct}]`,
			"primitive",
		},
		{
			"redeclared builtin",
			`types: [{name: vector, kind: struct}]`,
			"builtin",
		},
		{
			"bad expression",
			`types: [{name: A, kind: struct, fields: [{name: x, type: "vector<uint8"}]}]`,
			"invalid type",
		},
		{
			"unknown key",
			`types: [{name: A, kind: struct, color: red}]`,
			"color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := schema.Parse([]byte(tt.in), schema.YAML)
			if err == nil {
				t.Fatalf("Parse succeeded with types %v, want error", s.Types())
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse error %q doesn't mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestMarshal(t *testing.T) {
	f, err := schema.ParseFile([]byte(`types: [{name: U, kind: union, variants: [{name: a, tag: 0, ordinal: 1, type: "vector<uint8>:4"}]}]`), schema.YAML)
	if err != nil {
		t.Fatal(err)
	}
	for _, format := range []schema.Format{schema.YAML, schema.JSON} {
		bs, err := f.Marshal(format)
		if err != nil {
			t.Errorf("Marshal(%s): %v", format, err)
			continue
		}
		got, err := schema.ParseFile(bs, format)
		if err != nil {
			t.Errorf("ParseFile(Marshal(%s)): %v\n%s", format, err, bs)
			continue
		}
		if diff := cmp.Diff(got, f); diff != "" {
			t.Errorf("%s round trip changed schema (-got+want):\n%s", format, diff)
		}
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		in      string
		want    schema.Format
		wantErr bool
	}{
		{"a.yaml", schema.YAML, false},
		{"dir/a.yml", schema.YAML, false},
		{"a.json", schema.JSON, false},
		{"a.toml", 0, true},
		{"a", 0, true},
	}
	for _, tt := range tests {
		got, err := schema.FormatOf(tt.in)
		if gotErr := err != nil; gotErr != tt.wantErr {
			t.Errorf("FormatOf(%q) got err %v, want err %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatOf(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNullableMembers(t *testing.T) {
	s, err := schema.Parse([]byte(`types:
  - {name: P, kind: struct, fields: [{name: x, type: uint32}]}
  - {name: U, kind: union, variants: [{name: a, tag: 0, ordinal: 1, type: uint8}]}
  - {name: S, kind: struct, fields: [{name: p, type: "P?"}, {name: u, type: "U?"}, {name: h, type: "handle?"}]}
`), schema.YAML)
	if err != nil {
		t.Fatalf("parsing schema: %v", err)
	}
	st, _ := s.Lookup("S")

	type member struct {
		Kind     tc.Kind
		Nullable bool
		String   string
	}
	var got []member
	for _, f := range st.Fields() {
		got = append(got, member{f.Type.Kind(), f.Type.Nullable(), f.Type.String()})
	}
	want := []member{
		{tc.Pointer, true, "P?"},
		{tc.Union, true, "U?"},
		{tc.Handle, true, "handle?"},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("wrong nullable members (-got+want):\n%s", diff)
	}
}
