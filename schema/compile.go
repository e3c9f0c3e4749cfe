package schema

import (
	"errors"
	"fmt"
	"slices"

	"github.com/creachadair/mds/mapset"

	tc "github.com/danderson/transcode"
)

// A Schema is a compiled schema file.
type Schema struct {
	file  *File
	decls map[string]*Decl
	types map[string]*tc.Type
	// order is the declared type names, ordered such that every type
	// comes after the types it contains inline.
	order []string
}

// Compile compiles the declarations of f into type descriptors.
func Compile(f *File) (*Schema, error) {
	s := &Schema{
		file:  f,
		decls: make(map[string]*Decl, len(f.Types)),
		types: make(map[string]*tc.Type, len(f.Types)),
	}
	for _, d := range f.Types {
		if err := checkDecl(d); err != nil {
			return nil, err
		}
		if s.decls[d.Name] != nil {
			return nil, fmt.Errorf("duplicate declaration of type %s", d.Name)
		}
		s.decls[d.Name] = d
	}

	c := compiler{
		s:            s,
		placeholders: map[string]*tc.Type{},
		active:       mapset.New[string](),
	}
	for _, d := range f.Types {
		if _, err := c.named(d.Name, true); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Types returns the names of the types declared in the schema, in
// declaration order.
func (s *Schema) Types() []string {
	ret := make([]string, 0, len(s.file.Types))
	for _, d := range s.file.Types {
		ret = append(ret, d.Name)
	}
	return ret
}

// Lookup returns the compiled type with the given name.
func (s *Schema) Lookup(name string) (*tc.Type, bool) {
	ret, ok := s.types[name]
	return ret, ok
}

// Decl returns the declaration of the named type.
func (s *Schema) Decl(name string) (*Decl, bool) {
	ret, ok := s.decls[name]
	return ret, ok
}

// DependencyOrder returns the names of the declared types, ordered
// such that each type comes after every type it contains inline.
func (s *Schema) DependencyOrder() []string {
	return slices.Clone(s.order)
}

func checkDecl(d *Decl) error {
	if d.Name == "" {
		return errors.New("type declaration with no name")
	}
	if _, ok := tc.Primitives[d.Name]; ok {
		return fmt.Errorf("type %s: cannot redeclare a primitive type", d.Name)
	}
	if (&Expr{Name: d.Name}).IsBuiltin() {
		return fmt.Errorf("type %s: cannot redeclare a builtin type", d.Name)
	}

	var members []Member
	switch d.Kind {
	case "struct":
		if len(d.Variants) > 0 {
			return fmt.Errorf("type %s: structs cannot have variants", d.Name)
		}
		members = d.Fields
	case "table":
		if len(d.Variants) > 0 {
			return fmt.Errorf("type %s: tables cannot have variants", d.Name)
		}
		members = d.Fields
	case "union":
		if len(d.Fields) > 0 {
			return fmt.Errorf("type %s: unions cannot have fields", d.Name)
		}
		if len(d.Variants) == 0 {
			return fmt.Errorf("type %s: unions must have at least one variant", d.Name)
		}
		members = d.Variants
	default:
		return fmt.Errorf("type %s: unknown kind %q, want struct, union or table", d.Name, d.Kind)
	}

	names := mapset.New[string]()
	tags := mapset.New[uint32]()
	ordinals := mapset.New[uint32]()
	for _, m := range members {
		if m.Name == "" {
			return fmt.Errorf("type %s: member with no name", d.Name)
		}
		if names.Has(m.Name) {
			return fmt.Errorf("type %s: duplicate member %s", d.Name, m.Name)
		}
		names.Add(m.Name)

		if d.Kind == "struct" {
			if m.Tag != 0 || m.Ordinal != 0 {
				return fmt.Errorf("type %s: struct field %s cannot have a tag or ordinal", d.Name, m.Name)
			}
			continue
		}
		if m.Ordinal == 0 {
			return fmt.Errorf("type %s: member %s needs a nonzero ordinal", d.Name, m.Name)
		}
		if ordinals.Has(m.Ordinal) {
			return fmt.Errorf("type %s: duplicate ordinal %d on %s", d.Name, m.Ordinal, m.Name)
		}
		ordinals.Add(m.Ordinal)

		if d.Kind == "table" {
			if m.Tag != 0 {
				return fmt.Errorf("type %s: table field %s cannot have a tag", d.Name, m.Name)
			}
			continue
		}
		if tags.Has(m.Tag) {
			return fmt.Errorf("type %s: duplicate tag %d on %s", d.Name, m.Tag, m.Name)
		}
		tags.Add(m.Tag)
	}
	return nil
}

type compiler struct {
	s *Schema
	// placeholders are declared but not yet defined types, handed out
	// for references that don't need the type's layout.
	placeholders map[string]*tc.Type
	// active is the set of types currently being compiled.
	active mapset.Set[string]
}

// named returns the type declared as name. If inline is false, the
// caller doesn't need the type's layout, and may receive a
// placeholder that is defined later.
func (c *compiler) named(name string, inline bool) (*tc.Type, error) {
	if ret, ok := c.s.types[name]; ok {
		return ret, nil
	}
	d := c.s.decls[name]
	if d == nil {
		return nil, fmt.Errorf("unknown type %s", name)
	}
	if !inline {
		p := c.placeholders[name]
		if p == nil {
			p = tc.Declare(name)
			c.placeholders[name] = p
		}
		return p, nil
	}
	if c.active.Has(name) {
		return nil, fmt.Errorf("type %s contains itself inline", name)
	}

	c.active.Add(name)
	ret, err := c.decl(d)
	c.active.Remove(name)
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", name, err)
	}
	if p := c.placeholders[name]; p != nil {
		tc.Define(p, ret)
		ret = p
	}
	c.s.types[name] = ret
	c.s.order = append(c.s.order, name)
	return ret, nil
}

func (c *compiler) decl(d *Decl) (*tc.Type, error) {
	switch d.Kind {
	case "struct":
		fs := make([]tc.Field, 0, len(d.Fields))
		for _, m := range d.Fields {
			t, err := c.member(m, true)
			if err != nil {
				return nil, err
			}
			fs = append(fs, tc.Field{Name: m.Name, Type: t})
		}
		return tc.StructOf(d.Name, fs...), nil
	case "union":
		vs := make([]tc.Variant, 0, len(d.Variants))
		for _, m := range d.Variants {
			t, err := c.member(m, true)
			if err != nil {
				return nil, err
			}
			vs = append(vs, tc.Variant{Name: m.Name, Tag: m.Tag, Ordinal: m.Ordinal, Type: t})
		}
		return tc.UnionOf(d.Name, vs...), nil
	case "table":
		fs := make([]tc.TableField, 0, len(d.Fields))
		for _, m := range d.Fields {
			t, err := c.member(m, false)
			if err != nil {
				return nil, err
			}
			fs = append(fs, tc.TableField{Ordinal: m.Ordinal, Name: m.Name, Type: t})
		}
		return tc.TableOf(d.Name, fs...), nil
	default:
		panic(fmt.Sprintf("unchecked declaration kind %q", d.Kind))
	}
}

func (c *compiler) member(m Member, inline bool) (*tc.Type, error) {
	e, err := ParseExpr(m.Type)
	if err != nil {
		return nil, fmt.Errorf("member %s: %w", m.Name, err)
	}
	ret, err := c.expr(e, inline)
	if err != nil {
		return nil, fmt.Errorf("member %s: %w", m.Name, err)
	}
	return ret, nil
}

// expr returns the type described by e.
func (c *compiler) expr(e *Expr, inline bool) (*tc.Type, error) {
	if e.Nullable && e.Name == "array" {
		return nil, errors.New("arrays cannot be nullable")
	}
	switch e.Name {
	case "vector":
		elem, err := c.expr(e.Elem, false)
		if err != nil {
			return nil, err
		}
		return tc.VectorOf(elem, e.Bound, e.Nullable), nil
	case "string":
		return tc.StringOf(e.Bound, e.Nullable), nil
	case "array":
		elem, err := c.expr(e.Elem, true)
		if err != nil {
			return nil, err
		}
		return tc.ArrayOf(elem, e.Bound), nil
	case "handle":
		return tc.HandleOf(e.Nullable), nil
	}

	if p, ok := tc.Primitives[e.Name]; ok {
		if e.Nullable {
			return nil, fmt.Errorf("primitive type %s cannot be nullable", e.Name)
		}
		return p, nil
	}

	d := c.s.decls[e.Name]
	if d == nil {
		return nil, fmt.Errorf("unknown type %s", e.Name)
	}
	if !e.Nullable {
		return c.named(e.Name, inline)
	}
	switch d.Kind {
	case "struct":
		t, err := c.named(e.Name, false)
		if err != nil {
			return nil, err
		}
		return tc.PointerTo(t), nil
	case "union":
		// Building a nullable union needs the layout of every variant.
		t, err := c.named(e.Name, true)
		if err != nil {
			return nil, err
		}
		return tc.NullableUnionOf(e.Name, t.Variants()...), nil
	default:
		return nil, fmt.Errorf("%s %s cannot be nullable", d.Kind, e.Name)
	}
}
