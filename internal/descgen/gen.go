// Package descgen generates Go source that declares the type
// descriptors of a schema.
package descgen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"strings"
	"unicode"

	"github.com/creachadair/mds/mapset"

	tc "github.com/danderson/transcode"
	"github.com/danderson/transcode/schema"
)

type generator struct {
	out    bytes.Buffer
	s      *schema.Schema
	idents map[string]string
}

// Package returns the source of a Go package named pkg, which
// declares a package-level *transcode.Type variable for every type in
// s.
func Package(pkg string, s *schema.Schema) (string, error) {
	if s == nil {
		return "", errors.New("no schema provided")
	}
	if !token.IsIdentifier(pkg) {
		return "", fmt.Errorf("invalid package name %q", pkg)
	}
	g := generator{
		s:      s,
		idents: map[string]string{},
	}
	if err := g.Package(pkg); err != nil {
		return "", err
	}

	ret, err := format.Source(g.out.Bytes())
	if err != nil {
		return g.out.String(), err
	}
	return string(ret), nil
}

func (g *generator) str(s string) {
	g.out.WriteString(s)
}

func (g *generator) f(msg string, args ...any) {
	fmt.Fprintf(&g.out, msg, args...)
}

func (g *generator) Package(pkg string) error {
	seen := mapset.New[string]()
	for _, name := range g.s.Types() {
		id := publicIdentifier(name)
		if !token.IsIdentifier(id) {
			return fmt.Errorf("type %s: cannot be named in Go", name)
		}
		if seen.Has(id) {
			return fmt.Errorf("type %s: Go identifier %s is already used by another type", name, id)
		}
		seen.Add(id)
		g.idents[name] = id
	}

	g.f(`// Code generated by transcode generate. DO NOT EDIT.

package %s

import tc "github.com/danderson/transcode"

`, pkg)

	// Everything is declared up front, so that types can refer to
	// each other out-of-line regardless of order.
	g.str("var (\n")
	for _, name := range g.s.Types() {
		g.f("%s = tc.Declare(%q)\n", g.idents[name], name)
	}
	g.str(")\n\nfunc init() {\n")
	for _, name := range g.s.DependencyOrder() {
		if err := g.Decl(name); err != nil {
			return fmt.Errorf("type %s: %w", name, err)
		}
	}
	g.str("}\n")
	return nil
}

func (g *generator) Decl(name string) error {
	d, ok := g.s.Decl(name)
	if !ok {
		return errors.New("not declared")
	}
	id := g.idents[name]
	switch d.Kind {
	case "struct":
		g.f("tc.Define(%s, tc.StructOf(%q,\n", id, name)
		for _, m := range d.Fields {
			t, err := g.member(m)
			if err != nil {
				return err
			}
			g.f("tc.Field{Name: %q, Type: %s},\n", m.Name, t)
		}
	case "union":
		g.f("tc.Define(%s, tc.UnionOf(%q,\n", id, name)
		for _, m := range d.Variants {
			t, err := g.member(m)
			if err != nil {
				return err
			}
			g.f("tc.Variant{Name: %q, Tag: %d, Ordinal: %d, Type: %s},\n", m.Name, m.Tag, m.Ordinal, t)
		}
	case "table":
		g.f("tc.Define(%s, tc.TableOf(%q,\n", id, name)
		for _, m := range d.Fields {
			t, err := g.member(m)
			if err != nil {
				return err
			}
			g.f("tc.TableField{Ordinal: %d, Name: %q, Type: %s},\n", m.Ordinal, m.Name, t)
		}
	default:
		return fmt.Errorf("unknown kind %q", d.Kind)
	}
	g.str("))\n")
	return nil
}

func (g *generator) member(m schema.Member) (string, error) {
	e, err := schema.ParseExpr(m.Type)
	if err != nil {
		return "", fmt.Errorf("member %s: %w", m.Name, err)
	}
	ret, err := g.expr(e)
	if err != nil {
		return "", fmt.Errorf("member %s: %w", m.Name, err)
	}
	return ret, nil
}

// expr returns a Go expression that constructs the type e.
func (g *generator) expr(e *schema.Expr) (string, error) {
	switch e.Name {
	case "vector":
		elem, err := g.expr(e.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("tc.VectorOf(%s, %d, %t)", elem, e.Bound, e.Nullable), nil
	case "string":
		return fmt.Sprintf("tc.StringOf(%d, %t)", e.Bound, e.Nullable), nil
	case "array":
		elem, err := g.expr(e.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("tc.ArrayOf(%s, %d)", elem, e.Bound), nil
	case "handle":
		return fmt.Sprintf("tc.HandleOf(%t)", e.Nullable), nil
	}

	if _, ok := tc.Primitives[e.Name]; ok {
		return "tc." + publicIdentifier(e.Name), nil
	}
	id, ok := g.idents[e.Name]
	if !ok {
		return "", fmt.Errorf("unknown type %s", e.Name)
	}
	if !e.Nullable {
		return id, nil
	}
	d, _ := g.s.Decl(e.Name)
	switch d.Kind {
	case "struct":
		return fmt.Sprintf("tc.PointerTo(%s)", id), nil
	case "union":
		return fmt.Sprintf("tc.NullableUnionOf(%q, %s.Variants()...)", e.Name, id), nil
	default:
		return "", fmt.Errorf("%s %s cannot be nullable", d.Kind, e.Name)
	}
}

// publicIdentifier converts a schema name such as "fuchsia.io.node_info"
// into an exported Go identifier such as "FuchsiaIoNodeInfo".
func publicIdentifier(s string) string {
	fs := strings.FieldsFunc(s, func(r rune) bool { return r == '.' || r == '_' })
	for i, f := range fs {
		rs := []rune(f)
		rs[0] = unicode.ToUpper(rs[0])
		fs[i] = string(rs)
	}
	return strings.Join(fs, "")
}
