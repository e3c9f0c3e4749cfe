package descgen_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danderson/transcode/internal/descgen"
	"github.com/danderson/transcode/schema"
)

func TestGen(t *testing.T) {
	s, err := schema.Load(filepath.Join("testdata", "point.yaml"))
	if err != nil {
		t.Fatalf("loading schema: %v", err)
	}
	goldenPath := filepath.Join("testdata", "point.go.golden")
	wantBs, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Errorf("reading golden file %q: %v", goldenPath, err)
		// Continue with an empty golden, so the output still gets
		// written.
	}
	want := string(wantBs)

	got, err := descgen.Package("shapes", s)
	if err != nil {
		t.Fatalf("generating package: %v", err)
	}
	if diff := cmp.Diff(strings.Split(got, "\n"), strings.Split(want, "\n")); diff != "" {
		gotPath := goldenPath + ".got"
		os.WriteFile(gotPath, []byte(got), 0600)
		t.Errorf("wrong descgen output (-got+want, got file written to %s):\n%s", gotPath, diff)
	}
}

// TestGenParses checks that a larger schema, with recursive types,
// generates valid Go that defines every type after its inline
// dependencies.
func TestGenParses(t *testing.T) {
	s, err := schema.Load(filepath.Join("..", "..", "schema", "testdata", "sandwich.yaml"))
	if err != nil {
		t.Fatalf("loading schema: %v", err)
	}
	src, err := descgen.Package("sandwich", s)
	if err != nil {
		t.Fatalf("generating package: %v", err)
	}
	f, err := parser.ParseFile(token.NewFileSet(), "sandwich.go", src, 0)
	if err != nil {
		t.Fatalf("generated code doesn't parse: %v\n%s", err, src)
	}

	var declared, defined []string
	ast.Inspect(f, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.ValueSpec:
			for _, id := range n.Names {
				declared = append(declared, id.Name)
			}
		case *ast.CallExpr:
			sel, ok := n.Fun.(*ast.SelectorExpr)
			if !ok || sel.Sel.Name != "Define" {
				return true
			}
			if id, ok := n.Args[0].(*ast.Ident); ok {
				defined = append(defined, id.Name)
			}
		}
		return true
	})

	if diff := cmp.Diff(declared, s.Types()); diff != "" {
		t.Errorf("wrong declared variables (-got+want):\n%s", diff)
	}
	if diff := cmp.Diff(defined, s.DependencyOrder()); diff != "" {
		t.Errorf("wrong definition order (-got+want):\n%s", diff)
	}
}

func TestGenErrors(t *testing.T) {
	tests := []struct {
		name string
		pkg  string
		in   string
	}{
		{"bad package", "not a package", `types: [{name: A, kind: struct}]`},
		{"identifier clash", "p", `types: [{name: a.b, kind: struct}, {name: a_b, kind: struct}]`},
		{"not an identifier", "p", `types: [{name: 9lives, kind: struct}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := schema.Parse([]byte(tt.in), schema.YAML)
			if err != nil {
				t.Fatalf("parsing schema: %v", err)
			}
			if got, err := descgen.Package(tt.pkg, s); err == nil {
				t.Errorf("Package succeeded, want error. Output:\n%s", got)
			}
		})
	}
}
