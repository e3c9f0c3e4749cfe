package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseExpr(t *testing.T) {
	tests := []struct {
		in   string
		want *Expr
	}{
		{"uint32", &Expr{Name: "uint32"}},
		{"Point", &Expr{Name: "Point"}},
		{"Point?", &Expr{Name: "Point", Nullable: true}},
		{"my.lib.Point", &Expr{Name: "my.lib.Point"}},
		{"string", &Expr{Name: "string"}},
		{"string:64?", &Expr{Name: "string", Bound: 64, Nullable: true}},
		{"handle?", &Expr{Name: "handle", Nullable: true}},
		{"vector<uint8>", &Expr{Name: "vector", Elem: &Expr{Name: "uint8"}}},
		{"vector<Point>:16?", &Expr{Name: "vector", Elem: &Expr{Name: "Point"}, Bound: 16, Nullable: true}},
		{"array<uint8>:3", &Expr{Name: "array", Elem: &Expr{Name: "uint8"}, Bound: 3}},
		{
			"vector<array<string:4?>:2>:8",
			&Expr{
				Name:  "vector",
				Elem:  &Expr{Name: "array", Elem: &Expr{Name: "string", Bound: 4, Nullable: true}, Bound: 2},
				Bound: 8,
			},
		},
	}

	for _, tt := range tests {
		got, err := ParseExpr(tt.in)
		if err != nil {
			t.Errorf("ParseExpr(%q) got err: %v", tt.in, err)
			continue
		}
		if diff := cmp.Diff(got, tt.want); diff != "" {
			t.Errorf("ParseExpr(%q) wrong result (-got+want):\n%s", tt.in, diff)
		}
		if got := got.String(); got != tt.in {
			t.Errorf("ParseExpr(%q).String() = %q, want original input", tt.in, got)
		}
	}
}

func TestParseExprErrors(t *testing.T) {
	tests := []string{
		"",
		"?",
		"vector",
		"vector<>",
		"vector<uint8",
		"vector<uint8>:",
		"vector<uint8>:x",
		"vector<uint8>:99999999999",
		"array<uint8>",
		"array<uint8>:0",
		"array<uint8>:4?",
		"uint8??",
		"uint8 ",
		"<uint8>",
	}

	for _, in := range tests {
		got, err := ParseExpr(in)
		if err == nil {
			t.Errorf("ParseExpr(%q) = %v, want error", in, got)
		}
	}
}
