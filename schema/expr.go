package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// An Expr is a parsed type expression, such as "vector<Point>:16?".
//
// Name is one of "vector", "string", "array" or "handle" for the
// builtin type constructors, or the name of a primitive or declared
// type.
type Expr struct {
	Name string
	// Elem is the element type of a vector or array.
	Elem *Expr
	// Bound is the maximum count of a vector or string (0 means
	// unbounded), or the length of an array.
	Bound uint32
	// Nullable is set by a trailing "?".
	Nullable bool
}

func (e *Expr) String() string {
	var ret strings.Builder
	ret.WriteString(e.Name)
	if e.Elem != nil {
		ret.WriteString("<" + e.Elem.String() + ">")
	}
	if e.Bound > 0 {
		ret.WriteString(":" + strconv.FormatUint(uint64(e.Bound), 10))
	}
	if e.Nullable {
		ret.WriteString("?")
	}
	return ret.String()
}

// IsBuiltin reports whether e is one of the builtin type constructors
// rather than a reference to a named type.
func (e *Expr) IsBuiltin() bool {
	switch e.Name {
	case "vector", "string", "array", "handle":
		return true
	}
	return false
}

// ParseExpr parses a type expression.
//
// The grammar is:
//
//	expr    = (vector | array | "string" [bound] | "handle" | name) ["?"]
//	vector  = "vector<" expr ">" [bound]
//	array   = "array<" expr ">" bound
//	bound   = ":" decimal
func ParseExpr(s string) (*Expr, error) {
	ret, rest, err := parseExpr(s)
	if err != nil {
		return nil, fmt.Errorf("invalid type %q: %w", s, err)
	}
	if rest != "" {
		return nil, fmt.Errorf("invalid type %q: unexpected %q after type", s, rest)
	}
	return ret, nil
}

func parseExpr(s string) (ret *Expr, rest string, err error) {
	n := strings.IndexFunc(s, func(r rune) bool {
		return !(r == '_' || r == '.' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9'))
	})
	if n < 0 {
		n = len(s)
	}
	if n == 0 {
		return nil, "", errors.New("missing type name")
	}
	ret, rest = &Expr{Name: s[:n]}, s[n:]

	switch ret.Name {
	case "vector", "array":
		if !strings.HasPrefix(rest, "<") {
			return nil, "", fmt.Errorf("missing element type for %s", ret.Name)
		}
		ret.Elem, rest, err = parseExpr(rest[1:])
		if err != nil {
			return nil, "", err
		}
		if !strings.HasPrefix(rest, ">") {
			return nil, "", fmt.Errorf("missing closing > in %s", ret.Name)
		}
		rest = rest[1:]
	}

	switch ret.Name {
	case "vector", "string", "array":
		if strings.HasPrefix(rest, ":") {
			ret.Bound, rest, err = parseBound(rest[1:])
			if err != nil {
				return nil, "", err
			}
		} else if ret.Name == "array" {
			return nil, "", errors.New("missing array length")
		}
	}
	if ret.Name == "array" && ret.Bound == 0 {
		return nil, "", errors.New("array length must be positive")
	}

	if strings.HasPrefix(rest, "?") {
		if ret.Name == "array" {
			return nil, "", errors.New("arrays cannot be nullable")
		}
		ret.Nullable, rest = true, rest[1:]
	}
	return ret, rest, nil
}

func parseBound(s string) (uint32, string, error) {
	n := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if n < 0 {
		n = len(s)
	}
	if n == 0 {
		return 0, "", errors.New("missing bound after :")
	}
	v, err := strconv.ParseUint(s[:n], 10, 32)
	if err != nil {
		return 0, "", fmt.Errorf("invalid bound %q: %w", s[:n], err)
	}
	return uint32(v), s[n:], nil
}
