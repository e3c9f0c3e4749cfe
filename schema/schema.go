// Package schema loads message type descriptors from schema files.
//
// A schema file is YAML or JSON, and declares named structs, unions
// and tables:
//
//	types:
//	  - name: Point
//	    kind: struct
//	    fields:
//	      - {name: x, type: int32}
//	      - {name: y, type: int32}
//	  - name: Shape
//	    kind: union
//	    variants:
//	      - {name: point, tag: 0, ordinal: 1, type: Point}
//	      - {name: path, tag: 1, ordinal: 2, type: "vector<Point>:64"}
//	  - name: Options
//	    kind: table
//	    fields:
//	      - {name: color, ordinal: 1, type: uint32}
//
// Member types are written as type expressions (see [ParseExpr]). A
// trailing "?" makes a reference nullable: a nullable struct is an
// out-of-line pointer, a nullable union is absent-able in both
// encodings. In YAML flow mappings such as {name: x, type: "Point?"},
// a nullable type must be quoted. Declarations may appear in any
// order, and may refer to each other recursively through vectors,
// struct pointers and table fields.
package schema

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// A File is the contents of a schema file.
type File struct {
	Types []*Decl `yaml:"types" json:"types"`
}

// A Decl is the declaration of a named type.
type Decl struct {
	Name string `yaml:"name" json:"name"`
	// Kind is "struct", "union" or "table".
	Kind string `yaml:"kind" json:"kind"`
	// Fields are the fields of a struct or table, in declaration
	// order.
	Fields []Member `yaml:"fields,omitempty" json:"fields,omitempty"`
	// Variants are the variants of a union.
	Variants []Member `yaml:"variants,omitempty" json:"variants,omitempty"`
}

// A Member is a struct field, table field or union variant.
type Member struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
	// Tag is the legacy selector of a union variant.
	Tag uint32 `yaml:"tag,omitempty" json:"tag,omitempty"`
	// Ordinal is the extensible selector of a union variant, or the
	// ordinal of a table field.
	Ordinal uint32 `yaml:"ordinal,omitempty" json:"ordinal,omitempty"`
}

// A Format is a schema file syntax.
type Format int

const (
	YAML Format = iota
	JSON
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf returns the format implied by a schema file's extension.
func FormatOf(path string) (Format, error) {
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	default:
		return 0, fmt.Errorf("unknown schema file extension %q, want .yaml, .yml or .json", ext)
	}
}

// ParseFile parses the raw contents of a schema file. Unknown keys
// are rejected.
func ParseFile(bs []byte, format Format) (*File, error) {
	var ret File
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(bs))
		dec.KnownFields(true)
		if err := dec.Decode(&ret); err != nil {
			return nil, fmt.Errorf("parsing yaml schema: %w", err)
		}
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(bs))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&ret); err != nil {
			return nil, fmt.Errorf("parsing json schema: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown schema format %s", format)
	}
	return &ret, nil
}

// Marshal returns the encoding of f in the given format.
func (f *File) Marshal(format Format) ([]byte, error) {
	switch format {
	case YAML:
		var out bytes.Buffer
		enc := yaml.NewEncoder(&out)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return out.Bytes(), nil
	case JSON:
		return json.MarshalIndent(f, "", "  ")
	default:
		return nil, fmt.Errorf("unknown schema format %s", format)
	}
}

// Parse parses and compiles a schema.
func Parse(bs []byte, format Format) (*Schema, error) {
	f, err := ParseFile(bs, format)
	if err != nil {
		return nil, err
	}
	return Compile(f)
}

// Load reads and compiles the schema file at path. The file's format
// is determined by its extension.
func Load(path string) (*Schema, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ret, err := Parse(bs, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ret, nil
}
