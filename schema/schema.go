// Package schema defines the input document fsdefs translates: type
// declarations with fields, variants, generics and raw attribute annotations,
// loaded from JSON, YAML or TOML.
package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind is the shape of a declaration or variant.
type Kind string

const (
	KindStruct Kind = "struct" // named fields
	KindTuple  Kind = "tuple"  // positional fields
	KindUnit   Kind = "unit"   // no fields
	KindEnum   Kind = "enum"   // variants
)

// Document is one schema file.
type Document struct {
	Version string `json:"version" yaml:"version" toml:"version"`
	Module  string `json:"module,omitempty" yaml:"module,omitempty" toml:"module"`
	Types   []Decl `json:"types" yaml:"types" toml:"types"`

	// File is the path the document was loaded from, if any
	File string `json:"-" yaml:"-" toml:"-"`
}

// Decl is a struct or enum declaration.
type Decl struct {
	Name     string       `json:"name" yaml:"name" toml:"name"`
	Kind     Kind         `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind"`
	Generics []string     `json:"generics,omitempty" yaml:"generics,omitempty" toml:"generics"`
	Docs     []Annotation `json:"docs,omitempty" yaml:"docs,omitempty" toml:"docs"`
	Attrs    []Annotation `json:"attrs,omitempty" yaml:"attrs,omitempty" toml:"attrs"`
	Fields   []Field      `json:"fields,omitempty" yaml:"fields,omitempty" toml:"fields"`
	Variants []Variant    `json:"variants,omitempty" yaml:"variants,omitempty" toml:"variants"`

	Span Span `json:"-" yaml:"-" toml:"-"`
}

// Field is a named or positional field. Type is a source type expression.
type Field struct {
	Name  string       `json:"name,omitempty" yaml:"name,omitempty" toml:"name"`
	Type  string       `json:"type" yaml:"type" toml:"type"`
	Docs  []Annotation `json:"docs,omitempty" yaml:"docs,omitempty" toml:"docs"`
	Attrs []Annotation `json:"attrs,omitempty" yaml:"attrs,omitempty" toml:"attrs"`

	Span Span `json:"-" yaml:"-" toml:"-"`
}

// Variant is one enum alternative.
type Variant struct {
	Name   string       `json:"name" yaml:"name" toml:"name"`
	Kind   Kind         `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind"`
	Fields []Field      `json:"fields,omitempty" yaml:"fields,omitempty" toml:"fields"`
	Docs   []Annotation `json:"docs,omitempty" yaml:"docs,omitempty" toml:"docs"`
	Attrs  []Annotation `json:"attrs,omitempty" yaml:"attrs,omitempty" toml:"attrs"`

	Span Span `json:"-" yaml:"-" toml:"-"`
}

// Span locates an item or annotation for diagnostics.
type Span struct {
	File string
	// Path is the logical location: Point, Point.x, Message::Render.0
	Path   string
	Line   int
	Column int
}

func (s Span) String() string {
	var b strings.Builder
	if s.File != "" {
		b.WriteString(s.File)
		if s.Line > 0 {
			fmt.Fprintf(&b, ":%d:%d", s.Line, s.Column)
		}
	}
	if s.Path != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(s.Path)
	}
	return b.String()
}

// Annotation is one attribute in source syntax, e.g. `fs(fs_type = "int64")`.
type Annotation struct {
	Text string
	Span Span
}

// Attr builds an annotation without position, for programmatic schemas.
func Attr(text string) Annotation {
	return Annotation{Text: text}
}

// UnmarshalYAML keeps the scalar's position.
func (a *Annotation) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: annotation must be a string", node.Line)
	}
	a.Text = node.Value
	a.Span.Line = node.Line
	a.Span.Column = node.Column
	return nil
}

func (a Annotation) MarshalYAML() (any, error) {
	return a.Text, nil
}

func (a *Annotation) UnmarshalText(text []byte) error {
	a.Text = string(text)
	return nil
}

func (a Annotation) MarshalText() ([]byte, error) {
	return []byte(a.Text), nil
}

// Lookup finds a declaration by name.
func (d *Document) Lookup(name string) (*Decl, bool) {
	for i := range d.Types {
		if d.Types[i].Name == name {
			return &d.Types[i], true
		}
	}
	return nil, false
}

// Names returns declaration names in document order.
func (d *Document) Names() []string {
	names := make([]string, len(d.Types))
	for i, t := range d.Types {
		names[i] = t.Name
	}
	return names
}

// Positional reports whether the field has no name.
func (f *Field) Positional() bool {
	return f.Name == ""
}
