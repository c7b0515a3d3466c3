// Package model normalizes a schema declaration into a Description that the
// mapper and the emitters work from.
package model

import (
	"strconv"

	"github.com/teranos/fsdefs/schema"
	"github.com/teranos/fsdefs/typegen/attrs"
	"github.com/teranos/fsdefs/typegen/diag"
	"github.com/teranos/fsdefs/typegen/srctype"
)

// Kind is the shape of a declaration.
type Kind int

const (
	NamedFields Kind = iota // struct Point { x: i32 }
	TupleFields             // struct UserId(String)
	Unit                    // struct Marker;
	Enum                    // enum Message { ... }
)

func (k Kind) String() string {
	switch k {
	case NamedFields:
		return "struct"
	case TupleFields:
		return "tuple struct"
	case Unit:
		return "unit struct"
	case Enum:
		return "enum"
	}
	return "unknown"
}

// VariantKind is the shape of an enum variant.
type VariantKind int

const (
	VariantUnit   VariantKind = iota // Idle
	VariantTuple                     // Move(i32, i32)
	VariantStruct                    // ButtonState { selected: Vec<String> }
)

// Description is a normalized declaration.
type Description struct {
	Name     string
	Generics []string
	Attrs    *attrs.Attrs
	Kind     Kind
	Fields   []*Field
	Variants []*Variant
	Span     schema.Span
}

// Field is a struct or variant field.
type Field struct {
	Name    string // "" for positional fields
	Index   int
	RawType string
	Type    *srctype.Type // nil when RawType did not parse
	Attrs   *attrs.Attrs
	Span    schema.Span

	// Ref is the mapped type, filled in by the generation session
	Ref *TypeRef
}

// Ident names the field in diagnostics and generated positional names.
func (f *Field) Ident() string {
	if f.Name == "" {
		return attrs.UnnamedField
	}
	return f.Name
}

// Positional reports whether the field has no name.
func (f *Field) Positional() bool {
	return f.Name == ""
}

// ItemName returns a generated name for positional field i: Item1, Item2...
func ItemName(i int) string {
	return "Item" + strconv.Itoa(i+1)
}

// Variant is one enum alternative.
type Variant struct {
	Name   string
	Attrs  *attrs.Attrs
	Kind   VariantKind
	Fields []*Field
	Span   schema.Span
}

// IsGeneric reports whether name is one of the declaration's type parameters.
func (d *Description) IsGeneric(name string) bool {
	for _, g := range d.Generics {
		if g == name {
			return true
		}
	}
	return false
}

// AllFields returns struct fields followed by every variant's fields.
func (d *Description) AllFields() []*Field {
	out := append([]*Field(nil), d.Fields...)
	for _, v := range d.Variants {
		out = append(out, v.Fields...)
	}
	return out
}

// Build normalizes decl. Directive and type expression problems are reported
// to ctx; the returned Description is always usable. Types are not resolved.
func Build(decl *schema.Decl, ctx *diag.Context) *Description {
	d := &Description{
		Name:     decl.Name,
		Generics: append([]string(nil), decl.Generics...),
		Attrs:    attrs.FromDecl(decl, ctx),
		Span:     decl.Span,
	}

	switch decl.Kind {
	case schema.KindEnum:
		d.Kind = Enum
	case schema.KindTuple:
		d.Kind = TupleFields
	case schema.KindUnit:
		d.Kind = Unit
	default:
		d.Kind = NamedFields
	}

	d.Fields = buildFields(decl.Fields, ctx)

	for i := range decl.Variants {
		sv := &decl.Variants[i]
		v := &Variant{
			Name:   sv.Name,
			Attrs:  attrs.FromVariant(sv),
			Fields: buildFields(sv.Fields, ctx),
			Span:   sv.Span,
		}
		switch sv.Kind {
		case schema.KindTuple:
			v.Kind = VariantTuple
		case schema.KindStruct:
			v.Kind = VariantStruct
		default:
			v.Kind = VariantUnit
		}
		d.Variants = append(d.Variants, v)
	}
	return d
}

func buildFields(fields []schema.Field, ctx *diag.Context) []*Field {
	out := make([]*Field, 0, len(fields))
	for i := range fields {
		sf := &fields[i]
		f := &Field{
			Name:    sf.Name,
			Index:   i,
			RawType: sf.Type,
			Attrs:   attrs.FromField(sf, ctx),
			Span:    sf.Span,
		}
		t, err := srctype.Parse(sf.Type)
		if err != nil {
			ctx.Reportf(diag.KindMalformedType, sf.Span, "%s: cannot parse type %q: %v", f.Ident(), sf.Type, err)
		} else {
			f.Type = t
		}
		out = append(out, f)
	}
	return out
}
