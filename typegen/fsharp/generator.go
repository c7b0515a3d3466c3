// Package fsharp generates F# records, abbreviations and discriminated unions.
package fsharp

import (
	"strings"

	"github.com/teranos/fsdefs/typegen"
	"github.com/teranos/fsdefs/typegen/model"
	"github.com/teranos/fsdefs/typegen/source"
	"github.com/teranos/fsdefs/typegen/util"
	"github.com/teranos/fsdefs/typegen/wire"
)

const (
	indent1 = "    "
	indent2 = "        "

	// DefaultNamespace is used when neither the generator nor the schema names one
	DefaultNamespace = "Generated"
)

// Generator implements typegen.Generator for F#
type Generator struct {
	// Namespace overrides the schema's module name
	Namespace string
}

// NewGenerator creates a new F# generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Language returns "fsharp"
func (g *Generator) Language() string {
	return "fsharp"
}

// FileExtension returns "fs"
func (g *Generator) FileExtension() string {
	return "fs"
}

// FileName returns the PascalCase module name: Game.Protocol -> GameProtocol.fs
func (g *Generator) FileName(module string) string {
	base := util.ToPascalCase(module)
	if base == "" {
		base = DefaultNamespace
	}
	return base + "." + g.FileExtension()
}

// GenerateDecl renders one declaration as a standalone `type`.
func (g *Generator) GenerateDecl(d *typegen.Decl) string {
	b := &source.Builder{}
	writeDecl(b, d.Desc, "type")
	return b.String()
}

// GenerateFile renders every declaration in emission order. Recursive groups
// are chained with `and`; handler and factory glue follows the types.
func (g *Generator) GenerateFile(result *typegen.Result) (string, error) {
	ns := g.Namespace
	if ns == "" {
		ns = result.Module
	}
	if ns == "" {
		ns = DefaultNamespace
	}

	b := &source.Builder{}
	b.LnPush(typegen.Header("//", result.Source))
	b.LnPush("namespace " + ns)

	for _, group := range result.Groups() {
		for i, d := range group {
			b.LnPush("")
			keyword := "type"
			if i > 0 {
				keyword = "and"
			}
			writeDecl(b, d.Desc, keyword)
		}
	}

	for _, d := range result.Decls {
		glue := GenerateGlue(d.Desc)
		if glue.IsNotEmpty() {
			b.LnPush("")
			b.PushSource(glue)
		}
	}

	return b.String() + "\n", nil
}

func writeDoc(b *source.Builder, lines []string, indent string) {
	for _, l := range lines {
		if l == "" {
			b.LnPush(indent + "///")
			continue
		}
		b.LnPush(indent + "/// " + l)
	}
}

func writeDecl(b *source.Builder, d *model.Description, keyword string) {
	writeDoc(b, d.Attrs.DocLines(), "")
	header := keyword + " " + Ident(d.Name) + GenericParams(d.Generics) + " ="

	switch d.Kind {
	case model.Enum:
		if len(d.Variants) == 0 {
			b.LnPush(header + " class end")
			return
		}
		b.LnPush(header)
		for _, v := range d.Variants {
			writeVariant(b, v)
		}

	case model.TupleFields:
		refs := make([]*model.TypeRef, len(d.Fields))
		for i, f := range d.Fields {
			refs[i] = f.Ref
		}
		if len(refs) == 1 {
			b.LnPush(header + " " + TypeName(refs[0]))
			return
		}
		b.LnPush(header + " " + TupleType(refs))

	default:
		// The wire form of a field-less struct is {}, not null; decoders of
		// the unit alias must accept an empty object.
		if len(d.Fields) == 0 {
			b.LnPush(header + " unit")
			return
		}
		b.LnPush(header)
		b.LnPush(indent1 + "{")
		for _, f := range d.Fields {
			writeDoc(b, f.Attrs.DocLines(), indent2)
			b.LnPush(indent2 + Ident(f.Name) + ": " + TypeName(f.Ref))
		}
		b.LnPush(indent1 + "}")
	}
}

func writeVariant(b *source.Builder, v *model.Variant) {
	writeDoc(b, v.Attrs.DocLines(), indent1)
	line := indent1 + "| " + Ident(v.Name)

	switch wire.ShapeOf(v) {
	case wire.ShapeUnit:
		b.LnPush(line)
	case wire.ShapeNewtype, wire.ShapeTuple:
		if len(v.Fields) == 0 {
			b.LnPush(line + " of unit")
			return
		}
		b.LnPush(line + " of " + VariantPayload(v))
	case wire.ShapeStruct:
		if len(v.Fields) == 0 {
			b.LnPush(line + " of unit")
			return
		}
		if !fieldsHaveDocs(v.Fields) {
			b.LnPush(line + " of " + AnonRecord(v.Fields))
			return
		}
		b.LnPush(line + " of")
		b.LnPush(indent2 + "{|")
		for _, f := range v.Fields {
			writeDoc(b, f.Attrs.DocLines(), indent2+indent1)
			b.LnPush(indent2 + indent1 + Ident(f.Name) + ": " + TypeName(f.Ref))
		}
		b.LnPush(indent2 + "|}")
	}
}

// VariantPayload renders the `of` part of a variant: int * int, or an
// anonymous record for struct variants.
func VariantPayload(v *model.Variant) string {
	if v.Kind == model.VariantStruct {
		return AnonRecord(v.Fields)
	}
	refs := make([]*model.TypeRef, len(v.Fields))
	for i, f := range v.Fields {
		refs[i] = f.Ref
	}
	return TupleType(refs)
}

// AnonRecord renders {| a: int; b: string |}.
func AnonRecord(fields []*model.Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = Ident(f.Name) + ": " + TypeName(f.Ref)
	}
	return "{| " + strings.Join(parts, "; ") + " |}"
}

func fieldsHaveDocs(fields []*model.Field) bool {
	for _, f := range fields {
		if f.Attrs.HasDoc() {
			return true
		}
	}
	return false
}
