// Package typescript generates TypeScript interfaces, aliases and
// externally tagged union types.
package typescript

import (
	"strings"

	"github.com/teranos/fsdefs/typegen"
	"github.com/teranos/fsdefs/typegen/model"
	"github.com/teranos/fsdefs/typegen/source"
	"github.com/teranos/fsdefs/typegen/util"
	"github.com/teranos/fsdefs/typegen/wire"
)

const indent = "  "

// Generator implements typegen.Generator for TypeScript
type Generator struct{}

// NewGenerator creates a new TypeScript generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Language returns "typescript"
func (g *Generator) Language() string {
	return "typescript"
}

// FileExtension returns "ts"
func (g *Generator) FileExtension() string {
	return "ts"
}

// FileName returns the snake_case module name: Game.Protocol -> game_protocol.ts
func (g *Generator) FileName(module string) string {
	base := util.ToSnakeCase(module)
	if base == "" {
		base = "generated"
	}
	return base + "." + g.FileExtension()
}

// GenerateDecl renders one declaration.
func (g *Generator) GenerateDecl(d *typegen.Decl) string {
	b := &source.Builder{}
	writeDecl(b, d.Desc)
	return b.String()
}

// GenerateFile renders every declaration followed by handler and factory glue.
// Type aliases are hoisted, so recursive groups need no special ordering.
func (g *Generator) GenerateFile(result *typegen.Result) (string, error) {
	b := &source.Builder{}
	b.LnPush(typegen.Header("//", result.Source))
	b.LnPush("/* eslint-disable */")

	for _, d := range result.Decls {
		b.LnPush("")
		writeDecl(b, d.Desc)
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

// writeDoc renders JSDoc: one line stays inline, more use a block.
func writeDoc(b *source.Builder, lines []string, prefix string) {
	switch len(lines) {
	case 0:
		return
	case 1:
		b.LnPush(prefix + "/** " + lines[0] + " */")
		return
	}
	b.LnPush(prefix + "/**")
	for _, l := range lines {
		if l == "" {
			b.LnPush(prefix + " *")
			continue
		}
		b.LnPush(prefix + " * " + l)
	}
	b.LnPush(prefix + " */")
}

func writeDecl(b *source.Builder, d *model.Description) {
	writeDoc(b, d.Attrs.DocLines(), "")
	name := d.Name + GenericParams(d.Generics)

	switch d.Kind {
	case model.Enum:
		if len(d.Variants) == 0 {
			b.LnPush("export type " + name + " = never;")
			return
		}
		b.LnPush("export type " + name + " =")
		for i, v := range d.Variants {
			writeDoc(b, v.Attrs.DocLines(), indent)
			line := indent + "| " + VariantType(v)
			if i == len(d.Variants)-1 {
				line += ";"
			}
			b.LnPush(line)
		}

	case model.TupleFields:
		b.LnPush("export type " + name + " = " + tupleBody(d.Fields) + ";")

	case model.Unit:
		b.LnPush("export type " + name + " = null;")

	default:
		if len(d.Fields) == 0 {
			b.LnPush("export type " + name + " = Record<string, never>;")
			return
		}
		b.LnPush("export interface " + name + " {")
		for _, f := range d.Fields {
			writeDoc(b, f.Attrs.DocLines(), indent)
			b.LnPush(indent + propertyName(f.Name) + ": " + TypeName(f.Ref) + ";")
		}
		b.LnPush("}")
	}
}

// tupleBody renders a newtype as its value and other tuples as arrays.
func tupleBody(fields []*model.Field) string {
	if len(fields) == 1 {
		return TypeName(fields[0].Ref)
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = TypeName(f.Ref)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// VariantType renders one member of an externally tagged union:
// "Idle", { Render: string }, { Move: [number, number] }.
func VariantType(v *model.Variant) string {
	if wire.ShapeOf(v) == wire.ShapeUnit {
		return `"` + v.Name + `"`
	}
	return "{ " + propertyName(v.Name) + ": " + VariantPayload(v) + " }"
}

// VariantPayload renders the value under a variant's tag.
func VariantPayload(v *model.Variant) string {
	switch wire.ShapeOf(v) {
	case wire.ShapeUnit:
		return "null"
	case wire.ShapeNewtype:
		return TypeName(v.Fields[0].Ref)
	case wire.ShapeTuple:
		return tupleBody(v.Fields)
	}
	if len(v.Fields) == 0 {
		return "Record<string, never>"
	}
	parts := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		parts[i] = propertyName(f.Name) + ": " + TypeName(f.Ref)
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}
