// Package jsonschema generates a JSON Schema (draft 2020-12) document
// describing the wire encoding of every translated declaration, and
// validates payloads against it.
package jsonschema

import (
	"encoding/json"
	"strings"

	"github.com/teranos/fsdefs/errors"
	"github.com/teranos/fsdefs/typegen"
	"github.com/teranos/fsdefs/typegen/model"
	"github.com/teranos/fsdefs/typegen/util"
	"github.com/teranos/fsdefs/typegen/wire"
)

// Draft is the $schema URI of generated documents
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a JSON Schema object
type Schema map[string]any

// String renders s as compact JSON.
func (s Schema) String() string {
	bytes, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(bytes)
}

// Defs returns the $defs section of a generated document.
func (s Schema) Defs() Schema {
	defs, _ := s["$defs"].(Schema)
	return defs
}

// Generator implements typegen.Generator for JSON Schema
type Generator struct{}

// NewGenerator creates a new JSON Schema generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Language returns "jsonschema"
func (g *Generator) Language() string {
	return "jsonschema"
}

// FileExtension returns "json"
func (g *Generator) FileExtension() string {
	return "json"
}

// FileName returns game_protocol.schema.json for Game.Protocol
func (g *Generator) FileName(module string) string {
	base := util.ToSnakeCase(module)
	if base == "" {
		base = "generated"
	}
	return base + ".schema." + g.FileExtension()
}

// GenerateDecl renders the definition of one declaration.
func (g *Generator) GenerateDecl(d *typegen.Decl) string {
	out, err := json.MarshalIndent(Definition(d.Desc), "", "  ")
	if err != nil {
		return ""
	}
	return string(out)
}

// GenerateFile renders one document with a $defs entry per declaration.
func (g *Generator) GenerateFile(result *typegen.Result) (string, error) {
	out, err := json.MarshalIndent(Document(result), "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to encode JSON Schema")
	}
	return string(out) + "\n", nil
}

// Document builds the schema document for result.
func Document(result *typegen.Result) Schema {
	defs := Schema{}
	for _, d := range result.Decls {
		defs[d.Name()] = Definition(d.Desc)
	}
	// types outside the schema accept any value
	for _, d := range result.Decls {
		for _, f := range d.Desc.AllFields() {
			f.Ref.Walk(func(r *model.TypeRef) {
				if r.Kind != model.RefNamed {
					return
				}
				if _, ok := defs[r.Name]; !ok {
					defs[r.Name] = Schema{"$comment": "external type " + r.Name}
				}
			})
		}
	}
	doc := Schema{
		"$schema":  Draft,
		"$comment": strings.TrimPrefix(typegen.Header("", result.Source), " "),
		"$defs":    defs,
	}
	if result.Module != "" {
		doc["title"] = result.Module
	}
	return doc
}

// Definition describes the wire form of one declaration.
func Definition(d *model.Description) Schema {
	var s Schema
	switch d.Kind {
	case model.Enum:
		s = enumSchema(d)
	case model.TupleFields:
		s = tupleSchema(d.Fields)
	case model.Unit:
		s = Schema{"type": "null"}
	default:
		s = objectSchema(d.Fields)
	}
	describe(s, d.Attrs.DocLines())
	return s
}

func describe(s Schema, lines []string) {
	if len(lines) > 0 {
		s["description"] = strings.Join(lines, "\n")
	}
}

func objectSchema(fields []*model.Field) Schema {
	s := Schema{"type": "object"}
	if len(fields) == 0 {
		return s
	}
	props := Schema{}
	required := []string{}
	for _, f := range fields {
		prop := TypeSchema(f.Ref)
		describe(prop, f.Attrs.DocLines())
		props[f.Name] = prop
		// a missing Option field decodes as None
		if !isOptional(f.Ref) {
			required = append(required, f.Name)
		}
	}
	s["properties"] = props
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func isOptional(r *model.TypeRef) bool {
	if r != nil && r.Kind == model.RefOverride {
		r = r.Fallback
	}
	return r != nil && r.Kind == model.RefOption
}

func tupleSchema(fields []*model.Field) Schema {
	if len(fields) == 1 {
		return TypeSchema(fields[0].Ref)
	}
	refs := make([]*model.TypeRef, len(fields))
	for i, f := range fields {
		refs[i] = f.Ref
	}
	return TypeSchema(model.Tuple(refs...))
}

func enumSchema(d *model.Description) Schema {
	if len(d.Variants) == 0 {
		return Schema{"not": Schema{}}
	}
	var members []any
	for _, v := range d.Variants {
		switch wire.ShapeOf(v) {
		case wire.ShapeUnit:
			unit := Schema{"const": v.Name}
			describe(unit, v.Attrs.DocLines())
			members = append(members, unit, tagged(v.Name, Schema{"type": "null"}))
			continue
		case wire.ShapeStruct:
			members = append(members, tagged(v.Name, objectSchema(v.Fields)))
		default:
			members = append(members, tagged(v.Name, tupleSchema(v.Fields)))
		}
		describe(members[len(members)-1].(Schema), v.Attrs.DocLines())
	}
	return Schema{"oneOf": members}
}

// tagged is a single-key object holding payload under tag.
func tagged(tag string, payload Schema) Schema {
	return Schema{
		"type":                 "object",
		"properties":           Schema{tag: payload},
		"required":             []string{tag},
		"additionalProperties": false,
	}
}
