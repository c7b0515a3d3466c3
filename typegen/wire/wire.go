// Package wire describes the externally-tagged JSON encoding that every
// emitter targets.
//
//	unit variant     "Idle"            ({"Idle": null} is also accepted)
//	newtype variant  {"Render": "<p>"}
//	tuple variant    {"Move": [1, 2]}
//	struct variant   {"ButtonState": {"selected": [], "time": 3}}
//
// Structs follow the same convention: a one-field tuple struct is its value,
// an N-field tuple struct an array, a unit struct null.
package wire

import (
	"github.com/teranos/fsdefs/errors"
	"github.com/teranos/fsdefs/typegen/model"
)

// Shape is the wire form of an enum variant.
type Shape int

const (
	ShapeUnit Shape = iota
	ShapeNewtype
	ShapeTuple
	ShapeStruct
)

func (s Shape) String() string {
	switch s {
	case ShapeUnit:
		return "unit"
	case ShapeNewtype:
		return "newtype"
	case ShapeTuple:
		return "tuple"
	case ShapeStruct:
		return "struct"
	}
	return "unknown"
}

// ShapeOf returns the wire shape of v.
func ShapeOf(v *model.Variant) Shape {
	switch v.Kind {
	case model.VariantStruct:
		return ShapeStruct
	case model.VariantTuple:
		if len(v.Fields) == 1 {
			return ShapeNewtype
		}
		// Variant() with no fields serializes as an empty array
		return ShapeTuple
	}
	return ShapeUnit
}

// StructShape is the wire form of a struct declaration.
type StructShape int

const (
	StructObject  StructShape = iota // {"x": 1}
	StructNewtype                    // the single field's value
	StructArray                      // [a, b]
	StructNull                       // null
)

// StructShapeOf returns the wire form of a non-enum declaration.
func StructShapeOf(d *model.Description) StructShape {
	switch d.Kind {
	case model.TupleFields:
		if len(d.Fields) == 1 {
			return StructNewtype
		}
		return StructArray
	case model.Unit:
		return StructNull
	}
	return StructObject
}

// EncodeVariant builds the wire value of variant v. Values are the field
// values in declaration order; struct variants take names from v.Fields.
func EncodeVariant(v *model.Variant, values ...any) (any, error) {
	if len(values) != len(v.Fields) {
		return nil, errors.Newf("variant %s takes %d values, got %d", v.Name, len(v.Fields), len(values))
	}
	switch ShapeOf(v) {
	case ShapeUnit:
		return v.Name, nil
	case ShapeNewtype:
		return map[string]any{v.Name: values[0]}, nil
	case ShapeTuple:
		return map[string]any{v.Name: append([]any{}, values...)}, nil
	}
	return map[string]any{v.Name: fieldObject(v.Fields, values)}, nil
}

// EncodeStruct builds the wire value of a struct declaration.
func EncodeStruct(d *model.Description, values ...any) (any, error) {
	if d.Kind == model.Enum {
		return nil, errors.Newf("%s is an enum, use EncodeVariant", d.Name)
	}
	if len(values) != len(d.Fields) {
		return nil, errors.Newf("%s takes %d values, got %d", d.Name, len(d.Fields), len(values))
	}
	switch StructShapeOf(d) {
	case StructNull:
		return nil, nil
	case StructNewtype:
		return values[0], nil
	case StructArray:
		return append([]any{}, values...), nil
	}
	return fieldObject(d.Fields, values), nil
}

func fieldObject(fields []*model.Field, values []any) map[string]any {
	obj := make(map[string]any, len(fields))
	for i, f := range fields {
		obj[f.Name] = values[i]
	}
	return obj
}

// VariantTag returns the tag of a decoded externally-tagged value and its
// payload. A bare string is a unit variant with a nil payload.
func VariantTag(value any) (tag string, payload any, err error) {
	switch v := value.(type) {
	case string:
		return v, nil, nil
	case map[string]any:
		if len(v) != 1 {
			return "", nil, errors.Newf("tagged value must have exactly one key, got %d", len(v))
		}
		for k, p := range v {
			return k, p, nil
		}
	}
	return "", nil, errors.Newf("expected string or single-key object, got %T", value)
}
