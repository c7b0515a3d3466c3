package jsonschema

import (
	"math"

	"github.com/teranos/fsdefs/typegen/model"
)

type intRange struct {
	min, max float64
}

// integer primitives with the bounds worth enforcing; 64-bit and wider
// values are only constrained by sign
var integers = map[string]*intRange{
	"i8":    {math.MinInt8, math.MaxInt8},
	"i16":   {math.MinInt16, math.MaxInt16},
	"i32":   {math.MinInt32, math.MaxInt32},
	"i64":   nil,
	"i128":  nil,
	"isize": nil,
	"u8":    {0, math.MaxUint8},
	"u16":   {0, math.MaxUint16},
	"u32":   {0, math.MaxUint32},
	"u64":   {0, math.Inf(1)},
	"u128":  {0, math.Inf(1)},
	"usize": {0, math.Inf(1)},
}

// TypeSchema describes the wire form of a mapped reference.
func TypeSchema(r *model.TypeRef) Schema {
	if r == nil {
		return Schema{}
	}
	switch r.Kind {
	case model.RefOverride:
		return TypeSchema(r.Fallback)
	case model.RefPrimitive:
		return primitive(r.Name)
	case model.RefAny, model.RefGeneric:
		return Schema{}
	case model.RefUnit:
		return Schema{"type": "null"}
	case model.RefOption:
		return Schema{"anyOf": []any{TypeSchema(r.Elem()), Schema{"type": "null"}}}
	case model.RefSeq:
		s := Schema{"type": "array", "items": TypeSchema(r.Elem())}
		if r.Len > 0 {
			s["minItems"] = r.Len
			s["maxItems"] = r.Len
		}
		return s
	case model.RefMap:
		s := Schema{"type": "object", "additionalProperties": TypeSchema(r.Args[1])}
		if k := r.Args[0]; k != nil && k.Kind == model.RefPrimitive {
			if _, ok := integers[k.Name]; ok {
				s["propertyNames"] = Schema{"pattern": "^-?[0-9]+$"}
			}
		}
		return s
	case model.RefResult:
		return Schema{"oneOf": []any{
			tagged("Ok", TypeSchema(r.Args[0])),
			tagged("Err", TypeSchema(r.Args[1])),
		}}
	case model.RefTuple:
		items := make([]any, len(r.Args))
		for i, a := range r.Args {
			items[i] = TypeSchema(a)
		}
		s := Schema{"type": "array", "items": false, "minItems": len(items), "maxItems": len(items)}
		if len(items) > 0 {
			s["prefixItems"] = items
		}
		return s
	case model.RefNamed:
		return Schema{"$ref": "#/$defs/" + r.Name}
	}
	return Schema{}
}

func primitive(name string) Schema {
	switch name {
	case "bool":
		return Schema{"type": "boolean"}
	case "str", "String":
		return Schema{"type": "string"}
	case "char":
		return Schema{"type": "string", "minLength": 1, "maxLength": 1}
	case "f32", "f64":
		return Schema{"type": "number"}
	}
	bounds, ok := integers[name]
	if !ok {
		return Schema{}
	}
	s := Schema{"type": "integer"}
	if bounds != nil {
		s["minimum"] = bounds.min
		if !math.IsInf(bounds.max, 1) {
			s["maximum"] = bounds.max
		}
	}
	return s
}
