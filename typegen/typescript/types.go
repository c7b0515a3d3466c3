package typescript

import (
	"strings"

	"github.com/teranos/fsdefs/typegen/model"
)

// TypeMapping defines how source primitives map to TypeScript types
var TypeMapping = map[string]string{
	"bool":   "boolean",
	"char":   "string",
	"str":    "string",
	"String": "string",
	"i8":     "number",
	"i16":    "number",
	"i32":    "number",
	"i64":    "number",
	"i128":   "number",
	"isize":  "number",
	"u8":     "number",
	"u16":    "number",
	"u32":    "number",
	"u64":    "number",
	"u128":   "number",
	"usize":  "number",
	"f32":    "number",
	"f64":    "number",
}

// UnknownType is used for untyped JSON values
const UnknownType = "unknown"

// TypeName renders a mapped reference as TypeScript type syntax.
// fs_type overrides are F#-only; their fallback type is rendered instead.
func TypeName(r *model.TypeRef) string {
	s, _ := render(r)
	return s
}

// atom parenthesizes union types for use before []
func atom(r *model.TypeRef) string {
	s, union := render(r)
	if union {
		return "(" + s + ")"
	}
	return s
}

// render returns the TypeScript text and whether it is a union type.
func render(r *model.TypeRef) (string, bool) {
	if r == nil {
		return UnknownType, false
	}
	switch r.Kind {
	case model.RefOverride:
		return render(r.Fallback)
	case model.RefPrimitive:
		if t, ok := TypeMapping[r.Name]; ok {
			return t, false
		}
		return r.Name, false
	case model.RefAny:
		return UnknownType, false
	case model.RefUnit:
		return "null", false
	case model.RefGeneric:
		return r.Name, false
	case model.RefOption:
		inner := r.Elem()
		if inner != nil && inner.Kind == model.RefOption {
			// Option<Option<T>> collapses to one null on the wire
			return render(inner)
		}
		return atom(inner) + " | null", true
	case model.RefSeq:
		return atom(r.Elem()) + "[]", false
	case model.RefMap:
		return "Record<" + keyType(r.Args[0]) + ", " + TypeName(r.Args[1]) + ">", false
	case model.RefResult:
		return "{ Ok: " + TypeName(r.Args[0]) + " } | { Err: " + TypeName(r.Args[1]) + " }", true
	case model.RefTuple:
		parts := make([]string, len(r.Args))
		for i, a := range r.Args {
			parts[i] = TypeName(a)
		}
		return "[" + strings.Join(parts, ", ") + "]", false
	case model.RefNamed:
		return r.Name + typeArgs(r.Args), false
	}
	return UnknownType, false
}

// keyType narrows map keys to what JSON object keys can hold.
func keyType(r *model.TypeRef) string {
	switch t := TypeName(r); t {
	case "string", "number":
		return t
	}
	return "string"
}

func typeArgs(args []*model.TypeRef) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = TypeName(a)
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

// GenericParams renders <T, U>.
func GenericParams(generics []string) string {
	if len(generics) == 0 {
		return ""
	}
	return "<" + strings.Join(generics, ", ") + ">"
}
