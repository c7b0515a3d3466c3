package fsharp

import (
	"strings"

	"github.com/teranos/fsdefs/typegen/model"
)

// TypeMapping defines how source primitives map to F# types
var TypeMapping = map[string]string{
	"bool":   "bool",
	"char":   "char",
	"str":    "string",
	"String": "string",
	"i8":     "sbyte",
	"i16":    "int16",
	"i32":    "int",
	"i64":    "int64",
	"i128":   "bigint",
	"isize":  "int64",
	"u8":     "byte",
	"u16":    "uint16",
	"u32":    "uint32",
	"u64":    "uint64",
	"u128":   "bigint",
	"usize":  "uint64",
	"f32":    "float32",
	"f64":    "float",
}

// UnknownType is used for untyped JSON values and unparsable field types
const UnknownType = "obj"

// TypeName renders a mapped reference as F# type syntax.
func TypeName(r *model.TypeRef) string {
	s, _ := render(r)
	return s
}

// atom renders r and parenthesizes it when it is a tuple or function type,
// for use in postfix and tuple element positions.
func atom(r *model.TypeRef) string {
	s, compound := render(r)
	if compound {
		return "(" + s + ")"
	}
	return s
}

// render returns the F# text and whether it is a compound (tuple or function) type.
func render(r *model.TypeRef) (string, bool) {
	if r == nil {
		return UnknownType, false
	}
	switch r.Kind {
	case model.RefOverride:
		return r.Text, isCompound(r.Text)
	case model.RefPrimitive:
		if t, ok := TypeMapping[r.Name]; ok {
			return t, false
		}
		return r.Name, false
	case model.RefAny:
		return UnknownType, false
	case model.RefUnit:
		return "unit", false
	case model.RefGeneric:
		return GenericParam(r.Name), false
	case model.RefOption:
		return atom(r.Elem()) + " option", false
	case model.RefSeq:
		return atom(r.Elem()) + "[]", false
	case model.RefMap:
		return "Map<" + TypeName(r.Args[0]) + ", " + TypeName(r.Args[1]) + ">", false
	case model.RefResult:
		return "Result<" + TypeName(r.Args[0]) + ", " + TypeName(r.Args[1]) + ">", false
	case model.RefTuple:
		return TupleType(r.Args), len(r.Args) > 1
	case model.RefNamed:
		return r.Name + typeArgs(r.Args), false
	}
	return UnknownType, false
}

// TupleType renders elements joined with *.
func TupleType(elems []*model.TypeRef) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = atom(e)
	}
	return strings.Join(parts, " * ")
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

// GenericParam renders a type parameter: T -> 'T.
func GenericParam(name string) string {
	return "'" + name
}

// GenericParams renders a declaration's parameter list: <'T, 'U>.
func GenericParams(generics []string) string {
	if len(generics) == 0 {
		return ""
	}
	parts := make([]string, len(generics))
	for i, g := range generics {
		parts[i] = GenericParam(g)
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

// isCompound reports whether override text has a top-level * or ->.
func isCompound(text string) bool {
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(', '<', '{', '[':
			depth++
		case ')', '>', '}', ']':
			if depth > 0 && !(text[i] == '>' && i > 0 && text[i-1] == '-') {
				depth--
			}
		case '*':
			if depth == 0 {
				return true
			}
		case '-':
			if depth == 0 && i+1 < len(text) && text[i+1] == '>' {
				return true
			}
		}
	}
	return false
}
