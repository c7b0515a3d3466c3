package typescript

import (
	"fmt"
	"strings"

	"github.com/teranos/fsdefs/typegen/model"
	"github.com/teranos/fsdefs/typegen/source"
	"github.com/teranos/fsdefs/typegen/util"
	"github.com/teranos/fsdefs/typegen/wire"
)

// resultParam is the handler result type parameter. handler_return names an
// F# type, so TypeScript handlers are generic in their result instead.
const resultParam = "R"

// GenerateGlue renders the handler and factory code requested by d's
// handler_name and factory_name directives.
func GenerateGlue(d *model.Description) *source.Builder {
	b := &source.Builder{}
	if d.Attrs.HandlerName != "" {
		writeHandler(b, d)
	}
	if d.Attrs.FactoryName != "" {
		b.LnPush("")
		writeFactory(b, d)
	}
	return b
}

func selfType(d *model.Description) string {
	return d.Name + GenericParams(d.Generics)
}

// handlerParams declares the type's generics plus the result parameter.
func handlerParams(d *model.Description, withDefault bool) string {
	params := append([]string(nil), d.Generics...)
	if withDefault {
		params = append(params, resultParam+" = void")
	} else {
		params = append(params, resultParam)
	}
	return "<" + strings.Join(params, ", ") + ">"
}

func handlerMethod(v *model.Variant) string {
	return "on" + v.Name
}

func writeHandler(b *source.Builder, d *model.Description) {
	name := d.Attrs.HandlerName

	if d.Kind != model.Enum {
		b.LnPush(fmt.Sprintf("export type %s%s = (value: %s) => %s;", name, handlerParams(d, true), selfType(d), resultParam))
		return
	}
	if len(d.Variants) == 0 {
		return
	}

	b.LnPush("export interface " + name + handlerParams(d, true) + " {")
	for _, v := range d.Variants {
		if wire.ShapeOf(v) == wire.ShapeUnit {
			b.LnPush(fmt.Sprintf("%s%s(): %s;", indent, handlerMethod(v), resultParam))
			continue
		}
		b.LnPush(fmt.Sprintf("%s%s(value: %s): %s;", indent, handlerMethod(v), VariantPayload(v), resultParam))
	}
	b.LnPush("}")
	b.LnPush("")

	handlerType := name + "<" + strings.Join(append(append([]string(nil), d.Generics...), resultParam), ", ") + ">"
	b.LnPush(fmt.Sprintf("export function handle%s%s(handler: %s, value: %s): %s {",
		d.Name, handlerParams(d, false), handlerType, selfType(d), resultParam))

	// string members first so `in` only ever sees objects
	for _, v := range d.Variants {
		if wire.ShapeOf(v) == wire.ShapeUnit {
			b.LnPush(fmt.Sprintf(`%sif (value === "%s") return handler.%s();`, indent, v.Name, handlerMethod(v)))
		}
	}
	for _, v := range d.Variants {
		if wire.ShapeOf(v) != wire.ShapeUnit {
			b.LnPush(fmt.Sprintf(`%sif ("%s" in value) return handler.%s(value[%q]);`, indent, v.Name, handlerMethod(v), v.Name))
		}
	}
	b.LnPush(indent + `throw new Error("unknown ` + d.Name + ` variant");`)
	b.LnPush("}")
}

func writeFactory(b *source.Builder, d *model.Description) {
	ret := selfType(d)
	if alias := d.Attrs.FactoryReturnName; alias != "" && alias != d.Name {
		ret = alias + GenericParams(d.Generics)
		b.LnPush(fmt.Sprintf("export type %s = %s;", ret, selfType(d)))
		b.LnPush("")
	}
	generics := GenericParams(d.Generics)

	b.LnPush("export const " + d.Attrs.FactoryName + " = {")
	if d.Kind != model.Enum {
		params, value := constructor(d.Fields, d.Kind)
		b.LnPush(fmt.Sprintf("%screate: %s(%s): %s => %s,", indent, generics, params, ret, value))
	}
	for _, v := range d.Variants {
		fn := util.ToCamelCase(v.Name)
		tag := propertyName(v.Name)
		switch wire.ShapeOf(v) {
		case wire.ShapeUnit:
			b.LnPush(fmt.Sprintf(`%s%s: %s(): %s => "%s",`, indent, fn, generics, ret, v.Name))
		case wire.ShapeStruct:
			params, value := constructor(v.Fields, model.NamedFields)
			b.LnPush(fmt.Sprintf("%s%s: %s(%s): %s => ({ %s: %s }),", indent, fn, generics, params, ret, tag, strings.Trim(value, "()")))
		default:
			params, value := constructor(v.Fields, model.TupleFields)
			b.LnPush(fmt.Sprintf("%s%s: %s(%s): %s => ({ %s: %s }),", indent, fn, generics, params, ret, tag, value))
		}
	}
	b.LnPush("};")
}

// constructor renders the parameter list and the wire value built from it.
// Object literals are wrapped in parentheses for arrow-function bodies.
func constructor(fields []*model.Field, kind model.Kind) (params, value string) {
	ps := make([]string, len(fields))
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = fmt.Sprintf("v%d", i)
		if kind == model.NamedFields {
			names[i] = paramName(f.Name)
		}
		ps[i] = names[i] + ": " + TypeName(f.Ref)
	}
	params = strings.Join(ps, ", ")

	switch {
	case kind == model.Unit:
		return params, "null"
	case kind == model.NamedFields:
		if len(fields) == 0 {
			return params, "({})"
		}
		props := make([]string, len(fields))
		for i, f := range fields {
			if f.Name == names[i] {
				props[i] = names[i]
				continue
			}
			props[i] = propertyName(f.Name) + ": " + names[i]
		}
		return params, "({ " + strings.Join(props, ", ") + " })"
	case len(fields) == 1:
		return params, names[0]
	}
	return params, "[" + strings.Join(names, ", ") + "]"
}
