package fsharp

import (
	"fmt"
	"strings"

	"github.com/teranos/fsdefs/typegen/model"
	"github.com/teranos/fsdefs/typegen/source"
	"github.com/teranos/fsdefs/typegen/util"
	"github.com/teranos/fsdefs/typegen/wire"
)

// DefaultHandlerReturn is the handler result type when handler_return is absent
const DefaultHandlerReturn = "unit"

// GenerateGlue renders the handler and factory code requested by d's
// handler_name and factory_name directives. The builder is empty when
// neither is set.
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
	return Ident(d.Name) + GenericParams(d.Generics)
}

func handlerReturn(d *model.Description) string {
	if d.Attrs.HandlerReturn != "" {
		return d.Attrs.HandlerReturn
	}
	return DefaultHandlerReturn
}

// handlerField names the record field dispatching variant v: OnRender.
func handlerField(v *model.Variant) string {
	return "On" + v.Name
}

// variantArg renders the type a handler receives for v.
func variantArg(v *model.Variant) string {
	if wire.ShapeOf(v) == wire.ShapeUnit || len(v.Fields) == 0 {
		return "unit"
	}
	return VariantPayload(v)
}

func writeHandler(b *source.Builder, d *model.Description) {
	name := Ident(d.Attrs.HandlerName) + GenericParams(d.Generics)
	ret := handlerReturn(d)

	if d.Kind != model.Enum {
		b.LnPush(fmt.Sprintf("type %s = %s -> %s", name, selfType(d), ret))
		return
	}
	if len(d.Variants) == 0 {
		return
	}

	b.LnPush("type " + name + " =")
	b.LnPush(indent1 + "{")
	for _, v := range d.Variants {
		b.LnPush(fmt.Sprintf("%s%s: %s -> %s", indent2, handlerField(v), variantArg(v), ret))
	}
	b.LnPush(indent1 + "}")
	b.LnPush("")

	b.LnPush("module " + Ident(d.Attrs.HandlerName) + " =")
	b.LnPush(fmt.Sprintf("%slet handle (handler: %s) (value: %s) : %s =", indent1, name, selfType(d), ret))
	b.LnPush(indent2 + "match value with")
	for _, v := range d.Variants {
		pattern, call := dispatch(v)
		b.LnPush(fmt.Sprintf("%s| %s -> handler.%s %s", indent2, pattern, handlerField(v), call))
	}
}

// dispatch returns the match pattern for v and the argument passed on.
func dispatch(v *model.Variant) (pattern, arg string) {
	name := Ident(v.Name)
	switch {
	case wire.ShapeOf(v) == wire.ShapeUnit:
		return name, "()"
	case len(v.Fields) == 0:
		return name + " ()", "()"
	case v.Kind == model.VariantStruct || len(v.Fields) == 1:
		return name + " v0", "v0"
	}
	vars := positionalVars(len(v.Fields))
	tuple := "(" + strings.Join(vars, ", ") + ")"
	return name + " " + tuple, tuple
}

func positionalVars(n int) []string {
	vars := make([]string, n)
	for i := range vars {
		vars[i] = fmt.Sprintf("v%d", i)
	}
	return vars
}

func writeFactory(b *source.Builder, d *model.Description) {
	ret := selfType(d)
	if alias := d.Attrs.FactoryReturnName; alias != "" && alias != d.Name {
		ret = Ident(alias) + GenericParams(d.Generics)
		b.LnPush(fmt.Sprintf("type %s = %s", ret, selfType(d)))
		b.LnPush("")
	}

	b.LnPush("module " + Ident(d.Attrs.FactoryName) + " =")
	if d.Kind != model.Enum {
		params, value := constructor(d.Fields, d.Kind == model.NamedFields)
		b.LnPush(fmt.Sprintf("%slet create %s : %s = %s", indent1, params, ret, value))
		return
	}
	if len(d.Variants) == 0 {
		b.LnPush(indent1 + "do ()")
		return
	}
	for _, v := range d.Variants {
		fn := Ident(util.ToCamelCase(v.Name))
		switch {
		case wire.ShapeOf(v) == wire.ShapeUnit:
			b.LnPush(fmt.Sprintf("%slet %s () : %s = %s", indent1, fn, ret, Ident(v.Name)))
		case len(v.Fields) == 0:
			b.LnPush(fmt.Sprintf("%slet %s () : %s = %s ()", indent1, fn, ret, Ident(v.Name)))
		default:
			params, value := constructor(v.Fields, v.Kind == model.VariantStruct)
			if v.Kind == model.VariantStruct {
				value = strings.Replace(value, "{", "{|", 1)
				value = value[:len(value)-1] + "|}"
			}
			b.LnPush(fmt.Sprintf("%slet %s %s : %s = %s %s", indent1, fn, params, ret, Ident(v.Name), value))
		}
	}
}

// constructor renders curried typed parameters and the value built from them:
// named fields give a record expression, positional fields a tuple.
func constructor(fields []*model.Field, named bool) (params, value string) {
	if len(fields) == 0 {
		return "()", "()"
	}
	ps := make([]string, len(fields))
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = fmt.Sprintf("v%d", i)
		if named {
			names[i] = Ident(f.Name)
		}
		ps[i] = fmt.Sprintf("(%s: %s)", names[i], TypeName(f.Ref))
	}
	params = strings.Join(ps, " ")

	if named {
		assigns := make([]string, len(fields))
		for i, n := range names {
			assigns[i] = n + " = " + n
		}
		return params, "{ " + strings.Join(assigns, "; ") + " }"
	}
	if len(names) == 1 {
		return params, names[0]
	}
	return params, "(" + strings.Join(names, ", ") + ")"
}
