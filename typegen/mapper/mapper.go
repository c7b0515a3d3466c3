// Package mapper resolves field types into model.TypeRef values.
//
// Resolution order for a field:
//
//  1. fs_type, when it passes the override grammar
//  2. ts_as, replacing the declared source type
//  3. containers (Option, sequences, maps, Result, smart pointers, tuples)
//  4. generic parameters of the enclosing declaration
//  5. primitives
//  6. any other path, as a reference to a named declaration
package mapper

import (
	"strconv"

	"github.com/teranos/fsdefs/typegen/diag"
	"github.com/teranos/fsdefs/typegen/model"
	"github.com/teranos/fsdefs/typegen/srctype"
)

// Registry tracks named declarations during a generation session.
type Registry interface {
	// Require is called for every named reference. It reports whether the
	// referenced declaration is still being translated.
	Require(name string) (pending bool)
}

// Mapper maps source types for one declaration.
type Mapper struct {
	// ValidateOverride checks fs_type text; nil accepts everything
	ValidateOverride func(text string) error
	// Registry receives named references; nil leaves them unresolved
	Registry Registry
}

// Primitives are the source scalar types.
var Primitives = map[string]bool{
	"bool": true, "char": true, "str": true, "String": true,
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true, "isize": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true, "usize": true,
	"f32": true, "f64": true,
}

var (
	sequences = map[string]bool{
		"Vec": true, "VecDeque": true, "LinkedList": true, "BinaryHeap": true,
		"HashSet": true, "BTreeSet": true, "IndexSet": true,
	}
	maps = map[string]bool{
		"HashMap": true, "BTreeMap": true, "IndexMap": true,
	}
	// serialized exactly like their single type argument
	transparent = map[string]bool{
		"Box": true, "Rc": true, "Arc": true, "Cow": true,
		"Cell": true, "RefCell": true, "Mutex": true, "RwLock": true,
	}
	anyPaths = map[string]bool{
		"serde_json::Value": true,
	}
)

// MapField resolves f's type in the context of desc.
func (m *Mapper) MapField(desc *model.Description, f *model.Field, ctx *diag.Context) *model.TypeRef {
	base := func() *model.TypeRef {
		if f.Attrs.TsAs != nil {
			return m.MapType(desc, f.Attrs.TsAs)
		}
		if f.Type == nil {
			return model.Any()
		}
		return m.MapType(desc, f.Type)
	}

	if text := f.Attrs.FsType; text != "" {
		err := m.validate(text)
		if err == nil {
			return model.Override(text, base())
		}
		ctx.Reportf(diag.KindMalformedValue, f.Span, "%s: fs_type: %q is not a valid F# type: %v", f.Ident(), text, err)
	}
	return base()
}

func (m *Mapper) validate(text string) error {
	if m.ValidateOverride == nil {
		return nil
	}
	return m.ValidateOverride(text)
}

// MapType resolves a source type expression.
func (m *Mapper) MapType(desc *model.Description, t *srctype.Type) *model.TypeRef {
	switch t.Kind {
	case srctype.KindRef:
		return m.MapType(desc, t.Elem)
	case srctype.KindTuple:
		if t.IsUnit() {
			return model.UnitRef()
		}
		elems := make([]*model.TypeRef, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = m.MapType(desc, e)
		}
		return model.Tuple(elems...)
	case srctype.KindSlice:
		return model.Seq(m.MapType(desc, t.Elem))
	case srctype.KindArray:
		seq := model.Seq(m.MapType(desc, t.Elem))
		if n, err := strconv.Atoi(t.Len); err == nil {
			seq.Len = n
		}
		return seq
	}
	return m.mapPath(desc, t)
}

func (m *Mapper) mapPath(desc *model.Description, t *srctype.Type) *model.TypeRef {
	last := t.Last()
	name, args := last.Name, last.Args

	if t.IsSingleIdent() && desc != nil && desc.IsGeneric(name) {
		return model.Generic(name)
	}

	switch {
	case len(args) == 1 && name == "Option":
		return model.Option(m.MapType(desc, args[0]))
	case len(args) == 1 && sequences[name]:
		return model.Seq(m.MapType(desc, args[0]))
	case len(args) == 2 && maps[name]:
		return model.Map(m.MapType(desc, args[0]), m.MapType(desc, args[1]))
	case len(args) == 2 && name == "Result":
		return model.Result(m.MapType(desc, args[0]), m.MapType(desc, args[1]))
	case len(args) == 1 && transparent[name]:
		return m.MapType(desc, args[0])
	case name == "PhantomData":
		return model.UnitRef()
	case len(args) == 0 && Primitives[name]:
		return model.Primitive(name)
	case anyPaths[t.PathString()]:
		return model.Any()
	}

	ref := model.Named(name)
	for _, a := range args {
		ref.Args = append(ref.Args, m.MapType(desc, a))
	}
	if m.Registry != nil {
		ref.Pending = m.Registry.Require(name)
	}
	return ref
}
