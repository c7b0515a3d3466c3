package model

import "strings"

// RefKind classifies a mapped type reference.
type RefKind int

const (
	RefPrimitive RefKind = iota // Name is the source primitive: i32, String...
	RefAny                      // untyped JSON value
	RefUnit                     // ()
	RefGeneric                  // Name is a type parameter
	RefNamed                    // Name is a declared or external type; Args are its type arguments
	RefOption                   // Args[0]
	RefSeq                      // Args[0]
	RefMap                      // Args[0] key, Args[1] value
	RefTuple                    // Args are the elements
	RefResult                   // Args[0] ok, Args[1] err
	RefOverride                 // Text verbatim, Fallback for targets that ignore it
)

// TypeRef is a source type mapped to a language-neutral reference.
type TypeRef struct {
	Kind RefKind
	Name string
	Args []*TypeRef

	// Len is the fixed length of an array-backed sequence, 0 otherwise
	Len int

	Text     string
	Fallback *TypeRef

	// Pending marks a reference to a declaration still being translated
	Pending bool
}

func Primitive(name string) *TypeRef { return &TypeRef{Kind: RefPrimitive, Name: name} }
func Any() *TypeRef                  { return &TypeRef{Kind: RefAny} }
func UnitRef() *TypeRef              { return &TypeRef{Kind: RefUnit} }
func Generic(name string) *TypeRef   { return &TypeRef{Kind: RefGeneric, Name: name} }
func Option(t *TypeRef) *TypeRef     { return &TypeRef{Kind: RefOption, Args: []*TypeRef{t}} }
func Seq(t *TypeRef) *TypeRef        { return &TypeRef{Kind: RefSeq, Args: []*TypeRef{t}} }
func Map(k, v *TypeRef) *TypeRef     { return &TypeRef{Kind: RefMap, Args: []*TypeRef{k, v}} }
func Tuple(elems ...*TypeRef) *TypeRef {
	return &TypeRef{Kind: RefTuple, Args: elems}
}
func Result(ok, err *TypeRef) *TypeRef {
	return &TypeRef{Kind: RefResult, Args: []*TypeRef{ok, err}}
}
func Named(name string, args ...*TypeRef) *TypeRef {
	return &TypeRef{Kind: RefNamed, Name: name, Args: args}
}
func Override(text string, fallback *TypeRef) *TypeRef {
	return &TypeRef{Kind: RefOverride, Text: text, Fallback: fallback}
}

// Elem returns the first argument, or nil.
func (r *TypeRef) Elem() *TypeRef {
	if len(r.Args) == 0 {
		return nil
	}
	return r.Args[0]
}

// Walk calls fn for r and every nested reference, fallbacks included.
func (r *TypeRef) Walk(fn func(*TypeRef)) {
	if r == nil {
		return
	}
	fn(r)
	for _, a := range r.Args {
		a.Walk(fn)
	}
	r.Fallback.Walk(fn)
}

// String renders a compact debug form: Option<Seq<i32>>, Named(Tree)<'T>.
func (r *TypeRef) String() string {
	if r == nil {
		return "<nil>"
	}
	var b strings.Builder
	switch r.Kind {
	case RefPrimitive:
		b.WriteString(r.Name)
	case RefAny:
		b.WriteString("any")
	case RefUnit:
		b.WriteString("()")
	case RefGeneric:
		b.WriteString("'" + r.Name)
	case RefNamed:
		b.WriteString(r.Name)
		if r.Pending {
			b.WriteString("^")
		}
	case RefOption:
		b.WriteString("Option")
	case RefSeq:
		b.WriteString("Seq")
	case RefMap:
		b.WriteString("Map")
	case RefTuple:
		b.WriteString("Tuple")
	case RefResult:
		b.WriteString("Result")
	case RefOverride:
		return "override(" + r.Text + ")"
	}
	if len(r.Args) > 0 {
		parts := make([]string, len(r.Args))
		for i, a := range r.Args {
			parts[i] = a.String()
		}
		b.WriteString("<" + strings.Join(parts, ", ") + ">")
	}
	return b.String()
}
