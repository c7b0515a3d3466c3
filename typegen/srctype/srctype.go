// Package srctype parses source type expressions such as
// `Option<Vec<(String, i32)>>`, `&'a [u8]` or `std::collections::HashMap<K, V>`.
package srctype

import (
	"strings"

	"github.com/teranos/fsdefs/typegen/lex"
)

// Kind of a type expression
type Kind int

const (
	KindPath  Kind = iota // Vec<T>, std::string::String
	KindTuple             // (A, B); the empty tuple is unit
	KindArray             // [T; N]
	KindSlice             // [T]
	KindRef               // &T, &mut T
)

// Segment is one path segment with its generic arguments.
type Segment struct {
	Name string
	Args []*Type
}

// Type is a parsed type expression.
type Type struct {
	Kind  Kind
	Path  []Segment // KindPath
	Elems []*Type   // KindTuple
	Elem  *Type     // KindArray, KindSlice, KindRef
	Len   string    // KindArray length expression
	Mut   bool      // KindRef
}

var unsupported = map[string]bool{
	"dyn":  true,
	"impl": true,
	"fn":   true,
	"_":    true,
}

// Parse parses a complete type expression.
func Parse(text string) (*Type, error) {
	s, err := lex.NewStream(text)
	if err != nil {
		return nil, err
	}
	if s.Peek().Kind == lex.EOF {
		return nil, lex.Errorf(0, "empty type expression")
	}
	t, err := parseType(s)
	if err != nil {
		return nil, err
	}
	if err := s.ExpectEOF(); err != nil {
		return nil, err
	}
	return t, nil
}

// MustParse is Parse for known-good literals; it panics on error.
func MustParse(text string) *Type {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

func parseType(s *lex.Stream) (*Type, error) {
	t := s.Peek()
	switch {
	case t.Is("&"):
		s.Next()
		if s.Peek().Kind == lex.Lifetime {
			s.Next()
		}
		ref := &Type{Kind: KindRef}
		if s.Peek().Is("mut") {
			s.Next()
			ref.Mut = true
		}
		elem, err := parseType(s)
		if err != nil {
			return nil, err
		}
		ref.Elem = elem
		return ref, nil

	case t.Is("("):
		return parseTuple(s)

	case t.Is("["):
		s.Next()
		elem, err := parseType(s)
		if err != nil {
			return nil, err
		}
		if s.Accept("]") {
			return &Type{Kind: KindSlice, Elem: elem}, nil
		}
		if err := s.Expect(";"); err != nil {
			return nil, err
		}
		n := s.Next()
		if n.Kind != lex.Int && n.Kind != lex.Ident {
			return nil, lex.Errorf(n.Offset, "expected array length, found %s", n)
		}
		if err := s.Expect("]"); err != nil {
			return nil, err
		}
		return &Type{Kind: KindArray, Elem: elem, Len: n.Text}, nil

	case t.Is("::") || t.Kind == lex.Ident:
		return parsePath(s)
	}
	return nil, lex.Errorf(t.Offset, "expected type, found %s", t)
}

func parseTuple(s *lex.Stream) (*Type, error) {
	s.Next() // (
	tup := &Type{Kind: KindTuple}
	if s.Accept(")") {
		return tup, nil
	}
	trailingComma := false
	for {
		elem, err := parseType(s)
		if err != nil {
			return nil, err
		}
		tup.Elems = append(tup.Elems, elem)
		trailingComma = s.Accept(",")
		if s.Accept(")") {
			break
		}
		if !trailingComma {
			t := s.Peek()
			return nil, lex.Errorf(t.Offset, "expected ',' or ')', found %s", t)
		}
	}
	// (T) is a parenthesized type, (T,) a one-element tuple
	if len(tup.Elems) == 1 && !trailingComma {
		return tup.Elems[0], nil
	}
	return tup, nil
}

func parsePath(s *lex.Stream) (*Type, error) {
	s.Accept("::")
	p := &Type{Kind: KindPath}
	for {
		id, err := s.ExpectIdent()
		if err != nil {
			return nil, err
		}
		if unsupported[id.Text] {
			return nil, lex.Errorf(id.Offset, "unsupported type syntax %q", id.Text)
		}
		seg := Segment{Name: id.Text}

		// turbofish Vec::<T> or plain Vec<T>
		if s.Peek().Is("::") && s.PeekN(1).Is("<") {
			s.Next()
		}
		if s.Accept("<") {
			args, err := parseArgs(s)
			if err != nil {
				return nil, err
			}
			seg.Args = args
		}
		p.Path = append(p.Path, seg)
		if !s.Accept("::") {
			return p, nil
		}
	}
}

func parseArgs(s *lex.Stream) ([]*Type, error) {
	var args []*Type
	for !s.Accept(">") {
		if s.Peek().Kind == lex.Lifetime {
			s.Next()
		} else {
			arg, err := parseType(s)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		if s.Accept(",") {
			continue
		}
		if err := s.Expect(">"); err != nil {
			return nil, err
		}
		break
	}
	return args, nil
}

// IsUnit reports whether t is the empty tuple ().
func (t *Type) IsUnit() bool {
	return t.Kind == KindTuple && len(t.Elems) == 0
}

// Last returns the final path segment, or nil for non-path types.
func (t *Type) Last() *Segment {
	if t.Kind != KindPath || len(t.Path) == 0 {
		return nil
	}
	return &t.Path[len(t.Path)-1]
}

// PathString joins segment names without generic arguments: std::vec::Vec.
func (t *Type) PathString() string {
	names := make([]string, len(t.Path))
	for i, seg := range t.Path {
		names[i] = seg.Name
	}
	return strings.Join(names, "::")
}

// IsSingleIdent reports whether t is a bare identifier without arguments,
// the shape of a generic parameter reference.
func (t *Type) IsSingleIdent() bool {
	return t.Kind == KindPath && len(t.Path) == 1 && len(t.Path[0].Args) == 0
}

// String renders t in canonical source syntax.
func (t *Type) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Type) write(b *strings.Builder) {
	switch t.Kind {
	case KindRef:
		b.WriteString("&")
		if t.Mut {
			b.WriteString("mut ")
		}
		t.Elem.write(b)
	case KindTuple:
		b.WriteString("(")
		for i, e := range t.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			e.write(b)
		}
		if len(t.Elems) == 1 {
			b.WriteString(",")
		}
		b.WriteString(")")
	case KindSlice:
		b.WriteString("[")
		t.Elem.write(b)
		b.WriteString("]")
	case KindArray:
		b.WriteString("[")
		t.Elem.write(b)
		b.WriteString("; ")
		b.WriteString(t.Len)
		b.WriteString("]")
	case KindPath:
		for i, seg := range t.Path {
			if i > 0 {
				b.WriteString("::")
			}
			b.WriteString(seg.Name)
			if len(seg.Args) > 0 {
				b.WriteString("<")
				for j, a := range seg.Args {
					if j > 0 {
						b.WriteString(", ")
					}
					a.write(b)
				}
				b.WriteString(">")
			}
		}
	}
}
