// Package meta parses one attribute annotation into a tree:
//
//	path
//	path = literal
//	path(nested, nested, ...)
//
// where a nested item is either a literal or another meta. Literals are
// strings, integers or booleans.
package meta

import (
	"strconv"
	"strings"

	"github.com/teranos/fsdefs/errors"
	"github.com/teranos/fsdefs/typegen/lex"
)

// Kind of a Meta node
type Kind int

const (
	KindPath Kind = iota
	KindList
	KindNameValue
)

// LitKind of a literal
type LitKind int

const (
	LitString LitKind = iota
	LitInt
	LitBool
)

// Lit is a literal value.
type Lit struct {
	Kind LitKind
	Str  string // decoded string value
	Int  int64
	Bool bool
}

func (l Lit) String() string {
	switch l.Kind {
	case LitInt:
		return strconv.FormatInt(l.Int, 10)
	case LitBool:
		return strconv.FormatBool(l.Bool)
	}
	return strconv.Quote(l.Str)
}

// Meta is a parsed attribute.
type Meta struct {
	Kind   Kind
	Path   string // segments joined with ::
	Value  Lit    // KindNameValue
	Nested []Nested
}

// Nested is one item of a list: exactly one of Meta or Lit is set.
type Nested struct {
	Meta *Meta
	Lit  *Lit
}

// Name returns the last path segment.
func (m *Meta) Name() string {
	if i := strings.LastIndex(m.Path, "::"); i >= 0 {
		return m.Path[i+2:]
	}
	return m.Path
}

// String renders the meta back in source syntax.
func (m *Meta) String() string {
	switch m.Kind {
	case KindNameValue:
		return m.Path + " = " + m.Value.String()
	case KindList:
		parts := make([]string, len(m.Nested))
		for i, n := range m.Nested {
			parts[i] = n.String()
		}
		return m.Path + "(" + strings.Join(parts, ", ") + ")"
	}
	return m.Path
}

func (n Nested) String() string {
	if n.Meta != nil {
		return n.Meta.String()
	}
	if n.Lit != nil {
		return n.Lit.String()
	}
	return ""
}

// Parse parses a single annotation. Failures are marked ErrMalformedAttribute.
func Parse(text string) (*Meta, error) {
	s, err := lex.NewStream(text)
	if err != nil {
		return nil, malformed(err)
	}
	m, err := parseMeta(s)
	if err != nil {
		return nil, malformed(err)
	}
	if err := s.ExpectEOF(); err != nil {
		return nil, malformed(err)
	}
	return m, nil
}

func malformed(err error) error {
	return errors.Mark(err, errors.ErrMalformedAttribute)
}

func parsePath(s *lex.Stream) (string, error) {
	var segs []string
	// a leading :: is allowed, as in ::serde::rename
	s.Accept("::")
	for {
		id, err := s.ExpectIdent()
		if err != nil {
			return "", err
		}
		segs = append(segs, id.Text)
		if !s.Accept("::") {
			return strings.Join(segs, "::"), nil
		}
	}
}

func parseMeta(s *lex.Stream) (*Meta, error) {
	path, err := parsePath(s)
	if err != nil {
		return nil, err
	}
	m := &Meta{Kind: KindPath, Path: path}

	switch {
	case s.Accept("="):
		lit, err := parseLit(s)
		if err != nil {
			return nil, err
		}
		m.Kind = KindNameValue
		m.Value = lit

	case s.Accept("("):
		m.Kind = KindList
		for !s.Accept(")") {
			n, err := parseNested(s)
			if err != nil {
				return nil, err
			}
			m.Nested = append(m.Nested, n)
			if s.Accept(",") {
				continue
			}
			if err := s.Expect(")"); err != nil {
				return nil, err
			}
			break
		}
	}
	return m, nil
}

func parseNested(s *lex.Stream) (Nested, error) {
	t := s.Peek()
	if isLitStart(t) {
		lit, err := parseLit(s)
		if err != nil {
			return Nested{}, err
		}
		return Nested{Lit: &lit}, nil
	}
	m, err := parseMeta(s)
	if err != nil {
		return Nested{}, err
	}
	return Nested{Meta: m}, nil
}

func isLitStart(t lex.Token) bool {
	switch t.Kind {
	case lex.String, lex.Int:
		return true
	case lex.Ident:
		return t.Text == "true" || t.Text == "false"
	case lex.Punct:
		return t.Text == "-"
	}
	return false
}

func parseLit(s *lex.Stream) (Lit, error) {
	t := s.Next()
	switch {
	case t.Kind == lex.String:
		return Lit{Kind: LitString, Str: t.Value}, nil
	case t.Kind == lex.Int:
		return parseInt(t, false)
	case t.Is("-"):
		num := s.Next()
		if num.Kind != lex.Int {
			return Lit{}, lex.Errorf(num.Offset, "expected integer after '-', found %s", num)
		}
		return parseInt(num, true)
	case t.Is("true"):
		return Lit{Kind: LitBool, Bool: true}, nil
	case t.Is("false"):
		return Lit{Kind: LitBool, Bool: false}, nil
	}
	return Lit{}, lex.Errorf(t.Offset, "expected literal, found %s", t)
}

func parseInt(t lex.Token, negative bool) (Lit, error) {
	raw := t.Value
	if negative {
		raw = "-" + raw
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Lit{}, lex.Errorf(t.Offset, "integer literal out of range: %s", raw)
	}
	return Lit{Kind: LitInt, Int: v}, nil
}
