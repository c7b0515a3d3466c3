package fsharp

import (
	"github.com/teranos/fsdefs/errors"
	"github.com/teranos/fsdefs/typegen/lex"
)

// ValidateType checks text against the F# type grammar accepted for fs_type
// overrides:
//
//	type    := tuple ['->' type]
//	tuple   := postfix {'*' postfix}
//	postfix := atom {ident | '[' ']'}
//	atom    := 'T | longident ['<' type {',' type} '>'] | '(' type ')'
//	         | '{|' ident ':' type {';' ident ':' type} [';'] '|}'
func ValidateType(text string) error {
	s, err := lex.NewStream(text)
	if err != nil {
		return errors.Wrapf(err, "invalid F# type %q", text)
	}
	if s.Peek().Kind == lex.EOF {
		return errors.New("empty F# type")
	}
	if err := parseFun(s); err != nil {
		return errors.Wrapf(err, "invalid F# type %q", text)
	}
	if err := s.ExpectEOF(); err != nil {
		return errors.Wrapf(err, "invalid F# type %q", text)
	}
	return nil
}

func parseFun(s *lex.Stream) error {
	if err := parseTuple(s); err != nil {
		return err
	}
	if s.Accept("->") {
		return parseFun(s)
	}
	return nil
}

func parseTuple(s *lex.Stream) error {
	if err := parsePostfix(s); err != nil {
		return err
	}
	for s.Accept("*") {
		if err := parsePostfix(s); err != nil {
			return err
		}
	}
	return nil
}

func parsePostfix(s *lex.Stream) error {
	if err := parseAtom(s); err != nil {
		return err
	}
	for {
		t := s.Peek()
		switch {
		case t.Kind == lex.Ident:
			s.Next()
		case t.Is("[") && s.PeekN(1).Is("]"):
			s.Next()
			s.Next()
		default:
			return nil
		}
	}
}

func parseAtom(s *lex.Stream) error {
	t := s.Peek()
	switch {
	case t.Kind == lex.Lifetime:
		s.Next()
		return nil

	case t.Is("("):
		s.Next()
		if err := parseFun(s); err != nil {
			return err
		}
		return s.Expect(")")

	case t.Is("{") && s.PeekN(1).Is("|"):
		s.Next()
		s.Next()
		return parseAnonRecord(s)

	case t.Kind == lex.Ident:
		s.Next()
		for s.Peek().Is(".") {
			s.Next()
			if _, err := s.ExpectIdent(); err != nil {
				return err
			}
		}
		if !s.Accept("<") {
			return nil
		}
		for {
			if err := parseFun(s); err != nil {
				return err
			}
			if s.Accept(",") {
				continue
			}
			return s.Expect(">")
		}
	}
	return lex.Errorf(t.Offset, "expected type, found %s", t)
}

func parseAnonRecord(s *lex.Stream) error {
	for {
		if _, err := s.ExpectIdent(); err != nil {
			return err
		}
		if err := s.Expect(":"); err != nil {
			return err
		}
		if err := parseFun(s); err != nil {
			return err
		}
		s.Accept(";")
		if s.Peek().Is("|") && s.PeekN(1).Is("}") {
			s.Next()
			s.Next()
			return nil
		}
	}
}
