// Package lex tokenizes the small Rust-like syntax shared by attribute
// annotations and source type expressions.
package lex

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind identifies a token class
type TokenKind int

const (
	EOF TokenKind = iota
	Ident
	Lifetime // 'a
	Int
	String
	Punct
)

func (k TokenKind) String() string {
	switch k {
	case EOF:
		return "end of input"
	case Ident:
		return "identifier"
	case Lifetime:
		return "lifetime"
	case Int:
		return "integer"
	case String:
		return "string"
	case Punct:
		return "punctuation"
	}
	return "unknown"
}

// Token is one lexeme. For strings Value holds the decoded text; Text always
// holds the source slice.
type Token struct {
	Kind   TokenKind
	Text   string
	Value  string
	Offset int // 0-based byte offset
}

// Is reports whether the token is the given punctuation or identifier.
func (t Token) Is(text string) bool {
	return (t.Kind == Punct || t.Kind == Ident) && t.Text == text
}

func (t Token) String() string {
	if t.Kind == EOF {
		return t.Kind.String()
	}
	return strconv.Quote(t.Text)
}

// Error is a lexing or parsing failure at a byte offset.
type Error struct {
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("at offset %d: %s", e.Offset, e.Msg)
}

// Errorf builds an Error at offset.
func Errorf(offset int, format string, args ...any) *Error {
	return &Error{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// two-character punctuation, checked before single characters
var digraphs = []string{"::", "->"}

const singlePunct = "()[]{}<>,;=&*:!#|?.-+'"

// Tokenize splits src into tokens, ending with an EOF token.
func Tokenize(src string) ([]Token, error) {
	var toks []Token
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case unicode.IsSpace(r):
			i += size

		case r == '"':
			value, end, err := scanString(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Kind: String, Text: src[i:end], Value: value, Offset: i})
			i = end

		case strings.HasPrefix(src[i:], "r#") && isIdentStart(src[i+2:]):
			// raw identifier r#type
			end := scanIdent(src, i+2)
			toks = append(toks, Token{Kind: Ident, Text: src[i+2 : end], Offset: i})
			i = end

		case r == 'r' && i+1 < len(src) && (src[i+1] == '"' || src[i+1] == '#'):
			value, end, err := scanRawString(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Kind: String, Text: src[i:end], Value: value, Offset: i})
			i = end

		case r == '_' || unicode.IsLetter(r):
			end := scanIdent(src, i)
			toks = append(toks, Token{Kind: Ident, Text: src[i:end], Offset: i})
			i = end

		case r == '\'' && i+1 < len(src) && isIdentStart(src[i+1:]):
			end := scanIdent(src, i+1)
			if end < len(src) && src[end] == '\'' {
				return nil, Errorf(i, "character literals are not supported")
			}
			toks = append(toks, Token{Kind: Lifetime, Text: src[i:end], Offset: i})
			i = end

		case r >= '0' && r <= '9':
			end := i
			for end < len(src) && (isDigit(src[end]) || src[end] == '_') {
				end++
			}
			text := src[i:end]
			toks = append(toks, Token{Kind: Int, Text: text, Value: strings.ReplaceAll(text, "_", ""), Offset: i})
			i = end

		default:
			if p := matchDigraph(src[i:]); p != "" {
				toks = append(toks, Token{Kind: Punct, Text: p, Offset: i})
				i += len(p)
				continue
			}
			if r < utf8.RuneSelf && strings.IndexByte(singlePunct, byte(r)) >= 0 {
				toks = append(toks, Token{Kind: Punct, Text: string(r), Offset: i})
				i += size
				continue
			}
			return nil, Errorf(i, "unexpected character %q", r)
		}
	}
	return append(toks, Token{Kind: EOF, Offset: len(src)}), nil
}

func matchDigraph(s string) string {
	for _, d := range digraphs {
		if strings.HasPrefix(s, d) {
			return d
		}
	}
	return ""
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isIdentStart(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r == '_' || unicode.IsLetter(r)
}

func scanIdent(src string, i int) int {
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		i += size
	}
	return i
}

// scanString decodes a double-quoted literal starting at src[start].
func scanString(src string, start int) (string, int, error) {
	var b strings.Builder
	i := start + 1
	for i < len(src) {
		c := src[i]
		switch c {
		case '"':
			return b.String(), i + 1, nil
		case '\\':
			if i+1 >= len(src) {
				return "", 0, Errorf(i, "unterminated escape")
			}
			n, width, err := decodeEscape(src, i)
			if err != nil {
				return "", 0, err
			}
			b.WriteString(n)
			i += width
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, Errorf(start, "unterminated string literal")
}

func decodeEscape(src string, i int) (string, int, error) {
	switch src[i+1] {
	case 'n':
		return "\n", 2, nil
	case 'r':
		return "\r", 2, nil
	case 't':
		return "\t", 2, nil
	case '0':
		return "\x00", 2, nil
	case '\\':
		return "\\", 2, nil
	case '"':
		return "\"", 2, nil
	case '\'':
		return "'", 2, nil
	case '\n':
		// line continuation skips the newline and leading whitespace
		j := i + 2
		for j < len(src) && unicode.IsSpace(rune(src[j])) {
			j++
		}
		return "", j - i, nil
	case 'x':
		if i+4 > len(src) {
			return "", 0, Errorf(i, "truncated \\x escape")
		}
		v, err := strconv.ParseUint(src[i+2:i+4], 16, 8)
		if err != nil || v > 0x7f {
			return "", 0, Errorf(i, "invalid \\x escape")
		}
		return string(rune(v)), 4, nil
	case 'u':
		if i+2 >= len(src) || src[i+2] != '{' {
			return "", 0, Errorf(i, "expected '{' after \\u")
		}
		end := strings.IndexByte(src[i:], '}')
		if end < 0 {
			return "", 0, Errorf(i, "unterminated \\u escape")
		}
		v, err := strconv.ParseUint(src[i+3:i+end], 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) {
			return "", 0, Errorf(i, "invalid \\u escape")
		}
		return string(rune(v)), end + 1, nil
	}
	return "", 0, Errorf(i, "unknown escape \\%c", src[i+1])
}

// scanRawString decodes r"..." or r#"..."# starting at src[start].
func scanRawString(src string, start int) (string, int, error) {
	i := start + 1
	hashes := 0
	for i < len(src) && src[i] == '#' {
		hashes++
		i++
	}
	if i >= len(src) || src[i] != '"' {
		return "", 0, Errorf(start, "malformed raw string")
	}
	closing := "\"" + strings.Repeat("#", hashes)
	end := strings.Index(src[i+1:], closing)
	if end < 0 {
		return "", 0, Errorf(start, "unterminated raw string")
	}
	body := src[i+1 : i+1+end]
	return body, i + 1 + end + len(closing), nil
}

// Stream is a cursor over tokens shared by the parsers.
type Stream struct {
	toks []Token
	pos  int
}

// NewStream tokenizes src.
func NewStream(src string) (*Stream, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return &Stream{toks: toks}, nil
}

// Peek returns the current token without consuming it.
func (s *Stream) Peek() Token {
	return s.toks[s.pos]
}

// PeekN looks n tokens ahead.
func (s *Stream) PeekN(n int) Token {
	if s.pos+n >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}
	return s.toks[s.pos+n]
}

// Next consumes and returns the current token.
func (s *Stream) Next() Token {
	t := s.toks[s.pos]
	if t.Kind != EOF {
		s.pos++
	}
	return t
}

// Accept consumes the token if it matches text.
func (s *Stream) Accept(text string) bool {
	if s.Peek().Is(text) {
		s.pos++
		return true
	}
	return false
}

// Expect consumes text or fails.
func (s *Stream) Expect(text string) error {
	if s.Accept(text) {
		return nil
	}
	t := s.Peek()
	return Errorf(t.Offset, "expected %q, found %s", text, t)
}

// ExpectIdent consumes an identifier.
func (s *Stream) ExpectIdent() (Token, error) {
	t := s.Peek()
	if t.Kind != Ident {
		return t, Errorf(t.Offset, "expected identifier, found %s", t)
	}
	s.pos++
	return t, nil
}

// ExpectEOF fails on trailing tokens.
func (s *Stream) ExpectEOF() error {
	if t := s.Peek(); t.Kind != EOF {
		return Errorf(t.Offset, "unexpected trailing %s", t)
	}
	return nil
}
