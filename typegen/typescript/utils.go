package typescript

import (
	"strconv"
	"unicode"
)

// reserved words that cannot be used as parameter names
var reserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "let": true, "static": true, "yield": true, "await": true,
	"implements": true, "interface": true, "package": true, "private": true,
	"protected": true, "public": true, "type": true,
}

// isIdentifier checks if s can be used unquoted as a property name
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		switch {
		case ch == '_' || ch == '$' || unicode.IsLetter(ch):
		case i > 0 && unicode.IsDigit(ch):
		default:
			return false
		}
	}
	return true
}

// propertyName quotes s when it is not a valid identifier
func propertyName(s string) string {
	if isIdentifier(s) {
		return s
	}
	return strconv.Quote(s)
}

// paramName returns a usable parameter name for a field
func paramName(s string) string {
	if !isIdentifier(s) {
		return "value"
	}
	if reserved[s] {
		return s + "_"
	}
	return s
}
