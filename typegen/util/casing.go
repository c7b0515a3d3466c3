// Package util holds naming helpers shared by the generators.
package util

import (
	"strings"
	"unicode"
)

// isSeparator splits words in snake_case, kebab-case and dotted module names
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}

// ToSnakeCase converts PascalCase, camelCase or dotted names to snake_case.
// Acronyms stay together: "HTTPSConnection" -> "https_connection",
// "Game.Protocol" -> "game_protocol".
func ToSnakeCase(s string) string {
	var out strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if out.Len() > 0 && !strings.HasSuffix(out.String(), "_") {
				out.WriteRune('_')
			}
			continue
		}
		if i > 0 && unicode.IsUpper(r) && !isSeparator(runes[i-1]) {
			prevUpper := unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !prevUpper || nextLower {
				out.WriteRune('_')
			}
		}
		out.WriteRune(unicode.ToLower(r))
	}
	return strings.TrimSuffix(out.String(), "_")
}

// ToPascalCase capitalizes each separated word: "game.protocol" -> "GameProtocol".
// Letters after the first of each word are kept as-is.
func ToPascalCase(s string) string {
	var out strings.Builder
	for _, word := range strings.FieldsFunc(s, isSeparator) {
		runes := []rune(word)
		out.WriteRune(unicode.ToUpper(runes[0]))
		out.WriteString(string(runes[1:]))
	}
	return out.String()
}

// ToCamelCase is ToPascalCase with a lowercase first letter: "ButtonState" -> "buttonState".
func ToCamelCase(s string) string {
	return LowerFirst(ToPascalCase(s))
}

// LowerFirst lowercases the first rune only.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
