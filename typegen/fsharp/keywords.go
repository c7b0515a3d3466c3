package fsharp

// keywords are F# keywords and reserved identifiers that need ``escaping``.
var keywords = map[string]bool{
	"abstract": true, "and": true, "as": true, "assert": true, "base": true,
	"begin": true, "class": true, "default": true, "delegate": true, "do": true,
	"done": true, "downcast": true, "downto": true, "elif": true, "else": true,
	"end": true, "exception": true, "extern": true, "false": true, "finally": true,
	"fixed": true, "for": true, "fun": true, "function": true, "global": true,
	"if": true, "in": true, "inherit": true, "inline": true, "interface": true,
	"internal": true, "lazy": true, "let": true, "match": true, "member": true,
	"module": true, "mutable": true, "namespace": true, "new": true, "not": true,
	"null": true, "of": true, "open": true, "or": true, "override": true,
	"private": true, "public": true, "rec": true, "return": true, "select": true,
	"sig": true, "static": true, "struct": true, "then": true, "to": true,
	"true": true, "try": true, "type": true, "upcast": true, "use": true,
	"val": true, "void": true, "when": true, "while": true, "with": true,
	"yield": true, "const": true,
	// reserved for future use
	"break": true, "checked": true, "component": true, "constraint": true,
	"continue": true, "event": true, "external": true, "include": true,
	"mixin": true, "parallel": true, "process": true, "protected": true,
	"pure": true, "sealed": true, "tailcall": true, "trait": true,
	"virtual": true,
}

// Ident escapes name with double backticks when it is a keyword.
func Ident(name string) string {
	if keywords[name] {
		return "``" + name + "``"
	}
	return name
}
