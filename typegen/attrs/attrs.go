// Package attrs extracts fs(...) directives and doc comments from annotations.
package attrs

import (
	"strings"

	"github.com/teranos/fsdefs/schema"
	"github.com/teranos/fsdefs/typegen/diag"
	"github.com/teranos/fsdefs/typegen/meta"
	"github.com/teranos/fsdefs/typegen/source"
	"github.com/teranos/fsdefs/typegen/srctype"
)

// Namespace is the attribute path whose directives are honoured.
const Namespace = "fs"

// UnnamedField names positional fields in diagnostics.
const UnnamedField = "unnamed"

// Directive keys
const (
	KeyFsType            = "fs_type"
	KeyTsAs              = "ts_as"
	KeyHandlerName       = "handler_name"
	KeyHandlerReturn     = "handler_return"
	KeyFactoryName       = "factory_name"
	KeyFactoryReturnName = "factory_return_name"
)

// Attrs is the extracted customization of one declaration, field or variant.
type Attrs struct {
	// Doc holds comment lines; an empty line separates contributions
	Doc *source.Builder

	FsType            string
	TsAs              *srctype.Type
	HandlerName       string
	HandlerReturn     string
	FactoryName       string
	FactoryReturnName string

	seen map[string]bool
}

// New returns empty Attrs.
func New() *Attrs {
	return &Attrs{Doc: &source.Builder{}, seen: map[string]bool{}}
}

// Has reports whether a directive key was given.
func (a *Attrs) Has(key string) bool {
	return a.seen[key]
}

// HasDoc reports whether any doc comment text was collected.
func (a *Attrs) HasDoc() bool {
	return a.Doc.IsNotEmpty()
}

// DocLines returns the collected comment lines.
func (a *Attrs) DocLines() []string {
	return a.Doc.Lines()
}

// FromDecl reads type-level directives and doc comments.
func FromDecl(decl *schema.Decl, ctx *diag.Context) *Attrs {
	a := New()
	for _, d := range FindFs(decl.Attrs, ctx) {
		if ctx.Aborted() {
			break
		}
		a.pushDeclDirective(d, ctx)
	}
	a.PushDocComment(decl.Attrs)
	return a
}

// FromField reads field-level directives and doc comments.
func FromField(field *schema.Field, ctx *diag.Context) *Attrs {
	ident := field.Name
	if ident == "" {
		ident = UnnamedField
	}
	a := New()
	for _, d := range FindFs(field.Attrs, ctx) {
		if ctx.Aborted() {
			break
		}
		a.pushFieldDirective(ident, d, ctx)
	}
	a.PushDocComment(field.Attrs)
	return a
}

// FromVariant reads only doc comments; variants take no directives.
func FromVariant(v *schema.Variant) *Attrs {
	a := New()
	a.PushDocComment(v.Attrs)
	return a
}

// Directive is one fs(...) item with the span of its annotation.
type Directive struct {
	Meta *meta.Meta
	Span schema.Span
}

// FindFs returns the items nested in every fs(...) annotation. Annotations
// in other namespaces are skipped. A non-list fs annotation or a literal
// item is reported as malformed attribute syntax.
func FindFs(annotations []schema.Annotation, ctx *diag.Context) []Directive {
	var out []Directive
	for _, ann := range annotations {
		if leadingPath(ann.Text) != Namespace {
			continue
		}
		m, err := meta.Parse(ann.Text)
		if err != nil {
			ctx.Reportf(diag.KindMalformedAttribute, ann.Span, "invalid fsharp syntax: %v", err)
			continue
		}
		if m.Kind != meta.KindList {
			ctx.Reportf(diag.KindMalformedAttribute, ann.Span, "invalid fsharp syntax: %s", m)
			continue
		}
		for _, n := range m.Nested {
			if n.Meta == nil {
				ctx.Reportf(diag.KindMalformedAttribute, ann.Span, "invalid fsharp syntax: %s", n)
				continue
			}
			out = append(out, Directive{Meta: n.Meta, Span: ann.Span})
		}
	}
	return out
}

// leadingPath returns the annotation's path before any '(' or '='.
func leadingPath(text string) string {
	if i := strings.IndexAny(text, "(="); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

// stringValue matches `key = "string"` with a single-identifier key.
func stringValue(m *meta.Meta) (key, value string, ok bool) {
	if m.Kind != meta.KindNameValue || m.Value.Kind != meta.LitString || strings.Contains(m.Path, "::") {
		return "", "", false
	}
	return m.Path, m.Value.Str, true
}

// claim marks key as set. A repeated key is reported and the first value kept.
func (a *Attrs) claim(key string, span schema.Span, ctx *diag.Context) bool {
	if a.seen[key] {
		ctx.Reportf(diag.KindDuplicateDirective, span, "duplicate directive: %s", key)
		return false
	}
	a.seen[key] = true
	return true
}

func (a *Attrs) pushDeclDirective(d Directive, ctx *diag.Context) {
	key, value, ok := stringValue(d.Meta)
	var target *string
	if ok {
		switch key {
		case KeyHandlerName:
			target = &a.HandlerName
		case KeyHandlerReturn:
			target = &a.HandlerReturn
		case KeyFactoryName:
			target = &a.FactoryName
		case KeyFactoryReturnName:
			target = &a.FactoryReturnName
		}
	}
	if target == nil {
		ctx.Reportf(diag.KindUnsupportedDirective, d.Span, "unsupported option: %s", d.Meta)
		return
	}
	if a.claim(key, d.Span, ctx) {
		*target = value
	}
}

func (a *Attrs) pushFieldDirective(ident string, d Directive, ctx *diag.Context) {
	key, value, ok := stringValue(d.Meta)
	switch {
	case ok && key == KeyFsType:
		if a.claim(key, d.Span, ctx) {
			a.FsType = value
		}
	case ok && key == KeyTsAs:
		t, err := srctype.Parse(value)
		if err != nil {
			ctx.Reportf(diag.KindMalformedValue, d.Span, "%s: ts_as: %q is not a valid source type", ident, value)
			return
		}
		if a.claim(key, d.Span, ctx) {
			a.TsAs = t
		}
	default:
		ctx.Reportf(diag.KindUnsupportedDirective, d.Span, "%s: unsupported option: %s", ident, d.Meta)
	}
}

// PushDocComment appends the doc comments found in annotations. When the
// builder already holds text and the new contribution has text, a blank
// separator line goes first.
func (a *Attrs) PushDocComment(annotations []schema.Annotation) {
	lines := docLines(annotations)
	if len(lines) == 0 {
		return
	}
	if a.Doc.IsNotEmpty() {
		a.Doc.LnPush("")
	}
	for _, l := range lines {
		a.Doc.LnPush(l)
	}
}

// docLines extracts comment text from doc = "..." annotations.
func docLines(annotations []schema.Annotation) []string {
	var out []string
	for _, ann := range annotations {
		if leadingPath(ann.Text) != "doc" {
			continue
		}
		m, err := meta.Parse(ann.Text)
		if err != nil || m.Kind != meta.KindNameValue || m.Value.Kind != meta.LitString {
			continue
		}
		out = append(out, stripComment(m.Value.Str)...)
	}
	return out
}

// stripComment removes comment markers and splits block bodies into lines.
func stripComment(value string) []string {
	text := value
	for _, prefix := range []string{"//!", "///", "/*!", "/**"} {
		for strings.HasPrefix(text, prefix) {
			text = text[len(prefix):]
		}
	}
	for strings.HasSuffix(text, "*/") {
		text = text[:len(text)-2]
	}

	lines := strings.Split(text, "\n")
	block := len(lines) > 1
	var out []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if block {
			line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
