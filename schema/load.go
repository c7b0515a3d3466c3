package schema

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/teranos/fsdefs/errors"
)

// Format is a schema file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.WithHint(
			errors.Newf("unsupported schema file extension %q", filepath.Ext(path)),
			"use .json, .yaml, .yml or .toml",
		)
	}
}

// Load reads and normalizes a schema file.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read schema %s", path)
	}
	return Parse(data, format, path)
}

// Parse decodes and normalizes schema bytes. file only labels spans.
func Parse(data []byte, format Format, file string) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrapf(err, "failed to parse JSON schema %s", file)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrapf(err, "failed to parse YAML schema %s", file)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse TOML schema %s", file)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.NewInvalidSchemaError("%s: unknown key %s", file, undecoded[0].String())
		}
	default:
		return nil, errors.Newf("unknown schema format %q", format)
	}

	doc.File = file
	if err := Normalize(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Normalize fills spans, expands docs shorthand into doc annotations, infers
// omitted kinds and validates the document structure. Safe to call twice.
func Normalize(doc *Document) error {
	seen := make(map[string]bool, len(doc.Types))
	for i := range doc.Types {
		decl := &doc.Types[i]
		if decl.Name == "" {
			return errors.NewInvalidSchemaError("type #%d has no name", i)
		}
		if seen[decl.Name] {
			return errors.NewInvalidSchemaError("duplicate type %q", decl.Name)
		}
		seen[decl.Name] = true

		decl.Span = Span{File: doc.File, Path: decl.Name}
		decl.Attrs = expandDocs(decl.Docs, decl.Attrs, decl.Span)
		decl.Docs = nil

		if err := normalizeFields(decl.Fields, decl.Name, doc.File); err != nil {
			return err
		}

		for j := range decl.Variants {
			v := &decl.Variants[j]
			if v.Name == "" {
				return errors.NewInvalidSchemaError("%s: variant #%d has no name", decl.Name, j)
			}
			v.Span = Span{File: doc.File, Path: decl.Name + "::" + v.Name}
			v.Attrs = expandDocs(v.Docs, v.Attrs, v.Span)
			v.Docs = nil
			if err := normalizeFields(v.Fields, v.Span.Path, doc.File); err != nil {
				return err
			}
			kind, err := inferKind(v.Kind, v.Fields, false)
			if err != nil {
				return errors.Wrap(err, v.Span.Path)
			}
			v.Kind = kind
		}

		if decl.Kind == "" && len(decl.Variants) > 0 {
			decl.Kind = KindEnum
		}
		if decl.Kind == KindEnum {
			if len(decl.Fields) > 0 {
				return errors.NewInvalidSchemaError("%s: enum cannot have fields", decl.Name)
			}
			continue
		}
		if len(decl.Variants) > 0 {
			return errors.NewInvalidSchemaError("%s: %s cannot have variants", decl.Name, decl.Kind)
		}
		kind, err := inferKind(decl.Kind, decl.Fields, true)
		if err != nil {
			return errors.Wrap(err, decl.Name)
		}
		decl.Kind = kind
	}
	return nil
}

func normalizeFields(fields []Field, owner, file string) error {
	for k := range fields {
		f := &fields[k]
		path := owner + "." + f.Name
		if f.Positional() {
			path = owner + "." + strconv.Itoa(k)
		}
		if strings.TrimSpace(f.Type) == "" {
			return errors.NewInvalidSchemaError("%s: field has no type", path)
		}
		f.Span = Span{File: file, Path: path}
		f.Attrs = expandDocs(f.Docs, f.Attrs, f.Span)
		f.Docs = nil
	}
	return nil
}

func inferKind(kind Kind, fields []Field, allowEnum bool) (Kind, error) {
	named, positional := 0, 0
	for i := range fields {
		if fields[i].Positional() {
			positional++
		} else {
			named++
		}
	}
	if named > 0 && positional > 0 {
		return "", errors.NewInvalidSchemaError("mixes named and positional fields")
	}

	inferred := KindUnit
	switch {
	case named > 0:
		inferred = KindStruct
	case positional > 0:
		inferred = KindTuple
	}

	switch kind {
	case "":
		return inferred, nil
	case KindEnum:
		if allowEnum {
			return kind, nil
		}
	case KindStruct:
		// `struct Empty {}` is a named-field struct with no fields
		if positional == 0 {
			return kind, nil
		}
	case KindTuple, KindUnit:
		if kind == inferred {
			return kind, nil
		}
	}
	return "", errors.NewInvalidSchemaError("kind %q does not match its fields", kind)
}

// expandDocs turns docs shorthand lines into doc annotations placed ahead of attrs.
func expandDocs(docs, attrs []Annotation, owner Span) []Annotation {
	out := make([]Annotation, 0, len(docs)+len(attrs))
	for _, d := range docs {
		d.Text = "doc = " + quoteLiteral(d.Text)
		out = append(out, withOwner(d, owner))
	}
	for _, a := range attrs {
		out = append(out, withOwner(a, owner))
	}
	return out
}

func withOwner(a Annotation, owner Span) Annotation {
	a.Span.File = owner.File
	a.Span.Path = owner.Path
	return a
}

// quoteLiteral renders s as a string literal understood by the attribute parser.
func quoteLiteral(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// DefaultVersion is assumed for documents without a version.
const DefaultVersion = "1.0.0"

// CheckVersion rejects documents whose version does not satisfy constraint.
func CheckVersion(doc *Document, constraint string) error {
	raw := doc.Version
	if raw == "" {
		raw = DefaultVersion
	}
	ver, err := semver.NewVersion(raw)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "invalid schema version %s", raw), errors.ErrSchemaVersion)
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(err, "invalid version constraint %s", constraint)
	}
	if !c.Check(ver) {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrSchemaVersion, "schema version %s does not satisfy %s", raw, constraint),
			"set schema.version_constraint in %s to accept it", "fsdefs.toml",
		)
	}
	return nil
}
