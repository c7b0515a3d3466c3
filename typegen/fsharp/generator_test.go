package fsharp

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/teranos/fsdefs/schema"
	"github.com/teranos/fsdefs/typegen"
	"github.com/teranos/fsdefs/typegen/diag"
	"github.com/teranos/fsdefs/typegen/wire"
)

func archiveFile(t *testing.T, a *txtar.Archive, name string) []byte {
	t.Helper()
	for _, f := range a.Files {
		if f.Name == name {
			return f.Data
		}
	}
	t.Fatalf("archive has no %s", name)
	return nil
}

func generate(t *testing.T, yaml string) *typegen.Result {
	t.Helper()
	doc, err := schema.Parse([]byte(yaml), schema.FormatYAML, "schema.yaml")
	require.NoError(t, err)

	ctx := diag.New()
	res := typegen.NewSession(typegen.Options{ValidateOverride: ValidateType}).Generate(doc, nil, ctx)
	require.NoError(t, ctx.Err())
	return res
}

func TestGenerateFileGolden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, path := range files {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			a, err := txtar.ParseFile(path)
			require.NoError(t, err)

			res := generate(t, string(archiveFile(t, a, "schema.yaml")))
			got, err := NewGenerator().GenerateFile(res)
			require.NoError(t, err)
			assert.Equal(t, string(archiveFile(t, a, "want.fs")), got)
		})
	}
}

func TestGeneratorMetadata(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, "fsharp", g.Language())
	assert.Equal(t, "fs", g.FileExtension())
	assert.Equal(t, "GameProtocol.fs", g.FileName("Game.Protocol"))
	assert.Equal(t, "GameProtocol.fs", g.FileName("game_protocol"))
	assert.Equal(t, "Generated.fs", g.FileName(""))
}

func TestNamespaceOverride(t *testing.T) {
	res := generate(t, "module: A.B\ntypes:\n  - name: Unit\n")
	g := &Generator{Namespace: "Custom.Ns"}

	out, err := g.GenerateFile(res)
	require.NoError(t, err)
	assert.Contains(t, out, "\nnamespace Custom.Ns\n")
	assert.NotContains(t, out, "A.B")
}

func TestGenerateDeclStandalone(t *testing.T) {
	res := generate(t, `types:
  - name: Point
    fields:
      - {name: x, type: i32}
      - {name: y, type: i32}
      - {name: z, type: i32}
`)
	want := "type Point =\n    {\n        x: int\n        y: int\n        z: int\n    }"
	assert.Equal(t, want, NewGenerator().GenerateDecl(res.Decls[0]))
}

func TestFsTypeOverrideIsVerbatim(t *testing.T) {
	for _, override := range []string{"int64", "string list", "Map<string, int>", "int * string", "System.DateTime"} {
		t.Run(override, func(t *testing.T) {
			res := generate(t, `types:
  - name: Holder
    fields:
      - name: value
        type: i32
        attrs: ['fs(fs_type = "`+override+`")']
`)
			out := NewGenerator().GenerateDecl(res.Decls[0])
			assert.Contains(t, out, "        value: "+override+"\n")
		})
	}
}

func TestVariantDocsGoMultiline(t *testing.T) {
	res := generate(t, `types:
  - name: Event
    variants:
      - name: Moved
        docs: [Pointer moved.]
        fields:
          - {name: x, type: f64, docs: [Horizontal.]}
          - {name: y, type: f64}
      - name: Empty
        kind: struct
`)
	want := strings.Join([]string{
		"type Event =",
		"    /// Pointer moved.",
		"    | Moved of",
		"        {|",
		"            /// Horizontal.",
		"            x: float",
		"            y: float",
		"        |}",
		"    | Empty of unit",
	}, "\n")
	assert.Equal(t, want, NewGenerator().GenerateDecl(res.Decls[0]))
}

func TestEmptyEnum(t *testing.T) {
	res := generate(t, "types:\n  - name: Never\n    kind: enum\n")
	assert.Equal(t, "type Never = class end", NewGenerator().GenerateDecl(res.Decls[0]))
}

func TestFieldlessStructIsUnitAlias(t *testing.T) {
	res := generate(t, "types:\n  - name: Marker\n    kind: struct\n")
	desc := res.Decls[0].Desc

	assert.Equal(t, "type Marker = unit", NewGenerator().GenerateDecl(res.Decls[0]))

	// the alias still travels as an empty object
	value, err := wire.EncodeStruct(desc)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, value)
}

func TestDocSeparator(t *testing.T) {
	res := generate(t, `types:
  - name: Doc
    docs: [First paragraph.]
    attrs: ['doc = "Second paragraph."']
    fields:
      - {name: a, type: bool}
`)
	out := NewGenerator().GenerateDecl(res.Decls[0])
	assert.True(t, strings.HasPrefix(out, "/// First paragraph.\n/// Second paragraph.\n"), out)
}

func TestIdentEscapesKeywords(t *testing.T) {
	assert.Equal(t, "``type``", Ident("type"))
	assert.Equal(t, "``namespace``", Ident("namespace"))
	assert.Equal(t, "value", Ident("value"))
}

func TestStructGlue(t *testing.T) {
	res := generate(t, `types:
  - name: Login
    attrs: ['fs(handler_name = "OnLogin", handler_return = "Async<bool>", factory_name = "LoginMsg", factory_return_name = "Request")']
    fields:
      - {name: user, type: String}
      - {name: remember, type: bool}
`)
	glue := GenerateGlue(res.Decls[0].Desc).String()
	want := strings.Join([]string{
		"type OnLogin = Login -> Async<bool>",
		"",
		"type Request = Login",
		"",
		"module LoginMsg =",
		"    let create (user: string) (remember: bool) : Request = { user = user; remember = remember }",
	}, "\n")
	assert.Equal(t, want, glue)
}

func TestGenericGlue(t *testing.T) {
	res := generate(t, `types:
  - name: Reply
    generics: [T]
    attrs: ['fs(factory_name = "Replies")']
    variants:
      - name: Ok
        fields: [{type: T}]
      - name: Timeout
`)
	glue := GenerateGlue(res.Decls[0].Desc).String()
	want := strings.Join([]string{
		"module Replies =",
		"    let ok (v0: 'T) : Reply<'T> = Ok v0",
		"    let timeout () : Reply<'T> = Timeout",
	}, "\n")
	assert.Equal(t, want, glue)
}

func TestNoGlue(t *testing.T) {
	res := generate(t, "types:\n  - name: Plain\n")
	assert.False(t, GenerateGlue(res.Decls[0].Desc).IsNotEmpty())
}
