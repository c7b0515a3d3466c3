package typescript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/teranos/fsdefs/schema"
	"github.com/teranos/fsdefs/typegen"
	"github.com/teranos/fsdefs/typegen/diag"
	"github.com/teranos/fsdefs/typegen/model"
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
	res := typegen.NewSession(typegen.Options{}).Generate(doc, nil, ctx)
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
			assert.Equal(t, string(archiveFile(t, a, "want.ts")), got)
		})
	}
}

func TestGeneratorMetadata(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, "typescript", g.Language())
	assert.Equal(t, "ts", g.FileExtension())
	assert.Equal(t, "game_protocol.ts", g.FileName("Game.Protocol"))
	assert.Equal(t, "generated.ts", g.FileName(""))
}

func TestTsAsIsHonoured(t *testing.T) {
	res := generate(t, `types:
  - name: Event
    fields:
      - name: at
        type: DateTime<Utc>
        attrs: ['fs(ts_as = "String")']
      - name: ids
        type: Vec<Uuid>
        attrs: ['fs(ts_as = "Vec<String>", fs_type = "System.Guid list")']
`)
	want := strings.Join([]string{
		"export interface Event {",
		"  at: string;",
		"  ids: string[];",
		"}",
	}, "\n")
	assert.Equal(t, want, NewGenerator().GenerateDecl(res.Decls[0]))
}

func TestMultilineDocAndQuotedProperty(t *testing.T) {
	res := generate(t, `types:
  - name: Headers
    docs: [HTTP headers., Keys are case sensitive.]
    fields:
      - {name: content-type, type: String}
      - {name: empty, type: '()'}
`)
	want := strings.Join([]string{
		"/**",
		" * HTTP headers.",
		" * Keys are case sensitive.",
		" */",
		"export interface Headers {",
		`  "content-type": string;`,
		"  empty: null;",
		"}",
	}, "\n")
	assert.Equal(t, want, NewGenerator().GenerateDecl(res.Decls[0]))
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		ref  *model.TypeRef
		want string
	}{
		{model.Primitive("u64"), "number"},
		{model.Primitive("char"), "string"},
		{model.Primitive("bool"), "boolean"},
		{model.Any(), "unknown"},
		{model.UnitRef(), "null"},
		{model.Seq(model.Option(model.Primitive("i32"))), "(number | null)[]"},
		{model.Option(model.Option(model.Primitive("i32"))), "number | null"},
		{model.Map(model.Named("Key"), model.Primitive("bool")), "Record<string, boolean>"},
		{model.Map(model.Primitive("u32"), model.Primitive("bool")), "Record<number, boolean>"},
		{model.Result(model.Primitive("u8"), model.Primitive("String")), "{ Ok: number } | { Err: string }"},
		{model.Tuple(model.Primitive("i32"), model.Generic("T")), "[number, T]"},
		{model.Override("int64", model.Primitive("i64")), "number"},
		{model.Named("Pair", model.Primitive("f32"), model.Primitive("String")), "Pair<number, string>"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TypeName(tt.ref))
	}
}

func TestStructGlue(t *testing.T) {
	res := generate(t, `types:
  - name: Login
    attrs: ['fs(handler_name = "OnLogin", factory_name = "LoginMsg", factory_return_name = "Request")']
    fields:
      - {name: user, type: String}
      - {name: default, type: bool}
`)
	want := strings.Join([]string{
		"export type OnLogin<R = void> = (value: Login) => R;",
		"",
		"export type Request = Login;",
		"",
		"export const LoginMsg = {",
		"  create: (user: string, default_: boolean): Request => ({ user, default: default_ }),",
		"};",
	}, "\n")
	assert.Equal(t, want, GenerateGlue(res.Decls[0].Desc).String())
}

func TestGenericGlue(t *testing.T) {
	res := generate(t, `types:
  - name: Reply
    generics: [T]
    attrs: ['fs(handler_name = "ReplyHandler", factory_name = "Replies")']
    variants:
      - name: Ok
        fields: [{type: T}]
      - name: Timeout
`)
	want := strings.Join([]string{
		"export interface ReplyHandler<T, R = void> {",
		"  onOk(value: T): R;",
		"  onTimeout(): R;",
		"}",
		"",
		"export function handleReply<T, R>(handler: ReplyHandler<T, R>, value: Reply<T>): R {",
		`  if (value === "Timeout") return handler.onTimeout();`,
		`  if ("Ok" in value) return handler.onOk(value["Ok"]);`,
		`  throw new Error("unknown Reply variant");`,
		"}",
		"",
		"export const Replies = {",
		"  ok: <T>(v0: T): Reply<T> => ({ Ok: v0 }),",
		`  timeout: <T>(): Reply<T> => "Timeout",`,
		"};",
	}, "\n")
	assert.Equal(t, want, GenerateGlue(res.Decls[0].Desc).String())
}

func TestIndexFile(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteIndexFile(dir, []ModuleExport{
		{FileName: "zeta.ts", TypeNames: []string{"B", "A"}},
		{FileName: "alpha.ts", TypeNames: []string{"Point"}},
		{FileName: "empty.ts"},
	}, 0644)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, IndexFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := strings.Join([]string{
		"// Generated by fsdefs. Do not edit.",
		"/* eslint-disable */",
		"",
		"export type {",
		"  Point,",
		"} from './alpha';",
		"",
		"export type {",
		"  A,",
		"  B,",
		"} from './zeta';",
		"",
	}, "\n")
	assert.Equal(t, want, string(data))
}
