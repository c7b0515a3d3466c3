package jsonschema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/fsdefs/errors"
	"github.com/teranos/fsdefs/schema"
	"github.com/teranos/fsdefs/typegen"
	"github.com/teranos/fsdefs/typegen/diag"
	"github.com/teranos/fsdefs/typegen/model"
	"github.com/teranos/fsdefs/typegen/wire"
)

const protocolSchema = `module: Game.Protocol
types:
  - name: FrontendMessage
    docs: [Messages sent by the frontend.]
    variants:
      - name: Idle
      - name: Render
        fields: [{type: String}]
      - name: Move
        fields: [{type: i32}, {type: i32}]
      - name: ButtonState
        fields:
          - {name: selected, type: Vec<String>}
          - {name: time, type: u32}
  - name: Point
    fields:
      - {name: x, type: i32}
      - {name: y, type: i32}
      - {name: z, type: i32}
  - name: Pixel
    fields:
      - {name: channel, type: u8}
      - {name: label, type: Option<String>}
      - {name: at, type: chrono::DateTime<Utc>}
  - name: UserId
    fields: [{type: u64}]
  - name: Span
    fields: [{type: u32}, {type: u32}]
  - name: Marker
  - name: Tree
    variants:
      - name: Leaf
        fields: [{type: i32}]
      - name: Node
        fields: [{type: Box<Tree>}, {type: Box<Tree>}]
`

func generate(t *testing.T) (*typegen.Result, Schema) {
	t.Helper()
	doc, err := schema.Parse([]byte(protocolSchema), schema.FormatYAML, "protocol.yaml")
	require.NoError(t, err)

	ctx := diag.New()
	res := typegen.NewSession(typegen.Options{}).Generate(doc, nil, ctx)
	require.NoError(t, ctx.Err())
	return res, Document(res)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestWireEncodingValidatesPerVariantShape(t *testing.T) {
	res, doc := generate(t)
	desc := res.Lookup("FrontendMessage").Desc

	values := map[string][]any{
		"Idle":        nil,
		"Render":      {"<p>hi</p>"},
		"Move":        {1, -2},
		"ButtonState": {[]string{"a", "b"}, 3},
	}
	for _, v := range desc.Variants {
		t.Run(v.Name, func(t *testing.T) {
			value, err := wire.EncodeVariant(v, values[v.Name]...)
			require.NoError(t, err)
			assert.NoError(t, Validate(doc, "FrontendMessage", mustJSON(t, value)))
		})
	}
}

func TestStructWireEncodingValidates(t *testing.T) {
	res, doc := generate(t)

	cases := map[string][]any{
		"Point":  {1, 2, 3},
		"UserId": {42},
		"Span":   {0, 10},
		"Marker": nil,
		"Pixel":  {255, nil, "2024-01-01T00:00:00Z"},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			value, err := wire.EncodeStruct(res.Lookup(name).Desc, values...)
			require.NoError(t, err)
			assert.NoError(t, Validate(doc, name, mustJSON(t, value)))
		})
	}
}

func TestRejectsMismatchedPayloads(t *testing.T) {
	_, doc := generate(t)

	tests := []struct {
		name     string
		typeName string
		payload  string
	}{
		{"wrong newtype payload", "FrontendMessage", `{"Render": 3}`},
		{"two tags", "FrontendMessage", `{"Render": "x", "Move": [1, 2]}`},
		{"short tuple", "FrontendMessage", `{"Move": [1]}`},
		{"unknown unit", "FrontendMessage", `"Busy"`},
		{"missing struct field", "FrontendMessage", `{"ButtonState": {"selected": []}}`},
		{"missing field", "Point", `{"x": 1, "y": 2}`},
		{"u8 overflow", "Pixel", `{"channel": 256, "at": "now"}`},
		{"negative unsigned", "UserId", `-1`},
		{"unit struct", "Marker", `{}`},
		{"recursive leaf", "Tree", `{"Node": [{"Leaf": 1}, {"Leaf": "x"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(doc, tt.typeName, []byte(tt.payload))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidPayload))
			assert.NotEmpty(t, errors.GetAllDetails(err))
		})
	}
}

func TestAcceptsOptionalFieldsAndRecursion(t *testing.T) {
	_, doc := generate(t)

	assert.NoError(t, Validate(doc, "Pixel", []byte(`{"channel": 0, "at": {"anything": true}}`)))
	assert.NoError(t, Validate(doc, "Tree", []byte(`{"Node": [{"Leaf": 1}, {"Node": [{"Leaf": 2}, {"Leaf": 3}]}]}`)))
	assert.NoError(t, Validate(doc, "FrontendMessage", []byte(`{"Idle": null}`)))
}

func TestValidateErrors(t *testing.T) {
	_, doc := generate(t)

	err := Validate(doc, "Missing", []byte(`{}`))
	assert.True(t, errors.Is(err, errors.ErrUnknownType))

	err = Validate(doc, "Point", []byte(`{`))
	require.Error(t, err)
	assert.False(t, errors.Is(err, errors.ErrInvalidPayload))
}

func TestDocumentLayout(t *testing.T) {
	res, doc := generate(t)

	assert.Equal(t, Draft, doc["$schema"])
	assert.Equal(t, "Game.Protocol", doc["title"])
	assert.Equal(t, "Generated by fsdefs from protocol.yaml. Do not edit.", doc["$comment"])

	defs := doc.Defs()
	for _, name := range res.Names() {
		assert.Contains(t, defs, name)
	}
	assert.Contains(t, defs, "DateTime", "external references get a permissive definition")

	msg := defs["FrontendMessage"].(Schema)
	assert.Equal(t, "Messages sent by the frontend.", msg["description"])
	assert.Len(t, msg["oneOf"], 5)

	point := defs["Point"].(Schema)
	assert.Equal(t, []string{"x", "y", "z"}, point["required"])

	pixel := defs["Pixel"].(Schema)
	assert.Equal(t, []string{"channel", "at"}, pixel["required"])
}

func TestTypeSchema(t *testing.T) {
	assert.Equal(t, Schema{"type": "integer", "minimum": float64(0), "maximum": float64(255)}, TypeSchema(model.Primitive("u8")))
	assert.Equal(t, Schema{"type": "integer"}, TypeSchema(model.Primitive("i64")))
	assert.Equal(t, Schema{"type": "integer", "minimum": float64(0)}, TypeSchema(model.Primitive("usize")))
	assert.Equal(t, Schema{}, TypeSchema(model.Generic("T")))
	assert.Equal(t, Schema{"type": "boolean"}, TypeSchema(model.Override("int64", model.Primitive("bool"))))

	arr := model.Seq(model.Primitive("f32"))
	arr.Len = 3
	assert.Equal(t, Schema{"type": "array", "items": Schema{"type": "number"}, "minItems": 3, "maxItems": 3}, TypeSchema(arr))

	m := TypeSchema(model.Map(model.Primitive("u32"), model.Primitive("String")))
	assert.Equal(t, Schema{"pattern": "^-?[0-9]+$"}, m["propertyNames"])
}

func TestGeneratorFiles(t *testing.T) {
	res, _ := generate(t)
	g := NewGenerator()

	assert.Equal(t, "jsonschema", g.Language())
	assert.Equal(t, "game_protocol.schema.json", g.FileName("Game.Protocol"))

	out, err := g.GenerateFile(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "$defs")

	decl := g.GenerateDecl(res.Lookup("Point"))
	assert.Contains(t, decl, `"required": [`)
}
