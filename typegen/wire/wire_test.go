package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/fsdefs/typegen/model"
)

func variant(name string, kind model.VariantKind, fieldNames ...string) *model.Variant {
	v := &model.Variant{Name: name, Kind: kind}
	for i, n := range fieldNames {
		v.Fields = append(v.Fields, &model.Field{Name: n, Index: i})
	}
	return v
}

func marshal(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestShapeOf(t *testing.T) {
	assert.Equal(t, ShapeUnit, ShapeOf(variant("Idle", model.VariantUnit)))
	assert.Equal(t, ShapeNewtype, ShapeOf(variant("Render", model.VariantTuple, "")))
	assert.Equal(t, ShapeTuple, ShapeOf(variant("Move", model.VariantTuple, "", "")))
	assert.Equal(t, ShapeTuple, ShapeOf(variant("Empty", model.VariantTuple)))
	assert.Equal(t, ShapeStruct, ShapeOf(variant("ButtonState", model.VariantStruct, "selected")))
}

func TestEncodeVariant(t *testing.T) {
	tests := []struct {
		name    string
		variant *model.Variant
		values  []any
		want    string
	}{
		{"unit", variant("Idle", model.VariantUnit), nil, `"Idle"`},
		{"newtype", variant("Render", model.VariantTuple, ""), []any{"<p>"}, `{"Render":"<p>"}`},
		{"tuple", variant("Move", model.VariantTuple, "", ""), []any{1, 2}, `{"Move":[1,2]}`},
		{
			"struct",
			variant("ButtonState", model.VariantStruct, "selected", "time"),
			[]any{[]string{"a", "b"}, 33},
			`{"ButtonState":{"selected":["a","b"],"time":33}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := EncodeVariant(tt.variant, tt.values...)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, marshal(t, v))
		})
	}
}

func TestEncodeVariantArity(t *testing.T) {
	_, err := EncodeVariant(variant("Move", model.VariantTuple, "", ""), 1)
	assert.Error(t, err)
}

func TestEncodeStruct(t *testing.T) {
	fields := func(names ...string) []*model.Field {
		var out []*model.Field
		for _, n := range names {
			out = append(out, &model.Field{Name: n})
		}
		return out
	}

	point := &model.Description{Name: "Point", Kind: model.NamedFields, Fields: fields("x", "y", "z")}
	v, err := EncodeStruct(point, 23, 24, 33)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":23,"y":24,"z":33}`, marshal(t, v))

	id := &model.Description{Name: "UserId", Kind: model.TupleFields, Fields: fields("")}
	v, err = EncodeStruct(id, "abc")
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, marshal(t, v))

	pair := &model.Description{Name: "Pair", Kind: model.TupleFields, Fields: fields("", "")}
	v, err = EncodeStruct(pair, 1, "b")
	require.NoError(t, err)
	assert.Equal(t, `[1,"b"]`, marshal(t, v))

	marker := &model.Description{Name: "Marker", Kind: model.Unit}
	v, err = EncodeStruct(marker)
	require.NoError(t, err)
	assert.Equal(t, `null`, marshal(t, v))

	_, err = EncodeStruct(&model.Description{Kind: model.Enum})
	assert.Error(t, err)
}

func TestVariantTag(t *testing.T) {
	tag, payload, err := VariantTag("Idle")
	require.NoError(t, err)
	assert.Equal(t, "Idle", tag)
	assert.Nil(t, payload)

	var decoded any
	require.NoError(t, json.Unmarshal([]byte(`{"Render":"x"}`), &decoded))
	tag, payload, err = VariantTag(decoded)
	require.NoError(t, err)
	assert.Equal(t, "Render", tag)
	assert.Equal(t, "x", payload)

	_, _, err = VariantTag(map[string]any{"A": 1, "B": 2})
	assert.Error(t, err)
	_, _, err = VariantTag(42)
	assert.Error(t, err)
}
