package fsharp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teranos/fsdefs/typegen/model"
)

func TestValidateType(t *testing.T) {
	valid := []string{
		"int64",
		"string list",
		"Map<string, int>",
		"int * string",
		"'T option",
		"{| a: int; b: string |}",
		"System.DateTime",
		"int -> unit",
		"(int * string) list",
		"byte[]",
		"Result<Map<string, int list>, string>",
		"(string -> int) -> Async<unit>",
	}
	for _, text := range valid {
		assert.NoError(t, ValidateType(text), text)
	}

	invalid := []string{
		"",
		"123-not-a-type",
		"int *",
		"Map<string, int",
		"{| a int |}",
		"int -> ",
		"string)",
		"\"quoted\"",
	}
	for _, text := range invalid {
		assert.Error(t, ValidateType(text), text)
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		ref  *model.TypeRef
		want string
	}{
		{model.Primitive("i64"), "int64"},
		{model.Primitive("usize"), "uint64"},
		{model.Primitive("String"), "string"},
		{model.Any(), "obj"},
		{nil, "obj"},
		{model.UnitRef(), "unit"},
		{model.Generic("T"), "'T"},
		{model.Option(model.Seq(model.Primitive("u8"))), "byte[] option"},
		{model.Seq(model.Option(model.Primitive("bool"))), "bool option[]"},
		{model.Option(model.Tuple(model.Primitive("i32"), model.Primitive("f64"))), "(int * float) option"},
		{model.Map(model.Primitive("String"), model.Seq(model.Primitive("i32"))), "Map<string, int[]>"},
		{model.Result(model.Primitive("u32"), model.Primitive("String")), "Result<uint32, string>"},
		{model.Tuple(model.Primitive("i32"), model.Tuple(model.Primitive("i8"), model.Primitive("i16"))), "int * (sbyte * int16)"},
		{model.Named("Pair", model.Primitive("i32"), model.Generic("U")), "Pair<int, 'U>"},
		{model.Override("int -> unit", model.Primitive("i32")), "int -> unit"},
		{model.Seq(model.Override("int -> unit", nil)), "(int -> unit)[]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TypeName(tt.ref))
	}
}

func TestGenericParams(t *testing.T) {
	assert.Equal(t, "", GenericParams(nil))
	assert.Equal(t, "<'T, 'U>", GenericParams([]string{"T", "U"}))
}
