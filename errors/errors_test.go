package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewf(t *testing.T) {
	err := Newf("error: %s %d", "test", 42)
	require.NotNil(t, err)
	assert.Equal(t, "error: test 42", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("error"), "try this fix")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "try this fix", hints[0])
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")
	assert.Contains(t, fmt.Sprintf("%+v", err), "errors_test.go")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
}

func TestIsDiagnosticKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unsupported directive", Wrap(ErrUnsupportedDirective, "unsupported option: foo"), true},
		{"malformed value", Wrapf(ErrMalformedDirectiveValue, "fs_type on %s", "x"), true},
		{"malformed attribute", ErrMalformedAttribute, true},
		{"duplicate", Wrap(ErrDuplicateDirective, "ts_as"), true},
		{"malformed type", ErrMalformedType, true},
		{"unknown type", ErrUnknownType, true},
		{"schema version", ErrSchemaVersion, false},
		{"plain", New("plain"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDiagnosticKind(tt.err))
		})
	}
}

func TestNewInvalidSchemaError(t *testing.T) {
	err := NewInvalidSchemaError("duplicate type %q", "Point")
	assert.True(t, Is(err, ErrInvalidSchema))
	assert.Contains(t, err.Error(), `duplicate type "Point"`)
}

func TestMarkPreservesKind(t *testing.T) {
	err := Mark(New("fs_type: bad"), ErrMalformedDirectiveValue)
	assert.True(t, Is(err, ErrMalformedDirectiveValue))
	assert.Equal(t, "fs_type: bad", err.Error())
}

func ExampleWrap() {
	baseErr := New("unexpected token")
	err := Wrap(baseErr, "failed to parse annotation")
	fmt.Println(err)
	// Output: failed to parse annotation: unexpected token
}
