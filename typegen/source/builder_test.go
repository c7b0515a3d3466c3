package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushAndLnPush(t *testing.T) {
	b := &Builder{}
	b.Push("type Point =")
	b.LnPush("{")
	b.LnPush("    x: int")
	b.Push(" // note")
	b.LnPush("}")

	assert.Equal(t, "type Point =\n{\n    x: int // note\n}", b.String())
	assert.Equal(t, 4, b.Len())
}

func TestBlankLinesCollapse(t *testing.T) {
	b := &Builder{}
	b.LnPush("")
	assert.Equal(t, 0, b.Len())
	assert.False(t, b.IsNotEmpty())

	b.LnPush("a")
	b.LnPush("")
	b.LnPush("   ")
	b.LnPush("b")

	assert.Equal(t, []string{"a", "", "b"}, b.Lines())
}

func TestPushSourceAndClone(t *testing.T) {
	doc := New("first", "", "second")
	b := New("header")
	b.PushSource(doc)
	b.PushSource(nil)

	clone := b.Clone()
	clone.LnPush("extra")

	assert.Equal(t, []string{"header", "first", "", "second"}, b.Lines())
	assert.Equal(t, 5, clone.Len())
	assert.True(t, b.IsNotEmpty())
}

func TestIndent(t *testing.T) {
	b := New("a", "", "b")
	assert.Equal(t, "    a\n\n    b", b.Indent("    ").String())
	// original untouched
	assert.Equal(t, "a\n\nb", b.String())
}
