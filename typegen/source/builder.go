// Package source accumulates generated text line by line.
package source

import "strings"

// Builder holds output lines. The zero value is an empty builder.
type Builder struct {
	lines []string
}

// New returns a builder holding the given lines.
func New(lines ...string) *Builder {
	b := &Builder{}
	for _, l := range lines {
		b.LnPush(l)
	}
	return b
}

// Push appends text to the current line, starting one if the builder is empty.
func (b *Builder) Push(text string) {
	if len(b.lines) == 0 {
		b.lines = append(b.lines, text)
		return
	}
	b.lines[len(b.lines)-1] += text
}

// LnPush starts a new line holding text. A blank line is dropped when the
// builder is empty or already ends with a blank line.
func (b *Builder) LnPush(text string) {
	if isBlank(text) && (len(b.lines) == 0 || isBlank(b.lines[len(b.lines)-1])) {
		return
	}
	b.lines = append(b.lines, text)
}

// PushSource appends other's lines, each as a new line.
func (b *Builder) PushSource(other *Builder) {
	if other == nil {
		return
	}
	for _, l := range other.lines {
		b.LnPush(l)
	}
}

// IsNotEmpty reports whether any line holds non-blank text.
func (b *Builder) IsNotEmpty() bool {
	for _, l := range b.lines {
		if !isBlank(l) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy.
func (b *Builder) Clone() *Builder {
	return &Builder{lines: append([]string(nil), b.lines...)}
}

// Lines returns a copy of the lines.
func (b *Builder) Lines() []string {
	return append([]string(nil), b.lines...)
}

// Len returns the number of lines.
func (b *Builder) Len() int {
	return len(b.lines)
}

// Indent returns a copy with prefix added to every non-blank line.
func (b *Builder) Indent(prefix string) *Builder {
	out := &Builder{lines: make([]string, len(b.lines))}
	for i, l := range b.lines {
		if isBlank(l) {
			continue
		}
		out.lines[i] = prefix + l
	}
	return out
}

// String joins the lines with newlines, without a trailing newline.
func (b *Builder) String() string {
	return strings.Join(b.lines, "\n")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
