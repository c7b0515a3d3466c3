// Package diag collects translation diagnostics.
//
// A Context either accumulates every diagnostic (the default) or aborts at the
// first one (FailFast). Each Diagnostic wraps one of the sentinel kinds from
// the errors package so callers can classify it with errors.Is.
package diag

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/fsdefs/errors"
	"github.com/teranos/fsdefs/schema"
)

// Kind categorizes diagnostics for programmatic handling
type Kind string

const (
	KindUnsupportedDirective Kind = "unsupported-directive"
	KindMalformedValue       Kind = "malformed-directive-value"
	KindMalformedAttribute   Kind = "malformed-attribute"
	KindDuplicateDirective   Kind = "duplicate-directive"
	KindMalformedType        Kind = "malformed-type"
	KindUnknownType          Kind = "unknown-type"
)

// Sentinel returns the errors package sentinel for the kind.
func (k Kind) Sentinel() error {
	switch k {
	case KindUnsupportedDirective:
		return errors.ErrUnsupportedDirective
	case KindMalformedValue:
		return errors.ErrMalformedDirectiveValue
	case KindMalformedAttribute:
		return errors.ErrMalformedAttribute
	case KindDuplicateDirective:
		return errors.ErrDuplicateDirective
	case KindMalformedType:
		return errors.ErrMalformedType
	case KindUnknownType:
		return errors.ErrUnknownType
	}
	return errors.AssertionFailedf("unknown diagnostic kind %q", string(k))
}

// Diagnostic is one reported problem, located by Span.
type Diagnostic struct {
	Kind    Kind
	Span    schema.Span
	Message string
	Err     error // Message wrapped around Kind.Sentinel()
}

func (d *Diagnostic) Error() string {
	if loc := d.Span.String(); loc != "" {
		return loc + ": " + d.Message
	}
	return d.Message
}

// Unwrap for errors.Is/As compatibility
func (d *Diagnostic) Unwrap() error {
	return d.Err
}

// Terminal renders the diagnostic with colors for a terminal.
func (d *Diagnostic) Terminal() string {
	var b strings.Builder
	b.WriteString(pterm.Red("error"))
	b.WriteString(pterm.Gray("[" + string(d.Kind) + "]"))
	b.WriteString(": ")
	b.WriteString(d.Message)
	if loc := d.Span.String(); loc != "" {
		fmt.Fprintf(&b, "\n  %s %s", pterm.LightCyan("-->"), loc)
	}
	return b.String()
}

// List is an ordered set of diagnostics usable as an error.
type List []*Diagnostic

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no diagnostics"
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, len(l))
	for i, d := range l {
		msgs[i] = d.Error()
	}
	return fmt.Sprintf("%d diagnostics:\n  %s", len(l), strings.Join(msgs, "\n  "))
}

// Unwrap exposes every diagnostic to errors.Is/As.
func (l List) Unwrap() []error {
	errs := make([]error, len(l))
	for i, d := range l {
		errs[i] = d
	}
	return errs
}

// Has reports whether any diagnostic is of kind k.
func (l List) Has(k Kind) bool {
	for _, d := range l {
		if d.Kind == k {
			return true
		}
	}
	return false
}

// Context receives diagnostics during a translation.
type Context struct {
	failFast bool
	aborted  bool
	diags    List
}

// New returns an accumulating context.
func New() *Context {
	return &Context{}
}

// FailFast returns a context that aborts translation at the first diagnostic.
func FailFast() *Context {
	return &Context{failFast: true}
}

// Reportf records a diagnostic. Once a fail-fast context has aborted, further
// reports are dropped. A nil context has nowhere to record, so the first
// diagnostic panics with the *Diagnostic as value.
func (c *Context) Reportf(kind Kind, span schema.Span, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	d := &Diagnostic{
		Kind:    kind,
		Span:    span,
		Message: msg,
		Err:     errors.Wrap(kind.Sentinel(), msg),
	}
	if c == nil {
		panic(d)
	}
	if c.aborted {
		return
	}
	c.diags = append(c.diags, d)
	if c.failFast {
		c.aborted = true
	}
}

// Aborted reports whether translation should stop.
func (c *Context) Aborted() bool {
	return c != nil && c.aborted
}

// Diagnostics returns everything reported so far.
func (c *Context) Diagnostics() List {
	if c == nil {
		return nil
	}
	return c.diags
}

// Len returns the number of diagnostics.
func (c *Context) Len() int {
	return len(c.Diagnostics())
}

// Err returns the diagnostics as an error, or nil when there are none.
func (c *Context) Err() error {
	if c.Len() == 0 {
		return nil
	}
	return c.diags
}
