// Package errors provides error handling for fsdefs.
//
// This package re-exports github.com/cockroachdb/errors so every package
// gets stack traces, wrapping, hints and details from one import:
//
//	if err := schema.Load(path); err != nil {
//	    return errors.Wrapf(err, "failed to load %s", path)
//	}
//
// It also declares the sentinel errors that translation diagnostics wrap, so
// callers can classify a diagnostic with errors.Is.
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// AssertionFailedf reports a violated internal invariant.
var AssertionFailedf = crdb.AssertionFailedf

// Translation error kinds. Diagnostics produced while translating a schema
// wrap exactly one of these.
var (
	// ErrUnsupportedDirective is an unknown key inside the fs(...) namespace
	ErrUnsupportedDirective = New("unsupported directive")

	// ErrMalformedDirectiveValue is a directive value that does not parse in its grammar
	ErrMalformedDirectiveValue = New("malformed directive value")

	// ErrMalformedAttribute is an annotation whose contents are not a parsable meta list
	ErrMalformedAttribute = New("malformed attribute syntax")

	// ErrDuplicateDirective is a directive key given twice on the same item
	ErrDuplicateDirective = New("duplicate directive")

	// ErrMalformedType is a field type expression that does not parse
	ErrMalformedType = New("malformed type expression")

	// ErrUnknownType is a requested root type missing from the schema
	ErrUnknownType = New("unknown type")
)

// Input errors.
var (
	// ErrSchemaVersion indicates a schema document outside the supported version range
	ErrSchemaVersion = New("unsupported schema version")

	// ErrInvalidSchema indicates a schema document that cannot be translated at all
	ErrInvalidSchema = New("invalid schema")

	// ErrOutOfDate indicates generated files differ from a fresh generation
	ErrOutOfDate = New("generated files are out of date")

	// ErrInvalidPayload indicates a wire payload rejected by a generated JSON Schema
	ErrInvalidPayload = New("payload does not match schema")
)

// IsDiagnosticKind reports whether err wraps one of the translation error kinds.
func IsDiagnosticKind(err error) bool {
	return err != nil && IsAny(err,
		ErrUnsupportedDirective,
		ErrMalformedDirectiveValue,
		ErrMalformedAttribute,
		ErrDuplicateDirective,
		ErrMalformedType,
		ErrUnknownType,
	)
}

// NewInvalidSchemaError creates an invalid-schema error with a formatted message
func NewInvalidSchemaError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidSchema, Newf(format, args...).Error())
}
