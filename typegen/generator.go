// Package typegen translates schema declarations into target language
// declarations.
//
// # Architecture
//
// Translation runs in two layers:
//  1. A Session builds a model.Description per declaration and maps every
//     field type to a model.TypeRef, translating referenced declarations
//     depth-first so dependencies come first in the Result.
//  2. Language generators (fsharp/, typescript/, jsonschema/) format the
//     Result. They share the wire package's externally-tagged encoding.
//
// Recursive references are cut with an in-progress marker: a reference to a
// declaration still being translated becomes a pending forward reference,
// recorded in Decl.Forward so generators can emit mutually recursive groups.
package typegen

import "path/filepath"

// Generator defines the interface for language-specific generators.
type Generator interface {
	// Language returns the language name (e.g., "fsharp", "typescript")
	Language() string

	// FileExtension returns the file extension for this language (e.g., "fs", "ts")
	FileExtension() string

	// FileName returns the output file name for a schema module
	FileName(module string) string

	// GenerateDecl renders a single declaration
	GenerateDecl(d *Decl) string

	// GenerateFile creates a complete output file
	GenerateFile(result *Result) (string, error)
}

// Header returns the first line of every generated file, as a comment.
func Header(commentPrefix, source string) string {
	if source == "" {
		return commentPrefix + " Generated by fsdefs. Do not edit."
	}
	return commentPrefix + " Generated by fsdefs from " + filepath.Base(source) + ". Do not edit."
}
