package typegen

import (
	"github.com/teranos/fsdefs/typegen/diag"
	"github.com/teranos/fsdefs/typegen/model"
)

// Result holds every declaration translated in one Session.Generate call.
// This is language-agnostic - each Generator formats it differently.
type Result struct {
	// SessionID identifies the generation session
	SessionID string

	// Module is the schema's module name, used for namespaces
	Module string

	// Source is the schema file the declarations came from
	Source string

	// Decls in emission order: a declaration follows everything it references,
	// except forward references inside recursive groups
	Decls []*Decl

	// Unknown lists requested root names missing from the schema
	Unknown []string

	// Diagnostics reported while translating
	Diagnostics diag.List
}

// Decl is one translated declaration.
type Decl struct {
	Desc *model.Description

	// Forward names declarations referenced before being emitted
	Forward []string

	// SelfRef is set when the declaration refers to itself
	SelfRef bool
}

// Name returns the declaration name.
func (d *Decl) Name() string {
	return d.Desc.Name
}

// Lookup finds a translated declaration by name.
func (r *Result) Lookup(name string) *Decl {
	for _, d := range r.Decls {
		if d.Name() == name {
			return d
		}
	}
	return nil
}

// Names returns declaration names in emission order.
func (r *Result) Names() []string {
	names := make([]string, len(r.Decls))
	for i, d := range r.Decls {
		names[i] = d.Name()
	}
	return names
}

// Groups splits Decls into recursive groups: a declaration with forward
// references opens a group that stays open until every name it (or a later
// member) forward-references has been emitted. Declarations without forward
// references form groups of one.
func (r *Result) Groups() [][]*Decl {
	var groups [][]*Decl
	var current []*Decl
	waiting := map[string]bool{}
	emitted := map[string]bool{}

	for _, d := range r.Decls {
		emitted[d.Name()] = true
		delete(waiting, d.Name())
		current = append(current, d)
		for _, f := range d.Forward {
			if !emitted[f] {
				waiting[f] = true
			}
		}
		if len(waiting) == 0 {
			groups = append(groups, current)
			current = nil
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}
