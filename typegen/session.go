package typegen

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/fsdefs/logger"
	"github.com/teranos/fsdefs/schema"
	"github.com/teranos/fsdefs/typegen/diag"
	"github.com/teranos/fsdefs/typegen/mapper"
	"github.com/teranos/fsdefs/typegen/model"
)

type declState int

const (
	inProgress declState = iota + 1
	done
)

// Options configures a Session.
type Options struct {
	// ValidateOverride checks fs_type text (fsharp.ValidateType)
	ValidateOverride func(text string) error
}

// Session owns the declaration registry for one or more Generate calls.
// A Session is not safe for concurrent use; independent sessions are.
type Session struct {
	ID string

	mapper *mapper.Mapper
	log    *zap.SugaredLogger

	doc    *schema.Document
	ctx    *diag.Context
	state  map[string]declState
	result *Result
}

// NewSession creates a session with a fresh ID.
func NewSession(opts Options) *Session {
	s := &Session{ID: uuid.NewString()}
	s.mapper = &mapper.Mapper{ValidateOverride: opts.ValidateOverride, Registry: s}
	s.log = logger.Named("typegen.session").With(logger.FieldSession, s.ID)
	return s
}

// Generate translates roots and everything they reference. Empty roots means
// every declaration in doc order. A nil ctx aborts at the first diagnostic.
// The Result is best-effort: it holds what was translated even when
// diagnostics were reported.
func (s *Session) Generate(doc *schema.Document, roots []string, ctx *diag.Context) *Result {
	start := time.Now()
	if ctx == nil {
		ctx = diag.FailFast()
	}

	s.doc = doc
	s.ctx = ctx
	s.state = make(map[string]declState, len(doc.Types))
	s.result = &Result{SessionID: s.ID, Module: doc.Module, Source: doc.File}

	if len(roots) == 0 {
		roots = doc.Names()
	}
	for _, name := range roots {
		if ctx.Aborted() {
			break
		}
		if _, ok := doc.Lookup(name); !ok {
			s.result.Unknown = append(s.result.Unknown, name)
			ctx.Reportf(diag.KindUnknownType, schema.Span{File: doc.File, Path: name}, "unknown type %q", name)
			continue
		}
		if s.state[name] == 0 {
			s.translate(name)
		}
	}

	s.result.Diagnostics = ctx.Diagnostics()
	s.log.Infow("Generated declarations",
		logger.FieldFile, doc.File,
		logger.FieldCount, len(s.result.Decls),
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)

	res := s.result
	s.doc, s.ctx, s.result = nil, nil, nil
	return res
}

// Require implements mapper.Registry. Declarations from the document are
// translated on first reference; names outside it are left to the target.
func (s *Session) Require(name string) bool {
	switch s.state[name] {
	case inProgress:
		return true
	case done:
		return false
	}
	if _, ok := s.doc.Lookup(name); !ok {
		s.log.Debugw("External type reference", logger.FieldRef, name)
		return false
	}
	s.translate(name)
	return false
}

func (s *Session) translate(name string) {
	decl, _ := s.doc.Lookup(name)
	s.state[name] = inProgress
	s.log.Debugw("Translating declaration", logger.FieldType, name)

	desc := model.Build(decl, s.ctx)
	d := &Decl{Desc: desc}
	seen := map[string]bool{}

	for _, f := range desc.AllFields() {
		if s.ctx.Aborted() {
			f.Ref = model.Any()
			continue
		}
		f.Ref = s.mapper.MapField(desc, f, s.ctx)
		f.Ref.Walk(func(r *model.TypeRef) {
			if r.Kind != model.RefNamed || !r.Pending {
				return
			}
			if r.Name == name {
				d.SelfRef = true
				return
			}
			if !seen[r.Name] {
				seen[r.Name] = true
				d.Forward = append(d.Forward, r.Name)
			}
		})
	}

	s.state[name] = done
	s.result.Decls = append(s.result.Decls, d)
}
