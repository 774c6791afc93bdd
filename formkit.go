// Package formkit renders declarative form descriptors as HTML or terminal
// sessions, validates submitted values, and coordinates the submit lifecycle.
// This file re-exports the common types and constructors so most callers only
// import the root package.
package formkit

import (
	"context"
	"io/fs"

	internalLoader "github.com/goliatone/go-formkit/internal/schema/loader"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/session"
	theme "github.com/goliatone/go-theme"
)

// Form aliases the descriptor form model.
type Form = model.Form

// Field aliases a single form field descriptor.
type Field = model.Field

// FieldKind aliases the closed set of field kinds.
type FieldKind = model.FieldKind

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface validation errors.
type RenderOptions = render.Options

// Session drives the submit lifecycle for one form instance.
type Session = session.Session

// SubmitFunc receives the validated values of a submit attempt.
type SubmitFunc = session.SubmitFunc

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module so quick starts need a single import.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads the descriptor source, parses it, and renders it using
// the named renderer. It is the simplest entry point for callers that just
// want HTML output.
func GenerateHTML(ctx context.Context, source schema.Source, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		Renderer: rendererName,
	})
}

// GenerateHTMLFromDocument renders a form using a pre-loaded document,
// bypassing the loader stage while still delegating to the orchestrator.
func GenerateHTMLFromDocument(ctx context.Context, doc schema.Document, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Renderer: rendererName,
	})
}

// NewLoader constructs a descriptor loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	cfg := schema.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a descriptor parser backed by the default
// implementation.
func NewParser() schema.Parser {
	return schema.NewParser()
}

// NewSession starts a submit lifecycle for the given form. The submit callback
// receives the validated values.
func NewSession(form Form, submit SubmitFunc, options ...session.Option) (*Session, error) {
	return session.New(form, submit, options...)
}

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// WithThemeSelector forwards a go-theme selector to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}
