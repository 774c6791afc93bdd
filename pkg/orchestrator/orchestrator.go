// Package orchestrator coordinates the descriptor pipeline: load a document,
// parse it into a form, decorate the fields, and hand the result to a
// registered renderer.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	internalLoader "github.com/goliatone/go-formkit/internal/schema/loader"
	"github.com/goliatone/go-formkit/pkg/model"
	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/schema"
	theme "github.com/goliatone/go-theme"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom descriptor loader.
func WithLoader(loader schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom descriptor parser.
func WithParser(parser schema.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithDecorators registers decorators that run against the parsed form before
// rendering, in registration order.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithOpenAPIAdapter overrides the adapter used for OpenAPI requests.
func WithOpenAPIAdapter(adapter *pkgopenapi.Adapter) Option {
	return func(o *Orchestrator) {
		o.openapi = adapter
	}
}

// WithThemeSelector passes a go-theme selector through so theme/variant
// choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.selector = selector
	}
}

// WithDefaultTheme sets the theme and variant used when a request does not
// name one.
func WithDefaultTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.defaultTheme = name
		o.defaultVariant = variant
	}
}

// Orchestrator runs the full pipeline from descriptor document to rendered
// output. Missing dependencies are initialised with the built-in
// implementations so callers can start with a single constructor call.
type Orchestrator struct {
	loader          schema.Loader
	parser          schema.Parser
	registry        *render.Registry
	defaultRenderer string
	decorators      []model.Decorator
	openapi         *pkgopenapi.Adapter
	selector        theme.ThemeSelector
	defaultTheme    string
	defaultVariant  string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a form.
type Request struct {
	// Source identifies where the descriptor lives. Optional when Document or
	// Form is supplied.
	Source schema.Source

	// Document bypasses the loader when the caller already has a payload.
	Document *schema.Document

	// Form bypasses loading and parsing entirely.
	Form *model.Form

	// OpenAPI treats the document as an OpenAPI specification instead of a
	// native descriptor. FormID then selects the operation to render.
	OpenAPI bool

	// FormID selects a form when the document yields more than one.
	FormID string

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request instructions such as prefilled values
	// or server-side errors that renderers surface.
	RenderOptions render.Options

	// ThemeName and ThemeVariant override the configured defaults for this
	// request.
	ThemeName    string
	ThemeVariant string
}

// Generate executes the loader, parser, decorator, and renderer sequence and
// returns the rendered bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	form, err := o.resolveForm(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := o.applyDecorators(&form); err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		themeCfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		opts.Theme = themeCfg
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) resolveForm(ctx context.Context, req Request) (model.Form, error) {
	if req.Form != nil {
		return model.Normalize(*req.Form), nil
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return model.Form{}, err
	}

	if req.OpenAPI {
		return o.resolveOpenAPIForm(ctx, doc, req.FormID)
	}

	form, err := o.parser.Form(ctx, doc)
	if err != nil {
		return model.Form{}, fmt.Errorf("orchestrator: parse form: %w", err)
	}
	return form, nil
}

func (o *Orchestrator) resolveOpenAPIForm(ctx context.Context, doc schema.Document, formID string) (model.Form, error) {
	forms, err := o.openapi.Forms(ctx, doc)
	if err != nil {
		return model.Form{}, fmt.Errorf("orchestrator: derive forms: %w", err)
	}
	if formID == "" {
		if len(forms) == 1 {
			for _, form := range forms {
				return form, nil
			}
		}
		return model.Form{}, fmt.Errorf("orchestrator: document yields %d forms, form id is required", len(forms))
	}
	form, ok := forms[formID]
	if !ok {
		return model.Form{}, fmt.Errorf("orchestrator: form %q not found", formID)
	}
	return form, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source, document, or form is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	renderer, err := o.registry.First()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: no renderers registered: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(form *model.Form) error {
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(schema.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = schema.NewParser()
	}
	if o.openapi == nil {
		o.openapi = pkgopenapi.New()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}
