// Package vanilla renders form descriptors into dependency-free HTML. Field
// controls are written directly; the surrounding form chrome comes from an
// embedded template so callers can restyle it without forking the renderer.
//
// Supplied values echo back into every control except passwords: a password
// input always renders empty, even on a re-render that preserves the other
// entered values, so secrets never appear in the response markup.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	rendertemplate "github.com/goliatone/go-formkit/pkg/render/template"
	gotemplate "github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formkit/pkg/visibility"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	visibility       visibility.Evaluator
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithVisibility installs an evaluator for conditional fields. Fields whose
// metadata carries a visibility rule are omitted when the rule evaluates
// false against the submitted values.
func WithVisibility(evaluator visibility.Evaluator) Option {
	return func(cfg *config) {
		cfg.visibility = evaluator
	}
}

// Renderer implements render.Renderer for HTML output.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	visibility visibility.Evaluator
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, visibility: cfg.visibility}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the full form markup: controls in descriptor order, hidden
// inputs, at most one status line, and a submit control that honours the
// disabled flag.
func (r *Renderer) Render(ctx context.Context, form model.Form, options render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, fmt.Errorf("vanilla renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	form = model.Normalize(form)

	var fields strings.Builder
	for _, field := range form.Fields {
		if r.hidden(field, options) {
			continue
		}
		markup := renderField(field, options)
		if markup == "" {
			continue
		}
		fields.WriteString(markup)
		fields.WriteByte('\n')
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"form":        form,
		"action":      resolveAction(form, options),
		"method":      resolveMethod(form, options),
		"fieldsHTML":  fields.String(),
		"hidden":      render.SortedHiddenFields(options.Hidden),
		"status":      statusContext(options.Status),
		"disabled":    options.Disabled,
		"submitLabel": submitLabel(form),
		"cssVars":     cssVarsBlock(options.Theme),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// hidden reports whether a visibility rule excludes the field. A rule that
// fails to evaluate leaves the field visible.
func (r *Renderer) hidden(field model.Field, options render.Options) bool {
	if r.visibility == nil {
		return false
	}
	rule := strings.TrimSpace(field.Metadata[visibility.MetadataKey])
	if rule == "" {
		return false
	}
	visible, err := r.visibility.Eval(field.Name, rule, visibility.Context{Values: options.Values})
	if err != nil {
		return false
	}
	return !visible
}

func resolveAction(form model.Form, options render.Options) string {
	if strings.TrimSpace(options.Action) != "" {
		return options.Action
	}
	return form.Action
}

func resolveMethod(form model.Form, options render.Options) string {
	if strings.TrimSpace(options.Method) != "" {
		return strings.ToUpper(strings.TrimSpace(options.Method))
	}
	if strings.TrimSpace(form.Method) != "" {
		return strings.ToUpper(form.Method)
	}
	return "POST"
}

func submitLabel(form model.Form) string {
	if strings.TrimSpace(form.SubmitLabel) != "" {
		return form.SubmitLabel
	}
	// A submit pseudo-field may carry the button label.
	for _, field := range form.Fields {
		if field.Kind == model.FieldKindSubmit && strings.TrimSpace(field.Label) != "" {
			return field.Label
		}
	}
	return "Submit"
}

func statusContext(status *render.Status) map[string]any {
	if status == nil || strings.TrimSpace(status.Message) == "" {
		return nil
	}
	return map[string]any{
		"kind":    string(status.Kind),
		"message": status.Message,
	}
}
