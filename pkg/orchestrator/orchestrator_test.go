package orchestrator

import (
	"context"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

const descriptorJSON = `{
  "id": "contact",
  "title": "Contact",
  "fields": [
    {"kind": "text", "name": "name", "validation": "required"},
    {"kind": "email", "name": "email"}
  ]
}`

type captureRenderer struct {
	form    model.Form
	options render.Options
}

func (r *captureRenderer) Name() string        { return "capture" }
func (r *captureRenderer) ContentType() string { return "text/plain" }

func (r *captureRenderer) Render(_ context.Context, form model.Form, opts render.Options) ([]byte, error) {
	r.form = form
	r.options = opts
	return []byte(form.ID), nil
}

func captureOrchestrator(options ...Option) (*Orchestrator, *captureRenderer) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)
	base := []Option{WithRegistry(registry), WithDefaultRenderer(renderer.Name())}
	return New(append(base, options...)...), renderer
}

func TestGenerateFromDocument(t *testing.T) {
	orch, renderer := captureOrchestrator()
	doc := schema.MustNewDocument(schema.SourceFromBytes("contact.json"), []byte(descriptorJSON))

	out, err := orch.Generate(context.Background(), Request{Document: &doc})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if string(out) != "contact" {
		t.Fatalf("unexpected output %q", out)
	}
	if renderer.form.Method != "POST" {
		t.Fatalf("form not normalized, method = %q", renderer.form.Method)
	}
	if len(renderer.form.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(renderer.form.Fields))
	}
}

func TestGenerateFromForm(t *testing.T) {
	orch, renderer := captureOrchestrator()
	form := model.Form{ID: "inline", Fields: []model.Field{{Kind: model.FieldKindText, Name: "a"}}}

	if _, err := orch.Generate(context.Background(), Request{Form: &form}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if renderer.form.ID != "inline" {
		t.Fatalf("form not passed through, got %q", renderer.form.ID)
	}
}

func TestGenerateRequiresInput(t *testing.T) {
	orch, _ := captureOrchestrator()
	if _, err := orch.Generate(context.Background(), Request{}); err == nil {
		t.Fatalf("expected error without source, document, or form")
	}
}

func TestGenerateUnknownRenderer(t *testing.T) {
	orch, _ := captureOrchestrator()
	doc := schema.MustNewDocument(schema.SourceFromBytes("contact.json"), []byte(descriptorJSON))

	if _, err := orch.Generate(context.Background(), Request{Document: &doc, Renderer: "hologram"}); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
}

func TestGenerateAppliesDecorators(t *testing.T) {
	orch, renderer := captureOrchestrator(WithDecorators(widgets.NewRegistry()))
	form := model.Form{Fields: []model.Field{{Kind: model.FieldKindCheckbox, Name: "tos"}}}

	if _, err := orch.Generate(context.Background(), Request{Form: &form}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got := renderer.form.Fields[0].Metadata["widget"]; got != widgets.WidgetToggle {
		t.Fatalf("decorator not applied, widget = %q", got)
	}
}

func TestGenerateOpenAPIDocument(t *testing.T) {
	const spec = `{
  "openapi": "3.0.3",
  "info": {"title": "T", "version": "1"},
  "paths": {
    "/things": {
      "post": {
        "operationId": "createThing",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {"type": "object", "properties": {"name": {"type": "string"}}}
            }
          }
        },
        "responses": {"201": {"description": "created"}}
      }
    }
  }
}`
	orch, renderer := captureOrchestrator()
	doc := schema.MustNewDocument(schema.SourceFromBytes("spec.json"), []byte(spec))

	if _, err := orch.Generate(context.Background(), Request{Document: &doc, OpenAPI: true}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if renderer.form.ID != "createThing" {
		t.Fatalf("expected single derived form, got %q", renderer.form.ID)
	}

	if _, err := orch.Generate(context.Background(), Request{Document: &doc, OpenAPI: true, FormID: "missing"}); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	name      string
	variant   string
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.name = name
	s.variant = variant
	return s.selection, s.err
}

func TestGeneratePassesThemeConfigToRenderer(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456"},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"brand": "#654321"}},
		},
	}
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:    "acme",
		Variant:  "dark",
		Manifest: manifest,
	}}

	orch, renderer := captureOrchestrator(
		WithThemeSelector(selector),
		WithDefaultTheme("acme", "dark"),
	)
	form := model.Form{Fields: []model.Field{{Kind: model.FieldKindText, Name: "a"}}}

	if _, err := orch.Generate(context.Background(), Request{Form: &form}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if selector.name != "acme" || selector.variant != "dark" {
		t.Fatalf("unexpected selector args: %s/%s", selector.name, selector.variant)
	}
	if cfg.Tokens["brand"] != "#654321" {
		t.Fatalf("variant tokens not merged, got %q", cfg.Tokens["brand"])
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("css vars not derived, got %q", cfg.CSSVars["--brand"])
	}
}

func TestGenerateSkipsThemeWithoutSelector(t *testing.T) {
	orch, renderer := captureOrchestrator()
	form := model.Form{Fields: []model.Field{{Kind: model.FieldKindText, Name: "a"}}}

	if _, err := orch.Generate(context.Background(), Request{Form: &form, ThemeName: "acme"}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if renderer.options.Theme != nil {
		t.Fatalf("expected no theme config without a selector")
	}
}
