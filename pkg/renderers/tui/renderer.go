// Package tui renders forms as interactive terminal sessions. Each renderable
// field becomes a prompt; collected values are validated per field and
// serialized in the configured output format.
package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/validation"
)

const defaultMaxAttempts = 3

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	maxAttempts  int
	evaluator    *validation.Evaluator
}

// Ensure the renderer satisfies the public contract.
var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		maxAttempts:  defaultMaxAttempts,
		evaluator:    validation.NewEvaluator(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render walks the form fields, prompting for each and re-prompting while a
// field fails its validation rules. Pre-seeded option values become prompt
// defaults.
func (r *Renderer) Render(ctx context.Context, form model.Form, opts render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	form = model.Normalize(form)
	contract := validation.Build(form.Fields)

	if title := strings.TrimSpace(form.Title); title != "" {
		if err := r.driver.Info(ctx, title); err != nil {
			return nil, err
		}
	}

	values := make(map[string]string, len(form.Fields))
	for _, field := range form.Fields {
		if !field.Kind.Renderable() || field.Name == "" {
			continue
		}
		value, err := r.collect(ctx, field, contract, seedValue(field, opts.Values))
		if err != nil {
			return nil, err
		}
		values[field.Name] = value
	}

	return r.serialize(form, values)
}

// collect prompts for one field until its rules pass or the attempt budget is
// exhausted.
func (r *Renderer) collect(ctx context.Context, field model.Field, contract validation.Contract, seed string) (string, error) {
	current := seed
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		value, err := r.promptField(ctx, field, current)
		if err != nil {
			return "", err
		}
		if !contract.Has(field.Name) {
			return value, nil
		}

		scoped := validation.Contract{field.Name: contract[field.Name]}
		problems := r.evaluator.Validate(scoped, map[string]string{field.Name: value})
		if len(problems) == 0 {
			return value, nil
		}

		for _, problem := range problems[field.Name] {
			if err := r.driver.Info(ctx, fmt.Sprintf("%s %s", field.DisplayLabel(), problem)); err != nil {
				return "", err
			}
		}
		current = value
	}
	return "", fmt.Errorf("%w: field %q", ErrTooManyAttempts, field.Name)
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, current string) (string, error) {
	message := field.DisplayLabel()

	switch field.Kind {
	case model.FieldKindCheckbox:
		checked, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: truthy(current),
			Help:    field.Help,
		})
		if err != nil {
			return "", err
		}
		if checked {
			return "true", nil
		}
		return "false", nil

	case model.FieldKindSelect, model.FieldKindRadio:
		if len(field.Options) == 0 {
			return current, nil
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, current),
			Help:         field.Help,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(field.Options) {
			return "", nil
		}
		return field.Options[idx], nil

	case model.FieldKindPassword:
		return r.driver.Password(ctx, InputConfig{
			Message: message,
			Help:    field.Help,
		})

	case model.FieldKindTextarea:
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: current,
			Help:    field.Help,
		})

	default:
		return r.driver.Input(ctx, InputConfig{
			Message: message,
			Default: current,
			Help:    helpOrPlaceholder(field),
		})
	}
}

func (r *Renderer) serialize(form model.Form, values map[string]string) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for name, value := range values {
			encoded.Set(name, value)
		}
		return []byte(encoded.Encode()), nil

	case OutputFormatPrettyText:
		var b strings.Builder
		for _, field := range form.Fields {
			value, ok := values[field.Name]
			if !ok {
				continue
			}
			if field.Kind == model.FieldKindPassword && value != "" {
				value = strings.Repeat("*", 8)
			}
			fmt.Fprintf(&b, "%s: %s\n", field.DisplayLabel(), value)
		}
		return []byte(b.String()), nil

	default:
		payload, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: serialize values: %w", err)
		}
		return payload, nil
	}
}

func seedValue(field model.Field, values map[string]string) string {
	if values != nil {
		if value, ok := values[field.Name]; ok && value != "" {
			return value
		}
	}
	return field.Default
}

func helpOrPlaceholder(field model.Field) string {
	if field.Help != "" {
		return field.Help
	}
	return field.Placeholder
}

func truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}
