package render

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Renderer converts a form descriptor into a byte representation (HTML,
// serialized prompt session output, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.Form, options Options) ([]byte, error)
}

// StatusKind classifies the transient submission outcome surfaced under the
// rendered fields.
type StatusKind string

const (
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the success- or error-styled line rendered below the form after a
// submit attempt. A nil *Status renders nothing.
type Status struct {
	Kind    StatusKind
	Message string
}

// Options describe per-request data renderers can use to customise output
// without mutating the descriptor pipeline.
type Options struct {
	// Method overrides the HTTP method declared by the form descriptor.
	Method string

	// Action overrides the submission target declared by the form descriptor.
	Action string

	// Values pre-populates rendered controls keyed by field name.
	Values map[string]string

	// Errors carries per-field validation messages rendered inline next to
	// the offending control.
	Errors map[string][]string

	// Status carries the submission outcome line. At most one of a success or
	// error status is rendered.
	Status *Status

	// Hidden appends hidden inputs (CSRF tokens, version stamps) after the
	// visible fields. Use the helpers in this package to build the map.
	Hidden map[string]string

	// Disabled forces the submit control into a disabled state, for example
	// while a submission is in flight.
	Disabled bool

	// Theme carries resolved theme tokens for renderers that honour them.
	Theme *ThemeConfig
}
