package schema

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// Parser converts a descriptor Document into the model Form renderers and
// sessions consume.
type Parser interface {
	Form(ctx context.Context, doc Document) (model.Form, error)
}

type parser struct{}

// NewParser constructs the default JSON/YAML descriptor parser.
func NewParser() Parser {
	return parser{}
}

// formDocument mirrors the wire format of a descriptor document. Validation
// rules can be declared structured under "validations" or as the shorthand
// string "validation" ("required,email,min=0"); both may appear on one field.
type formDocument struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Action      string            `json:"action" yaml:"action"`
	Method      string            `json:"method" yaml:"method"`
	SubmitLabel string            `json:"submitLabel" yaml:"submitLabel"`
	Fields      []fieldDocument   `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata" yaml:"metadata"`
}

type fieldDocument struct {
	Kind        string                 `json:"kind" yaml:"kind"`
	Name        string                 `json:"name" yaml:"name"`
	Label       string                 `json:"label" yaml:"label"`
	Placeholder string                 `json:"placeholder" yaml:"placeholder"`
	Help        string                 `json:"help" yaml:"help"`
	Options     []string               `json:"options" yaml:"options"`
	Default     string                 `json:"default" yaml:"default"`
	Validation  string                 `json:"validation" yaml:"validation"`
	Validations []model.ValidationRule `json:"validations" yaml:"validations"`
	Metadata    map[string]string      `json:"metadata" yaml:"metadata"`
}

// Form parses the document payload, sniffing JSON by its leading byte and
// treating everything else as YAML.
func (parser) Form(ctx context.Context, doc Document) (model.Form, error) {
	if ctx == nil {
		return model.Form{}, errors.New("schema parser: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.Form{}, err
	}

	raw := doc.Raw()
	if len(raw) == 0 {
		return model.Form{}, errors.New("schema parser: document payload is empty")
	}

	var wire formDocument
	if looksLikeJSON(raw) {
		if err := json.Unmarshal(raw, &wire); err != nil {
			return model.Form{}, fmt.Errorf("schema parser: decode json document %q: %w", doc.Location(), err)
		}
	} else {
		if err := yaml.Unmarshal(raw, &wire); err != nil {
			return model.Form{}, fmt.Errorf("schema parser: decode yaml document %q: %w", doc.Location(), err)
		}
	}

	if len(wire.Fields) == 0 {
		return model.Form{}, fmt.Errorf("schema parser: document %q declares no fields", doc.Location())
	}

	form := model.Form{
		ID:          wire.ID,
		Title:       wire.Title,
		Description: wire.Description,
		Action:      wire.Action,
		Method:      wire.Method,
		SubmitLabel: wire.SubmitLabel,
		Metadata:    wire.Metadata,
		Fields:      make([]model.Field, 0, len(wire.Fields)),
	}

	for idx, fieldDoc := range wire.Fields {
		field, err := convertField(fieldDoc)
		if err != nil {
			return model.Form{}, fmt.Errorf("schema parser: field %d (%s): %w", idx, fieldDoc.Name, err)
		}
		form.Fields = append(form.Fields, field)
	}

	return model.Normalize(form), nil
}

func convertField(doc fieldDocument) (model.Field, error) {
	rules := append([]model.ValidationRule(nil), doc.Validations...)
	if doc.Validation != "" {
		shorthand, err := validation.ParseRules(doc.Validation)
		if err != nil {
			return model.Field{}, err
		}
		rules = append(rules, shorthand...)
	}
	if len(rules) == 0 {
		rules = nil
	}

	return model.Field{
		Kind:        model.ParseKind(doc.Kind),
		Name:        doc.Name,
		Label:       doc.Label,
		Placeholder: doc.Placeholder,
		Help:        doc.Help,
		Options:     doc.Options,
		Default:     doc.Default,
		Validations: rules,
		Metadata:    doc.Metadata,
	}, nil
}

func looksLikeJSON(raw []byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
