// Package openapi derives form descriptors from OpenAPI documents. Each
// mutating operation with a request body becomes one form whose fields mirror
// the body schema properties.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// Options tunes how documents are interpreted.
type Options struct {
	// AllowPartialDocuments keeps going when a document has no usable
	// operations instead of returning an error.
	AllowPartialDocuments bool

	// ValidateDocument runs the kin-openapi validator before extraction.
	ValidateDocument bool
}

// Option mutates Options.
type Option func(*Options)

// WithPartialDocuments tolerates documents without form-producing operations.
func WithPartialDocuments() Option {
	return func(opts *Options) {
		opts.AllowPartialDocuments = true
	}
}

// WithDocumentValidation validates the document before deriving forms.
func WithDocumentValidation() Option {
	return func(opts *Options) {
		opts.ValidateDocument = true
	}
}

// Adapter converts OpenAPI documents into model forms using kin-openapi.
type Adapter struct {
	options Options
}

// New constructs an Adapter.
func New(options ...Option) *Adapter {
	cfg := Options{}
	for _, opt := range options {
		opt(&cfg)
	}
	return &Adapter{options: cfg}
}

var formMethods = []struct {
	method string
	pick   func(*openapi3.PathItem) *openapi3.Operation
}{
	{"POST", func(item *openapi3.PathItem) *openapi3.Operation { return item.Post }},
	{"PUT", func(item *openapi3.PathItem) *openapi3.Operation { return item.Put }},
	{"PATCH", func(item *openapi3.PathItem) *openapi3.Operation { return item.Patch }},
}

// Forms extracts one form per request-body-bearing operation, keyed by
// operationId (or "method:path" when the id is missing).
func (a *Adapter) Forms(ctx context.Context, doc schema.Document) (map[string]model.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if a.options.ValidateDocument {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}

	forms := make(map[string]model.Form)
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for _, candidate := range formMethods {
				operation := candidate.pick(item)
				if operation == nil {
					continue
				}
				form, ok := a.formFromOperation(candidate.method, path, operation)
				if !ok {
					continue
				}
				forms[form.ID] = form
			}
		}
	}

	if len(forms) == 0 && !a.options.AllowPartialDocuments {
		return nil, errors.New("openapi: no form-producing operations found")
	}
	return forms, nil
}

func (a *Adapter) formFromOperation(method, path string, operation *openapi3.Operation) (model.Form, bool) {
	body := requestBodySchema(operation.RequestBody)
	if body == nil || len(body.Properties) == 0 {
		return model.Form{}, false
	}

	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]model.Field, 0, len(names))
	for _, name := range names {
		property := body.Properties[name]
		if property == nil || property.Value == nil {
			continue
		}
		fields = append(fields, fieldFromProperty(name, property.Value, required[name]))
	}
	if len(fields) == 0 {
		return model.Form{}, false
	}

	form := model.Form{
		ID:          id,
		Title:       operation.Summary,
		Description: operation.Description,
		Action:      path,
		Method:      method,
		Fields:      fields,
	}
	return model.Normalize(form), true
}

func requestBodySchema(ref *openapi3.RequestBodyRef) *openapi3.Schema {
	if ref == nil || ref.Value == nil {
		return nil
	}
	content := ref.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldFromProperty(name string, property *openapi3.Schema, required bool) model.Field {
	field := model.Field{
		Kind:        kindFor(property),
		Name:        name,
		Label:       property.Title,
		Help:        property.Description,
		Options:     enumOptions(property.Enum),
		Validations: rulesFor(property, required),
	}
	if value, ok := property.Default.(string); ok {
		field.Default = value
	}
	return field
}

func kindFor(property *openapi3.Schema) model.FieldKind {
	if len(property.Enum) > 0 {
		return model.FieldKindSelect
	}
	switch schemaType(property) {
	case "boolean":
		return model.FieldKindCheckbox
	case "integer", "number":
		return model.FieldKindNumber
	case "string":
		switch property.Format {
		case "email":
			return model.FieldKindEmail
		case "password":
			return model.FieldKindPassword
		}
		if property.MaxLength != nil && *property.MaxLength > 255 {
			return model.FieldKindTextarea
		}
		return model.FieldKindText
	default:
		return model.FieldKindUnknown
	}
}

func rulesFor(property *openapi3.Schema, required bool) []model.ValidationRule {
	var rules []model.ValidationRule
	if required {
		rules = append(rules, model.ValidationRule{Kind: model.ValidationRuleRequired})
	}
	if property.Format == "email" {
		rules = append(rules, model.ValidationRule{Kind: model.ValidationRuleEmail})
	}
	if property.Min != nil {
		rules = append(rules, valueRule(model.ValidationRuleMin, formatFloat(*property.Min)))
	}
	if property.Max != nil {
		rules = append(rules, valueRule(model.ValidationRuleMax, formatFloat(*property.Max)))
	}
	if property.MinLength > 0 {
		rules = append(rules, valueRule(model.ValidationRuleMinLength, strconv.FormatUint(property.MinLength, 10)))
	}
	if property.MaxLength != nil {
		rules = append(rules, valueRule(model.ValidationRuleMaxLength, strconv.FormatUint(*property.MaxLength, 10)))
	}
	if property.Pattern != "" {
		rules = append(rules, model.ValidationRule{
			Kind:   model.ValidationRulePattern,
			Params: map[string]string{"pattern": property.Pattern},
		})
	}
	return rules
}

func valueRule(kind string, value string) model.ValidationRule {
	return model.ValidationRule{Kind: kind, Params: map[string]string{"value": value}}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func enumOptions(values []any) []string {
	if len(values) == 0 {
		return nil
	}
	options := make([]string, 0, len(values))
	for _, value := range values {
		options = append(options, fmt.Sprintf("%v", value))
	}
	return options
}

func schemaType(property *openapi3.Schema) string {
	if property.Type == nil {
		return ""
	}
	values := property.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
