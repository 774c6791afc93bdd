package model

import "strings"

// FieldKind is the closed enumeration of control kinds a descriptor can
// declare. Unrecognised inputs normalise to FieldKindUnknown rather than
// erroring, so a descriptor list with a bad kind still renders its remaining
// fields.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindPassword FieldKind = "password"
	FieldKindEmail    FieldKind = "email"
	FieldKindNumber   FieldKind = "number"
	FieldKindCheckbox FieldKind = "checkbox"
	FieldKindRadio    FieldKind = "radio"
	FieldKindSelect   FieldKind = "select"
	FieldKindTextarea FieldKind = "textarea"

	// FieldKindSubmit is the pseudo-kind some descriptor documents carry for
	// the submit control. Renderers emit their own submit control, so a
	// submit descriptor produces no output.
	FieldKindSubmit FieldKind = "submit"

	// FieldKindUnknown is the explicit fallback variant for any kind string
	// not listed above.
	FieldKindUnknown FieldKind = ""
)

// ParseKind maps a raw kind string onto the closed FieldKind set. Matching is
// case-insensitive; anything unrecognised becomes FieldKindUnknown.
func ParseKind(raw string) FieldKind {
	switch FieldKind(strings.ToLower(strings.TrimSpace(raw))) {
	case FieldKindText:
		return FieldKindText
	case FieldKindPassword:
		return FieldKindPassword
	case FieldKindEmail:
		return FieldKindEmail
	case FieldKindNumber:
		return FieldKindNumber
	case FieldKindCheckbox:
		return FieldKindCheckbox
	case FieldKindRadio:
		return FieldKindRadio
	case FieldKindSelect:
		return FieldKindSelect
	case FieldKindTextarea:
		return FieldKindTextarea
	case FieldKindSubmit:
		return FieldKindSubmit
	default:
		return FieldKindUnknown
	}
}

// Renderable reports whether the kind maps to a concrete control. Submit and
// Unknown render nothing.
func (k FieldKind) Renderable() bool {
	switch k {
	case FieldKindSubmit, FieldKindUnknown:
		return false
	default:
		return true
	}
}

// Choice reports whether the kind selects among Options (radio/select).
func (k FieldKind) Choice() bool {
	return k == FieldKindRadio || k == FieldKindSelect
}

const (
	ValidationRuleRequired  = "required"
	ValidationRuleEmail     = "email"
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

// ValidationRule represents a single constraint applied to a field. Use the
// ValidationRule* constants for Kind. Numeric bounds and length limits encode
// their threshold in Params["value"] while pattern rules carry the expression
// in Params["pattern"]. Values stay strings to keep JSON snapshots stable.
type ValidationRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Field models one declarative form control. Struct fields are annotated so
// descriptor documents and renderers can serialise them directly.
type Field struct {
	Kind        FieldKind         `json:"kind" yaml:"kind"`
	Name        string            `json:"name" yaml:"name"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help        string            `json:"help,omitempty" yaml:"help,omitempty"`
	Options     []string          `json:"options,omitempty" yaml:"options,omitempty"`
	Default     string            `json:"default,omitempty" yaml:"default,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty" yaml:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// DisplayLabel returns the label when present, falling back to the field
// name.
func (f Field) DisplayLabel() string {
	if strings.TrimSpace(f.Label) != "" {
		return f.Label
	}
	return f.Name
}

// Required reports whether the field carries a required rule.
func (f Field) Required() bool {
	for _, rule := range f.Validations {
		if rule.Kind == ValidationRuleRequired {
			return true
		}
	}
	return false
}

// Form is the top-level descriptor renderers and sessions consume: an ordered
// field sequence plus submission metadata.
type Form struct {
	ID          string            `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Action      string            `json:"action,omitempty" yaml:"action,omitempty"`
	Method      string            `json:"method,omitempty" yaml:"method,omitempty"`
	SubmitLabel string            `json:"submitLabel,omitempty" yaml:"submitLabel,omitempty"`
	Fields      []Field           `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
