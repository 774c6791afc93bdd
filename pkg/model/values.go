package model

import "strings"

// InitialValues derives the starting value map for a form: one entry per
// field name, each the empty string, regardless of kind. Duplicate names
// collapse to a single entry with the last descriptor winning, matching the
// contract builder in pkg/validation. Submit and Unknown fields are included
// like any other named field so the mapping stays a pure function of names.
func InitialValues(fields []Field) map[string]string {
	values := make(map[string]string, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		values[name] = ""
	}
	return values
}

// Normalize returns a copy of the form with kinds parsed onto the closed
// enum, names trimmed and a default method applied. The field order is
// preserved; nothing is removed.
func Normalize(form Form) Form {
	out := form
	if strings.TrimSpace(out.Method) == "" {
		out.Method = "POST"
	}
	out.Method = strings.ToUpper(strings.TrimSpace(out.Method))

	if len(form.Fields) == 0 {
		return out
	}
	fields := make([]Field, len(form.Fields))
	for idx, field := range form.Fields {
		field.Kind = ParseKind(string(field.Kind))
		field.Name = strings.TrimSpace(field.Name)
		fields[idx] = field
	}
	out.Fields = fields
	return out
}

// Decorator mutates a form in place ahead of rendering. Implementations must
// tolerate nil metadata maps.
type Decorator interface {
	Decorate(form *Form) error
}

// DecoratorFunc adapts a function to the Decorator interface.
type DecoratorFunc func(form *Form) error

// Decorate implements Decorator.
func (f DecoratorFunc) Decorate(form *Form) error {
	return f(form)
}
