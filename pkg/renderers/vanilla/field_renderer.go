package vanilla

import (
	"html"
	"strings"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
)

// renderField maps one descriptor to its control markup wrapped in field
// chrome. Submit and Unknown kinds produce no output at all; the remaining
// fields keep rendering regardless.
func renderField(field model.Field, options render.Options) string {
	if !field.Kind.Renderable() || strings.TrimSpace(field.Name) == "" {
		return ""
	}

	value := fieldValue(field, options.Values)
	control := controlMarkup(field, value)

	var builder strings.Builder
	builder.Grow(len(control) + 256)

	builder.WriteString(`<div class="formkit-field" data-kind="`)
	builder.WriteString(html.EscapeString(string(field.Kind)))
	builder.WriteString("\">\n")

	if field.Kind != model.FieldKindCheckbox {
		writeLabel(&builder, field)
	}

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString("    ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	// Checkboxes put the label after the box so the toggle reads naturally.
	if field.Kind == model.FieldKindCheckbox {
		writeLabel(&builder, field)
	}

	if help := strings.TrimSpace(field.Help); help != "" {
		builder.WriteString(`    <small class="formkit-help">`)
		builder.WriteString(sanitizeHelpMarkup(help))
		builder.WriteString("</small>\n")
	}

	if msgs := options.Errors[field.Name]; len(msgs) > 0 {
		builder.WriteString(`    <ul class="formkit-errors">` + "\n")
		for _, msg := range msgs {
			builder.WriteString(`        <li>`)
			builder.WriteString(html.EscapeString(msg))
			builder.WriteString("</li>\n")
		}
		builder.WriteString("    </ul>\n")
	}

	builder.WriteString("</div>")
	return builder.String()
}

func writeLabel(builder *strings.Builder, field model.Field) {
	label := strings.TrimSpace(field.DisplayLabel())
	if label == "" {
		return
	}
	builder.WriteString(`    <label for="fk-`)
	builder.WriteString(html.EscapeString(field.Name))
	builder.WriteString(`" class="formkit-label">`)
	builder.WriteString(html.EscapeString(label))
	if field.Required() {
		builder.WriteString(` *`)
	}
	builder.WriteString("</label>\n")
}

// controlMarkup dispatches on the closed kind enumeration. Every renderable
// kind yields exactly one control bound to the field name.
func controlMarkup(field model.Field, value string) string {
	switch field.Kind {
	case model.FieldKindText, model.FieldKindPassword, model.FieldKindEmail, model.FieldKindNumber:
		return inputMarkup(field, value)
	case model.FieldKindCheckbox:
		return checkboxMarkup(field, value)
	case model.FieldKindRadio:
		return radioMarkup(field, value)
	case model.FieldKindSelect:
		return selectMarkup(field, value)
	case model.FieldKindTextarea:
		return textareaMarkup(field, value)
	default:
		return ""
	}
}

func inputMarkup(field model.Field, value string) string {
	var builder strings.Builder
	builder.WriteString(`<input type="`)
	builder.WriteString(string(field.Kind))
	builder.WriteString(`" id="fk-`)
	builder.WriteString(html.EscapeString(field.Name))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.Name))
	builder.WriteString(`" class="formkit-input"`)
	if value != "" && field.Kind != model.FieldKindPassword {
		builder.WriteString(` value="`)
		builder.WriteString(html.EscapeString(value))
		builder.WriteString(`"`)
	}
	if placeholder := strings.TrimSpace(field.Placeholder); placeholder != "" {
		builder.WriteString(` placeholder="`)
		builder.WriteString(html.EscapeString(placeholder))
		builder.WriteString(`"`)
	}
	if field.Required() {
		builder.WriteString(` required`)
	}
	builder.WriteString(`>`)
	return builder.String()
}

func checkboxMarkup(field model.Field, value string) string {
	var builder strings.Builder
	builder.WriteString(`<input type="checkbox" id="fk-`)
	builder.WriteString(html.EscapeString(field.Name))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.Name))
	builder.WriteString(`" value="true" class="formkit-checkbox"`)
	if checkedValue(value) {
		builder.WriteString(` checked`)
	}
	builder.WriteString(`>`)
	return builder.String()
}

// radioMarkup renders one choice per option. An absent option list yields a
// group with zero choices, degenerate but deliberate.
func radioMarkup(field model.Field, value string) string {
	var builder strings.Builder
	builder.WriteString(`<div class="formkit-radio-group" role="radiogroup">` + "\n")
	for _, option := range field.Options {
		builder.WriteString(`    <label class="formkit-radio"><input type="radio" name="`)
		builder.WriteString(html.EscapeString(field.Name))
		builder.WriteString(`" value="`)
		builder.WriteString(html.EscapeString(option))
		builder.WriteString(`"`)
		if option == value {
			builder.WriteString(` checked`)
		}
		builder.WriteString(`> `)
		builder.WriteString(html.EscapeString(option))
		builder.WriteString("</label>\n")
	}
	builder.WriteString(`</div>`)
	return builder.String()
}

func selectMarkup(field model.Field, value string) string {
	var builder strings.Builder
	builder.WriteString(`<select id="fk-`)
	builder.WriteString(html.EscapeString(field.Name))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.Name))
	builder.WriteString(`" class="formkit-select"`)
	if field.Required() {
		builder.WriteString(` required`)
	}
	builder.WriteString(">\n")
	builder.WriteString(`    <option value="">`)
	builder.WriteString(html.EscapeString(selectPlaceholder(field)))
	builder.WriteString("</option>\n")
	for _, option := range field.Options {
		builder.WriteString(`    <option value="`)
		builder.WriteString(html.EscapeString(option))
		builder.WriteString(`"`)
		if option == value {
			builder.WriteString(` selected`)
		}
		builder.WriteString(`>`)
		builder.WriteString(html.EscapeString(option))
		builder.WriteString("</option>\n")
	}
	builder.WriteString(`</select>`)
	return builder.String()
}

func textareaMarkup(field model.Field, value string) string {
	var builder strings.Builder
	builder.WriteString(`<textarea id="fk-`)
	builder.WriteString(html.EscapeString(field.Name))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.Name))
	builder.WriteString(`" class="formkit-textarea" rows="4"`)
	if placeholder := strings.TrimSpace(field.Placeholder); placeholder != "" {
		builder.WriteString(` placeholder="`)
		builder.WriteString(html.EscapeString(placeholder))
		builder.WriteString(`"`)
	}
	if field.Required() {
		builder.WriteString(` required`)
	}
	builder.WriteString(`>`)
	builder.WriteString(html.EscapeString(value))
	builder.WriteString(`</textarea>`)
	return builder.String()
}

func selectPlaceholder(field model.Field) string {
	if placeholder := strings.TrimSpace(field.Placeholder); placeholder != "" {
		return placeholder
	}
	return "Select…"
}

func fieldValue(field model.Field, values map[string]string) string {
	if values != nil {
		if value, ok := values[field.Name]; ok && value != "" {
			return value
		}
	}
	return field.Default
}

func checkedValue(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "on", "1", "yes":
		return true
	default:
		return false
	}
}
