// Package widgets maps fields to named widget hints. Renderers that support
// richer controls read the resolved hint from field metadata; renderers that
// do not simply ignore it.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetToggle     = "toggle"
	WidgetSelect     = "select"
	WidgetRadioGroup = "radio-group"
	WidgetMasked     = "masked"
	WidgetMultiline  = "multiline"
	WidgetStepper    = "stepper"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order. An
// empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence. Callers should avoid duplicate names; the
// latest registration wins during resolution.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit metadata hint is
// honoured before matcher evaluation.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator, applying registry resolution to every
// field in the form. A resolved widget is written to Metadata["widget"],
// preserving an existing value when present.
func (r *Registry) Decorate(form *model.Form) error {
	if r == nil || form == nil {
		return nil
	}
	for idx, field := range form.Fields {
		form.Fields[idx] = r.decorateField(field)
	}
	return nil
}

func (r *Registry) decorateField(field model.Field) model.Field {
	widget, ok := r.Resolve(field)
	if !ok || widget == "" {
		return field
	}
	if field.Metadata == nil {
		field.Metadata = make(map[string]string)
	}
	if field.Metadata["widget"] == "" {
		field.Metadata["widget"] = widget
	}
	return field
}

func explicitWidget(field model.Field) string {
	if field.Metadata == nil {
		return ""
	}
	return strings.TrimSpace(field.Metadata["widget"])
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetToggle, 90, func(field model.Field) bool {
		return field.Kind == model.FieldKindCheckbox
	})

	r.Register(WidgetRadioGroup, 80, func(field model.Field) bool {
		return field.Kind == model.FieldKindRadio
	})

	r.Register(WidgetSelect, 70, func(field model.Field) bool {
		return field.Kind == model.FieldKindSelect || (field.Kind == model.FieldKindText && len(field.Options) > 0)
	})

	r.Register(WidgetMasked, 60, func(field model.Field) bool {
		return field.Kind == model.FieldKindPassword
	})

	r.Register(WidgetStepper, 50, func(field model.Field) bool {
		return field.Kind == model.FieldKindNumber
	})

	r.Register(WidgetMultiline, 40, func(field model.Field) bool {
		return field.Kind == model.FieldKindTextarea
	})
}
