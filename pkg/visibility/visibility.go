// Package visibility decides whether a field should appear based on a rule
// string and the current form values. Renderers consult the evaluator for
// fields that declare a rule under the "visibleIf" metadata key.
package visibility

// MetadataKey is the field metadata entry holding the visibility rule.
const MetadataKey = "visibleIf"

// Evaluator determines whether a field should be visible.
type Evaluator interface {
	Eval(fieldName, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values typically comes from render
// options (current form values) while Extras allows callers to inject
// arbitrary context such as user roles or feature flags.
type Context struct {
	Values map[string]string
	Extras map[string]string
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldName, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(fieldName, rule string, ctx Context) (bool, error) {
	return fn(fieldName, rule, ctx)
}
