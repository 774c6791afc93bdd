// Package validation builds the aggregate validation contract from a field
// descriptor sequence and evaluates submitted values against it. Rule
// evaluation is delegated to go-playground/validator; pattern rules are
// handled with the regexp package since validator has no arbitrary-regex tag.
package validation

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/model"
)

// FieldRules pairs a field's kind with its declared constraints. The kind is
// carried so numeric bounds can compare values numerically instead of by
// string length.
type FieldRules struct {
	Kind  model.FieldKind
	Rules []model.ValidationRule
}

// Contract is the aggregate validation contract: one entry per field that
// declares at least one rule. Fields without rules are absent and therefore
// always valid. The mapping is order-independent; duplicate field names
// collapse with the last descriptor winning.
type Contract map[string]FieldRules

// Build reduces the ordered field sequence into a Contract. The input is not
// mutated.
func Build(fields []model.Field) Contract {
	contract := make(Contract)
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" || len(field.Validations) == 0 {
			continue
		}
		rules := make([]model.ValidationRule, len(field.Validations))
		copy(rules, field.Validations)
		contract[name] = FieldRules{
			Kind:  field.Kind,
			Rules: rules,
		}
	}
	return contract
}

// Has reports whether the contract constrains the named field.
func (c Contract) Has(name string) bool {
	_, ok := c[name]
	return ok
}
