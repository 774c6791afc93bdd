package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/model"
)

// ParseRules converts the shorthand rule string descriptor documents may use
// ("required,email,min=0,pattern=^[a-z]+$") into structured validation rules.
// Unknown rule names are rejected so typos surface at load time instead of
// silently passing every value.
func ParseRules(shorthand string) ([]model.ValidationRule, error) {
	trimmed := strings.TrimSpace(shorthand)
	if trimmed == "" {
		return nil, nil
	}

	parts := strings.Split(trimmed, ",")
	rules := make([]model.ValidationRule, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}

		name, param, hasParam := strings.Cut(token, "=")
		name = strings.TrimSpace(name)
		param = strings.TrimSpace(param)

		rule, err := buildRule(name, param, hasParam)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if len(rules) == 0 {
		return nil, nil
	}
	return rules, nil
}

func buildRule(name, param string, hasParam bool) (model.ValidationRule, error) {
	switch name {
	case model.ValidationRuleRequired, model.ValidationRuleEmail:
		if hasParam {
			return model.ValidationRule{}, fmt.Errorf("validation: rule %q takes no parameter", name)
		}
		return model.ValidationRule{Kind: name}, nil
	case model.ValidationRuleMin, model.ValidationRuleMax:
		if !hasParam || param == "" {
			return model.ValidationRule{}, fmt.Errorf("validation: rule %q requires a value", name)
		}
		if _, err := strconv.ParseFloat(param, 64); err != nil {
			return model.ValidationRule{}, fmt.Errorf("validation: rule %q requires a numeric value, got %q", name, param)
		}
		return model.ValidationRule{
			Kind:   name,
			Params: map[string]string{"value": param},
		}, nil
	case model.ValidationRuleMinLength, model.ValidationRuleMaxLength:
		if !hasParam || param == "" {
			return model.ValidationRule{}, fmt.Errorf("validation: rule %q requires a value", name)
		}
		if _, err := strconv.ParseUint(param, 10, 32); err != nil {
			return model.ValidationRule{}, fmt.Errorf("validation: rule %q requires a whole number, got %q", name, param)
		}
		return model.ValidationRule{
			Kind:   name,
			Params: map[string]string{"value": param},
		}, nil
	case model.ValidationRulePattern:
		if !hasParam || param == "" {
			return model.ValidationRule{}, fmt.Errorf("validation: rule %q requires an expression", name)
		}
		return model.ValidationRule{
			Kind:   name,
			Params: map[string]string{"pattern": param},
		}, nil
	default:
		return model.ValidationRule{}, fmt.Errorf("validation: unknown rule %q", name)
	}
}
