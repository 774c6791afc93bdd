package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Evaluator checks value maps against a Contract. It wraps a shared
// go-playground validator instance plus a compiled-pattern cache and is safe
// for concurrent use.
type Evaluator struct {
	validate *validator.Validate

	mu       sync.Mutex
	patterns map[string]*regexp.Regexp
}

// NewEvaluator constructs an Evaluator backed by a fresh validator instance.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		validate: validator.New(),
		patterns: make(map[string]*regexp.Regexp),
	}
}

// Validate evaluates every contract entry against the supplied values and
// returns per-field messages keyed by field name. Fields absent from the
// contract never produce errors. A missing value entry is treated as the
// empty string.
func (e *Evaluator) Validate(contract Contract, values map[string]string) map[string][]string {
	if len(contract) == 0 {
		return nil
	}

	failures := make(map[string][]string)
	for name, entry := range contract {
		value := values[name]
		for _, rule := range entry.Rules {
			if msg := e.check(entry.Kind, rule, value); msg != "" {
				failures[name] = append(failures[name], msg)
			}
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return failures
}

// Valid reports whether every field passes the contract.
func (e *Evaluator) Valid(contract Contract, values map[string]string) bool {
	return len(e.Validate(contract, values)) == 0
}

// check evaluates one rule against one value and returns a user-facing
// message on failure, empty string on success. Rules other than required are
// skipped for empty values so optional fields stay optional.
func (e *Evaluator) check(kind model.FieldKind, rule model.ValidationRule, value string) string {
	trimmed := strings.TrimSpace(value)
	if rule.Kind != model.ValidationRuleRequired && trimmed == "" {
		return ""
	}

	switch rule.Kind {
	case model.ValidationRuleRequired:
		if err := e.validate.Var(trimmed, "required"); err != nil {
			return "is required"
		}
	case model.ValidationRuleEmail:
		if err := e.validate.Var(trimmed, "email"); err != nil {
			return "must be a valid email address"
		}
	case model.ValidationRuleMin:
		return e.checkBound(kind, trimmed, rule.Params["value"], "min", "must be at least %s")
	case model.ValidationRuleMax:
		return e.checkBound(kind, trimmed, rule.Params["value"], "max", "must be at most %s")
	case model.ValidationRuleMinLength:
		limit := rule.Params["value"]
		if !wholeNumber(limit) {
			return fmt.Sprintf("has an invalid minLength rule %q", limit)
		}
		if err := e.validate.Var(value, "min="+limit); err != nil {
			return fmt.Sprintf("must be at least %s characters", limit)
		}
	case model.ValidationRuleMaxLength:
		limit := rule.Params["value"]
		if !wholeNumber(limit) {
			return fmt.Sprintf("has an invalid maxLength rule %q", limit)
		}
		if err := e.validate.Var(value, "max="+limit); err != nil {
			return fmt.Sprintf("must be at most %s characters", limit)
		}
	case model.ValidationRulePattern:
		expr := rule.Params["pattern"]
		re, err := e.pattern(expr)
		if err != nil {
			return fmt.Sprintf("has an invalid pattern rule %q", expr)
		}
		if !re.MatchString(value) {
			return fmt.Sprintf("must match %s", expr)
		}
	}
	return ""
}

// checkBound applies min/max rules. Number fields compare numerically;
// everything else falls back to validator's string-length semantics. A
// non-numeric limit produces a rule error message instead of reaching the
// validator, which panics on malformed bound parameters.
func (e *Evaluator) checkBound(kind model.FieldKind, value, limit, tag, format string) string {
	if kind == model.FieldKindNumber {
		if _, err := strconv.ParseFloat(limit, 64); err != nil {
			return fmt.Sprintf("has an invalid %s rule %q", tag, limit)
		}
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "must be a number"
		}
		if err := e.validate.Var(parsed, tag+"="+limit); err != nil {
			return fmt.Sprintf(format, limit)
		}
		return ""
	}
	// String lengths need a whole-number limit; validator panics on anything
	// else.
	if !wholeNumber(limit) {
		return fmt.Sprintf("has an invalid %s rule %q", tag, limit)
	}
	if err := e.validate.Var(value, tag+"="+limit); err != nil {
		return fmt.Sprintf(format, limit)
	}
	return ""
}

func wholeNumber(param string) bool {
	_, err := strconv.ParseUint(param, 10, 32)
	return err == nil
}

func (e *Evaluator) pattern(expr string) (*regexp.Regexp, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if re, ok := e.patterns[expr]; ok {
		return re, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	e.patterns[expr] = re
	return re, nil
}
