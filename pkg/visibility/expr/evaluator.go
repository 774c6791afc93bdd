// Package expr implements a small expression evaluator for visibility rules.
//
// Supported syntax:
//   - truthy checks: `newsletter`
//   - comparisons: `plan == "pro"`, `count != 3`, `newsletter == true`
//   - composition: `a && b`, `a || b`, `!a`, parentheses
//
// Identifiers resolve against visibility.Context.Values; the `extras.` prefix
// reads from Context.Extras instead. Comparisons are string comparisons after
// trimming; `true`/`false` literals additionally match the HTML checkbox
// spellings "on", "1", and "yes".
package expr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/visibility"
)

// Evaluator is a dependency-free visibility rule evaluator.
type Evaluator struct{}

// New constructs an Evaluator.
func New() *Evaluator { return &Evaluator{} }

// Ensure the contract is satisfied.
var _ visibility.Evaluator = (*Evaluator)(nil)

// Eval parses and evaluates the rule. An empty rule is always visible.
func (e *Evaluator) Eval(fieldName, rule string, ctx visibility.Context) (bool, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return true, nil
	}

	p := &parser{input: trimmed}
	result, err := p.parseOr(ctx)
	if err != nil {
		return false, fmt.Errorf("visibility rule for %q: %w", fieldName, err)
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return false, fmt.Errorf("visibility rule for %q: trailing input at %d", fieldName, p.pos)
	}
	return result, nil
}

// parser is a recursive-descent evaluator over the rule string. Precedence:
// ! binds tightest, then comparisons, then &&, then ||.
type parser struct {
	input string
	pos   int
}

func (p *parser) parseOr(ctx visibility.Context) (bool, error) {
	left, err := p.parseAnd(ctx)
	if err != nil {
		return false, err
	}
	for p.consumeOperator("||") {
		right, err := p.parseAnd(ctx)
		if err != nil {
			return false, err
		}
		left = left || right
	}
	return left, nil
}

func (p *parser) parseAnd(ctx visibility.Context) (bool, error) {
	left, err := p.parseComparison(ctx)
	if err != nil {
		return false, err
	}
	for p.consumeOperator("&&") {
		right, err := p.parseComparison(ctx)
		if err != nil {
			return false, err
		}
		left = left && right
	}
	return left, nil
}

func (p *parser) parseComparison(ctx visibility.Context) (bool, error) {
	p.skipSpace()

	if p.consumeOperator("!") {
		inner, err := p.parseComparison(ctx)
		if err != nil {
			return false, err
		}
		return !inner, nil
	}

	if p.consumeOperator("(") {
		inner, err := p.parseOr(ctx)
		if err != nil {
			return false, err
		}
		if !p.consumeOperator(")") {
			return false, errors.New("missing closing parenthesis")
		}
		return inner, nil
	}

	left, err := p.parseOperand(ctx)
	if err != nil {
		return false, err
	}

	switch {
	case p.consumeOperator("=="):
		right, err := p.parseOperand(ctx)
		if err != nil {
			return false, err
		}
		return valuesEqual(left, right), nil
	case p.consumeOperator("!="):
		right, err := p.parseOperand(ctx)
		if err != nil {
			return false, err
		}
		return !valuesEqual(left, right), nil
	default:
		// Bare operand: truthiness of the resolved value.
		return truthy(left), nil
	}
}

// parseOperand reads a quoted string literal or an identifier and returns its
// resolved value.
func (p *parser) parseOperand(ctx visibility.Context) (string, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return "", errors.New("unexpected end of rule")
	}

	if quote := p.input[p.pos]; quote == '"' || quote == '\'' {
		p.pos++
		start := p.pos
		for p.pos < len(p.input) && p.input[p.pos] != quote {
			p.pos++
		}
		if p.pos >= len(p.input) {
			return "", errors.New("unterminated string literal")
		}
		literal := p.input[start:p.pos]
		p.pos++
		return literal, nil
	}

	start := p.pos
	for p.pos < len(p.input) && isIdentChar(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("unexpected character %q at %d", p.input[p.pos], p.pos)
	}
	word := p.input[start:p.pos]

	switch word {
	case "true", "false", "null":
		return word, nil
	}
	if isNumeric(word) {
		return word, nil
	}
	return lookup(word, ctx), nil
}

func (p *parser) consumeOperator(op string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.input[p.pos:], op) {
		// Avoid swallowing "!" when the operator is "!=".
		if op == "!" && strings.HasPrefix(p.input[p.pos:], "!=") {
			return false
		}
		p.pos += len(op)
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

const extrasPrefix = "extras."

func lookup(name string, ctx visibility.Context) string {
	if rest, ok := strings.CutPrefix(name, extrasPrefix); ok {
		return ctx.Extras[rest]
	}
	return ctx.Values[name]
}

func valuesEqual(left, right string) bool {
	if left == right {
		return true
	}
	// Checkbox spellings compare equal to boolean literals; an absent value
	// counts as false.
	if isBoolLiteral(left) || isBoolLiteral(right) {
		return truthy(left) == truthy(right)
	}
	return false
}

func isBoolLiteral(value string) bool {
	return value == "true" || value == "false"
}

func truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "false", "0", "off", "no", "null":
		return false
	}
	return true
}

func isIdentChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '.', c == '-':
		return true
	}
	return false
}

func isNumeric(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		c := word[i]
		if (c < '0' || c > '9') && c != '.' && c != '-' {
			return false
		}
	}
	return true
}
