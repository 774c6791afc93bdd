package expr

import (
	"testing"

	"github.com/goliatone/go-formkit/pkg/visibility"
)

func TestEvalRules(t *testing.T) {
	ctx := visibility.Context{
		Values: map[string]string{
			"newsletter": "on",
			"plan":       "pro",
			"seats":      "3",
			"bio":        "",
		},
		Extras: map[string]string{
			"role": "admin",
		},
	}

	cases := []struct {
		name string
		rule string
		want bool
	}{
		{"empty rule is visible", "", true},
		{"truthy check", "newsletter", true},
		{"falsy check", "bio", false},
		{"negation", "!bio", true},
		{"string equality", `plan == "pro"`, true},
		{"string inequality", `plan != "free"`, true},
		{"single quotes", `plan == 'pro'`, true},
		{"number comparison", "seats == 3", true},
		{"checkbox equals true", "newsletter == true", true},
		{"absent value equals false", "missing == false", true},
		{"and composition", `newsletter == true && plan == "pro"`, true},
		{"or composition", `bio || newsletter`, true},
		{"parentheses", `(bio || newsletter) && plan == "pro"`, true},
		{"extras lookup", `extras.role == "admin"`, true},
		{"failing and", `newsletter && bio`, false},
	}

	e := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.Eval("field", tc.rule, ctx)
			if err != nil {
				t.Fatalf("Eval(%q) error = %v", tc.rule, err)
			}
			if got != tc.want {
				t.Fatalf("Eval(%q) = %v, want %v", tc.rule, got, tc.want)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	e := New()
	ctx := visibility.Context{}

	for _, rule := range []string{
		`plan == "unterminated`,
		`(a || b`,
		`plan ==`,
		`plan == "pro" extra`,
	} {
		if _, err := e.Eval("field", rule, ctx); err == nil {
			t.Fatalf("expected error for rule %q", rule)
		}
	}
}
