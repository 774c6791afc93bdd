package render

import "strings"

// ThemeConfig carries a resolved theme selection the orchestrator hands to
// renderers. Tokens map design-token names to values; CSSVars is the same set
// keyed by CSS custom-property name so HTML renderers can emit them directly.
type ThemeConfig struct {
	Theme   string
	Variant string
	Tokens  map[string]string
	CSSVars map[string]string
}

// DeriveCSSVars converts design tokens into CSS custom-property form
// ("brand" becomes "--brand"). Empty token names are dropped.
func DeriveCSSVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(tokens))
	for name, value := range tokens {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "--") {
			trimmed = "--" + trimmed
		}
		vars[trimmed] = value
	}
	if len(vars) == 0 {
		return nil
	}
	return vars
}
