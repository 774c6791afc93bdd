package orchestrator

import (
	"fmt"

	"github.com/goliatone/go-formkit/pkg/render"
)

// resolveTheme turns a go-theme selection into the renderer-facing theme
// configuration. Variant tokens override base manifest tokens; CSS custom
// properties are derived from the merged set. A nil selector or empty theme
// name yields no theme.
func (o *Orchestrator) resolveTheme(name, variant string) (*render.ThemeConfig, error) {
	if o.selector == nil {
		return nil, nil
	}
	if name == "" {
		name = o.defaultTheme
	}
	if variant == "" {
		variant = o.defaultVariant
	}
	if name == "" {
		return nil, nil
	}

	selection, err := o.selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, nil
	}

	cfg := &render.ThemeConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}

	manifest := selection.Manifest
	if manifest != nil {
		tokens := make(map[string]string, len(manifest.Tokens))
		for key, value := range manifest.Tokens {
			tokens[key] = value
		}
		if entry, ok := manifest.Variants[selection.Variant]; ok {
			for key, value := range entry.Tokens {
				tokens[key] = value
			}
		}
		if len(tokens) > 0 {
			cfg.Tokens = tokens
			cfg.CSSVars = render.DeriveCSSVars(tokens)
		}
	}

	return cfg, nil
}
