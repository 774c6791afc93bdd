package vanilla

import (
	"html"
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/render"
)

// cssVarsBlock converts resolved theme tokens into a :root style block the
// form template prepends to its output. Returns empty string when no theme is
// configured.
func cssVarsBlock(theme *render.ThemeConfig) string {
	if theme == nil || len(theme.CSSVars) == 0 {
		return ""
	}

	names := make([]string, 0, len(theme.CSSVars))
	for name := range theme.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)

	var builder strings.Builder
	builder.WriteString("<style>:root {")
	for _, name := range names {
		builder.WriteString(" ")
		builder.WriteString(html.EscapeString(name))
		builder.WriteString(": ")
		builder.WriteString(html.EscapeString(theme.CSSVars[name]))
		builder.WriteString(";")
	}
	builder.WriteString(" }</style>")
	return builder.String()
}
