package choices

import (
	"sort"
	"strings"
)

// Search filters the catalog by a case-insensitive substring match. Prefix
// matches rank before other matches; ties break alphabetically.
func Search(values []string, query string, limit int, opts Options) []string {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(values) <= limit {
				return append([]string{}, values...)
			}
			return append([]string{}, values[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedValue, 0, 32)
	for _, value := range values {
		lower := strings.ToLower(value)
		if !strings.Contains(lower, q) {
			continue
		}
		matches = append(matches, matchedValue{
			name:     value,
			isPrefix: strings.HasPrefix(lower, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.name)
	}
	return out
}

// SearchChoices wraps Search results as value/label pairs.
func SearchChoices(values []string, query string, limit int, opts Options) []Choice {
	results := Search(values, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]Choice, 0, len(results))
	for _, value := range results {
		out = append(out, Choice{Value: value, Label: value})
	}
	return out
}

type matchedValue struct {
	name     string
	isPrefix bool
}
