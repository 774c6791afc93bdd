package choices

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Choice is one selectable option.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// LoadValues reads a plain text catalog, one value per line. Blank lines and
// lines starting with "#" are skipped; duplicates collapse. The result is
// sorted.
func LoadValues(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("choices: missing reader")
	}

	scanner := bufio.NewScanner(r)
	values := make([]string, 0, 64)
	seen := map[string]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		values = append(values, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Strings(values)
	return values, nil
}
