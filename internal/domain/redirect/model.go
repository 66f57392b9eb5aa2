package redirect

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table maps legacy slugs to their current location. Keys and targets carry no
// leading slash. A Table is built once at startup and never mutated.
type Table map[string]string

var ErrEmptyRule = errors.New("redirect rule needs both a legacy path and a target")

// DefaultTable returns the built-in rules used when no rule file is configured.
// Add old-slug -> new-slug pairs here whenever a page URL changes.
func DefaultTable() Table {
	return Table{
		"polymers-we-supply": "blog",
	}
}

// Resolve looks up a request path, first as-is and then with a trailing slash.
// PRE: path is a URL path, with or without a leading slash
// POST: returns the absolute target path and true on a hit
func (t Table) Resolve(path string) (string, bool) {
	key := strings.TrimPrefix(path, "/")
	if key == "" {
		return "", false
	}
	target, ok := t[key]
	if !ok || target == "" {
		target, ok = t[key+"/"]
	}
	if !ok || target == "" {
		return "", false
	}
	return "/" + target, true
}

// LoadFile reads rules from a YAML mapping of legacy path to target, e.g.
//
//	polymers-we-supply: blog
//	old-page/: new-page/
//
// PRE: path names a readable file
// POST: returns a normalised Table or an error naming the bad rule
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read redirect file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML rule data. See LoadFile.
func Parse(data []byte) (Table, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode redirect rules: %w", err)
	}
	t := make(Table, len(raw))
	for from, to := range raw {
		from = strings.TrimPrefix(strings.TrimSpace(from), "/")
		to = strings.TrimPrefix(strings.TrimSpace(to), "/")
		if from == "" || to == "" {
			return nil, fmt.Errorf("%q -> %q: %w", from, to, ErrEmptyRule)
		}
		t[from] = to
	}
	return t, nil
}
