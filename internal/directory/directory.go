// Package directory serves the legal directory cards: a built-in catalog
// plus entries added by users.
package directory

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"dalil/internal/domain"
)

//go:embed entries.yaml
var builtinYAML []byte

// Catalog groups directory entries by category. Read-only after construction.
type Catalog struct {
	byCategory map[domain.DirectoryCategory][]domain.DirectoryEntry
}

// Builtin parses the embedded catalog.
func Builtin() (*Catalog, error) {
	return Parse(builtinYAML)
}

// Parse builds a catalog from a YAML list of entries.
// Entries without a category default to institutions; unknown categories are rejected.
func Parse(data []byte) (*Catalog, error) {
	var entries []domain.DirectoryEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse directory: %w", err)
	}
	c := &Catalog{byCategory: make(map[domain.DirectoryCategory][]domain.DirectoryEntry)}
	for i, e := range entries {
		if e.Category == "" {
			e.Category = domain.CategoryInstitutions
		}
		if !knownCategory(e.Category) {
			return nil, fmt.Errorf("parse directory: entry %d (%s): unknown category %q", i, e.Name, e.Category)
		}
		c.byCategory[e.Category] = append(c.byCategory[e.Category], e)
	}
	return c, nil
}

// Entries returns the built-in entries of cat followed by extra entries of
// the same category.
func (c *Catalog) Entries(cat domain.DirectoryCategory, extra ...domain.DirectoryEntry) []domain.DirectoryEntry {
	out := append([]domain.DirectoryEntry(nil), c.byCategory[cat]...)
	for _, e := range extra {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}

// All returns every built-in entry in tab order.
func (c *Catalog) All() []domain.DirectoryEntry {
	var out []domain.DirectoryEntry
	for _, cat := range domain.DirectoryCategories {
		out = append(out, c.byCategory[cat]...)
	}
	return out
}

func knownCategory(cat domain.DirectoryCategory) bool {
	for _, c := range domain.DirectoryCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// ParseCategory maps a tab identifier to a category.
func ParseCategory(s string) (domain.DirectoryCategory, bool) {
	cat := domain.DirectoryCategory(strings.ToLower(strings.TrimSpace(s)))
	return cat, knownCategory(cat)
}
