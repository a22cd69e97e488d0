package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var defaultCategoriesYAML []byte

// CategoryEntry maps a backend category value to its display label.
type CategoryEntry struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// CategoryCatalog holds the known categories in display priority order.
type CategoryCatalog struct {
	Categories []CategoryEntry `yaml:"categories"`

	labels map[string]string
	ranks  map[string]int
}

// DefaultCategoryCatalog returns the catalog embedded in the binary.
func DefaultCategoryCatalog() *CategoryCatalog {
	c, err := parseCategoryCatalog(defaultCategoriesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded category catalog is invalid: %v", err))
	}
	return c
}

// LoadCategoryCatalog loads a catalog from a YAML file.
// An empty path returns the embedded default.
func LoadCategoryCatalog(path string) (*CategoryCatalog, error) {
	if path == "" {
		return DefaultCategoryCatalog(), nil
	}
	// #nosec G304 -- path comes from operator configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category catalog: %w", err)
	}
	c, err := parseCategoryCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("category catalog %s: %w", path, err)
	}
	return c, nil
}

func parseCategoryCatalog(data []byte) (*CategoryCatalog, error) {
	var c CategoryCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.index()
	return &c, nil
}

func (c *CategoryCatalog) validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("at least one category is required")
	}
	seen := make(map[string]struct{}, len(c.Categories))
	for i, e := range c.Categories {
		v := strings.ToLower(strings.TrimSpace(e.Value))
		if v == "" {
			return fmt.Errorf("category %d: value is required", i)
		}
		if strings.TrimSpace(e.Label) == "" {
			return fmt.Errorf("category %q: label is required", e.Value)
		}
		if _, dup := seen[v]; dup {
			return fmt.Errorf("category %q already exists", e.Value)
		}
		seen[v] = struct{}{}
	}
	return nil
}

func (c *CategoryCatalog) index() {
	c.labels = make(map[string]string, len(c.Categories))
	c.ranks = make(map[string]int, len(c.Categories))
	for i, e := range c.Categories {
		c.labels[strings.ToLower(strings.TrimSpace(e.Value))] = e.Label
		if _, ok := c.ranks[e.Label]; !ok {
			c.ranks[e.Label] = i
		}
	}
}

// Label returns the display label for a category value.
// Lookup is case-insensitive; unknown values are their own label.
func (c *CategoryCatalog) Label(value string) string {
	if label, ok := c.labels[strings.ToLower(value)]; ok {
		return label
	}
	return value
}

// Rank returns the display priority of a category value.
// Values whose label is not in the catalog rank after every known category.
func (c *CategoryCatalog) Rank(value string) int {
	if r, ok := c.ranks[c.Label(value)]; ok {
		return r
	}
	return len(c.Categories)
}
