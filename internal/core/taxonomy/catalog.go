package taxonomy

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed industries.yaml
var industriesYAML []byte

// Catalog holds every selectable taxonomy, keyed by lowercase industry
// name. The general taxonomy is always present and always listed first.
type Catalog struct {
	sets  map[string]*Set
	order []string
}

type catalogFile struct {
	Industries []struct {
		Industry   string     `yaml:"industry"`
		Categories []Category `yaml:"categories"`
	} `yaml:"industries"`
}

// LoadCatalog parses the embedded industry packs and combines them with
// the built-in general taxonomy. Every pack must carry the Other sentinel.
func LoadCatalog() (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(industriesYAML, &file); err != nil {
		return nil, fmt.Errorf("parse industry taxonomies: %w", err)
	}
	c := &Catalog{sets: make(map[string]*Set, len(file.Industries)+1)}
	c.add(General())
	for _, pack := range file.Industries {
		set := &Set{Industry: pack.Industry, Categories: pack.Categories}
		if err := validateSet(set); err != nil {
			return nil, err
		}
		if _, dup := c.sets[set.Industry]; dup {
			return nil, fmt.Errorf("industry %q: declared twice", set.Industry)
		}
		c.add(set)
	}
	return c, nil
}

func (c *Catalog) add(s *Set) {
	c.sets[s.Industry] = s
	c.order = append(c.order, s.Industry)
}

func validateSet(s *Set) error {
	if s.Industry == "" {
		return fmt.Errorf("industry pack without a name")
	}
	if s.Industry != strings.ToLower(s.Industry) {
		return fmt.Errorf("industry %q: name must be lowercase", s.Industry)
	}
	seen := make(map[string]struct{}, len(s.Categories))
	hasOther := false
	for _, cat := range s.Categories {
		if cat.Name == "" {
			return fmt.Errorf("industry %q: category without a name", s.Industry)
		}
		if _, dup := seen[cat.Name]; dup {
			return fmt.Errorf("industry %q: duplicate category %q", s.Industry, cat.Name)
		}
		seen[cat.Name] = struct{}{}
		if cat.Name == Other {
			hasOther = true
		}
	}
	if !hasOther {
		return fmt.Errorf("industry %q: missing the %s fallback", s.Industry, Other)
	}
	return nil
}

// Get resolves an industry name to its taxonomy. Lookup is case-insensitive
// and unknown or empty names fall back to the general taxonomy, so callers
// always receive a usable set.
func (c *Catalog) Get(industry string) *Set {
	key := strings.ToLower(strings.TrimSpace(industry))
	if s, ok := c.sets[key]; ok {
		return s
	}
	return c.sets["general"]
}

// Industries lists the selectable industry names in declaration order.
func (c *Catalog) Industries() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
