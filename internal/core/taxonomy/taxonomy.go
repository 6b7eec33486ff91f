// Package taxonomy defines the fixed business category tables used for
// classification and category-specific field extraction. The general
// taxonomy is a process-wide constant; industry packs are loaded once from
// an embedded file. Nothing here mutates after startup.
package taxonomy

import "strings"

// Other is the fallback sentinel for documents that fit no category. It
// participates in classification prompts and prompt lookup but is never
// advertised as part of a taxonomy.
const Other = "Other"

// Category is one classification target with its static description and
// field-extraction prompt.
type Category struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Prompt      string `yaml:"prompt" json:"-"`
}

// Set is one named taxonomy. Construct via General or a Catalog; the zero
// value has no categories and canonicalizes everything to Other.
type Set struct {
	Industry   string
	Categories []Category

	synonyms map[string]string
}

// Advertised returns the categories without the Other sentinel.
func (s *Set) Advertised() []Category {
	out := make([]Category, 0, len(s.Categories))
	for _, c := range s.Categories {
		if c.Name == Other {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Labels returns every category name, Other included, in table order.
func (s *Set) Labels() []string {
	out := make([]string, len(s.Categories))
	for i, c := range s.Categories {
		out[i] = c.Name
	}
	return out
}

// LabelList returns the labels joined for prompt interpolation.
func (s *Set) LabelList() string {
	return strings.Join(s.Labels(), ", ")
}

// PromptFor returns the extraction prompt for the named category, falling
// back to the Other template for anything unknown.
func (s *Set) PromptFor(name string) string {
	var other string
	for _, c := range s.Categories {
		if c.Name == name {
			return c.Prompt
		}
		if c.Name == Other {
			other = c.Prompt
		}
	}
	return other
}

// Canonicalize maps raw model output onto a category name from this set.
// Matching is case-insensitive and tolerant of surrounding quotes, a
// trailing period, and spacing around slashes; a per-set synonym table
// catches common aliases. Unmatched input lands on Other with ok=false.
func (s *Set) Canonicalize(raw string) (string, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.Trim(cleaned, `"'`)
	cleaned = strings.TrimSuffix(cleaned, ".")
	key := normalizeLabel(cleaned)
	if key == "" {
		return Other, false
	}
	for _, c := range s.Categories {
		if normalizeLabel(c.Name) == key {
			return c.Name, true
		}
	}
	if canonical, ok := s.synonyms[key]; ok {
		return canonical, true
	}
	return Other, false
}

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	s = strings.ReplaceAll(s, " / ", "/")
	s = strings.ReplaceAll(s, "/ ", "/")
	s = strings.ReplaceAll(s, " /", "/")
	return s
}
