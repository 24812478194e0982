package synonym

import (
	"fmt"
	"strings"
)

// MaxSynonyms is the maximum number of synonyms per group.
const MaxSynonyms = 256

// Group is a set of interchangeable search terms anchored by a canonical name.
// All terms are normalized to trimmed lowercase; the canonical name never
// appears among the synonyms.
type Group struct {
	canonical string
	synonyms  []string
	category  string
	system    bool
	active    bool
}

// New normalizes and validates a group. New groups are active.
func New(canonical string, synonyms []string, category string, system bool) (Group, error) {
	canonical = Normalize(canonical)
	if canonical == "" {
		return Group{}, fmt.Errorf("canonical name is required")
	}
	if len(synonyms) > MaxSynonyms {
		return Group{}, fmt.Errorf("too many synonyms (max %d)", MaxSynonyms)
	}

	seen := map[string]struct{}{canonical: {}}
	terms := make([]string, 0, len(synonyms))
	for _, s := range synonyms {
		s = Normalize(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		terms = append(terms, s)
	}

	return Group{
		canonical: canonical,
		synonyms:  terms,
		category:  Normalize(category),
		system:    system,
		active:    true,
	}, nil
}

// Reconstruct creates a Group without validation (storage hydration).
func Reconstruct(canonical string, synonyms []string, category string, system, active bool) Group {
	return Group{canonical: canonical, synonyms: synonyms, category: category, system: system, active: active}
}

// Canonical returns the canonical name.
func (g *Group) Canonical() string { return g.canonical }

// Synonyms returns the synonyms (canonical excluded).
func (g *Group) Synonyms() []string { return g.synonyms }

// Category returns the optional classification tag.
func (g *Group) Category() string { return g.category }

// IsSystem reports whether the group was created by the system seed.
func (g *Group) IsSystem() bool { return g.system }

// IsActive reports whether the group takes part in expansion.
func (g *Group) IsActive() bool { return g.active }

// Terms returns the canonical name followed by every synonym.
func (g *Group) Terms() []string {
	out := make([]string, 0, len(g.synonyms)+1)
	out = append(out, g.canonical)
	return append(out, g.synonyms...)
}

// Deactivated returns a copy with the active flag cleared.
func (g *Group) Deactivated() Group {
	c := *g
	c.active = false
	return c
}

// Normalize lowercases s, trims it and collapses inner whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
