package lexicon

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon stores synonym groups: a canonical form and its variants
// (car ↔ automobile, ml ↔ machine-learning).
//
// A Lexicon is built once, then shared read-only by every synonym filter;
// lookups never mutate it.
type Lexicon struct {
	// canonical -> all variants (including canonical itself)
	// Example: "game" -> ["game", "games", "gaming", "gamer"]
	synonyms map[string][]string

	// variant -> canonical
	// Example: "gaming" -> "game", "gamer" -> "game"
	reverseIndex map[string]string
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		synonyms:     make(map[string][]string),
		reverseIndex: make(map[string]string),
	}
}

// Group is one synonym group as it appears in configuration.
type Group struct {
	Canonical string   `yaml:"canonical"`
	Variants  []string `yaml:"variants"`
}

// LoadFromYAML loads synonym mappings from a YAML file.
//
// Expected format:
//
//	synonyms:
//	  - canonical: game
//	    variants: [games, gaming, gamer]
//	  - canonical: ml
//	    variants: [machine-learning]
//
// Matching is case-insensitive: all entries are lowercased.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config struct {
		Synonyms []Group `yaml:"synonyms"`
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return FromGroups(config.Synonyms), nil
}

// FromGroups builds a lexicon from inline groups.
func FromGroups(groups []Group) *Lexicon {
	lex := New()
	for _, g := range groups {
		lex.AddSynonymGroup(g.Canonical, g.Variants)
	}
	return lex
}

// AddSynonymGroup adds a synonym group with a canonical form and its variants.
// The canonical form is always the first entry of the group. If the group
// already exists, its old reverse index entries are removed first.
func (l *Lexicon) AddSynonymGroup(canonical string, variants []string) {
	canonical = strings.ToLower(canonical)

	if oldVariants, exists := l.synonyms[canonical]; exists {
		for _, oldV := range oldVariants {
			delete(l.reverseIndex, oldV)
		}
	}

	normalized := make([]string, 0, len(variants)+1)
	seen := make(map[string]bool)

	normalized = append(normalized, canonical)
	seen[canonical] = true

	for _, v := range variants {
		v = strings.ToLower(v)
		if !seen[v] {
			normalized = append(normalized, v)
			seen[v] = true
		}
	}

	l.synonyms[canonical] = normalized
	for _, v := range normalized {
		l.reverseIndex[v] = canonical
	}
}

// Normalize returns the canonical form of a token, or the lowercased token
// itself when it is unknown.
//
// Examples:
//   - Normalize("gaming") -> "game"
//   - Normalize("unknown") -> "unknown"
func (l *Lexicon) Normalize(token string) string {
	token = strings.ToLower(token)
	if canonical, ok := l.reverseIndex[token]; ok {
		return canonical
	}
	return token
}

// Variants returns the whole group of a token, canonical form first.
// Unknown tokens return nil.
//
// Examples:
//   - Variants("gaming") -> ["game", "games", "gaming", "gamer"]
//   - Variants("unknown") -> nil
func (l *Lexicon) Variants(token string) []string {
	token = strings.ToLower(token)
	if canonical, ok := l.reverseIndex[token]; ok {
		return l.synonyms[canonical]
	}
	return nil
}

// HasSynonyms returns true if the token belongs to a group.
func (l *Lexicon) HasSynonyms(token string) bool {
	_, exists := l.reverseIndex[strings.ToLower(token)]
	return exists
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() Stats {
	totalVariants := 0
	for _, variants := range l.synonyms {
		totalVariants += len(variants)
	}
	return Stats{
		SynonymGroups: len(l.synonyms),
		TotalVariants: totalVariants,
	}
}

// Stats holds statistics about lexicon contents.
type Stats struct {
	SynonymGroups int // Number of canonical forms (synonym groups)
	TotalVariants int // Total number of variants across all groups
}
