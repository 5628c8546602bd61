package stoplist

import (
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// English is the classic English stop set used when no list is configured.
var English = []string{
	"a", "an", "and", "are", "as", "at", "be", "but", "by",
	"for", "if", "in", "into", "is", "it", "no", "not", "of",
	"on", "or", "such", "that", "the", "their", "then", "there",
	"these", "they", "this", "to", "was", "will", "with",
}

// Set is an immutable stopword set. It is safe for concurrent use.
type Set struct {
	words      map[string]struct{}
	ignoreCase bool
}

// New creates a set from words. With ignoreCase, both the words and the
// looked-up tokens are lowercased.
func New(words []string, ignoreCase bool) *Set {
	s := &Set{
		words:      make(map[string]struct{}, len(words)),
		ignoreCase: ignoreCase,
	}
	for _, w := range words {
		if ignoreCase {
			w = strings.ToLower(w)
		}
		s.words[w] = struct{}{}
	}
	return s
}

// file is the YAML layout of a stoplist:
//
//	terms:
//	  - the
//	  - a
type file struct {
	Terms []string `yaml:"terms"`
}

// Load reads stopwords from a YAML file.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Terms, nil
}

// Contains checks if word is a stopword.
func (s *Set) Contains(word string) bool {
	if s.ignoreCase {
		word = strings.ToLower(word)
	}
	_, ok := s.words[word]
	return ok
}

// Len returns the number of stopwords.
func (s *Set) Len() int {
	return len(s.words)
}

// All returns all stopwords in sorted order.
func (s *Set) All() []string {
	result := make([]string, 0, len(s.words))
	for w := range s.words {
		result = append(result, w)
	}
	sort.Strings(result)
	return result
}
