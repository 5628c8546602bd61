package phonetic

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/sift/pkg/sift/internalerr"
)

// DefaultMaxBranches caps the number of alternative codes a rule table
// produces for one word.
const DefaultMaxBranches = 20

// Rule maps a letter sequence to its alternative codes. A rule without
// languages applies to every language.
type Rule struct {
	Match     string   `yaml:"match"`
	Codes     []string `yaml:"codes"`
	Languages []string `yaml:"languages"`
}

// Table is a parsed rule table. Tables are immutable once parsed and are
// shared by every encoder built from them.
//
// Rule text format:
//
//	name: germanic
//	max_branches: 16
//	rules:
//	  - match: sch
//	    codes: [s, sh]
//	    languages: [de]
//	  - match: ph
//	    codes: [f]
//	  - match: h
//	    codes: [""]
type Table struct {
	Name        string
	MaxBranches int
	byFirst     map[rune][]Rule
	size        int
}

type tableFile struct {
	Name        string `yaml:"name"`
	MaxBranches int    `yaml:"max_branches"`
	Rules       []Rule `yaml:"rules"`
}

// ParseTable parses and validates rule text.
func ParseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: rule table: %v", internalerr.ErrInvalidConfig, err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("%w: rule table %q has no rules", internalerr.ErrInvalidConfig, f.Name)
	}
	if f.MaxBranches < 0 {
		return nil, fmt.Errorf("%w: rule table %q: max_branches must not be negative", internalerr.ErrInvalidConfig, f.Name)
	}

	t := &Table{
		Name:        f.Name,
		MaxBranches: f.MaxBranches,
		byFirst:     make(map[rune][]Rule),
		size:        len(f.Rules),
	}
	seen := make(map[string]bool)
	for i, r := range f.Rules {
		r.Match = strings.ToLower(r.Match)
		if r.Match == "" {
			return nil, fmt.Errorf("%w: rule %d: empty match", internalerr.ErrInvalidConfig, i)
		}
		if len(r.Codes) == 0 {
			return nil, fmt.Errorf("%w: rule %d (%q): no codes", internalerr.ErrInvalidConfig, i, r.Match)
		}
		for _, c := range r.Codes {
			if strings.ContainsAny(c, "()|-") {
				return nil, fmt.Errorf("%w: rule %d (%q): code %q contains an alternation character", internalerr.ErrInvalidConfig, i, r.Match, c)
			}
		}
		langs := append([]string(nil), r.Languages...)
		sort.Strings(langs)
		key := r.Match + "\x00" + strings.Join(langs, ",")
		if seen[key] {
			return nil, fmt.Errorf("%w: rule %d: %q defined twice", internalerr.ErrDuplicate, i, r.Match)
		}
		seen[key] = true

		first, _ := utf8.DecodeRuneInString(r.Match)
		t.byFirst[first] = append(t.byFirst[first], r)
	}
	for _, rules := range t.byFirst {
		sort.SliceStable(rules, func(i, j int) bool {
			return len(rules[i].Match) > len(rules[j].Match)
		})
	}
	return t, nil
}

// Len returns the number of rules.
func (t *Table) Len() int { return t.size }

var tableCache = struct {
	sync.Mutex
	tables map[string]*Table
}{tables: make(map[string]*Table)}

// LoadTable reads a rule table from path. Every table is parsed once per
// process; later calls for the same file return the shared instance.
func LoadTable(path string) (*Table, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: rule table %s: %v", internalerr.ErrInvalidConfig, path, err)
	}

	tableCache.Lock()
	defer tableCache.Unlock()
	if t, ok := tableCache.tables[abs]; ok {
		return t, nil
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: rule table: %v", internalerr.ErrInvalidConfig, err)
	}
	t, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tableCache.tables[abs] = t
	return t, nil
}

// RuleEncoder applies a Table to words. It implements both BranchEncoder and
// AlternationEncoder.
type RuleEncoder struct {
	table         *Table
	languages     map[string]bool
	branching     bool
	maxBranches   int
	maxCodeLength int
}

// RuleOptions tunes a RuleEncoder.
type RuleOptions struct {
	// Languages restricts language-specific rules to these languages.
	// Empty means every rule applies.
	Languages []string
	// SingleBranch keeps only the first code of every rule.
	SingleBranch bool
	// MaxBranches overrides the table's limit when positive.
	MaxBranches int
	// MaxCodeLength truncates every code when positive.
	MaxCodeLength int
}

// NewRuleEncoder creates an encoder for t.
func NewRuleEncoder(t *Table, opts RuleOptions) *RuleEncoder {
	e := &RuleEncoder{
		table:         t,
		branching:     !opts.SingleBranch,
		maxBranches:   DefaultMaxBranches,
		maxCodeLength: opts.MaxCodeLength,
	}
	if t.MaxBranches > 0 {
		e.maxBranches = t.MaxBranches
	}
	if opts.MaxBranches > 0 {
		e.maxBranches = opts.MaxBranches
	}
	if len(opts.Languages) > 0 {
		e.languages = make(map[string]bool, len(opts.Languages))
		for _, l := range opts.Languages {
			e.languages[strings.ToLower(l)] = true
		}
	}
	return e
}

// EncodeBranches returns the alternative codes of s, in rule order, without
// duplicates. Letters and digits no rule matches are copied; anything else is
// ignored.
func (e *RuleEncoder) EncodeBranches(s string) []string {
	s = strings.ToLower(s)
	branches := []string{""}

	for i := 0; i < len(s); {
		alts, n := e.match(s[i:])
		if n == 0 {
			r, size := utf8.DecodeRuneInString(s[i:])
			i += size
			if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
				continue
			}
			alts = []string{string(r)}
		} else {
			i += n
		}
		if !e.branching {
			alts = alts[:1]
		}
		branches = e.combine(branches, alts)
	}

	out := branches[:0]
	seen := make(map[string]bool, len(branches))
	for _, b := range branches {
		b = truncate(b, e.maxCodeLength)
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// EncodeAlternation encodes every word of s (words are separated by white
// space or hyphens) and joins them as "(a|b)-c-(d|e)".
func (e *RuleEncoder) EncodeAlternation(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})

	var b strings.Builder
	for _, w := range words {
		codes := e.EncodeBranches(w)
		if len(codes) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('-')
		}
		if len(codes) == 1 {
			b.WriteString(codes[0])
			continue
		}
		b.WriteByte('(')
		b.WriteString(strings.Join(codes, "|"))
		b.WriteByte(')')
	}
	return b.String()
}

func (e *RuleEncoder) match(s string) ([]string, int) {
	first, _ := utf8.DecodeRuneInString(s)
	for _, r := range e.table.byFirst[first] {
		if !strings.HasPrefix(s, r.Match) || !e.applies(r) {
			continue
		}
		return r.Codes, len(r.Match)
	}
	return nil, 0
}

func (e *RuleEncoder) applies(r Rule) bool {
	if len(r.Languages) == 0 || e.languages == nil {
		return true
	}
	for _, l := range r.Languages {
		if e.languages[strings.ToLower(l)] {
			return true
		}
	}
	return false
}

// combine appends every alternative to every branch, keeping at most
// maxBranches distinct results.
func (e *RuleEncoder) combine(branches, alts []string) []string {
	next := make([]string, 0, len(branches)*len(alts))
	seen := make(map[string]bool, cap(next))
	for _, b := range branches {
		for _, a := range alts {
			c := b + a
			if seen[c] {
				continue
			}
			seen[c] = true
			next = append(next, c)
			if len(next) == e.maxBranches {
				return next
			}
		}
	}
	return next
}
