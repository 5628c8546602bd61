package charfilter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/sift/pkg/sift/analysis"
	"github.com/cognicore/sift/pkg/sift/internalerr"
)

// Mapping replaces occurrences of table keys with their values, scanning left
// to right and preferring the longest key at each position.
// Example: {"\\": "/"} turns Windows paths into slash paths.
type Mapping struct {
	byFirst map[byte][]mappingRule
}

type mappingRule struct {
	from string
	to   string
}

// NewMapping validates the replacement table.
func NewMapping(mappings map[string]string) (*Mapping, error) {
	if len(mappings) == 0 {
		return nil, fmt.Errorf("%w: mapping char filter needs at least one mapping", internalerr.ErrInvalidConfig)
	}
	m := &Mapping{byFirst: make(map[byte][]mappingRule)}
	for from, to := range mappings {
		if from == "" {
			return nil, fmt.Errorf("%w: mapping char filter: empty key", internalerr.ErrInvalidConfig)
		}
		m.byFirst[from[0]] = append(m.byFirst[from[0]], mappingRule{from: from, to: to})
	}
	for _, rules := range m.byFirst {
		sort.Slice(rules, func(i, j int) bool {
			if len(rules[i].from) != len(rules[j].from) {
				return len(rules[i].from) > len(rules[j].from)
			}
			return rules[i].from < rules[j].from
		})
	}
	return m, nil
}

func (m *Mapping) Filter(text string) (string, *analysis.OffsetMap) {
	var (
		b       strings.Builder
		offsets *analysis.OffsetMap
		diff    int
	)
	b.Grow(len(text))

	for i := 0; i < len(text); {
		rule, ok := m.match(text[i:])
		if !ok {
			b.WriteByte(text[i])
			i++
			continue
		}
		b.WriteString(rule.to)
		i += len(rule.from)
		if d := len(rule.from) - len(rule.to); d != 0 {
			if offsets == nil {
				offsets = &analysis.OffsetMap{}
			}
			if rule.to == "" {
				// Ends before a deletion keep the diff in front of it.
				offsets.Add(b.Len(), diff)
			}
			diff += d
			offsets.Add(b.Len(), diff)
		}
	}
	return b.String(), offsets
}

func (m *Mapping) match(s string) (mappingRule, bool) {
	for _, rule := range m.byFirst[s[0]] {
		if strings.HasPrefix(s, rule.from) {
			return rule, true
		}
	}
	return mappingRule{}, false
}
