// Package filter holds the token filters that map or drop tokens one at a
// time, plus the synonym expander.
package filter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/sift/pkg/sift/analysis"
	"github.com/cognicore/sift/pkg/sift/internalerr"
	"github.com/cognicore/sift/pkg/sift/stoplist"
)

// Map returns a stage rewriting the text of every upstream token with fn.
// The upstream buffer is rewritten in place and handed through.
func Map(in analysis.Stage, fn func(string) string) analysis.Stage {
	return &mapStage{in: in, fn: fn}
}

type mapStage struct {
	in   analysis.Stage
	fn   func(string) string
	done bool
}

func (s *mapStage) Advance() bool {
	if s.done {
		return false
	}
	if !s.in.Advance() {
		s.done = true
		return false
	}
	t := s.in.Token()
	t.Text = s.fn(t.Text)
	return true
}

func (s *mapStage) Token() *analysis.Token { return s.in.Token() }

// Keep returns a stage passing only the tokens keep accepts. Accepted tokens
// are copied into the stage's own buffer, so the last emitted token survives
// when upstream skips past rejected ones.
func Keep(in analysis.Stage, keep func(*analysis.Token) bool) analysis.Stage {
	return &keepStage{in: in, keep: keep}
}

type keepStage struct {
	in   analysis.Stage
	keep func(*analysis.Token) bool
	tok  analysis.Token
	done bool
}

func (s *keepStage) Advance() bool {
	if s.done {
		return false
	}
	for s.in.Advance() {
		if t := s.in.Token(); s.keep(t) {
			s.tok = *t
			return true
		}
	}
	s.done = true
	return false
}

func (s *keepStage) Token() *analysis.Token { return &s.tok }

// Lowercase lowercases every token.
type Lowercase struct{}

func (Lowercase) Filter(in analysis.Stage) analysis.Stage {
	return Map(in, strings.ToLower)
}

// Trim strips leading and trailing white space. Offsets are left alone.
type Trim struct{}

func (Trim) Filter(in analysis.Stage) analysis.Stage {
	return Map(in, strings.TrimSpace)
}

// Reverse reverses the runes of every token.
type Reverse struct{}

func (Reverse) Filter(in analysis.Stage) analysis.Stage {
	return Map(in, reverse)
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// Length drops tokens shorter than Min or longer than Max runes.
type Length struct {
	min, max int
}

// NewLength creates a length filter. max 0 means unlimited.
func NewLength(min, max int) (*Length, error) {
	if min < 0 || max < 0 {
		return nil, fmt.Errorf("%w: length bounds must not be negative (min=%d, max=%d)", internalerr.ErrInvalidConfig, min, max)
	}
	if max > 0 && max < min {
		return nil, fmt.Errorf("%w: length max %d is below min %d", internalerr.ErrInvalidConfig, max, min)
	}
	return &Length{min: min, max: max}, nil
}

func (f *Length) Filter(in analysis.Stage) analysis.Stage {
	return Keep(in, func(t *analysis.Token) bool {
		n := utf8.RuneCountInString(t.Text)
		return n >= f.min && (f.max == 0 || n <= f.max)
	})
}

// Stop drops stopwords.
type Stop struct {
	set *stoplist.Set
}

// NewStop creates a stop filter over set.
func NewStop(set *stoplist.Set) *Stop {
	return &Stop{set: set}
}

func (f *Stop) Filter(in analysis.Stage) analysis.Stage {
	return Keep(in, func(t *analysis.Token) bool {
		return !f.set.Contains(t.Text)
	})
}

// Limit passes at most Max tokens and never pulls upstream beyond them.
type Limit struct {
	max int
}

// NewLimit creates a limit filter.
func NewLimit(max int) (*Limit, error) {
	if max < 1 {
		return nil, fmt.Errorf("%w: limit max must be positive, got %d", internalerr.ErrInvalidConfig, max)
	}
	return &Limit{max: max}, nil
}

func (f *Limit) Filter(in analysis.Stage) analysis.Stage {
	return &limitStage{in: in, left: f.max}
}

type limitStage struct {
	in   analysis.Stage
	left int
	done bool
}

func (s *limitStage) Advance() bool {
	if s.done {
		return false
	}
	if s.left == 0 || !s.in.Advance() {
		s.done = true
		return false
	}
	s.left--
	return true
}

func (s *limitStage) Token() *analysis.Token { return s.in.Token() }
