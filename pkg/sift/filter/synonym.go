package filter

import (
	"strings"

	"github.com/cognicore/sift/pkg/sift/analysis"
	"github.com/cognicore/sift/pkg/sift/lexicon"
)

// Synonym resolves tokens through a lexicon. Without inject, every known
// token is replaced by its canonical form. With inject, the original token is
// kept and followed by the rest of its group; all of them share the
// original's offsets and position.
type Synonym struct {
	lex    *lexicon.Lexicon
	inject bool
}

// NewSynonym creates a synonym filter.
func NewSynonym(lex *lexicon.Lexicon, inject bool) *Synonym {
	return &Synonym{lex: lex, inject: inject}
}

func (f *Synonym) Filter(in analysis.Stage) analysis.Stage {
	if !f.inject {
		return Map(in, func(s string) string {
			if f.lex.HasSynonyms(s) {
				return f.lex.Normalize(s)
			}
			return s
		})
	}
	return &synonymStage{lex: f.lex, in: in}
}

type synonymStage struct {
	lex   *lexicon.Lexicon
	in    analysis.Stage
	src   analysis.Token
	queue analysis.Queue
	tok   analysis.Token
	done  bool
}

func (s *synonymStage) Advance() bool {
	if text, ok := s.queue.Pop(); ok {
		s.tok = s.src
		s.tok.Text = text
		return true
	}
	if s.done {
		return false
	}
	if !s.in.Advance() {
		s.done = true
		return false
	}
	s.src = *s.in.Token()
	s.tok = s.src
	self := strings.ToLower(s.src.Text)
	for _, v := range s.lex.Variants(s.src.Text) {
		if v != self {
			s.queue.Push(v)
		}
	}
	return true
}

func (s *synonymStage) Token() *analysis.Token { return &s.tok }
