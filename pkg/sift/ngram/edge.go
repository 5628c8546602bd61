package ngram

import (
	"fmt"
	"unicode/utf8"

	"github.com/cognicore/sift/pkg/sift/analysis"
	"github.com/cognicore/sift/pkg/sift/internalerr"
)

// EdgeNGram expands every token into its prefixes ("edge n-grams"), the usual
// building block for search-as-you-type. Lengths are counted in runes.
//
// For a token of length L the prefixes of length Min..min(Max, L) are emitted
// in increasing order, all sharing the source token's offsets and position.
// With KeepOriginal, tokens shorter than Min are passed through unchanged and
// tokens longer than Max are followed by the unchanged token. Without it,
// tokens shorter than Min are dropped.
type EdgeNGram struct {
	min          int
	max          int // 0 means unlimited
	keepOriginal bool
}

// NewEdgeNGram validates the configuration. max == 0 means no upper bound.
func NewEdgeNGram(min, max int, keepOriginal bool) (*EdgeNGram, error) {
	if min < 1 {
		return nil, fmt.Errorf("%w: edge n-gram min must be at least 1, got %d", internalerr.ErrInvalidConfig, min)
	}
	if max < 0 {
		return nil, fmt.Errorf("%w: edge n-gram max must not be negative, got %d", internalerr.ErrInvalidConfig, max)
	}
	if max != 0 && max < min {
		return nil, fmt.Errorf("%w: edge n-gram max (%d) is less than min (%d)", internalerr.ErrInvalidConfig, max, min)
	}
	return &EdgeNGram{min: min, max: max, keepOriginal: keepOriginal}, nil
}

// Min returns the shortest prefix length.
func (e *EdgeNGram) Min() int { return e.min }

// Max returns the longest prefix length, 0 when unlimited.
func (e *EdgeNGram) Max() int { return e.max }

func (e *EdgeNGram) Filter(in analysis.Stage) analysis.Stage {
	return &edgeStage{cfg: e, in: in}
}

type edgeStage struct {
	cfg *EdgeNGram
	in  analysis.Stage

	src    analysis.Token
	active bool // src still has prefixes to emit
	length int  // rune length of src.Text
	limit  int  // effective max for src
	count  int  // rune length of the next prefix
	end    int  // byte length of the next prefix
	full   bool // next emission is the unchanged original

	tok  analysis.Token
	done bool
}

func (s *edgeStage) Advance() bool {
	for {
		if s.active {
			s.emit()
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
		s.length = utf8.RuneCountInString(s.src.Text)

		if s.length < s.cfg.min {
			if s.cfg.keepOriginal {
				s.tok = s.src
				return true
			}
			continue
		}

		s.limit = s.length
		if s.cfg.max != 0 && s.cfg.max < s.length {
			s.limit = s.cfg.max
		}
		s.count = s.cfg.min
		s.end = runeOffset(s.src.Text, s.cfg.min)
		s.full = false
		s.active = true
	}
}

// emit writes the next pending gram of src and moves the cursor.
func (s *edgeStage) emit() {
	s.tok = s.src
	if s.full {
		s.active = false
		return
	}

	s.tok.Text = s.src.Text[:s.end]
	if s.count < s.limit {
		_, size := utf8.DecodeRuneInString(s.src.Text[s.end:])
		s.end += size
		s.count++
		return
	}

	// Longest gram reached: either the token is done or, when the original
	// is longer than max and must be kept, it follows as a final emission.
	if s.limit < s.length && s.cfg.keepOriginal {
		s.full = true
		return
	}
	s.active = false
}

func (s *edgeStage) Token() *analysis.Token { return &s.tok }

// runeOffset returns the byte offset just past the first n runes of text.
func runeOffset(text string, n int) int {
	off := 0
	for i := 0; i < n && off < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[off:])
		off += size
	}
	return off
}
