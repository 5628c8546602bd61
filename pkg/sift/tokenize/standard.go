package tokenize

import (
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"

	"github.com/cognicore/sift/pkg/sift/analysis"
)

// Standard segments text on Unicode word boundaries (UAX #29) and keeps the
// segments containing at least one letter or digit. Punctuation and white
// space segments are dropped; "can't" and "3.14" stay whole.
type Standard struct{}

// NewStandard creates a Standard tokenizer.
func NewStandard() *Standard {
	return &Standard{}
}

func (Standard) Tokenize(text string) analysis.Stage {
	segments := words.FromString(text)
	return &standardStage{
		next: func() (string, bool) {
			if !segments.Next() {
				return "", false
			}
			return segments.Value(), true
		},
	}
}

type standardStage struct {
	next     func() (string, bool)
	offset   int
	position int
	tok      analysis.Token
	done     bool
}

func (s *standardStage) Advance() bool {
	if s.done {
		return false
	}
	for {
		seg, ok := s.next()
		if !ok {
			s.done = true
			return false
		}
		// Segments tile the input, so offsets are running lengths.
		start := s.offset
		s.offset += len(seg)
		if !wordlike(seg) {
			continue
		}
		s.tok = analysis.Token{
			Text:           seg,
			OffsetFrom:     start,
			OffsetTo:       s.offset,
			Position:       s.position,
			PositionLength: 1,
		}
		s.position++
		return true
	}
}

func (s *standardStage) Token() *analysis.Token { return &s.tok }

func wordlike(seg string) bool {
	for _, r := range seg {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
