package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/sift/pkg/sift/analysis"
)

// CharTokenizer emits maximal runs of runes accepted by isTokenChar.
// Optional edge trimming removes cutset runes from both ends of every run,
// adjusting offsets so they still frame the emitted text.
type CharTokenizer struct {
	isTokenChar func(rune) bool
	cutset      string
}

// NewCharTokenizer creates a tokenizer splitting on runes rejected by isTokenChar.
func NewCharTokenizer(isTokenChar func(rune) bool) *CharTokenizer {
	return &CharTokenizer{isTokenChar: isTokenChar}
}

// NewWhitespace splits on Unicode white space and preserves everything else.
func NewWhitespace() *CharTokenizer {
	return NewCharTokenizer(func(r rune) bool { return !unicode.IsSpace(r) })
}

// NewLetter keeps runs of letters, digits and hyphens. Leading and trailing
// hyphens are stripped, so "-gpt-4-" becomes "gpt-4".
func NewLetter() *CharTokenizer {
	return &CharTokenizer{
		isTokenChar: func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-'
		},
		cutset: "-",
	}
}

// Tokenize returns a lazy stage over text.
func (c *CharTokenizer) Tokenize(text string) analysis.Stage {
	return &charStage{text: text, isTokenChar: c.isTokenChar, cutset: c.cutset}
}

type charStage struct {
	text        string
	isTokenChar func(rune) bool
	cutset      string
	pos         int
	position    int
	tok         analysis.Token
	done        bool
}

func (s *charStage) Advance() bool {
	if s.done {
		return false
	}
	for s.pos < len(s.text) {
		// Skip separators.
		r, size := utf8.DecodeRuneInString(s.text[s.pos:])
		if !s.isTokenChar(r) {
			s.pos += size
			continue
		}

		start := s.pos
		for s.pos < len(s.text) {
			r, size = utf8.DecodeRuneInString(s.text[s.pos:])
			if !s.isTokenChar(r) {
				break
			}
			s.pos += size
		}
		end := s.pos

		if s.cutset != "" {
			word := s.text[start:end]
			trimmed := strings.TrimLeft(word, s.cutset)
			start += len(word) - len(trimmed)
			end = start + len(strings.TrimRight(trimmed, s.cutset))
		}
		if start == end {
			continue
		}

		s.tok = analysis.Token{
			Text:           s.text[start:end],
			OffsetFrom:     start,
			OffsetTo:       end,
			Position:       s.position,
			PositionLength: 1,
		}
		s.position++
		return true
	}
	s.done = true
	return false
}

func (s *charStage) Token() *analysis.Token { return &s.tok }
