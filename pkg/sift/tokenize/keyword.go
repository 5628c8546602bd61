package tokenize

import "github.com/cognicore/sift/pkg/sift/analysis"

// Keyword emits the entire input as a single token. Empty input yields nothing.
type Keyword struct{}

// NewKeyword creates a Keyword tokenizer.
func NewKeyword() *Keyword {
	return &Keyword{}
}

func (Keyword) Tokenize(text string) analysis.Stage {
	if text == "" {
		return analysis.NewSliceStage(nil)
	}
	return analysis.NewSliceStage([]analysis.Token{{
		Text:           text,
		OffsetFrom:     0,
		OffsetTo:       len(text),
		Position:       0,
		PositionLength: 1,
	}})
}
