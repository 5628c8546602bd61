package analysis

// Analyzer chains char filters, one tokenizer and ordered token filters:
// text → char filters → tokenizer → filter₁ → filter₂ → …
//
// An Analyzer holds only immutable configuration and may be shared by any
// number of goroutines; each Analyze call builds a private chain of stages.
type Analyzer struct {
	CharFilters []CharFilter
	Tokenizer   Tokenizer
	Filters     []TokenFilter
}

// NewAnalyzer creates an analyzer without char filters.
func NewAnalyzer(tokenizer Tokenizer, filters ...TokenFilter) *Analyzer {
	return &Analyzer{
		Tokenizer: tokenizer,
		Filters:   filters,
	}
}

// Analyze builds the stage chain for text. Offsets of the returned tokens
// always refer to text, even when char filters rewrote it.
func (a *Analyzer) Analyze(text string) Stage {
	var maps []*OffsetMap
	for _, cf := range a.CharFilters {
		var m *OffsetMap
		text, m = cf.Filter(text)
		if !m.Empty() {
			maps = append(maps, m)
		}
	}

	stage := a.Tokenizer.Tokenize(text)
	for _, f := range a.Filters {
		stage = f.Filter(stage)
	}

	if len(maps) > 0 {
		stage = &correctingStage{in: stage, maps: maps}
	}
	return stage
}

// Tokens analyzes text and collects the complete token sequence.
func (a *Analyzer) Tokens(text string) []Token {
	return Collect(a.Analyze(text))
}
