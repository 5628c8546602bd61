package analysis

// Stage is a pull-based token producer. Tokenizers and filters both
// implement it; a filter owns exactly one upstream Stage.
//
// Advance attempts to produce the next token and reports whether it did.
// Once Advance returns false it keeps returning false and the token
// returned by Token is left untouched.
//
// Token returns the stage's current token buffer. It is only meaningful after
// Advance returned true. Callers may rewrite the token in place; map-style
// filters rely on this to avoid allocating.
type Stage interface {
	Advance() bool
	Token() *Token
}

// Tokenizer splits raw text into a Stage. Implementations are immutable and
// safe to share; every call returns fresh per-text state.
type Tokenizer interface {
	Tokenize(text string) Stage
}

// TokenFilter wraps an upstream Stage. Like Tokenizer, a TokenFilter is the
// immutable, shareable configuration; Filter creates the per-text state.
type TokenFilter interface {
	Filter(in Stage) Stage
}

// CharFilter rewrites the raw text before tokenization. The returned OffsetMap
// maps offsets in the rewritten text back to the input; nil means offsets are
// unchanged.
type CharFilter interface {
	Filter(text string) (string, *OffsetMap)
}

// TokenizerFunc adapts a function to the Tokenizer interface.
type TokenizerFunc func(text string) Stage

func (f TokenizerFunc) Tokenize(text string) Stage { return f(text) }

// FilterFunc adapts a function to the TokenFilter interface.
type FilterFunc func(in Stage) Stage

func (f FilterFunc) Filter(in Stage) Stage { return f(in) }

// Collect drains s and returns copies of every token it produced.
func Collect(s Stage) []Token {
	var tokens []Token
	for s.Advance() {
		tokens = append(tokens, *s.Token())
	}
	return tokens
}

// Terms drains s and returns only the token texts.
func Terms(s Stage) []string {
	var terms []string
	for s.Advance() {
		terms = append(terms, s.Token().Text)
	}
	return terms
}
