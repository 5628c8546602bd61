package analysis

// SliceStage replays a fixed list of tokens. Tokenizers that segment the whole
// input eagerly (dictionary based ones, for example) hand their result to it.
type SliceStage struct {
	tokens []Token
	next   int
	tok    Token
}

// NewSliceStage returns a Stage emitting tokens in order. The slice is not copied.
func NewSliceStage(tokens []Token) *SliceStage {
	return &SliceStage{tokens: tokens}
}

func (s *SliceStage) Advance() bool {
	if s.next >= len(s.tokens) {
		return false
	}
	s.tok = s.tokens[s.next]
	s.next++
	return true
}

func (s *SliceStage) Token() *Token { return &s.tok }
