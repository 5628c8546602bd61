package phonetic

import (
	"github.com/cognicore/sift/pkg/sift/analysis"
)

// Variant identifies how an encoder's output is turned into tokens.
type Variant int

const (
	// SingleCode emits one code per token.
	SingleCode Variant = iota
	// DoubleCode emits a primary and, when different, an alternate code.
	DoubleCode
	// BranchingQueue emits every code of a branch list.
	BranchingQueue
	// AlternationParser emits every fragment of an alternation string.
	AlternationParser
)

func (v Variant) String() string {
	switch v {
	case SingleCode:
		return "single"
	case DoubleCode:
		return "double"
	case BranchingQueue:
		return "branching"
	case AlternationParser:
		return "alternation"
	}
	return "unknown"
}

// Expander is a token filter replacing (or, with inject, accompanying) each
// token with its phonetic codes. All codes of one token share its offsets
// and position. Tokens with empty text pass through without encoding.
//
// An Expander is immutable and shareable; every Filter call gets its own
// queue of pending codes.
type Expander struct {
	variant Variant
	inject  bool
	produce func(q *analysis.Queue, text string)
}

// NewSingle wraps a single-code encoder. A token whose code is empty is
// dropped, or emitted alone when inject is set. With inject, a code equal to
// the token itself is not repeated.
func NewSingle(enc Encoder, inject bool) *Expander {
	return &Expander{
		variant: SingleCode,
		inject:  inject,
		produce: func(q *analysis.Queue, text string) {
			code := enc.Encode(text)
			if inject {
				q.Push(text)
			}
			if code != "" && !(inject && code == text) {
				q.Push(code)
			}
		},
	}
}

// NewDouble wraps a primary/alternate encoder. The original comes first with
// inject, then the primary, then the alternate unless it is empty or equal
// to the primary. As with NewSingle, inject never repeats the token itself.
func NewDouble(enc DoubleEncoder, inject bool) *Expander {
	return &Expander{
		variant: DoubleCode,
		inject:  inject,
		produce: func(q *analysis.Queue, text string) {
			primary, alternate := enc.EncodeDouble(text)
			if inject {
				q.Push(text)
			}
			if primary != "" && !(inject && primary == text) {
				q.Push(primary)
			}
			if alternate != "" && alternate != primary && !(inject && alternate == text) {
				q.Push(alternate)
			}
		},
	}
}

// NewBranching wraps a branch-list encoder. Every non-empty branch is
// emitted in order, after the original when inject is set. A token without
// branches contributes nothing unless inject is set.
func NewBranching(enc BranchEncoder, inject bool) *Expander {
	return &Expander{
		variant: BranchingQueue,
		inject:  inject,
		produce: func(q *analysis.Queue, text string) {
			if inject {
				q.Push(text)
			}
			for _, code := range enc.EncodeBranches(text) {
				if code != "" {
					q.Push(code)
				}
			}
		},
	}
}

// NewAlternation wraps an alternation-string encoder. Fragments are emitted
// as they appear in the string; groups are flattened, never combined, so
// "(a|b)-(c|d)" yields a, b, c, d rather than the pairs ac, ad, bc, bd.
func NewAlternation(enc AlternationEncoder, inject bool) *Expander {
	return &Expander{
		variant: AlternationParser,
		inject:  inject,
		produce: func(q *analysis.Queue, text string) {
			if inject {
				q.Push(text)
			}
			eachFragment(enc.EncodeAlternation(text), q.Push)
		},
	}
}

// Variant reports how the expander shapes its output.
func (e *Expander) Variant() Variant { return e.variant }

// Inject reports whether original tokens are kept.
func (e *Expander) Inject() bool { return e.inject }

func (e *Expander) Filter(in analysis.Stage) analysis.Stage {
	return &expandStage{produce: e.produce, in: in}
}

type expandStage struct {
	produce func(q *analysis.Queue, text string)
	in      analysis.Stage

	src   analysis.Token
	queue analysis.Queue

	tok  analysis.Token
	done bool
}

func (s *expandStage) Advance() bool {
	for {
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
		if s.src.Text == "" {
			s.tok = s.src
			return true
		}
		s.produce(&s.queue, s.src.Text)
	}
}

func (s *expandStage) Token() *analysis.Token { return &s.tok }

// ParseAlternation splits an alternation string into its fragments: maximal
// runs of characters other than '(', ')', '-' and '|', in order of
// appearance.
func ParseAlternation(s string) []string {
	var fragments []string
	eachFragment(s, func(f string) { fragments = append(fragments, f) })
	return fragments
}

func eachFragment(s string, fn func(string)) {
	start := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', ')', '-', '|':
			if start >= 0 {
				fn(s[start:i])
				start = -1
			}
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if start >= 0 {
		fn(s[start:])
	}
}
