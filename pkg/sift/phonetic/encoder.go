package phonetic

// The encoders are the letter-to-code algorithms. They differ only in the
// shape of their output; the expanders in this package turn each shape into
// tokens.

// Encoder produces a single code. An empty code means the input could not be
// encoded.
type Encoder interface {
	Encode(s string) string
}

// DoubleEncoder produces a primary and an alternate code, either of which may
// be empty.
type DoubleEncoder interface {
	EncodeDouble(s string) (primary, alternate string)
}

// BranchEncoder produces an ordered list of alternative codes.
type BranchEncoder interface {
	EncodeBranches(s string) []string
}

// AlternationEncoder produces a compact alternation string such as
// "(a|b)-(c|d)".
type AlternationEncoder interface {
	EncodeAlternation(s string) string
}

// EncoderFunc adapts a function to Encoder.
type EncoderFunc func(string) string

func (f EncoderFunc) Encode(s string) string { return f(s) }

// DoubleEncoderFunc adapts a function to DoubleEncoder.
type DoubleEncoderFunc func(string) (string, string)

func (f DoubleEncoderFunc) EncodeDouble(s string) (string, string) { return f(s) }

// BranchEncoderFunc adapts a function to BranchEncoder.
type BranchEncoderFunc func(string) []string

func (f BranchEncoderFunc) EncodeBranches(s string) []string { return f(s) }

// AlternationEncoderFunc adapts a function to AlternationEncoder.
type AlternationEncoderFunc func(string) string

func (f AlternationEncoderFunc) EncodeAlternation(s string) string { return f(s) }
