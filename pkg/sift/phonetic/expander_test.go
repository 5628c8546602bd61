package phonetic

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cognicore/sift/pkg/sift/analysis"
	"github.com/cognicore/sift/pkg/sift/tokenize"
)

func expand(e *Expander, text string) []string {
	return analysis.Terms(e.Filter(tokenize.NewWhitespace().Tokenize(text)))
}

// codes maps words to fixed codes; unknown words encode to "".
type codes map[string]string

func (c codes) Encode(s string) string { return c[s] }

type pairs map[string][2]string

func (p pairs) EncodeDouble(s string) (string, string) { return p[s][0], p[s][1] }

type branches map[string][]string

func (b branches) EncodeBranches(s string) []string { return b[s] }

type alternations map[string]string

func (a alternations) EncodeAlternation(s string) string { return a[s] }

func TestSingleCode(t *testing.T) {
	enc := codes{"smith": "SM0", "same": "same"}

	tests := []struct {
		name   string
		inject bool
		text   string
		want   []string
	}{
		{"replace", false, "smith", []string{"SM0"}},
		{"inject", true, "smith", []string{"smith", "SM0"}},
		{"empty code dropped", false, "1234", nil},
		{"empty code with inject", true, "1234", []string{"1234"}},
		{"code equal to original", true, "same", []string{"same"}},
		{"code equal to original without inject", false, "same", []string{"same"}},
		{"several tokens", false, "smith 1234 smith", []string{"SM0", "SM0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expand(NewSingle(enc, tt.inject), tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("terms mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDoubleCode(t *testing.T) {
	enc := pairs{
		"both":      {"P", "A"},
		"same":      {"P", "P"},
		"primary":   {"P", ""},
		"alternate": {"", "A"},
		"KT":        {"KT", "A"},
		"AB":        {"P", "AB"},
	}

	tests := []struct {
		name   string
		inject bool
		text   string
		want   []string
	}{
		{"distinct", false, "both", []string{"P", "A"}},
		{"distinct inject", true, "both", []string{"both", "P", "A"}},
		{"equal", false, "same", []string{"P"}},
		{"equal inject", true, "same", []string{"same", "P"}},
		{"primary only", false, "primary", []string{"P"}},
		{"alternate only", false, "alternate", []string{"A"}},
		{"alternate only inject", true, "alternate", []string{"alternate", "A"}},
		{"both empty", false, "none", nil},
		{"both empty inject", true, "none", []string{"none"}},
		{"primary equals token", false, "KT", []string{"KT", "A"}},
		{"primary equals token inject", true, "KT", []string{"KT", "A"}},
		{"alternate equals token inject", true, "AB", []string{"AB", "P"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expand(NewDouble(enc, tt.inject), tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("terms mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBranchingQueue(t *testing.T) {
	enc := branches{
		"word":  {"a", "", "b", "c"},
		"empty": {},
	}

	tests := []struct {
		name   string
		inject bool
		text   string
		want   []string
	}{
		{"all branches", false, "word", []string{"a", "b", "c"}},
		{"inject first", true, "word", []string{"word", "a", "b", "c"}},
		{"no branches", false, "empty", nil},
		{"no branches inject", true, "empty", []string{"empty"}},
		{"no branches between tokens", false, "word empty word", []string{"a", "b", "c", "a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expand(NewBranching(enc, tt.inject), tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("terms mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAlternationParser(t *testing.T) {
	enc := alternations{
		"pair":    "(a|b)-(c|d)",
		"plain":   "abc",
		"nothing": "",
	}

	tests := []struct {
		name   string
		inject bool
		text   string
		want   []string
	}{
		{"flattened, not combined", false, "pair", []string{"a", "b", "c", "d"}},
		{"inject", true, "pair", []string{"pair", "a", "b", "c", "d"}},
		{"plain code", false, "plain", []string{"abc"}},
		{"empty string", false, "nothing", nil},
		{"empty string inject", true, "nothing", []string{"nothing"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expand(NewAlternation(enc, tt.inject), tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("terms mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseAlternation(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"(a|b)-(c|d)", []string{"a", "b", "c", "d"}},
		{"abc", []string{"abc"}},
		{"", nil},
		{"()|-", nil},
		{"((a||b))", []string{"a", "b"}},
		{"x-(y|z)", []string{"x", "y", "z"}},
		{"(ab|cd)ef", []string{"ab", "cd", "ef"}},
		{"(fé|fè)", []string{"fé", "fè"}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ParseAlternation(tt.in)); diff != "" {
			t.Errorf("ParseAlternation(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestExpanderSharesSourceSlot(t *testing.T) {
	e := NewDouble(pairs{"bar": {"P", "A"}}, true)
	got := analysis.Collect(e.Filter(tokenize.NewWhitespace().Tokenize("foo bar")))

	want := []analysis.Token{
		{Text: "bar", OffsetFrom: 4, OffsetTo: 7, Position: 1, PositionLength: 1},
		{Text: "P", OffsetFrom: 4, OffsetTo: 7, Position: 1, PositionLength: 1},
		{Text: "A", OffsetFrom: 4, OffsetTo: 7, Position: 1, PositionLength: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestExpanderEmptyTextPassesThrough(t *testing.T) {
	src := []analysis.Token{
		{Text: "", OffsetFrom: 0, OffsetTo: 0, Position: 0, PositionLength: 1},
		{Text: "x", OffsetFrom: 1, OffsetTo: 2, Position: 1, PositionLength: 1},
	}
	called := 0
	enc := EncoderFunc(func(s string) string {
		called++
		return "X"
	})

	got := analysis.Collect(NewSingle(enc, false).Filter(analysis.NewSliceStage(src)))
	want := []analysis.Token{
		src[0],
		{Text: "X", OffsetFrom: 1, OffsetTo: 2, Position: 1, PositionLength: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
	if called != 1 {
		t.Errorf("encoder called %d times, want 1", called)
	}
}

func TestExpanderTerminal(t *testing.T) {
	for _, e := range []*Expander{
		NewSingle(codes{"a": "A"}, true),
		NewDouble(pairs{"a": {"P", "A"}}, false),
		NewBranching(branches{"a": {"x", "y"}}, false),
		NewAlternation(alternations{"a": "(x|y)"}, true),
	} {
		s := e.Filter(tokenize.NewWhitespace().Tokenize("a"))
		for s.Advance() {
		}
		last := *s.Token()
		for i := 0; i < 3; i++ {
			if s.Advance() {
				t.Fatalf("%v: Advance returned true after exhaustion", e.Variant())
			}
		}
		if *s.Token() != last {
			t.Errorf("%v: token changed after exhaustion: %v, was %v", e.Variant(), *s.Token(), last)
		}
	}
}

func TestVariantString(t *testing.T) {
	want := map[Variant]string{
		SingleCode:        "single",
		DoubleCode:        "double",
		BranchingQueue:    "branching",
		AlternationParser: "alternation",
		Variant(42):       "unknown",
	}
	for v, s := range want {
		if v.String() != s {
			t.Errorf("Variant(%d).String() = %q, want %q", int(v), v.String(), s)
		}
	}
}
