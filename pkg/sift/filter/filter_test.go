package filter

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cognicore/sift/pkg/sift/analysis"
	"github.com/cognicore/sift/pkg/sift/internalerr"
	"github.com/cognicore/sift/pkg/sift/lexicon"
	"github.com/cognicore/sift/pkg/sift/stoplist"
	"github.com/cognicore/sift/pkg/sift/tokenize"
)

func run(f analysis.TokenFilter, text string) []string {
	return analysis.Terms(f.Filter(tokenize.NewWhitespace().Tokenize(text)))
}

func mustLength(t *testing.T, min, max int) *Length {
	t.Helper()
	f, err := NewLength(min, max)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func mustLimit(t *testing.T, max int) *Limit {
	t.Helper()
	f, err := NewLimit(max)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestFilters(t *testing.T) {
	tests := []struct {
		name   string
		filter analysis.TokenFilter
		text   string
		want   []string
	}{
		{"lowercase", Lowercase{}, "Hello WORLD", []string{"hello", "world"}},
		{"reverse", Reverse{}, "abc ñú", []string{"cba", "úñ"}},
		{"length min", mustLength(t, 3, 0), "a ab abc abcd", []string{"abc", "abcd"}},
		{"length max", mustLength(t, 0, 2), "a ab abc", []string{"a", "ab"}},
		{"length counts runes", mustLength(t, 2, 2), "ñú abc", []string{"ñú"}},
		{"limit", mustLimit(t, 2), "a b c d", []string{"a", "b"}},
		{"limit beyond input", mustLimit(t, 5), "a b", []string{"a", "b"}},
		{"stop", NewStop(stoplist.New(stoplist.English, true)), "The cat and the hat", []string{"cat", "hat"}},
		{"stop case sensitive", NewStop(stoplist.New([]string{"the"}, false)), "The the", []string{"The"}},
		{"elision", NewElision(nil), "l'avion L’arbre qu'il aujourd'hui", []string{"avion", "arbre", "il", "aujourd'hui"}},
		{"elision custom", NewElision([]string{"dell"}), "dell'arte l'arte", []string{"arte", "l'arte"}},
		{"fold", NewFold(), "café Ångström naïve", []string{"cafe", "Angstrom", "naive"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(tt.filter, tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("terms mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTrim(t *testing.T) {
	src := []analysis.Token{{Text: "  padded\t", OffsetFrom: 0, OffsetTo: 9, PositionLength: 1}}
	got := analysis.Collect(Trim{}.Filter(analysis.NewSliceStage(src)))
	want := []analysis.Token{{Text: "padded", OffsetFrom: 0, OffsetTo: 9, PositionLength: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestRomaji(t *testing.T) {
	got := run(Romaji{}, "トウキョウ とうきょう")
	if len(got) != 2 {
		t.Fatalf("got %v, want two terms", got)
	}
	if got[0] != got[1] {
		t.Errorf("katakana %q and hiragana %q romanized differently", got[0], got[1])
	}
	if got[0] == "とうきょう" {
		t.Errorf("term %q was not romanized", got[0])
	}
}

func TestFilterErrors(t *testing.T) {
	if _, err := NewLength(-1, 0); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("NewLength(-1, 0) error = %v", err)
	}
	if _, err := NewLength(5, 2); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("NewLength(5, 2) error = %v", err)
	}
	if _, err := NewLimit(0); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("NewLimit(0) error = %v", err)
	}
}

func TestSynonym(t *testing.T) {
	lex := lexicon.FromGroups([]lexicon.Group{
		{Canonical: "car", Variants: []string{"automobile", "auto"}},
	})

	normalized := run(NewSynonym(lex, false), "Auto wash")
	if diff := cmp.Diff([]string{"car", "wash"}, normalized); diff != "" {
		t.Errorf("normalize mismatch (-want +got):\n%s", diff)
	}

	got := analysis.Collect(NewSynonym(lex, true).Filter(tokenize.NewWhitespace().Tokenize("red auto")))
	want := []analysis.Token{
		{Text: "red", OffsetFrom: 0, OffsetTo: 3, Position: 0, PositionLength: 1},
		{Text: "auto", OffsetFrom: 4, OffsetTo: 8, Position: 1, PositionLength: 1},
		{Text: "car", OffsetFrom: 4, OffsetTo: 8, Position: 1, PositionLength: 1},
		{Text: "automobile", OffsetFrom: 4, OffsetTo: 8, Position: 1, PositionLength: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("inject mismatch (-want +got):\n%s", diff)
	}
}

// Dropping and expanding stages must keep their last token once exhausted,
// even though upstream moved past it.
func TestTerminalIdempotence(t *testing.T) {
	lex := lexicon.FromGroups([]lexicon.Group{{Canonical: "a", Variants: []string{"b"}}})
	filters := map[string]analysis.TokenFilter{
		"lowercase": Lowercase{},
		"length":    mustLength(t, 2, 0),
		"limit":     mustLimit(t, 1),
		"stop":      NewStop(stoplist.New([]string{"x"}, false)),
		"synonym":   NewSynonym(lex, true),
	}

	for name, f := range filters {
		s := f.Filter(tokenize.NewWhitespace().Tokenize("aa a x"))
		for s.Advance() {
		}
		last := *s.Token()
		for i := 0; i < 3; i++ {
			if s.Advance() {
				t.Fatalf("%s: Advance returned true after exhaustion", name)
			}
		}
		if *s.Token() != last {
			t.Errorf("%s: token changed after exhaustion: %v, was %v", name, *s.Token(), last)
		}
	}
}

func TestLimitStopsPulling(t *testing.T) {
	pulled := 0
	src := analysis.NewSliceStage([]analysis.Token{{Text: "a"}, {Text: "b"}, {Text: "c"}})
	counting := &countingStage{Stage: src, n: &pulled}

	s := mustLimit(t, 1).Filter(counting)
	for s.Advance() {
	}
	s.Advance()
	if pulled != 1 {
		t.Errorf("upstream pulled %d times, want 1", pulled)
	}
}

type countingStage struct {
	analysis.Stage
	n *int
}

func (s *countingStage) Advance() bool {
	*s.n++
	return s.Stage.Advance()
}
