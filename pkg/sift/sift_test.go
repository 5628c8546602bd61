package sift

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cognicore/sift/pkg/sift/analysis"
	"github.com/cognicore/sift/pkg/sift/config"
	"github.com/cognicore/sift/pkg/sift/internalerr"
	"github.com/cognicore/sift/pkg/sift/tokenize"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestBuiltins(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		analyzer string
		text     string
		want     []string
	}{
		{"standard", "Hello, World!", []string{"hello", "world"}},
		{"whitespace", "Hello, World!", []string{"Hello,", "World!"}},
		{"keyword", "Hello, World!", []string{"Hello, World!"}},
		{"simple", "GPT-4 rocks", []string{"gpt-4", "rocks"}},
		{"stop", "the end", []string{"end"}},
		{"html", "<b>Bold</b> move", []string{"bold", "move"}},
		{"path", "/usr/local/bin", []string{"/usr", "/usr/local", "/usr/local/bin"}},
		{"autocomplete", "Go", []string{"g", "go"}},
		{"phonetic", "Smith", []string{"smith", "SM0", "XMT"}},
	}
	for _, tt := range tests {
		got, err := r.Tokens(tt.analyzer, tt.text)
		if err != nil {
			t.Fatalf("%s: %v", tt.analyzer, err)
		}
		var terms []string
		for _, tok := range got {
			terms = append(terms, tok.Text)
		}
		if diff := cmp.Diff(tt.want, terms); diff != "" {
			t.Errorf("%s: terms mismatch (-want +got):\n%s", tt.analyzer, diff)
		}
	}
}

func TestGetCaches(t *testing.T) {
	r := newRegistry(t)
	a, err := r.Get("standard")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := r.Get("standard")
	if a != b {
		t.Error("Get built the analyzer twice")
	}
	if _, err := r.Get("nope"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Get(nope) error = %v, want ErrNotFound", err)
	}
	if _, err := r.Analyze("nope", "x"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Analyze(nope) error = %v, want ErrNotFound", err)
	}
}

func TestRegister(t *testing.T) {
	r := newRegistry(t)
	custom := analysis.NewAnalyzer(tokenize.NewKeyword())

	if err := r.Register("exact", custom); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register("exact", custom); !errors.Is(err, internalerr.ErrDuplicate) {
		t.Errorf("second Register error = %v, want ErrDuplicate", err)
	}
	if err := r.Register("standard", custom); !errors.Is(err, internalerr.ErrDuplicate) {
		t.Errorf("Register over built-in error = %v, want ErrDuplicate", err)
	}
	if err := r.Register("broken", &analysis.Analyzer{}); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Register without tokenizer error = %v, want ErrInvalidConfig", err)
	}

	found := false
	for _, n := range r.Names() {
		if n == "exact" {
			found = true
		}
	}
	if !found {
		t.Errorf("Names() = %v, missing exact", r.Names())
	}

	got, err := r.Tokens("exact", "a b")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Text != "a b" {
		t.Errorf("Tokens = %v", got)
	}
}

func TestConfiguredRegistry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "analysis.yaml")
	content := `
filters:
  grams: {type: edge_ngram, min: 2, max: 0, keep_original: true}
analyzers:
  prefixes:
    tokenizer: whitespace
    filters: [lowercase, grams]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	comp, err := (&config.Loader{AnalysisPath: path}).Load()
	if err != nil {
		t.Fatal(err)
	}
	r, err := New(Options{Components: comp})
	if err != nil {
		t.Fatal(err)
	}

	got, err := r.Tokens("prefixes", "ABC x")
	if err != nil {
		t.Fatal(err)
	}
	want := []analysis.Token{
		{Text: "ab", OffsetFrom: 0, OffsetTo: 3, Position: 0, PositionLength: 1},
		{Text: "abc", OffsetFrom: 0, OffsetTo: 3, Position: 0, PositionLength: 1},
		{Text: "x", OffsetFrom: 4, OffsetTo: 5, Position: 1, PositionLength: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestConcurrentAnalyze(t *testing.T) {
	r := newRegistry(t)
	want, err := r.Tokens("autocomplete", "concurrent analysis")
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, err := r.Tokens("autocomplete", "concurrent analysis")
				if err != nil {
					t.Error(err)
					return
				}
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("concurrent mismatch (-want +got):\n%s", diff)
					return
				}
			}
		}()
	}
	wg.Wait()
}
