package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLexiconNew(t *testing.T) {
	lex := New()
	if lex == nil {
		t.Fatal("New() returned nil")
	}

	stats := lex.Stats()
	if stats.SynonymGroups != 0 {
		t.Errorf("New lexicon should have 0 synonym groups, got %d", stats.SynonymGroups)
	}
}

func TestLexiconAddSynonymGroup(t *testing.T) {
	lex := New()
	lex.AddSynonymGroup("game", []string{"game", "games", "gaming", "gamer"})

	for _, v := range []string{"gaming", "gamer", "game"} {
		if got := lex.Normalize(v); got != "game" {
			t.Errorf("Normalize(%q) = %q, want 'game'", v, got)
		}
	}

	want := []string{"game", "games", "gaming", "gamer"}
	if diff := cmp.Diff(want, lex.Variants("gaming")); diff != "" {
		t.Errorf("Variants('gaming') mismatch (-want +got):\n%s", diff)
	}
}

func TestLexiconCaseInsensitive(t *testing.T) {
	lex := New()
	lex.AddSynonymGroup("ml", []string{"ml", "ML", "Machine Learning", "machine-learning"})

	tests := []struct {
		input string
		want  string
	}{
		{"ML", "ml"},
		{"ml", "ml"},
		{"Machine Learning", "ml"},
		{"MACHINE-LEARNING", "ml"},
	}

	for _, tt := range tests {
		if got := lex.Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLexiconUnknownToken(t *testing.T) {
	lex := New()
	lex.AddSynonymGroup("game", []string{"game", "games"})

	if got := lex.Normalize("unknown"); got != "unknown" {
		t.Errorf("Normalize('unknown') = %q, want 'unknown'", got)
	}
	if variants := lex.Variants("unknown"); variants != nil {
		t.Errorf("Variants('unknown') = %v, want nil", variants)
	}
	if lex.HasSynonyms("unknown") {
		t.Error("HasSynonyms('unknown') = true, want false")
	}
}

func TestLexiconRedefineGroup(t *testing.T) {
	lex := New()
	lex.AddSynonymGroup("car", []string{"auto", "automobile"})
	lex.AddSynonymGroup("car", []string{"vehicle"})

	if lex.HasSynonyms("auto") {
		t.Error("old variant should be dropped when a group is redefined")
	}
	if diff := cmp.Diff([]string{"car", "vehicle"}, lex.Variants("vehicle")); diff != "" {
		t.Errorf("Variants mismatch (-want +got):\n%s", diff)
	}

	stats := lex.Stats()
	if stats.SynonymGroups != 1 || stats.TotalVariants != 2 {
		t.Errorf("Stats() = %+v, want 1 group with 2 variants", stats)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	content := `synonyms:
  - canonical: game
    variants: [games, Gaming]
  - canonical: ml
    variants: [machine-learning]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	lex, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}
	if got := lex.Normalize("gaming"); got != "game" {
		t.Errorf("Normalize('gaming') = %q, want 'game'", got)
	}
	if got := lex.Normalize("machine-learning"); got != "ml" {
		t.Errorf("Normalize('machine-learning') = %q, want 'ml'", got)
	}
}

func TestLoadFromYAMLErrors(t *testing.T) {
	if _, err := LoadFromYAML("/nonexistent/lexicon.yaml"); err == nil {
		t.Error("Should error on nonexistent file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("synonyms: {canonical: [}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromYAML(path); err == nil {
		t.Error("Should error on malformed YAML")
	}
}
