package filter

import (
	"github.com/kotaroooo0/gojaconv/jaconv"

	"github.com/cognicore/sift/pkg/sift/analysis"
)

// Romanize converts kana to Hepburn romaji. Katakana is folded to hiragana
// first; characters that are not kana are kept.
func Romanize(s string) string {
	return jaconv.ToHebon(jaconv.KatakanaToHiragana(s))
}

// Romaji rewrites kana tokens as romaji, so "トウキョウ" and "とうきょう"
// index the same term.
type Romaji struct{}

func (Romaji) Filter(in analysis.Stage) analysis.Stage {
	return Map(in, Romanize)
}
