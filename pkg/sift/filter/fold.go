package filter

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/sift/pkg/sift/analysis"
)

// Fold removes diacritics: "café" becomes "cafe". Text that cannot be
// transformed is returned unchanged.
func Fold(s string) string {
	// transform.Chain keeps state, so each call builds its own chain.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// FoldFilter applies Fold to every token.
type FoldFilter struct{}

// NewFold creates a FoldFilter.
func NewFold() *FoldFilter {
	return &FoldFilter{}
}

func (FoldFilter) Filter(in analysis.Stage) analysis.Stage {
	return Map(in, Fold)
}
