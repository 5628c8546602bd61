package filter

import (
	"strings"
	"unicode/utf8"

	"github.com/cognicore/sift/pkg/sift/analysis"
)

// FrenchArticles are the elided articles stripped by default.
var FrenchArticles = []string{
	"l", "m", "t", "qu", "n", "s", "j", "d", "c",
	"jusqu", "quoiqu", "lorsqu", "puisqu",
}

// Elision strips an elided article and its apostrophe from the front of a
// token: "l'avion" becomes "avion". Offsets keep covering the whole word.
type Elision struct {
	articles map[string]struct{}
}

// NewElision creates an elision filter. Articles are matched case-insensitively;
// an empty list selects FrenchArticles.
func NewElision(articles []string) *Elision {
	if len(articles) == 0 {
		articles = FrenchArticles
	}
	e := &Elision{articles: make(map[string]struct{}, len(articles))}
	for _, a := range articles {
		e.articles[strings.ToLower(a)] = struct{}{}
	}
	return e
}

func (e *Elision) Filter(in analysis.Stage) analysis.Stage {
	return Map(in, e.strip)
}

func (e *Elision) strip(s string) string {
	i := strings.IndexAny(s, "'’")
	if i <= 0 {
		return s
	}
	if _, ok := e.articles[strings.ToLower(s[:i])]; !ok {
		return s
	}
	_, size := utf8.DecodeRuneInString(s[i:])
	return s[i+size:]
}
