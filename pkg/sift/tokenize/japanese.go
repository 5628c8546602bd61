package tokenize

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	ipaneologd "github.com/ikawaha/kagome-dict-ipa-neologd"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/cognicore/sift/pkg/sift/analysis"
	"github.com/cognicore/sift/pkg/sift/internalerr"
)

// Japanese segments text morphologically with kagome and the IPA NEologd
// dictionary. The dictionary is large, so one instance is loaded per process
// (see SharedJapanese) and shared read-only by every call.
type Japanese struct {
	t *tokenizer.Tokenizer
}

var sharedJapanese = sync.OnceValues(NewJapanese)

// NewJapanese loads the dictionary and creates a tokenizer.
func NewJapanese() (*Japanese, error) {
	t, err := tokenizer.New(ipaneologd.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("%w: japanese tokenizer: %v", internalerr.ErrInvalidConfig, err)
	}
	return &Japanese{t: t}, nil
}

// SharedJapanese returns the process-wide Japanese tokenizer, loading the
// dictionary on first use.
func SharedJapanese() (*Japanese, error) {
	return sharedJapanese()
}

// Tokenize segments text eagerly (kagome works on the whole lattice) and
// replays the morphemes. Blank morphemes are dropped.
func (j *Japanese) Tokenize(text string) analysis.Stage {
	morphemes := j.t.Tokenize(text)
	tokens := make([]analysis.Token, 0, len(morphemes))

	searchFrom := 0
	for _, m := range morphemes {
		surface := m.Surface
		if surface == "" {
			continue
		}
		idx := strings.Index(text[searchFrom:], surface)
		if idx < 0 {
			continue
		}
		start := searchFrom + idx
		end := start + len(surface)
		searchFrom = end

		if strings.TrimFunc(surface, unicode.IsSpace) == "" {
			continue
		}
		tokens = append(tokens, analysis.Token{
			Text:           surface,
			OffsetFrom:     start,
			OffsetTo:       end,
			Position:       len(tokens),
			PositionLength: 1,
		})
	}
	return analysis.NewSliceStage(tokens)
}
