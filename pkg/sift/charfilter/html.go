package charfilter

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	"github.com/cognicore/sift/pkg/sift/analysis"
)

// blockElements are replaced by a newline so words on either side stay apart.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"figcaption": true, "footer": true, "form": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "td": true, "th": true, "tr": true, "ul": true,
}

// HTMLStrip removes markup, comments and script/style bodies and decodes
// character references. Offsets of the remaining text map back to the markup.
type HTMLStrip struct{}

// NewHTMLStrip creates an HTMLStrip char filter.
func NewHTMLStrip() *HTMLStrip {
	return &HTMLStrip{}
}

func (HTMLStrip) Filter(text string) (string, *analysis.OffsetMap) {
	var (
		b       strings.Builder
		offsets = &analysis.OffsetMap{}
		in      int
		last    int
		skip    string
	)
	z := html.NewTokenizer(strings.NewReader(text))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		rawLen := len(z.Raw())

		switch tt {
		case html.TextToken:
			if skip == "" {
				// Text starts after the markup before it; the checkpoint
				// recorded before that markup still serves ends.
				offsets.Add(b.Len(), in-b.Len())
				writeText(&b, offsets, z.Raw(), in)
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tt == html.StartTagToken && (tag == "script" || tag == "style") {
				skip = tag
			}
			if blockElements[tag] {
				b.WriteByte('\n')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == skip {
				skip = ""
			}
			if blockElements[tag] {
				b.WriteByte('\n')
			}
		}
		in += rawLen

		// A checkpoint at the end of new output marks where removed markup
		// starts, so a word followed by a closing tag ends where it ends.
		if b.Len() > last {
			offsets.Add(b.Len(), in-b.Len())
			last = b.Len()
		}
	}
	return b.String(), offsets
}

// maxEntity bounds the length of a character reference such as "&#x1F600;"
// or "&CounterClockwiseContourIntegral;".
const maxEntity = 34

// writeText copies raw text, decoding character references one at a time and
// recording a checkpoint after each so offsets stay exact around them.
func writeText(b *strings.Builder, offsets *analysis.OffsetMap, raw []byte, in int) {
	for i := 0; i < len(raw); {
		if raw[i] != '&' {
			b.WriteByte(raw[i])
			i++
			continue
		}
		end := bytes.IndexByte(raw[i:min(len(raw), i+maxEntity)], ';')
		if end < 0 {
			b.WriteByte('&')
			i++
			continue
		}
		ref := string(raw[i : i+end+1])
		decoded := html.UnescapeString(ref)
		if decoded == ref {
			b.WriteByte('&')
			i++
			continue
		}
		b.WriteString(decoded)
		i += end + 1
		offsets.Add(b.Len(), in+i-b.Len())
	}
}
