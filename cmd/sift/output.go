package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/markkurossi/tabulate"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/cognicore/sift/pkg/sift/analysis"
)

type writer interface {
	write(d document, tokens []analysis.Token) error
	flush() error
}

func newWriter(format string, w io.Writer, width int) (writer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "auto":
		if isTerminal(w) {
			return &tableWriter{w: w, width: width}, nil
		}
		return &jsonWriter{enc: json.NewEncoder(w)}, nil
	case "table":
		return &tableWriter{w: w, width: width}, nil
	case "json":
		return &jsonWriter{enc: json.NewEncoder(w)}, nil
	}
	return nil, errors.New("want auto, table or json")
}

type tokenJSON struct {
	Text           string `json:"text"`
	Start          int    `json:"start"`
	End            int    `json:"end"`
	Position       int    `json:"position"`
	PositionLength int    `json:"position_length"`
}

type resultJSON struct {
	ID       string      `json:"id,omitempty"`
	Analyzer string      `json:"analyzer"`
	Tokens   []tokenJSON `json:"tokens"`
}

// jsonWriter prints one JSON object per document.
type jsonWriter struct {
	enc *json.Encoder
}

func (j *jsonWriter) write(d document, tokens []analysis.Token) error {
	res := resultJSON{ID: d.ID, Analyzer: d.Analyzer, Tokens: make([]tokenJSON, len(tokens))}
	for i, t := range tokens {
		res.Tokens[i] = tokenJSON{
			Text:           t.Text,
			Start:          t.OffsetFrom,
			End:            t.OffsetTo,
			Position:       t.Position,
			PositionLength: t.PositionLength,
		}
	}
	return j.enc.Encode(res)
}

func (j *jsonWriter) flush() error { return nil }

// tableWriter prints one table per document. Terms wider than the space
// left by the numeric columns are cut.
type tableWriter struct {
	w     io.Writer
	width int
	n     int
}

// numericColumns approximates the width taken by borders and the numeric
// columns.
const numericColumns = 36

func (t *tableWriter) write(d document, tokens []analysis.Token) error {
	if t.n > 0 {
		if _, err := fmt.Fprintln(t.w); err != nil {
			return err
		}
	}
	t.n++
	if d.ID != "" {
		if _, err := fmt.Fprintf(t.w, "%s (%s)\n", d.ID, d.Analyzer); err != nil {
			return err
		}
	}

	termWidth := t.width - numericColumns
	if termWidth < 8 {
		termWidth = 8
	}

	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Pos").SetAlign(tabulate.MR)
	tab.Header("Term")
	tab.Header("Start").SetAlign(tabulate.MR)
	tab.Header("End").SetAlign(tabulate.MR)
	tab.Header("Len").SetAlign(tabulate.MR)

	for _, tok := range tokens {
		row := tab.Row()
		row.Column(strconv.Itoa(tok.Position))
		row.Column(displayTerm(tok.Text, termWidth))
		row.Column(strconv.Itoa(tok.OffsetFrom))
		row.Column(strconv.Itoa(tok.OffsetTo))
		row.Column(strconv.Itoa(tok.PositionLength))
	}
	_, err := io.WriteString(t.w, tab.String())
	return err
}

func (t *tableWriter) flush() error { return nil }

func displayTerm(s string, width int) string {
	if strings.ContainsFunc(s, unicode.IsControl) {
		s = strconv.Quote(s)
	}
	if ansi.PrintableRuneWidth(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
