package main

import (
	"bufio"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oklog/ulid/v2"
)

// document is one unit of input. Batch lines decode into it.
type document struct {
	ID       string `json:"id,omitempty"`
	Analyzer string `json:"analyzer,omitempty"`
	Text     string `json:"text"`
}

// maxLine bounds a single batch line.
const maxLine = 16 << 20

// readBatch reads JSON Lines from path ("-" for stdin). Blank lines are
// skipped; documents without an analyzer use fallback.
func readBatch(path string, stdin io.Reader, fallback string) ([]document, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var docs []document
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var d document
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if d.Analyzer == "" {
			d.Analyzer = fallback
		}
		docs = append(docs, d)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// idSource hands out monotonically increasing ULIDs.
type idSource struct {
	entropy *ulid.MonotonicEntropy
}

func newIDSource() *idSource {
	return &idSource{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (s *idSource) next() string {
	return ulid.MustNew(ulid.Now(), s.entropy).String()
}
