package path

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/sift/pkg/sift/analysis"
	"github.com/cognicore/sift/pkg/sift/internalerr"
)

// DefaultDelimiter separates path components unless configured otherwise.
const DefaultDelimiter = '/'

// Config configures a Hierarchy filter.
type Config struct {
	// Delimiter splits components. Zero means DefaultDelimiter.
	Delimiter rune
	// Replacement is written between components in emitted tokens.
	// Zero means Delimiter.
	Replacement rune
	// Reverse builds the hierarchy from the last component towards the
	// first (domain names, package paths).
	Reverse bool
	// Skip drops this many leading (trailing when Reverse) components.
	Skip int
}

// Hierarchy expands a path token into one token per hierarchy level:
// "/a/b/c" becomes "/a", "/a/b", "/a/b/c". With Reverse the levels grow
// from the end: "c", "b/c", "a/b/c", "/a/b/c".
//
// Empty components produced by leading, trailing or repeated delimiters are
// kept. A leading (trailing when reversed) delimiter belongs to the first
// emitted level instead of counting as a component of its own. Offsets refer
// to the part of the source token each level spans; all levels carry
// position 0.
type Hierarchy struct {
	delim   string
	repl    string
	reverse bool
	skip    int
}

// New validates cfg and returns the filter.
func New(cfg Config) (*Hierarchy, error) {
	if cfg.Delimiter == 0 {
		cfg.Delimiter = DefaultDelimiter
	}
	if cfg.Replacement == 0 {
		cfg.Replacement = cfg.Delimiter
	}
	if !utf8.ValidRune(cfg.Delimiter) {
		return nil, fmt.Errorf("%w: path delimiter %U is not a valid character", internalerr.ErrInvalidConfig, cfg.Delimiter)
	}
	if !utf8.ValidRune(cfg.Replacement) {
		return nil, fmt.Errorf("%w: path replacement %U is not a valid character", internalerr.ErrInvalidConfig, cfg.Replacement)
	}
	if cfg.Skip < 0 {
		return nil, fmt.Errorf("%w: path skip must not be negative, got %d", internalerr.ErrInvalidConfig, cfg.Skip)
	}
	return &Hierarchy{
		delim:   string(cfg.Delimiter),
		repl:    string(cfg.Replacement),
		reverse: cfg.Reverse,
		skip:    cfg.Skip,
	}, nil
}

func (h *Hierarchy) Filter(in analysis.Stage) analysis.Stage {
	return &hierarchyStage{cfg: h, in: in}
}

type hierarchyStage struct {
	cfg *Hierarchy
	in  analysis.Stage

	src    analysis.Token
	split  splitter
	active bool
	index  int // components taken from split so far
	anchor int // bytes of src.Text skipped before the first level
	span   int // bytes of src.Text covered by the current level
	buf    []byte
	swap   []byte

	tok  analysis.Token
	done bool
}

func (s *hierarchyStage) Advance() bool {
	for {
		if s.active {
			if s.next() {
				return true
			}
			s.active = false
		}
		if s.done {
			return false
		}
		if !s.in.Advance() {
			s.done = true
			return false
		}
		s.src = *s.in.Token()
		s.start()
	}
}

// start prepares the levels of a new source token: it consumes the empty
// artifact of a leading delimiter and the skipped components.
func (s *hierarchyStage) start() {
	text := s.src.Text
	s.index, s.anchor, s.span = 0, 0, 0
	s.buf = s.buf[:0]
	if text == "" {
		return
	}
	s.split = splitter{text: text, delim: s.cfg.delim, reverse: s.cfg.reverse}
	s.split.reset()

	if (!s.cfg.reverse && strings.HasPrefix(text, s.cfg.delim)) ||
		(s.cfg.reverse && strings.HasSuffix(text, s.cfg.delim)) {
		s.split.next()
		s.index++
	}
	for i := 0; i < s.cfg.skip; i++ {
		comp, ok := s.split.next()
		if !ok {
			return
		}
		s.anchor += len(comp)
		if s.index > 0 {
			s.anchor += len(s.cfg.delim)
		}
		s.index++
	}
	s.active = true
}

// next appends one more component and emits the resulting level.
func (s *hierarchyStage) next() bool {
	comp, ok := s.split.next()
	if !ok {
		return false
	}
	separated := s.index > 0
	s.index++

	s.span += len(comp)
	if separated {
		s.span += len(s.cfg.delim)
	}

	if !s.cfg.reverse {
		if separated {
			s.buf = append(s.buf, s.cfg.repl...)
		}
		s.buf = append(s.buf, comp...)
	} else {
		s.swap = append(s.swap[:0], comp...)
		if separated {
			s.swap = append(s.swap, s.cfg.repl...)
		}
		s.swap = append(s.swap, s.buf...)
		s.buf, s.swap = s.swap, s.buf
	}

	base := s.src.OffsetFrom
	s.tok = analysis.Token{
		Text:           string(s.buf),
		Position:       0,
		PositionLength: 1,
	}
	if !s.cfg.reverse {
		s.tok.OffsetFrom = base + s.anchor
		s.tok.OffsetTo = base + s.anchor + s.span
	} else {
		s.tok.OffsetTo = base + len(s.src.Text) - s.anchor
		s.tok.OffsetFrom = s.tok.OffsetTo - s.span
	}
	return true
}

func (s *hierarchyStage) Token() *analysis.Token { return &s.tok }

// splitter walks the components of text lazily, front to back or back to
// front, keeping empty components.
type splitter struct {
	text    string
	delim   string
	reverse bool
	cursor  int
	done    bool
}

func (sp *splitter) reset() {
	sp.done = false
	sp.cursor = 0
	if sp.reverse {
		sp.cursor = len(sp.text)
	}
}

func (sp *splitter) next() (string, bool) {
	if sp.done {
		return "", false
	}
	if !sp.reverse {
		i := strings.Index(sp.text[sp.cursor:], sp.delim)
		if i < 0 {
			sp.done = true
			return sp.text[sp.cursor:], true
		}
		comp := sp.text[sp.cursor : sp.cursor+i]
		sp.cursor += i + len(sp.delim)
		return comp, true
	}

	i := strings.LastIndex(sp.text[:sp.cursor], sp.delim)
	if i < 0 {
		sp.done = true
		return sp.text[:sp.cursor], true
	}
	comp := sp.text[i+len(sp.delim) : sp.cursor]
	sp.cursor = i
	return comp, true
}
