package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/cognicore/sift/pkg/sift/analysis"
	"github.com/cognicore/sift/pkg/sift/charfilter"
	"github.com/cognicore/sift/pkg/sift/filter"
	"github.com/cognicore/sift/pkg/sift/internalerr"
	"github.com/cognicore/sift/pkg/sift/lexicon"
	"github.com/cognicore/sift/pkg/sift/ngram"
	"github.com/cognicore/sift/pkg/sift/path"
	"github.com/cognicore/sift/pkg/sift/phonetic"
	"github.com/cognicore/sift/pkg/sift/stoplist"
	"github.com/cognicore/sift/pkg/sift/tokenize"
)

// Tokenizer names. Tokenizers take no parameters.
var tokenizers = map[string]func() (analysis.Tokenizer, error){
	"whitespace": func() (analysis.Tokenizer, error) { return tokenize.NewWhitespace(), nil },
	"letter":     func() (analysis.Tokenizer, error) { return tokenize.NewLetter(), nil },
	"keyword":    func() (analysis.Tokenizer, error) { return tokenize.NewKeyword(), nil },
	"standard":   func() (analysis.Tokenizer, error) { return tokenize.NewStandard(), nil },
	"japanese": func() (analysis.Tokenizer, error) {
		j, err := tokenize.SharedJapanese()
		if err != nil {
			return nil, err
		}
		return j, nil
	},
}

// BuiltinCharFilters are usable without a definition.
var BuiltinCharFilters = map[string]Component{
	"html_strip": {Type: "html_strip"},
}

// BuiltinFilters are usable without a definition. stop and synonym use the
// loader's stoplist and lexicon.
var BuiltinFilters = map[string]Component{
	"lowercase":        {Type: "lowercase"},
	"trim":             {Type: "trim"},
	"reverse":          {Type: "reverse"},
	"fold":             {Type: "fold"},
	"romaji":           {Type: "romaji"},
	"elision":          {Type: "elision"},
	"stop":             {Type: "stop"},
	"synonym":          {Type: "synonym"},
	"edge_ngram":       {Type: "edge_ngram"},
	"path_hierarchy":   {Type: "path_hierarchy"},
	"double_metaphone": {Type: "double_metaphone"},
}

// BuiltinAnalyzers are registered under these names unless redefined.
var BuiltinAnalyzers = map[string]AnalyzerDef{
	"standard":     {Tokenizer: "standard", Filters: []string{"lowercase"}},
	"simple":       {Tokenizer: "letter", Filters: []string{"lowercase"}},
	"whitespace":   {Tokenizer: "whitespace"},
	"keyword":      {Tokenizer: "keyword"},
	"stop":         {Tokenizer: "standard", Filters: []string{"lowercase", "stop"}},
	"html":         {CharFilters: []string{"html_strip"}, Tokenizer: "standard", Filters: []string{"lowercase"}},
	"path":         {Tokenizer: "keyword", Filters: []string{"path_hierarchy"}},
	"autocomplete": {Tokenizer: "standard", Filters: []string{"lowercase", "edge_ngram"}},
	"phonetic":     {Tokenizer: "standard", Filters: []string{"lowercase", "double_metaphone"}},
	"synonym":      {Tokenizer: "standard", Filters: []string{"lowercase", "synonym"}},
	"japanese":     {Tokenizer: "japanese"},
	"romaji":       {Tokenizer: "japanese", Filters: []string{"romaji"}},
}

// builder resolves component names against definitions, then built-ins.
type builder struct {
	defs  *Analysis
	dir   string
	stops *stoplist.Set
	lex   *lexicon.Lexicon
}

func (b *builder) analyzer(name string) (*analysis.Analyzer, error) {
	def, ok := b.defs.Analyzers[name]
	if !ok {
		def, ok = BuiltinAnalyzers[name]
	}
	if !ok {
		return nil, fmt.Errorf("%w: analyzer %q", internalerr.ErrNotFound, name)
	}

	a := &analysis.Analyzer{}
	for _, cf := range def.CharFilters {
		f, err := b.charFilter(cf)
		if err != nil {
			return nil, fmt.Errorf("analyzer %q: %w", name, err)
		}
		a.CharFilters = append(a.CharFilters, f)
	}

	newTokenizer, ok := tokenizers[def.Tokenizer]
	if !ok {
		return nil, fmt.Errorf("analyzer %q: %w: tokenizer %q", name, internalerr.ErrNotFound, def.Tokenizer)
	}
	t, err := newTokenizer()
	if err != nil {
		return nil, fmt.Errorf("analyzer %q: %w", name, err)
	}
	a.Tokenizer = t

	for _, fn := range def.Filters {
		f, err := b.filter(fn)
		if err != nil {
			return nil, fmt.Errorf("analyzer %q: %w", name, err)
		}
		a.Filters = append(a.Filters, f)
	}
	return a, nil
}

func (b *builder) charFilter(name string) (analysis.CharFilter, error) {
	c, ok := b.defs.CharFilters[name]
	if !ok {
		c, ok = BuiltinCharFilters[name]
	}
	if !ok {
		return nil, fmt.Errorf("%w: char filter %q", internalerr.ErrNotFound, name)
	}

	switch c.Type {
	case "html_strip":
		if err := c.Decode(&struct{}{}); err != nil {
			return nil, b.invalid("char filter", name, err)
		}
		return charfilter.NewHTMLStrip(), nil
	case "mapping":
		var p struct {
			Mappings map[string]string `yaml:"mappings"`
		}
		if err := c.Decode(&p); err != nil {
			return nil, b.invalid("char filter", name, err)
		}
		m, err := charfilter.NewMapping(p.Mappings)
		if err != nil {
			return nil, fmt.Errorf("char filter %q: %w", name, err)
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: char filter %q: unknown type %q", internalerr.ErrInvalidConfig, name, c.Type)
}

func (b *builder) filter(name string) (analysis.TokenFilter, error) {
	c, ok := b.defs.Filters[name]
	if !ok {
		c, ok = BuiltinFilters[name]
	}
	if !ok {
		return nil, fmt.Errorf("%w: filter %q", internalerr.ErrNotFound, name)
	}
	f, err := b.newFilter(c)
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", name, err)
	}
	return f, nil
}

func (b *builder) newFilter(c Component) (analysis.TokenFilter, error) {
	switch c.Type {
	case "lowercase", "trim", "reverse", "fold", "romaji", "double_metaphone":
		if err := c.Decode(&struct{}{}); err != nil {
			return nil, invalid(err)
		}
	}

	switch c.Type {
	case "lowercase":
		return filter.Lowercase{}, nil
	case "trim":
		return filter.Trim{}, nil
	case "reverse":
		return filter.Reverse{}, nil
	case "fold":
		return filter.NewFold(), nil
	case "romaji":
		return filter.Romaji{}, nil

	case "elision":
		var p struct {
			Articles []string `yaml:"articles"`
		}
		if err := c.Decode(&p); err != nil {
			return nil, invalid(err)
		}
		return filter.NewElision(p.Articles), nil

	case "length":
		var p struct {
			Min int `yaml:"min"`
			Max int `yaml:"max"`
		}
		if err := c.Decode(&p); err != nil {
			return nil, invalid(err)
		}
		return tokenFilter(filter.NewLength(p.Min, p.Max))

	case "limit":
		var p struct {
			Max int `yaml:"max"`
		}
		if err := c.Decode(&p); err != nil {
			return nil, invalid(err)
		}
		return tokenFilter(filter.NewLimit(p.Max))

	case "stop":
		p := struct {
			Words      []string `yaml:"words"`
			Path       string   `yaml:"path"`
			IgnoreCase bool     `yaml:"ignore_case"`
		}{IgnoreCase: true}
		if err := c.Decode(&p); err != nil {
			return nil, invalid(err)
		}
		switch {
		case p.Path != "":
			words, err := stoplist.Load(b.resolve(p.Path))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
			}
			return filter.NewStop(stoplist.New(words, p.IgnoreCase)), nil
		case len(p.Words) > 0:
			return filter.NewStop(stoplist.New(p.Words, p.IgnoreCase)), nil
		}
		return filter.NewStop(b.stops), nil

	case "synonym":
		p := struct {
			Groups []lexicon.Group `yaml:"groups"`
			Path   string          `yaml:"path"`
			Inject bool            `yaml:"inject"`
		}{Inject: true}
		if err := c.Decode(&p); err != nil {
			return nil, invalid(err)
		}
		switch {
		case p.Path != "":
			lex, err := lexicon.LoadFromYAML(b.resolve(p.Path))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
			}
			return filter.NewSynonym(lex, p.Inject), nil
		case len(p.Groups) > 0:
			return filter.NewSynonym(lexicon.FromGroups(p.Groups), p.Inject), nil
		}
		return filter.NewSynonym(b.lex, p.Inject), nil

	case "edge_ngram":
		p := struct {
			Min          int  `yaml:"min"`
			Max          int  `yaml:"max"`
			KeepOriginal bool `yaml:"keep_original"`
		}{Min: 1, Max: 20}
		if err := c.Decode(&p); err != nil {
			return nil, invalid(err)
		}
		return tokenFilter(ngram.NewEdgeNGram(p.Min, p.Max, p.KeepOriginal))

	case "path_hierarchy":
		var p struct {
			Delimiter   string `yaml:"delimiter"`
			Replacement string `yaml:"replacement"`
			Reverse     bool   `yaml:"reverse"`
			Skip        int    `yaml:"skip"`
		}
		if err := c.Decode(&p); err != nil {
			return nil, invalid(err)
		}
		delim, err := singleRune("delimiter", p.Delimiter)
		if err != nil {
			return nil, err
		}
		repl, err := singleRune("replacement", p.Replacement)
		if err != nil {
			return nil, err
		}
		return tokenFilter(path.New(path.Config{Delimiter: delim, Replacement: repl, Reverse: p.Reverse, Skip: p.Skip}))

	case "phonetic":
		var cfg phonetic.Config
		if err := c.Decode(&cfg); err != nil {
			return nil, invalid(err)
		}
		if cfg.RulesPath != "" {
			cfg.RulesPath = b.resolve(cfg.RulesPath)
		}
		return tokenFilter(phonetic.New(cfg))

	case "double_metaphone":
		return tokenFilter(phonetic.New(phonetic.Config{Algorithm: phonetic.DoubleMetaphone, Inject: true}))
	}
	return nil, fmt.Errorf("%w: unknown type %q", internalerr.ErrInvalidConfig, c.Type)
}

// tokenFilter keeps a failed constructor's typed nil out of the interface.
func tokenFilter(f analysis.TokenFilter, err error) (analysis.TokenFilter, error) {
	if err != nil {
		return nil, err
	}
	return f, nil
}

// resolve makes p relative to the definitions file.
func (b *builder) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || b.dir == "" {
		return p
	}
	return filepath.Join(b.dir, p)
}

func (b *builder) invalid(kind, name string, err error) error {
	return fmt.Errorf("%s %q: %w", kind, name, invalid(err))
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
}

// singleRune reads a one-character parameter; empty means the default.
func singleRune(key, s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("%w: %s must be a single character, got %q", internalerr.ErrInvalidConfig, key, s)
	}
	return r, nil
}

// names merges definition and built-in names, sorted.
func names[V any](defined, builtin map[string]V) []string {
	seen := make(map[string]bool, len(defined)+len(builtin))
	out := make([]string, 0, len(defined)+len(builtin))
	for _, m := range []map[string]V{defined, builtin} {
		for n := range m {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	sort.Strings(out)
	return out
}
