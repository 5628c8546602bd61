package config

import (
	"fmt"
	"path/filepath"

	"github.com/cognicore/sift/pkg/sift/analysis"
	"github.com/cognicore/sift/pkg/sift/lexicon"
	"github.com/cognicore/sift/pkg/sift/stoplist"
)

// Loader loads all configuration files and constructs components.
type Loader struct {
	AnalysisPath string
	StoplistPath string
	LexiconPath  string
}

// Components holds the loaded configuration. Analyzers are built from it on
// demand; Load has already built every defined one once, so Analyzer only
// fails for unknown names or for built-ins whose resources cannot be loaded.
type Components struct {
	Stoplist *stoplist.Set
	Lexicon  *lexicon.Lexicon
	Analysis *Analysis

	b builder
}

// Load reads all configuration files and validates every definition.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	// Load stoplist
	if l.StoplistPath != "" {
		words, err := stoplist.Load(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Stoplist = stoplist.New(words, true)
	} else {
		comp.Stoplist = stoplist.New(stoplist.English, true)
	}

	// Load lexicon
	if l.LexiconPath != "" {
		lex, err := lexicon.LoadFromYAML(l.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		comp.Lexicon = lex
	} else {
		comp.Lexicon = lexicon.New()
	}

	// Load analysis definitions
	comp.Analysis = &Analysis{}
	var dir string
	if l.AnalysisPath != "" {
		a, err := LoadAnalysis(l.AnalysisPath)
		if err != nil {
			return nil, fmt.Errorf("load analysis: %w", err)
		}
		comp.Analysis = a
		dir = filepath.Dir(l.AnalysisPath)
	}

	comp.b = builder{
		defs:  comp.Analysis,
		dir:   dir,
		stops: comp.Stoplist,
		lex:   comp.Lexicon,
	}
	if err := comp.validate(); err != nil {
		return nil, err
	}
	return comp, nil
}

// validate builds every definition once, including the ones no analyzer uses.
func (c *Components) validate() error {
	for name := range c.Analysis.CharFilters {
		if _, err := c.b.charFilter(name); err != nil {
			return err
		}
	}
	for name := range c.Analysis.Filters {
		if _, err := c.b.filter(name); err != nil {
			return err
		}
	}
	for name := range c.Analysis.Analyzers {
		if _, err := c.b.analyzer(name); err != nil {
			return err
		}
	}
	return nil
}

// Analyzer builds the analyzer registered under name.
func (c *Components) Analyzer(name string) (*analysis.Analyzer, error) {
	return c.b.analyzer(name)
}

// AnalyzerNames lists defined and built-in analyzer names, sorted.
func (c *Components) AnalyzerNames() []string {
	return names(c.Analysis.Analyzers, BuiltinAnalyzers)
}

// FilterNames lists defined and built-in filter names, sorted.
func (c *Components) FilterNames() []string {
	return names(c.Analysis.Filters, BuiltinFilters)
}
