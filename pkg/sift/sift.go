// Package sift turns field text into token streams for an indexing engine.
// The Registry resolves analyzer names to analyzers built from configuration;
// the stage protocol and the individual tokenizers and filters live in the
// sub-packages.
package sift

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/sift/pkg/sift/analysis"
	"github.com/cognicore/sift/pkg/sift/config"
	"github.com/cognicore/sift/pkg/sift/internalerr"
)

// Registry maps names to analyzers. Configured analyzers are built on first
// use and cached; all methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	comp      *config.Components
	analyzers map[string]*analysis.Analyzer
	extra     map[string]bool
}

// Options configures a Registry.
type Options struct {
	// Components supplies analyzer definitions. Nil means the built-ins
	// with the English stoplist and an empty lexicon.
	Components *config.Components
}

// New creates a registry.
func New(opts Options) (*Registry, error) {
	comp := opts.Components
	if comp == nil {
		var err error
		comp, err = (&config.Loader{}).Load()
		if err != nil {
			return nil, err
		}
	}
	return &Registry{
		comp:      comp,
		analyzers: make(map[string]*analysis.Analyzer),
		extra:     make(map[string]bool),
	}, nil
}

// Get returns the analyzer registered under name.
func (r *Registry) Get(name string) (*analysis.Analyzer, error) {
	r.mu.RLock()
	a, ok := r.analyzers[name]
	r.mu.RUnlock()
	if ok {
		return a, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.analyzers[name]; ok {
		return a, nil
	}
	a, err := r.comp.Analyzer(name)
	if err != nil {
		return nil, err
	}
	r.analyzers[name] = a
	return a, nil
}

// Register adds an analyzer under a name not yet in use.
func (r *Registry) Register(name string, a *analysis.Analyzer) error {
	if name == "" || a == nil || a.Tokenizer == nil {
		return fmt.Errorf("%w: analyzer needs a name and a tokenizer", internalerr.ErrInvalidConfig)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.analyzers[name]; ok {
		return fmt.Errorf("%w: analyzer %q", internalerr.ErrDuplicate, name)
	}
	for _, n := range r.comp.AnalyzerNames() {
		if n == name {
			return fmt.Errorf("%w: analyzer %q", internalerr.ErrDuplicate, name)
		}
	}
	r.analyzers[name] = a
	r.extra[name] = true
	return nil
}

// Names lists every analyzer name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.comp.AnalyzerNames()
	for n := range r.extra {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Analyze starts analyzing text with the named analyzer. The caller pulls
// tokens from the returned stage until Advance reports false.
func (r *Registry) Analyze(name, text string) (analysis.Stage, error) {
	a, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return a.Analyze(text), nil
}

// Tokens analyzes text and collects all tokens.
func (r *Registry) Tokens(name, text string) ([]analysis.Token, error) {
	s, err := r.Analyze(name, text)
	if err != nil {
		return nil, err
	}
	return analysis.Collect(s), nil
}
