// Package config reads analysis definitions from YAML and turns them into
// analyzers.
//
// A definitions file names char filters, token filters and analyzers:
//
//	char_filters:
//	  winpath: {type: mapping, mappings: {"\\": "/"}}
//	filters:
//	  autocomplete: {type: edge_ngram, min: 1, max: 20}
//	  sounds_like: {type: phonetic, algorithm: double_metaphone, inject: true}
//	analyzers:
//	  title:
//	    char_filters: [html_strip]
//	    tokenizer: standard
//	    filters: [lowercase, autocomplete]
//
// Analyzers may refer to the built-in components (see BuiltinFilters and
// friends) without defining them. A definition with a built-in's name
// replaces the built-in.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/sift/pkg/sift/internalerr"
)

// Analysis holds the definitions of one file.
type Analysis struct {
	CharFilters map[string]Component   `yaml:"char_filters"`
	Filters     map[string]Component   `yaml:"filters"`
	Analyzers   map[string]AnalyzerDef `yaml:"analyzers"`
}

// AnalyzerDef composes an analyzer from component names.
type AnalyzerDef struct {
	CharFilters []string `yaml:"char_filters"`
	Tokenizer   string   `yaml:"tokenizer"`
	Filters     []string `yaml:"filters"`
}

// Component is a typed definition. Its remaining keys are decoded by the
// factory of its type.
type Component struct {
	Type string
	node yaml.Node
}

func (c *Component) UnmarshalYAML(n *yaml.Node) error {
	var head struct {
		Type string `yaml:"type"`
	}
	if err := n.Decode(&head); err != nil {
		return err
	}
	c.Type = head.Type
	c.node = *n
	return nil
}

// Decode reads the component's parameters into v. Keys missing from the
// definition leave v's fields untouched, so callers pre-fill defaults. Keys
// v does not know are an error.
func (c Component) Decode(v any) error {
	if c.node.Kind == 0 {
		return nil
	}
	params := c.node
	if params.Kind == yaml.MappingNode {
		params.Content = nil
		for i := 0; i+1 < len(c.node.Content); i += 2 {
			if c.node.Content[i].Value == "type" {
				continue
			}
			params.Content = append(params.Content, c.node.Content[i], c.node.Content[i+1])
		}
	}
	data, err := yaml.Marshal(&params)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// LoadAnalysis reads definitions from a YAML file.
func LoadAnalysis(path string) (*Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	a, err := ParseAnalysis(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// ParseAnalysis decodes definitions.
func ParseAnalysis(data []byte) (*Analysis, error) {
	var a Analysis
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	for name, c := range a.CharFilters {
		if c.Type == "" {
			return nil, fmt.Errorf("%w: char filter %q has no type", internalerr.ErrInvalidConfig, name)
		}
	}
	for name, c := range a.Filters {
		if c.Type == "" {
			return nil, fmt.Errorf("%w: filter %q has no type", internalerr.ErrInvalidConfig, name)
		}
	}
	for name, def := range a.Analyzers {
		if def.Tokenizer == "" {
			return nil, fmt.Errorf("%w: analyzer %q has no tokenizer", internalerr.ErrInvalidConfig, name)
		}
	}
	return &a, nil
}
