// Package export serializes a built ontology graph as a node/edge document in
// JSON or YAML.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dhimmel/disease-ontology/internal/graph"
	"github.com/dhimmel/disease-ontology/internal/term"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q: must be 'json' or 'yaml'", s)
	}
}

// Node is the serialized form of one term.
type Node struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Definition string   `json:"definition,omitempty" yaml:"definition,omitempty"`
	Synonyms   []string `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`
	Xrefs      []string `json:"xrefs,omitempty" yaml:"xrefs,omitempty"`
	Subsets    []string `json:"subsets,omitempty" yaml:"subsets,omitempty"`
}

// Document is the top-level serialized graph.
type Document struct {
	Nodes []Node       `json:"nodes" yaml:"nodes"`
	Edges []graph.Edge `json:"edges" yaml:"edges"`
}

// NewDocument snapshots g. Nodes and edges are sorted.
func NewDocument(g *graph.MultiDiGraph) *Document {
	terms := g.Nodes()
	doc := &Document{
		Nodes: make([]Node, 0, len(terms)),
		Edges: g.Edges(),
	}
	for _, t := range terms {
		doc.Nodes = append(doc.Nodes, NewNode(t))
	}
	return doc
}

// NewNode converts a term to its serialized form.
func NewNode(t *term.Term) Node {
	return Node{
		ID:         t.ID,
		Name:       t.Name,
		Definition: t.Definition,
		Synonyms:   t.Synonyms,
		Xrefs:      t.Xrefs,
		Subsets:    t.Subsets,
	}
}

// Write encodes g to w in the given format.
func Write(w io.Writer, g *graph.MultiDiGraph, format Format) error {
	doc := NewDocument(g)

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode graph as json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode graph as yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to flush yaml encoder: %w", err)
		}
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
	return nil
}
