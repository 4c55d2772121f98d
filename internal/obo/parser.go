package obo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/dhimmel/disease-ontology/internal/ctxlog"
	"github.com/dhimmel/disease-ontology/internal/ontology"
	"github.com/dhimmel/disease-ontology/internal/term"
)

// maxLineSize bounds a single line; some def and xref lines are long.
const maxLineSize = 1 << 20

// SyntaxError reports a line the parser cannot interpret.
type SyntaxError struct {
	Line int
	Msg  string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// LoadDiseaseOntology parses the OBO file at path keeping only is_a
// relationships.
func LoadDiseaseOntology(ctx context.Context, path string) (*ontology.Ontology, error) {
	return ParseFile(ctx, path, []string{term.IsA})
}

// ParseFile opens path and parses it with Parse.
func ParseFile(ctx context.Context, path string, relationshipTypes []string) (*ontology.Ontology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ontology file: %w", err)
	}
	defer f.Close()

	o, err := Parse(ctxlog.With(ctx, "file", path), f, relationshipTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return o, nil
}

// Parse reads an OBO document. Only relationships whose type is listed in
// relationshipTypes are kept; an empty list keeps every relationship.
func Parse(ctx context.Context, r io.Reader, relationshipTypes []string) (*ontology.Ontology, error) {
	logger := ctxlog.FromContext(ctx)
	p := &parser{
		ont:  ontology.New(),
		keep: relationshipTypes,
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		p.line++
		if err := p.handleLine(ctx, scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read error after line %d: %w", p.line, err)
	}
	if err := p.flush(); err != nil {
		return nil, err
	}

	logger.Debug("OBO parsing complete.",
		"terms", p.ont.Len(),
		"obsolete", p.ont.CountObsolete(),
		"skipped_stanzas", p.skippedStanzas,
		"dropped_relationships", p.droppedRels,
	)
	return p.ont, nil
}

type section int

const (
	sectionHeader section = iota
	sectionTerm
	sectionOther
)

type parser struct {
	ont  *ontology.Ontology
	keep []string

	line    int
	section section
	current *term.Term
	// stanzaLine is where the current [Term] stanza started.
	stanzaLine int

	skippedStanzas int
	droppedRels    int
}

func (p *parser) handleLine(ctx context.Context, raw string) error {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "!") {
		return nil
	}

	if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.flush(); err != nil {
			return err
		}
		p.startStanza(line[1 : len(line)-1])
		return nil
	}

	tag, value, ok := strings.Cut(line, ":")
	if !ok {
		return &SyntaxError{Line: p.line, Msg: fmt.Sprintf("expected \"tag: value\", got %q", line)}
	}
	tag = strings.TrimSpace(tag)
	value = strings.TrimSpace(value)

	switch p.section {
	case sectionHeader:
		if _, seen := p.ont.Header[tag]; !seen {
			p.ont.Header[tag] = value
		}
	case sectionTerm:
		return p.handleTermTag(tag, value)
	}
	return nil
}

func (p *parser) startStanza(kind string) {
	if kind == "Term" {
		p.section = sectionTerm
		p.current = term.New("")
		p.stanzaLine = p.line
		return
	}
	p.section = sectionOther
	p.current = nil
	p.skippedStanzas++
}

// flush stores the term stanza in progress, if any.
func (p *parser) flush() error {
	if p.current == nil {
		return nil
	}
	t := p.current
	p.current = nil

	if t.ID == "" {
		return &SyntaxError{Line: p.stanzaLine, Msg: "[Term] stanza has no id"}
	}
	if err := p.ont.Add(t); err != nil {
		if errors.Is(err, ontology.ErrDuplicateTerm) {
			return &SyntaxError{Line: p.stanzaLine, Msg: err.Error()}
		}
		return err
	}
	return nil
}

func (p *parser) handleTermTag(tag, value string) error {
	t := p.current
	switch tag {
	case "id":
		t.ID = firstField(stripTrailing(value))
	case "name":
		t.Name = value
	case "def":
		text, err := unquote(value)
		if err != nil {
			return &SyntaxError{Line: p.line, Msg: "def: " + err.Error()}
		}
		t.Definition = text
	case "synonym":
		text, err := unquote(value)
		if err != nil {
			return &SyntaxError{Line: p.line, Msg: "synonym: " + err.Error()}
		}
		t.Synonyms = append(t.Synonyms, text)
	case "is_a":
		target, name := splitComment(value)
		p.addRelationship(term.IsA, firstField(target), name)
	case "relationship":
		target, name := splitComment(value)
		fields := strings.Fields(target)
		if len(fields) < 2 {
			return &SyntaxError{Line: p.line, Msg: fmt.Sprintf("relationship needs a type and a target, got %q", value)}
		}
		p.addRelationship(fields[0], fields[1], name)
	case "xref":
		if x := firstField(stripTrailing(value)); x != "" {
			term.WithXrefs(x)(t)
		}
	case "alt_id":
		if id := firstField(stripTrailing(value)); id != "" {
			term.WithAlternateIDs(id)(t)
		}
	case "subset":
		if s := firstField(stripTrailing(value)); s != "" {
			term.WithSubsets(s)(t)
		}
	case "is_obsolete":
		t.Obsolete = firstField(stripTrailing(value)) == "true"
	}
	return nil
}

func (p *parser) addRelationship(relType, targetID, targetName string) {
	if len(p.keep) > 0 && !slices.Contains(p.keep, relType) {
		p.droppedRels++
		return
	}
	term.WithRelationship(relType, targetID, targetName)(p.current)
}
