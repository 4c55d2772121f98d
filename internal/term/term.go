// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package term

import "slices"

// IsA is the relationship type of subsumption edges. It is the only type the
// Disease Ontology loader keeps by default.
const IsA = "is_a"

// Relationship is a directed, typed link from a term to another term,
// referenced by identifier. TargetName is informational only.
type Relationship struct {
	Type       string
	TargetID   string
	TargetName string
}

// Term represents one ontology concept.
type Term struct {
	ID            string
	Name          string
	Definition    string
	Synonyms      []string
	Relationships []Relationship
	Xrefs         []string
	AlternateIDs  []string
	Subsets       []string
	Obsolete      bool
}

// Option sets one field of a Term during construction.
type Option func(*Term)

// New creates a Term with the given identifier. Fields not set by an option
// keep their defaults: empty strings, empty slices and Obsolete == false.
// No validation is performed.
func New(id string, opts ...Option) *Term {
	t := &Term{
		ID:            id,
		Synonyms:      []string{},
		Relationships: []Relationship{},
		Xrefs:         []string{},
		AlternateIDs:  []string{},
		Subsets:       []string{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// WithName sets the human-readable label.
func WithName(name string) Option {
	return func(t *Term) { t.Name = name }
}

// WithDefinition sets the free-text definition.
func WithDefinition(def string) Option {
	return func(t *Term) { t.Definition = def }
}

// WithSynonyms appends synonyms, preserving order.
func WithSynonyms(synonyms ...string) Option {
	return func(t *Term) { t.Synonyms = append(t.Synonyms, synonyms...) }
}

// WithRelationship appends a single relationship triple.
func WithRelationship(relType, targetID, targetName string) Option {
	return func(t *Term) {
		t.Relationships = append(t.Relationships, Relationship{
			Type:       relType,
			TargetID:   targetID,
			TargetName: targetName,
		})
	}
}

// WithRelationships appends relationship triples, preserving order.
func WithRelationships(rels ...Relationship) Option {
	return func(t *Term) { t.Relationships = append(t.Relationships, rels...) }
}

// WithXrefs adds external cross-references. Duplicates are dropped.
func WithXrefs(xrefs ...string) Option {
	return func(t *Term) { t.Xrefs = appendUnique(t.Xrefs, xrefs...) }
}

// WithAlternateIDs adds identifiers historically used for this concept.
// Duplicates are dropped.
func WithAlternateIDs(ids ...string) Option {
	return func(t *Term) { t.AlternateIDs = appendUnique(t.AlternateIDs, ids...) }
}

// WithSubsets adds subset tags. Duplicates are dropped.
func WithSubsets(subsets ...string) Option {
	return func(t *Term) { t.Subsets = appendUnique(t.Subsets, subsets...) }
}

// WithObsolete sets the obsolete flag.
func WithObsolete(obsolete bool) Option {
	return func(t *Term) { t.Obsolete = obsolete }
}

// Key returns the identity of the term for graph purposes.
func (t *Term) Key() string {
	return t.ID
}

// RelationshipsOfType returns the relationships whose type is one of types.
// With no types given, all relationships are returned.
func (t *Term) RelationshipsOfType(types ...string) []Relationship {
	if len(types) == 0 {
		return slices.Clone(t.Relationships)
	}
	out := make([]Relationship, 0, len(t.Relationships))
	for _, r := range t.Relationships {
		if slices.Contains(types, r.Type) {
			out = append(out, r)
		}
	}
	return out
}

// String renders the term the way OBO comments reference it: "ID ! name".
func (t *Term) String() string {
	if t.Name == "" {
		return t.ID
	}
	return t.ID + " ! " + t.Name
}

// appendUnique appends values not already present in dst, in order.
func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}
