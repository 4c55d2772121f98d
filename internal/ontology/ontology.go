// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package ontology provides the container that owns every Term parsed from one
// ontology file.
//
// Why a separate container?
//
// Terms reference each other by identifier only. Something has to own the
// complete, deduplicated set so those identifiers can be resolved; that is the
// Ontology. It is populated once by a parser and is read-only afterwards, so the
// graph builder and any number of readers can share it.
package ontology

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dhimmel/disease-ontology/internal/term"
)

var (
	// ErrTermNotFound is returned when a lookup names an identifier the
	// ontology does not hold.
	ErrTermNotFound = errors.New("term not found")
	// ErrDuplicateTerm is returned when a term is added twice.
	ErrDuplicateTerm = errors.New("duplicate term id")
	// ErrEmptyID is returned when a term without an identifier is added.
	ErrEmptyID = errors.New("term id is empty")
)

// Header carries the tag-value pairs that precede the first stanza of an
// ontology file (format-version, data-version, ontology, date, ...).
type Header map[string]string

// Ontology owns a collection of terms keyed by identifier. Reads are safe for
// concurrent use.
type Ontology struct {
	Header Header

	mu    sync.RWMutex
	order []*term.Term
	byID  map[string]*term.Term
	byAlt map[string]*term.Term
}

// New creates an empty ontology.
func New() *Ontology {
	return &Ontology{
		Header: Header{},
		byID:   make(map[string]*term.Term),
		byAlt:  make(map[string]*term.Term),
	}
}

// Add stores a term. The identifier must be non-empty and not yet present.
func (o *Ontology) Add(t *term.Term) error {
	if t.ID == "" {
		return ErrEmptyID
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if _, exists := o.byID[t.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTerm, t.ID)
	}
	o.byID[t.ID] = t
	o.order = append(o.order, t)
	for _, alt := range t.AlternateIDs {
		if _, taken := o.byAlt[alt]; !taken {
			o.byAlt[alt] = t
		}
	}
	return nil
}

// Terms returns every term in insertion order. The slice is a snapshot; the
// terms themselves are shared.
func (o *Ontology) Terms() []*term.Term {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make([]*term.Term, len(o.order))
	copy(out, o.order)
	return out
}

// Term returns the term with the given identifier, or an error wrapping
// ErrTermNotFound.
func (o *Ontology) Term(id string) (*term.Term, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	t, ok := o.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTermNotFound, id)
	}
	return t, nil
}

// ResolveAlternate finds the term that lists id as one of its alternate
// identifiers.
func (o *Ontology) ResolveAlternate(id string) (*term.Term, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	t, ok := o.byAlt[id]
	return t, ok
}

// Len returns the number of terms, obsolete ones included.
func (o *Ontology) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.order)
}

// CountObsolete returns how many held terms are flagged obsolete.
func (o *Ontology) CountObsolete() int {
	o.mu.RLock()
	defer o.mu.RUnlock()

	n := 0
	for _, t := range o.order {
		if t.Obsolete {
			n++
		}
	}
	return n
}
