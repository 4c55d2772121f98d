// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package term defines the Term value object: one concept of an ontology
// together with its metadata and its outgoing, typed relationships.
//
// Why identifiers instead of pointers?
//
// A Term never holds a handle to another Term. Each Relationship stores the
// target's identifier, and the target is resolved only when a graph is built,
// through the container that owns every Term. This keeps ownership flat: the
// ontology container is the single owner, and the in-memory object graph has no
// cycles even when the ontology it describes is malformed and does.
//
// Why functional options?
//
// Terms are built once by a parser and never mutated afterwards. The New
// constructor takes the required identifier positionally and every other field
// through a typed Option, so an unknown or misspelled field is a compile error
// and an omitted field always has a documented default.
package term
