// Package graph provides an in-memory directed multigraph whose nodes are
// ontology terms and whose edges are typed relationships.
//
// # Why a Multigraph
//
// Two terms can be related in more than one way at once: a term may be both
// `is_a` and `part_of` the same parent. Each edge therefore carries a key (the
// relationship type) and an edge is identified by (from, to, key). Adding the
// same triple twice is a no-op; adding a second key between the same pair
// creates a second, distinct edge.
//
// # Edge Direction
//
// Edges point the way the ontology file states them: subject to object. For
// `is_a` this is from the more specific term to the more general one, so the
// roots of a hierarchy are the nodes without outgoing edges.
//
//	  DOID:9352 (type 2 diabetes) ──is_a──▶ DOID:9351 (diabetes mellitus)
//	                                              │
//	                                            is_a
//	                                              ▼
//	                                  DOID:2965 (glucose metabolism disease)
//
// # Cycle Detection
//
// DetectCycles runs a three-colour depth-first search over outgoing edges and
// reports one offending cycle as a *CycleError. IsAcyclic wraps it as a plain
// predicate so callers can inject it as a capability.
//
// # Thread-Safety
//
// All methods are safe for concurrent use. The graph is normally written once by
// the builder and then only read.
package graph
