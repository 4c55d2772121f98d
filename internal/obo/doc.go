// Package obo reads ontologies in the OBO 1.2/1.4 flat-file format into an
// ontology.Ontology.
//
// Only what the term model needs is interpreted: header tag-value pairs, and
// from each [Term] stanza the id, name, def, synonym, is_a, relationship, xref,
// alt_id, subset and is_obsolete tags. Other stanza types ([Typedef],
// [Instance]) and unknown tags are skipped. Trailing `{...}` qualifier blocks
// and `! comment` suffixes are removed before a value is read.
//
// Relationship filtering happens here, not in the graph builder: the caller
// names the relationship types to retain (is_a lines count as type "is_a") and
// every other triple is dropped while parsing.
package obo
