/*
Package builder converts an ontology into a directed multigraph of its active
terms. It acts as the bridge between the parsed term collection (the 'ontology'
package) and the traversal/analysis layer (the 'graph' package).

The primary artifact produced by this package is a validated *graph.MultiDiGraph.

The graph construction is a multi-phase process:

 1. Node Selection: The builder iterates through the ontology's terms and adds a
    node for every term that is not flagged obsolete. Obsolete terms contribute
    neither a node nor an edge.

 2. Relationship Linking: For each selected term, every relationship triple becomes
    one directed edge from the term to the triple's target, keyed by the
    relationship type. The target is resolved through the ontology's lookup; a
    target that is missing, or present but obsolete, aborts the build with an
    *UnresolvedReferenceError.

 3. Validation: Once all edges are in place, the builder runs the acyclicity check.
    A cycle aborts the build with a *CycleViolationError; no repair is attempted.

Every call is a single, stateless pass. On failure no graph is returned.
*/
package builder
