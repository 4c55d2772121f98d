// Package server exposes a built ontology graph over HTTP.
//
// A Server holds the current Snapshot behind an atomic pointer. Reload runs
// the configured build and swaps the snapshot in only when the build
// succeeds, so a broken edit to the OBO file never takes the API down. Watch
// drives Reload from filesystem events.
//
// Routes:
//
//	GET /health                    liveness, plain "OK"
//	GET /metrics                   Prometheus exposition
//	GET /stats                     term, node and edge counts, roots
//	GET /terms/{id}                one term with its outgoing edges
//	GET /terms/{id}/ancestors      ?type=is_a filters edge types
//	GET /terms/{id}/descendants
package server
