package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dhimmel/disease-ontology/internal/export"
	"github.com/dhimmel/disease-ontology/internal/ontology"
	"github.com/dhimmel/disease-ontology/internal/term"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// TermResponse is the body of GET /terms/{id}.
type TermResponse struct {
	export.Node
	AlternateIDs []string     `json:"alternate_ids,omitempty"`
	Parents      []ParentLink `json:"parents"`
	Requested    string       `json:"requested,omitempty"`
}

// ParentLink is one outgoing edge of a term.
type ParentLink struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// RelativesResponse is the body of the ancestors and descendants routes.
type RelativesResponse struct {
	ID    string   `json:"id"`
	Types []string `json:"types,omitempty"`
	IDs   []string `json:"ids"`
}

// StatsResponse is the body of GET /stats.
type StatsResponse struct {
	Terms    int             `json:"terms"`
	Obsolete int             `json:"obsolete"`
	Nodes    int             `json:"nodes"`
	Edges    int             `json:"edges"`
	Roots    []string        `json:"roots"`
	Leaves   int             `json:"leaves"`
	BuiltAt  time.Time       `json:"built_at"`
	Header   ontology.Header `json:"header,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler builds the chi router for the browse API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.instrument)

	r.Get("/health", s.healthHandler)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Get("/stats", s.statsHandler)
	r.Get("/terms/{id}", s.termHandler)
	r.Get("/terms/{id}/ancestors", s.ancestorsHandler)
	r.Get("/terms/{id}/descendants", s.descendantsHandler)
	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.Snapshot()
	if snap == nil {
		s.respondError(w, http.StatusServiceUnavailable, ErrNotReady.Error())
		return
	}

	resp := StatsResponse{
		Terms:    snap.Ontology.Len(),
		Obsolete: snap.Ontology.CountObsolete(),
		Nodes:    snap.Graph.NodeCount(),
		Edges:    snap.Graph.EdgeCount(),
		Roots:    snap.Graph.Roots(),
		Leaves:   len(snap.Graph.Leaves()),
		BuiltAt:  snap.BuiltAt,
		Header:   snap.Ontology.Header,
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) termHandler(w http.ResponseWriter, r *http.Request) {
	snap, t, ok := s.lookup(w, r)
	if !ok {
		return
	}

	resp := TermResponse{
		Node:         export.NewNode(t),
		AlternateIDs: t.AlternateIDs,
		Parents:      []ParentLink{},
	}
	if requested := chi.URLParam(r, "id"); requested != t.ID {
		resp.Requested = requested
	}
	parents, err := snap.Graph.Successors(t.ID)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	for _, pid := range parents {
		for _, key := range snap.Graph.EdgesBetween(t.ID, pid) {
			resp.Parents = append(resp.Parents, ParentLink{ID: pid, Type: key})
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) ancestorsHandler(w http.ResponseWriter, r *http.Request) {
	snap, t, ok := s.lookup(w, r)
	if !ok {
		return
	}
	types := r.URL.Query()["type"]
	ids, err := snap.Graph.Ancestors(t.ID, types...)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, RelativesResponse{ID: t.ID, Types: types, IDs: ids})
}

func (s *Server) descendantsHandler(w http.ResponseWriter, r *http.Request) {
	snap, t, ok := s.lookup(w, r)
	if !ok {
		return
	}
	types := r.URL.Query()["type"]
	ids, err := snap.Graph.Descendants(t.ID, types...)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, RelativesResponse{ID: t.ID, Types: types, IDs: ids})
}

// lookup resolves the {id} URL parameter against the served graph, falling
// back to alternate identifiers. It writes the error response itself.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*Snapshot, *term.Term, bool) {
	snap := s.Snapshot()
	if snap == nil {
		s.respondError(w, http.StatusServiceUnavailable, ErrNotReady.Error())
		return nil, nil, false
	}

	id := chi.URLParam(r, "id")
	if t, ok := snap.Graph.Node(id); ok {
		return snap, t, true
	}
	if alt, ok := snap.Ontology.ResolveAlternate(id); ok {
		if t, ok := snap.Graph.Node(alt.ID); ok {
			return snap, t, true
		}
	}
	s.respondError(w, http.StatusNotFound, fmt.Sprintf("term %q is not in the graph", id))
	return nil, nil, false
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Error: message})
}
