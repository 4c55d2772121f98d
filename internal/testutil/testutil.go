// Package testutil holds helpers shared by package tests: captured logging,
// ontology fixtures and temporary files.
package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dhimmel/disease-ontology/internal/ctxlog"
	"github.com/dhimmel/disease-ontology/internal/ontology"
	"github.com/dhimmel/disease-ontology/internal/term"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Context returns a context carrying a debug-level text logger that writes to
// the returned buffer. Set DOTOOL_TEST_LOGS=true to dump it after the test.
func Context(t *testing.T) (context.Context, *SafeBuffer) {
	t.Helper()

	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t.Cleanup(func() {
		if os.Getenv("DOTOOL_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})

	return ctxlog.WithLogger(context.Background(), logger), buf
}

// NewOntology builds an ontology holding the given terms, failing the test on
// a duplicate id.
func NewOntology(t *testing.T, terms ...*term.Term) *ontology.Ontology {
	t.Helper()

	o := ontology.New()
	for _, tm := range terms {
		require.NoError(t, o.Add(tm))
	}
	return o
}

// IsA is shorthand for a term with is_a relationships to each parent.
func IsA(id string, parents ...string) *term.Term {
	opts := make([]term.Option, 0, len(parents)+1)
	opts = append(opts, term.WithName(id))
	for _, p := range parents {
		opts = append(opts, term.WithRelationship(term.IsA, p, p))
	}
	return term.New(id, opts...)
}

// WriteFiles writes each name -> content pair below a fresh temporary
// directory, creating subdirectories as needed, and returns the directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// SampleOBO is a small Disease Ontology extract used across tests. It holds
// four active terms linked by is_a, one obsolete term and a typedef.
const SampleOBO = `format-version: 1.2
data-version: doid/releases/2025-01-31/doid.obo
ontology: doid
default-namespace: disease_ontology

[Term]
id: DOID:4
name: disease
def: "A disease is a disposition to undergo pathological processes." [url:http://www.ncbi.nlm.nih.gov/pubmed/19275762]
xref: MESH:D004194
subset: DO_AGR_slim

[Term]
id: DOID:0014667
name: disease of metabolism
def: "A disease that involving errors in metabolic processes." []
is_a: DOID:4 ! disease

[Term]
id: DOID:9351
name: diabetes mellitus
alt_id: DOID:10030
synonym: "diabetes" EXACT []
is_a: DOID:0014667 ! disease of metabolism
relationship: part_of DOID:4 ! disease

[Term]
id: DOID:9352
name: type 2 diabetes mellitus
synonym: "NIDDM" EXACT []
synonym: "adult-onset diabetes" RELATED [] {source="MESH"}
xref: ICD10CM:E11
xref: UMLS_CUI:C0011860
is_a: DOID:9351 ! diabetes mellitus

[Term]
id: DOID:8432
name: obsolete polycystic kidney disease
is_obsolete: true

[Typedef]
id: part_of
name: part of
is_transitive: true
`
