package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhimmel/disease-ontology/internal/config"
	"github.com/dhimmel/disease-ontology/internal/term"
	"github.com/dhimmel/disease-ontology/internal/testutil"
)

// setupAppTest writes obo to a temporary file and creates an app reading it
// with is_a and part_of kept. It returns the app, its command output and its
// debug log.
func setupAppTest(t *testing.T, obo string) (*App, *bytes.Buffer, *testutil.SafeBuffer) {
	t.Helper()

	dir := testutil.WriteFiles(t, map[string]string{"doid.obo": obo})
	cfg := config.Default()
	cfg.OntologyPath = filepath.Join(dir, "doid.obo")
	cfg.Relationships = []string{term.IsA, "part_of"}
	cfg.LogLevel = "debug"

	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	testApp := NewApp(out, logs, &cfg)

	t.Cleanup(func() {
		if os.Getenv("DOTOOL_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return testApp, out, logs
}
