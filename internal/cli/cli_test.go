package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhimmel/disease-ontology/internal/builder"
	"github.com/dhimmel/disease-ontology/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	danglingOBO = "[Term]\nid: DOID:1\nname: a\nis_a: DOID:2\n"
	cyclicOBO   = "[Term]\nid: DOID:1\nname: a\nis_a: DOID:2\n\n[Term]\nid: DOID:2\nname: b\nis_a: DOID:1\n"
)

// execute runs the command tree and returns its output, its logs and the
// error it finished with.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	err := Execute(context.Background(), args, out, logs)
	return out.String(), logs.String(), err
}

func writeOBO(t *testing.T, content string) string {
	t.Helper()
	dir := testutil.WriteFiles(t, map[string]string{"doid.obo": content})
	return filepath.Join(dir, "doid.obo")
}

func requireExitCode(t *testing.T, err error, code int) *ExitError {
	t.Helper()
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, code, exitErr.Code, "unexpected exit code for %q", exitErr.Message)
	return exitErr
}

func TestExecute_Help(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "ancestors")
	assert.Contains(t, out, "--relationship")
}

func TestExecute_Build(t *testing.T) {
	path := writeOBO(t, testutil.SampleOBO)

	t.Run("is_a only by default", func(t *testing.T) {
		out, _, err := execute(t, "build", "--obo", path)
		require.NoError(t, err)
		assert.Contains(t, out, "nodes:     4\n")
		assert.Contains(t, out, "edges:     3\n")
		assert.NotContains(t, out, "part_of")
	})

	t.Run("repeatable relationship flag", func(t *testing.T) {
		out, _, err := execute(t, "build", "--obo", path, "-r", "is_a", "-r", "part_of")
		require.NoError(t, err)
		assert.Contains(t, out, "edges:     4\n")
		assert.Contains(t, out, "  part_of: 1\n")
	})

	t.Run("json logs", func(t *testing.T) {
		_, logs, err := execute(t, "build", "--obo", path, "--log-format", "JSON")
		require.NoError(t, err)
		assert.Contains(t, logs, `"msg":"Ontology graph built."`)
	})
}

func TestExecute_Relatives(t *testing.T) {
	path := writeOBO(t, testutil.SampleOBO)

	out, _, err := execute(t, "ancestors", "DOID:9352", "--obo", path)
	require.NoError(t, err)
	assert.Equal(t, "DOID:0014667 ! disease of metabolism\nDOID:4 ! disease\nDOID:9351 ! diabetes mellitus\n", out)

	out, _, err = execute(t, "descendants", "DOID:9351", "--obo", path)
	require.NoError(t, err)
	assert.Equal(t, "DOID:9352 ! type 2 diabetes mellitus\n", out)

	out, _, err = execute(t, "ancestors", "DOID:9351", "--obo", path, "-r", "is_a,part_of", "--type", "part_of")
	require.NoError(t, err)
	assert.Equal(t, "DOID:4 ! disease\n", out)
}

func TestExecute_Export(t *testing.T) {
	path := writeOBO(t, testutil.SampleOBO)

	t.Run("yaml to stdout", func(t *testing.T) {
		out, _, err := execute(t, "export", "--obo", path, "--format", "yaml")
		require.NoError(t, err)

		var doc struct {
			Nodes []map[string]any `yaml:"nodes"`
			Edges []map[string]any `yaml:"edges"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
		assert.Len(t, doc.Nodes, 4)
		assert.Len(t, doc.Edges, 3)
	})

	t.Run("json to file", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "graph.json")
		out, _, err := execute(t, "export", "--obo", path, "-o", target)
		require.NoError(t, err)
		assert.Empty(t, out)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"source": "DOID:9352"`)
	})
}

func TestExecute_ConfigFile(t *testing.T) {
	path := writeOBO(t, testutil.SampleOBO)
	dir := testutil.WriteFiles(t, map[string]string{
		"dotool.hcl": `
ontology "doid" {
  path          = "` + path + `"
  relationships = ["is_a", "part_of"]
}
`,
	})

	out, _, err := execute(t, "build", "--config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "edges:     4\n")

	out, _, err = execute(t, "build", "--config", dir, "--relationship", "is_a")
	require.NoError(t, err)
	assert.Contains(t, out, "edges:     3\n", "flags override the config file")
}

func TestExecute_ExitCodes(t *testing.T) {
	sample := writeOBO(t, testutil.SampleOBO)
	dangling := writeOBO(t, danglingOBO)
	cyclic := writeOBO(t, cyclicOBO)

	tests := []struct {
		name    string
		args    []string
		code    int
		wantMsg string
	}{
		{"unknown command", []string{"frobnicate"}, ExitUsage, "unknown command"},
		{"unknown flag", []string{"build", "--bogus"}, ExitUsage, "unknown flag"},
		{"missing id", []string{"ancestors", "--obo", sample}, ExitUsage, "accepts 1 arg"},
		{"missing obo path", []string{"build"}, ExitUsage, "OntologyPath is required"},
		{"bad log level", []string{"build", "--obo", sample, "--log-level", "loud"}, ExitUsage, "LogLevel must be one of"},
		{"bad export format", []string{"export", "--obo", sample, "-f", "xml"}, ExitUsage, "unsupported export format"},
		{"missing config", []string{"build", "--config", filepath.Join(t.TempDir(), "nope.hcl")}, ExitUsage, "error accessing path"},
		{"missing obo file", []string{"build", "--obo", filepath.Join(t.TempDir(), "nope.obo")}, ExitRuntime, "nope.obo"},
		{"unknown term", []string{"ancestors", "DOID:0", "--obo", sample}, ExitRuntime, "node not found"},
		{"unresolved reference", []string{"build", "--obo", dangling}, ExitUnresolved, "is_a target DOID:2 is not found"},
		{"cycle", []string{"build", "--obo", cyclic}, ExitCycle, "contains a cycle"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := execute(t, tc.args...)
			exitErr := requireExitCode(t, err, tc.code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}

func TestExitError_UnwrapsBuildErrors(t *testing.T) {
	_, _, err := execute(t, "build", "--obo", writeOBO(t, cyclicOBO))
	assert.True(t, errors.Is(err, builder.ErrCycle))
}
