package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.hcl", "a.hcl", "notes.txt", "nested/c.hcl"} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	t.Run("directory is walked recursively and sorted", func(t *testing.T) {
		files, err := FindFilesByExtension(root, ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "a.hcl"),
			filepath.Join(root, "b.hcl"),
			filepath.Join(root, "nested", "c.hcl"),
		}, files)
	})

	t.Run("single matching file", func(t *testing.T) {
		files, err := FindFilesByExtension(filepath.Join(root, "a.hcl"), ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "a.hcl")}, files)
	})

	t.Run("single non-matching file", func(t *testing.T) {
		files, err := FindFilesByExtension(filepath.Join(root, "notes.txt"), ".hcl")
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := FindFilesByExtension(filepath.Join(root, "nope"), ".hcl")
		assert.ErrorContains(t, err, "error accessing path")
	})

	t.Run("glob pattern", func(t *testing.T) {
		files, err := FindFilesByExtension(filepath.Join(root, "**", "*.hcl"), ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "a.hcl"),
			filepath.Join(root, "b.hcl"),
			filepath.Join(root, "nested", "c.hcl"),
		}, files)
	})

	t.Run("glob filters by extension", func(t *testing.T) {
		files, err := FindFilesByExtension(filepath.Join(root, "*"), ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "a.hcl"), filepath.Join(root, "b.hcl")}, files)
	})

	t.Run("glob without matches", func(t *testing.T) {
		_, err := FindFilesByExtension(filepath.Join(root, "*.yaml"), ".hcl")
		assert.ErrorContains(t, err, "no .hcl files match pattern")
	})

	t.Run("empty extension panics", func(t *testing.T) {
		assert.Panics(t, func() { _, _ = FindFilesByExtension(root, "") })
	})
}
