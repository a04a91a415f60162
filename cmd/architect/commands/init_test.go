package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand(t *testing.T) {
	t.Run("creates project files", func(t *testing.T) {
		dir := t.TempDir()
		out, _, err := runCLI(t, "init", dir)
		require.NoError(t, err)

		assert.Contains(t, out, "Successfully initialized Architect project!")
		assert.FileExists(t, filepath.Join(dir, "architect.yml"))
		assert.FileExists(t, filepath.Join(dir, ".architect", "blueprint.json"))
	})

	t.Run("refuses to overwrite an existing project", func(t *testing.T) {
		dir := t.TempDir()
		_, _, err := runCLI(t, "init", dir)
		require.NoError(t, err)

		_, _, err = runCLI(t, "init", dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "project already initialized")
	})

	t.Run("force reinitializes a broken project", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, writeFile(filepath.Join(dir, "architect.yml"), "version: [broken"))

		_, _, err := runCLI(t, "--config", filepath.Join(dir, "architect.yml"), "init", "--force", dir)
		require.NoError(t, err)
	})
}
