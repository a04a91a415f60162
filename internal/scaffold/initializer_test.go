package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dyluth/architect/internal/config"
	"github.com/dyluth/architect/pkg/blueprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name      string
		force     bool
		setupFunc func(t *testing.T, dir string)
	}{
		{
			name:      "fresh initialization",
			setupFunc: func(t *testing.T, dir string) {},
		},
		{
			name:  "force initialization removes existing files",
			force: true,
			setupFunc: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultPath), []byte("old content"), 0644))
				require.NoError(t, os.MkdirAll(filepath.Join(dir, StateDir), 0755))
				require.NoError(t, os.WriteFile(filepath.Join(dir, StateDir, "stale.json"), []byte("old"), 0644))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setupFunc(t, dir)

			created, err := Initialize(dir, tt.force)
			require.NoError(t, err)
			assert.Equal(t, []string{config.DefaultPath, filepath.Join(StateDir, "blueprint.json")}, created)

			cfg, err := config.Load(filepath.Join(dir, config.DefaultPath))
			require.NoError(t, err)
			assert.Equal(t, config.Default(), cfg, "template should match built-in defaults")

			data, err := os.ReadFile(filepath.Join(dir, StateDir, "blueprint.json"))
			require.NoError(t, err)
			bp, err := blueprint.Parse(data)
			require.NoError(t, err)
			assert.Equal(t, blueprint.Default(), bp)

			if tt.force {
				assert.NoFileExists(t, filepath.Join(dir, StateDir, "stale.json"))
			}
		})
	}
}

func TestHandleForce(t *testing.T) {
	t.Run("nothing to remove", func(t *testing.T) {
		assert.NoError(t, handleForce(t.TempDir()))
	})

	t.Run("removes config and state", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultPath), []byte("x"), 0644))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, StateDir, "nested"), 0755))

		require.NoError(t, handleForce(dir))
		assert.NoFileExists(t, filepath.Join(dir, config.DefaultPath))
		assert.NoDirExists(t, filepath.Join(dir, StateDir))
	})

	t.Run("leaves unrelated files alone", func(t *testing.T) {
		dir := t.TempDir()
		keep := filepath.Join(dir, "notes.md")
		require.NoError(t, os.WriteFile(keep, []byte("keep"), 0644))

		require.NoError(t, handleForce(dir))
		assert.FileExists(t, keep)
	})
}

func TestGetTemplateFiles(t *testing.T) {
	files, err := getTemplateFiles()
	require.NoError(t, err)
	require.Len(t, files, 2)

	for _, f := range files {
		assert.NotEmpty(t, f.Content, f.Path)
		assert.Equal(t, os.FileMode(0644), f.Permissions, f.Path)
	}
	assert.Contains(t, string(files[0].Content), `version: "1.0"`)
}

func TestValidateCreatedFiles(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultPath), []byte("version: \"9\"\n"), 0644))

		err := validateCreatedFiles(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "created architect.yml is invalid")
	})

	t.Run("missing blueprint", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultPath), []byte("version: \"1.0\"\n"), 0644))

		err := validateCreatedFiles(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read created blueprint")
	})
}

func TestPrintSuccess(t *testing.T) {
	var buf bytes.Buffer
	PrintSuccess(&buf, []string{config.DefaultPath, filepath.Join(StateDir, "blueprint.json")})

	out := buf.String()
	assert.Contains(t, out, "Successfully initialized Architect project!")
	assert.Contains(t, out, "  ✓ architect.yml\n")
	assert.Contains(t, out, "  ✓ .architect/blueprint.json\n")
	assert.Contains(t, out, "architect compile")
}
