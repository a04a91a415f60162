package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dyluth/architect/pkg/blueprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportAndImport(t *testing.T) {
	src := setupProject(t)
	_, _, err := runCLI(t, "--config", src, "set", "project_name", "Partner Onboarding")
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "copy.json")
	out, _, err := runCLI(t, "--config", src, "export", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported blueprint to "+file)

	dst := setupProject(t)
	out, _, err = runCLI(t, "--config", dst, "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported Partner Onboarding (4 actions)")
	assert.Equal(t, storedBlueprint(t, src), storedBlueprint(t, dst))
}

func TestExportCommand_DefaultFileName(t *testing.T) {
	cfgPath := setupProject(t)

	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	_, _, err = runCLI(t, "--config", cfgPath, "export")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "growth-ops-copilot-blueprint.json"))
}

func TestExportCommand_Stdout(t *testing.T) {
	cfgPath := setupProject(t)

	out, _, err := runCLI(t, "--config", cfgPath, "export", "-")
	require.NoError(t, err)
	assert.Equal(t, blueprint.Default(), mustParse(t, out))
}

func TestImportCommand_RejectsInvalidFile(t *testing.T) {
	cfgPath := setupProject(t)
	file := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, writeFile(file, "memory:\n  strategy: floppy\n"))

	_, _, err := runCLI(t, "--config", cfgPath, "import", file)
	require.Error(t, err)
	assert.Equal(t, blueprint.Default(), storedBlueprint(t, cfgPath))

	_, _, err = runCLI(t, "--config", cfgPath, "import", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Equal(t, "cannot read blueprint", err.Error())
}

func TestResetCommand(t *testing.T) {
	cfgPath := setupProject(t)
	_, _, err := runCLI(t, "--config", cfgPath, "action", "remove", "action-intake")
	require.NoError(t, err)

	out, _, err := runCLI(t, "--config", cfgPath, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset blueprint to Growth Ops Copilot")
	assert.Equal(t, blueprint.Default(), storedBlueprint(t, cfgPath))
}
