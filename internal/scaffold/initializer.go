package scaffold

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dyluth/architect/internal/config"
	"github.com/dyluth/architect/pkg/blueprint"
)

//go:embed templates/*
var templatesFS embed.FS

// StateDir holds the blueprint file of the default file-backed store.
const StateDir = ".architect"

// FileInfo represents a file to be created during initialization
type FileInfo struct {
	Path        string
	Content     []byte
	Permissions os.FileMode
}

// Initialize creates the Architect project structure in dir and returns the
// created paths relative to dir.
// If force is true, it will remove existing architect.yml and .architect/ directory
func Initialize(dir string, force bool) ([]string, error) {
	if force {
		if err := handleForce(dir); err != nil {
			return nil, err
		}
	}

	files, err := getTemplateFiles()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Join(dir, StateDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", StateDir, err)
	}

	if err := writeFiles(dir, files); err != nil {
		return nil, err
	}

	if err := validateCreatedFiles(dir); err != nil {
		return nil, err
	}

	created := make([]string, 0, len(files))
	for _, f := range files {
		created = append(created, f.Path)
	}
	return created, nil
}

// handleForce removes existing files if --force was specified
func handleForce(dir string) error {
	cfgPath := filepath.Join(dir, config.DefaultPath)
	if _, err := os.Stat(cfgPath); err == nil {
		if err := os.Remove(cfgPath); err != nil {
			return fmt.Errorf("failed to remove %s: %w", config.DefaultPath, err)
		}
	}

	stateDir := filepath.Join(dir, StateDir)
	if info, err := os.Stat(stateDir); err == nil && info.IsDir() {
		if err := os.RemoveAll(stateDir); err != nil {
			return fmt.Errorf("failed to remove %s/ directory: %w", StateDir, err)
		}
	}

	return nil
}

// getTemplateFiles returns the config template and a seeded default blueprint.
func getTemplateFiles() ([]FileInfo, error) {
	cfg, err := templatesFS.ReadFile("templates/architect.yml.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read %s template: %w", config.DefaultPath, err)
	}

	bp, err := blueprint.Marshal(blueprint.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to serialize default blueprint: %w", err)
	}

	return []FileInfo{
		{Path: config.DefaultPath, Content: cfg, Permissions: 0644},
		{Path: filepath.Join(StateDir, "blueprint.json"), Content: bp, Permissions: 0644},
	}, nil
}

func writeFiles(dir string, files []FileInfo) error {
	for _, file := range files {
		if err := os.WriteFile(filepath.Join(dir, file.Path), file.Content, file.Permissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Path, err)
		}
	}

	return nil
}

// validateCreatedFiles loads the written config and blueprint back through
// the same code paths the CLI uses.
func validateCreatedFiles(dir string) error {
	if _, err := config.Load(filepath.Join(dir, config.DefaultPath)); err != nil {
		return fmt.Errorf("created %s is invalid: %w", config.DefaultPath, err)
	}

	data, err := os.ReadFile(filepath.Join(dir, StateDir, "blueprint.json"))
	if err != nil {
		return fmt.Errorf("failed to read created blueprint: %w", err)
	}
	if _, err := blueprint.Parse(data); err != nil {
		return fmt.Errorf("created blueprint is invalid: %w", err)
	}

	return nil
}

// PrintSuccess prints the success message with created files
func PrintSuccess(w io.Writer, created []string) {
	fmt.Fprintln(w, "\n✅ Successfully initialized Architect project!")
	fmt.Fprintln(w, "\nCreated:")
	for _, path := range created {
		fmt.Fprintf(w, "  ✓ %s\n", filepath.ToSlash(path))
	}
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintf(w, "  1. Add '%s/' and 'dist/' to your .gitignore file\n", StateDir)
	fmt.Fprintln(w, "  2. Shape the blueprint with 'architect set', 'architect action add' and friends")
	fmt.Fprintln(w, "  3. Run 'architect compile' to write the workflow, technical doc and runbook")
}
