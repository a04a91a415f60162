// Package export names the compiled artefacts and writes them to disk.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/architect/internal/compiler"
)

// Artefact file names.
const (
	WorkflowFile = "workflow.json"
	DocFile      = "technical-doc.md"
	RunbookFile  = "operator-runbook.txt"
)

// Artifact is one downloadable output.
type Artifact struct {
	Name     string
	MIMEType string
	Content  string
}

type kind struct {
	name     string
	mimeType string
	alias    string
	content  func(compiler.Outputs) string
}

var kinds = []kind{
	{WorkflowFile, "application/json", "workflow", func(o compiler.Outputs) string { return o.WorkflowGraph }},
	{DocFile, "text/markdown", "doc", func(o compiler.Outputs) string { return o.TechnicalDoc }},
	{RunbookFile, "text/plain", "runbook", func(o compiler.Outputs) string { return o.Runbook }},
}

// Names lists the artefact file names in export order.
func Names() []string {
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.name)
	}
	return names
}

// Aliases lists the short names accepted by Lookup, in export order.
func Aliases() []string {
	aliases := make([]string, 0, len(kinds))
	for _, k := range kinds {
		aliases = append(aliases, k.alias)
	}
	return aliases
}

// Artifacts returns the three artefacts in fixed order.
func Artifacts(o compiler.Outputs) []Artifact {
	out := make([]Artifact, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, Artifact{Name: k.name, MIMEType: k.mimeType, Content: k.content(o)})
	}
	return out
}

// Lookup returns the artefact with the given file name or short alias
// ("workflow", "doc", "runbook").
func Lookup(o compiler.Outputs, name string) (Artifact, bool) {
	for _, k := range kinds {
		if name == k.name || name == k.alias {
			return Artifact{Name: k.name, MIMEType: k.mimeType, Content: k.content(o)}, true
		}
	}
	return Artifact{}, false
}

// WriteAll writes every artefact into dir, creating it if needed, and returns
// the written paths in export order.
func WriteAll(dir string, o compiler.Outputs) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	paths := make([]string, 0, len(kinds))
	for _, a := range Artifacts(o) {
		path := filepath.Join(dir, a.Name)
		if err := os.WriteFile(path, []byte(a.Content), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
