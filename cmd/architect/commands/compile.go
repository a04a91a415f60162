package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dyluth/architect/internal/compiler"
	"github.com/dyluth/architect/internal/export"
	"github.com/dyluth/architect/internal/printer"
	"github.com/dyluth/architect/pkg/blueprint"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCompileCmd(a *app) *cobra.Command {
	var (
		outDir    string
		printName string
	)

	cmd := &cobra.Command{
		Use:   "compile [BLUEPRINT_FILE]",
		Short: "Compile the blueprint into workflow, document and runbook",
		Long: `Compile the blueprint into its three artefacts:

  workflow.json          n8n-style workflow graph
  technical-doc.md       markdown technical document
  operator-runbook.txt   plain-text operator runbook

Without BLUEPRINT_FILE the stored blueprint is compiled. A file may be JSON or
YAML; use "-" to read from stdin.

Examples:
  # Write all artefacts to the configured output directory
  architect compile

  # Print only the runbook
  architect compile --print runbook

  # Compile a blueprint file without touching the store
  architect compile concept.yaml --out build`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir != "" && printName != "" {
				return printer.Error(
					"conflicting flags",
					"--out and --print cannot be used together.",
					nil,
				)
			}

			var (
				bp  blueprint.Blueprint
				err error
			)
			if len(args) == 1 {
				bp, err = readBlueprintFile(cmd.InOrStdin(), args[0])
			} else {
				bp, err = a.load(cmd.Context())
			}
			if err != nil {
				return err
			}

			outputs := compiler.Compile(bp)

			if printName != "" {
				artifact, ok := export.Lookup(outputs, printName)
				if !ok {
					return printer.Error(
						"unknown artefact",
						fmt.Sprintf("Unknown artefact: %s", printName),
						[]string{fmt.Sprintf("Valid names: %s, %s", strings.Join(export.Aliases(), ", "), strings.Join(export.Names(), ", "))},
					)
				}
				_, err := io.WriteString(cmd.OutOrStdout(), artifact.Content)
				return err
			}

			dir := outDir
			if dir == "" {
				dir = a.cfg.Output.Dir
			}
			paths, err := export.WriteAll(dir, outputs)
			if err != nil {
				return err
			}

			a.logger.Debug("blueprint compiled", zap.String("project", bp.ProjectName), zap.String("dir", dir))
			for _, p := range paths {
				printer.Success("Wrote %s\n", p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (defaults to output.dir)")
	cmd.Flags().StringVarP(&printName, "print", "p", "", "Print one artefact to stdout: workflow, doc or runbook")
	return cmd
}

// readBlueprintFile parses a JSON or YAML blueprint from path, or stdin for "-".
func readBlueprintFile(stdin io.Reader, path string) (blueprint.Blueprint, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return blueprint.Blueprint{}, printer.Error(
			"cannot read blueprint",
			err.Error(),
			nil,
		)
	}

	bp, err := blueprint.Parse(data)
	if err != nil {
		return blueprint.Blueprint{}, printer.ErrorWithContext(
			"invalid blueprint",
			err.Error(),
			map[string]string{"file": path},
			[]string{"Blueprints are JSON or YAML; see 'architect export -' for an example"},
		)
	}
	return bp, nil
}
