package commands

import (
	"fmt"
	"os"

	"github.com/dyluth/architect/internal/printer"
	"github.com/dyluth/architect/internal/summary"
	"github.com/dyluth/architect/pkg/blueprint"
	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the stored blueprint with a JSON or YAML file",
		Long: `Replace the stored blueprint with the contents of FILE. Use "-" to read
from stdin. The file is validated before anything is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			incoming, err := readBlueprintFile(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			bp, err := a.edit(cmd.Context(), func(blueprint.Blueprint) (blueprint.Blueprint, error) {
				return incoming, nil
			})
			if err != nil {
				return err
			}

			printer.Success("Imported %s (%d actions)\n", bp.ProjectName, len(bp.Actions))
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [FILE]",
		Short: "Duplicate the stored blueprint to a JSON file",
		Long: `Write the stored blueprint to FILE. Without FILE the name is derived from
the project name, e.g. "growth-ops-copilot-blueprint.json". Use "-" for stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bp, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 1 && args[0] == "-" {
				return summary.FormatBlueprintJSON(cmd.OutOrStdout(), bp)
			}

			path := blueprint.ExportFileName(bp.ProjectName)
			if len(args) == 1 {
				path = args[0]
			}

			data, err := blueprint.Marshal(bp)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			printer.Success("Exported blueprint to %s\n", path)
			return nil
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Replace the stored blueprint with the sample blueprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			bp, err := s.Reset(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to reset blueprint: %w", err)
			}

			printer.Success("Reset blueprint to %s\n", bp.ProjectName)
			return nil
		},
	}
}
