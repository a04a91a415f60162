package commands

import (
	"fmt"

	"github.com/dyluth/architect/internal/scaffold"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [DIR]",
		Short: "Initialize a new Architect project",
		Long: `Initialize a new Architect project with default configuration and the
sample blueprint.

Creates:
  • architect.yml - Project configuration file
  • .architect/blueprint.json - The blueprint slot used by the file store

Use --force to reinitialize an existing project (WARNING: destroys the stored blueprint).`,
		Args: cobra.MaximumNArgs(1),
		// init must work even when an existing architect.yml is broken
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			useCommandOutput(cmd)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			if !force {
				if err := scaffold.CheckExisting(dir); err != nil {
					return err
				}
			}

			created, err := scaffold.Initialize(dir, force)
			if err != nil {
				return fmt.Errorf("initialization failed: %w", err)
			}

			scaffold.PrintSuccess(cmd.OutOrStdout(), created)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Force reinitialization (removes existing architect.yml and .architect/)")
	return cmd
}
