package commands

import (
	"fmt"
	"os"

	"github.com/dyluth/architect/internal/config"
	"github.com/dyluth/architect/internal/printer"
	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

// newRootCmd builds the full command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "architect",
		Short: "Architect - compile automation blueprints into n8n workflows",
		Long: `Architect keeps one automation blueprint per workspace and compiles it into
three artefacts: an n8n-style workflow graph (workflow.json), a markdown
technical document and a plain-text operator runbook.

The blueprint lives in a local file or in Redis, selected in architect.yml.`,
		// Show help instead of silently succeeding, e.g. "architect --out dist"
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "f", config.DefaultPath, "Path to the project configuration")

	cmd.AddCommand(
		newInitCmd(),
		newCompileCmd(a),
		newShowCmd(a),
		newSetCmd(a),
		newActionCmd(a),
		newKnowledgeCmd(a),
		newTelemetryCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newResetCmd(a),
		newWatchCmd(a),
		newServeCmd(a),
	)
	return cmd
}

// Execute runs the root command and prints any error.
// This is called by main.main().
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !printer.IsReported(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// useCommandOutput points the printer at the command's writers so tests can
// capture everything the CLI prints.
func useCommandOutput(cmd *cobra.Command) {
	printer.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
}
