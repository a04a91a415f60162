package commands

import (
	"fmt"
	"strings"

	"github.com/dyluth/architect/internal/compiler"
	"github.com/dyluth/architect/internal/filter"
	"github.com/dyluth/architect/internal/printer"
	"github.com/dyluth/architect/internal/summary"
	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		criteria   filter.Criteria
		jsonOutput bool
		prompt     string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Inspect the stored blueprint",
		Long: `Show the stored blueprint: headline stats, conversation hooks, the action
table, knowledge sources and telemetry mappings.

Action Filters:
  --title    - Filter by action title (glob pattern: "Publish*")
  --service  - Filter by service (case-insensitive exact match)
  --critical - Only critical actions

Examples:
  # Overview
  architect show

  # Only critical n8n nodes
  architect show --critical --service "n8n HTTP Request"

  # Full blueprint as JSON for piping to jq
  architect show --json | jq '.actions[].title'

  # Print a conversation prompt template (discovery, refine, handoff)
  architect show --prompt refine`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if prompt != "" {
				p, ok := summary.LookupPrompt(prompt)
				if !ok {
					ids := make([]string, 0, len(summary.PromptTemplates))
					for _, t := range summary.PromptTemplates {
						ids = append(ids, t.ID)
					}
					return printer.Error(
						"unknown prompt",
						fmt.Sprintf("Unknown prompt template: %s", prompt),
						[]string{"Valid prompts: " + strings.Join(ids, ", ")},
					)
				}
				summary.FormatPrompt(cmd.OutOrStdout(), p)
				return nil
			}

			bp, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if jsonOutput {
				return summary.FormatBlueprintJSON(w, bp)
			}

			name := bp.ProjectName
			if name == "" {
				name = compiler.UntitledProject
			}
			printer.Heading(name)
			summary.FormatStats(w, summary.HeroStats(bp))

			printer.Println()
			printer.Println("Hooks:")
			summary.FormatHooks(w, summary.TailoredHooks(bp))

			printer.Println()
			actions := bp.Actions
			if criteria.HasFilters() {
				actions = criteria.Apply(actions)
			}
			if _, err := summary.FormatTable(w, actions); err != nil {
				return err
			}

			printer.Println()
			if _, err := summary.FormatKnowledgeTable(w, bp.KnowledgeBase); err != nil {
				return err
			}

			printer.Println()
			if len(bp.Telemetry) == 0 {
				printer.Println("No telemetry configured")
				return nil
			}
			printer.Println("Telemetry:")
			for i, e := range bp.Telemetry {
				printer.Printf("  %d. %s → %s\n", i+1, e.Capture, e.Destination)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&criteria.TitleGlob, "title", "", "Filter actions by title (glob pattern)")
	cmd.Flags().StringVar(&criteria.Service, "service", "", "Filter actions by service (case-insensitive)")
	cmd.Flags().BoolVar(&criteria.CriticalOnly, "critical", false, "Only show critical actions")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the full blueprint as JSON")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Print a conversation prompt template")
	return cmd
}
