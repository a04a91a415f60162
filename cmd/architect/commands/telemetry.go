package commands

import (
	"fmt"
	"strconv"

	"github.com/dyluth/architect/internal/printer"
	"github.com/dyluth/architect/pkg/blueprint"
	"github.com/spf13/cobra"
)

func newTelemetryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "telemetry",
		Short: "Map captured events to destinations",
		Long: `Manage telemetry mappings. Events sharing a destination are shipped by one
sink node in the compiled workflow.`,
	}
	cmd.AddCommand(newTelemetryAddCmd(a), newTelemetryRemoveCmd(a))
	return cmd
}

func newTelemetryAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add CAPTURE DESTINATION",
		Short:   "Add a telemetry mapping",
		Example: `  architect telemetry add workflow.approved BigQuery`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			event := blueprint.TelemetryEvent{Capture: args[0], Destination: args[1]}
			bp, err := a.edit(cmd.Context(), func(bp blueprint.Blueprint) (blueprint.Blueprint, error) {
				return bp.AddTelemetry(event), nil
			})
			if err != nil {
				return err
			}

			printer.Success("Added telemetry %d: %s → %s\n", len(bp.Telemetry), event.Capture, event.Destination)
			return nil
		},
	}
}

func newTelemetryRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove NUMBER",
		Aliases: []string{"rm"},
		Short:   "Remove a telemetry mapping by its number in 'architect show'",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return printer.Error(
					"invalid telemetry number",
					fmt.Sprintf("Expected a positive number, got %q", args[0]),
					[]string{"List telemetry mappings:\n  architect show"},
				)
			}

			var removed blueprint.TelemetryEvent
			_, err = a.edit(cmd.Context(), func(bp blueprint.Blueprint) (blueprint.Blueprint, error) {
				if n <= len(bp.Telemetry) {
					removed = bp.Telemetry[n-1]
				}
				return bp.RemoveTelemetry(n - 1)
			})
			if err != nil {
				return err
			}

			printer.Success("Removed telemetry %s → %s\n", removed.Capture, removed.Destination)
			return nil
		},
	}
}
