package commands

import (
	"strings"

	"github.com/dyluth/architect/internal/printer"
	"github.com/dyluth/architect/pkg/blueprint"
	"github.com/spf13/cobra"
)

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set FIELD VALUE",
		Short: "Set a scalar field of the blueprint",
		Long: `Set a scalar field of the stored blueprint.

Fields:
  ` + strings.Join(blueprint.Fields, "\n  ") + `

Checkpoints are a '|' separated list. Setting trigger.command_syntax to ""
removes it.

Examples:
  architect set project_name "Partner Onboarding"
  architect set trigger.type webhook
  architect set human_in_loop.checkpoints "Legal | Ops Lead"`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: blueprint.Fields,
		RunE: func(cmd *cobra.Command, args []string) error {
			field, value := args[0], args[1]

			_, err := a.edit(cmd.Context(), func(bp blueprint.Blueprint) (blueprint.Blueprint, error) {
				updated, err := bp.Set(field, value)
				if err != nil && !blueprint.IsValidationError(err) {
					return blueprint.Blueprint{}, printer.Error("cannot set "+field, err.Error(), nil)
				}
				return updated, err
			})
			if err != nil {
				return err
			}

			printer.Success("Set %s\n", field)
			return nil
		},
	}
}
