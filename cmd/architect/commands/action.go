package commands

import (
	"strconv"

	"github.com/dyluth/architect/internal/printer"
	"github.com/dyluth/architect/internal/resolver"
	"github.com/dyluth/architect/pkg/blueprint"
	"github.com/spf13/cobra"
)

// idGenerator assigns IDs to entries created from the command line.
var idGenerator blueprint.IDGenerator = blueprint.UUIDGenerator{}

func newActionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action",
		Short: "Add, edit or remove workflow actions",
		Long: `Manage the ordered actions of the blueprint. Actions run in the order they
were added; IDs may be shortened to any unique prefix of at least 4 characters.`,
	}

	cmd.AddCommand(
		newActionAddCmd(a),
		newActionEditCmd(a),
		newActionRemoveCmd(a),
		newActionCriticalCmd(a),
	)
	return cmd
}

func newActionAddCmd(a *app) *cobra.Command {
	draft := blueprint.NewAction()

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append an action",
		Example: `  architect action add --title "Notify Finance" --service "Slack" --critical`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bp, err := a.edit(cmd.Context(), func(bp blueprint.Blueprint) (blueprint.Blueprint, error) {
				return bp.AddAction(idGenerator, draft), nil
			})
			if err != nil {
				return err
			}
			id := bp.Actions[len(bp.Actions)-1].ID

			printer.Success("Added action %s (%s) at position %d\n", draft.Title, id, len(bp.Actions))
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Title, "title", draft.Title, "Action title")
	cmd.Flags().StringVar(&draft.Service, "service", draft.Service, "Service that runs the action")
	cmd.Flags().StringVar(&draft.Description, "description", draft.Description, "What the action accomplishes")
	cmd.Flags().BoolVar(&draft.Critical, "critical", false, "Require human approval for this action")
	return cmd
}

func newActionEditCmd(a *app) *cobra.Command {
	var changes blueprint.Action

	cmd := &cobra.Command{
		Use:     "edit ID",
		Short:   "Change fields of an action",
		Example: `  architect action edit 3f2a --service "n8n HTTP Request"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			_, err := a.edit(cmd.Context(), func(bp blueprint.Blueprint) (blueprint.Blueprint, error) {
				id, err := resolver.ResolveActionID(bp, args[0])
				if err != nil {
					return blueprint.Blueprint{}, err
				}
				action, _ := bp.Action(id)
				if flags.Changed("title") {
					action.Title = changes.Title
				}
				if flags.Changed("service") {
					action.Service = changes.Service
				}
				if flags.Changed("description") {
					action.Description = changes.Description
				}
				if flags.Changed("critical") {
					action.Critical = changes.Critical
				}
				return bp.UpdateAction(action)
			})
			if err != nil {
				return err
			}

			printer.Success("Updated action %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&changes.Title, "title", "", "New title")
	cmd.Flags().StringVar(&changes.Service, "service", "", "New service")
	cmd.Flags().StringVar(&changes.Description, "description", "", "New description")
	cmd.Flags().BoolVar(&changes.Critical, "critical", false, "Require human approval")
	return cmd
}

func newActionRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove an action",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var title string
			_, err := a.edit(cmd.Context(), func(bp blueprint.Blueprint) (blueprint.Blueprint, error) {
				id, err := resolver.ResolveActionID(bp, args[0])
				if err != nil {
					return blueprint.Blueprint{}, err
				}
				action, _ := bp.Action(id)
				title = action.Title
				return bp.RemoveAction(id)
			})
			if err != nil {
				return err
			}

			printer.Success("Removed action %s\n", title)
			return nil
		},
	}
}

func newActionCriticalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "critical ID [true|false]",
		Short: "Mark an action as critical, or toggle it",
		Long: `Mark an action as critical. Without a value the flag is toggled.
The first critical action is followed by the human approval gate.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				explicit bool
				value    bool
			)
			if len(args) == 2 {
				v, err := strconv.ParseBool(args[1])
				if err != nil {
					return printer.Error("invalid value", "Expected true or false, got "+strconv.Quote(args[1]), nil)
				}
				explicit, value = true, v
			}

			var updated blueprint.Action
			_, err := a.edit(cmd.Context(), func(bp blueprint.Blueprint) (blueprint.Blueprint, error) {
				id, err := resolver.ResolveActionID(bp, args[0])
				if err != nil {
					return blueprint.Blueprint{}, err
				}
				updated, _ = bp.Action(id)
				if explicit {
					updated.Critical = value
				} else {
					updated.Critical = !updated.Critical
				}
				return bp.UpdateAction(updated)
			})
			if err != nil {
				return err
			}

			if updated.Critical {
				printer.Success("%s is now critical\n", updated.Title)
			} else {
				printer.Success("%s is no longer critical\n", updated.Title)
			}
			return nil
		},
	}
}
