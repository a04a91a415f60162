package commands

import (
	"fmt"
	"strings"

	"github.com/dyluth/architect/internal/printer"
	"github.com/dyluth/architect/internal/resolver"
	"github.com/dyluth/architect/pkg/blueprint"
	"github.com/spf13/cobra"
)

func newKnowledgeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knowledge",
		Short: "Add or remove knowledge sources",
	}
	cmd.AddCommand(newKnowledgeAddCmd(a), newKnowledgeRemoveCmd(a))
	return cmd
}

func newKnowledgeAddCmd(a *app) *cobra.Command {
	draft := blueprint.NewKnowledgeItem()
	var source string

	sources := make([]string, 0, len(blueprint.SourceTypes))
	for _, s := range blueprint.SourceTypes {
		sources = append(sources, string(s))
	}

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a knowledge source",
		Example: `  architect knowledge add --title "Pricing Sheet" --source airtable --access "Read-only API key"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft.SourceType = blueprint.SourceType(source)
			if err := draft.SourceType.Validate(); err != nil {
				return printer.Error(
					"invalid source type",
					err.Error(),
					[]string{"Valid sources: " + strings.Join(sources, ", ")},
				)
			}

			bp, err := a.edit(cmd.Context(), func(bp blueprint.Blueprint) (blueprint.Blueprint, error) {
				return bp.AddKnowledge(idGenerator, draft), nil
			})
			if err != nil {
				return err
			}

			id := bp.KnowledgeBase[len(bp.KnowledgeBase)-1].ID
			printer.Success("Added knowledge source %s (%s)\n", draft.Title, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Title, "title", draft.Title, "Source title")
	cmd.Flags().StringVar(&source, "source", string(draft.SourceType), fmt.Sprintf("Source type (%s)", strings.Join(sources, ", ")))
	cmd.Flags().StringVar(&draft.AccessDetails, "access", draft.AccessDetails, "How the assistant fetches this data")
	return cmd
}

func newKnowledgeRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a knowledge source",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.edit(cmd.Context(), func(bp blueprint.Blueprint) (blueprint.Blueprint, error) {
				id, err := resolver.ResolveKnowledgeID(bp, args[0])
				if err != nil {
					return blueprint.Blueprint{}, err
				}
				return bp.RemoveKnowledge(id)
			})
			if err != nil {
				return err
			}

			printer.Success("Removed knowledge source %s\n", args[0])
			return nil
		},
	}
}
