package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/natepiano/brp-mutate/internal/domain"
	m "github.com/natepiano/brp-mutate/internal/model"
)

// mutateCmd represents the mutate command.
var mutateCmd = newMutateCmd()
var mutateEntityFlag uint64

func newMutateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mutate <type> <path> <value>",
		Short: "Apply a mutation to a live component or resource",
		Long: `Send a mutation request for the given type at the given path. The
value argument is parsed as JSON; pass --entity to target a component on a
specific entity, otherwise the type is treated as a global resource.

Examples:
  brp-mutate mutate --entity 4294967296 \
      bevy_transform::components::transform::Transform .translation.x 1.5
  brp-mutate mutate my_game::settings::Settings .volume 0.8`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value any
			if err := json.Unmarshal([]byte(args[2]), &value); err != nil {
				return fmt.Errorf("parse value %q: %w", args[2], err)
			}

			mutateArgs := domain.MutateArgs{
				Type:  m.TypeName(args[0]),
				Path:  args[1],
				Value: value,
			}
			if cmd.Flags().Changed("entity") {
				entity := mutateEntityFlag
				mutateArgs.Entity = &entity
			}

			return workflow.Mutate(cmd.Context(), mutateArgs)
		},
	}
	cmd.Flags().Uint64VarP(&mutateEntityFlag, "entity", "e", 0, "entity id holding the component (omit for resources)")

	return cmd
}

func init() {
	rootCmd.AddCommand(mutateCmd)
}
