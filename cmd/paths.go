package cmd

import (
	"github.com/spf13/cobra"

	"github.com/natepiano/brp-mutate/internal/domain"
	m "github.com/natepiano/brp-mutate/internal/model"
)

// pathsCmd represents the paths command.
var pathsCmd = newPathsCmd()
var pathsParallelFlag int
var pathsJSONFlag bool
var pathsOfflineFlag bool

func newPathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths <type>...",
		Short: "Compute mutation paths for one or more types",
		Long: `Compute every valid mutation path into the given fully-qualified
types: nested fields, tuple positions, sequence elements and enum variant
interiors, each with a JSON example value, a mutability verdict and the
ancestor variant choices it depends on.

Examples:
  brp-mutate paths bevy_transform::components::transform::Transform
  brp-mutate paths --json my_game::shapes::Shape my_game::ui::Theme`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Paths(cmd.Context(), domain.PathsArgs{
				Types:    parseTypes(args),
				Parallel: pathsParallelFlag,
				JSON:     pathsJSONFlag,
				Offline:  pathsOfflineFlag,
				Reports:  m.Path(cfg.Reports),
			})
		},
	}
	cmd.Flags().IntVarP(&pathsParallelFlag, "parallel", "p", 1, "number of types analyzed in parallel")
	cmd.Flags().BoolVar(&pathsJSONFlag, "json", false, "emit the full path map as JSON")
	cmd.Flags().BoolVar(&pathsOfflineFlag, "offline", false, "use the last saved snapshot instead of fetching")

	return cmd
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
