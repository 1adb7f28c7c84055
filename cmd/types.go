package cmd

import (
	"github.com/spf13/cobra"

	"github.com/natepiano/brp-mutate/internal/domain"
	m "github.com/natepiano/brp-mutate/internal/model"
)

// typesCmd represents the types command.
var typesCmd = newTypesCmd()
var typesExcludeFlags []string
var typesJSONFlag bool
var typesOfflineFlag bool

func newTypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List types in the remote registry",
		Long: `List every type registered with the remote application's reflection
registry. Types matching an exclude pattern are dropped from the listing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Types(cmd.Context(), domain.TypesArgs{
				Exclude: typesExcludeFlags,
				Offline: typesOfflineFlag,
				Reports: m.Path(cfg.Reports),
				JSON:    typesJSONFlag,
			})
		},
	}
	cmd.Flags().StringArrayVarP(&typesExcludeFlags, "exclude", "x", nil, "exclude types matching regex (can be repeated)")
	cmd.Flags().BoolVar(&typesJSONFlag, "json", false, "emit the listing as JSON")
	cmd.Flags().BoolVar(&typesOfflineFlag, "offline", false, "use the last saved snapshot instead of fetching")

	return cmd
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
