package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/natepiano/brp-mutate/internal/controller"
	"github.com/natepiano/brp-mutate/internal/domain"
	m "github.com/natepiano/brp-mutate/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Browse saved path analyses interactively",
		Long: `Open an interactive browser over the analyses saved under the
reports directory by previous "paths" runs. Select a path to inspect its
example, mutability verdict and variant requirements in detail.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !controller.IsTTY(os.Stdout) {
				return fmt.Errorf("view needs an interactive terminal; use 'paths --offline' for plain output")
			}

			return workflow.View(domain.ViewArgs{Reports: m.Path(cfg.Reports)})
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
