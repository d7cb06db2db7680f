package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/chronicle/internal/output"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List colour themes for HTML output",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range output.ThemeNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}
