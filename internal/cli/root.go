package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1
)

var rootCmd = &cobra.Command{
	Use:   "chronicle [owner/repo]",
	Short: "Render the commit history of a GitHub branch",
	Long: "Chronicle fetches every commit on a GitHub branch, oldest first, and renders\n" +
		"the messages and diffs as a single HTML, JSON or markdown document.",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTimeline,
}

// Run executes the root command and returns an exit code.
func Run() int {
	return execute(os.Args[1:])
}

func execute(args []string) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		return ExitFailure
	}
	return ExitSuccess
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print chronicle version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "chronicle version %s\n", version)
	},
}

func init() {
	addTimelineFlags(rootCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(versionCmd)
}
