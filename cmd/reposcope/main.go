// Package main provides the entry point for the reposcope CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/optqo/reposcope/cmd/reposcope/commands"
	"github.com/optqo/reposcope/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reposcope",
		Short: "Reposcope - heuristic source tree analysis",
		Long: `Reposcope analyzes a source tree with a set of heuristic tasks and
synthesizes the results into one report.

Commands:
  analyze   Run an analysis bundle against a directory
  tasks     List the available tasks and bundles`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewTasksCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "reposcope %s (commit: %s, built: %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}
