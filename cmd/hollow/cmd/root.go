// Package cmd implements the hollow CLI's cobra command tree, one file
// per subcommand, following the teacher CLI's layout.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hollow",
	Short: "Evaluate and manifest Hollow configuration documents",
}

// Execute runs the CLI, returning any error for main to report.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(evalCmd)
}
