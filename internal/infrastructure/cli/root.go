// Package cli implements the planalyze command-line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "planalyze",
	Version: Version,
	Short:   "Dependency analysis and scheduling heuristics for task plans",
	Long: `Planalyze inspects a plan of tasks and answers three questions:
1. Is the dependency structure sound (cycles, depth, bottlenecks)?
2. Where is the risk, and how should tasks be cut down or reordered?
3. How healthy is the plan overall?`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text or json)")
}
