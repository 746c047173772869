package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/planalyze/pkg/domain/decompose"
)

var decomposeCmd = &cobra.Command{
	Use:   "decompose <plan-file>",
	Short: "Suggest breakdowns for tasks that violate sizing or quality rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, _ := cmd.Flags().GetString("output")

		suggestions, err := serviceForPlan(args[0]).SuggestDecompositions()
		if err != nil {
			return err
		}

		if outputFormat == "json" {
			return printJSON(suggestions)
		}

		printDecompositions(suggestions)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(decomposeCmd)
}

func printDecompositions(suggestions []decompose.Suggestion) {
	fmt.Println(headerStyle.Render("Decomposition Suggestions"))

	if len(suggestions) == 0 {
		fmt.Println("\nAll tasks are within sizing and quality rules.")
		return
	}

	for _, s := range suggestions {
		fmt.Printf("\n%s %s\n", s.TaskID, dimStyle.Render("("+s.Reason+")"))
		for _, sub := range s.Subtasks {
			fmt.Printf("  - %-50s %3d min  %s\n", sub.Title, sub.EstimateMinutes, dimStyle.Render(string(sub.Priority)))
		}
	}
}
