package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/planalyze/pkg/domain/risk"
)

var risksCmd = &cobra.Command{
	Use:   "risks <plan-file>",
	Short: "Analyze the plan for scheduling and quality risks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, _ := cmd.Flags().GetString("output")

		analysis, err := serviceForPlan(args[0]).AnalyzeRisks()
		if err != nil {
			return err
		}

		if outputFormat == "json" {
			return printJSON(analysis)
		}

		printRisks(analysis)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(risksCmd)
}

func printRisks(analysis *risk.Analysis) {
	fmt.Println(headerStyle.Render("Risk Analysis"))
	fmt.Printf("\nOverall risk: %s (score %d/100)\n", renderSeverity(analysis.Level), analysis.Score)

	if len(analysis.Factors) > 0 {
		fmt.Printf("\nFactors (%d):\n", len(analysis.Factors))
		for _, f := range analysis.Factors {
			fmt.Printf("  [%s] %s %s\n", renderSeverity(f.Severity), f.Title, dimStyle.Render(f.ID))
			fmt.Printf("      %s\n", f.Description)
			fmt.Printf("      %s\n", dimStyle.Render("Mitigation: "+f.Mitigation))
			if len(f.TaskIDs) > 0 {
				fmt.Printf("      %s\n", dimStyle.Render("Tasks: "+strings.Join(f.TaskIDs, ", ")))
			}
		}
	}

	if len(analysis.Bottlenecks) > 0 {
		fmt.Printf("\nBottlenecks:\n")
		for _, b := range analysis.Bottlenecks {
			fmt.Printf("  %s (%s): %d dependents, blocking risk %.2f\n", b.TaskID, b.Title, b.DependentCount, b.BlockingRisk)
		}
	}

	fmt.Printf("\nRecommendations:\n")
	for _, rec := range analysis.Recommendations {
		fmt.Printf("  - %s\n", rec)
	}
}
