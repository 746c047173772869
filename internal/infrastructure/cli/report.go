package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/planalyze/pkg/application"
)

var reportCmd = &cobra.Command{
	Use:   "report <plan-file>",
	Short: "Run every analysis and print a combined report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, _ := cmd.Flags().GetString("output")

		report, err := serviceForPlan(args[0]).FullReport()
		if err != nil {
			return err
		}

		if outputFormat == "json" {
			return printJSON(report)
		}

		printReport(report)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(reportCmd)
}

func printReport(report *application.Report) {
	name := report.PlanID
	if report.PlanName != "" {
		name = report.PlanName
	}
	fmt.Printf("%s %s\n", headerStyle.Render("Plan Report"), dimStyle.Render(name+" "+report.ID))
	fmt.Println()

	printGraph(report.Graph)
	fmt.Println()
	printRisks(report.Risks)
	fmt.Println()
	printSchedule(report.Schedule)
	fmt.Println()
	printHealth(report.Health)
	fmt.Println()
	printDecompositions(report.Suggestions)
}
