package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/planalyze/pkg/domain/health"
)

var healthCmd = &cobra.Command{
	Use:   "health <plan-file>",
	Short: "Grade the plan across weighted quality dimensions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, _ := cmd.Flags().GetString("output")

		report, err := serviceForPlan(args[0]).CalculateHealth()
		if err != nil {
			return err
		}

		if outputFormat == "json" {
			return printJSON(report)
		}

		printHealth(report)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(healthCmd)
}

func printHealth(report *health.Report) {
	fmt.Println(headerStyle.Render("Plan Health"))
	fmt.Printf("\nGrade: %s\n", renderGrade(report.Grade, report.Score))

	fmt.Printf("\nFactors:\n")
	for _, f := range report.Factors {
		fmt.Printf("  %-25s %5.1f/100 (weight %2.0f)  %s\n", f.Name, f.Score, f.Weight, dimStyle.Render(f.Detail))
	}
}
