package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/planalyze/pkg/domain/schedule"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <plan-file>",
	Short: "Estimate the parallelized schedule and suggest reorderings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, _ := cmd.Flags().GetString("output")

		opt, err := serviceForPlan(args[0]).OptimizeSchedule()
		if err != nil {
			return err
		}

		if outputFormat == "json" {
			return printJSON(opt)
		}

		printSchedule(opt)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(scheduleCmd)
}

func printSchedule(opt *schedule.Optimization) {
	fmt.Println(headerStyle.Render("Schedule Optimization"))
	fmt.Printf("\nSerial estimate:       %.1fh (%.1f workdays)\n", opt.Original.Hours, opt.Original.Days)
	fmt.Printf("Parallelized estimate: %.1fh (%.1f workdays)\n", opt.Optimized.Hours, opt.Optimized.Days)
	fmt.Printf("Savings:               %d%%\n", opt.SavingsPercent)

	if len(opt.Parallelization) > 0 {
		fmt.Printf("\nParallelization opportunities:\n")
		for _, p := range opt.Parallelization {
			fmt.Printf("  run concurrently: %s (saves %d min)\n", strings.Join(p.TaskIDs, ", "), p.MinutesSaved)
		}
	}

	if len(opt.Reorderings) > 0 {
		fmt.Printf("\nReordering suggestions:\n")
		for _, r := range opt.Reorderings {
			fmt.Printf("  move %s to position %d: %s\n", r.TaskID, r.SuggestedPosition, r.Reason)
		}
	}
}
