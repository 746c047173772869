package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/planalyze/internal/infrastructure/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <plan-file>",
	Short: "Re-run the full analysis whenever the plan file changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debounce, _ := cmd.Flags().GetDuration("debounce")

		path := args[0]
		service := serviceForPlan(path)

		lastHash := ""
		run := func() {
			report, err := service.FullReport()
			if err != nil {
				fmt.Printf("%s %v\n", severityHigh.Render("analysis failed:"), err)
				return
			}
			// A save that does not change the plan structure is skipped.
			if report.PlanHash == lastHash {
				return
			}
			lastHash = report.PlanHash
			printReport(report)
			fmt.Println(dimStyle.Render("watching " + path + " (ctrl-c to stop)"))
		}
		run()

		watcher, err := watch.NewPlanWatcher(path, debounce, run)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().Duration("debounce", 500*time.Millisecond, "Delay before re-analyzing after a change")
	RootCmd.AddCommand(watchCmd)
}
