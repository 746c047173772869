package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/planalyze/pkg/domain/graph"
)

var graphCmd = &cobra.Command{
	Use:   "graph <plan-file>",
	Short: "Build and inspect the task dependency graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, _ := cmd.Flags().GetString("output")

		g, err := serviceForPlan(args[0]).BuildGraph()
		if err != nil {
			return err
		}

		if outputFormat == "json" {
			return printJSON(g)
		}

		printGraph(g)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(graphCmd)
}

func printGraph(g *graph.Graph) {
	fmt.Println(headerStyle.Render("Dependency Graph"))
	fmt.Printf("\n%d nodes, %d edges, max depth %d\n", len(g.Nodes), len(g.Edges), g.MaxDepth)

	if g.HasCycles {
		fmt.Printf("%s: %s\n", severityCritical.Render("Cycles detected"), strings.Join(g.CycleNodes, ", "))
	}

	if len(g.Nodes) > 0 {
		fmt.Printf("\nNodes:\n")
		for _, n := range g.Nodes {
			depth := fmt.Sprintf("depth %d", n.Depth)
			if n.Depth < 0 {
				depth = severityHigh.Render("unreachable (cycle)")
			}
			fmt.Printf("  %-20s %s, %d in / %d out\n", n.ID, depth, n.InDegree, n.OutDegree)
		}
	}

	if len(g.CriticalPath) > 0 {
		fmt.Printf("\nCritical path (%d min): %s\n", g.CriticalPathMinutes, strings.Join(g.CriticalPath, " -> "))
	}

	if len(g.ParallelGroups) > 0 {
		fmt.Printf("\nParallel groups:\n")
		for i, group := range g.ParallelGroups {
			fmt.Printf("  %d: %s\n", i+1, strings.Join(group, ", "))
		}
	}
}
