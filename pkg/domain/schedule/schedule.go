// Package schedule estimates parallelized completion time from the
// dependency graph's depth layering and proposes task reorderings.
package schedule

import (
	"fmt"
	"math"
	"sort"

	"github.com/felixgeelhaar/planalyze/pkg/domain/graph"
	"github.com/felixgeelhaar/planalyze/pkg/domain/planning"
)

const (
	maxFrontSuggestions = 5
	maxDeferSuggestions = 3
	frontOutDegree      = 2
)

// Estimate is a completion estimate in hours and 8-hour workdays.
type Estimate struct {
	Hours float64 `json:"hours"`
	Days  float64 `json:"days"`
}

// Reordering suggests moving one task to a different position.
type Reordering struct {
	TaskID            string `json:"task_id"`
	SuggestedPosition int    `json:"suggested_position"`
	Reason            string `json:"reason"`
}

// ParallelOpportunity reports a group of tasks that can run concurrently
// and the serial time saved by doing so.
type ParallelOpportunity struct {
	TaskIDs      []string `json:"task_ids"`
	MinutesSaved int      `json:"minutes_saved"`
}

// Optimization compares the naive serial estimate against a fully
// parallelized layering of the dependency graph.
type Optimization struct {
	Original        Estimate              `json:"original"`
	Optimized       Estimate              `json:"optimized"`
	SavingsPercent  int                   `json:"savings_percent"`
	Reorderings     []Reordering          `json:"reorderings"`
	Parallelization []ParallelOpportunity `json:"parallelization"`
}

// Optimize computes the schedule optimization for the task snapshot. The
// optimized estimate takes the maximum duration per depth layer (full
// parallelism within a layer) and adds cycle participants back as forced
// serial overhead, since cyclic tasks cannot be layered.
func Optimize(tasks []planning.Task) *Optimization {
	g := graph.Build(tasks)

	minutes := make(map[string]int, len(tasks))
	original := 0
	for _, t := range tasks {
		m := t.EstimateMinutes
		if m < 0 {
			m = 0
		}
		minutes[t.ID] = m
		original += m
	}

	layerMax := make(map[int]int)
	for _, node := range g.Nodes {
		if node.Depth < 0 {
			continue
		}
		if m := minutes[node.ID]; m > layerMax[node.Depth] {
			layerMax[node.Depth] = m
		}
	}
	optimized := 0
	for d := 0; d <= g.MaxDepth; d++ {
		optimized += layerMax[d]
	}
	for _, id := range g.CycleNodes {
		optimized += minutes[id]
	}

	savings := 0
	if original > 0 {
		savings = int(math.Round(float64(original-optimized) / float64(original) * 100))
		if savings < 0 {
			savings = 0
		}
	}

	return &Optimization{
		Original:        toEstimate(original),
		Optimized:       toEstimate(optimized),
		SavingsPercent:  savings,
		Reorderings:     reorderings(tasks, g),
		Parallelization: parallelization(g, minutes),
	}
}

func toEstimate(totalMinutes int) Estimate {
	e := planning.EstimateFromMinutes(totalMinutes)
	return Estimate{Hours: e.Hours(), Days: e.Days()}
}

func parallelization(g *graph.Graph, minutes map[string]int) []ParallelOpportunity {
	opportunities := make([]ParallelOpportunity, 0)
	for _, group := range g.ParallelGroups {
		sum, max := 0, 0
		for _, id := range group {
			sum += minutes[id]
			if minutes[id] > max {
				max = minutes[id]
			}
		}
		if saved := sum - max; saved > 0 {
			opportunities = append(opportunities, ParallelOpportunity{
				TaskIDs:      group,
				MinutesSaved: saved,
			})
		}
	}
	return opportunities
}

// reorderings pulls the widest blockers to the front and pushes idle
// low-priority leaves to the end.
func reorderings(tasks []planning.Task, g *graph.Graph) []Reordering {
	suggestions := make([]Reordering, 0)

	blockers := make([]graph.Node, 0)
	for _, node := range g.Nodes {
		if node.OutDegree > frontOutDegree {
			blockers = append(blockers, node)
		}
	}
	sort.SliceStable(blockers, func(i, j int) bool {
		return blockers[i].OutDegree > blockers[j].OutDegree
	})
	if len(blockers) > maxFrontSuggestions {
		blockers = blockers[:maxFrontSuggestions]
	}
	for i, node := range blockers {
		suggestions = append(suggestions, Reordering{
			TaskID:            node.ID,
			SuggestedPosition: i + 1,
			Reason:            fmt.Sprintf("%d tasks depend on this task; starting it early unblocks them sooner", node.OutDegree),
		})
	}

	deferred := 0
	for _, node := range g.Nodes {
		if deferred == maxDeferSuggestions {
			break
		}
		if node.OutDegree != 0 || node.InDegree == 0 {
			continue
		}
		if node.Priority.Normalize() != planning.PriorityLow {
			continue
		}
		suggestions = append(suggestions, Reordering{
			TaskID:            node.ID,
			SuggestedPosition: len(tasks),
			Reason:            "nothing depends on this low-priority task; it can run last",
		})
		deferred++
	}

	return suggestions
}
