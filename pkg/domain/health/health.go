// Package health grades a plan across five weighted quality dimensions.
package health

import (
	"fmt"
	"math"

	"github.com/felixgeelhaar/planalyze/pkg/domain/graph"
	"github.com/felixgeelhaar/planalyze/pkg/domain/planning"
)

// Factor weights. They sum to 100 and drive the weighted mean.
const (
	weightGranularity   = 25.0
	weightAcceptance    = 20.0
	weightDependencies  = 20.0
	weightPriorities    = 15.0
	weightDescriptions  = 10.0
	weightDecomposition = 10.0
)

const (
	minGranularMinutes = 15
	maxGranularMinutes = 45
	largeTaskMinutes   = 60
	hugeTaskMinutes    = 120
	goodDescriptionLen = 50
)

// Factor is one scored quality dimension.
type Factor struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
	Detail string  `json:"detail"`
}

// Report is the aggregate plan health: a 0-100 weighted score and a
// letter grade.
type Report struct {
	Score   int      `json:"score"`
	Grade   string   `json:"grade"`
	Factors []Factor `json:"factors"`
}

// Calculate scores the task snapshot across all quality dimensions. An
// empty snapshot grades F with a single informational factor.
func Calculate(tasks []planning.Task) *Report {
	if len(tasks) == 0 {
		return &Report{
			Score: 0,
			Grade: "F",
			Factors: []Factor{{
				Name:   "no tasks",
				Score:  0,
				Weight: 100,
				Detail: "The plan has no tasks; there is nothing to grade.",
			}},
		}
	}

	factors := []Factor{
		granularity(tasks),
		acceptanceCoverage(tasks),
		priorityBalance(tasks),
		dependencyHealth(tasks),
		descriptionQuality(tasks),
		decompositionReadiness(tasks),
	}

	weightedSum, totalWeight := 0.0, 0.0
	for _, f := range factors {
		weightedSum += f.Score * f.Weight
		totalWeight += f.Weight
	}
	score := int(math.Round(weightedSum / totalWeight))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &Report{
		Score:   score,
		Grade:   gradeFor(score),
		Factors: factors,
	}
}

func gradeFor(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// granularity rewards tasks sized inside the 15-45 minute window and
// penalizes each task beyond 120 minutes.
func granularity(tasks []planning.Task) Factor {
	wellSized, huge := 0, 0
	for _, t := range tasks {
		if t.EstimateMinutes >= minGranularMinutes && t.EstimateMinutes <= maxGranularMinutes {
			wellSized++
		}
		if t.EstimateMinutes > hugeTaskMinutes {
			huge++
		}
	}
	score := 100*float64(wellSized)/float64(len(tasks)) - 10*float64(huge)
	return Factor{
		Name:   "granularity",
		Score:  clamp(score),
		Weight: weightGranularity,
		Detail: fmt.Sprintf("%d of %d tasks sized within %d-%d minutes, %d beyond %d minutes", wellSized, len(tasks), minGranularMinutes, maxGranularMinutes, huge, hugeTaskMinutes),
	}
}

func acceptanceCoverage(tasks []planning.Task) Factor {
	covered := 0
	for _, t := range tasks {
		if t.HasAcceptance() {
			covered++
		}
	}
	return Factor{
		Name:   "acceptance criteria",
		Score:  100 * float64(covered) / float64(len(tasks)),
		Weight: weightAcceptance,
		Detail: fmt.Sprintf("%d of %d tasks carry acceptance criteria", covered, len(tasks)),
	}
}

// priorityBalance measures deviation from an ideal 30/40/30 split across
// the high/medium/low tiers, with an extra penalty when every task sits
// in one tier.
func priorityBalance(tasks []planning.Task) Factor {
	counts := map[planning.TaskPriority]int{}
	for _, t := range tasks {
		counts[t.Priority.Normalize()]++
	}
	n := float64(len(tasks))
	ideal := map[planning.TaskPriority]float64{
		planning.PriorityHigh:   0.3,
		planning.PriorityMedium: 0.4,
		planning.PriorityLow:    0.3,
	}

	deviation := 0.0
	for _, tier := range planning.AllTaskPriorities() {
		deviation += math.Abs(float64(counts[tier])/n - ideal[tier])
	}
	deviation /= 3

	score := 100 * (1 - 3*deviation)
	if score < 0 {
		score = 0
	}

	singleTier := false
	for _, c := range counts {
		if c == len(tasks) {
			singleTier = true
		}
	}
	if singleTier {
		score -= 30
	}

	return Factor{
		Name:   "priority balance",
		Score:  clamp(score),
		Weight: weightPriorities,
		Detail: fmt.Sprintf("high/medium/low split is %d/%d/%d against an ideal 30/40/30", counts[planning.PriorityHigh], counts[planning.PriorityMedium], counts[planning.PriorityLow]),
	}
}

// dependencyHealth starts at 100 and deducts for cycles, deep chains, and
// dense fan-in.
func dependencyHealth(tasks []planning.Task) Factor {
	g := graph.Build(tasks)
	score := 100.0
	details := "no structural problems"

	if g.HasCycles {
		score -= 50
		details = fmt.Sprintf("%d tasks in dependency cycles", len(g.CycleNodes))
	}
	switch {
	case g.MaxDepth > 5:
		score -= 30
	case g.MaxDepth > 3:
		score -= 15
	}

	avgInDegree := float64(len(g.Edges)) / float64(len(tasks))
	if avgInDegree > 2 {
		score -= math.Min(20, (avgInDegree-2)*10)
	}

	return Factor{
		Name:   "dependency health",
		Score:  clamp(score),
		Weight: weightDependencies,
		Detail: fmt.Sprintf("max depth %d, average in-degree %.1f, %s", g.MaxDepth, avgInDegree, details),
	}
}

// descriptionQuality blends average description length against the share
// of thoroughly described tasks, weighted evenly.
func descriptionQuality(tasks []planning.Task) Factor {
	totalLen, thorough := 0, 0
	for _, t := range tasks {
		totalLen += len(t.Description)
		if len(t.Description) >= goodDescriptionLen {
			thorough++
		}
	}
	avgLen := float64(totalLen) / float64(len(tasks))

	lengthScore := avgLen / goodDescriptionLen * 100
	if lengthScore > 100 {
		lengthScore = 100
	}
	thoroughScore := 100 * float64(thorough) / float64(len(tasks))

	return Factor{
		Name:   "description quality",
		Score:  clamp(0.5*lengthScore + 0.5*thoroughScore),
		Weight: weightDescriptions,
		Detail: fmt.Sprintf("average description length %.0f characters, %d of %d tasks described in depth", avgLen, thorough, len(tasks)),
	}
}

func decompositionReadiness(tasks []planning.Task) Factor {
	huge, large := 0, 0
	for _, t := range tasks {
		if t.EstimateMinutes > hugeTaskMinutes {
			huge++
		}
		if t.EstimateMinutes > largeTaskMinutes {
			large++
		}
	}
	score := 100 - 25*float64(huge) - 10*float64(large)
	return Factor{
		Name:   "decomposition readiness",
		Score:  clamp(score),
		Weight: weightDecomposition,
		Detail: fmt.Sprintf("%d tasks beyond %d minutes, %d beyond %d minutes", large, largeTaskMinutes, huge, hugeTaskMinutes),
	}
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
