package risk

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/felixgeelhaar/planalyze/pkg/domain/graph"
	"github.com/felixgeelhaar/planalyze/pkg/domain/planning"
)

// Rule thresholds. These are the analysis contract: downstream consumers
// pin severity transitions at exactly these boundaries.
const (
	largePlanTasks       = 30
	oversizedPlanTasks   = 50
	priorityConcMedium   = 0.5
	priorityConcHigh     = 0.7
	coverageRatioMedium  = 0.2
	coverageRatioHigh    = 0.5
	minDescriptionLength = 20
	oversizedTaskMinutes = 45
	hugeTaskMinutes      = 120
	deepChainDepth       = 3
	criticalChainDepth   = 5
	bottleneckOutDegree  = 3
	severeOutDegree      = 5
	heavyEffortMinutes   = 80 * planning.MinutesPerHour
	extremeEffortMinutes = 160 * planning.MinutesPerHour
	maxBottlenecks       = 5
)

var defaultSequence = NewSequence()

// Analyze runs the default analyzer over the task snapshot.
func Analyze(tasks []planning.Task) *Analysis {
	return NewAnalyzer(defaultSequence).Analyze(tasks)
}

// ResetSequence rewinds the default factor-id sequence. Test hook only;
// factor ids are the single non-deterministic output across calls.
func ResetSequence() {
	defaultSequence.Reset()
}

// Analyzer scans tasks for risk patterns. It holds no state beyond the
// injected id sequence and is safe for concurrent use.
type Analyzer struct {
	seq *Sequence
}

// NewAnalyzer creates an analyzer drawing factor ids from seq. A nil seq
// gets a private sequence.
func NewAnalyzer(seq *Sequence) *Analyzer {
	if seq == nil {
		seq = NewSequence()
	}
	return &Analyzer{seq: seq}
}

// Analyze evaluates every risk rule against the snapshot and aggregates
// the triggered factors into a 0-100 score. It never fails: an empty
// snapshot yields a zero-score low-risk analysis.
func (a *Analyzer) Analyze(tasks []planning.Task) *Analysis {
	if len(tasks) == 0 {
		return &Analysis{
			Score:           0,
			Level:           SeverityLow,
			Factors:         []Factor{},
			Bottlenecks:     []Bottleneck{},
			Recommendations: []string{"No tasks to analyze. Add tasks to the plan to assess risk."},
		}
	}

	g := graph.Build(tasks)
	factors := make([]Factor, 0)
	recommendations := make([]string, 0)

	// Cycle resolution leads the recommendation list when present.
	if g.HasCycles {
		factors = append(factors, a.factor(CategoryTechnical, SeverityCritical, 1.0, 1.0,
			"Circular dependencies",
			fmt.Sprintf("%d tasks form dependency cycles and can never be scheduled", len(g.CycleNodes)),
			"Break the cycles by removing or inverting at least one dependency in each loop",
			g.CycleNodes))
		recommendations = append(recommendations,
			fmt.Sprintf("Resolve the circular dependencies between %s before anything else; cyclic tasks block all downstream work.", strings.Join(g.CycleNodes, ", ")))
	}

	if f, rec, ok := a.planSizeRule(tasks); ok {
		factors = append(factors, f)
		recommendations = append(recommendations, rec)
	}
	if f, rec, ok := a.priorityConcentrationRule(tasks); ok {
		factors = append(factors, f)
		recommendations = append(recommendations, rec)
	}
	if f, rec, ok := a.acceptanceCoverageRule(tasks); ok {
		factors = append(factors, f)
		recommendations = append(recommendations, rec)
	}
	if f, rec, ok := a.descriptionQualityRule(tasks); ok {
		factors = append(factors, f)
		recommendations = append(recommendations, rec)
	}
	if f, rec, ok := a.oversizedTasksRule(tasks); ok {
		factors = append(factors, f)
		recommendations = append(recommendations, rec)
	}
	if f, rec, ok := a.deepChainRule(g); ok {
		factors = append(factors, f)
		recommendations = append(recommendations, rec)
	}
	if bottleneckFactors, rec, ok := a.bottleneckRule(g); ok {
		factors = append(factors, bottleneckFactors...)
		recommendations = append(recommendations, rec)
	}
	if f, rec, ok := a.totalEffortRule(tasks); ok {
		factors = append(factors, f)
		recommendations = append(recommendations, rec)
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Plan looks healthy: no significant risk patterns detected.")
	}

	score := aggregateScore(factors)
	return &Analysis{
		Score:           score,
		Level:           levelFor(score),
		Factors:         factors,
		Bottlenecks:     topBottlenecks(g, len(tasks)),
		Recommendations: recommendations,
	}
}

func (a *Analyzer) planSizeRule(tasks []planning.Task) (Factor, string, bool) {
	n := len(tasks)
	if n <= largePlanTasks {
		return Factor{}, "", false
	}
	severity := SeverityMedium
	probability, impact := 0.6, 0.5
	if n > oversizedPlanTasks {
		severity = SeverityHigh
		probability, impact = 0.8, 0.6
	}
	f := a.factor(CategoryScope, severity, probability, impact,
		"Oversized plan",
		fmt.Sprintf("The plan contains %d tasks; large flat plans are hard to track and re-estimate", n),
		"Split the plan into smaller phased plans with explicit milestones",
		nil)
	return f, "Split the plan into smaller phases; plans beyond 30 tasks become hard to steer.", true
}

func (a *Analyzer) priorityConcentrationRule(tasks []planning.Task) (Factor, string, bool) {
	high := 0
	for _, t := range tasks {
		if t.Priority.Normalize() == planning.PriorityHigh {
			high++
		}
	}
	ratio := float64(high) / float64(len(tasks))
	if ratio <= priorityConcMedium {
		return Factor{}, "", false
	}
	severity := SeverityMedium
	probability, impact := 0.6, 0.5
	if ratio > priorityConcHigh {
		severity = SeverityHigh
		probability, impact = 0.7, 0.6
	}
	f := a.factor(CategoryResource, severity, probability, impact,
		"Priority inflation",
		fmt.Sprintf("%.0f%% of tasks sit in the highest priority tier; when everything is urgent nothing is", ratio*100),
		"Re-triage so the high tier holds only work that genuinely cannot wait",
		nil)
	return f, "Re-triage task priorities; more than half the plan is marked high priority.", true
}

func (a *Analyzer) acceptanceCoverageRule(tasks []planning.Task) (Factor, string, bool) {
	missing := make([]string, 0)
	for _, t := range tasks {
		if !t.HasAcceptance() {
			missing = append(missing, t.ID)
		}
	}
	ratio := float64(len(missing)) / float64(len(tasks))
	if ratio <= coverageRatioMedium {
		return Factor{}, "", false
	}
	severity := SeverityMedium
	if ratio > coverageRatioHigh {
		severity = SeverityHigh
	}
	f := a.factor(CategoryScope, severity, ratio, 0.6,
		"Missing acceptance criteria",
		fmt.Sprintf("%d of %d tasks have no acceptance criteria, so done cannot be verified", len(missing), len(tasks)),
		"Write acceptance criteria before work starts; a task without them cannot be closed objectively",
		missing)
	return f, "Add acceptance criteria to the tasks that lack them so completion is verifiable.", true
}

func (a *Analyzer) descriptionQualityRule(tasks []planning.Task) (Factor, string, bool) {
	vague := make([]string, 0)
	for _, t := range tasks {
		if len(strings.TrimSpace(t.Description)) < minDescriptionLength {
			vague = append(vague, t.ID)
		}
	}
	ratio := float64(len(vague)) / float64(len(tasks))
	if ratio <= coverageRatioMedium {
		return Factor{}, "", false
	}
	severity := SeverityMedium
	if ratio > coverageRatioHigh {
		severity = SeverityHigh
	}
	f := a.factor(CategoryTechnical, severity, ratio, 0.5,
		"Vague task descriptions",
		fmt.Sprintf("%d of %d tasks have descriptions under %d characters", len(vague), len(tasks), minDescriptionLength),
		"Expand descriptions so any team member could pick the task up cold",
		vague)
	return f, "Flesh out the one-line task descriptions; vague tasks get vague implementations.", true
}

func (a *Analyzer) oversizedTasksRule(tasks []planning.Task) (Factor, string, bool) {
	oversized := make([]string, 0)
	huge := false
	for _, t := range tasks {
		if t.EstimateMinutes > oversizedTaskMinutes {
			oversized = append(oversized, t.ID)
			if t.EstimateMinutes > hugeTaskMinutes {
				huge = true
			}
		}
	}
	if len(oversized) == 0 {
		return Factor{}, "", false
	}
	severity := SeverityMedium
	if huge {
		severity = SeverityHigh
	}
	ratio := float64(len(oversized)) / float64(len(tasks))
	f := a.factor(CategorySchedule, severity, ratio, 0.6,
		"Oversized tasks",
		fmt.Sprintf("%d tasks exceed the %d-minute ceiling for a single work item", len(oversized), oversizedTaskMinutes),
		"Decompose oversized tasks into sub-45-minute units",
		oversized)
	return f, "Decompose the oversized tasks; estimates beyond 45 minutes hide unknowns.", true
}

func (a *Analyzer) deepChainRule(g *graph.Graph) (Factor, string, bool) {
	if g.MaxDepth <= deepChainDepth {
		return Factor{}, "", false
	}
	severity := SeverityHigh
	probability, impact := 0.6, 0.7
	if g.MaxDepth > criticalChainDepth {
		severity = SeverityCritical
		probability, impact = 0.8, 0.8
	}
	f := a.factor(CategoryTechnical, severity, probability, impact,
		"Deep dependency chain",
		fmt.Sprintf("The longest dependency chain is %d levels deep; a slip at the top cascades through every level", g.MaxDepth),
		"Flatten the chain by cutting soft dependencies or merging trivially sequential tasks",
		nil)
	return f, "Flatten the deepest dependency chains to reduce cascading delay.", true
}

func (a *Analyzer) bottleneckRule(g *graph.Graph) ([]Factor, string, bool) {
	factors := make([]Factor, 0)
	for _, node := range g.Nodes {
		if node.OutDegree <= bottleneckOutDegree {
			continue
		}
		severity := SeverityMedium
		probability, impact := 0.5, 0.6
		if node.OutDegree > severeOutDegree {
			severity = SeverityHigh
			probability, impact = 0.7, 0.7
		}
		factors = append(factors, a.factor(CategoryResource, severity, probability, impact,
			fmt.Sprintf("Bottleneck task %s", node.ID),
			fmt.Sprintf("%d tasks depend directly on %q; any delay there cascades broadly", node.OutDegree, node.Title),
			"Start the bottleneck task early, or split it so dependents unblock incrementally",
			[]string{node.ID}))
	}
	if len(factors) == 0 {
		return nil, "", false
	}
	return factors, "Schedule the bottleneck tasks first; many tasks are blocked behind them.", true
}

func (a *Analyzer) totalEffortRule(tasks []planning.Task) (Factor, string, bool) {
	total := 0
	for _, t := range tasks {
		if t.EstimateMinutes > 0 {
			total += t.EstimateMinutes
		}
	}
	if total <= heavyEffortMinutes {
		return Factor{}, "", false
	}
	severity := SeverityHigh
	probability, impact := 0.6, 0.7
	if total > extremeEffortMinutes {
		severity = SeverityCritical
		probability, impact = 0.8, 0.8
	}
	hours := float64(total) / planning.MinutesPerHour
	f := a.factor(CategorySchedule, severity, probability, impact,
		"Excessive total effort",
		fmt.Sprintf("The plan totals %.0f hours of estimated work; estimates at this scale drift badly", hours),
		"Carve the plan into independently deliverable slices of at most two working weeks",
		nil)
	return f, "Break the plan into smaller deliverable slices; the total estimated effort is very large.", true
}

func (a *Analyzer) factor(category Category, severity Severity, probability, impact float64, title, description, mitigation string, taskIDs []string) Factor {
	return Factor{
		ID:          fmt.Sprintf("risk-%d", a.seq.Next()),
		Category:    category,
		Severity:    severity,
		Probability: probability,
		Impact:      impact,
		Score:       probability * impact * float64(severity.Weight()),
		Title:       title,
		Description: description,
		Mitigation:  mitigation,
		TaskIDs:     taskIDs,
	}
}

// aggregateScore normalizes the factor score sum against the ceiling where
// every factor is critical with probability and impact 1.
func aggregateScore(factors []Factor) int {
	sum := 0.0
	for _, f := range factors {
		sum += f.Score
	}
	ceiling := float64(4 * len(factors))
	if ceiling < 1 {
		ceiling = 1
	}
	score := int(math.Round(sum / ceiling * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func levelFor(score int) Severity {
	switch {
	case score >= 75:
		return SeverityCritical
	case score >= 50:
		return SeverityHigh
	case score >= 25:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// topBottlenecks ranks nodes by out-degree and keeps the five widest.
func topBottlenecks(g *graph.Graph, taskCount int) []Bottleneck {
	candidates := make([]Bottleneck, 0)
	for _, node := range g.Nodes {
		if node.OutDegree == 0 {
			continue
		}
		candidates = append(candidates, Bottleneck{
			TaskID:         node.ID,
			Title:          node.Title,
			DependentCount: node.OutDegree,
			BlockingRisk:   float64(node.OutDegree) / float64(taskCount),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DependentCount > candidates[j].DependentCount
	})
	if len(candidates) > maxBottlenecks {
		candidates = candidates[:maxBottlenecks]
	}
	return candidates
}
