// Package decompose flags tasks that violate sizing and quality rules and
// synthesizes suggested subtask breakdowns for them.
package decompose

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/planalyze/pkg/domain/planning"
)

const (
	// MaxSubtaskMinutes caps every generated subtask estimate.
	MaxSubtaskMinutes = 45
	// TargetChunkMinutes sizes the ideal subtask; the subtask count is the
	// estimate divided by this chunk.
	TargetChunkMinutes = 30
	// DefaultEstimateMinutes stands in for tasks with no estimate, for
	// decomposition sizing only.
	DefaultEstimateMinutes = 30

	minDescriptionLength = 20
	minSubtasks          = 2
)

// Subtask is one suggested unit of a decomposed task.
type Subtask struct {
	Title           string                `json:"title"`
	EstimateMinutes int                   `json:"estimate_minutes"`
	Priority        planning.TaskPriority `json:"priority"`
}

// Suggestion proposes a breakdown for a task that violates at least one
// sizing or quality rule.
type Suggestion struct {
	TaskID   string    `json:"task_id"`
	Reason   string    `json:"reason"`
	Subtasks []Subtask `json:"subtasks"`
}

// Suggest evaluates every task independently and returns a suggestion for
// each one that violates a rule. Healthy tasks produce nothing.
func Suggest(tasks []planning.Task) []Suggestion {
	suggestions := make([]Suggestion, 0)
	for _, t := range tasks {
		reasons := violations(t)
		if len(reasons) == 0 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			TaskID:   t.ID,
			Reason:   strings.Join(reasons, "; "),
			Subtasks: subtasksFor(t),
		})
	}
	return suggestions
}

func violations(t planning.Task) []string {
	reasons := make([]string, 0)
	if t.EstimateMinutes > MaxSubtaskMinutes {
		reasons = append(reasons, fmt.Sprintf("estimate of %d minutes exceeds the %d-minute ceiling", t.EstimateMinutes, MaxSubtaskMinutes))
	}
	if len(strings.TrimSpace(t.Description)) < minDescriptionLength {
		reasons = append(reasons, fmt.Sprintf("description is under %d characters", minDescriptionLength))
	}
	if !t.HasAcceptance() {
		reasons = append(reasons, "no acceptance criteria")
	}
	return reasons
}

// subtasksFor synthesizes subtasks keyed off the task title. The first
// matching keyword category wins; titles matching nothing get a generic
// even split. Every estimate is capped after generation.
func subtasksFor(t planning.Task) []Subtask {
	estimate := t.EstimateMinutes
	if estimate <= 0 {
		estimate = DefaultEstimateMinutes
	}
	target := ceilDiv(estimate, TargetChunkMinutes)
	if target < minSubtasks {
		target = minSubtasks
	}

	title := strings.ToLower(t.Title)
	priority := t.Priority.Normalize()

	var subtasks []Subtask
	switch {
	case containsAny(title, "create", "implement", "add", "build"):
		subtasks = []Subtask{
			{Title: fmt.Sprintf("Design %s", t.Title), Priority: priority},
			{Title: fmt.Sprintf("Implement %s", t.Title), Priority: priority},
			{Title: fmt.Sprintf("Write unit tests for %s", t.Title), Priority: priority},
		}
		if target > 3 {
			subtasks = append(subtasks, Subtask{Title: fmt.Sprintf("Add error handling for %s", t.Title), Priority: priority})
		}
		if target > 4 {
			subtasks = append(subtasks, Subtask{Title: fmt.Sprintf("Document %s", t.Title), Priority: planning.PriorityLow})
		}
	case containsAny(title, "fix", "debug", "resolve"):
		subtasks = []Subtask{
			{Title: fmt.Sprintf("Investigate root cause of %s", t.Title), Priority: priority},
			{Title: fmt.Sprintf("Implement fix for %s", t.Title), Priority: priority},
			{Title: fmt.Sprintf("Add regression test for %s", t.Title), Priority: priority},
		}
	case containsAny(title, "refactor", "update", "migrate"):
		subtasks = []Subtask{
			{Title: fmt.Sprintf("Analyze current state of %s", t.Title), Priority: priority},
			{Title: fmt.Sprintf("Apply changes for %s", t.Title), Priority: priority},
			{Title: fmt.Sprintf("Update tests for %s", t.Title), Priority: priority},
		}
		if target > 3 {
			subtasks = append(subtasks, Subtask{Title: fmt.Sprintf("Verify backward compatibility of %s", t.Title), Priority: priority})
		}
	case containsAny(title, "test", "verify"):
		subtasks = []Subtask{
			{Title: fmt.Sprintf("Write happy-path tests for %s", t.Title), Priority: priority},
			{Title: fmt.Sprintf("Write edge-case tests for %s", t.Title), Priority: priority},
			{Title: fmt.Sprintf("Write error-handling tests for %s", t.Title), Priority: priority},
		}
	default:
		subtasks = make([]Subtask, target)
		for i := range subtasks {
			subtasks[i] = Subtask{
				Title:    fmt.Sprintf("Step %d: %s", i+1, t.Title),
				Priority: priority,
			}
		}
	}

	perSubtask := ceilDiv(estimate, len(subtasks))
	for i := range subtasks {
		minutes := perSubtask
		if minutes > MaxSubtaskMinutes {
			minutes = MaxSubtaskMinutes
		}
		subtasks[i].EstimateMinutes = minutes
	}
	return subtasks
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
