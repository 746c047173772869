// Package risk scans task snapshots for known planning risk patterns and
// aggregates them into a weighted assessment.
package risk

import (
	"sync"
)

// Category classifies the origin of a risk factor.
type Category string

const (
	CategoryTechnical Category = "technical"
	CategoryResource  Category = "resource"
	CategorySchedule  Category = "schedule"
	CategoryScope     Category = "scope"
	CategoryExternal  Category = "external"
)

// Severity is the ordinal severity tier of a risk factor.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Weight maps the severity tier to its numeric risk multiplier.
func (s Severity) Weight() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 1
	}
}

// Factor is a single detected risk. Factors are ephemeral: recomputed on
// every analysis run, never persisted. Score = Probability * Impact *
// severity weight.
type Factor struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	Probability float64  `json:"probability"`
	Impact      float64  `json:"impact"`
	Score       float64  `json:"score"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Mitigation  string   `json:"mitigation"`
	TaskIDs     []string `json:"task_ids,omitempty"`
}

// Bottleneck reports a task whose delay cascades broadly because many
// tasks depend on it directly.
type Bottleneck struct {
	TaskID         string  `json:"task_id"`
	Title          string  `json:"title"`
	DependentCount int     `json:"dependent_count"`
	BlockingRisk   float64 `json:"blocking_risk"`
}

// Analysis is the full risk assessment for one task snapshot.
type Analysis struct {
	// Score is the aggregate risk, 0-100, normalized against the ceiling
	// where every factor is critical with probability and impact 1.
	Score           int          `json:"score"`
	Level           Severity     `json:"level"`
	Factors         []Factor     `json:"factors"`
	Bottlenecks     []Bottleneck `json:"bottlenecks"`
	Recommendations []string     `json:"recommendations"`
}

// Sequence generates the traceability identifiers carried by risk factors
// within a report. It exists only so humans can reference factors; no
// algorithm depends on it. Reset is for test harnesses.
type Sequence struct {
	mu sync.Mutex
	n  int
}

// NewSequence returns a fresh sequence starting at 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next returns the next identifier in the sequence.
func (s *Sequence) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.n
}

// Reset rewinds the sequence to its initial state.
func (s *Sequence) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n = 0
}
