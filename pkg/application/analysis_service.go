// Package application wires the analysis engine to plan loading and
// report assembly for CLI and watch-mode consumers.
package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/planalyze/pkg/domain"
	"github.com/felixgeelhaar/planalyze/pkg/domain/decompose"
	"github.com/felixgeelhaar/planalyze/pkg/domain/graph"
	"github.com/felixgeelhaar/planalyze/pkg/domain/health"
	"github.com/felixgeelhaar/planalyze/pkg/domain/planning"
	"github.com/felixgeelhaar/planalyze/pkg/domain/risk"
	"github.com/felixgeelhaar/planalyze/pkg/domain/schedule"
)

// Report bundles every analysis of one plan snapshot into a single
// envelope for rendering or export.
type Report struct {
	ID          string                 `json:"id"`
	PlanID      string                 `json:"plan_id"`
	PlanName    string                 `json:"plan_name,omitempty"`
	PlanHash    string                 `json:"plan_hash"`
	GeneratedAt time.Time              `json:"generated_at"`
	Graph       *graph.Graph           `json:"graph"`
	Risks       *risk.Analysis         `json:"risks"`
	Schedule    *schedule.Optimization `json:"schedule"`
	Health      *health.Report         `json:"health"`
	Suggestions []decompose.Suggestion `json:"suggestions"`
}

// AnalysisService runs the five analysis operations against the plan held
// by the repository. All analysis is pure; the service only adds loading
// and the report envelope.
type AnalysisService struct {
	repo     domain.PlanRepository
	analyzer *risk.Analyzer
}

// NewAnalysisService creates an analysis service. A nil sequence gives the
// risk analyzer a private factor-id sequence.
func NewAnalysisService(repo domain.PlanRepository, seq *risk.Sequence) *AnalysisService {
	return &AnalysisService{
		repo:     repo,
		analyzer: risk.NewAnalyzer(seq),
	}
}

func (s *AnalysisService) loadTasks() (*planning.Plan, error) {
	plan, err := s.repo.LoadPlan()
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}
	return plan, nil
}

// BuildGraph builds the dependency graph for the stored plan.
func (s *AnalysisService) BuildGraph() (*graph.Graph, error) {
	plan, err := s.loadTasks()
	if err != nil {
		return nil, err
	}
	return graph.Build(plan.Tasks), nil
}

// AnalyzeRisks runs the risk analysis for the stored plan.
func (s *AnalysisService) AnalyzeRisks() (*risk.Analysis, error) {
	plan, err := s.loadTasks()
	if err != nil {
		return nil, err
	}
	return s.analyzer.Analyze(plan.Tasks), nil
}

// SuggestDecompositions runs the decomposition advisor for the stored plan.
func (s *AnalysisService) SuggestDecompositions() ([]decompose.Suggestion, error) {
	plan, err := s.loadTasks()
	if err != nil {
		return nil, err
	}
	return decompose.Suggest(plan.Tasks), nil
}

// OptimizeSchedule runs the schedule optimizer for the stored plan.
func (s *AnalysisService) OptimizeSchedule() (*schedule.Optimization, error) {
	plan, err := s.loadTasks()
	if err != nil {
		return nil, err
	}
	return schedule.Optimize(plan.Tasks), nil
}

// CalculateHealth runs the plan health scorer for the stored plan.
func (s *AnalysisService) CalculateHealth() (*health.Report, error) {
	plan, err := s.loadTasks()
	if err != nil {
		return nil, err
	}
	return health.Calculate(plan.Tasks), nil
}

// FullReport runs every analysis over a single plan load so all sections
// describe the same snapshot.
func (s *AnalysisService) FullReport() (*Report, error) {
	plan, err := s.loadTasks()
	if err != nil {
		return nil, err
	}
	return &Report{
		ID:          uuid.New().String(),
		PlanID:      plan.ID,
		PlanName:    plan.Name,
		PlanHash:    plan.Hash(),
		GeneratedAt: time.Now(),
		Graph:       graph.Build(plan.Tasks),
		Risks:       s.analyzer.Analyze(plan.Tasks),
		Schedule:    schedule.Optimize(plan.Tasks),
		Health:      health.Calculate(plan.Tasks),
		Suggestions: decompose.Suggest(plan.Tasks),
	}, nil
}
