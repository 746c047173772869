// Package storage loads plan files from disk for the analysis engine.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/planalyze/pkg/domain/planning"
)

// Storage errors.
var (
	// ErrPlanNotFound indicates the plan file does not exist.
	ErrPlanNotFound = errors.New("plan file not found")
	// ErrInvalidPlan indicates the plan file failed schema validation.
	ErrInvalidPlan = errors.New("invalid plan file")
)

// FileRepository loads a plan from a single JSON or YAML file. JSON files
// are validated against the plan schema before unmarshalling.
type FileRepository struct {
	path string
}

// NewFileRepository creates a repository reading the given plan file.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Path returns the plan file path.
func (r *FileRepository) Path() string {
	return r.path
}

// planFile is the on-disk plan representation. Task estimates may be given
// either as raw minutes or as duration strings ("30m", "4h", "2d").
type planFile struct {
	ID    string       `json:"id" yaml:"id"`
	Name  string       `json:"name,omitempty" yaml:"name,omitempty"`
	Tasks []taskRecord `json:"tasks" yaml:"tasks"`
}

type taskRecord struct {
	ID              string   `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	Description     string   `json:"description,omitempty" yaml:"description,omitempty"`
	Status          string   `json:"status,omitempty" yaml:"status,omitempty"`
	Priority        string   `json:"priority,omitempty" yaml:"priority,omitempty"`
	Estimate        string   `json:"estimate,omitempty" yaml:"estimate,omitempty"`
	EstimateMinutes int      `json:"estimate_minutes,omitempty" yaml:"estimate_minutes,omitempty"`
	Acceptance      string   `json:"acceptance,omitempty" yaml:"acceptance,omitempty"`
	DependsOn       []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
}

// LoadPlan reads, validates, and converts the plan file into the domain
// model. Estimate strings are converted to minutes; an explicit
// estimate_minutes wins over the string form.
func (r *FileRepository) LoadPlan() (*planning.Plan, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, r.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}

	var file planFile
	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse yaml plan: %w", err)
		}
	default:
		if err := validateJSON(data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse json plan: %w", err)
		}
	}

	plan := &planning.Plan{
		ID:    file.ID,
		Name:  file.Name,
		Tasks: make([]planning.Task, 0, len(file.Tasks)),
	}
	for _, rec := range file.Tasks {
		task, err := rec.toTask()
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", rec.ID, err)
		}
		plan.Tasks = append(plan.Tasks, task)
	}
	return plan, nil
}

func (rec taskRecord) toTask() (planning.Task, error) {
	minutes := rec.EstimateMinutes
	if minutes == 0 && rec.Estimate != "" {
		est, err := planning.ParseEstimate(rec.Estimate)
		if err != nil {
			return planning.Task{}, err
		}
		minutes = est.Minutes()
	}
	return planning.Task{
		ID:              rec.ID,
		Title:           rec.Title,
		Description:     rec.Description,
		Status:          planning.TaskStatus(rec.Status),
		Priority:        planning.TaskPriority(rec.Priority),
		EstimateMinutes: minutes,
		Acceptance:      rec.Acceptance,
		DependsOn:       rec.DependsOn,
	}, nil
}

func validateJSON(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(planSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate plan: %w", err)
	}
	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			messages = append(messages, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidPlan, strings.Join(messages, "; "))
	}
	return nil
}
