// Package planning defines the task model consumed by the analysis engine.
package planning

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusBlocked    TaskStatus = "blocked"
	StatusDone       TaskStatus = "done"
)

// IsValid returns true if the status is a valid task status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusBlocked, StatusDone:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s TaskStatus) String() string {
	return string(s)
}

// Task is a unit of work. The analysis engine treats tasks as read-only
// snapshots; missing numeric fields are zero and missing text fields are
// empty strings.
type Task struct {
	ID              string       `json:"id" yaml:"id"`
	Title           string       `json:"title" yaml:"title"`
	Description     string       `json:"description,omitempty" yaml:"description,omitempty"`
	Status          TaskStatus   `json:"status,omitempty" yaml:"status,omitempty"`
	Priority        TaskPriority `json:"priority,omitempty" yaml:"priority,omitempty"`
	EstimateMinutes int          `json:"estimate_minutes,omitempty" yaml:"estimate_minutes,omitempty"`
	Acceptance      string       `json:"acceptance,omitempty" yaml:"acceptance,omitempty"`
	DependsOn       []string     `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
}

// HasAcceptance returns true if the task carries non-blank acceptance criteria.
func (t Task) HasAcceptance() bool {
	return strings.TrimSpace(t.Acceptance) != ""
}

// Plan is a named collection of tasks.
type Plan struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Tasks []Task `json:"tasks" yaml:"tasks"`
}

// Hash returns a deterministic hash of the plan. Watch mode uses it to
// skip re-analysis when a file write did not change the plan, so it must
// cover every field the analyzers read; hashing the canonical JSON form
// does that without field-by-field bookkeeping.
func (p *Plan) Hash() string {
	data, _ := json.Marshal(p)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
