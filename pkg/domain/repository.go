package domain

import (
	"github.com/felixgeelhaar/planalyze/pkg/domain/planning"
)

// PlanRepository loads task plans for analysis. The engine itself performs
// no I/O; implementations live in pkg/storage.
type PlanRepository interface {
	LoadPlan() (*planning.Plan, error)
}
