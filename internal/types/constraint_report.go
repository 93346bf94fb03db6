package types

import (
	"github.com/google/uuid"

	"github.com/jonathan/interval-barycentre/internal/constraints"
)

// ConstraintReport is the result of checking an averaged geometry against the solver's
// distance constraints.
type ConstraintReport struct {
	RunID       uuid.UUID           `json:"run_id"`
	Input       string              `json:"input"`
	Constraints string              `json:"constraints"`
	Checks      []constraints.Check `json:"checks"`
	Satisfied   int                 `json:"satisfied"`
	Violated    int                 `json:"violated"`
}

// NewConstraintReport tallies checks into a report.
func NewConstraintReport(runID uuid.UUID, input, constraintsPath string, checks []constraints.Check) *ConstraintReport {
	r := &ConstraintReport{
		RunID:       runID,
		Input:       input,
		Constraints: constraintsPath,
		Checks:      checks,
	}
	if r.Checks == nil {
		r.Checks = []constraints.Check{}
	}
	for _, c := range checks {
		if c.Satisfied {
			r.Satisfied++
		} else {
			r.Violated++
		}
	}
	return r
}
