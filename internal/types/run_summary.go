// Package types provides type definitions for the JSON artifacts written alongside XYZ output.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Run modes.
const (
	ModeAverage = "average"
	ModeSplit   = "split"
	ModePick    = "pick"
	ModeCheck   = "check"
)

// RunSummary is the machine-readable record of one CLI run.
type RunSummary struct {
	RunID             uuid.UUID `json:"run_id"`
	Mode              string    `json:"mode"`
	Input             string    `json:"input"`
	Outputs           []string  `json:"outputs"`
	Section           string    `json:"section"`
	Solutions         int       `json:"solutions"`
	BlankLinesSkipped int       `json:"blank_lines_skipped"`
	Arity             int       `json:"arity"`
	Atoms             int       `json:"atoms"`
	Coordinates       []float64 `json:"coordinates,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
