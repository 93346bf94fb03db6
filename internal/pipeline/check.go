package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/interval-barycentre/internal/averaging"
	"github.com/jonathan/interval-barycentre/internal/constraints"
	"github.com/jonathan/interval-barycentre/internal/rendering"
	"github.com/jonathan/interval-barycentre/internal/schemas"
	"github.com/jonathan/interval-barycentre/internal/types"
	schemafiles "github.com/jonathan/interval-barycentre/schemas"
)

// RunCheck averages the solutions and measures the result against the distance
// constraints in opts.ConstraintsPath. The report is written to OutputPath when set.
func RunCheck(ctx context.Context, opts RunOptions) (*types.ConstraintReport, error) {
	if opts.ConstraintsPath == "" {
		return nil, fmt.Errorf("constraints path is required")
	}

	cs, err := constraints.Load(opts.ConstraintsPath)
	if err != nil {
		return nil, err
	}

	ld, err := load(ctx, &opts, types.ModeCheck)
	if err != nil {
		return nil, err
	}

	average, err := averaging.Average(ld.vectors)
	if err != nil {
		return nil, fmt.Errorf("failed to average solutions: %w", err)
	}
	emitProgress(&opts, ld.runID, StepAverage, fmt.Sprintf("Averaged %d solutions", len(ld.vectors)), average)

	checks, err := constraints.Evaluate(average, cs)
	if err != nil {
		return nil, fmt.Errorf("failed to check constraints: %w", err)
	}
	report := types.NewConstraintReport(ld.runID, opts.InputPath, opts.ConstraintsPath, checks)
	ld.log.Info("checked constraints", "run_id", ld.runID, "satisfied", report.Satisfied, "violated", report.Violated)
	emitProgress(&opts, ld.runID, StepCheck,
		fmt.Sprintf("%d of %d constraints satisfied", report.Satisfied, len(report.Checks)), report)

	if opts.Verbose {
		ld.printer.PrintConstraintReport(report)
	}

	if opts.OutputPath != "" {
		data, err := EncodeReport(report)
		if err != nil {
			return nil, err
		}
		if err := rendering.WriteFile(opts.OutputPath, string(data)+"\n"); err != nil {
			return nil, err
		}
		ld.log.Info("wrote constraint report", "run_id", ld.runID, "path", opts.OutputPath)
	}
	return report, nil
}

// EncodeReport marshals a report and validates it against its schema.
func EncodeReport(report *types.ConstraintReport) ([]byte, error) {
	data, err := schemas.ValidateValue(schemafiles.MustGet(schemafiles.ConstraintReport), report)
	if err != nil {
		return nil, fmt.Errorf("constraint report does not validate against schema: %w", err)
	}
	return data, nil
}
