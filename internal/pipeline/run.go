// Package pipeline provides the high-level orchestration from a solver results file to
// XYZ output: read, extract barycentres, aggregate, render and write.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/interval-barycentre/internal/averaging"
	"github.com/jonathan/interval-barycentre/internal/logging"
	"github.com/jonathan/interval-barycentre/internal/observability"
	"github.com/jonathan/interval-barycentre/internal/parsing"
	"github.com/jonathan/interval-barycentre/internal/rendering"
	"github.com/jonathan/interval-barycentre/internal/schemas"
	"github.com/jonathan/interval-barycentre/internal/types"
	schemafiles "github.com/jonathan/interval-barycentre/schemas"
)

// Pipeline steps reported through ProgressEvent.
const (
	StepRead    = "read_results"
	StepExtract = "extract_barycentres"
	StepAverage = "average_solutions"
	StepRender  = "render_xyz"
	StepWrite   = "write_output"
	StepCheck   = "check_constraints"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	InputPath       string
	OutputPath      string // XYZ file, or output directory in split mode
	Section         string // defaults to the uncertain section
	Labels          []string
	LabelsFrom      string // XYZ file whose element labels are reused
	XYZHeader       bool
	Comment         string
	SummaryPath     string
	Prefix          string // split mode file name prefix
	Jobs            int    // split mode concurrent writers
	Index           int    // pick mode solution index
	ConstraintsPath string // check mode
	Verbose         bool
	Out             io.Writer // verbose output, defaults to os.Stdout
	Logger          logging.Logger
	OnProgress      ProgressCallback
}

// loaded is what every mode starts from.
type loaded struct {
	runID   uuid.UUID
	section string
	vectors [][]float64
	summary *types.RunSummary
	printer *observability.Printer
	log     logging.Logger
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, runID uuid.UUID, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			RunID:   runID.String(),
			Content: content,
		})
	}
}

func load(ctx context.Context, opts *RunOptions, mode string) (*loaded, error) {
	if opts.InputPath == "" {
		return nil, fmt.Errorf("input path is required")
	}

	ld := &loaded{
		runID:   uuid.New(),
		section: opts.Section,
		log:     opts.Logger,
	}
	if ld.section == "" {
		ld.section = parsing.SectionUncertain
	}
	if ld.log == nil {
		ld.log = logging.Nop()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	ld.printer = observability.NewPrinter(out)

	text, err := parsing.ReadResultsFile(opts.InputPath)
	if err != nil {
		return nil, err
	}
	lines, err := parsing.ParseSection(text, ld.section)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", opts.InputPath, err)
	}
	ld.log.Info("read results file", "run_id", ld.runID, "input", opts.InputPath, "section", ld.section, "lines", len(lines))
	emitProgress(opts, ld.runID, StepRead, fmt.Sprintf("Read %d lines from %s", len(lines), opts.InputPath), nil)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	collection, err := parsing.CollectBarycentres(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to extract barycentres from %s: %w", opts.InputPath, err)
	}
	if collection.BlankSkipped > 0 {
		ld.log.Warn("skipped blank lines", "run_id", ld.runID, "count", collection.BlankSkipped)
	}
	ld.log.Info("extracted barycentres", "run_id", ld.runID, "solutions", len(collection.Vectors), "arity", collection.Arity)
	emitProgress(opts, ld.runID, StepExtract,
		fmt.Sprintf("Extracted %d solutions of arity %d", len(collection.Vectors), collection.Arity), nil)

	ld.vectors = collection.Vectors
	ld.summary = &types.RunSummary{
		RunID:             ld.runID,
		Mode:              mode,
		Input:             opts.InputPath,
		Outputs:           []string{},
		Section:           ld.section,
		Solutions:         len(collection.Vectors),
		BlankLinesSkipped: collection.BlankSkipped,
		Arity:             collection.Arity,
		Atoms:             collection.Arity / 3,
		CreatedAt:         time.Now().UTC(),
	}
	return ld, nil
}

// xyzOptions resolves the label and header settings shared by every writing mode.
func xyzOptions(opts *RunOptions) ([]rendering.Option, error) {
	labels := opts.Labels
	if opts.LabelsFrom != "" {
		names, _, err := rendering.ReadXYZ(opts.LabelsFrom)
		if err != nil {
			return nil, err
		}
		labels = names
	}

	var out []rendering.Option
	if len(labels) > 0 {
		out = append(out, rendering.WithLabels(labels))
	}
	if opts.XYZHeader {
		out = append(out, rendering.WithHeader(opts.Comment))
	}
	return out, nil
}

// RunAverage writes the element-wise mean of every solution as one XYZ file.
func RunAverage(ctx context.Context, opts RunOptions) (*types.RunSummary, error) {
	if opts.OutputPath == "" {
		return nil, fmt.Errorf("output path is required")
	}

	ld, err := load(ctx, &opts, types.ModeAverage)
	if err != nil {
		return nil, err
	}

	average, err := averaging.Average(ld.vectors)
	if err != nil {
		return nil, fmt.Errorf("failed to average solutions: %w", err)
	}
	ld.log.Info("averaged solutions", "run_id", ld.runID, "solutions", len(ld.vectors))
	emitProgress(&opts, ld.runID, StepAverage, fmt.Sprintf("Averaged %d solutions", len(ld.vectors)), average)
	if opts.Verbose {
		ld.printer.PrintCoordinates("AVERAGED GEOMETRY", average)
	}

	ld.summary.Outputs = []string{opts.OutputPath}
	ld.summary.Coordinates = average
	summaryData, err := encodeSummary(&opts, ld)
	if err != nil {
		return nil, err
	}

	if err := writeXYZ(&opts, ld, average, opts.OutputPath); err != nil {
		return nil, err
	}
	return finish(&opts, ld, summaryData)
}

func writeXYZ(opts *RunOptions, ld *loaded, coords []float64, path string) error {
	rOpts, err := xyzOptions(opts)
	if err != nil {
		return err
	}
	content, err := rendering.FormatXYZ(coords, rOpts...)
	if err != nil {
		return fmt.Errorf("failed to render xyz: %w", err)
	}
	emitProgress(opts, ld.runID, StepRender, fmt.Sprintf("Rendered %d atoms", len(coords)/3), nil)

	if err := rendering.WriteFile(path, content); err != nil {
		return err
	}
	ld.log.Info("wrote xyz file", "run_id", ld.runID, "path", path, "atoms", len(coords)/3)
	emitProgress(opts, ld.runID, StepWrite, fmt.Sprintf("Wrote %s", path), nil)
	return nil
}

// encodeSummary validates the run summary before any output is written. It returns nil
// when no summary was requested.
func encodeSummary(opts *RunOptions, ld *loaded) ([]byte, error) {
	if opts.SummaryPath == "" {
		return nil, nil
	}
	data, err := schemas.ValidateValue(schemafiles.MustGet(schemafiles.RunSummary), ld.summary)
	if err != nil {
		return nil, fmt.Errorf("run summary does not validate against schema: %w", err)
	}
	return data, nil
}

// finish writes the encoded run summary and prints it in verbose mode.
func finish(opts *RunOptions, ld *loaded, data []byte) (*types.RunSummary, error) {
	if opts.SummaryPath != "" {
		if err := rendering.WriteFile(opts.SummaryPath, string(data)+"\n"); err != nil {
			return nil, err
		}
		ld.log.Info("wrote run summary", "run_id", ld.runID, "path", opts.SummaryPath)
	}
	if opts.Verbose {
		ld.printer.PrintSummary(ld.summary)
	}
	return ld.summary, nil
}
