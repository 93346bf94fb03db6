package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/interval-barycentre/internal/geometry"
	"github.com/jonathan/interval-barycentre/internal/rendering"
	"github.com/jonathan/interval-barycentre/internal/types"
)

// DefaultPrefix names split output files: solution0.xyz, solution1.xyz, ...
const DefaultPrefix = "solution"

// RunSplit writes every solution to its own XYZ file inside OutputPath. Files are
// numbered by position among the non-blank solution lines.
func RunSplit(ctx context.Context, opts RunOptions) (*types.RunSummary, error) {
	if opts.OutputPath == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	ld, err := load(ctx, &opts, types.ModeSplit)
	if err != nil {
		return nil, err
	}
	if len(ld.vectors) == 0 {
		return nil, &geometry.EmptyInputError{Message: fmt.Sprintf("no solutions in %s", opts.InputPath)}
	}

	rOpts, err := xyzOptions(&opts)
	if err != nil {
		return nil, err
	}

	// Render everything first so a bad shape fails before any file is written.
	contents := make([]string, len(ld.vectors))
	for i, v := range ld.vectors {
		contents[i], err = rendering.FormatXYZ(v, rOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to render solution %d: %w", i, err)
		}
	}
	emitProgress(&opts, ld.runID, StepRender, fmt.Sprintf("Rendered %d solutions", len(contents)), nil)

	paths := make([]string, len(contents))
	for i := range contents {
		paths[i] = filepath.Join(opts.OutputPath, fmt.Sprintf("%s%d.xyz", prefix, i))
	}
	ld.summary.Outputs = paths
	summaryData, err := encodeSummary(&opts, ld)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutputPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", opts.OutputPath, err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range contents {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if err := rendering.WriteFile(paths[i], contents[i]); err != nil {
				return err
			}
			ld.log.Debug("wrote xyz file", "run_id", ld.runID, "path", paths[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ld.log.Info("wrote solution files", "run_id", ld.runID, "dir", opts.OutputPath, "files", len(paths), "jobs", jobs)
	emitProgress(&opts, ld.runID, StepWrite, fmt.Sprintf("Wrote %d files to %s", len(paths), opts.OutputPath), nil)
	return finish(&opts, ld, summaryData)
}

// RunPick writes the solution at opts.Index (0-based among non-blank lines).
func RunPick(ctx context.Context, opts RunOptions) (*types.RunSummary, error) {
	if opts.OutputPath == "" {
		return nil, fmt.Errorf("output path is required")
	}

	ld, err := load(ctx, &opts, types.ModePick)
	if err != nil {
		return nil, err
	}
	if len(ld.vectors) == 0 {
		return nil, &geometry.EmptyInputError{Message: fmt.Sprintf("no solutions in %s", opts.InputPath)}
	}
	if opts.Index < 0 || opts.Index >= len(ld.vectors) {
		return nil, fmt.Errorf("solution index %d out of range [0, %d)", opts.Index, len(ld.vectors))
	}

	picked := ld.vectors[opts.Index]
	if opts.Verbose {
		ld.printer.PrintCoordinates(fmt.Sprintf("SOLUTION %d", opts.Index), picked)
	}
	ld.summary.Outputs = []string{opts.OutputPath}
	ld.summary.Coordinates = picked
	summaryData, err := encodeSummary(&opts, ld)
	if err != nil {
		return nil, err
	}

	if err := writeXYZ(&opts, ld, picked, opts.OutputPath); err != nil {
		return nil, err
	}
	return finish(&opts, ld, summaryData)
}
