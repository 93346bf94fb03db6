package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interval-barycentre/internal/geometry"
	"github.com/jonathan/interval-barycentre/internal/types"
)

const fixture = "testdata/two_solutions.txt"

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunAverage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "average.xyz")

	summary, err := RunAverage(context.Background(), RunOptions{
		InputPath:  fixture,
		OutputPath: out,
	})
	require.NoError(t, err)

	// midpoints are (1,0,0,3,0,0) and (3,0,0,5,2,0)
	assert.Equal(t, "C 2.0 0.0 0.0\nC 4.0 1.0 0.0\n", readFile(t, out))
	assert.Equal(t, types.ModeAverage, summary.Mode)
	assert.Equal(t, "uncertain", summary.Section)
	assert.Equal(t, 2, summary.Solutions)
	assert.Equal(t, 2, summary.BlankLinesSkipped)
	assert.Equal(t, 6, summary.Arity)
	assert.Equal(t, 2, summary.Atoms)
	assert.Equal(t, []string{out}, summary.Outputs)
	assert.Equal(t, []float64{2, 0, 0, 4, 1, 0}, summary.Coordinates)
}

func TestRunAverage_SectionLabelsAndHeader(t *testing.T) {
	out := filepath.Join(t.TempDir(), "accepted.xyz")

	_, err := RunAverage(context.Background(), RunOptions{
		InputPath:  fixture,
		OutputPath: out,
		Section:    "accepted",
		Labels:     []string{"O", "H"},
		XYZHeader:  true,
		Comment:    "accepted",
	})
	require.NoError(t, err)
	assert.Equal(t, "2\naccepted\nO 1.0 1.0 1.0\nH 4.0 0.0 0.0\n", readFile(t, out))
}

func TestRunAverage_LabelsFrom(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "ref.xyz")
	require.NoError(t, os.WriteFile(ref, []byte("2\nref\nN 0 0 0\nO 1 1 1\n"), 0644))
	out := filepath.Join(dir, "out.xyz")

	_, err := RunAverage(context.Background(), RunOptions{
		InputPath:  fixture,
		OutputPath: out,
		LabelsFrom: ref,
	})
	require.NoError(t, err)
	assert.Equal(t, "N 2.0 0.0 0.0\nO 4.0 1.0 0.0\n", readFile(t, out))
}

func TestRunAverage_LabelCountMismatch(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.xyz")

	_, err := RunAverage(context.Background(), RunOptions{
		InputPath:  fixture,
		OutputPath: out,
		Labels:     []string{"O"},
	})
	var shapeErr *geometry.ShapeMismatchError
	require.ErrorAs(t, err, &shapeErr)
	assert.NoFileExists(t, out)
}

func TestRunAverage_EmptySection(t *testing.T) {
	_, err := RunAverage(context.Background(), RunOptions{
		InputPath:  fixture,
		OutputPath: filepath.Join(t.TempDir(), "out.xyz"),
		Section:    "rejected",
	})
	var emptyErr *geometry.EmptyInputError
	require.ErrorAs(t, err, &emptyErr)
}

func TestRunAverage_MissingMarker(t *testing.T) {
	input := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(input, []byte("nothing to see\n"), 0644))

	_, err := RunAverage(context.Background(), RunOptions{
		InputPath:  input,
		OutputPath: filepath.Join(t.TempDir(), "out.xyz"),
	})
	var formatErr *geometry.FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestRunAverage_MissingInput(t *testing.T) {
	_, err := RunAverage(context.Background(), RunOptions{
		InputPath:  filepath.Join(t.TempDir(), "missing.txt"),
		OutputPath: filepath.Join(t.TempDir(), "out.xyz"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read results file")
}

func TestRunAverage_RequiresPaths(t *testing.T) {
	_, err := RunAverage(context.Background(), RunOptions{OutputPath: "x.xyz"})
	assert.ErrorContains(t, err, "input path is required")

	_, err = RunAverage(context.Background(), RunOptions{InputPath: fixture})
	assert.ErrorContains(t, err, "output path is required")
}

func TestRunAverage_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunAverage(ctx, RunOptions{
		InputPath:  fixture,
		OutputPath: filepath.Join(t.TempDir(), "out.xyz"),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunAverage_SummaryFile(t *testing.T) {
	dir := t.TempDir()
	summaryPath := filepath.Join(dir, "summary.json")

	summary, err := RunAverage(context.Background(), RunOptions{
		InputPath:   fixture,
		OutputPath:  filepath.Join(dir, "out.xyz"),
		SummaryPath: summaryPath,
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(readFile(t, summaryPath)), &decoded))
	assert.Equal(t, summary.RunID.String(), decoded["run_id"])
	assert.Equal(t, "average", decoded["mode"])
	assert.EqualValues(t, 2, decoded["solutions"])
	assert.EqualValues(t, 2, decoded["blank_lines_skipped"])
}

func TestRunAverage_VerboseAndProgress(t *testing.T) {
	var buf bytes.Buffer
	var mu sync.Mutex
	var steps []string

	_, err := RunAverage(context.Background(), RunOptions{
		InputPath:  fixture,
		OutputPath: filepath.Join(t.TempDir(), "out.xyz"),
		Verbose:    true,
		Out:        &buf,
		OnProgress: func(event ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			assert.NotEmpty(t, event.RunID)
			steps = append(steps, event.Step)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{StepRead, StepExtract, StepAverage, StepRender, StepWrite}, steps)
	assert.Contains(t, buf.String(), "AVERAGED GEOMETRY")
}

func TestRunSplit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")

	summary, err := RunSplit(context.Background(), RunOptions{
		InputPath:  fixture,
		OutputPath: dir,
		Jobs:       4,
	})
	require.NoError(t, err)

	require.Len(t, summary.Outputs, 2)
	assert.Equal(t, filepath.Join(dir, "solution0.xyz"), summary.Outputs[0])
	assert.Equal(t, "C 1.0 0.0 0.0\nC 3.0 0.0 0.0\n", readFile(t, summary.Outputs[0]))
	assert.Equal(t, "C 3.0 0.0 0.0\nC 5.0 2.0 0.0\n", readFile(t, summary.Outputs[1]))
	assert.Nil(t, summary.Coordinates)
}

func TestRunSplit_Prefix(t *testing.T) {
	dir := t.TempDir()

	_, err := RunSplit(context.Background(), RunOptions{
		InputPath:  fixture,
		OutputPath: dir,
		Prefix:     "frame_",
	})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "frame_0.xyz"))
	assert.FileExists(t, filepath.Join(dir, "frame_1.xyz"))
}

func TestRunSplit_Empty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")

	_, err := RunSplit(context.Background(), RunOptions{
		InputPath:  fixture,
		OutputPath: dir,
		Section:    "rejected",
	})
	var emptyErr *geometry.EmptyInputError
	require.ErrorAs(t, err, &emptyErr)
	assert.NoDirExists(t, dir)
}

func TestRunPick(t *testing.T) {
	out := filepath.Join(t.TempDir(), "pick.xyz")

	summary, err := RunPick(context.Background(), RunOptions{
		InputPath:  fixture,
		OutputPath: out,
		Index:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, "C 3.0 0.0 0.0\nC 5.0 2.0 0.0\n", readFile(t, out))
	assert.Equal(t, types.ModePick, summary.Mode)
}

func TestRunPick_OutOfRange(t *testing.T) {
	for _, index := range []int{-1, 2} {
		_, err := RunPick(context.Background(), RunOptions{
			InputPath:  fixture,
			OutputPath: filepath.Join(t.TempDir(), "pick.xyz"),
			Index:      index,
		})
		assert.ErrorContains(t, err, "out of range")
	}
}

func writeNaNResults(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nan.txt")
	require.NoError(t, os.WriteFile(path, []byte("Uncertain intervals:\n([nan, 1] ; [0, 0] ; [0, 0])\n"), 0644))
	return path
}

func TestRunAverage_NonFiniteWithoutSummary(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nan.xyz")

	_, err := RunAverage(context.Background(), RunOptions{
		InputPath:  writeNaNResults(t),
		OutputPath: out,
	})
	require.NoError(t, err)
	assert.Equal(t, "C nan 0.0 0.0\n", readFile(t, out))
}

func TestRunAverage_UnencodableSummaryWritesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "nan.xyz")
	summaryPath := filepath.Join(dir, "summary.json")

	_, err := RunAverage(context.Background(), RunOptions{
		InputPath:   writeNaNResults(t),
		OutputPath:  out,
		SummaryPath: summaryPath,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run summary")
	assert.NoFileExists(t, out)
	assert.NoFileExists(t, summaryPath)
}

func TestRunPick_UnencodableSummaryWritesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "nan.xyz")

	_, err := RunPick(context.Background(), RunOptions{
		InputPath:   writeNaNResults(t),
		OutputPath:  out,
		SummaryPath: filepath.Join(dir, "summary.json"),
	})
	require.Error(t, err)
	assert.NoFileExists(t, out)
}

func TestRunSplit_SummaryListsFiles(t *testing.T) {
	dir := t.TempDir()
	summaryPath := filepath.Join(dir, "summary.json")

	summary, err := RunSplit(context.Background(), RunOptions{
		InputPath:   fixture,
		OutputPath:  filepath.Join(dir, "frames"),
		SummaryPath: summaryPath,
	})
	require.NoError(t, err)

	var decoded struct {
		Outputs []string `json:"outputs"`
	}
	require.NoError(t, json.Unmarshal([]byte(readFile(t, summaryPath)), &decoded))
	assert.Equal(t, summary.Outputs, decoded.Outputs)
	assert.Len(t, decoded.Outputs, 2)
}
