package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interval-barycentre/internal/geometry"
)

func writeConstraints(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "constraints.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunCheck(t *testing.T) {
	// averaged atoms are (2,0,0) and (4,1,0): distance sqrt(5)
	cs := writeConstraints(t, "# id1 id2 lower upper\n1 2 2.0 2.5\n1 2 0 1\n")
	out := filepath.Join(t.TempDir(), "report.json")
	var buf bytes.Buffer

	report, err := RunCheck(context.Background(), RunOptions{
		InputPath:       fixture,
		ConstraintsPath: cs,
		OutputPath:      out,
		Verbose:         true,
		Out:             &buf,
	})
	require.NoError(t, err)

	require.Len(t, report.Checks, 2)
	assert.True(t, report.Checks[0].Satisfied)
	assert.False(t, report.Checks[1].Satisfied)
	assert.InDelta(t, 2.2360679, report.Checks[0].Distance, 1e-6)
	assert.Equal(t, 1, report.Satisfied)
	assert.Equal(t, 1, report.Violated)
	assert.Contains(t, buf.String(), "1-2")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(readFile(t, out)), &decoded))
	assert.EqualValues(t, 1, decoded["violated"])
}

func TestRunCheck_AtomOutOfRange(t *testing.T) {
	cs := writeConstraints(t, "1 3 0 1\n")

	_, err := RunCheck(context.Background(), RunOptions{
		InputPath:       fixture,
		ConstraintsPath: cs,
	})
	var shapeErr *geometry.ShapeMismatchError
	require.ErrorAs(t, err, &shapeErr)
}

func TestRunCheck_BadConstraints(t *testing.T) {
	cs := writeConstraints(t, "1 2 zero 1\n")

	_, err := RunCheck(context.Background(), RunOptions{
		InputPath:       fixture,
		ConstraintsPath: cs,
	})
	var formatErr *geometry.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, 1, formatErr.Line)
}

func TestRunCheck_RequiresConstraints(t *testing.T) {
	_, err := RunCheck(context.Background(), RunOptions{InputPath: fixture})
	assert.ErrorContains(t, err, "constraints path is required")
}
