// Package constraints checks coordinate vectors against the pairwise distance bounds
// the interval solver was given.
package constraints

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/jonathan/interval-barycentre/internal/geometry"
)

// Constraint bounds the distance between two atoms. IDs are 1-based, as in the
// solver's input files.
type Constraint struct {
	ID1   int
	ID2   int
	Lower float64
	Upper float64
}

// Check is the outcome for a single constraint.
type Check struct {
	ID1       int     `json:"id1"`
	ID2       int     `json:"id2"`
	Lower     float64 `json:"lower"`
	Upper     float64 `json:"upper"`
	Distance  float64 `json:"distance"`
	Satisfied bool    `json:"satisfied"`
}

// Load reads a constraints file: one "id1 id2 lower upper" entry per line, separated
// by whitespace. Blank lines and lines starting with '#' are ignored.
func Load(path string) ([]Constraint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open constraints file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var out []Constraint
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c, err := parseConstraint(line)
		if err != nil {
			return nil, &geometry.FormatError{
				Message: fmt.Sprintf("constraints file %s", path),
				Line:    lineNo,
				Cause:   err,
			}
		}
		out = append(out, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read constraints file %s: %w", path, err)
	}
	return out, nil
}

func parseConstraint(line string) (Constraint, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return Constraint{}, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}

	id1, err := strconv.Atoi(fields[0])
	if err != nil {
		return Constraint{}, fmt.Errorf("invalid atom id %q: %w", fields[0], err)
	}
	id2, err := strconv.Atoi(fields[1])
	if err != nil {
		return Constraint{}, fmt.Errorf("invalid atom id %q: %w", fields[1], err)
	}
	lower, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return Constraint{}, fmt.Errorf("invalid lower bound %q: %w", fields[2], err)
	}
	upper, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return Constraint{}, fmt.Errorf("invalid upper bound %q: %w", fields[3], err)
	}

	return Constraint{ID1: id1, ID2: id2, Lower: lower, Upper: upper}, nil
}

// Evaluate measures every constrained pair in coords.
func Evaluate(coords []float64, cs []Constraint) ([]Check, error) {
	vec := geometry.CoordinateVector(coords)
	if err := vec.ValidateTriples(); err != nil {
		return nil, err
	}

	atoms := vec.Atoms()
	checks := make([]Check, 0, len(cs))
	for i, c := range cs {
		for _, id := range []int{c.ID1, c.ID2} {
			if id < 1 || id > atoms {
				return nil, &geometry.ShapeMismatchError{
					Message:  fmt.Sprintf("constraint %d references atom %d", i, id),
					Index:    i,
					Expected: atoms,
					Got:      id,
				}
			}
		}

		a := vec.Atom(c.ID1 - 1)
		b := vec.Atom(c.ID2 - 1)
		d := floats.Distance(a[:], b[:], 2)
		checks = append(checks, Check{
			ID1:       c.ID1,
			ID2:       c.ID2,
			Lower:     c.Lower,
			Upper:     c.Upper,
			Distance:  d,
			Satisfied: d >= c.Lower && d <= c.Upper,
		})
	}
	return checks, nil
}
