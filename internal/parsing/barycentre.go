package parsing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/interval-barycentre/internal/geometry"
)

const (
	intervalSeparator = " ; "
	boundSeparator    = ", "
)

// ParseSolution decodes one solution line of the form "([l0, u0] ; [l1, u1] ; ...)".
func ParseSolution(line string) ([]geometry.Interval, error) {
	if len(line) < 2 || line[0] != '(' || line[len(line)-1] != ')' {
		return nil, &geometry.FormatError{Message: "solution must be wrapped in parentheses"}
	}

	pieces := strings.Split(line[1:len(line)-1], intervalSeparator)
	intervals := make([]geometry.Interval, 0, len(pieces))
	for k, piece := range pieces {
		in, err := parseInterval(piece)
		if err != nil {
			return nil, &geometry.FormatError{
				Message: fmt.Sprintf("interval %d", k),
				Cause:   err,
			}
		}
		intervals = append(intervals, in)
	}
	return intervals, nil
}

// Barycentres returns the midpoint of every interval of a solution line, in order.
func Barycentres(line string) ([]float64, error) {
	intervals, err := ParseSolution(line)
	if err != nil {
		return nil, err
	}
	return geometry.Midpoints(intervals), nil
}

func parseInterval(s string) (geometry.Interval, error) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return geometry.Interval{}, fmt.Errorf("%q is not wrapped in brackets", s)
	}

	tokens := strings.Split(s[1:len(s)-1], boundSeparator)
	if len(tokens) != 2 {
		return geometry.Interval{}, fmt.Errorf("%q has %d bounds, want 2", s, len(tokens))
	}

	lower, err := parseBound(tokens[0])
	if err != nil {
		return geometry.Interval{}, err
	}
	upper, err := parseBound(tokens[1])
	if err != nil {
		return geometry.Interval{}, err
	}
	return geometry.Interval{Lower: lower, Upper: upper}, nil
}

func parseBound(token string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid bound %q: %w", token, err)
	}
	return f, nil
}
