// Package parsing extracts solutions from interval solver results files and turns each
// solution into the midpoints of its intervals.
package parsing

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/interval-barycentre/internal/geometry"
)

// Section headers written by the solver, in file order.
const (
	AcceptedMarker  = "Accepted intervals:"
	RejectedMarker  = "Rejected intervals:"
	UncertainMarker = "Uncertain intervals:"
)

// Section names accepted by ParseSection.
const (
	SectionAccepted  = "accepted"
	SectionRejected  = "rejected"
	SectionUncertain = "uncertain"
)

var sectionMarkers = map[string]string{
	SectionAccepted:  AcceptedMarker,
	SectionRejected:  RejectedMarker,
	SectionUncertain: UncertainMarker,
}

// ReadResultsFile loads a whole results file into memory.
func ReadResultsFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read results file %s: %w", path, err)
	}
	return string(data), nil
}

// ParseResults returns every line following the "Uncertain intervals:" marker line,
// verbatim and in order. Trailing blank lines are kept; callers filter them.
func ParseResults(text string) ([]string, error) {
	return linesAfter(text, UncertainMarker)
}

// ParseSection returns the solution lines of the named section. The uncertain section
// is the last one written and behaves exactly like ParseResults; the others end at the
// next section header.
func ParseSection(text, section string) ([]string, error) {
	marker, ok := sectionMarkers[section]
	if !ok {
		return nil, &geometry.FormatError{Message: fmt.Sprintf("unknown section %q", section)}
	}

	lines, err := linesAfter(text, marker)
	if err != nil || section == SectionUncertain {
		return lines, err
	}

	for i, line := range lines {
		if isSectionHeader(line) {
			return lines[:i], nil
		}
	}
	return lines, nil
}

func linesAfter(text, marker string) ([]string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	needle := marker + "\n"

	idx := strings.Index(text, needle)
	if idx < 0 {
		return nil, &geometry.FormatError{Message: fmt.Sprintf("marker %q not found", marker)}
	}
	if strings.Count(text, needle) > 1 {
		return nil, &geometry.FormatError{Message: fmt.Sprintf("marker %q appears more than once", marker)}
	}

	return strings.Split(text[idx+len(needle):], "\n"), nil
}

func isSectionHeader(line string) bool {
	for _, marker := range sectionMarkers {
		if line == marker {
			return true
		}
	}
	return false
}
