// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/interval-barycentre/internal/geometry"
	"github.com/jonathan/interval-barycentre/internal/rendering"
	"github.com/jonathan/interval-barycentre/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSummary outputs the counts gathered while reading the results file.
func (p *Printer) PrintSummary(summary *types.RunSummary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:       %s\n", summary.RunID))
	sb.WriteString(fmt.Sprintf("Mode:      %s\n", summary.Mode))
	sb.WriteString(fmt.Sprintf("Input:     %s\n", summary.Input))
	sb.WriteString(fmt.Sprintf("Section:   %s\n", summary.Section))
	sb.WriteString(fmt.Sprintf("Solutions: %d (arity %d, %d atoms)\n", summary.Solutions, summary.Arity, summary.Atoms))
	if summary.BlankLinesSkipped > 0 {
		sb.WriteString(fmt.Sprintf("Skipped:   %d blank lines\n", summary.BlankLinesSkipped))
	}

	count := min(len(summary.Outputs), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("Output:    %s\n", summary.Outputs[i]))
	}
	if len(summary.Outputs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more files\n", len(summary.Outputs)-maxItemsToShow))
	}

	p.printBox("RUN SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCoordinates outputs the first atoms of a coordinate vector.
func (p *Printer) PrintCoordinates(title string, coords []float64) {
	vec := geometry.CoordinateVector(coords)
	if len(vec) == 0 || vec.ValidateTriples() != nil {
		return
	}

	var sb strings.Builder
	count := min(vec.Atoms(), maxItemsToShow)
	for i := 0; i < count; i++ {
		a := vec.Atom(i)
		sb.WriteString(fmt.Sprintf("#%d  %s %s %s\n", i+1,
			shortFloat(a[0]), shortFloat(a[1]), shortFloat(a[2])))
	}
	if vec.Atoms() > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more atoms\n", vec.Atoms()-maxItemsToShow))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintConstraintReport outputs violated constraints, or a single line when all hold.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintConstraintReport(report *types.ConstraintReport) {
	if report == nil {
		return
	}
	if report.Violated == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fmt.Sprintf("ALL %d CONSTRAINTS SATISFIED", report.Satisfied))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Violated %d of %d constraints:\n\n", report.Violated, len(report.Checks)))
	shown := 0
	for _, c := range report.Checks {
		if c.Satisfied {
			continue
		}
		if shown == maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more\n", report.Violated-shown))
			break
		}
		sb.WriteString(fmt.Sprintf("%d-%d  d=%s not in [%s, %s]\n", c.ID1, c.ID2,
			shortFloat(c.Distance), rendering.FormatFloat(c.Lower), rendering.FormatFloat(c.Upper)))
		shown++
	}

	p.printBox("CONSTRAINT VIOLATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

func shortFloat(f float64) string {
	return fmt.Sprintf("%.4f", f)
}
