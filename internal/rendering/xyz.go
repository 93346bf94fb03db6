package rendering

import (
	"strconv"
	"strings"

	"github.com/jonathan/interval-barycentre/internal/geometry"
)

// DefaultLabel is written for every atom unless labels are supplied.
const DefaultLabel = "C"

type xyzOptions struct {
	labels  []string
	header  bool
	comment string
}

// Option configures FormatXYZ.
type Option func(*xyzOptions)

// WithLabels sets one element label per atom. A nil or empty slice keeps DefaultLabel.
func WithLabels(labels []string) Option {
	return func(o *xyzOptions) {
		o.labels = labels
	}
}

// WithHeader prefixes the output with the atom count and a comment line, as in the
// full XYZ format.
func WithHeader(comment string) Option {
	return func(o *xyzOptions) {
		o.header = true
		o.comment = comment
	}
}

// FormatXYZ renders a flat coordinate vector as one "<label> x y z" line per atom.
// Without options the output matches the reference exactly: no header and "C" for
// every atom.
func FormatXYZ(coords []float64, opts ...Option) (string, error) {
	o := xyzOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	vec := geometry.CoordinateVector(coords)
	if err := vec.ValidateTriples(); err != nil {
		return "", err
	}

	atoms := vec.Atoms()
	if len(o.labels) > 0 && len(o.labels) != atoms {
		return "", &geometry.ShapeMismatchError{
			Message:  "label count differs from atom count",
			Index:    -1,
			Expected: atoms,
			Got:      len(o.labels),
		}
	}

	var sb strings.Builder
	if o.header {
		sb.WriteString(strconv.Itoa(atoms))
		sb.WriteString("\n")
		sb.WriteString(strings.ReplaceAll(o.comment, "\n", " "))
		sb.WriteString("\n")
	}

	for i := 0; i < atoms; i++ {
		label := DefaultLabel
		if len(o.labels) > 0 {
			label = o.labels[i]
		}
		a := vec.Atom(i)
		sb.WriteString(label)
		for _, c := range a {
			sb.WriteString(" ")
			sb.WriteString(FormatFloat(c))
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
