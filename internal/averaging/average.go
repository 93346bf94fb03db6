// Package averaging reduces many solution coordinate vectors to their element-wise mean.
package averaging

import (
	"gonum.org/v1/gonum/floats"

	"github.com/jonathan/interval-barycentre/internal/geometry"
)

// Average returns the element-wise arithmetic mean of vectors. All vectors must have
// the length of the first one. The inputs are left untouched.
func Average(vectors [][]float64) ([]float64, error) {
	if len(vectors) == 0 {
		return nil, &geometry.EmptyInputError{Message: "no solutions to average"}
	}

	width := len(vectors[0])
	sum := make([]float64, width)
	for i, v := range vectors {
		if len(v) != width {
			return nil, &geometry.ShapeMismatchError{
				Message:  "vector length differs from the first vector",
				Index:    i,
				Expected: width,
				Got:      len(v),
			}
		}
		floats.Add(sum, v)
	}

	n := float64(len(vectors))
	for i := range sum {
		sum[i] /= n
	}
	return sum, nil
}
