package geometry

// CoordinateVector is a flat list of atom positions laid out as x0 y0 z0 x1 y1 z1 ...
type CoordinateVector []float64

// ValidateTriples reports a ShapeMismatchError when the vector cannot be split into atoms.
func (v CoordinateVector) ValidateTriples() error {
	if len(v)%3 != 0 {
		return &ShapeMismatchError{
			Message:  "coordinate vector length is not a multiple of 3",
			Index:    -1,
			Expected: len(v) - len(v)%3 + 3,
			Got:      len(v),
		}
	}
	return nil
}

// Atoms returns the number of whole atoms in the vector.
func (v CoordinateVector) Atoms() int {
	return len(v) / 3
}

// Atom returns the position of atom i (0-based).
func (v CoordinateVector) Atom(i int) [3]float64 {
	return [3]float64{v[3*i], v[3*i+1], v[3*i+2]}
}
