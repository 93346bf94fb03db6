package geometry

// Interval is one closed range reported by the solver for a single coordinate.
// Lower <= Upper is expected but not enforced.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Midpoint returns the barycentre of the interval. The operation order is kept as
// lower + (upper-lower)/2 so results match the reference bit for bit.
func (i Interval) Midpoint() float64 {
	return i.Lower + (i.Upper-i.Lower)/2
}

// Midpoints maps a solution to its coordinate vector.
func Midpoints(solution []Interval) []float64 {
	out := make([]float64, len(solution))
	for k, in := range solution {
		out[k] = in.Midpoint()
	}
	return out
}
