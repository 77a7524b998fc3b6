package slide

import "math"

// Weights scale each axis in the distance metric. A larger weight makes
// movement along that axis cheaper.
type Weights struct {
	D0 float64 `json:"d0" toml:"d0"`
	D1 float64 `json:"d1" toml:"d1"`
	D2 float64 `json:"d2" toml:"d2"`
}

// DefaultWeights prefers horizontal movement, then vertical, then spacing.
var DefaultWeights = Weights{D0: 4, D1: 2, D2: 1}

// Valid reports whether every weight is positive and finite.
func (w Weights) Valid() bool {
	for _, x := range [...]float64{w.D0, w.D1, w.D2} {
		if !(x > 0) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Distance is the weighted Euclidean norm of one pin's offset.
func (w Weights) Distance(v Variation) float64 {
	a, b, c := float64(v[0]), float64(v[1]), float64(v[2])
	return math.Sqrt(a*a/w.D0 + b*b/w.D1 + c*c/w.D2)
}

// Total sums the per-pin distances of a whole-board candidate.
func (w Weights) Total(vs []Variation) float64 {
	var sum float64
	for _, v := range vs {
		sum += w.Distance(v)
	}
	return sum
}
