package common

import "math"

// Quantile returns the q-th quantile (0 <= q <= 1) of an ascending slice,
// linearly interpolating between the two nearest order statistics.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	pos := q * float64(n-1)
	lo := math.Floor(pos)
	hi := math.Ceil(pos)
	if lo == hi {
		return sorted[int(lo)]
	}
	frac := pos - lo
	return sorted[int(lo)]*(1-frac) + sorted[int(hi)]*frac
}
