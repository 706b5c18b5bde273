package visualizer

import (
	"errors"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

const (
	violinPoints  = 50
	densityPoints = 100

	// default bandwidth is the observed range divided by this
	bandwidthDivisor = 20
)

var errNoValues = errors.New("no non-null values to estimate a density from")

type densityCurve struct {
	xs, ys    []float64
	bandwidth float64
	// degenerate is set when the sample has a single distinct value and no
	// bandwidth was given: the grid collapses to that value and the density
	// is reported as zero instead of dividing by a zero bandwidth.
	degenerate bool
}

// estimateDensity evaluates a Gaussian kernel density estimate of xs at
// points evenly spaced from min(xs) to max(xs). A bandwidth <= 0 selects
// (max-min)/20.
func estimateDensity(xs []float64, bandwidth float64, points int) (densityCurve, error) {
	if len(xs) == 0 {
		return densityCurve{}, errNoValues
	}
	lo, hi := stats.Bounds(xs)
	grid := vec.Linspace(lo, hi, points)

	if bandwidth <= 0 {
		bandwidth = (hi - lo) / bandwidthDivisor
	}
	if bandwidth <= 0 {
		return densityCurve{xs: grid, ys: make([]float64, points), degenerate: true}, nil
	}

	kde := stats.KDE{
		Sample:    stats.Sample{Xs: xs},
		Kernel:    stats.GaussianKernel,
		Bandwidth: bandwidth,
	}
	return densityCurve{xs: grid, ys: vec.Map(kde.PDF, grid), bandwidth: bandwidth}, nil
}
