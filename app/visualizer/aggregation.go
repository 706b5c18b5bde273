package visualizer

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"github.com/mahesh-hegde/instante/app/common"
)

type Aggregation string

const (
	Sum    Aggregation = "sum"
	Mean   Aggregation = "mean"
	Count  Aggregation = "count"
	Median Aggregation = "median"
	Min    Aggregation = "min"
	Max    Aggregation = "max"
	Std    Aggregation = "std"
	Var    Aggregation = "var"
)

var Aggregations = []Aggregation{Sum, Mean, Count, Median, Min, Max, Std, Var}

var aggregationAliases = map[string]Aggregation{
	"avg":     Mean,
	"average": Mean,
	"total":   Sum,
	"size":    Count,
}

// Reducer names from the wider dataframe vocabulary. They are well formed
// but not supported here, and fall back to mean.
var fallbackReducers = []string{"first", "last", "nunique", "prod", "sem", "mode", "skew", "kurt"}

// ParseAggregation resolves an aggregation keyword. The empty string means
// sum.
func ParseAggregation(s string) (Aggregation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Sum, nil
	}
	if slices.Contains(Aggregations, Aggregation(s)) {
		return Aggregation(s), nil
	}
	if a, ok := aggregationAliases[s]; ok {
		return a, nil
	}
	if slices.Contains(fallbackReducers, s) {
		slog.Warn("unsupported aggregation, falling back to mean", "aggregation", s)
		return Mean, nil
	}
	return "", invalid("aggregation", "unknown aggregation %q, expected one of sum, mean, count, median, min, max, std, var", s)
}

// Reduce applies the aggregation to the non-null values of one group. ok is
// false when the result is undefined, eg: the mean of no values.
func (a Aggregation) Reduce(xs []float64) (v float64, ok bool) {
	switch a {
	case Count:
		return float64(len(xs)), true
	case Sum:
		total := 0.0
		for _, x := range xs {
			total += x
		}
		return total, true
	}
	if len(xs) == 0 {
		return 0, false
	}
	switch a {
	case Mean:
		return stats.Mean(xs), true
	case Median:
		sorted := slices.Clone(xs)
		slices.Sort(sorted)
		return common.Quantile(sorted, 0.5), true
	case Min:
		lo, _ := stats.Bounds(xs)
		return lo, true
	case Max:
		_, hi := stats.Bounds(xs)
		return hi, true
	case Std, Var:
		if len(xs) < 2 {
			return 0, false
		}
		if a == Std {
			return stats.StdDev(xs), true
		}
		return stats.Variance(xs), true
	}
	return stats.Mean(xs), true
}
