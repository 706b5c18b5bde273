package visualizer

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAggregation(t *testing.T) {
	cases := []struct {
		in      string
		want    Aggregation
		wantErr bool
	}{
		{"", Sum, false},
		{"sum", Sum, false},
		{" Median ", Median, false},
		{"AVG", Mean, false},
		{"average", Mean, false},
		{"total", Sum, false},
		{"size", Count, false},
		{"nunique", Mean, false},
		{"kurt", Mean, false},
		{"bogus", "", true},
		{"sum()", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAggregation(tc.in)
			if tc.wantErr {
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, "aggregation", verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAggregationReduce(t *testing.T) {
	sample := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	cases := []struct {
		name   string
		agg    Aggregation
		xs     []float64
		want   float64
		wantOK bool
	}{
		{"sum", Sum, sample, 40, true},
		{"sum of nothing", Sum, nil, 0, true},
		{"count", Count, sample, 8, true},
		{"count of nothing", Count, nil, 0, true},
		{"mean", Mean, sample, 5, true},
		{"mean of nothing", Mean, nil, 0, false},
		{"median even", Median, []float64{4, 1, 3, 2}, 2.5, true},
		{"median odd", Median, []float64{3, 1, 2}, 2, true},
		{"min", Min, sample, 2, true},
		{"max", Max, sample, 9, true},
		{"sample variance", Var, sample, 32.0 / 7, true},
		{"sample std", Std, sample, math.Sqrt(32.0 / 7), true},
		{"std of one value", Std, []float64{3}, 0, false},
		{"var of nothing", Var, nil, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.agg.Reduce(tc.xs)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.InDelta(t, tc.want, got, 1e-9)
			}
		})
	}
}
