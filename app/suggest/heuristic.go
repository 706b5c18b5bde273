package suggest

import (
	"context"
	"fmt"
	"slices"

	"github.com/mahesh-hegde/instante/app/dataset"
	"github.com/mahesh-hegde/instante/app/visualizer"
)

const (
	maxSuggestions = 5

	// pie charts are only suggested for columns with few categories
	maxPieSlices = 8
)

// HeuristicGenerator suggests charts from column kinds alone.
type HeuristicGenerator struct{}

var _ Generator = HeuristicGenerator{}

func (HeuristicGenerator) Suggest(ctx context.Context, ds *dataset.Dataset, p *dataset.Profile) ([]Suggestion, error) {
	var out []Suggestion
	nums, cats, times := p.NumericColumns, p.CategoricalColumns, p.DatetimeColumns

	if len(nums) > 0 {
		out = append(out, Suggestion{
			Title:      fmt.Sprintf("Distribution of %s", nums[0]),
			ChartType:  visualizer.Histogram,
			Parameters: visualizer.Parameters{XAxis: nums[0]},
			Insight:    fmt.Sprintf("Shows the distribution pattern of `%s` values", nums[0]),
			Priority:   3,
		})
	}

	if len(cats) > 0 {
		out = append(out, Suggestion{
			Title:      fmt.Sprintf("Count by %s", cats[0]),
			ChartType:  visualizer.Bar,
			Parameters: visualizer.Parameters{XAxis: cats[0], Aggregation: "count"},
			Insight:    fmt.Sprintf("Shows the frequency of different `%s` categories", cats[0]),
			Priority:   3,
		})
	}

	if len(nums) >= 2 {
		out = append(out, Suggestion{
			Title:      fmt.Sprintf("%s vs %s", nums[0], nums[1]),
			ChartType:  visualizer.Scatter,
			Parameters: visualizer.Parameters{XAxis: nums[0], YAxis: nums[1]},
			Insight:    fmt.Sprintf("Reveals the relationship between `%s` and `%s`", nums[0], nums[1]),
			Priority:   4,
		})
	}

	if len(times) > 0 && len(nums) > 0 {
		out = append(out, Suggestion{
			Title:      fmt.Sprintf("%s over time", nums[0]),
			ChartType:  visualizer.Line,
			Parameters: visualizer.Parameters{XAxis: times[0], YAxis: nums[0]},
			Insight:    fmt.Sprintf("Shows how `%s` changes along `%s`", nums[0], times[0]),
			Priority:   4,
		})
	}

	if len(cats) > 0 && len(nums) > 0 {
		out = append(out, Suggestion{
			Title:      fmt.Sprintf("%s by %s", nums[0], cats[0]),
			ChartType:  visualizer.Box,
			Parameters: visualizer.Parameters{XAxis: cats[0], YAxis: nums[0]},
			Insight:    fmt.Sprintf("Compares the spread of `%s` across `%s` groups, outliers included", nums[0], cats[0]),
			Priority:   2,
		})
	}

	for _, c := range cats {
		if n := p.DistinctValues[c]; n > 1 && n <= maxPieSlices {
			out = append(out, Suggestion{
				Title:      fmt.Sprintf("Share of %s", c),
				ChartType:  visualizer.Pie,
				Parameters: visualizer.Parameters{XAxis: c},
				Insight:    fmt.Sprintf("Shows what fraction of rows falls in each `%s` category", c),
				Priority:   2,
			})
			break
		}
	}

	slices.SortStableFunc(out, func(a, b Suggestion) int {
		return b.Priority - a.Priority
	})
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out, nil
}
