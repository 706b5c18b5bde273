package suggest

import (
	"context"

	"github.com/mahesh-hegde/instante/app/dataset"
	"github.com/mahesh-hegde/instante/app/visualizer"
)

// Suggestion is a chart worth looking at for a dataset. Priority ranges
// from 1 to 5, 5 being the most important.
type Suggestion struct {
	Title       string                `json:"title"`
	ChartType   visualizer.ChartType  `json:"chart_type"`
	Parameters  visualizer.Parameters `json:"parameters"`
	Insight     string                `json:"insight"`
	InsightHTML string                `json:"insight_html,omitempty"`
	Priority    int                   `json:"priority"`
}

// Generator proposes charts for a dataset. Implementations may return
// suggestions that do not validate against ds; callers filter them.
type Generator interface {
	Suggest(ctx context.Context, ds *dataset.Dataset, profile *dataset.Profile) ([]Suggestion, error)
}

type DataOverview struct {
	TotalRows          int      `json:"total_rows"`
	TotalColumns       int      `json:"total_columns"`
	NumericColumns     []string `json:"numeric_columns"`
	CategoricalColumns []string `json:"categorical_columns"`
	MissingValuesCount int      `json:"missing_values_count"`
}

type Analysis struct {
	FileID            string       `json:"file_id"`
	Suggestions       []Suggestion `json:"suggestions"`
	DataOverview      DataOverview `json:"data_overview"`
	AnalysisTimestamp string       `json:"analysis_timestamp"`
}

func overviewOf(p *dataset.Profile) DataOverview {
	return DataOverview{
		TotalRows:          p.Shape[0],
		TotalColumns:       p.Shape[1],
		NumericColumns:     p.NumericColumns,
		CategoricalColumns: p.CategoricalColumns,
		MissingValuesCount: p.TotalMissing(),
	}
}
