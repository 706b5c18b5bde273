package visualizer

type ChartType string

const (
	Bar         ChartType = "bar"
	Line        ChartType = "line"
	Pie         ChartType = "pie"
	Scatter     ChartType = "scatter"
	Histogram   ChartType = "histogram"
	Box         ChartType = "box"
	Area        ChartType = "area"
	Donut       ChartType = "donut"
	Violin      ChartType = "violin"
	Heatmap     ChartType = "heatmap"
	Bubble      ChartType = "bubble"
	Radar       ChartType = "radar"
	Treemap     ChartType = "treemap"
	Sunburst    ChartType = "sunburst"
	Density     ChartType = "density"
	Ridgeline   ChartType = "ridgeline"
	Candlestick ChartType = "candlestick"
	Waterfall   ChartType = "waterfall"
	Gantt       ChartType = "gantt"
	Sankey      ChartType = "sankey"
	Chord       ChartType = "chord"
	Funnel      ChartType = "funnel"
	StackedBar  ChartType = "stacked_bar"
	GroupedBar  ChartType = "grouped_bar"
	MultiLine   ChartType = "multi_line"
	StackedArea ChartType = "stacked_area"
)

// Parameters configures a chart. Column references name dataset columns;
// unset optional numbers are nil.
type Parameters struct {
	XAxis     string `json:"x_axis,omitempty"`
	YAxis     string `json:"y_axis,omitempty"`
	ZAxis     string `json:"z_axis,omitempty"`
	ColorBy   string `json:"color_by,omitempty"`
	SizeBy    string `json:"size_by,omitempty"`
	ShapeBy   string `json:"shape_by,omitempty"`
	OpacityBy string `json:"opacity_by,omitempty"`

	// one of sum, mean, count, median, min, max, std, var. Defaults to sum.
	Aggregation string `json:"aggregation,omitempty"`
	GroupBy     string `json:"group_by,omitempty"`
	StackBy     string `json:"stack_by,omitempty"`

	Bins      *int     `json:"bins,omitempty"`
	Bandwidth *float64 `json:"bandwidth,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`

	SortBy    string `json:"sort_by,omitempty"`
	SortOrder string `json:"sort_order,omitempty"`
	Limit     *int   `json:"limit,omitempty"`

	// day, week, month, quarter or year
	TimeUnit      string `json:"time_unit,omitempty"`
	RollingWindow *int   `json:"rolling_window,omitempty"`

	Normalize  bool `json:"normalize,omitempty"`
	Percentage bool `json:"percentage,omitempty"`
	Cumulative bool `json:"cumulative,omitempty"`

	AdditionalParams map[string]any `json:"additional_params,omitempty"`
}

type Request struct {
	DatasetID  string     `json:"file_id"`
	ChartType  ChartType  `json:"chart_type"`
	Parameters Parameters `json:"parameters"`
}

// Record is one output row. Its keys are fixed per chart type.
type Record = map[string]any

type Payload struct {
	Data     []Record `json:"data"`
	Metadata Metadata `json:"metadata"`
}
