package visualizer

import (
	"slices"
)

type buildFunc func(c *buildContext) ([]Record, Metadata, error)

type chartSpec struct {
	contract contract
	build    buildFunc
}

var (
	stackFields  = []string{"stack_by", "color_by"}
	seriesFields = []string{"group_by", "color_by"}
)

// registry is the single registration site for chart types. A type missing
// here is unsupported.
var registry = map[ChartType]chartSpec{
	Bar: {
		contract: contract{required: []string{"x_axis"}, measures: []string{"y_axis"}, check: checkBar},
		build:    buildBar,
	},
	Pie: {
		contract: contract{required: []string{"x_axis"}, measures: []string{"y_axis"}},
		build:    buildPie,
	},
	Donut: {
		contract: contract{required: []string{"x_axis"}, measures: []string{"y_axis"}},
		build:    buildDonut,
	},
	Funnel: {
		contract: contract{required: []string{"x_axis", "y_axis"}, measures: []string{"y_axis"}},
		build:    buildFunnel,
	},
	Line: {
		contract: contract{required: []string{"x_axis", "y_axis"}, measures: []string{"y_axis"}},
		build:    buildLine,
	},
	Area: {
		contract: contract{required: []string{"x_axis", "y_axis"}, measures: []string{"y_axis"}},
		build:    buildArea,
	},
	StackedArea: {
		contract: contract{required: []string{"x_axis", "y_axis"}, oneOf: [][]string{stackFields}, measures: []string{"y_axis"}},
		build:    buildStackedArea,
	},
	Scatter: {
		contract: contract{required: []string{"x_axis", "y_axis"}},
		build:    buildScatter,
	},
	Bubble: {
		contract: contract{
			required: []string{"x_axis", "y_axis", "size_by"},
			numeric:  []string{"x_axis", "y_axis", "size_by"},
		},
		build: buildBubble,
	},
	Histogram: {
		contract: contract{required: []string{"x_axis"}, numeric: []string{"x_axis"}},
		build:    buildHistogram,
	},
	Box: {
		contract: contract{required: []string{"y_axis"}, numeric: []string{"y_axis"}},
		build:    buildBox,
	},
	Violin: {
		contract: contract{required: []string{"y_axis"}, numeric: []string{"y_axis"}},
		build:    buildViolin,
	},
	Density: {
		contract: contract{required: []string{"x_axis"}, numeric: []string{"x_axis"}},
		build:    buildDensity,
	},
	Ridgeline: {
		contract: contract{required: []string{"x_axis"}, numeric: []string{"x_axis"}},
		build:    buildRidgeline,
	},
	Heatmap: {
		contract: contract{required: []string{"x_axis", "y_axis"}, measures: []string{"z_axis", "color_by"}},
		build:    buildHeatmap,
	},
	Radar: {
		contract: contract{check: checkRadar},
		build:    buildRadar,
	},
	Treemap: {
		contract: contract{required: []string{"x_axis", "y_axis"}, measures: []string{"y_axis"}},
		build:    buildTreemap,
	},
	Sunburst: {
		contract: contract{required: []string{"x_axis", "y_axis"}, measures: []string{"y_axis"}},
		build:    buildTreemap,
	},
	Waterfall: {
		contract: contract{required: []string{"x_axis", "y_axis"}, numeric: []string{"y_axis"}},
		build:    buildWaterfall,
	},
	StackedBar: {
		contract: contract{required: []string{"x_axis", "y_axis"}, oneOf: [][]string{stackFields}, measures: []string{"y_axis"}},
		build:    buildStackedBar,
	},
	GroupedBar: {
		contract: contract{required: []string{"x_axis", "y_axis"}, oneOf: [][]string{stackFields}, measures: []string{"y_axis"}},
		build:    buildGroupedBar,
	},
	MultiLine: {
		contract: contract{required: []string{"x_axis", "y_axis"}, oneOf: [][]string{seriesFields}},
		build:    buildMultiLine,
	},
	Candlestick: {
		contract: contract{required: []string{"x_axis"}, additional: ohlcKeys, check: checkCandlestick},
		build:    buildCandlestick,
	},
	Gantt: {
		contract: contract{required: []string{"x_axis"}, additional: []string{"start", "end"}, check: checkGantt},
		build:    buildGantt,
	},
	Sankey: {
		contract: contract{required: []string{"x_axis", "y_axis"}, measures: []string{"z_axis"}},
		build:    buildSankey,
	},
	Chord: {
		contract: contract{required: []string{"x_axis", "y_axis"}, measures: []string{"z_axis"}},
		build:    buildChord,
	},
}

// ChartTypes returns every supported chart type in a stable order.
func ChartTypes() []ChartType {
	out := make([]ChartType, 0, len(registry))
	for ct := range registry {
		out = append(out, ct)
	}
	slices.Sort(out)
	return out
}

func Supported(ct ChartType) bool {
	_, ok := registry[ct]
	return ok
}
