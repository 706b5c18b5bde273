package visualizer

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahesh-hegde/instante/app/dataset"
)

func ptr[T any](v T) *T { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustPayload(t *testing.T, ct ChartType, params Parameters, ds *dataset.Dataset) *Payload {
	t.Helper()
	payload, err := Build(ct, params, ds)
	require.NoError(t, err)
	assert.Equal(t, string(ct), payload.Metadata["chart_type"])
	assert.Equal(t, len(payload.Data), payload.Metadata["total_records"])
	return payload
}

func salesDataset(t *testing.T) *dataset.Dataset {
	return mustBuild(t, dataset.NewBuilder("sales.csv").
		AddCategorical("region", []string{"east", "east", "west"}).
		AddCategorical("product", []string{"a", "b", "a"}).
		AddNumeric("sales", []float64{10, 5, 7}))
}

func TestBar_CountsWithoutYAxis(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddCategorical("region", []string{"east", "east", "west"}))

	payload := mustPayload(t, Bar, Parameters{XAxis: "region"}, ds)
	assert.Equal(t, []Record{
		{"region": "east", "count": 2.0},
		{"region": "west", "count": 1.0},
	}, payload.Data)
	assert.Equal(t, "count", payload.Metadata["y_column"])
	assert.Equal(t, "count", payload.Metadata["aggregation"])
}

func TestBar_SortLimitPercentage(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddCategorical("region", []string{"east", "west", "north", "west"}).
		AddNumeric("sales", []float64{10, 20, 30, 20}))

	payload := mustPayload(t, Bar, Parameters{
		XAxis: "region", YAxis: "sales",
		SortBy: "sales", SortOrder: "desc", Limit: ptr(2),
		Percentage: true, Cumulative: true,
	}, ds)
	require.Len(t, payload.Data, 2)
	assert.Equal(t, "west", payload.Data[0]["region"])
	assert.Equal(t, 40.0, payload.Data[0]["sales"])
	assert.Equal(t, 50.0, payload.Data[0]["percentage"])
	assert.Equal(t, "north", payload.Data[1]["region"])
	assert.Equal(t, 70.0, payload.Data[1]["cumulative"])
}

func TestPie_ThresholdMergesIntoOther(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddCategorical("fruit", []string{"apple", "pear", "plum"}).
		AddNumeric("n", []float64{5, 4, 1}))

	payload := mustPayload(t, Pie, Parameters{XAxis: "fruit", YAxis: "n", Threshold: ptr(15.0)}, ds)
	require.Len(t, payload.Data, 3)
	assert.Equal(t, Record{"label": "apple", "value": 5.0, "percentage": 50.0}, payload.Data[0])
	assert.Equal(t, Record{"label": "Other", "value": 1.0, "percentage": 10.0}, payload.Data[2])
	assert.Equal(t, 1, payload.Metadata["merged_categories"])

	donut := mustPayload(t, Donut, Parameters{XAxis: "fruit"}, ds)
	assert.Equal(t, "donut", donut.Metadata["chart_subtype"])
	assert.Equal(t, 0.4, donut.Metadata["inner_radius"])
}

func TestFunnel_OrderedByValue(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddCategorical("stage", []string{"buy", "visit", "signup"}).
		AddNumeric("users", []float64{10, 100, 40}))

	payload := mustPayload(t, Funnel, Parameters{XAxis: "stage", YAxis: "users"}, ds)
	var stages []any
	for i, rec := range payload.Data {
		stages = append(stages, rec["stage"])
		assert.Equal(t, i, rec["order"])
	}
	assert.Equal(t, []any{"visit", "signup", "buy"}, stages)
	assert.InDelta(t, 100.0/150*100, payload.Data[0]["percentage"].(float64), 1e-9)
	assert.Equal(t, 150.0, payload.Metadata["total_value"])
}

func TestHistogram(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddNumeric("price", []float64{10, 20, 30, 1000, math.NaN()}))

	payload := mustPayload(t, Histogram, Parameters{XAxis: "price", Bins: ptr(4)}, ds)
	require.Len(t, payload.Data, 4)

	total := 0
	for i, rec := range payload.Data {
		total += rec["count"].(int)
		assert.Less(t, rec["bin_start"].(float64), rec["bin_end"].(float64))
		if i > 0 {
			assert.Equal(t, payload.Data[i-1]["bin_end"], rec["bin_start"])
		}
	}
	assert.Equal(t, 4, total)
	assert.Equal(t, 3, payload.Data[0]["count"])
	assert.Equal(t, 1, payload.Data[3]["count"])
	assert.Equal(t, "10.00-257.50", payload.Data[0]["bin"])
	assert.Equal(t, 10.0, payload.Metadata["min_value"])
	assert.Equal(t, 1000.0, payload.Metadata["max_value"])
	assert.Equal(t, 4, payload.Metadata["total_values"])
}

func TestHistogram_ConstantColumn(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").AddNumeric("v", []float64{3, 3, 3}))

	payload := mustPayload(t, Histogram, Parameters{XAxis: "v", Bins: ptr(2)}, ds)
	assert.Equal(t, 2.5, payload.Data[0]["bin_start"])
	assert.Equal(t, 3.5, payload.Data[1]["bin_end"])
	assert.Equal(t, 0, payload.Data[0]["count"])
	assert.Equal(t, 3, payload.Data[1]["count"])
}

func TestBoxAndViolin(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddCategorical("team", []string{"a", "a", "a", "a", "b", "b"}).
		AddNumeric("score", []float64{1, 2, 3, 4, 7, math.NaN()}))

	box := mustPayload(t, Box, Parameters{YAxis: "score", XAxis: "team"}, ds)
	assert.Equal(t, []Record{
		{"group": "a", "values": []float64{1, 2, 3, 4}},
		{"group": "b", "values": []float64{7}},
	}, box.Data)

	violin := mustPayload(t, Violin, Parameters{YAxis: "score", XAxis: "team"}, ds)
	require.Len(t, violin.Data, 2)
	q := violin.Data[0]["quartiles"].(Record)
	assert.Equal(t, 1.75, q["q1"])
	assert.Equal(t, 2.5, q["median"])
	assert.Equal(t, 3.25, q["q3"])
	assert.Equal(t, 1.0, q["min"])
	assert.Equal(t, 4.0, q["max"])
	assert.Len(t, violin.Data[0]["density_x"], violinPoints)
	assert.Equal(t, []string{"b"}, violin.Metadata["degenerate_groups"])

	single := mustPayload(t, Box, Parameters{YAxis: "score"}, ds)
	require.Len(t, single.Data, 1)
	assert.Equal(t, "score", single.Data[0]["group"])
}

func TestDensityAndRidgeline(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddCategorical("kind", []string{"x", "x", "x", "y", "y"}).
		AddNumeric("v", []float64{1, 2, 4, 5, 5}))

	payload := mustPayload(t, Density, Parameters{XAxis: "v", ColorBy: "kind"}, ds)
	require.Len(t, payload.Data, 2)
	assert.Len(t, payload.Data[0]["x"], densityPoints)
	assert.InDelta(t, 0.15, payload.Data[0]["bandwidth"].(float64), 1e-12)
	assert.Equal(t, []string{"y"}, payload.Metadata["degenerate_groups"])

	ridge := mustPayload(t, Ridgeline, Parameters{XAxis: "v", ColorBy: "kind", Bandwidth: ptr(0.5)}, ds)
	assert.Equal(t, 1.0, ridge.Data[1]["offset"])
	assert.Equal(t, 0.5, ridge.Data[1]["bandwidth"])
	assert.Equal(t, "ridgeline", ridge.Metadata["chart_subtype"])
	assert.NotContains(t, ridge.Metadata, "degenerate_groups")
}

func TestScatter_DropsNullRows(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddNumeric("x", []float64{1, 2, math.NaN()}).
		AddNumeric("y", []float64{4, 5, 6}).
		AddCategorical("c", []string{"p", "", "q"}))

	payload := mustPayload(t, Scatter, Parameters{XAxis: "x", YAxis: "y", ColorBy: "c"}, ds)
	assert.Equal(t, []Record{{"x": 1.0, "y": 4.0, "c": "p"}}, payload.Data)
}

func TestBubble_SizeRange(t *testing.T) {
	cases := []struct {
		name  string
		sizes []float64
		want  []float64
	}{
		{"spread", []float64{1, 2, 3}, []float64{10, 30, 50}},
		{"constant", []float64{7, 7, 7}, []float64{25, 25, 25}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ds := mustBuild(t, dataset.NewBuilder("t").
				AddNumeric("x", []float64{1, 2, 3}).
				AddNumeric("y", []float64{3, 2, 1}).
				AddNumeric("s", tc.sizes))

			payload := mustPayload(t, Bubble, Parameters{XAxis: "x", YAxis: "y", SizeBy: "s"}, ds)
			require.Len(t, payload.Data, 3)
			for i, rec := range payload.Data {
				size := rec["size"].(float64)
				assert.GreaterOrEqual(t, size, 10.0)
				assert.LessOrEqual(t, size, 50.0)
				assert.Equal(t, tc.want[i], size)
				assert.Equal(t, tc.sizes[i], rec["original_size"])
			}
		})
	}
}

func TestHeatmap_EveryCell(t *testing.T) {
	payload := mustPayload(t, Heatmap, Parameters{XAxis: "product", YAxis: "region"}, salesDataset(t))
	assert.Equal(t, []Record{
		{"x": "a", "y": "east", "value": 1.0, "x_index": 0, "y_index": 0},
		{"x": "b", "y": "east", "value": 1.0, "x_index": 1, "y_index": 0},
		{"x": "a", "y": "west", "value": 1.0, "x_index": 0, "y_index": 1},
		{"x": "b", "y": "west", "value": 0.0, "x_index": 1, "y_index": 1},
	}, payload.Data)
	assert.Equal(t, 0.0, payload.Metadata["min_value"])
	assert.Equal(t, 1.0, payload.Metadata["max_value"])
	assert.Equal(t, []string{"a", "b"}, payload.Metadata["x_categories"])
}

func TestStackedBar(t *testing.T) {
	ds := salesDataset(t)
	payload := mustPayload(t, StackedBar, Parameters{XAxis: "region", YAxis: "sales", StackBy: "product"}, ds)
	assert.Equal(t, []Record{
		{"category": "east", "a_value": 10.0, "a_start": 0.0, "a_end": 10.0, "b_value": 5.0, "b_start": 10.0, "b_end": 15.0, "total": 15.0},
		{"category": "west", "a_value": 7.0, "a_start": 0.0, "a_end": 7.0, "b_value": 0.0, "b_start": 7.0, "b_end": 7.0, "total": 7.0},
	}, payload.Data)
	assert.Equal(t, []string{"a", "b"}, payload.Metadata["stack_categories"])

	normalized := mustPayload(t, GroupedBar, Parameters{XAxis: "region", YAxis: "sales", ColorBy: "product", Normalize: true}, ds)
	assert.InDelta(t, 200.0/3, normalized.Data[0]["a_value"].(float64), 1e-9)
	assert.InDelta(t, 100.0, normalized.Data[0]["total"].(float64), 1e-9)
	assert.Equal(t, "grouped", normalized.Metadata["chart_subtype"])
}

func TestStackedArea(t *testing.T) {
	payload := mustPayload(t, Area, Parameters{XAxis: "region", YAxis: "sales", StackBy: "product"}, salesDataset(t))
	assert.Equal(t, Record{"x": "west", "a_value": 7.0, "a_cumulative": 7.0, "b_value": 0.0, "b_cumulative": 7.0}, payload.Data[1])
	assert.Equal(t, "stacked", payload.Metadata["chart_subtype"])
}

func TestWaterfall_FinalTotal(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddCategorical("step", []string{"start", "cost", "", "gain"}).
		AddNumeric("delta", []float64{100, -30, 999, 50}))

	payload := mustPayload(t, Waterfall, Parameters{XAxis: "step", YAxis: "delta"}, ds)
	require.Len(t, payload.Data, 3)
	last := payload.Data[2]
	assert.Equal(t, 70.0, last["start"])
	assert.Equal(t, 120.0, last["end"])
	assert.Equal(t, 120.0, last["cumulative"])
	assert.Equal(t, 120.0, payload.Metadata["total_change"])
}

func TestTreemap_Hierarchical(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddCategorical("cat", []string{"x", "x", "y"}).
		AddCategorical("sub", []string{"p", "q", "p"}).
		AddNumeric("v", []float64{2, 6, 4}))

	payload := mustPayload(t, Sunburst, Parameters{XAxis: "cat", YAxis: "v", ColorBy: "sub"}, ds)
	assert.Equal(t, []Record{
		{"name": "x", "value": 8.0, "children": []Record{
			{"name": "p", "value": 2.0, "percentage": 25.0},
			{"name": "q", "value": 6.0, "percentage": 75.0},
		}},
		{"name": "y", "value": 4.0, "children": []Record{
			{"name": "p", "value": 4.0, "percentage": 100.0},
		}},
	}, payload.Data)
	assert.Equal(t, true, payload.Metadata["hierarchical"])

	flat := mustPayload(t, Treemap, Parameters{XAxis: "cat", YAxis: "v"}, ds)
	assert.Equal(t, "y", flat.Data[1]["name"])
	assert.InDelta(t, 100.0/3, flat.Data[1]["percentage"].(float64), 1e-9)
}

func TestLine(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddTemporal("when", []time.Time{day(2024, 2, 3), day(2024, 1, 5), day(2024, 1, 20)}).
		AddNumeric("v", []float64{3, 1, 2}))

	raw := mustPayload(t, Line, Parameters{XAxis: "when", YAxis: "v", RollingWindow: ptr(2), Cumulative: true}, ds)
	assert.Equal(t, []Record{
		{"when": day(2024, 1, 5), "v": 1.0, "rolling": nil, "cumulative": 1.0},
		{"when": day(2024, 1, 20), "v": 2.0, "rolling": 1.5, "cumulative": 3.0},
		{"when": day(2024, 2, 3), "v": 3.0, "rolling": 2.5, "cumulative": 6.0},
	}, raw.Data)

	monthly := mustPayload(t, Line, Parameters{XAxis: "when", YAxis: "v", TimeUnit: "month"}, ds)
	assert.Equal(t, []Record{
		{"when": day(2024, 1, 1), "v": 3.0},
		{"when": day(2024, 2, 1), "v": 3.0},
	}, monthly.Data)
	assert.Equal(t, "month", monthly.Metadata["time_unit"])
}

func TestMultiLine(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddCategorical("series", []string{"s1", "s2", "s1"}).
		AddNumeric("x", []float64{2, 1, 1}).
		AddNumeric("y", []float64{20, 5, 10}))

	payload := mustPayload(t, MultiLine, Parameters{XAxis: "x", YAxis: "y", GroupBy: "series"}, ds)
	assert.Equal(t, []Record{
		{"series": "s1", "points": []Record{{"x": 1.0, "y": 10.0}, {"x": 2.0, "y": 20.0}}},
		{"series": "s2", "points": []Record{{"x": 1.0, "y": 5.0}}},
	}, payload.Data)
}

func TestRadar(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddCategorical("team", []string{"t1", "t1", "t2"}).
		AddNumeric("a", []float64{1, 3, 5}).
		AddNumeric("b", []float64{2, 2, 2}).
		AddNumeric("c", []float64{0, 10, math.NaN()}))

	payload := mustPayload(t, Radar, Parameters{GroupBy: "team", Aggregation: "mean"}, ds)
	require.Len(t, payload.Data, 2)
	assert.Equal(t, []Record{{"axis": "a", "value": 2.0}, {"axis": "b", "value": 2.0}, {"axis": "c", "value": 5.0}}, payload.Data[0]["values"])
	// undefined reductions plot at zero
	assert.Equal(t, Record{"axis": "c", "value": 0.0}, payload.Data[1]["values"].([]Record)[2])
	assert.Equal(t, []string{"a", "b", "c"}, payload.Metadata["axes"])

	_, err := Build(Radar, Parameters{XAxis: "a"}, ds)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestSankeyAndChord(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddCategorical("from", []string{"a", "a", "b"}).
		AddCategorical("to", []string{"b", "c", "c"}))

	sankey := mustPayload(t, Sankey, Parameters{XAxis: "from", YAxis: "to"}, ds)
	assert.Equal(t, Record{"source": "a", "target": "c", "value": 1.0, "source_index": 0, "target_index": 2}, sankey.Data[1])
	assert.Equal(t, []string{"a", "b", "c"}, sankey.Metadata["nodes"])
	assert.Equal(t, "count", sankey.Metadata["aggregation"])

	chord := mustPayload(t, Chord, Parameters{XAxis: "from", YAxis: "to"}, ds)
	assert.Equal(t, []Record{
		{"name": "a", "index": 0, "values": []float64{0, 1, 1}},
		{"name": "b", "index": 1, "values": []float64{0, 0, 1}},
		{"name": "c", "index": 2, "values": []float64{0, 0, 0}},
	}, chord.Data)
}

func TestGantt(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddCategorical("task", []string{"design", "build"}).
		AddTemporal("from", []time.Time{day(2024, 3, 1), day(2024, 3, 3)}).
		AddTemporal("to", []time.Time{day(2024, 3, 3), time.Time{}}))

	payload := mustPayload(t, Gantt, Parameters{
		XAxis:            "task",
		AdditionalParams: map[string]any{"start": "from", "end": "to"},
	}, ds)
	assert.Equal(t, []Record{
		{"task": "design", "start": day(2024, 3, 1), "end": day(2024, 3, 3), "duration": 48.0},
	}, payload.Data)
	assert.Equal(t, "hours", payload.Metadata["duration_unit"])
}

func TestCandlestick_FromPrice(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddTemporal("d", []time.Time{day(2024, 1, 2), day(2024, 1, 1), day(2024, 1, 1), day(2024, 1, 1)}).
		AddNumeric("price", []float64{11, 10, 12, 9}))

	payload := mustPayload(t, Candlestick, Parameters{XAxis: "d", YAxis: "price"}, ds)
	assert.Equal(t, []Record{
		{"x": day(2024, 1, 1), "open": 10.0, "high": 12.0, "low": 9.0, "close": 9.0},
		{"x": day(2024, 1, 2), "open": 11.0, "high": 11.0, "low": 11.0, "close": 11.0},
	}, payload.Data)
	assert.Equal(t, "aggregated", payload.Metadata["mode"])
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Stacked_Bar Chart - region vs sales", Title(StackedBar, Parameters{XAxis: "region", YAxis: "sales"}))
	assert.Equal(t, "Pie Chart - fruit", Title(Pie, Parameters{XAxis: "fruit"}))
	assert.Equal(t, "Radar Chart", Title(Radar, Parameters{}))
}

func TestBar_RejectsKeyCollisions(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddCategorical("count", []string{"a", "b", "a", "b"}).
		AddCategorical("cat", []string{"x", "y", "x", "y"}))

	cases := []struct {
		name      string
		params    Parameters
		wantField string
	}{
		{"category named count", Parameters{XAxis: "count"}, "x_axis"},
		{"value column is the category", Parameters{XAxis: "cat", YAxis: "cat", Aggregation: "count"}, "y_axis"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(Bar, tc.params, ds)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tc.wantField, verr.Field)
		})
	}

	payload := mustPayload(t, Bar, Parameters{XAxis: "count", YAxis: "cat", Aggregation: "count"}, ds)
	assert.Equal(t, []Record{
		{"count": "a", "cat": 2.0},
		{"count": "b", "cat": 2.0},
	}, payload.Data)
}

func TestBar_TiesKeepFirstSeenOrder(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddCategorical("region", []string{"c", "a", "b", "d"}).
		AddNumeric("sales", []float64{5, 5, 9, 5}))

	cases := []struct {
		order string
		limit *int
		want  []any
	}{
		{"desc", nil, []any{"b", "c", "a", "d"}},
		{"asc", nil, []any{"c", "a", "d", "b"}},
		{"desc", ptr(3), []any{"b", "c", "a"}},
	}
	for _, tc := range cases {
		t.Run(tc.order, func(t *testing.T) {
			payload := mustPayload(t, Bar, Parameters{
				XAxis: "region", YAxis: "sales", SortBy: "sales", SortOrder: tc.order, Limit: tc.limit,
			}, ds)
			var got []any
			for _, rec := range payload.Data {
				got = append(got, rec["region"])
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStackedBar_SortAndLimitRows(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddCategorical("region", []string{"east", "east", "west", "north", "north"}).
		AddCategorical("product", []string{"a", "b", "a", "a", "b"}).
		AddNumeric("sales", []float64{1, 2, 10, 4, 4}))

	cases := []struct {
		name   string
		params Parameters
		want   []any
		totals []float64
	}{
		{
			name:   "by value desc with limit",
			params: Parameters{SortBy: "sales", SortOrder: "desc", Limit: ptr(2)},
			want:   []any{"west", "north"},
			totals: []float64{10, 8},
		},
		{
			name:   "by synthetic value asc",
			params: Parameters{SortBy: "value"},
			want:   []any{"east", "north", "west"},
			totals: []float64{3, 8, 10},
		},
		{
			name:   "by category",
			params: Parameters{SortBy: "region"},
			want:   []any{"east", "north", "west"},
			totals: []float64{3, 8, 10},
		},
		{
			name:   "unsorted keeps first-seen order",
			params: Parameters{Limit: ptr(2)},
			want:   []any{"east", "west"},
			totals: []float64{3, 10},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := tc.params
			params.XAxis, params.YAxis, params.StackBy = "region", "sales", "product"
			for _, ct := range []ChartType{StackedBar, GroupedBar} {
				payload := mustPayload(t, ct, params, ds)
				var got []any
				var totals []float64
				for _, rec := range payload.Data {
					got = append(got, rec["category"])
					totals = append(totals, rec["total"].(float64))
				}
				assert.Equal(t, tc.want, got, ct)
				assert.Equal(t, tc.totals, totals, ct)
			}
		})
	}
}

func TestSortBy_MustNameAnOutputColumn(t *testing.T) {
	ds := mustBuild(t, dataset.NewBuilder("t").
		AddCategorical("cat", []string{"x", "y", "y"}).
		AddCategorical("kind", []string{"p", "q", "p"}).
		AddNumeric("v", []float64{4, 2, 4}).
		AddNumeric("other", []float64{1, 2, 3}))

	cases := []struct {
		name   string
		chart  ChartType
		params Parameters
	}{
		{"bar", Bar, Parameters{XAxis: "cat", YAxis: "v", SortBy: "other", SortOrder: "desc"}},
		{"pie", Pie, Parameters{XAxis: "cat", YAxis: "v", SortBy: "other"}},
		{"scatter", Scatter, Parameters{XAxis: "v", YAxis: "other", SortBy: "cat"}},
		{"stacked bar by series", StackedBar, Parameters{XAxis: "cat", YAxis: "v", StackBy: "kind", SortBy: "kind"}},
		{"stacked area by other", StackedArea, Parameters{XAxis: "cat", YAxis: "v", StackBy: "kind", SortBy: "other"}},
		{"heatmap by x", Heatmap, Parameters{XAxis: "cat", YAxis: "kind", SortBy: "cat"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(tc.chart, tc.params, ds)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, "sort_by", verr.Field)
		})
	}
}
