package visualizer

import (
	"fmt"
	"slices"

	"github.com/aclements/go-moremath/stats"

	"github.com/mahesh-hegde/instante/app/dataset"
)

// sortByKey orders records by one key, stably and ascending.
func sortByKey(records []Record, key string) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return compareValues(a[key], b[key])
	})
}

// linePoints returns the (x, y) points of a simple line. With time_unit
// and a temporal x the points are buckets with y reduced per bucket;
// otherwise they are the rows where neither x nor y is null.
func (c *buildContext) linePoints() ([]Record, Metadata, error) {
	p := &c.params
	x, y := c.column(p.XAxis), c.column(p.YAxis)
	bucketed := p.TimeUnit != "" && x.Kind() == dataset.Temporal

	var records []Record
	if bucketed {
		groups := groupReduce(c.rows(), []*dataset.Column{c.keyColumn(p.XAxis)}, y, c.agg)
		records = make([]Record, len(groups))
		for i, g := range groups {
			records[i] = Record{p.XAxis: g.keys[0], p.YAxis: g.orNil()}
		}
	} else {
		rows := completeRows(c.rows(), x, y)
		records = make([]Record, len(rows))
		for i, r := range rows {
			records[i] = Record{p.XAxis: x.Value(r), p.YAxis: y.Value(r)}
		}
	}
	sortByKey(records, p.XAxis)

	if p.RollingWindow != nil {
		rollingMean(records, p.YAxis, *p.RollingWindow)
	}
	if p.Cumulative {
		running := 0.0
		for _, rec := range records {
			if v, ok := rec[p.YAxis].(float64); ok {
				running += v
			}
			rec["cumulative"] = running
		}
	}
	records, err := c.orderRecords(records, nil)
	if err != nil {
		return nil, nil, err
	}

	meta := Metadata{}.
		column("x_column", p.XAxis).
		column("y_column", p.YAxis).
		set("total_points", len(records)).
		set("time_unit", nil).
		set("rolling_window", optional(p.RollingWindow))
	if bucketed {
		meta.set("time_unit", p.TimeUnit).set("aggregation", string(c.agg))
	}
	return records, meta, nil
}

// rollingMean sets "rolling" to the mean of key over the trailing window.
// Records before the first full window get null.
func rollingMean(records []Record, key string, window int) {
	for i, rec := range records {
		if i+1 < window {
			rec["rolling"] = nil
			continue
		}
		var xs []float64
		for _, prev := range records[i+1-window : i+1] {
			if v, ok := prev[key].(float64); ok {
				xs = append(xs, v)
			}
		}
		if len(xs) == 0 {
			rec["rolling"] = nil
			continue
		}
		rec["rolling"] = stats.Mean(xs)
	}
}

func buildLine(c *buildContext) ([]Record, Metadata, error) {
	return c.linePoints()
}

// buildArea stacks when stack_by or color_by is set and otherwise draws a
// simple line area.
func buildArea(c *buildContext) ([]Record, Metadata, error) {
	if c.params.firstOf(stackFields...) != "" {
		return buildStackedArea(c)
	}
	records, meta, err := c.linePoints()
	if err != nil {
		return nil, nil, err
	}
	meta.set("stack_column", nil).set("chart_subtype", "simple")
	return records, meta, nil
}

// stackedPivot lays out y_axis per (x_axis, stack) pair, sorted and limited
// by category.
func (c *buildContext) stackedPivot() (pt *pivotTable, stackName string, err error) {
	p := &c.params
	stackName = p.firstOf(stackFields...)
	pt = pivot(c.rows(), c.keyColumn(p.XAxis), c.column(stackName), c.column(p.YAxis), c.agg)
	if err = pt.orderRows(c, p.XAxis, p.YAxis); err != nil {
		return nil, "", err
	}
	return pt, stackName, nil
}

func buildStackedArea(c *buildContext) ([]Record, Metadata, error) {
	p := &c.params
	pt, stackName, err := c.stackedPivot()
	if err != nil {
		return nil, nil, err
	}
	series := pt.seriesLabels()

	records := make([]Record, len(pt.rows))
	for i, row := range pt.rows {
		rec := Record{"x": row.labels[0]}
		cumulative := 0.0
		for j, s := range series {
			v := pt.cells[i][j]
			cumulative += v
			rec[s+"_value"] = v
			rec[s+"_cumulative"] = cumulative
		}
		records[i] = rec
	}

	meta := Metadata{}.
		column("x_column", p.XAxis).
		column("y_column", p.YAxis).
		column("stack_column", stackName).
		set("stack_categories", series).
		set("aggregation", string(c.agg)).
		set("total_points", len(records)).
		set("chart_subtype", "stacked")
	return records, meta, nil
}

// buildStackedBar gives every segment its own value and its start and end
// on the stack. normalize (or percentage) rescales each category to 100.
func buildStackedBar(c *buildContext) ([]Record, Metadata, error) {
	p := &c.params
	pt, stackName, err := c.stackedPivot()
	if err != nil {
		return nil, nil, err
	}
	series := pt.seriesLabels()
	normalize := p.Normalize || p.Percentage

	records := make([]Record, len(pt.rows))
	for i, row := range pt.rows {
		scale := 1.0
		if normalize {
			scale = percentOf(1, pt.rowTotal(i))
		}
		rec := Record{"category": row.labels[0]}
		cumulative := 0.0
		for j, s := range series {
			v := pt.cells[i][j] * scale
			rec[s+"_value"] = v
			rec[s+"_start"] = cumulative
			rec[s+"_end"] = cumulative + v
			cumulative += v
		}
		rec["total"] = cumulative
		records[i] = rec
	}

	meta := Metadata{}.
		column("x_column", p.XAxis).
		column("y_column", p.YAxis).
		column("stack_column", stackName).
		set("stack_categories", series).
		set("aggregation", string(c.agg)).
		set("normalized", normalize).
		set("total_categories", len(records))
	return records, meta, nil
}

func buildGroupedBar(c *buildContext) ([]Record, Metadata, error) {
	records, meta, err := buildStackedBar(c)
	if err != nil {
		return nil, nil, err
	}
	meta.set("chart_subtype", "grouped")
	return records, meta, nil
}

// buildMultiLine keeps the raw points of each series, sorted by x.
func buildMultiLine(c *buildContext) ([]Record, Metadata, error) {
	p := &c.params
	seriesName := p.firstOf(seriesFields...)
	x, y := c.column(p.XAxis), c.column(p.YAxis)

	var records []Record
	for _, g := range groupRows(c.rows(), c.column(seriesName)) {
		points := make([]Record, 0, len(g.rows))
		for _, r := range g.rows {
			if x.IsNull(r) || y.IsNull(r) {
				continue
			}
			points = append(points, Record{p.XAxis: x.Value(r), p.YAxis: y.Value(r)})
		}
		sortByKey(points, p.XAxis)
		records = append(records, Record{"series": g.label(), "points": points})
	}
	records, err := c.orderRecords(records, map[string]string{seriesName: "series"})
	if err != nil {
		return nil, nil, err
	}

	meta := Metadata{}.
		column("x_column", p.XAxis).
		column("y_column", p.YAxis).
		column("group_column", seriesName).
		set("total_series", len(records))
	return records, meta, nil
}

// buildHeatmap emits one cell per (x, y) category pair, rows being y. The
// cell value is z_axis (or color_by) reduced, or the row count.
func buildHeatmap(c *buildContext) ([]Record, Metadata, error) {
	p := &c.params
	valueName := p.firstOf("z_axis", "color_by")
	agg := c.agg
	if valueName == "" {
		agg = Count
	}
	pt := pivot(c.rows(), c.keyColumn(p.YAxis), c.keyColumn(p.XAxis), c.column(valueName), agg)
	if err := pt.orderRows(c, p.YAxis, valueName); err != nil {
		return nil, nil, err
	}

	xs, ys := pt.seriesLabels(), pt.rowLabels()
	records := make([]Record, 0, len(xs)*len(ys))
	for yi, yl := range ys {
		for xi, xl := range xs {
			records = append(records, Record{
				"x":       xl,
				"y":       yl,
				"value":   pt.cells[yi][xi],
				"x_index": xi,
				"y_index": yi,
			})
		}
	}
	lo, hi := pt.bounds()

	meta := Metadata{}.
		column("x_column", p.XAxis).
		column("y_column", p.YAxis).
		column("value_column", valueName).
		set("aggregation", string(agg)).
		set("x_categories", xs).
		set("y_categories", ys).
		valueRange(lo, hi, len(records) > 0)
	return records, meta, nil
}

// buildCandlestick reads open/high/low/close from the columns named in
// additional_params, one candle per row. Otherwise it derives candles from
// the y_axis price per x (bucketed by time_unit): first, max, min and last
// value in row order.
func buildCandlestick(c *buildContext) ([]Record, Metadata, error) {
	p := &c.params
	var records []Record
	mode := "ohlc"

	if c.additional("open") != "" {
		x := c.column(p.XAxis)
		cols := make([]*dataset.Column, len(ohlcKeys))
		for i, k := range ohlcKeys {
			cols[i] = c.column(c.additional(k))
		}
		for _, r := range completeRows(c.rows(), append([]*dataset.Column{x}, cols...)...) {
			rec := Record{"x": x.Value(r)}
			for i, k := range ohlcKeys {
				rec[k], _ = cols[i].Float(r)
			}
			records = append(records, rec)
		}
	} else {
		mode = "aggregated"
		price := c.column(p.YAxis)
		for _, g := range groupRows(c.rows(), c.keyColumn(p.XAxis)) {
			values := g.values(price)
			if len(values) == 0 {
				continue
			}
			lo, hi := stats.Bounds(values)
			records = append(records, Record{
				"x":     g.keys[0],
				"open":  values[0],
				"high":  hi,
				"low":   lo,
				"close": values[len(values)-1],
			})
		}
	}
	sortByKey(records, "x")
	records, err := c.orderRecords(records, map[string]string{p.XAxis: "x"})
	if err != nil {
		return nil, nil, err
	}

	for _, rec := range records {
		if rec["low"].(float64) > rec["high"].(float64) {
			return nil, nil, fmt.Errorf("candle at %v has low above high", rec["x"])
		}
	}

	meta := Metadata{}.
		column("x_column", p.XAxis).
		column("y_column", p.YAxis).
		set("mode", mode).
		set("time_unit", nil).
		set("total_points", len(records))
	if p.TimeUnit != "" {
		meta.set("time_unit", p.TimeUnit)
	}
	return records, meta, nil
}
