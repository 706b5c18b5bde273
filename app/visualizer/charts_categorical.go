package visualizer

import (
	"cmp"
	"slices"

	"github.com/mahesh-hegde/instante/app/dataset"
)

const (
	otherLabel       = "Other"
	donutInnerRadius = 0.4
)

// categoryTotals group-reduces y_axis by x_axis. Without y_axis it counts
// rows and the value is reported under "count".
func (c *buildContext) categoryTotals() (groups []reduced, valueKey string, agg Aggregation) {
	p := &c.params
	keys := []*dataset.Column{c.keyColumn(p.XAxis)}
	if p.YAxis == "" {
		return groupReduce(c.rows(), keys, nil, Count), "count", Count
	}
	return groupReduce(c.rows(), keys, c.column(p.YAxis), c.agg), p.YAxis, c.agg
}

func buildBar(c *buildContext) ([]Record, Metadata, error) {
	p := &c.params
	groups, valueKey, agg := c.categoryTotals()
	total := reducedTotal(groups)

	records := make([]Record, len(groups))
	for i, g := range groups {
		rec := Record{p.XAxis: g.keys[0], valueKey: g.orNil()}
		if p.Percentage {
			rec["percentage"] = percentOf(g.value, total)
		}
		records[i] = rec
	}
	records, err := c.orderRecords(records, map[string]string{"count": valueKey, "value": valueKey})
	if err != nil {
		return nil, nil, err
	}

	if p.Cumulative {
		running := 0.0
		for _, rec := range records {
			if v, ok := rec[valueKey].(float64); ok {
				running += v
			}
			rec["cumulative"] = running
		}
	}

	meta := Metadata{}.
		column("x_column", p.XAxis).
		set("y_column", valueKey).
		set("aggregation", string(agg)).
		set("total_points", len(records))
	return records, meta, nil
}

// buildPie emits one slice per category. With a threshold, categories whose
// share is below it are merged into a trailing "Other" slice.
func buildPie(c *buildContext) ([]Record, Metadata, error) {
	p := &c.params
	groups, _, agg := c.categoryTotals()
	total := reducedTotal(groups)

	var records []Record
	other, merged := 0.0, 0
	for _, g := range groups {
		pct := percentOf(g.value, total)
		if p.Threshold != nil && pct < *p.Threshold {
			other += g.value
			merged++
			continue
		}
		records = append(records, Record{"label": g.label(), "value": g.value, "percentage": pct})
	}
	if merged > 0 {
		records = append(records, Record{"label": otherLabel, "value": other, "percentage": percentOf(other, total)})
	}
	records, err := c.orderRecords(records, map[string]string{
		p.XAxis: "label",
		p.YAxis: "value",
		"count": "value",
	})
	if err != nil {
		return nil, nil, err
	}

	meta := Metadata{}.
		column("column", p.XAxis).
		column("value_column", p.YAxis).
		set("aggregation", string(agg)).
		set("total_categories", len(records)).
		set("total_values", total)
	if p.Threshold != nil {
		meta.set("threshold", *p.Threshold).set("merged_categories", merged)
	}
	return records, meta, nil
}

func buildDonut(c *buildContext) ([]Record, Metadata, error) {
	records, meta, err := buildPie(c)
	if err != nil {
		return nil, nil, err
	}
	meta.set("chart_subtype", "donut").set("inner_radius", donutInnerRadius)
	return records, meta, nil
}

// buildFunnel orders stages by value, largest first. sort_by is ignored;
// limit keeps the widest stages.
func buildFunnel(c *buildContext) ([]Record, Metadata, error) {
	p := &c.params
	groups, _, agg := c.categoryTotals()
	total := reducedTotal(groups)

	slices.SortStableFunc(groups, func(a, b reduced) int {
		return cmp.Compare(b.value, a.value)
	})
	records := make([]Record, len(groups))
	for i, g := range groups {
		records[i] = Record{
			"stage":      g.label(),
			"value":      g.value,
			"percentage": percentOf(g.value, total),
			"order":      i,
		}
	}
	records = c.limitRecords(records)

	meta := Metadata{}.
		column("stage_column", p.XAxis).
		column("value_column", p.YAxis).
		set("aggregation", string(agg)).
		set("total_stages", len(records)).
		set("total_value", total)
	return records, meta, nil
}
