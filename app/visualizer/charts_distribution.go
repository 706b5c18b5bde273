package visualizer

import (
	"fmt"
	"slices"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"github.com/mahesh-hegde/instante/app/common"
)

const defaultBins = 20

func buildHistogram(c *buildContext) ([]Record, Metadata, error) {
	p := &c.params
	values := c.column(p.XAxis).Floats()
	if len(values) == 0 {
		return nil, nil, fmt.Errorf("column %s: %w", p.XAxis, errNoValues)
	}
	bins := defaultBins
	if p.Bins != nil {
		bins = *p.Bins
	}

	lo, hi := stats.Bounds(values)
	edges := histogramEdges(lo, hi, bins)
	counts := make([]int, bins)
	for _, v := range values {
		counts[binIndex(edges, v)]++
	}

	records := make([]Record, bins)
	running := 0
	for i, n := range counts {
		rec := Record{
			"bin":       fmt.Sprintf("%.2f-%.2f", edges[i], edges[i+1]),
			"count":     n,
			"bin_start": edges[i],
			"bin_end":   edges[i+1],
		}
		if p.Cumulative {
			running += n
			rec["cumulative"] = running
		}
		records[i] = rec
	}

	meta := Metadata{}.
		column("column", p.XAxis).
		set("bins", bins).
		set("total_values", len(values)).
		valueRange(lo, hi, true)
	return records, meta, nil
}

// histogramEdges returns bins+1 evenly spaced edges over [lo, hi]. A zero
// width range is widened by 0.5 on each side.
func histogramEdges(lo, hi float64, bins int) []float64 {
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	return vec.Linspace(lo, hi, bins+1)
}

// binIndex places v in [edges[i], edges[i+1]). The last bin is closed on
// both ends.
func binIndex(edges []float64, v float64) int {
	last := len(edges) - 2
	i, found := slices.BinarySearch(edges, v)
	if !found {
		i--
	}
	return max(0, min(i, last))
}

type valueGroup struct {
	label  string
	values []float64
}

// valueGroups collects the non-null values of valueName per distinct value
// of groupName. Without a group column there is one group named after the
// value column. Groups left empty after dropping nulls are omitted.
func (c *buildContext) valueGroups(valueName, groupName string) []valueGroup {
	col := c.column(valueName)
	if groupName == "" {
		if vs := col.Floats(); len(vs) > 0 {
			return []valueGroup{{label: valueName, values: vs}}
		}
		return nil
	}
	var out []valueGroup
	for _, g := range groupRows(c.rows(), c.column(groupName)) {
		if vs := g.values(col); len(vs) > 0 {
			out = append(out, valueGroup{label: g.label(), values: vs})
		}
	}
	return out
}

func (c *buildContext) bandwidth() float64 {
	if c.params.Bandwidth != nil {
		return *c.params.Bandwidth
	}
	return 0
}

func buildBox(c *buildContext) ([]Record, Metadata, error) {
	p := &c.params
	groupCol := p.firstOf("x_axis", "group_by")
	groups := c.valueGroups(p.YAxis, groupCol)
	if len(groups) == 0 {
		return nil, nil, fmt.Errorf("column %s: %w", p.YAxis, errNoValues)
	}

	records := make([]Record, len(groups))
	for i, g := range groups {
		records[i] = Record{"group": g.label, "values": g.values}
	}
	records, err := c.orderRecords(records, map[string]string{groupCol: "group"})
	if err != nil {
		return nil, nil, err
	}

	meta := Metadata{}.
		column("y_column", p.YAxis).
		column("group_column", groupCol).
		set("total_groups", len(records))
	return records, meta, nil
}

func buildViolin(c *buildContext) ([]Record, Metadata, error) {
	p := &c.params
	groupCol := p.firstOf("x_axis", "group_by")
	groups := c.valueGroups(p.YAxis, groupCol)
	if len(groups) == 0 {
		return nil, nil, fmt.Errorf("column %s: %w", p.YAxis, errNoValues)
	}

	records := make([]Record, len(groups))
	bandwidths := map[string]float64{}
	var degenerate []string
	for i, g := range groups {
		curve, err := estimateDensity(g.values, c.bandwidth(), violinPoints)
		if err != nil {
			return nil, nil, fmt.Errorf("group %s: %w", g.label, err)
		}
		if curve.degenerate {
			degenerate = append(degenerate, g.label)
		}
		bandwidths[g.label] = curve.bandwidth

		sorted := slices.Sorted(slices.Values(g.values))
		records[i] = Record{
			"group":     g.label,
			"values":    g.values,
			"density_x": curve.xs,
			"density_y": curve.ys,
			"quartiles": Record{
				"q1":     common.Quantile(sorted, 0.25),
				"median": common.Quantile(sorted, 0.5),
				"q3":     common.Quantile(sorted, 0.75),
				"min":    sorted[0],
				"max":    sorted[len(sorted)-1],
			},
		}
	}
	records, err := c.orderRecords(records, map[string]string{groupCol: "group"})
	if err != nil {
		return nil, nil, err
	}

	meta := Metadata{}.
		column("y_column", p.YAxis).
		column("group_column", groupCol).
		set("total_groups", len(records)).
		set("bandwidth", optional(p.Bandwidth)).
		set("bandwidths", bandwidths).
		degenerate(degenerate)
	return records, meta, nil
}

// densityCurves estimates one curve per group of color_by (or group_by).
func (c *buildContext) densityCurves() ([]Record, Metadata, error) {
	p := &c.params
	groupCol := p.firstOf("color_by", "group_by")
	groups := c.valueGroups(p.XAxis, groupCol)
	if len(groups) == 0 {
		return nil, nil, fmt.Errorf("column %s: %w", p.XAxis, errNoValues)
	}

	records := make([]Record, len(groups))
	var degenerate []string
	for i, g := range groups {
		curve, err := estimateDensity(g.values, c.bandwidth(), densityPoints)
		if err != nil {
			return nil, nil, fmt.Errorf("group %s: %w", g.label, err)
		}
		if curve.degenerate {
			degenerate = append(degenerate, g.label)
		}
		records[i] = Record{
			"group":     g.label,
			"x":         curve.xs,
			"density":   curve.ys,
			"bandwidth": curve.bandwidth,
		}
	}
	records, err := c.orderRecords(records, map[string]string{groupCol: "group"})
	if err != nil {
		return nil, nil, err
	}

	meta := Metadata{}.
		column("x_column", p.XAxis).
		column("group_column", groupCol).
		set("bandwidth", optional(p.Bandwidth)).
		set("total_curves", len(records)).
		degenerate(degenerate)
	return records, meta, nil
}

func buildDensity(c *buildContext) ([]Record, Metadata, error) {
	return c.densityCurves()
}

// buildRidgeline is a density chart whose curves carry a vertical offset,
// their position in the output.
func buildRidgeline(c *buildContext) ([]Record, Metadata, error) {
	records, meta, err := c.densityCurves()
	if err != nil {
		return nil, nil, err
	}
	for i, rec := range records {
		rec["offset"] = float64(i)
	}
	meta.set("chart_subtype", "ridgeline")
	return records, meta, nil
}
