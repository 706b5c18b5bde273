package visualizer

import (
	"github.com/mahesh-hegde/instante/app/dataset"
)

const (
	minBubbleSize = 10
	maxBubbleSize = 50

	// size of every bubble when size_by is constant
	flatBubbleSize = 25
	maxRadarAxes   = 8
)

// completeRows returns the rows where none of cols is null.
func completeRows(n int, cols ...*dataset.Column) []int {
	out := make([]int, 0, n)
rows:
	for r := 0; r < n; r++ {
		for _, col := range cols {
			if col.IsNull(r) {
				continue rows
			}
		}
		out = append(out, r)
	}
	return out
}

func buildScatter(c *buildContext) ([]Record, Metadata, error) {
	p := &c.params
	names := []string{p.XAxis, p.YAxis}
	if p.ColorBy != "" && p.ColorBy != p.XAxis && p.ColorBy != p.YAxis {
		names = append(names, p.ColorBy)
	}
	cols := make([]*dataset.Column, len(names))
	for i, name := range names {
		cols[i] = c.column(name)
	}

	rows := completeRows(c.rows(), cols...)
	records := make([]Record, len(rows))
	for i, r := range rows {
		rec := make(Record, len(cols))
		for k, col := range cols {
			rec[names[k]] = col.Value(r)
		}
		records[i] = rec
	}
	records, err := c.orderRecords(records, nil)
	if err != nil {
		return nil, nil, err
	}

	meta := Metadata{}.
		column("x_column", p.XAxis).
		column("y_column", p.YAxis).
		column("color_column", p.ColorBy).
		set("total_points", len(records))
	return records, meta, nil
}

// buildBubble rescales size_by linearly into [10, 50]. A constant size
// column gives every bubble the same size.
func buildBubble(c *buildContext) ([]Record, Metadata, error) {
	p := &c.params
	x, y, size := c.column(p.XAxis), c.column(p.YAxis), c.column(p.SizeBy)
	cols := []*dataset.Column{x, y, size}
	color := c.column(p.ColorBy)
	if color != nil {
		cols = append(cols, color)
	}
	rows := completeRows(c.rows(), cols...)

	var lo, hi float64
	for i, r := range rows {
		s, _ := size.Float(r)
		if i == 0 || s < lo {
			lo = s
		}
		if i == 0 || s > hi {
			hi = s
		}
	}

	records := make([]Record, len(rows))
	for i, r := range rows {
		xv, _ := x.Float(r)
		yv, _ := y.Float(r)
		s, _ := size.Float(r)
		scaled := float64(flatBubbleSize)
		if hi > lo {
			scaled = minBubbleSize + (maxBubbleSize-minBubbleSize)*(s-lo)/(hi-lo)
		}
		rec := Record{"x": xv, "y": yv, "size": scaled, "original_size": s}
		if color != nil {
			rec["color"], _ = color.Label(r)
		}
		records[i] = rec
	}
	records, err := c.orderRecords(records, map[string]string{
		p.XAxis:  "x",
		p.YAxis:  "y",
		p.SizeBy: "original_size",
	})
	if err != nil {
		return nil, nil, err
	}

	meta := Metadata{}.
		column("x_column", p.XAxis).
		column("y_column", p.YAxis).
		column("size_column", p.SizeBy).
		column("color_column", p.ColorBy).
		set("total_points", len(records)).
		set("size_range", nil)
	if len(rows) > 0 {
		meta.set("size_range", map[string]float64{"min": lo, "max": hi})
	}
	return records, meta, nil
}

// buildRadar reduces every numeric axis per series. Axes whose reduction is
// undefined plot at zero.
func buildRadar(c *buildContext) ([]Record, Metadata, error) {
	p := &c.params
	axes := radarAxes(c.ds, p)
	groupCol := p.firstOf("group_by", "color_by")

	var groups []*group
	if groupCol != "" {
		groups = groupRows(c.rows(), c.column(groupCol))
	} else {
		all := &group{keys: []any{"Data"}, labels: []string{"Data"}, rows: make([]int, c.rows())}
		for r := range all.rows {
			all.rows[r] = r
		}
		groups = []*group{all}
	}

	records := make([]Record, len(groups))
	for i, g := range groups {
		values := make([]Record, len(axes))
		for k, axis := range axes {
			v, _ := g.reduce(c.column(axis), c.agg)
			values[k] = Record{"axis": axis, "value": v}
		}
		records[i] = Record{"group": g.label(), "values": values}
	}

	meta := Metadata{}.
		set("axes", axes).
		column("group_column", groupCol).
		set("total_series", len(records)).
		set("aggregation", string(c.agg))
	return records, meta, nil
}
