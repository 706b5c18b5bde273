package visualizer

import (
	"github.com/mahesh-hegde/instante/app/dataset"
)

// buildWaterfall walks rows in dataset order keeping a running total. Rows
// with a null category or value are skipped.
func buildWaterfall(c *buildContext) ([]Record, Metadata, error) {
	p := &c.params
	category, value := c.column(p.XAxis), c.column(p.YAxis)

	rows := completeRows(c.rows(), category, value)
	records := make([]Record, len(rows))
	running := 0.0
	for i, r := range rows {
		label, _ := category.Label(r)
		v, _ := value.Float(r)
		records[i] = Record{
			"category":   label,
			"value":      v,
			"cumulative": running + v,
			"start":      running,
			"end":        running + v,
		}
		running += v
	}

	meta := Metadata{}.
		column("category_column", p.XAxis).
		column("value_column", p.YAxis).
		set("total_change", running).
		set("total_steps", len(records))
	return records, meta, nil
}

// flowLinks reduces z_axis (or counts rows) per (x_axis, y_axis) pair and
// numbers every node in the order it is first seen.
func (c *buildContext) flowLinks() (links []reduced, nodes []string, index map[string]int) {
	p := &c.params
	keys := []*dataset.Column{c.column(p.XAxis), c.column(p.YAxis)}
	links = groupReduce(c.rows(), keys, c.column(p.ZAxis), c.agg)
	index = map[string]int{}
	for _, l := range links {
		for _, name := range l.labels {
			if _, ok := index[name]; !ok {
				index[name] = len(nodes)
				nodes = append(nodes, name)
			}
		}
	}
	return links, nodes, index
}

func (c *buildContext) flowAggregation() Aggregation {
	if c.params.ZAxis == "" {
		return Count
	}
	return c.agg
}

func buildSankey(c *buildContext) ([]Record, Metadata, error) {
	p := &c.params
	links, nodes, index := c.flowLinks()

	records := make([]Record, len(links))
	for i, l := range links {
		records[i] = Record{
			"source":       l.labels[0],
			"target":       l.labels[1],
			"value":        l.value,
			"source_index": index[l.labels[0]],
			"target_index": index[l.labels[1]],
		}
	}
	records, err := c.orderRecords(records, map[string]string{
		p.XAxis: "source",
		p.YAxis: "target",
		p.ZAxis: "value",
		"count": "value",
	})
	if err != nil {
		return nil, nil, err
	}

	meta := Metadata{}.
		column("source_column", p.XAxis).
		column("target_column", p.YAxis).
		column("value_column", p.ZAxis).
		set("aggregation", string(c.flowAggregation())).
		set("nodes", nodes).
		set("total_links", len(records)).
		set("total_value", reducedTotal(links))
	return records, meta, nil
}

// buildChord emits the square flow matrix between every node, one row per
// node. Matrix rows are never sorted or truncated.
func buildChord(c *buildContext) ([]Record, Metadata, error) {
	p := &c.params
	links, nodes, index := c.flowLinks()

	matrix := make([][]float64, len(nodes))
	for i := range matrix {
		matrix[i] = make([]float64, len(nodes))
	}
	for _, l := range links {
		matrix[index[l.labels[0]]][index[l.labels[1]]] += l.value
	}

	records := make([]Record, len(nodes))
	var lo, hi float64
	for i, name := range nodes {
		records[i] = Record{"name": name, "index": i, "values": matrix[i]}
		for j, v := range matrix[i] {
			if (i == 0 && j == 0) || v < lo {
				lo = v
			}
			if (i == 0 && j == 0) || v > hi {
				hi = v
			}
		}
	}

	meta := Metadata{}.
		column("source_column", p.XAxis).
		column("target_column", p.YAxis).
		column("value_column", p.ZAxis).
		set("aggregation", string(c.flowAggregation())).
		set("names", nodes).
		set("total_nodes", len(nodes)).
		valueRange(lo, hi, len(nodes) > 0)
	return records, meta, nil
}

// buildGantt emits one bar per row. Temporal durations are in hours.
func buildGantt(c *buildContext) ([]Record, Metadata, error) {
	p := &c.params
	startName, endName := ganttBounds(c)
	task, start, end := c.column(p.XAxis), c.column(startName), c.column(endName)
	temporal := start.Kind() == dataset.Temporal

	rows := completeRows(c.rows(), task, start, end)
	records := make([]Record, len(rows))
	for i, r := range rows {
		label, _ := task.Label(r)
		var duration float64
		if temporal {
			s, _ := start.Time(r)
			e, _ := end.Time(r)
			duration = e.Sub(s).Hours()
		} else {
			s, _ := start.Float(r)
			e, _ := end.Float(r)
			duration = e - s
		}
		records[i] = Record{"task": label, "start": start.Value(r), "end": end.Value(r), "duration": duration}
	}
	records, err := c.orderRecords(records, map[string]string{
		p.XAxis:   "task",
		startName: "start",
		endName:   "end",
	})
	if err != nil {
		return nil, nil, err
	}

	meta := Metadata{}.
		column("task_column", p.XAxis).
		column("start_column", startName).
		column("end_column", endName).
		set("duration_unit", nil).
		set("total_tasks", len(records))
	if temporal {
		meta.set("duration_unit", "hours")
	}
	return records, meta, nil
}
