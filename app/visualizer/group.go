package visualizer

import (
	"strings"

	"github.com/mahesh-hegde/instante/app/dataset"
)

// group is one distinct key (possibly composite) and the rows that carry it.
type group struct {
	keys   []any
	labels []string
	rows   []int
}

func (g *group) label() string {
	return strings.Join(g.labels, " / ")
}

// values returns the non-null values of col over the group's rows.
func (g *group) values(col *dataset.Column) []float64 {
	out := make([]float64, 0, len(g.rows))
	for _, r := range g.rows {
		if v, ok := col.Float(r); ok {
			out = append(out, v)
		}
	}
	return out
}

// count returns the number of rows in the group where col is not null.
func (g *group) count(col *dataset.Column) int {
	n := 0
	for _, r := range g.rows {
		if !col.IsNull(r) {
			n++
		}
	}
	return n
}

// reduce applies agg to col over the group's rows. A nil col counts rows.
func (g *group) reduce(col *dataset.Column, agg Aggregation) (float64, bool) {
	switch {
	case col == nil:
		return float64(len(g.rows)), true
	case agg == Count:
		return float64(g.count(col)), true
	}
	return agg.Reduce(g.values(col))
}

// groupRows partitions rows by the given key columns. Groups come out in the
// order their key was first encountered. Rows with a null in any key column
// belong to no group.
func groupRows(n int, keyCols ...*dataset.Column) []*group {
	var groups []*group
	index := map[string]*group{}
	labels := make([]string, len(keyCols))

rows:
	for r := 0; r < n; r++ {
		for k, col := range keyCols {
			label, ok := col.Label(r)
			if !ok {
				continue rows
			}
			labels[k] = label
		}
		id := strings.Join(labels, "\x1f")
		g, ok := index[id]
		if !ok {
			g = &group{keys: make([]any, len(keyCols)), labels: make([]string, len(keyCols))}
			for k, col := range keyCols {
				g.keys[k] = col.Value(r)
			}
			copy(g.labels, labels)
			index[id] = g
			groups = append(groups, g)
		}
		g.rows = append(g.rows, r)
	}
	return groups
}

// reduced is one output row of a group-reduce.
type reduced struct {
	*group
	value float64
	valid bool
}

// orNil returns the reduced value, or nil when it is undefined.
func (r reduced) orNil() any {
	if !r.valid {
		return nil
	}
	return r.value
}

// groupReduce reduces valueCol per distinct key. With a nil valueCol each
// group's value is its row count, whatever the aggregation. Count works on
// value columns of any kind; the other reducers need numeric values.
func groupReduce(n int, keyCols []*dataset.Column, valueCol *dataset.Column, agg Aggregation) []reduced {
	groups := groupRows(n, keyCols...)
	out := make([]reduced, len(groups))
	for i, g := range groups {
		out[i].group = g
		out[i].value, out[i].valid = g.reduce(valueCol, agg)
	}
	return out
}

func reducedTotal(rows []reduced) float64 {
	total := 0.0
	for _, r := range rows {
		if r.valid {
			total += r.value
		}
	}
	return total
}

// percentOf returns v as a percentage of total, or 0 for a zero total.
func percentOf(v, total float64) float64 {
	if total == 0 {
		return 0
	}
	return v / total * 100
}

// pivotTable is a rectangular rows × series layout. Cells for key
// combinations absent from the input are zero, never null.
type pivotTable struct {
	rows   []*group
	series []*group
	cells  [][]float64
}

// pivot lays out valueCol reduced per (rowCol, seriesCol) pair. A nil
// valueCol counts rows instead. Rows and series appear in the order their
// key was first seen on a row where both keys are present.
func pivot(n int, rowCol, seriesCol, valueCol *dataset.Column, agg Aggregation) *pivotTable {
	cells := groupReduce(n, []*dataset.Column{rowCol, seriesCol}, valueCol, agg)

	pt := &pivotTable{}
	rowIndex, seriesIndex := map[string]int{}, map[string]int{}
	for _, cell := range cells {
		if _, ok := rowIndex[cell.labels[0]]; !ok {
			rowIndex[cell.labels[0]] = len(pt.rows)
			pt.rows = append(pt.rows, &group{keys: cell.keys[:1], labels: cell.labels[:1]})
		}
		if _, ok := seriesIndex[cell.labels[1]]; !ok {
			seriesIndex[cell.labels[1]] = len(pt.series)
			pt.series = append(pt.series, &group{keys: cell.keys[1:], labels: cell.labels[1:]})
		}
	}

	pt.cells = make([][]float64, len(pt.rows))
	for i := range pt.cells {
		pt.cells[i] = make([]float64, len(pt.series))
	}
	for _, cell := range cells {
		if cell.valid {
			pt.cells[rowIndex[cell.labels[0]]][seriesIndex[cell.labels[1]]] = cell.value
		}
	}
	return pt
}

func (pt *pivotTable) rowTotal(i int) float64 {
	total := 0.0
	for _, v := range pt.cells[i] {
		total += v
	}
	return total
}

func (pt *pivotTable) seriesLabels() []string {
	out := make([]string, len(pt.series))
	for i, g := range pt.series {
		out[i] = g.labels[0]
	}
	return out
}

func (pt *pivotTable) rowLabels() []string {
	out := make([]string, len(pt.rows))
	for i, g := range pt.rows {
		out[i] = g.labels[0]
	}
	return out
}

// bounds returns the smallest and largest cell value.
func (pt *pivotTable) bounds() (lo, hi float64) {
	first := true
	for _, row := range pt.cells {
		for _, v := range row {
			if first || v < lo {
				lo = v
			}
			if first || v > hi {
				hi = v
			}
			first = false
		}
	}
	return lo, hi
}
