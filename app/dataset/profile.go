package dataset

import (
	"fmt"
	"slices"

	"github.com/aclements/go-moremath/stats"
	"github.com/mahesh-hegde/instante/app/common"
)

const sampleRows = 5

// ColumnSummary mirrors the usual describe() table for one numeric column.
type ColumnSummary struct {
	Count int      `json:"count"`
	Mean  float64  `json:"mean"`
	Std   *float64 `json:"std"`
	Min   float64  `json:"min"`
	P25   float64  `json:"25%"`
	P50   float64  `json:"50%"`
	P75   float64  `json:"75%"`
	Max   float64  `json:"max"`
}

// Profile is the descriptive summary returned on upload and consumed by the
// suggestion generator.
type Profile struct {
	Filename           string                   `json:"filename"`
	Shape              [2]int                   `json:"shape"`
	Columns            []string                 `json:"columns"`
	DataTypes          map[string]Kind          `json:"data_types"`
	NumericColumns     []string                 `json:"numeric_columns"`
	CategoricalColumns []string                 `json:"categorical_columns"`
	DatetimeColumns    []string                 `json:"datetime_columns"`
	MissingValues      map[string]int           `json:"missing_values"`
	DistinctValues     map[string]int           `json:"distinct_values"`
	MemoryUsage        string                   `json:"memory_usage"`
	SummaryStats       map[string]ColumnSummary `json:"summary_stats,omitempty"`
	SampleData         []map[string]any         `json:"sample_data"`
}

func (p *Profile) TotalMissing() int {
	total := 0
	for _, n := range p.MissingValues {
		total += n
	}
	return total
}

func Describe(ds *Dataset) *Profile {
	p := &Profile{
		Filename:           ds.Name(),
		Shape:              [2]int{ds.NumRows(), ds.NumColumns()},
		Columns:            ds.ColumnNames(),
		DataTypes:          make(map[string]Kind, ds.NumColumns()),
		NumericColumns:     ds.ColumnsOfKind(Numeric),
		CategoricalColumns: ds.ColumnsOfKind(Categorical),
		DatetimeColumns:    ds.ColumnsOfKind(Temporal),
		MissingValues:      make(map[string]int, ds.NumColumns()),
		DistinctValues:     make(map[string]int, ds.NumColumns()),
	}

	var bytes int
	for _, c := range ds.Columns() {
		p.DataTypes[c.Name()] = c.Kind()
		p.MissingValues[c.Name()] = c.NullCount()
		p.DistinctValues[c.Name()] = distinctCount(c)
		bytes += columnBytes(c)

		if c.Kind() != Numeric {
			continue
		}
		if s, ok := summarize(c.Floats()); ok {
			if p.SummaryStats == nil {
				p.SummaryStats = map[string]ColumnSummary{}
			}
			p.SummaryStats[c.Name()] = s
		}
	}
	p.MemoryUsage = fmt.Sprintf("%.2f MB", float64(bytes)/1024/1024)

	n := min(sampleRows, ds.NumRows())
	p.SampleData = make([]map[string]any, n)
	for i := 0; i < n; i++ {
		row := make(map[string]any, ds.NumColumns())
		for _, c := range ds.Columns() {
			row[c.Name()] = c.Value(i)
		}
		p.SampleData[i] = row
	}
	return p
}

func summarize(xs []float64) (ColumnSummary, bool) {
	if len(xs) == 0 {
		return ColumnSummary{}, false
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	lo, hi := stats.Bounds(sorted)
	s := ColumnSummary{
		Count: len(xs),
		Mean:  stats.Mean(xs),
		Min:   lo,
		P25:   common.Quantile(sorted, 0.25),
		P50:   common.Quantile(sorted, 0.5),
		P75:   common.Quantile(sorted, 0.75),
		Max:   hi,
	}
	if len(xs) > 1 {
		std := stats.StdDev(xs)
		s.Std = &std
	}
	return s, true
}

func distinctCount(c *Column) int {
	seen := map[string]struct{}{}
	for i := 0; i < c.Len(); i++ {
		if label, ok := c.Label(i); ok {
			seen[label] = struct{}{}
		}
	}
	return len(seen)
}

func columnBytes(c *Column) int {
	n := c.Len()
	switch c.Kind() {
	case Numeric:
		return n * 9
	case Temporal:
		return n * 25
	}
	total := n * 17
	for _, s := range c.strs {
		total += len(s)
	}
	return total
}
