package dataset

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

type Kind string

const (
	Numeric     Kind = "numeric"
	Categorical Kind = "categorical"
	Temporal    Kind = "temporal"
)

// Column is a single named, typed column. Only the storage slice matching
// Kind is populated. A slot is null when valid[i] is false.
type Column struct {
	name  string
	kind  Kind
	nums  []float64
	strs  []string
	times []time.Time
	valid []bool
}

func (c *Column) Name() string { return c.name }
func (c *Column) Kind() Kind   { return c.kind }
func (c *Column) Len() int     { return len(c.valid) }

func (c *Column) IsNull(i int) bool { return !c.valid[i] }

// NullCount returns the number of null slots.
func (c *Column) NullCount() int {
	n := 0
	for _, ok := range c.valid {
		if !ok {
			n++
		}
	}
	return n
}

// Float returns the numeric value at row i. Temporal values are returned
// as fractional unix seconds so that they can be placed on a numeric axis.
func (c *Column) Float(i int) (float64, bool) {
	if !c.valid[i] {
		return 0, false
	}
	switch c.kind {
	case Numeric:
		return c.nums[i], true
	case Temporal:
		return float64(c.times[i].UnixNano()) / 1e9, true
	}
	return 0, false
}

func (c *Column) Time(i int) (time.Time, bool) {
	if !c.valid[i] || c.kind != Temporal {
		return time.Time{}, false
	}
	return c.times[i], true
}

// Label returns the canonical string form of row i, used both as a grouping
// key and as a display label.
func (c *Column) Label(i int) (string, bool) {
	if !c.valid[i] {
		return "", false
	}
	switch c.kind {
	case Numeric:
		return FormatNumber(c.nums[i]), true
	case Temporal:
		return FormatTime(c.times[i]), true
	default:
		return c.strs[i], true
	}
}

// Value returns row i as float64, string or time.Time; nil for nulls.
func (c *Column) Value(i int) any {
	if !c.valid[i] {
		return nil
	}
	switch c.kind {
	case Numeric:
		return c.nums[i]
	case Temporal:
		return c.times[i]
	default:
		return c.strs[i]
	}
}

// Floats returns all non-null numeric values in row order.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.valid))
	for i := range c.valid {
		if v, ok := c.Float(i); ok {
			out = append(out, v)
		}
	}
	return out
}

func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func FormatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}

// Dataset is an immutable, columnar table. It is safe for concurrent reads.
type Dataset struct {
	name    string
	columns []*Column
	byName  map[string]*Column
	rows    int
}

func (d *Dataset) Name() string       { return d.name }
func (d *Dataset) NumRows() int       { return d.rows }
func (d *Dataset) NumColumns() int    { return len(d.columns) }
func (d *Dataset) Columns() []*Column { return d.columns }

func (d *Dataset) Has(name string) bool {
	_, ok := d.byName[name]
	return ok
}

func (d *Dataset) Column(name string) (*Column, bool) {
	c, ok := d.byName[name]
	return c, ok
}

func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.name
	}
	return names
}

// ColumnsOfKind returns the names of all columns with the given kind, in
// dataset order.
func (d *Dataset) ColumnsOfKind(k Kind) []string {
	var names []string
	for _, c := range d.columns {
		if c.kind == k {
			names = append(names, c.name)
		}
	}
	return names
}

// Builder assembles a Dataset column by column. The first error encountered
// is reported by Build.
type Builder struct {
	name string
	cols []*Column
	err  error
}

func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// NewNumericColumn builds a standalone numeric column. NaN and infinite
// values are stored as nulls.
func NewNumericColumn(name string, vals []float64) *Column {
	c := &Column{name: name, kind: Numeric, nums: make([]float64, len(vals)), valid: make([]bool, len(vals))}
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		c.nums[i] = v
		c.valid[i] = true
	}
	return c
}

// NewCategoricalColumn builds a standalone text column. Empty strings are
// stored as nulls.
func NewCategoricalColumn(name string, vals []string) *Column {
	c := &Column{name: name, kind: Categorical, strs: make([]string, len(vals)), valid: make([]bool, len(vals))}
	for i, v := range vals {
		if v == "" {
			continue
		}
		c.strs[i] = v
		c.valid[i] = true
	}
	return c
}

// NewTemporalColumn builds a standalone timestamp column. Zero times are
// stored as nulls.
func NewTemporalColumn(name string, vals []time.Time) *Column {
	c := &Column{name: name, kind: Temporal, times: make([]time.Time, len(vals)), valid: make([]bool, len(vals))}
	for i, v := range vals {
		if v.IsZero() {
			continue
		}
		c.times[i] = v
		c.valid[i] = true
	}
	return c
}

func (b *Builder) AddNumeric(name string, vals []float64) *Builder {
	return b.add(NewNumericColumn(name, vals))
}

func (b *Builder) AddCategorical(name string, vals []string) *Builder {
	return b.add(NewCategoricalColumn(name, vals))
}

func (b *Builder) AddTemporal(name string, vals []time.Time) *Builder {
	return b.add(NewTemporalColumn(name, vals))
}

func (b *Builder) add(c *Column) *Builder {
	if b.err != nil {
		return b
	}
	if c.name == "" {
		b.err = fmt.Errorf("column %d has an empty name", len(b.cols))
		return b
	}
	for _, existing := range b.cols {
		if existing.name == c.name {
			b.err = fmt.Errorf("duplicate column name %q", c.name)
			return b
		}
	}
	if len(b.cols) > 0 && b.cols[0].Len() != c.Len() {
		b.err = fmt.Errorf("column %q has %d rows, expected %d", c.name, c.Len(), b.cols[0].Len())
		return b
	}
	b.cols = append(b.cols, c)
	return b
}

func (b *Builder) Build() (*Dataset, error) {
	if b.err != nil {
		return nil, b.err
	}
	d := &Dataset{
		name:    b.name,
		columns: b.cols,
		byName:  make(map[string]*Column, len(b.cols)),
	}
	for _, c := range b.cols {
		d.byName[c.name] = c
	}
	if len(b.cols) > 0 {
		d.rows = b.cols[0].Len()
	}
	return d, nil
}
