package visualizer

import (
	"slices"

	"github.com/mahesh-hegde/instante/app/dataset"
)

// columnFields are the parameters that name dataset columns.
var columnFields = []string{
	"x_axis", "y_axis", "z_axis", "color_by", "size_by", "shape_by", "opacity_by", "group_by", "stack_by",
}

// syntheticColumns may be named by sort_by even though no dataset column
// carries the name.
var syntheticColumns = []string{"count", "value"}

func (p *Parameters) columnRef(field string) string {
	switch field {
	case "x_axis":
		return p.XAxis
	case "y_axis":
		return p.YAxis
	case "z_axis":
		return p.ZAxis
	case "color_by":
		return p.ColorBy
	case "size_by":
		return p.SizeBy
	case "shape_by":
		return p.ShapeBy
	case "opacity_by":
		return p.OpacityBy
	case "group_by":
		return p.GroupBy
	case "stack_by":
		return p.StackBy
	}
	return ""
}

// firstOf returns the first non-empty column reference among fields.
func (p *Parameters) firstOf(fields ...string) string {
	for _, f := range fields {
		if name := p.columnRef(f); name != "" {
			return name
		}
	}
	return ""
}

// contract is what a chart type needs from its parameters.
type contract struct {
	required []string
	// at least one field of each group must be set
	oneOf [][]string
	// fields whose column must be numeric
	numeric []string
	// fields whose column must be numeric unless the aggregation is count
	measures []string
	// additional_params keys whose string values name columns
	additional []string
	check      func(c *buildContext) error
}

// buildContext carries a validated request into a builder.
type buildContext struct {
	chartType ChartType
	ds        *dataset.Dataset
	params    Parameters
	agg       Aggregation
}

// column returns the named column, or nil for an empty name. Names are
// checked by validation before any builder runs.
func (c *buildContext) column(name string) *dataset.Column {
	if name == "" {
		return nil
	}
	col, _ := c.ds.Column(name)
	return col
}

// keyColumn returns the named column for use as a grouping key, bucketed
// when time_unit is set and the column is temporal.
func (c *buildContext) keyColumn(name string) *dataset.Column {
	col := c.column(name)
	if col != nil && c.params.TimeUnit != "" && col.Kind() == dataset.Temporal {
		return bucketTimes(col, c.params.TimeUnit)
	}
	return col
}

func (c *buildContext) rows() int {
	return c.ds.NumRows()
}

// additional returns the string value of an additional_params key.
func (c *buildContext) additional(key string) string {
	s, _ := c.params.AdditionalParams[key].(string)
	return s
}

// Validate checks params against the contract of chartType without
// building anything.
func Validate(ct ChartType, params Parameters, ds *dataset.Dataset) error {
	_, err := prepare(ct, params, ds)
	return err
}

func prepare(ct ChartType, params Parameters, ds *dataset.Dataset) (*buildContext, error) {
	spec, ok := registry[ct]
	if !ok {
		return nil, &UnsupportedChartTypeError{ChartType: ct}
	}
	agg, err := ParseAggregation(params.Aggregation)
	if err != nil {
		return nil, err
	}
	c := &buildContext{chartType: ct, ds: ds, params: params, agg: agg}
	k := spec.contract

	for _, f := range k.required {
		if params.columnRef(f) == "" {
			return nil, invalid(f, "%s is required for %s charts", f, ct)
		}
	}
	for _, group := range k.oneOf {
		if params.firstOf(group...) == "" {
			return nil, invalid(group[0], "one of %v is required for %s charts", group, ct)
		}
	}
	for _, f := range columnFields {
		if name := params.columnRef(f); name != "" && !ds.Has(name) {
			return nil, invalid(f, "column %q not found", name)
		}
	}
	for _, key := range k.additional {
		v, present := params.AdditionalParams[key]
		if !present {
			continue
		}
		name, isString := v.(string)
		if !isString {
			return nil, invalid("additional_params."+key, "expected a column name, got %v", v)
		}
		if !ds.Has(name) {
			return nil, invalid("additional_params."+key, "column %q not found", name)
		}
	}
	for _, f := range k.numeric {
		if err := requireNumeric(ds, f, params.columnRef(f)); err != nil {
			return nil, err
		}
	}
	if agg != Count {
		for _, f := range k.measures {
			if err := requireNumeric(ds, f, params.columnRef(f)); err != nil {
				return nil, err
			}
		}
	}
	if err := checkOptions(&params, ds); err != nil {
		return nil, err
	}
	if k.check != nil {
		if err := k.check(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func requireNumeric(ds *dataset.Dataset, field, name string) error {
	if name == "" {
		return nil
	}
	col, ok := ds.Column(name)
	if !ok {
		return invalid(field, "column %q not found", name)
	}
	if col.Kind() != dataset.Numeric {
		return invalid(field, "column %q is %s, expected numeric", name, col.Kind())
	}
	return nil
}

// checkOptions validates the chart-independent options.
func checkOptions(p *Parameters, ds *dataset.Dataset) error {
	positive := []struct {
		field string
		v     *int
	}{
		{"bins", p.Bins}, {"limit", p.Limit}, {"rolling_window", p.RollingWindow},
	}
	for _, o := range positive {
		if o.v != nil && *o.v <= 0 {
			return invalid(o.field, "must be positive, got %d", *o.v)
		}
	}
	if p.Bandwidth != nil && !(*p.Bandwidth > 0) {
		return invalid("bandwidth", "must be positive, got %v", *p.Bandwidth)
	}
	if p.SortOrder != "" && p.SortOrder != "asc" && p.SortOrder != "desc" {
		return invalid("sort_order", "expected asc or desc, got %q", p.SortOrder)
	}
	if p.SortBy != "" && !ds.Has(p.SortBy) && !slices.Contains(syntheticColumns, p.SortBy) {
		return invalid("sort_by", "column %q not found", p.SortBy)
	}
	if p.TimeUnit != "" && !slices.Contains(timeUnits, p.TimeUnit) {
		return invalid("time_unit", "expected one of %v, got %q", timeUnits, p.TimeUnit)
	}
	return nil
}

// radarAxes returns the numeric columns a radar chart plots: every numeric
// column except x_axis, at most limit (default 8) of them.
func radarAxes(ds *dataset.Dataset, p *Parameters) []string {
	var axes []string
	for _, name := range ds.ColumnsOfKind(dataset.Numeric) {
		if name != p.XAxis {
			axes = append(axes, name)
		}
	}
	n := maxRadarAxes
	if p.Limit != nil {
		n = *p.Limit
	}
	if len(axes) > n {
		axes = axes[:n]
	}
	return axes
}

// checkBar rejects layouts where the value would land under the category's
// own record key.
func checkBar(c *buildContext) error {
	p := &c.params
	switch {
	case p.YAxis != "" && p.YAxis == p.XAxis:
		return invalid("y_axis", "must differ from x_axis %q", p.XAxis)
	case p.YAxis == "" && p.XAxis == "count":
		return invalid("x_axis", "column %q clashes with the synthetic count column; set y_axis", p.XAxis)
	}
	return nil
}

func checkRadar(c *buildContext) error {
	n := 0
	for _, name := range c.ds.ColumnsOfKind(dataset.Numeric) {
		if name != c.params.XAxis {
			n++
		}
	}
	if n < 3 {
		return invalid("y_axis", "radar charts need at least 3 numeric columns besides x_axis, found %d", n)
	}
	return nil
}

// ganttBounds resolves the start and end columns of a gantt chart.
func ganttBounds(c *buildContext) (start, end string) {
	start, end = c.params.YAxis, c.params.ZAxis
	if s := c.additional("start"); s != "" {
		start = s
	}
	if e := c.additional("end"); e != "" {
		end = e
	}
	return start, end
}

func checkGantt(c *buildContext) error {
	start, end := ganttBounds(c)
	if start == "" {
		return invalid("y_axis", "gantt charts need a start column in y_axis or additional_params.start")
	}
	if end == "" {
		return invalid("z_axis", "gantt charts need an end column in z_axis or additional_params.end")
	}
	s, e := c.column(start), c.column(end)
	if s.Kind() != e.Kind() || s.Kind() == dataset.Categorical {
		return invalid("z_axis", "start %q and end %q must both be temporal or both numeric", start, end)
	}
	return nil
}

var ohlcKeys = []string{"open", "high", "low", "close"}

func checkCandlestick(c *buildContext) error {
	set := 0
	for _, k := range ohlcKeys {
		if name := c.additional(k); name != "" {
			if err := requireNumeric(c.ds, "additional_params."+k, name); err != nil {
				return err
			}
			set++
		}
	}
	switch {
	case set == len(ohlcKeys):
		return nil
	case set > 0:
		return invalid("additional_params", "candlestick charts need all of %v when any is given", ohlcKeys)
	case c.params.YAxis == "":
		return invalid("y_axis", "candlestick charts need y_axis or additional_params %v", ohlcKeys)
	}
	return requireNumeric(c.ds, "y_axis", c.params.YAxis)
}
