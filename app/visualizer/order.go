package visualizer

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// compareValues orders record values: numbers numerically, times
// chronologically, strings lexically. nil sorts after everything.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	switch x := a.(type) {
	case float64:
		if y, ok := b.(float64); ok {
			return cmp.Compare(x, y)
		}
	case int:
		if y, ok := b.(int); ok {
			return cmp.Compare(x, y)
		}
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func (c *buildContext) descending() bool {
	return c.params.SortOrder == "desc"
}

// orderRecords applies sort_by, sort_order and limit to group-style output.
// aliases maps a dataset column name (or a synthetic name like "count") to
// the record key it ended up under. The sort is stable. sort_by must name a
// key of the output records.
func (c *buildContext) orderRecords(records []Record, aliases map[string]string) ([]Record, error) {
	if field := c.params.SortBy; field != "" {
		if alias, ok := aliases[field]; ok {
			field = alias
		}
		if !hasKey(records, field) {
			return nil, invalid("sort_by", "column %q is not part of %s output", c.params.SortBy, c.chartType)
		}
		desc := c.descending()
		slices.SortStableFunc(records, func(a, b Record) int {
			av, bv := a[field], b[field]
			if av == nil || bv == nil || !desc {
				return compareValues(av, bv)
			}
			return -compareValues(av, bv)
		})
	}
	return c.limitRecords(records), nil
}

// hasKey reports whether any record has key. Empty output has nothing to sort.
func hasKey(records []Record, key string) bool {
	if len(records) == 0 {
		return true
	}
	for _, rec := range records {
		if _, ok := rec[key]; ok {
			return true
		}
	}
	return false
}

func (c *buildContext) limitRecords(records []Record) []Record {
	if c.params.Limit != nil && *c.params.Limit < len(records) {
		return records[:*c.params.Limit]
	}
	return records
}

// orderRows sorts pivot rows when sort_by names the row key column (sorts by
// key) or the value column (sorts by row total), then applies limit. Any
// other sort_by is rejected.
func (pt *pivotTable) orderRows(c *buildContext, rowCol, valueCol string) error {
	sortBy := c.params.SortBy
	byKey := sortBy != "" && sortBy == rowCol
	byTotal := sortBy != "" && !byKey &&
		((valueCol != "" && sortBy == valueCol) || sortBy == "value" || sortBy == "count")
	if sortBy != "" && !byKey && !byTotal {
		return invalid("sort_by", "column %q is not part of %s output", sortBy, c.chartType)
	}

	order := make([]int, len(pt.rows))
	for i := range order {
		order[i] = i
	}
	if byKey || byTotal {
		sign := 1
		if c.descending() {
			sign = -1
		}
		slices.SortStableFunc(order, func(a, b int) int {
			if byKey {
				return sign * compareValues(pt.rows[a].keys[0], pt.rows[b].keys[0])
			}
			return sign * cmp.Compare(pt.rowTotal(a), pt.rowTotal(b))
		})
	}
	if c.params.Limit != nil && *c.params.Limit < len(order) {
		order = order[:*c.params.Limit]
	}

	rows := make([]*group, len(order))
	cells := make([][]float64, len(order))
	for i, idx := range order {
		rows[i] = pt.rows[idx]
		cells[i] = pt.cells[idx]
	}
	pt.rows, pt.cells = rows, cells
	return nil
}
