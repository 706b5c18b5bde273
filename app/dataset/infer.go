package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var nullTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
	"-":    true,
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
	"2006/01/02",
	"01/02/2006",
	"2006-01",
}

func isNullCell(s string) bool {
	return nullTokens[strings.ToLower(strings.TrimSpace(s))]
}

func parseNumberCell(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// allow thousands separators, eg: 1,234.5
		if strings.Contains(s, ",") {
			v, err = strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		}
		if err != nil {
			return 0, false
		}
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func parseTimeCell(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// inferKind decides a column kind from its raw cells. A column is numeric if
// every non-null cell parses as a number, temporal if every non-null cell
// parses as a timestamp, and categorical otherwise. All-null columns are
// categorical.
func inferKind(cells []string) Kind {
	numeric, temporal, seen := true, true, false
	for _, cell := range cells {
		if isNullCell(cell) {
			continue
		}
		seen = true
		if numeric {
			if _, ok := parseNumberCell(cell); !ok {
				numeric = false
			}
		}
		if temporal {
			if _, ok := parseTimeCell(cell); !ok {
				temporal = false
			}
		}
		if !numeric && !temporal {
			return Categorical
		}
	}
	switch {
	case !seen:
		return Categorical
	case numeric:
		return Numeric
	case temporal:
		return Temporal
	}
	return Categorical
}

// FromRecords builds a Dataset from a header row and string cells, inferring
// each column's kind. Short rows are padded with nulls; long rows are an
// error.
func FromRecords(name string, header []string, rows [][]string) (*Dataset, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("no header row")
	}
	for r, row := range rows {
		if len(row) > len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", r+1, len(row), len(header))
		}
	}

	b := NewBuilder(name)
	for c, colName := range header {
		colName = strings.TrimSpace(colName)
		if colName == "" {
			colName = fmt.Sprintf("column_%d", c+1)
		}
		cells := make([]string, len(rows))
		for r, row := range rows {
			if c < len(row) {
				cells[r] = row[c]
			}
		}

		switch inferKind(cells) {
		case Numeric:
			vals := make([]float64, len(cells))
			for i, cell := range cells {
				vals[i] = math.NaN()
				if v, ok := parseNumberCell(cell); ok && !isNullCell(cell) {
					vals[i] = v
				}
			}
			b.AddNumeric(colName, vals)
		case Temporal:
			vals := make([]time.Time, len(cells))
			for i, cell := range cells {
				if t, ok := parseTimeCell(cell); ok && !isNullCell(cell) {
					vals[i] = t
				}
			}
			b.AddTemporal(colName, vals)
		default:
			vals := make([]string, len(cells))
			for i, cell := range cells {
				if !isNullCell(cell) {
					vals[i] = strings.TrimSpace(cell)
				}
			}
			b.AddCategorical(colName, vals)
		}
	}
	return b.Build()
}
