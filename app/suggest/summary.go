package suggest

import (
	"fmt"
	"strings"

	"github.com/mahesh-hegde/instante/app/dataset"
)

const (
	summaryStatColumns = 3
	summarySampleRows  = 3
	summaryRowWidth    = 100
)

// Summary describes a profiled dataset in a few lines of plain text.
func Summary(p *dataset.Profile) string {
	lines := []string{
		fmt.Sprintf("Dataset: %s", p.Filename),
		fmt.Sprintf("Shape: %d rows, %d columns", p.Shape[0], p.Shape[1]),
		fmt.Sprintf("Columns: %s", strings.Join(p.Columns, ", ")),
	}
	if len(p.NumericColumns) > 0 {
		lines = append(lines, fmt.Sprintf("Numeric columns: %s", strings.Join(p.NumericColumns, ", ")))
	}
	if len(p.CategoricalColumns) > 0 {
		lines = append(lines, fmt.Sprintf("Categorical columns: %s", strings.Join(p.CategoricalColumns, ", ")))
	}
	if len(p.DatetimeColumns) > 0 {
		lines = append(lines, fmt.Sprintf("DateTime columns: %s", strings.Join(p.DatetimeColumns, ", ")))
	}

	if len(p.SummaryStats) > 0 {
		lines = append(lines, "Statistical Summary:")
		shown := 0
		for _, name := range p.NumericColumns {
			s, ok := p.SummaryStats[name]
			if !ok {
				continue
			}
			std := "N/A"
			if s.Std != nil {
				std = fmt.Sprintf("%.2f", *s.Std)
			}
			lines = append(lines, fmt.Sprintf("  %s: mean=%.2f, std=%s", name, s.Mean, std))
			if shown++; shown == summaryStatColumns {
				break
			}
		}
	}

	if len(p.SampleData) > 0 {
		lines = append(lines, fmt.Sprintf("Sample data (first %d rows):", summarySampleRows))
		for i, row := range p.SampleData[:min(summarySampleRows, len(p.SampleData))] {
			text := fmt.Sprint(row)
			if len(text) > summaryRowWidth {
				text = text[:summaryRowWidth]
			}
			lines = append(lines, fmt.Sprintf("  Row %d: %s...", i+1, text))
		}
	}
	return strings.Join(lines, "\n")
}
