package suggest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mahesh-hegde/instante/app/visualizer"
)

type Explanation struct {
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

// ExplainMarkdown describes what a computed chart shows: the columns it
// plots, how they are reduced, and the scalar metadata of the payload.
func ExplainMarkdown(ct visualizer.ChartType, params visualizer.Parameters, payload *visualizer.Payload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n\n", visualizer.Title(ct, params))

	switch {
	case params.XAxis != "" && params.YAxis != "":
		fmt.Fprintf(&b, "Plots `%s` against `%s`", params.YAxis, params.XAxis)
	case params.XAxis != "":
		fmt.Fprintf(&b, "Plots `%s`", params.XAxis)
	default:
		b.WriteString("Plots the numeric columns")
	}
	if agg, ok := payload.Metadata["aggregation"].(string); ok {
		fmt.Fprintf(&b, ", reduced with **%s**", agg)
	}
	var splits []string
	for _, col := range []string{params.GroupBy, params.StackBy, params.ColorBy} {
		if col != "" && !slices.Contains(splits, col) {
			splits = append(splits, col)
		}
	}
	if len(splits) > 0 {
		fmt.Fprintf(&b, ", split by `%s`", strings.Join(splits, "` and `"))
	}
	fmt.Fprintf(&b, ". The chart has %d records.\n\n", len(payload.Data))

	if groups, ok := payload.Metadata["degenerate_groups"].([]string); ok && len(groups) > 0 {
		fmt.Fprintf(&b, "> Groups with a single distinct value have no spread: %s.\n\n", strings.Join(groups, ", "))
	}

	keys := make([]string, 0, len(payload.Metadata))
	for k, v := range payload.Metadata {
		if isScalar(v) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	if len(keys) > 0 {
		b.WriteString("| property | value |\n|---|---|\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "| %s | %s |\n", k, cell(payload.Metadata[k]))
		}
	}
	return b.String()
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, bool, int, float64:
		return true
	}
	return false
}

func cell(v any) string {
	s := fmt.Sprint(v)
	if f, ok := v.(float64); ok {
		s = fmt.Sprintf("%.4g", f)
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
