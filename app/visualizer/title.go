package visualizer

import (
	"strings"
	"unicode"
)

// Title returns the display title of a chart, eg: "Bar Chart - region vs sales".
func Title(ct ChartType, params Parameters) string {
	var b strings.Builder
	b.WriteString(titleCase(string(ct)))
	b.WriteString(" Chart")
	if params.XAxis != "" {
		b.WriteString(" - ")
		b.WriteString(params.XAxis)
	}
	if params.YAxis != "" {
		b.WriteString(" vs ")
		b.WriteString(params.YAxis)
	}
	return b.String()
}

// titleCase upper-cases every letter that follows a non-letter, so
// "stacked_bar" becomes "Stacked_Bar".
func titleCase(s string) string {
	out := []rune(s)
	prevLetter := false
	for i, r := range out {
		if unicode.IsLetter(r) {
			if !prevLetter {
				out[i] = unicode.ToUpper(r)
			} else {
				out[i] = unicode.ToLower(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
	}
	return string(out)
}
