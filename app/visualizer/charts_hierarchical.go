package visualizer

import (
	"github.com/mahesh-hegde/instante/app/dataset"
)

// buildTreemap serves treemap and sunburst. With a subcategory column
// (color_by, else group_by) each category carries children whose
// percentage is relative to the category total. Undefined reductions count
// as zero.
func buildTreemap(c *buildContext) ([]Record, Metadata, error) {
	p := &c.params
	category, value := c.column(p.XAxis), c.column(p.YAxis)
	subName := p.firstOf("color_by", "group_by")

	var records []Record
	if subName == "" {
		groups := groupReduce(c.rows(), []*dataset.Column{category}, value, c.agg)
		total := reducedTotal(groups)
		records = make([]Record, len(groups))
		for i, g := range groups {
			records[i] = Record{"name": g.label(), "value": g.value, "percentage": percentOf(g.value, total)}
		}
	} else {
		cells := groupReduce(c.rows(), []*dataset.Column{category, c.column(subName)}, value, c.agg)
		index := map[string]int{}
		var children [][]reduced
		var names []string
		for _, cell := range cells {
			i, ok := index[cell.labels[0]]
			if !ok {
				i = len(names)
				index[cell.labels[0]] = i
				names = append(names, cell.labels[0])
				children = append(children, nil)
			}
			children[i] = append(children[i], cell)
		}
		records = make([]Record, len(names))
		for i, name := range names {
			total := reducedTotal(children[i])
			kids := make([]Record, len(children[i]))
			for k, cell := range children[i] {
				kids[k] = Record{"name": cell.labels[1], "value": cell.value, "percentage": percentOf(cell.value, total)}
			}
			records[i] = Record{"name": name, "value": total, "children": kids}
		}
	}
	records, err := c.orderRecords(records, map[string]string{
		p.XAxis: "name",
		p.YAxis: "value",
		"count": "value",
	})
	if err != nil {
		return nil, nil, err
	}

	meta := Metadata{}.
		column("category_column", p.XAxis).
		column("value_column", p.YAxis).
		column("subcategory_column", subName).
		set("aggregation", string(c.agg)).
		set("total_categories", len(records)).
		set("hierarchical", subName != "")
	if c.chartType == Sunburst {
		meta.set("chart_subtype", "sunburst")
	}
	return records, meta, nil
}
