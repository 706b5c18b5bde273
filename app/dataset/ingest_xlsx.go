package dataset

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads the first worksheet of a workbook. The first non-empty row
// is the header.
func ParseXLSX(name string, r io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}

	for len(rows) > 0 && len(rows[0]) == 0 {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}
	header := rows[0]
	body := rows[1:]
	for i, row := range body {
		// excelize drops trailing empty cells, but a row can also be wider
		// than the header when stray cells exist to the right of the table.
		if len(row) > len(header) {
			body[i] = row[:len(header)]
		}
	}
	return FromRecords(name, header, body)
}
