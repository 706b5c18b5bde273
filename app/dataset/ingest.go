package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mahesh-hegde/instante/app/common"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// ValidateUpload checks the file extension and size before anything is
// parsed.
func ValidateUpload(filename string, size int64, maxSize int64, allowed []string) error {
	if filename == "" {
		return common.NewUserVisibleError(http.StatusBadRequest, "Filename is required")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(allowed, ext) {
		return common.NewUserVisibleError(http.StatusBadRequest,
			fmt.Sprintf("File type %s not supported. Allowed: %s", ext, strings.Join(allowed, ", ")))
	}
	if maxSize > 0 && size > maxSize {
		return common.NewUserVisibleError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File size exceeds maximum allowed size of %dMB", maxSize/(1024*1024)))
	}
	return nil
}

// Parse reads an uploaded file into a Dataset, choosing the reader by file
// extension.
func Parse(filename string, content []byte) (*Dataset, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return ParseCSV(filename, bytes.NewReader(content))
	case ".json":
		return ParseJSON(filename, bytes.NewReader(content))
	case ".xlsx":
		return ParseXLSX(filename, bytes.NewReader(content))
	case ".xls":
		return nil, fmt.Errorf("%w: legacy .xls workbooks must be re-saved as .xlsx", ErrUnsupportedFormat)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}

func ParseCSV(name string, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv file is empty")
	}
	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return FromRecords(name, header, records[1:])
}

// ParseJSON reads an array of flat JSON objects. Columns are ordered by
// first appearance; keys missing from a record become nulls.
func ParseJSON(name string, r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	var header []string
	index := map[string]int{}
	var rows []map[string]string

	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, err
		}
		row := map[string]string{}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("reading json key: %w", err)
			}
			key, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("expected object key, got %v", tok)
			}
			var v any
			if err := dec.Decode(&v); err != nil {
				return nil, fmt.Errorf("reading json value for %q: %w", key, err)
			}
			if _, seen := index[key]; !seen {
				index[key] = len(header)
				header = append(header, key)
			}
			row[key] = jsonCell(v)
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("reading past the closing ]: %w", err)
		}
		return nil, fmt.Errorf("unexpected %v after the closing ]", tok)
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, len(header))
		for k, v := range row {
			cells[i][index[k]] = v
		}
	}
	return FromRecords(name, header, cells)
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading json: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q in json input, got %v", want, tok)
	}
	return nil
}

func jsonCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}
