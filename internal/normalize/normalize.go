// Package normalize reshapes a raw CSV table response into the cleaned form
// written to disk: selected columns only, renamed headers, and bare region
// names with administrative codes and qualifier words stripped.
package normalize

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"

	"github.com/scbtools/tablepull/internal/dataset"
)

// SchemaError reports a structural mismatch between the fetched table and the
// columns the dataset declares. It is not a transport failure: the request
// succeeded and returned something we cannot reshape.
type SchemaError struct {
	Dataset string
	Reason  string
	Err     error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dataset %s: %s: %v", e.Dataset, e.Reason, e.Err)
	}
	return fmt.Sprintf("dataset %s: %s", e.Dataset, e.Reason)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// Table is a normalized result ready for the sink.
type Table struct {
	Header []string
	Rows   [][]string
}

// leadingCode matches the numeric administrative code prefix on region names,
// e.g. "01 Stockholm county".
var leadingCode = regexp.MustCompile(`^\d+\s+`)

// Normalize parses body as comma-separated text with a header row, keeps the
// dataset's declared columns under their target names, and cleans the region
// column. A missing source column or a ragged record is a *SchemaError.
func Normalize(body []byte, ds dataset.Dataset) (Table, error) {
	reader := csv.NewReader(bytes.NewReader(body))
	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, &SchemaError{Dataset: ds.Name, Reason: "parse csv", Err: err}
	}
	if len(records) == 0 {
		return Table{}, &SchemaError{Dataset: ds.Name, Reason: "empty response"}
	}

	header := records[0]
	cols := ds.Columns()
	indexes := make([]int, len(cols))
	for i, col := range cols {
		idx := indexOf(header, col.Source)
		if idx < 0 {
			return Table{}, &SchemaError{
				Dataset: ds.Name,
				Reason:  fmt.Sprintf("expected column %q not found in response header", col.Source),
			}
		}
		indexes[i] = idx
	}

	suffix := suffixPattern(ds.RegionSuffix)
	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]string, len(indexes))
		for i, idx := range indexes {
			row[i] = record[idx]
		}
		// Region is always the first selected column.
		row[0] = CleanRegion(row[0], suffix)
		rows = append(rows, row)
	}

	return Table{Header: ds.Headers(), Rows: rows}, nil
}

// CleanRegion strips the leading numeric code, the trailing qualifier word,
// and surrounding whitespace from a region display name. The suffix match is
// case-insensitive for every dataset.
func CleanRegion(name string, suffix *regexp.Regexp) string {
	name = leadingCode.ReplaceAllString(name, "")
	if suffix != nil {
		name = suffix.ReplaceAllString(name, "")
	}
	return strings.TrimSpace(name)
}

func suffixPattern(word string) *regexp.Regexp {
	if strings.TrimSpace(word) == "" {
		return nil
	}
	return regexp.MustCompile(`(?i)\s` + regexp.QuoteMeta(word) + `$`)
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}
