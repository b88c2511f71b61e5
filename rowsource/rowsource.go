// Package rowsource loads the rows of a vchart.Chart
// from string tables, CSV and Excel files.
//
// The first table column holds the dimension values,
// the following columns hold the measure values
// in the declaration order of the chart's measures.
package rowsource

import (
	"fmt"
	"strings"

	"github.com/galite/vchart"
)

// DefaultParser is used when a nil StringParser is passed.
var DefaultParser = NewStringParser()

// LoadStrings parses every row of table and appends it to chart.
// With header set the first row is skipped.
// Rows that are empty after trimming spaces are ignored.
// Cells missing at the end of a row are parsed as nil.
// A table without data rows is not an error,
// the chart reports it when built.
func LoadStrings(chart *vchart.Chart, table [][]string, header bool, parser *StringParser) (numRows int, err error) {
	if parser == nil {
		parser = DefaultParser
	}
	if header && len(table) > 0 {
		table = table[1:]
	}
	for i, cells := range table {
		if isEmptyRow(cells) {
			continue
		}
		dimension, err := parser.ParseValue(chart.Dimension.Kind, chart.Dimension.Codes, cell(cells, 0))
		if err != nil {
			return numRows, fmt.Errorf("row %d, column %q: %w", i, chart.Dimension.Ident, err)
		}
		measures := make([]any, len(chart.Measures))
		for m, measure := range chart.Measures {
			measures[m], err = parser.ParseValue(measure.Kind, measure.Codes, cell(cells, m+1))
			if err != nil {
				return numRows, fmt.Errorf("row %d, column %q: %w", i, measure.Ident, err)
			}
		}
		if err = chart.AddRow([]any{dimension}, measures); err != nil {
			return numRows, err
		}
		numRows++
	}
	return numRows, nil
}

func cell(cells []string, index int) string {
	if index >= len(cells) {
		return ""
	}
	return cells[index]
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
