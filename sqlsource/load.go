// Package sqlsource loads the rows of a vchart.Chart from SQL query results.
//
// The first result column holds the dimension values,
// the following columns hold the measure values
// in the declaration order of the chart's measures.
package sqlsource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/galite/vchart"
	"github.com/galite/vchart/rowsource"
)

// ErrColumnCount is returned when a result set has fewer columns
// than the chart has dimension and measure columns.
var ErrColumnCount = errors.New("result column count does not match chart")

// Query executes query with args and loads the resulting rows into chart.
func Query(ctx context.Context, db Queryer, chart *vchart.Chart, query string, args ...any) (numRows int, err error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("chart %s: %w", chart.Ident, err)
	}
	return LoadRows(ctx, rows, chart, nil)
}

// LoadRows appends all rows to chart and closes rows.
//
// Text values are parsed with parser according to the kind
// of their column, a nil parser uses rowsource.DefaultParser.
// Other values are passed to the chart as scanned.
func LoadRows(ctx context.Context, rows Rows, chart *vchart.Chart, parser *rowsource.StringParser) (numRows int, err error) {
	defer func() {
		err = errors.Join(err, rows.Close())
	}()

	if parser == nil {
		parser = rowsource.DefaultParser
	}
	columns, err := rows.Columns()
	if err != nil {
		return 0, err
	}
	if len(columns) < 1+len(chart.Measures) {
		return 0, fmt.Errorf("%w: %d columns for %d measures", ErrColumnCount, len(columns), len(chart.Measures))
	}

	scannedValues := make([]any, len(columns))
	valueScanners := make([]any, len(columns))
	for i := range valueScanners {
		valueScanners[i] = valueScanner{&scannedValues[i]}
	}
	for rows.Next() {
		if ctx.Err() != nil {
			return numRows, ctx.Err()
		}
		clear(scannedValues)
		if err = rows.Scan(valueScanners...); err != nil {
			return numRows, err
		}
		dimension, err := columnValue(parser, chart.Dimension.Kind, chart.Dimension.Codes, scannedValues[0])
		if err != nil {
			return numRows, fmt.Errorf("column %q: %w", columns[0], err)
		}
		measures := make([]any, len(chart.Measures))
		for m, measure := range chart.Measures {
			measures[m], err = columnValue(parser, measure.Kind, measure.Codes, scannedValues[m+1])
			if err != nil {
				return numRows, fmt.Errorf("column %q: %w", columns[m+1], err)
			}
		}
		if err = chart.AddRow([]any{dimension}, measures); err != nil {
			return numRows, err
		}
		numRows++
	}
	return numRows, rows.Err()
}

func columnValue(parser *rowsource.StringParser, kind vchart.Kind, codes *vchart.CodeTable, value any) (any, error) {
	if str, ok := value.(string); ok && kind != vchart.KindString {
		return parser.ParseValue(kind, codes, str)
	}
	return value, nil
}

var _ sql.Scanner = new(valueScanner)

type valueScanner struct {
	dest *any
}

// Scan implements the database/sql.Scanner interface.
// Byte slices are converted to strings because
// they are not valid after the method call.
func (s valueScanner) Scan(src any) error {
	if b, ok := src.([]byte); ok {
		src = string(b)
	}
	*s.dest = src
	return nil
}
