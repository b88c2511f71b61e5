// Package export writes the data series of a built vchart.Chart
// as CSV or HTML tables.
//
// The first table column holds the dimension labels,
// every following column the values of one measure.
package export

import (
	"github.com/galite/vchart"
)

// seriesTable returns the header and the formatted cells
// of the data series. Null measure values are returned as nil.
func seriesTable(c *vchart.Chart) (header []string, rows [][]*string) {
	header = make([]string, 1+len(c.Measures))
	header[0] = c.Dimension.Title()
	for i, m := range c.Measures {
		header[i+1] = m.Title()
	}
	series := c.Series()
	rows = make([][]*string, len(series))
	for r, s := range series {
		row := make([]*string, 1+len(s.Measures))
		label := s.Dimension.Label
		row[0] = &label
		for m, measure := range s.Measures {
			if measure.Value.Valid {
				str := measure.Value.Decimal.String()
				row[m+1] = &str
			}
		}
		rows[r] = row
	}
	return header, rows
}
