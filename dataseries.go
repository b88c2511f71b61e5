package vchart

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DimensionData is the formatted dimension value of a DataSeries.
type DimensionData struct {
	// Value is the raw dimension value of the row.
	Value any `json:"-"`
	// Label is Value formatted by the dimension column.
	Label string `json:"label"`
}

// MeasureData is one measure value of a DataSeries.
type MeasureData struct {
	// Label is the title of the measure column.
	Label string `json:"label"`
	// Value is invalid if the row has no data for the measure.
	Value decimal.NullDecimal `json:"value"`
	Color *Color              `json:"color,omitempty"`
}

// Float64 returns the measure value as float64 and false if it is null.
func (m MeasureData) Float64() (float64, bool) {
	if !m.Value.Valid {
		return 0, false
	}
	f, _ := m.Value.Decimal.Float64()
	return f, true
}

// DataSeries holds the formatted values of one chart row.
type DataSeries struct {
	Dimension DimensionData `json:"dimension"`
	// Measures has one entry per measure column in declaration order.
	Measures []MeasureData `json:"measures"`
}

// CreateDataSeries converts all rows of the chart into data series.
//
// The result has one DataSeries per row in insertion order,
// each with one MeasureData per measure column in declaration order.
// Measures without data keep their position with a null value.
// The series are rebuilt completely on every call.
func CreateDataSeries(c *Chart) ([]DataSeries, error) {
	series := make([]DataSeries, 0, c.rows.Len())
	for i, row := range c.rows.All() {
		dimValue := row.Dimension(0)
		label, err := c.Dimension.FormatValue(dimValue)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		measures := make([]MeasureData, len(c.Measures))
		for m, measure := range c.Measures {
			measures[m] = MeasureData{
				Label: measure.Title(),
				Value: measure.ToNumber(row.Measure(m)),
				Color: measure.Color,
			}
		}
		series = append(series, DataSeries{
			Dimension: DimensionData{Value: dimValue, Label: label},
			Measures:  measures,
		})
	}
	return series, nil
}
