package vchart

import (
	"iter"
	"slices"
)

// Row is one tuple of raw dimension and measure values.
// The position of a value identifies its column.
type Row struct {
	Dimensions []any
	Measures   []any
}

// Dimension returns the dimension value at index or nil.
func (r Row) Dimension(index int) any {
	if index < 0 || index >= len(r.Dimensions) {
		return nil
	}
	return r.Dimensions[index]
}

// Measure returns the measure value at index or nil.
func (r Row) Measure(index int) any {
	if index < 0 || index >= len(r.Measures) {
		return nil
	}
	return r.Measures[index]
}

// Rows is the append-only row store of a chart.
// Insertion order is the order of the data series.
type Rows struct {
	rows []Row
}

// Add appends a row holding copies of the passed slices.
func (r *Rows) Add(dimensions, measures []any) {
	r.rows = append(r.rows, Row{
		Dimensions: slices.Clone(dimensions),
		Measures:   slices.Clone(measures),
	})
}

func (r *Rows) Len() int {
	return len(r.rows)
}

// At returns the row at index.
func (r *Rows) At(index int) Row {
	return r.rows[index]
}

// All iterates the rows in insertion order.
func (r *Rows) All() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i, row := range r.rows {
			if !yield(i, row) {
				return
			}
		}
	}
}
