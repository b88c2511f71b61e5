package sqlsource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/galite/vchart"
)

func newSalesChart(t *testing.T) *vchart.Chart {
	t.Helper()
	dim, err := vchart.NewDimension("month", vchart.KindMonth)
	require.NoError(t, err)
	revenue, err := vchart.NewDecimalMeasure("revenue", 2, true)
	require.NoError(t, err)
	chart, err := vchart.New("sales", dim, []*vchart.Measure{revenue, vchart.NewIntegerMeasure("orders")}, nil, vchart.Config{})
	require.NoError(t, err)
	return chart
}

func TestQuery(t *testing.T) {
	db := NewTableDB(map[string]*Table{
		"sales": {
			Columns: []string{"orders", "month", "revenue"},
			Rows: [][]any{
				{int64(3), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), decimal.RequireFromString("10.5")},
				{nil, "2024-02", []byte("7.125")},
			},
		},
	})
	defer db.Close()

	chart := newSalesChart(t)
	numRows, err := Query(context.Background(), db, chart, `SELECT month, revenue, orders FROM sales`)
	require.NoError(t, err)
	require.Equal(t, 2, numRows)

	status, err := chart.Build()
	require.NoError(t, err)
	require.Equal(t, vchart.BuildOK, status)

	series := chart.Series()
	require.Equal(t, "01/2024", series[0].Dimension.Label)
	require.Equal(t, "10.50", series[0].Measures[0].Value.Decimal.StringFixed(2))
	require.Equal(t, int64(3), series[0].Measures[1].Value.Decimal.IntPart())
	require.Equal(t, "02/2024", series[1].Dimension.Label)
	require.Equal(t, "7.13", series[1].Measures[0].Value.Decimal.String())
	require.False(t, series[1].Measures[1].Value.Valid)

	_, err = Query(context.Background(), db, newSalesChart(t), `SELECT month, revenue FROM sales`)
	require.ErrorIs(t, err, ErrColumnCount)
}

type fakeRows struct {
	columns  []string
	rows     [][]any
	index    int
	closed   bool
	closeErr error
}

func (r *fakeRows) Columns() ([]string, error) { return r.columns, nil }

func (r *fakeRows) Scan(dest ...any) error {
	for i, d := range dest {
		if err := d.(interface{ Scan(any) error }).Scan(r.rows[r.index-1][i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRows) Close() error {
	r.closed = true
	return r.closeErr
}

func (r *fakeRows) Next() bool {
	if r.index >= len(r.rows) {
		return false
	}
	r.index++
	return true
}

func (r *fakeRows) Err() error { return nil }

func TestLoadRows(t *testing.T) {
	closeErr := errors.New("close failed")
	rows := &fakeRows{
		columns: []string{"month", "revenue", "orders"},
		rows: [][]any{
			{[]byte("2024-03"), []byte("1.5"), []byte("9")},
			{"2024-04", "x", nil},
		},
		closeErr: closeErr,
	}
	chart := newSalesChart(t)
	numRows, err := LoadRows(context.Background(), rows, chart, nil)
	require.Equal(t, 1, numRows)
	require.ErrorContains(t, err, `column "revenue"`)
	require.ErrorIs(t, err, closeErr)
	require.True(t, rows.closed)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rows = &fakeRows{columns: []string{"month", "revenue", "orders"}, rows: [][]any{{nil, nil, nil}}}
	_, err = LoadRows(ctx, rows, newSalesChart(t), nil)
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, rows.closed)
}
