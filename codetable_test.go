package vchart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestIntegerCodeTable_Index(t *testing.T) {
	contiguous, err := NewIntegerCodeTable("contiguous", []string{"A", "B", "C", "D"}, []int64{5, 6, 7, 8})
	require.NoError(t, err)
	require.True(t, contiguous.HasFastIndex())

	scattered, err := NewIntegerCodeTable("scattered", []string{"A", "B", "C"}, []int64{5, 9, 1})
	require.NoError(t, err)
	require.False(t, scattered.HasFastIndex())

	tests := []struct {
		name      string
		table     *CodeTable
		value     any
		wantIndex int
		wantErr   bool
	}{
		{name: "fast first", table: contiguous, value: int64(5), wantIndex: 0},
		{name: "fast 7", table: contiguous, value: 7, wantIndex: 2},
		{name: "fast last", table: contiguous, value: int32(8), wantIndex: 3},
		{name: "fast below", table: contiguous, value: 4, wantErr: true},
		{name: "fast above", table: contiguous, value: 9, wantErr: true},
		{name: "scan 9", table: scattered, value: 9, wantIndex: 1},
		{name: "scan 1", table: scattered, value: uint8(1), wantIndex: 2},
		{name: "scan 99", table: scattered, value: 99, wantErr: true},
		{name: "nil", table: scattered, value: nil, wantErr: true},
		{name: "string", table: scattered, value: "9", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, err := tt.table.Index(tt.value)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNotFound)
				var notFound *NotFoundError
				require.ErrorAs(t, err, &notFound)
				require.Equal(t, tt.table.Ident(), notFound.Column)
				require.Equal(t, tt.value, notFound.Value)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantIndex, index)
		})
	}
}

func TestDecimalCodeTable_Index(t *testing.T) {
	table, err := NewDecimalCodeTable(
		"rate",
		[]string{"LOW", "HIGH"},
		[]decimal.Decimal{decimal.RequireFromString("0.5"), decimal.RequireFromString("1.25")},
	)
	require.NoError(t, err)

	index, err := table.Index(decimal.RequireFromString("1.250"))
	require.NoError(t, err)
	require.Equal(t, 1, index)

	index, err = table.Index(0.5)
	require.NoError(t, err)
	require.Equal(t, 0, index)

	_, err = table.Index(decimal.RequireFromString("2"))
	require.ErrorIs(t, err, ErrNotFound)
	require.True(t, IsConfigurationError(err))
}

func TestStringCodeTable_Index(t *testing.T) {
	table, err := NewStringCodeTable("status", []string{"OPEN", "CLOSED"}, []string{"O", "C"})
	require.NoError(t, err)

	index, err := table.Index("C")
	require.NoError(t, err)
	require.Equal(t, 1, index)
	require.Equal(t, "CLOSED", table.Label(index))

	_, err = table.Index("X")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBooleanCodeTable(t *testing.T) {
	_, err := NewBooleanCodeTable("flag", []string{"A", "B", "C"}, []bool{true, false, true})
	require.ErrorIs(t, err, ErrConfiguration)

	table, err := NewBooleanCodeTable("flag", []string{"ON", "OFF"}, []bool{true, false})
	require.NoError(t, err)

	tests := []struct {
		value     any
		wantIndex int
	}{
		{value: true, wantIndex: 0},
		{value: false, wantIndex: 1},
		{value: nil, wantIndex: 1},
		{value: "true", wantIndex: 1},
		{value: 1, wantIndex: 1},
	}
	for _, tt := range tests {
		index, err := table.Index(tt.value)
		require.NoError(t, err)
		require.Equal(t, tt.wantIndex, index, "value %#v", tt.value)
	}
}

func TestCodeTable_Config(t *testing.T) {
	_, err := NewIntegerCodeTable("t", []string{"A"}, []int64{1, 2})
	require.ErrorIs(t, err, ErrConfiguration)

	_, err = NewStringCodeTable("t", nil, nil)
	require.ErrorIs(t, err, ErrConfiguration)
}

type testLocalizer struct {
	title   string
	columns map[string][2]string
	codes   map[string][]string
	err     error
}

func (l *testLocalizer) ChartLabel(source string) (string, string, error) {
	return l.title, "help of " + source, l.err
}

func (l *testLocalizer) ColumnLabel(source, ident string) (string, string, error) {
	if l.err != nil {
		return "", "", l.err
	}
	texts, ok := l.columns[ident]
	if !ok {
		return ident, "", nil
	}
	return texts[0], texts[1], nil
}

func (l *testLocalizer) CodeNames(source, ident string, codeIdents []string) ([]string, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.codes[ident], nil
}

func TestCodeTable_Localize(t *testing.T) {
	table, err := NewIntegerCodeTable("month", []string{"JAN", "FEB"}, []int64{1, 2})
	require.NoError(t, err)
	require.Equal(t, "FEB", table.Label(1))

	loc := &testLocalizer{codes: map[string][]string{"month": {"January", "February"}}}
	require.NoError(t, table.Localize(loc, "source"))
	require.Equal(t, "February", table.Label(1))
	require.Equal(t, "", table.Label(2))

	loc.codes["month"] = []string{"January"}
	require.ErrorIs(t, table.Localize(loc, "source"), ErrConfiguration)
}
