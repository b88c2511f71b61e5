package rowsource

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/galite/vchart"
)

func newCityChart(t *testing.T) *vchart.Chart {
	t.Helper()
	dim, err := vchart.NewDimension("city", vchart.KindString)
	require.NoError(t, err)
	revenue, err := vchart.NewDecimalMeasure("revenue", 2, false)
	require.NoError(t, err)
	chart, err := vchart.New("cities", dim, []*vchart.Measure{revenue, vchart.NewIntegerMeasure("orders")}, nil, vchart.Config{})
	require.NoError(t, err)
	return chart
}

func requireCityRows(t *testing.T, chart *vchart.Chart) {
	t.Helper()
	require.Equal(t, 2, chart.NumRows())
	status, err := chart.Build()
	require.NoError(t, err)
	require.Equal(t, vchart.BuildOK, status)

	series := chart.Series()
	require.Equal(t, "Berlin", series[0].Dimension.Label)
	require.Equal(t, "10.5", series[0].Measures[0].Value.Decimal.String())
	require.Equal(t, int64(3), series[0].Measures[1].Value.Decimal.IntPart())
	require.Equal(t, "Vienna", series[1].Dimension.Label)
	require.False(t, series[1].Measures[1].Value.Valid)
}

func TestLoadStrings(t *testing.T) {
	chart := newCityChart(t)
	numRows, err := LoadStrings(chart, [][]string{
		{"city", "revenue", "orders"},
		{"Berlin", "10.5", "3"},
		{"", " ", ""},
		{"Vienna", "7"},
	}, true, nil)
	require.NoError(t, err)
	require.Equal(t, 2, numRows)
	requireCityRows(t, chart)
}

func TestLoadStrings_Errors(t *testing.T) {
	chart := newCityChart(t)
	numRows, err := LoadStrings(chart, [][]string{
		{"Berlin", "10.5", "3"},
		{"Vienna", "7", "many"},
	}, false, nil)
	require.ErrorContains(t, err, `column "orders"`)
	require.Equal(t, 1, numRows)

	chart = newCityChart(t)
	numRows, err = LoadStrings(chart, nil, true, nil)
	require.NoError(t, err)
	require.Zero(t, numRows)
	status, err := chart.Build()
	require.NoError(t, err)
	require.Equal(t, vchart.BuildNoData, status)
}

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name   string
		csv    string
		format *CSVFormat
		want   *CSVFormat
	}{
		{
			name: "detect semicolon with BOM",
			csv:  "\ufeffcity;revenue;orders\nBerlin;10,5;3\nVienna;7;\n",
			want: &CSVFormat{Encoding: "UTF-8", Separator: ";", Newline: "\n"},
		},
		{
			name: "detect sep header line",
			csv:  "sep=;\r\ncity;revenue;orders\r\nBerlin;10,5;3\r\nVienna;7;\r\n",
			want: &CSVFormat{Encoding: "UTF-8", Separator: ";", Newline: "\r\n"},
		},
		{
			name:   "explicit separator",
			csv:    "\ufeffcity;revenue;orders\nBerlin;10,5;3\nVienna;7;\n",
			format: NewCSVFormat(";"),
			want:   NewCSVFormat(";"),
		},
		{
			name:   "explicit tab with quoted fields",
			csv:    "city\trevenue\torders\r\n\"Berlin\"\t\"10,5\"\t3\r\nVienna\t7\t\r\n",
			format: &CSVFormat{Encoding: "UTF-8", Separator: "\t", Newline: "\r\n"},
			want:   &CSVFormat{Encoding: "UTF-8", Separator: "\t", Newline: "\r\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chart := newCityChart(t)
			numRows, used, err := ReadCSV(strings.NewReader(tt.csv), chart, tt.format, true, nil)
			require.NoError(t, err)
			require.Equal(t, 2, numRows)
			require.Equal(t, tt.want, used)
			requireCityRows(t, chart)
		})
	}
}

func TestReadCSV_Encoding(t *testing.T) {
	// "Zürich" in ISO 8859-1
	latin1 := "city,revenue,orders\nZ\xfcrich,1,2\n"
	for _, format := range []*CSVFormat{{Encoding: "ISO 8859-1", Separator: ","}, nil} {
		t.Run(fmt.Sprint(format), func(t *testing.T) {
			chart := newCityChart(t)
			_, used, err := ReadCSV(strings.NewReader(latin1), chart, format, true, nil)
			require.NoError(t, err)
			require.Equal(t, "ISO 8859-1", used.Encoding)
			require.Equal(t, "Zürich", chart.Row(0).Dimension(0))
		})
	}

	_, _, err := ReadCSV(strings.NewReader(latin1), newCityChart(t), &CSVFormat{Encoding: "EBCDIC-42", Separator: ","}, true, nil)
	require.Error(t, err)
	_, _, err = ReadCSV(strings.NewReader(latin1), newCityChart(t), &CSVFormat{Encoding: "UTF-8", Separator: ";;"}, true, nil)
	require.Error(t, err)
}

func TestReadExcel(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"city", "revenue", "orders"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Berlin", "10.5", "3"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"Vienna", "7"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	chart := newCityChart(t)
	numRows, err := ReadExcel(buf, "", chart, true, false, nil)
	require.NoError(t, err)
	require.Equal(t, 2, numRows)
	requireCityRows(t, chart)

	_, err = ReadExcel(strings.NewReader("not a zip file"), "", newCityChart(t), true, false, nil)
	require.Error(t, err)
}

func TestReadExcel_MissingSheet(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = ReadExcel(buf, "Missing", newCityChart(t), true, false, nil)
	require.ErrorAs(t, err, &ErrSheetNotExist{})
}
