package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	fs "github.com/ungerik/go-fs"

	"github.com/galite/vchart"
	"github.com/galite/vchart/render"
)

const testDefinition = `
ident: cities
source: org/galite/Cities
title: Revenue per city
dimension: {ident: city, kind: string}
measures:
  - {ident: revenue, kind: decimal, maxScale: 2}
`

const testCatalog = `
types:
  pie: Torte
messages:
  noChartRow: Keine Daten
sources:
  org/galite/Cities:
    title: Umsatz pro Stadt
    columns:
      city: {label: Stadt}
      revenue: {label: Umsatz}
`

func setupFiles(t *testing.T, data string) {
	t.Helper()
	dir := fs.File(t.TempDir())
	def := dir.Join("cities.yaml")
	require.NoError(t, def.WriteAllString(testDefinition))
	csv := dir.Join("cities.csv")
	require.NoError(t, csv.WriteAllString(data))
	cat := dir.Join("de.yaml")
	require.NoError(t, cat.WriteAllString(testCatalog))

	defPath, dataPath, catalogPath = string(def), string(csv), string(cat)
	chartType, sheet, comma, encoding, noHeader = "", "", "", "", false
	t.Cleanup(func() { defPath, dataPath, catalogPath, chartType = "", "", "", "" })
}

func TestBuildChart(t *testing.T) {
	setupFiles(t, "city,revenue\nBerlin,10.5\nVienna,7\n")
	chartType = "pie"

	chart, catalog, err := buildChart(vchart.Config{TypeFactory: render.Factory{}})
	require.NoError(t, err)
	require.Equal(t, "Umsatz pro Stadt", chart.Title)
	require.Equal(t, 2, chart.NumRows())
	selected, ok := chart.Type()
	require.True(t, ok)
	require.Equal(t, vchart.TypePie, selected)
	require.False(t, chart.FixedType(), "selected type must stay changeable")
	require.NoError(t, chart.SetType(vchart.TypeLine, false))
	selected, _ = chart.Type()
	require.Equal(t, vchart.TypeLine, selected)
	require.Equal(t, "Torte", catalog.TypeName(vchart.TypePie))
	require.Equal(t, "Umsatz", chart.Series()[0].Measures[0].Label)
}

func TestBuildChart_CSVFormat(t *testing.T) {
	tests := []struct {
		name          string
		data          string
		comma         string
		encoding      string
		wantDelimiter string
	}{
		{name: "detected comma", data: "city,revenue\nBerlin,10.5\n", wantDelimiter: ","},
		{name: "detected semicolon", data: "city;revenue\r\nBerlin;10,5\r\n", wantDelimiter: ";"},
		{name: "explicit semicolon", data: "city;revenue\nBerlin;10,5\n", comma: ";", wantDelimiter: ";"},
		{name: "explicit encoding", data: "city,revenue\nBerlin,10.5\n", encoding: "ISO 8859-1", wantDelimiter: ","},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupFiles(t, tt.data)
			comma, encoding = tt.comma, tt.encoding
			t.Cleanup(func() { comma, encoding, format = "", "", "json" })

			chart, catalog, err := buildChart(vchart.Config{})
			require.NoError(t, err)
			require.Equal(t, "10.5", chart.Series()[0].Measures[0].Value.Decimal.String())

			format = "csv"
			data, err := encodeSeries(context.Background(), chart, catalog)
			require.NoError(t, err)
			require.Equal(t, "Stadt"+tt.wantDelimiter+"Umsatz\r\nBerlin"+tt.wantDelimiter+"10.5\r\n", string(data))
		})
	}

	setupFiles(t, "city,revenue\nBerlin,10.5\n")
	comma = ";;"
	t.Cleanup(func() { comma = "" })
	_, _, err := buildChart(vchart.Config{})
	require.Error(t, err)
}

func TestBuildChart_FixedType(t *testing.T) {
	setupFiles(t, "city,revenue\nBerlin,10.5\n")
	require.NoError(t, fs.File(defPath).WriteAllString(testDefinition+"type: pie\n"))
	chartType = "line"

	chart, _, err := buildChart(vchart.Config{})
	require.NoError(t, err)
	require.True(t, chart.FixedType())
	selected, _ := chart.Type()
	require.Equal(t, vchart.TypePie, selected)
}

func TestBuildChart_NoData(t *testing.T) {
	setupFiles(t, "city,revenue\n")

	_, _, err := buildChart(vchart.Config{})
	require.EqualError(t, err, "Keine Daten")
}

func TestBuildChart_UnsupportedData(t *testing.T) {
	setupFiles(t, "")
	dataPath = string(fs.File(t.TempDir()).Join("cities.json"))
	require.NoError(t, fs.File(dataPath).WriteAllString("{}"))

	_, _, err := buildChart(vchart.Config{})
	require.ErrorContains(t, err, "unsupported data file type")
}

func TestEncodeSeries(t *testing.T) {
	setupFiles(t, "city,revenue\nBerlin,10.5\n")
	chart, catalog, err := buildChart(vchart.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { format = "json" })

	tests := []struct {
		format string
		want   string
	}{
		{format: "json", want: `{"ident":"cities","title":"Umsatz pro Stadt","type":"column","series":[{"dimension":{"label":"Berlin"},"measures":[{"label":"Umsatz","value":"10.5"}]}]}` + "\n"},
		{format: "csv", want: "Stadt,Umsatz\r\nBerlin,10.5\r\n"},
		{format: "html", want: "<table>\n  <caption>Umsatz pro Stadt</caption>\n  <tr><th>Stadt</th><th>Umsatz</th></tr>\n  <tr><td>Berlin</td><td>10.5</td></tr>\n</table>\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			format = tt.format
			data, err := encodeSeries(context.Background(), chart, catalog)
			require.NoError(t, err)
			require.Equal(t, tt.want, string(data))
		})
	}

	format = "pdf"
	_, err = encodeSeries(context.Background(), chart, catalog)
	require.Error(t, err)
}
