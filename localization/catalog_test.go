package localization

import (
	"testing"

	"github.com/stretchr/testify/require"
	fs "github.com/ungerik/go-fs"

	"github.com/galite/vchart"
)

const testCatalog = `
booleans:
  trueLabel: Ja
  falseLabel: Nein
types:
  column: Säulen
messages:
  noChartRow: Keine Daten vorhanden
sources:
  org/galite/Sales:
    title: Umsatz
    help: Umsatz pro Monat
    columns:
      month: {label: Monat, help: Monat des Umsatzes}
      level: {label: Stufe}
    codes:
      level: {LOW: Niedrig, HIGH: Hoch}
`

func TestCatalog(t *testing.T) {
	c, err := Parse([]byte(testCatalog))
	require.NoError(t, err)

	title, help, err := c.ChartLabel("org/galite/Sales")
	require.NoError(t, err)
	require.Equal(t, "Umsatz", title)
	require.Equal(t, "Umsatz pro Monat", help)

	label, help, err := c.ColumnLabel("org/galite/Sales", "month")
	require.NoError(t, err)
	require.Equal(t, "Monat", label)
	require.Equal(t, "Monat des Umsatzes", help)

	names, err := c.CodeNames("org/galite/Sales", "level", []string{"HIGH", "LOW"})
	require.NoError(t, err)
	require.Equal(t, []string{"Hoch", "Niedrig"}, names)

	_, _, err = c.ChartLabel("unknown")
	require.ErrorIs(t, err, ErrMissingEntry)
	_, _, err = c.ColumnLabel("org/galite/Sales", "unknown")
	require.ErrorIs(t, err, ErrMissingEntry)
	_, err = c.CodeNames("org/galite/Sales", "level", []string{"MID"})
	require.ErrorIs(t, err, ErrMissingEntry)

	require.Equal(t, "Säulen", c.TypeName(vchart.TypeColumn))
	require.Equal(t, "pie", c.TypeName(vchart.TypePie))
	require.Equal(t, "Keine Daten vorhanden", c.ErrorMessage(vchart.ErrNoChartRow))
	require.Equal(t, "other", c.Message("other"))
}

func TestCatalog_LocalizeChart(t *testing.T) {
	c, err := Parse([]byte(testCatalog))
	require.NoError(t, err)

	dim, err := vchart.NewDimension("month", vchart.KindString)
	require.NoError(t, err)
	codes, err := vchart.NewIntegerCodeTable("level", []string{"LOW", "HIGH"}, []int64{1, 2})
	require.NoError(t, err)
	level, err := vchart.NewCodeMeasure("level", codes)
	require.NoError(t, err)
	chart, err := vchart.New("sales", dim, []*vchart.Measure{level}, nil, vchart.Config{})
	require.NoError(t, err)
	chart.Source = "org/galite/Sales"

	require.NoError(t, chart.Localize(c))
	require.Equal(t, "Umsatz", chart.Title)
	require.Equal(t, "Monat", dim.Title())
	require.Equal(t, "Hoch", codes.Label(1))
}

func TestCatalog_ApplyBooleanLabels(t *testing.T) {
	defer vchart.SetBooleanLabels(vchart.BooleanLabels{True: "Yes", False: "No"})

	c, err := Parse([]byte(testCatalog))
	require.NoError(t, err)
	c.ApplyBooleanLabels()
	require.Equal(t, "Ja", vchart.BooleanLabel(true))
	require.Equal(t, "Nein", vchart.BooleanLabel(false))
}

func TestLoad(t *testing.T) {
	file := fs.File(t.TempDir()).Join("catalog.yaml")
	require.NoError(t, file.WriteAllString(testCatalog))

	c, err := Load(file)
	require.NoError(t, err)
	require.Contains(t, c.Sources, "org/galite/Sales")

	_, err = Load(fs.File(t.TempDir()).Join("missing.yaml"))
	require.Error(t, err)

	bad := fs.File(t.TempDir()).Join("bad.yaml")
	require.NoError(t, bad.WriteAllString("sources: ["))
	_, err = Load(bad)
	require.Error(t, err)
}
