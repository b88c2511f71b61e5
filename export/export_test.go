package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galite/vchart"
)

func newBuiltChart(t *testing.T) *vchart.Chart {
	t.Helper()
	dim, err := vchart.NewDimension("city", vchart.KindString)
	require.NoError(t, err)
	revenue, err := vchart.NewDecimalMeasure("revenue", 2, true)
	require.NoError(t, err)
	orders := vchart.NewIntegerMeasure("orders")
	orders.Label = "Orders"
	c, err := vchart.New("cities", dim, []*vchart.Measure{revenue, orders}, nil, vchart.Config{})
	require.NoError(t, err)
	c.Title = "Cities & Sales"
	require.NoError(t, c.AddRow([]any{"Zürich"}, []any{10.5, 3}))
	require.NoError(t, c.AddRow([]any{`Say "Hi"; <b>`}, []any{nil, 4}))
	_, err = c.Build()
	require.NoError(t, err)
	return c
}

func TestCSVWriter(t *testing.T) {
	tests := []struct {
		name   string
		writer *CSVWriter
		want   string
	}{
		{
			name:   "default",
			writer: NewCSVWriter(),
			want:   "city;revenue;Orders\r\nZürich;10.5;3\r\n\"Say \"\"Hi\"\"; <b>\";;4\r\n",
		},
		{
			name:   "options",
			writer: NewCSVWriter().WithHeaderRow(false).WithDelimiter(',').WithNewLine("\n").WithNilValue("-").WithQuoteAllFields(true),
			want:   "\"Zürich\",\"10.5\",\"3\"\n\"Say \"\"Hi\"\"; <b>\",-,\"4\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.writer.Write(context.Background(), &buf, newBuiltChart(t)))
			require.Equal(t, tt.want, buf.String())
		})
	}
}

func TestCSVWriter_Encoder(t *testing.T) {
	encoder, err := CharsetEncoder("ISO 8859-1")
	require.NoError(t, err)

	var buf bytes.Buffer
	writer := NewCSVWriter().WithHeaderRow(false).WithEncoder(encoder)
	require.NoError(t, writer.Write(context.Background(), &buf, newBuiltChart(t)))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("Z\xfcrich;")))

	_, err = CharsetEncoder("EBCDIC-42")
	require.Error(t, err)
}

func TestHTMLWriter(t *testing.T) {
	var buf bytes.Buffer
	writer := NewHTMLWriter().WithTableClass("chart").WithNilValue("n/a")
	require.NoError(t, writer.Write(context.Background(), &buf, newBuiltChart(t)))
	want := "<table class='chart'>\n" +
		"  <caption>Cities &amp; Sales</caption>\n" +
		"  <tr><th>city</th><th>revenue</th><th>Orders</th></tr>\n" +
		"  <tr><td>Zürich</td><td>10.5</td><td>3</td></tr>\n" +
		"  <tr><td>Say &#34;Hi&#34;; &lt;b&gt;</td><td>n/a</td><td>4</td></tr>\n" +
		"</table>"
	require.Equal(t, want, buf.String())
}
