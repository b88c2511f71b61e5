package export

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/domonda/go-types/charset"

	"github.com/galite/vchart"
)

// Encoder is an interface to encode byte strings.
type Encoder interface {
	Bytes([]byte) ([]byte, error)
}

// EncoderFunc implements the Encoder interface for a function.
type EncoderFunc func([]byte) ([]byte, error)

func (f EncoderFunc) Bytes(data []byte) ([]byte, error) {
	return f(data)
}

// CharsetEncoder returns an Encoder for a character
// encoding name known to go-types/charset.
func CharsetEncoder(name string) (Encoder, error) {
	enc, err := charset.GetEncoding(name)
	if err != nil {
		return nil, err
	}
	return EncoderFunc(enc.Encode), nil
}

// CSVWriter writes the data series of a chart as CSV.
//
// CSVWriter is immutable, all With methods return a modified copy.
type CSVWriter struct {
	headerRow      bool
	quoteAllFields bool
	escapeQuotes   string
	nilValue       string
	delimiter      rune
	newLine        string
	encoder        Encoder
}

func NewCSVWriter() *CSVWriter {
	return &CSVWriter{
		headerRow:    true,
		escapeQuotes: `""`,
		delimiter:    ';',
		newLine:      "\r\n",
	}
}

func (w *CSVWriter) clone() *CSVWriter {
	c := new(CSVWriter)
	*c = *w
	return c
}

// Write writes the series of the built chart c to dest.
func (w *CSVWriter) Write(ctx context.Context, dest io.Writer, c *vchart.Chart) error {
	header, rows := seriesTable(c)
	rowBuf := bytes.NewBuffer(make([]byte, 0, 1024))
	if w.headerRow {
		cells := make([]*string, len(header))
		for i := range header {
			cells[i] = &header[i]
		}
		if err := w.writeRow(rowBuf, dest, cells); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := w.writeRow(rowBuf, dest, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *CSVWriter) writeRow(rowBuf *bytes.Buffer, dest io.Writer, cells []*string) error {
	rowBuf.Reset()
	for col, cell := range cells {
		if col > 0 {
			rowBuf.WriteRune(w.delimiter)
		}
		if cell == nil {
			rowBuf.WriteString(w.nilValue)
			continue
		}
		rowBuf.WriteString(w.escapeString(*cell))
	}
	rowBuf.WriteString(w.newLine)

	row := rowBuf.Bytes()
	if w.encoder != nil {
		encoded, err := w.encoder.Bytes(row)
		if err != nil {
			return err
		}
		row = encoded
	}
	_, err := dest.Write(row)
	return err
}

func (w *CSVWriter) escapeString(str string) string {
	// \n alone is valid within quotes
	str = strings.ReplaceAll(str, "\r", "")
	if w.quoteAllFields || strings.ContainsRune(str, w.delimiter) || strings.ContainsAny(str, "\n\"") {
		return `"` + strings.ReplaceAll(str, `"`, w.escapeQuotes) + `"`
	}
	return str
}

func (w *CSVWriter) WithHeaderRow(headerRow bool) *CSVWriter {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

func (w *CSVWriter) WithQuoteAllFields(quoteAllFields bool) *CSVWriter {
	mod := w.clone()
	mod.quoteAllFields = quoteAllFields
	return mod
}

// WithNilValue sets the string written for null measure values.
func (w *CSVWriter) WithNilValue(nilValue string) *CSVWriter {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

func (w *CSVWriter) WithDelimiter(delimiter rune) *CSVWriter {
	mod := w.clone()
	mod.delimiter = delimiter
	return mod
}

func (w *CSVWriter) WithNewLine(newLine string) *CSVWriter {
	mod := w.clone()
	mod.newLine = newLine
	return mod
}

// WithEncoder sets an Encoder applied to every written row.
func (w *CSVWriter) WithEncoder(encoder Encoder) *CSVWriter {
	mod := w.clone()
	mod.encoder = encoder
	return mod
}

func (w *CSVWriter) Delimiter() rune { return w.delimiter }
func (w *CSVWriter) NewLine() string { return w.newLine }
