package rowsource

import (
	"fmt"
	"io"

	"github.com/galite/vchart"
)

// ReadCSV reads CSV data and loads it with LoadStrings.
// A nil format detects encoding, separator and newline
// with ParseDetectFormat, else ParseWithFormat is used.
// The used format is returned.
func ReadCSV(r io.Reader, chart *vchart.Chart, format *CSVFormat, header bool, parser *StringParser) (numRows int, used *CSVFormat, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, nil, err
	}
	var table [][]string
	if format == nil {
		table, format, err = ParseDetectFormat(data, nil)
	} else {
		table, err = ParseWithFormat(data, format)
	}
	if err != nil {
		return 0, format, fmt.Errorf("can't read CSV: %w", err)
	}
	numRows, err = LoadStrings(chart, table, header, parser)
	return numRows, format, err
}
