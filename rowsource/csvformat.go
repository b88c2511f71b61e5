package rowsource

import (
	"errors"
	"fmt"
)

// CSVFormat describes the encoding and structure of CSV data.
type CSVFormat struct {
	// Encoding is a character encoding name known to go-types/charset.
	Encoding string `json:"encoding"`
	// Separator is the single character field delimiter.
	Separator string `json:"separator"`
	// Newline is one of "\n", "\r\n" or "\n\r".
	// Empty means it is detected from the decoded data.
	Newline string `json:"newline,omitempty"`
}

// NewCSVFormat returns a UTF-8 CSVFormat with the passed separator
// and a newline detected from the data.
func NewCSVFormat(separator string) *CSVFormat {
	return &CSVFormat{
		Encoding:  "UTF-8",
		Separator: separator,
	}
}

// Validate can be called on a nil receiver.
func (f *CSVFormat) Validate() error {
	switch {
	case f == nil:
		return errors.New("<nil> CSVFormat")
	case f.Encoding == "":
		return errors.New("missing CSVFormat.Encoding")
	case f.Separator == "":
		return errors.New("missing CSVFormat.Separator")
	case len(f.Separator) > 1:
		return fmt.Errorf("invalid CSVFormat.Separator: %q", f.Separator)
	case f.Newline != "" && f.Newline != "\n" && f.Newline != "\n\r" && f.Newline != "\r\n":
		return fmt.Errorf("invalid CSVFormat.Newline: %q", f.Newline)
	}
	return nil
}

// FormatDetectionConfig configures ParseDetectFormat.
type FormatDetectionConfig struct {
	// Encodings are tested in priority order.
	Encodings []string `json:"encodings"`

	// EncodingTests are strings with characters that have
	// different byte representations across the Encodings.
	// The first encoding that decodes one of them is used.
	EncodingTests []string `json:"encodingTests"`
}

// NewDefaultFormatDetectionConfig returns a FormatDetectionConfig
// for European and Cyrillic CSV files.
func NewDefaultFormatDetectionConfig() *FormatDetectionConfig {
	return &FormatDetectionConfig{
		Encodings: []string{
			"UTF-8",
			"UTF-16LE",
			"ISO 8859-1",
			"Windows 1252", // like ANSI
			"Macintosh",
		},
		EncodingTests: []string{
			"ä", "Ä", "ö", "Ö", "ü", "Ü", "ß", "§", "€",
			"д", "Д", "ъ", "Ъ", "б", "Б", "л", "Л", "и", "И", "ж",
		},
	}
}
