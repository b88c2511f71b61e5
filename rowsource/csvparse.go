package rowsource

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/domonda/go-types/charset"
)

// ParseDetectFormat parses CSV data after detecting its encoding,
// line endings and separator.
// A "sep=X" first line declares the separator and is removed,
// else the most frequent of comma, semicolon and tab is used.
// Quoted fields may contain separators, escaped quotes and newlines.
// A nil config uses NewDefaultFormatDetectionConfig.
//
//	rows, format, err := ParseDetectFormat([]byte("city;revenue\r\nBerlin;10"), nil)
//	// format.Separator == ";", format.Newline == "\r\n"
//	// rows == [][]string{{"city", "revenue"}, {"Berlin", "10"}}
func ParseDetectFormat(csv []byte, config *FormatDetectionConfig) (rows [][]string, format *CSVFormat, err error) {
	if config == nil {
		config = NewDefaultFormatDetectionConfig()
	}

	format, lines, err := detectFormatAndSplitLines(csv, config)
	if err != nil {
		return nil, format, err
	}

	rows, err = readLines(lines, []byte(format.Separator), "\n")
	return rows, format, err
}

// ParseWithFormat parses CSV data in a known format.
// A UTF-8 BOM is trimmed, other encodings are decoded to UTF-8.
// A "sep=X" first line is removed if it declares format.Separator,
// a different separator is an error.
func ParseWithFormat(csv []byte, format *CSVFormat) (rows [][]string, err error) {
	err = format.Validate()
	if err != nil {
		return nil, err
	}

	if format.Encoding == "UTF-8" {
		csv = charset.TrimBOM(csv, charset.BOMUTF8)
	} else {
		enc, err := charset.GetEncoding(format.Encoding)
		if err != nil {
			return nil, err
		}
		csv, err = enc.Decode(csv)
		if err != nil {
			return nil, err
		}
	}

	csv = sanitizeUTF8(csv)

	newline := format.Newline
	if newline == "" {
		newline = detectNewline(csv)
	}
	lines := bytes.Split(csv, []byte(newline))
	if len(lines) > 0 {
		if headerSep := parseSepHeaderLine(lines[0]); headerSep != "" {
			if headerSep != format.Separator {
				return nil, fmt.Errorf("separator '%s' in header line is different from CSVFormat.Separator '%s'", headerSep, format.Separator)
			}
			lines = lines[1:]
		}
	}

	return readLines(lines, []byte(format.Separator), "\n")
}

func detectFormatAndSplitLines(csv []byte, config *FormatDetectionConfig) (format *CSVFormat, lines [][]byte, err error) {
	if config == nil {
		return nil, nil, errors.New("FormatDetectionConfig must not be nil")
	}

	format = new(CSVFormat)

	var encodings []charset.Encoding
	for _, name := range config.Encodings {
		enc, err := charset.GetEncoding(name)
		if err != nil {
			return nil, nil, err
		}
		encodings = append(encodings, enc)
	}

	csv, format.Encoding, err = charset.AutoDecode(csv, encodings, config.EncodingTests)
	if err != nil {
		return nil, nil, err
	}
	if format.Encoding == "" {
		format.Encoding = "UTF-8"
	}

	csv = sanitizeUTF8(csv)

	format.Newline = detectNewline(csv)
	lines = bytes.Split(csv, []byte(format.Newline))

	if len(lines) > 0 {
		format.Separator = parseSepHeaderLine(lines[0])
		if format.Separator != "" {
			return format, lines[1:], nil
		}
	}

	var (
		commas, semicolons, tabs int
		numNonEmptyLines         int
	)
	for i := range lines {
		// Remove double newlines
		lines[i] = bytes.Trim(lines[i], "\r\n")
		line := lines[i]
		if len(line) == 0 {
			continue
		}
		numNonEmptyLines++
		commas += bytes.Count(line, []byte{','})
		semicolons += bytes.Count(line, []byte{';'})
		tabs += bytes.Count(line, []byte{'\t'})
	}

	switch {
	case numNonEmptyLines == 0:
		format.Separator = ","
		return format, nil, nil
	case semicolons > commas && semicolons > tabs:
		format.Separator = ";"
	case tabs > commas && tabs > semicolons:
		format.Separator = "\t"
	default:
		format.Separator = ","
	}
	return format, lines, nil
}

// detectNewline prefers the standard "\r\n" if present.
func detectNewline(csv []byte) string {
	if bytes.Contains(csv, []byte{'\r', '\n'}) {
		return "\r\n"
	}
	return "\n"
}

func parseSepHeaderLine(line []byte) (sep string) {
	if len(line) < 5 {
		return ""
	}
	if line[0] == '"' && line[len(line)-1] == '"' {
		line = line[1 : len(line)-1]
	}
	if len(line) != 5 {
		return ""
	}
	if !bytes.HasPrefix(line, []byte("sep=")) && !bytes.HasPrefix(line, []byte("SEP=")) {
		return ""
	}
	return string(line[4:5])
}

// readLines splits lines into fields and unquotes them.
// Quoted fields split by a separator are joined again,
// a last field opening a quote is continued on the following lines
// joined with newlineReplacement.
// Lines consumed that way and empty lines result in nil rows.
func readLines(lines [][]byte, separator []byte, newlineReplacement string) (rows [][]string, err error) {
	rows = make([][]string, len(lines))
	for lineIndex, line := range lines {
		if len(line) == 0 {
			continue
		}

		fields := bytes.Split(line, separator)
		for i := 0; i < len(fields); i++ {
			field := fields[i]
			if len(field) < 2 {
				continue
			}

			leftQuotes, rightQuotes := countQuotesLeftRight(field)
			switch {
			case leftQuotes == 0 && rightQuotes == 0:
				// Unquoted

			case leftQuotes == 1 && rightQuotes == 1,
				leftQuotes == 3 && rightQuotes == 1,
				leftQuotes == 1 && rightQuotes == 3,
				leftQuotes == 3 && rightQuotes == 3,
				leftQuotes == 2 && rightQuotes == 2:
				field = field[1 : len(field)-1]

			case leftQuotes == 0 && rightQuotes >= 1:
				// Quotes inside of the field

			case leftQuotes >= 1 && rightQuotes == 0:
				if leftQuotes == 2 {
					// Escaped quote at the beginning, unescaped below
					break
				}

				joinLineIndex := -1
				if i == len(fields)-1 {
					// Search the line whose first field closes the quote
					for joinLineIndex = lineIndex + 1; joinLineIndex < len(lines); joinLineIndex++ {
						joinLineFields := bytes.Split(lines[joinLineIndex], separator)
						if len(joinLineFields) > 0 && bytes.HasSuffix(joinLineFields[0], []byte{'"'}) {
							break
						}
					}
				}

				if joinLineIndex > lineIndex && joinLineIndex < len(lines) {
					joinLineFields := bytes.Split(lines[joinLineIndex], separator)
					field = bytes.Clone(field)
					for index := lineIndex + 1; index < joinLineIndex; index++ {
						field = append(field, newlineReplacement...)
						field = append(field, lines[index]...)
					}
					field = append(field, newlineReplacement...)
					field = append(field, joinLineFields[0]...)
					if field[0] != '"' || field[len(field)-1] != '"' {
						return nil, fmt.Errorf("unbalanced quotes in multi-line CSV field starting in line %d", lineIndex)
					}
					field = field[1 : len(field)-1]
					fields = append(fields, joinLineFields[1:]...)
					// Keep line indices of the joined lines
					for j := lineIndex + 1; j <= joinLineIndex; j++ {
						lines[j] = nil
					}
					break
				}

				// A separator inside of a quoted field,
				// join with the following field that closes the quote
				for r := i + 1; r < len(fields); r++ {
					rField := fields[r]
					if len(rField) < 2 {
						continue
					}
					rLeftQuotes, rRightQuotes := countQuotesLeftRight(rField)
					var (
						rLeftOK  = rLeftQuotes == 0 || rLeftQuotes == 2
						rRightOK = (leftQuotes == 1 || leftQuotes == 3) && (rRightQuotes == 1 || rRightQuotes == 3)
					)
					if rLeftOK && rRightOK {
						field = bytes.Join(fields[i:r+1], separator)
						field = field[1 : len(field)-1]
						copy(fields[i+1:], fields[r+1:])
						fields = fields[:len(fields)-(r-i)]
						break
					}
				}

			default:
				return nil, fmt.Errorf("can't handle CSV field `%s` in line `%s`", field, line)
			}

			fields[i] = bytes.ReplaceAll(field, []byte(`""`), []byte{'"'})
		}

		row := make([]string, len(fields))
		for i := range fields {
			row[i] = string(fields[i])
		}
		rows[lineIndex] = row
	}

	return rows, nil
}

func countQuotesLeft(str []byte) int {
	for i, c := range str {
		if c != '"' {
			return i
		}
	}
	return len(str)
}

func countQuotesRight(str []byte) int {
	for i := len(str) - 1; i >= 0; i-- {
		if str[i] != '"' {
			return len(str) - 1 - i
		}
	}
	return len(str)
}

func countQuotesLeftRight(str []byte) (left, right int) {
	left = countQuotesLeft(str)
	right = countQuotesRight(str)
	if left == len(str) {
		left = (len(str) + 1) / 2
		right = len(str) - left
	}
	return left, right
}

// sanitizeUTF8 replaces the replacement character
// and no-break spaces with spaces.
func sanitizeUTF8(str []byte) []byte {
	return bytes.Map(
		func(r rune) rune {
			switch r {
			case '\uFFFD', '\u00a0':
				return ' '
			default:
				return r
			}
		},
		str,
	)
}
