// Package localization provides a YAML message catalog
// implementing vchart.Localizer.
//
// A catalog file looks like:
//
//	booleans:
//	  trueLabel: Ja
//	  falseLabel: Nein
//	types:
//	  column: Säulen
//	messages:
//	  noChartRow: Keine Daten vorhanden
//	sources:
//	  org/galite/Sales:
//	    title: Umsatz
//	    help: Umsatz pro Monat
//	    columns:
//	      month: {label: Monat, help: Monat des Umsatzes}
//	    codes:
//	      level: {LOW: Niedrig, HIGH: Hoch}
package localization

import (
	"errors"
	"fmt"

	fs "github.com/ungerik/go-fs"
	"gopkg.in/yaml.v3"

	"github.com/galite/vchart"
)

// ErrMissingEntry is wrapped by errors for
// texts that are not part of the catalog.
var ErrMissingEntry = errors.New("missing localization entry")

// MessageNoChartRow is the message key of vchart.ErrNoChartRow.
const MessageNoChartRow = "noChartRow"

// Ensure that Catalog implements vchart.Localizer
var _ vchart.Localizer = new(Catalog)

// Catalog holds the localized texts of charts.
type Catalog struct {
	Booleans Booleans           `yaml:"booleans"`
	Types    map[string]string  `yaml:"types"`
	Messages map[string]string  `yaml:"messages"`
	Sources  map[string]*Source `yaml:"sources"`
}

type Booleans struct {
	True  string `yaml:"trueLabel"`
	False string `yaml:"falseLabel"`
}

// Source holds the texts of one chart.
type Source struct {
	Title   string                       `yaml:"title"`
	Help    string                       `yaml:"help"`
	Columns map[string]Text              `yaml:"columns"`
	Codes   map[string]map[string]string `yaml:"codes"`
}

// Text is the label and help of a column.
type Text struct {
	Label string `yaml:"label"`
	Help  string `yaml:"help"`
}

// Parse parses a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	c := new(Catalog)
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("can't parse localization catalog: %w", err)
	}
	return c, nil
}

// Load reads and parses a YAML catalog file.
func Load(file fs.File) (*Catalog, error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Name(), err)
	}
	return c, nil
}

func (c *Catalog) source(source string) (*Source, error) {
	s, ok := c.Sources[source]
	if !ok || s == nil {
		return nil, fmt.Errorf("%w: source %q", ErrMissingEntry, source)
	}
	return s, nil
}

func (c *Catalog) ChartLabel(source string) (title, help string, err error) {
	s, err := c.source(source)
	if err != nil {
		return "", "", err
	}
	return s.Title, s.Help, nil
}

func (c *Catalog) ColumnLabel(source, ident string) (label, help string, err error) {
	s, err := c.source(source)
	if err != nil {
		return "", "", err
	}
	text, ok := s.Columns[ident]
	if !ok {
		return "", "", fmt.Errorf("%w: column %q in source %q", ErrMissingEntry, ident, source)
	}
	return text.Label, text.Help, nil
}

func (c *Catalog) CodeNames(source, ident string, codeIdents []string) ([]string, error) {
	s, err := c.source(source)
	if err != nil {
		return nil, err
	}
	codes, ok := s.Codes[ident]
	if !ok {
		return nil, fmt.Errorf("%w: codes %q in source %q", ErrMissingEntry, ident, source)
	}
	names := make([]string, len(codeIdents))
	for i, codeIdent := range codeIdents {
		name, ok := codes[codeIdent]
		if !ok {
			return nil, fmt.Errorf("%w: code %q of %q in source %q", ErrMissingEntry, codeIdent, ident, source)
		}
		names[i] = name
	}
	return names, nil
}

// Message returns the message for key or the key itself.
func (c *Catalog) Message(key string) string {
	if msg, ok := c.Messages[key]; ok {
		return msg
	}
	return key
}

// ErrorMessage returns the user visible message for err.
// ErrNoChartRow is translated with MessageNoChartRow,
// all other errors are returned as err.Error().
func (c *Catalog) ErrorMessage(err error) string {
	if errors.Is(err, vchart.ErrNoChartRow) {
		if msg, ok := c.Messages[MessageNoChartRow]; ok {
			return msg
		}
	}
	return err.Error()
}

// TypeName returns the localized name of a chart type
// or its String result.
func (c *Catalog) TypeName(chartType vchart.ChartType) string {
	if name, ok := c.Types[chartType.String()]; ok {
		return name
	}
	return chartType.String()
}

// ApplyBooleanLabels sets the catalog's boolean
// labels for all charts if both are present.
func (c *Catalog) ApplyBooleanLabels() {
	if c.Booleans.True == "" || c.Booleans.False == "" {
		return
	}
	vchart.SetBooleanLabels(vchart.BooleanLabels{
		True:  c.Booleans.True,
		False: c.Booleans.False,
	})
}
