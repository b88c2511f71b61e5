// Package chartdef reads chart declarations from YAML files
// and creates vchart.Chart values from them.
package chartdef

import (
	"fmt"

	"github.com/shopspring/decimal"
	fs "github.com/ungerik/go-fs"
	"gopkg.in/yaml.v3"

	"github.com/galite/vchart"
)

// Definition is the declaration of a chart.
type Definition struct {
	Ident  string `yaml:"ident"`
	Source string `yaml:"source"`
	Title  string `yaml:"title"`
	Help   string `yaml:"help"`

	// Type fixes the chart type by installing a CHARTTYPE trigger.
	Type string `yaml:"type"`
	// DefaultType is the initial type of charts without fixed Type.
	DefaultType string `yaml:"defaultType"`

	Dimension Column    `yaml:"dimension"`
	Measures  []Column  `yaml:"measures"`
	Commands  []Command `yaml:"commands"`

	Print *vchart.PrintOptions `yaml:"print"`
}

// Column declares a dimension or measure.
type Column struct {
	Ident      string `yaml:"ident"`
	Kind       string `yaml:"kind"`
	MaxScale   int32  `yaml:"maxScale"`
	ExactScale bool   `yaml:"exactScale"`

	// Format is a fmt.Sprintf format overriding the
	// conversion of a dimension kind.
	Format string `yaml:"format"`
	// Layout is a time layout overriding the
	// conversion of a dimension kind.
	Layout string `yaml:"layout"`

	// Color of a measure in #RRGGBB notation.
	Color string `yaml:"color"`

	CodeKind string `yaml:"codeKind"`
	Codes    []Code `yaml:"codes"`
}

// Code is one entry of a code table.
type Code struct {
	Ident string    `yaml:"ident"`
	Value yaml.Node `yaml:"value"`
}

type Command struct {
	Ident string `yaml:"ident"`
	Name  string `yaml:"name"`
}

// Parse parses a YAML chart definition.
func Parse(data []byte) (*Definition, error) {
	def := new(Definition)
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, fmt.Errorf("can't parse chart definition: %w", err)
	}
	if def.Ident == "" {
		return nil, fmt.Errorf("chart definition without ident")
	}
	return def, nil
}

// Load reads and parses a YAML chart definition file.
func Load(file fs.File) (*Definition, error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, err
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Name(), err)
	}
	return def, nil
}

// NewChart creates the declared chart.
// Commands get no action, callers attach them via Chart.Command.
func (def *Definition) NewChart(config vchart.Config) (*vchart.Chart, error) {
	dimension, err := def.Dimension.newDimension()
	if err != nil {
		return nil, err
	}
	measures := make([]*vchart.Measure, len(def.Measures))
	for i := range def.Measures {
		measures[i], err = def.Measures[i].newMeasure()
		if err != nil {
			return nil, err
		}
	}
	commands := make([]*vchart.Command, len(def.Commands))
	for i, cmd := range def.Commands {
		commands[i] = &vchart.Command{Ident: cmd.Ident, Name: cmd.Name}
	}

	if def.DefaultType != "" {
		config.DefaultType, err = vchart.ParseChartType(def.DefaultType)
		if err != nil {
			return nil, err
		}
	}
	if def.Print != nil {
		config.PrintOptions = def.Print
	}

	chart, err := vchart.New(def.Ident, dimension, measures, commands, config)
	if err != nil {
		return nil, err
	}
	chart.Source = def.Source
	chart.Help = def.Help
	if def.Title != "" {
		chart.Title = def.Title
	}

	if def.Type != "" {
		fixed, err := vchart.ParseChartType(def.Type)
		if err != nil {
			return nil, err
		}
		chart.Triggers.ChartType = func() (vchart.ChartType, error) { return fixed, nil }
	}
	return chart, nil
}

func (col *Column) newDimension() (*vchart.Dimension, error) {
	kind, err := vchart.ParseKind(col.Kind)
	if err != nil {
		return nil, fmt.Errorf("dimension %q: %w", col.Ident, err)
	}
	var dim *vchart.Dimension
	switch kind {
	case vchart.KindDecimal:
		dim, err = vchart.NewDecimalDimension(col.Ident, col.MaxScale, col.ExactScale)
	case vchart.KindCode:
		codes, e := col.newCodeTable()
		if e != nil {
			return nil, e
		}
		dim, err = vchart.NewCodeDimension(col.Ident, codes)
	default:
		dim, err = vchart.NewDimension(col.Ident, kind)
	}
	if err != nil {
		return nil, err
	}
	switch {
	case col.Format != "":
		dim.Format = vchart.PrintfFormatter(col.Format)
	case col.Layout != "":
		dim.Format = vchart.LayoutFormatter(col.Layout)
	}
	return dim, nil
}

func (col *Column) newMeasure() (*vchart.Measure, error) {
	kind, err := vchart.ParseKind(col.Kind)
	if err != nil {
		return nil, fmt.Errorf("measure %q: %w", col.Ident, err)
	}
	var measure *vchart.Measure
	switch kind {
	case vchart.KindInteger:
		measure = vchart.NewIntegerMeasure(col.Ident)
	case vchart.KindDecimal:
		measure, err = vchart.NewDecimalMeasure(col.Ident, col.MaxScale, col.ExactScale)
	case vchart.KindCode:
		codes, e := col.newCodeTable()
		if e != nil {
			return nil, e
		}
		measure, err = vchart.NewCodeMeasure(col.Ident, codes)
	default:
		return nil, &vchart.ConfigError{Ident: col.Ident, Message: "unsupported measure kind " + kind.String()}
	}
	if err != nil {
		return nil, err
	}
	if col.Color != "" {
		color, err := vchart.ParseColor(col.Color)
		if err != nil {
			return nil, fmt.Errorf("measure %q: %w", col.Ident, err)
		}
		measure.Color = &color
	}
	return measure, nil
}

func (col *Column) newCodeTable() (*vchart.CodeTable, error) {
	idents := make([]string, len(col.Codes))
	for i, code := range col.Codes {
		idents[i] = code.Ident
	}
	switch col.CodeKind {
	case "integer", "":
		codes := make([]int64, len(col.Codes))
		for i := range col.Codes {
			if err := col.Codes[i].Value.Decode(&codes[i]); err != nil {
				return nil, col.codeError(i, err)
			}
		}
		return vchart.NewIntegerCodeTable(col.Ident, idents, codes)

	case "decimal":
		codes := make([]decimal.Decimal, len(col.Codes))
		for i := range col.Codes {
			d, err := decimal.NewFromString(col.Codes[i].Value.Value)
			if err != nil {
				return nil, col.codeError(i, err)
			}
			codes[i] = d
		}
		return vchart.NewDecimalCodeTable(col.Ident, idents, codes)

	case "string":
		codes := make([]string, len(col.Codes))
		for i := range col.Codes {
			codes[i] = col.Codes[i].Value.Value
		}
		return vchart.NewStringCodeTable(col.Ident, idents, codes)

	case "boolean":
		codes := make([]bool, len(col.Codes))
		for i := range col.Codes {
			if err := col.Codes[i].Value.Decode(&codes[i]); err != nil {
				return nil, col.codeError(i, err)
			}
		}
		return vchart.NewBooleanCodeTable(col.Ident, idents, codes)
	}
	return nil, &vchart.ConfigError{Ident: col.Ident, Message: fmt.Sprintf("unsupported code kind %q", col.CodeKind)}
}

func (col *Column) codeError(index int, err error) error {
	return &vchart.ConfigError{
		Ident:   col.Ident,
		Message: fmt.Sprintf("invalid value of code %q: %s", col.Codes[index].Ident, err),
	}
}
