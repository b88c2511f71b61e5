package vchart

import (
	"fmt"
	"strings"
)

// ChartType is the kind of diagram a chart is displayed as.
// The zero value is no valid type.
type ChartType int

const (
	TypeBar ChartType = iota + 1
	TypeColumn
	TypeLine
	TypeArea
	TypePie
)

// DefaultType is used when neither the configuration
// nor a CHARTTYPE trigger selects a type.
const DefaultType = TypeColumn

var chartTypeNames = [...]string{
	TypeBar:    "bar",
	TypeColumn: "column",
	TypeLine:   "line",
	TypeArea:   "area",
	TypePie:    "pie",
}

// ChartTypes returns all chart types.
func ChartTypes() []ChartType {
	return []ChartType{TypeBar, TypeColumn, TypeLine, TypeArea, TypePie}
}

func (t ChartType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("ChartType(%d)", int(t))
	}
	return chartTypeNames[t]
}

func (t ChartType) Valid() bool {
	return t >= TypeBar && t <= TypePie
}

// ParseChartType parses the case insensitive name of a ChartType.
func ParseChartType(name string) (ChartType, error) {
	for _, t := range ChartTypes() {
		if strings.EqualFold(chartTypeNames[t], name) {
			return t, nil
		}
	}
	return 0, newConfigError("", "unknown chart type %q", name)
}

// TypeView is the renderable representation of the data series
// of a chart for one ChartType. It is created by a ChartTypeFactory
// and handed to the Display.
type TypeView interface {
	Type() ChartType
}

// ChartTypeFactory creates the TypeView for a chart type.
type ChartTypeFactory interface {
	CreateTypeView(title string, chartType ChartType, series []DataSeries, options PrintOptions) (TypeView, error)
}

// ChartTypeFactoryFunc implements ChartTypeFactory for a function.
type ChartTypeFactoryFunc func(title string, chartType ChartType, series []DataSeries, options PrintOptions) (TypeView, error)

func (f ChartTypeFactoryFunc) CreateTypeView(title string, chartType ChartType, series []DataSeries, options PrintOptions) (TypeView, error) {
	return f(title, chartType, series, options)
}
