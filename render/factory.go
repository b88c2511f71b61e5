package render

import (
	"fmt"
	"log/slog"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/galite/vchart"
)

var _ vchart.ChartTypeFactory = Factory{}

// Factory creates go-chart views for all chart types.
//
// Bar and column charts with a single measure are drawn as bar chart,
// with several measures as stacked bar chart with one bar per dimension value.
// Line and area charts draw one line per measure over the dimension labels.
// Pie charts only show the first measure.
// Null measure values are drawn as zero bars and left out of lines and pies.
type Factory struct {
	Logger *slog.Logger
}

// CreateTypeView implements vchart.ChartTypeFactory.
func (f Factory) CreateTypeView(title string, chartType vchart.ChartType, series []vchart.DataSeries, options vchart.PrintOptions) (vchart.TypeView, error) {
	options = options.WithDefaults()
	view := &View{chartType: chartType, title: title}
	switch chartType {
	case vchart.TypeBar, vchart.TypeColumn:
		if numMeasures(series) > 1 {
			view.renderable = stackedBarChart(title, series, options)
		} else {
			view.renderable = barChart(title, series, options)
		}
	case vchart.TypeLine, vchart.TypeArea:
		view.renderable = lineChart(title, series, options, chartType == vchart.TypeArea)
	case vchart.TypePie:
		pie := pieChart(title, series, options)
		if pie == nil {
			f.logger().Debug("No pie values", slog.String("title", title))
			break
		}
		view.renderable = pie
	default:
		return nil, fmt.Errorf("%w: unsupported chart type %s", vchart.ErrConfiguration, chartType)
	}
	return view, nil
}

func (f Factory) logger() *slog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return slog.Default().With(slog.String("module", "render"))
}

func numMeasures(series []vchart.DataSeries) int {
	if len(series) == 0 {
		return 0
	}
	return len(series[0].Measures)
}

func barChart(title string, series []vchart.DataSeries, options vchart.PrintOptions) *chart.BarChart {
	bars := make([]chart.Value, len(series))
	lo, hi := 0.0, 0.0
	for i, s := range series {
		bars[i].Label = s.Dimension.Label
		if len(s.Measures) == 0 {
			continue
		}
		bars[i].Value, _ = s.Measures[0].Float64()
		lo = min(lo, bars[i].Value)
		hi = max(hi, bars[i].Value)
		color := seriesColor(s.Measures[0], 0)
		bars[i].Style = chart.Style{FillColor: color, StrokeColor: color}
	}
	// Bars start at zero, equal values still need a non-empty range
	if hi == lo {
		hi = lo + 1
	}
	return &chart.BarChart{
		Title:  title,
		Width:  options.ImageWidth,
		Height: options.ImageHeight,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars: bars,
	}
}

func stackedBarChart(title string, series []vchart.DataSeries, options vchart.PrintOptions) *chart.StackedBarChart {
	bars := make([]chart.StackedBar, len(series))
	for i, s := range series {
		bars[i].Name = s.Dimension.Label
		bars[i].Values = make([]chart.Value, len(s.Measures))
		for m, measure := range s.Measures {
			value, _ := measure.Float64()
			color := seriesColor(measure, m)
			bars[i].Values[m] = chart.Value{
				Label: measure.Label,
				Value: value,
				Style: chart.Style{FillColor: color, StrokeColor: color},
			}
		}
	}
	return &chart.StackedBarChart{
		Title:  title,
		Width:  options.ImageWidth,
		Height: options.ImageHeight,
		Bars:   bars,
	}
}

func lineChart(title string, series []vchart.DataSeries, options vchart.PrintOptions, fill bool) *chart.Chart {
	ticks := make([]chart.Tick, len(series))
	for i, s := range series {
		ticks[i] = chart.Tick{Value: float64(i), Label: s.Dimension.Label}
	}
	minY, maxY := 0.0, 0.0
	lines := make([]chart.Series, 0, numMeasures(series))
	for m := range numMeasures(series) {
		line := chart.ContinuousSeries{}
		for i, s := range series {
			if m >= len(s.Measures) {
				continue
			}
			measure := s.Measures[m]
			if i == 0 {
				color := seriesColor(measure, m)
				line.Name = measure.Label
				line.Style = chart.Style{StrokeColor: color, StrokeWidth: 2}
				if fill {
					line.Style.FillColor = color.WithAlpha(64)
				}
			}
			value, ok := measure.Float64()
			if !ok {
				continue
			}
			line.XValues = append(line.XValues, float64(i))
			line.YValues = append(line.YValues, value)
			minY = min(minY, value)
			maxY = max(maxY, value)
		}
		if len(line.XValues) == 1 {
			// go-chart needs two points to draw a line
			line.XValues = append(line.XValues, line.XValues[0])
			line.YValues = append(line.YValues, line.YValues[0])
		}
		if len(line.XValues) > 0 {
			lines = append(lines, line)
		}
	}
	if maxY == minY {
		maxY = minY + 1
	}
	c := &chart.Chart{
		Title:  title,
		Width:  options.ImageWidth,
		Height: options.ImageHeight,
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(series)) - 0.5},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: minY, Max: maxY},
		},
		Series: lines,
	}
	c.Elements = []chart.Renderable{chart.Legend(c)}
	return c
}

// pieChart returns nil if the first measure has no positive value.
func pieChart(title string, series []vchart.DataSeries, options vchart.PrintOptions) *chart.PieChart {
	var values []chart.Value
	for i, s := range series {
		if len(s.Measures) == 0 {
			continue
		}
		value, ok := s.Measures[0].Float64()
		if !ok || value <= 0 {
			continue
		}
		color := chart.GetDefaultColor(i)
		values = append(values, chart.Value{
			Label: s.Dimension.Label,
			Value: value,
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}
	if len(values) == 0 {
		return nil
	}
	return &chart.PieChart{
		Title:  title,
		Width:  options.ImageWidth,
		Height: options.ImageHeight,
		Values: values,
	}
}
