// Package render draws the data series of a vchart.Chart
// as PNG or SVG images using go-chart.
package render

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/galite/vchart"
)

// Format is an image format a View can be rendered as.
type Format int

const (
	FormatPNG Format = iota
	FormatSVG
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatSVG:
		return "svg"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatOfFile returns the Format matching the extension of filename.
func FormatOfFile(filename string) (Format, error) {
	switch ext := strings.ToLower(path.Ext(filename)); ext {
	case ".png":
		return FormatPNG, nil
	case ".svg":
		return FormatSVG, nil
	default:
		return 0, fmt.Errorf("unsupported image format %q", ext)
	}
}

func (f Format) provider() (chart.RendererProvider, error) {
	switch f {
	case FormatPNG:
		return chart.PNG, nil
	case FormatSVG:
		return chart.SVG, nil
	}
	return nil, fmt.Errorf("unsupported image format %s", f)
}

// ErrNoValues is returned when rendering a pie chart
// without any valid positive measure value.
var ErrNoValues = errors.New("no values to render")

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

var _ vchart.TypeView = new(View)

// View is the go-chart representation of a chart
// for one chart type.
type View struct {
	chartType  vchart.ChartType
	title      string
	renderable renderable
}

func (v *View) Type() vchart.ChartType { return v.chartType }

func (v *View) Title() string { return v.title }

// Render writes the view as image in the passed format to w.
func (v *View) Render(w io.Writer, format Format) error {
	provider, err := format.provider()
	if err != nil {
		return err
	}
	if v.renderable == nil {
		return ErrNoValues
	}
	return v.renderable.Render(provider, w)
}

func seriesColor(measure vchart.MeasureData, index int) drawing.Color {
	if measure.Color != nil {
		return drawing.Color{R: measure.Color.R, G: measure.Color.G, B: measure.Color.B, A: 255}
	}
	return chart.GetDefaultColor(index)
}
