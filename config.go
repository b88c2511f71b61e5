package vchart

import (
	"log/slog"
)

// Display is the UI collaborator showing a chart.
// All methods are called synchronously by the Chart.
type Display interface {
	// Build creates the view shell of the chart.
	Build(chart *Chart) error

	// SetTypeView binds a newly created TypeView.
	SetTypeView(view TypeView)

	Refresh()

	// TypeChanged is called after every SetTypeView.
	TypeChanged(chartType ChartType)

	// SetCommandEnabled enables or disables the UI action of a command.
	SetCommandEnabled(command string, enabled bool)
}

// Config holds the collaborators of a Chart.
// Nil fields are replaced by the package defaults.
type Config struct {
	Logger       *slog.Logger
	TypeFactory  ChartTypeFactory
	Display      Display
	DefaultType  ChartType
	PrintOptions *PrintOptions
}

var (
	// DefaultTypeFactory creates SeriesView values.
	DefaultTypeFactory ChartTypeFactory = ChartTypeFactoryFunc(NewSeriesView)

	// DefaultConfig is used by New for zero Config fields.
	DefaultConfig = Config{
		TypeFactory: DefaultTypeFactory,
		DefaultType: DefaultType,
	}
)

func (c Config) withDefaults(chartIdent string) Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	c.Logger = c.Logger.With(slog.String("module", "vchart"), slog.String("chart", chartIdent))
	if c.TypeFactory == nil {
		c.TypeFactory = DefaultConfig.TypeFactory
	}
	if c.Display == nil {
		c.Display = nopDisplay{}
	}
	if !c.DefaultType.Valid() {
		c.DefaultType = DefaultConfig.DefaultType
	}
	return c
}

// SeriesView is the TypeView created by DefaultTypeFactory.
// It simply holds the data series.
type SeriesView struct {
	ChartType ChartType
	Title     string
	Series    []DataSeries
	Options   PrintOptions
}

func NewSeriesView(title string, chartType ChartType, series []DataSeries, options PrintOptions) (TypeView, error) {
	return &SeriesView{ChartType: chartType, Title: title, Series: series, Options: options}, nil
}

func (v *SeriesView) Type() ChartType { return v.ChartType }

type nopDisplay struct{}

func (nopDisplay) Build(*Chart) error             { return nil }
func (nopDisplay) SetTypeView(TypeView)           {}
func (nopDisplay) Refresh()                       {}
func (nopDisplay) TypeChanged(ChartType)          {}
func (nopDisplay) SetCommandEnabled(string, bool) {}
