package vchart

import (
	"fmt"
	"log/slog"
	"slices"
)

// State is the lifecycle state of a Chart.
type State int

const (
	StateCreated State = iota
	StateBuilt
	StateTypeSelected
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateBuilt:
		return "Built"
	case StateTypeSelected:
		return "TypeSelected"
	case StateDestroyed:
		return "Destroyed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// BuildStatus is the outcome of Chart.Build
// that is not a hard error.
type BuildStatus int

const (
	// BuildFailed is returned together with a non nil error.
	BuildFailed BuildStatus = iota
	// BuildOK means the chart is displayed with its initial type.
	BuildOK
	// BuildNoData means the chart has no rows and can't be displayed.
	BuildNoData
)

func (s BuildStatus) String() string {
	switch s {
	case BuildFailed:
		return "failed"
	case BuildOK:
		return "ok"
	case BuildNoData:
		return "no data"
	}
	return fmt.Sprintf("BuildStatus(%d)", int(s))
}

// Err returns ErrNoChartRow for BuildNoData and nil otherwise,
// for callers that report the status as message to the user.
func (s BuildStatus) Err() error {
	if s == BuildNoData {
		return ErrNoChartRow
	}
	return nil
}

// Chart is the model of one chart: a dimension, its measures,
// the rows loaded for them and the currently displayed type.
//
// A Chart is not safe for concurrent use,
// callers have to serialize access per chart.
type Chart struct {
	Ident string
	// Source identifies the localization resource of the chart.
	Source string
	Title  string
	Help   string

	Dimension *Dimension
	Measures  []*Measure
	Commands  []*Command
	Triggers  Triggers

	PrintOptions PrintOptions

	rows           Rows
	state          State
	chartType      ChartType
	defaultType    ChartType
	fixedType      bool
	series         []DataSeries
	activeCommands map[string]struct{}

	typeFactory ChartTypeFactory
	display     Display
	log         *slog.Logger
}

// New returns a Chart in StateCreated.
// An inconsistent declaration results in a ConfigError.
func New(ident string, dimension *Dimension, measures []*Measure, commands []*Command, config Config) (*Chart, error) {
	if dimension == nil {
		return nil, newConfigError(ident, "chart without dimension")
	}
	if len(measures) == 0 {
		return nil, newConfigError(ident, "chart without measures")
	}
	var idents []string
	for _, m := range measures {
		if m == nil {
			return nil, newConfigError(ident, "nil measure")
		}
		if !m.Kind.IsNumeric() {
			return nil, newConfigError(ident, "measure %q has non numeric kind %s", m.Ident, m.Kind)
		}
		if slices.Contains(idents, m.Ident) || m.Ident == dimension.Ident {
			return nil, newConfigError(ident, "duplicate column %q", m.Ident)
		}
		idents = append(idents, m.Ident)
	}
	if err := checkCommands(ident, commands); err != nil {
		return nil, err
	}
	config = config.withDefaults(ident)
	printOptions := DefaultPrintOptions
	if config.PrintOptions != nil {
		printOptions = config.PrintOptions.WithDefaults()
	}
	return &Chart{
		Ident:          ident,
		Title:          ident,
		Dimension:      dimension,
		Measures:       measures,
		Commands:       commands,
		PrintOptions:   printOptions,
		state:          StateCreated,
		defaultType:    config.DefaultType,
		activeCommands: make(map[string]struct{}),
		typeFactory:    config.TypeFactory,
		display:        config.Display,
		log:            config.Logger,
	}, nil
}

func (c *Chart) State() State { return c.state }

// Type returns the current chart type
// and false if no type has been selected yet.
func (c *Chart) Type() (ChartType, bool) {
	return c.chartType, c.state == StateTypeSelected
}

// FixedType returns true if a CHARTTYPE trigger
// has fixed the type of the chart.
func (c *Chart) FixedType() bool { return c.fixedType }

// Series returns the data series of the current chart type.
func (c *Chart) Series() []DataSeries { return c.series }

func (c *Chart) NumRows() int { return c.rows.Len() }

// Row returns the row at index.
func (c *Chart) Row(index int) Row { return c.rows.At(index) }

// Logger returns the logger of the chart.
func (c *Chart) Logger() *slog.Logger { return c.log }

// Localize sets title, help and column labels from loc.
func (c *Chart) Localize(loc Localizer) error {
	title, help, err := loc.ChartLabel(c.Source)
	if err != nil {
		return err
	}
	c.Title, c.Help = title, help
	if err := c.Dimension.Localize(loc, c.Source); err != nil {
		return err
	}
	for _, m := range c.Measures {
		if err := m.Localize(loc, c.Source); err != nil {
			return err
		}
	}
	return nil
}

// AddRow appends a row of raw values.
// The value at index i of measures belongs to Measures[i].
// Rows can be added until the chart is destroyed
// and are included by the next SetType.
func (c *Chart) AddRow(dimensions, measures []any) error {
	if c.state == StateDestroyed {
		return fmt.Errorf("%w: add row in state %s", ErrInvalidState, c.state)
	}
	c.rows.Add(dimensions, measures)
	return nil
}

// Build initializes the chart for display.
//
// Without rows BuildNoData is returned without running any trigger.
// Otherwise the PRECHART trigger runs, then the column triggers,
// the display builds its shell, the chart type is selected
// (a CHARTTYPE trigger fixes it), the INIT trigger runs,
// the commands are enabled and the data series of the type are created.
// If INIT, command enablement or the series creation fail
// the chart is reset to StateCreated and Build can be retried.
func (c *Chart) Build() (BuildStatus, error) {
	if c.state != StateCreated {
		return BuildFailed, fmt.Errorf("%w: build in state %s", ErrInvalidState, c.state)
	}
	if c.rows.Len() == 0 {
		return BuildNoData, nil
	}
	if err := runVoidTrigger(EventPreChart, c.Triggers.PreChart); err != nil {
		return BuildFailed, err
	}
	if err := c.runColumnTriggers(); err != nil {
		return BuildFailed, err
	}
	if err := c.display.Build(c); err != nil {
		return BuildFailed, err
	}

	chartType, fixed := c.defaultType, false
	if c.Triggers.ChartType != nil {
		t, err := c.Triggers.ChartType()
		if err != nil {
			return BuildFailed, &TriggerError{Event: EventChartType, Err: err}
		}
		if !t.Valid() {
			return BuildFailed, newConfigError(c.Ident, "CHARTTYPE trigger returned invalid %s", t)
		}
		chartType, fixed = t, true
	}

	prevType, prevFixed := c.chartType, c.fixedType
	c.chartType, c.fixedType = chartType, fixed
	c.state = StateBuilt
	err := runVoidTrigger(EventInit, c.Triggers.Init)
	if err == nil {
		err = c.enableCommands()
	}
	if err == nil {
		err = c.SetType(chartType, false)
	}
	if err != nil {
		c.chartType, c.fixedType = prevType, prevFixed
		for ident := range c.activeCommands {
			c.display.SetCommandEnabled(ident, false)
		}
		clear(c.activeCommands)
		c.state = StateCreated
		return BuildFailed, err
	}
	c.log.Debug("chart built",
		slog.String("type", chartType.String()),
		slog.Int("rows", c.rows.Len()),
	)
	return BuildOK, nil
}

func (c *Chart) runColumnTriggers() error {
	if c.Dimension.FormatTrigger != nil {
		f, err := c.Dimension.FormatTrigger()
		if err != nil {
			return &TriggerError{Event: EventFormat, Err: err}
		}
		if f != nil {
			c.Dimension.Format = f
		}
	}
	for _, m := range c.Measures {
		if m.ColorTrigger == nil {
			continue
		}
		color, err := m.ColorTrigger()
		if err != nil {
			return &TriggerError{Event: EventColor, Err: err}
		}
		m.Color = &color
	}
	return nil
}

// SetType displays the chart as chartType.
//
// If the type of the chart has been fixed by a CHARTTYPE trigger
// then any other type is ignored without error.
// Otherwise the data series are rebuilt from all rows,
// a new TypeView is bound to the display which is refreshed
// if refresh is true, and the display is notified about the type.
func (c *Chart) SetType(chartType ChartType, refresh bool) error {
	if c.state != StateBuilt && c.state != StateTypeSelected {
		return fmt.Errorf("%w: set type in state %s", ErrInvalidState, c.state)
	}
	if !chartType.Valid() {
		return newConfigError(c.Ident, "invalid %s", chartType)
	}
	if c.fixedType && chartType != c.chartType {
		return nil
	}
	series, err := CreateDataSeries(c)
	if err != nil {
		return err
	}
	view, err := c.typeFactory.CreateTypeView(c.Title, chartType, series, c.PrintOptions)
	if err != nil {
		return err
	}
	c.chartType = chartType
	c.series = series
	c.state = StateTypeSelected

	c.display.SetTypeView(view)
	if refresh {
		c.display.Refresh()
	}
	c.display.TypeChanged(chartType)
	return nil
}

// Destroy runs the POSTCHART trigger and releases the series.
// Errors and panics of the trigger are logged, never returned,
// so that Destroy always reaches StateDestroyed.
func (c *Chart) Destroy() {
	if c.state == StateDestroyed {
		return
	}
	defer func() {
		c.series = nil
		clear(c.activeCommands)
		c.state = StateDestroyed
	}()
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("POSTCHART trigger panicked", slog.Any("panic", r))
		}
	}()
	if err := runVoidTrigger(EventPostChart, c.Triggers.PostChart); err != nil {
		c.log.Error("POSTCHART trigger failed", slog.Any("err", err))
	}
}
