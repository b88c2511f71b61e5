package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	fs "github.com/ungerik/go-fs"

	"github.com/galite/vchart"
)

var _ vchart.Display = new(Display)

// Display keeps the current View of a chart and the enabled
// state of its commands. If Output is set, Refresh writes
// the current view as image to it.
type Display struct {
	Output fs.File
	Format Format
	Logger *slog.Logger

	mtx      sync.Mutex
	title    string
	view     *View
	chart    vchart.ChartType
	commands map[string]bool
	err      error
}

// Build implements vchart.Display.
func (d *Display) Build(c *vchart.Chart) error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	d.title = c.Title
	d.commands = make(map[string]bool, len(c.Commands))
	return nil
}

// SetTypeView implements vchart.Display.
// Views not created by Factory are ignored.
func (d *Display) SetTypeView(view vchart.TypeView) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	v, ok := view.(*View)
	if !ok {
		d.logger().Warn("Ignoring foreign type view", slog.String("type", fmt.Sprintf("%T", view)))
		return
	}
	d.view = v
}

// Refresh implements vchart.Display.
func (d *Display) Refresh() {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if d.Output == "" || d.view == nil {
		return
	}
	var buf bytes.Buffer
	err := d.view.Render(&buf, d.Format)
	if err == nil {
		err = d.Output.WriteAll(buf.Bytes())
	}
	d.err = err
	if err != nil {
		d.logger().Error("Can't render chart", slog.String("file", d.Output.Name()), slog.Any("error", err))
	}
}

// TypeChanged implements vchart.Display.
func (d *Display) TypeChanged(chartType vchart.ChartType) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	d.chart = chartType
	d.logger().Debug("Chart type changed", slog.String("title", d.title), slog.String("type", chartType.String()))
}

// SetCommandEnabled implements vchart.Display.
func (d *Display) SetCommandEnabled(command string, enabled bool) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if d.commands == nil {
		d.commands = make(map[string]bool)
	}
	d.commands[command] = enabled
}

// View returns the current view or nil.
func (d *Display) View() *View {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	return d.view
}

// Type returns the chart type of the last TypeChanged call.
func (d *Display) Type() vchart.ChartType {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	return d.chart
}

// EnabledCommands returns the sorted idents of all enabled commands.
func (d *Display) EnabledCommands() []string {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	var enabled []string
	for _, ident := range slices.Sorted(maps.Keys(d.commands)) {
		if d.commands[ident] {
			enabled = append(enabled, ident)
		}
	}
	return enabled
}

// Err returns the error of the last Refresh.
func (d *Display) Err() error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	return d.err
}

func (d *Display) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default().With(slog.String("module", "render"))
}
