package vchart

import (
	"fmt"
	"strings"
)

// Event is a point in the chart lifecycle where a trigger can run.
type Event int

const (
	EventPreChart Event = iota
	EventPostChart
	EventInit
	EventChartType
	EventCmdAccess
	EventColor
	EventFormat
)

var eventNames = [...]string{
	EventPreChart:  "PRECHART",
	EventPostChart: "POSTCHART",
	EventInit:      "INIT",
	EventChartType: "CHARTTYPE",
	EventCmdAccess: "CMDACCESS",
	EventColor:     "COLOR",
	EventFormat:    "FORMAT",
}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return fmt.Sprintf("Event(%d)", int(e))
	}
	return eventNames[e]
}

// ParseEvent parses the case insensitive name of an Event.
func ParseEvent(name string) (Event, error) {
	for e, n := range eventNames {
		if strings.EqualFold(n, name) {
			return Event(e), nil
		}
	}
	return 0, newConfigError("", "unknown trigger event %q", name)
}

// Triggers holds the chart level trigger callbacks,
// each typed after the result its event expects.
// Column level COLOR and FORMAT triggers are fields
// of Measure and Dimension.
type Triggers struct {
	// PreChart runs first in Chart.Build.
	PreChart func() error

	// PostChart runs in Chart.Destroy.
	// Its error is logged and never returned.
	PostChart func() error

	// Init runs after the chart type has been selected.
	Init func() error

	// ChartType returns the fixed type of the chart.
	// Once set, SetType ignores any other type.
	ChartType func() (ChartType, error)

	// CmdAccess decides per command ident if the command is enabled.
	// An error enables the command.
	CmdAccess map[string]func() (bool, error)
}

// Has returns true if a chart level trigger is registered for event.
func (t *Triggers) Has(event Event) bool {
	switch event {
	case EventPreChart:
		return t.PreChart != nil
	case EventPostChart:
		return t.PostChart != nil
	case EventInit:
		return t.Init != nil
	case EventChartType:
		return t.ChartType != nil
	case EventCmdAccess:
		return len(t.CmdAccess) > 0
	}
	return false
}

// SetCmdAccess registers the CMDACCESS trigger of a command.
func (t *Triggers) SetCmdAccess(command string, trigger func() (bool, error)) {
	if t.CmdAccess == nil {
		t.CmdAccess = make(map[string]func() (bool, error))
	}
	t.CmdAccess[command] = trigger
}

func runVoidTrigger(event Event, trigger func() error) error {
	if trigger == nil {
		return nil
	}
	if err := trigger(); err != nil {
		return &TriggerError{Event: event, Err: err}
	}
	return nil
}
