package vchart

import (
	"errors"
	"fmt"
)

var (
	// ErrNoChartRow is reported to the user when a chart
	// is built without any rows appended during data loading.
	// It is not a programming error: the chart simply cannot be displayed.
	ErrNoChartRow = errors.New("no chart row")

	// ErrConfiguration is wrapped by all errors caused by
	// an inconsistent chart, column or code table declaration.
	ErrConfiguration = errors.New("chart configuration error")

	// ErrNotFound is wrapped by NotFoundError.
	ErrNotFound = errors.New("object not found")

	// ErrInvalidState is returned for lifecycle calls
	// that are not allowed in the current State of a Chart.
	ErrInvalidState = errors.New("invalid chart state")
)

// ConfigError is a fatal error in the declaration of a chart.
// It indicates a developer mistake and is never retried.
type ConfigError struct {
	Ident   string
	Message string
}

func newConfigError(ident, format string, args ...any) *ConfigError {
	return &ConfigError{Ident: ident, Message: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	if e.Ident == "" {
		return fmt.Sprintf("%s: %s", ErrConfiguration, e.Message)
	}
	return fmt.Sprintf("%s in %q: %s", ErrConfiguration, e.Ident, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// NotFoundError is returned when a value can't be found
// in the codes of a CodeTable.
type NotFoundError struct {
	Column string
	Value  any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: value %#v in code table of column %q", ErrNotFound, e.Value, e.Column)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// IsConfigurationError returns true if err is caused by an
// inconsistent declaration, including failed code lookups.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration) || errors.Is(err, ErrNotFound)
}

// TriggerError wraps an error returned by a trigger callback
// together with the Event the trigger was registered for.
type TriggerError struct {
	Event Event
	Err   error
}

func (e *TriggerError) Error() string {
	return fmt.Sprintf("%s trigger: %s", e.Event, e.Err)
}

func (e *TriggerError) Unwrap() error {
	return e.Err
}
