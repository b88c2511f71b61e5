package vchart

import (
	"fmt"
	"time"

	"github.com/domonda/go-types/date"
)

// Formatter converts a raw column value to its display string.
//
// A Formatter attached to a Dimension overrides the
// conversion selected by the Kind of the dimension.
type Formatter interface {
	// Format returns the display string for value.
	// Implementations must not panic for nil or unexpected values.
	Format(value any) string
}

// FormatterFunc implements Formatter for a function.
type FormatterFunc func(value any) string

func (f FormatterFunc) Format(value any) string {
	return f(value)
}

// PrintfFormatter implements Formatter by calling
// fmt.Sprintf with this type's string value as format.
// A nil value is formatted as empty string.
type PrintfFormatter string

func (format PrintfFormatter) Format(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf(string(format), value)
}

// LayoutFormatter formats time.Time and date.Date values
// using the string value of the type as layout.
// Other values are formatted with fmt.Sprint.
type LayoutFormatter string

func (layout LayoutFormatter) Format(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(string(layout))
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format(string(layout))
	case date.Date:
		if v.IsZero() {
			return ""
		}
		return v.MidnightUTC().Format(string(layout))
	default:
		return fmt.Sprint(value)
	}
}

// SprintFormatter formats any value using fmt.Sprint
// and nil as empty string.
type SprintFormatter struct{}

func (SprintFormatter) Format(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
