package vchart

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/domonda/go-types/date"
)

// Layouts used to display date and time dimension values.
const (
	DateLayout      = "02.01.2006"
	MonthLayout     = "01/2006"
	TimeLayout      = "15:04"
	TimestampLayout = "02.01.2006 15:04:05"
)

// BooleanLabels holds the display strings of boolean dimension values.
type BooleanLabels struct {
	True  string
	False string
}

var booleanLabels atomic.Pointer[BooleanLabels]

func init() {
	booleanLabels.Store(&BooleanLabels{True: "Yes", False: "No"})
}

// SetBooleanLabels replaces the cached display strings
// of boolean dimension values for all charts.
func SetBooleanLabels(labels BooleanLabels) {
	booleanLabels.Store(&labels)
}

// BooleanLabel returns the cached display string for b.
func BooleanLabel(b bool) string {
	l := booleanLabels.Load()
	if b {
		return l.True
	}
	return l.False
}

// Dimension is the categorical column of a chart.
// Every row has exactly one dimension value.
type Dimension struct {
	Column

	Kind Kind

	// MaxScale and ExactScale are used by KindDecimal.
	MaxScale   int32
	ExactScale bool

	// Codes is used by KindCode.
	Codes *CodeTable

	// Format overrides the conversion of Kind if not nil.
	Format Formatter

	// FormatTrigger is called by Chart.Build and
	// its result replaces Format if not nil.
	FormatTrigger func() (Formatter, error)
}

// NewDimension returns a Dimension of a kind that needs no further
// configuration. KindDecimal and KindCode have their own constructors.
func NewDimension(ident string, kind Kind) (*Dimension, error) {
	switch kind {
	case KindDecimal:
		return nil, newConfigError(ident, "use NewDecimalDimension for %s dimensions", kind)
	case KindCode:
		return nil, newConfigError(ident, "use NewCodeDimension for %s dimensions", kind)
	}
	if kind < KindInteger || kind > KindCode {
		return nil, newConfigError(ident, "unsupported dimension kind %s", kind)
	}
	return &Dimension{Column: Column{Ident: ident}, Kind: kind}, nil
}

// NewDecimalDimension returns a decimal Dimension.
// Values with more than maxScale fractional digits, or all values
// if exactScale is true, are rounded half-up to maxScale digits.
func NewDecimalDimension(ident string, maxScale int32, exactScale bool) (*Dimension, error) {
	if maxScale < 0 {
		return nil, newConfigError(ident, "negative max scale %d", maxScale)
	}
	return &Dimension{
		Column:     Column{Ident: ident},
		Kind:       KindDecimal,
		MaxScale:   maxScale,
		ExactScale: exactScale,
	}, nil
}

// NewCodeDimension returns a Dimension displaying
// the labels of the passed code table.
func NewCodeDimension(ident string, codes *CodeTable) (*Dimension, error) {
	if codes == nil {
		return nil, newConfigError(ident, "code dimension without code table")
	}
	return &Dimension{Column: Column{Ident: ident}, Kind: KindCode, Codes: codes}, nil
}

// Localize sets the column texts and the code names if the dimension has codes.
func (d *Dimension) Localize(loc Localizer, source string) error {
	if err := d.Column.Localize(loc, source); err != nil {
		return err
	}
	if d.Codes != nil {
		return d.Codes.Localize(loc, source)
	}
	return nil
}

// FormatValue returns the display string of value.
//
// A nil value is formatted as empty string.
// Values that don't fit the Kind of the dimension are formatted with fmt.Sprint.
// The only error is a NotFoundError for a code dimension value
// that is not part of the code table.
func (d *Dimension) FormatValue(value any) (string, error) {
	if d.Format != nil {
		return d.Format.Format(value), nil
	}
	if value == nil {
		return "", nil
	}
	switch d.Kind {
	case KindInteger:
		if i, ok := toInt64(value); ok {
			return strconv.FormatInt(i, 10), nil
		}

	case KindDecimal:
		if dec, ok := toDecimal(value); ok {
			return formatDecimal(dec, d.MaxScale, d.ExactScale), nil
		}

	case KindString:
		if s, ok := value.(string); ok {
			return s, nil
		}

	case KindBoolean:
		if b, ok := value.(bool); ok {
			return BooleanLabel(b), nil
		}

	case KindDate:
		if str, ok := formatTime(value, DateLayout); ok {
			return str, nil
		}

	case KindMonth:
		if str, ok := formatTime(value, MonthLayout); ok {
			return str, nil
		}

	case KindWeek:
		if t, ok := toTime(value); ok {
			if t.IsZero() {
				return "", nil
			}
			year, week := t.ISOWeek()
			return fmt.Sprintf("%02d/%d", week, year), nil
		}

	case KindTime:
		if str, ok := formatTime(value, TimeLayout); ok {
			return str, nil
		}

	case KindTimestamp:
		if str, ok := formatTime(value, TimestampLayout); ok {
			return str, nil
		}

	case KindCode:
		index, err := d.Codes.Index(value)
		if err != nil {
			return "", err
		}
		return d.Codes.Label(index), nil
	}
	return fmt.Sprint(value), nil
}

// formatTime formats value with layout if it is a time or date.
// Zero times are formatted as empty string.
func formatTime(value any, layout string) (string, bool) {
	t, ok := toTime(value)
	if !ok {
		return "", false
	}
	if t.IsZero() {
		return "", true
	}
	return t.Format(layout), true
}

func toTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, true
		}
		return *v, true
	case date.Date:
		if v.IsZero() {
			return time.Time{}, true
		}
		return v.MidnightUTC(), true
	}
	return time.Time{}, false
}
