package vchart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Color is the RGB color of a measure series.
type Color struct {
	R, G, B uint8
}

// ParseColor parses a color in the hex notation #RRGGBB.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb)}, nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Measure is a numeric column of a chart.
type Measure struct {
	Column

	// Kind is one of KindInteger, KindDecimal or KindCode.
	Kind Kind

	// MaxScale and ExactScale are used by KindDecimal.
	MaxScale   int32
	ExactScale bool

	// Codes is used by KindCode and must have integer or decimal codes.
	Codes *CodeTable

	// Color of the measure series, nil for the default color.
	Color *Color

	// ColorTrigger is called by Chart.Build and its result replaces Color.
	ColorTrigger func() (Color, error)
}

// NewIntegerMeasure returns a Measure for integer values.
func NewIntegerMeasure(ident string) *Measure {
	return &Measure{Column: Column{Ident: ident}, Kind: KindInteger}
}

// NewDecimalMeasure returns a Measure for decimal values
// rounded like the values of a decimal Dimension.
func NewDecimalMeasure(ident string, maxScale int32, exactScale bool) (*Measure, error) {
	if maxScale < 0 {
		return nil, newConfigError(ident, "negative max scale %d", maxScale)
	}
	return &Measure{
		Column:     Column{Ident: ident},
		Kind:       KindDecimal,
		MaxScale:   maxScale,
		ExactScale: exactScale,
	}, nil
}

// NewCodeMeasure returns a Measure whose number is the
// code of the value in a numeric code table.
func NewCodeMeasure(ident string, codes *CodeTable) (*Measure, error) {
	if codes == nil {
		return nil, newConfigError(ident, "code measure without code table")
	}
	if codes.Kind() != CodeInteger && codes.Kind() != CodeDecimal {
		return nil, newConfigError(ident, "code measure needs numeric codes, got %s codes", codes.Kind())
	}
	return &Measure{Column: Column{Ident: ident}, Kind: KindCode, Codes: codes}, nil
}

// Localize sets the column texts and the code names if the measure has codes.
func (m *Measure) Localize(loc Localizer, source string) error {
	if err := m.Column.Localize(loc, source); err != nil {
		return err
	}
	if m.Codes != nil {
		return m.Codes.Localize(loc, source)
	}
	return nil
}

// ToNumber converts value to the numeric representation of the measure.
//
// The result is invalid (null) for nil, for values that can't be converted
// and for values not found in the code table of a code measure.
// Callers treat a null result as no data, never as an error.
func (m *Measure) ToNumber(value any) decimal.NullDecimal {
	if value == nil {
		return decimal.NullDecimal{}
	}
	switch m.Kind {
	case KindInteger:
		if i, ok := toInt64(value); ok {
			return decimal.NewNullDecimal(decimal.NewFromInt(i))
		}
		if d, ok := toDecimal(value); ok {
			return decimal.NewNullDecimal(d.Truncate(0))
		}

	case KindDecimal:
		if d, ok := toDecimal(value); ok {
			return decimal.NewNullDecimal(rescale(d, m.MaxScale, m.ExactScale))
		}

	case KindCode:
		if m.Codes == nil {
			break
		}
		index, err := m.Codes.Index(value)
		if err != nil {
			break
		}
		return m.Codes.Code(index)
	}
	return decimal.NullDecimal{}
}
