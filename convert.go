package vchart

import (
	"math"

	"github.com/shopspring/decimal"
)

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), v <= math.MaxInt64
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), v <= math.MaxInt64
	case decimal.Decimal:
		if !v.IsInteger() {
			return 0, false
		}
		return v.IntPart(), true
	case *int64:
		if v == nil {
			return 0, false
		}
		return *v, true
	}
	return 0, false
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Decimal{}, false
		}
		return *v, true
	case decimal.NullDecimal:
		return v.Decimal, v.Valid
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat32(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(v), true
	}
	if i, ok := toInt64(value); ok {
		return decimal.NewFromInt(i), true
	}
	return decimal.Decimal{}, false
}

// scale returns the number of fractional digits of d.
func scale(d decimal.Decimal) int32 {
	if exp := d.Exponent(); exp < 0 {
		return -exp
	}
	return 0
}

// rescale rounds d half-up to maxScale if the scale of d
// exceeds maxScale or exact is set, else d is returned unchanged.
func rescale(d decimal.Decimal, maxScale int32, exact bool) decimal.Decimal {
	if exact || scale(d) > maxScale {
		return d.Round(maxScale)
	}
	return d
}

// formatDecimal renders d with the digits implied by its scale
// or by maxScale if rescaled.
func formatDecimal(d decimal.Decimal, maxScale int32, exact bool) string {
	if exact || scale(d) > maxScale {
		return d.StringFixed(maxScale)
	}
	return d.StringFixed(scale(d))
}
