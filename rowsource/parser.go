package rowsource

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/domonda/go-types/date"
	"github.com/shopspring/decimal"

	"github.com/galite/vchart"
)

// StringParser converts cell strings to the raw values
// expected by the columns of a chart.
type StringParser struct {
	// TrueStrings lists all strings that should be parsed as boolean true.
	TrueStrings []string `json:"trueStrings"`

	// FalseStrings lists all strings that should be parsed as boolean false.
	FalseStrings []string `json:"falseStrings"`

	// NilStrings lists all strings that are parsed as nil value.
	NilStrings []string `json:"nilStrings"`

	// TimeFormats lists time layouts tried in order
	// when parsing date and time values.
	TimeFormats []string `json:"timeFormats"`
}

// NewStringParser returns a StringParser with default configuration.
func NewStringParser() *StringParser {
	return &StringParser{
		TrueStrings:  []string{"true", "True", "TRUE", "yes", "Yes", "YES", "1"},
		FalseStrings: []string{"false", "False", "FALSE", "no", "No", "NO", "0"},
		NilStrings:   []string{"", "nil", "<nil>", "null", "NULL"},
		TimeFormats:  slices.Clone(timeFormats),
	}
}

var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	formatDateTimeMinute,
	time.DateOnly,
	formatDateTimeGerman,
	formatDateGerman,
	formatMonth,
	time.TimeOnly,
	formatTimeMinute,
}

const (
	formatDateTimeMinute = "2006-01-02 15:04"
	formatDateTimeGerman = "02.01.2006 15:04:05"
	formatDateGerman     = "02.01.2006"
	formatMonth          = "2006-01"
	formatTimeMinute     = "15:04"
)

// IsNil returns true if str is one of NilStrings.
func (p *StringParser) IsNil(str string) bool {
	return slices.Contains(p.NilStrings, str)
}

func (p *StringParser) ParseInt(str string) (int64, error) {
	return strconv.ParseInt(str, 10, 64)
}

// ParseDecimal parses str as decimal number,
// accepting a single comma as decimal separator.
func (p *StringParser) ParseDecimal(str string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(str)
	if err != nil {
		if strings.Count(str, ",") == 1 && !strings.Contains(str, ".") {
			d, e := decimal.NewFromString(strings.Replace(str, ",", ".", 1))
			if e != nil {
				return decimal.Decimal{}, err // return original error
			}
			return d, nil
		}
		return decimal.Decimal{}, err
	}
	return d, nil
}

func (p *StringParser) ParseBool(str string) (bool, error) {
	if slices.Contains(p.TrueStrings, str) {
		return true, nil
	}
	if slices.Contains(p.FalseStrings, str) {
		return false, nil
	}
	return false, fmt.Errorf("cannot parse %q as bool", str)
}

func (p *StringParser) ParseTime(str string) (time.Time, error) {
	for _, format := range p.TimeFormats {
		t, err := time.Parse(format, str)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as time", str)
}

// ParseDate parses str as date.Date, accepting
// all date formats known to go-types and TimeFormats.
func (p *StringParser) ParseDate(str string) (date.Date, error) {
	if d, err := date.Normalize(str); err == nil {
		return d, nil
	}
	t, err := p.ParseTime(str)
	if err != nil {
		return "", fmt.Errorf("cannot parse %q as date", str)
	}
	return date.OfTime(t), nil
}

// ParseValue parses str as raw value for a column of kind.
// Code values are parsed according to the kind of the code table.
// Nil strings result in a nil value.
func (p *StringParser) ParseValue(kind vchart.Kind, codes *vchart.CodeTable, str string) (any, error) {
	str = strings.TrimSpace(str)
	if p.IsNil(str) {
		return nil, nil
	}
	switch kind {
	case vchart.KindInteger:
		return p.ParseInt(str)
	case vchart.KindDecimal:
		return p.ParseDecimal(str)
	case vchart.KindString:
		return str, nil
	case vchart.KindBoolean:
		return p.ParseBool(str)
	case vchart.KindDate:
		return p.ParseDate(str)
	case vchart.KindMonth, vchart.KindWeek, vchart.KindTime, vchart.KindTimestamp:
		return p.ParseTime(str)
	case vchart.KindCode:
		if codes == nil {
			return str, nil
		}
		switch codes.Kind() {
		case vchart.CodeInteger:
			return p.ParseInt(str)
		case vchart.CodeDecimal:
			return p.ParseDecimal(str)
		case vchart.CodeBoolean:
			return p.ParseBool(str)
		}
		return str, nil
	}
	return nil, fmt.Errorf("unsupported kind %s", kind)
}
