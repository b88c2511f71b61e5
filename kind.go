package vchart

import (
	"fmt"
	"strings"
)

// Kind is the closed set of value domains a dimension or measure column can have.
// The Kind of a column is fixed when the column is declared
// and selects the conversion used for all of its values.
type Kind int

const (
	KindInteger Kind = iota
	KindDecimal
	KindString
	KindBoolean
	KindDate
	KindMonth
	KindWeek
	KindTime
	KindTimestamp
	KindCode
)

var kindNames = [...]string{
	KindInteger:   "integer",
	KindDecimal:   "decimal",
	KindString:    "string",
	KindBoolean:   "boolean",
	KindDate:      "date",
	KindMonth:     "month",
	KindWeek:      "week",
	KindTime:      "time",
	KindTimestamp: "timestamp",
	KindCode:      "code",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsNumeric returns true for kinds that a Measure can have.
func (k Kind) IsNumeric() bool {
	return k == KindInteger || k == KindDecimal || k == KindCode
}

// ParseKind parses the case insensitive name of a Kind.
// An unknown name is a configuration error.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(k), nil
		}
	}
	return 0, newConfigError("", "unsupported column kind %q", name)
}
