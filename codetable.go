package vchart

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CodeKind is the value type of the codes of a CodeTable.
type CodeKind int

const (
	CodeInteger CodeKind = iota
	CodeDecimal
	CodeString
	CodeBoolean
)

func (k CodeKind) String() string {
	switch k {
	case CodeInteger:
		return "integer"
	case CodeDecimal:
		return "decimal"
	case CodeString:
		return "string"
	case CodeBoolean:
		return "boolean"
	}
	return fmt.Sprintf("CodeKind(%d)", int(k))
}

// CodeTable maps a small fixed set of raw values (codes)
// to the index of the code and from there to a display label.
//
// Codes, idents and (after localization) names are parallel slices.
type CodeTable struct {
	ident  string
	kind   CodeKind
	idents []string
	names  []string

	ints     []int64
	decimals []decimal.Decimal
	strings  []string
	bools    []bool

	// fastIndex is valid if hasFastIndex is true
	// and the integer codes form the contiguous run
	// fastIndex, fastIndex+1, ...
	fastIndex    int64
	hasFastIndex bool
}

// NewIntegerCodeTable returns a CodeTable for integer codes.
// If the codes are contiguous and ascending starting with codes[0]
// then lookups are done by subtraction instead of a linear scan.
func NewIntegerCodeTable(ident string, idents []string, codes []int64) (*CodeTable, error) {
	if err := checkCodeCount(ident, len(idents), len(codes)); err != nil {
		return nil, err
	}
	t := &CodeTable{ident: ident, kind: CodeInteger, idents: idents, ints: codes}
	t.hasFastIndex = len(codes) > 0
	for i, code := range codes {
		if code != codes[0]+int64(i) {
			t.hasFastIndex = false
			break
		}
	}
	if t.hasFastIndex {
		t.fastIndex = codes[0]
	}
	return t, nil
}

// NewDecimalCodeTable returns a CodeTable for decimal codes
// that are compared by numeric value.
func NewDecimalCodeTable(ident string, idents []string, codes []decimal.Decimal) (*CodeTable, error) {
	if err := checkCodeCount(ident, len(idents), len(codes)); err != nil {
		return nil, err
	}
	return &CodeTable{ident: ident, kind: CodeDecimal, idents: idents, decimals: codes}, nil
}

// NewStringCodeTable returns a CodeTable for string codes.
func NewStringCodeTable(ident string, idents []string, codes []string) (*CodeTable, error) {
	if err := checkCodeCount(ident, len(idents), len(codes)); err != nil {
		return nil, err
	}
	return &CodeTable{ident: ident, kind: CodeString, idents: idents, strings: codes}, nil
}

// NewBooleanCodeTable returns a CodeTable with at most two boolean codes.
// More than two codes is a configuration error.
func NewBooleanCodeTable(ident string, idents []string, codes []bool) (*CodeTable, error) {
	if len(codes) > 2 {
		return nil, newConfigError(ident, "boolean code table with %d codes, at most 2 allowed", len(codes))
	}
	if err := checkCodeCount(ident, len(idents), len(codes)); err != nil {
		return nil, err
	}
	return &CodeTable{ident: ident, kind: CodeBoolean, idents: idents, bools: codes}, nil
}

func checkCodeCount(ident string, numIdents, numCodes int) error {
	if numCodes == 0 {
		return newConfigError(ident, "code table without codes")
	}
	if numIdents != numCodes {
		return newConfigError(ident, "code table has %d idents for %d codes", numIdents, numCodes)
	}
	return nil
}

func (t *CodeTable) Ident() string  { return t.ident }
func (t *CodeTable) Kind() CodeKind { return t.kind }
func (t *CodeTable) Len() int       { return len(t.idents) }

// Idents returns the external identifiers of the codes.
func (t *CodeTable) Idents() []string { return t.idents }

// HasFastIndex returns true if integer lookups
// are computed instead of scanned.
func (t *CodeTable) HasFastIndex() bool { return t.hasFastIndex }

// Index returns the position of the code equal to value.
//
// For boolean tables the result is 0 if value equals the first code
// and 1 for any other value, including nil.
// A value that matches no code results in a NotFoundError.
func (t *CodeTable) Index(value any) (int, error) {
	switch t.kind {
	case CodeBoolean:
		if b, ok := value.(bool); ok && b == t.bools[0] {
			return 0, nil
		}
		return 1, nil

	case CodeInteger:
		v, ok := toInt64(value)
		if !ok {
			break
		}
		if t.hasFastIndex {
			i := v - t.fastIndex
			if i >= 0 && i < int64(len(t.ints)) {
				return int(i), nil
			}
			break
		}
		for i, code := range t.ints {
			if code == v {
				return i, nil
			}
		}

	case CodeDecimal:
		v, ok := toDecimal(value)
		if !ok {
			break
		}
		for i, code := range t.decimals {
			if code.Equal(v) {
				return i, nil
			}
		}

	case CodeString:
		v, ok := value.(string)
		if !ok {
			break
		}
		for i, code := range t.strings {
			if code == v {
				return i, nil
			}
		}
	}
	return -1, &NotFoundError{Column: t.ident, Value: value}
}

// Label returns the localized name of the code at index,
// or its ident if the table has not been localized.
func (t *CodeTable) Label(index int) string {
	if index < 0 || index >= len(t.idents) {
		return ""
	}
	if t.names != nil {
		return t.names[index]
	}
	return t.idents[index]
}

// Code returns the code at index as number.
// The result is invalid for string and boolean tables.
func (t *CodeTable) Code(index int) decimal.NullDecimal {
	switch {
	case index < 0 || index >= len(t.idents):
		return decimal.NullDecimal{}
	case t.kind == CodeInteger:
		return decimal.NewNullDecimal(decimal.NewFromInt(t.ints[index]))
	case t.kind == CodeDecimal:
		return decimal.NewNullDecimal(t.decimals[index])
	}
	return decimal.NullDecimal{}
}

// Localize sets the display names of the codes from loc.
func (t *CodeTable) Localize(loc Localizer, source string) error {
	names, err := loc.CodeNames(source, t.ident, t.idents)
	if err != nil {
		return err
	}
	if len(names) != len(t.idents) {
		return newConfigError(t.ident, "localization has %d names for %d codes", len(names), len(t.idents))
	}
	t.names = names
	return nil
}
