// Package money formats amounts stored as int64 minor currency units.
// Formatting goes through shopspring/decimal so human-facing strings never
// pick up binary floating point artifacts.
package money

import "github.com/shopspring/decimal"

// Format renders minor units as a plain decimal string with two fraction
// digits, e.g. 123456 -> "1234.56".
func Format(minorUnits int64) string {
	return decimal.New(minorUnits, -2).StringFixed(2)
}

// Parse converts a decimal amount string such as "1234.56" into minor units.
// Fractions beyond two digits are rejected rather than silently rounded.
func Parse(s string) (int64, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	shifted := d.Shift(2)
	if !shifted.IsInteger() {
		return 0, false
	}
	return shifted.IntPart(), true
}
