// Package core holds the domain records and the settlement and
// aggregation rules that derive figures from them.
//
// This file contains the money representation. All amounts are kept as
// integer cents so settlement arithmetic is exact; the currency itself is
// dimensionless and display formatting belongs to the presentation layer.
package core

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

// Cents is a monetary amount in hundredths of the operating currency.
// Raw trip inputs are non-negative; derived figures (net profit, remaining
// driver balance) may be negative.
type Cents int64

// Float64 returns the amount in whole currency units for display purposes.
// Use Cents for calculations to avoid floating-point precision issues.
func (c Cents) Float64() float64 {
	return float64(c) / 100.0
}

// UnmarshalJSON accepts either an integer cent count (1234) or a decimal
// string ("12.34"), so API clients can post money fields in human form
// without converting to cents themselves.
func (c *Cents) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidAmount
		}
		v, err := ParseDecimalToCents(s)
		if err != nil {
			return err
		}
		*c = v
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = Cents(n)
	return nil
}

// ParseDecimalToCents converts a decimal string to cents with half-up
// rounding on the third decimal place.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Returns an error for invalid formats or negative values. Zero is valid:
// expense fields legitimately hold zero.
//
// Examples:
//
//	ParseDecimalToCents("35.00") -> 3500, nil
//	ParseDecimalToCents("35,00") -> 3500, nil
//	ParseDecimalToCents("12.344") -> 1234, nil (rounds down)
//	ParseDecimalToCents("12.345") -> 1235, nil (half rounds up)
func ParseDecimalToCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Raw inputs are non-negative; signs are never entered
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take first two fractional digits; then half-up rounding on third
	var fracCents int64 = 0
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 {
				if fracPart[2] >= '5' {
					fracCents++
				}
			}
		}
	}
	return Cents(iv*100 + fracCents), nil
}
