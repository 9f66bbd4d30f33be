// Package core holds the ledger's domain types and the pure functions over them.
//
// This file contains amount parsing. Amounts stay float64 because the
// persisted document stores them as JSON numbers; decimal parsing only
// decides what user input is acceptable.
package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts user input to a signed amount.
//
// It accepts an optional sign, a fractional part and an exponent:
//
//	ParseAmount("-50")    -> -50, nil
//	ParseAmount(" 12.5 ") -> 12.5, nil
//	ParseAmount("1e3")    -> 1000, nil
//	ParseAmount("abc")    -> 0, ErrInvalidAmount
//
// NaN, infinities and values too large for a float64 are rejected because
// they cannot be summed or stored as JSON.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, invalid(ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, invalid(ErrInvalidAmount)
	}
	v := d.InexactFloat64()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, invalid(ErrInvalidAmount)
	}
	return v, nil
}

// FormatAmount renders an amount with two decimals and a dollar sign, the
// way reports show money.
func FormatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
