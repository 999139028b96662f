// Package core provides the domain model and the pure aggregation functions
// of the finance tracker.
//
// This file contains amount parsing: user input arrives as free text and is
// normalized into an exact decimal before any mutation touches the store.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string into an exact positive amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Sign
// prefixes are rejected: amounts are magnitudes, the transaction type carries
// the direction. Returns ErrInvalidAmount for empty, malformed, zero or
// negative input.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("-5")    -> ErrInvalidAmount
//	ParseAmount("0")     -> ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return d, nil
}
