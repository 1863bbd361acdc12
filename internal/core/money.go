// Package core holds the budget domain types and money handling.
//
// Amounts are exact base-10 decimals end to end; binary floating point is
// never used for monetary values.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a monetary amount from user or storage text.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// ok is false for blank or unparsable input; the prompt layer treats the
// two identically, so no distinct format error is reported.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, true
//	ParseAmount("12,34")  -> 12.34, true
//	ParseAmount(" 45.99") -> 45.99, true
//	ParseAmount("abc")    -> 0, false
//	ParseAmount("")       -> 0, false
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// Sum adds transaction amounts with exact decimal semantics. The result is
// independent of order.
func Sum[T Transaction](items []T) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TransactionAmount())
	}
	return total
}
