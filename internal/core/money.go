// Package core holds the domain model and the pure derivations the pages
// render from: filtering, partitioning, and display formatting.
//
// This file contains amount parsing and currency formatting. Amounts are
// decimals on the wire; display is whole-rupee with Indian digit grouping.
package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var inr = message.NewPrinter(language.MustParse("en-IN"))

// ParseAmount converts a user-entered amount to a positive decimal.
//
// It accepts both dot (12.34) and comma (12,34) separators. Signs, empty
// strings, zero, and negative values are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatINR formats an amount as a rupee string with no fractional digits
// and en-IN grouping, e.g. 150000 -> "₹1,50,000". Deterministic: the same
// amount always yields the same string.
func FormatINR(amount decimal.Decimal) string {
	units := amount.Round(0).IntPart()
	if units < 0 {
		return "-₹" + inr.Sprintf("%d", -units)
	}
	return "₹" + inr.Sprintf("%d", units)
}

// SignedINR prefixes the formatted amount with + or - depending on the
// entry type, the way the transactions table displays it.
func SignedINR(t EntryType, amount decimal.Decimal) string {
	if t == Income {
		return "+" + FormatINR(amount)
	}
	return "-" + FormatINR(amount)
}

// FormatPercent renders a backend-computed percentage to one decimal place.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}
