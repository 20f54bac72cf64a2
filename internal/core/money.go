// Package core holds the transaction domain model and money handling.
//
// This file contains the tolerant currency parse that every money-bearing
// field goes through. Uploaded spreadsheets carry currency symbols,
// thousands separators and the occasional mis-encoded glyph, so the parse
// degrades to zero instead of failing.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeMoney reads a currency-formatted value into a decimal, keeping
// only digits, the decimal point and the minus sign. Currency symbols,
// thousands commas, stray "?" glyphs (a known mis-encoding of the rupee
// sign) and whitespace are all dropped. It never fails: anything that
// still does not parse comes back as zero.
//
// Examples:
//
//	NormalizeMoney("₹ 5,000.00") -> 5000
//	NormalizeMoney("? 1,234.56") -> 1234.56
//	NormalizeMoney("abc")        -> 0
func NormalizeMoney(raw string) decimal.Decimal {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}
