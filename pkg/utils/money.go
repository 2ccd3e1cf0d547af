package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money parses a monetary string into a decimal. The marketplace mixes '.'
// and ',' as decimal separators and occasionally pads with spaces; empty or
// unparseable input yields zero, never an error.
func Money(value string) decimal.Decimal {
	normalized := strings.ReplaceAll(value, " ", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero
	}

	return d
}

// Round2 rounds to two decimal places and converts to float64. Used only at
// output boundaries; intermediate money math stays in decimals.
func Round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
