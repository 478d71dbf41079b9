// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"JPY": "¥",
}

// FormatAmount renders a two-decimal amount with thousands separators and
// its currency, e.g. "€1,234.56" or "1,234.56 SEK" for codes without a
// common symbol.
func FormatAmount(d decimal.Decimal, currency string) string {
	s := groupAmount(d)
	if sym, ok := currencySymbols[strings.ToUpper(currency)]; ok {
		if strings.HasPrefix(s, "-") {
			return "-" + sym + s[1:]
		}
		return sym + s
	}
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// FormatSigned is FormatAmount with an explicit plus on non-negative
// values, for net columns.
func FormatSigned(d decimal.Decimal, currency string) string {
	if d.Sign() >= 0 {
		return "+" + FormatAmount(d, currency)
	}
	return FormatAmount(d, currency)
}

func groupAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	out := groupThousands(intPart) + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return groupThousands(strconv.FormatInt(n, 10))
}

// FormatPercent renders an already-scaled percentage with one decimal,
// e.g. 42.31 -> "42.3%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatMonth renders "2024-01" as "Jan 2024". Input that is not a month
// passes through unchanged.
func FormatMonth(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("Jan 2006")
}
