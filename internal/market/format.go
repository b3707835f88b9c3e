package market

import (
	"fmt"
	"strconv"
	"strings"
)

var currencySymbols = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
}

// CurrencySymbol maps a currency code to its display symbol, defaulting to $.
func CurrencySymbol(currency string) string {
	if symbol, ok := currencySymbols[strings.ToLower(currency)]; ok {
		return symbol
	}
	return "$"
}

// FormatPrice renders a monetary value as {symbol}{value:,.2f}.
func FormatPrice(value float64, currency string) string {
	return CurrencySymbol(currency) + groupThousands(value, 2)
}

// FormatAmount renders large aggregates (market cap, volume) as
// {symbol}{value:,.0f}.
func FormatAmount(value float64, currency string) string {
	return CurrencySymbol(currency) + groupThousands(value, 0)
}

// FormatSupply renders circulating supply unprefixed with two decimals.
func FormatSupply(value float64) string {
	return groupThousands(value, 2)
}

// FormatLargeNumber abbreviates with K/M/B suffixes: 1.5e9 -> "1.50B",
// 2500 -> "2.50K", 42 -> "42.00".
func FormatLargeNumber(value float64) string {
	switch {
	case value >= 1e9:
		return fmt.Sprintf("%.2fB", value/1e9)
	case value >= 1e6:
		return fmt.Sprintf("%.2fM", value/1e6)
	case value >= 1e3:
		return fmt.Sprintf("%.2fK", value/1e3)
	default:
		return fmt.Sprintf("%.2f", value)
	}
}

// groupThousands formats value with the given decimals and a comma thousands
// separator.
func groupThousands(value float64, decimals int) string {
	s := strconv.FormatFloat(value, 'f', decimals, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	if len(intPart) <= 3 {
		return sign + intPart + fracPart
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}

	return sign + b.String() + fracPart
}
