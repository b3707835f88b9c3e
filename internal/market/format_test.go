package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		currency string
		value    float64
		want     string
	}{
		{"usd", 1234.5, "$1,234.50"},
		{"eur", 1234.5, "€1,234.50"},
		{"gbp", 1234.5, "£1,234.50"},
		{"USD", 1234.5, "$1,234.50"},
		{"jpy", 1234.5, "$1,234.50"}, // unknown currency defaults to $
		{"usd", 0.42, "$0.42"},
		{"usd", 1234567.891, "$1,234,567.89"},
		{"usd", -42.5, "$-42.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.value, tt.currency), "FormatPrice(%v, %q)", tt.value, tt.currency)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$895,123,456,789", FormatAmount(895123456789, "usd"))
	assert.Equal(t, "€12,345,678,901", FormatAmount(12345678901, "eur"))
	assert.Equal(t, "$123", FormatAmount(123.4, "usd"))
}

func TestFormatSupply(t *testing.T) {
	assert.Equal(t, "19,600,000.00", FormatSupply(19600000))
}

func TestFormatLargeNumber(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{1_500_000_000, "1.50B"},
		{2_500, "2.50K"},
		{42, "42.00"},
		{1e6, "1.00M"},
		{999_999, "1000.00K"},
		{0, "0.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLargeNumber(tt.value), "FormatLargeNumber(%v)", tt.value)
	}
}
