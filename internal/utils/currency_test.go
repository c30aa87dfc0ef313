package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrencyAmount(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"£200", 200},
		{"£200.00", 200},
		{"$1,250.75", 1250.75},
		{"€99.99", 99.99},
		{"  £ 45.50  ", 45.50},
		{"1,000,000", 1000000},
		{"0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCurrencyAmount(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseCurrencyAmountInvalid(t *testing.T) {
	for _, input := range []string{"", "call us", "£", "12.3.4"} {
		_, err := ParseCurrencyAmount(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		input float64
		want  float64
	}{
		{10.004, 10.00},
		{10.006, 10.01},
		{9.999, 10.00},
		{0.005, 0.01},
		{190.0, 190.0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, RoundCurrency(tt.input), 1e-9)
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "£190.00", FormatCurrency(190))
	assert.Equal(t, "£10.00", FormatCurrency(10.004))
}
