package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var currencySymbols = []string{"£", "$", "€"}

// ParseCurrencyAmount parses a currency-formatted string such as "£1,200.50"
// into a float. Currency symbols, thousands separators and surrounding
// whitespace are stripped before parsing.
func ParseCurrencyAmount(amountStr string) (float64, error) {
	cleaned := strings.TrimSpace(amountStr)
	for _, symbol := range currencySymbols {
		cleaned = strings.ReplaceAll(cleaned, symbol, "")
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}
	return amount, nil
}

// RoundCurrency rounds to two decimal places, half away from zero.
func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}

func FormatCurrency(amount float64) string {
	return fmt.Sprintf("£%.2f", RoundCurrency(amount))
}
