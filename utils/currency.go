package utils

import (
	"fmt"
	"strings"
)

// FormatCurrency formats an amount with thousand separators and two
// decimals, e.g. 23250 -> "23,250.00". Used on bills and receipts.
func FormatCurrency(amount float64) string {
	formatted := fmt.Sprintf("%.2f", amount)

	negative := strings.HasPrefix(formatted, "-")
	if negative {
		formatted = formatted[1:]
	}

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	result := strings.Join(groups, ",") + "." + decimalPart
	if negative {
		return "-" + result
	}
	return result
}
