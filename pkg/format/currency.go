// Package format renders amounts for display, masking values that are not
// finite.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/col-retirement/pkg/mathutil"
)

// NotAvailable is shown in place of NaN and infinite amounts.
const NotAvailable = "n/a"

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return NotAvailable
	}
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return NotAvailable
	}
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	formatted := formatPositiveCurrency(math.Abs(amount))
	return sign + formatted
}

// Percent renders a percentage with one decimal and an explicit sign (e.g., "+12.5%").
func Percent(value float64) string {
	if !mathutil.IsFinite(value) {
		return NotAvailable
	}
	return fmt.Sprintf("%+.1f%%", value)
}

// Index renders a price parity index with two decimals.
func Index(value float64) string {
	if !mathutil.IsFinite(value) {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f", value)
}

func formatPositiveCurrency(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
