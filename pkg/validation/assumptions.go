package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/iwvelando/col-retirement/pkg/constants"
)

// ValidateAssumptions compares the financial rates against their suggested
// bounds and returns a warning for each one outside them. Out-of-range rates
// are allowed; the warnings are advisory.
func ValidateAssumptions(withdrawalRate, inflationRate, annualReturn float64) []string {
	var warnings []string

	if w := rateWarning("withdrawal rate", withdrawalRate,
		constants.MinSuggestedWithdrawalRate, constants.MaxSuggestedWithdrawalRate); w != "" {
		warnings = append(warnings, w)
	}
	if w := rateWarning("inflation rate", inflationRate,
		constants.MinSuggestedInflationRate, constants.MaxSuggestedInflationRate); w != "" {
		warnings = append(warnings, w)
	}
	if w := rateWarning("expected annual return", annualReturn,
		constants.MinSuggestedAnnualReturn, constants.MaxSuggestedAnnualReturn); w != "" {
		warnings = append(warnings, w)
	}

	return warnings
}

func rateWarning(name string, rate, lo, hi float64) string {
	if rate >= lo && rate <= hi {
		return ""
	}
	return fmt.Sprintf("%s of %.2f%% is outside the suggested range of %.0f%% to %.0f%%",
		name, rate*constants.PercentageMultiplier,
		lo*constants.PercentageMultiplier, hi*constants.PercentageMultiplier)
}

// ValidateNonNegative returns an error if value is negative.
func ValidateNonNegative(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s must not be negative, got %.2f", name, value)
	}
	return nil
}

// ValidatePostalCodeInput requires raw input to contain at least one digit.
// Anything with a digit is normalized and resolved by the resolver.
func ValidatePostalCodeInput(name, raw string) error {
	if strings.IndexFunc(raw, unicode.IsDigit) < 0 {
		return fmt.Errorf("%s must contain a postal code, got %q", name, raw)
	}
	return nil
}
