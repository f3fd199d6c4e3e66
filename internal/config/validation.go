package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/col-retirement/internal/retirement"
	"github.com/iwvelando/col-retirement/pkg/mathutil"
	"github.com/iwvelando/col-retirement/pkg/validation"
	"go.uber.org/multierr"
)

// ValidateScenario returns every hard error in scenario combined into one.
// Rate bounds are advisory and reported by ValidateConfiguration instead.
func ValidateScenario(scenario retirement.Scenario) error {
	var err error

	err = multierr.Append(err, validation.ValidatePostalCodeInput("currentPostalCode", scenario.CurrentPostalCode))
	err = multierr.Append(err, validation.ValidatePostalCodeInput("targetPostalCode", scenario.TargetPostalCode))
	if scenario.YearsUntilRetirement < 0 {
		err = multierr.Append(err, fmt.Errorf("yearsUntilRetirement must not be negative, got %d", scenario.YearsUntilRetirement))
	}

	err = multierr.Append(err, validation.ValidateNonNegative("spending.housing", scenario.Spending.Housing))
	err = multierr.Append(err, validation.ValidateNonNegative("spending.groceries", scenario.Spending.Groceries))
	err = multierr.Append(err, validation.ValidateNonNegative("spending.health", scenario.Spending.Health))
	err = multierr.Append(err, validation.ValidateNonNegative("spending.other", scenario.Spending.Other))
	err = multierr.Append(err, validation.ValidateNonNegative("assumptions.currentSavings", scenario.Assumptions.CurrentSavings))

	return err
}

// Validate checks the whole configuration for hard errors.
func (c *Configuration) Validate() error {
	err := ValidateScenario(c.Scenario.ToScenario())

	if strings.TrimSpace(c.Dataset.Path) == "" && strings.TrimSpace(c.Dataset.URL) == "" {
		err = multierr.Append(err, fmt.Errorf("dataset.path or dataset.url is required"))
	}
	if c.Dataset.Timeout < 0 {
		err = multierr.Append(err, fmt.Errorf("dataset.timeout must not be negative, got %s", c.Dataset.Timeout))
	}
	if c.Output.Format != "" {
		err = multierr.Append(err, validation.ValidateOutputFormat(c.Output.Format))
	}

	return err
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	a := c.Scenario.Assumptions
	warnings := validation.ValidateAssumptions(a.WithdrawalRate, a.InflationRate, a.ExpectedAnnualReturn)

	if mathutil.IsZero(c.Scenario.ToScenario().Spending.MonthlyTotal()) {
		warnings = append(warnings, "all spending categories are zero; the comparison will not be meaningful")
	}

	return warnings
}
