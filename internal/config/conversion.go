// Package config defines conversion utilities for configuration objects.
package config

import (
	"github.com/iwvelando/col-retirement/internal/costofliving"
	"github.com/iwvelando/col-retirement/internal/retirement"
)

// ToScenario converts the scenario section into the calculator's input.
func (s ScenarioConfig) ToScenario() retirement.Scenario {
	return retirement.Scenario{
		CurrentPostalCode:    s.CurrentPostalCode,
		TargetPostalCode:     s.TargetPostalCode,
		YearsUntilRetirement: s.YearsUntilRetirement,
		Spending: retirement.SpendingProfile{
			Housing:   s.Spending.Housing,
			Groceries: s.Spending.Groceries,
			Health:    s.Spending.Health,
			Other:     s.Spending.Other,
		},
		Assumptions: retirement.Assumptions{
			WithdrawalRate:       s.Assumptions.WithdrawalRate,
			InflationRate:        s.Assumptions.InflationRate,
			ExpectedAnnualReturn: s.Assumptions.ExpectedAnnualReturn,
			CurrentSavings:       s.Assumptions.CurrentSavings,
		},
	}
}

// FromScenario converts a calculator scenario back into its configuration form.
func FromScenario(scenario retirement.Scenario) ScenarioConfig {
	return ScenarioConfig{
		CurrentPostalCode:    scenario.CurrentPostalCode,
		TargetPostalCode:     scenario.TargetPostalCode,
		YearsUntilRetirement: scenario.YearsUntilRetirement,
		Spending: SpendingConfig{
			Housing:   scenario.Spending.Housing,
			Groceries: scenario.Spending.Groceries,
			Health:    scenario.Spending.Health,
			Other:     scenario.Spending.Other,
		},
		Assumptions: AssumptionsConfig{
			WithdrawalRate:       scenario.Assumptions.WithdrawalRate,
			InflationRate:        scenario.Assumptions.InflationRate,
			ExpectedAnnualReturn: scenario.Assumptions.ExpectedAnnualReturn,
			CurrentSavings:       scenario.Assumptions.CurrentSavings,
		},
	}
}

// Source converts the dataset section into a loader source.
func (d DatasetConfig) Source() costofliving.Source {
	return costofliving.Source{
		Path:    d.Path,
		URL:     d.URL,
		Timeout: d.Timeout,
	}
}
