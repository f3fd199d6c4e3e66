// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/col-retirement/internal/costofliving"
	"github.com/iwvelando/col-retirement/internal/retirement"
)

// FindCategory finds a category by name in a location's breakdown.
// Returns a pointer to the estimate if found, nil otherwise.
func FindCategory(categories []retirement.CategoryEstimate, name string) *retirement.CategoryEstimate {
	for i := range categories {
		if categories[i].Category == name {
			return &categories[i]
		}
	}
	return nil
}

// ReferenceScenario is the documented round-trip scenario: $3,800 a month,
// ten years out, 4% withdrawal, 2.5% inflation and 7% returns.
func ReferenceScenario() retirement.Scenario {
	return retirement.Scenario{
		CurrentPostalCode:    "10001",
		TargetPostalCode:     "78701",
		YearsUntilRetirement: 10,
		Spending: retirement.SpendingProfile{
			Housing:   2000,
			Groceries: 600,
			Health:    400,
			Other:     800,
		},
		Assumptions: retirement.Assumptions{
			WithdrawalRate:       0.04,
			InflationRate:        0.025,
			ExpectedAnnualReturn: 0.07,
		},
	}
}

// ReferenceTable pairs the reference scenario's postal codes with flat
// indices of 100 and 150.
func ReferenceTable() costofliving.Table {
	return costofliving.Table{
		"10001": {AllItems: 100, Housing: 100, Goods: 100, OtherServices: 100, Region: "NY"},
		"78701": {AllItems: 150, Housing: 150, Goods: 150, OtherServices: 150, Region: "TX"},
	}
}
