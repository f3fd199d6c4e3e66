package retirement

import (
	"math"

	"github.com/iwvelando/col-retirement/internal/costofliving"
	"github.com/iwvelando/col-retirement/pkg/constants"
	"github.com/iwvelando/col-retirement/pkg/mathutil"
)

// Spending category names used in the per-category breakdown.
const (
	CategoryHousing   = "housing"
	CategoryGroceries = "groceries"
	CategoryHealth    = "health"
	CategoryOther     = "other"
)

// Calculate compares the nest egg required in the current and target
// locations. It has no side effects and never panics: zero or negative
// indices and rates propagate as Inf or NaN for the caller to mask.
func Calculate(scenario Scenario, current, target costofliving.Record) Result {
	ratio := target.AllItems / current.AllItems

	monthly := scenario.Spending.MonthlyTotal()
	currentAnnual := monthly * constants.MonthsPerYear
	targetAnnual := currentAnnual * ratio

	years := scenario.YearsUntilRetirement
	assumptions := scenario.Assumptions

	currentLocation := project(currentAnnual, years, assumptions)
	currentLocation.Categories = categoryBreakdown(scenario.Spending, current, current)

	targetLocation := project(targetAnnual, years, assumptions)
	targetLocation.Categories = categoryBreakdown(scenario.Spending, current, target)

	return Result{
		CostOfLivingRatio: ratio,
		MonthlySpending:   monthly,
		Current:           currentLocation,
		Target:            targetLocation,
		Comparison:        Compare(currentLocation.NestEgg, targetLocation.NestEgg),
	}
}

func project(annual float64, years int, assumptions Assumptions) LocationResult {
	inflated := Inflate(annual, assumptions.InflationRate, years)
	nestEgg := NestEgg(inflated, assumptions.WithdrawalRate)
	schedule := Schedule(nestEgg, assumptions.CurrentSavings, assumptions.ExpectedAnnualReturn, years)

	return LocationResult{
		AnnualSpending:         annual,
		InflatedAnnualSpending: inflated,
		NestEgg:                nestEgg,
		Savings:                &schedule,
	}
}

// Inflate grows an annual amount by a yearly inflation rate over years.
// Zero years returns the amount unchanged.
func Inflate(annual, inflationRate float64, years int) float64 {
	if years == 0 {
		return annual
	}
	return annual * math.Pow(1+inflationRate, float64(years))
}

// NestEgg returns the lump sum whose withdrawal at withdrawalRate covers
// annualSpending indefinitely.
func NestEgg(annualSpending, withdrawalRate float64) float64 {
	return annualSpending / withdrawalRate
}

// Compare builds the comparison block for two nest eggs.
func Compare(currentNestEgg, targetNestEgg float64) Comparison {
	diff := targetNestEgg - currentNestEgg
	return Comparison{
		NestEggDifference:    diff,
		PercentageDifference: diff / currentNestEgg * constants.PercentageMultiplier,
		IsCheaper:            targetNestEgg < currentNestEgg,
	}
}

// MonthlyContribution returns the level monthly deposit that grows to
// remaining over years at annualReturn, compounded monthly. A zero horizon
// needs no further saving.
func MonthlyContribution(remaining, annualReturn float64, years int) float64 {
	if years <= 0 {
		return 0
	}

	months := float64(years * constants.MonthsPerYear)
	monthlyReturn := annualReturn / constants.MonthsPerYear
	if monthlyReturn > 0 {
		return remaining * monthlyReturn / (math.Pow(1+monthlyReturn, months) - 1)
	}
	return remaining / months
}

// Schedule computes the savings plan that reaches nestEgg given the savings
// already on hand.
func Schedule(nestEgg, currentSavings, annualReturn float64, years int) SavingsSchedule {
	futureSavings := currentSavings * math.Pow(1+annualReturn, float64(years))
	remaining := mathutil.Max(0, nestEgg-futureSavings)
	monthly := MonthlyContribution(remaining, annualReturn, years)
	total := monthly*constants.MonthsPerYear*float64(years) + currentSavings

	return SavingsSchedule{
		MonthlyContribution:         monthly,
		AnnualContribution:          monthly * constants.MonthsPerYear,
		FutureValueOfCurrentSavings: futureSavings,
		RemainingTarget:             remaining,
		TotalContributions:          total,
		InvestmentGrowth:            mathutil.Max(0, nestEgg-total),
	}
}

// categoryBreakdown scales each spending bucket by the component index that
// best matches it. It is informational only.
func categoryBreakdown(spending SpendingProfile, current, location costofliving.Record) []CategoryEstimate {
	housingRatio := location.Housing / current.Housing
	goodsRatio := location.Goods / current.Goods
	otherRatio := location.OtherServices / current.OtherServices

	return []CategoryEstimate{
		{Category: CategoryHousing, Annual: spending.Housing * constants.MonthsPerYear * housingRatio, Ratio: housingRatio},
		{Category: CategoryGroceries, Annual: spending.Groceries * constants.MonthsPerYear * goodsRatio, Ratio: goodsRatio},
		{Category: CategoryHealth, Annual: spending.Health * constants.MonthsPerYear * otherRatio, Ratio: otherRatio},
		{Category: CategoryOther, Annual: spending.Other * constants.MonthsPerYear * otherRatio, Ratio: otherRatio},
	}
}
