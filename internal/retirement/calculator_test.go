package retirement

import (
	"math"
	"testing"

	"github.com/iwvelando/col-retirement/internal/costofliving"
	"github.com/iwvelando/col-retirement/pkg/mathutil"
)

func record(all float64) costofliving.Record {
	return costofliving.Record{AllItems: all, Housing: all, Goods: all, OtherServices: all, Region: "XX"}
}

func referenceScenario() Scenario {
	return Scenario{
		CurrentPostalCode:    "10001",
		TargetPostalCode:     "78701",
		YearsUntilRetirement: 10,
		Spending: SpendingProfile{
			Housing:   2000,
			Groceries: 600,
			Health:    400,
			Other:     800,
		},
		Assumptions: Assumptions{
			WithdrawalRate:       0.04,
			InflationRate:        0.025,
			ExpectedAnnualReturn: 0.07,
		},
	}
}

func TestCalculateReferenceScenario(t *testing.T) {
	result := Calculate(referenceScenario(), record(100), record(150))

	checks := []struct {
		name      string
		got       float64
		expected  float64
		tolerance float64
	}{
		{"MonthlySpending", result.MonthlySpending, 3800, 1e-9},
		{"CostOfLivingRatio", result.CostOfLivingRatio, 1.5, 1e-12},
		{"Current.AnnualSpending", result.Current.AnnualSpending, 45600, 1e-9},
		{"Target.AnnualSpending", result.Target.AnnualSpending, 68400, 1e-9},
		{"Current.InflatedAnnualSpending", result.Current.InflatedAnnualSpending, 58371.86, 0.01},
		{"Target.InflatedAnnualSpending", result.Target.InflatedAnnualSpending, 87557.78, 0.01},
		{"Current.NestEgg", result.Current.NestEgg, 1459296.38, 0.01},
		{"Target.NestEgg", result.Target.NestEgg, 2188944.57, 0.01},
		{"NestEggDifference", result.Comparison.NestEggDifference, 729648.19, 0.01},
		{"PercentageDifference", result.Comparison.PercentageDifference, 50, 1e-9},
	}

	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			if !mathutil.WithinTolerance(c.got, c.expected, c.tolerance) {
				t.Errorf("%s = %.6f, expected %.6f", c.name, c.got, c.expected)
			}
		})
	}

	if result.Comparison.IsCheaper {
		t.Error("expected IsCheaper=false when the target is more expensive")
	}
}

func TestCalculateZeroYearsIsIdentity(t *testing.T) {
	scenario := referenceScenario()
	scenario.YearsUntilRetirement = 0

	result := Calculate(scenario, record(100), record(80))

	if result.Current.InflatedAnnualSpending != result.Current.AnnualSpending {
		t.Errorf("current inflated = %v, expected %v", result.Current.InflatedAnnualSpending, result.Current.AnnualSpending)
	}
	if result.Target.InflatedAnnualSpending != result.Target.AnnualSpending {
		t.Errorf("target inflated = %v, expected %v", result.Target.InflatedAnnualSpending, result.Target.AnnualSpending)
	}
	if result.Current.Savings.MonthlyContribution != 0 || result.Target.Savings.MonthlyContribution != 0 {
		t.Error("expected no monthly contribution with a zero horizon")
	}
	if !result.Comparison.IsCheaper {
		t.Error("expected IsCheaper=true when the target index is lower")
	}
}

func TestCalculateIdenticalRecords(t *testing.T) {
	rec := costofliving.Record{AllItems: 112.4, Housing: 130, Goods: 103, OtherServices: 109, Region: "MD"}
	result := Calculate(referenceScenario(), rec, rec)

	if result.CostOfLivingRatio != 1.0 {
		t.Errorf("CostOfLivingRatio = %v, expected 1.0", result.CostOfLivingRatio)
	}
	if result.Comparison.NestEggDifference != 0 {
		t.Errorf("NestEggDifference = %v, expected 0", result.Comparison.NestEggDifference)
	}
	if result.Comparison.PercentageDifference != 0 {
		t.Errorf("PercentageDifference = %v, expected 0", result.Comparison.PercentageDifference)
	}
	if result.Comparison.IsCheaper {
		t.Error("expected IsCheaper=false for identical records")
	}
}

func TestCalculateZeroSpending(t *testing.T) {
	scenario := referenceScenario()
	scenario.Spending = SpendingProfile{}

	result := Calculate(scenario, record(100), record(120))
	if result.Current.NestEgg != 0 || result.Target.NestEgg != 0 {
		t.Errorf("expected zero nest eggs, got %v and %v", result.Current.NestEgg, result.Target.NestEgg)
	}
	if !math.IsNaN(result.Comparison.PercentageDifference) {
		t.Errorf("expected NaN percentage for a zero current nest egg, got %v", result.Comparison.PercentageDifference)
	}
}

func TestCalculateDegenerateInputsPropagate(t *testing.T) {
	scenario := referenceScenario()
	scenario.Assumptions.WithdrawalRate = 0

	result := Calculate(scenario, record(100), record(120))
	if !math.IsInf(result.Current.NestEgg, 1) {
		t.Errorf("expected +Inf nest egg for a zero withdrawal rate, got %v", result.Current.NestEgg)
	}

	result = Calculate(referenceScenario(), record(0), record(120))
	if !math.IsInf(result.CostOfLivingRatio, 1) {
		t.Errorf("expected +Inf ratio for a zero current index, got %v", result.CostOfLivingRatio)
	}
}

func TestCalculateCategoryBreakdown(t *testing.T) {
	current := costofliving.Record{AllItems: 100, Housing: 100, Goods: 100, OtherServices: 100}
	target := costofliving.Record{AllItems: 120, Housing: 150, Goods: 110, OtherServices: 105}

	result := Calculate(referenceScenario(), current, target)
	if len(result.Target.Categories) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(result.Target.Categories))
	}

	expected := map[string]float64{
		CategoryHousing:   2000 * 12 * 1.5,
		CategoryGroceries: 600 * 12 * 1.1,
		CategoryHealth:    400 * 12 * 1.05,
		CategoryOther:     800 * 12 * 1.05,
	}
	for _, category := range result.Target.Categories {
		if !mathutil.WithinTolerance(category.Annual, expected[category.Category], 1e-6) {
			t.Errorf("%s annual = %v, expected %v", category.Category, category.Annual, expected[category.Category])
		}
	}
	for _, category := range result.Current.Categories {
		if category.Ratio != 1 {
			t.Errorf("current %s ratio = %v, expected 1", category.Category, category.Ratio)
		}
	}
}

func TestMonthlyContribution(t *testing.T) {
	tests := []struct {
		name         string
		remaining    float64
		annualReturn float64
		years        int
		expected     float64
	}{
		{"Zero return is straight-line", 1200000, 0, 10, 10000},
		{"Zero horizon needs nothing", 500000, 0.07, 0, 0},
		{"Zero horizon with zero return", 500000, 0, 0, 0},
		{"Nothing remaining", 0, 0.07, 10, 0},
		{"Compounding at 7%", 1459296.3803838466, 0.07, 10, 8431.106126655297},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyContribution(tt.remaining, tt.annualReturn, tt.years)
			if !mathutil.WithinTolerance(got, tt.expected, 1e-6) {
				t.Errorf("MonthlyContribution(%v, %v, %d) = %v, expected %v",
					tt.remaining, tt.annualReturn, tt.years, got, tt.expected)
			}
		})
	}
}

func TestScheduleZeroReturnNoSavings(t *testing.T) {
	nestEgg := 1459296.38
	schedule := Schedule(nestEgg, 0, 0, 10)

	if !mathutil.WithinTolerance(schedule.MonthlyContribution, nestEgg/120, 1e-9) {
		t.Errorf("MonthlyContribution = %v, expected %v", schedule.MonthlyContribution, nestEgg/120)
	}
	if !mathutil.WithinTolerance(schedule.TotalContributions, nestEgg, 1e-6) {
		t.Errorf("TotalContributions = %v, expected %v", schedule.TotalContributions, nestEgg)
	}
	if !mathutil.WithinTolerance(schedule.InvestmentGrowth, 0, 1e-6) {
		t.Errorf("InvestmentGrowth = %v, expected 0", schedule.InvestmentGrowth)
	}
}

func TestScheduleWithCurrentSavings(t *testing.T) {
	schedule := Schedule(1000000, 100000, 0.05, 20)

	expectedFuture := 100000 * math.Pow(1.05, 20)
	if !mathutil.WithinTolerance(schedule.FutureValueOfCurrentSavings, expectedFuture, 1e-6) {
		t.Errorf("FutureValueOfCurrentSavings = %v, expected %v", schedule.FutureValueOfCurrentSavings, expectedFuture)
	}
	if !mathutil.WithinTolerance(schedule.RemainingTarget, 1000000-expectedFuture, 1e-6) {
		t.Errorf("RemainingTarget = %v, expected %v", schedule.RemainingTarget, 1000000-expectedFuture)
	}

	expectedTotal := schedule.MonthlyContribution*12*20 + 100000
	if !mathutil.WithinTolerance(schedule.TotalContributions, expectedTotal, 1e-6) {
		t.Errorf("TotalContributions = %v, expected %v", schedule.TotalContributions, expectedTotal)
	}
	if !mathutil.WithinTolerance(schedule.InvestmentGrowth, 1000000-expectedTotal, 1e-6) {
		t.Errorf("InvestmentGrowth = %v, expected %v", schedule.InvestmentGrowth, 1000000-expectedTotal)
	}
	if schedule.AnnualContribution != schedule.MonthlyContribution*12 {
		t.Errorf("AnnualContribution = %v, expected %v", schedule.AnnualContribution, schedule.MonthlyContribution*12)
	}
}

func TestScheduleSavingsAlreadyExceedTarget(t *testing.T) {
	schedule := Schedule(100000, 500000, 0.05, 10)

	if schedule.RemainingTarget != 0 {
		t.Errorf("RemainingTarget = %v, expected 0", schedule.RemainingTarget)
	}
	if schedule.MonthlyContribution != 0 {
		t.Errorf("MonthlyContribution = %v, expected 0", schedule.MonthlyContribution)
	}
	if schedule.InvestmentGrowth != 0 {
		t.Errorf("InvestmentGrowth = %v, expected 0", schedule.InvestmentGrowth)
	}
}

func TestSpendingProfileMonthlyTotal(t *testing.T) {
	profile := SpendingProfile{Housing: 2000, Groceries: 600, Health: 400, Other: 800}
	if got := profile.MonthlyTotal(); got != 3800 {
		t.Errorf("MonthlyTotal() = %v, expected 3800", got)
	}
}
