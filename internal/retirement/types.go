// Package retirement computes the nest egg needed to retire in two locations
// and the savings schedule that reaches each target.
package retirement

// SpendingProfile holds monthly spending in the current location, in USD.
type SpendingProfile struct {
	Housing   float64 `json:"housing" yaml:"housing"`
	Groceries float64 `json:"groceries" yaml:"groceries"`
	Health    float64 `json:"health" yaml:"health"`
	Other     float64 `json:"other" yaml:"other"`
}

// MonthlyTotal sums every spending bucket.
func (s SpendingProfile) MonthlyTotal() float64 {
	return s.Housing + s.Groceries + s.Health + s.Other
}

// Assumptions are the financial inputs of a scenario. Rates are decimals
// (0.04 means 4%). Bounds are not enforced here.
type Assumptions struct {
	WithdrawalRate       float64 `json:"withdrawalRate" yaml:"withdrawalRate"`
	InflationRate        float64 `json:"inflationRate" yaml:"inflationRate"`
	ExpectedAnnualReturn float64 `json:"expectedAnnualReturn" yaml:"expectedAnnualReturn"`
	CurrentSavings       float64 `json:"currentSavings" yaml:"currentSavings"`
}

// Scenario is a single retirement comparison request.
type Scenario struct {
	CurrentPostalCode    string          `json:"currentPostalCode" yaml:"currentPostalCode"`
	TargetPostalCode     string          `json:"targetPostalCode" yaml:"targetPostalCode"`
	YearsUntilRetirement int             `json:"yearsUntilRetirement" yaml:"yearsUntilRetirement"`
	Spending             SpendingProfile `json:"spending" yaml:"spending"`
	Assumptions          Assumptions     `json:"assumptions" yaml:"assumptions"`
}

// SavingsSchedule is the contribution plan that reaches a nest egg by the
// retirement horizon.
type SavingsSchedule struct {
	MonthlyContribution         float64 `json:"monthlyContribution"`
	AnnualContribution          float64 `json:"annualContribution"`
	FutureValueOfCurrentSavings float64 `json:"futureValueOfCurrentSavings"`
	RemainingTarget             float64 `json:"remainingTarget"`
	TotalContributions          float64 `json:"totalContributions"`
	InvestmentGrowth            float64 `json:"investmentGrowth"`
}

// CategoryEstimate is the annual spending of one bucket, scaled by the
// matching component index.
type CategoryEstimate struct {
	Category string  `json:"category"`
	Annual   float64 `json:"annual"`
	Ratio    float64 `json:"ratio"`
}

// LocationResult holds the projection for one location.
type LocationResult struct {
	AnnualSpending         float64            `json:"annualSpending"`
	InflatedAnnualSpending float64            `json:"inflatedAnnualSpending"`
	NestEgg                float64            `json:"nestEgg"`
	Savings                *SavingsSchedule   `json:"savings,omitempty"`
	Categories             []CategoryEstimate `json:"categories,omitempty"`
}

// Comparison contrasts the target location against the current one.
type Comparison struct {
	NestEggDifference    float64 `json:"nestEggDifference"`
	PercentageDifference float64 `json:"percentageDifference"`
	IsCheaper            bool    `json:"isCheaper"`
}

// Result is the full bilateral comparison.
type Result struct {
	CostOfLivingRatio float64        `json:"costOfLivingRatio"`
	MonthlySpending   float64        `json:"monthlySpending"`
	Current           LocationResult `json:"current"`
	Target            LocationResult `json:"target"`
	Comparison        Comparison     `json:"comparison"`
}
