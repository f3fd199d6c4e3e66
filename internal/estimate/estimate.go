// Package estimate ties the cost-of-living resolver to the retirement
// calculator and produces reports with provenance warnings.
package estimate

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/col-retirement/internal/costofliving"
	"github.com/iwvelando/col-retirement/internal/retirement"
	"github.com/iwvelando/col-retirement/pkg/mathutil"
	"github.com/iwvelando/col-retirement/pkg/validation"
	"go.uber.org/zap"
)

// ErrDataNotReady is returned while the cost-of-living dataset has not been
// loaded. It does not mean the postal code is invalid.
var ErrDataNotReady = errors.New("cost-of-living data is not ready")

// Lookup resolves postal codes. *costofliving.Resolver satisfies it.
type Lookup interface {
	Resolve(raw string) costofliving.Resolution
}

// Report is a calculated comparison together with the resolutions it used.
type Report struct {
	ID          string                  `json:"id"`
	GeneratedAt time.Time               `json:"generatedAt"`
	Scenario    retirement.Scenario     `json:"scenario"`
	Current     costofliving.Resolution `json:"current"`
	Target      costofliving.Resolution `json:"target"`
	Result      retirement.Result       `json:"result"`
	Warnings    []string                `json:"warnings,omitempty"`
}

// Estimator produces reports.
type Estimator struct {
	logger *zap.Logger
	lookup Lookup
	now    func() time.Time
}

// NewEstimator creates an estimator over lookup.
func NewEstimator(logger *zap.Logger, lookup Lookup) *Estimator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Estimator{logger: logger, lookup: lookup, now: time.Now}
}

// Estimate resolves both postal codes of the scenario and runs the
// calculation.
func (e *Estimator) Estimate(scenario retirement.Scenario) (*Report, error) {
	current := e.lookup.Resolve(scenario.CurrentPostalCode)
	target := e.lookup.Resolve(scenario.TargetPostalCode)
	if !current.Found || !target.Found || current.Record == nil || target.Record == nil {
		return nil, ErrDataNotReady
	}

	scenario.CurrentPostalCode = current.PostalCode
	scenario.TargetPostalCode = target.PostalCode

	result := retirement.Calculate(scenario, *current.Record, *target.Record)

	var warnings []string
	warnings = append(warnings, validation.ValidateAssumptions(
		scenario.Assumptions.WithdrawalRate,
		scenario.Assumptions.InflationRate,
		scenario.Assumptions.ExpectedAnnualReturn,
	)...)
	warnings = append(warnings, provenanceWarning("current", current)...)
	warnings = append(warnings, provenanceWarning("target", target)...)
	warnings = append(warnings, nonFiniteWarnings(result)...)

	report := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: e.now().UTC(),
		Scenario:    scenario,
		Current:     current,
		Target:      target,
		Result:      result,
		Warnings:    warnings,
	}

	e.logger.Debug("estimate computed",
		zap.String("op", "estimate.Estimate"),
		zap.String("id", report.ID),
		zap.String("current", current.PostalCode),
		zap.String("target", target.PostalCode),
		zap.Float64("ratio", result.CostOfLivingRatio),
		zap.Int("warnings", len(warnings)),
	)

	return report, nil
}

func provenanceWarning(label string, res costofliving.Resolution) []string {
	if !res.IsFallback {
		return nil
	}
	region := res.Record.Region
	if region == "" {
		region = "unknown region"
	}

	switch res.FallbackTier {
	case costofliving.TierStateAverage:
		return []string{fmt.Sprintf("%s postal code %s not in dataset; using the %s average of known postal codes",
			label, res.PostalCode, region)}
	default:
		return []string{fmt.Sprintf("%s postal code %s not in dataset; using a rough estimate for %s",
			label, res.PostalCode, region)}
	}
}

type namedValue struct {
	name  string
	value *float64
}

func resultValues(result *retirement.Result) []namedValue {
	values := []namedValue{
		{"cost-of-living ratio", &result.CostOfLivingRatio},
		{"current annual spending", &result.Current.AnnualSpending},
		{"target annual spending", &result.Target.AnnualSpending},
		{"current inflated spending", &result.Current.InflatedAnnualSpending},
		{"target inflated spending", &result.Target.InflatedAnnualSpending},
		{"current nest egg", &result.Current.NestEgg},
		{"target nest egg", &result.Target.NestEgg},
		{"nest egg difference", &result.Comparison.NestEggDifference},
		{"percentage difference", &result.Comparison.PercentageDifference},
	}
	for _, loc := range []struct {
		label string
		res   *retirement.LocationResult
	}{{"current", &result.Current}, {"target", &result.Target}} {
		if s := loc.res.Savings; s != nil {
			values = append(values,
				namedValue{loc.label + " monthly contribution", &s.MonthlyContribution},
				namedValue{loc.label + " annual contribution", &s.AnnualContribution},
				namedValue{loc.label + " savings growth", &s.FutureValueOfCurrentSavings},
				namedValue{loc.label + " remaining target", &s.RemainingTarget},
				namedValue{loc.label + " total contributions", &s.TotalContributions},
				namedValue{loc.label + " investment growth", &s.InvestmentGrowth},
			)
		}
		for i := range loc.res.Categories {
			c := &loc.res.Categories[i]
			values = append(values,
				namedValue{loc.label + " " + c.Category + " spending", &c.Annual},
				namedValue{loc.label + " " + c.Category + " ratio", &c.Ratio},
			)
		}
	}
	return values
}

func nonFiniteWarnings(result retirement.Result) []string {
	var warnings []string
	for _, v := range resultValues(&result) {
		if !mathutil.IsFinite(*v.value) {
			warnings = append(warnings, fmt.Sprintf("%s is not a finite number; check rates, spending and indices", v.name))
		}
	}
	return warnings
}

// Masked returns a copy of the report with every non-finite figure replaced
// by zero so it can be encoded as JSON. The report's warnings already name
// the masked figures.
func (r *Report) Masked() *Report {
	masked := *r
	masked.Result = cloneResult(r.Result)
	for _, v := range resultValues(&masked.Result) {
		if !mathutil.IsFinite(*v.value) {
			*v.value = 0
		}
	}
	return &masked
}

func cloneResult(result retirement.Result) retirement.Result {
	clone := result
	clone.Current = cloneLocation(result.Current)
	clone.Target = cloneLocation(result.Target)
	return clone
}

func cloneLocation(loc retirement.LocationResult) retirement.LocationResult {
	clone := loc
	if loc.Savings != nil {
		savings := *loc.Savings
		clone.Savings = &savings
	}
	clone.Categories = append([]retirement.CategoryEstimate(nil), loc.Categories...)
	return clone
}
