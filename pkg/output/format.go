// Package output provides utilities for formatting and displaying comparison reports.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/iwvelando/col-retirement/internal/costofliving"
	"github.com/iwvelando/col-retirement/internal/estimate"
	"github.com/iwvelando/col-retirement/internal/retirement"
	"github.com/iwvelando/col-retirement/pkg/format"
	"github.com/iwvelando/col-retirement/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable rather than machine-readable comparison.
func PrettyFormat(w io.Writer, report *estimate.Report) {
	p := message.NewPrinter(language.English)
	res := report.Result

	fmt.Fprintf(w, "--- Retirement comparison %s -> %s ---\n", report.Current.PostalCode, report.Target.PostalCode)
	fmt.Fprintf(w, "Current location | %s\n", describeResolution(report.Current))
	fmt.Fprintf(w, "Target location  | %s\n", describeResolution(report.Target))
	fmt.Fprintf(w, "Cost ratio       | %s\n", ratio(res.CostOfLivingRatio))
	fmt.Fprintf(w, "Monthly spending | %s\n", money(p, res.MonthlySpending))
	fmt.Fprintf(w, "Horizon          | %d years\n\n", report.Scenario.YearsUntilRetirement)

	fmt.Fprintf(w, "Metric                  | Current           | Target\n")
	fmt.Fprintf(w, "______                  | _______           | ______\n")
	for _, row := range rows(res) {
		fmt.Fprintf(w, "%-23s | %-17s | %s\n", row.label, money(p, row.current), money(p, row.target))
	}

	fmt.Fprintf(w, "\nNest egg difference     | %s (%s)\n",
		format.Currency(res.Comparison.NestEggDifference), format.Percent(res.Comparison.PercentageDifference))
	if res.Comparison.IsCheaper {
		fmt.Fprintf(w, "Target location is cheaper to retire in.\n")
	} else {
		fmt.Fprintf(w, "Target location is not cheaper to retire in.\n")
	}

	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
}

// CsvFormat writes the comparison in comma-separated value format.
func CsvFormat(w io.Writer, report *estimate.Report) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = false

	records := [][]string{{"metric", "current (" + report.Current.PostalCode + ")", "target (" + report.Target.PostalCode + ")"}}
	records = append(records, []string{"price parity", format.Index(indexOf(report.Current)), format.Index(indexOf(report.Target))})
	records = append(records, []string{"fallback tier", tierOf(report.Current), tierOf(report.Target)})
	for _, row := range rows(report.Result) {
		records = append(records, []string{row.label, format.NumericCurrency(row.current), format.NumericCurrency(row.target)})
	}
	records = append(records,
		[]string{"nest egg difference", "", format.NumericCurrency(report.Result.Comparison.NestEggDifference)},
		[]string{"percentage difference", "", format.Percent(report.Result.Comparison.PercentageDifference)},
		[]string{"target is cheaper", "", fmt.Sprintf("%t", report.Result.Comparison.IsCheaper)},
	)

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// CsvString returns the CSV rendering of the report.
func CsvString(report *estimate.Report) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, report); err != nil {
		return ""
	}
	return buf.String()
}

// JSONFormat writes the report as indented JSON. Non-finite figures are
// masked to zero; the report's warnings name them.
func JSONFormat(w io.Writer, report *estimate.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report.Masked()); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

type row struct {
	label   string
	current float64
	target  float64
}

func rows(res retirement.Result) []row {
	out := []row{
		{"annual spending", res.Current.AnnualSpending, res.Target.AnnualSpending},
		{"inflated spending", res.Current.InflatedAnnualSpending, res.Target.InflatedAnnualSpending},
		{"nest egg", res.Current.NestEgg, res.Target.NestEgg},
	}
	if res.Current.Savings != nil && res.Target.Savings != nil {
		cur, tgt := res.Current.Savings, res.Target.Savings
		out = append(out,
			row{"monthly contribution", cur.MonthlyContribution, tgt.MonthlyContribution},
			row{"savings at retirement", cur.FutureValueOfCurrentSavings, tgt.FutureValueOfCurrentSavings},
			row{"total contributions", cur.TotalContributions, tgt.TotalContributions},
			row{"investment growth", cur.InvestmentGrowth, tgt.InvestmentGrowth},
		)
	}
	return out
}

func money(p *message.Printer, amount float64) string {
	if !mathutil.IsFinite(amount) {
		return format.NotAvailable
	}
	if amount < 0 {
		return p.Sprintf("-$%.2f", -amount)
	}
	return p.Sprintf("$%.2f", amount)
}

func ratio(value float64) string {
	if !mathutil.IsFinite(value) {
		return format.NotAvailable
	}
	return fmt.Sprintf("%.4f", value)
}

func describeResolution(res costofliving.Resolution) string {
	if res.Record == nil {
		return res.PostalCode + " (no data)"
	}
	parts := []string{fmt.Sprintf("%s %s, price parity %s", res.PostalCode, res.Record.Region, format.Index(res.Record.AllItems))}
	if res.IsFallback {
		parts = append(parts, "estimated from "+string(res.FallbackTier))
	}
	return strings.Join(parts, "; ")
}

func indexOf(res costofliving.Resolution) float64 {
	if res.Record == nil {
		return 0
	}
	return res.Record.AllItems
}

func tierOf(res costofliving.Resolution) string {
	if !res.IsFallback {
		return "direct"
	}
	return string(res.FallbackTier)
}
