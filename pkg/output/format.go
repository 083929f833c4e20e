// Package output provides utilities for formatting and displaying
// analysis results on the command line.
package output

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iwvelando/vehicle-affordability/internal/forecast"
	"github.com/iwvelando/vehicle-affordability/internal/recommend"
	"github.com/iwvelando/vehicle-affordability/internal/salary"
)

// PrettyRecommendations outputs a human-readable ranking table.
func PrettyRecommendations(result *recommend.Result) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Top recommendations (%d options considered) ---\n", result.TotalOptions)
	fmt.Printf("Rank | Vehicle                        | Price     | Monthly  | Score | Rating\n")
	fmt.Printf("____ | ______________________________ | _________ | ________ | _____ | ______\n")
	for i, entry := range result.Recommendations {
		vehicle := fmt.Sprintf("%s %s", entry.Model, entry.Trim)
		_, _ = p.Printf("%4d | %-30s | $%9.2f | $%7.2f | %5.1f | %s\n",
			i+1, vehicle, entry.Price, entry.MonthlyCost, entry.Score, entry.Rating)
	}
}

// CsvRecommendations outputs the ranking in comma-separated value format.
func CsvRecommendations(result *recommend.Result) {
	fmt.Printf(`"rank","model","trim","price","monthly_cost","apr","score","rating","within_budget"`)
	fmt.Printf("\n")
	for i, entry := range result.Recommendations {
		fmt.Printf(`"%d","%s","%s","%.2f","%.2f","%.2f","%.2f","%s","%t"`,
			i+1, entry.Model, entry.Trim, entry.Price, entry.MonthlyCost,
			entry.APR, entry.Score, entry.Rating, entry.WithinBudget)
		fmt.Printf("\n")
	}
}

// PrettyForecast outputs a human-readable value curve.
func PrettyForecast(result *forecast.Result) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Value forecast for %s %s ---\n", result.Factors.Model, result.Factors.Trim)
	fmt.Printf("Year | Value       | Depreciation | Range\n")
	fmt.Printf("____ | ___________ | ____________ | _____\n")
	for i, point := range result.ForecastCurve {
		_, _ = p.Printf("%4d | $%10.2f | %11.1f%% | $%.2f - $%.2f\n",
			point.Year, point.AdjustedValue, point.DepreciationPercent,
			result.Scenarios.Pessimistic[i], result.Scenarios.Optimistic[i])
	}
	_, _ = p.Printf("Total depreciation: $%.2f (%.1f%%), confidence %.0f/100\n",
		result.TotalDepreciation, result.TotalDepreciationPercent, result.ConfidenceScore)
}

// CsvForecast outputs the value curve in comma-separated value format.
func CsvForecast(result *forecast.Result) {
	fmt.Printf(`"year","adjusted_value","depreciation","depreciation_percentage","pessimistic","optimistic"`)
	fmt.Printf("\n")
	for i, point := range result.ForecastCurve {
		fmt.Printf(`"%d","%.2f","%.2f","%.2f","%.2f","%.2f"`,
			point.Year, point.AdjustedValue, point.Depreciation, point.DepreciationPercent,
			result.Scenarios.Pessimistic[i], result.Scenarios.Optimistic[i])
		fmt.Printf("\n")
	}
}

// PrettySalary outputs a human-readable net pay summary.
func PrettySalary(estimate *salary.NetPayEstimate) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Net pay estimate ---\n")
	_, _ = p.Printf("Gross annual:        $%.2f\n", estimate.GrossAnnual)
	_, _ = p.Printf("Net annual:          $%.2f\n", estimate.NetAnnual)
	_, _ = p.Printf("Monthly net:         $%.2f\n", estimate.MonthlyNet)
	_, _ = p.Printf("Conservative net:    $%.2f/mo\n", estimate.ConservativeMonthlyNet)
	_, _ = p.Printf("Taxes (fed/state/FICA): $%.2f / $%.2f / $%.2f\n",
		estimate.TaxBreakdown.Federal, estimate.TaxBreakdown.State, estimate.TaxBreakdown.FICA)
	_, _ = p.Printf("Volatility:          %.1f%%\n", estimate.VolatilityPercentage)
}

// SalaryCsvString renders the net pay estimate as a CSV document.
func SalaryCsvString(estimate *salary.NetPayEstimate) string {
	var b strings.Builder
	b.WriteString(`"gross_annual","net_annual","monthly_net","federal","state","fica","volatility_percentage"`)
	b.WriteString("\n")
	fmt.Fprintf(&b, `"%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f"`,
		estimate.GrossAnnual, estimate.NetAnnual, estimate.MonthlyNet,
		estimate.TaxBreakdown.Federal, estimate.TaxBreakdown.State,
		estimate.TaxBreakdown.FICA, estimate.VolatilityPercentage)
	b.WriteString("\n")
	return b.String()
}
