// Package loans provides auto-loan math shared by the cost calculator and
// the recommendation engine: amortized payments and credit-score tiering.
package loans

import (
	"math"

	"github.com/iwvelando/vehicle-affordability/pkg/constants"
)

// Tier buckets a credit score into the pricing tiers used for APR and
// insurance adjustments.
type Tier string

const (
	TierExcellent Tier = "excellent" // 750+
	TierGood      Tier = "good"      // 700-749
	TierFair      Tier = "fair"      // 650-699
	TierPoor      Tier = "poor"      // <650
)

// TierForScore determines the pricing tier for a credit score.
func TierForScore(creditScore int) Tier {
	switch {
	case creditScore >= 750:
		return TierExcellent
	case creditScore >= 700:
		return TierGood
	case creditScore >= 650:
		return TierFair
	default:
		return TierPoor
	}
}

// aprAdjustments holds the spread applied to the base rate per tier. The
// adjustments are strictly monotone so a higher score never pays a higher
// rate than a lower one.
var aprAdjustments = map[Tier]float64{
	TierExcellent: -0.02,
	TierGood:      0.0,
	TierFair:      0.02,
	TierPoor:      0.05,
}

// insuranceMultipliers scales a base monthly premium per tier; sub-prime
// tiers pay above base, prime tiers below.
var insuranceMultipliers = map[Tier]float64{
	TierExcellent: 0.8,
	TierGood:      1.0,
	TierFair:      1.2,
	TierPoor:      1.5,
}

// APRForScore resolves the annual percentage rate for a credit score given
// a base rate, floored at zero.
func APRForScore(creditScore int, baseRate float64) float64 {
	apr := baseRate + aprAdjustments[TierForScore(creditScore)]
	if apr < 0 {
		return 0
	}
	return apr
}

// InsuranceMultiplierForScore resolves the insurance premium multiplier for
// a credit score.
func InsuranceMultiplierForScore(creditScore int) float64 {
	return insuranceMultipliers[TierForScore(creditScore)]
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using
// the standard amortization formula. The rate is an annual fraction (0.05
// for 5%). A fully covered principal yields a zero payment.
func CalculateMonthlyPayment(principal, downPayment, annualRate float64, termMonths int) float64 {
	financed := principal - downPayment
	if financed <= 0 || termMonths <= 0 {
		return 0
	}

	if annualRate == 0 {
		// For zero interest, simply divide the principal by term
		return financed / float64(termMonths)
	}

	periodicRate := annualRate / constants.MonthsPerYear
	power := math.Pow(1.00+periodicRate, float64(termMonths))
	discountFactor := (power - 1.00) / power
	return financed * periodicRate / discountFactor
}
