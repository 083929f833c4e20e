// Package affordability scores how well a vehicle cost fits a financial
// profile. The composite index blends five weighted components into a
// 0-100 score and maps it to a rating bucket with guidance text.
package affordability

import (
	"go.uber.org/zap"

	"github.com/iwvelando/vehicle-affordability/internal/config"
	"github.com/iwvelando/vehicle-affordability/internal/model"
	"github.com/iwvelando/vehicle-affordability/internal/salary"
	"github.com/iwvelando/vehicle-affordability/pkg/constants"
	"github.com/iwvelando/vehicle-affordability/pkg/errs"
	"github.com/iwvelando/vehicle-affordability/pkg/mathutil"
	"github.com/iwvelando/vehicle-affordability/pkg/validation"
)

// Rating buckets, from best to worst.
const (
	RatingExcellent = "Excellent"
	RatingGood      = "Good"
	RatingFair      = "Fair"
	RatingPoor      = "Poor"
	RatingVeryPoor  = "Very Poor"
)

// Components holds the five sub-scores before weighting, each on a 0-100
// scale.
type Components struct {
	DebtToIncome        float64 `json:"debt_to_income"`
	CreditScore         float64 `json:"credit_score"`
	BudgetAlignment     float64 `json:"budget_alignment"`
	IncomeStability     float64 `json:"income_stability"`
	TermAppropriateness float64 `json:"term_appropriateness"`
}

// Score is the composite affordability result. DebtToIncomeRatio is a
// percentage of monthly net income, rounded to two decimals.
type Score struct {
	Overall           float64    `json:"overall_score"`
	Rating            string     `json:"rating"`
	Components        Components `json:"components"`
	DebtToIncomeRatio float64    `json:"debt_to_income_ratio"`
	MonthlyCost       float64    `json:"monthly_cost"`
	MonthlyIncome     float64    `json:"monthly_income"`
	Recommendation    string     `json:"recommendation"`
}

// Index computes affordability scores from the configured component
// weights.
type Index struct {
	weights config.ComponentWeights
	logger  *zap.Logger
}

// NewIndex constructs an Index.
func NewIndex(weights config.ComponentWeights, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{weights: weights, logger: logger}
}

// Evaluate scores monthlyCost against the profile and net pay estimate.
// The overall score is the weighted sum of the five components, clamped
// to [0, 100].
func (i *Index) Evaluate(
	profile model.FinancialProfile,
	monthlyCost float64,
	netPay *salary.NetPayEstimate,
) (*Score, error) {
	if err := validation.ValidateProfile(profile); err != nil {
		return nil, err
	}
	if monthlyCost < 0 {
		return nil, errs.NewValidation("monthly_cost", "must be non-negative, got %.2f", monthlyCost)
	}
	if netPay == nil || netPay.MonthlyNet <= 0 {
		return nil, errs.NewComputation("affordability.Evaluate", "net pay estimate unavailable")
	}

	dti := monthlyCost / netPay.MonthlyNet
	components := Components{
		DebtToIncome:        debtToIncomeScore(dti),
		CreditScore:         creditScoreScore(profile.CreditScore),
		BudgetAlignment:     budgetAlignmentScore(monthlyCost, profile.MonthlyBudget),
		IncomeStability:     incomeStabilityScore(netPay.VolatilityPercentage),
		TermAppropriateness: termScore(profile.LeaseTermMonths),
	}

	overall := mathutil.ClampScore(
		components.DebtToIncome*i.weights.DebtToIncome +
			components.CreditScore*i.weights.CreditScore +
			components.BudgetAlignment*i.weights.BudgetAlignment +
			components.IncomeStability*i.weights.IncomeStability +
			components.TermAppropriateness*i.weights.TermAppropriateness)

	rating, recommendation := classify(overall)

	i.logger.Debug("affordability scored",
		zap.String("op", "affordability.Evaluate"),
		zap.Float64("overall", overall),
		zap.String("rating", rating),
		zap.Float64("dti", dti),
	)

	return &Score{
		Overall:           overall,
		Rating:            rating,
		Components:        components,
		DebtToIncomeRatio: mathutil.Round(dti * constants.PercentageMultiplier),
		MonthlyCost:       mathutil.Round(monthlyCost),
		MonthlyIncome:     mathutil.Round(netPay.MonthlyNet),
		Recommendation:    recommendation,
	}, nil
}

// debtToIncomeScore grades the vehicle cost share of monthly net income.
// Under 15% is ideal; beyond 35% the score decays steeply.
func debtToIncomeScore(dti float64) float64 {
	switch {
	case dti <= 0.15:
		return 100
	case dti <= 0.20:
		return 90
	case dti <= 0.25:
		return 75
	case dti <= 0.30:
		return 60
	case dti <= 0.35:
		return 40
	default:
		return mathutil.FloorZero(40 - (dti-0.35)*200)
	}
}

func creditScoreScore(score int) float64 {
	switch {
	case score >= 750:
		return 100
	case score >= 700:
		return 85
	case score >= 650:
		return 70
	case score >= 600:
		return 50
	default:
		return mathutil.FloorZero(30 + float64(score-500)*0.4)
	}
}

// budgetAlignmentScore grades the cost against the stated monthly budget.
// At or under 80% of budget scores 100, decreasing linearly to 80 at the
// budget line, then decaying with the overage ratio.
func budgetAlignmentScore(monthlyCost, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	ratio := monthlyCost / budget
	switch {
	case ratio <= 0.80:
		return 100
	case ratio <= 1.0:
		return 100 - (ratio-0.80)*100
	default:
		return mathutil.FloorZero(80 - (ratio-1.0)*100)
	}
}

// incomeStabilityScore penalizes income volatility above a 10% baseline
// at 3 points per percentage point.
func incomeStabilityScore(volatilityPercentage float64) float64 {
	return mathutil.ClampScore(100 - 3*mathutil.FloorZero(volatilityPercentage-10))
}

// termScore grades the financing term. The 36-48 month range is ideal;
// very short terms strain monthly cash flow and very long terms carry
// negative-equity risk.
func termScore(termMonths int) float64 {
	t := float64(termMonths)
	switch {
	case termMonths >= 36 && termMonths <= 48:
		return 100
	case termMonths >= 24 && termMonths < 36:
		return 90
	case termMonths > 48 && termMonths <= 60:
		return 85
	case termMonths > 60:
		return mathutil.FloorZero(85 - (t-60)*2)
	default:
		return mathutil.FloorZero(70 - (36-t)*3)
	}
}

// classify maps an overall score to its rating bucket and guidance text.
// Bucket edges are inclusive lower bounds.
func classify(overall float64) (string, string) {
	switch {
	case overall >= 90:
		return RatingExcellent, "This vehicle fits comfortably within your financial profile."
	case overall >= 75:
		return RatingGood, "This vehicle is affordable with a healthy margin for other expenses."
	case overall >= 60:
		return RatingFair, "This vehicle is workable but leaves limited room in your budget."
	case overall >= 40:
		return RatingPoor, "This vehicle would strain your budget; consider a lower trim or longer savings period."
	default:
		return RatingVeryPoor, "This vehicle is not affordable for your current financial profile."
	}
}
