// Package recommend ranks catalog vehicles for a financial profile. Each
// candidate trim is costed with the full monthly cost model, scored on
// budget fit, income fit, financing terms, reliability, and the composite
// affordability index, then sorted by a total order so equal scores
// always rank identically.
package recommend

import (
	"sort"

	"go.uber.org/zap"

	"github.com/iwvelando/vehicle-affordability/internal/affordability"
	"github.com/iwvelando/vehicle-affordability/internal/catalog"
	"github.com/iwvelando/vehicle-affordability/internal/config"
	"github.com/iwvelando/vehicle-affordability/internal/cost"
	"github.com/iwvelando/vehicle-affordability/internal/model"
	"github.com/iwvelando/vehicle-affordability/internal/salary"
	"github.com/iwvelando/vehicle-affordability/pkg/errs"
	"github.com/iwvelando/vehicle-affordability/pkg/mathutil"
	"github.com/iwvelando/vehicle-affordability/pkg/validation"
)

// maxRecommendations caps the returned list length.
const maxRecommendations = 10

// MatchFactors echoes the personal-match inputs for the candidate: the
// point awards for income and budget fit plus the profile values the
// financing terms came from.
type MatchFactors struct {
	SalaryMatch float64 `json:"salary_match"`
	BudgetMatch float64 `json:"budget_match"`
	CreditScore int     `json:"credit_score"`
	LeaseTerm   int     `json:"lease_term"`
}

// Entry is one ranked recommendation.
type Entry struct {
	Model              string       `json:"model"`
	Trim               string       `json:"trim"`
	Price              float64      `json:"price"`
	MonthlyPayment     float64      `json:"monthly_payment"`
	MonthlyCost        float64      `json:"monthly_cost"`
	DownPayment        float64      `json:"down_payment"`
	APR                float64      `json:"apr"`
	FuelEfficiency     float64      `json:"fuel_efficiency"`
	Score              float64      `json:"score"`
	MatchScore         float64      `json:"match_score"`
	ReliabilityScore   float64      `json:"reliability_score"`
	AffordabilityScore float64      `json:"affordability_score"`
	Rating             string       `json:"rating"`
	ResidualValue      float64      `json:"residual_value"`
	ResidualPercentage float64      `json:"residual_percentage"`
	WithinBudget       bool         `json:"within_budget"`
	Factors            MatchFactors `json:"factors"`
}

// ProfileEcho repeats the inputs the ranking was computed from.
type ProfileEcho struct {
	CreditScore     int     `json:"credit_score"`
	AnnualIncome    float64 `json:"annual_income"`
	MonthlyBudget   float64 `json:"monthly_budget"`
	LeaseTermMonths int     `json:"lease_term_months"`
}

// Result is the full recommendation response.
type Result struct {
	Recommendations []Entry                      `json:"recommendations"`
	TotalOptions    int                          `json:"total_options"`
	Profile         ProfileEcho                  `json:"user_profile"`
	ScoringWeights  config.RecommendationWeights `json:"scoring_weights"`
}

// Engine ranks vehicles using its injected collaborators.
type Engine struct {
	catalog    *catalog.Catalog
	estimator  *salary.Estimator
	calculator *cost.Calculator
	index      *affordability.Index
	weights    config.RecommendationWeights
	logger     *zap.Logger
}

// NewEngine constructs an Engine.
func NewEngine(
	cat *catalog.Catalog,
	estimator *salary.Estimator,
	calculator *cost.Calculator,
	index *affordability.Index,
	weights config.RecommendationWeights,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		catalog:    cat,
		estimator:  estimator,
		calculator: calculator,
		index:      index,
		weights:    weights,
		logger:     logger,
	}
}

// Recommend scores every catalog trim passing the preference filters and
// returns the top candidates. Vehicles the profile cannot finance are
// still ranked; they simply score low. An empty candidate set after
// filtering is a not-found error.
func (e *Engine) Recommend(
	profile model.FinancialProfile,
	prefs model.VehiclePreferences,
	scenario model.ScenarioAdjustments,
) (*Result, error) {
	if err := validation.ValidateProfile(profile); err != nil {
		return nil, err
	}
	if err := validation.ValidateScenario(scenario); err != nil {
		return nil, err
	}
	scenario.ApplyDefaults()

	netPay, err := e.estimator.Estimate(profile)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, maxRecommendations)
	total := 0
	for _, m := range e.catalog.Models() {
		if prefs.Model != "" && m.Name != prefs.Model {
			continue
		}
		if prefs.PreferredFuelType != "" && m.FuelType != catalog.ParseFuelType(prefs.PreferredFuelType) {
			continue
		}
		for _, trim := range m.Trims {
			if prefs.Trim != "" && trim.Name != prefs.Trim {
				continue
			}
			if prefs.MaxPrice > 0 && trim.Price > prefs.MaxPrice {
				continue
			}
			total++

			vehicle := catalog.Configuration{Model: m, Trim: trim, Price: trim.Price}
			entry, err := e.scoreCandidate(profile, vehicle, scenario, netPay)
			if err != nil {
				e.logger.Warn("candidate scoring failed",
					zap.String("op", "recommend.Recommend"),
					zap.String("model", m.Name),
					zap.String("trim", trim.Name),
					zap.Error(err),
				)
				continue
			}
			entries = append(entries, entry)
		}
	}

	if len(entries) == 0 {
		return nil, errs.NewNotFound("recommendations", "no vehicles match the given preferences")
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if entries[i].Price != entries[j].Price {
			return entries[i].Price < entries[j].Price
		}
		if entries[i].Model != entries[j].Model {
			return entries[i].Model < entries[j].Model
		}
		return entries[i].Trim < entries[j].Trim
	})
	if len(entries) > maxRecommendations {
		entries = entries[:maxRecommendations]
	}

	e.logger.Debug("recommendations ranked",
		zap.String("op", "recommend.Recommend"),
		zap.Int("total_options", total),
		zap.Int("returned", len(entries)),
	)

	return &Result{
		Recommendations: entries,
		TotalOptions:    total,
		Profile: ProfileEcho{
			CreditScore:     profile.CreditScore,
			AnnualIncome:    profile.AnnualIncome,
			MonthlyBudget:   profile.MonthlyBudget,
			LeaseTermMonths: profile.LeaseTermMonths,
		},
		ScoringWeights: e.weights,
	}, nil
}

func (e *Engine) scoreCandidate(
	profile model.FinancialProfile,
	vehicle catalog.Configuration,
	scenario model.ScenarioAdjustments,
	netPay *salary.NetPayEstimate,
) (Entry, error) {
	costResult, err := e.calculator.Calculate(profile, vehicle, scenario, netPay)
	if err != nil {
		return Entry{}, err
	}
	affordabilityScore, err := e.index.Evaluate(profile, costResult.Breakdown.Total, netPay)
	if err != nil {
		return Entry{}, err
	}

	factors := MatchFactors{
		SalaryMatch: salaryMatch(costResult.Breakdown.Total, netPay.MonthlyNet),
		BudgetMatch: budgetMatch(costResult.Breakdown.Total, profile.MonthlyBudget),
		CreditScore: profile.CreditScore,
		LeaseTerm:   profile.LeaseTermMonths,
	}
	matchScore := factors.SalaryMatch + factors.BudgetMatch + aprMatch(costResult.APR/100)

	reliabilityScore := mathutil.Min(
		vehicle.Model.Reliability*termFactor(profile.LeaseTermMonths), 100)

	overall := mathutil.ClampScore(
		matchScore*e.weights.PersonalMatch +
			reliabilityScore*e.weights.Reliability +
			affordabilityScore.Overall*e.weights.Affordability)

	residualFraction := vehicle.Model.ResidualFraction(profile.LeaseTermMonths)
	residual := vehicle.Price * residualFraction

	return Entry{
		Model:              vehicle.Model.Name,
		Trim:               vehicle.Trim.Name,
		Price:              vehicle.Price,
		MonthlyPayment:     costResult.Breakdown.MonthlyPayment,
		MonthlyCost:        costResult.Breakdown.Total,
		DownPayment:        costResult.DownPayment,
		APR:                costResult.APR,
		FuelEfficiency:     vehicle.Model.MPG,
		Score:              mathutil.Round(overall),
		MatchScore:         mathutil.Round(matchScore),
		ReliabilityScore:   mathutil.Round(reliabilityScore),
		AffordabilityScore: mathutil.Round(affordabilityScore.Overall),
		Rating:             affordabilityScore.Rating,
		ResidualValue:      mathutil.Round(residual),
		ResidualPercentage: mathutil.Round(residualFraction * 100),
		WithinBudget:       costResult.Affordability.WithinBudget,
		Factors:            factors,
	}, nil
}

// budgetMatch awards up to 50 points for fitting the stated budget: full
// marks at or under 80% of budget, tapering to zero as cost doubles it.
func budgetMatch(monthlyCost, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	ratio := monthlyCost / budget
	switch {
	case ratio <= 0.80:
		return 50
	case ratio <= 1.0:
		return 50 - (ratio-0.80)*100
	default:
		return mathutil.FloorZero(30 - (ratio-1.0)*30)
	}
}

// salaryMatch awards up to 30 points for a healthy cost share of net
// income, peaking in the 10-20% band.
func salaryMatch(monthlyCost, monthlyNet float64) float64 {
	if monthlyNet <= 0 {
		return 0
	}
	ratio := monthlyCost / monthlyNet
	switch {
	case ratio <= 0.10:
		return 30
	case ratio <= 0.20:
		return 30 - (ratio-0.10)*50
	default:
		return mathutil.FloorZero(25 - (ratio-0.20)*100)
	}
}

// aprMatch awards up to 20 points for favorable financing; rate is a
// fraction, not a percentage.
func aprMatch(rate float64) float64 {
	switch {
	case rate <= 0.03:
		return 20
	case rate <= 0.05:
		return 15
	case rate <= 0.07:
		return 10
	default:
		return mathutil.FloorZero(10 - (rate-0.07)*100)
	}
}

// termFactor boosts reliability weighting for longer terms, where
// dependability matters more.
func termFactor(termMonths int) float64 {
	switch {
	case termMonths <= 36:
		return 1.0
	case termMonths <= 48:
		return 1.05
	default:
		return 1.10
	}
}
