// Package salary estimates net pay and income volatility from gross
// salary and subsidy data using a simplified tiered tax model.
package salary

import (
	"go.uber.org/zap"

	"github.com/iwvelando/vehicle-affordability/internal/config"
	"github.com/iwvelando/vehicle-affordability/internal/model"
	"github.com/iwvelando/vehicle-affordability/pkg/constants"
	"github.com/iwvelando/vehicle-affordability/pkg/mathutil"
	"github.com/iwvelando/vehicle-affordability/pkg/validation"
)

// TaxBreakdown itemizes the annual tax estimate.
type TaxBreakdown struct {
	Federal float64 `json:"federal"`
	State   float64 `json:"state"`
	FICA    float64 `json:"fica"`
	Total   float64 `json:"total"`
}

// ConfidenceInterval is the 95% interval around the annual net estimate.
type ConfidenceInterval struct {
	Low  float64 `json:"95_low"`
	High float64 `json:"95_high"`
}

// NetPayEstimate is the salary estimator's result.
type NetPayEstimate struct {
	GrossAnnual            float64            `json:"gross_annual"`
	NetAnnual              float64            `json:"net_annual"`
	ConservativeNetAnnual  float64            `json:"conservative_net_annual"`
	MonthlyGross           float64            `json:"monthly_gross"`
	MonthlyNet             float64            `json:"monthly_net"`
	ConservativeMonthlyNet float64            `json:"conservative_monthly_net"`
	Volatility             float64            `json:"volatility"`
	VolatilityPercentage   float64            `json:"volatility_percentage"`
	TaxBreakdown           TaxBreakdown       `json:"tax_breakdown"`
	ConfidenceInterval     ConfidenceInterval `json:"confidence_intervals"`
}

// Estimator computes net pay estimates from the configured tax model.
type Estimator struct {
	assumptions config.Assumptions
	logger      *zap.Logger
}

// NewEstimator constructs an Estimator.
func NewEstimator(assumptions config.Assumptions, logger *zap.Logger) *Estimator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Estimator{assumptions: assumptions, logger: logger}
}

// Estimate computes the net pay estimate for a profile. Salary is the
// taxable base when present; otherwise annual income is used. Employment
// subsidies are taxable, the transportation subsidy is applied after tax.
func (e *Estimator) Estimate(profile model.FinancialProfile) (*NetPayEstimate, error) {
	if err := validation.ValidateIncome(profile); err != nil {
		return nil, err
	}

	taxableBase := profile.Salary
	if taxableBase == 0 {
		taxableBase = profile.AnnualIncome
	}
	grossIncome := taxableBase + profile.EmploymentSubsidies

	federal := e.federalTax(grossIncome)
	state := grossIncome * e.assumptions.StateTaxRate
	fica := e.fica(grossIncome)
	totalTaxes := federal + state + fica

	netPay := grossIncome - totalTaxes + profile.TransportationSubsidy

	// Subsidized income carries more variance than base salary, so the
	// coefficient of variation scales up with subsidy reliance.
	subsidies := profile.EmploymentSubsidies + profile.TransportationSubsidy
	subsidyRatio := 0.0
	if grossIncome+profile.TransportationSubsidy > 0 {
		subsidyRatio = subsidies / (grossIncome + profile.TransportationSubsidy)
	}
	volatility := netPay * e.assumptions.VolatilityFactor * (1 + subsidyRatio)
	if volatility < 0 {
		volatility = 0
	}

	volatilityPct := 0.0
	if netPay > 0 {
		volatilityPct = mathutil.CalculatePercentage(volatility, netPay)
	}

	estimate := &NetPayEstimate{
		GrossAnnual:            mathutil.Round(grossIncome),
		NetAnnual:              mathutil.Round(netPay),
		ConservativeNetAnnual:  mathutil.Round(mathutil.FloorZero(netPay - volatility)),
		MonthlyGross:           mathutil.Round(grossIncome / constants.MonthsPerYear),
		MonthlyNet:             mathutil.Round(netPay / constants.MonthsPerYear),
		ConservativeMonthlyNet: mathutil.Round(mathutil.FloorZero(netPay-volatility) / constants.MonthsPerYear),
		Volatility:             mathutil.Round(volatility),
		VolatilityPercentage:   mathutil.Round(volatilityPct),
		TaxBreakdown: TaxBreakdown{
			Federal: mathutil.Round(federal),
			State:   mathutil.Round(state),
			FICA:    mathutil.Round(fica),
			Total:   mathutil.Round(totalTaxes),
		},
		ConfidenceInterval: ConfidenceInterval{
			Low:  mathutil.Round(mathutil.FloorZero(netPay - volatility*1.96)),
			High: mathutil.Round(netPay + volatility*1.96),
		},
	}

	e.logger.Debug("net pay estimated",
		zap.String("op", "salary.Estimate"),
		zap.Float64("gross_annual", estimate.GrossAnnual),
		zap.Float64("monthly_net", estimate.MonthlyNet),
		zap.Float64("volatility_percentage", estimate.VolatilityPercentage),
	)

	return estimate, nil
}

// federalTax applies the progressive bracket table to annual income.
func (e *Estimator) federalTax(income float64) float64 {
	brackets := e.assumptions.TaxBrackets
	tax := 0.0
	for i, bracket := range brackets {
		if income <= bracket.Floor {
			break
		}
		upper := income
		if i+1 < len(brackets) && brackets[i+1].Floor < income {
			upper = brackets[i+1].Floor
		}
		tax += (upper - bracket.Floor) * bracket.Rate
	}
	return tax
}

// fica applies Social Security up to the wage base plus uncapped Medicare.
func (e *Estimator) fica(income float64) float64 {
	socialSecurity := mathutil.Min(income, e.assumptions.SocialSecurityWageBase) * e.assumptions.SocialSecurityRate
	medicare := income * e.assumptions.MedicareRate
	return socialSecurity + medicare
}
