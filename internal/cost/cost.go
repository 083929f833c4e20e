// Package cost aggregates the full monthly ownership cost of a vehicle
// configuration: financing, insurance, fuel, maintenance, and taxes/fees.
package cost

import (
	"go.uber.org/zap"

	"github.com/iwvelando/vehicle-affordability/internal/catalog"
	"github.com/iwvelando/vehicle-affordability/internal/config"
	"github.com/iwvelando/vehicle-affordability/internal/model"
	"github.com/iwvelando/vehicle-affordability/internal/salary"
	"github.com/iwvelando/vehicle-affordability/pkg/constants"
	"github.com/iwvelando/vehicle-affordability/pkg/loans"
	"github.com/iwvelando/vehicle-affordability/pkg/mathutil"
	"github.com/iwvelando/vehicle-affordability/pkg/validation"
)

// Breakdown itemizes the monthly cost. Total always equals the sum of the
// five components.
type Breakdown struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	Insurance      float64 `json:"insurance"`
	Fuel           float64 `json:"fuel"`
	Maintenance    float64 `json:"maintenance"`
	TaxesAndFees   float64 `json:"taxes_and_fees"`
	Total          float64 `json:"total"`
}

// Affordability reports the cost against the profile's income guardrail.
type Affordability struct {
	MonthlyNetIncome   float64 `json:"monthly_net_income"`
	TotalMonthlyCost   float64 `json:"total_monthly_cost"`
	AffordabilityRatio float64 `json:"affordability_ratio"`
	WithinBudget       bool    `json:"within_budget"`
	RecommendedMax     float64 `json:"recommended_max"`
}

// Assumptions echoes the inputs that shaped the estimate.
type Assumptions struct {
	DownPaymentPercentage float64 `json:"down_payment_percentage"`
	MaintenanceRate       float64 `json:"maintenance_rate"`
	AnnualMiles           int     `json:"annual_miles"`
	FuelPrice             float64 `json:"fuel_price"`
}

// Result is the cost calculator's full response.
type Result struct {
	VehiclePrice  float64       `json:"vehicle_price"`
	DownPayment   float64       `json:"down_payment"`
	APR           float64       `json:"apr"` // percentage
	TermMonths    int           `json:"term_months"`
	Breakdown     Breakdown     `json:"cost_breakdown"`
	Affordability Affordability `json:"affordability"`
	Assumptions   Assumptions   `json:"assumptions"`
}

// Calculator computes monthly ownership costs from the configured
// assumptions.
type Calculator struct {
	assumptions config.Assumptions
	logger      *zap.Logger
}

// NewCalculator constructs a Calculator.
func NewCalculator(assumptions config.Assumptions, logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{assumptions: assumptions, logger: logger}
}

// Calculate aggregates the monthly cost of a resolved vehicle for a
// profile under a scenario. Monthly income is the net estimate, so the
// affordability guardrail tracks take-home pay rather than gross.
func (c *Calculator) Calculate(
	profile model.FinancialProfile,
	vehicle catalog.Configuration,
	scenario model.ScenarioAdjustments,
	netPay *salary.NetPayEstimate,
) (*Result, error) {
	if err := validation.ValidateProfile(profile); err != nil {
		return nil, err
	}
	if err := validation.ValidateScenario(scenario); err != nil {
		return nil, err
	}
	if err := validation.ValidatePrice(vehicle.Price); err != nil {
		return nil, err
	}
	scenario.ApplyDefaults()

	price := vehicle.Price
	baseRate := scenario.BaseRate(c.assumptions.BaseInterestRate)
	apr := loans.APRForScore(profile.CreditScore, baseRate)

	downPayment := price * c.assumptions.DownPaymentFraction
	payment := loans.CalculateMonthlyPayment(price, downPayment, apr, profile.LeaseTermMonths)
	insurance := c.insurance(profile.CreditScore, price, vehicle.Model)
	fuel := c.fuel(scenario, vehicle.Model)
	maintenance := price * vehicle.Model.MaintenanceRate / constants.MonthsPerYear
	taxesAndFees := price*c.assumptions.SalesTaxRate/float64(profile.LeaseTermMonths) +
		c.assumptions.FixedAnnualFees/constants.MonthsPerYear

	// Components are rounded to cents before summing so the reported
	// total is exactly the sum of the reported parts.
	breakdown := Breakdown{
		MonthlyPayment: mathutil.Round(payment),
		Insurance:      mathutil.Round(insurance),
		Fuel:           mathutil.Round(fuel),
		Maintenance:    mathutil.Round(maintenance),
		TaxesAndFees:   mathutil.Round(taxesAndFees),
	}
	breakdown.Total = mathutil.Round(breakdown.MonthlyPayment + breakdown.Insurance +
		breakdown.Fuel + breakdown.Maintenance + breakdown.TaxesAndFees)

	monthlyNet := netPay.MonthlyNet
	recommendedMax := monthlyNet * c.assumptions.GuardrailFraction
	ratio := 0.0
	if monthlyNet > 0 {
		ratio = mathutil.CalculatePercentage(breakdown.Total, monthlyNet)
	}
	cap := mathutil.Min(profile.MonthlyBudget, recommendedMax)

	result := &Result{
		VehiclePrice: mathutil.Round(price),
		DownPayment:  mathutil.Round(downPayment),
		APR:          mathutil.Round(apr * constants.PercentageMultiplier),
		TermMonths:   profile.LeaseTermMonths,
		Breakdown:    breakdown,
		Affordability: Affordability{
			MonthlyNetIncome:   mathutil.Round(monthlyNet),
			TotalMonthlyCost:   breakdown.Total,
			AffordabilityRatio: mathutil.Round(ratio),
			WithinBudget:       breakdown.Total <= cap,
			RecommendedMax:     mathutil.Round(recommendedMax),
		},
		Assumptions: Assumptions{
			DownPaymentPercentage: c.assumptions.DownPaymentFraction * constants.PercentageMultiplier,
			MaintenanceRate:       vehicle.Model.MaintenanceRate,
			AnnualMiles:           scenario.AnnualMiles,
			FuelPrice:             scenario.FuelPricePerGallon,
		},
	}

	c.logger.Debug("monthly cost calculated",
		zap.String("op", "cost.Calculate"),
		zap.String("model", vehicle.Model.Name),
		zap.String("trim", vehicle.Trim.Name),
		zap.Float64("total", breakdown.Total),
		zap.Bool("within_budget", result.Affordability.WithinBudget),
	)

	return result, nil
}

// insurance scales the model's base premium by credit tier and vehicle
// value; pricier vehicles cost more to insure.
func (c *Calculator) insurance(creditScore int, price float64, m *catalog.Model) float64 {
	tierMultiplier := loans.InsuranceMultiplierForScore(creditScore)
	valueMultiplier := 1 + (price/50000-1)*0.3
	return mathutil.FloorZero(m.BaseInsuranceMonthly * tierMultiplier * valueMultiplier)
}

// fuel converts annual mileage to a monthly fuel spend using the model's
// MPG; hybrid and electric models carry an MPGe-equivalent constant in the
// catalog so the same formula applies.
func (c *Calculator) fuel(scenario model.ScenarioAdjustments, m *catalog.Model) float64 {
	gallonsPerMonth := float64(scenario.AnnualMiles) / constants.MonthsPerYear / m.MPG
	return gallonsPerMonth * scenario.FuelPricePerGallon
}
