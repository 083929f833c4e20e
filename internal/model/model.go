// Package model defines the request-scoped value objects shared by the
// affordability engine components. All types are immutable per request:
// they are constructed from validated input, consumed synchronously, and
// discarded once the response is assembled.
package model

import "github.com/iwvelando/vehicle-affordability/pkg/constants"

// FinancialProfile describes the financial situation of the person the
// engine is evaluating.
type FinancialProfile struct {
	CreditScore           int     `json:"credit_score"`
	AnnualIncome          float64 `json:"annual_income"`
	Salary                float64 `json:"salary"`
	MonthlyBudget         float64 `json:"monthly_budget"`
	LeaseTermMonths       int     `json:"lease_term_months"`
	EmploymentSubsidies   float64 `json:"employment_subsidies"`
	TransportationSubsidy float64 `json:"transportation_subsidy"`
}

// VehiclePreferences narrows the candidate set. Unset fields apply no
// filter.
type VehiclePreferences struct {
	Make              string  `json:"make,omitempty"`
	Model             string  `json:"model,omitempty"`
	Trim              string  `json:"trim,omitempty"`
	MaxPrice          float64 `json:"max_price,omitempty"`
	PreferredFuelType string  `json:"preferred_fuel_type,omitempty"`
}

// ScenarioAdjustments carries the macro assumptions for a single request.
// InterestRate of zero means the credit-tier default applies.
type ScenarioAdjustments struct {
	AnnualMiles            int     `json:"annual_miles,omitempty"`
	FuelPricePerGallon     float64 `json:"fuel_price_per_gallon,omitempty"`
	InterestRate           float64 `json:"interest_rate,omitempty"`
	InternshipLengthMonths int     `json:"internship_length_months,omitempty"`
}

// ApplyDefaults fills omitted scenario fields with the documented
// defaults: 12000 annual miles and $3.50/gallon fuel.
func (s *ScenarioAdjustments) ApplyDefaults() {
	if s.AnnualMiles <= 0 {
		s.AnnualMiles = constants.DefaultAnnualMiles
	}
	if s.FuelPricePerGallon <= 0 {
		s.FuelPricePerGallon = constants.DefaultFuelPricePerGallon
	}
}

// BaseRate returns the scenario interest-rate override, or the supplied
// default when no override is present.
func (s ScenarioAdjustments) BaseRate(fallback float64) float64 {
	if s.InterestRate > 0 {
		return s.InterestRate
	}
	return fallback
}
