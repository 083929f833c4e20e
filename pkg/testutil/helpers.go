// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"

	"github.com/iwvelando/vehicle-affordability/internal/catalog"
	"github.com/iwvelando/vehicle-affordability/internal/config"
	"github.com/iwvelando/vehicle-affordability/internal/model"
)

// CloseEnough reports whether two floats agree within tolerance.
func CloseEnough(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// DefaultCatalog builds the catalog from the built-in configuration.
func DefaultCatalog() *catalog.Catalog {
	cfg := config.DefaultConfiguration()
	return catalog.New(cfg.Catalog, cfg.Forecasting.ResidualFloorFraction)
}

// Profile returns the reference test profile: prime credit, $80k salary,
// $600 budget over 36 months.
func Profile() model.FinancialProfile {
	return model.FinancialProfile{
		CreditScore:     750,
		AnnualIncome:    80000,
		Salary:          80000,
		MonthlyBudget:   600,
		LeaseTermMonths: 36,
	}
}

// Scenario returns a scenario with the documented defaults filled in.
func Scenario() model.ScenarioAdjustments {
	s := model.ScenarioAdjustments{}
	s.ApplyDefaults()
	return s
}
