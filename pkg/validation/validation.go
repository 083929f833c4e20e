// Package validation provides input validation for the affordability
// engine. Validation runs before any computation begins; failures report
// the offending field and are never silently coerced.
package validation

import (
	"fmt"

	"github.com/iwvelando/vehicle-affordability/internal/model"
	"github.com/iwvelando/vehicle-affordability/pkg/constants"
	"github.com/iwvelando/vehicle-affordability/pkg/errs"
)

// ValidateProfile checks every bound on a financial profile.
func ValidateProfile(p model.FinancialProfile) error {
	if p.CreditScore < constants.MinCreditScore || p.CreditScore > constants.MaxCreditScore {
		return errs.NewValidation("credit_score", "must be between %d and %d, got %d",
			constants.MinCreditScore, constants.MaxCreditScore, p.CreditScore)
	}
	if p.AnnualIncome < 0 {
		return errs.NewValidation("annual_income", "must be non-negative, got %.2f", p.AnnualIncome)
	}
	if p.Salary < 0 {
		return errs.NewValidation("salary", "must be non-negative, got %.2f", p.Salary)
	}
	if p.MonthlyBudget < 0 {
		return errs.NewValidation("monthly_budget", "must be non-negative, got %.2f", p.MonthlyBudget)
	}
	if p.LeaseTermMonths < constants.MinLeaseTermMonths || p.LeaseTermMonths > constants.MaxLeaseTermMonths {
		return errs.NewValidation("lease_term_months", "must be between %d and %d, got %d",
			constants.MinLeaseTermMonths, constants.MaxLeaseTermMonths, p.LeaseTermMonths)
	}
	if p.EmploymentSubsidies < 0 {
		return errs.NewValidation("employment_subsidies", "must be non-negative, got %.2f", p.EmploymentSubsidies)
	}
	if p.TransportationSubsidy < 0 {
		return errs.NewValidation("transportation_subsidy", "must be non-negative, got %.2f", p.TransportationSubsidy)
	}
	return nil
}

// ValidateIncome checks only the income fields; the salary estimator does
// not require the financing fields to be populated.
func ValidateIncome(p model.FinancialProfile) error {
	if p.AnnualIncome < 0 {
		return errs.NewValidation("annual_income", "must be non-negative, got %.2f", p.AnnualIncome)
	}
	if p.Salary < 0 {
		return errs.NewValidation("salary", "must be non-negative, got %.2f", p.Salary)
	}
	if p.EmploymentSubsidies < 0 {
		return errs.NewValidation("employment_subsidies", "must be non-negative, got %.2f", p.EmploymentSubsidies)
	}
	if p.TransportationSubsidy < 0 {
		return errs.NewValidation("transportation_subsidy", "must be non-negative, got %.2f", p.TransportationSubsidy)
	}
	return nil
}

// ValidateScenario checks the macro assumption bounds.
func ValidateScenario(s model.ScenarioAdjustments) error {
	if s.AnnualMiles < 0 {
		return errs.NewValidation("annual_miles", "must be non-negative, got %d", s.AnnualMiles)
	}
	if s.FuelPricePerGallon < 0 {
		return errs.NewValidation("fuel_price_per_gallon", "must be non-negative, got %.2f", s.FuelPricePerGallon)
	}
	if s.InterestRate < 0 {
		return errs.NewValidation("interest_rate", "must be non-negative, got %.4f", s.InterestRate)
	}
	if s.InternshipLengthMonths < 0 {
		return errs.NewValidation("internship_length_months", "must be non-negative, got %d", s.InternshipLengthMonths)
	}
	return nil
}

// ValidatePrice checks a resolved vehicle price.
func ValidatePrice(price float64) error {
	if price <= 0 {
		return errs.NewValidation("price", "must be positive, got %.2f", price)
	}
	return nil
}

// ValidateYearsAhead checks a forecast horizon.
func ValidateYearsAhead(years int) error {
	if years < 0 {
		return errs.NewValidation("years_ahead", "must be non-negative, got %d", years)
	}
	return nil
}

// ValidateOutputFormat checks if the output format is one of the supported
// formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}
