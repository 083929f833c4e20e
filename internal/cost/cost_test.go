package cost

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/vehicle-affordability/internal/catalog"
	"github.com/iwvelando/vehicle-affordability/internal/config"
	"github.com/iwvelando/vehicle-affordability/internal/model"
	"github.com/iwvelando/vehicle-affordability/internal/salary"
	"github.com/iwvelando/vehicle-affordability/pkg/errs"
	"github.com/iwvelando/vehicle-affordability/pkg/testutil"
)

func setupCalculator(t *testing.T) (*Calculator, *salary.Estimator, *catalog.Catalog) {
	t.Helper()
	cfg := config.DefaultConfiguration()
	return NewCalculator(cfg.Assumptions, nil),
		salary.NewEstimator(cfg.Assumptions, nil),
		catalog.New(cfg.Catalog, cfg.Forecasting.ResidualFloorFraction)
}

func resolve(t *testing.T, cat *catalog.Catalog, modelName, trim string) catalog.Configuration {
	t.Helper()
	vehicle, err := cat.Resolve(model.VehiclePreferences{Model: modelName, Trim: trim})
	if err != nil {
		t.Fatalf("Resolve(%s/%s) returned error: %v", modelName, trim, err)
	}
	return vehicle
}

func TestCalculateCamryLE(t *testing.T) {
	calculator, estimator, cat := setupCalculator(t)
	profile := testutil.Profile()
	scenario := testutil.Scenario()
	vehicle := resolve(t, cat, "Camry", "LE")

	netPay, err := estimator.Estimate(profile)
	if err != nil {
		t.Fatalf("Estimate() returned error: %v", err)
	}

	result, err := calculator.Calculate(profile, vehicle, scenario, netPay)
	if err != nil {
		t.Fatalf("Calculate() returned error: %v", err)
	}

	if result.Breakdown.Total <= 0 {
		t.Errorf("Total = %.2f, expected positive", result.Breakdown.Total)
	}
	if result.Breakdown.MonthlyPayment <= 0 {
		t.Errorf("MonthlyPayment = %.2f, expected positive", result.Breakdown.MonthlyPayment)
	}
	if result.DownPayment != 2780 {
		t.Errorf("DownPayment = %.2f, expected 2780 (10%% of 27800)", result.DownPayment)
	}
	// Excellent tier at 5% base is 3% APR.
	if result.APR != 3.0 {
		t.Errorf("APR = %.2f, expected 3.00", result.APR)
	}
}

func TestCalculateTotalIsSumOfComponents(t *testing.T) {
	calculator, estimator, cat := setupCalculator(t)
	scenario := testutil.Scenario()

	profiles := []model.FinancialProfile{
		{CreditScore: 750, Salary: 80000, MonthlyBudget: 600, LeaseTermMonths: 36},
		{CreditScore: 620, Salary: 35000, MonthlyBudget: 300, LeaseTermMonths: 72},
		{CreditScore: 700, Salary: 150000, MonthlyBudget: 1500, LeaseTermMonths: 12},
	}
	vehicles := []catalog.Configuration{
		resolve(t, cat, "Camry", "LE"),
		resolve(t, cat, "Prius", "XLE"),
		resolve(t, cat, "4Runner", "TRD Pro"),
	}

	for _, profile := range profiles {
		netPay, err := estimator.Estimate(profile)
		if err != nil {
			t.Fatalf("Estimate() returned error: %v", err)
		}
		for _, vehicle := range vehicles {
			result, err := calculator.Calculate(profile, vehicle, scenario, netPay)
			if err != nil {
				t.Fatalf("Calculate() returned error: %v", err)
			}
			sum := result.Breakdown.MonthlyPayment + result.Breakdown.Insurance +
				result.Breakdown.Fuel + result.Breakdown.Maintenance + result.Breakdown.TaxesAndFees
			if !testutil.CloseEnough(result.Breakdown.Total, sum, 0.011) {
				t.Errorf("%s: Total %.2f != component sum %.2f", vehicle.Model.Name, result.Breakdown.Total, sum)
			}
			for _, component := range []float64{
				result.Breakdown.MonthlyPayment, result.Breakdown.Insurance,
				result.Breakdown.Fuel, result.Breakdown.Maintenance, result.Breakdown.TaxesAndFees,
			} {
				if component < 0 {
					t.Errorf("%s: negative component %.2f", vehicle.Model.Name, component)
				}
			}
		}
	}
}

func TestCalculateCreditScoreMonotonicity(t *testing.T) {
	calculator, estimator, cat := setupCalculator(t)
	scenario := testutil.Scenario()
	vehicle := resolve(t, cat, "Corolla", "LE")

	previousPayment := math.Inf(1)
	for _, score := range []int{520, 640, 660, 690, 710, 740, 760, 820} {
		profile := testutil.Profile()
		profile.CreditScore = score
		netPay, err := estimator.Estimate(profile)
		if err != nil {
			t.Fatalf("Estimate() returned error: %v", err)
		}
		result, err := calculator.Calculate(profile, vehicle, scenario, netPay)
		if err != nil {
			t.Fatalf("Calculate() returned error: %v", err)
		}
		if result.Breakdown.MonthlyPayment > previousPayment {
			t.Errorf("score %d: payment %.2f exceeds payment for lower score %.2f",
				score, result.Breakdown.MonthlyPayment, previousPayment)
		}
		previousPayment = result.Breakdown.MonthlyPayment
	}
}

func TestCalculateGuardrail(t *testing.T) {
	calculator, estimator, cat := setupCalculator(t)
	scenario := testutil.Scenario()
	vehicle := resolve(t, cat, "4Runner", "TRD Pro")

	// Modest income, generous budget: the guardrail should still flag an
	// expensive vehicle as over the recommended maximum.
	profile := model.FinancialProfile{
		CreditScore:     720,
		AnnualIncome:    40000,
		Salary:          40000,
		MonthlyBudget:   5000,
		LeaseTermMonths: 36,
	}
	netPay, err := estimator.Estimate(profile)
	if err != nil {
		t.Fatalf("Estimate() returned error: %v", err)
	}
	result, err := calculator.Calculate(profile, vehicle, scenario, netPay)
	if err != nil {
		t.Fatalf("Calculate() returned error: %v", err)
	}

	expectedMax := netPay.MonthlyNet * 0.20
	if !testutil.CloseEnough(result.Affordability.RecommendedMax, expectedMax, 0.011) {
		t.Errorf("RecommendedMax = %.2f, expected %.2f", result.Affordability.RecommendedMax, expectedMax)
	}
	if result.Affordability.WithinBudget {
		t.Error("WithinBudget = true for a vehicle far above the income guardrail")
	}
}

func TestCalculateInterestRateOverride(t *testing.T) {
	calculator, estimator, cat := setupCalculator(t)
	vehicle := resolve(t, cat, "Camry", "LE")
	profile := testutil.Profile()

	netPay, err := estimator.Estimate(profile)
	if err != nil {
		t.Fatalf("Estimate() returned error: %v", err)
	}

	low, err := calculator.Calculate(profile, vehicle, model.ScenarioAdjustments{InterestRate: 0.03}, netPay)
	if err != nil {
		t.Fatalf("Calculate() returned error: %v", err)
	}
	high, err := calculator.Calculate(profile, vehicle, model.ScenarioAdjustments{InterestRate: 0.10}, netPay)
	if err != nil {
		t.Fatalf("Calculate() returned error: %v", err)
	}

	if low.Breakdown.MonthlyPayment >= high.Breakdown.MonthlyPayment {
		t.Errorf("payment at 3%% base (%.2f) should be below payment at 10%% base (%.2f)",
			low.Breakdown.MonthlyPayment, high.Breakdown.MonthlyPayment)
	}
}

func TestCalculateValidation(t *testing.T) {
	calculator, estimator, cat := setupCalculator(t)
	scenario := testutil.Scenario()
	vehicle := resolve(t, cat, "Camry", "LE")

	validProfile := testutil.Profile()
	netPay, err := estimator.Estimate(validProfile)
	if err != nil {
		t.Fatalf("Estimate() returned error: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*model.FinancialProfile)
		field   string
	}{
		{"credit score too low", func(p *model.FinancialProfile) { p.CreditScore = 299 }, "credit_score"},
		{"credit score too high", func(p *model.FinancialProfile) { p.CreditScore = 851 }, "credit_score"},
		{"lease term too short", func(p *model.FinancialProfile) { p.LeaseTermMonths = 11 }, "lease_term_months"},
		{"lease term too long", func(p *model.FinancialProfile) { p.LeaseTermMonths = 73 }, "lease_term_months"},
		{"negative budget", func(p *model.FinancialProfile) { p.MonthlyBudget = -1 }, "monthly_budget"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := testutil.Profile()
			tt.mutate(&profile)
			_, err := calculator.Calculate(profile, vehicle, scenario, netPay)
			var vErr *errs.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("error field = %s, expected %s", vErr.Field, tt.field)
			}
		})
	}
}

func TestCalculateUnknownTrim(t *testing.T) {
	_, _, cat := setupCalculator(t)

	_, err := cat.Resolve(model.VehiclePreferences{Model: "Camry", Trim: "TRD Pro"})
	var nfErr *errs.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
