package forecast

import (
	"testing"

	"github.com/iwvelando/vehicle-affordability/internal/catalog"
	"github.com/iwvelando/vehicle-affordability/internal/config"
	"github.com/iwvelando/vehicle-affordability/internal/model"
	"github.com/iwvelando/vehicle-affordability/pkg/constants"
	"github.com/iwvelando/vehicle-affordability/pkg/errs"
	"github.com/iwvelando/vehicle-affordability/pkg/testutil"
)

func newTestForecaster() *Forecaster {
	cfg := config.DefaultConfiguration()
	return NewForecaster(cfg.Forecasting, cfg.Assumptions, nil)
}

func resolveVehicle(t *testing.T, modelName, trimName string) catalog.Configuration {
	t.Helper()
	vehicle, err := testutil.DefaultCatalog().Resolve(model.VehiclePreferences{
		Model: modelName,
		Trim:  trimName,
	})
	if err != nil {
		t.Fatalf("Resolve(%s %s) error: %v", modelName, trimName, err)
	}
	return vehicle
}

func TestForecastCurveShape(t *testing.T) {
	f := newTestForecaster()
	vehicle := resolveVehicle(t, "Camry", "LE")

	result, err := f.Forecast(vehicle, testutil.Scenario(), 5)
	if err != nil {
		t.Fatalf("Forecast error: %v", err)
	}
	if len(result.ForecastCurve) != 6 {
		t.Fatalf("expected 6 curve points, got %d", len(result.ForecastCurve))
	}
	if len(result.Scenarios.Optimistic) != 6 || len(result.Scenarios.Pessimistic) != 6 {
		t.Errorf("band lengths = %d/%d, want 6/6",
			len(result.Scenarios.Optimistic), len(result.Scenarios.Pessimistic))
	}
	if result.ForecastCurve[0].Year != 0 || result.ForecastCurve[5].Year != 5 {
		t.Errorf("curve years = %d..%d, want 0..5",
			result.ForecastCurve[0].Year, result.ForecastCurve[5].Year)
	}
	if result.InitialValue != vehicle.Price {
		t.Errorf("InitialValue = %.2f, want %.2f", result.InitialValue, vehicle.Price)
	}
	if result.ForecastCurve[0].AdjustedValue != result.InitialValue {
		t.Errorf("year-zero value = %.2f, want initial %.2f",
			result.ForecastCurve[0].AdjustedValue, result.InitialValue)
	}
	if result.ForecastCurve[0].Depreciation != 0 {
		t.Errorf("year-zero depreciation = %.2f, want 0", result.ForecastCurve[0].Depreciation)
	}
}

func TestForecastMonotoneUnderDefaults(t *testing.T) {
	f := newTestForecaster()
	for _, entry := range testutil.DefaultCatalog().Models() {
		for _, trim := range entry.Trims {
			vehicle := resolveVehicle(t, entry.Name, trim.Name)
			result, err := f.Forecast(vehicle, testutil.Scenario(), 8)
			if err != nil {
				t.Fatalf("Forecast(%s %s) error: %v", entry.Name, trim.Name, err)
			}
			prev := result.ForecastCurve[0].AdjustedValue
			for _, point := range result.ForecastCurve[1:] {
				if point.AdjustedValue > prev {
					t.Errorf("%s %s year %d: value %.2f exceeds prior %.2f",
						entry.Name, trim.Name, point.Year, point.AdjustedValue, prev)
				}
				if point.AdjustedValue < 0 {
					t.Errorf("%s %s year %d: negative value %.2f",
						entry.Name, trim.Name, point.Year, point.AdjustedValue)
				}
				prev = point.AdjustedValue
			}
		}
	}
}

func TestForecastResidualFloor(t *testing.T) {
	f := newTestForecaster()
	vehicle := resolveVehicle(t, "Corolla", "L")

	result, err := f.Forecast(vehicle, testutil.Scenario(), 30)
	if err != nil {
		t.Fatalf("Forecast error: %v", err)
	}
	floor := vehicle.Price * vehicle.Model.ResidualFloorFraction
	final := result.ForecastCurve[len(result.ForecastCurve)-1].AdjustedValue
	if !testutil.CloseEnough(final, floor, constants.CurrencyTolerance) {
		t.Errorf("final value = %.2f, want floor %.2f", final, floor)
	}
}

func TestForecastZeroYears(t *testing.T) {
	f := newTestForecaster()
	vehicle := resolveVehicle(t, "Camry", "LE")

	result, err := f.Forecast(vehicle, testutil.Scenario(), 0)
	if err != nil {
		t.Fatalf("Forecast error: %v", err)
	}
	if len(result.ForecastCurve) != 1 {
		t.Fatalf("expected single-point curve, got %d points", len(result.ForecastCurve))
	}
	if result.TotalDepreciation != 0 {
		t.Errorf("TotalDepreciation = %.2f, want 0", result.TotalDepreciation)
	}
	if result.ConfidenceScore != 100 {
		t.Errorf("ConfidenceScore = %.1f, want 100", result.ConfidenceScore)
	}
}

func TestForecastInternshipTruncatesHorizon(t *testing.T) {
	f := newTestForecaster()
	vehicle := resolveVehicle(t, "Camry", "LE")
	scenario := testutil.Scenario()
	scenario.InternshipLengthMonths = 18

	result, err := f.Forecast(vehicle, scenario, 5)
	if err != nil {
		t.Fatalf("Forecast error: %v", err)
	}
	// 18 months rounds up to 2 years.
	if result.YearsAhead != 2 {
		t.Errorf("YearsAhead = %d, want 2", result.YearsAhead)
	}
	if len(result.ForecastCurve) != 3 {
		t.Errorf("curve length = %d, want 3", len(result.ForecastCurve))
	}
}

func TestForecastMileageIncreasesDepreciation(t *testing.T) {
	f := newTestForecaster()
	vehicle := resolveVehicle(t, "Camry", "LE")

	base, err := f.Forecast(vehicle, testutil.Scenario(), 5)
	if err != nil {
		t.Fatalf("base Forecast error: %v", err)
	}
	heavy := testutil.Scenario()
	heavy.AnnualMiles = 24000
	heavyResult, err := f.Forecast(vehicle, heavy, 5)
	if err != nil {
		t.Fatalf("heavy-mileage Forecast error: %v", err)
	}
	if heavyResult.FinalValue >= base.FinalValue {
		t.Errorf("heavy mileage final %.2f not below baseline %.2f",
			heavyResult.FinalValue, base.FinalValue)
	}
}

func TestForecastInterestRateDepressesValue(t *testing.T) {
	f := newTestForecaster()
	vehicle := resolveVehicle(t, "Camry", "LE")

	base, err := f.Forecast(vehicle, testutil.Scenario(), 5)
	if err != nil {
		t.Fatalf("base Forecast error: %v", err)
	}
	high := testutil.Scenario()
	high.InterestRate = 0.09
	highResult, err := f.Forecast(vehicle, high, 5)
	if err != nil {
		t.Fatalf("high-rate Forecast error: %v", err)
	}
	if highResult.FinalValue >= base.FinalValue {
		t.Errorf("high-rate final %.2f not below baseline %.2f",
			highResult.FinalValue, base.FinalValue)
	}
}

func TestForecastFuelPriceByFuelType(t *testing.T) {
	f := newTestForecaster()
	expensive := testutil.Scenario()
	expensive.FuelPricePerGallon = 5.00

	tests := []struct {
		model     string
		trim      string
		direction string
	}{
		{"Camry", "LE", "down"},
		{"Prius", "LE", "up"},
	}
	for _, tc := range tests {
		vehicle := resolveVehicle(t, tc.model, tc.trim)
		base, err := f.Forecast(vehicle, testutil.Scenario(), 5)
		if err != nil {
			t.Fatalf("base Forecast(%s) error: %v", tc.model, err)
		}
		shifted, err := f.Forecast(vehicle, expensive, 5)
		if err != nil {
			t.Fatalf("shifted Forecast(%s) error: %v", tc.model, err)
		}
		switch tc.direction {
		case "down":
			if shifted.FinalValue >= base.FinalValue {
				t.Errorf("%s: fuel spike final %.2f not below baseline %.2f",
					tc.model, shifted.FinalValue, base.FinalValue)
			}
		case "up":
			if shifted.FinalValue <= base.FinalValue {
				t.Errorf("%s: fuel spike final %.2f not above baseline %.2f",
					tc.model, shifted.FinalValue, base.FinalValue)
			}
		}
	}
}

func TestForecastBandsWiden(t *testing.T) {
	f := newTestForecaster()
	vehicle := resolveVehicle(t, "RAV4", "LE")

	result, err := f.Forecast(vehicle, testutil.Scenario(), 5)
	if err != nil {
		t.Fatalf("Forecast error: %v", err)
	}
	prevRatio := 0.0
	for i, point := range result.ForecastCurve {
		if point.AdjustedValue <= 0 {
			continue
		}
		optimistic := result.Scenarios.Optimistic[i]
		pessimistic := result.Scenarios.Pessimistic[i]
		if optimistic < point.AdjustedValue || pessimistic > point.AdjustedValue {
			t.Errorf("year %d: bands [%.2f, %.2f] do not bracket %.2f",
				point.Year, pessimistic, optimistic, point.AdjustedValue)
		}
		ratio := (optimistic - point.AdjustedValue) / point.AdjustedValue
		if ratio < prevRatio-constants.ScoreTolerance {
			t.Errorf("year %d: band ratio %.4f narrower than prior %.4f",
				point.Year, ratio, prevRatio)
		}
		prevRatio = ratio
	}
}

func TestForecastConfidenceDecays(t *testing.T) {
	f := newTestForecaster()
	vehicle := resolveVehicle(t, "Camry", "LE")

	tests := []struct {
		years int
		want  float64
	}{
		{0, 100},
		{3, 70},
		{5, 50},
		{12, 0},
	}
	for _, tc := range tests {
		result, err := f.Forecast(vehicle, testutil.Scenario(), tc.years)
		if err != nil {
			t.Fatalf("Forecast(%d) error: %v", tc.years, err)
		}
		if result.ConfidenceScore != tc.want {
			t.Errorf("years %d: confidence = %.1f, want %.1f",
				tc.years, result.ConfidenceScore, tc.want)
		}
	}
}

func TestForecastDeterministic(t *testing.T) {
	f := newTestForecaster()
	vehicle := resolveVehicle(t, "Highlander", "XLE")

	first, err := f.Forecast(vehicle, testutil.Scenario(), 5)
	if err != nil {
		t.Fatalf("first Forecast error: %v", err)
	}
	second, err := f.Forecast(vehicle, testutil.Scenario(), 5)
	if err != nil {
		t.Fatalf("second Forecast error: %v", err)
	}
	for i := range first.ForecastCurve {
		if first.ForecastCurve[i] != second.ForecastCurve[i] {
			t.Errorf("year %d: %+v != %+v", i, first.ForecastCurve[i], second.ForecastCurve[i])
		}
	}
}

func TestForecastValidation(t *testing.T) {
	f := newTestForecaster()
	vehicle := resolveVehicle(t, "Camry", "LE")

	if _, err := f.Forecast(vehicle, testutil.Scenario(), -1); err == nil {
		t.Error("expected error for negative yearsAhead")
	} else if errs.KindOf(err) != errs.KindValidation {
		t.Errorf("kind = %s, want %s", errs.KindOf(err), errs.KindValidation)
	}

	bad := testutil.Scenario()
	bad.AnnualMiles = -5
	if _, err := f.Forecast(vehicle, bad, 5); err == nil {
		t.Error("expected error for negative annual miles")
	}

	zeroPriced := vehicle
	zeroPriced.Price = 0
	if _, err := f.Forecast(zeroPriced, testutil.Scenario(), 5); err == nil {
		t.Error("expected error for zero vehicle price")
	}
}
