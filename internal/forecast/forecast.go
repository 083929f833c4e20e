// Package forecast produces multi-year vehicle value curves with
// confidence bands. The model compounds a per-model depreciation rate
// adjusted for trim retention, mileage, and macro conditions, and is fully
// deterministic: identical inputs always produce identical curves.
package forecast

import (
	"go.uber.org/zap"

	"github.com/iwvelando/vehicle-affordability/internal/catalog"
	"github.com/iwvelando/vehicle-affordability/internal/config"
	"github.com/iwvelando/vehicle-affordability/internal/model"
	"github.com/iwvelando/vehicle-affordability/pkg/constants"
	"github.com/iwvelando/vehicle-affordability/pkg/mathutil"
	"github.com/iwvelando/vehicle-affordability/pkg/validation"
)

// Point is one year of the forecast curve. Depreciation is cumulative
// from year zero.
type Point struct {
	Year                int     `json:"year"`
	AdjustedValue       float64 `json:"adjusted_value"`
	Depreciation        float64 `json:"depreciation"`
	DepreciationPercent float64 `json:"depreciation_percentage"`
}

// Bands holds the symmetric 68% confidence band around the base curve;
// both sequences parallel the forecast curve. A 95% band is obtained by
// doubling the band width.
type Bands struct {
	Optimistic  []float64 `json:"optimistic"`
	Pessimistic []float64 `json:"pessimistic"`
}

// Factors echoes the inputs that shaped the forecast.
type Factors struct {
	Model        string  `json:"model"`
	Trim         string  `json:"trim"`
	AnnualMiles  int     `json:"annual_miles"`
	InterestRate float64 `json:"interest_rate"`
	FuelPrice    float64 `json:"fuel_price"`
}

// Result is the full forecast response.
type Result struct {
	InitialValue             float64 `json:"initial_value"`
	FinalValue               float64 `json:"final_value"`
	TotalDepreciation        float64 `json:"total_depreciation"`
	TotalDepreciationPercent float64 `json:"total_depreciation_percentage"`
	YearsAhead               int     `json:"years_ahead"`
	ConfidenceScore          float64 `json:"confidence_score"`
	ForecastCurve            []Point `json:"forecast_curve"`
	Scenarios                Bands   `json:"scenarios"`
	Factors                  Factors `json:"factors"`
}

// Forecaster computes value curves from the configured depreciation and
// uncertainty model.
type Forecaster struct {
	forecasting config.ForecastingConfig
	assumptions config.Assumptions
	logger      *zap.Logger
}

// NewForecaster constructs a Forecaster.
func NewForecaster(forecasting config.ForecastingConfig, assumptions config.Assumptions, logger *zap.Logger) *Forecaster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Forecaster{forecasting: forecasting, assumptions: assumptions, logger: logger}
}

// Forecast projects the vehicle's value yearsAhead years out. An
// internship length in the scenario truncates the effective horizon to
// the internship duration rounded up to whole years. yearsAhead of zero
// yields a single-point curve with zero depreciation and full confidence.
func (f *Forecaster) Forecast(
	vehicle catalog.Configuration,
	scenario model.ScenarioAdjustments,
	yearsAhead int,
) (*Result, error) {
	if err := validation.ValidateScenario(scenario); err != nil {
		return nil, err
	}
	if err := validation.ValidateYearsAhead(yearsAhead); err != nil {
		return nil, err
	}
	if err := validation.ValidatePrice(vehicle.Price); err != nil {
		return nil, err
	}
	scenario.ApplyDefaults()

	horizon := yearsAhead
	if scenario.InternshipLengthMonths > 0 {
		internshipYears := (scenario.InternshipLengthMonths + constants.MonthsPerYear - 1) / constants.MonthsPerYear
		if internshipYears < horizon {
			horizon = internshipYears
		}
	}

	initialValue := vehicle.Price
	rate := scenario.BaseRate(f.assumptions.BaseInterestRate)
	macro := f.macroMultiplier(rate, scenario.FuelPricePerGallon, vehicle.Model.FuelType)
	floor := initialValue * vehicle.Model.ResidualFloorFraction

	// Trim retention divides the base rate (higher trims depreciate
	// slower); extra mileage multiplies it.
	baseRate := vehicle.Model.AnnualDepreciationRate / vehicle.Trim.RetentionFactor
	mileageFactor := 1 + float64(scenario.AnnualMiles-constants.DefaultAnnualMiles)/
		float64(constants.DefaultAnnualMiles)*f.forecasting.MileageSensitivity
	baseRate *= mathutil.Max(mileageFactor, 0)

	curve := make([]Point, 0, horizon+1)
	bands := Bands{
		Optimistic:  make([]float64, 0, horizon+1),
		Pessimistic: make([]float64, 0, horizon+1),
	}

	rawValue := initialValue
	for year := 0; year <= horizon; year++ {
		adjusted := initialValue
		if year > 0 {
			effectiveRate := baseRate * f.forecasting.LateYearFactor
			if year <= f.forecasting.EarlyYearCutoff {
				effectiveRate = baseRate * f.forecasting.EarlyYearFactor
			}
			effectiveRate = mathutil.Clamp(effectiveRate, 0, 0.99)
			rawValue *= 1 - effectiveRate
			adjusted = mathutil.Max(rawValue*macro, floor)
		}

		depreciation := initialValue - adjusted
		curve = append(curve, Point{
			Year:                year,
			AdjustedValue:       mathutil.Round(adjusted),
			Depreciation:        mathutil.Round(depreciation),
			DepreciationPercent: mathutil.Round(mathutil.CalculatePercentage(depreciation, initialValue)),
		})

		bandWidth := f.forecasting.BandBase * (1 + f.forecasting.BandGrowth*float64(year))
		bands.Optimistic = append(bands.Optimistic, mathutil.Round(adjusted*(1+bandWidth)))
		bands.Pessimistic = append(bands.Pessimistic, mathutil.Round(mathutil.FloorZero(adjusted*(1-bandWidth))))
	}

	finalValue := curve[len(curve)-1].AdjustedValue
	totalDepreciation := initialValue - finalValue

	result := &Result{
		InitialValue:             mathutil.Round(initialValue),
		FinalValue:               finalValue,
		TotalDepreciation:        mathutil.Round(totalDepreciation),
		TotalDepreciationPercent: mathutil.Round(mathutil.CalculatePercentage(totalDepreciation, initialValue)),
		YearsAhead:               horizon,
		ConfidenceScore:          mathutil.ClampScore(100 - f.forecasting.ConfidenceDecayPerYear*float64(horizon)),
		ForecastCurve:            curve,
		Scenarios:                bands,
		Factors: Factors{
			Model:        vehicle.Model.Name,
			Trim:         vehicle.Trim.Name,
			AnnualMiles:  scenario.AnnualMiles,
			InterestRate: rate,
			FuelPrice:    scenario.FuelPricePerGallon,
		},
	}

	f.logger.Debug("value forecast computed",
		zap.String("op", "forecast.Forecast"),
		zap.String("model", vehicle.Model.Name),
		zap.String("trim", vehicle.Trim.Name),
		zap.Int("years", horizon),
		zap.Float64("final_value", finalValue),
	)

	return result, nil
}

// macroMultiplier scales the curve for interest-rate and fuel-price
// conditions. Higher rates depress values; rising fuel prices depress
// gasoline values and lift hybrid/electric values, with the reverse below
// the baseline. Each factor is floored at zero.
func (f *Forecaster) macroMultiplier(interestRate, fuelPrice float64, fuelType catalog.FuelType) float64 {
	interestEffect := (interestRate - f.assumptions.BaseInterestRate) * f.forecasting.InterestRateSensitivity

	fuelDelta := 0.0
	if f.assumptions.BaseFuelPrice > 0 {
		fuelDelta = (fuelPrice - f.assumptions.BaseFuelPrice) / f.assumptions.BaseFuelPrice
	}
	fuelEffect := fuelDelta * f.fuelCoefficient(fuelType)

	return mathutil.FloorZero(1+interestEffect) * mathutil.FloorZero(1+fuelEffect)
}

// fuelCoefficient dispatches the fuel-price sensitivity through the
// per-variant coefficient table.
func (f *Forecaster) fuelCoefficient(fuelType catalog.FuelType) float64 {
	switch fuelType {
	case catalog.FuelHybrid:
		return f.forecasting.FuelEffectHybrid
	case catalog.FuelElectric:
		return f.forecasting.FuelEffectElectric
	default:
		return f.forecasting.FuelEffectGasoline
	}
}
