// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config. Every constant
// the engine's documentation describes only qualitatively (tax brackets,
// volatility coefficient, depreciation tables, band widths, scoring
// weights) is configuration here, with defaults supplied by
// DefaultConfiguration.
package config

import (
	"fmt"

	"github.com/iwvelando/vehicle-affordability/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for vehicle-affordability.
type Configuration struct {
	Assumptions Assumptions       `yaml:"assumptions"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Forecasting ForecastingConfig `yaml:"forecasting"`
	Catalog     []ModelEntry      `yaml:"catalog"`
	Logging     LoggingConfig     `yaml:"logging,omitempty"`
	Output      OutputConfig      `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// TaxBracket is one federal bracket: the rate applies to income above
// Floor up to the next bracket's floor.
type TaxBracket struct {
	Floor float64 `yaml:"floor"`
	Rate  float64 `yaml:"rate"`
}

// Assumptions holds the financial modeling constants shared across
// components.
type Assumptions struct {
	TaxBrackets            []TaxBracket `yaml:"taxBrackets"`
	StateTaxRate           float64      `yaml:"stateTaxRate"`
	SocialSecurityRate     float64      `yaml:"socialSecurityRate"`
	SocialSecurityWageBase float64      `yaml:"socialSecurityWageBase"`
	MedicareRate           float64      `yaml:"medicareRate"`
	VolatilityFactor       float64      `yaml:"volatilityFactor"`
	BaseInterestRate       float64      `yaml:"baseInterestRate"`
	BaseFuelPrice          float64      `yaml:"baseFuelPrice"`
	DownPaymentFraction    float64      `yaml:"downPaymentFraction"`
	SalesTaxRate           float64      `yaml:"salesTaxRate"`
	FixedAnnualFees        float64      `yaml:"fixedAnnualFees"`
	GuardrailFraction      float64      `yaml:"guardrailFraction"`
}

// ComponentWeights holds the affordability index component weights. The
// five weights must sum to 1.
type ComponentWeights struct {
	DebtToIncome        float64 `yaml:"debtToIncome"`
	CreditScore         float64 `yaml:"creditScore"`
	BudgetAlignment     float64 `yaml:"budgetAlignment"`
	IncomeStability     float64 `yaml:"incomeStability"`
	TermAppropriateness float64 `yaml:"termAppropriateness"`
}

// RecommendationWeights holds the blend applied to each recommendation
// candidate's sub-scores. The three weights must sum to 1.
type RecommendationWeights struct {
	PersonalMatch float64 `yaml:"personalMatch"`
	Reliability   float64 `yaml:"reliability"`
	Affordability float64 `yaml:"affordability"`
}

// ScoringConfig groups the scoring weight tables.
type ScoringConfig struct {
	Components     ComponentWeights      `yaml:"components"`
	Recommendation RecommendationWeights `yaml:"recommendation"`
}

// ForecastingConfig holds the depreciation and uncertainty model
// constants.
type ForecastingConfig struct {
	EarlyYearFactor         float64 `yaml:"earlyYearFactor"`         // depreciation multiplier for early years
	LateYearFactor          float64 `yaml:"lateYearFactor"`          // depreciation multiplier after the cutoff
	EarlyYearCutoff         int     `yaml:"earlyYearCutoff"`         // last year the early factor applies
	MileageSensitivity      float64 `yaml:"mileageSensitivity"`      // rate adjustment per reference mileage above baseline
	InterestRateSensitivity float64 `yaml:"interestRateSensitivity"` // value shift per unit of rate above baseline
	FuelEffectGasoline      float64 `yaml:"fuelEffectGasoline"`      // value shift per relative fuel price delta
	FuelEffectHybrid        float64 `yaml:"fuelEffectHybrid"`
	FuelEffectElectric      float64 `yaml:"fuelEffectElectric"`
	BandBase                float64 `yaml:"bandBase"`                // 68% band width at year zero
	BandGrowth              float64 `yaml:"bandGrowth"`              // band widening per forecast year
	ConfidenceDecayPerYear  float64 `yaml:"confidenceDecayPerYear"`  // confidence score lost per forecast year
	ResidualFloorFraction   float64 `yaml:"residualFloorFraction"`   // default minimum value fraction
}

// TrimEntry is one trim within a model: its catalog price and how strongly
// the trim retains value (higher retains better).
type TrimEntry struct {
	Name            string  `yaml:"name"`
	Price           float64 `yaml:"price"`
	RetentionFactor float64 `yaml:"retentionFactor"`
}

// ModelEntry is the static reference data for one vehicle model.
type ModelEntry struct {
	Name                   string      `yaml:"name"`
	FuelType               string      `yaml:"fuelType"` // gasoline, hybrid, electric
	BasePrice              float64     `yaml:"basePrice"`
	MPG                    float64     `yaml:"mpg"` // MPGe-equivalent for hybrid/electric
	Reliability            float64     `yaml:"reliability"`
	AnnualDepreciationRate float64     `yaml:"annualDepreciationRate"`
	MaintenanceRate        float64     `yaml:"maintenanceRate"` // annual fraction of price
	BaseInsuranceMonthly   float64     `yaml:"baseInsuranceMonthly"`
	ResidualFloorFraction  float64     `yaml:"residualFloorFraction,omitempty"` // overrides the forecasting default
	Residual36             float64     `yaml:"residual36"`                      // residual fraction at 36 months
	Residual48             float64     `yaml:"residual48"`                      // residual fraction at 48+ months
	Trims                  []TrimEntry `yaml:"trims"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there, layered over the built-in defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	configuration := DefaultConfiguration()
	err := viper.Unmarshal(configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return configuration, nil
}

// ValidateConfiguration performs general validation of the configuration
// and returns warnings for values that are legal but suspicious.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	sum := c.Scoring.Components.DebtToIncome + c.Scoring.Components.CreditScore +
		c.Scoring.Components.BudgetAlignment + c.Scoring.Components.IncomeStability +
		c.Scoring.Components.TermAppropriateness
	if sum < 0.999 || sum > 1.001 {
		warnings = append(warnings, fmt.Sprintf("affordability component weights sum to %.3f, expected 1.0", sum))
	}

	recSum := c.Scoring.Recommendation.PersonalMatch + c.Scoring.Recommendation.Reliability +
		c.Scoring.Recommendation.Affordability
	if recSum < 0.999 || recSum > 1.001 {
		warnings = append(warnings, fmt.Sprintf("recommendation weights sum to %.3f, expected 1.0", recSum))
	}

	if len(c.Catalog) == 0 {
		warnings = append(warnings, "catalog is empty; all model lookups will fail")
	}

	for _, entry := range c.Catalog {
		if entry.BasePrice <= 0 {
			warnings = append(warnings, fmt.Sprintf("model %q has non-positive base price", entry.Name))
		}
		if entry.MPG <= 0 {
			warnings = append(warnings, fmt.Sprintf("model %q has non-positive fuel efficiency", entry.Name))
		}
		if entry.AnnualDepreciationRate <= 0 || entry.AnnualDepreciationRate >= 1 {
			warnings = append(warnings, fmt.Sprintf("model %q depreciation rate %.2f outside (0, 1)", entry.Name, entry.AnnualDepreciationRate))
		}
		if len(entry.Trims) == 0 {
			warnings = append(warnings, fmt.Sprintf("model %q has no trims", entry.Name))
		}
	}

	for i := 1; i < len(c.Assumptions.TaxBrackets); i++ {
		if c.Assumptions.TaxBrackets[i].Floor <= c.Assumptions.TaxBrackets[i-1].Floor {
			warnings = append(warnings, "tax brackets are not strictly increasing by floor")
			break
		}
	}

	if c.Output.Format != "" &&
		c.Output.Format != constants.OutputFormatPretty &&
		c.Output.Format != constants.OutputFormatCSV {
		warnings = append(warnings, fmt.Sprintf("unknown output format %q", c.Output.Format))
	}

	return warnings
}
