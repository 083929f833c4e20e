// Package constants provides shared constants for the vehicle-affordability application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// ScoreTolerance is the tolerance for comparing 0-100 scores
	ScoreTolerance = 0.001
)

// Scenario defaults applied when request fields are omitted.
const (
	// DefaultAnnualMiles is the reference annual mileage
	DefaultAnnualMiles = 12000

	// DefaultFuelPricePerGallon is the baseline national fuel price
	DefaultFuelPricePerGallon = 3.50

	// DefaultBaseInterestRate is the baseline annual interest rate
	DefaultBaseInterestRate = 0.05

	// DefaultForecastYears is the forecast horizon when unspecified
	DefaultForecastYears = 5
)

// Profile validation bounds
const (
	// MinCreditScore is the lowest valid FICO score
	MinCreditScore = 300

	// MaxCreditScore is the highest valid FICO score
	MaxCreditScore = 850

	// MinLeaseTermMonths is the shortest supported financing term
	MinLeaseTermMonths = 12

	// MaxLeaseTermMonths is the longest supported financing term
	MaxLeaseTermMonths = 72
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestBytes is the default maximum JSON request body size (256 KB)
	DefaultMaxRequestBytes int64 = 256 * 1024
)
