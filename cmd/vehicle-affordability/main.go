package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iwvelando/vehicle-affordability/internal/affordability"
	"github.com/iwvelando/vehicle-affordability/internal/catalog"
	"github.com/iwvelando/vehicle-affordability/internal/config"
	"github.com/iwvelando/vehicle-affordability/internal/cost"
	"github.com/iwvelando/vehicle-affordability/internal/forecast"
	"github.com/iwvelando/vehicle-affordability/internal/model"
	"github.com/iwvelando/vehicle-affordability/internal/recommend"
	"github.com/iwvelando/vehicle-affordability/internal/salary"
	"github.com/iwvelando/vehicle-affordability/internal/server"
	"github.com/iwvelando/vehicle-affordability/pkg/constants"
	"github.com/iwvelando/vehicle-affordability/pkg/output"
	"github.com/iwvelando/vehicle-affordability/pkg/validation"
)

// version is set at build time via -ldflags.
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	serve := flag.Bool("serve", false, "run the HTTP API server instead of a one-shot report")
	addr := flag.String("addr", "", "listen address override for the HTTP server")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")

	creditScore := flag.Int("credit-score", 750, "credit score for the one-shot report")
	annualSalary := flag.Float64("salary", 80000, "annual salary for the one-shot report")
	monthlyBudget := flag.Float64("budget", 600, "monthly vehicle budget for the one-shot report")
	leaseTerm := flag.Int("term", 36, "financing term in months for the one-shot report")
	vehicleModel := flag.String("model", "", "vehicle model filter for the one-shot report")
	vehicleTrim := flag.String("trim", "", "vehicle trim filter for the one-shot report")
	forecastYears := flag.Int("years", constants.DefaultForecastYears, "forecast horizon in years")
	flag.Parse()

	// Optional .env for local overrides; absence is not an error.
	_ = godotenv.Load()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if *serve {
		runServer(conf, logger, *serverConfigLocation, *addr)
		return
	}

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	profile := model.FinancialProfile{
		CreditScore:     *creditScore,
		AnnualIncome:    *annualSalary,
		Salary:          *annualSalary,
		MonthlyBudget:   *monthlyBudget,
		LeaseTermMonths: *leaseTerm,
	}
	prefs := model.VehiclePreferences{
		Model: *vehicleModel,
		Trim:  *vehicleTrim,
	}

	runReport(conf, logger, profile, prefs, *forecastYears, outputFormat)
}

func runServer(conf *config.Configuration, logger *zap.Logger, serverConfigLocation, addrOverride string) {
	serverConf, err := server.LoadConfig(serverConfigLocation)
	if err != nil {
		logger.Fatal("failed to load server configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if addrOverride != "" {
		serverConf.Address = addrOverride
	}

	handler := server.NewHandler(conf, logger, serverConf.RequestSizeBytes(), version)

	logger.Info("starting HTTP server",
		zap.String("op", "main"),
		zap.String("address", serverConf.Address),
		zap.String("version", version),
	)
	if err := http.ListenAndServe(serverConf.Address, handler); err != nil {
		logger.Fatal("server terminated",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

func runReport(
	conf *config.Configuration,
	logger *zap.Logger,
	profile model.FinancialProfile,
	prefs model.VehiclePreferences,
	forecastYears int,
	outputFormat string,
) {
	cat := catalog.New(conf.Catalog, conf.Forecasting.ResidualFloorFraction)
	estimator := salary.NewEstimator(conf.Assumptions, logger)
	calculator := cost.NewCalculator(conf.Assumptions, logger)
	index := affordability.NewIndex(conf.Scoring.Components, logger)
	engine := recommend.NewEngine(cat, estimator, calculator, index, conf.Scoring.Recommendation, logger)
	forecaster := forecast.NewForecaster(conf.Forecasting, conf.Assumptions, logger)

	scenario := model.ScenarioAdjustments{}
	scenario.ApplyDefaults()

	estimate, err := estimator.Estimate(profile)
	if err != nil {
		logger.Fatal("failed to estimate net pay",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	recommendations, err := engine.Recommend(profile, prefs, scenario)
	if err != nil {
		logger.Fatal("failed to compute recommendations",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	top := recommendations.Recommendations[0]
	vehicle, err := cat.Resolve(model.VehiclePreferences{Model: top.Model, Trim: top.Trim})
	if err != nil {
		logger.Fatal("failed to resolve top recommendation",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	valueForecast, err := forecaster.Forecast(vehicle, scenario, forecastYears)
	if err != nil {
		logger.Fatal("failed to forecast value",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettySalary(estimate)
		fmt.Println()
		output.PrettyRecommendations(recommendations)
		fmt.Println()
		output.PrettyForecast(valueForecast)
	case constants.OutputFormatCSV:
		fmt.Print(output.SalaryCsvString(estimate))
		output.CsvRecommendations(recommendations)
		output.CsvForecast(valueForecast)
	}
}
