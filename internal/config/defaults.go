package config

// DefaultConfiguration returns the built-in modeling constants and the
// static Toyota reference catalog. The engine is fully functional with
// these values; a YAML config overrides them selectively.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Assumptions: Assumptions{
			// Simplified 2024 federal brackets.
			TaxBrackets: []TaxBracket{
				{Floor: 0, Rate: 0.10},
				{Floor: 11000, Rate: 0.12},
				{Floor: 44725, Rate: 0.22},
				{Floor: 95375, Rate: 0.24},
				{Floor: 201050, Rate: 0.32},
				{Floor: 243725, Rate: 0.35},
				{Floor: 609350, Rate: 0.37},
			},
			StateTaxRate:           0.05,
			SocialSecurityRate:     0.062,
			SocialSecurityWageBase: 168600,
			MedicareRate:           0.0145,
			VolatilityFactor:       0.15,
			BaseInterestRate:       0.05,
			BaseFuelPrice:          3.50,
			DownPaymentFraction:    0.10,
			SalesTaxRate:           0.07,
			FixedAnnualFees:        200, // registration + inspection
			GuardrailFraction:      0.20,
		},
		Scoring: ScoringConfig{
			Components: ComponentWeights{
				DebtToIncome:        0.30,
				CreditScore:         0.25,
				BudgetAlignment:     0.20,
				IncomeStability:     0.15,
				TermAppropriateness: 0.10,
			},
			Recommendation: RecommendationWeights{
				PersonalMatch: 0.50,
				Reliability:   0.30,
				Affordability: 0.20,
			},
		},
		Forecasting: ForecastingConfig{
			EarlyYearFactor:         1.2,
			LateYearFactor:          0.8,
			EarlyYearCutoff:         3,
			MileageSensitivity:      0.1,
			InterestRateSensitivity: -0.1,
			FuelEffectGasoline:      -0.05,
			FuelEffectHybrid:        0.03,
			FuelEffectElectric:      0.05,
			BandBase:                0.15,
			BandGrowth:              0.10,
			ConfidenceDecayPerYear:  10,
			ResidualFloorFraction:   0.10,
		},
		Catalog: defaultCatalog(),
	}
}

func defaultCatalog() []ModelEntry {
	return []ModelEntry{
		{
			Name:                   "Camry",
			FuelType:               "gasoline",
			BasePrice:              26500,
			MPG:                    32,
			Reliability:            95,
			AnnualDepreciationRate: 0.15,
			MaintenanceRate:        0.045,
			BaseInsuranceMonthly:   120,
			Residual36:             0.60,
			Residual48:             0.50,
			Trims: []TrimEntry{
				{Name: "LE", Price: 27800, RetentionFactor: 1.00},
				{Name: "SE", Price: 29100, RetentionFactor: 1.02},
				{Name: "XLE", Price: 30400, RetentionFactor: 1.05},
				{Name: "XSE", Price: 30400, RetentionFactor: 1.04},
			},
		},
		{
			Name:                   "Corolla",
			FuelType:               "gasoline",
			BasePrice:              21500,
			MPG:                    33,
			Reliability:            98,
			AnnualDepreciationRate: 0.12,
			MaintenanceRate:        0.04,
			BaseInsuranceMonthly:   110,
			Residual36:             0.65,
			Residual48:             0.55,
			Trims: []TrimEntry{
				{Name: "L", Price: 21500, RetentionFactor: 0.98},
				{Name: "LE", Price: 22500, RetentionFactor: 1.00},
				{Name: "SE", Price: 23500, RetentionFactor: 1.02},
				{Name: "XLE", Price: 24500, RetentionFactor: 1.05},
				{Name: "XSE", Price: 24500, RetentionFactor: 1.04},
			},
		},
		{
			Name:                   "RAV4",
			FuelType:               "gasoline",
			BasePrice:              31000,
			MPG:                    28,
			Reliability:            92,
			AnnualDepreciationRate: 0.18,
			MaintenanceRate:        0.05,
			BaseInsuranceMonthly:   125,
			Residual36:             0.58,
			Residual48:             0.48,
			Trims: []TrimEntry{
				{Name: "LE", Price: 31000, RetentionFactor: 1.00},
				{Name: "XLE", Price: 33000, RetentionFactor: 1.05},
				{Name: "XLE Premium", Price: 35000, RetentionFactor: 1.06},
				{Name: "Limited", Price: 37000, RetentionFactor: 1.08},
				{Name: "Adventure", Price: 36000, RetentionFactor: 1.06},
			},
		},
		{
			Name:                   "Highlander",
			FuelType:               "gasoline",
			BasePrice:              36500,
			MPG:                    24,
			Reliability:            90,
			AnnualDepreciationRate: 0.20,
			MaintenanceRate:        0.055,
			BaseInsuranceMonthly:   132,
			Residual36:             0.55,
			Residual48:             0.45,
			Trims: []TrimEntry{
				{Name: "L", Price: 36500, RetentionFactor: 0.98},
				{Name: "LE", Price: 38000, RetentionFactor: 1.00},
				{Name: "XLE", Price: 40000, RetentionFactor: 1.05},
				{Name: "Limited", Price: 43000, RetentionFactor: 1.08},
				{Name: "Platinum", Price: 46000, RetentionFactor: 1.10},
			},
		},
		{
			Name:                   "Prius",
			FuelType:               "hybrid",
			BasePrice:              27500,
			MPG:                    52,
			Reliability:            96,
			AnnualDepreciationRate: 0.14,
			MaintenanceRate:        0.045,
			BaseInsuranceMonthly:   115,
			Residual36:             0.62,
			Residual48:             0.52,
			Trims: []TrimEntry{
				{Name: "LE", Price: 27500, RetentionFactor: 1.00},
				{Name: "XLE", Price: 29000, RetentionFactor: 1.05},
				{Name: "Limited", Price: 31000, RetentionFactor: 1.08},
			},
		},
		{
			Name:                   "4Runner",
			FuelType:               "gasoline",
			BasePrice:              38500,
			MPG:                    17,
			Reliability:            94,
			AnnualDepreciationRate: 0.16,
			MaintenanceRate:        0.06,
			BaseInsuranceMonthly:   132,
			Residual36:             0.70,
			Residual48:             0.60,
			Trims: []TrimEntry{
				{Name: "SR5", Price: 38500, RetentionFactor: 1.00},
				{Name: "TRD Off-Road", Price: 42000, RetentionFactor: 1.10},
				{Name: "Limited", Price: 45000, RetentionFactor: 1.08},
				{Name: "TRD Pro", Price: 50000, RetentionFactor: 1.12},
			},
		},
	}
}
