// Package server exposes the affordability engine over HTTP. Every
// endpoint is stateless: requests carry the full financial profile and
// scenario, so concurrent requests share only the read-only catalog and
// configuration.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/iwvelando/vehicle-affordability/internal/affordability"
	"github.com/iwvelando/vehicle-affordability/internal/backtest"
	"github.com/iwvelando/vehicle-affordability/internal/catalog"
	"github.com/iwvelando/vehicle-affordability/internal/config"
	"github.com/iwvelando/vehicle-affordability/internal/cost"
	"github.com/iwvelando/vehicle-affordability/internal/forecast"
	"github.com/iwvelando/vehicle-affordability/internal/model"
	"github.com/iwvelando/vehicle-affordability/internal/recommend"
	"github.com/iwvelando/vehicle-affordability/internal/salary"
	"github.com/iwvelando/vehicle-affordability/pkg/constants"
	"github.com/iwvelando/vehicle-affordability/pkg/errs"
)

type handler struct {
	catalog        *catalog.Catalog
	estimator      *salary.Estimator
	calculator     *cost.Calculator
	forecaster     *forecast.Forecaster
	index          *affordability.Index
	engine         *recommend.Engine
	harness        *backtest.Harness
	logger         *zap.Logger
	maxRequestSize int64
	version        string
	metrics        *metrics
}

// NewHandler constructs the HTTP handler serving the affordability API.
func NewHandler(cfg *config.Configuration, logger *zap.Logger, maxRequestSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestBytes
	}
	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	cat := catalog.New(cfg.Catalog, cfg.Forecasting.ResidualFloorFraction)
	estimator := salary.NewEstimator(cfg.Assumptions, logger)
	calculator := cost.NewCalculator(cfg.Assumptions, logger)
	forecaster := forecast.NewForecaster(cfg.Forecasting, cfg.Assumptions, logger)
	index := affordability.NewIndex(cfg.Scoring.Components, logger)

	h := &handler{
		catalog:        cat,
		estimator:      estimator,
		calculator:     calculator,
		forecaster:     forecaster,
		index:          index,
		engine:         recommend.NewEngine(cat, estimator, calculator, index, cfg.Scoring.Recommendation, logger),
		harness:        backtest.NewHarness(forecaster, logger),
		logger:         logger,
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
		metrics:        newMetrics(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/estimate-salary", h.handleEstimateSalary)
	mux.HandleFunc("/api/calculate-monthly-cost", h.handleCalculateMonthlyCost)
	mux.HandleFunc("/api/forecast-value", h.handleForecastValue)
	mux.HandleFunc("/api/affordability-index", h.handleAffordabilityIndex)
	mux.HandleFunc("/api/recommendations", h.handleRecommendations)
	mux.HandleFunc("/api/backtest", h.handleBacktest)
	mux.HandleFunc("/api/models", h.handleModels)
	mux.HandleFunc("/api/data-sources", h.handleDataSources)
	mux.HandleFunc("/api/version", h.handleVersion)
	mux.Handle("/metrics", promhttp.HandlerFor(h.metrics.registry, promhttp.HandlerOpts{}))

	return mux
}

// analysisRequest is the shared request shape for the analysis endpoints.
// Endpoints ignore the sections they do not use.
type analysisRequest struct {
	Profile    model.FinancialProfile    `json:"financial_profile"`
	Vehicle    model.VehiclePreferences  `json:"vehicle_preferences"`
	Scenario   model.ScenarioAdjustments `json:"scenario_adjustments"`
	YearsAhead *int                      `json:"years_ahead,omitempty"`
	Cohort     []backtest.Observation    `json:"cohort,omitempty"`
}

func (h *handler) handleEstimateSalary(w http.ResponseWriter, r *http.Request) {
	const endpoint = "estimate-salary"
	req, requestID, ok := h.decodeAnalysisRequest(w, r, endpoint)
	if !ok {
		return
	}
	start := time.Now()

	estimate, err := h.estimator.Estimate(req.Profile)
	if err != nil {
		h.respondDomainError(w, endpoint, requestID, err)
		return
	}

	h.observe(endpoint, start, http.StatusOK)
	h.writeJSON(w, http.StatusOK, estimate)
}

func (h *handler) handleCalculateMonthlyCost(w http.ResponseWriter, r *http.Request) {
	const endpoint = "calculate-monthly-cost"
	req, requestID, ok := h.decodeAnalysisRequest(w, r, endpoint)
	if !ok {
		return
	}
	start := time.Now()

	vehicle, err := h.catalog.Resolve(req.Vehicle)
	if err != nil {
		h.respondDomainError(w, endpoint, requestID, err)
		return
	}
	netPay, err := h.estimator.Estimate(req.Profile)
	if err != nil {
		h.respondDomainError(w, endpoint, requestID, err)
		return
	}
	result, err := h.calculator.Calculate(req.Profile, vehicle, req.Scenario, netPay)
	if err != nil {
		h.respondDomainError(w, endpoint, requestID, err)
		return
	}

	h.observe(endpoint, start, http.StatusOK)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleForecastValue(w http.ResponseWriter, r *http.Request) {
	const endpoint = "forecast-value"
	req, requestID, ok := h.decodeAnalysisRequest(w, r, endpoint)
	if !ok {
		return
	}
	start := time.Now()

	years := constants.DefaultForecastYears
	if req.YearsAhead != nil {
		years = *req.YearsAhead
	}

	vehicle, err := h.catalog.Resolve(req.Vehicle)
	if err != nil {
		h.respondDomainError(w, endpoint, requestID, err)
		return
	}
	result, err := h.forecaster.Forecast(vehicle, req.Scenario, years)
	if err != nil {
		h.respondDomainError(w, endpoint, requestID, err)
		return
	}

	h.observe(endpoint, start, http.StatusOK)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleAffordabilityIndex(w http.ResponseWriter, r *http.Request) {
	const endpoint = "affordability-index"
	req, requestID, ok := h.decodeAnalysisRequest(w, r, endpoint)
	if !ok {
		return
	}
	start := time.Now()

	vehicle, err := h.catalog.Resolve(req.Vehicle)
	if err != nil {
		h.respondDomainError(w, endpoint, requestID, err)
		return
	}
	netPay, err := h.estimator.Estimate(req.Profile)
	if err != nil {
		h.respondDomainError(w, endpoint, requestID, err)
		return
	}
	costResult, err := h.calculator.Calculate(req.Profile, vehicle, req.Scenario, netPay)
	if err != nil {
		h.respondDomainError(w, endpoint, requestID, err)
		return
	}
	score, err := h.index.Evaluate(req.Profile, costResult.Breakdown.Total, netPay)
	if err != nil {
		h.respondDomainError(w, endpoint, requestID, err)
		return
	}

	h.observe(endpoint, start, http.StatusOK)
	h.writeJSON(w, http.StatusOK, score)
}

func (h *handler) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	const endpoint = "recommendations"
	req, requestID, ok := h.decodeAnalysisRequest(w, r, endpoint)
	if !ok {
		return
	}
	start := time.Now()

	result, err := h.engine.Recommend(req.Profile, req.Vehicle, req.Scenario)
	if err != nil {
		h.respondDomainError(w, endpoint, requestID, err)
		return
	}

	h.observe(endpoint, start, http.StatusOK)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleBacktest(w http.ResponseWriter, r *http.Request) {
	const endpoint = "backtest"
	req, requestID, ok := h.decodeAnalysisRequest(w, r, endpoint)
	if !ok {
		return
	}
	start := time.Now()

	vehicle, err := h.catalog.Resolve(req.Vehicle)
	if err != nil {
		h.respondDomainError(w, endpoint, requestID, err)
		return
	}
	metrics, err := h.harness.Evaluate(vehicle, req.Scenario, req.Cohort)
	if err != nil {
		h.respondDomainError(w, endpoint, requestID, err)
		return
	}

	h.observe(endpoint, start, http.StatusOK)
	h.writeJSON(w, http.StatusOK, metrics)
}

func (h *handler) handleModels(w http.ResponseWriter, r *http.Request) {
	const endpoint = "models"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	start := time.Now()

	listings := h.catalog.Listings()
	h.observe(endpoint, start, http.StatusOK)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"models": listings,
		"total":  len(listings),
	})
}

// dataSource describes one upstream data provider behind the engine's
// assumptions.
type dataSource struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	RefreshCadence string `json:"refresh_cadence"`
	LastUpdated    string `json:"last_updated"`
}

func (h *handler) handleDataSources(w http.ResponseWriter, r *http.Request) {
	const endpoint = "data-sources"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	start := time.Now()

	sources := []dataSource{
		{
			Name:           "Salary Data",
			Type:           "Licensed",
			RefreshCadence: "Daily",
			LastUpdated:    "2024-01-15",
		},
		{
			Name:           "Vehicle Pricing",
			Type:           "Licensed",
			RefreshCadence: "Weekly",
			LastUpdated:    "2024-01-14",
		},
		{
			Name:           "Interest Rates",
			Type:           "Public API",
			RefreshCadence: "Daily",
			LastUpdated:    "2024-01-15",
		},
		{
			Name:           "Gas Prices",
			Type:           "Public API",
			RefreshCadence: "Weekly",
			LastUpdated:    "2024-01-14",
		},
	}

	h.observe(endpoint, start, http.StatusOK)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"sources":    sources,
		"disclaimer": "All estimates are informational and not financial advice.",
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeAnalysisRequest enforces the POST method, applies the request
// body limit, decodes the shared request shape, and assigns a request ID.
func (h *handler) decodeAnalysisRequest(w http.ResponseWriter, r *http.Request, endpoint string) (analysisRequest, string, bool) {
	var req analysisRequest

	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return req, "", false
	}

	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)

	if h.maxRequestSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, endpoint, requestID, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize))
			return req, "", false
		}
		h.respondError(w, endpoint, requestID, http.StatusBadRequest,
			fmt.Sprintf("failed to decode request: %v", err))
		return req, "", false
	}

	return req, requestID, true
}

// respondDomainError maps engine error kinds onto HTTP status codes.
func (h *handler) respondDomainError(w http.ResponseWriter, endpoint, requestID string, err error) {
	status := http.StatusInternalServerError
	kind := errs.KindOf(err)
	switch kind {
	case errs.KindValidation:
		status = http.StatusBadRequest
	case errs.KindNotFound:
		status = http.StatusNotFound
	}
	label := string(kind)
	if label == "" {
		label = "internal"
	}
	h.respondErrorKind(w, endpoint, requestID, status, label, err.Error())
}

func (h *handler) respondError(w http.ResponseWriter, endpoint, requestID string, status int, msg string) {
	h.respondErrorKind(w, endpoint, requestID, status, "decode", msg)
}

func (h *handler) respondErrorKind(w http.ResponseWriter, endpoint, requestID string, status int, kind, msg string) {
	h.metrics.requestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", status)).Inc()
	h.metrics.requestFailures.WithLabelValues(endpoint, kind).Inc()

	h.logger.Error("request failed",
		zap.String("op", "server."+endpoint),
		zap.String("request_id", requestID),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{
		"error":      msg,
		"request_id": requestID,
	})
}

func (h *handler) observe(endpoint string, start time.Time, status int) {
	h.metrics.requestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", status)).Inc()
	h.metrics.requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
