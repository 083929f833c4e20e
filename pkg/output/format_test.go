package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/iwvelando/vehicle-affordability/internal/affordability"
	"github.com/iwvelando/vehicle-affordability/internal/config"
	"github.com/iwvelando/vehicle-affordability/internal/cost"
	"github.com/iwvelando/vehicle-affordability/internal/forecast"
	"github.com/iwvelando/vehicle-affordability/internal/model"
	"github.com/iwvelando/vehicle-affordability/internal/recommend"
	"github.com/iwvelando/vehicle-affordability/internal/salary"
	"github.com/iwvelando/vehicle-affordability/pkg/testutil"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func buildRecommendations(t *testing.T) *recommend.Result {
	t.Helper()
	cfg := config.DefaultConfiguration()
	engine := recommend.NewEngine(
		testutil.DefaultCatalog(),
		salary.NewEstimator(cfg.Assumptions, nil),
		cost.NewCalculator(cfg.Assumptions, nil),
		affordability.NewIndex(cfg.Scoring.Components, nil),
		cfg.Scoring.Recommendation,
		nil,
	)
	result, err := engine.Recommend(testutil.Profile(), model.VehiclePreferences{}, testutil.Scenario())
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	return result
}

func TestPrettyRecommendations(t *testing.T) {
	result := buildRecommendations(t)

	out := captureStdout(t, func() {
		PrettyRecommendations(result)
	})

	if !strings.Contains(out, "--- Top recommendations") {
		t.Error("missing header")
	}
	if !strings.Contains(out, "Rank | Vehicle") {
		t.Error("missing table header")
	}
	if !strings.Contains(out, result.Recommendations[0].Model) {
		t.Error("missing top recommendation")
	}
}

func TestCsvRecommendations(t *testing.T) {
	result := buildRecommendations(t)

	out := captureStdout(t, func() {
		CsvRecommendations(result)
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(result.Recommendations)+1 {
		t.Fatalf("got %d CSV lines, want %d", len(lines), len(result.Recommendations)+1)
	}
	if !strings.Contains(lines[0], `"rank","model","trim"`) {
		t.Errorf("unexpected CSV header: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"1"`) {
		t.Errorf("first data row missing rank: %s", lines[1])
	}
}

func TestPrettyForecast(t *testing.T) {
	cfg := config.DefaultConfiguration()
	forecaster := forecast.NewForecaster(cfg.Forecasting, cfg.Assumptions, nil)
	vehicle, err := testutil.DefaultCatalog().Resolve(model.VehiclePreferences{Model: "Camry", Trim: "LE"})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	result, err := forecaster.Forecast(vehicle, testutil.Scenario(), 3)
	if err != nil {
		t.Fatalf("Forecast error: %v", err)
	}

	out := captureStdout(t, func() {
		PrettyForecast(result)
	})

	if !strings.Contains(out, "--- Value forecast for Camry LE ---") {
		t.Error("missing header")
	}
	if !strings.Contains(out, "Total depreciation:") {
		t.Error("missing total line")
	}
}

func TestSalaryCsvString(t *testing.T) {
	cfg := config.DefaultConfiguration()
	estimator := salary.NewEstimator(cfg.Assumptions, nil)
	estimate, err := estimator.Estimate(testutil.Profile())
	if err != nil {
		t.Fatalf("Estimate error: %v", err)
	}

	csv := SalaryCsvString(estimate)
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d CSV lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], `"gross_annual"`) {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"80000.00"`) {
		t.Errorf("data row missing gross annual: %s", lines[1])
	}
}
