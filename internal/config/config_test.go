package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigurationIsClean(t *testing.T) {
	cfg := DefaultConfiguration()

	warnings := cfg.ValidateConfiguration()
	if len(warnings) != 0 {
		t.Errorf("default configuration produced warnings: %v", warnings)
	}
	if len(cfg.Catalog) != 6 {
		t.Errorf("default catalog has %d models, want 6", len(cfg.Catalog))
	}
	if len(cfg.Assumptions.TaxBrackets) != 7 {
		t.Errorf("default tax brackets = %d, want 7", len(cfg.Assumptions.TaxBrackets))
	}
}

func TestLoadConfigurationOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `assumptions:
  stateTaxRate: 0.08
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration error: %v", err)
	}
	if cfg.Assumptions.StateTaxRate != 0.08 {
		t.Errorf("StateTaxRate = %.2f, want 0.08 from file", cfg.Assumptions.StateTaxRate)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug from file", cfg.Logging.Level)
	}
	// Untouched values keep their defaults.
	if cfg.Assumptions.VolatilityFactor != 0.15 {
		t.Errorf("VolatilityFactor = %.2f, want default 0.15", cfg.Assumptions.VolatilityFactor)
	}
	if len(cfg.Catalog) != 6 {
		t.Errorf("catalog has %d models, want default 6", len(cfg.Catalog))
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing configuration file")
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.Scoring.Components.DebtToIncome = 0.5
	cfg.Catalog[0].BasePrice = 0
	cfg.Output.Format = "xml"

	warnings := cfg.ValidateConfiguration()
	if len(warnings) != 3 {
		t.Errorf("got %d warnings, want 3: %v", len(warnings), warnings)
	}
}

func TestValidateConfigurationEmptyCatalog(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.Catalog = nil

	warnings := cfg.ValidateConfiguration()
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
}
