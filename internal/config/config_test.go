package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cafe_backoffice/internal/analytics"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.CashShare != analytics.DefaultCashShare {
		t.Fatalf("CashShare expected %v, got %v", analytics.DefaultCashShare, cfg.CashShare)
	}
	if cfg.AlertThresholds != analytics.DefaultAlertThresholds() {
		t.Fatalf("AlertThresholds expected defaults, got %+v", cfg.AlertThresholds)
	}
	if cfg.Classifier != nil {
		t.Fatalf("Classifier expected nil without a file")
	}
	if _, err := cfg.NewEngine(nil); err != nil {
		t.Fatalf("NewEngine error: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, "analytics.yaml", `
cash_share: 0.5
alert_thresholds:
  max_expense_ratio: 70
classifier:
  categories:
    - category: Coffee
      keywords: [bean]
  payer_patterns: ['by\s+(\S+)']
`)
	t.Setenv("ANALYTICS_ALERT_THRESHOLDS_MAX_PAYROLL_RATIO", "40")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}
	if cfg.CashShare != 0.5 {
		t.Fatalf("CashShare expected 0.5, got %v", cfg.CashShare)
	}
	if cfg.AlertThresholds.MaxExpenseRatio != 70 || cfg.AlertThresholds.MaxPayrollRatio != 40 {
		t.Fatalf("AlertThresholds expected 70/40, got %+v", cfg.AlertThresholds)
	}
	if cfg.AlertThresholds.SpikeMultiplier != 1.5 {
		t.Fatalf("SpikeMultiplier expected default 1.5, got %v", cfg.AlertThresholds.SpikeMultiplier)
	}

	engine, err := cfg.NewEngine(nil)
	if err != nil {
		t.Fatalf("NewEngine error: %v", err)
	}
	cl := engine.Classifier().Classify("green bean sack", "")
	if cl.Category != "Coffee" {
		t.Fatalf("Classify expected Coffee from file rules, got %s", cl.Category)
	}
	if payer := engine.Classifier().ExtractPayer("paid by Omar"); payer == nil || *payer != "Omar" {
		t.Fatalf("ExtractPayer expected Omar from file rules, got %v", payer)
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]string{
		"cash share": "cash_share: 1.5\n",
		"threshold":  "alert_thresholds:\n  spike_multiplier: 0\n",
	}
	for name, body := range cases {
		_, err := Load(writeConfig(t, "bad.yaml", body))
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("Load(%s) expected ErrInvalidConfig, got %v", name, err)
		}
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load(missing) expected ErrInvalidConfig, got %v", err)
	}

	cfg, err := Load(writeConfig(t, "rules.yaml", "classifier:\n  payer_patterns: ['(unclosed']\n"))
	if err != nil {
		t.Fatalf("Load(rules) error: %v", err)
	}
	_, err = cfg.NewEngine(nil)
	if !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, analytics.ErrInvalidRules) {
		t.Fatalf("NewEngine with a broken pattern expected ErrInvalidRules, got %v", err)
	}
}

func TestLoad_SampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "analytics.yaml"))
	if err != nil {
		t.Fatalf("Load(sample) error: %v", err)
	}
	engine, err := cfg.NewEngine(nil)
	if err != nil {
		t.Fatalf("NewEngine(sample) error: %v", err)
	}
	cl := engine.Classifier().Classify("حليب تالف", "")
	if cl.Category != analytics.CategoryWaste || cl.Subcategory != "حليب" {
		t.Fatalf("sample rules expected Waste/حليب, got %s/%s", cl.Category, cl.Subcategory)
	}
}
