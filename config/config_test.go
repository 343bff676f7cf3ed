package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("MB_INSTRUMENT", "TESTBOOK")
	path := writeConfig(t, `
service_name: matchbook
instrument: ${MB_INSTRUMENT}
recent_trades: 32
risk:
  price_ceil: 10000
  max_qty: 500
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServiceName != "matchbook" {
		t.Errorf("service_name = %q", cfg.ServiceName)
	}
	if cfg.Instrument != "TESTBOOK" {
		t.Errorf("instrument = %q, env not expanded", cfg.Instrument)
	}
	if cfg.RecentTrades != 32 {
		t.Errorf("recent_trades = %d", cfg.RecentTrades)
	}
	if cfg.Risk == nil || cfg.Risk.MaxQty != 500 || cfg.Risk.PriceCeil != 10000 {
		t.Errorf("risk = %+v", cfg.Risk)
	}
}

func TestLoadUsesConfigFileEnv(t *testing.T) {
	path := writeConfig(t, "service_name: from-env\n")
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServiceName != "from-env" {
		t.Errorf("service_name = %q", cfg.ServiceName)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
