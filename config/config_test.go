package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
  "server": {"listen": "9000"},
  "llm": {"api_key": "test-key", "model": "gpt-4o-mini", "timeout": "30s"},
  "dataset": {"path": "./data/vehicles.csv"}
}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Listen != ":9000" {
		t.Fatalf("listen not normalized: %q", cfg.Server.Listen)
	}
	if cfg.LLM.Timeout != 30*time.Second {
		t.Fatalf("timeout: %v", cfg.LLM.Timeout)
	}
	if cfg.Defaults.TopN != 5 {
		t.Fatalf("default top_n: %d", cfg.Defaults.TopN)
	}
	if len(cfg.Defaults.PriceRange) != 2 || cfg.Defaults.PriceRange[0] != 15000 {
		t.Fatalf("default price range: %v", cfg.Defaults.PriceRange)
	}
}

func TestLoadConfigMissingAPIKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"dataset": {"path": "x.csv"}}`), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for missing api key")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("DREAMCAR_LLM_API_KEY", "env-key")
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"dataset": {"path": "x.csv"}}`), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Fatalf("env override not applied: %q", cfg.LLM.APIKey)
	}
}

func TestDefaultsNormalize(t *testing.T) {
	d := DefaultsConfig{PriceRange: []float64{1}}.Normalize()
	if d.TopN != 5 {
		t.Fatalf("top_n: %d", d.TopN)
	}
	if len(d.PriceRange) != 2 || d.PriceRange[1] != 90000 {
		t.Fatalf("malformed price range must fall back: %v", d.PriceRange)
	}
	if len(d.MPGRange) != 2 || d.MPGRange[0] != 15 {
		t.Fatalf("mpg range default: %v", d.MPGRange)
	}
}
