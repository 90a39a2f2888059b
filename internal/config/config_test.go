package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "smartcart.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want %+v", cfg, Default())
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("addr = %q, want %q", cfg.Addr(), ":8080")
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
port: "9090"
db_path: /var/lib/smartcart/data.db
log_level: debug
log_format: json
seed: false
auto_categorize: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("port = %q, want %q", cfg.Port, "9090")
	}
	if cfg.DBPath != "/var/lib/smartcart/data.db" {
		t.Errorf("db_path = %q", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("logging = %q/%q, want debug/json", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Seed || !cfg.AutoCategorize {
		t.Errorf("seed = %v, auto_categorize = %v", cfg.Seed, cfg.AutoCategorize)
	}
	if cfg.WSConnectLimit != Default().WSConnectLimit {
		t.Errorf("ws_connect_limit = %d, want default", cfg.WSConnectLimit)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "port: \"9090\"\nseed: true\n")
	t.Setenv("SMARTCART_PORT", "7070")
	t.Setenv("SMARTCART_SEED", "false")
	t.Setenv("SMARTCART_WS_CONNECT_LIMIT", "0")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "7070" {
		t.Errorf("port = %q, want %q", cfg.Port, "7070")
	}
	if cfg.Seed {
		t.Error("seed should be overridden to false")
	}
	if cfg.WSConnectLimit != 0 {
		t.Errorf("ws_connect_limit = %d, want 0", cfg.WSConnectLimit)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "bad yaml", body: "port: [\n"},
		{name: "bad port", body: "port: http\n"},
		{name: "bad format", body: "log_format: xml\n"},
		{name: "bad bool env", env: map[string]string{"SMARTCART_SEED": "maybe"}},
		{name: "negative limit", body: "ws_connect_limit: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfig(t, tt.body)
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
