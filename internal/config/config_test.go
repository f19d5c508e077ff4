// ABOUTME: Tests for configuration loading and parsing.
// ABOUTME: Covers YAML and TOML parsing, env expansion, defaults, overrides.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
server:
  http_addr: "0.0.0.0:8080"

static:
  dir: "./web"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != "0.0.0.0:8080" {
		t.Errorf("expected http_addr '0.0.0.0:8080', got %q", cfg.Server.HTTPAddr)
	}
	if cfg.Static.Dir != "./web" {
		t.Errorf("expected static dir './web', got %q", cfg.Static.Dir)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level 'debug', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected logging format 'json', got %q", cfg.Logging.Format)
	}
}

func TestLoad_ValidTOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[server]
http_addr = "127.0.0.1:9000"

[logging]
level = "warn"
format = "text"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != "127.0.0.1:9000" {
		t.Errorf("expected http_addr '127.0.0.1:9000', got %q", cfg.Server.HTTPAddr)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected logging level 'warn', got %q", cfg.Logging.Level)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != ":3003" {
		t.Errorf("expected default http_addr ':3003', got %q", cfg.Server.HTTPAddr)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default logging level 'info', got %q", cfg.Logging.Level)
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_AUTH_ADDR", "10.0.0.1:4000")

	path := writeConfig(t, "config.yaml", `
server:
  http_addr: "${TEST_AUTH_ADDR}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.HTTPAddr != "10.0.0.1:4000" {
		t.Errorf("expected expanded http_addr '10.0.0.1:4000', got %q", cfg.Server.HTTPAddr)
	}
}

func TestLoad_AuthPortOverride(t *testing.T) {
	t.Setenv("AUTH_PORT", "5005")

	path := writeConfig(t, "config.yaml", `
server:
  http_addr: "0.0.0.0:8080"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.HTTPAddr != ":5005" {
		t.Errorf("expected AUTH_PORT override ':5005', got %q", cfg.Server.HTTPAddr)
	}
}

func TestLoad_InvalidLoggingLevel(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
logging:
  level: "verbose"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for bad logging level")
	}
	if !strings.Contains(err.Error(), "logging.level") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", "server: [not: valid")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected parse error for invalid YAML")
	}
}

func TestValidate_MissingAddr(t *testing.T) {
	cfg := Default()
	cfg.Server.HTTPAddr = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for empty http_addr")
	}
}
