package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvPublicBackendURL, EnvBackendURL, EnvBackend, EnvLogLevel, EnvLogFormat} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendURL != DefaultBackendURL {
		t.Errorf("expected %q, got %q", DefaultBackendURL, cfg.BackendURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %s", cfg.Timeout)
	}
	if cfg.Backend != BackendREST {
		t.Errorf("expected rest backend, got %q", cfg.Backend)
	}
}

func TestLoad_TOMLFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", `
backend_url = "http://tasks.internal:8080"
timeout = "3s"
log_level = "debug"
log_format = "json"
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendURL != "http://tasks.internal:8080" {
		t.Errorf("unexpected backend url %q", cfg.BackendURL)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("unexpected timeout %s", cfg.Timeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("unexpected log level %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("unexpected log format %q", cfg.LogFormat)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "backend: googletasks\ntimeout: 20s\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != BackendGoogleTasks {
		t.Errorf("unexpected backend %q", cfg.Backend)
	}
	if cfg.Timeout != 20*time.Second {
		t.Errorf("unexpected timeout %s", cfg.Timeout)
	}
}

func TestLoad_TOMLWinsOverYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", `backend_url = "http://from-toml"`)
	writeFile(t, dir, "config.yaml", "backend_url: http://from-yaml\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendURL != "http://from-toml" {
		t.Errorf("expected toml file to win, got %q", cfg.BackendURL)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", `backend_url = "http://from-file"`)
	t.Setenv(EnvPublicBackendURL, "http://from-public-env")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendURL != "http://from-public-env" {
		t.Errorf("expected env override, got %q", cfg.BackendURL)
	}

	t.Setenv(EnvBackendURL, "http://from-todo-env")
	cfg, err = Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendURL != "http://from-todo-env" {
		t.Errorf("expected TODO_BACKEND_URL to win, got %q", cfg.BackendURL)
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", `timeout = "soon"`)

	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "invalid timeout") {
		t.Fatalf("expected invalid timeout error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := New(t.TempDir())

	cfg.BackendURL = "localhost:5000"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for url without scheme, got %v", err)
	}

	cfg.BackendURL = DefaultBackendURL
	cfg.Backend = "sqlite"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for unknown backend, got %v", err)
	}

	cfg.Backend = BackendGoogleTasks
	cfg.BackendURL = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("googletasks backend should not need a url: %v", err)
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg", AppName) {
		t.Errorf("unexpected dir %q", got)
	}
}

func TestPaths(t *testing.T) {
	cfg, _ := New("/cfg")
	if cfg.TokenPath() != filepath.Join("/cfg", TokenFile) {
		t.Errorf("unexpected token path %q", cfg.TokenPath())
	}
	if cfg.LogPath() != filepath.Join("/cfg", LogFile) {
		t.Errorf("unexpected log path %q", cfg.LogPath())
	}
	if cfg.HasToken() {
		t.Error("expected no token")
	}
}
