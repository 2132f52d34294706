package config

import "os"

// Environment variables read by loadEnv. Later entries win.
const (
	EnvPublicBackendURL = "NEXT_PUBLIC_BACKEND_URL"
	EnvBackendURL       = "TODO_BACKEND_URL"
	EnvBackend          = "TODO_BACKEND"
	EnvLogLevel         = "TODO_LOG_LEVEL"
	EnvLogFormat        = "TODO_LOG_FORMAT"
)

// loadEnv overrides config from environment variables.
func (c *Config) loadEnv() {
	if v := os.Getenv(EnvPublicBackendURL); v != "" {
		c.BackendURL = v
	}
	if v := os.Getenv(EnvBackendURL); v != "" {
		c.BackendURL = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
}
