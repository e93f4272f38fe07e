package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.DataDir == "" {
		t.Error("DataDir is empty")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.LogFormat != "console" {
		t.Errorf("LogFormat = %q, want console", cfg.LogFormat)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("NEXO_DATA_DIR", "/tmp/nexo-test")
	t.Setenv("NEXO_GITHUB_BASE_URL", "http://localhost:9999")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.DataDir != "/tmp/nexo-test" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.GitHubBaseURL != "http://localhost:9999" {
		t.Errorf("GitHubBaseURL = %q", cfg.GitHubBaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}
