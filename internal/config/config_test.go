package config

import (
	"strings"
	"testing"
	"time"
)

func valid() Config {
	return Config{
		Port:          "8080",
		APIBaseURL:    "http://localhost:3000/api",
		APITimeout:    15 * time.Second,
		SessionDBPath: "./test.db",
		LogLevel:      "info",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{name: "valid config", mutate: func(c *Config) {}},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "empty API base URL",
			mutate:      func(c *Config) { c.APIBaseURL = "" },
			wantErr:     true,
			errorString: "API base URL cannot be empty",
		},
		{
			name:        "bad API base URL scheme",
			mutate:      func(c *Config) { c.APIBaseURL = "ftp://example.com/api" },
			wantErr:     true,
			errorString: "must be 'http' or 'https'",
		},
		{
			name:        "timeout too short",
			mutate:      func(c *Config) { c.APITimeout = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name:        "empty session path",
			mutate:      func(c *Config) { c.SessionDBPath = "" },
			wantErr:     true,
			errorString: "session database path cannot be empty",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q", tt.errorString)
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("default port: %s", cfg.Port)
	}
	if cfg.APIBaseURL != "http://localhost:3000/api" {
		t.Fatalf("default base URL: %s", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 15*time.Second {
		t.Fatalf("default timeout: %v", cfg.APITimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_TIMEOUT", "30s")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("env port: %s", cfg.Port)
	}
	if cfg.APITimeout != 30*time.Second {
		t.Fatalf("env timeout: %v", cfg.APITimeout)
	}
}
