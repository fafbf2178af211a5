package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_Validate_Defaults(t *testing.T) {
	cfg := defaultConfig()

	err := cfg.Validate()
	if err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestConfig_Validate_InvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"port too low", 0},
		{"port negative", -1},
		{"port too high", 65536},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Server.Port = tt.port

			err := cfg.Validate()
			if err == nil {
				t.Error("Expected validation error for invalid port")
			}
		})
	}
}

func TestConfig_Validate_InvalidLogLevel(t *testing.T) {
	cfg := defaultConfig()
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Error("Expected validation error for invalid log level")
	}
}

func TestConfig_Validate_InvalidLogFormat(t *testing.T) {
	cfg := defaultConfig()
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Error("Expected validation error for invalid log format")
	}
}

func TestConfig_Validate_InvalidStorageType(t *testing.T) {
	cfg := defaultConfig()
	cfg.Storage.Type = "invalid"

	err := cfg.Validate()
	if err == nil {
		t.Error("Expected validation error for invalid storage type")
	}
}

func TestConfig_Validate_MongoDBWithoutURI(t *testing.T) {
	cfg := defaultConfig()
	cfg.Storage.Type = "mongodb"
	cfg.Storage.MongoDB.URI = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("Expected validation error for mongodb without URI")
	}
}

func TestConfig_Validate_NonPositiveDrainTimeout(t *testing.T) {
	cfg := defaultConfig()
	cfg.Server.DrainTimeout = 0

	err := cfg.Validate()
	if err == nil {
		t.Error("Expected validation error for non-positive drain timeout")
	}
}

func TestConfig_Validate_NonPositiveBufferSize(t *testing.T) {
	cfg := defaultConfig()
	cfg.Session.BufferSize = 0

	err := cfg.Validate()
	if err == nil {
		t.Error("Expected validation error for non-positive buffer size")
	}
}

func TestConfig_Validate_RateLimitWithoutRate(t *testing.T) {
	cfg := defaultConfig()
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RequestsPerSecond = 0

	err := cfg.Validate()
	if err == nil {
		t.Error("Expected validation error for enabled rate limit without a rate")
	}
}

func TestServerConfig_Address(t *testing.T) {
	tests := []struct {
		host     string
		port     int
		expected string
	}{
		{"0.0.0.0", 80, "0.0.0.0:80"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
		{"example.com", 443, "example.com:443"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			cfg := ServerConfig{Host: tt.host, Port: tt.port}
			if cfg.Address() != tt.expected {
				t.Errorf("Address() = %q, want %q", cfg.Address(), tt.expected)
			}
		})
	}
}

func TestServerConfig_Durations(t *testing.T) {
	cfg := ServerConfig{DrainTimeout: 30, ReadHeaderTimeout: 10, IdleTimeout: 120}

	if cfg.DrainDuration() != 30*time.Second {
		t.Errorf("DrainDuration() = %v, want 30s", cfg.DrainDuration())
	}
	if cfg.ReadHeaderDuration() != 10*time.Second {
		t.Errorf("ReadHeaderDuration() = %v, want 10s", cfg.ReadHeaderDuration())
	}
	if cfg.IdleDuration() != 120*time.Second {
		t.Errorf("IdleDuration() = %v, want 2m", cfg.IdleDuration())
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	// A missing file is fine - defaults plus env vars apply
	cfg, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Storage.Type != "memory" {
		t.Errorf("Expected default storage type memory, got %q", cfg.Storage.Type)
	}
}

func TestLoad_ValidYAMLFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
server:
  host: localhost
  port: 9000
  external_host: share.example.com
session:
  buffer_size: 1024
storage:
  type: memory
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.ExternalHost != "share.example.com" {
		t.Errorf("Expected external_host share.example.com, got %q", cfg.Server.ExternalHost)
	}
	if cfg.Session.BufferSize != 1024 {
		t.Errorf("Expected buffer_size 1024, got %d", cfg.Session.BufferSize)
	}
	// Untouched keys keep their defaults
	if cfg.Server.DrainTimeout != 30 {
		t.Errorf("Expected default drain_timeout 30, got %d", cfg.Server.DrainTimeout)
	}
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
logging:
  level: shouting
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Expected error for invalid log level")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TERMCAST_SERVER_PORT", "7070")
	t.Setenv("TERMCAST_STORAGE_TYPE", "memory")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Expected env override port 7070, got %d", cfg.Server.Port)
	}
}
