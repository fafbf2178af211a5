package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Session   SessionConfig   `yaml:"session" envconfig:"SESSION"`
	RateLimit RateLimitConfig `yaml:"ratelimit" envconfig:"RATELIMIT"`
	Storage   StorageConfig   `yaml:"storage" envconfig:"STORAGE"`
	CORS      CORSConfig      `yaml:"cors" envconfig:"CORS"`
	Metrics   MetricsConfig   `yaml:"metrics" envconfig:"METRICS"`
}

// ServerConfig contains listener and dispatch configuration
type ServerConfig struct {
	Host string `yaml:"host" envconfig:"HOST"`
	Port int    `yaml:"port" envconfig:"PORT"`
	// ExternalHost is the authority used when building session join URLs.
	// When empty, the origin reported by the CLI client is used instead.
	ExternalHost string `yaml:"external_host" envconfig:"EXTERNAL_HOST"`
	// WebRoot is the directory of built web assets. When empty a minimal
	// built-in page is served instead.
	WebRoot           string `yaml:"web_root" envconfig:"WEB_ROOT"`
	DrainTimeout      int    `yaml:"drain_timeout" envconfig:"DRAIN_TIMEOUT"`             // seconds
	ReadHeaderTimeout int    `yaml:"read_header_timeout" envconfig:"READ_HEADER_TIMEOUT"` // seconds
	IdleTimeout       int    `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`               // seconds
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`   // debug, info, warn, error
	Format string `yaml:"format" envconfig:"FORMAT"` // json, console
}

// SessionConfig contains live-session tuning
type SessionConfig struct {
	// TokenSecret signs session writer tokens. A random per-process secret
	// is generated when empty, which invalidates tokens across restarts.
	TokenSecret string `yaml:"token_secret" envconfig:"TOKEN_SECRET"`
	// BufferSize is the replay buffer capacity per shell, in bytes.
	BufferSize int `yaml:"buffer_size" envconfig:"BUFFER_SIZE"`
	MaxShells  int `yaml:"max_shells" envconfig:"MAX_SHELLS"`
	// InputBacklog bounds queued viewer input per session before drops.
	InputBacklog int `yaml:"input_backlog" envconfig:"INPUT_BACKLOG"`
}

// RateLimitConfig contains API rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled" envconfig:"ENABLED"`
	RequestsPerSecond float64 `yaml:"requests_per_second" envconfig:"REQUESTS_PER_SECOND"`
	Burst             int     `yaml:"burst" envconfig:"BURST"`
}

// StorageConfig contains session-history storage configuration
type StorageConfig struct {
	Type    string        `yaml:"type" envconfig:"TYPE"` // memory, mongodb
	MongoDB MongoDBConfig `yaml:"mongodb" envconfig:"MONGODB"`
}

// MongoDBConfig contains MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string `yaml:"uri" envconfig:"URI"`
	Database string `yaml:"database" envconfig:"DATABASE"`
	Timeout  int    `yaml:"timeout" envconfig:"TIMEOUT"` // seconds
}

// CORSConfig contains cross-origin policy for the web API
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"ENABLED"`
}

// Load loads configuration from file and environment variables
func Load(configFile string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Load from YAML file if provided (overrides defaults)
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			// File doesn't exist, that's ok - we'll use defaults and env vars
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables (highest priority)
	if err := envconfig.Process("TERMCAST", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible default values
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			DrainTimeout:      30,
			ReadHeaderTimeout: 10,
			IdleTimeout:       120,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Session: SessionConfig{
			BufferSize:   64 * 1024,
			MaxShells:    16,
			InputBacklog: 64,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 10,
			Burst:             20,
		},
		Storage: StorageConfig{
			Type: "memory",
			MongoDB: MongoDBConfig{
				URI:      "mongodb://localhost:27017",
				Database: "termcast",
				Timeout:  10,
			},
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logging.Format)
	}

	if c.Server.DrainTimeout < 1 {
		return fmt.Errorf("drain_timeout must be at least 1 second")
	}

	if c.Session.BufferSize < 1 {
		return fmt.Errorf("session buffer_size must be positive")
	}

	if c.Session.MaxShells < 1 {
		return fmt.Errorf("session max_shells must be positive")
	}

	if c.RateLimit.Enabled && c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("ratelimit requests_per_second must be positive")
	}

	if c.Storage.Type != "memory" && c.Storage.Type != "mongodb" {
		return fmt.Errorf("invalid storage type: %s (must be memory or mongodb)", c.Storage.Type)
	}

	if c.Storage.Type == "mongodb" && c.Storage.MongoDB.URI == "" {
		return fmt.Errorf("mongodb uri is required when using mongodb storage")
	}

	return nil
}

// Address returns the listener address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DrainDuration returns the drain timeout as a time.Duration
func (c *ServerConfig) DrainDuration() time.Duration {
	return time.Duration(c.DrainTimeout) * time.Second
}

// ReadHeaderDuration returns the read-header timeout as a time.Duration
func (c *ServerConfig) ReadHeaderDuration() time.Duration {
	return time.Duration(c.ReadHeaderTimeout) * time.Second
}

// IdleDuration returns the idle timeout as a time.Duration
func (c *ServerConfig) IdleDuration() time.Duration {
	return time.Duration(c.IdleTimeout) * time.Second
}
