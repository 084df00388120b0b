package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	Engine    EngineConfig
	Profile   ProfileConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// EngineConfig holds headless engine configuration.
type EngineConfig struct {
	SDKInt            int           `envconfig:"ENGINE_SDK_INT" default:"29"`
	FetchTimeout      time.Duration `envconfig:"ENGINE_FETCH_TIMEOUT" default:"30s"`
	ScriptTimeout     time.Duration `envconfig:"ENGINE_SCRIPT_TIMEOUT" default:"5s"`
	RequestsPerSecond float64       `envconfig:"ENGINE_RPS" default:"20"`
	Burst             int           `envconfig:"ENGINE_BURST" default:"40"`
	MaxRetries        int           `envconfig:"ENGINE_MAX_RETRIES" default:"0"`
	UserAgent         string        `envconfig:"ENGINE_USER_AGENT" default:"Mozilla/5.0 (Linux; Android 10; AgentOS WebView) AppleWebKit/537.36 (KHTML, like Gecko) Version/4.0 Chrome/120.0.0.0 Mobile Safari/537.36"`
	MaxBodyBytes      int64         `envconfig:"ENGINE_MAX_BODY_BYTES" default:"10485760"`
	// BreakerFailures consecutive transport failures stop fetches to a host
	// for BreakerTimeout. Zero disables the breaker.
	BreakerFailures int           `envconfig:"ENGINE_BREAKER_FAILURES" default:"5"`
	BreakerTimeout  time.Duration `envconfig:"ENGINE_BREAKER_TIMEOUT" default:"30s"`
}

// ProfileConfig points at an optional creation profile file.
type ProfileConfig struct {
	Path string `envconfig:"WEBVIEW_PROFILE" default:""`
}

// RateLimitConfig holds HTTP rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Engine: EngineConfig{
			SDKInt:            29,
			FetchTimeout:      30 * time.Second,
			ScriptTimeout:     5 * time.Second,
			RequestsPerSecond: 20,
			Burst:             40,
			MaxRetries:        0,
			UserAgent:         "Mozilla/5.0 (Linux; Android 10; AgentOS WebView) AppleWebKit/537.36 (KHTML, like Gecko) Version/4.0 Chrome/120.0.0.0 Mobile Safari/537.36",
			MaxBodyBytes:      10 << 20,
			BreakerFailures:   5,
			BreakerTimeout:    30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
