// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"

	"github.com/tablon-app/tablon-backend/logger"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT"`
	Port           string      `mapstructure:"PORT"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS"`
	// MaxBodyBytes is the JSON body size ceiling for write endpoints.
	MaxBodyBytes int64 `mapstructure:"MAX_BODY_BYTES"`
}

// DatabaseConfig holds the location of the embedded SQLite database file.
// The containing directory is created on startup if it does not exist.
type DatabaseConfig struct {
	Path string `mapstructure:"PATH"`
}

// RateLimitConfig holds the fixed-window rate limit applied to the comment
// creation endpoint.
type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"MAX_REQUESTS"`
	WindowSeconds int `mapstructure:"WINDOW_SECONDS"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server    ServerConfig    `mapstructure:"SERVER"`
	Database  DatabaseConfig  `mapstructure:"DATABASE"`
	RateLimit RateLimitConfig `mapstructure:"RATE_LIMIT"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, unmarshals into the Config struct, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.MAX_BODY_BYTES", 64*1024)
	v.SetDefault("DATABASE.PATH", "data/comments.db")
	v.SetDefault("RATE_LIMIT.MAX_REQUESTS", 30)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.MAX_BODY_BYTES", "MAX_BODY_BYTES"},
		{"DATABASE.PATH", "DB_PATH"},
		{"RATE_LIMIT.MAX_REQUESTS", "RATE_LIMIT_MAX_REQUESTS"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"db_path", cfg.Database.Path,
		"allowed_origins", cfg.Server.AllowedOrigins,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window_seconds", cfg.RateLimit.WindowSeconds,
	)
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if cfg.Server.Environment != EnvDevelopment && cfg.Server.Environment != EnvProduction {
		return fmt.Errorf("invalid environment %q (must be %q or %q)",
			cfg.Server.Environment, EnvDevelopment, EnvProduction)
	}
	if cfg.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive")
	}
	if cfg.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("rate limit max requests must be positive")
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit window must be positive")
	}

	// Production must name its allowed origins explicitly; the wildcard is
	// only acceptable in development.
	if cfg.IsProduction() {
		if containsWildcard(cfg.Server.AllowedOrigins) {
			return fmt.Errorf("wildcard origin is not allowed in production")
		}
		for _, origin := range cfg.Server.AllowedOrigins {
			candidate := origin
			// Wildcard-subdomain entries like *.example.com are validated on
			// the base domain.
			if strings.HasPrefix(candidate, "*.") {
				candidate = "https://" + strings.TrimPrefix(candidate, "*.")
			}
			if _, err := url.ParseRequestURI(candidate); err != nil {
				return fmt.Errorf("invalid allowed origin %q: %w", origin, err)
			}
		}
	}

	return nil
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
