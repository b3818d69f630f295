// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the service.
type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"pokedex.db"`

	JWTSecret  string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL     time.Duration `env:"JWT_TTL" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	RateLimit    int           `env:"RATE_LIMIT" envDefault:"10"`
	RateInterval time.Duration `env:"RATE_INTERVAL" envDefault:"1s"`

	PokeAPIBaseURL string        `env:"POKEAPI_BASE_URL" envDefault:"https://pokeapi.co/api/v2"`
	PokeAPITimeout time.Duration `env:"POKEAPI_TIMEOUT" envDefault:"10s"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Redis is optional; an empty address disables admission stats.
	RedisAddr        string `env:"REDIS_ADDR"`
	RedisPassword    string `env:"REDIS_PASSWORD"`
	RedisDB          int    `env:"REDIS_DB" envDefault:"0"`
	RedisStatsPrefix string `env:"REDIS_STATS_PREFIX" envDefault:"ratelimit:stats"`

	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`

	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

// Load reads the environment into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges env tags cannot express.
func (c *Config) Validate() error {
	var errs []error
	if len(c.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security"))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost))
	}
	if c.RateLimit < 1 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT must be positive, got %d", c.RateLimit))
	}
	if c.RateInterval <= 0 {
		errs = append(errs, fmt.Errorf("RATE_INTERVAL must be positive, got %s", c.RateInterval))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL))
	}
	return errors.Join(errs...)
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
