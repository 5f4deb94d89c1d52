package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret       string `env:"JWT_SECRET,required" validate:"required,min=32"`
	SessionTTLSec   int    `env:"SESSION_TTL_SEC" envDefault:"3600" validate:"min=60"`
	GoogleClientID  string `env:"GOOGLE_CLIENT_ID" validate:"required_if=Env production,required_if=Env staging"`
	ResendAPIKey    string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom      string `env:"RESEND_FROM" validate:"required_if=Env production,required_if=Env staging"`
	VerifyURLBase   string `env:"FRONTEND_VERIFY_URL" envDefault:"http://localhost:3000/verify-email"`
	ResetURLBase    string `env:"FRONTEND_RESET_URL" envDefault:"http://localhost:3000/reset-password"`
	JanitorSchedule string `env:"JANITOR_SCHEDULE" envDefault:"@every 10m"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLSec) * time.Second
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
