// Package config handles configuration for the onboarding API server. All
// settings come from environment variables, parsed once at process start and
// passed by reference into components.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	HTTPAddr    string `env:"HTTP_ADDR"   envDefault:":8080"`
	DatabaseDSN string `env:"DATABASE_DSN"`

	Token TokenConfig
	SMS   SMSConfig
	SMTP  SMTPConfig
	Sweep SweepConfig
}

// TokenConfig holds JWT session token settings.
type TokenConfig struct {
	Secret              string        `env:"JWT_SECRET"`
	Issuer              string        `env:"JWT_ISSUER"               envDefault:"mumbaihacks"`
	SessionExpiresIn    time.Duration `env:"SESSION_TOKEN_EXPIRES_IN" envDefault:"24h"`
	RememberMeExpiresIn time.Duration `env:"REMEMBER_ME_EXPIRES_IN"   envDefault:"720h"`
}

// SMSConfig holds settings for the outbound SMS gateway. An empty GatewayURL
// disables real delivery; codes are then logged to the operator console.
type SMSConfig struct {
	GatewayURL string `env:"SMS_GATEWAY_URL"`
	APIKey     string `env:"SMS_API_KEY"`
	SenderID   string `env:"SMS_SENDER_ID" envDefault:"MumbaiHacks"`
}

// SMTPConfig holds settings for outbound email. An empty Host disables real
// delivery; codes are then logged to the operator console.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// SweepConfig controls the periodic purge of long-expired OTP and passkey
// verification rows.
type SweepConfig struct {
	Interval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1h"`
}

// IsDevelopment reports whether the server runs in development mode. Internal
// error details are only exposed to clients in development.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseDSN == "" {
		return fmt.Errorf("missing DATABASE_DSN environment variable")
	}
	if c.Token.Secret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}

	return nil
}
