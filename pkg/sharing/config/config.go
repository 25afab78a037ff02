package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// ServerConfig represents server configuration for the simple-sharing service
type ServerConfig struct {
	Port       string `env:"PORT" env-default:"8080"`
	ServerAddr string `env:"SERVER_ADDR" env-default:"http://localhost:8080"`

	// Token configuration. The secret is opaque bytes; the hasher selects
	// the HMAC width; the scheme selects the bearer token format.
	Secret      string `env:"SECRET"`
	Hasher      string `env:"HASHER" env-default:"sha256"`
	TokenScheme string `env:"TOKEN_SCHEME" env-default:"hmac"`

	// Database configuration. Empty means in-memory.
	DatabaseURL string `env:"DATABASE_URL"`

	// S3 signing configuration
	AWSRegion          string `env:"AWS_REGION" env-default:"us-east-1"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Endpoint         string `env:"S3_ENDPOINT"`
	S3UsePathStyle     bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`

	// GCS signing configuration
	GCSServiceAccountFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`

	// Validity of presigned object URLs, in seconds
	URLExpirySeconds int64 `env:"URL_EXPIRY_SECONDS" env-default:"300"`
}

// Load reads configuration from the environment and validates it.
func Load() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.ServerAddr == "" {
		return errors.New("server address is required")
	}
	if c.Secret == "" {
		return errors.New("signing secret is required")
	}
	if c.TokenScheme != "hmac" && c.TokenScheme != "jwt" {
		return fmt.Errorf("token_scheme must be 'hmac' or 'jwt', got %q", c.TokenScheme)
	}
	if c.URLExpirySeconds <= 0 {
		return errors.New("url expiry must be positive")
	}
	return nil
}
