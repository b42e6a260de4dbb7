package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// minSecretLength is the shortest HMAC secret accepted for admin tokens
const minSecretLength = 32

// JWTConfig configures admin token signing.
type JWTConfig struct {
	Secret     string
	Issuer     string
	Expiration time.Duration
}

// NewJWTConfig reads JWT_SECRET (required), JWT_ISSUER and JWT_EXPIRATION_HOURS (default 12).
func NewJWTConfig() (*JWTConfig, error) {
	cfg := &JWTConfig{
		Secret:     os.Getenv("JWT_SECRET"),
		Issuer:     os.Getenv("JWT_ISSUER"),
		Expiration: 12 * time.Hour,
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "brand-ad-studio"
	}
	if v := os.Getenv("JWT_EXPIRATION_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %w", err)
		}
		cfg.Expiration = time.Duration(hours) * time.Hour
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects short secrets and sub-hour lifetimes
func (c *JWTConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	if len(c.Secret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters, got %d", minSecretLength, len(c.Secret))
	}
	if c.Expiration < time.Hour {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %s", c.Expiration)
	}
	return nil
}
