// Package config loads service configuration from a JSON file and the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config is the service configuration. A JSON file may supply defaults;
// environment variables override them in FromEnv.
type Config struct {
	// Gemini
	APIKey                 string `json:"api_key,omitempty"`
	TextModel              string `json:"text_model,omitempty"`
	ImageModel             string `json:"image_model,omitempty"`
	ImageAspectRatio       string `json:"image_aspect_ratio,omitempty" validate:"omitempty,oneof=1:1 4:5 9:16 16:9 3:4 4:3"`
	DisableImageGeneration bool   `json:"disable_image_generation,omitempty"`

	// Storage
	DatabaseURL     string `json:"database_url,omitempty"`
	RedisURL        string `json:"redis_url,omitempty" validate:"omitempty,url"`
	GCSBucket       string `json:"gcs_bucket,omitempty"`
	GCSEmulatorHost string `json:"gcs_emulator_host,omitempty"`
	GCSCredentials  string `json:"gcs_credentials_file,omitempty"`

	// HTTP
	Port           int      `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	AllowedOrigins []string `json:"allowed_origins,omitempty"`
	RateLimitRPS   float64  `json:"rate_limit_rps,omitempty" validate:"gte=0"`
	RateLimitBurst int      `json:"rate_limit_burst,omitempty" validate:"gte=0"`

	LogMode string `json:"log_mode,omitempty" validate:"omitempty,oneof=dev prod development production"`
}

// Defaults used by MergeWithDefaults when neither file nor environment set a value
var Defaults = Config{
	TextModel:        "gemini-2.5-pro",
	ImageModel:       "gemini-2.5-flash-image",
	ImageAspectRatio: "1:1",
	Port:             8080,
	RateLimitRPS:     5,
	RateLimitBurst:   10,
	LogMode:          "dev",
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv overlays environment variables on base (which may be nil).
// Call godotenv.Load before this to pick up a .env file.
func FromEnv(base *Config) (*Config, error) {
	cfg := Config{}
	if base != nil {
		cfg = *base
	}

	setString(&cfg.APIKey, "GEMINI_API_KEY")
	setString(&cfg.TextModel, "GEMINI_TEXT_MODEL")
	setString(&cfg.ImageModel, "GEMINI_IMAGE_MODEL")
	setString(&cfg.ImageAspectRatio, "IMAGE_ASPECT_RATIO")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.RedisURL, "REDIS_URL")
	setString(&cfg.GCSBucket, "GCS_BUCKET")
	setString(&cfg.GCSEmulatorHost, "STORAGE_EMULATOR_HOST")
	setString(&cfg.GCSCredentials, "GOOGLE_APPLICATION_CREDENTIALS")
	setString(&cfg.LogMode, "LOG_MODE")

	if v := os.Getenv("DISABLE_IMAGE_GENERATION"); v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DISABLE_IMAGE_GENERATION: %w", err)
		}
		cfg.DisableImageGeneration = disabled
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
		}
		cfg.RateLimitRPS = rps
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
		}
		cfg.RateLimitBurst = burst
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}

	merged := cfg.MergeWithDefaults(Defaults)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var validate = validator.New()

// Validate checks value ranges. Missing credentials are reported by Warnings, not here.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// Warnings lists settings that leave parts of the service unusable
func (c *Config) Warnings() []string {
	var out []string
	if c.APIKey == "" {
		out = append(out, "GEMINI_API_KEY is not set; text, image and PDF extraction calls will fail")
	}
	if c.GCSBucket == "" {
		out = append(out, "GCS_BUCKET is not set; guideline files are kept in memory only")
	}
	if c.RedisURL == "" {
		out = append(out, "REDIS_URL is not set; upload progress is tracked in memory only")
	}
	return out
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Bools are never merged since unset and false look the same.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&result.APIKey, defaults.APIKey)
	fill(&result.TextModel, defaults.TextModel)
	fill(&result.ImageModel, defaults.ImageModel)
	fill(&result.ImageAspectRatio, defaults.ImageAspectRatio)
	fill(&result.DatabaseURL, defaults.DatabaseURL)
	fill(&result.RedisURL, defaults.RedisURL)
	fill(&result.GCSBucket, defaults.GCSBucket)
	fill(&result.GCSEmulatorHost, defaults.GCSEmulatorHost)
	fill(&result.GCSCredentials, defaults.GCSCredentials)
	fill(&result.LogMode, defaults.LogMode)

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RateLimitRPS == 0 {
		result.RateLimitRPS = defaults.RateLimitRPS
	}
	if result.RateLimitBurst == 0 {
		result.RateLimitBurst = defaults.RateLimitBurst
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}

	return result
}
