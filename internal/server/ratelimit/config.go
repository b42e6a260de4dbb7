package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // pattern; "*" matches one segment, a trailing "/" matches a subtree
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 300),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		DefaultBurst:    getEnvInt("RATE_LIMIT_DEFAULT_BURST", 0),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
// Generation endpoints call paid model APIs and get the strictest limits.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/brands/*/generate/batch", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		{Path: "/brands/*/generate/image", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},
		{Path: "/brands/*/generate/copy", Method: "POST", Limit: 120, Window: time.Hour, Burst: 10},
		{Path: "/brands/*/guidelines/upload", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/guidelines/parse", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},
		{Path: "/auth/login", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},

		{Path: "/brands", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/brands/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/brands/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/brands/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/assets/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
