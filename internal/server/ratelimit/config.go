package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit applied to one method and path.
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // Requests per window; 0 means unlimited
	Window time.Duration // Refill window
	Burst  int           // Bucket capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	Endpoints       []EndpointConfig
}

// DefaultConfig returns the limits used when no environment overrides are set.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    300,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		Endpoints:       DefaultEndpoints(),
	}
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = getEnvBool("RATE_LIMIT_ENABLED", cfg.Enabled)
	cfg.DefaultLimit = getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(os.Getenv("RATE_LIMIT_WHITELIST"))
	cfg.Blacklist = parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST"))

	// Analysis runs the relevance model and a completion call, so it gets its own budget.
	for i := range cfg.Endpoints {
		if cfg.Endpoints[i].Path == AnalyzePath {
			cfg.Endpoints[i].Limit = getEnvInt("RATE_LIMIT_ANALYZE_LIMIT", cfg.Endpoints[i].Limit)
			cfg.Endpoints[i].Window = getEnvDuration("RATE_LIMIT_ANALYZE_WINDOW", cfg.Endpoints[i].Window)
			cfg.Endpoints[i].Burst = getEnvInt("RATE_LIMIT_ANALYZE_BURST", cfg.Endpoints[i].Burst)
		}
	}
	return cfg
}

// AnalyzePath is the resume analysis endpoint.
const AnalyzePath = "/analyze-resume"

// DefaultEndpoints returns the endpoint-specific limits.
func DefaultEndpoints() []EndpointConfig {
	return []EndpointConfig{
		{Path: AnalyzePath, Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/health", Method: "GET", Limit: 0},
	}
}

// MatchEndpoint returns the configuration for method and path, or nil when none applies.
// Exact paths win over prefixes.
func MatchEndpoint(path, method string, endpoints []EndpointConfig) *EndpointConfig {
	var prefix *EndpointConfig
	for i := range endpoints {
		ep := &endpoints[i]
		if ep.Method != method {
			continue
		}
		if ep.Path == path {
			return ep
		}
		if prefix == nil && strings.HasSuffix(ep.Path, "/") && strings.HasPrefix(path, ep.Path) {
			prefix = ep
		}
	}
	return prefix
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

// parseIPList parses a comma-separated list of client addresses.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
