// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/relevance"
)

// Defaults
const (
	DefaultPort           = 5000
	DefaultMaxUploadBytes = 10 << 20
	DefaultAllowedOrigin  = "http://localhost:3000"
)

// Config holds the process configuration. It can be loaded from a JSON file and from
// environment variables; environment values win.
type Config struct {
	// Completion provider
	LLMProvider    string `json:"llm_provider,omitempty"`     // "together" or "gemini"
	LLMModel       string `json:"llm_model,omitempty"`        // Overrides the provider's default model
	LLMBaseURL     string `json:"llm_base_url,omitempty"`     // OpenAI-compatible endpoint override
	TogetherAPIKey string `json:"together_api_key,omitempty"` // Together AI credential
	GeminiAPIKey   string `json:"gemini_api_key,omitempty"`   // Gemini credential

	// Relevance model
	HFAPIURL         string        `json:"hf_api_url,omitempty"`
	HFAPIToken       string        `json:"hf_api_token,omitempty"`
	RelevanceModel   string        `json:"relevance_model,omitempty"`
	RelevanceOffline bool          `json:"relevance_offline,omitempty"` // Use a fixed score instead of the model
	RelevanceTimeout time.Duration `json:"-"`

	// HTTP
	Port           int      `json:"port,omitempty"`
	AllowedOrigins []string `json:"allowed_origins,omitempty"`
	MaxUploadBytes int64    `json:"max_upload_bytes,omitempty"`
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		LLMProvider:      string(llm.ProviderTogether),
		HFAPIURL:         relevance.DefaultHFBaseURL,
		RelevanceModel:   relevance.DefaultModel,
		RelevanceTimeout: relevance.DefaultTimeout,
		Port:             DefaultPort,
		AllowedOrigins:   []string{DefaultAllowedOrigin},
		MaxUploadBytes:   DefaultMaxUploadBytes,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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

// FromEnv reads configuration from environment variables. Unset variables leave
// fields empty so they can be merged with other sources.
func FromEnv() *Config {
	cfg := &Config{
		LLMProvider:      os.Getenv("LLM_PROVIDER"),
		LLMModel:         os.Getenv("LLM_MODEL"),
		LLMBaseURL:       os.Getenv("LLM_BASE_URL"),
		TogetherAPIKey:   os.Getenv("TOGETHER_API_KEY"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		HFAPIURL:         os.Getenv("HF_API_URL"),
		HFAPIToken:       os.Getenv("HF_API_TOKEN"),
		RelevanceModel:   os.Getenv("RELEVANCE_MODEL"),
		RelevanceOffline: getEnvBool("RELEVANCE_OFFLINE", false),
		RelevanceTimeout: getEnvDuration("RELEVANCE_TIMEOUT", 0),
		Port:             getEnvInt("PORT", 0),
		MaxUploadBytes:   int64(getEnvInt("MAX_UPLOAD_BYTES", 0)),
	}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	}
	return cfg
}

// Load builds the effective configuration: environment, then the optional JSON file at
// path, then built-in defaults.
func Load(path string) (*Config, error) {
	cfg := *FromEnv()
	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = cfg.MergeWithDefaults(*file)
	}
	cfg = cfg.MergeWithDefaults(Defaults())
	return &cfg, nil
}

// Validate checks that the configuration has valid values and that the credential of
// the selected completion provider is present.
func (c *Config) Validate() error {
	provider, err := llm.ParseProvider(c.LLMProvider)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	switch provider {
	case llm.ProviderTogether:
		if c.TogetherAPIKey == "" {
			return fmt.Errorf("config error: TOGETHER_API_KEY not found in environment variables")
		}
	case llm.ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("config error: GEMINI_API_KEY not found in environment variables")
		}
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.LLMProvider == "" {
		result.LLMProvider = defaults.LLMProvider
	}
	if result.LLMModel == "" {
		result.LLMModel = defaults.LLMModel
	}
	if result.LLMBaseURL == "" {
		result.LLMBaseURL = defaults.LLMBaseURL
	}
	if result.TogetherAPIKey == "" {
		result.TogetherAPIKey = defaults.TogetherAPIKey
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.HFAPIURL == "" {
		result.HFAPIURL = defaults.HFAPIURL
	}
	if result.HFAPIToken == "" {
		result.HFAPIToken = defaults.HFAPIToken
	}
	if result.RelevanceModel == "" {
		result.RelevanceModel = defaults.RelevanceModel
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.RelevanceTimeout == 0 {
		result.RelevanceTimeout = defaults.RelevanceTimeout
	}

	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = append([]string(nil), defaults.AllowedOrigins...)
	}

	// Bool fields: cannot distinguish unset from false, so true wins
	result.RelevanceOffline = result.RelevanceOffline || defaults.RelevanceOffline

	return result
}

// LLMConfig returns the completion client configuration and the credential to use.
func (c *Config) LLMConfig() (*llm.Config, string, error) {
	provider, err := llm.ParseProvider(c.LLMProvider)
	if err != nil {
		return nil, "", err
	}
	cfg := llm.DefaultConfigFor(provider).WithModel(c.LLMModel)
	if c.LLMBaseURL != "" {
		cfg.BaseURL = c.LLMBaseURL
	}

	key := c.TogetherAPIKey
	if provider == llm.ProviderGemini {
		key = c.GeminiAPIKey
	}
	return cfg, key, nil
}

// HFOptions returns the relevance classifier options.
func (c *Config) HFOptions() relevance.HFOptions {
	return relevance.HFOptions{
		BaseURL: c.HFAPIURL,
		Model:   c.RelevanceModel,
		Token:   c.HFAPIToken,
		Timeout: c.RelevanceTimeout,
	}
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func splitList(list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
