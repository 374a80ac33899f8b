// Package llm provides the text-completion client abstraction and its providers.
package llm

import (
	"fmt"
	"strings"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderTogether is Together AI through its OpenAI-compatible API
	ProviderTogether Provider = "together"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Default models and endpoints per provider.
const (
	DefaultTogetherModel   = "mistralai/Mixtral-8x7B-Instruct-v0.1"
	DefaultTogetherBaseURL = "https://api.together.xyz/v1/"
	DefaultGeminiModel     = "gemini-2.5-flash"
)

// ParseProvider converts a configuration string into a Provider. Empty means Together.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case "", ProviderTogether:
		return ProviderTogether, nil
	case ProviderGemini:
		return ProviderGemini, nil
	default:
		return "", fmt.Errorf("unknown LLM provider %q", s)
	}
}

// Config holds the completion model configuration
type Config struct {
	Provider Provider
	Model    string
	BaseURL  string // Only used by OpenAI-compatible providers
}

// DefaultConfig returns the default configuration (Together AI, Mixtral)
func DefaultConfig() *Config {
	return DefaultTogetherConfig()
}

// DefaultTogetherConfig returns the default Together AI configuration
func DefaultTogetherConfig() *Config {
	return &Config{
		Provider: ProviderTogether,
		Model:    DefaultTogetherModel,
		BaseURL:  DefaultTogetherBaseURL,
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Model:    DefaultGeminiModel,
	}
}

// DefaultConfigFor returns the default configuration for a provider
func DefaultConfigFor(p Provider) *Config {
	if p == ProviderGemini {
		return DefaultGeminiConfig()
	}
	return DefaultTogetherConfig()
}

// WithModel returns a new Config using model. An empty model keeps the current one.
func (c *Config) WithModel(model string) *Config {
	out := *c
	if model != "" {
		out.Model = model
	}
	return &out
}

// Params are the sampling parameters of a completion request.
type Params struct {
	MaxTokens         int
	Temperature       float64
	TopP              float64
	TopK              int
	RepetitionPenalty float64
	Stop              []string
}

// SuggestionParams returns the sampling parameters used for categorized suggestions.
func SuggestionParams() Params {
	return Params{
		MaxTokens:         1500,
		Temperature:       0.6,
		TopP:              0.7,
		TopK:              40,
		RepetitionPenalty: 1.2,
		Stop:              []string{"</s>"},
	}
}

// BulletParams returns the sampling parameters used for the plain bullet-list suggestions.
func BulletParams() Params {
	return Params{
		MaxTokens:         1000,
		Temperature:       0.7,
		TopP:              0.8,
		TopK:              50,
		RepetitionPenalty: 1.1,
		Stop:              []string{"</s>"},
	}
}
