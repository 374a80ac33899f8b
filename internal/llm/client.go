package llm

import (
	"context"
	"fmt"
)

// Client is an abstraction over text-completion providers
type Client interface {
	// Complete generates a completion for prompt with the given sampling parameters
	Complete(ctx context.Context, prompt string, params Params) (string, error)
	// Model returns the model identifier requests are sent to
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderTogether, "":
		return NewTogetherClient(config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// APIError represents an error from the completion provider
type APIError struct {
	Provider Provider
	Message  string
	Cause    error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s API call failed: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s API call failed: %s", e.Provider, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}
