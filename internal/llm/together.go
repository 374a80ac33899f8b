package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// TogetherClient implements Client for Together AI's OpenAI-compatible chat API
type TogetherClient struct {
	client *openai.Client
	config *Config
}

// NewTogetherClient creates a new Together AI client
func NewTogetherClient(config *Config, apiKey string) (*TogetherClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultTogetherBaseURL
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)

	return &TogetherClient{
		client: client,
		config: config,
	}, nil
}

// Complete sends prompt as a single user message and returns the reply text.
// Sampling knobs the OpenAI schema lacks (top_k, repetition_penalty) are sent as extra fields.
func (c *TogetherClient) Complete(ctx context.Context, prompt string, params Params) (string, error) {
	req := openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		}),
		Model: openai.F(c.config.Model),
	}
	if params.MaxTokens > 0 {
		req.MaxTokens = openai.F(int64(params.MaxTokens))
	}
	if params.Temperature > 0 {
		req.Temperature = openai.F(params.Temperature)
	}
	if params.TopP > 0 {
		req.TopP = openai.F(params.TopP)
	}

	var opts []option.RequestOption
	if params.TopK > 0 {
		opts = append(opts, option.WithJSONSet("top_k", params.TopK))
	}
	if params.RepetitionPenalty > 0 {
		opts = append(opts, option.WithJSONSet("repetition_penalty", params.RepetitionPenalty))
	}
	if len(params.Stop) > 0 {
		opts = append(opts, option.WithJSONSet("stop", params.Stop))
	}

	resp, err := c.client.Chat.Completions.New(ctx, req, opts...)
	if err != nil {
		return "", &APIError{Provider: ProviderTogether, Message: "failed to generate content", Cause: err}
	}
	if len(resp.Choices) == 0 {
		return "", &APIError{Provider: ProviderTogether, Message: "no choices in response"}
	}

	return resp.Choices[0].Message.Content, nil
}

// Model returns the configured model identifier
func (c *TogetherClient) Model() string {
	return c.config.Model
}

// Close is a no-op; the HTTP client holds no resources that need releasing
func (c *TogetherClient) Close() error {
	return nil
}
