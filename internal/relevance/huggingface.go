package relevance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Defaults for the Hugging Face Inference API.
const (
	DefaultHFBaseURL = "https://api-inference.huggingface.co"
	DefaultModel     = "facebook/bart-large-mnli"
	DefaultTimeout   = 60 * time.Second
)

// HFClient calls a zero-shot classification model hosted on the Hugging Face Inference API.
type HFClient struct {
	baseURL    string
	model      string
	token      string
	httpClient *http.Client
}

// HFOptions configures an HFClient. Zero values fall back to the defaults.
type HFOptions struct {
	BaseURL string
	Model   string
	Token   string
	Timeout time.Duration
}

// NewHFClient creates a client for the configured model.
func NewHFClient(opts HFOptions) *HFClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultHFBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	return &HFClient{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		model:      opts.Model,
		token:      opts.Token,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	CandidateLabels    []string `json:"candidate_labels"`
	HypothesisTemplate string   `json:"hypothesis_template,omitempty"`
	MultiLabel         bool     `json:"multi_label"`
}

type hfLabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify implements Classifier.
func (c *HFClient) Classify(ctx context.Context, premise string, labels []string, template string) (*Classification, error) {
	body, err := json.Marshal(hfRequest{
		Inputs: premise,
		Parameters: hfParameters{
			CandidateLabels:    labels,
			HypothesisTemplate: template,
		},
	})
	if err != nil {
		return nil, &APIError{Message: "failed to encode request", Cause: err}
	}

	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &APIError{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	return decodeClassification(premise, respBody)
}

// decodeClassification accepts both the pipeline shape ({"labels", "scores"}) and the
// list-of-label-scores shape returned by newer inference endpoints.
func decodeClassification(premise string, body []byte) (*Classification, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []hfLabelScore
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, &APIError{Message: "failed to decode response", Cause: err}
		}
		out := &Classification{Sequence: premise}
		for _, item := range items {
			out.Labels = append(out.Labels, item.Label)
			out.Scores = append(out.Scores, item.Score)
		}
		return out, nil
	}

	var out Classification
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, &APIError{Message: "failed to decode response", Cause: err}
	}
	if len(out.Scores) == 0 {
		return nil, &APIError{Message: "response has no scores"}
	}
	return &out, nil
}
