// Package relevance scores how relevant resume experience is to a job description
// using a zero-shot text classification model.
package relevance

import (
	"context"
	"fmt"
)

// Classifier scores a premise against candidate labels with a hypothesis template.
type Classifier interface {
	Classify(ctx context.Context, premise string, labels []string, template string) (*Classification, error)
}

// Classification is a ranked zero-shot classification result.
type Classification struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

// Top returns the highest ranked score.
func (c *Classification) Top() (float64, bool) {
	if c == nil || len(c.Scores) == 0 {
		return 0, false
	}
	top := c.Scores[0]
	for _, s := range c.Scores[1:] {
		top = max(top, s)
	}
	return top, true
}

// APIError represents a failed call to a classification backend.
type APIError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("classification API call failed: %s: %v", e.Message, e.Cause)
	case e.StatusCode != 0:
		return fmt.Sprintf("classification API call failed: HTTP %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("classification API call failed: %s", e.Message)
	}
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// Static is a Classifier that returns the same score for every label.
// It backs offline mode and tests.
type Static struct {
	Score float64
}

// Classify implements Classifier.
func (s Static) Classify(_ context.Context, premise string, labels []string, _ string) (*Classification, error) {
	scores := make([]float64, len(labels))
	for i := range scores {
		scores[i] = s.Score
	}
	return &Classification{Sequence: premise, Labels: append([]string(nil), labels...), Scores: scores}, nil
}
