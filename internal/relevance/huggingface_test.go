package relevance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHFClient_Classify(t *testing.T) {
	var got hfRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/facebook/bart-large-mnli", r.URL.Path)
		assert.Equal(t, "Bearer hf-token", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sequence":"premise","labels":["job"],"scores":[0.82]}`))
	}))
	defer server.Close()

	client := NewHFClient(HFOptions{BaseURL: server.URL + "/", Token: "hf-token"})
	result, err := client.Classify(context.Background(), "premise", []string{"job"}, DefaultTemplate)
	require.NoError(t, err)

	top, ok := result.Top()
	assert.True(t, ok)
	assert.Equal(t, 0.82, top)
	assert.Equal(t, "premise", got.Inputs)
	assert.Equal(t, []string{"job"}, got.Parameters.CandidateLabels)
	assert.Equal(t, DefaultTemplate, got.Parameters.HypothesisTemplate)
}

func TestHFClient_ListResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"label":"job","score":0.61}]`))
	}))
	defer server.Close()

	result, err := NewHFClient(HFOptions{BaseURL: server.URL}).Classify(context.Background(), "p", []string{"job"}, DefaultTemplate)
	require.NoError(t, err)
	assert.Equal(t, []string{"job"}, result.Labels)
	assert.Equal(t, []float64{0.61}, result.Scores)
}

func TestHFClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusServiceUnavailable, `{"error":"Model is currently loading"}`},
		{"malformed body", http.StatusOK, `not json`},
		{"no scores", http.StatusOK, `{"labels":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewHFClient(HFOptions{BaseURL: server.URL}).Classify(context.Background(), "p", []string{"l"}, DefaultTemplate)
			require.Error(t, err)
			var apiErr *APIError
			assert.ErrorAs(t, err, &apiErr)
		})
	}
}

func TestHFClient_ScorerFallsBackOnNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	scorer := NewScorer(NewHFClient(HFOptions{BaseURL: server.URL}))
	assert.Equal(t, DefaultScore, scorer.Score(context.Background(), "resume", "job"))
}
