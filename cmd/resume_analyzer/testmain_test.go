package main

import (
	"os"
	"testing"
)

// TestMain keeps a developer's .env out of the tests by clearing the variables that
// select a completion provider or relevance model.
func TestMain(m *testing.M) {
	for _, key := range []string{
		"LLM_PROVIDER", "LLM_MODEL", "LLM_BASE_URL", "TOGETHER_API_KEY", "GEMINI_API_KEY",
		"HF_API_URL", "HF_API_TOKEN", "RELEVANCE_MODEL",
	} {
		_ = os.Unsetenv(key)
	}
	_ = os.Setenv("RELEVANCE_OFFLINE", "true")

	os.Exit(m.Run())
}
