package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/relevance"
)

// clearEnv unsets every variable FromEnv reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LLM_PROVIDER", "LLM_MODEL", "LLM_BASE_URL", "TOGETHER_API_KEY", "GEMINI_API_KEY",
		"HF_API_URL", "HF_API_TOKEN", "RELEVANCE_MODEL", "RELEVANCE_OFFLINE", "RELEVANCE_TIMEOUT",
		"PORT", "MAX_UPLOAD_BYTES", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"llm_provider": "gemini",
		"llm_model": "gemini-2.5-pro",
		"port": 8080,
		"allowed_origins": ["https://app.example.com"],
		"relevance_offline": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "gemini", cfg.LLMProvider)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLMModel)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.RelevanceOffline)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig("/nonexistent/path/config.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	_, err = LoadConfig(writeConfig(t, `{ invalid json }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "together", cfg.LLMProvider)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Equal(t, []string{DefaultAllowedOrigin}, cfg.AllowedOrigins)
	assert.Equal(t, relevance.DefaultModel, cfg.RelevanceModel)
	assert.Equal(t, relevance.DefaultTimeout, cfg.RelevanceTimeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("TOGETHER_API_KEY", "env-key")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("RELEVANCE_TIMEOUT", "5s")

	path := writeConfig(t, `{"port": 8080, "together_api_key": "file-key", "llm_model": "file-model"}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "env-key", cfg.TogetherAPIKey)
	assert.Equal(t, "file-model", cfg.LLMModel)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.RelevanceTimeout)
}

func TestLoad_BadFile(t *testing.T) {
	clearEnv(t)
	_, err := Load("/nonexistent/config.json")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Defaults()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"together ok", func(c *Config) { c.TogetherAPIKey = "k" }, ""},
		{"together missing key", func(c *Config) {}, "TOGETHER_API_KEY"},
		{"gemini ok", func(c *Config) { c.LLMProvider = "gemini"; c.GeminiAPIKey = "k" }, ""},
		{"gemini missing key", func(c *Config) { c.LLMProvider = "gemini"; c.TogetherAPIKey = "k" }, "GEMINI_API_KEY"},
		{"unknown provider", func(c *Config) { c.LLMProvider = "other" }, "unknown LLM provider"},
		{"bad port", func(c *Config) { c.TogetherAPIKey = "k"; c.Port = 70000 }, "port"},
		{"negative upload", func(c *Config) { c.TogetherAPIKey = "k"; c.MaxUploadBytes = -1 }, "max_upload_bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{LLMModel: "custom", Port: 9000}
	merged := cfg.MergeWithDefaults(Config{LLMModel: "default", LLMProvider: "gemini", Port: 1, RelevanceOffline: true})

	assert.Equal(t, "custom", merged.LLMModel)
	assert.Equal(t, "gemini", merged.LLMProvider)
	assert.Equal(t, 9000, merged.Port)
	assert.True(t, merged.RelevanceOffline)
	assert.Empty(t, cfg.LLMProvider, "receiver is unchanged")
}

func TestLLMConfig(t *testing.T) {
	cfg := Defaults()
	cfg.TogetherAPIKey = "together"
	cfg.GeminiAPIKey = "gemini"

	llmCfg, key, err := cfg.LLMConfig()
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderTogether, llmCfg.Provider)
	assert.Equal(t, llm.DefaultTogetherModel, llmCfg.Model)
	assert.Equal(t, "together", key)

	cfg.LLMProvider = "gemini"
	cfg.LLMModel = "gemini-2.5-pro"
	llmCfg, key, err = cfg.LLMConfig()
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderGemini, llmCfg.Provider)
	assert.Equal(t, "gemini-2.5-pro", llmCfg.Model)
	assert.Equal(t, "gemini", key)
}

func TestHFOptions(t *testing.T) {
	cfg := Defaults()
	cfg.HFAPIToken = "hf"
	opts := cfg.HFOptions()
	assert.Equal(t, relevance.DefaultHFBaseURL, opts.BaseURL)
	assert.Equal(t, "hf", opts.Token)
}
