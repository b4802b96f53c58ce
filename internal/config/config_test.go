package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("PERPLEXITY_API_KEY", "pplx-key")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("STAGE_TIMEOUT", "")
	t.Setenv("SCRAPE_CONCURRENCY", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, "pplx-key", cfg.LLMAPIKey)
	assert.Equal(t, "https://api.perplexity.ai", cfg.LLMBaseURL)
	assert.Equal(t, "sonar-pro", cfg.LLMModel)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 45*time.Second, cfg.StageTimeout)
	assert.Equal(t, 4, cfg.ScrapeConcurrency)
	assert.Equal(t, "India", cfg.DefaultJobLocation)
	assert.True(t, cfg.AllowAllOrigins())
}

func TestLoadGoogleAI(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "GoogleAI")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("LLM_MODEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "googleai", cfg.LLMProvider)
	assert.Equal(t, "gem-key", cfg.LLMAPIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLMModel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"unknown provider":   {"LLM_PROVIDER", "watson"},
		"bad duration":       {"STAGE_TIMEOUT", "soon"},
		"bad int":            {"SCRAPE_CONCURRENCY", "many"},
		"non-positive limit": {"SCRAPE_CONCURRENCY", "0"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("LLM_PROVIDER", "openai")
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestCORSOriginsList(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:5173, https://talent.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:5173", "https://talent.example"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.AllowAllOrigins())
}
