package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearVendorKeys keeps the developer's own API keys out of the tests.
func clearVendorKeys(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearVendorKeys(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-pro", cfg.LLM.Gemini.Model)
	assert.Equal(t, 1024, cfg.LLM.MaxTokens)
	assert.Equal(t, "dev", cfg.LogMode)
	assert.Equal(t, 5, cfg.MaxRefetches)
	assert.Equal(t, "en-US", cfg.SpeechLanguage)
	assert.Equal(t, 1024, cfg.ImageMaxDimension)
}

func TestLoadFromEnv(t *testing.T) {
	clearVendorKeys(t)
	t.Setenv("CURIOUSKIDS_LLM_PROVIDER", "anthropic")
	t.Setenv("CURIOUSKIDS_ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("CURIOUSKIDS_LLM_TIMEOUT", "45s")
	t.Setenv("CURIOUSKIDS_MAX_REFETCHES", "2")
	t.Setenv("CURIOUSKIDS_DB", "/tmp/kids.db")
	t.Setenv("CURIOUSKIDS_LOG_MODE", "prod")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, "claude-haiku", cfg.LLM.Anthropic.Model)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 2, cfg.MaxRefetches)
	assert.Equal(t, "/tmp/kids.db", cfg.DBPath)
	assert.Equal(t, "prod", cfg.LogMode)
}

func TestLoadDiscoversVendorKey(t *testing.T) {
	clearVendorKeys(t)
	t.Setenv("CURIOUSKIDS_GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-openai", cfg.LLM.OpenAI.APIKey)
	assert.NoError(t, cfg.LLM.Validate())
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearVendorKeys(t)

	t.Run("not a number", func(t *testing.T) {
		t.Setenv("CURIOUSKIDS_MAX_REFETCHES", "lots")
		_, err := Load()
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "parse env:"), err.Error())
	})

	t.Run("negative refetches", func(t *testing.T) {
		t.Setenv("CURIOUSKIDS_MAX_REFETCHES", "-1")
		_, err := Load()
		assert.ErrorContains(t, err, "CURIOUSKIDS_MAX_REFETCHES")
	})

	t.Run("zero image dimension", func(t *testing.T) {
		t.Setenv("CURIOUSKIDS_IMAGE_MAX_DIMENSION", "0")
		_, err := Load()
		assert.ErrorContains(t, err, "CURIOUSKIDS_IMAGE_MAX_DIMENSION")
	})
}
