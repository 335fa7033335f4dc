package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Cleanup(func() { Set(nil) })
	t.Setenv("LLM_MODELS", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultModels, cfg.OpenRouter.Models)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenRouter.BaseURL)
	assert.Same(t, cfg, Get())
}

func TestLoadFromEnv(t *testing.T) {
	t.Cleanup(func() { Set(nil) })
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_MODELS", " model-a , ,model-b")
	t.Setenv("CLERK_SECRET_KEY", "sk_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"model-a", "model-b"}, cfg.OpenRouter.Models)
	assert.Equal(t, "sk_test", cfg.Clerk.SecretKey)
}

func TestGetWithoutLoad(t *testing.T) {
	Set(nil)
	cfg := Get()
	assert.Equal(t, DefaultModels, cfg.OpenRouter.Models)
	assert.Equal(t, "https://api.clerk.com/v1", cfg.Clerk.APIURL)
}
