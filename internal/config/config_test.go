package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "llama-3.1-70b-versatile", cfg.Groq.PrimaryModel)
	assert.Equal(t, []string{"mixtral-8x7b-32768", "llama-3.1-8b-instant"}, cfg.Groq.FallbackModels)
	assert.Equal(t, 60*time.Second, cfg.Groq.RequestTimeout)
	assert.Equal(t, 10, cfg.Analysis.MinQueryLength)
	assert.Equal(t, 3*time.Second, cfg.Analysis.StageDelay)
	assert.Equal(t, 15*time.Second, cfg.Analysis.RateLimitBackoff)
	assert.Equal(t, int64(1000), cfg.Analysis.MarketTokens)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ANALYSIS_STAGE_DELAY", "0s")
	t.Setenv("GROQ_PRIMARY_MODEL", "llama-3.3-70b-versatile")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Zero(t, cfg.Analysis.StageDelay)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Groq.PrimaryModel)
}

func TestModelsOrdering(t *testing.T) {
	g := GroqConfig{PrimaryModel: "primary", FallbackModels: []string{"fb1", "fb2"}}
	assert.Equal(t, []string{"primary", "fb1", "fb2"}, g.Models())
}

func TestValidateCredentials(t *testing.T) {
	assert.ErrorIs(t, GroqConfig{}.ValidateCredentials(), ErrCredentials)
	assert.ErrorIs(t, GroqConfig{APIKey: "short"}.ValidateCredentials(), ErrCredentials)
	assert.NoError(t, GroqConfig{APIKey: "gsk_0123456789abcdef"}.ValidateCredentials())
}
