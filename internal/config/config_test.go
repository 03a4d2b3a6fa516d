package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GENERATION_CONCURRENCY", "")
	t.Setenv("GENERATION_TIMEOUT", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 4, cfg.GenerationConcurrency)
	assert.Equal(t, 60*time.Second, cfg.GenerationTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GENERATION_CONCURRENCY", "1")
	t.Setenv("GENERATION_TIMEOUT", "45")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("APP_MODE", "production")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 1, cfg.GenerationConcurrency)
	assert.Equal(t, 45*time.Second, cfg.GenerationTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.IsProduction())
}

func TestGetEnvInt_IgnoresInvalid(t *testing.T) {
	t.Setenv("SOME_INT", "zero")
	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))
	t.Setenv("SOME_INT", "-2")
	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))
}
