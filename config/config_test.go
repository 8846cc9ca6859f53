package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("OPENAI_API_KEY", "test-api-key")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "gpt-4o-mini", cfg.ModelID)
	assert.Equal(t, 1000, cfg.MaxOutputTokens)
	assert.Equal(t, 50, cfg.MaxRequestsPerDay)
	assert.Equal(t, 20000, cfg.MaxTokensPerDay)
	assert.Equal(t, time.Hour, cfg.RateLimitWindow)
}

func TestLoadConfig_MissingAPIKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY_FILE", "")

	_, err := LoadConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoadConfig_APIKeyFromFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("OPENAI_API_KEY", "")

	keyFile := filepath.Join(t.TempDir(), "api_key")
	require.NoError(t, os.WriteFile(keyFile, []byte("file-key\n"), 0o600))
	t.Setenv("OPENAI_API_KEY_FILE", keyFile)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.OpenAIAPIKey)
}

func TestLoadConfig_MissingJWTSecret(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-api-key")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidateConfig_BadDriver(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_DRIVER", "mongodb")

	_, err := LoadConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAX_REQUESTS_PER_DAY", "10")
	t.Setenv("MAX_TOKENS_PER_DAY", "5000")
	t.Setenv("RATE_LIMIT_WINDOW", "30m")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MaxRequestsPerDay)
	assert.Equal(t, 5000, cfg.MaxTokensPerDay)
	assert.Equal(t, 30*time.Minute, cfg.RateLimitWindow)
}
