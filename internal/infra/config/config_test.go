package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyaya-rag/internal/infra/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, "9020", cfg.Port)
	assert.Equal(t, "legal-db", cfg.DBHost)
	assert.Equal(t, "ollama", cfg.LLMProvider)
	assert.Equal(t, 0.6, cfg.VectorWeight)
	assert.Equal(t, 0.4, cfg.KeywordWeight)
	assert.Equal(t, 15, cfg.RetrieveTopK)
	assert.Equal(t, 5, cfg.RerankTopK)
	assert.Equal(t, 8000, cfg.MaxContextTokens)
	assert.Equal(t, 256, cfg.CacheSize)
	assert.Equal(t, 15, cfg.CacheTTLMinutes)
	assert.False(t, cfg.OTelEnabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("VECTOR_WEIGHT", "0.7")
	t.Setenv("RETRIEVE_TOP_K", "25")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := config.Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, 0.7, cfg.VectorWeight)
	assert.Equal(t, 25, cfg.RetrieveTopK)
	assert.True(t, cfg.OTelEnabled)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("RETRIEVE_TOP_K", "not-a-number")
	t.Setenv("VECTOR_WEIGHT", "abc")

	cfg := config.Load()

	assert.Equal(t, 15, cfg.RetrieveTopK)
	assert.Equal(t, 0.6, cfg.VectorWeight)
}

func TestLoad_SecretFromFile(t *testing.T) {
	secretFile := filepath.Join(t.TempDir(), "db_password")
	require.NoError(t, os.WriteFile(secretFile, []byte("s3cret\n"), 0o600))

	t.Setenv("DB_PASSWORD_FILE", secretFile)

	cfg := config.Load()
	assert.Equal(t, "s3cret", cfg.DBPassword)
}

func TestLoad_SecretEnvWinsOverFile(t *testing.T) {
	secretFile := filepath.Join(t.TempDir(), "db_password")
	require.NoError(t, os.WriteFile(secretFile, []byte("from-file"), 0o600))

	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("DB_PASSWORD_FILE", secretFile)

	cfg := config.Load()
	assert.Equal(t, "from-env", cfg.DBPassword)
}
