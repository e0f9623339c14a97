package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrimitra/agrimitra/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AGRIMITRA_CONFIG", "")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DefaultPort, cfg.Port)
	assert.Equal(t, config.DefaultAPIPrefix, cfg.APIPrefix)
	assert.Equal(t, config.ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, config.DefaultGeminiModel, cfg.Model())
}

func TestLoadYAMLFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agrimitra.yaml")
	body := []byte("port: 8181\nllm_provider: anthropic\nmodel_list:\n  anthropic: claude-test\n")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	t.Setenv("AGRIMITRA_CONFIG", path)
	t.Setenv("AGRIMITRA_LOG_LEVEL", "debug")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "claude-test", cfg.Model())
	assert.Equal(t, "sk-test", cfg.APIKeyForProvider())
}

func TestLoadJSONFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agrimitra.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"host":"127.0.0.1","rate_limit_per_minute":5}`), 0o600))
	t.Setenv("AGRIMITRA_CONFIG", path)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 5, cfg.RateLimitPerMinute)
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	t.Setenv("AGRIMITRA_CONFIG", "")
	t.Setenv("AGRIMITRA_LLM_PROVIDER", "openai")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown llm_provider")
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := &config.Config{Port: 0, LLMProvider: config.ProviderGemini, LLMTimeout: 10, APIPrefix: "/api"}
	assert.Error(t, cfg.Validate())
}
