package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("GEMINI_API_KEY overrides file key", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "env-key")

		cfg := &Config{LLM: LLMConfig{APIKey: "file-key"}}
		cfg.applyEnvOverrides()

		assert.Equal(t, "env-key", cfg.LLM.APIKey)
	})

	t.Run("whitespace-only key is ignored", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "   ")

		cfg := &Config{}
		cfg.applyEnvOverrides()

		assert.Empty(t, cfg.LLM.APIKey)
	})

	t.Run("AIDOC_MODEL overrides model", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("AIDOC_MODEL", "gemini-2.5-pro")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	})

	t.Run("rod variables configure the browser", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chromium")
		t.Setenv("ROD_NO_SANDBOX", "1")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "/usr/bin/chromium", cfg.Export.Browser.Bin)
		assert.True(t, cfg.Export.Browser.NoSandbox)
	})

	t.Run("unparseable booleans are ignored", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("AIDOC_DEBUG", "maybe")

		cfg := DefaultConfig()
		cfg.Logging.DebugMode = true
		cfg.applyEnvOverrides()

		assert.True(t, cfg.Logging.DebugMode)
	})
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	clearEnv(t)
	path := t.TempDir() + "/config.yaml"

	cfg := DefaultConfig()
	cfg.LLM.APIKey = "file-key"
	require.NoError(t, cfg.Save(path))

	t.Setenv("GEMINI_API_KEY", "env-key")
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", loaded.LLM.APIKey)
	require.NoError(t, loaded.Validate())
}
