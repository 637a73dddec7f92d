package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults when file is missing", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("MODEL", "")
		t.Setenv("DEBUG", "")
		t.Setenv("MODE", "")
		cfg, err := Load(filepath.Join(t.TempDir(), "tulkki.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "sk-test", cfg.APIKey)
		assert.Equal(t, "gpt-4o", cfg.Model)
		assert.Equal(t, 0.2, cfg.Temperature)
		assert.Equal(t, 4096, cfg.MaxTokens)
		assert.False(t, cfg.Debug)
	})
	t.Run("values from the config file", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("MODEL", "")
		path := filepath.Join(t.TempDir(), "tulkki.yaml")
		require.NoError(t, os.WriteFile(path, []byte("model: gpt-4o-mini\ntemperature: 0.7\nmax_tokens: 1024\n"), 0644))
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o-mini", cfg.Model)
		assert.Equal(t, 0.7, cfg.Temperature)
		assert.Equal(t, 1024, cfg.MaxTokens)
	})
	t.Run("environment overrides the file", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("MODEL", "gpt-4.1")
		t.Setenv("DEBUG", "1")
		t.Setenv("MODE", "tools")
		path := filepath.Join(t.TempDir(), "tulkki.yaml")
		require.NoError(t, os.WriteFile(path, []byte("model: gpt-4o-mini\n"), 0644))
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "gpt-4.1", cfg.Model)
		assert.True(t, cfg.Debug)
		assert.Equal(t, "tools", cfg.Mode)
	})
	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tulkki.yaml")
		require.NoError(t, os.WriteFile(path, []byte("model: [\n"), 0644))
		_, err := Load(path)
		require.Error(t, err)
	})
}
