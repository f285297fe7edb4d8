package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/mdsumm/internal/chunker"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("MDSUMM_ANTHROPIC_API_KEY", "")
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load(newViper(t))

	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Model)
	assert.Equal(t, chunker.DefaultContext, cfg.Context)
	assert.Equal(t, 3, cfg.MaxLevel)
	assert.False(t, cfg.Recursive)
	assert.Equal(t, "_markdown", cfg.InputDir)
	assert.Equal(t, "_summary", cfg.OutputDir)
	assert.Equal(t, "_input", cfg.ConvertInputDir)
	assert.True(t, cfg.Keywords)
	assert.Equal(t, 15, cfg.MaxKeywords)
	assert.Equal(t, 120*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, []string{"en"}, cfg.CaptionLanguages)
	assert.Equal(t, "text", cfg.LogFormat)

	assert.Equal(t, chunker.DefaultConfig(), cfg.ChunkConfig())
}

func TestLoad_EnvOverrides(t *testing.T) {
	v := newViper(t)
	t.Setenv("ANTHROPIC_API_KEY", " sk-test ")
	t.Setenv("MDSUMM_CONTEXT", "4000")
	t.Setenv("MDSUMM_RECURSIVE", "true")
	t.Setenv("MDSUMM_HTTP_TIMEOUT", "5s")
	t.Setenv("MDSUMM_LOG_FORMAT", "JSON")

	cfg := Load(v)
	assert.Equal(t, "sk-test", cfg.AnthropicAPIKey)
	assert.Equal(t, 4000, cfg.Context)
	assert.True(t, cfg.Recursive)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "json", cfg.LogFormat)

	cc := cfg.ChunkConfig()
	assert.Equal(t, 6000, cc.BlockSize)
	assert.Equal(t, 2000, cc.MinBlockSize)
	require.NoError(t, cfg.Validate(true))
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mdsumm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
model: claude-haiku-4-5
max_level: 2
caption_languages: [de, en]
instructions: |
  Answer in German.
`), 0o644))

	v := newViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg := Load(v)
	assert.Equal(t, "claude-haiku-4-5", cfg.Model)
	assert.Equal(t, 2, cfg.MaxLevel)
	assert.Equal(t, []string{"de", "en"}, cfg.CaptionLanguages)
	assert.Equal(t, "Answer in German.", cfg.Instructions)
	assert.Equal(t, 2, cfg.SummarizerOptions().Chunk.MaxLevel)
}

func TestValidate(t *testing.T) {
	base := Load(newViper(t))
	base.AnthropicAPIKey = "sk"

	tests := []struct {
		name    string
		mutate  func(c *Config)
		needLLM bool
		wantErr string
	}{
		{"valid", func(c *Config) {}, true, ""},
		{"missing key", func(c *Config) { c.AnthropicAPIKey = "" }, true, "ANTHROPIC_API_KEY"},
		{"missing key without llm", func(c *Config) { c.AnthropicAPIKey = "" }, false, ""},
		{"max level", func(c *Config) { c.MaxLevel = 7 }, false, "max_level"},
		{"negative context", func(c *Config) { c.Context = -1 }, false, "context"},
		{"temperature", func(c *Config) { c.Temperature = 1.5 }, false, "temperature"},
		{"log format", func(c *Config) { c.LogFormat = "xml" }, false, "log_format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate(tt.needLLM)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
