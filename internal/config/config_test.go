package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ANTHROPIC_API_KEY", "GOOGLE_API_KEY", "API_KEY", "AI_PROVIDER",
		"WONDERPETS_STORAGE", "WONDERPETS_STORAGE_PATH", "HTTP_ADDR",
		"DISCORD_BOT_TOKEN", "DISCORD_CHANNEL_ID", "DISCORD_OWNER_IDS",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
	// Keep a stray .env in the working directory out of the picture.
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 15*time.Second, cfg.Reaction.Timeout)
	assert.False(t, cfg.Discord.Enabled)
}

func TestLoadYAMLAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ai:
  provider: claude
storage:
  backend: sqlite
  path: /tmp/pets.db
reaction:
  timeout: 3s
log:
  level: debug
`), 0o644))

	t.Setenv("ANTHROPIC_API_KEY", "ant-key")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "claude", cfg.AI.Provider)
	assert.Equal(t, "ant-key", cfg.Claude.APIKey)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/pets.db", cfg.Storage.Path)
	assert.Equal(t, 3*time.Second, cfg.Reaction.Timeout)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("# keys\nGOOGLE_API_KEY=\"g-key\"\nbroken line\n"), 0o600))

	cfg, err := Load("config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "g-key", cfg.Gemini.APIKey)
}

func TestLegacyAPIKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "legacy")

	cfg, err := Load("config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.Gemini.APIKey)
}

func TestDiscordOwnerIDs(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCORD_BOT_TOKEN", "token")
	t.Setenv("DISCORD_CHANNEL_ID", "chan")
	t.Setenv("DISCORD_OWNER_IDS", " 1, ,2 ")

	cfg, err := Load("config.yaml")
	require.NoError(t, err)
	assert.True(t, cfg.Discord.Enabled)
	assert.Equal(t, []string{"1", "2"}, cfg.Discord.OwnerIDs)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"provider", func(c *Config) { c.AI.Provider = "openai" }},
		{"storage", func(c *Config) { c.Storage.Backend = "floppy" }},
		{"discord token", func(c *Config) { c.Discord.Enabled = true }},
		{"discord channel", func(c *Config) {
			c.Discord = DiscordConfig{Enabled: true, BotToken: "t"}
		}},
		{"discord owners", func(c *Config) {
			c.Discord = DiscordConfig{Enabled: true, BotToken: "t", ChannelID: "c"}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			assert.Error(t, validate(cfg))
		})
	}
	assert.NoError(t, validate(defaults()))
}
