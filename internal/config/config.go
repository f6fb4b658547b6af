package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AI       AIConfig       `yaml:"ai"`
	Claude   ClaudeConfig   `yaml:"claude"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Reaction ReactionConfig `yaml:"reaction"`
	Storage  StorageConfig  `yaml:"storage"`
	HTTP     HTTPConfig     `yaml:"http"`
	Discord  DiscordConfig  `yaml:"discord"`
	Log      LogConfig      `yaml:"log"`
}

type AIConfig struct {
	Provider string `yaml:"provider"` // "claude", "gemini", or "" (auto-detect)
}

type ClaudeConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int64  `yaml:"max_tokens"`
	// Sliding window rate limiter
	RateLimit  int           `yaml:"rate_limit"`
	RateWindow time.Duration `yaml:"rate_window"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type ReactionConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"` // "file", "sqlite", or "memory"
	Path    string `yaml:"path"` // directory for file, database file for sqlite
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type DiscordConfig struct {
	Enabled   bool     `yaml:"enabled"`
	BotToken  string   `yaml:"bot_token"`
	ChannelID string   `yaml:"channel_id"`
	OwnerIDs  []string `yaml:"owner_ids"`

	// Proactive messages
	CheckInterval time.Duration `yaml:"check_interval"`
	IdleReminder  time.Duration `yaml:"idle_reminder"` // 0 disables
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

func Load(path string) (*Config, error) {
	cfg := defaults()

	// Load .env file first (from same directory as binary, or working dir)
	loadDotEnv(".env")

	// Load YAML config if it exists
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// File doesn't exist: use defaults + env vars
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv lets environment variables override the config file
// (secrets live in .env or the environment).
func applyEnv(cfg *Config) {
	if env := os.Getenv("ANTHROPIC_API_KEY"); env != "" {
		cfg.Claude.APIKey = env
	}
	if env := os.Getenv("GOOGLE_API_KEY"); env != "" {
		cfg.Gemini.APIKey = env
	} else if env := os.Getenv("API_KEY"); env != "" && cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = env
	}
	if env := os.Getenv("AI_PROVIDER"); env != "" {
		cfg.AI.Provider = env
	}
	if env := os.Getenv("WONDERPETS_STORAGE"); env != "" {
		cfg.Storage.Backend = env
	}
	if env := os.Getenv("WONDERPETS_STORAGE_PATH"); env != "" {
		cfg.Storage.Path = env
	}
	if env := os.Getenv("HTTP_ADDR"); env != "" {
		cfg.HTTP.Addr = env
	}
	if env := os.Getenv("DISCORD_BOT_TOKEN"); env != "" {
		cfg.Discord.BotToken = env
		cfg.Discord.Enabled = true
	}
	if env := os.Getenv("DISCORD_CHANNEL_ID"); env != "" {
		cfg.Discord.ChannelID = env
	}
	if env := os.Getenv("DISCORD_OWNER_IDS"); env != "" {
		// Comma-separated list of IDs
		var cleaned []string
		for _, id := range strings.Split(env, ",") {
			id = strings.TrimSpace(id)
			if id != "" {
				cleaned = append(cleaned, id)
			}
		}
		if len(cleaned) > 0 {
			cfg.Discord.OwnerIDs = cleaned
		}
	}
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		cfg.Log.Level = env
	}
	if env := os.Getenv("LOG_FORMAT"); env != "" {
		cfg.Log.Format = env
	}
}

// loadDotEnv reads a .env file and sets env vars that aren't already set.
func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return // no .env, that's fine
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		// Strip surrounding quotes
		if len(val) >= 2 {
			if (val[0] == '"' && val[len(val)-1] == '"') ||
				(val[0] == '\'' && val[len(val)-1] == '\'') {
				val = val[1 : len(val)-1]
			}
		}

		// Only set if not already in environment
		if os.Getenv(key) == "" && val != "" {
			os.Setenv(key, val)
		}
	}
}

func defaults() *Config {
	return &Config{
		Claude: ClaudeConfig{
			Model:      "claude-haiku-4-5",
			MaxTokens:  128,
			RateLimit:  20,
			RateWindow: time.Minute,
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		Reaction: ReactionConfig{
			Timeout: 15 * time.Second,
		},
		// Empty path lets the backend pick its own default.
		Storage: StorageConfig{
			Backend: "file",
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Discord: DiscordConfig{
			CheckInterval: time.Minute,
			IdleReminder:  6 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func validate(cfg *Config) error {
	switch cfg.AI.Provider {
	case "", "claude", "gemini":
	default:
		return fmt.Errorf("unknown AI provider %q (want claude or gemini)", cfg.AI.Provider)
	}
	switch cfg.Storage.Backend {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown storage backend %q (want file, sqlite, or memory)", cfg.Storage.Backend)
	}
	if !cfg.Discord.Enabled {
		return nil
	}
	if cfg.Discord.BotToken == "" {
		return fmt.Errorf("discord enabled but DISCORD_BOT_TOKEN is missing")
	}
	if cfg.Discord.ChannelID == "" {
		return fmt.Errorf("discord enabled but DISCORD_CHANNEL_ID is missing")
	}
	if len(cfg.Discord.OwnerIDs) == 0 {
		return fmt.Errorf("discord enabled but DISCORD_OWNER_IDS is missing")
	}
	return nil
}
