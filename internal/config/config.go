package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/teampicker/internal/services/draft"
)

// MaxPickReactions is the number of distinct reactions Discord allows on one message
const MaxPickReactions = 20

// OptionsFileEnv names the variable holding the path of the YAML options file
const OptionsFileEnv = "TEAMPICKER_OPTIONS_FILE"

// Config holds everything the bot reads at startup
type Config struct {
	// Token is the Discord bot token
	Token string `yaml:"-" env:"DISCORD_TOKEN"`

	// ApplicationID registers the slash command, the bot user ID when empty
	ApplicationID string `yaml:"application_id" env:"TEAMPICKER_APPLICATION_ID"`

	// GuildID registers the slash command on one server instead of globally
	GuildID string `yaml:"guild_id" env:"TEAMPICKER_GUILD_ID"`

	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"-" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB"`

	// Channels are the text channels that run a queue
	Channels []string `yaml:"channels" env:"TEAMPICKER_CHANNELS" envSeparator:","`

	// DebugChannel receives operator reports
	DebugChannel string `yaml:"debug_channel" env:"TEAMPICKER_DEBUG_CHANNEL"`

	// QueueSize is the number of players in one match
	QueueSize int `yaml:"queue_size" env:"TEAMPICKER_QUEUE_SIZE"`

	// RenderInterval is how often status messages are repaired
	RenderInterval time.Duration `yaml:"render_interval" env:"TEAMPICKER_RENDER_INTERVAL"`

	Prefix string `yaml:"prefix" env:"TEAMPICKER_PREFIX"`

	// Commands limits the enabled chat commands, all when empty
	Commands []string `yaml:"commands" env:"TEAMPICKER_COMMANDS" envSeparator:","`

	LogLevel string `yaml:"log_level" env:"TEAMPICKER_LOG_LEVEL"`
}

// Default returns the built-in options
func Default() *Config {
	return &Config{
		RedisAddr:      "localhost:6379",
		QueueSize:      10,
		RenderInterval: time.Minute,
		Prefix:         "!",
		LogLevel:       "info",
	}
}

// Load reads .env, the options file and the environment, in that order
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	return Parse(os.Getenv(OptionsFileEnv), env.ToMap(os.Environ()))
}

// Parse layers the options file and the given environment over the defaults
func Parse(optionsFile string, environ map[string]string) (*Config, error) {
	cfg := Default()

	if optionsFile != "" {
		data, err := os.ReadFile(optionsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read options file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse options file %s: %w", optionsFile, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.Channels = compact(cfg.Channels)
	cfg.Commands = compact(cfg.Commands)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the options the services cannot run without
func (c *Config) Validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}

	if c.QueueSize < 2 || c.QueueSize%2 != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQueueSize, c.QueueSize)
	}

	// every undrafted player needs a pick reaction on the status message
	if picks := c.QueueSize - 2; picks > len(draft.DefaultAlphabet) || picks > MaxPickReactions {
		return fmt.Errorf("%w: %d", ErrQueueTooLarge, c.QueueSize)
	}

	if len(c.Channels) == 0 {
		return ErrNoChannels
	}

	seen := make(map[string]bool, len(c.Channels))
	for _, id := range c.Channels {
		if seen[id] {
			return fmt.Errorf("%w: %s", ErrDuplicateChannel, id)
		}
		seen[id] = true
	}

	if c.RenderInterval <= 0 {
		return ErrInvalidRenderInterval
	}

	return nil
}

// Debug reports whether development logging is requested
func (c *Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

func compact(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
