package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the StoryShare CLI.
type Config struct {
	ServerBaseURL       string        `env:"STORYSHARE_SERVER_BASE_URL"`
	DatabasePath        string        `env:"STORYSHARE_DATABASE_PATH"`
	OnlineCheckInterval time.Duration `env:"STORYSHARE_ONLINE_CHECK_INTERVAL"`
	RequestTimeout      time.Duration `env:"STORYSHARE_REQUEST_TIMEOUT"`
	MaxSyncAttempts     int           `env:"STORYSHARE_MAX_SYNC_ATTEMPTS"`
	NotifyAddr          string        `env:"STORYSHARE_NOTIFY_ADDR"`
	NotifySubscribeURL  string        `env:"STORYSHARE_NOTIFY_SUBSCRIBE_URL"`
	LogLevel            string        `env:"STORYSHARE_LOG_LEVEL"`
	LogFormat           string        `env:"STORYSHARE_LOG_FORMAT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "https://story-api.dicoding.dev/v1"
	c.DatabasePath = "stories.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 15 * time.Second
	c.MaxSyncAttempts = 5
	c.NotifyAddr = ""
	c.NotifySubscribeURL = ""
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, os.Args[1:]); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, os.Args[1:]); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerBaseURL == "" {
		return fmt.Errorf("server base url must not be empty")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	if c.MaxSyncAttempts < 0 {
		return fmt.Errorf("max sync attempts must not be negative, got %d", c.MaxSyncAttempts)
	}
	return nil
}
