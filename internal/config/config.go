package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Backend  BackendConfig
	Database DatabaseConfig
	UI       UIConfig
	Log      LogConfig
}

// BackendConfig points the client at the marketplace API.
type BackendConfig struct {
	URL     string
	WebURL  string `mapstructure:"web_url"`
	Timeout time.Duration
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	AutoplayInterval time.Duration `mapstructure:"autoplay_interval"`
	ToastDuration    time.Duration `mapstructure:"toast_duration"`
}

// LogConfig controls the log file written while the TUI owns the terminal.
type LogConfig struct {
	Path  string
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix COURSIFY_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("backend.url", "http://localhost:4001/api/v1")
	v.SetDefault("backend.web_url", "http://localhost:5173")
	v.SetDefault("backend.timeout", 10*time.Second)
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "coursify", "coursify.db"))
	v.SetDefault("ui.autoplay_interval", time.Second)
	v.SetDefault("ui.toast_duration", 3*time.Second)
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "coursify", "coursify.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("COURSIFY_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "coursify"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("COURSIFY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing file is fine, a broken one is not
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Backend.URL = strings.TrimRight(strings.TrimSpace(c.Backend.URL), "/")
	c.Backend.WebURL = strings.TrimRight(strings.TrimSpace(c.Backend.WebURL), "/")
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the client cannot run with.
func (c Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return fmt.Errorf("backend.url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.url must be absolute, got %q", c.Backend.URL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive")
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path is required")
	}
	return nil
}

// LogLevel maps log.level onto slog. Unknown values fall back to info.
func (c Config) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
