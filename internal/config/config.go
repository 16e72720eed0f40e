// Package config loads the StressLess YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
	Remote   RemoteConfig   `yaml:"remote"`
	Reminder ReminderConfig `yaml:"reminder"`
}

type StorageConfig struct {
	// DBPath is the SQLite file; empty means ~/.stressless/stressless.db.
	DBPath string `yaml:"db_path"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error
	File       string `yaml:"file"`  // empty disables the file log
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// RemoteConfig configures the hosted collaborators. Every one is optional.
type RemoteConfig struct {
	ProfileURL  string `yaml:"profile_url"`
	AnonKey     string `yaml:"anon_key"`
	IdentityID  string `yaml:"identity_id"`
	EmailURL    string `yaml:"email_url"`
	EmailAPIKey string `yaml:"email_api_key"`
	EmailFrom   string `yaml:"email_from"`
	CheckoutURL string `yaml:"checkout_url"`
	AppURL      string `yaml:"app_url"`
	Timeout     string `yaml:"timeout"`
}

type ReminderConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"` // cron expression with seconds
}

func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "warn",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
		Remote: RemoteConfig{
			EmailURL:  "https://api.resend.com/emails",
			EmailFrom: "StressLess <noreply@stressless.app>",
			AppURL:    "https://stressless.app",
			Timeout:   "10s",
		},
		Reminder: ReminderConfig{
			Schedule: "0 0 18 * * *",
		},
	}
}

// DefaultPath is ~/.stressless/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".stressless", "config.yaml"), nil
}

// Load reads path, falling back to defaults when the file does not exist.
// Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.Storage.DBPath, "STRESSLESS_DB")
	set(&c.Logging.Level, "STRESSLESS_LOG_LEVEL")
	set(&c.Logging.File, "STRESSLESS_LOG_FILE")
	set(&c.Remote.ProfileURL, "SUPABASE_URL")
	set(&c.Remote.AnonKey, "SUPABASE_ANON_KEY")
	set(&c.Remote.IdentityID, "STRESSLESS_IDENTITY")
	set(&c.Remote.EmailAPIKey, "RESEND_API_KEY")
	set(&c.Remote.EmailFrom, "STRESSLESS_EMAIL_FROM")
	set(&c.Remote.CheckoutURL, "STRESSLESS_CHECKOUT_URL")
	set(&c.Remote.AppURL, "STRESSLESS_APP_URL")
}

var validLevels = []string{"debug", "info", "warn", "error"}

func (c *Config) Validate() error {
	level := strings.ToLower(c.Logging.Level)
	ok := false
	for _, l := range validLevels {
		if level == l {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("invalid logging level: %q (valid: %v)", c.Logging.Level, validLevels)
	}
	if c.Remote.Timeout != "" {
		if d, err := time.ParseDuration(c.Remote.Timeout); err != nil || d <= 0 {
			return fmt.Errorf("invalid remote timeout: %q", c.Remote.Timeout)
		}
	}
	if c.Reminder.Enabled {
		if _, err := cron.NewParser(cronSpec).Parse(c.Reminder.Schedule); err != nil {
			return fmt.Errorf("invalid reminder schedule %q: %w", c.Reminder.Schedule, err)
		}
	}
	return nil
}

// cronSpec matches cron.WithSeconds.
const cronSpec = cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor

// RemoteTimeout bounds every call to a remote collaborator.
func (c *Config) RemoteTimeout() time.Duration {
	d, err := time.ParseDuration(c.Remote.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

func (c *Config) ProfileSyncEnabled() bool {
	return c.Remote.ProfileURL != "" && c.Remote.AnonKey != ""
}

func (c *Config) EmailEnabled() bool {
	return c.Remote.EmailURL != "" && c.Remote.EmailAPIKey != ""
}

func (c *Config) CheckoutEnabled() bool {
	return c.Remote.CheckoutURL != ""
}
