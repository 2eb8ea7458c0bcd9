package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const dashboardOff = "off"

// Config holds all configuration for the application
type Config struct {
	// Discord configuration
	Token   string `env:"DISCORD_TOKEN"`
	AppID   string `env:"APP_ID"`
	GuildID string `env:"GUILD_ID"`

	// Dashboard listen address, "off" disables the dashboard
	DashboardAddr string `env:"DASHBOARD_ADDR" envDefault:":8080"`

	// Idle sessions are reaped after SessionMaxIdle, checked every ReapInterval
	SessionMaxIdle time.Duration `env:"SESSION_MAX_IDLE" envDefault:"24h"`
	ReapInterval   time.Duration `env:"REAP_INTERVAL" envDefault:"10m"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	PresetsFile string `env:"PRESETS_FILE"`

	// Environment
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // "development" or "production"

	Presets Presets
}

// SessionPreset holds the parameters a new progression session starts with
type SessionPreset struct {
	Bankroll      float64 `yaml:"bankroll"`
	BaseBet       float64 `yaml:"base_bet"`
	Payout        float64 `yaml:"payout"`
	MaxLossStreak int     `yaml:"max_loss_streak"`
}

// Presets are the defaults used by the chat bot and the dashboard
type Presets struct {
	Chat      SessionPreset `yaml:"chat"`
	Dashboard SessionPreset `yaml:"dashboard"`
}

// DefaultPresets mirrors the defaults the bot and the dashboard form have always used
func DefaultPresets() Presets {
	return Presets{
		Chat:      SessionPreset{Bankroll: 100, BaseBet: 1, Payout: 2.0, MaxLossStreak: 8},
		Dashboard: SessionPreset{Bankroll: 1000, BaseBet: 1, Payout: 2.0, MaxLossStreak: 8},
	}
}

// Load reads the configuration from the given env files (.env when none are
// named) and environment variables
func Load(files ...string) (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(files...); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	return Parse()
}

// Parse builds a Config from the current environment without touching .env
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Presets = DefaultPresets()
	if cfg.PresetsFile != "" {
		presets, err := LoadPresets(cfg.PresetsFile, cfg.Presets)
		if err != nil {
			return nil, err
		}
		cfg.Presets = presets
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadPresets overlays the YAML file at path on top of base
func LoadPresets(path string, base Presets) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read presets file: %w", err)
	}

	presets := base
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return base, fmt.Errorf("failed to parse presets file %s: %w", path, err)
	}

	for name, p := range map[string]SessionPreset{"chat": presets.Chat, "dashboard": presets.Dashboard} {
		if err := p.validate(); err != nil {
			return base, fmt.Errorf("invalid %s preset: %w", name, err)
		}
	}
	return presets, nil
}

func (p SessionPreset) validate() error {
	switch {
	case p.Bankroll <= 0 || p.BaseBet <= 0:
		return errors.New("bankroll and base_bet must be positive")
	case p.BaseBet > p.Bankroll:
		return errors.New("base_bet cannot exceed bankroll")
	case p.Payout < 1:
		return errors.New("payout must be at least 1.0")
	case p.MaxLossStreak < 1:
		return errors.New("max_loss_streak must be at least 1")
	}
	return nil
}

// validate checks if all required configuration is present
func (c *Config) validate() error {
	if !c.DiscordEnabled() && !c.DashboardEnabled() {
		return fmt.Errorf("DISCORD_TOKEN or DASHBOARD_ADDR is required")
	}
	if c.Token != "" && c.AppID == "" {
		return fmt.Errorf("APP_ID is required when DISCORD_TOKEN is set")
	}
	if c.SessionMaxIdle <= 0 {
		return fmt.Errorf("SESSION_MAX_IDLE must be positive")
	}
	if c.ReapInterval <= 0 {
		return fmt.Errorf("REAP_INTERVAL must be positive")
	}
	return nil
}

// DiscordEnabled reports whether the chat bot should be started
func (c *Config) DiscordEnabled() bool {
	return c.Token != ""
}

// DashboardEnabled reports whether the HTTP dashboard should be started
func (c *Config) DashboardEnabled() bool {
	return c.DashboardAddr != "" && c.DashboardAddr != dashboardOff
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
