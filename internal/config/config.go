// Package config provides configuration management for the signal copier.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// GatewayConfig holds trading-gateway configuration.
type GatewayConfig struct {
	Token        string        `mapstructure:"token"`
	AccountID    string        `mapstructure:"account_id"`
	BaseURL      string        `mapstructure:"base_url"`
	StageTimeout time.Duration `mapstructure:"stage_timeout"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// TelegramConfig holds Telegram transport configuration.
type TelegramConfig struct {
	BotToken    string `mapstructure:"bot_token"`
	AllowedUser string `mapstructure:"allowed_user"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Console  bool   `mapstructure:"console"`
	File     bool   `mapstructure:"file"`
	FilePath string `mapstructure:"file_path"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/fx-signal-copier"
	}
	return filepath.Join(home, ".config", "fx-signal-copier")
}

// Load loads configuration from the specified directory, applying
// defaults and environment variable overrides. A missing config file is
// not an error: the environment alone can configure the bot.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("gateway.base_url", "https://mt-client-api-v1.agiliumtrade.agiliumtrade.ai")
	v.SetDefault("gateway.stage_timeout", time.Duration(0))
	v.SetDefault("gateway.poll_interval", 2*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("logging.file_path", filepath.Join(DefaultConfigDir(), "logs", "bot.log"))
}

func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("METAAPI_TOKEN"); token != "" {
		cfg.Gateway.Token = token
	}
	if accountID := os.Getenv("METAAPI_ACCOUNT_ID"); accountID != "" {
		cfg.Gateway.AccountID = accountID
	}
	if baseURL := os.Getenv("METAAPI_BASE_URL"); baseURL != "" {
		cfg.Gateway.BaseURL = baseURL
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.Telegram.BotToken = token
	}
	if user := os.Getenv("TELEGRAM_USER"); user != "" {
		cfg.Telegram.AllowedUser = user
	}
}

// ValidateForRun checks the fields the live bot requires.
func (c *Config) ValidateForRun() error {
	if c.Gateway.Token == "" {
		return fmt.Errorf("gateway token is required (set METAAPI_TOKEN or gateway.token)")
	}
	if c.Gateway.AccountID == "" {
		return fmt.Errorf("gateway account ID is required (set METAAPI_ACCOUNT_ID or gateway.account_id)")
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram bot token is required (set TELEGRAM_BOT_TOKEN or telegram.bot_token)")
	}
	if c.Telegram.AllowedUser == "" {
		return fmt.Errorf("allowed telegram user is required (set TELEGRAM_USER or telegram.allowed_user)")
	}
	return nil
}
