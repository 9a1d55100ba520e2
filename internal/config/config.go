package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Payload  PayloadConfig  `mapstructure:"payload"`
	Server   ServerConfig   `mapstructure:"server"`
	Chart    ChartConfig    `mapstructure:"chart"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DatasetConfig locates the launch records. Path may be an http(s) URL, in
// which case the download honors Timeout and the retry settings.
type DatasetConfig struct {
	Path           string        `mapstructure:"path"`
	Format         string        `mapstructure:"format"`
	Table          string        `mapstructure:"table"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// PayloadConfig holds the payload range slider configuration.
// Bounds selects between the configured Min/Max ("fixed") and the
// observed payload range of the dataset ("data").
type PayloadConfig struct {
	Bounds string    `mapstructure:"bounds"`
	Min    float64   `mapstructure:"min"`
	Max    float64   `mapstructure:"max"`
	Step   float64   `mapstructure:"step"`
	Marks  []float64 `mapstructure:"marks"`
}

// ServerConfig holds the embedded HTTP server configuration
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Title           string        `mapstructure:"title"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
	MaxSessions     int           `mapstructure:"max_sessions"`
}

// ChartConfig holds PNG rendering dimensions
type ChartConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// TelegramConfig holds Telegram notification configuration
type TelegramConfig struct {
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	Enabled        bool          `mapstructure:"enabled"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// envKeyReplacer maps nested keys such as server.addr to LAUNCHDASH_SERVER_ADDR.
var envKeyReplacer = strings.NewReplacer(".", "_")

// Load reads configuration from file and environment variables.
// An empty path loads defaults and environment overrides only.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Enable environment variable override
	v.SetEnvPrefix("LAUNCHDASH")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	// Read config file
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Dataset defaults
	v.SetDefault("dataset.path", "data/spacex_launch_dash.csv")
	v.SetDefault("dataset.format", "auto")
	v.SetDefault("dataset.table", "launches")
	v.SetDefault("dataset.timeout", "30s")
	v.SetDefault("dataset.max_retries", 3)
	v.SetDefault("dataset.retry_delay_base", "1s")

	// Payload slider defaults
	v.SetDefault("payload.bounds", "fixed")
	v.SetDefault("payload.min", 0)
	v.SetDefault("payload.max", 10000)
	v.SetDefault("payload.step", 1000)
	v.SetDefault("payload.marks", []float64{0, 2500, 5000, 7500, 10000})

	// Server defaults
	v.SetDefault("server.addr", "127.0.0.1:8050")
	v.SetDefault("server.title", "SpaceX Launch Records Dashboard")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("server.session_ttl", "30m")
	v.SetDefault("server.max_sessions", 1000)

	// Chart defaults
	v.SetDefault("chart.width", 800)
	v.SetDefault("chart.height", 480)

	// Telegram defaults
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	// Validate Dataset config
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset.path is required")
	}
	validFormats := map[string]bool{"auto": true, "csv": true, "json": true, "sqlite": true}
	if !validFormats[c.Dataset.Format] {
		return fmt.Errorf("dataset.format must be one of: auto, csv, json, sqlite")
	}
	if c.Dataset.MaxRetries < 1 {
		return fmt.Errorf("dataset.max_retries must be at least 1")
	}

	// Validate Payload config
	if c.Payload.Bounds != "fixed" && c.Payload.Bounds != "data" {
		return fmt.Errorf("payload.bounds must be one of: fixed, data")
	}
	if c.Payload.Min < 0 {
		return fmt.Errorf("payload.min must not be negative")
	}
	if c.Payload.Max < c.Payload.Min {
		return fmt.Errorf("payload.max must be >= payload.min")
	}
	if c.Payload.Step <= 0 {
		return fmt.Errorf("payload.step must be positive")
	}
	for _, m := range c.Payload.Marks {
		if m < c.Payload.Min || m > c.Payload.Max {
			return fmt.Errorf("payload.marks must lie within [payload.min, payload.max], got %g", m)
		}
	}

	// Validate Server config
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.read_timeout and server.write_timeout must be positive")
	}
	if c.Server.SessionTTL < time.Minute {
		return fmt.Errorf("server.session_ttl must be at least 1 minute")
	}
	if c.Server.MaxSessions < 1 {
		return fmt.Errorf("server.max_sessions must be at least 1")
	}

	// Validate Chart config
	if c.Chart.Width < 100 || c.Chart.Height < 100 {
		return fmt.Errorf("chart.width and chart.height must be at least 100")
	}

	// Validate Telegram config
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	// Validate Logging config
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
