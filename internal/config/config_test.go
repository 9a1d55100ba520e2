package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadAndValidate(t *testing.T) {
	// Create temp config file
	content := `
dataset:
  path: "data/launches.db"
  format: sqlite
  table: spacex

payload:
  bounds: data
  min: 0
  max: 12000
  step: 500
  marks: [0, 6000, 12000]

server:
  addr: ":9000"
  session_ttl: 1h
  max_sessions: 50

telegram:
  bot_token: "test_token"
  chat_id: "12345"
  enabled: true

logging:
  level: "debug"
  format: "json"
`
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Test Load
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify values
	if cfg.Dataset.Format != "sqlite" || cfg.Dataset.Table != "spacex" {
		t.Errorf("Unexpected dataset config: %+v", cfg.Dataset)
	}
	if cfg.Payload.Bounds != "data" || cfg.Payload.Max != 12000 || cfg.Payload.Step != 500 {
		t.Errorf("Unexpected payload config: %+v", cfg.Payload)
	}
	if len(cfg.Payload.Marks) != 3 {
		t.Errorf("Expected 3 marks, got %d", len(cfg.Payload.Marks))
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.SessionTTL != time.Hour {
		t.Errorf("Unexpected server config: %+v", cfg.Server)
	}

	// Defaults still apply to unspecified keys
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("Expected default read timeout, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Chart.Width != 800 || cfg.Chart.Height != 480 {
		t.Errorf("Expected default chart size, got %dx%d", cfg.Chart.Width, cfg.Chart.Height)
	}
	if cfg.Dataset.Timeout != 30*time.Second || cfg.Dataset.MaxRetries != 3 {
		t.Errorf("Unexpected dataset download defaults: %+v", cfg.Dataset)
	}
	if cfg.Telegram.MaxRetries != 3 {
		t.Errorf("Expected default max retries, got %d", cfg.Telegram.MaxRetries)
	}

	// Test Validate
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}

	if cfg.Payload.Bounds != "fixed" || cfg.Payload.Min != 0 || cfg.Payload.Max != 10000 || cfg.Payload.Step != 1000 {
		t.Errorf("Unexpected payload defaults: %+v", cfg.Payload)
	}
	if cfg.Server.Addr != "127.0.0.1:8050" {
		t.Errorf("Unexpected default addr %s", cfg.Server.Addr)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LAUNCHDASH_SERVER_ADDR", "0.0.0.0:8080")
	t.Setenv("LAUNCHDASH_PAYLOAD_BOUNDS", "data")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != "0.0.0.0:8080" {
		t.Errorf("Expected env addr, got %s", cfg.Server.Addr)
	}
	if cfg.Payload.Bounds != "data" {
		t.Errorf("Expected env bounds, got %s", cfg.Payload.Bounds)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/launchdash.yaml"); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func validConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{Path: "data/launches.csv", Format: "auto", MaxRetries: 3},
		Payload: PayloadConfig{Bounds: "fixed", Min: 0, Max: 10000, Step: 1000, Marks: []float64{0, 5000, 10000}},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8050",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			SessionTTL:   30 * time.Minute,
			MaxSessions:  100,
		},
		Chart:   ChartConfig{Width: 800, Height: 480},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing dataset path", mutate: func(c *Config) { c.Dataset.Path = "" }, wantErr: true},
		{name: "unknown dataset format", mutate: func(c *Config) { c.Dataset.Format = "xlsx" }, wantErr: true},
		{name: "zero dataset retries", mutate: func(c *Config) { c.Dataset.MaxRetries = 0 }, wantErr: true},
		{name: "unknown bounds mode", mutate: func(c *Config) { c.Payload.Bounds = "auto" }, wantErr: true},
		{name: "inverted payload bounds", mutate: func(c *Config) { c.Payload.Min = 20000 }, wantErr: true},
		{name: "zero step", mutate: func(c *Config) { c.Payload.Step = 0 }, wantErr: true},
		{name: "mark outside bounds", mutate: func(c *Config) { c.Payload.Marks = []float64{12000} }, wantErr: true},
		{name: "short session ttl", mutate: func(c *Config) { c.Server.SessionTTL = time.Second }, wantErr: true},
		{name: "tiny chart", mutate: func(c *Config) { c.Chart.Width = 10 }, wantErr: true},
		{
			name: "missing telegram token when enabled",
			mutate: func(c *Config) {
				c.Telegram = TelegramConfig{Enabled: true, ChatID: "1"}
			},
			wantErr: true,
		},
		{name: "invalid log level", mutate: func(c *Config) { c.Logging.Level = "trace" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := Load("../../configs/config.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("shipped config does not validate: %v", err)
	}
	if cfg.Dataset.Path != "data/spacex_launch_dash.csv" {
		t.Errorf("Unexpected dataset path %s", cfg.Dataset.Path)
	}
}
