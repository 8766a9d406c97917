// Package configs loads application configuration from environment
// variables with the GOODFOODS_ prefix.
package configs

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration.
type Config struct {
	ListenAddr         string        `envconfig:"LISTEN_ADDR" default:":8080"`
	ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
	ServerReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"5s"`
	ServerWriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ServerIdleTimeout  time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"120s"`

	// Model provider (any OpenAI-compatible endpoint).
	LLMAPIKey      string        `envconfig:"LLM_API_KEY"`
	LLMBaseURL     string        `envconfig:"LLM_BASE_URL" default:"https://api.openai.com/v1"`
	LLMModel       string        `envconfig:"LLM_MODEL" default:"llama-3.3-70b-versatile"`
	LLMTimeout     time.Duration `envconfig:"LLM_TIMEOUT" default:"30s"`
	LLMTemperature float32       `envconfig:"LLM_TEMPERATURE" default:"0.7"`

	// Storage.
	DatabasePath string `envconfig:"DATABASE_PATH" default:"goodfoods.db"`
	SeedFile     string `envconfig:"SEED_FILE" default:"configs/venues.yaml"`

	// Optional MCP tool surface; empty disables it.
	MCPListenAddr string `envconfig:"MCP_LISTEN_ADDR"`

	// Confirmation email.
	SMTPEnabled   bool   `envconfig:"SMTP_ENABLED" default:"false"`
	SMTPHost      string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort      int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser      string `envconfig:"SMTP_USER"`
	SMTPPassword  string `envconfig:"SMTP_PASSWORD"`
	SMTPFromEmail string `envconfig:"SMTP_FROM_EMAIL" default:"noreply@goodfoods.com"`
	SMTPFromName  string `envconfig:"SMTP_FROM_NAME" default:"GoodFoods Reservations"`

	// Observability.
	OtelExporterOtlpEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpInsecure bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
	LogLevel                 string `envconfig:"LOG_LEVEL" default:"info"`
}

// ParsedLogLevel returns the slog.Level based on the configured LogLevel string.
func (c *Config) ParsedLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		fallthrough
	default:
		return slog.LevelInfo
	}
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("goodfoods", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &cfg, nil
}
