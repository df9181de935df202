package logger

import (
	"log/slog"
	"strings"
)

const (
	FormatJSON = "json"
	FormatText = "text"

	DefaultServiceName = "homestead"
)

// Config represents logger configuration
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Format      string // "json", "text"
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Format:      FormatText,
		ServiceName: DefaultServiceName,
		Version:     "dev",
		Environment: "dev",
	}
}

// LogLevel converts string level to slog.Level
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsJSON reports JSON output; production environments default to it.
func (c Config) IsJSON() bool {
	switch strings.ToLower(strings.TrimSpace(c.Format)) {
	case FormatJSON:
		return true
	case FormatText:
		return false
	}
	env := strings.ToLower(c.Environment)
	return env == "prod" || env == "production"
}

func (c Config) baseAttributes() []any {
	attrs := make([]any, 0, 6)
	if c.ServiceName != "" {
		attrs = append(attrs, "service", c.ServiceName)
	}
	if c.Version != "" {
		attrs = append(attrs, "version", c.Version)
	}
	if c.Environment != "" {
		attrs = append(attrs, "environment", c.Environment)
	}
	return attrs
}
