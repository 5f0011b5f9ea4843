package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/polkiloo/storefront/internal/config"
)

// New creates a preconfigured slog.Logger writing JSON at the given level.
func New(level string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(handler)
}

// FromConfig builds the application logger from configuration.
func FromConfig(cfg *config.Config) *slog.Logger {
	return New(cfg.LogLevel)
}

// ParseLevel maps a textual level to slog.Level, falling back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
