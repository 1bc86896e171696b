package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// SetupLogger инициализирует структурированное логирование.
// Уровень задаётся LOG_LEVEL: debug, info, warn или error.
func SetupLogger() {
	slog.SetDefault(NewLogger(os.Stdout, os.Getenv("LOG_LEVEL")))
}

// NewLogger создаёт JSON логгер с полем service.
func NewLogger(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})

	return slog.New(handler).With("service", "review-tracker")
}

func parseLevel(level string) slog.Level {
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
