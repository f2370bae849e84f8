package config

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger for env: JSON at Info level in
// production, human-readable text at Debug level otherwise. Source
// locations are attached only in development.
func NewLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: env == "development",
	}

	var handler slog.Handler
	switch env {
	case "production":
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
