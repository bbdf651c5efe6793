package observability

import (
	"log/slog"
	"os"
	"strings"
)

// LogConfig configures the process-wide structured logger.
type LogConfig struct {
	Level   string // "debug", "info", "warn", "error"
	Format  string // "json" (default) or "text"
	Service string // attached to every record as "service" when set
}

// InitLogger builds a slog.Logger writing to stdout and installs it as
// the process default. JSON is the default format; "text" is meant for
// local runs.
func InitLogger(cfg LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	if cfg.Service != "" {
		logger = logger.With("service", cfg.Service)
	}
	slog.SetDefault(logger)

	return logger
}

// parseLevel maps a config string onto a slog.Level. Unknown values
// fall back to info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
