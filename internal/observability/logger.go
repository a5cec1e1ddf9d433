package observability

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/couchcryptid/climate-norms/internal/config"
)

// NewLogger builds the process logger from config. LOG_FORMAT=json produces
// machine-readable output for deployment; anything else gets a colorized
// text handler for local use.
func NewLogger(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.LogLevel)

	if cfg.LogFormat == "json" {
		h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		return slog.New(h)
	}

	h := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
	return slog.New(h)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
