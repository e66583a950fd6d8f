package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Config holds configuration for the logger.
type Config struct {
	Level  string
	Format string
}

// NewLogger creates a new slog.Logger writing to the specified output.
// The level is parsed from the config; defaults to INFO if invalid or
// empty. The format is "json" or "text"; defaults to JSON.
func NewLogger(config Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource:   false,
		Level:       parseLevel(config.Level),
		ReplaceAttr: nil,
	}

	var handler slog.Handler

	if strings.EqualFold(config.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
