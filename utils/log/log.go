// Package log wraps log/slog with the JSON-handler setup and attribute
// helpers used throughout this repository.
package log

import (
	"log/slog"
	"os"
)

// BuildLogger returns a JSON-handler slog.Logger writing to stderr at the
// given level ("debug", "info", "warn", "error"; unrecognized values fall
// back to info).
func BuildLogger(level string) *slog.Logger {
	ops := &slog.HandlerOptions{
		AddSource: true,
		Level:     parseLevel(level),
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, ops))
}

func parseLevel(level string) slog.Level {
	switch level {
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

// ErrAttr wraps an error as a slog attribute.
func ErrAttr(err error) slog.Attr {
	return slog.Any("error", err)
}

// StringAttr wraps a string as a slog attribute.
func StringAttr(key, value string) slog.Attr {
	return slog.String(key, value)
}

// IntAttr wraps an int as a slog attribute.
func IntAttr(key string, value int) slog.Attr {
	return slog.Int(key, value)
}
