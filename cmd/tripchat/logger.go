package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/klwong/tripchat/src/config"
	"github.com/lmittmann/tint"
)

// createChatLogger creates a logger that doesn't interfere with the
// interactive conversation by writing to a file instead of stdout/stderr
func createChatLogger(logLevel string) *slog.Logger {
	logDir := config.GetDefaultStoragePaths().LogPath

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
	}

	file, err := os.OpenFile(logDir+"/tripchat.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
	}

	return slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level: parseLogLevel(logLevel),
	}))
}

// createCLILogger creates a logger for one-shot commands that can write to stderr
func createCLILogger(logLevel string) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: parseLogLevel(logLevel),
	}))
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
