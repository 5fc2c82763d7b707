package contract

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// ConfigureLogging installs a text handler on stderr as the default logger.
func ConfigureLogging(level slog.Level) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// ParseLogLevel converts debug, info, warn or error into a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level '%s'. must be debug, info, warn or error", s)
	}
	return level, nil
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err == nil {
		slog.Warn(msg)
		return
	}
	slog.Warn(msg, "error", err)
}
