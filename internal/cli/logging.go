package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

var (
	// logger is replaced by initLogging once flags are parsed.
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	logLevelMap = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

// initLogging installs a text or JSON handler on w at the given level.
// Unknown levels fall back to warn.
func initLogging(logLevel, format string, w io.Writer) error {
	level, ok := logLevelMap[strings.ToLower(logLevel)]
	if !ok {
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("invalid log format %q (must be text or json)", format)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)
	logger.Debug("logging initialized", "level", level.String(), "format", format)
	return nil
}
