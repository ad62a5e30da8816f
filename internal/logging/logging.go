package logging

import (
	"io"
	"log/slog"
	"os"
)

// New builds a slog.Logger for the given level. The web server logs JSON,
// interactive commands use the text handler so output stays readable.
func New(w io.Writer, level string, json bool) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if json {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// Default returns a text logger on stderr at info level.
func Default() *slog.Logger {
	return New(os.Stderr, "info", false)
}
