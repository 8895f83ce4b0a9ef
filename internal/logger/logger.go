// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Log is the shared logger. It is ready to use before Init is called.
var Log *slog.Logger

func init() {
	Init("text", slog.LevelInfo)
}

// Init configures Log to write to stderr. format is "json" or "text";
// anything else falls back to text.
func Init(format string, level slog.Level) {
	InitWriter(os.Stderr, format, level)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, format string, level slog.Level) {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	Log = slog.New(handler)
}

func Info(msg string, args ...any) { Log.Info(msg, args...) }
func Warn(msg string, args ...any) { Log.Warn(msg, args...) }
func Error(msg string, args ...any) { Log.Error(msg, args...) }
func Debug(msg string, args ...any) { Log.Debug(msg, args...) }
