// Package logger builds the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Options configures the logger.
type Options struct {
	Debug   bool      // Enable debug level logging
	Quiet   bool      // Only show errors
	JSON    bool      // Output as JSON
	Compact bool      // Drop time and level from text output
	Output  io.Writer // Output destination (default: stderr)
}

// New builds a logger from opts.
func New(opts Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	if opts.Quiet {
		level = slog.LevelError
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(output, handlerOpts))
	}
	if opts.Compact {
		// Remove time and level attributes, keep message and other variables
		handlerOpts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && (a.Key == slog.TimeKey || a.Key == slog.LevelKey) {
				return slog.Attr{}
			}
			return a
		}
	}
	return slog.New(slog.NewTextHandler(output, handlerOpts))
}

// Init builds a logger and installs it as the slog default.
func Init(opts Options) *slog.Logger {
	l := New(opts)
	slog.SetDefault(l)
	return l
}
