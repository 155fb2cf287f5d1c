// Package logger builds the process-wide slog.Logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects level, destination and format of log output.
type Options struct {
	// Level is debug, info, warn or error. Empty means info.
	Level string

	// File appends logs to a file. Empty or "-" means Stderr, os.DevNull
	// discards everything.
	File string

	// Format is text or json. Empty means text.
	Format string

	// Verbose forces debug level regardless of Level.
	Verbose bool

	// Stderr is the default destination. Nil means os.Stderr.
	Stderr io.Writer
}

func level(option string) (slog.Level, bool) {
	switch strings.ToLower(option) {
	case "", "info":
		return slog.LevelInfo, true
	case "debug":
		return slog.LevelDebug, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New builds a logger from opts. The returned close function releases the
// log file, if one was opened, and is never nil.
//
// Bad options never fail: the logger falls back to the default for that
// option and reports the problem through itself.
func New(opts Options) (*slog.Logger, func() error) {
	var warnings []string

	lvl, ok := level(opts.Level)
	if !ok {
		warnings = append(warnings, "could not parse logger level")
	}
	if opts.Verbose {
		lvl = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: lvl}

	var output io.Writer = opts.Stderr
	if output == nil {
		output = os.Stderr
	}
	closeFn := func() error { return nil }

	var openErr error
	switch opts.File {
	case "", "-":
	case os.DevNull:
		return slog.New(slog.NewTextHandler(io.Discard, handlerOpts)), closeFn
	default:
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			openErr = err
		} else {
			output = f
			closeFn = f.Close
		}
	}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "json":
		handler = slog.NewJSONHandler(output, handlerOpts)
	case "", "text":
		handler = slog.NewTextHandler(output, handlerOpts)
	default:
		handler = slog.NewTextHandler(output, handlerOpts)
		warnings = append(warnings, "could not parse logger format")
	}

	logger := slog.New(handler)
	for _, w := range warnings {
		logger.Warn(w, "level", opts.Level, "format", opts.Format)
	}
	if openErr != nil {
		logger.Warn("could not open logger file", "file", opts.File, "err", openErr)
	}
	return logger, closeFn
}
