// Package logging builds the slog loggers used by the drivers and carries
// them through context.Context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
)

// Options selects the handlers of a logger.
type Options struct {
	Level   string
	Format  string
	Writer  io.Writer
	Journal bool
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// New creates a logger writing text or JSON to opts.Writer, optionally fanned
// out to the systemd journal. The returned LevelVar adjusts the level of the
// writer handler at runtime.
func New(opts Options) (*slog.Logger, *slog.LevelVar) {
	level := new(slog.LevelVar)
	level.Set(ParseLevel(opts.Level))

	var handlers []slog.Handler
	var local slog.Handler
	if opts.Writer != nil {
		handlerOpts := &slog.HandlerOptions{Level: level}
		if opts.Format == "json" {
			local = slog.NewJSONHandler(opts.Writer, handlerOpts)
		} else {
			local = slog.NewTextHandler(opts.Writer, handlerOpts)
		}
		handlers = append(handlers, local)
	}

	if opts.Journal {
		journal, err := newJournalHandler()
		if err != nil {
			if local != nil {
				record := slog.NewRecord(time.Now(), slog.LevelWarn, "systemd journal unavailable", 0)
				record.Add("error", err)
				_ = local.Handle(context.Background(), record)
			}
		} else {
			handlers = append(handlers, journal)
		}
	}

	switch len(handlers) {
	case 0:
		return slog.New(slog.NewTextHandler(io.Discard, nil)), level
	case 1:
		return slog.New(handlers[0]), level
	}
	return slog.New(slogmulti.Fanout(handlers...)), level
}

// journalKey converts an attribute key into a valid journal field name.
func journalKey(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, strings.ToUpper(s))
}

type key struct{}

var loggerKey = key{}

// WithLogger returns a new context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from ctx, falling back to slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
