// Package logging defines the structured-logging interface used across the
// client, with a slog backend for plain text output and a zerolog backend for
// JSON and console output.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key-value pairs, e.g.:
//
//	log.Info(ctx, "request failed", "status", 401, "url", url)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value pairs.
	With(args ...any) Logger
}

const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New builds a Logger writing to w. Format "text" uses slog; "json" and
// "console" use zerolog. Level is one of debug, info, warn, error.
func New(w io.Writer, format, level string) (Logger, error) {
	format = strings.ToLower(format)
	switch format {
	case "", FormatText:
		l, err := NewTextLogger(w, level)
		if err != nil {
			return nil, err
		}
		return l, nil
	case FormatJSON, FormatConsole:
		l, err := NewZerologLogger(w, format == FormatConsole, normalizeLevel(level))
		if err != nil {
			return nil, err
		}
		return l, nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// Discard returns a logger that drops everything; handy for tests.
func Discard() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func normalizeLevel(level string) string {
	if level == "" {
		return "info"
	}
	return strings.ToLower(level)
}
