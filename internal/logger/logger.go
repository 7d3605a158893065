// Package logger provides structured logging for bookmaker runs.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// ContextKey identifies values that are copied from a context into log records.
type ContextKey string

const (
	RunIDKey   ContextKey = "run_id"
	BookKey    ContextKey = "book"
	ChapterKey ContextKey = "chapter"
	StageKey   ContextKey = "stage"
)

var contextKeys = []ContextKey{RunIDKey, StageKey, BookKey, ChapterKey}

// Options configures Init.
type Options struct {
	Level  string
	Format string
	// File, when set, receives a JSON copy of every record.
	File string
	// Console defaults to os.Stderr.
	Console io.Writer
}

var (
	defaultLogger *slog.Logger
	logFile       *os.File
)

// Init builds the process logger. Console output is text unless Format is
// "json"; a configured File always gets JSON records.
func Init(opts Options) error {
	level := parseLevel(opts.Level)
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handlers []slog.Handler
	if strings.ToLower(opts.Format) == "json" {
		handlers = append(handlers, slog.NewJSONHandler(console, handlerOpts))
	} else {
		handlers = append(handlers, slog.NewTextHandler(console, handlerOpts))
	}

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file %s: %w", opts.File, err)
		}
		Close()
		logFile = f
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		}))
	}

	defaultLogger = slog.New(slogmulti.Fanout(handlers...))
	slog.SetDefault(defaultLogger)
	return nil
}

// Close releases the log file opened by Init, if any.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns the process logger, initializing a text logger on first use.
func Default() *slog.Logger {
	if defaultLogger == nil {
		_ = Init(Options{Level: "info"})
	}
	return defaultLogger
}

// FromContext returns the default logger annotated with the run, stage, book
// and chapter stored in ctx.
func FromContext(ctx context.Context) *slog.Logger {
	l := Default()
	for _, key := range contextKeys {
		if v := ctx.Value(key); v != nil {
			l = l.With(string(key), v)
		}
	}
	return l
}

// WithValue stores a log attribute in ctx.
func WithValue(ctx context.Context, key ContextKey, value any) context.Context {
	return context.WithValue(ctx, key, value)
}

func Debug(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Debug(msg, args...)
}

func Info(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

// Error logs msg at error level with err attached.
func Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	FromContext(ctx).Error(msg, args...)
}
