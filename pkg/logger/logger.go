package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
)

const (
	EMPTY   = ""
	DEBUG   = "debug"
	INFO    = "info"
	WARN    = "warn"
	ERROR   = "error"
	JSON    = "json"
	TEXT    = "text"
	LINE    = "line"
	SERVICE = "service"

	GeneralLogFile   = "server.log"
	ErrorLogFile     = "error.log"
	ExceptionLogFile = "exceptions.log"
)

type Logger struct {
	*slog.Logger
	exceptions *slog.Logger
	files      []*os.File
}

// Config describes the sinks of a Logger. Dir enables the general, error and
// exception files; Development lowers the console sink to debug.
type Config struct {
	Level       string
	Format      string
	Output      io.Writer
	AddSource   bool
	Service     string
	Dir         string
	Development bool
}

func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Format == EMPTY {
		cfg.Format = JSON
	}
	if cfg.Level == EMPTY {
		cfg.Level = INFO
	}

	level := parseLevel(cfg.Level)
	if cfg.Development {
		level = slog.LevelDebug
	}

	console := newHandler(cfg.Format, cfg.Output, &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	})

	l := &Logger{}
	handlers := []slog.Handler{console}
	exceptionHandlers := []slog.Handler{console}
	var openErrs []error

	if cfg.Dir != EMPTY {
		sinks := []struct {
			name  string
			level slog.Level
		}{
			{GeneralLogFile, slog.LevelInfo},
			{ErrorLogFile, slog.LevelError},
		}
		for _, sink := range sinks {
			f, err := l.openFile(cfg.Dir, sink.name)
			if err != nil {
				openErrs = append(openErrs, err)
				continue
			}
			handlers = append(handlers, newLineHandler(f, &slog.HandlerOptions{Level: sink.level}))
		}

		f, err := l.openFile(cfg.Dir, ExceptionLogFile)
		if err != nil {
			openErrs = append(openErrs, err)
		} else {
			exceptionHandlers = append(exceptionHandlers, newLineHandler(f, &slog.HandlerOptions{Level: slog.LevelError}))
		}
	}

	var handler slog.Handler = newFanoutHandler(handlers...)
	var exceptionHandler slog.Handler = newFanoutHandler(exceptionHandlers...)
	if cfg.Service != EMPTY {
		attrs := []slog.Attr{slog.String(SERVICE, cfg.Service)}
		handler = handler.WithAttrs(attrs)
		exceptionHandler = exceptionHandler.WithAttrs(attrs)
	}

	l.Logger = slog.New(handler)
	l.exceptions = slog.New(exceptionHandler)

	for _, err := range openErrs {
		l.Error("Failed to open log file, continuing without it", "error", err)
	}
	return l
}

func parseLevel(level string) slog.Level {
	switch level {
	case DEBUG:
		return slog.LevelDebug
	case INFO:
		return slog.LevelInfo
	case WARN:
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	switch format {
	case JSON:
		return slog.NewJSONHandler(out, opts)
	case TEXT:
		return slog.NewTextHandler(out, opts)
	default:
		return newLineHandler(out, opts)
	}
}

func (l *Logger) openFile(dir, name string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", name, err)
	}
	l.files = append(l.files, f)
	return f, nil
}

// Fatal logs a critical error and exits the application with status code 1
// Use this for unrecoverable errors that prevent the application from starting or continuing
func (l *Logger) Fatal(msg string, args ...any) {
	l.Error(msg, args...)
	os.Exit(1)
}

// Exception records an uncaught failure in the exception log and on the console.
func (l *Logger) Exception(msg string, args ...any) {
	l.exceptions.Error(msg, args...)
}

// CapturePanic must be deferred directly. It records the panic with its stack
// and then re-panics, leaving the outcome to the runtime.
func (l *Logger) CapturePanic() {
	if r := recover(); r != nil {
		l.Exception("Uncaught panic", "error", r, "stack", string(debug.Stack()))
		panic(r)
	}
}

func (l *Logger) Close() error {
	var firstErr error
	for _, f := range l.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	l.files = nil
	return firstErr
}
