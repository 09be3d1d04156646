// Package logger configures the process-wide slog logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Options control log output.
type Options struct {
	Level  string
	Format string // text or json
	File   string // optional; always written as JSON at debug level
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}

// New builds a logger writing to w and, when set, opts.File.
// The returned close func releases the file.
func New(w io.Writer, opts Options) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	ho := &slog.HandlerOptions{Level: level}
	var handlers []slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handlers = append(handlers, slog.NewJSONHandler(w, ho))
	} else {
		handlers = append(handlers, slog.NewTextHandler(w, ho))
	}

	closeFn := func() error { return nil }
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closeFn = f.Close
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}
	return slog.New(handler), closeFn, nil
}

// Init installs a logger writing to stderr as the slog default.
func Init(opts Options) (func() error, error) {
	log, closeFn, err := New(os.Stderr, opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(log)
	return closeFn, nil
}
