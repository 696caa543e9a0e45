// Package log builds the command's slog.Logger.
//
// Without a log file, records below error level go to stdout and errors go to
// stderr. With a file, everything at the configured level goes to both stderr
// and the file.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace is below Debug and logs every cache decision.
const LevelTrace slog.Level = -8

// Options are the logging flags shared by every command.
type Options struct {
	Level string `help:"Log level (trace, debug, info, warn, error)." default:"warn" enum:"trace,debug,info,warn,error" env:"ENUMKIT_LOG_LEVEL"`
	File  string `help:"Also write logs to this file." type:"path" env:"ENUMKIT_LOG_FILE"`
	JSON  bool   `help:"Write logs as JSON." name:"json"`
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MultiHandler fans out records to multiple handlers.
type MultiHandler struct{ hs []slog.Handler }

func (m MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.hs {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		_ = h.Handle(ctx, r.Clone())
	}
	return nil
}

func (m MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithAttrs(attrs)
	}
	return MultiHandler{hs: out}
}

func (m MultiHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithGroup(name)
	}
	return MultiHandler{hs: out}
}

// LevelFilter passes only the levels accepted by pass on to h.
type LevelFilter struct {
	pass func(slog.Level) bool
	h    slog.Handler
}

func (f LevelFilter) Enabled(ctx context.Context, level slog.Level) bool {
	if !f.pass(level) {
		return false
	}
	return f.h.Enabled(ctx, level)
}

func (f LevelFilter) Handle(ctx context.Context, r slog.Record) error {
	if !f.pass(r.Level) {
		return nil
	}
	return f.h.Handle(ctx, r)
}

func (f LevelFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithAttrs(attrs)}
}

func (f LevelFilter) WithGroup(name string) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithGroup(name)}
}

// New builds a logger writing to stdout and stderr as described in the
// package comment. It is split out of SetupLogger for tests.
func New(opts Options, stdout, stderr io.Writer, file io.Writer) *slog.Logger {
	level := ParseLevel(opts.Level)
	handler := func(w io.Writer, level slog.Level) slog.Handler {
		ho := &slog.HandlerOptions{Level: level}
		if opts.JSON {
			return slog.NewJSONHandler(w, ho)
		}
		return slog.NewTextHandler(w, ho)
	}

	var handlers []slog.Handler
	if file == nil {
		handlers = append(handlers,
			LevelFilter{pass: func(l slog.Level) bool { return l < slog.LevelError }, h: handler(stdout, level)},
			LevelFilter{pass: func(l slog.Level) bool { return l >= slog.LevelError }, h: handler(stderr, max(level, slog.LevelError))},
		)
	} else {
		handlers = append(handlers, handler(stderr, level), handler(file, level))
	}
	return slog.New(MultiHandler{hs: handlers})
}

// SetupLogger builds the command logger. The returned closers must be closed
// on exit.
func SetupLogger(opts Options) (*slog.Logger, []io.Closer, error) {
	if opts.File == "" {
		return New(opts, os.Stdout, os.Stderr, nil), nil, nil
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return New(opts, os.Stdout, os.Stderr, f), []io.Closer{f}, nil
}
