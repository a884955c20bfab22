// Package logger builds the slog loggers used by the htable commands.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

type Handler int

const (
	DevHandler Handler = iota
	TextHandler
	JSONHandler
)

const (
	LevelTrace   = slog.Level(-8)
	LevelDebug   = slog.LevelDebug
	LevelInfo    = slog.LevelInfo
	LevelWarning = slog.LevelWarn
	LevelError   = slog.LevelError

	DefaultLevel = LevelInfo
)

type Opt func(o *opts)

type opts struct {
	writer  io.Writer
	level   slog.Level
	handler Handler
}

func WithLevel(lvl slog.Level) Opt {
	return func(o *opts) {
		o.level = lvl
	}
}

func WithWriter(w io.Writer) Opt {
	return func(o *opts) {
		o.writer = w
	}
}

func WithHandler(h Handler) Opt {
	return func(o *opts) {
		o.handler = h
	}
}

// New returns a logger configured from LOG_HANDLER and LOG_LEVEL, then opts.
func New(opt ...Opt) *slog.Logger {
	o := &opts{
		writer:  os.Stderr,
		level:   ParseLevel(os.Getenv("LOG_LEVEL")),
		handler: ParseHandler(os.Getenv("LOG_HANDLER")),
	}
	for _, apply := range opt {
		apply(o)
	}

	hopts := slog.HandlerOptions{
		Level: o.level,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.LevelKey && len(groups) == 0 {
				if lvl, ok := attr.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					return slog.String(attr.Key, "TRACE")
				}
			}
			return attr
		},
	}

	switch o.handler {
	case DevHandler:
		return slog.New(tint.NewHandler(o.writer, &tint.Options{
			Level:      o.level,
			TimeFormat: "[15:04:05.000]",
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.LevelKey && len(groups) == 0 {
					if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
						return tint.Attr(13, slog.String(a.Key, "TRC"))
					}
				}
				return a
			},
		}))
	case TextHandler:
		return slog.New(slog.NewTextHandler(o.writer, &hopts))
	default:
		return slog.New(slog.NewJSONHandler(o.writer, &hopts))
	}
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarning
	case "error":
		return LevelError
	default:
		return DefaultLevel
	}
}

// ParseHandler maps a handler name to a Handler, defaulting to the dev handler.
func ParseHandler(name string) Handler {
	switch strings.ToLower(name) {
	case "json":
		return JSONHandler
	case "txt", "text":
		return TextHandler
	default:
		return DevHandler
	}
}
