// Package logger builds the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/michsethowusu/kasanoma/internal/env"
)

// Options configures New.
type Options struct {
	Level      slog.Level
	LogToFile  bool
	LogFile    string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Output     io.Writer
}

// Option mutates Options.
type Option func(*Options)

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) Option {
	return func(o *Options) { o.Level = level }
}

// WithLogToFile enables the rotated file sink.
func WithLogToFile(enabled bool) Option {
	return func(o *Options) { o.LogToFile = enabled }
}

// WithLogFile sets the path of the rotated log file.
func WithLogFile(path string) Option {
	return func(o *Options) { o.LogFile = path }
}

// WithOutput replaces the console writer, mostly for tests.
func WithOutput(w io.Writer) Option {
	return func(o *Options) { o.Output = w }
}

// New returns a logger for environment e. Development gets a coloured console
// handler; other environments log JSON.
func New(e env.Environment, opts ...Option) *slog.Logger {
	o := Options{
		Level:      slog.LevelInfo,
		LogFile:    "kasanoma.log",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
		Output:     os.Stderr,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var console slog.Handler
	if e == env.Development {
		console = tint.NewHandler(o.Output, &tint.Options{
			Level:      o.Level,
			TimeFormat: time.Kitchen,
		})
	} else {
		console = slog.NewJSONHandler(o.Output, &slog.HandlerOptions{Level: o.Level})
	}

	if !o.LogToFile || o.LogFile == "" {
		return slog.New(console)
	}

	file := &lumberjack.Logger{
		Filename:   o.LogFile,
		MaxSize:    o.MaxSizeMB,
		MaxBackups: o.MaxBackups,
		MaxAge:     o.MaxAgeDays,
		Compress:   true,
	}

	return slog.New(fanout{
		console,
		slog.NewJSONHandler(file, &slog.HandlerOptions{Level: o.Level}),
	})
}

// ParseLevel maps a level name to a slog.Level, defaulting to Info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}

	return level
}
