// Package logging wraps a zap sugared logger behind alternating key/value calls.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the encoder of a logger.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// Logger is a structured logger taking alternating key/value pairs.
type Logger struct {
	s *zap.SugaredLogger
}

type settings struct {
	format  Format
	outputs []string
}

// Option tunes New.
type Option func(*settings)

// WithFormat picks the encoder. Unknown formats fall back to JSON.
func WithFormat(f Format) Option {
	return func(s *settings) {
		if f == FormatConsole {
			s.format = FormatConsole
		}
	}
}

// WithOutputs replaces the default stdout sink.
func WithOutputs(paths ...string) Option {
	return func(s *settings) {
		if len(paths) > 0 {
			s.outputs = paths
		}
	}
}

// New builds a logger at level. It never fails; a broken configuration yields Nop.
func New(level string, opts ...Option) *Logger {
	s := settings{format: FormatJSON, outputs: []string{"stdout"}}
	for _, opt := range opts {
		opt(&s)
	}

	zc := zap.NewProductionConfig()
	if s.format == FormatConsole {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(parseLevel(level))
	zc.OutputPaths = s.outputs

	z, err := zc.Build()
	if err != nil {
		return Nop()
	}
	return &Logger{s: z.Sugar()}
}

// NewDevelopment returns a human readable console logger writing to stderr.
func NewDevelopment(level string) *Logger {
	return New(level, WithFormat(FormatConsole), WithOutputs("stderr"))
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{s: zap.NewNop().Sugar()}
}

func (l *Logger) With(keyvals ...any) *Logger {
	return &Logger{s: l.s.With(keyvals...)}
}

// Named adds a sub-scope to the logger name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{s: l.s.Named(name)}
}

func (l *Logger) Debug(msg string, keyvals ...any) { l.s.Debugw(msg, keyvals...) }
func (l *Logger) Info(msg string, keyvals ...any)  { l.s.Infow(msg, keyvals...) }
func (l *Logger) Warn(msg string, keyvals ...any)  { l.s.Warnw(msg, keyvals...) }
func (l *Logger) Error(msg string, keyvals ...any) { l.s.Errorw(msg, keyvals...) }

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.s.Sync()
}

var levels = map[string]zapcore.Level{
	"debug":   zapcore.DebugLevel,
	"info":    zapcore.InfoLevel,
	"warn":    zapcore.WarnLevel,
	"warning": zapcore.WarnLevel,
	"error":   zapcore.ErrorLevel,
	"fatal":   zapcore.FatalLevel,
	"panic":   zapcore.PanicLevel,
}

func parseLevel(level string) zapcore.Level {
	if lvl, ok := levels[strings.ToLower(strings.TrimSpace(level))]; ok {
		return lvl
	}
	return zapcore.InfoLevel
}
