// SPDX-License-Identifier: MIT

// Package logger is the structured logging surface of the command line tools,
// backed by zap.
package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the logging interface used across the module.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)

	Named(name string) Logger
	With(fields ...Field) Logger
	Sync() error
}

// Field is a key-value pair for structured logging.
type Field struct {
	Key   string
	Value any
}

// Field constructors.
func String(key, val string) Field                 { return Field{Key: key, Value: val} }
func Int(key string, val int) Field                { return Field{Key: key, Value: val} }
func Float64(key string, val float64) Field        { return Field{Key: key, Value: val} }
func Duration(key string, val time.Duration) Field { return Field{Key: key, Value: val} }
func Any(key string, val any) Field                { return Field{Key: key, Value: val} }
func Err(err error) Field                          { return Field{Key: "error", Value: err} }

// Formats accepted by Config.Format.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// ErrInvalidConfig indicates an unknown level or format.
var ErrInvalidConfig = errors.New("logger: invalid config")

// Config selects the level and encoding.
type Config struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Format is json (production encoder) or console (development encoder).
	Format string
}

// New builds a zap-backed Logger writing to stderr.
func New(cfg Config) (Logger, error) {
	var base zap.Config
	switch strings.ToLower(cfg.Format) {
	case "", FormatJSON:
		base = zap.NewProductionConfig()
		base.EncoderConfig.TimeKey = "ts"
		base.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	case FormatConsole:
		base = zap.NewDevelopmentConfig()
		base.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("format %q: %w", cfg.Format, ErrInvalidConfig)
	}

	level := zapcore.InfoLevel
	if strings.TrimSpace(cfg.Level) != "" {
		if err := level.Set(cfg.Level); err != nil {
			return nil, fmt.Errorf("level %q: %w", cfg.Level, errors.Join(ErrInvalidConfig, err))
		}
	}
	base.Level = zap.NewAtomicLevelAt(level)
	base.DisableStacktrace = true

	built, err := base.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return &zapLogger{l: built}, nil
}

// FromZap wraps an existing zap logger.
func FromZap(l *zap.Logger) Logger {
	if l == nil {
		return Nop()
	}

	return &zapLogger{l: l.WithOptions(zap.AddCallerSkip(1))}
}

// Nop returns a Logger that discards everything.
func Nop() Logger { return &zapLogger{l: zap.NewNop()} }

type zapLogger struct {
	l *zap.Logger
}

func (z *zapLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	z.l.Debug(msg, convert(ctx, fields)...)
}

func (z *zapLogger) Info(ctx context.Context, msg string, fields ...Field) {
	z.l.Info(msg, convert(ctx, fields)...)
}

func (z *zapLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	z.l.Warn(msg, convert(ctx, fields)...)
}

func (z *zapLogger) Error(ctx context.Context, msg string, fields ...Field) {
	z.l.Error(msg, convert(ctx, fields)...)
}

func (z *zapLogger) Named(name string) Logger { return &zapLogger{l: z.l.Named(name)} }

func (z *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{l: z.l.With(convert(context.Background(), fields)...)}
}

// Sync flushes buffered entries. Syncing stderr fails on some platforms; that is ignored.
func (z *zapLogger) Sync() error {
	if err := z.l.Sync(); err != nil && !isStdSyncError(err) {
		return err
	}

	return nil
}

func isStdSyncError(err error) bool {
	msg := err.Error()

	return strings.Contains(msg, "invalid argument") || strings.Contains(msg, "inappropriate ioctl")
}

func convert(ctx context.Context, fields []Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+1)
	if id, ok := RunID(ctx); ok {
		out = append(out, zap.String(runIDKey, id))
	}
	for _, f := range fields {
		switch v := f.Value.(type) {
		case error:
			out = append(out, zap.NamedError(f.Key, v))
		case time.Duration:
			out = append(out, zap.Duration(f.Key, v))
		default:
			out = append(out, zap.Any(f.Key, v))
		}
	}

	return out
}
