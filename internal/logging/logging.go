// Package logging wires the process-wide structured logger. Call sites log
// through logr with the verbosity constants below; the backing sink is zap.
package logging

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for logr.V. INFO-level messages use V(0) implicitly.
const (
	DEBUG = 1
	TRACE = 2
)

// Log is the process-wide logger. It discards everything until SetLogger is
// called, so library code can log unconditionally.
var Log = logr.Discard()

// SetLogger replaces the process-wide logger. Call once during startup,
// before any goroutines are spawned.
func SetLogger(l logr.Logger) {
	Log = l
}

// NewLogger builds a zap-backed logr.Logger at the given level. Recognized
// levels are "info", "debug" and "trace" plus anything zapcore can parse;
// an empty level means info. Development mode switches to console encoding
// with human-readable timestamps.
func NewLogger(level string, development bool) (logr.Logger, error) {
	var lvl zapcore.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		lvl = zapcore.InfoLevel
	case "debug":
		lvl = zapcore.Level(-DEBUG)
	case "trace":
		lvl = zapcore.Level(-TRACE)
	default:
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return logr.Logger{}, fmt.Errorf("parsing log level %q: %w", level, err)
		}
		lvl = parsed
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	z, err := cfg.Build()
	if err != nil {
		return logr.Logger{}, fmt.Errorf("building zap logger: %w", err)
	}
	return zapr.NewLogger(z), nil
}

// FromContext returns the logger attached to ctx, falling back to the
// process-wide logger when none is attached.
func FromContext(ctx context.Context) logr.Logger {
	if l, err := logr.FromContext(ctx); err == nil {
		return l
	}
	return Log
}

// IntoContext attaches a logger to ctx for downstream callers.
func IntoContext(ctx context.Context, l logr.Logger) context.Context {
	return logr.NewContext(ctx, l)
}
