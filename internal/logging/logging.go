// Package logging configures the process-wide slog logger and bridges it to
// the printf-style Logger used by the calculation engine.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

type ctxKey struct{}

// ParseLevel maps debug|info|warn|error (case-insensitive) to a slog level.
// Unknown values report ok=false and fall back to info.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New builds a JSON logger writing to w with RFC3339 timestamps.
func New(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Init creates the logger for levelStr, installs it as the slog default and
// returns it. Call once at startup after configuration is loaded.
func Init(w io.Writer, levelStr string) *slog.Logger {
	level, ok := ParseLevel(levelStr)
	l := New(w, level)
	slog.SetDefault(l)
	if !ok {
		l.Warn("invalid log level, defaulting to info", "configuredLevel", levelStr)
	}
	l.Debug("logger initialized", "level", level.String())
	return l
}

// WithContext stores l in ctx for request-scoped logging.
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

// CalcLogger adapts a *slog.Logger to the engine's printf-style Logger.
type CalcLogger struct {
	L *slog.Logger
}

// NewCalcLogger wraps l; a nil l uses slog.Default().
func NewCalcLogger(l *slog.Logger) CalcLogger {
	if l == nil {
		l = slog.Default()
	}
	return CalcLogger{L: l.With("component", "calculation")}
}

func (c CalcLogger) Debugf(format string, args ...any) { c.log(slog.LevelDebug, format, args) }
func (c CalcLogger) Infof(format string, args ...any)  { c.log(slog.LevelInfo, format, args) }
func (c CalcLogger) Warnf(format string, args ...any)  { c.log(slog.LevelWarn, format, args) }
func (c CalcLogger) Errorf(format string, args ...any) { c.log(slog.LevelError, format, args) }

func (c CalcLogger) log(level slog.Level, format string, args []any) {
	l := c.L
	if l == nil {
		l = slog.Default()
	}
	ctx := context.Background()
	if !l.Enabled(ctx, level) {
		return
	}
	l.Log(ctx, level, fmt.Sprintf(format, args...))
}
