// Package logging is a key/value facade over zap shared by every binary.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// Logger is safe for concurrent use. A nil *Logger logs through Default().
type Logger struct {
	core *zap.Logger
	sync *sync.Once
}

var fallback atomic.Pointer[Logger]

func init() {
	fallback.Store(NewNop())
}

// Default is the process-wide logger handed to components built without one.
func Default() *Logger {
	return fallback.Load()
}

func SetDefault(l *Logger) {
	if l == nil {
		l = NewNop()
	}
	fallback.Store(l)
}

func wrap(z *zap.Logger) *Logger {
	return &Logger{core: z, sync: new(sync.Once)}
}

func NewNop() *Logger {
	return wrap(zap.NewNop())
}

// New writes JSON lines to w.
func New(level Level, w io.Writer) *Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "time"
	enc.MessageKey = "msg"
	enc.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(zapcore.AddSync(w)), level)
	return wrap(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2), zap.AddStacktrace(LevelError)))
}

// NewJSON is the service logger: JSON lines on stdout.
func NewJSON(level Level) *Logger {
	return New(level, os.Stdout)
}

// NewConsole is the CLI logger. It writes coloured text to stderr so stdout
// stays free for reports.
func NewConsole(level Level) *Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	enc.CallerKey = zapcore.OmitKey

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), level)
	return wrap(zap.New(core))
}

func ParseLevel(raw string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", raw)
}

func (l *Logger) orDefault() *Logger {
	if l == nil || l.core == nil {
		return Default()
	}
	return l
}

// Sync flushes buffered entries once; later calls are no-ops.
func (l *Logger) Sync() error {
	if l == nil || l.core == nil {
		return nil
	}
	var err error
	l.sync.Do(func() { err = l.core.Sync() })
	return err
}

func (l *Logger) With(kv ...any) *Logger {
	return wrap(l.orDefault().core.With(fields(context.Background(), kv)...))
}

func (l *Logger) Named(name string) *Logger {
	return wrap(l.orDefault().core.Named(name))
}

func (l *Logger) Debug(msg string, kv ...any) { l.emit(context.Background(), LevelDebug, msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.emit(context.Background(), LevelInfo, msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.emit(context.Background(), LevelWarn, msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.emit(context.Background(), LevelError, msg, kv) }

// The *Context variants add trace_id and span_id when ctx carries a span.

func (l *Logger) DebugContext(ctx context.Context, msg string, kv ...any) {
	l.emit(ctx, LevelDebug, msg, kv)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, kv ...any) {
	l.emit(ctx, LevelInfo, msg, kv)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, kv ...any) {
	l.emit(ctx, LevelWarn, msg, kv)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, kv ...any) {
	l.emit(ctx, LevelError, msg, kv)
}

func (l *Logger) emit(ctx context.Context, level Level, msg string, kv []any) {
	entry := l.orDefault().core.Check(level, msg)
	if entry == nil {
		return
	}
	entry.Write(fields(ctx, kv)...)
}

// fields turns alternating key/value pairs into zap fields. A non-string key
// becomes "arg" and a trailing key without value is logged as null.
func fields(ctx context.Context, kv []any) []zap.Field {
	out := make([]zap.Field, 0, len(kv)/2+2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok || key == "" {
			key = "arg"
		}
		if i+1 == len(kv) {
			out = append(out, zap.Any(key, nil))
			break
		}
		switch v := kv[i+1].(type) {
		case error:
			out = append(out, zap.NamedError(key, v))
		default:
			out = append(out, zap.Any(key, v))
		}
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		out = append(out,
			zap.Stringer("trace_id", sc.TraceID()),
			zap.Stringer("span_id", sc.SpanID()),
		)
	}
	return out
}
