package logger

import (
	"context"
	"time"
)

// Logger is the logging abstraction the rest of the code depends on.
// The zap adapter in zap.go is the only production implementation.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	// WithContext returns a logger carrying the request scoped fields stored in ctx.
	WithContext(ctx context.Context) Logger

	// WithFields returns a child logger with extra fields.
	WithFields(fields ...Field) Logger

	// Sync flushes any buffered log entries
	Sync() error
}

type Field struct {
	Key   string
	Value interface{}
}

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}

func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

type ctxKey struct{}

// ContextWithFields stores fields (request id, route) that WithContext picks up later.
func ContextWithFields(ctx context.Context, fields ...Field) context.Context {
	existing := FieldsFromContext(ctx)
	merged := make([]Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, ctxKey{}, merged)
}

func FieldsFromContext(ctx context.Context) []Field {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey{}).([]Field); ok {
		return v
	}
	return nil
}
