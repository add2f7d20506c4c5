package logging

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexisbeaulieu97/quill/internal/ports"
)

// JSONLogger implements ports.Logger on top of zerolog.
type JSONLogger struct {
	base   zerolog.Logger
	fields []interface{}
	layer  string
}

// NewJSONLogger creates a structured JSON logger.
func NewJSONLogger(opts Options) (*JSONLogger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	ctx := zerolog.New(writer).Level(level).With()
	if opts.TimeFormat != "" {
		ctx = ctx.Timestamp()
	}
	if len(opts.Fields) > 0 {
		ctx = ctx.Fields(opts.Fields)
	}

	return &JSONLogger{
		base:   ctx.Logger(),
		fields: componentFields(opts.Component),
		layer:  layerOrDefault(opts.Layer),
	}, nil
}

// Debug writes a debug-level entry if enabled.
func (l *JSONLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, zerolog.DebugLevel, msg, fields...)
}

// Info writes an informational entry.
func (l *JSONLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, zerolog.InfoLevel, msg, fields...)
}

// Warn writes a warning entry.
func (l *JSONLogger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, zerolog.WarnLevel, msg, fields...)
}

// Error writes an error entry.
func (l *JSONLogger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, zerolog.ErrorLevel, msg, fields...)
}

// With returns a derived logger that always writes the supplied fields.
func (l *JSONLogger) With(fields ...interface{}) ports.Logger {
	if l == nil {
		return &NoOpLogger{}
	}
	next := make([]interface{}, len(l.fields), len(l.fields)+len(fields))
	copy(next, l.fields)
	next = append(next, fields...)
	return &JSONLogger{base: l.base, fields: next, layer: l.layer}
}

func (l *JSONLogger) log(ctx context.Context, level zerolog.Level, msg string, fields ...interface{}) {
	if l == nil {
		return
	}
	event := l.base.WithLevel(level)
	if event == nil {
		return
	}
	payload := mergeFields(l.fields, fields, contextExtras(ctx, l.layer))
	for i := 0; i+1 < len(payload); i += 2 {
		key, _ := payload[i].(string)
		switch value := payload[i+1].(type) {
		case error:
			event = event.AnErr(key, value)
		case time.Duration:
			event = event.Dur(key, value)
		default:
			event = event.Interface(key, value)
		}
	}
	event.Msg(msg)
}

var _ ports.Logger = (*JSONLogger)(nil)
