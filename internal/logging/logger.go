package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	cblog "github.com/charmbracelet/log"

	"github.com/alexisbeaulieu97/quill/internal/ports"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures a logger.
type Options struct {
	Writer     io.Writer
	Level      string
	Format     string
	TimeFormat string
	Layer      string
	Component  string
	Fields     map[string]interface{}
}

// New builds a ports.Logger for the requested format. Text output goes through
// charmbracelet/log, JSON output through zerolog. Logs default to stderr so
// they never interleave with a running TUI frame.
func New(opts Options) (ports.Logger, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", FormatText:
		return NewTextLogger(opts)
	case FormatJSON:
		return NewJSONLogger(opts)
	default:
		return nil, fmt.Errorf("unsupported log format %q (want text or json)", opts.Format)
	}
}

// TextLogger implements ports.Logger using charmbracelet/log.
type TextLogger struct {
	logger *cblog.Logger
	fields []interface{}
	layer  string
}

// NewTextLogger creates a human-readable logger.
func NewTextLogger(opts Options) (*TextLogger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := cblog.InfoLevel
	if opts.Level != "" {
		parsed, err := cblog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	base := cblog.NewWithOptions(writer, cblog.Options{
		Level:           level,
		TimeFormat:      opts.TimeFormat,
		ReportTimestamp: opts.TimeFormat != "",
		Fields:          mapToFields(opts.Fields),
	})

	return &TextLogger{
		logger: base,
		fields: componentFields(opts.Component),
		layer:  layerOrDefault(opts.Layer),
	}, nil
}

// Debug emits a debug log entry.
func (l *TextLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.DebugLevel, msg, fields...)
}

// Info emits an info log entry.
func (l *TextLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.InfoLevel, msg, fields...)
}

// Warn emits a warning log entry.
func (l *TextLogger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.WarnLevel, msg, fields...)
}

// Error emits an error log entry.
func (l *TextLogger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.ErrorLevel, msg, fields...)
}

// With derives a new logger with persistent fields.
func (l *TextLogger) With(fields ...interface{}) ports.Logger {
	if l == nil {
		return &NoOpLogger{}
	}
	next := make([]interface{}, len(l.fields), len(l.fields)+len(fields))
	copy(next, l.fields)
	next = append(next, fields...)
	return &TextLogger{logger: l.logger, fields: next, layer: l.layer}
}

func (l *TextLogger) log(ctx context.Context, level cblog.Level, msg string, fields ...interface{}) {
	if l == nil || l.logger == nil {
		return
	}
	payload := mergeFields(l.fields, fields, contextExtras(ctx, l.layer))

	switch level {
	case cblog.DebugLevel:
		l.logger.Debug(msg, payload...)
	case cblog.WarnLevel:
		l.logger.Warn(msg, payload...)
	case cblog.ErrorLevel:
		l.logger.Error(msg, payload...)
	default:
		l.logger.Info(msg, payload...)
	}
}

var _ ports.Logger = (*TextLogger)(nil)
