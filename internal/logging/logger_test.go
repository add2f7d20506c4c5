package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func decodeLines(t *testing.T, buf *bytes.Buffer) []logEntry {
	t.Helper()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry logEntry
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line: %s", line)
		entries = append(entries, entry)
	}
	return entries
}

func TestJSONLoggerIncludesCorrelationIDAndLayer(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger, err := New(Options{Writer: buf, Level: "debug", Format: FormatJSON, Component: "theme.engine"})
	require.NoError(t, err)

	ctx := WithCorrelationID(context.Background(), "abc123")
	logger.Info(ctx, "theme applied", "effective", "dark")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	entry := entries[0]
	require.Equal(t, "theme applied", entry["message"])
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "theme.engine", entry["component"])
	require.Equal(t, "infrastructure", entry["layer"])
	require.Equal(t, "abc123", entry["correlation_id"])
	require.Equal(t, "dark", entry["effective"])
}

func TestJSONLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger, err := New(Options{Writer: buf, Level: "info", Format: FormatJSON})
	require.NoError(t, err)

	logger.Debug(context.Background(), "this should not appear")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestJSONLoggerRendersErrors(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger, err := New(Options{Writer: buf, Format: FormatJSON})
	require.NoError(t, err)

	logger.With("storage_key", "quill-theme").Warn(context.Background(), "persist failed", "error", errors.New("disk full"))

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	require.Equal(t, "warn", entries[0]["level"])
	require.Equal(t, "disk full", entries[0]["error"])
	require.Equal(t, "quill-theme", entries[0]["storage_key"])
}

func TestTextLoggerWritesKeyValues(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger, err := New(Options{Writer: buf, Level: "debug", Format: FormatText, Component: "storage"})
	require.NoError(t, err)

	logger.Warn(context.Background(), "state file unreadable", "path", "/tmp/prefs.yaml")

	out := buf.String()
	require.Contains(t, out, "state file unreadable")
	require.Contains(t, out, "component=storage")
	require.Contains(t, out, "path=/tmp/prefs.yaml")
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Format: "xml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "xml")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Writer: &bytes.Buffer{}, Level: "loud", Format: FormatText})
	require.Error(t, err)
}

func TestNoOpLoggerDiscards(t *testing.T) {
	t.Parallel()

	noOp := NewNoOpLogger()
	noOp.Info(context.Background(), "hello world")
	require.Same(t, noOp, noOp.With("key", "value"))
	require.NotNil(t, OrNoOp(nil))
}

func TestBufferedLoggerStoresAndFlushes(t *testing.T) {
	t.Parallel()

	buffer := NewEventBuffer(10)
	bufLogger := NewBufferedLogger(buffer)

	ctx := WithCorrelationID(context.Background(), "buffered")
	bufLogger.Info(ctx, "booting", "component", "bootstrap")
	bufLogger.With("component", "signal").Warn(ctx, "probe failed", "probe", "os")
	require.Equal(t, 2, buffer.Len())

	var output bytes.Buffer
	delegate, err := New(Options{Writer: &output, Format: FormatJSON})
	require.NoError(t, err)

	buffer.Flush(delegate)
	require.Equal(t, 0, buffer.Len())

	entries := decodeLines(t, &output)
	require.Len(t, entries, 2)
	require.Equal(t, "booting", entries[0]["message"])
	require.Equal(t, "bootstrap", entries[0]["component"])
	require.Equal(t, "probe failed", entries[1]["message"])
	require.Equal(t, "signal", entries[1]["component"])
	require.Equal(t, "buffered", entries[1]["correlation_id"])
}

func TestEventBufferDropsOldestWhenFull(t *testing.T) {
	t.Parallel()

	buffer := NewEventBuffer(2)
	logger := NewBufferedLogger(buffer)
	logger.Info(context.Background(), "first")
	logger.Info(context.Background(), "second")
	logger.Info(context.Background(), "third")

	var output bytes.Buffer
	delegate, err := New(Options{Writer: &output, Format: FormatJSON})
	require.NoError(t, err)
	buffer.Flush(delegate)

	entries := decodeLines(t, &output)
	require.Len(t, entries, 2)
	require.Equal(t, "second", entries[0]["message"])
	require.Equal(t, "third", entries[1]["message"])
}

func TestMergeFieldsLaterKeysWin(t *testing.T) {
	t.Parallel()

	merged := mergeFields([]interface{}{"a", 1, "b", 2}, []interface{}{"a", 3, 42, "ignored"}, map[string]interface{}{"layer": "domain", "empty": ""})
	require.Equal(t, []interface{}{"a", 3, "b", 2, "layer", "domain"}, merged)
}
