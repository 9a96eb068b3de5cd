package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, &buf).With("component", "ingest")

	logger.InfoContext(context.Background(), "tournament ingested", "tournament", "PDS 1.01", "decks", 12)
	logger.Debug("dropped below level")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}

	var got map[string]any
	if err := sonic.UnmarshalString(lines[0], &got); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if got["msg"] != "tournament ingested" || got["component"] != "ingest" || got["tournament"] != "PDS 1.01" {
		t.Fatalf("unexpected fields: %v", got)
	}
	if got["decks"] != float64(12) {
		t.Fatalf("expected decks=12, got %v", got["decks"])
	}
}

func TestLogger_ErrorValuesAndOddArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelDebug, &buf)

	logger.Warn("failed", "error", errors.New("boom"), "dangling")

	var got map[string]any
	if err := sonic.UnmarshalString(strings.TrimSpace(buf.String()), &got); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if got["error"] != "boom" {
		t.Fatalf("expected error field, got %v", got["error"])
	}
	if _, ok := got["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept, got %v", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        LevelInfo,
		"DEBUG":   LevelDebug,
		"warning": LevelWarn,
		" error ": LevelError,
	}
	for raw, want := range cases {
		got, err := ParseLevel(raw)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected non-nil logger")
	}
}

func TestLogger_ContextAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, &buf)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02},
		SpanID:     trace.SpanID{0x03},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	logger.WarnContext(ctx, "tournament failed", "tournament", "PDS 1.02")

	var got map[string]any
	if err := sonic.UnmarshalString(strings.TrimSpace(buf.String()), &got); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if got["trace_id"] != sc.TraceID().String() || got["span_id"] != sc.SpanID().String() {
		t.Fatalf("expected trace ids, got %v", got)
	}
}

func TestLogger_SyncIsIdempotent(t *testing.T) {
	logger := New(LevelInfo, &bytes.Buffer{})
	if err := logger.Sync(); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	if err := logger.Sync(); err != nil {
		t.Fatalf("second sync: %v", err)
	}
}
