package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func logOneLine(t *testing.T, l *slog.Logger, buf *bytes.Buffer, msg string) map[string]any {
	t.Helper()
	l.Info(msg)

	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v (%q)", err, buf.String())
	}
	return out
}

func TestNewWithWriter_JSONAndServiceField(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("inventory-api", "info", &buf)

	out := logOneLine(t, l, &buf, "hello")
	if got := out["service"]; got != "inventory-api" {
		t.Errorf("service = %v, want %q", got, "inventory-api")
	}
	if got := out["msg"]; got != "hello" {
		t.Errorf("msg = %v, want %q", got, "hello")
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("inventory-api", "warn", &buf)

	l.Info("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("info line emitted at warn level: %q", buf.String())
	}

	l.Warn("should pass")
	if buf.Len() == 0 {
		t.Error("warn line not emitted at warn level")
	}
}

func TestNewWithWriter_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("inventory-api", "chatty", &buf)

	l.Info("passes at default level")
	if buf.Len() == 0 {
		t.Error("info line not emitted with unknown level string")
	}
}

func TestCorrelationID_RoundTrip(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "corr-123")
	if got := CorrelationIDFromContext(ctx); got != "corr-123" {
		t.Errorf("CorrelationIDFromContext = %q, want %q", got, "corr-123")
	}
}

func TestCorrelationIDFromContext_Missing(t *testing.T) {
	if got := CorrelationIDFromContext(context.Background()); got != "" {
		t.Errorf("CorrelationIDFromContext = %q, want empty", got)
	}
}

func TestWithContext_CorrelationID(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter("inventory-api", "info", &buf)

	ctx := WithCorrelationID(context.Background(), "corr-456")
	enriched := WithContext(ctx, base)

	out := logOneLine(t, enriched, &buf, "with correlation")
	if got := out["correlation_id"]; got != "corr-456" {
		t.Errorf("correlation_id = %v, want %q", got, "corr-456")
	}
}

func TestWithContext_NoFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter("inventory-api", "info", &buf)

	enriched := WithContext(context.Background(), base)

	out := logOneLine(t, enriched, &buf, "bare")
	if _, ok := out["correlation_id"]; ok {
		t.Error("correlation_id should not be present when not in context")
	}
	if _, ok := out["trace_id"]; ok {
		t.Error("trace_id should not be present without an active span")
	}
}

func TestFromContext_DefaultWhenUnset(t *testing.T) {
	if got := FromContext(context.Background()); got != slog.Default() {
		t.Error("FromContext should fall back to slog.Default()")
	}
}

func TestNewContext_FromContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("inventory-api", "info", &buf)

	ctx := NewContext(context.Background(), l)
	if got := FromContext(ctx); got != l {
		t.Error("FromContext did not return the stored logger")
	}
}
