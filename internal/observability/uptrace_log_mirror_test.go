package observability

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	if !shouldSkipUptraceLog("http request", []any{"method", "GET", "path", "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if shouldSkipUptraceLog("http request", []any{"path", "/v1/standings"}) {
		t.Fatalf("did not expect non-health log to be skipped")
	}
	if shouldSkipUptraceLog("fetch job failed", []any{"path", "/healthz"}) {
		t.Fatalf("did not expect unrelated event to be skipped")
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{"endpoint", "/fixtures", "attempt", 2, "payload"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "endpoint" || attrs[0].Value.AsString() != "/fixtures" {
		t.Fatalf("unexpected endpoint attribute")
	}
	if attrs[1].Key != "attempt" || attrs[1].Value.AsInt64() != 2 {
		t.Fatalf("unexpected attempt attribute")
	}
	if attrs[2].Key != "payload" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute")
	}
}

func TestBuildOTelLogAttributes_NonStringKey(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{42, "value"})
	if len(attrs) != 1 || attrs[0].Key != "arg_0" {
		t.Fatalf("expected positional key, got %+v", attrs)
	}
}

func TestToOTelLogValue(t *testing.T) {
	v := toOTelLogValue(map[string]any{
		"goals":   11,
		"starter": true,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	if items := v.AsMap(); len(items) != 2 {
		t.Fatalf("expected 2 map items, got %d", len(items))
	}

	if got := toOTelLogValue([]int{1, 2, 3}, 0); got.Kind() != otellog.KindSlice || len(got.AsSlice()) != 3 {
		t.Fatalf("expected slice of 3, got %s", got.Kind())
	}
	if got := toOTelLogValue(errors.New("boom"), 0); got.AsString() != "boom" {
		t.Fatalf("expected error text, got %q", got.AsString())
	}
	if got := toOTelLogValue(1500*time.Millisecond, 0); got.AsString() != "1.5s" {
		t.Fatalf("expected duration string, got %q", got.AsString())
	}
	var nilPtr *int
	if got := toOTelLogValue(nilPtr, 0); got.Kind() != otellog.KindEmpty {
		t.Fatalf("expected empty value for nil pointer, got %s", got.Kind())
	}
}

func TestToOTelSeverity(t *testing.T) {
	cases := map[zapcore.Level]otellog.Severity{
		zapcore.DebugLevel: otellog.SeverityDebug,
		zapcore.InfoLevel:  otellog.SeverityInfo,
		zapcore.WarnLevel:  otellog.SeverityWarn,
		zapcore.ErrorLevel: otellog.SeverityError,
		zapcore.FatalLevel: otellog.SeverityFatal,
	}
	for level, want := range cases {
		if got := toOTelSeverity(level); got != want {
			t.Fatalf("level %s: expected %v, got %v", level, want, got)
		}
	}
}

type fixtureStatus string

func TestToOTelLogValue_NamedKinds(t *testing.T) {
	if got := toOTelLogValue(fixtureStatus("FT"), 0); got.Kind() != otellog.KindString || got.AsString() != "FT" {
		t.Fatalf("expected named string to map to its text, got %s", got.Kind())
	}
	if got := toOTelLogValue(uint64(1)<<63, 0); got.Kind() != otellog.KindString {
		t.Fatalf("expected overflowing uint to fall back to text, got %s", got.Kind())
	}
	if got := toOTelLogValue(json.RawMessage(`{}`), 0); got.Kind() != otellog.KindBytes {
		t.Fatalf("expected byte slice kind, got %s", got.Kind())
	}
}

func TestNewLogRecord(t *testing.T) {
	at := time.Date(2024, 8, 16, 19, 0, 0, 0, time.UTC)
	record := newLogRecord(at, zapcore.WarnLevel, otellog.SeverityWarn, "rate limited", []any{"endpoint", "/standings"})

	if record.Body().AsString() != "rate limited" || record.SeverityText() != "WARN" {
		t.Fatalf("unexpected record body/severity: %q %q", record.Body().AsString(), record.SeverityText())
	}
	if !record.Timestamp().Equal(at) {
		t.Fatalf("unexpected timestamp: %s", record.Timestamp())
	}
	if record.AttributesLen() != 1 {
		t.Fatalf("expected one attribute, got %d", record.AttributesLen())
	}
}
