package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"sneaker-dashboard/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LoggerConfig{Level: "info", Format: "json"})

	ctx := WithRequestID(context.Background(), "req-123")
	logger.With("component", "test").InfoContext(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json log line: %v", err)
	}
	if entry["request_id"] != "req-123" {
		t.Errorf("request_id = %v, want req-123", entry["request_id"])
	}
	if entry["component"] != "test" {
		t.Errorf("component = %v, want test", entry["component"])
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LoggerConfig{Level: "warn", Format: "text"})

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info record written at warn level: %s", buf.String())
	}

	logger.Warn("kept")
	if !bytes.Contains(buf.Bytes(), []byte("kept")) {
		t.Errorf("warn record missing: %s", buf.String())
	}
}

func TestGetRequestID_Missing(t *testing.T) {
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID() = %q, want empty", got)
	}
}

func TestMetrics_ObserveQuery(t *testing.T) {
	m := NewMetrics()

	m.ObserveQuery(2*time.Millisecond, 0)
	m.ObserveQuery(3*time.Millisecond, 12)
	m.ObserveQuery(time.Millisecond, 4)

	if got := testutil.ToFloat64(m.queryTotal.WithLabelValues("empty")); got != 1 {
		t.Errorf("empty queries = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.queryTotal.WithLabelValues("non_empty")); got != 2 {
		t.Errorf("non-empty queries = %v, want 2", got)
	}
}

func TestMetrics_ObserveHTTPAndGauge(t *testing.T) {
	m := NewMetrics()

	m.ObserveHTTP("GET", "/api/charts", 200, time.Millisecond)
	m.ObserveHTTP("GET", "/api/charts", 400, time.Millisecond)
	m.SetDatasetRecords(99)

	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/charts", "200")); got != 1 {
		t.Errorf("200 requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.datasetRecords); got != 99 {
		t.Errorf("dataset records = %v, want 99", got)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveQuery(time.Millisecond, 1)
	m.ObserveHTTP("GET", "/", 200, time.Millisecond)
	m.SetDatasetRecords(1)
}

func TestSetupTracing_NoopWithoutEndpoint(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), config.TelemetryConfig{Enabled: true})
	if err != nil {
		t.Fatalf("SetupTracing() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupTracing_NoopWhenDisabled(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), config.TelemetryConfig{
		Enabled:  false,
		Endpoint: "http://localhost:4318",
	})
	if err != nil {
		t.Fatalf("SetupTracing() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}
