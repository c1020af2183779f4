package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func parseLogLine(t *testing.T, line string) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v\nOutput: %s", err, line)
	}
	return entry
}

func TestLogger_IncludesOpFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	opLogger := logger.WithOp(OpMeta{Name: "upload", ID: "req-7"})
	opLogger.Info(context.Background(), "test message")

	entry := parseLogLine(t, buf.String())
	if v, _ := entry["op.name"].(string); v != "upload" {
		t.Errorf("op.name = %v, want %q", entry["op.name"], "upload")
	}
	if v, _ := entry["op.id"].(string); v != "req-7" {
		t.Errorf("op.id = %v, want %q", entry["op.id"], "req-7")
	}
	if v, _ := entry["msg"].(string); v != "test message" {
		t.Errorf("msg = %v, want %q", entry["msg"], "test message")
	}
}

func TestLogger_FieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Error(context.Background(), "settled",
		Field{Key: "outcome", Value: "error"},
		Field{Key: "elapsed_ms", Value: 12.5},
	)

	entry := parseLogLine(t, buf.String())
	if v, _ := entry["level"].(string); v != "error" {
		t.Errorf("level = %v, want error", entry["level"])
	}
	if v, _ := entry["outcome"].(string); v != "error" {
		t.Errorf("outcome = %v, want error", entry["outcome"])
	}
	if v, _ := entry["elapsed_ms"].(float64); v != 12.5 {
		t.Errorf("elapsed_ms = %v, want 12.5", entry["elapsed_ms"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("timestamp field missing")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)

	ctx := context.Background()
	logger.Debug(ctx, "dropped")
	logger.Info(ctx, "dropped")
	logger.Warn(ctx, "kept warn")
	logger.Error(ctx, "kept error")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2\nOutput: %s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "kept warn") {
		t.Errorf("first line = %s, want warn entry", lines[0])
	}
	if !strings.Contains(lines[1], "kept error") {
		t.Errorf("second line = %s, want error entry", lines[1])
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLogLevel(tc.in); got != tc.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNoopLogger(t *testing.T) {
	l := &noopLogger{}
	ctx := context.Background()
	l.Info(ctx, "ignored")
	l.Warn(ctx, "ignored")
	l.Error(ctx, "ignored")
	l.Debug(ctx, "ignored")
	if l.WithOp(OpMeta{Name: "x"}) != l {
		t.Error("WithOp() did not return the same noop logger")
	}
}
