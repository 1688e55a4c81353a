package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newBufferedPretty(t *testing.T, level slog.Level) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(level)
	return slog.New(newPrettyHandler(&buf, lvl)), &buf
}

func TestPrettyHandlerFormatsRecord(t *testing.T) {
	logger, buf := newBufferedPretty(t, slog.LevelInfo)
	logger = NewComponentLogger(logger, "analyzer")

	logger.Info("scored segments", Args(
		String(FieldSourceID, "abc123"),
		Int("unusual", 4),
		Float64("avg_wps", 2.5),
	)...)

	line := buf.String()
	if !strings.Contains(line, " INFO analyzer: scored segments") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "source_id=abc123") || !strings.Contains(line, "unusual=4") {
		t.Fatalf("missing attributes: %q", line)
	}
	if !strings.Contains(line, "avg_wps=2.5") {
		t.Fatalf("missing float attribute: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component must render as prefix, not field: %q", line)
	}
}

func TestPrettyHandlerQuotesValues(t *testing.T) {
	logger, buf := newBufferedPretty(t, slog.LevelInfo)
	logger.Info("note", String("text", "two words"))
	if !strings.Contains(buf.String(), `text="two words"`) {
		t.Fatalf("value not quoted: %q", buf.String())
	}
}

func TestPrettyHandlerLevelGate(t *testing.T) {
	logger, buf := newBufferedPretty(t, slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("visible")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info leaked through warn gate: %q", out)
	}
	if !strings.Contains(out, "WARN visible") {
		t.Fatalf("warn missing: %q", out)
	}
}

func TestPrettyHandlerGroups(t *testing.T) {
	logger, buf := newBufferedPretty(t, slog.LevelInfo)
	logger.WithGroup("batch").Info("done", Int("size", 3))
	if !strings.Contains(buf.String(), "batch.size=3") {
		t.Fatalf("group prefix missing: %q", buf.String())
	}
}

func TestJSONHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	logger := slog.New(newJSONHandler(&buf, lvl))

	logger.Info("archived", String(FieldSourceID, "s1"))

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}
	if decoded["msg"] != "archived" || decoded["source_id"] != "s1" {
		t.Fatalf("unexpected record: %v", decoded)
	}
	if decoded["level"] != "info" {
		t.Fatalf("level not lowercased: %v", decoded["level"])
	}
	if _, err := time.Parse(time.RFC3339, decoded["ts"].(string)); err != nil {
		t.Fatalf("timestamp not RFC3339: %v", decoded["ts"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "transcheck.log")
	logger, err := New(Options{Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("log record missing: %q", string(data))
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger must be disabled at all levels")
	}
}
