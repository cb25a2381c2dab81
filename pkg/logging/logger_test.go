package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("Failed to unmarshal log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"DEBUG", DebugLevel, false},
		{"debug", DebugLevel, false},
		{"Info", InfoLevel, false},
		{"", InfoLevel, false},
		{"warn", WarnLevel, false},
		{"WARNING", WarnLevel, false},
		{" error ", ErrorLevel, false},
		{"verbose", InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFieldConstructors(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("key", "value"), "key", "value"},
		{"Int", Int("count", 42), "count", 42},
		{"Int64", Int64("id", 1234567890), "id", int64(1234567890)},
		{"Float64", Float64("score", 0.5), "score", 0.5},
		{"Bool", Bool("converged", true), "converged", true},
		{"Duration", Duration("timeout", 5*time.Second), "timeout", "5s"},
		{"Error", Error(errors.New("boom")), "error", "boom"},
		{"ErrorNil", Error(nil), "error", nil},
		{"RunID", RunID("abc"), "run_id", "abc"},
		{"Engine", Engine("sparse"), "engine", "sparse"},
		{"Source", Source("file"), "source", "file"},
		{"Nodes", Nodes(5), "nodes", 5},
		{"Edges", Edges(4), "edges", 4},
		{"Iterations", Iterations(20), "iterations", 20},
		{"Latency", Latency(time.Millisecond), "latency", "1ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key || tt.field.Value != tt.value {
				t.Errorf("%s() = %+v, want {Key:%s Value:%v}", tt.name, tt.field, tt.key, tt.value)
			}
		})
	}
}

func TestJSONLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)
	logger.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	logger.Info("graph built", Nodes(5), Edges(4))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]

	if entry.Level != "INFO" {
		t.Errorf("Level = %v, want INFO", entry.Level)
	}
	if entry.Message != "graph built" {
		t.Errorf("Message = %v, want 'graph built'", entry.Message)
	}
	if entry.Time != "2024-01-02T03:04:05Z" {
		t.Errorf("Time = %v, want 2024-01-02T03:04:05Z", entry.Time)
	}
	if entry.Fields["nodes"] != float64(5) { // JSON numbers decode as float64
		t.Errorf("Fields[nodes] = %v, want 5", entry.Fields["nodes"])
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Level != "WARN" || entries[1].Level != "ERROR" {
		t.Errorf("Levels = %s,%s, want WARN,ERROR", entries[0].Level, entries[1].Level)
	}

	if logger.Enabled(InfoLevel) {
		t.Error("Info should be disabled at WarnLevel")
	}
	if !logger.Enabled(ErrorLevel) {
		t.Error("Error should be enabled at WarnLevel")
	}
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(Component("ranking"), RunID("run-1"))
	child.Info("phase done", String("phase", "build"), RunID("override"))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].Fields
	if fields["component"] != "ranking" {
		t.Errorf("component field = %v, want ranking", fields["component"])
	}
	if fields["phase"] != "build" {
		t.Errorf("phase field = %v, want build", fields["phase"])
	}
	if fields["run_id"] != "override" {
		t.Errorf("run_id field = %v, want call-site value", fields["run_id"])
	}

	// Parent is unaffected
	buf.Reset()
	logger.Info("parent")
	if got := decodeLines(t, &buf)[0].Fields; got != nil {
		t.Errorf("Parent logger gained fields: %v", got)
	}
}

func TestJSONLogger_ConcurrentChildren(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			child := logger.With(Int("worker", i))
			for j := 0; j < 50; j++ {
				child.Info("tick")
			}
		}(i)
	}
	wg.Wait()

	if entries := decodeLines(t, &buf); len(entries) != 400 {
		t.Errorf("Expected 400 intact entries, got %d", len(entries))
	}
}

func TestJSONLogger_NoFieldsOmitted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("message without fields")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if _, exists := entry["fields"]; exists {
		t.Error("Expected fields key to be omitted when empty")
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "debug")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if logger.Level() != DebugLevel {
		t.Errorf("Level = %v, want DEBUG", logger.Level())
	}

	if _, err := New(&buf, "loud"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	timer := StartTimer(logger, "hits computed", Engine("sparse"))
	timer.End(Iterations(20))
	timer.EndDebug()
	timer.EndError(errors.New("boom"))

	entries := decodeLines(t, &buf)
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	if entries[0].Level != "INFO" || entries[0].Fields["engine"] != "sparse" {
		t.Errorf("Unexpected End entry: %+v", entries[0])
	}
	if entries[0].Fields["iterations"] != float64(20) {
		t.Errorf("Expected iterations field on End, got %v", entries[0].Fields)
	}
	if _, ok := entries[0].Fields["latency"]; !ok {
		t.Error("Expected latency field")
	}
	if entries[1].Level != "DEBUG" {
		t.Errorf("EndDebug level = %s", entries[1].Level)
	}
	if entries[2].Level != "ERROR" || entries[2].Message != "hits computed failed" {
		t.Errorf("Unexpected EndError entry: %+v", entries[2])
	}
	if entries[2].Fields["error"] != "boom" {
		t.Errorf("EndError error field = %v", entries[2].Fields["error"])
	}
}

func TestNopLogger(t *testing.T) {
	var logger Logger = NopLogger{}
	logger.Info("ignored")
	if logger.With(Count(1)) == nil {
		t.Error("NopLogger.With returned nil")
	}
	if logger.Enabled(ErrorLevel) {
		t.Error("NopLogger should report every level disabled")
	}
}

func BenchmarkJSONLogger_Info(b *testing.B) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", Nodes(100), Edges(42))
	}
}
