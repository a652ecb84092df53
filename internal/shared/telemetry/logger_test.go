package telemetry

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestWriteJSONLine(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Warn("resume.persist_failed", map[string]any{"key": "resume-builder-data", "msg": "shadowed"})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%q)", err, buf.String())
	}
	if entry["level"] != "warn" {
		t.Fatalf("expected warn level, got %v", entry["level"])
	}
	if entry["msg"] != "resume.persist_failed" {
		t.Fatalf("fields must not override msg, got %v", entry["msg"])
	}
	if entry["key"] != "resume-builder-data" {
		t.Fatalf("expected key field, got %v", entry["key"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts field")
	}
}
