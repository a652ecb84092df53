package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseEnvLine(t *testing.T) {
	cases := []struct {
		line     string
		key, val string
		ok       bool
	}{
		{line: "STORE_BACKEND=sqlite", key: "STORE_BACKEND", val: "sqlite", ok: true},
		{line: "export PORT=9090", key: "PORT", val: "9090", ok: true},
		{line: `STORE_KEY="my resume"`, key: "STORE_KEY", val: "my resume", ok: true},
		{line: "S3_PREFIX='resumes/ # not a comment'", key: "S3_PREFIX", val: "resumes/ # not a comment", ok: true},
		{line: "HISTORY_LIMIT=20 # keep it short", key: "HISTORY_LIMIT", val: "20", ok: true},
		{line: "EMPTY=", key: "EMPTY", val: "", ok: true},
		{line: "# comment"},
		{line: "   "},
		{line: "no equals sign"},
		{line: "BAD KEY=1"},
		{line: "=value"},
	}
	for _, tc := range cases {
		key, val, ok := parseEnvLine(tc.line)
		if ok != tc.ok || key != tc.key || val != tc.val {
			t.Fatalf("parseEnvLine(%q) = %q, %q, %v; want %q, %q, %v", tc.line, key, val, ok, tc.key, tc.val, tc.ok)
		}
	}
}

func TestLoadEnvFilesKeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "RESUME_TEST_FROM_FILE=file\nRESUME_TEST_PRESET=file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("RESUME_TEST_PRESET", "shell")
	t.Setenv("RESUME_TEST_FROM_FILE", "")
	os.Unsetenv("RESUME_TEST_FROM_FILE")

	loadEnvFiles(filepath.Join(dir, "missing.env"), path)

	if got := os.Getenv("RESUME_TEST_FROM_FILE"); got != "file" {
		t.Fatalf("expected value from file, got %q", got)
	}
	if got := os.Getenv("RESUME_TEST_PRESET"); got != "shell" {
		t.Fatalf("environment should win, got %q", got)
	}
}
