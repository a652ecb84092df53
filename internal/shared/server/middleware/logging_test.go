package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	telemetry.SetOutput(&buf)
	defer telemetry.SetOutput(nil)

	router := gin.New()
	router.Use(RequestID(), Logging())
	router.PATCH("/api/v1/resume/sections/:section/items/:id", func(c *gin.Context) {
		c.Set(ExportFileKey, "Ada_Lovelace_2026-03-09.pdf")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/resume/sections/experience/items/item-1", nil)
	req.Header.Set("X-Request-Id", "req-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) == 0 || lines[0] == "" {
		t.Fatalf("expected log output")
	}
	last := lines[len(lines)-1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	required := []string{"request_id", "route", "section", "item_id", "duration_ms", "status"}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["request_id"] != "req-123" {
		t.Fatalf("unexpected request_id: %v", payload["request_id"])
	}
	if payload["section"] != "experience" {
		t.Fatalf("unexpected section: %v", payload["section"])
	}
	if payload["item_id"] != "item-1" {
		t.Fatalf("unexpected item_id: %v", payload["item_id"])
	}
	if payload["export_file"] != "Ada_Lovelace_2026-03-09.pdf" {
		t.Fatalf("unexpected export_file: %v", payload["export_file"])
	}
	if payload["route"] != "/api/v1/resume/sections/:section/items/:id" {
		t.Fatalf("unexpected route: %v", payload["route"])
	}
}
