package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	ExportFileKey  = "exportFile"
	ExportPagesKey = "exportPages"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if section := c.Param("section"); section != "" {
			fields["section"] = section
		}
		if id := c.Param("id"); id != "" {
			fields["item_id"] = id
		}
		if file, ok := c.Get(ExportFileKey); ok {
			fields["export_file"] = file
		}
		if pages, ok := c.Get(ExportPagesKey); ok {
			fields["export_pages"] = pages
		}
		telemetry.Info("request.complete", fields)
	}
}
