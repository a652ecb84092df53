package export

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resume"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// Source supplies the document to render.
type Source interface {
	Document() resume.Document
}

// Handler serves the HTML preview and the PDF download.
type Handler struct {
	Source  Source
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(source Source, svc *Service) *Handler {
	return &Handler{Source: source, Service: svc}
}

// RegisterRoutes attaches export routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resume/preview", h.preview)
	rg.POST("/resume/pdf", h.pdf)
}

func (h *Handler) preview(c *gin.Context) {
	html, err := h.Service.Renderer.Render(h.Source.Document())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render preview", nil)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *Handler) pdf(c *gin.Context) {
	res, err := h.Service.Export(c.Request.Context(), h.Source.Document())
	if err != nil {
		if errors.Is(err, ErrExportInProgress) {
			respond.Error(c, http.StatusConflict, "export_in_progress", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "export_failed", FailureNotice, nil)
		return
	}
	c.Set(middleware.ExportFileKey, res.FileName)
	c.Set(middleware.ExportPagesKey, res.Pages)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.FileName))
	c.Header("X-Page-Count", fmt.Sprintf("%d", res.Pages))
	c.Data(http.StatusOK, "application/pdf", res.PDF)
}
