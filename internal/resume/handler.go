package resume

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
)

const maxImportSize = 5 << 20 // 5MB, profile pictures travel inline

// Handler wires HTTP handlers to the store.
type Handler struct {
	Store *Store
}

// NewHandler constructs a Handler.
func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resume", h.get)
	rg.GET("/resume/stats", h.stats)
	rg.GET("/resume/templates", h.templates)
	rg.GET("/resume/color-schemes", h.colorSchemes)

	rg.PUT("/resume/sections/:section", h.replaceSection)
	rg.PUT("/resume/sections/:section/fields/:key", h.replaceField)
	rg.POST("/resume/sections/:section/items", h.appendItem)
	rg.PATCH("/resume/sections/:section/items/:id", h.updateItem)
	rg.DELETE("/resume/sections/:section/items/:id", h.removeItem)
	rg.PUT("/resume/sections/:section/items/:id/current", h.setCurrent)

	rg.POST("/resume/skills/:category", h.addSkill)
	rg.DELETE("/resume/skills/:category/:index", h.removeSkill)

	rg.POST("/resume/experience/:id/achievements", h.addAchievement)
	rg.PUT("/resume/experience/:id/achievements/:index", h.updateAchievement)
	rg.DELETE("/resume/experience/:id/achievements/:index", h.removeAchievement)

	rg.PUT("/resume/template", h.selectTemplate)
	rg.PUT("/resume/colors/scheme", h.applyColorScheme)

	rg.POST("/resume/undo", h.undo)
	rg.POST("/resume/redo", h.redo)
	rg.POST("/resume/reset", h.reset)

	rg.GET("/resume/export", h.exportJSON)
	rg.POST("/resume/import", h.importJSON)
}

func (h *Handler) response(doc Document) DocumentResponse {
	return DocumentResponse{
		Document: doc,
		Stats:    CompletionStats(doc),
		History:  h.Store.History(),
	}
}

func (h *Handler) get(c *gin.Context) {
	respond.OK(c, h.response(h.Store.Document()))
}

func (h *Handler) stats(c *gin.Context) {
	respond.OK(c, h.Store.Stats())
}

func (h *Handler) templates(c *gin.Context) {
	respond.OK(c, gin.H{"templates": Templates()})
}

func (h *Handler) colorSchemes(c *gin.Context) {
	respond.OK(c, gin.H{"colorSchemes": ColorSchemes()})
}

func (h *Handler) replaceSection(c *gin.Context) {
	body, ok := readBody(c, maxImportSize)
	if !ok {
		return
	}
	doc, err := h.Store.ReplaceSection(c.Request.Context(), c.Param("section"), body)
	h.finish(c, doc, err)
}

func (h *Handler) replaceField(c *gin.Context) {
	var req rawValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	doc, err := h.Store.ReplaceNestedField(c.Request.Context(), c.Param("section"), c.Param("key"), req.Value)
	h.finish(c, doc, err)
}

func (h *Handler) appendItem(c *gin.Context) {
	body, ok := readBody(c, maxImportSize)
	if !ok {
		return
	}
	doc, id, err := h.Store.AppendListItem(c.Request.Context(), c.Param("section"), body)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"id": id, "document": doc, "stats": CompletionStats(doc), "history": h.Store.History()})
}

func (h *Handler) updateItem(c *gin.Context) {
	body, ok := readBody(c, maxImportSize)
	if !ok {
		return
	}
	doc, err := h.Store.UpdateListItem(c.Request.Context(), c.Param("section"), ItemID(c.Param("id")), body)
	h.finish(c, doc, err)
}

func (h *Handler) removeItem(c *gin.Context) {
	doc, err := h.Store.RemoveListItem(c.Request.Context(), c.Param("section"), ItemID(c.Param("id")))
	h.finish(c, doc, err)
}

func (h *Handler) setCurrent(c *gin.Context) {
	var req currentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Current == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "current is required", nil)
		return
	}
	doc, err := h.Store.SetCurrent(c.Request.Context(), c.Param("section"), ItemID(c.Param("id")), *req.Current)
	h.finish(c, doc, err)
}

func (h *Handler) addSkill(c *gin.Context) {
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "value is required", nil)
		return
	}
	doc, err := h.Store.AddSkill(c.Request.Context(), c.Param("category"), *req.Value)
	h.finish(c, doc, err)
}

func (h *Handler) removeSkill(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	doc, err := h.Store.RemoveSkillAt(c.Request.Context(), c.Param("category"), index)
	h.finish(c, doc, err)
}

func (h *Handler) addAchievement(c *gin.Context) {
	doc, err := h.Store.AddAchievement(c.Request.Context(), ItemID(c.Param("id")))
	h.finish(c, doc, err)
}

func (h *Handler) updateAchievement(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "value is required", nil)
		return
	}
	doc, err := h.Store.UpdateAchievementAt(c.Request.Context(), ItemID(c.Param("id")), index, *req.Value)
	h.finish(c, doc, err)
}

func (h *Handler) removeAchievement(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	doc, err := h.Store.RemoveAchievementAt(c.Request.Context(), ItemID(c.Param("id")), index)
	h.finish(c, doc, err)
}

func (h *Handler) selectTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	doc, err := h.Store.SelectTemplate(c.Request.Context(), req.Name)
	h.finish(c, doc, err)
}

func (h *Handler) applyColorScheme(c *gin.Context) {
	var req colorSchemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	doc, err := h.Store.ApplyColorScheme(c.Request.Context(), req.ID)
	h.finish(c, doc, err)
}

func (h *Handler) undo(c *gin.Context) {
	doc, err := h.Store.Undo(c.Request.Context())
	h.finish(c, doc, err)
}

func (h *Handler) redo(c *gin.Context) {
	doc, err := h.Store.Redo(c.Request.Context())
	h.finish(c, doc, err)
}

func (h *Handler) reset(c *gin.Context) {
	respond.OK(c, h.response(h.Store.Reset(c.Request.Context())))
}

func (h *Handler) exportJSON(c *gin.Context) {
	name, raw, err := h.Store.ExportJSON()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export document", nil)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *Handler) importJSON(c *gin.Context) {
	body, ok := readBody(c, maxImportSize)
	if !ok {
		return
	}
	doc, err := h.Store.ImportJSON(c.Request.Context(), body)
	if err != nil {
		var ierr *ImportError
		if errors.As(err, &ierr) {
			respond.JSON(c, http.StatusBadRequest, ImportResponse{Success: false, Error: ierr.Message, Kind: ierr.Kind})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to import document", nil)
		return
	}
	resp := h.response(doc)
	respond.OK(c, ImportResponse{Success: true, Document: &resp})
}

func (h *Handler) finish(c *gin.Context, doc Document, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, h.response(doc))
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnknownSection), errors.Is(err, ErrUnknownCategory):
		respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, ErrUnknownField), errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNothingToUndo), errors.Is(err, ErrNothingToRedo):
		respond.Error(c, http.StatusConflict, "history_empty", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update document", nil)
	}
}

func readBody(c *gin.Context, limit int64) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", nil)
			return nil, false
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read request body", nil)
		return nil, false
	}
	return body, true
}

func indexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "index must be an integer", nil)
		return 0, false
	}
	return index, true
}
