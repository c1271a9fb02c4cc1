package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stwalsh4118/room4rent/internal/models"
	"github.com/stwalsh4118/room4rent/internal/services"
)

// AnnouncementHandler handles announcement HTTP requests.
type AnnouncementHandler struct {
	service services.AnnouncementService
}

// NewAnnouncementHandler creates a new AnnouncementHandler instance.
func NewAnnouncementHandler(service services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

// CreateAnnouncementRequest is the body of POST /announcements.
type CreateAnnouncementRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
}

// UpdateAnnouncementRequest is the body of PUT /announcements/:id.
type UpdateAnnouncementRequest struct {
	Title   *string `json:"title" binding:"omitempty,max=200"`
	Content *string `json:"content"`
}

func (h *AnnouncementHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Failed to list announcements")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AnnouncementHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	a, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Failed to query announcement")
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req CreateAnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.service.Create(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		writeServiceError(c, err, "Failed to create announcement")
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UpdateAnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, models.AnnouncementPatch{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		writeServiceError(c, err, "Failed to update announcement")
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "Failed to delete announcement")
		return
	}
	c.Status(http.StatusNoContent)
}
