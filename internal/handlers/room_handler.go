package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/stwalsh4118/room4rent/internal/models"
	"github.com/stwalsh4118/room4rent/internal/services"
)

// RoomHandler handles room HTTP requests.
type RoomHandler struct {
	service services.RoomService
}

// NewRoomHandler creates a new RoomHandler instance.
func NewRoomHandler(service services.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// CreateRoomRequest is the body of POST /rooms.
type CreateRoomRequest struct {
	RoomName    string            `json:"room_name" binding:"required,max=100"`
	Status      models.RoomStatus `json:"status" binding:"omitempty,oneof=vacant occupied"`
	BaseRent    decimal.Decimal   `json:"base_rent" binding:"gte=0"`
	InternetFee decimal.Decimal   `json:"internet_fee" binding:"gte=0"`
}

// UpdateRoomRequest is the body of PUT /rooms/:id. Omitted fields are kept.
type UpdateRoomRequest struct {
	RoomName    *string            `json:"room_name" binding:"omitempty,min=1,max=100"`
	Status      *models.RoomStatus `json:"status" binding:"omitempty,oneof=vacant occupied"`
	BaseRent    *decimal.Decimal   `json:"base_rent" binding:"omitempty,gte=0"`
	InternetFee *decimal.Decimal   `json:"internet_fee" binding:"omitempty,gte=0"`
}

// List handles GET /rooms.
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.service.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Failed to list rooms")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// Get handles GET /rooms/:id.
func (h *RoomHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	room, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Failed to query room")
		return
	}
	c.JSON(http.StatusOK, room)
}

// Create handles POST /rooms.
func (h *RoomHandler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if !bindJSON(c, &req) {
		return
	}

	room, err := h.service.Create(c.Request.Context(), models.Room{
		RoomName:    req.RoomName,
		BaseRent:    req.BaseRent,
		InternetFee: req.InternetFee,
		Status:      req.Status,
	})
	if err != nil {
		writeServiceError(c, err, "Failed to create room")
		return
	}
	c.JSON(http.StatusCreated, room)
}

// Update handles PUT /rooms/:id.
func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UpdateRoomRequest
	if !bindJSON(c, &req) {
		return
	}

	room, err := h.service.Update(c.Request.Context(), id, models.RoomPatch{
		RoomName:    req.RoomName,
		BaseRent:    req.BaseRent,
		InternetFee: req.InternetFee,
		Status:      req.Status,
	})
	if err != nil {
		writeServiceError(c, err, "Failed to update room")
		return
	}
	c.JSON(http.StatusOK, room)
}

// Delete handles DELETE /rooms/:id.
func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "Failed to delete room")
		return
	}
	c.Status(http.StatusNoContent)
}
