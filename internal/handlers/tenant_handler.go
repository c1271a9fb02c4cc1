package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/stwalsh4118/room4rent/internal/errors"
	"github.com/stwalsh4118/room4rent/internal/middleware"
	"github.com/stwalsh4118/room4rent/internal/models"
	"github.com/stwalsh4118/room4rent/internal/services"
)

// TenantHandler handles tenant HTTP requests.
type TenantHandler struct {
	service services.TenantService
}

// NewTenantHandler creates a new TenantHandler instance.
func NewTenantHandler(service services.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// CreateTenantRequest is the body of POST /tenants.
type CreateTenantRequest struct {
	MoveInDate        models.Date `json:"move_in_date"`
	ContactNumber     *string     `json:"contact_number" binding:"omitempty,max=30"`
	Name              string      `json:"name" binding:"required,max=100"`
	Email             string      `json:"email" binding:"required,email"`
	Password          string      `json:"password" binding:"required,min=6"`
	RoomID            int64       `json:"room_id" binding:"required,gt=0"`
	NumberOfOccupants int         `json:"number_of_occupants" binding:"omitempty,gte=1"`
}

// UpdateTenantRequest is the body of PUT /tenants/:id. Omitted fields are kept.
type UpdateTenantRequest struct {
	MoveOutDate       *models.Date `json:"move_out_date"`
	ContactNumber     *string      `json:"contact_number" binding:"omitempty,max=30"`
	NumberOfOccupants *int         `json:"number_of_occupants" binding:"omitempty,gte=1"`
}

// List handles GET /tenants.
func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Failed to list tenants")
		return
	}
	c.JSON(http.StatusOK, tenants)
}

// Get handles GET /tenants/:id.
func (h *TenantHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	tenant, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Failed to query tenant")
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// GetByUser handles GET /tenants/user/:userId. Tenants may only look up
// their own account.
func (h *TenantHandler) GetByUser(c *gin.Context) {
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}
	if session := middleware.GetSession(c); session == nil || (!session.IsAdmin() && session.UserID != userID) {
		apierrors.Forbidden(c, "Access to this user is not allowed")
		return
	}

	tenant, err := h.service.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err, "Failed to query tenant")
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// Create handles POST /tenants.
func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if !bindJSON(c, &req) {
		return
	}

	tenant, err := h.service.Create(c.Request.Context(), services.CreateTenantInput{
		MoveInDate:        req.MoveInDate,
		ContactNumber:     req.ContactNumber,
		Name:              req.Name,
		Email:             req.Email,
		Password:          req.Password,
		RoomID:            req.RoomID,
		NumberOfOccupants: req.NumberOfOccupants,
	})
	if err != nil {
		writeServiceError(c, err, "Failed to create tenant")
		return
	}
	c.JSON(http.StatusCreated, tenant)
}

// Update handles PUT /tenants/:id.
func (h *TenantHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UpdateTenantRequest
	if !bindJSON(c, &req) {
		return
	}

	tenant, err := h.service.Update(c.Request.Context(), id, models.TenantPatch{
		ContactNumber:     req.ContactNumber,
		NumberOfOccupants: req.NumberOfOccupants,
		MoveOutDate:       req.MoveOutDate,
	})
	if err != nil {
		writeServiceError(c, err, "Failed to update tenant")
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// Delete handles DELETE /tenants/:id by moving the tenant out today.
func (h *TenantHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	tenant, err := h.service.Remove(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Failed to remove tenant")
		return
	}
	c.JSON(http.StatusOK, tenant)
}
