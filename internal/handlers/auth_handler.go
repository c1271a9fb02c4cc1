package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/stwalsh4118/room4rent/internal/errors"
	"github.com/stwalsh4118/room4rent/internal/middleware"
	"github.com/stwalsh4118/room4rent/internal/models"
	"github.com/stwalsh4118/room4rent/internal/services"
)

// AuthHandler handles login and session requests.
type AuthHandler struct {
	service services.AuthService
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(service services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err, "Failed to log in")
		return
	}
	c.JSON(http.StatusOK, result)
}

// MeResponse is the session user with their tenancy, if any.
type MeResponse struct {
	User     *models.User `json:"user"`
	TenantID *int64       `json:"tenant_id,omitempty"`
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.service.Me(c.Request.Context(), *session)
	if err != nil {
		writeServiceError(c, err, "Failed to query user")
		return
	}
	c.JSON(http.StatusOK, MeResponse{User: user, TenantID: session.TenantID})
}
