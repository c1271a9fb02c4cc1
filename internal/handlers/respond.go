package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/stwalsh4118/room4rent/internal/errors"
	"github.com/stwalsh4118/room4rent/internal/services"
)

// bindJSON decodes and validates the request body. On failure it has
// already written the 400 response.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeBindError(c, err, "Invalid request body")
		return false
	}
	return true
}

// bindQuery is bindJSON for query parameters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		writeBindError(c, err, "Invalid query parameters")
		return false
	}
	return true
}

func writeBindError(c *gin.Context, err error, message string) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		apierrors.ValidationError(c, validationErrors)
		return
	}
	apierrors.BadRequest(c, message, map[string]interface{}{"error": err.Error()})
}

// idParam parses a positive integer path parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		apierrors.BadRequest(c, "Invalid "+name, map[string]interface{}{name: c.Param(name)})
		return 0, false
	}
	return id, true
}

// writeServiceError maps service error kinds to HTTP responses. Anything
// unclassified is a 500 whose details stay in the log.
func writeServiceError(c *gin.Context, err error, internalMsg string) {
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		apierrors.BadRequest(c, err.Error(), nil)
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		apierrors.Unauthorized(c, "Invalid email or password")
	default:
		apierrors.InternalServerError(c, internalMsg, err)
	}
}
