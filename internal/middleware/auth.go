package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stwalsh4118/room4rent/internal/auth"
	"github.com/stwalsh4118/room4rent/internal/models"
)

// SessionKey is the context key for the authenticated session.
const SessionKey = "session"

// Authenticate validates the bearer token and stores the session in the
// context. Requests without a valid token are rejected with 401.
func Authenticate(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := auth.ExtractToken(c.GetHeader("Authorization"))
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or malformed Authorization header")
			return
		}

		session, err := tokens.ValidateToken(raw)
		if err != nil {
			if log := GetLogger(c); log != nil {
				log.Warn("Rejected token", map[string]interface{}{"error": err.Error()})
			}
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

// RequireRole rejects authenticated callers whose role differs with 403.
// It must run after Authenticate.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}
		if session.Role != role {
			abortWithError(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
			return
		}
		c.Next()
	}
}

// RequireTenantAccess lets admins through and limits tenants to their own
// records, identified by the named path parameter.
func RequireTenantAccess(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		id, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil || id <= 0 {
			abortWithError(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid "+param)
			return
		}
		if !session.IsAdmin() && !session.OwnsTenant(id) {
			abortWithError(c, http.StatusForbidden, "FORBIDDEN", "Access to this tenant is not allowed")
			return
		}
		c.Next()
	}
}

// GetSession retrieves the authenticated session from the Gin context.
// Returns nil for unauthenticated requests.
func GetSession(c *gin.Context) *auth.Session {
	if v, exists := c.Get(SessionKey); exists {
		if s, ok := v.(*auth.Session); ok {
			return s
		}
	}
	return nil
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":       code,
			"message":    message,
			"request_id": GetRequestID(c),
		},
	})
}
