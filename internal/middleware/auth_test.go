package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stwalsh4118/room4rent/internal/auth"
	"github.com/stwalsh4118/room4rent/internal/models"
)

const testSecret = "test-secret-0123456789"

func newTokenManager() *auth.TokenManager {
	return auth.NewTokenManager(testSecret, "room4rent", time.Hour)
}

func signedToken(t *testing.T, tm *auth.TokenManager, s auth.Session) string {
	t.Helper()
	token, err := tm.GenerateToken(s)
	require.NoError(t, err)
	return token
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func protectedRouter(tm *auth.TokenManager, extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	handlers := append([]gin.HandlerFunc{Authenticate(tm)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		session := GetSession(c)
		c.JSON(http.StatusOK, gin.H{"user_id": session.UserID})
	})
	router.GET("/api/tenants/:id", handlers...)
	return router
}

func TestAuthenticate(t *testing.T) {
	tm := newTokenManager()
	router := protectedRouter(tm)

	t.Run("valid token sets session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/tenants/1", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, tm, auth.Session{UserID: 9, Role: models.RoleAdmin}))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":9}`, w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tenants/1", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := auth.NewTokenManager("another-secret-0123456789", "room4rent", time.Hour)
		req := httptest.NewRequest(http.MethodGet, "/api/tenants/1", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, other, auth.Session{UserID: 9, Role: models.RoleAdmin}))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	tm := newTokenManager()
	router := protectedRouter(tm, RequireRole(models.RoleAdmin))
	tenantID := int64(1)

	tests := []struct {
		name    string
		session auth.Session
		status  int
	}{
		{name: "admin allowed", session: auth.Session{UserID: 1, Role: models.RoleAdmin}, status: http.StatusOK},
		{name: "tenant forbidden", session: auth.Session{UserID: 2, Role: models.RoleTenant, TenantID: &tenantID}, status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/tenants/1", nil)
			req.Header.Set("Authorization", "Bearer "+signedToken(t, tm, tt.session))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRequireTenantAccess(t *testing.T) {
	tm := newTokenManager()
	router := protectedRouter(tm, RequireTenantAccess("id"))
	own := int64(4)

	tests := []struct {
		name    string
		path    string
		session auth.Session
		status  int
	}{
		{name: "tenant reads own record", path: "/api/tenants/4", session: auth.Session{UserID: 2, Role: models.RoleTenant, TenantID: &own}, status: http.StatusOK},
		{name: "tenant reads another record", path: "/api/tenants/5", session: auth.Session{UserID: 2, Role: models.RoleTenant, TenantID: &own}, status: http.StatusForbidden},
		{name: "admin reads any record", path: "/api/tenants/5", session: auth.Session{UserID: 1, Role: models.RoleAdmin}, status: http.StatusOK},
		{name: "malformed id", path: "/api/tenants/abc", session: auth.Session{UserID: 1, Role: models.RoleAdmin}, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Authorization", "Bearer "+signedToken(t, tm, tt.session))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestGetSession_NotSet(t *testing.T) {
	assert.Nil(t, GetSession(&gin.Context{}))
}
