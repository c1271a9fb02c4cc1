package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/stwalsh4118/room4rent/internal/auth"
	apierrors "github.com/stwalsh4118/room4rent/internal/errors"
	"github.com/stwalsh4118/room4rent/internal/logger"
	"github.com/stwalsh4118/room4rent/internal/middleware"
	"github.com/stwalsh4118/room4rent/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidation()
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func int64Ptr(v int64) *int64 {
	return &v
}

// newTestRouter returns an engine with the request ID and logging
// middleware the server installs.
func newTestRouter() *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.Nop()))
	return router
}

// withSession injects an authenticated session, standing in for
// middleware.Authenticate.
func withSession(s auth.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.SessionKey, &s)
		c.Next()
	}
}

func adminSession() auth.Session {
	return auth.Session{UserID: 1, Email: "admin@example.com", Role: models.RoleAdmin}
}

func tenantSession(userID, tenantID int64) auth.Session {
	return auth.Session{UserID: userID, Email: "tenant@example.com", Role: models.RoleTenant, TenantID: int64Ptr(tenantID)}
}

func newTestTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret-with-enough-bytes-000", "room4rent-test", time.Hour)
}

func bearer(t *testing.T, tokens *auth.TokenManager, s auth.Session) string {
	t.Helper()
	token, err := tokens.GenerateToken(s)
	require.NoError(t, err)
	return "Bearer " + token
}

// performRequest sends body (marshalled to JSON unless nil or a string)
// and returns the recorder.
func performRequest(router http.Handler, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.ErrorDetail {
	t.Helper()
	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp.Error
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "body: %s", w.Body.String())
}
