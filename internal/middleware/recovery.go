package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/stwalsh4118/room4rent/internal/logger"
	"github.com/stwalsh4118/room4rent/internal/metrics"
)

// Recovery turns a panicking handler into a 500 response in the standard
// error envelope. The panic value and stack are logged, never returned.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			requestLogger := GetLogger(c)
			if requestLogger == nil {
				requestLogger = log.WithRequestID(GetRequestID(c))
			}

			route := c.FullPath()
			fields := map[string]interface{}{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
				"route":  route,
				"stack":  string(debug.Stack()),
			}
			if session := GetSession(c); session != nil {
				fields["user_id"] = session.UserID
			}
			requestLogger.Error("Panic recovered", fmt.Errorf("panic: %v", recovered), fields)
			metrics.ObservePanic(route)

			abortWithError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred")
		}()

		c.Next()
	}
}
