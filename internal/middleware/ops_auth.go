package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "fundportal/internal/errors"
	"fundportal/internal/logger"
)

// OpsActor is the identity recorded for scheduled jobs on /ops routes.
const OpsActor = "ops"

const apiKeyHeader = "X-API-Key"

// OpsAuthMiddleware admits scheduled jobs presenting the configured API key
// and runs them as OpsActor. An empty key disables the routes.
func OpsAuthMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			abort(c, apperrors.ErrOpsDisabled)
			return
		}
		if subtle.ConstantTimeCompare([]byte(c.GetHeader(apiKeyHeader)), []byte(apiKey)) != 1 {
			logger.Get().Warnw("rejected ops call",
				"path", c.Request.URL.Path,
				"ip", c.ClientIP(),
			)
			abort(c, apperrors.ErrInvalidAPIKey)
			return
		}
		// No role is set, so RequireRole never admits an ops caller.
		c.Set(userIDKey, OpsActor)
		c.Next()
	}
}
