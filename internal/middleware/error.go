package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "fundportal/internal/errors"
	"fundportal/internal/logger"
)

// RenderError writes err as {"error":{"code","message"}}. AppErrors keep
// their status and code; anything else is logged and reported as
// INTERNAL_ERROR so driver or filesystem details never reach the client.
func RenderError(c *gin.Context, err error) {
	appErr := classify(c, err)
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{"code": appErr.Code, "message": appErr.Message},
	})
}

func classify(c *gin.Context, err error) *apperrors.AppError {
	log := logger.Get().With(
		"request_id", c.GetString(requestIDKey),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		log.Errorw("unexpected error", "error", err.Error())
		return apperrors.ErrInternalServer
	}
	if appErr.Internal != nil {
		log.Errorw("app error", "code", appErr.Code, "internal", appErr.Internal.Error())
	}
	return appErr
}

// ErrorHandler renders the last error a handler attached with c.Error, unless
// the handler already wrote a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		RenderError(c, c.Errors.Last().Err)
	}
}
