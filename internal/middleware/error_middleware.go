package middleware

import (
	"user-management/internal/transport/httpdto"
	"user-management/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler logs any errors collected on the context. Error bodies are
// written by the handlers themselves so raw details never leak here.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.ErrorfCtx(c.Request.Context(), "request error: %s", err.Error())
		}
		if !c.Writer.Written() {
			c.JSON(c.Writer.Status(), httpdto.NewErrorResponse("internal server error", "INTERNAL_ERROR"))
		}
	}
}
