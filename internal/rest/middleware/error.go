package middleware

import (
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/gin-gonic/gin"
)

// ErrorHandlerMiddleware converts errors collected on the gin context
// into the standard error response, with the HTTP status derived from
// the error's category mark.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if c.Writer.Written() {
			return
		}

		c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
	}
}
