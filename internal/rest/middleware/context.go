package middleware

import (
	"context"

	"github.com/billforge/billforge/internal/types"
	"github.com/gin-gonic/gin"
)

// RequestContextMiddleware seeds the request context with tenant,
// environment, user and request identifiers taken from headers so the
// rest of the stack can log and scope by them.
func RequestContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		requestID := c.GetHeader(types.HeaderRequestID)
		if requestID == "" {
			requestID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST)
		}

		ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
		if tenantID := c.GetHeader(types.HeaderTenantID); tenantID != "" {
			ctx = context.WithValue(ctx, types.CtxTenantID, tenantID)
		}
		if environmentID := c.GetHeader(types.HeaderEnvironment); environmentID != "" {
			ctx = context.WithValue(ctx, types.CtxEnvironmentID, environmentID)
		}
		if userID := c.GetHeader(types.HeaderUserID); userID != "" {
			ctx = context.WithValue(ctx, types.CtxUserID, userID)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Header(types.HeaderRequestID, requestID)
		c.Next()
	}
}
