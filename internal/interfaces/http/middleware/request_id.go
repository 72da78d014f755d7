package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"creatorverse.backend/pkg/logger"
	"creatorverse.backend/pkg/utils"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// RequestIDMiddleware generates a unique ID for each request
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = utils.GenerateUUIDv7().String()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		// gin keys are plain strings; logger.WithContext reads both forms
		ctx := context.WithValue(c.Request.Context(), RequestIDKey, id)
		ctx = logger.ContextWithRequestID(ctx, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
