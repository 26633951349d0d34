package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the Gin context key holding the correlation id
// echoed in every response envelope's metadata.
const ContextKeyRequestID = "request_id"

// RequestIDMiddleware tags each sitting request with a correlation id so a
// single exam attempt can be traced across answer writes, submits and
// retries. An inbound X-Request-ID is honored; otherwise one is minted.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, reqID)
		c.Header("X-Request-ID", reqID)
		c.Next()
	}
}
