package middleware

import "github.com/gin-gonic/gin"

// NoStore marks responses as uncacheable. Sitting state changes every
// second; a cached snapshot would show a stale clock or a stale phase.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
